//go:build !nogpu

package gpu

import (
	"log/slog"

	"github.com/gogpu/ccraster"
)

// slogger returns the logger configured on the root package. GPU wiring
// shares the host's logging destination.
func slogger() *slog.Logger {
	return ccraster.Logger()
}

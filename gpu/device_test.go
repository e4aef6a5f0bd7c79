//go:build !nogpu

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNewRendererRejectsNilHandles(t *testing.T) {
	if _, err := NewRendererHAL(nil, nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("nil device: err = %v, want ErrNilDevice", err)
	}
}

func TestNewRendererRequiresHALAccess(t *testing.T) {
	// The null handle satisfies the provider interface but exposes no raw
	// HAL handles.
	if _, err := NewRenderer(NullDeviceHandle{}); !errors.Is(err, ErrNoHALAccess) {
		t.Errorf("null handle: err = %v, want ErrNoHALAccess", err)
	}
}

// badHALProvider exposes the raw-handle methods but returns values of the
// wrong type, as a misconfigured host would.
type badHALProvider struct {
	NullDeviceHandle
}

func (badHALProvider) HalDevice() any { return "not a device" }
func (badHALProvider) HalQueue() any  { return "not a queue" }

func TestAdoptProviderRejectsWrongTypes(t *testing.T) {
	if _, _, err := adoptProvider(badHALProvider{}); !errors.Is(err, ErrNoHALAccess) {
		t.Errorf("wrong handle types: err = %v, want ErrNoHALAccess", err)
	}
}

func TestNullDeviceHandle(t *testing.T) {
	// Going through the interface type pins that NullDeviceHandle
	// implements every provider method, AdapterInfo included.
	var h DeviceHandle = NullDeviceHandle{}
	if h.Device() != nil || h.Queue() != nil || h.Adapter() != nil {
		t.Error("null handle must return nil GPU objects")
	}
	h.AdapterInfo()
	if h.SurfaceFormat() != gputypes.TextureFormatUndefined {
		t.Errorf("null handle surface format = %v, want undefined", h.SurfaceFormat())
	}
}

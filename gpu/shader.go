//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// compileShader compiles WGSL source to SPIR-V via naga and creates a HAL
// shader module from it.
func compileShader(device hal.Device, label, wgsl string) (hal.ShaderModule, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("ccraster-gpu: compile %s: %w", label, err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("ccraster-gpu: compile %s: SPIR-V length %d not word-aligned", label, len(spirvBytes))
	}

	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}

	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("ccraster-gpu: create shader module %s: %w", label, err)
	}
	return module, nil
}

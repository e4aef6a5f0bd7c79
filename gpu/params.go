//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/ccraster"
)

// ShaderParams is the uniform block consumed by the expansion shader.
// Positions are mapped to clip space as pos*Scale+Translate after the
// half-pixel bloat is applied in device space.
type ShaderParams struct {
	// ScaleX, ScaleY scale device coordinates into clip space.
	ScaleX float32
	ScaleY float32

	// TranslateX, TranslateY offset the scaled position.
	TranslateX float32
	TranslateY float32

	// BloatScale multiplies the half-pixel bloat radius. 1 draws normal
	// coverage geometry; larger values exaggerate the bloat for
	// debugging. Zero is treated as 1.
	BloatScale float32
}

// Bytes serializes the params to the uniform buffer layout: a vec4
// transform followed by a vec4 whose x component is the scaled bloat
// radius. The result is exactly ccraster.ShaderParamsSize bytes.
func (p ShaderParams) Bytes() []byte {
	scale := p.BloatScale
	if scale == 0 {
		scale = 1
	}
	buf := make([]byte, ccraster.ShaderParamsSize)
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(p.ScaleX))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(p.ScaleY))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(p.TranslateX))
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(p.TranslateY))
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(ccraster.BloatRadius*scale))
	return buf
}

// ParamsForViewport returns params mapping pixel coordinates with the
// origin at the top left (y-down) onto a width x height viewport.
func ParamsForViewport(width, height int) ShaderParams {
	return ShaderParams{
		ScaleX:     2 / float32(width),
		ScaleY:     -2 / float32(height),
		TranslateX: -1,
		TranslateY: 1,
	}
}

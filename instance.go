package ccraster

import (
	"encoding/binary"
	"math"
)

// Point is a planar point in device space.
type Point struct {
	X, Y float32
}

// Instance record byte strides. Records store all X coordinates followed by
// all Y coordinates so the shader reads each as one wide vector attribute.
const (
	// TriPointInstanceStride is the byte size of one 3-point record:
	// vec3 X + vec3 Y.
	TriPointInstanceStride = 24

	// QuadPointInstanceStride is the byte size of one 4-point record:
	// vec4 X + vec4 Y.
	QuadPointInstanceStride = 32
)

// TriPointInstance is the per-polygon input record for triangle draws with
// cross-product winding: three planar points as parallel X and Y arrays.
type TriPointInstance struct {
	X [3]float32
	Y [3]float32
}

// MakeTriPointInstance builds a 3-point instance record.
func MakeTriPointInstance(p0, p1, p2 Point) TriPointInstance {
	return TriPointInstance{
		X: [3]float32{p0.X, p1.X, p2.X},
		Y: [3]float32{p0.Y, p1.Y, p2.Y},
	}
}

// Put writes the record to dst in little-endian upload layout.
// dst must be at least TriPointInstanceStride bytes.
func (in *TriPointInstance) Put(dst []byte) {
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(in.X[i]))
		binary.LittleEndian.PutUint32(dst[12+i*4:], math.Float32bits(in.Y[i]))
	}
}

// TriPointInstanceBytes packs a slice of 3-point records for upload.
func TriPointInstanceBytes(insts []TriPointInstance) []byte {
	out := make([]byte, TriPointInstanceStride*len(insts))
	for i := range insts {
		insts[i].Put(out[i*TriPointInstanceStride:])
	}
	return out
}

// QuadPointInstance is the per-polygon input record for 4-point curve hull
// draws, and for triangle draws with instance-data winding: four planar
// points as parallel X and Y arrays. Under instance-data winding only the
// first three points are geometry and X[3] carries the winding scalar.
type QuadPointInstance struct {
	X [4]float32
	Y [4]float32
}

// MakeQuadPointInstance builds a 4-point instance record.
func MakeQuadPointInstance(p0, p1, p2, p3 Point) QuadPointInstance {
	return QuadPointInstance{
		X: [4]float32{p0.X, p1.X, p2.X, p3.X},
		Y: [4]float32{p0.Y, p1.Y, p2.Y, p3.Y},
	}
}

// MakeWindedTriInstance builds the record for a triangle whose winding sign
// is supplied by the caller instead of derived from the points. The wind
// scalar rides in the 4th X slot.
func MakeWindedTriInstance(p0, p1, p2 Point, wind float32) QuadPointInstance {
	return QuadPointInstance{
		X: [4]float32{p0.X, p1.X, p2.X, wind},
		Y: [4]float32{p0.Y, p1.Y, p2.Y, 0},
	}
}

// Wind returns the winding scalar stored in the 4th X slot.
func (in *QuadPointInstance) Wind() float32 { return in.X[3] }

// SetWind stores a winding scalar in the 4th X slot.
func (in *QuadPointInstance) SetWind(w float32) { in.X[3] = w }

// Put writes the record to dst in little-endian upload layout.
// dst must be at least QuadPointInstanceStride bytes.
func (in *QuadPointInstance) Put(dst []byte) {
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(in.X[i]))
		binary.LittleEndian.PutUint32(dst[16+i*4:], math.Float32bits(in.Y[i]))
	}
}

// QuadPointInstanceBytes packs a slice of 4-point records for upload.
func QuadPointInstanceBytes(insts []QuadPointInstance) []byte {
	out := make([]byte, QuadPointInstanceStride*len(insts))
	for i := range insts {
		insts[i].Put(out[i*QuadPointInstanceStride:])
	}
	return out
}

package ccraster

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Primitive is the shape kind a render pass draws. It determines the
// instance point count (3 for triangles, 4 for curve hulls) and whether
// corner-box geometry is emitted (triangles only).
type Primitive int

const (
	// PrimitiveTriangles draws 3-point triangle instances.
	PrimitiveTriangles Primitive = iota

	// PrimitiveQuadratics draws 4-point hulls around quadratic curves.
	PrimitiveQuadratics

	// PrimitiveCubics draws 4-point hulls around cubic curves.
	PrimitiveCubics
)

// String returns the string representation of the primitive kind.
func (p Primitive) String() string {
	switch p {
	case PrimitiveTriangles:
		return "Triangles"
	case PrimitiveQuadratics:
		return "Quadratics"
	case PrimitiveCubics:
		return "Cubics"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// PointCount returns the number of points in one instance record.
func (p Primitive) PointCount() int {
	if p == PrimitiveTriangles {
		return 3
	}
	return 4
}

// WindMethod selects how the expansion algorithm determines an instance's
// winding orientation.
type WindMethod int

const (
	// WindCrossProduct derives the winding sign from the signed area of
	// the instance's points. Works for 3- and 4-point instances.
	WindCrossProduct WindMethod = iota

	// WindInstanceData reads a precomputed winding scalar from the 4th X
	// slot of the instance record. Triangles only; used when the sign
	// depends on an upstream fill-rule decision.
	WindInstanceData
)

// String returns the string representation of the wind method.
func (m WindMethod) String() string {
	switch m {
	case WindCrossProduct:
		return "CrossProduct"
	case WindInstanceData:
		return "InstanceData"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// Caps answers the device capability queries the pass configuration needs.
// Implementations are typically thin adapters over the host's GPU backend.
type Caps interface {
	// SupportsPrimitiveRestart reports whether indexed triangle strips
	// may use RestartIndex to start a new strip.
	SupportsPrimitiveRestart() bool
}

// StaticCaps is a fixed Caps value, useful for tests and for hosts that
// know their capabilities up front.
type StaticCaps struct {
	PrimitiveRestart bool
}

// SupportsPrimitiveRestart implements Caps.
func (c StaticCaps) SupportsPrimitiveRestart() bool { return c.PrimitiveRestart }

// Configuration errors. All are fatal at setup time; no partial
// configuration is ever retained.
var (
	// ErrInvalidPrimitive is returned for an unknown primitive kind.
	ErrInvalidPrimitive = errors.New("ccraster: invalid primitive kind")

	// ErrInvalidWindMethod is returned for an unknown wind method.
	ErrInvalidWindMethod = errors.New("ccraster: invalid wind method")

	// ErrWindMethodMismatch is returned when instance-data winding is
	// requested for a non-triangle primitive.
	ErrWindMethodMismatch = errors.New("ccraster: instance-data winding requires triangles")

	// ErrNilCaps is returned when no capability query is supplied.
	ErrNilCaps = errors.New("ccraster: caps is nil")
)

// PassConfig is the immutable draw-time configuration for one primitive
// kind and wind method on one device: which static mesh to upload, which
// index encoding and topology to draw with, and how instance records are
// laid out. Construct once per (primitive, method) pair and reuse for every
// draw.
type PassConfig struct {
	primitive  Primitive
	windMethod WindMethod
	mesh       *Mesh
	indexForm  IndexForm
	topology   gputypes.PrimitiveTopology
	wide       bool
	wgsl       string
}

// NewPassConfig validates the (primitive, windMethod) combination and
// selects mesh, index encoding, topology and instance layout for the
// device described by caps. The capability query is consulted exactly
// once; the returned configuration is immutable.
func NewPassConfig(primitive Primitive, windMethod WindMethod, caps Caps) (*PassConfig, error) {
	switch primitive {
	case PrimitiveTriangles, PrimitiveQuadratics, PrimitiveCubics:
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidPrimitive, int(primitive))
	}
	switch windMethod {
	case WindCrossProduct, WindInstanceData:
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindMethod, int(windMethod))
	}
	if caps == nil {
		return nil, ErrNilCaps
	}
	if windMethod == WindInstanceData && primitive != PrimitiveTriangles {
		return nil, fmt.Errorf("%w: got %v", ErrWindMethodMismatch, primitive)
	}

	c := &PassConfig{
		primitive:  primitive,
		windMethod: windMethod,
		mesh:       MeshFor(primitive),
		wide:       primitive.PointCount() == 4 || windMethod == WindInstanceData,
	}
	if caps.SupportsPrimitiveRestart() {
		c.indexForm = IndexFormStripWithRestart
		c.topology = gputypes.PrimitiveTopologyTriangleStrip
	} else {
		c.indexForm = IndexFormTriangleList
		c.topology = gputypes.PrimitiveTopologyTriangleList
	}
	c.wgsl = generateWGSL(primitive, windMethod)

	Logger().Debug("ccraster: pass configured",
		"primitive", primitive.String(),
		"wind", windMethod.String(),
		"indexForm", c.indexForm.String(),
		"indicesPerInstance", c.mesh.IndexCount(c.indexForm))

	return c, nil
}

// Primitive returns the configured shape kind.
func (c *PassConfig) Primitive() Primitive { return c.primitive }

// WindMethod returns the configured winding determination method.
func (c *PassConfig) WindMethod() WindMethod { return c.windMethod }

// Mesh returns the static geometry table this configuration draws.
func (c *PassConfig) Mesh() *Mesh { return c.mesh }

// IndexForm returns the selected index encoding.
func (c *PassConfig) IndexForm() IndexForm { return c.indexForm }

// Topology returns the primitive topology matching the index encoding.
func (c *PassConfig) Topology() gputypes.PrimitiveTopology { return c.topology }

// IndicesPerInstance returns the index count of one instanced draw.
func (c *PassConfig) IndicesPerInstance() int {
	return c.mesh.IndexCount(c.indexForm)
}

// WideInstances reports whether instance records carry four points worth
// of data (QuadPointInstance layout) rather than three.
func (c *PassConfig) WideInstances() bool { return c.wide }

// InstanceStride returns the byte stride of one instance record.
func (c *PassConfig) InstanceStride() int {
	if c.wide {
		return QuadPointInstanceStride
	}
	return TriPointInstanceStride
}

// InstancePointFormat returns the vertex format of the per-instance X and
// Y attributes.
func (c *PassConfig) InstancePointFormat() gputypes.VertexFormat {
	if c.wide {
		return gputypes.VertexFormatFloat32x4
	}
	return gputypes.VertexFormatFloat32x3
}

// WGSL returns the generated shader source implementing the expansion
// algorithm for this configuration.
func (c *PassConfig) WGSL() string { return c.wgsl }

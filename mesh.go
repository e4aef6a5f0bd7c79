package ccraster

import (
	"encoding/binary"
	"sync"
)

// RestartIndex is the sentinel index value that separates independent
// triangle strips inside a strip-form index buffer when primitive restart
// is enabled.
const RestartIndex uint16 = 0xffff

// IndexForm selects one of the two interchangeable index encodings of a
// static mesh. Both enumerate the exact same multiset of triangles over the
// same vertex array; the strip form needs primitive-restart support, the
// list form works everywhere.
type IndexForm int

const (
	// IndexFormTriangleList encodes the mesh as plain index triplets.
	IndexFormTriangleList IndexForm = iota

	// IndexFormStripWithRestart encodes the mesh as triangle strips
	// separated by RestartIndex sentinels.
	IndexFormStripWithRestart
)

// String returns the string representation of the index form.
func (f IndexForm) String() string {
	switch f {
	case IndexFormTriangleList:
		return "TriangleList"
	case IndexFormStripWithRestart:
		return "StripWithRestart"
	default:
		return "Unknown"
	}
}

// Mesh is one immutable static geometry table: a vertex-metadata array plus
// the two index encodings over it. Meshes are created once per process and
// shared; the accessors return internal slices that must not be modified.
type Mesh struct {
	name     string
	sides    int
	vertices []VertexData
	strip    []uint16
	list     []uint16
}

// Name returns a short identifier for the mesh ("triangle" or "hull4").
func (m *Mesh) Name() string { return m.name }

// Sides returns the polygon side count the mesh was built for (3 or 4).
func (m *Mesh) Sides() int { return m.sides }

// Vertices returns the vertex-metadata array. Read-only.
func (m *Mesh) Vertices() []VertexData { return m.vertices }

// Indices returns the index array for the requested form. Read-only.
func (m *Mesh) Indices(form IndexForm) []uint16 {
	if form == IndexFormStripWithRestart {
		return m.strip
	}
	return m.list
}

// IndexCount returns the number of indices drawn per instance for the
// requested form.
func (m *Mesh) IndexCount(form IndexForm) int {
	return len(m.Indices(form))
}

// VertexDataBytes returns the vertex array packed as little-endian uint32
// words, ready for upload.
func (m *Mesh) VertexDataBytes() []byte {
	out := make([]byte, 4*len(m.vertices))
	for i, v := range m.vertices {
		binary.LittleEndian.PutUint32(out[i*4:], uint32(v))
	}
	return out
}

// IndexBytes returns the requested index array packed as little-endian
// uint16 values, ready for upload.
func (m *Mesh) IndexBytes(form IndexForm) []byte {
	idx := m.Indices(form)
	out := make([]byte, 2*len(idx))
	for i, v := range idx {
		binary.LittleEndian.PutUint16(out[i*2:], v)
	}
	return out
}

// VertexBufferKey returns the stable content key identifying this mesh's
// vertex buffer in a content-keyed resource cache.
func (m *Mesh) VertexBufferKey() string {
	return "ccraster/" + m.name + "/vertices"
}

// IndexBufferKey returns the stable content key identifying this mesh's
// index buffer for the given form.
func (m *Mesh) IndexBufferKey(form IndexForm) string {
	if form == IndexFormStripWithRestart {
		return "ccraster/" + m.name + "/indices/strip"
	}
	return "ccraster/" + m.name + "/indices/list"
}

var (
	triangleMeshOnce = sync.OnceValue(buildTriangleMesh)
	hull4MeshOnce    = sync.OnceValue(buildHull4Mesh)
)

// TriangleMesh returns the 39-vertex static table used to draw triangle
// instances: 9 hull vertices (3 corners x 3 bloat positions), 18 edge
// vertices (3 edges x 2 directions x 3 bloat positions) and 12 corner-box
// vertices (3 corners x 4 box vertices).
func TriangleMesh() *Mesh { return triangleMeshOnce() }

// Hull4Mesh returns the 18-vertex static table used to draw 4-point curve
// hull instances: 12 hull vertices (4 corners x 3 bloat positions) and 6
// vertices for the hull's shared edge (2 directions x 3 bloat positions).
func Hull4Mesh() *Mesh { return hull4MeshOnce() }

// MeshFor returns the static table for the given primitive kind.
func MeshFor(p Primitive) *Mesh {
	if p == PrimitiveTriangles {
		return TriangleMesh()
	}
	return Hull4Mesh()
}

func buildTriangleMesh() *Mesh {
	var verts []VertexData

	// Hull: 3 corners x 3 bloat positions.
	for c := 0; c < 3; c++ {
		for b := 0; b < 3; b++ {
			verts = append(verts, HullVertexData(c, b, 3))
		}
	}

	// Edge ramps: each edge twice, once per direction. The reverse
	// direction inverts its ramp so the two draws agree in sign.
	edges := []struct {
		left, right int
		flags       VertexFlags
	}{
		{0, 1, 0},
		{1, 0, FlagInvertCoverage},
		{1, 2, 0},
		{2, 1, FlagInvertCoverage},
		{2, 0, 0},
		{0, 2, FlagInvertCoverage},
	}
	for _, e := range edges {
		for b := 0; b < 3; b++ {
			verts = append(verts, EdgeVertexData(e.left, e.right, b, e.flags))
		}
	}

	// Corner boxes: 3 corners x 4 box vertices.
	for c := 0; c < 3; c++ {
		for b := 0; b < 4; b++ {
			verts = append(verts, TriangleCornerVertexData(c, b))
		}
	}

	// Canonical strip form. The vertex numbering above is load-bearing:
	// hull corner c bloat b is vertex c*3+b, edge vertices start at 9,
	// corner boxes at 27.
	strip := []uint16{
		1, 2, 0, 3, 8, RestartIndex, // First corner and main body of the hull.
		4, 5, 3, 6, 8, 7, RestartIndex, // Opposite side and corners of the hull.
		10, 9, 11, 14, 12, 13, RestartIndex, // First edge.
		16, 15, 17, 20, 18, 19, RestartIndex, // Second edge.
		22, 21, 23, 26, 24, 25, RestartIndex, // Third edge.
		27, 28, 30, 29, RestartIndex, // First corner box.
		31, 32, 34, 33, RestartIndex, // Second corner box.
		35, 36, 38, 37, // Third corner box.
	}

	return &Mesh{
		name:     "triangle",
		sides:    3,
		vertices: verts,
		strip:    strip,
		list:     listFromStrip(strip),
	}
}

func buildHull4Mesh() *Mesh {
	var verts []VertexData

	// Hull: 4 corners x 3 bloat positions.
	for c := 0; c < 4; c++ {
		for b := 0; b < 3; b++ {
			verts = append(verts, HullVertexData(c, b, 4))
		}
	}

	// Shared edge (0,3), both directions.
	verts = append(verts,
		EdgeVertexData(0, 3, 0, FlagInvertCoverage),
		EdgeVertexData(0, 3, 1, 0),
		EdgeVertexData(0, 3, 2, 0),
		EdgeVertexData(3, 0, 0, 0),
		EdgeVertexData(3, 0, 1, 0),
		EdgeVertexData(3, 0, 2, FlagInvertCoverage),
	)

	strip := []uint16{
		1, 0, 2, 11, 3, 5, 4, RestartIndex, // First half of the hull (split diagonally).
		7, 6, 8, 5, 9, 11, 10, RestartIndex, // Second half of the hull.
		13, 12, 14, 17, 15, 16, // Shared edge.
	}

	return &Mesh{
		name:     "hull4",
		sides:    4,
		vertices: verts,
		strip:    strip,
		list:     listFromStrip(strip),
	}
}

// listFromStrip expands a strip-with-restart index array into plain
// triangle triplets. The strip form is the single canonical authoring of
// the mesh topology; deriving the list form from it removes any chance of
// the two encodings silently diverging. Odd strip triangles swap their
// first two indices to keep a consistent winding; windows that repeat an
// index are degenerate and dropped.
func listFromStrip(strip []uint16) []uint16 {
	var list []uint16
	run := 0
	for i := 0; i <= len(strip); i++ {
		if i < len(strip) && strip[i] != RestartIndex {
			continue
		}
		for j := run; j+2 < i; j++ {
			a, b, c := strip[j], strip[j+1], strip[j+2]
			if a == b || b == c || a == c {
				continue
			}
			if (j-run)%2 == 1 {
				a, b = b, a
			}
			list = append(list, a, b, c)
		}
		run = i + 1
	}
	return list
}

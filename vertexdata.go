package ccraster

// VertexData is the packed metadata word attached to one static mesh vertex.
// It tells the expansion algorithm how to offset the vertex for conservative
// raster and how (or whether) to compute a coverage ramp value, without any
// CPU-side per-instance work.
//
// Bit layout, low to high:
//
//	bits [0:1]   corner ID (0..3, meaning depends on the role)
//	bit  2       hull flag
//	bit  3       edge flag
//	bit  4       corner flag
//	bit  5       invert-negative-coverage flag
//	bits [6:7]   bloat index (rotation count, 0..3)
//	bits [8:9]   right neighbor ID
//	bits [10:11] left neighbor ID
//
// Neighbor and corner IDs index into the instance's point array. The layout
// is binary-stable: the same word is decoded on the CPU by ExpandVertex and
// on the GPU by the generated vertex shader.
type VertexData uint32

const (
	leftNeighborIDShift  = 10
	rightNeighborIDShift = 8
	bloatIdxShift        = 6

	neighborIDMask = 0x3
	bloatIdxMask   = 0x3
	cornerIDMask   = 0x3
)

// VertexFlags mark the structural role of a mesh vertex and modify how its
// coverage value is computed. Exactly one of FlagHull, FlagEdge, FlagCorner
// is set on every table vertex.
type VertexFlags uint32

const (
	// FlagHull marks a vertex of the conservative-raster hull. Hull
	// vertices carry a constant coverage of +1.
	FlagHull VertexFlags = 1 << 2

	// FlagEdge marks a vertex of an edge coverage ramp.
	FlagEdge VertexFlags = 1 << 3

	// FlagCorner marks a vertex of a pixel-size corner box. Corner boxes
	// are emitted for triangles only and overwrite previously drawn
	// coverage.
	FlagCorner VertexFlags = 1 << 4

	// FlagInvertCoverage mirrors a negative coverage ramp around -0.5
	// (coverage becomes -1-coverage). Set on edge vertices traversed in
	// the second direction so that the two draws of a shared edge agree
	// in sign at pixel centers outside the polygon.
	FlagInvertCoverage VertexFlags = 1 << 5

	flagsMask = FlagHull | FlagEdge | FlagCorner | FlagInvertCoverage
)

// EncodeVertexData packs neighbor IDs, bloat index, corner ID and role flags
// into a single metadata word. Pure bit arithmetic; inputs outside their
// field ranges are masked off.
func EncodeVertexData(leftNeighborID, rightNeighborID, bloatIdx, cornerID int, flags VertexFlags) VertexData {
	return VertexData((uint32(leftNeighborID)&neighborIDMask)<<leftNeighborIDShift |
		(uint32(rightNeighborID)&neighborIDMask)<<rightNeighborIDShift |
		(uint32(bloatIdx)&bloatIdxMask)<<bloatIdxShift |
		uint32(cornerID)&cornerIDMask |
		uint32(flags&flagsMask))
}

// LeftNeighborID returns the instance point index of the left neighbor.
func (v VertexData) LeftNeighborID() int {
	return int(v>>leftNeighborIDShift) & neighborIDMask
}

// RightNeighborID returns the instance point index of the right neighbor.
func (v VertexData) RightNeighborID() int {
	return int(v>>rightNeighborIDShift) & neighborIDMask
}

// BloatIdx returns the vertex's rotation count selector (0..3).
func (v VertexData) BloatIdx() int {
	return int(v>>bloatIdxShift) & bloatIdxMask
}

// CornerID returns the instance point index this vertex is anchored to.
func (v VertexData) CornerID() int {
	return int(v) & cornerIDMask
}

// Flags returns the role and coverage-modifier flags of the vertex.
func (v VertexData) Flags() VertexFlags {
	return VertexFlags(v) & flagsMask
}

// IsHull reports whether this is a conservative-raster hull vertex.
func (v VertexData) IsHull() bool { return VertexFlags(v)&FlagHull != 0 }

// IsEdge reports whether this is an edge-ramp vertex.
func (v VertexData) IsEdge() bool { return VertexFlags(v)&FlagEdge != 0 }

// IsCorner reports whether this is a corner-box vertex.
func (v VertexData) IsCorner() bool { return VertexFlags(v)&FlagCorner != 0 }

// InvertsCoverage reports whether the coverage value is mirrored around
// -0.5 after the ramp computation.
func (v VertexData) InvertsCoverage() bool {
	return VertexFlags(v)&FlagInvertCoverage != 0
}

// VertexDataFields is the unpacked form of a metadata word.
type VertexDataFields struct {
	LeftNeighborID  int
	RightNeighborID int
	BloatIdx        int
	CornerID        int
	Flags           VertexFlags
}

// Decode unpacks all fields of the metadata word.
// For all valid field values, EncodeVertexData(f...) then Decode returns
// the original fields.
func (v VertexData) Decode() VertexDataFields {
	return VertexDataFields{
		LeftNeighborID:  v.LeftNeighborID(),
		RightNeighborID: v.RightNeighborID(),
		BloatIdx:        v.BloatIdx(),
		CornerID:        v.CornerID(),
		Flags:           v.Flags(),
	}
}

// HullVertexData builds the metadata word for hull corner cornerID of an
// n-sided polygon: neighbors are the adjacent polygon corners.
func HullVertexData(cornerID, bloatIdx, n int) VertexData {
	return EncodeVertexData((cornerID+n-1)%n, (cornerID+1)%n, bloatIdx, cornerID, FlagHull)
}

// EdgeVertexData builds the metadata word for a vertex of the directed edge
// (leftID, rightID). Both neighbor fields hold the left endpoint and the
// corner field holds the right endpoint. Pass FlagInvertCoverage in extra
// for the second traversal direction of a shared edge.
func EdgeVertexData(leftID, rightID, bloatIdx int, extra VertexFlags) VertexData {
	return EncodeVertexData(leftID, leftID, bloatIdx, rightID, FlagEdge|extra)
}

// TriangleCornerVertexData builds the metadata word for vertex bloatIdx
// (0..3) of the pixel-size box around triangle corner cornerID.
func TriangleCornerVertexData(cornerID, bloatIdx int) VertexData {
	return EncodeVertexData((cornerID+2)%3, (cornerID+1)%3, bloatIdx, cornerID, FlagCorner)
}

// reverseMask returns the constant M such that, for an n-sided polygon,
// M - word remaps every index field i of word to n-1-i in a single integer
// subtraction. The middle 0xfc term keeps the borrow from the corner-ID
// field away from the neighbor fields; it corrupts the flag and bloat-index
// bits, so those must always be read from the original word.
func reverseMask(n int) uint32 {
	return uint32(n-1)<<leftNeighborIDShift |
		uint32(n-1)<<rightNeighborIDShift |
		0xfc |
		uint32(n-1)
}

package ccraster

import "math"

// BloatRadius is the conservative-raster offset applied to every output
// vertex: half a pixel in each axis, so the bloated geometry covers every
// pixel the exact shape touches even partially.
const BloatRadius float32 = 0.5

// ExpandedVertex is the result of expanding one (mesh vertex, instance)
// pair: a bloated device-space position and a scalar coverage value.
type ExpandedVertex struct {
	Position Point
	Coverage float32
}

// ExpandVertex is the CPU reference for the per-vertex expansion that the
// generated shader executes on the GPU. It is a pure function of the
// metadata word and the instance's points; invocations share no state, so
// the GPU runs it with full (vertex x instance) parallelism.
//
// xs and ys hold the instance's points in parallel arrays; only the first
// primitive.PointCount() entries are geometry. Under WindInstanceData the
// winding scalar is read from xs[3]. bloat is the offset radius, normally
// BloatRadius (scale it only for debug visualization).
//
// The steps, in an order that matters:
//
//  1. Determine the winding sign (signed polygon area, or the instance
//     scalar).
//  2. For non-positive winding, remap the word's three index fields
//     i -> n-1-i with a single subtraction so the same static table serves
//     both orientations. Flags and bloat index always come from the
//     original word.
//  3. Gather corner, left and right points.
//  4. Build unit-step bloat directions from the coordinate signs of the
//     adjacent edge vectors, rotated to point out of the polygon.
//  5. Corner boxes force the rotation conditions on and may pre-rotate so
//     the box diagonal points out of the polygon.
//  6. Rotate the bloat direction clockwise 0-3 times per the bloat index;
//     sharper corners get more distinct vertices, flatter ones collapse to
//     degenerate triangles.
//  7. Offset the corner by the rotated direction.
//  8. Coverage: hull +1; edge and corner vertices get an edge-normal ramp,
//     corner boxes overwrite with a bilinear-style combination; curve-hull
//     edges are flat -1; the invert flag mirrors the ramp around -0.5.
func ExpandVertex(primitive Primitive, method WindMethod, v VertexData, xs, ys [4]float32, bloat float32) ExpandedVertex {
	n := primitive.PointCount()

	var wind float32
	if method == WindCrossProduct {
		area2 := det2(xs[0]-xs[1], ys[0]-ys[1], xs[0]-xs[2], ys[0]-ys[2])
		if n == 4 {
			area2 += det2(xs[0]-xs[2], ys[0]-ys[2], xs[0]-xs[3], ys[0]-ys[3])
		}
		wind = sign32(area2)
	} else {
		wind = xs[3]
	}

	indices := uint32(v)
	if !(wind > 0) {
		indices = reverseMask(n) - indices
	}
	corner := Point{xs[indices&3], ys[indices&3]}
	left := Point{xs[(indices>>leftNeighborIDShift)&3], ys[(indices>>leftNeighborIDShift)&3]}
	right := Point{xs[(indices>>rightNeighborIDShift)&3], ys[(indices>>rightNeighborIDShift)&3]}

	leftbloat := bloatStep(signVec(sub(corner, left)))
	rightbloat := bloatStep(signVec(sub(right, corner)))
	notequalX := leftbloat.X != rightbloat.X
	notequalY := leftbloat.Y != rightbloat.Y
	bloatdir := leftbloat

	if primitive == PrimitiveTriangles && v.IsCorner() {
		// Corner boxes always rotate, and the box is oriented so its
		// diagonal shared edge points out of the triangle, in the
		// direction that ramps to zero.
		notequalX, notequalY = true, true
		bisect := add(normalize(sub(corner, right)), normalize(sub(corner, left)))
		if sign32(bisect.X) == leftbloat.X && sign32(bisect.Y) == leftbloat.Y {
			bloatdir = Point{bloatdir.Y, -bloatdir.X}
		}
	}

	// Each polygon corner contributes 1-3 hull vertices (4 for a corner
	// box): the first is leftbloat, the rest follow by rotating 90
	// degrees clockwise. Corners needing fewer vertices repeat the last
	// one, collapsing the extra triangles to zero area.
	bloatIdx := v.BloatIdx()
	rot := 0
	if primitive == PrimitiveTriangles && bloatIdx >= 3 {
		rot++ // only corner boxes reach index 3, and corners always rotate
	}
	if bloatIdx >= 2 && notequalX && notequalY {
		rot++
	}
	if bloatIdx >= 1 && (notequalX || notequalY) {
		rot++
	}
	for i := 0; i < rot; i++ {
		bloatdir = Point{-bloatdir.Y, bloatdir.X}
	}

	pos := Point{corner.X + bloatdir.X*bloat, corner.Y + bloatdir.Y*bloat}

	// The hull has a coverage of +1 all around.
	coverage := float32(1)
	if primitive == PrimitiveTriangles {
		if v.IsEdge() || v.IsCorner() {
			coverage = edgeCoverageAtBloatVertex(left, corner, bloatdir)
		}
		if v.IsCorner() {
			// Corner boxes erase whatever coverage was written
			// previously and replace it with values that ramp to
			// zero in the diagonal pointing out of the triangle,
			// and from left-edge to right-edge coverage in the
			// other diagonal.
			leftCoverage := coverage
			rightCoverage := edgeCoverageAtBloatVertex(corner, right, bloatdir)
			coverage = 0
			if bloatIdx == 1 {
				coverage = -1
			}
			if (bloatIdx+3)&3 < 2 {
				coverage -= leftCoverage
			}
			if bloatIdx < 2 {
				coverage -= rightCoverage
			}
		}
	} else if v.IsEdge() {
		// The curve's own rasterization supplies the ramp shape; the
		// shared-edge raster just erases the hull's coverage.
		coverage = -1
	}
	if v.InvertsCoverage() {
		coverage = -1 - coverage
	}

	return ExpandedVertex{Position: pos, Coverage: coverage}
}

// edgeCoverageAtBloatVertex finds the coverage an edge contributes at one
// corner of a pixel-size bloat box centered on the edge: -1 times the
// fraction of the box that falls outside the edge, a linear ramp from -1
// at the fully-bloated outer vertex to 0 at the inner one.
func edgeCoverageAtBloatVertex(leftPt, rightPt, dir Point) float32 {
	nx := rightPt.Y - leftPt.Y
	ny := leftPt.X - rightPt.X
	nwidth := abs32(nx) + abs32(ny)
	t := dir.X*nx + dir.Y*ny
	// The comparison guarantees exactly -1 and 0 at the extremes
	// regardless of rounding in the division.
	if abs32(t) == nwidth {
		return sign32(t)*-0.5 - 0.5
	}
	return t/nwidth*-0.5 - 0.5
}

// bloatStep rotates a sign vector of an edge direction 90 degrees so it
// points out of the polygon instead of along the edge. When the edge is
// axis-aligned one component is zero; the selection picks the nonzero axis
// so the result is always one of the 8 compass/diagonal steps.
func bloatStep(s Point) Point {
	x := s.X
	if s.Y != 0 {
		x = s.Y
	}
	y := -s.Y
	if s.X != 0 {
		y = -s.X
	}
	return Point{x, y}
}

func det2(ax, ay, bx, by float32) float32 {
	return ax*by - ay*bx
}

func sign32(x float32) float32 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func abs32(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

func signVec(p Point) Point {
	return Point{sign32(p.X), sign32(p.Y)}
}

func sub(a, b Point) Point { return Point{a.X - b.X, a.Y - b.Y} }

func add(a, b Point) Point { return Point{a.X + b.X, a.Y + b.Y} }

func normalize(p Point) Point {
	len := float32(math.Hypot(float64(p.X), float64(p.Y)))
	return Point{p.X / len, p.Y / len}
}

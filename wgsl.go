package ccraster

import (
	"fmt"
	"strings"
)

// ShaderParamsSize is the byte size of the uniform block consumed by the
// generated shader: transform vec4 + bloat vec4.
const ShaderParamsSize = 32

// wgslPrelude declares the uniform block and the two helper functions
// shared by every generated configuration.
const wgslPrelude = `// Conservative-raster coverage expansion. Generated; do not edit.

struct Params {
    // xy: scale, zw: translate, mapping device space to clip space.
    transform: vec4<f32>,
    // x: bloat radius in device units. yzw unused.
    bloat: vec4<f32>,
}

@group(0) @binding(0) var<uniform> params: Params;

// Rotates a sign vector of an edge direction 90 degrees so it points out
// of the polygon. Axis-aligned edges have a zero component; the selects
// pick the nonzero axis.
fn bloat_step(v: vec2<f32>) -> vec2<f32> {
    return vec2<f32>(
        select(v.x, v.y, v.y != 0.0),
        select(-v.y, -v.x, v.x != 0.0),
    );
}

// Finds an edge's coverage at one corner of a pixel-size bloat box whose
// center falls on the edge: -1 times the fraction of the box outside the
// edge. The abs comparison pins the extremes to exactly -1 and 0.
fn edge_coverage(left_pt: vec2<f32>, right_pt: vec2<f32>, dir: vec2<f32>) -> f32 {
    let n = vec2<f32>(right_pt.y - left_pt.y, left_pt.x - right_pt.x);
    let nwidth = abs(n.x) + abs(n.y);
    let t = dot(dir, n);
    if (abs(t) == nwidth) {
        return sign(t) * -0.5 - 0.5;
    }
    return t / nwidth * -0.5 - 0.5;
}

struct VertexOut {
    @builtin(position) position: vec4<f32>,
    @location(0) coverage: f32,
}

`

const wgslFragment = `@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
    return vec4<f32>(in.coverage);
}
`

// generateWGSL emits the expansion algorithm as a WGSL program for one
// (primitive, windMethod) configuration. The emitted vertex shader is the
// exact GPU counterpart of ExpandVertex; the cascading rotation is
// expressed as a counted loop since WGSL has no switch fallthrough.
func generateWGSL(primitive Primitive, method WindMethod) string {
	n := primitive.PointCount()
	wide := n == 4 || method == WindInstanceData
	vecType := "vec3<f32>"
	if wide {
		vecType = "vec4<f32>"
	}

	var b strings.Builder
	b.WriteString(wgslPrelude)

	fmt.Fprintf(&b, `struct VertexIn {
    @location(0) vertex_data: u32,
    @location(1) xs: %s,
    @location(2) ys: %s,
}

`, vecType, vecType)

	b.WriteString("@vertex\nfn vs_main(in: VertexIn) -> VertexOut {\n")

	b.WriteString("    var pts: array<vec2<f32>, 4>;\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "    pts[%d] = vec2<f32>(in.xs[%d], in.ys[%d]);\n", i, i, i)
	}
	if n < 4 {
		b.WriteString("    pts[3] = vec2<f32>(0.0, 0.0);\n")
	}
	b.WriteString("\n")

	if method == WindCrossProduct {
		b.WriteString("    var area_x2 = determinant(mat2x2<f32>(pts[0] - pts[1], pts[0] - pts[2]));\n")
		if n == 4 {
			b.WriteString("    area_x2 = area_x2 + determinant(mat2x2<f32>(pts[0] - pts[2], pts[0] - pts[3]));\n")
		}
		b.WriteString("    let wind = sign(area_x2);\n\n")
	} else {
		b.WriteString("    let wind = in.xs.w;\n\n")
	}

	// Reverse all index fields when the wind is counter-clockwise:
	// [0, 1, 2] -> [2, 1, 0]. Flags and bloat index are read from the
	// unreversed attribute below.
	fmt.Fprintf(&b, "    var indices = in.vertex_data;\n    if (wind <= 0.0) {\n        indices = 0x%xu - indices;\n    }\n", reverseMask(n))
	b.WriteString("    let corner = pts[indices & 3u];\n")
	fmt.Fprintf(&b, "    let left = pts[(indices >> %du) & 3u];\n", leftNeighborIDShift)
	fmt.Fprintf(&b, "    let right = pts[(indices >> %du) & 3u];\n\n", rightNeighborIDShift)

	b.WriteString("    let leftbloat = bloat_step(sign(corner - left));\n")
	b.WriteString("    let rightbloat = bloat_step(sign(right - corner));\n")
	b.WriteString("    var notequal = leftbloat != rightbloat;\n")
	b.WriteString("    var bloatdir = leftbloat;\n\n")

	if primitive == PrimitiveTriangles {
		// Corner boxes always rotate, and are oriented so the box's
		// diagonal shared edge points out of the triangle.
		fmt.Fprintf(&b, "    if ((in.vertex_data & %du) != 0u) {\n", uint32(FlagCorner))
		b.WriteString("        notequal = vec2<bool>(true, true);\n")
		b.WriteString("        let bisect = normalize(corner - right) + normalize(corner - left);\n")
		b.WriteString("        if (all(sign(bisect) == leftbloat)) {\n")
		b.WriteString("            bloatdir = vec2<f32>(bloatdir.y, -bloatdir.x);\n")
		b.WriteString("        }\n")
		b.WriteString("    }\n\n")
	}

	// Rotate clockwise 0-3 times per the bloat index. Sharp corners use
	// all positions; flat ones collapse duplicates to zero-area
	// triangles.
	fmt.Fprintf(&b, "    let bloatidx = (in.vertex_data >> %du) & 3u;\n", bloatIdxShift)
	b.WriteString("    var rot = 0u;\n")
	if primitive == PrimitiveTriangles {
		b.WriteString("    if (bloatidx >= 3u) {\n        rot = rot + 1u;\n    }\n")
	}
	b.WriteString("    if (bloatidx >= 2u && all(notequal)) {\n        rot = rot + 1u;\n    }\n")
	b.WriteString("    if (bloatidx >= 1u && any(notequal)) {\n        rot = rot + 1u;\n    }\n")
	b.WriteString("    for (var i = 0u; i < rot; i = i + 1u) {\n        bloatdir = vec2<f32>(-bloatdir.y, bloatdir.x);\n    }\n\n")

	b.WriteString("    let vertex = corner + bloatdir * params.bloat.x;\n\n")

	b.WriteString("    var coverage = 1.0;\n")
	if primitive == PrimitiveTriangles {
		fmt.Fprintf(&b, "    if ((in.vertex_data & %du) != 0u) {\n        coverage = edge_coverage(left, corner, bloatdir);\n    }\n", uint32(FlagEdge|FlagCorner))
		fmt.Fprintf(&b, "    if ((in.vertex_data & %du) != 0u) {\n", uint32(FlagCorner))
		b.WriteString("        let left_coverage = coverage;\n")
		b.WriteString("        let right_coverage = edge_coverage(corner, right, bloatdir);\n")
		b.WriteString("        coverage = select(0.0, -1.0, bloatidx == 1u);\n")
		b.WriteString("        if (((bloatidx + 3u) & 3u) < 2u) {\n            coverage = coverage - left_coverage;\n        }\n")
		b.WriteString("        if (bloatidx < 2u) {\n            coverage = coverage - right_coverage;\n        }\n")
		b.WriteString("    }\n")
	} else {
		fmt.Fprintf(&b, "    if ((in.vertex_data & %du) != 0u) {\n        coverage = -1.0;\n    }\n", uint32(FlagEdge))
	}
	fmt.Fprintf(&b, "    if ((in.vertex_data & %du) != 0u) {\n        coverage = -1.0 - coverage;\n    }\n\n", uint32(FlagInvertCoverage))

	b.WriteString("    var out: VertexOut;\n")
	b.WriteString("    out.position = vec4<f32>(vertex * params.transform.xy + params.transform.zw, 0.0, 1.0);\n")
	b.WriteString("    out.coverage = coverage;\n")
	b.WriteString("    return out;\n")
	b.WriteString("}\n\n")

	b.WriteString(wgslFragment)
	return b.String()
}

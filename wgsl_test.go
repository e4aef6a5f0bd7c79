package ccraster

import (
	"strings"
	"testing"
)

func mustContain(t *testing.T, src, want, context string) {
	t.Helper()
	if !strings.Contains(src, want) {
		t.Errorf("%s: generated shader is missing %q", context, want)
	}
}

func mustNotContain(t *testing.T, src, avoid, context string) {
	t.Helper()
	if strings.Contains(src, avoid) {
		t.Errorf("%s: generated shader must not contain %q", context, avoid)
	}
}

func TestGenerateWGSLTriangles(t *testing.T) {
	src := generateWGSL(PrimitiveTriangles, WindCrossProduct)

	mustContain(t, src, "fn vs_main(in: VertexIn) -> VertexOut", "triangles")
	mustContain(t, src, "fn fs_main(in: VertexOut)", "triangles")
	mustContain(t, src, "@group(0) @binding(0) var<uniform> params: Params;", "triangles")

	// Narrow instance records: three points per attribute.
	mustContain(t, src, "@location(1) xs: vec3<f32>", "triangles")
	mustNotContain(t, src, "@location(1) xs: vec4<f32>", "triangles")

	// Cross-product winding and the 3-sided reversal constant.
	mustContain(t, src, "determinant(mat2x2<f32>(pts[0] - pts[1], pts[0] - pts[2]))", "triangles")
	mustContain(t, src, "indices = 0xafeu - indices;", "triangles")

	// Corner boxes force the rotation conditions and reach bloat index 3.
	mustContain(t, src, "notequal = vec2<bool>(true, true);", "triangles")
	mustContain(t, src, "bloatidx >= 3u", "triangles")
	mustContain(t, src, "edge_coverage(left, corner, bloatdir)", "triangles")
}

func TestGenerateWGSLTrianglesInstanceWind(t *testing.T) {
	src := generateWGSL(PrimitiveTriangles, WindInstanceData)

	// Wide records carry the wind scalar in the 4th X slot.
	mustContain(t, src, "@location(1) xs: vec4<f32>", "instance wind")
	mustContain(t, src, "let wind = in.xs.w;", "instance wind")
	mustNotContain(t, src, "determinant", "instance wind")

	// Still a 3-sided mesh.
	mustContain(t, src, "indices = 0xafeu - indices;", "instance wind")
}

func TestGenerateWGSLCurveHulls(t *testing.T) {
	for _, p := range []Primitive{PrimitiveQuadratics, PrimitiveCubics} {
		src := generateWGSL(p, WindCrossProduct)
		name := p.String()

		mustContain(t, src, "@location(1) xs: vec4<f32>", name)
		mustContain(t, src, "indices = 0xfffu - indices;", name)

		// 4-sided winding sums two determinants.
		mustContain(t, src, "area_x2 = area_x2 + determinant(mat2x2<f32>(pts[0] - pts[2], pts[0] - pts[3]));", name)

		// No corner boxes: no forced rotation, no 4th bloat position, and
		// the shared edge erases with a flat -1.
		mustNotContain(t, src, "vec2<bool>(true, true)", name)
		mustNotContain(t, src, "bloatidx >= 3u", name)
		mustContain(t, src, "coverage = -1.0;", name)
	}
}

func TestGenerateWGSLCommon(t *testing.T) {
	for _, p := range []Primitive{PrimitiveTriangles, PrimitiveQuadratics, PrimitiveCubics} {
		src := generateWGSL(p, WindCrossProduct)
		name := p.String()

		mustContain(t, src, "fn bloat_step(", name)
		mustContain(t, src, "fn edge_coverage(", name)
		mustContain(t, src, "let leftbloat = bloat_step(sign(corner - left));", name)
		mustContain(t, src, "let rightbloat = bloat_step(sign(right - corner));", name)
		mustContain(t, src, "let vertex = corner + bloatdir * params.bloat.x;", name)
		mustContain(t, src, "vertex * params.transform.xy + params.transform.zw", name)
		mustContain(t, src, "coverage = -1.0 - coverage;", name)

		// Flags and bloat index always read the unreversed attribute.
		mustContain(t, src, "let bloatidx = (in.vertex_data >> 6u) & 3u;", name)
	}
}

func TestPassConfigWGSLMatchesGenerator(t *testing.T) {
	c, err := NewPassConfig(PrimitiveCubics, WindCrossProduct, StaticCaps{PrimitiveRestart: true})
	if err != nil {
		t.Fatal(err)
	}
	if c.WGSL() != generateWGSL(PrimitiveCubics, WindCrossProduct) {
		t.Error("config shader source differs from the generator output")
	}
}

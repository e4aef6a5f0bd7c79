//go:build !nogpu

package gpu

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/ccraster"
)

func TestVertexLayoutsNarrow(t *testing.T) {
	cfg, err := ccraster.NewPassConfig(ccraster.PrimitiveTriangles, ccraster.WindCrossProduct,
		ccraster.StaticCaps{PrimitiveRestart: true})
	if err != nil {
		t.Fatal(err)
	}

	layouts := vertexLayouts(cfg)
	if len(layouts) != 2 {
		t.Fatalf("got %d vertex buffer layouts, want 2", len(layouts))
	}

	meta := layouts[0]
	if meta.ArrayStride != 4 || meta.StepMode != gputypes.VertexStepModeVertex {
		t.Errorf("metadata slot: stride %d step %v", meta.ArrayStride, meta.StepMode)
	}
	if len(meta.Attributes) != 1 || meta.Attributes[0].Format != gputypes.VertexFormatUint32 ||
		meta.Attributes[0].ShaderLocation != 0 {
		t.Errorf("metadata attribute wrong: %+v", meta.Attributes)
	}

	inst := layouts[1]
	if inst.ArrayStride != ccraster.TriPointInstanceStride || inst.StepMode != gputypes.VertexStepModeInstance {
		t.Errorf("instance slot: stride %d step %v", inst.ArrayStride, inst.StepMode)
	}
	if len(inst.Attributes) != 2 {
		t.Fatalf("instance slot has %d attributes, want 2", len(inst.Attributes))
	}
	// X vector at location 1, Y vector at location 2, halfway through the
	// record.
	if inst.Attributes[0].Format != gputypes.VertexFormatFloat32x3 ||
		inst.Attributes[0].Offset != 0 || inst.Attributes[0].ShaderLocation != 1 {
		t.Errorf("X attribute wrong: %+v", inst.Attributes[0])
	}
	if inst.Attributes[1].Format != gputypes.VertexFormatFloat32x3 ||
		inst.Attributes[1].Offset != 12 || inst.Attributes[1].ShaderLocation != 2 {
		t.Errorf("Y attribute wrong: %+v", inst.Attributes[1])
	}
}

func TestVertexLayoutsWide(t *testing.T) {
	cfg, err := ccraster.NewPassConfig(ccraster.PrimitiveCubics, ccraster.WindCrossProduct,
		ccraster.StaticCaps{})
	if err != nil {
		t.Fatal(err)
	}

	inst := vertexLayouts(cfg)[1]
	if inst.ArrayStride != ccraster.QuadPointInstanceStride {
		t.Errorf("instance stride = %d, want %d", inst.ArrayStride, ccraster.QuadPointInstanceStride)
	}
	if inst.Attributes[0].Format != gputypes.VertexFormatFloat32x4 ||
		inst.Attributes[1].Format != gputypes.VertexFormatFloat32x4 {
		t.Errorf("wide attributes must be vec4: %+v", inst.Attributes)
	}
	if inst.Attributes[1].Offset != 16 {
		t.Errorf("Y attribute offset = %d, want 16", inst.Attributes[1].Offset)
	}
}

//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ccraster"
)

// PipelineOptions configures the render pipeline a pass is built with.
// The zero value targets a single-sampled BGRA8Unorm attachment with no
// blending.
type PipelineOptions struct {
	// Format is the color attachment format.
	// Defaults to gputypes.TextureFormatBGRA8Unorm.
	Format gputypes.TextureFormat

	// SampleCount is the attachment sample count. Defaults to 1.
	SampleCount uint32

	// Blend is passed through to the color target. Coverage values are
	// signed, so hosts accumulating into a coverage buffer typically
	// supply an additive blend here. Nil disables blending.
	Blend *gputypes.BlendState
}

// Pass owns the pipeline state for one coverage configuration: compiled
// shader, pipeline, the uniform buffer, and references to the shared
// static mesh buffers.
type Pass struct {
	renderer *Renderer
	config   *ccraster.PassConfig

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	// vertexBuf and indexBuf are owned by the renderer's cache and are
	// not destroyed with the pass.
	vertexBuf hal.Buffer
	indexBuf  hal.Buffer

	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
}

// NewPass builds the pipeline for a pass configuration. The static mesh
// buffers come from the renderer's cache; repeated passes over the same
// mesh share them.
func (r *Renderer) NewPass(config *ccraster.PassConfig, opts PipelineOptions) (*Pass, error) {
	if config == nil {
		return nil, fmt.Errorf("ccraster-gpu: nil pass config")
	}

	p := &Pass{renderer: r, config: config}

	shader, err := compileShader(r.device, "coverage_"+config.Primitive().String(), config.WGSL())
	if err != nil {
		return nil, err
	}
	p.shader = shader

	bindLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "coverage_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("ccraster-gpu: create bind group layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:           "coverage_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bindLayout},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("ccraster-gpu: create pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	format := opts.Format
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	samples := opts.SampleCount
	if samples == 0 {
		samples = 1
	}

	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "coverage_" + config.Primitive().String(),
		Layout: pipeLayout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    vertexLayouts(config),
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     opts.Blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Multisample: gputypes.MultisampleState{
			Count: samples,
			Mask:  0xFFFFFFFF,
		},
		Primitive: gputypes.PrimitiveState{
			Topology: config.Topology(),
			CullMode: gputypes.CullModeNone,
		},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("ccraster-gpu: create render pipeline: %w", err)
	}
	p.pipeline = pipeline

	mesh := config.Mesh()
	vertexBuf, err := r.meshVertexBuffer(mesh)
	if err != nil {
		p.Destroy()
		return nil, err
	}
	p.vertexBuf = vertexBuf

	indexBuf, err := r.meshIndexBuffer(mesh, config.IndexForm())
	if err != nil {
		p.Destroy()
		return nil, err
	}
	p.indexBuf = indexBuf

	uniformBuf, err := r.createAndUploadBuffer("coverage_params",
		make([]byte, ccraster.ShaderParamsSize),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		p.Destroy()
		return nil, err
	}
	p.uniformBuf = uniformBuf

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "coverage_bind",
		Layout: bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: ccraster.ShaderParamsSize,
			}},
		},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("ccraster-gpu: create bind group: %w", err)
	}
	p.bindGroup = bindGroup

	slogger().Debug("coverage pass ready",
		"primitive", config.Primitive().String(),
		"indexForm", config.IndexForm().String(),
		"indicesPerInstance", config.IndicesPerInstance())
	return p, nil
}

// vertexLayouts builds the two vertex buffer layouts: slot 0 steps per
// vertex over the 32-bit metadata words, slot 1 steps per instance over
// the X-then-Y point records.
func vertexLayouts(config *ccraster.PassConfig) []gputypes.VertexBufferLayout {
	stride := config.InstanceStride()
	pointFormat := config.InstancePointFormat()
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: 4,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatUint32, Offset: 0, ShaderLocation: 0},
			},
		},
		{
			ArrayStride: uint64(stride),
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: pointFormat, Offset: 0, ShaderLocation: 1},
				{Format: pointFormat, Offset: uint64(stride / 2), ShaderLocation: 2},
			},
		},
	}
}

// Config returns the pass configuration.
func (p *Pass) Config() *ccraster.PassConfig {
	return p.config
}

// SetParams writes the uniform params. Call before recording draws; the
// write goes through the queue and applies to subsequent submissions.
func (p *Pass) SetParams(params ShaderParams) {
	p.renderer.queue.WriteBuffer(p.uniformBuf, 0, params.Bytes())
}

// RecordDraw records one indexed, instanced draw into an open render
// pass. instanceBuf holds packed instance records (see
// Renderer.UploadTriInstances and UploadQuadInstances).
func (p *Pass) RecordDraw(rp hal.RenderPassEncoder, instanceBuf hal.Buffer, draw ccraster.DrawDescriptor) {
	if draw.InstanceCount == 0 {
		return
	}
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, p.bindGroup, nil)
	rp.SetVertexBuffer(0, p.vertexBuf, 0)
	rp.SetVertexBuffer(1, instanceBuf, 0)
	rp.SetIndexBuffer(p.indexBuf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(uint32(draw.IndexCount), uint32(draw.InstanceCount),
		0, 0, uint32(draw.BaseInstance))
}

// Destroy releases pass-owned resources in reverse creation order. The
// shared static mesh buffers stay in the renderer's cache.
func (p *Pass) Destroy() {
	d := p.renderer.device
	if p.bindGroup != nil {
		d.DestroyBindGroup(p.bindGroup)
		p.bindGroup = nil
	}
	if p.uniformBuf != nil {
		d.DestroyBuffer(p.uniformBuf)
		p.uniformBuf = nil
	}
	if p.pipeline != nil {
		d.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		d.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		d.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		d.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

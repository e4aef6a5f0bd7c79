//go:build !nogpu

// Package gpu wires ccraster pass configurations to a gogpu/wgpu HAL
// device: it uploads the static geometry tables once through a
// content-keyed cache, compiles the generated WGSL expansion shader, and
// records indexed, instanced draws into a host-provided render pass.
//
// The package never creates a GPU device. The host application hands one
// in, either as raw HAL handles or as a gpucontext.DeviceProvider
// (see NewRenderer and DeviceHandle).
//
// Usage:
//
//	r, err := gpu.NewRenderer(handle)
//	if err != nil { ... }
//	defer r.Destroy()
//
//	cfg, _ := ccraster.NewPassConfig(
//	    ccraster.PrimitiveTriangles, ccraster.WindCrossProduct, caps)
//	pass, err := r.NewPass(cfg, gpu.PipelineOptions{})
//	if err != nil { ... }
//	defer pass.Destroy()
//
//	pass.SetParams(gpu.ParamsForViewport(512, 512))
//	instBuf, _ := r.UploadTriInstances("tris", instances)
//	pass.RecordDraw(rp, instBuf, cfg.Draw(len(instances), 0))
package gpu

//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ccraster"
	"github.com/gogpu/ccraster/cache"
)

// Renderer owns the device-level state shared by all passes: the HAL
// handles and the cache of static mesh buffers. One renderer per device;
// passes created from it share the uploaded geometry tables.
type Renderer struct {
	device hal.Device
	queue  hal.Queue

	// buffers caches static vertex/index buffers by content key so each
	// mesh table is uploaded once per device.
	buffers *cache.Sharded[string, hal.Buffer]
}

// NewRenderer creates a renderer from a host device provider. The
// provider must expose raw HAL handles (gogpu-backed providers do).
func NewRenderer(handle DeviceHandle) (*Renderer, error) {
	device, queue, err := adoptProvider(handle)
	if err != nil {
		return nil, err
	}
	return NewRendererHAL(device, queue)
}

// NewRendererHAL creates a renderer from raw HAL handles.
func NewRendererHAL(device hal.Device, queue hal.Queue) (*Renderer, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if queue == nil {
		return nil, ErrNilQueue
	}
	return &Renderer{
		device:  device,
		queue:   queue,
		buffers: cache.NewSharded[string, hal.Buffer](cache.StringHasher),
	}, nil
}

// Queue returns the HAL queue the renderer writes through.
func (r *Renderer) Queue() hal.Queue {
	return r.queue
}

// BufferStats returns statistics for the static buffer cache.
func (r *Renderer) BufferStats() cache.Stats {
	return r.buffers.Stats()
}

// createAndUploadBuffer creates a buffer and writes data into it.
func (r *Renderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("ccraster-gpu: create buffer %s: %w", label, err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// staticBuffer returns the cached buffer for key, uploading data on first
// use. The returned buffer is owned by the renderer.
func (r *Renderer) staticBuffer(key, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	return r.buffers.GetOrCreate(key, func() (hal.Buffer, error) {
		slogger().Debug("uploading static buffer",
			"key", key, "bytes", len(data))
		return r.createAndUploadBuffer(label, data, usage|gputypes.BufferUsageCopyDst)
	})
}

// meshVertexBuffer returns the cached vertex metadata buffer for a mesh.
func (r *Renderer) meshVertexBuffer(mesh *ccraster.Mesh) (hal.Buffer, error) {
	return r.staticBuffer(mesh.VertexBufferKey(), mesh.Name()+"_vertex_data",
		mesh.VertexDataBytes(), gputypes.BufferUsageVertex)
}

// meshIndexBuffer returns the cached index buffer for a mesh in the given
// encoding.
func (r *Renderer) meshIndexBuffer(mesh *ccraster.Mesh, form ccraster.IndexForm) (hal.Buffer, error) {
	return r.staticBuffer(mesh.IndexBufferKey(form), mesh.Name()+"_indices",
		mesh.IndexBytes(form), gputypes.BufferUsageIndex)
}

// UploadTriInstances packs three-point instance records and uploads them
// to a fresh vertex buffer. The caller owns the buffer; release it with
// DestroyBuffer.
func (r *Renderer) UploadTriInstances(label string, instances []ccraster.TriPointInstance) (hal.Buffer, error) {
	return r.createAndUploadBuffer(label,
		ccraster.TriPointInstanceBytes(instances),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
}

// UploadQuadInstances packs four-point instance records and uploads them
// to a fresh vertex buffer. The caller owns the buffer; release it with
// DestroyBuffer.
func (r *Renderer) UploadQuadInstances(label string, instances []ccraster.QuadPointInstance) (hal.Buffer, error) {
	return r.createAndUploadBuffer(label,
		ccraster.QuadPointInstanceBytes(instances),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
}

// DestroyBuffer releases a buffer returned by UploadTriInstances or
// UploadQuadInstances.
func (r *Renderer) DestroyBuffer(buf hal.Buffer) {
	if buf != nil {
		r.device.DestroyBuffer(buf)
	}
}

// Destroy releases all cached static buffers. Passes created from the
// renderer must be destroyed first.
func (r *Renderer) Destroy() {
	r.buffers.Range(func(key string, buf hal.Buffer) bool {
		r.device.DestroyBuffer(buf)
		return true
	})
	r.buffers.Clear()
}

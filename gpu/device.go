//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Device errors.
var (
	// ErrNilDevice is returned when a renderer is created without a device.
	ErrNilDevice = errors.New("ccraster-gpu: device is nil")

	// ErrNilQueue is returned when a renderer is created without a queue.
	ErrNilQueue = errors.New("ccraster-gpu: queue is nil")

	// ErrNoHALAccess is returned when a device provider does not expose
	// raw HAL handles.
	ErrNoHALAccess = errors.New("ccraster-gpu: provider does not expose HAL device access")
)

// DeviceHandle provides GPU device access from the host application.
//
// Key principle: ccraster RECEIVES the device from the host, it does NOT
// create one. The host (e.g. a gogpu.App) implements the provider
// interface and passes it in, so static mesh buffers and pipelines share
// the application's device.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// ccraster-specific name for the interface while maintaining full
// compatibility with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used in tests and for CPU-only callers where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo returns a zero-valued info record for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{}
}

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}

// halProvider is the optional interface a DeviceHandle implements to grant
// raw HAL access. gpucontext providers backed by gogpu expose it.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// adoptProvider extracts raw HAL handles from a device provider.
// The provider should implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue.
func adoptProvider(provider any) (hal.Device, hal.Queue, error) {
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, ErrNoHALAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALAccess)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALAccess)
	}
	return device, queue, nil
}

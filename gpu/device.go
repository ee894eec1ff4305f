// Copyright 2026 The shimmer Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"

	shimmer "github.com/abdusco/shimmer-sub001"
)

// DeviceHandle provides GPU device access from the host application.
//
// The wallpaper service owns the surface and its GPU device; the engine
// receives the device through this interface and never creates one for
// the render context. DeviceHandle is an alias for
// gpucontext.DeviceProvider so host implementations stay compatible with
// the wider gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// ErrProviderDevice is returned when a DeviceHandle does not expose wgpu
// handles the blur and compositor pipelines can use.
var ErrProviderDevice = errors.New("gpu: provider device is not a wgpu device")

// NewBackendFromProvider wraps a host-supplied device in a Backend.
//
// The returned backend is already initialized and shares the host's
// device and queue. It never owns them: Close releases only
// backend-local state and leaves the host resources untouched. The
// provider must hand out core.DeviceID and core.QueueID values, which is
// what gogpu-based hosts supply.
func NewBackendFromProvider(handle DeviceHandle) (*Backend, error) {
	if handle == nil {
		return nil, fmt.Errorf("%w: nil provider", ErrProviderDevice)
	}
	device, ok := handle.Device().(core.DeviceID)
	if !ok || device.IsZero() {
		return nil, ErrProviderDevice
	}
	queue, ok := handle.Queue().(core.QueueID)
	if !ok || queue.IsZero() {
		return nil, fmt.Errorf("%w: missing queue", ErrProviderDevice)
	}

	b := &Backend{
		device:      device,
		queue:       queue,
		gpuInfo:     infoFromProvider(handle.AdapterInfo()),
		borrowed:    true,
		initialized: true,
	}
	if b.gpuInfo != nil {
		shimmer.Logger().Info("gpu: using host device", "gpu", b.gpuInfo.String())
	}
	logDeviceLimits(device)
	return b, nil
}

// GPUInfo contains information about the selected GPU.
type GPUInfo struct {
	// Name is the GPU name (e.g., "Adreno 740").
	Name string
	// Vendor is the GPU vendor.
	Vendor string
	// DeviceType is the type of GPU (discrete, integrated, etc.).
	DeviceType gputypes.DeviceType
	// Backend is the graphics API in use (Vulkan, Metal, DX12).
	Backend gputypes.Backend
	// Driver is the driver version string.
	Driver string
}

// String returns a human-readable description of the GPU.
func (g *GPUInfo) String() string {
	return fmt.Sprintf("%s (%s, %s)", g.Name, g.DeviceType, g.Backend)
}

// queryGPUInfo retrieves adapter metadata for a backend-owned adapter.
func queryGPUInfo(adapterID core.AdapterID) (*GPUInfo, error) {
	info, err := core.GetAdapterInfo(adapterID)
	if err != nil {
		return nil, fmt.Errorf("gpu: failed to get adapter info: %w", err)
	}
	return &GPUInfo{
		Name:       info.Name,
		Vendor:     info.Vendor,
		DeviceType: info.DeviceType,
		Backend:    info.Backend,
		Driver:     info.Driver,
	}, nil
}

// infoFromProvider maps the coarse gpucontext adapter metadata onto
// GPUInfo. Hosts report only a name and an adapter class, so vendor,
// backend, and driver stay at their zero values.
func infoFromProvider(info gpucontext.AdapterInfo) *GPUInfo {
	if info.Name == "" && info.Type == gpucontext.AdapterTypeUnknown {
		return nil
	}
	g := &GPUInfo{Name: info.Name}
	switch info.Type {
	case gpucontext.AdapterTypeDiscrete:
		g.DeviceType = gputypes.DeviceTypeDiscreteGPU
	case gpucontext.AdapterTypeIntegrated:
		g.DeviceType = gputypes.DeviceTypeIntegratedGPU
	case gpucontext.AdapterTypeSoftware:
		g.DeviceType = gputypes.DeviceTypeCPU
	default:
		g.DeviceType = gputypes.DeviceTypeOther
	}
	return g
}

// createDevice creates a logical device from an adapter.
func createDevice(adapterID core.AdapterID, label string) (core.DeviceID, error) {
	desc := gputypes.DefaultDeviceDescriptor()
	desc.Label = label

	deviceID, err := core.RequestDevice(adapterID, &desc)
	if err != nil {
		return core.DeviceID{}, fmt.Errorf("gpu: failed to create device: %w", err)
	}
	return deviceID, nil
}

// getDeviceQueue retrieves the queue associated with a device.
func getDeviceQueue(deviceID core.DeviceID) (core.QueueID, error) {
	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		return core.QueueID{}, fmt.Errorf("gpu: failed to get device queue: %w", err)
	}
	return queueID, nil
}

// releaseDevice drops a backend-owned device.
func releaseDevice(deviceID core.DeviceID) error {
	if deviceID.IsZero() {
		return nil
	}
	if err := core.DeviceDrop(deviceID); err != nil {
		return fmt.Errorf("gpu: failed to release device: %w", err)
	}
	return nil
}

// releaseAdapter drops a backend-owned adapter.
func releaseAdapter(adapterID core.AdapterID) error {
	if adapterID.IsZero() {
		return nil
	}
	if err := core.AdapterDrop(adapterID); err != nil {
		return fmt.Errorf("gpu: failed to release adapter: %w", err)
	}
	return nil
}

// logDeviceLimits records texture-relevant limits of the selected device.
// The compositor tiles keyframes so that no tile exceeds the 2D texture
// dimension limit.
func logDeviceLimits(deviceID core.DeviceID) {
	limits, err := core.GetDeviceLimits(deviceID)
	if err != nil {
		shimmer.Logger().Warn("gpu: failed to get device limits", "error", err)
		return
	}
	shimmer.Logger().Debug("gpu: device limits",
		"maxTextureDimension2D", limits.MaxTextureDimension2D,
		"maxBufferSize", limits.MaxBufferSize)
}

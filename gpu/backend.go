// Copyright 2026 The shimmer Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"

	shimmer "github.com/abdusco/shimmer-sub001"
)

// Backend errors.
var (
	// ErrNoGPU is returned when no suitable GPU adapter is available.
	ErrNoGPU = errors.New("gpu: no suitable GPU adapter found")

	// ErrNotInitialized is returned when using a backend before Init.
	ErrNotInitialized = errors.New("gpu: backend not initialized")

	// ErrInvalidDimensions is returned for zero or negative sizes.
	ErrInvalidDimensions = errors.New("gpu: invalid dimensions")
)

// Backend holds the wgpu instance, adapter, device, and queue the blur
// and compositor pipelines work against. A backend created with
// NewBackend owns a private device for offscreen work; one created with
// NewBackendFromProvider borrows the host application's device instead.
//
// Backend is safe for concurrent use.
type Backend struct {
	mu sync.RWMutex

	instance *core.Instance
	adapter  core.AdapterID
	device   core.DeviceID
	queue    core.QueueID

	gpuInfo *GPUInfo

	// borrowed marks a host-supplied device. Close must not drop it.
	borrowed bool

	initialized bool
}

// NewBackend creates a backend. It must be initialized with Init before
// use.
func NewBackend() *Backend {
	return &Backend{}
}

// Init creates the GPU resources: instance, adapter, device, and queue.
// Init is idempotent; a second call on an initialized backend is a no-op.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	desc := &gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
		Flags:    0,
	}
	b.instance = core.NewInstance(desc)

	// Wallpapers run continuously; a low-power adapter is the right
	// default on battery-constrained devices.
	adapterID, err := b.instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceLowPower,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoGPU, err)
	}
	b.adapter = adapterID

	b.gpuInfo, _ = queryGPUInfo(adapterID)
	if b.gpuInfo != nil {
		shimmer.Logger().Info("gpu: adapter selected", "gpu", b.gpuInfo.String())
	}

	deviceID, err := createDevice(adapterID, "shimmer-blur-device")
	if err != nil {
		return fmt.Errorf("gpu: device creation failed: %w", err)
	}
	b.device = deviceID

	queueID, err := getDeviceQueue(deviceID)
	if err != nil {
		_ = releaseDevice(deviceID)
		return fmt.Errorf("gpu: queue retrieval failed: %w", err)
	}
	b.queue = queueID

	logDeviceLimits(deviceID)

	b.initialized = true
	return nil
}

// Close releases all backend resources in reverse order of creation.
// A borrowed device stays alive; only the backend's references are
// cleared. The backend should not be used after Close.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}

	if b.borrowed {
		b.device = core.DeviceID{}
		b.queue = core.QueueID{}
		b.gpuInfo = nil
		b.initialized = false
		return
	}

	if !b.device.IsZero() {
		if err := releaseDevice(b.device); err != nil {
			shimmer.Logger().Warn("gpu: error releasing device", "error", err)
		}
		b.device = core.DeviceID{}
	}
	if !b.adapter.IsZero() {
		if err := releaseAdapter(b.adapter); err != nil {
			shimmer.Logger().Warn("gpu: error releasing adapter", "error", err)
		}
		b.adapter = core.AdapterID{}
	}

	b.instance = nil
	b.queue = core.QueueID{}
	b.gpuInfo = nil
	b.initialized = false
}

// IsInitialized returns true if the backend has been initialized.
func (b *Backend) IsInitialized() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.initialized
}

// Device returns the wgpu device ID. Zero until Init succeeds.
func (b *Backend) Device() core.DeviceID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.device
}

// Queue returns the wgpu queue ID. Zero until Init succeeds.
func (b *Backend) Queue() core.QueueID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.queue
}

// Info returns information about the selected GPU, or nil before Init.
func (b *Backend) Info() *GPUInfo {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.gpuInfo
}

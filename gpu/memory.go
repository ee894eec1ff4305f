// Copyright 2026 The shimmer Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"fmt"
	"sync"
)

// Memory management errors.
var (
	// ErrMemoryBudgetExceeded is returned when an allocation would exceed
	// the texture memory budget.
	ErrMemoryBudgetExceeded = errors.New("gpu: texture memory budget exceeded")
)

// DefaultMaxMemoryMB is the default texture memory budget. Mobile GPUs
// share memory with the system; a full-screen image set at five keyframes
// fits comfortably under this.
const DefaultMaxMemoryMB = 256

// MemoryStats contains texture memory usage statistics.
type MemoryStats struct {
	// BudgetBytes is the total memory budget in bytes.
	BudgetBytes uint64

	// UsedBytes is the currently registered memory in bytes.
	UsedBytes uint64

	// PeakBytes is the high-water mark since creation.
	PeakBytes uint64

	// TextureCount is the number of registered textures.
	TextureCount int
}

// String returns a human-readable summary.
func (s MemoryStats) String() string {
	return fmt.Sprintf("Memory[%d/%d MB, peak %d MB, %d textures]",
		s.UsedBytes/(1024*1024),
		s.BudgetBytes/(1024*1024),
		s.PeakBytes/(1024*1024),
		s.TextureCount)
}

// MemoryManager tracks texture allocations against a fixed budget. The
// compositor registers every keyframe tile so an oversized image set
// fails loudly at upload instead of silently exhausting GPU memory.
//
// MemoryManager is safe for concurrent use.
type MemoryManager struct {
	mu sync.Mutex

	budget uint64
	used   uint64
	peak   uint64

	textures map[*Texture]uint64
}

// NewMemoryManager creates a manager with the given budget in megabytes.
// A non-positive budget uses DefaultMaxMemoryMB.
func NewMemoryManager(budgetMB int) *MemoryManager {
	if budgetMB <= 0 {
		budgetMB = DefaultMaxMemoryMB
	}
	return &MemoryManager{
		budget:   uint64(budgetMB) * 1024 * 1024,
		textures: make(map[*Texture]uint64),
	}
}

// Register accounts a texture against the budget.
func (m *MemoryManager) Register(t *Texture) error {
	if t == nil {
		return ErrNilPixmap
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.textures[t]; ok {
		return nil
	}
	if m.used+t.sizeBytes > m.budget {
		return fmt.Errorf("%w: %d used + %d requested > %d budget",
			ErrMemoryBudgetExceeded, m.used, t.sizeBytes, m.budget)
	}

	m.textures[t] = t.sizeBytes
	m.used += t.sizeBytes
	if m.used > m.peak {
		m.peak = m.used
	}
	return nil
}

// Unregister releases a texture's accounting. Unknown textures are
// ignored.
func (m *MemoryManager) Unregister(t *Texture) {
	m.mu.Lock()
	defer m.mu.Unlock()

	size, ok := m.textures[t]
	if !ok {
		return
	}
	delete(m.textures, t)
	m.used -= size
}

// Touch marks a texture as recently used. Currently bookkeeping only;
// eviction decisions stay with the compositor, which knows which
// keyframes are on screen.
func (m *MemoryManager) Touch(*Texture) {}

// Stats returns a snapshot of the current usage.
func (m *MemoryManager) Stats() MemoryStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MemoryStats{
		BudgetBytes:  m.budget,
		UsedBytes:    m.used,
		PeakBytes:    m.peak,
		TextureCount: len(m.textures),
	}
}

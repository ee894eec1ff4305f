package gpu

import (
	"errors"
	"testing"
)

func TestMemoryManagerBudget(t *testing.T) {
	m := NewMemoryManager(1) // 1 MB

	// 512x512 RGBA8 = 1 MiB exactly, fills the budget.
	tex, err := CreateTexture(nil, TextureConfig{Width: 512, Height: 512, Manager: m})
	if err != nil {
		t.Fatalf("first texture: %v", err)
	}

	_, err = CreateTexture(nil, TextureConfig{Width: 1, Height: 1, Manager: m})
	if !errors.Is(err, ErrMemoryBudgetExceeded) {
		t.Fatalf("second texture error = %v, want ErrMemoryBudgetExceeded", err)
	}

	tex.Close()
	if got := m.Stats().UsedBytes; got != 0 {
		t.Errorf("UsedBytes after Close = %d, want 0", got)
	}

	// Budget freed, a new allocation fits again.
	tex2, err := CreateTexture(nil, TextureConfig{Width: 256, Height: 256, Manager: m})
	if err != nil {
		t.Fatalf("texture after free: %v", err)
	}
	tex2.Close()
}

func TestMemoryManagerStats(t *testing.T) {
	m := NewMemoryManager(16)

	a, _ := CreateTexture(nil, TextureConfig{Width: 128, Height: 128, Manager: m})
	b, _ := CreateTexture(nil, TextureConfig{Width: 64, Height: 64, Manager: m})

	stats := m.Stats()
	wantUsed := uint64(128*128*4 + 64*64*4)
	if stats.UsedBytes != wantUsed {
		t.Errorf("UsedBytes = %d, want %d", stats.UsedBytes, wantUsed)
	}
	if stats.TextureCount != 2 {
		t.Errorf("TextureCount = %d, want 2", stats.TextureCount)
	}

	a.Close()
	b.Close()

	stats = m.Stats()
	if stats.UsedBytes != 0 || stats.TextureCount != 0 {
		t.Errorf("after close: used=%d count=%d, want 0/0", stats.UsedBytes, stats.TextureCount)
	}
	if stats.PeakBytes != wantUsed {
		t.Errorf("PeakBytes = %d, want %d", stats.PeakBytes, wantUsed)
	}
}

func TestMemoryManagerDoubleRegister(t *testing.T) {
	m := NewMemoryManager(4)
	tex, err := CreateTexture(nil, TextureConfig{Width: 32, Height: 32, Manager: m})
	if err != nil {
		t.Fatal(err)
	}
	defer tex.Close()

	// Registering an already-registered texture is a no-op.
	if err := m.Register(tex); err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if got := m.Stats().UsedBytes; got != 32*32*4 {
		t.Errorf("UsedBytes = %d, want %d", got, 32*32*4)
	}
}

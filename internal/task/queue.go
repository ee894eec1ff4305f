// Copyright 2026 The shimmer Authors
// SPDX-License-Identifier: BSD-3-Clause

package task

import "sync"

// Serial marshals work from background goroutines onto the render
// context. Background tasks Submit apply functions (texture uploads,
// picture-set swaps); the render loop calls Drain at a safe point each
// frame, which runs them in submission order on the calling goroutine.
//
// Submit is safe for concurrent use; Drain must only be called from the
// render context.
type Serial struct {
	mu      sync.Mutex
	pending []func()
}

// NewSerial creates an empty queue.
func NewSerial() *Serial {
	return &Serial{}
}

// Submit enqueues fn to run on the next Drain. Nil is ignored.
func (s *Serial) Submit(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.pending = append(s.pending, fn)
	s.mu.Unlock()
}

// Drain runs every task submitted so far, in order, and returns how
// many ran. Tasks submitted while draining run on the next Drain.
func (s *Serial) Drain() int {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Len returns the number of pending tasks.
func (s *Serial) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

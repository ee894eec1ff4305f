// Copyright 2026 The shimmer Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package task provides the two execution contexts of the engine: a
// background worker pool for image decoding and blur generation, and a
// serial queue drained on the render context once per frame.
package task

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool runs background work on a fixed set of goroutines. Blur pyramid
// generation and file I/O go here; nothing submitted to the pool may
// touch the render context or its GPU resources.
//
// Pool is safe for concurrent use.
type Pool struct {
	workers int
	queue   chan func()

	done chan struct{}
	wg   sync.WaitGroup

	running atomic.Bool
}

// NewPool creates a pool with the given number of workers. Zero or
// negative uses GOMAXPROCS. Workers start immediately.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		workers: workers,
		queue:   make(chan func(), workers*4),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			// Finish whatever is already queued before exiting.
			for {
				select {
				case work := <-p.queue:
					if work != nil {
						work()
					}
				default:
					return
				}
			}
		case work := <-p.queue:
			if work != nil {
				work()
			}
		}
	}
}

// Submit enqueues one background task. A closed pool drops the task.
func (p *Pool) Submit(fn func()) {
	if fn == nil || !p.running.Load() {
		return
	}
	select {
	case p.queue <- fn:
	case <-p.done:
	}
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return p.workers }

// IsRunning reports whether the pool still accepts work.
func (p *Pool) IsRunning() bool { return p.running.Load() }

// Close stops the pool after completing queued work. Safe to call
// multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

package task

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestPoolRunsSubmittedWork(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	var count atomic.Int32
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		p.Submit(func() {
			count.Add(1)
			wg.Done()
		})
	}
	wg.Wait()

	if got := count.Load(); got != 100 {
		t.Errorf("ran %d tasks, want 100", got)
	}
}

func TestPoolCloseCompletesQueued(t *testing.T) {
	p := NewPool(2)

	var count atomic.Int32
	for range 20 {
		p.Submit(func() { count.Add(1) })
	}
	p.Close()
	p.Close() // idempotent

	if got := count.Load(); got != 20 {
		t.Errorf("ran %d tasks before close, want 20", got)
	}
	if p.IsRunning() {
		t.Error("IsRunning = true after Close")
	}

	// Submissions after close are dropped, not run.
	p.Submit(func() { count.Add(1) })
	if got := count.Load(); got != 20 {
		t.Errorf("closed pool ran a task: count = %d", got)
	}
}

func TestPoolDefaultWorkers(t *testing.T) {
	p := NewPool(0)
	defer p.Close()
	if p.Workers() <= 0 {
		t.Errorf("Workers = %d, want > 0", p.Workers())
	}
}

func TestSerialDrainsInOrder(t *testing.T) {
	q := NewSerial()

	var order []int
	for i := range 5 {
		q.Submit(func() { order = append(order, i) })
	}
	if q.Len() != 5 {
		t.Fatalf("Len = %d, want 5", q.Len())
	}

	if ran := q.Drain(); ran != 5 {
		t.Errorf("Drain ran %d, want 5", ran)
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v, want ascending", order)
		}
	}

	if ran := q.Drain(); ran != 0 {
		t.Errorf("second Drain ran %d, want 0", ran)
	}
}

func TestSerialResubmitDuringDrain(t *testing.T) {
	q := NewSerial()

	var second bool
	q.Submit(func() {
		q.Submit(func() { second = true })
	})

	q.Drain()
	if second {
		t.Error("task submitted during Drain ran in the same batch")
	}
	q.Drain()
	if !second {
		t.Error("resubmitted task never ran")
	}
}

func TestSerialConcurrentSubmit(t *testing.T) {
	q := NewSerial()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				q.Submit(func() {})
			}
		}()
	}
	wg.Wait()

	if ran := q.Drain(); ran != 400 {
		t.Errorf("Drain ran %d, want 400", ran)
	}
}

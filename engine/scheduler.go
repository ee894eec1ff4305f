// Copyright 2026 The shimmer Authors
// SPDX-License-Identifier: BSD-3-Clause

package engine

import (
	"sync"
	"time"

	shimmer "github.com/abdusco/shimmer-sub001"
)

// defaultCheckInterval bounds how long the scheduler loop sleeps before
// re-checking its deadline, so interval and enabled changes take effect
// within about a second.
const defaultCheckInterval = time.Second

// Scheduler fires a callback every interval, cooperatively. Instead of
// one long timer it sleeps in bounded steps and recomputes the remaining
// time, so SetInterval, SetEnabled, and PauseTemporarily apply promptly
// without canceling anything.
//
// The image cycle and the duotone rotation each run one Scheduler.
// All methods are safe for concurrent use.
type Scheduler struct {
	mu sync.Mutex

	name     string
	interval time.Duration
	enabled  bool
	fire     func()

	clock         func() time.Time
	checkInterval time.Duration

	// lastFire anchors the current period. pausedTotal accumulates the
	// lengths of elapsed pause windows within this period; pauseStart and
	// pauseDur describe the window still open, if any.
	lastFire    time.Time
	pausedTotal time.Duration
	pauseStart  time.Time
	pauseDur    time.Duration

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	started  bool
}

// NewScheduler creates a stopped scheduler that will call fire every
// interval once started. The name appears in log output only.
func NewScheduler(name string, interval time.Duration, fire func()) *Scheduler {
	return &Scheduler{
		name:          name,
		interval:      interval,
		enabled:       true,
		fire:          fire,
		clock:         time.Now,
		checkInterval: defaultCheckInterval,
		stopChan:      make(chan struct{}),
	}
}

// Start launches the scheduler loop. Starting twice is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.lastFire = s.clock()
	s.mu.Unlock()

	s.wg.Add(1)
	go s.loop()
}

// Stop terminates the loop and waits for it to exit. Safe to call
// multiple times, or without Start.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
}

// SetInterval changes the firing interval; it applies to the current
// period within one check interval.
func (s *Scheduler) SetInterval(d time.Duration) {
	s.mu.Lock()
	s.interval = d
	s.mu.Unlock()
}

// SetEnabled pauses or resumes firing without stopping the loop.
// Re-enabling starts a fresh period.
func (s *Scheduler) SetEnabled(enabled bool) {
	s.mu.Lock()
	if enabled && !s.enabled {
		s.lastFire = s.clock()
		s.resetPauseLocked()
	}
	s.enabled = enabled
	s.mu.Unlock()
}

// PauseTemporarily pushes the next firing out by d from now. A second
// call supersedes the first: the old window's length is folded into the
// period's total paused time and the new window starts fresh.
func (s *Scheduler) PauseTemporarily(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	now := s.clock()
	s.foldPauseLocked(now)
	if !s.pauseStart.IsZero() {
		s.pausedTotal += s.pauseDur
	}
	s.pauseStart = now
	s.pauseDur = d
	s.mu.Unlock()
}

// foldPauseLocked retires a pause window whose duration has elapsed,
// adding its length to the period's paused total. The total survives
// until the period restarts.
func (s *Scheduler) foldPauseLocked(now time.Time) {
	if s.pauseStart.IsZero() {
		return
	}
	if now.Sub(s.pauseStart) >= s.pauseDur {
		s.pausedTotal += s.pauseDur
		s.pauseStart = time.Time{}
		s.pauseDur = 0
	}
}

// resetPauseLocked discards all pause state for a fresh period: after a
// firing or on re-enable.
func (s *Scheduler) resetPauseLocked() {
	s.pausedTotal = 0
	s.pauseStart = time.Time{}
	s.pauseDur = 0
}

// remainingLocked computes the time until the next firing: one interval
// from the last firing, extended by every pause since.
func (s *Scheduler) remainingLocked(now time.Time) time.Duration {
	s.foldPauseLocked(now)
	total := s.pausedTotal + s.pauseDur
	deadline := s.lastFire.Add(s.interval + total)
	return deadline.Sub(now)
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	for {
		s.mu.Lock()
		now := s.clock()
		wait := s.checkInterval
		if s.enabled && s.interval > 0 {
			rem := s.remainingLocked(now)
			if rem <= 0 {
				s.lastFire = now
				s.resetPauseLocked()
				fire := s.fire
				s.mu.Unlock()

				shimmer.Logger().Debug("engine: scheduler fired", "name", s.name)
				if fire != nil {
					fire()
				}
				continue
			}
			wait = min(rem, s.checkInterval)
		}
		s.mu.Unlock()

		select {
		case <-s.stopChan:
			return
		case <-time.After(wait):
		}
	}
}

package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedulerRemainingAccountsForPauses(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	s := NewScheduler("test", 10*time.Second, nil)
	s.clock = func() time.Time { return now }
	s.lastFire = base

	if got := s.remainingLocked(now); got != 10*time.Second {
		t.Fatalf("remaining = %v, want 10s", got)
	}

	// A pause pushes the deadline out by its full length.
	s.PauseTemporarily(5 * time.Second)
	if got := s.remainingLocked(now); got != 15*time.Second {
		t.Errorf("remaining after pause = %v, want 15s", got)
	}

	// A superseding pause folds the old window and opens a new one.
	now = base.Add(3 * time.Second)
	s.PauseTemporarily(5 * time.Second)
	if got := s.remainingLocked(now); got != 17*time.Second {
		t.Errorf("remaining after second pause = %v, want 17s", got)
	}

	// Once the window elapses it stays folded into the total.
	now = base.Add(9 * time.Second)
	if got := s.remainingLocked(now); got != 11*time.Second {
		t.Errorf("remaining after window elapsed = %v, want 11s", got)
	}
}

func TestSchedulerElapsedPausesAccumulate(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	s := NewScheduler("test", 60*time.Second, nil)
	s.clock = func() time.Time { return now }
	s.lastFire = base

	// Two pause windows, each allowed to elapse fully before the next:
	// both lengths must stay in the period's paused total.
	s.PauseTemporarily(4 * time.Second)
	now = base.Add(10 * time.Second)
	s.PauseTemporarily(6 * time.Second)
	now = base.Add(30 * time.Second)

	// deadline = lastFire + 60s interval + 4s + 6s paused = base + 70s.
	if got := s.remainingLocked(now); got != 40*time.Second {
		t.Errorf("remaining = %v, want 40s", got)
	}

	// A fresh period discards the paused total.
	s.resetPauseLocked()
	if got := s.remainingLocked(now); got != 30*time.Second {
		t.Errorf("remaining after period reset = %v, want 30s", got)
	}
}

func TestSchedulerPauseIgnoresNonPositive(t *testing.T) {
	base := time.Now()
	s := NewScheduler("test", time.Minute, nil)
	s.clock = func() time.Time { return base }
	s.lastFire = base

	s.PauseTemporarily(0)
	s.PauseTemporarily(-time.Second)
	if got := s.remainingLocked(base); got != time.Minute {
		t.Errorf("remaining = %v, want 1m", got)
	}
}

func TestSchedulerFiresPeriodically(t *testing.T) {
	var fires atomic.Int32
	s := NewScheduler("test", 30*time.Millisecond, func() { fires.Add(1) })
	s.checkInterval = 5 * time.Millisecond

	s.Start()
	s.Start() // second Start is a no-op
	time.Sleep(200 * time.Millisecond)
	s.Stop()
	s.Stop() // idempotent

	if got := fires.Load(); got < 2 {
		t.Errorf("fired %d times in 200ms at 30ms interval, want >= 2", got)
	}
}

func TestSchedulerDisabledDoesNotFire(t *testing.T) {
	var fires atomic.Int32
	s := NewScheduler("test", 10*time.Millisecond, func() { fires.Add(1) })
	s.checkInterval = 5 * time.Millisecond
	s.SetEnabled(false)

	s.Start()
	time.Sleep(60 * time.Millisecond)
	s.Stop()

	if got := fires.Load(); got != 0 {
		t.Errorf("disabled scheduler fired %d times", got)
	}
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	s := NewScheduler("test", time.Second, nil)
	s.Stop() // must not hang or panic
}

func TestSchedulerSetIntervalTakesEffect(t *testing.T) {
	var fires atomic.Int32
	s := NewScheduler("test", time.Hour, func() { fires.Add(1) })
	s.checkInterval = 5 * time.Millisecond

	s.Start()
	defer s.Stop()

	time.Sleep(30 * time.Millisecond)
	if fires.Load() != 0 {
		t.Fatal("fired before interval change")
	}

	s.SetInterval(10 * time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for fires.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if fires.Load() == 0 {
		t.Error("never fired after shortening the interval")
	}
}

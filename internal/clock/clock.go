// Package clock abstracts time and periodic scheduling so the timer core
// can be driven deterministically in tests.
package clock

import (
	"sync"
	"time"
)

// Clock supplies the current time. During a single running solve the caller
// may assume values are non-decreasing.
type Clock interface {
	Now() time.Time
}

// Task is a handle to a scheduled repeating callback. Stop cancels it;
// stopping an already stopped task is a no-op.
type Task interface {
	Stop()
}

// Scheduler starts repeating callbacks. Implementations decide where the
// callback runs; callers must assume a separate goroutine.
type Scheduler interface {
	Every(d time.Duration, fn func()) Task
}

// System returns the wall-clock backed Clock.
func System() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// NewScheduler returns a Scheduler backed by time.Ticker.
func NewScheduler() Scheduler {
	return &tickerScheduler{}
}

type tickerScheduler struct{}

func (s *tickerScheduler) Every(d time.Duration, fn func()) Task {
	if d <= 0 {
		d = time.Millisecond
	}
	t := &tickerTask{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				fn()
			}
		}
	}()
	return t
}

type tickerTask struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *tickerTask) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}

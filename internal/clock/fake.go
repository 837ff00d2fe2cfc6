package clock

import (
	"sync"
	"time"
)

// Fake is a manually advanced Clock and Scheduler for tests. Advancing the
// clock fires due tasks synchronously on the calling goroutine, oldest
// deadline first.
type Fake struct {
	mu    sync.Mutex
	now   time.Time
	tasks []*fakeTask
}

// NewFake returns a Fake starting at an arbitrary fixed instant.
func NewFake() *Fake {
	return &Fake{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the fake current time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Set moves the clock to an absolute instant without firing tasks. Used to
// simulate a clock jumping backwards.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

// Advance moves the clock forward, firing every scheduled task as its
// deadlines pass.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	for {
		next := f.nextDueLocked(target)
		if next == nil {
			break
		}
		f.now = next.deadline
		next.deadline = next.deadline.Add(next.period)
		fn := next.fn
		f.mu.Unlock()
		fn()
		f.mu.Lock()
	}
	f.now = target
	f.mu.Unlock()
}

func (f *Fake) nextDueLocked(target time.Time) *fakeTask {
	var due *fakeTask
	for _, t := range f.tasks {
		if t.stopped || t.deadline.After(target) {
			continue
		}
		if due == nil || t.deadline.Before(due.deadline) {
			due = t
		}
	}
	return due
}

// Every registers a repeating task firing every d of fake time.
func (f *Fake) Every(d time.Duration, fn func()) Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTask{
		clock:    f,
		period:   d,
		deadline: f.now.Add(d),
		fn:       fn,
	}
	f.tasks = append(f.tasks, t)
	return t
}

// Active reports how many scheduled tasks have not been stopped.
func (f *Fake) Active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

type fakeTask struct {
	clock    *Fake
	period   time.Duration
	deadline time.Time
	fn       func()
	stopped  bool
}

func (t *fakeTask) Stop() {
	t.clock.mu.Lock()
	t.stopped = true
	t.clock.mu.Unlock()
}

package timer

import (
	"time"

	"github.com/samber/lo"
)

// Handle identifies a scheduled task. The zero Handle is never issued.
type Handle uint64

type task struct {
	id    Handle
	due   time.Duration
	every time.Duration
	fn    func()
}

// Scheduler runs callbacks against game time. Time only moves when the
// owning scene calls Advance, so a paused or torn-down scene never fires
// anything. Not safe for concurrent use; scenes drive it from their tick.
type Scheduler struct {
	now   time.Duration
	next  Handle
	tasks map[Handle]*task
}

func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[Handle]*task)}
}

// After schedules fn to run once, d after the current game time.
func (s *Scheduler) After(d time.Duration, fn func()) Handle {
	return s.add(d, 0, fn)
}

// Every schedules fn to run each interval d. A non-positive interval
// schedules nothing and returns the zero Handle.
func (s *Scheduler) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		return 0
	}
	return s.add(d, d, fn)
}

func (s *Scheduler) add(d, every time.Duration, fn func()) Handle {
	if fn == nil {
		return 0
	}
	if d < 0 {
		d = 0
	}

	s.next++
	s.tasks[s.next] = &task{id: s.next, due: s.now + d, every: every, fn: fn}
	return s.next
}

// Cancel removes a pending task. It reports whether the handle was still
// pending.
func (s *Scheduler) Cancel(h Handle) bool {
	if _, ok := s.tasks[h]; !ok {
		return false
	}
	delete(s.tasks, h)
	return true
}

// Pending reports whether h will still fire.
func (s *Scheduler) Pending(h Handle) bool {
	_, ok := s.tasks[h]
	return ok
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Remaining returns the game time left before h fires, or zero when h is
// not pending.
func (s *Scheduler) Remaining(h Handle) time.Duration {
	t, ok := s.tasks[h]
	if !ok {
		return 0
	}
	return t.due - s.now
}

// Advance moves game time forward by dt and runs every task that falls due,
// earliest first, ties broken by scheduling order. Callbacks observe Now()
// at their own deadline and may schedule or cancel other tasks.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	target := s.now + dt

	for {
		t, ok := s.earliest(target)
		if !ok {
			break
		}

		s.now = t.due
		if t.every > 0 {
			t.due += t.every
		} else {
			delete(s.tasks, t.id)
		}
		t.fn()
	}

	s.now = target
}

func (s *Scheduler) earliest(limit time.Duration) (*task, bool) {
	due := lo.Filter(lo.Values(s.tasks), func(t *task, _ int) bool {
		return t.due <= limit
	})
	if len(due) == 0 {
		return nil, false
	}

	return lo.MinBy(due, func(a, b *task) bool {
		if a.due != b.due {
			return a.due < b.due
		}
		return a.id < b.id
	}), true
}

// Reset cancels every pending task. Game time keeps its value.
func (s *Scheduler) Reset() {
	clear(s.tasks)
}

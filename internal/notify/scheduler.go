package notify

import (
	"sort"
	"time"
)

// Task is a handle to scheduled work.
type Task interface {
	// Cancel prevents the task from running. It is safe to call after the
	// task has already run or been canceled.
	Cancel()
}

// Scheduler runs fn once after delay.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Task
}

// TickScheduler is a Scheduler whose tasks run only when Advance is called,
// so callbacks execute on the caller's goroutine. The UI advances it from its
// frame tick.
type TickScheduler struct {
	now   func() time.Time
	seq   int
	tasks []*tickTask
}

type tickTask struct {
	due      time.Time
	seq      int
	fn       func()
	canceled bool
}

func (t *tickTask) Cancel() {
	t.canceled = true
}

// NewTickScheduler returns a scheduler measuring delays from now. A nil
// clock uses time.Now.
func NewTickScheduler(now func() time.Time) *TickScheduler {
	if now == nil {
		now = time.Now
	}
	return &TickScheduler{now: now}
}

func (s *TickScheduler) Schedule(delay time.Duration, fn func()) Task {
	s.seq++
	task := &tickTask{due: s.now().Add(delay), seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, task)
	return task
}

// Advance runs every task due at or before now, earliest first, and returns
// how many ran. Canceled tasks are discarded without running.
func (s *TickScheduler) Advance(now time.Time) int {
	var due []*tickTask
	pending := s.tasks[:0]
	for _, task := range s.tasks {
		switch {
		case task.canceled:
		case !task.due.After(now):
			due = append(due, task)
		default:
			pending = append(pending, task)
		}
	}
	for i := len(pending); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = pending

	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})
	ran := 0
	for _, task := range due {
		// An earlier callback in this batch may cancel a later task.
		if task.canceled || task.fn == nil {
			continue
		}
		task.canceled = true
		task.fn()
		ran++
	}
	return ran
}

// Pending reports how many tasks are waiting and not canceled.
func (s *TickScheduler) Pending() int {
	n := 0
	for _, task := range s.tasks {
		if !task.canceled {
			n++
		}
	}
	return n
}

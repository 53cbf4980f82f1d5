package htmltree

import (
	"slices"
	"sort"
	"time"
)

type timer struct {
	id int
	at time.Duration
	fn func()
}

// scheduler is a single-threaded microtask queue plus timers on a
// virtual clock. Time only moves in advance.
type scheduler struct {
	depth  int
	queue  []func()
	timers []timer
	now    time.Duration
	nextID int
}

// Schedule queues fn to run when the current Act returns, or, outside
// Act, on the next flush.
func (s *scheduler) Schedule(fn func()) {
	s.queue = append(s.queue, fn)
}

// SetTimeout registers fn to run once the virtual clock has advanced by
// d. Timers with the same deadline run in registration order. It returns
// an id for ClearTimeout.
func (s *scheduler) SetTimeout(d time.Duration, fn func()) int {
	s.nextID++
	t := timer{id: s.nextID, at: s.now + d, fn: fn}
	i := sort.Search(len(s.timers), func(i int) bool {
		return s.timers[i].at > t.at
	})
	s.timers = slices.Insert(s.timers, i, t)
	return t.id
}

// ClearTimeout cancels a pending timer. Unknown ids are ignored.
func (s *scheduler) ClearTimeout(id int) {
	s.timers = slices.DeleteFunc(s.timers, func(t timer) bool {
		return t.id == id
	})
}

// Now returns the virtual time elapsed since the document was created.
func (s *scheduler) Now() time.Duration {
	return s.now
}

// Pending reports the number of queued microtasks and timers.
func (s *scheduler) Pending() (microtasks, timers int) {
	return len(s.queue), len(s.timers)
}

func (s *scheduler) flush() {
	for len(s.queue) > 0 {
		fn := s.queue[0]
		s.queue = s.queue[1:]
		fn()
	}
}

func (s *scheduler) advance(d time.Duration) {
	target := s.now + d
	for len(s.timers) > 0 && s.timers[0].at <= target {
		t := s.timers[0]
		s.timers = s.timers[1:]
		s.now = t.at
		tracer().Debugf("timer %d fired at %v", t.id, t.at)
		t.fn()
		s.flush()
	}
	s.now = target
}

func (s *scheduler) reset() {
	s.queue = nil
	s.timers = nil
}

// Package iteration runs one cancellable network action per bookmark, one node
// per scheduler turn, for link checking and icon refresh.
package iteration

import (
	"context"
	"sync"
)

// Task is one unit of work run on the scheduler's flow
type Task func()

// Scheduler is an explicit task queue. Tasks are posted from any goroutine and
// run one per Step on the goroutine that owns the document. Async work started
// through Async counts as outstanding until its completion is posted.
type Scheduler struct {
	mu          sync.Mutex
	queue       []Task
	outstanding int
	ready       chan struct{}
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{ready: make(chan struct{}, 1)}
}

// Post queues t to run on a later Step
func (s *Scheduler) Post(t Task) {
	s.mu.Lock()
	s.queue = append(s.queue, t)
	s.mu.Unlock()
	s.signal()
}

// Async registers one piece of outstanding work and returns the function that
// posts its completion. Only the first call of the returned function has effect.
func (s *Scheduler) Async() (complete func(Task)) {
	s.mu.Lock()
	s.outstanding++
	s.mu.Unlock()

	var once sync.Once
	return func(t Task) {
		once.Do(func() {
			s.mu.Lock()
			s.queue = append(s.queue, t)
			s.outstanding--
			s.mu.Unlock()
			s.signal()
		})
	}
}

func (s *Scheduler) signal() {
	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// Ready is signalled whenever a task is posted. A host event loop waits on it
// and then calls Step until it returns false.
func (s *Scheduler) Ready() <-chan struct{} {
	return s.ready
}

// Step runs the oldest queued task and reports whether there was one
func (s *Scheduler) Step() bool {
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.mu.Unlock()
		return false
	}
	t := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]
	s.mu.Unlock()

	t()
	return true
}

// Idle reports whether nothing is queued and no async work is outstanding
func (s *Scheduler) Idle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue) == 0 && s.outstanding == 0
}

// RunUntilIdle steps tasks on the calling goroutine until the scheduler is
// idle or ctx is done.
func (s *Scheduler) RunUntilIdle(ctx context.Context) error {
	for {
		for s.Step() {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if s.Idle() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.ready:
		}
	}
}

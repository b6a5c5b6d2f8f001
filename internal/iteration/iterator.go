package iteration

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookmarked/internal/domain"
	"bookmarked/internal/ports"
)

// State is the phase of an iterator
type State int

const (
	StateIdle State = iota
	StateDispatch
	StateBusy
	StateCompleted
	StateExhausted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDispatch:
		return "dispatch"
	case StateBusy:
		return "busy"
	case StateCompleted:
		return "completed"
	case StateExhausted:
		return "exhausted"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Source supplies the live document, so detached targets can be skipped
type Source interface {
	Document() *domain.Document
}

// Iterator walks a list of target nodes, one per scheduler turn, keeping at
// most one fetch outstanding. A failed fetch becomes status text and the walk
// goes on.
type Iterator struct {
	id      uuid.UUID
	action  Action
	fetcher ports.Fetcher
	sched   *Scheduler
	board   *StatusBoard
	src     Source
	timeout time.Duration
	logger  *zap.Logger
	onDone  func(*Iterator)

	targets []*domain.Node
	next    int
	state   State

	current *domain.Node
	saved   Saved
	cancel  context.CancelFunc

	done, failed, skipped int
}

// ID identifies the iterator within its holder
func (it *Iterator) ID() uuid.UUID {
	return it.id
}

// State returns the current phase
func (it *Iterator) State() State {
	return it.state
}

// Progress returns how many targets have been completed or skipped out of
// the total. A target with its fetch still outstanding is not counted.
func (it *Iterator) Progress() (processed, total int) {
	return it.done + it.skipped, len(it.targets)
}

// Stats returns completed, failed and skipped counts
func (it *Iterator) Stats() (completed, failed, skipped int) {
	return it.done, it.failed, it.skipped
}

// Current returns the node with a fetch outstanding, or nil
func (it *Iterator) Current() *domain.Node {
	return it.current
}

func (it *Iterator) start() {
	it.state = StateIdle
	it.sched.Post(it.tick)
}

// tick dispatches the next target. The following dispatch is always posted as
// a new task, so a cancel issued in between takes effect before it runs.
func (it *Iterator) tick() {
	if it.state == StateCancelled || it.state == StateExhausted || it.state == StateBusy {
		return
	}
	if it.next >= len(it.targets) {
		it.state = StateExhausted
		it.logger.Debug("iterator exhausted",
			zap.Stringer("id", it.id),
			zap.Int("completed", it.done),
			zap.Int("failed", it.failed),
			zap.Int("skipped", it.skipped),
		)
		it.finish()
		return
	}

	it.state = StateDispatch
	n := it.targets[it.next]
	it.next++

	if !it.src.Document().Contains(n) || !it.action.Applicable(n) {
		it.skipped++
		it.state = StateIdle
		it.sched.Post(it.tick)
		return
	}

	it.current = n
	it.saved = it.board.Snapshot(n)
	it.board.Set(n, it.action.Pending())

	ctx, cancel := context.WithTimeout(context.Background(), it.timeout)
	it.cancel = cancel
	it.state = StateBusy

	complete := it.sched.Async()
	it.logger.Debug("dispatch", zap.Stringer("id", it.id), zap.String("url", n.URL))
	it.fetcher.Fetch(ctx, n, func(r ports.FetchResult) {
		complete(func() { it.completed(n, r) })
	})
}

// completed runs on the scheduler's flow. A completion that arrives after the
// iterator was cancelled finds it no longer busy with n and is dropped.
func (it *Iterator) completed(n *domain.Node, r ports.FetchResult) {
	if it.state != StateBusy || it.current != n {
		return
	}
	it.cancel()
	it.cancel = nil
	it.current = nil

	if r.Err != nil {
		it.failed++
		it.logger.Debug("fetch failed", zap.Stringer("id", it.id), zap.String("url", n.URL), zap.Error(r.Err))
	}
	it.done++
	it.board.Set(n, it.action.Complete(n, r))

	it.state = StateCompleted
	it.sched.Post(it.tick)
}

// Cancel stops the iterator. A fetch in flight is cancelled and its node's
// status is put back as it was before the dispatch.
func (it *Iterator) Cancel() {
	if it.state == StateCancelled || it.state == StateExhausted {
		return
	}
	if it.state == StateBusy {
		it.cancel()
		it.cancel = nil
		it.board.Restore(it.current, it.saved)
		it.current = nil
	}
	it.state = StateCancelled
	it.logger.Debug("iterator cancelled", zap.Stringer("id", it.id))
	it.finish()
}

func (it *Iterator) finish() {
	if it.onDone != nil {
		it.onDone(it)
	}
}

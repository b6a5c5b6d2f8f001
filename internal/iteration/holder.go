package iteration

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookmarked/internal/domain"
	"bookmarked/internal/ports"
)

// DefaultFetchTimeout bounds one fetch when no timeout is configured
const DefaultFetchTimeout = 10 * time.Second

// HolderOption configures a Holder
type HolderOption func(*Holder)

// WithTimeout bounds each fetch. A timed-out fetch is reported as a failure.
func WithTimeout(d time.Duration) HolderOption {
	return func(h *Holder) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithLogger sets the logger handed to every iterator
func WithLogger(l *zap.Logger) HolderOption {
	return func(h *Holder) {
		if l != nil {
			h.logger = l
		}
	}
}

// Holder tracks the live iterators of one kind so they can all be cancelled
// at once. Iterators leave the registry when exhausted or cancelled.
type Holder struct {
	action  Action
	fetcher ports.Fetcher
	sched   *Scheduler
	board   *StatusBoard
	src     Source
	timeout time.Duration
	logger  *zap.Logger

	live  map[uuid.UUID]*Iterator
	order []uuid.UUID
}

// NewHolder creates a holder for iterators running action through fetcher
func NewHolder(action Action, fetcher ports.Fetcher, sched *Scheduler, board *StatusBoard, src Source, opts ...HolderOption) *Holder {
	h := &Holder{
		action:  action,
		fetcher: fetcher,
		sched:   sched,
		board:   board,
		src:     src,
		timeout: DefaultFetchTimeout,
		logger:  zap.NewNop(),
		live:    make(map[uuid.UUID]*Iterator),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name is the action name, e.g. for a status line
func (h *Holder) Name() string {
	return h.action.Name()
}

// Start registers and schedules a new iterator over targets
func (h *Holder) Start(targets []*domain.Node) *Iterator {
	it := &Iterator{
		id:      uuid.New(),
		action:  h.action,
		fetcher: h.fetcher,
		sched:   h.sched,
		board:   h.board,
		src:     h.src,
		timeout: h.timeout,
		targets: targets,
		onDone:  h.remove,
	}
	it.logger = h.logger.With(zap.String("action", h.action.Name()), zap.Stringer("iterator", it.id))

	h.live[it.id] = it
	h.order = append(h.order, it.id)
	h.logger.Info("iterator started",
		zap.String("action", h.action.Name()),
		zap.Stringer("id", it.id),
		zap.Int("targets", len(targets)),
	)
	it.start()
	return it
}

// Count returns the number of live iterators
func (h *Holder) Count() int {
	return len(h.live)
}

// Iterators returns the live iterators in start order
func (h *Holder) Iterators() []*Iterator {
	out := make([]*Iterator, 0, len(h.live))
	for _, id := range h.order {
		if it, ok := h.live[id]; ok {
			out = append(out, it)
		}
	}
	return out
}

// CancelAll cancels every live iterator
func (h *Holder) CancelAll() {
	for _, it := range h.Iterators() {
		it.Cancel()
	}
}

func (h *Holder) remove(it *Iterator) {
	if _, ok := h.live[it.id]; !ok {
		return
	}
	delete(h.live, it.id)
	for i, id := range h.order {
		if id == it.id {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

package ports

import (
	"context"

	"bookmarked/internal/domain"
)

// FetchResult is the single completion of one per-node fetch
type FetchResult struct {
	// Err is set when the fetch failed or timed out
	Err error

	// Status is a short human-readable outcome, e.g. "200 OK"
	Status string

	// Payload carries kind-specific data, e.g. the discovered icon URL
	Payload string
}

// Fetcher performs one asynchronous network action for a node.
// Fetch must return promptly and call done exactly once, from any goroutine.
// Cancelling ctx must abort the action.
type Fetcher interface {
	Fetch(ctx context.Context, node *domain.Node, done func(FetchResult))
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc func(ctx context.Context, node *domain.Node, done func(FetchResult))

func (f FetcherFunc) Fetch(ctx context.Context, node *domain.Node, done func(FetchResult)) {
	f(ctx, node, done)
}

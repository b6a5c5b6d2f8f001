package web

import (
	"context"
	"errors"
	"net/http"

	"bookmarked/internal/domain"
	"bookmarked/internal/ports"
)

// CheckLink asks whether url still answers. Servers that refuse HEAD are
// retried with GET. The status is the server's status line when there is one.
func (c *Client) CheckLink(ctx context.Context, url string) (string, error) {
	resp, err := c.do(ctx, http.MethodHead, url, 0)
	var se *StatusError
	if errors.As(err, &se) && (se.Code == http.StatusMethodNotAllowed || se.Code == http.StatusNotImplemented) {
		resp, err = c.do(ctx, http.MethodGet, url, 0)
	}
	if resp != nil {
		return resp.status, err
	}
	return "", err
}

// LinkChecker is the Fetcher behind the link check iterator
type LinkChecker struct {
	Client *Client
}

var _ ports.Fetcher = LinkChecker{}

func (l LinkChecker) Fetch(ctx context.Context, node *domain.Node, done func(ports.FetchResult)) {
	go func() {
		status, err := l.Client.CheckLink(ctx, node.URL)
		done(ports.FetchResult{Status: status, Err: err})
	}()
}

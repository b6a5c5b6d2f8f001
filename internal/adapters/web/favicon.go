package web

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"bookmarked/internal/domain"
	"bookmarked/internal/ports"
)

// only the head of a page is searched for icon links
const pageLimit = 512 << 10

// FindIcon returns the absolute URL of the icon for the page at pageURL, or ""
// when the page declares none and the site has no /favicon.ico.
func (c *Client) FindIcon(ctx context.Context, pageURL string) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, pageURL, pageLimit)
	if err != nil {
		return "", err
	}

	if href := iconHref(resp.body); href != "" {
		ref, err := url.Parse(href)
		if err == nil {
			return resp.url.ResolveReference(ref).String(), nil
		}
	}

	fallback := resp.url.ResolveReference(&url.URL{Path: "/favicon.ico"}).String()
	_, err = c.do(ctx, http.MethodHead, fallback, 0)
	var se *StatusError
	if errors.As(err, &se) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return fallback, nil
}

// iconHref scans the document head for <link rel="icon">, preferring it over
// apple-touch variants.
func iconHref(page []byte) string {
	best, bestRank := "", 0
	z := html.NewTokenizer(bytes.NewReader(page))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return best
		case html.StartTagToken, html.SelfClosingTagToken:
			t := z.Token()
			if t.DataAtom == atom.Body {
				return best
			}
			if t.DataAtom != atom.Link {
				continue
			}
			var rel, href string
			for _, a := range t.Attr {
				switch a.Key {
				case "rel":
					rel = strings.ToLower(a.Val)
				case "href":
					href = strings.TrimSpace(a.Val)
				}
			}
			if href == "" {
				continue
			}
			if r := iconRank(rel); r > bestRank {
				best, bestRank = href, r
			}
		}
	}
}

func iconRank(rel string) int {
	rank := 0
	for _, f := range strings.Fields(rel) {
		switch f {
		case "icon":
			rank = max(rank, 3)
		case "shortcut":
			rank = max(rank, 1)
		case "apple-touch-icon", "apple-touch-icon-precomposed":
			rank = max(rank, 2)
		}
	}
	if rank == 1 {
		// "shortcut" alone is not an icon
		return 0
	}
	return rank
}

// IconFinder is the Fetcher behind the icon refresh iterator
type IconFinder struct {
	Client *Client
}

var _ ports.Fetcher = IconFinder{}

func (f IconFinder) Fetch(ctx context.Context, node *domain.Node, done func(ports.FetchResult)) {
	go func() {
		icon, err := f.Client.FindIcon(ctx, node.URL)
		res := ports.FetchResult{Payload: icon, Err: err}
		if icon != "" {
			res.Status = "found"
		}
		done(res)
	}()
}

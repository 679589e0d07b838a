package searchapi

import (
	"context"
	"net/http"
)

const (
	// PerPage is the largest page size the search endpoint allows.
	PerPage = 100
	// MaxResults is the number of results the API serves for one query,
	// whatever total_count it reports. Asking for more fails the request.
	MaxResults = 1000

	AcceptTextMatch = "application/vnd.github.v3.text-match+json"
)

// Client issues a single search page request.
type Client interface {
	SearchCode(ctx context.Context, request Request) (*Response, error)
}

type Request struct {
	Query   string
	PerPage int
	Page    int
}

// Response is a successful page whose body has been read but not decoded yet,
// so callers can act on the headers first.
type Response struct {
	Page    int
	Header  http.Header
	body    []byte
	decoder decoder
}

type decoder interface {
	decode(page int, body []byte) (*Result, error)
}

func (r *Response) Decode() (*Result, error) {
	return r.decoder.decode(r.Page, r.body)
}

package osu

import (
	"context"
	"fmt"
	"strings"
)

// UserAgent is sent with every request.
const UserAgent = "osu-stats (+https://github.com/s0up4200/osu-stats)"

// Fetcher performs a single GET and returns the fully buffered body.
//
// Implementations must validate uri before dispatch, report every failure
// as an *Error, make exactly one attempt, and be safe for concurrent use.
// Cancelling ctx must abort the request and release its connection.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, uri string) ([]byte, error)

// Fetch calls fn(ctx, uri).
func (fn FetcherFunc) Fetch(ctx context.Context, uri string) ([]byte, error) {
	return fn(ctx, uri)
}

// statusError builds the transport error for a non-2xx response, using the
// API's {"error": "..."} message when the body carries one.
func statusError(code int, body []byte) error {
	e := &Error{Kind: KindTransport, StatusCode: code}
	if apiErr, ok := apiError(body).(*Error); ok && apiErr != nil {
		e.Message = apiErr.Message
		return e
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	e.Message = msg
	return e
}

func transportError(op string, err error) error {
	return &Error{Kind: KindTransport, Err: fmt.Errorf("%s: %w", op, err)}
}

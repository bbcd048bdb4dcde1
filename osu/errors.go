package osu

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an Error.
type Kind int

const (
	KindUnknown Kind = iota
	// KindTransport covers network failures and non-2xx responses.
	KindTransport
	// KindAPI is an error payload ({"error": "..."}) returned with a 2xx status.
	KindAPI
	// KindDecode is a malformed payload or a field that failed to parse.
	KindDecode
	// KindInvalidEnumCode is a field whose code is missing from its enum table.
	KindInvalidEnumCode
	// KindInvalidURI is an assembled request URI that failed validation.
	KindInvalidURI
	// KindNotFound is an empty result for a single-record endpoint.
	KindNotFound
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAPI:
		return "api"
	case KindDecode:
		return "decode"
	case KindInvalidEnumCode:
		return "invalid enum code"
	case KindInvalidURI:
		return "invalid uri"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrTransport       = errors.New("osu: transport error")
	ErrAPI             = errors.New("osu: api error")
	ErrDecode          = errors.New("osu: decode error")
	ErrInvalidEnumCode = errors.New("osu: invalid enum code")
	ErrInvalidURI      = errors.New("osu: invalid uri")
	ErrNotFound        = errors.New("osu: not found")

	// ErrMissingAPIKey is returned before any request is made.
	ErrMissingAPIKey = errors.New("osu: API key is required")
)

var kindSentinels = map[Kind]error{
	KindTransport:       ErrTransport,
	KindAPI:             ErrAPI,
	KindDecode:          ErrDecode,
	KindInvalidEnumCode: ErrInvalidEnumCode,
	KindInvalidURI:      ErrInvalidURI,
	KindNotFound:        ErrNotFound,
}

// Error is the single error type returned by the client.
type Error struct {
	Kind Kind
	// Endpoint is the API method, e.g. "get_beatmaps". Empty when unknown.
	Endpoint string
	// Field and Value identify the offending JSON field for decode and enum errors.
	Field string
	Value string
	// StatusCode is set for transport errors caused by an HTTP response.
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("osu")
	if e.Endpoint != "" {
		b.WriteString(" ")
		b.WriteString(e.Endpoint)
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.String())

	switch {
	case e.Field != "":
		fmt.Fprintf(&b, ": field %q value %q", e.Field, e.Value)
	case e.StatusCode != 0:
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	case e.Kind == KindInvalidURI && e.Value != "":
		fmt.Fprintf(&b, ": %q", e.Value)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}

// IsNotFound checks if the error indicates a missing resource
func (e *Error) IsNotFound() bool {
	return e.Kind == KindNotFound || e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// withEndpoint stamps the endpoint onto an *Error produced below the client.
func withEndpoint(err error, endpoint string) error {
	var e *Error
	if errors.As(err, &e) && e.Endpoint == "" {
		e.Endpoint = endpoint
	}
	return err
}

func decodeError(field, value string, err error) *Error {
	return &Error{Kind: KindDecode, Field: field, Value: value, Err: err}
}

func enumError(field, value string) *Error {
	return &Error{Kind: KindInvalidEnumCode, Field: field, Value: value}
}

package osu

import "net/http"

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL  string
	fetcher  Fetcher
	observer Observer
}

// WithBaseURL points the client at a different API root, such as a test
// server or a mirror.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithFetcher sets the transport adapter used for every request.
func WithFetcher(f Fetcher) Option {
	return func(o *clientOptions) {
		if f != nil {
			o.fetcher = f
		}
	}
}

// WithHTTPClient is shorthand for WithFetcher(NewHTTPFetcher(c)).
func WithHTTPClient(c *http.Client) Option {
	return WithFetcher(NewHTTPFetcher(c))
}

// WithObserver registers an observer for request events.
func WithObserver(obs Observer) Option {
	return func(o *clientOptions) {
		if obs != nil {
			o.observer = obs
		}
	}
}

package osu

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fetchers returns one of each adapter so every transport runs the same cases.
func fetchers() map[string]Fetcher {
	return map[string]Fetcher{
		"nethttp":  NewHTTPFetcher(nil),
		"fasthttp": NewFastHTTPFetcher(nil),
	}
}

func TestFetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/get_user", r.URL.Path)
		assert.Equal(t, "KEY", r.URL.Query().Get("k"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	for name, f := range fetchers() {
		t.Run(name, func(t *testing.T) {
			body, err := f.Fetch(context.Background(), server.URL+"/api/get_user?k=KEY&u=2")
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(body))
		})
	}
}

func TestFetchStatusError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantUnauth  bool
	}{
		{"unauthorized with api message", http.StatusUnauthorized, `{"error":"Please provide a valid API key."}`, "Please provide a valid API key.", true},
		{"server error", http.StatusBadGateway, "bad gateway", "bad gateway", false},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			w.Write([]byte(tt.body))
		}))

		for name, f := range fetchers() {
			t.Run(tt.name+"/"+name, func(t *testing.T) {
				_, err := f.Fetch(context.Background(), server.URL+"/get_user?k=KEY")
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrTransport)

				var e *Error
				require.True(t, errors.As(err, &e))
				assert.Equal(t, tt.status, e.StatusCode)
				assert.Equal(t, tt.wantMessage, e.Message)
				assert.Equal(t, tt.wantUnauth, e.IsUnauthorized())
			})
		}
		server.Close()
	}
}

func TestFetchConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	for name, f := range fetchers() {
		t.Run(name, func(t *testing.T) {
			_, err := f.Fetch(context.Background(), url+"/get_user?k=secret")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTransport)
			assert.NotContains(t, err.Error(), "secret")
		})
	}
}

func TestFetchInvalidURI(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	for name, f := range fetchers() {
		t.Run(name, func(t *testing.T) {
			_, err := f.Fetch(context.Background(), server.URL+"/get_user?k=KEY&u=foo bar&type=string")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidURI)
		})
	}
	assert.Zero(t, hits.Load())
}

func TestFetchCancel(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	for name, f := range fetchers() {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			time.AfterFunc(50*time.Millisecond, cancel)

			start := time.Now()
			_, err := f.Fetch(ctx, server.URL+"/get_user?k=KEY")
			require.Error(t, err)
			assert.ErrorIs(t, err, context.Canceled)
			assert.ErrorIs(t, err, ErrTransport)
			assert.Less(t, time.Since(start), 5*time.Second)
		})
	}
}

func TestFetchCancelReleasesConnection(t *testing.T) {
	for name, f := range fetchers() {
		t.Run(name, func(t *testing.T) {
			released := make(chan struct{})
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				<-r.Context().Done()
				close(released)
			}))
			defer server.Close()

			ctx, cancel := context.WithCancel(context.Background())
			time.AfterFunc(50*time.Millisecond, cancel)

			_, err := f.Fetch(ctx, server.URL+"/get_user?k=KEY")
			assert.ErrorIs(t, err, context.Canceled)

			select {
			case <-released:
			case <-time.After(2 * time.Second):
				t.Fatal("connection still open after cancel")
			}
		})
	}
}

func TestFetchFollowsRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/old/get_user":
			http.Redirect(w, r, "/api/get_user?"+r.URL.RawQuery, http.StatusMovedPermanently)
		case "/api/get_user":
			assert.Equal(t, "KEY", r.URL.Query().Get("k"))
			w.Write([]byte(`[]`))
		case "/loop":
			http.Redirect(w, r, "/loop", http.StatusFound)
		}
	}))
	defer server.Close()

	for name, f := range fetchers() {
		t.Run(name, func(t *testing.T) {
			body, err := f.Fetch(context.Background(), server.URL+"/old/get_user?k=KEY&u=2")
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(body))

			_, err = f.Fetch(context.Background(), server.URL+"/loop")
			assert.ErrorIs(t, err, ErrTransport)
		})
	}
}

func TestFetchAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, f := range fetchers() {
		t.Run(name, func(t *testing.T) {
			_, err := f.Fetch(ctx, "http://127.0.0.1:1/get_user?k=KEY")
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

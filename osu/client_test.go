package osu

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	starts []string
	ends   []error
}

func (o *recordingObserver) OnRequestStart(endpoint string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.starts = append(o.starts, endpoint)
}

func (o *recordingObserver) OnRequestEnd(endpoint string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ends = append(o.ends, err)
}

// newTestClient serves body for every request and records the raw query
// strings it receives.
func newTestClient(t *testing.T, body string) (*Client, func() []string) {
	t.Helper()

	var mu sync.Mutex
	queries := []string{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		queries = append(queries, r.URL.Path+"?"+r.URL.RawQuery)
		mu.Unlock()
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	received := func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), queries...)
	}
	return NewClient(zerolog.Nop(), WithBaseURL(server.URL+"/api")), received
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(zerolog.Nop())
	assert.Equal(t, DefaultBaseURL, client.BaseURL())
	assert.IsType(t, &HTTPFetcher{}, client.fetcher)
	assert.IsType(t, NoopObserver{}, client.observer)
}

func TestClientOptions(t *testing.T) {
	t.Run("with base url", func(t *testing.T) {
		client := NewClient(zerolog.Nop(), WithBaseURL("http://localhost:8080/api/"))
		assert.Equal(t, "http://localhost:8080/api", client.BaseURL())
	})

	t.Run("with fasthttp fetcher", func(t *testing.T) {
		f := NewFastHTTPFetcher(nil)
		client := NewClient(zerolog.Nop(), WithFetcher(f))
		assert.Equal(t, f, client.fetcher)
	})

	t.Run("with custom http client", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client := NewClient(zerolog.Nop(), WithHTTPClient(custom))
		require.IsType(t, &HTTPFetcher{}, client.fetcher)
		assert.Equal(t, custom, client.fetcher.(*HTTPFetcher).client)
	})

	t.Run("nil options are ignored", func(t *testing.T) {
		client := NewClient(zerolog.Nop(), WithFetcher(nil), WithObserver(nil), WithBaseURL(""))
		assert.Equal(t, DefaultBaseURL, client.BaseURL())
		assert.NotNil(t, client.fetcher)
		assert.NotNil(t, client.observer)
	})
}

func TestGetScoresQuery(t *testing.T) {
	client, queries := newTestClient(t, "["+gameScoreJSON+"]")

	scores, err := client.GetScores(context.Background(), "KEY", 774965, func(r *ScoresRequest) {
		r.Limit(10)
	})
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "Cookiezi", scores[0].Username)

	require.Len(t, queries(), 1)
	q := queries()[0]
	assert.True(t, strings.HasPrefix(q, "/api/get_scores?k=KEY&b=774965"), q)
	assert.Contains(t, q, "&limit=10")
}

func TestEndpointQueries(t *testing.T) {
	tests := []struct {
		name string
		body string
		call func(c *Client) error
		want string
	}{
		{
			name: "beatmaps",
			body: "[" + beatmapJSON + "]",
			call: func(c *Client) error {
				_, err := c.GetBeatmaps(context.Background(), "KEY", func(r *BeatmapsRequest) {
					r.BeatmapSetID(93398).Mode(PlayModeTaiko).IncludeConverted(true)
				})
				return err
			},
			want: "/api/get_beatmaps?k=KEY&a=1&m=1&s=93398",
		},
		{
			name: "match",
			body: matchJSON,
			call: func(c *Client) error {
				_, err := c.GetMatch(context.Background(), "KEY", 1936471)
				return err
			},
			want: "/api/get_match?k=KEY&mp=1936471",
		},
		{
			name: "user",
			body: userJSON,
			call: func(c *Client) error {
				_, err := c.GetUser(context.Background(), "KEY", ByName("Cookiezi"), func(r *UserRequest) {
					r.EventDays(5)
				})
				return err
			},
			want: "/api/get_user?k=KEY&event_days=5&type=string&u=Cookiezi",
		},
		{
			name: "user best",
			body: "[" + strings.Replace(performanceJSON, "%s", "1", 1) + "]",
			call: func(c *Client) error {
				_, err := c.GetUserBest(context.Background(), "KEY", ByID(124493), func(r *UserBestRequest) {
					r.Limit(5)
				})
				return err
			},
			want: "/api/get_user_best?k=KEY&limit=5&type=id&u=124493",
		},
		{
			name: "user recent",
			body: "[" + recentPlayJSON + "]",
			call: func(c *Client) error {
				_, err := c.GetUserRecent(context.Background(), "KEY", ByID(124493))
				return err
			},
			want: "/api/get_user_recent?k=KEY&type=id&u=124493",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, queries := newTestClient(t, tt.body)
			require.NoError(t, tt.call(client))
			require.Len(t, queries(), 1)
			assert.Equal(t, tt.want, queries()[0])
		})
	}
}

func TestRequiredUserOverridesBuilder(t *testing.T) {
	client, queries := newTestClient(t, userJSON)

	_, err := client.GetUser(context.Background(), "KEY", ByID(124493), func(r *UserRequest) {
		r.User(ByName("someone else"))
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/get_user?k=KEY&type=id&u=124493", queries()[0])
}

func TestMissingAPIKey(t *testing.T) {
	client, queries := newTestClient(t, `[]`)

	_, err := client.GetBeatmaps(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Empty(t, queries())
}

func TestUsernameWithSpaceIsInvalidURI(t *testing.T) {
	client, queries := newTestClient(t, userJSON)

	_, err := client.GetUser(context.Background(), "KEY", ByName("foo bar"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidURI)
	assert.Empty(t, queries())

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, EndpointUser, e.Endpoint)
}

func TestErrorsCarryEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		call     func(c *Client) error
		endpoint string
		kind     Kind
	}{
		{
			name: "match not found",
			body: `{"match":0,"games":[]}`,
			call: func(c *Client) error {
				_, err := c.GetMatch(context.Background(), "KEY", 1)
				return err
			},
			endpoint: EndpointMatch,
			kind:     KindNotFound,
		},
		{
			name: "user not found",
			body: `[]`,
			call: func(c *Client) error {
				_, err := c.GetUser(context.Background(), "KEY", ByID(1))
				return err
			},
			endpoint: EndpointUser,
			kind:     KindNotFound,
		},
		{
			name: "api error payload",
			body: `{"error":"Please provide a valid API key."}`,
			call: func(c *Client) error {
				_, err := c.GetBeatmaps(context.Background(), "KEY")
				return err
			},
			endpoint: EndpointBeatmaps,
			kind:     KindAPI,
		},
		{
			name: "bad enum",
			body: "[" + strings.Replace(beatmapJSON, `"genre_id": "2"`, `"genre_id": "99"`, 1) + "]",
			call: func(c *Client) error {
				_, err := c.GetBeatmaps(context.Background(), "KEY")
				return err
			},
			endpoint: EndpointBeatmaps,
			kind:     KindInvalidEnumCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.body)
			err := tt.call(client)
			require.Error(t, err)

			var e *Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.endpoint, e.Endpoint)
		})
	}
}

func TestUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Please provide a valid API key."}`))
	}))
	defer server.Close()

	client := NewClient(zerolog.Nop(), WithBaseURL(server.URL))
	_, err := client.GetUserBest(context.Background(), "bad", ByID(2))
	require.Error(t, err)

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, KindTransport, e.Kind)
	assert.True(t, e.IsUnauthorized())
	assert.Equal(t, "Please provide a valid API key.", e.Message)
}

func TestForeignFetcherErrorsAreTransport(t *testing.T) {
	client := NewClient(zerolog.Nop(), WithFetcher(FetcherFunc(func(ctx context.Context, uri string) ([]byte, error) {
		return nil, errors.New("boom")
	})))

	_, err := client.GetBeatmaps(context.Background(), "KEY")
	assert.ErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), "boom")
}

func TestObserverNotified(t *testing.T) {
	obs := &recordingObserver{}
	body := "[" + beatmapJSON + "]"
	client := NewClient(zerolog.Nop(), WithObserver(obs), WithFetcher(FetcherFunc(func(ctx context.Context, uri string) ([]byte, error) {
		if strings.Contains(uri, "get_scores") {
			return []byte(`[{"bad":"payload"}]`), nil
		}
		return []byte(body), nil
	})))

	_, err := client.GetBeatmaps(context.Background(), "KEY")
	require.NoError(t, err)
	_, err = client.GetScores(context.Background(), "KEY", 1)
	require.Error(t, err)

	assert.Equal(t, []string{EndpointBeatmaps, EndpointScores}, obs.starts)
	require.Len(t, obs.ends, 2)
	assert.NoError(t, obs.ends[0])
	assert.ErrorIs(t, obs.ends[1], ErrDecode)
}

func TestAsyncRequest(t *testing.T) {
	client, _ := newTestClient(t, userJSON)

	future := client.GetUserAsync(context.Background(), "KEY", ByName("Cookiezi"))
	user, err := future.Wait()
	require.NoError(t, err)
	assert.Equal(t, uint64(124493), user.UserID)

	select {
	case <-future.Done():
	default:
		t.Fatal("Done not closed after Wait returned")
	}
}

func TestAsyncCancel(t *testing.T) {
	for name, fetcher := range fetchers() {
		t.Run(name, func(t *testing.T) {
			started := make(chan struct{})
			release := make(chan struct{})
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				close(started)
				select {
				case <-release:
				case <-r.Context().Done():
				}
			}))
			defer server.Close()
			defer close(release)

			client := NewClient(zerolog.Nop(), WithBaseURL(server.URL), WithFetcher(fetcher))
			future := client.GetBeatmapsAsync(context.Background(), "KEY")

			<-started
			future.Cancel()

			select {
			case <-future.Done():
			case <-time.After(5 * time.Second):
				t.Fatal("future did not complete after Cancel")
			}

			maps, err := future.Wait()
			assert.Nil(t, maps)
			assert.ErrorIs(t, err, context.Canceled)
			assert.ErrorIs(t, err, ErrTransport)
		})
	}
}

func TestConcurrentRequests(t *testing.T) {
	client, queries := newTestClient(t, "["+beatmapJSON+"]")

	futures := make([]*Future[[]Beatmap], 10)
	for i := range futures {
		i := i
		futures[i] = client.GetBeatmapsAsync(context.Background(), "KEY", func(r *BeatmapsRequest) {
			r.Limit(uint16(i + 1))
		})
	}
	for _, f := range futures {
		maps, err := f.Wait()
		require.NoError(t, err)
		assert.Len(t, maps, 1)
	}
	assert.Len(t, queries(), 10)
}

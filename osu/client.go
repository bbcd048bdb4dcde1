package osu

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client represents an osu! API v1 client. It holds no per-request state and
// is safe for concurrent use.
type Client struct {
	baseURL  string
	fetcher  Fetcher
	observer Observer
	logger   zerolog.Logger
}

// NewClient creates a new osu! client. Without options it talks to
// DefaultBaseURL over net/http.
func NewClient(logger zerolog.Logger, opts ...Option) *Client {
	o := clientOptions{
		baseURL:  DefaultBaseURL,
		observer: NoopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fetcher == nil {
		o.fetcher = NewHTTPFetcher(nil)
	}

	return &Client{
		baseURL:  strings.TrimRight(o.baseURL, "/"),
		fetcher:  o.fetcher,
		observer: o.observer,
		logger:   logger,
	}
}

// BaseURL returns the API root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetBeatmaps retrieves beatmaps. Without options the API returns the 500
// most recently ranked difficulties.
func (c *Client) GetBeatmaps(ctx context.Context, key string, opts ...func(*BeatmapsRequest)) ([]Beatmap, error) {
	r := &BeatmapsRequest{}
	for _, opt := range opts {
		opt(r)
	}
	return call(ctx, c, EndpointBeatmaps, key, nil, r.Params(), decodeList[Beatmap])
}

// GetMatch retrieves a multiplayer match and its games. An unknown match id
// is reported as KindNotFound.
func (c *Client) GetMatch(ctx context.Context, key string, matchID uint64) (*Match, error) {
	required := &Param{Key: "mp", Value: strconv.FormatUint(matchID, 10)}
	return call(ctx, c, EndpointMatch, key, required, nil, decodeMatch)
}

// GetScores retrieves the top scores of a beatmap.
func (c *Client) GetScores(ctx context.Context, key string, beatmapID uint64, opts ...func(*ScoresRequest)) ([]GameScore, error) {
	r := &ScoresRequest{}
	for _, opt := range opts {
		opt(r)
	}
	required := &Param{Key: "b", Value: strconv.FormatUint(beatmapID, 10)}
	return call(ctx, c, EndpointScores, key, required, r.Params(), decodeList[GameScore])
}

// GetUser retrieves a user profile. user overrides any user set by opts. An
// unknown user is reported as KindNotFound.
func (c *Client) GetUser(ctx context.Context, key string, user UserRef, opts ...func(*UserRequest)) (*User, error) {
	r := &UserRequest{}
	for _, opt := range opts {
		opt(r)
	}
	r.User(user)
	return call(ctx, c, EndpointUser, key, nil, r.Params(), decodeUser)
}

// GetUserBest retrieves a user's top plays. user overrides any user set by opts.
func (c *Client) GetUserBest(ctx context.Context, key string, user UserRef, opts ...func(*UserBestRequest)) ([]Performance, error) {
	r := &UserBestRequest{}
	for _, opt := range opts {
		opt(r)
	}
	r.User(user)
	return call(ctx, c, EndpointUserBest, key, nil, r.Params(), decodeList[Performance])
}

// GetUserRecent retrieves a user's plays from the last 24 hours. user
// overrides any user set by opts.
func (c *Client) GetUserRecent(ctx context.Context, key string, user UserRef, opts ...func(*UserRecentRequest)) ([]RecentPlay, error) {
	r := &UserRecentRequest{}
	for _, opt := range opts {
		opt(r)
	}
	r.User(user)
	return call(ctx, c, EndpointUserRecent, key, nil, r.Params(), decodeList[RecentPlay])
}

// GetBeatmapsAsync is the asynchronous form of GetBeatmaps.
func (c *Client) GetBeatmapsAsync(ctx context.Context, key string, opts ...func(*BeatmapsRequest)) *Future[[]Beatmap] {
	return newFuture(ctx, func(ctx context.Context) ([]Beatmap, error) {
		return c.GetBeatmaps(ctx, key, opts...)
	})
}

// GetMatchAsync is the asynchronous form of GetMatch.
func (c *Client) GetMatchAsync(ctx context.Context, key string, matchID uint64) *Future[*Match] {
	return newFuture(ctx, func(ctx context.Context) (*Match, error) {
		return c.GetMatch(ctx, key, matchID)
	})
}

// GetScoresAsync is the asynchronous form of GetScores.
func (c *Client) GetScoresAsync(ctx context.Context, key string, beatmapID uint64, opts ...func(*ScoresRequest)) *Future[[]GameScore] {
	return newFuture(ctx, func(ctx context.Context) ([]GameScore, error) {
		return c.GetScores(ctx, key, beatmapID, opts...)
	})
}

// GetUserAsync is the asynchronous form of GetUser.
func (c *Client) GetUserAsync(ctx context.Context, key string, user UserRef, opts ...func(*UserRequest)) *Future[*User] {
	return newFuture(ctx, func(ctx context.Context) (*User, error) {
		return c.GetUser(ctx, key, user, opts...)
	})
}

// GetUserBestAsync is the asynchronous form of GetUserBest.
func (c *Client) GetUserBestAsync(ctx context.Context, key string, user UserRef, opts ...func(*UserBestRequest)) *Future[[]Performance] {
	return newFuture(ctx, func(ctx context.Context) ([]Performance, error) {
		return c.GetUserBest(ctx, key, user, opts...)
	})
}

// GetUserRecentAsync is the asynchronous form of GetUserRecent.
func (c *Client) GetUserRecentAsync(ctx context.Context, key string, user UserRef, opts ...func(*UserRecentRequest)) *Future[[]RecentPlay] {
	return newFuture(ctx, func(ctx context.Context) ([]RecentPlay, error) {
		return c.GetUserRecent(ctx, key, user, opts...)
	})
}

// call assembles the URI, fetches it and decodes the body. Every error it
// returns is an *Error stamped with the endpoint, except ErrMissingAPIKey.
func call[T any](ctx context.Context, c *Client, endpoint, key string, required *Param, optional map[string]string, decode func([]byte) (T, error)) (T, error) {
	var zero T
	if key == "" {
		return zero, ErrMissingAPIKey
	}

	uri := BuildURI(c.baseURL, endpoint, key, required, optional)
	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("uri", redactKey(uri)).
		Msg("Making osu! API request")

	c.observer.OnRequestStart(endpoint)
	start := time.Now()

	v, err := fetchAndDecode(ctx, c.fetcher, uri, decode)
	if err != nil {
		err = withEndpoint(err, endpoint)
	}
	duration := time.Since(start)
	c.observer.OnRequestEnd(endpoint, duration, err)

	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("endpoint", endpoint).
			Dur("duration", duration).
			Msg("osu! API request failed")
		return zero, err
	}
	return v, nil
}

func fetchAndDecode[T any](ctx context.Context, fetcher Fetcher, uri string, decode func([]byte) (T, error)) (T, error) {
	var zero T
	body, err := fetcher.Fetch(ctx, uri)
	if err != nil {
		var e *Error
		if !errors.As(err, &e) {
			err = &Error{Kind: KindTransport, Err: err}
		}
		return zero, err
	}
	return decode(body)
}

package osu

import (
	"context"
)

// API defines the blocking osu! operations, for callers that want to swap in
// a fake.
type API interface {
	GetBeatmaps(ctx context.Context, key string, opts ...func(*BeatmapsRequest)) ([]Beatmap, error)
	GetMatch(ctx context.Context, key string, matchID uint64) (*Match, error)
	GetScores(ctx context.Context, key string, beatmapID uint64, opts ...func(*ScoresRequest)) ([]GameScore, error)
	GetUser(ctx context.Context, key string, user UserRef, opts ...func(*UserRequest)) (*User, error)
	GetUserBest(ctx context.Context, key string, user UserRef, opts ...func(*UserBestRequest)) ([]Performance, error)
	GetUserRecent(ctx context.Context, key string, user UserRef, opts ...func(*UserRecentRequest)) ([]RecentPlay, error)
}

var _ API = (*Client)(nil)

package osu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeatmapsRequestSetters(t *testing.T) {
	tests := []struct {
		name  string
		apply func(r *BeatmapsRequest)
		want  map[string]string
	}{
		{"beatmap id", func(r *BeatmapsRequest) { r.BeatmapID(774965) }, map[string]string{"b": "774965"}},
		{"beatmap set id", func(r *BeatmapsRequest) { r.BeatmapSetID(39804) }, map[string]string{"s": "39804"}},
		{"hash", func(r *BeatmapsRequest) { r.Hash("a5b99395a42bd55bc5eb1d2411cbdf8b") }, map[string]string{"h": "a5b99395a42bd55bc5eb1d2411cbdf8b"}},
		{"include converted", func(r *BeatmapsRequest) { r.IncludeConverted(true) }, map[string]string{"a": "1"}},
		{"exclude converted", func(r *BeatmapsRequest) { r.IncludeConverted(false) }, map[string]string{"a": "0"}},
		{"limit", func(r *BeatmapsRequest) { r.Limit(500) }, map[string]string{"limit": "500"}},
		{"mode", func(r *BeatmapsRequest) { r.Mode(PlayModeMania) }, map[string]string{"m": "3"}},
		{"since", func(r *BeatmapsRequest) { r.Since("2013-01-01") }, map[string]string{"since": "2013-01-01"}},
		{
			"since time",
			func(r *BeatmapsRequest) { r.SinceTime(time.Date(2013, 1, 1, 12, 0, 0, 0, time.UTC)) },
			map[string]string{"since": "2013-01-01 12:00:00"},
		},
		{"user by id", func(r *BeatmapsRequest) { r.User(ByID(2)) }, map[string]string{"u": "2", "type": "id"}},
		{"user by name", func(r *BeatmapsRequest) { r.User(ByName("peppy")) }, map[string]string{"u": "peppy", "type": "string"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &BeatmapsRequest{}
			tt.apply(r)
			assert.Equal(t, tt.want, r.Params())
		})
	}
}

func TestScoresRequestSetters(t *testing.T) {
	r := (&ScoresRequest{}).Limit(10).Mode(PlayModeTaiko).Mods(Hidden | DoubleTime).User(ByName("Cookiezi"))

	assert.Equal(t, map[string]string{
		"limit": "10",
		"m":     "1",
		"mods":  "72",
		"u":     "Cookiezi",
		"type":  "string",
	}, r.Params())
}

func TestUserRequestSetters(t *testing.T) {
	r := (&UserRequest{}).EventDays(31).Mode(PlayModeCatch).User(ByID(124493))

	assert.Equal(t, map[string]string{
		"event_days": "31",
		"m":          "2",
		"u":          "124493",
		"type":       "id",
	}, r.Params())
}

func TestLastWriteWins(t *testing.T) {
	r := &BeatmapsRequest{}
	r.Limit(10).Limit(20).Mode(PlayModeTaiko).Mode(PlayModeStandard)
	r.User(ByName("peppy")).User(ByID(2))

	assert.Equal(t, map[string]string{
		"limit": "20",
		"m":     "0",
		"u":     "2",
		"type":  "id",
	}, r.Params())
}

func TestUserLookupTypeOnEveryBuilder(t *testing.T) {
	tests := []struct {
		name  string
		build func(u UserRef) map[string]string
	}{
		{"beatmaps", func(u UserRef) map[string]string { return (&BeatmapsRequest{}).User(u).Params() }},
		{"scores", func(u UserRef) map[string]string { return (&ScoresRequest{}).User(u).Params() }},
		{"user", func(u UserRef) map[string]string { return (&UserRequest{}).User(u).Params() }},
		{"user best", func(u UserRef) map[string]string { return (&UserBestRequest{}).User(u).Params() }},
		{"user recent", func(u UserRef) map[string]string { return (&UserRecentRequest{}).User(u).Params() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			byID := tt.build(ByID(124493))
			assert.Equal(t, "124493", byID["u"])
			assert.Equal(t, "id", byID["type"])

			byName := tt.build(ByName("Cookiezi"))
			assert.Equal(t, "Cookiezi", byName["u"])
			assert.Equal(t, "string", byName["type"])
		})
	}
}

func TestLimitIsNotClamped(t *testing.T) {
	assert.Equal(t, "65535", (&UserBestRequest{}).Limit(65535).Params()["limit"])
	assert.Equal(t, "0", (&UserRecentRequest{}).Limit(0).Params()["limit"])
}

func TestParamsReturnsCopy(t *testing.T) {
	r := (&UserBestRequest{}).Limit(5)
	p := r.Params()
	p["limit"] = "999"

	assert.Equal(t, "5", r.Params()["limit"])
}

func TestEmptyBuilderHasNoParams(t *testing.T) {
	assert.Empty(t, (&BeatmapsRequest{}).Params())
}

func TestParseUserRef(t *testing.T) {
	tests := []struct {
		in       string
		wantU    string
		wantType string
	}{
		{"124493", "124493", "id"},
		{"Cookiezi", "Cookiezi", "string"},
		{"-GN", "-GN", "string"},
		{"12a", "12a", "string"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ref := ParseUserRef(tt.in)
			assert.Equal(t, tt.wantU, ref.String())
			assert.Equal(t, tt.wantType, ref.lookupType())
		})
	}
}

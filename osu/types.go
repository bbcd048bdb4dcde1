package osu

import (
	"time"
)

// Beatmap is one difficulty of a beatmap set, as returned by get_beatmaps.
type Beatmap struct {
	Approved         Approval   `json:"approved"`
	ApprovedDate     *time.Time `json:"approved_date,omitempty"`
	Artist           string     `json:"artist"`
	BeatmapID        uint64     `json:"beatmap_id"`
	BeatmapSetID     uint64     `json:"beatmapset_id"`
	BPM              float64    `json:"bpm"`
	Creator          string     `json:"creator"`
	DifficultyRating float64    `json:"difficultyrating"`
	DiffApproach     float64    `json:"diff_approach"`
	DiffDrain        float64    `json:"diff_drain"`
	DiffOverall      float64    `json:"diff_overall"`
	DiffSize         float64    `json:"diff_size"`
	FavouriteCount   int64      `json:"favourite_count"`
	FileMD5          string     `json:"file_md5"`
	Genre            Genre      `json:"genre_id"`
	HitLength        int64      `json:"hit_length"`
	Language         Language   `json:"language_id"`
	LastUpdate       time.Time  `json:"last_update"`
	// MaxCombo is nil for maps the API has no combo data for.
	MaxCombo    *int64   `json:"max_combo,omitempty"`
	Mode        PlayMode `json:"mode"`
	PassCount   int64    `json:"passcount"`
	PlayCount   int64    `json:"playcount"`
	Source      string   `json:"source"`
	Tags        string   `json:"tags"`
	Title       string   `json:"title"`
	TotalLength int64    `json:"total_length"`
	Version     string   `json:"version"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Beatmap) UnmarshalJSON(data []byte) error {
	f, err := newFields(data)
	if err != nil {
		return err
	}
	*b = Beatmap{
		Approved:         enumField(f, "approved", approvalNames),
		ApprovedDate:     f.optTime("approved_date"),
		Artist:           f.str("artist"),
		BeatmapID:        f.uint64("beatmap_id"),
		BeatmapSetID:     f.uint64("beatmapset_id"),
		BPM:              f.float64("bpm"),
		Creator:          f.str("creator"),
		DifficultyRating: f.float64("difficultyrating"),
		DiffApproach:     f.float64("diff_approach"),
		DiffDrain:        f.float64("diff_drain"),
		DiffOverall:      f.float64("diff_overall"),
		DiffSize:         f.float64("diff_size"),
		FavouriteCount:   f.int64("favourite_count"),
		FileMD5:          f.str("file_md5"),
		Genre:            enumField(f, "genre_id", genreNames),
		HitLength:        f.int64("hit_length"),
		Language:         enumField(f, "language_id", languageNames),
		LastUpdate:       f.time("last_update"),
		MaxCombo:         f.optInt64("max_combo"),
		Mode:             enumField(f, "mode", playModeNames),
		PassCount:        f.int64("passcount"),
		PlayCount:        f.int64("playcount"),
		Source:           f.str("source"),
		Tags:             f.str("tags"),
		Title:            f.str("title"),
		TotalLength:      f.int64("total_length"),
		Version:          f.str("version"),
	}
	return f.err
}

// Hits is the judgement breakdown shared by every score-like record.
type Hits struct {
	Count300  int64 `json:"count300"`
	Count100  int64 `json:"count100"`
	Count50   int64 `json:"count50"`
	CountGeki int64 `json:"countgeki"`
	CountKatu int64 `json:"countkatu"`
	CountMiss int64 `json:"countmiss"`
}

func decodeHits(f *fields) Hits {
	return Hits{
		Count300:  f.int64("count300"),
		Count100:  f.int64("count100"),
		Count50:   f.int64("count50"),
		CountGeki: f.int64("countgeki"),
		CountKatu: f.int64("countkatu"),
		CountMiss: f.int64("countmiss"),
	}
}

// Accuracy returns the osu!standard accuracy in the range [0, 1].
func (h Hits) Accuracy() float64 {
	total := h.Count300 + h.Count100 + h.Count50 + h.CountMiss
	if total == 0 {
		return 0
	}
	return float64(300*h.Count300+100*h.Count100+50*h.Count50) / float64(300*total)
}

// GameScore is a score on a single beatmap, as returned by get_scores.
type GameScore struct {
	Hits
	Date        time.Time `json:"date"`
	EnabledMods Mods      `json:"enabled_mods"`
	MaxCombo    int64     `json:"maxcombo"`
	Perfect     bool      `json:"perfect"`
	// PP is nil on unranked maps.
	PP       *float64 `json:"pp,omitempty"`
	Rank     string   `json:"rank"`
	Score    int64    `json:"score"`
	ScoreID  *uint64  `json:"score_id,omitempty"`
	UserID   uint64   `json:"user_id"`
	Username string   `json:"username"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *GameScore) UnmarshalJSON(data []byte) error {
	f, err := newFields(data)
	if err != nil {
		return err
	}
	*s = GameScore{
		Hits:        decodeHits(f),
		Date:        f.time("date"),
		EnabledMods: f.mods("enabled_mods"),
		MaxCombo:    f.int64("maxcombo"),
		Perfect:     f.boolean("perfect"),
		PP:          f.optFloat64("pp"),
		Rank:        f.str("rank"),
		Score:       f.int64("score"),
		ScoreID:     f.optUint64("score_id"),
		UserID:      f.uint64("user_id"),
		Username:    f.str("username"),
	}
	return f.err
}

// Performance is a top play, as returned by get_user_best.
type Performance struct {
	Hits
	BeatmapID   uint64    `json:"beatmap_id"`
	Date        time.Time `json:"date"`
	EnabledMods Mods      `json:"enabled_mods"`
	MaxCombo    int64     `json:"maxcombo"`
	Perfect     bool      `json:"perfect"`
	PP          float64   `json:"pp"`
	Rank        string    `json:"rank"`
	Score       int64     `json:"score"`
	UserID      uint64    `json:"user_id"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Performance) UnmarshalJSON(data []byte) error {
	f, err := newFields(data)
	if err != nil {
		return err
	}
	*p = Performance{
		Hits:        decodeHits(f),
		BeatmapID:   f.uint64("beatmap_id"),
		Date:        f.time("date"),
		EnabledMods: f.mods("enabled_mods"),
		MaxCombo:    f.int64("maxcombo"),
		Perfect:     f.boolean("perfect"),
		PP:          f.float64("pp"),
		Rank:        f.str("rank"),
		Score:       f.int64("score"),
		UserID:      f.uint64("user_id"),
	}
	return f.err
}

// RecentPlay is a play from the last 24 hours, as returned by get_user_recent.
// Failed plays have rank "F".
type RecentPlay struct {
	Hits
	BeatmapID   uint64    `json:"beatmap_id"`
	Date        time.Time `json:"date"`
	EnabledMods Mods      `json:"enabled_mods"`
	MaxCombo    int64     `json:"maxcombo"`
	Perfect     bool      `json:"perfect"`
	Rank        string    `json:"rank"`
	Score       int64     `json:"score"`
	UserID      uint64    `json:"user_id"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *RecentPlay) UnmarshalJSON(data []byte) error {
	f, err := newFields(data)
	if err != nil {
		return err
	}
	*r = RecentPlay{
		Hits:        decodeHits(f),
		BeatmapID:   f.uint64("beatmap_id"),
		Date:        f.time("date"),
		EnabledMods: f.mods("enabled_mods"),
		MaxCombo:    f.int64("maxcombo"),
		Perfect:     f.boolean("perfect"),
		Rank:        f.str("rank"),
		Score:       f.int64("score"),
		UserID:      f.uint64("user_id"),
	}
	return f.err
}

// Passed reports whether the play was completed.
func (r RecentPlay) Passed() bool {
	return r.Rank != "F"
}

// Match is a multiplayer lobby, as returned by get_match.
type Match struct {
	MatchID   uint64     `json:"match_id"`
	Name      string     `json:"name"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Games     []Game     `json:"games"`
}

// UnmarshalJSON decodes the "match" object of the get_match envelope.
// Games are filled in separately.
func (m *Match) UnmarshalJSON(data []byte) error {
	f, err := newFields(data)
	if err != nil {
		return err
	}
	*m = Match{
		MatchID:   f.uint64("match_id"),
		Name:      f.str("name"),
		StartTime: f.time("start_time"),
		EndTime:   f.optTime("end_time"),
	}
	return f.err
}

// Game is one beatmap played within a match.
type Game struct {
	GameID      uint64       `json:"game_id"`
	StartTime   time.Time    `json:"start_time"`
	EndTime     *time.Time   `json:"end_time,omitempty"`
	BeatmapID   uint64       `json:"beatmap_id"`
	PlayMode    PlayMode     `json:"play_mode"`
	MatchType   int64        `json:"match_type"`
	ScoringType ScoringType  `json:"scoring_type"`
	TeamType    TeamType     `json:"team_type"`
	Mods        Mods         `json:"mods"`
	Scores      []MatchScore `json:"scores"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *Game) UnmarshalJSON(data []byte) error {
	f, err := newFields(data)
	if err != nil {
		return err
	}
	*g = Game{
		GameID:      f.uint64("game_id"),
		StartTime:   f.time("start_time"),
		EndTime:     f.optTime("end_time"),
		BeatmapID:   f.uint64("beatmap_id"),
		PlayMode:    enumField(f, "play_mode", playModeNames),
		MatchType:   f.int64("match_type"),
		ScoringType: enumField(f, "scoring_type", scoringTypeNames),
		TeamType:    enumField(f, "team_type", teamTypeNames),
		Mods:        f.mods("mods"),
	}
	f.list("scores", &g.Scores)
	return f.err
}

// MatchScore is one player's result in a Game.
type MatchScore struct {
	Hits
	Slot     int64 `json:"slot"`
	Team     int64 `json:"team"`
	UserID   uint64 `json:"user_id"`
	Score    int64 `json:"score"`
	MaxCombo int64 `json:"maxcombo"`
	Rank     int64 `json:"rank"`
	Perfect  bool  `json:"perfect"`
	Pass     bool  `json:"pass"`
	// EnabledMods is only set in free-mod games.
	EnabledMods *Mods `json:"enabled_mods,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *MatchScore) UnmarshalJSON(data []byte) error {
	f, err := newFields(data)
	if err != nil {
		return err
	}
	*s = MatchScore{
		Hits:        decodeHits(f),
		Slot:        f.int64("slot"),
		Team:        f.int64("team"),
		UserID:      f.uint64("user_id"),
		Score:       f.int64("score"),
		MaxCombo:    f.int64("maxcombo"),
		Rank:        f.int64("rank"),
		Perfect:     f.boolean("perfect"),
		Pass:        f.boolean("pass"),
		EnabledMods: f.optMods("enabled_mods"),
	}
	return f.err
}

// User is a player profile, as returned by get_user. Statistics are zero
// for users who have not played the requested mode.
type User struct {
	UserID        uint64      `json:"user_id"`
	Username      string      `json:"username"`
	Country       string      `json:"country"`
	Accuracy      float64     `json:"accuracy"`
	Level         float64     `json:"level"`
	PlayCount     int64       `json:"playcount"`
	PPRaw         float64     `json:"pp_raw"`
	PPRank        int64       `json:"pp_rank"`
	PPCountryRank int64       `json:"pp_country_rank"`
	RankedScore   int64       `json:"ranked_score"`
	TotalScore    int64       `json:"total_score"`
	Count300      int64       `json:"count300"`
	Count100      int64       `json:"count100"`
	Count50       int64       `json:"count50"`
	CountRankSS   int64       `json:"count_rank_ss"`
	CountRankS    int64       `json:"count_rank_s"`
	CountRankA    int64       `json:"count_rank_a"`
	Events        []UserEvent `json:"events"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (u *User) UnmarshalJSON(data []byte) error {
	f, err := newFields(data)
	if err != nil {
		return err
	}
	*u = User{
		UserID:        f.uint64("user_id"),
		Username:      f.str("username"),
		Country:       f.str("country"),
		Accuracy:      f.statFloat64("accuracy"),
		Level:         f.statFloat64("level"),
		PlayCount:     f.statInt64("playcount"),
		PPRaw:         f.statFloat64("pp_raw"),
		PPRank:        f.statInt64("pp_rank"),
		PPCountryRank: f.statInt64("pp_country_rank"),
		RankedScore:   f.statInt64("ranked_score"),
		TotalScore:    f.statInt64("total_score"),
		Count300:      f.statInt64("count300"),
		Count100:      f.statInt64("count100"),
		Count50:       f.statInt64("count50"),
		CountRankSS:   f.statInt64("count_rank_ss"),
		CountRankS:    f.statInt64("count_rank_s"),
		CountRankA:    f.statInt64("count_rank_a"),
	}
	f.list("events", &u.Events)
	return f.err
}

// UserEvent is an entry in a user's recent activity feed.
type UserEvent struct {
	BeatmapID    *uint64   `json:"beatmap_id,omitempty"`
	BeatmapSetID *uint64   `json:"beatmapset_id,omitempty"`
	Date         time.Time `json:"date"`
	DisplayHTML  string    `json:"display_html"`
	EpicFactor   int64     `json:"epicfactor"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *UserEvent) UnmarshalJSON(data []byte) error {
	f, err := newFields(data)
	if err != nil {
		return err
	}
	*e = UserEvent{
		BeatmapID:    f.optUint64("beatmap_id"),
		BeatmapSetID: f.optUint64("beatmapset_id"),
		Date:         f.time("date"),
		DisplayHTML:  f.str("display_html"),
		EpicFactor:   f.int64("epicfactor"),
	}
	return f.err
}

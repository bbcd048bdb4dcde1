package osu

import (
	"strconv"
	"time"
)

// UserRef identifies a user either by numeric id or by username.
type UserRef struct {
	id     uint64
	name   string
	byName bool
}

// ByID references a user by numeric id.
func ByID(id uint64) UserRef {
	return UserRef{id: id}
}

// ByName references a user by username.
func ByName(name string) UserRef {
	return UserRef{name: name, byName: true}
}

// ParseUserRef treats an all-digit string as an id and anything else as a
// username. Users whose name is all digits must be referenced with ByName.
func ParseUserRef(s string) UserRef {
	if id, err := strconv.ParseUint(s, 10, 64); err == nil {
		return ByID(id)
	}
	return ByName(s)
}

// String returns the value sent as the u parameter.
func (u UserRef) String() string {
	if u.byName {
		return u.name
	}
	return strconv.FormatUint(u.id, 10)
}

// lookupType is the companion type parameter telling the API how to read u.
func (u UserRef) lookupType() string {
	if u.byName {
		return "string"
	}
	return "id"
}

// query is the optional parameter set shared by every request builder.
// Keys are unique and the last write wins.
type query struct {
	values map[string]string
}

func (q *query) set(key, value string) {
	if q.values == nil {
		q.values = make(map[string]string)
	}
	q.values[key] = value
}

func (q *query) setUser(u UserRef) {
	q.set("u", u.String())
	q.set("type", u.lookupType())
}

// Params returns a copy of the parameters set so far.
func (q *query) Params() map[string]string {
	out := make(map[string]string, len(q.values))
	for k, v := range q.values {
		out[k] = v
	}
	return out
}

// BeatmapsRequest holds the optional parameters of get_beatmaps.
type BeatmapsRequest struct {
	query
}

// BeatmapID restricts results to a single difficulty.
func (r *BeatmapsRequest) BeatmapID(id uint64) *BeatmapsRequest {
	r.set("b", strconv.FormatUint(id, 10))
	return r
}

// BeatmapSetID restricts results to one beatmap set.
func (r *BeatmapsRequest) BeatmapSetID(id uint64) *BeatmapsRequest {
	r.set("s", strconv.FormatUint(id, 10))
	return r
}

// Hash looks a difficulty up by the MD5 of its .osu file.
func (r *BeatmapsRequest) Hash(md5 string) *BeatmapsRequest {
	r.set("h", md5)
	return r
}

// IncludeConverted includes converted maps when a non-standard Mode is set.
func (r *BeatmapsRequest) IncludeConverted(include bool) *BeatmapsRequest {
	r.set("a", boolFlag(include))
	return r
}

// Limit caps the number of results. The API maximum is 500.
func (r *BeatmapsRequest) Limit(n uint16) *BeatmapsRequest {
	r.set("limit", strconv.FormatUint(uint64(n), 10))
	return r
}

func (r *BeatmapsRequest) Mode(m PlayMode) *BeatmapsRequest {
	r.set("m", m.Code())
	return r
}

// Since returns maps ranked or loved after a MySQL date, passed verbatim.
func (r *BeatmapsRequest) Since(date string) *BeatmapsRequest {
	r.set("since", date)
	return r
}

// SinceTime is Since with the date formatted in UTC.
func (r *BeatmapsRequest) SinceTime(t time.Time) *BeatmapsRequest {
	return r.Since(t.UTC().Format(TimeLayout))
}

// User restricts results to maps created by a mapper.
func (r *BeatmapsRequest) User(u UserRef) *BeatmapsRequest {
	r.setUser(u)
	return r
}

// ScoresRequest holds the optional parameters of get_scores.
type ScoresRequest struct {
	query
}

func (r *ScoresRequest) Limit(n uint16) *ScoresRequest {
	r.set("limit", strconv.FormatUint(uint64(n), 10))
	return r
}

func (r *ScoresRequest) Mode(m PlayMode) *ScoresRequest {
	r.set("m", m.Code())
	return r
}

// Mods restricts results to scores set with exactly these mods.
func (r *ScoresRequest) Mods(m Mods) *ScoresRequest {
	r.set("mods", strconv.FormatInt(int64(m), 10))
	return r
}

// User returns only the scores of a single player.
func (r *ScoresRequest) User(u UserRef) *ScoresRequest {
	r.setUser(u)
	return r
}

// UserRequest holds the optional parameters of get_user.
type UserRequest struct {
	query
}

// EventDays sets how far back, in days, events are returned. The API
// accepts 1 to 31.
func (r *UserRequest) EventDays(days uint8) *UserRequest {
	r.set("event_days", strconv.FormatUint(uint64(days), 10))
	return r
}

func (r *UserRequest) Mode(m PlayMode) *UserRequest {
	r.set("m", m.Code())
	return r
}

func (r *UserRequest) User(u UserRef) *UserRequest {
	r.setUser(u)
	return r
}

// UserBestRequest holds the optional parameters of get_user_best.
type UserBestRequest struct {
	query
}

// Limit caps the number of results. The API maximum is 100.
func (r *UserBestRequest) Limit(n uint16) *UserBestRequest {
	r.set("limit", strconv.FormatUint(uint64(n), 10))
	return r
}

func (r *UserBestRequest) Mode(m PlayMode) *UserBestRequest {
	r.set("m", m.Code())
	return r
}

func (r *UserBestRequest) User(u UserRef) *UserBestRequest {
	r.setUser(u)
	return r
}

// UserRecentRequest holds the optional parameters of get_user_recent.
type UserRecentRequest struct {
	query
}

// Limit caps the number of results. The API maximum is 50.
func (r *UserRecentRequest) Limit(n uint16) *UserRecentRequest {
	r.set("limit", strconv.FormatUint(uint64(n), 10))
	return r
}

func (r *UserRecentRequest) Mode(m PlayMode) *UserRecentRequest {
	r.set("m", m.Code())
	return r
}

func (r *UserRecentRequest) User(u UserRef) *UserRecentRequest {
	r.setUser(u)
	return r
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

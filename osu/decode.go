package osu

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// TimeLayout is the date format used by every v1 endpoint. Dates are UTC.
const TimeLayout = "2006-01-02 15:04:05"

// fields decodes one JSON object field by field. The first failure sticks
// and every later accessor becomes a no-op, so a record's UnmarshalJSON can
// read all of its fields and return f.err once.
type fields struct {
	raw map[string]json.RawMessage
	err error
}

func newFields(data []byte) (*fields, error) {
	if k := jsonKind(data); k != '{' {
		return nil, &Error{Kind: KindDecode, Message: fmt.Sprintf("expected a JSON object, got %s", kindName(k))}
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &Error{Kind: KindDecode, Err: err}
	}
	return &fields{raw: raw}, nil
}

func (f *fields) fail(err error) {
	if f.err == nil {
		f.err = err
	}
}

// scalar returns the text of a string or number field. ok is false when the
// field is absent or null.
func (f *fields) scalar(name string, required bool) (text string, ok bool) {
	if f.err != nil {
		return "", false
	}
	raw, present := f.raw[name]
	if !present || jsonKind(raw) == 'n' {
		if required {
			f.fail(decodeError(name, "", errors.New("missing required field")))
		}
		return "", false
	}
	switch jsonKind(raw) {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			f.fail(decodeError(name, string(raw), err))
			return "", false
		}
		return s, true
	case '0':
		return string(raw), true
	default:
		f.fail(decodeError(name, string(raw), errors.New("expected a string or number")))
		return "", false
	}
}

func (f *fields) str(name string) string {
	raw, present := f.raw[name]
	if f.err == nil && present && jsonKind(raw) == '0' {
		f.fail(decodeError(name, string(raw), errors.New("expected a string")))
		return ""
	}
	s, _ := f.scalar(name, true)
	return s
}

func (f *fields) int64(name string) int64 {
	text, ok := f.scalar(name, true)
	if !ok {
		return 0
	}
	return f.parseInt(name, text)
}

func (f *fields) optInt64(name string) *int64 {
	text, ok := f.scalar(name, false)
	if !ok {
		return nil
	}
	v := f.parseInt(name, text)
	if f.err != nil {
		return nil
	}
	return &v
}

func (f *fields) parseInt(name, text string) int64 {
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		f.fail(decodeError(name, text, err))
		return 0
	}
	return v
}

// statInt64 reads a profile statistic. The API sends null for modes the user
// has never played, which decodes to zero.
func (f *fields) statInt64(name string) int64 {
	if v := f.optInt64(name); v != nil {
		return *v
	}
	return 0
}

func (f *fields) statFloat64(name string) float64 {
	if v := f.optFloat64(name); v != nil {
		return *v
	}
	return 0
}

func (f *fields) uint64(name string) uint64 {
	text, ok := f.scalar(name, true)
	if !ok {
		return 0
	}
	return f.parseUint(name, text)
}

func (f *fields) optUint64(name string) *uint64 {
	text, ok := f.scalar(name, false)
	if !ok {
		return nil
	}
	v := f.parseUint(name, text)
	if f.err != nil {
		return nil
	}
	return &v
}

func (f *fields) parseUint(name, text string) uint64 {
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		f.fail(decodeError(name, text, err))
		return 0
	}
	return v
}

func (f *fields) float64(name string) float64 {
	text, ok := f.scalar(name, true)
	if !ok {
		return 0
	}
	return f.parseFloat(name, text)
}

func (f *fields) optFloat64(name string) *float64 {
	text, ok := f.scalar(name, false)
	if !ok {
		return nil
	}
	v := f.parseFloat(name, text)
	if f.err != nil {
		return nil
	}
	return &v
}

func (f *fields) parseFloat(name, text string) float64 {
	v, err := strconv.ParseFloat(text, 64)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = errors.New("not a finite number")
	}
	if err != nil {
		f.fail(decodeError(name, text, err))
		return 0
	}
	return v
}

// boolean accepts JSON booleans and integer flags, where any nonzero value
// is true.
func (f *fields) boolean(name string) bool {
	if f.err != nil {
		return false
	}
	if raw, ok := f.raw[name]; ok && jsonKind(raw) == 't' {
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			f.fail(decodeError(name, string(raw), err))
		}
		return b
	}
	text, ok := f.scalar(name, true)
	if !ok {
		return false
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		f.fail(decodeError(name, text, errors.New("expected a boolean flag")))
		return false
	}
	return n != 0
}

func (f *fields) time(name string) time.Time {
	text, ok := f.scalar(name, true)
	if !ok {
		return time.Time{}
	}
	return f.parseTime(name, text)
}

func (f *fields) optTime(name string) *time.Time {
	text, ok := f.scalar(name, false)
	if !ok {
		return nil
	}
	t := f.parseTime(name, text)
	if f.err != nil {
		return nil
	}
	return &t
}

func (f *fields) parseTime(name, text string) time.Time {
	t, err := time.Parse(TimeLayout, text)
	if err != nil {
		f.fail(decodeError(name, text, err))
		return time.Time{}
	}
	return t
}

func (f *fields) mods(name string) Mods {
	text, ok := f.scalar(name, true)
	if !ok {
		return NoMod
	}
	return f.parseMods(name, text)
}

func (f *fields) optMods(name string) *Mods {
	text, ok := f.scalar(name, false)
	if !ok {
		return nil
	}
	m := f.parseMods(name, text)
	if f.err != nil {
		return nil
	}
	return &m
}

// parseMods drops bits outside the known set. Fractions and negative values
// are rejected.
func (f *fields) parseMods(name, text string) Mods {
	n, err := strconv.ParseInt(text, 10, 64)
	if err == nil && n < 0 {
		err = errors.New("negative mod bitset")
	}
	if err != nil {
		f.fail(decodeError(name, text, err))
		return NoMod
	}
	return Mods(n) & knownMods
}

// list decodes an array field into dst. A null value leaves dst empty.
func (f *fields) list(name string, dst any) {
	if f.err != nil {
		return
	}
	raw, present := f.raw[name]
	if !present {
		f.fail(decodeError(name, "", errors.New("missing required field")))
		return
	}
	switch jsonKind(raw) {
	case 'n':
		return
	case '[':
	default:
		f.fail(decodeError(name, string(raw), errors.New("expected an array")))
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		f.fail(asDecodeError(name, err))
	}
}

// enumField resolves a code field against an enum table.
func enumField[T ~int](f *fields, name string, names map[T]string) T {
	text, ok := f.scalar(name, true)
	if !ok {
		return 0
	}
	v, err := lookupCode(name, text, names)
	if err != nil {
		f.fail(err)
		return 0
	}
	return v
}

// asDecodeError keeps an *Error raised by a nested record and wraps anything
// else from encoding/json as a decode error.
func asDecodeError(field string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindDecode, Field: field, Err: err}
}

// jsonKind classifies a raw value by its first significant byte: '{', '[',
// '"', 't' (boolean), 'n' (null) or '0' (number). It returns 0 for empty input.
func jsonKind(raw []byte) byte {
	raw = bytes.TrimLeft(raw, " \t\r\n")
	if len(raw) == 0 {
		return 0
	}
	switch c := raw[0]; c {
	case '{', '[', '"', 'n':
		return c
	case 't', 'f':
		return 't'
	default:
		return '0'
	}
}

func kindName(k byte) string {
	switch k {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't':
		return "boolean"
	case 'n':
		return "null"
	case '0':
		return "number"
	default:
		return "nothing"
	}
}

// apiError returns a KindAPI error when body is an {"error": "..."} payload.
func apiError(body []byte) error {
	if jsonKind(body) != '{' {
		return nil
	}
	var payload struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error == nil {
		return nil
	}
	return &Error{Kind: KindAPI, Message: *payload.Error}
}

// decodeList decodes an array payload. The first bad element fails the call.
func decodeList[T any](body []byte) ([]T, error) {
	if err := apiError(body); err != nil {
		return nil, err
	}
	if k := jsonKind(body); k != '[' {
		return nil, &Error{Kind: KindDecode, Message: fmt.Sprintf("expected a JSON array, got %s", kindName(k))}
	}
	out := []T{}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, asDecodeError("", err)
	}
	return out, nil
}

// decodeUser accepts either the documented array form or a bare object.
func decodeUser(body []byte) (*User, error) {
	if err := apiError(body); err != nil {
		return nil, err
	}
	switch jsonKind(body) {
	case '[':
		users, err := decodeList[User](body)
		if err != nil {
			return nil, err
		}
		if len(users) == 0 {
			return nil, &Error{Kind: KindNotFound, Message: "no such user"}
		}
		return &users[0], nil
	case '{':
		var u User
		if err := json.Unmarshal(body, &u); err != nil {
			return nil, asDecodeError("", err)
		}
		return &u, nil
	default:
		return nil, &Error{Kind: KindDecode, Message: fmt.Sprintf("expected a user, got %s", kindName(jsonKind(body)))}
	}
}

// decodeMatch unpacks the {"match": {...}, "games": [...]} envelope. The API
// reports an unknown match as "match": 0; any other non-object is malformed.
func decodeMatch(body []byte) (*Match, error) {
	if err := apiError(body); err != nil {
		return nil, err
	}
	f, err := newFields(body)
	if err != nil {
		return nil, err
	}
	raw, ok := f.raw["match"]
	if !ok {
		return nil, &Error{Kind: KindDecode, Field: "match", Message: "missing field"}
	}
	switch {
	case jsonKind(raw) == '{':
	case string(bytes.TrimSpace(raw)) == "0":
		return nil, &Error{Kind: KindNotFound, Message: "no such match"}
	default:
		return nil, &Error{Kind: KindDecode, Field: "match", Value: string(raw)}
	}

	var m Match
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, asDecodeError("match", err)
	}
	if _, ok := f.raw["games"]; ok {
		f.list("games", &m.Games)
		if f.err != nil {
			return nil, f.err
		}
	}
	if m.Games == nil {
		m.Games = []Game{}
	}
	return &m, nil
}

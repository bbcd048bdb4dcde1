package osu

import (
	"net/url"
	"sort"
	"strings"
	"unicode"
)

// DefaultBaseURL is the root of the v1 API.
const DefaultBaseURL = "https://osu.ppy.sh/api"

// Endpoint names.
const (
	EndpointBeatmaps   = "get_beatmaps"
	EndpointMatch      = "get_match"
	EndpointScores     = "get_scores"
	EndpointUser       = "get_user"
	EndpointUserBest   = "get_user_best"
	EndpointUserRecent = "get_user_recent"
)

// Param is a required query parameter, written right after the key.
type Param struct {
	Key, Value string
}

// BuildURI assembles {base}/{endpoint}?k={key}, then the required parameter
// if any, then the optional parameters sorted by key.
//
// Values are written verbatim with no percent-encoding, matching what the
// API has always received. A value containing '&', '=' or '#' will corrupt
// the query; one containing whitespace is rejected by ValidateURI.
func BuildURI(base, endpoint, key string, required *Param, optional map[string]string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	b.WriteByte('/')
	b.WriteString(endpoint)
	b.WriteString("?k=")
	b.WriteString(key)

	if required != nil {
		b.WriteByte('&')
		b.WriteString(required.Key)
		b.WriteByte('=')
		b.WriteString(required.Value)
	}

	keys := make([]string, 0, len(optional))
	for k := range optional {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte('&')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(optional[k])
	}
	return b.String()
}

// ValidateURI checks that uri is an absolute http(s) URI that can be put on
// the wire as is.
func ValidateURI(uri string) error {
	if i := strings.IndexFunc(uri, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}); i >= 0 {
		return &Error{Kind: KindInvalidURI, Value: redactKey(uri), Message: "contains whitespace or control characters"}
	}
	u, err := url.ParseRequestURI(uri)
	if err != nil {
		return &Error{Kind: KindInvalidURI, Value: redactKey(uri), Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &Error{Kind: KindInvalidURI, Value: redactKey(uri), Message: "scheme must be http or https"}
	}
	if u.Host == "" {
		return &Error{Kind: KindInvalidURI, Value: redactKey(uri), Message: "missing host"}
	}
	return nil
}

// redactKey masks the k= value so URIs can be logged and put in errors.
func redactKey(uri string) string {
	i := strings.Index(uri, "?k=")
	if i < 0 {
		return uri
	}
	start := i + len("?k=")
	end := strings.IndexByte(uri[start:], '&')
	if end < 0 {
		return uri[:start] + "REDACTED"
	}
	return uri[:start] + "REDACTED" + uri[start+end:]
}

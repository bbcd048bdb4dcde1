// Package osu provides a typed client for the osu! v1 web API.
//
// Every endpoint is a method on Client that takes the API key, any required
// identifier, and optional request builders:
//
//	client := osu.NewClient(zerolog.Nop())
//
//	scores, err := client.GetScores(ctx, key, 774965, func(r *osu.ScoresRequest) {
//		r.Limit(10).Mode(osu.PlayModeStandard)
//	})
//
//	user, err := client.GetUser(ctx, key, osu.ByName("peppy"))
//
// Each method has an Async twin returning a Future, which can be cancelled
// before the response arrives.
//
// # Transports
//
// Requests go through a Fetcher. HTTPFetcher uses net/http and is the
// default; FastHTTPFetcher uses fasthttp. Neither retries nor sets a
// timeout, so callers bound requests with their context or client.
//
// # Decoding
//
// The API encodes most numbers as strings. Records accept either form, map
// enum codes through fixed tables, and fail as a whole on the first bad
// field. Mods bits outside the known set are dropped.
//
// # Error Handling
//
// Every failure is an *Error whose Kind can be matched with errors.Is:
//
//	if errors.Is(err, osu.ErrDecode) {
//		var e *osu.Error
//		errors.As(err, &e)
//		log.Printf("bad field %s: %q", e.Field, e.Value)
//	}
//
// Query values are not percent-encoded. A username containing whitespace
// fails with KindInvalidURI before any request is sent.
package osu

package osu

import "time"

// Observer is notified around every API call. Methods are called from the
// requesting goroutine and must be safe for concurrent use.
type Observer interface {
	// OnRequestStart is called before the request is sent.
	OnRequestStart(endpoint string)
	// OnRequestEnd is called once the response is decoded or the call failed.
	OnRequestEnd(endpoint string, duration time.Duration, err error)
}

// NoopObserver ignores every event.
type NoopObserver struct{}

func (NoopObserver) OnRequestStart(string)                      {}
func (NoopObserver) OnRequestEnd(string, time.Duration, error) {}

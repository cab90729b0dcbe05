package assistant

import "sync/atomic"

// Fetcher serializes reminder display against re-triggered fetches.
//
// Fetches are fire-and-forget: the store never waits on one, and a
// user may re-trigger while one is in flight. Without coordination the
// display would be last-resolved-wins, letting a stale in-flight
// response overwrite a newer one. Fetcher makes the race explicit:
// each fetch takes a generation token at start, and only the token of
// the newest started fetch is accepted at resolve time.
type Fetcher struct {
	gen atomic.Uint64
}

// Begin marks the start of a fetch and returns its generation token.
// Beginning a fetch supersedes every earlier in-flight fetch.
func (f *Fetcher) Begin() uint64 {
	return f.gen.Add(1)
}

// Current reports whether the token belongs to the newest fetch. A
// resolved reminder carrying a stale token must be dropped, not
// displayed.
func (f *Fetcher) Current(token uint64) bool {
	return f.gen.Load() == token
}

// Package sequence issues monotonically increasing request tokens so that
// a response can be checked against the most recently issued request of the
// same kind before it is applied.
package sequence

import "sync/atomic"

// Token identifies one issued request. The zero token is never issued.
type Token uint64

// Tracker hands out tokens for one kind of request. The zero value is
// ready to use and safe for concurrent use.
type Tracker struct {
	latest atomic.Uint64
}

// Next issues a new token, superseding every token issued before it.
func (t *Tracker) Next() Token {
	return Token(t.latest.Add(1))
}

// IsLatest reports whether token is the most recently issued one. A
// response carrying any older token is stale and must be ignored.
func (t *Tracker) IsLatest(token Token) bool {
	return token != 0 && uint64(token) == t.latest.Load()
}

// Latest returns the most recently issued token, or zero if none.
func (t *Tracker) Latest() Token {
	return Token(t.latest.Load())
}

package model

import (
	"fmt"
	"time"
)

// Window is the half-open publication interval [Start, End).
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t lies within [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Before reports whether t is strictly older than the window start.
func (w Window) Before(t time.Time) bool {
	return t.Before(w.Start)
}

// After reports whether t is at or beyond the window end.
func (w Window) After(t time.Time) bool {
	return !t.Before(w.End)
}

// Duration is the real elapsed time covered by the window, which differs
// from 24h on daylight saving transitions.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)", w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
}

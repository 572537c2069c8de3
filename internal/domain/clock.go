package domain

import "github.com/jonboulle/clockwork"

// clock stamps assessments. Tests freeze it through SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the assessment time source. Pass nil to restore the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

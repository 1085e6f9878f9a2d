package tictactoe

import "time"

// Clock measures time elapsed since it was anchored. It only moves on Advance, so
// every reader within one tick sees the same instant.
type Clock struct {
	start  time.Time
	now    time.Duration
	source func() time.Time
}

func NewClock(source func() time.Time) *Clock {
	clock := &Clock{
		start:  source(),
		source: source,
	}
	clock.Advance()

	return clock
}

func (that *Clock) Advance() {
	that.now = that.source().Sub(that.start)
}

func (that *Clock) Now() time.Duration {
	return that.now
}

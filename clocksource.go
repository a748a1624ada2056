/*
Simulated clock source.

Tests and demos need clock that moves only when told. Wraps golang time.Time so
calendar field handling comes from standard library, not from own math.
*/
package rtcgopher

import (
	"time"
)

//SimClock is in memory ClockSource. Not for production, time does not advance by itself
type SimClock struct {
	now time.Time
}

//NewSimClock creates simulated clock starting from start
func NewSimClock(start CalendarTime) *SimClock {
	return &SimClock{now: start.Time()}
}

//ReadTime gives current simulated calendar time
func (p *SimClock) ReadTime() (CalendarTime, error) {
	return FromTime(p.now), nil
}

//SetTime sets simulated clock
func (p *SimClock) SetTime(t CalendarTime) error {
	p.now = t.Time()
	return nil
}

//Advance moves simulated clock forward (or backward with negative d)
func (p *SimClock) Advance(d time.Duration) {
	p.now = p.now.Add(d)
}

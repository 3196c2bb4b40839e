package flow

import "github.com/jonboulle/clockwork"

// Clock schedules delayed transitions. Production code runs on the real
// clock; tests drive a clockwork fake clock.
type Clock = clockwork.Clock

// Timer is a scheduled callback that can be cancelled before it fires.
type Timer = clockwork.Timer

func RealClock() Clock {
	return clockwork.NewRealClock()
}

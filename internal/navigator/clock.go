package navigator

import "time"

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. Implementations must run callbacks on the
// same logical thread that drives the Navigator's entry points.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func(d time.Duration, f func()) Timer

func (fn ClockFunc) AfterFunc(d time.Duration, f func()) Timer {
	return fn(d, f)
}

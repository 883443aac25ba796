package clock

import "time"

// Clock supplies wall-clock time. Services take one instead of calling
// time.Now directly so tests can pin timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System returns a Clock backed by the real wall clock, in UTC.
func System() Clock {
	return systemClock{}
}

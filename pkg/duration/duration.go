package duration

import "time"

// Interval is one clock-out/clock-in pair. Start is the moment the employee
// clocked out; End is the moment they clocked back in, nil while still out.
type Interval struct {
	Start time.Time
	End   *time.Time
}

// Completed reports whether the interval has been closed by a clock-in.
func (iv Interval) Completed() bool {
	return iv.End != nil
}

// Minutes returns the whole minutes between two timestamps. The result is
// never negative regardless of argument order.
func Minutes(a, b time.Time) int {
	d := b.Sub(a)
	if d < 0 {
		d = -d
	}
	return int(d.Minutes())
}

// Total sums the minutes of all completed intervals. Open intervals are
// excluded: an employee who is still clocked out is off the clock.
func Total(intervals []Interval) int {
	total := 0
	for _, iv := range intervals {
		if !iv.Completed() {
			continue
		}
		total += Minutes(iv.Start, *iv.End)
	}
	return total
}

// OpenFor returns how long an open interval has been running as of now.
// Completed intervals report zero.
func OpenFor(now time.Time, iv Interval) time.Duration {
	if iv.Completed() {
		return 0
	}
	d := now.Sub(iv.Start)
	if d < 0 {
		return 0
	}
	return d
}

// Overtime reports whether totalMinutes exceeds the allowed daily minutes.
func Overtime(totalMinutes, allowedMinutes int) bool {
	return totalMinutes > allowedMinutes
}

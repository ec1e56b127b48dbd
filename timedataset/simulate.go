package timedataset

import (
	"math/rand/v2"
	"time"

	"github.com/aouyang1/go-frequency/timestamp"
)

// GenerateT returns n timestamps spaced by interval ending one interval before the
// minute nowFunc falls in.
func GenerateT(n int, interval time.Duration, nowFunc func() time.Time) TimeSlice {
	ct := time.Unix(nowFunc().Unix()/60*60, 0).Add(-time.Duration(n) * interval).UTC()
	return GenerateFrom(ct, n, interval)
}

// GenerateFrom returns n timestamps starting at start spaced by interval.
func GenerateFrom(start time.Time, n int, interval time.Duration) TimeSlice {
	t := make(TimeSlice, 0, n)
	for i := 0; i < n; i++ {
		t = append(t, start.Add(interval*time.Duration(i)))
	}
	return t
}

// DropWeekends removes timestamps falling on a local Saturday or Sunday.
func (t TimeSlice) DropWeekends() TimeSlice {
	out := make(TimeSlice, 0, len(t))
	for _, tPnt := range t {
		switch tPnt.Weekday() {
		case time.Saturday, time.Sunday:
			continue
		default:
			out = append(out, tPnt)
		}
	}
	return out
}

// WithinClock keeps timestamps whose local time of day is in [start, end).
func (t TimeSlice) WithinClock(start, end time.Duration) TimeSlice {
	out := make(TimeSlice, 0, len(t))
	for _, tPnt := range t {
		tod := timestamp.TimeOfDay(tPnt)
		if tod >= start && tod < end {
			out = append(out, tPnt)
		}
	}
	return out
}

// Between keeps timestamps in [start, end].
func (t TimeSlice) Between(start, end time.Time) TimeSlice {
	out := make(TimeSlice, 0, len(t))
	for _, tPnt := range t {
		if tPnt.Before(start) || tPnt.After(end) {
			continue
		}
		out = append(out, tPnt)
	}
	return out
}

// Jitter returns a copy with every timestamp pushed later by a random duration in
// [0, maxShift).
func (t TimeSlice) Jitter(maxShift time.Duration, r *rand.Rand) TimeSlice {
	out := make(TimeSlice, len(t))
	for i, tPnt := range t {
		out[i] = tPnt
		if maxShift > 0 {
			out[i] = tPnt.Add(time.Duration(r.Int64N(int64(maxShift))))
		}
	}
	return out
}

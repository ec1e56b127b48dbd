// Package timestamp holds the nanosecond timestamp model shared by the offset and
// inference packages. A timestamp is a time.Time whose instant must fit in a signed
// 64 bit count of nanoseconds since the Unix epoch.
package timestamp

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrOutOfBounds = errors.New("timestamp out of bounds")

var (
	// NaT is the not-a-time sentinel. The zero time lies outside of [Min, Max] so it
	// can never be produced by valid arithmetic.
	NaT = time.Time{}

	// Min is the earliest representable timestamp. math.MinInt64 is reserved for NaT
	// in the integer view.
	Min = time.Unix(0, math.MinInt64+1).UTC()

	// Max is the latest representable timestamp.
	Max = time.Unix(0, math.MaxInt64).UTC()
)

// NaTNanos is the integer view of NaT.
const NaTNanos = math.MinInt64

func IsNaT(t time.Time) bool {
	return t.IsZero()
}

// CheckBounds returns ErrOutOfBounds if t cannot be represented as nanoseconds
// since the epoch.
func CheckBounds(t time.Time) error {
	if t.Before(Min) || t.After(Max) {
		return fmt.Errorf("%w, %s", ErrOutOfBounds, t.Format(time.RFC3339Nano))
	}
	return nil
}

func FromNanos(ns int64, loc *time.Location) time.Time {
	if ns == NaTNanos {
		return NaT
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Unix(0, ns).In(loc)
}

func Nanos(t time.Time) int64 {
	if IsNaT(t) {
		return NaTNanos
	}
	return t.UnixNano()
}

// LocalNanos returns the wall clock nanoseconds of t, i.e. the instant shifted by
// the zone offset in effect at t.
func LocalNanos(t time.Time) int64 {
	_, offset := t.Zone()
	return t.UnixNano() + int64(offset)*int64(time.Second)
}

// Wall strips the zone from t keeping its wall clock reading.
func Wall(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// FromWall attaches loc to the wall clock reading w. Wall clock times that do not
// exist in loc are resolved the way time.Date does.
func FromWall(w time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(w.Year(), w.Month(), w.Day(), w.Hour(), w.Minute(), w.Second(), w.Nanosecond(), loc)
}

// Normalize truncates t to midnight of its local day.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func IsNormalized(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// TimeOfDay returns the duration elapsed since local midnight.
func TimeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

// AtTimeOfDay returns the local day of t at the given time of day.
func AtTimeOfDay(t time.Time, tod time.Duration) time.Time {
	return Normalize(t).Add(tod)
}

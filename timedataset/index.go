package timedataset

import (
	"slices"
	"time"

	"github.com/aouyang1/go-frequency/array"
	"github.com/aouyang1/go-frequency/timestamp"
)

// Kind identifies what the integer values of an Index represent.
type Kind int

const (
	KindDatetime Kind = iota
	KindTimedelta
	KindPeriod
	KindNumeric
)

func (k Kind) String() string {
	switch k {
	case KindDatetime:
		return "datetime"
	case KindTimedelta:
		return "timedelta"
	case KindPeriod:
		return "period"
	case KindNumeric:
		return "numeric"
	default:
		return "unknown"
	}
}

// Index is an ordered sequence of int64 values tagged with what they represent.
// Datetime values are nanoseconds since the epoch, timedelta values are nanosecond
// durations and period values are ordinals of freq.
type Index struct {
	kind    Kind
	values  []int64
	numeric []float64
	loc     *time.Location
	freq    string
}

// NewDatetimeIndex builds a datetime index in the location of the first timestamp.
func NewDatetimeIndex(t []time.Time) *Index {
	loc := time.UTC
	if len(t) > 0 {
		loc = t[0].Location()
	}
	values := make([]int64, len(t))
	for i, tPnt := range t {
		values[i] = timestamp.Nanos(tPnt)
	}
	return &Index{kind: KindDatetime, values: values, loc: loc}
}

// FromNanos builds a datetime index from nanoseconds since the epoch. A nil location
// is treated as UTC, where wall clock and epoch nanoseconds coincide.
func FromNanos(values []int64, loc *time.Location) *Index {
	if loc == nil {
		loc = time.UTC
	}
	return &Index{kind: KindDatetime, values: slices.Clone(values), loc: loc}
}

func NewTimedeltaIndex(d []time.Duration) *Index {
	values := make([]int64, len(d))
	for i, dur := range d {
		values[i] = int64(dur)
	}
	return &Index{kind: KindTimedelta, values: values, loc: time.UTC}
}

func NewPeriodIndex(ordinals []int64, freq string) *Index {
	return &Index{kind: KindPeriod, values: slices.Clone(ordinals), loc: time.UTC, freq: freq}
}

func NewNumericIndex(values []float64) *Index {
	return &Index{kind: KindNumeric, numeric: slices.Clone(values), loc: time.UTC}
}

func (idx *Index) Kind() Kind {
	return idx.kind
}

func (idx *Index) Len() int {
	if idx.kind == KindNumeric {
		return len(idx.numeric)
	}
	return len(idx.values)
}

// Freq is the frequency of a period index.
func (idx *Index) Freq() string {
	return idx.freq
}

func (idx *Index) Location() *time.Location {
	return idx.loc
}

// Asi8 returns the raw integer view. The slice must not be modified.
func (idx *Index) Asi8() []int64 {
	return idx.values
}

// LocalAsi8 returns the values shifted into wall clock nanoseconds of the index
// location.
func (idx *Index) LocalAsi8() []int64 {
	if idx.kind != KindDatetime || idx.loc == time.UTC {
		return idx.values
	}

	local := make([]int64, len(idx.values))
	for i, v := range idx.values {
		if v == timestamp.NaTNanos {
			local[i] = v
			continue
		}
		local[i] = timestamp.LocalNanos(time.Unix(0, v).In(idx.loc))
	}
	return local
}

// Time returns the i-th value as a timestamp in the index location.
func (idx *Index) Time(i int) time.Time {
	return timestamp.FromNanos(idx.values[i], idx.loc)
}

// Weekday returns the local weekday of the i-th value where 0 is Monday.
func (idx *Index) Weekday(i int) int {
	return (int(idx.Time(i).Weekday()) + 6) % 7
}

func (idx *Index) IsMonotonicIncreasing() bool {
	return array.IsMonotonicIncreasing(idx.values)
}

func (idx *Index) IsMonotonicDecreasing() bool {
	return array.IsMonotonicDecreasing(idx.values)
}

// IsMonotonic reports whether the index is non-decreasing or non-increasing.
func (idx *Index) IsMonotonic() bool {
	return idx.IsMonotonicIncreasing() || idx.IsMonotonicDecreasing()
}

func (idx *Index) IsUnique() bool {
	return array.IsUnique(idx.values)
}

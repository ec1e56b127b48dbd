// Package offsets implements calendar aware date offsets. An offset steps a timestamp
// forward or backward by n business days, business hours, business month boundaries
// or fixed ticks, and can roll a timestamp onto its nearest valid position.
//
// Offsets are immutable. Every method that changes n or a parameter returns a new
// offset.
package offsets

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aouyang1/go-frequency/timestamp"
)

var (
	ErrInvalidFreq      = errors.New("invalid frequency")
	ErrCannotCombine    = errors.New("cannot combine")
	ErrCannotSubtract   = errors.New("cannot subtract a datetime from an offset")
	ErrNormalizeTick    = errors.New("tick offsets with normalize=true are not allowed")
	ErrInvalidWeekmask  = errors.New("invalid weekmask")
	ErrNoStartTime      = errors.New("must include at least 1 start time")
	ErrNoEndTime        = errors.New("must include at least 1 end time")
	ErrInvalidTime      = errors.New("time data must match '%H:%M' format")
	ErrStartEndMismatch = errors.New("number of starting time and ending time must be the same")
	ErrOverlappingHours = errors.New("invalid starting and ending time(s): opening hours should not touch or overlap with one another")
	ErrNoProgress       = errors.New("offset did not increment date")
	ErrUnknownOffset    = errors.New("unknown offset type")
)

// Offset is a calendar aware step applied to timestamps. Apply, Rollback and
// Rollforward return timestamp.NaT unchanged and fail with timestamp.ErrOutOfBounds
// when the result cannot be represented.
type Offset interface {
	// N is the signed step multiplier.
	N() int
	// Normalize reports whether results are truncated to midnight.
	Normalize() bool

	Apply(t time.Time) (time.Time, error)
	Rollback(t time.Time) (time.Time, error)
	Rollforward(t time.Time) (time.Time, error)
	OnOffset(t time.Time) bool

	Mul(k int) Offset
	Neg() Offset
	// Base returns the same offset with n=1.
	Base() Offset
	Copy() Offset

	// Name is the offset variant, e.g. BusinessHour.
	Name() string
	// RuleCode is the alias of the offset without a count, e.g. BH.
	RuleCode() string
	// FreqStr is the alias including the count and time offset, e.g. 2B+30Min.
	FreqStr() string
	String() string

	// Key identifies the offset by variant and parameters. Equal offsets share a
	// key so it can be used as a map key.
	Key() string
	Equal(other Offset) bool

	MarshalJSON() ([]byte, error)
}

type base struct {
	n         int
	normalize bool
}

func (b base) N() int {
	return b.n
}

func (b base) Normalize() bool {
	return b.normalize
}

// wrap runs fn on the wall clock reading of t and reattaches the zone of t. Sub
// microsecond precision dropped by fn is restored unless the result is normalized.
func (b base) wrap(t time.Time, fn func(time.Time) time.Time) (time.Time, error) {
	if timestamp.IsNaT(t) {
		return timestamp.NaT, nil
	}

	nano := time.Duration(t.Nanosecond() % 1000)
	res := timestamp.FromWall(fn(timestamp.Wall(t)), t.Location())
	if b.normalize {
		res = timestamp.Normalize(res)
	} else if nano != 0 {
		if r := time.Duration(res.Nanosecond() % 1000); r != nano {
			res = res.Add(nano - r)
		}
	}

	if err := timestamp.CheckBounds(res); err != nil {
		return timestamp.NaT, err
	}
	return res, nil
}

// onOffsetNormalized applies the normalize precondition shared by every variant.
func (b base) onOffsetNormalized(t time.Time) bool {
	return !b.normalize || timestamp.IsNormalized(t)
}

// repr formats an offset the way it is printed, e.g. <2 * BusinessDays: offset=1h0m0s>
func (b base) repr(name, attrs string) string {
	var sb strings.Builder
	sb.WriteString("<")
	if b.n != 1 {
		fmt.Fprintf(&sb, "%d * ", b.n)
	}
	sb.WriteString(name)
	if b.n != 1 && b.n != -1 {
		sb.WriteString("s")
	}
	sb.WriteString(attrs)
	sb.WriteString(">")
	return sb.String()
}

func (b base) freqstr(code string) string {
	if b.n != 1 {
		return fmt.Sprintf("%d%s", b.n, code)
	}
	return code
}

func (b base) key(name string, params ...string) string {
	fields := append([]string{fmt.Sprintf("n=%d", b.n), fmt.Sprintf("normalize=%t", b.normalize)}, params...)
	return name + "(" + strings.Join(fields, ",") + ")"
}

func equal(o, other Offset) bool {
	if other == nil {
		return false
	}
	return o.Key() == other.Key()
}

// rollWith implements the default roll: a timestamp not on offset is moved by one
// step of the same offset in the given direction.
func rollWith(o Offset, t time.Time, forward bool) (time.Time, error) {
	if timestamp.IsNaT(t) || o.OnOffset(t) {
		return t, nil
	}
	if forward {
		return o.Base().Apply(t)
	}
	return o.Base().Neg().Apply(t)
}

// offsetStr renders a time offset suffix of a frequency string, e.g. +1H30Min.
func offsetStr(d time.Duration) string {
	if d == 0 {
		return ""
	}
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}

	var sb strings.Builder
	sb.WriteString(sign)

	if days := d / day; days > 0 {
		fmt.Fprintf(&sb, "%dD", days)
		d -= days * day
	}
	if hrs := d / time.Hour; hrs > 0 {
		fmt.Fprintf(&sb, "%dH", hrs)
		d -= hrs * time.Hour
	}
	if mts := d / time.Minute; mts > 0 {
		fmt.Fprintf(&sb, "%dMin", mts)
		d -= mts * time.Minute
	}
	if s := d / time.Second; s > 0 {
		fmt.Fprintf(&sb, "%ds", s)
		d -= s * time.Second
	}
	if us := d / time.Microsecond; us > 0 {
		fmt.Fprintf(&sb, "%dus", us)
	}
	return sb.String()
}

// weekday returns the weekday of t where 0 is Monday.
func weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

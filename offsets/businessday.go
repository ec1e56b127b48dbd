package offsets

import (
	"time"

	"github.com/aouyang1/go-frequency/timestamp"
)

// BusinessDayOptions configure a BusinessDay.
type BusinessDayOptions struct {
	Normalize bool          `json:"normalize"`
	Offset    time.Duration `json:"offset"`
}

func NewDefaultBusinessDayOptions() *BusinessDayOptions {
	return &BusinessDayOptions{}
}

// BusinessDay steps over Monday to Friday, optionally adding a fixed time offset
// after stepping.
type BusinessDay struct {
	base
	offset time.Duration
}

func NewBusinessDay(n int, opt *BusinessDayOptions) *BusinessDay {
	if opt == nil {
		opt = NewDefaultBusinessDayOptions()
	}
	return &BusinessDay{
		base:   base{n: n, normalize: opt.Normalize},
		offset: opt.Offset,
	}
}

// Offset is the time added after stepping business days.
func (b *BusinessDay) Offset() time.Duration {
	return b.offset
}

func (b *BusinessDay) withN(n int) *BusinessDay {
	out := *b
	out.n = n
	return &out
}

// WithOffset returns a copy with d added to the time offset.
func (b *BusinessDay) WithOffset(d time.Duration) Offset {
	out := *b
	out.offset += d
	return &out
}

func (b *BusinessDay) Apply(t time.Time) (time.Time, error) {
	return b.wrap(t, func(w time.Time) time.Time {
		return weekdays{}.addBusinessDays(w, b.n).Add(b.offset)
	})
}

func (b *BusinessDay) Rollback(t time.Time) (time.Time, error) {
	return rollWith(b, t, false)
}

func (b *BusinessDay) Rollforward(t time.Time) (time.Time, error) {
	return rollWith(b, t, true)
}

func (b *BusinessDay) OnOffset(t time.Time) bool {
	if timestamp.IsNaT(t) {
		return false
	}
	if !b.onOffsetNormalized(t) {
		return false
	}
	return weekdays{}.isBusinessDay(t)
}

func (b *BusinessDay) Mul(k int) Offset { return b.withN(b.n * k) }
func (b *BusinessDay) Neg() Offset      { return b.withN(-b.n) }
func (b *BusinessDay) Base() Offset     { return b.withN(1) }
func (b *BusinessDay) Copy() Offset     { return b.withN(b.n) }

func (b *BusinessDay) Name() string     { return "BusinessDay" }
func (b *BusinessDay) RuleCode() string { return "B" }

func (b *BusinessDay) FreqStr() string {
	return b.freqstr(b.RuleCode()) + offsetStr(b.offset)
}

func (b *BusinessDay) String() string {
	return b.repr(b.Name(), offsetAttr(b.offset))
}

func (b *BusinessDay) Key() string {
	return b.key(b.Name(), "offset="+b.offset.String())
}

func (b *BusinessDay) Equal(other Offset) bool {
	return equal(b, other)
}

func offsetAttr(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return ": offset=" + d.String()
}

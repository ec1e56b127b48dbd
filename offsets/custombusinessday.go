package offsets

import (
	"time"

	"github.com/aouyang1/go-frequency/timestamp"
)

// CustomBusinessDayOptions configure a CustomBusinessDay.
type CustomBusinessDayOptions struct {
	CalendarOptions
	Normalize bool          `json:"normalize"`
	Offset    time.Duration `json:"offset"`
}

func NewDefaultCustomBusinessDayOptions() *CustomBusinessDayOptions {
	return &CustomBusinessDayOptions{
		CalendarOptions: NewDefaultCalendarOptions(),
	}
}

// CustomBusinessDay steps over the days allowed by a weekmask that are not holidays.
type CustomBusinessDay struct {
	base
	offset time.Duration
	cal    *busCalendar
	id     string
}

func NewCustomBusinessDay(n int, opt *CustomBusinessDayOptions) (*CustomBusinessDay, error) {
	if opt == nil {
		opt = NewDefaultCustomBusinessDayOptions()
	}
	cal, err := newBusCalendar(opt.CalendarOptions)
	if err != nil {
		return nil, err
	}
	c := &CustomBusinessDay{
		base:   base{n: n, normalize: opt.Normalize},
		offset: opt.Offset,
		cal:    cal,
	}
	c.id = c.buildKey()
	return c, nil
}

func (c *CustomBusinessDay) Offset() time.Duration {
	return c.offset
}

func (c *CustomBusinessDay) Weekmask() Weekmask {
	return c.cal.weekmask
}

// Holidays returns the excluded dates as midnight UTC dates.
func (c *CustomBusinessDay) Holidays() []time.Time {
	return c.cal.options().Holidays
}

func (c *CustomBusinessDay) withN(n int) *CustomBusinessDay {
	out := *c
	out.n = n
	out.id = out.buildKey()
	return &out
}

func (c *CustomBusinessDay) WithOffset(d time.Duration) Offset {
	out := *c
	out.offset += d
	out.id = out.buildKey()
	return &out
}

func (c *CustomBusinessDay) Apply(t time.Time) (time.Time, error) {
	return c.wrap(t, func(w time.Time) time.Time {
		return c.cal.addBusinessDays(w, c.n).Add(c.offset)
	})
}

func (c *CustomBusinessDay) Rollback(t time.Time) (time.Time, error) {
	return rollWith(c, t, false)
}

func (c *CustomBusinessDay) Rollforward(t time.Time) (time.Time, error) {
	return rollWith(c, t, true)
}

func (c *CustomBusinessDay) OnOffset(t time.Time) bool {
	if timestamp.IsNaT(t) {
		return false
	}
	if !c.onOffsetNormalized(t) {
		return false
	}
	return c.cal.isBusinessDay(t)
}

func (c *CustomBusinessDay) Mul(k int) Offset { return c.withN(c.n * k) }
func (c *CustomBusinessDay) Neg() Offset      { return c.withN(-c.n) }
func (c *CustomBusinessDay) Base() Offset     { return c.withN(1) }
func (c *CustomBusinessDay) Copy() Offset     { return c.withN(c.n) }

func (c *CustomBusinessDay) Name() string     { return "CustomBusinessDay" }
func (c *CustomBusinessDay) RuleCode() string { return "C" }

func (c *CustomBusinessDay) FreqStr() string {
	return c.freqstr(c.RuleCode()) + offsetStr(c.offset)
}

func (c *CustomBusinessDay) String() string {
	return c.repr(c.Name(), offsetAttr(c.offset))
}

func (c *CustomBusinessDay) Key() string {
	return c.id
}

func (c *CustomBusinessDay) buildKey() string {
	return c.key(c.Name(), append(c.cal.params(), "offset="+c.offset.String())...)
}

func (c *CustomBusinessDay) Equal(other Offset) bool {
	return equal(c, other)
}

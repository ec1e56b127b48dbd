package offsets

import (
	"time"

	"github.com/aouyang1/go-frequency/ccalendar"
	"github.com/aouyang1/go-frequency/timestamp"
)

// MonthOptions configure the calendar and business month offsets.
type MonthOptions struct {
	Normalize bool `json:"normalize"`
}

// CustomBusinessMonthOptions configure the custom business month offsets.
type CustomBusinessMonthOptions struct {
	CalendarOptions
	Normalize bool `json:"normalize"`
}

func NewDefaultCustomBusinessMonthOptions() *CustomBusinessMonthOptions {
	return &CustomBusinessMonthOptions{
		CalendarOptions: NewDefaultCalendarOptions(),
	}
}

type monthKind struct {
	name  string
	code  string
	begin bool
}

var (
	monthEnd                 = monthKind{"MonthEnd", "M", false}
	monthBegin               = monthKind{"MonthBegin", "MS", true}
	businessMonthEnd         = monthKind{"BusinessMonthEnd", "BM", false}
	businessMonthBegin       = monthKind{"BusinessMonthBegin", "BMS", true}
	customBusinessMonthEnd   = monthKind{"CustomBusinessMonthEnd", "CBM", false}
	customBusinessMonthBegin = monthKind{"CustomBusinessMonthBegin", "CBMS", true}
)

// MonthOffset steps to the first or last valid day of a month. Calendar variants
// treat every day as valid, business variants skip weekends and custom business
// variants also skip holidays and days outside their weekmask. The time of day is
// kept.
type MonthOffset struct {
	base
	kind monthKind
	days dayCalendar
	cal  *busCalendar
	id   string
}

func newMonthOffset(n int, normalize bool, kind monthKind, days dayCalendar, cal *busCalendar) *MonthOffset {
	m := &MonthOffset{
		base: base{n: n, normalize: normalize},
		kind: kind,
		days: days,
		cal:  cal,
	}
	m.id = m.buildKey()
	return m
}

func monthNormalize(opt *MonthOptions) bool {
	return opt != nil && opt.Normalize
}

// NewMonthEnd steps to calendar month ends.
func NewMonthEnd(n int, opt *MonthOptions) *MonthOffset {
	return newMonthOffset(n, monthNormalize(opt), monthEnd, everyDay{}, nil)
}

// NewMonthBegin steps to calendar month starts.
func NewMonthBegin(n int, opt *MonthOptions) *MonthOffset {
	return newMonthOffset(n, monthNormalize(opt), monthBegin, everyDay{}, nil)
}

// NewBusinessMonthEnd steps to the last weekday of months.
func NewBusinessMonthEnd(n int, opt *MonthOptions) *MonthOffset {
	return newMonthOffset(n, monthNormalize(opt), businessMonthEnd, weekdays{}, nil)
}

// NewBusinessMonthBegin steps to the first weekday of months.
func NewBusinessMonthBegin(n int, opt *MonthOptions) *MonthOffset {
	return newMonthOffset(n, monthNormalize(opt), businessMonthBegin, weekdays{}, nil)
}

// NewCustomBusinessMonthEnd steps to the last custom business day of months.
func NewCustomBusinessMonthEnd(n int, opt *CustomBusinessMonthOptions) (*MonthOffset, error) {
	return newCustomMonth(n, opt, customBusinessMonthEnd)
}

// NewCustomBusinessMonthBegin steps to the first custom business day of months.
func NewCustomBusinessMonthBegin(n int, opt *CustomBusinessMonthOptions) (*MonthOffset, error) {
	return newCustomMonth(n, opt, customBusinessMonthBegin)
}

func newCustomMonth(n int, opt *CustomBusinessMonthOptions, kind monthKind) (*MonthOffset, error) {
	if opt == nil {
		opt = NewDefaultCustomBusinessMonthOptions()
	}
	cal, err := newBusCalendar(opt.CalendarOptions)
	if err != nil {
		return nil, err
	}
	return newMonthOffset(n, opt.Normalize, kind, cal, cal), nil
}

// Holidays returns the excluded dates of custom variants.
func (m *MonthOffset) Holidays() []time.Time {
	if m.cal == nil {
		return nil
	}
	return m.cal.options().Holidays
}

// anchor returns the calendar first or last day of the month at midnight.
func (m *MonthOffset) anchor(year int, month time.Month) time.Time {
	if m.kind.begin {
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(year, month, ccalendar.DaysInMonth(year, int(month)), 0, 0, 0, 0, time.UTC)
}

// valid returns the first or last business day of the month at midnight.
func (m *MonthOffset) valid(year int, month time.Month) time.Time {
	return rollDay(m.days, m.anchor(year, month), m.kind.begin)
}

func (m *MonthOffset) step(t time.Time) time.Time {
	y, mo, d := t.Date()
	n := rollConvention(d, m.n, m.valid(y, mo).Day())

	target := time.Date(y, mo+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return m.valid(target.Year(), target.Month()).Add(timestamp.TimeOfDay(t))
}

// rollConvention drops the step that only reaches the anchor of the current month
// when the day has not passed it yet, or has already passed it for n <= 0.
func rollConvention(day, n, compare int) int {
	switch {
	case n > 0 && day < compare:
		n--
	case n <= 0 && day > compare:
		n++
	}
	return n
}

func (m *MonthOffset) withN(n int) *MonthOffset {
	out := *m
	out.n = n
	out.id = out.buildKey()
	return &out
}

func (m *MonthOffset) Apply(t time.Time) (time.Time, error) {
	return m.wrap(t, m.step)
}

func (m *MonthOffset) Rollback(t time.Time) (time.Time, error) {
	return rollWith(m, t, false)
}

func (m *MonthOffset) Rollforward(t time.Time) (time.Time, error) {
	return rollWith(m, t, true)
}

func (m *MonthOffset) OnOffset(t time.Time) bool {
	if timestamp.IsNaT(t) || !m.onOffsetNormalized(t) {
		return false
	}
	y, mo, d := t.Date()
	return d == m.valid(y, mo).Day()
}

func (m *MonthOffset) Mul(k int) Offset { return m.withN(m.n * k) }
func (m *MonthOffset) Neg() Offset      { return m.withN(-m.n) }
func (m *MonthOffset) Base() Offset     { return m.withN(1) }
func (m *MonthOffset) Copy() Offset     { return m.withN(m.n) }

func (m *MonthOffset) Name() string     { return m.kind.name }
func (m *MonthOffset) RuleCode() string { return m.kind.code }

func (m *MonthOffset) FreqStr() string {
	return m.freqstr(m.RuleCode())
}

func (m *MonthOffset) String() string {
	return m.repr(m.Name(), "")
}

func (m *MonthOffset) Key() string {
	return m.id
}

func (m *MonthOffset) buildKey() string {
	if m.cal == nil {
		return m.key(m.Name())
	}
	return m.key(m.Name(), m.cal.params()...)
}

func (m *MonthOffset) Equal(other Offset) bool {
	return equal(m, other)
}

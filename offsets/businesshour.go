package offsets

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/aouyang1/go-frequency/timestamp"
)

const day = 24 * time.Hour

// BusinessHourOptions configure a BusinessHour. Start and End pair up into opening
// intervals in "HH:MM" format. An interval whose end is not after its start runs
// past midnight.
type BusinessHourOptions struct {
	Normalize bool     `json:"normalize"`
	Start     []string `json:"start"`
	End       []string `json:"end"`
}

func NewDefaultBusinessHourOptions() *BusinessHourOptions {
	return &BusinessHourOptions{
		Start: []string{"09:00"},
		End:   []string{"17:00"},
	}
}

// businessHours steps through opening intervals of business days. All methods take
// wall clock times.
type businessHours struct {
	base
	start []time.Duration
	end   []time.Duration
	days  dayCalendar
}

func newBusinessHours(n int, normalize bool, start, end []string, days dayCalendar) (businessHours, error) {
	bh := businessHours{
		base: base{n: n, normalize: normalize},
		days: days,
	}
	if len(start) == 0 {
		return bh, ErrNoStartTime
	}
	if len(end) == 0 {
		return bh, ErrNoEndTime
	}

	starts, err := parseTimesOfDay(start)
	if err != nil {
		return bh, err
	}
	ends, err := parseTimesOfDay(end)
	if err != nil {
		return bh, err
	}
	if len(starts) != len(ends) {
		return bh, ErrStartEndMismatch
	}

	order := make([]int, len(starts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return starts[order[i]] < starts[order[j]]
	})
	bh.start = make([]time.Duration, len(order))
	bh.end = make([]time.Duration, len(order))
	for i, o := range order {
		bh.start[i] = starts[o]
		bh.end[i] = ends[o]
	}

	// the open and closed spans of a valid schedule tile exactly one day
	var total time.Duration
	for i := range bh.start {
		total += spanDuration(bh.start[i], bh.end[i])
		total += spanDuration(bh.end[i], bh.start[(i+1)%len(bh.start)])
	}
	if total != day {
		return bh, ErrOverlappingHours
	}
	return bh, nil
}

func parseTimesOfDay(values []string) ([]time.Duration, error) {
	out := make([]time.Duration, len(values))
	for i, v := range values {
		tod, err := time.Parse("15:04", strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%w, %q", ErrInvalidTime, v)
		}
		out[i] = time.Duration(tod.Hour())*time.Hour + time.Duration(tod.Minute())*time.Minute
	}
	return out, nil
}

// spanDuration is the length from one time of day to the next occurrence of another,
// wrapping past midnight when end is not after start.
func spanDuration(start, end time.Duration) time.Duration {
	if start < end {
		return end - start
	}
	return end + day - start
}

func (b businessHours) forward() bool {
	return b.n >= 0
}

// openingTime returns the closest opening time in the given direction. Openings at
// t itself count.
func (b businessHours) openingTime(t time.Time, forward bool) time.Time {
	earliest, latest := b.start[0], b.start[len(b.start)-1]
	step := -1
	if forward {
		step = 1
	}

	var tod time.Duration
	cur := timestamp.TimeOfDay(t)
	switch {
	case !b.days.isBusinessDay(t):
		t = b.days.addBusinessDays(t, step)
		if forward {
			tod = earliest
		} else {
			tod = latest
		}
	case forward:
		if latest < cur {
			t = b.days.addBusinessDays(t, step)
			tod = earliest
			break
		}
		for _, st := range b.start {
			if cur <= st {
				tod = st
				break
			}
		}
	default:
		if cur < earliest {
			t = b.days.addBusinessDays(t, step)
			tod = latest
			break
		}
		for i := len(b.start) - 1; i >= 0; i-- {
			if cur >= b.start[i] {
				tod = b.start[i]
				break
			}
		}
	}
	return timestamp.AtTimeOfDay(t, tod)
}

// nextOpeningTime is the opening reached first when stepping in the direction of n.
func (b businessHours) nextOpeningTime(t time.Time) time.Time {
	return b.openingTime(t, b.forward())
}

// prevOpeningTime is the opening reached first when stepping against n.
func (b businessHours) prevOpeningTime(t time.Time) time.Time {
	return b.openingTime(t, !b.forward())
}

// interval returns the length of the interval opening at the time of day of t.
func (b businessHours) interval(t time.Time) time.Duration {
	tod := timestamp.TimeOfDay(t).Truncate(time.Minute)
	for i, st := range b.start {
		if st == tod {
			return spanDuration(st, b.end[i])
		}
	}
	return 0
}

// closingTime returns the close of the interval opening at t.
func (b businessHours) closingTime(opening time.Time) time.Time {
	return opening.Add(b.interval(opening))
}

// totalHours is the open time of one business day.
func (b businessHours) totalHours() time.Duration {
	var total time.Duration
	for i := range b.start {
		total += spanDuration(b.start[i], b.end[i])
	}
	return total
}

// onOffset reports whether t lies in an opening interval, boundaries included.
func (b businessHours) onOffset(t time.Time) bool {
	op := b.openingTime(t, false)
	return t.Sub(op) <= b.interval(op)
}

func (b businessHours) isStart(tod time.Duration) bool {
	return slices.Contains(b.start, tod)
}

func (b businessHours) isEnd(tod time.Duration) bool {
	return slices.Contains(b.end, tod)
}

// step moves t by n business hours. Sub microsecond precision is dropped while
// stepping and only used to break ties at interval boundaries.
func (b businessHours) step(t time.Time) time.Time {
	if b.n == 0 {
		if b.onOffset(t) {
			return t
		}
		return b.nextOpeningTime(t)
	}

	nano := time.Duration(t.Nanosecond() % 1000)
	t = t.Add(-nano)

	if b.n > 0 {
		if b.isEnd(timestamp.TimeOfDay(t)) || !b.onOffset(t) {
			t = b.nextOpeningTime(t)
		}
	} else {
		if b.isStart(timestamp.TimeOfDay(t)) {
			// move into the previous business day
			t = t.Add(-time.Second)
		}
		if !b.onOffset(t) {
			t = b.closingTime(b.nextOpeningTime(t))
		}
	}

	bd, r := stepDays(b.n, b.totalHours())
	if bd != 0 {
		// an interval running past midnight can leave t on a non business day
		if !b.days.isBusinessDay(t) {
			prevOpen := b.prevOpeningTime(t)
			remain := t.Sub(prevOpen)
			t = b.days.addBusinessDays(prevOpen, bd).Add(remain)
		} else {
			t = b.days.addBusinessDays(t, bd)
		}
	}

	remain := r
	if b.n > 0 {
		for remain != 0 {
			left := b.closingTime(b.prevOpeningTime(t)).Sub(t)
			if remain < left {
				t = t.Add(remain)
				remain = 0
			} else {
				remain -= left
				t = b.nextOpeningTime(t.Add(left))
			}
		}
		return t
	}

	for remain != 0 {
		left := b.nextOpeningTime(t).Sub(t)
		if remain > left || (remain == left && nano != 0) {
			t = t.Add(remain)
			remain = 0
		} else {
			remain -= left
			t = b.closingTime(b.nextOpeningTime(t.Add(left - time.Second)))
		}
	}
	return t
}

// stepDays splits n hours into whole business days and remaining minutes, both
// carrying the sign of n.
func stepDays(n int, businessHours time.Duration) (int, time.Duration) {
	minutes := n * 60
	if minutes < 0 {
		minutes = -minutes
	}
	perDay := int(businessHours / time.Minute)
	bd, r := minutes/perDay, minutes%perDay
	if n < 0 {
		bd, r = -bd, -r
	}
	return bd, time.Duration(r) * time.Minute
}

// rollback returns the close of the latest interval opening at or before t.
func (b businessHours) rollback(t time.Time) time.Time {
	return b.closingTime(b.openingTime(t, false))
}

// rollforward returns the earliest opening at or after t.
func (b businessHours) rollforward(t time.Time) time.Time {
	return b.openingTime(t, true)
}

// isOnOffset adds the normalize precondition to onOffset for zone aware t.
func (b businessHours) isOnOffset(t time.Time) bool {
	if timestamp.IsNaT(t) || !b.onOffsetNormalized(t) {
		return false
	}
	return b.onOffset(timestamp.Wall(t))
}

func (b businessHours) hours() []string {
	out := make([]string, len(b.start))
	for i := range b.start {
		out[i] = formatTimeOfDay(b.start[i]) + "-" + formatTimeOfDay(b.end[i])
	}
	return out
}

func (b businessHours) starts() []string {
	out := make([]string, len(b.start))
	for i, st := range b.start {
		out[i] = formatTimeOfDay(st)
	}
	return out
}

func (b businessHours) ends() []string {
	out := make([]string, len(b.end))
	for i, en := range b.end {
		out[i] = formatTimeOfDay(en)
	}
	return out
}

func (b businessHours) attrs(code string) string {
	return ": " + code + "=" + strings.Join(b.hours(), ",")
}

func formatTimeOfDay(tod time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(tod/time.Hour), int((tod%time.Hour)/time.Minute))
}

// BusinessHour steps n hours within business hours of Monday to Friday.
type BusinessHour struct {
	businessHours
}

func NewBusinessHour(n int, opt *BusinessHourOptions) (*BusinessHour, error) {
	if opt == nil {
		opt = NewDefaultBusinessHourOptions()
	}
	bh, err := newBusinessHours(n, opt.Normalize, opt.Start, opt.End, weekdays{})
	if err != nil {
		return nil, err
	}
	return &BusinessHour{businessHours: bh}, nil
}

// Start returns the sorted opening times, e.g. ["09:00"].
func (b *BusinessHour) Start() []string {
	return b.starts()
}

// End returns the closing times matching Start.
func (b *BusinessHour) End() []string {
	return b.ends()
}

func (b *BusinessHour) withN(n int) *BusinessHour {
	out := *b
	out.n = n
	return &out
}

func (b *BusinessHour) Apply(t time.Time) (time.Time, error) {
	return b.wrap(t, b.step)
}

// Rollback moves t to the close of the previous interval when it is outside
// business hours.
func (b *BusinessHour) Rollback(t time.Time) (time.Time, error) {
	if !timestamp.IsNaT(t) && b.OnOffset(t) {
		return t, nil
	}
	return b.wrap(t, b.rollback)
}

// Rollforward moves t to the next opening when it is outside business hours.
func (b *BusinessHour) Rollforward(t time.Time) (time.Time, error) {
	if !timestamp.IsNaT(t) && b.OnOffset(t) {
		return t, nil
	}
	return b.wrap(t, b.rollforward)
}

func (b *BusinessHour) OnOffset(t time.Time) bool {
	return b.isOnOffset(t)
}

func (b *BusinessHour) Mul(k int) Offset { return b.withN(b.n * k) }
func (b *BusinessHour) Neg() Offset      { return b.withN(-b.n) }
func (b *BusinessHour) Base() Offset     { return b.withN(1) }
func (b *BusinessHour) Copy() Offset     { return b.withN(b.n) }

func (b *BusinessHour) Name() string     { return "BusinessHour" }
func (b *BusinessHour) RuleCode() string { return "BH" }

func (b *BusinessHour) FreqStr() string {
	return b.freqstr(b.RuleCode())
}

func (b *BusinessHour) String() string {
	return b.repr(b.Name(), b.attrs(b.RuleCode()))
}

func (b *BusinessHour) Key() string {
	return b.key(b.Name(), "hours="+strings.Join(b.hours(), ","))
}

func (b *BusinessHour) Equal(other Offset) bool {
	return equal(b, other)
}

// CustomBusinessHourOptions configure a CustomBusinessHour.
type CustomBusinessHourOptions struct {
	CalendarOptions
	Normalize bool     `json:"normalize"`
	Start     []string `json:"start"`
	End       []string `json:"end"`
}

func NewDefaultCustomBusinessHourOptions() *CustomBusinessHourOptions {
	return &CustomBusinessHourOptions{
		CalendarOptions: NewDefaultCalendarOptions(),
		Start:           []string{"09:00"},
		End:             []string{"17:00"},
	}
}

// CustomBusinessHour steps n hours within business hours of the days allowed by a
// weekmask that are not holidays.
type CustomBusinessHour struct {
	businessHours
	cal *busCalendar
	id  string
}

func NewCustomBusinessHour(n int, opt *CustomBusinessHourOptions) (*CustomBusinessHour, error) {
	if opt == nil {
		opt = NewDefaultCustomBusinessHourOptions()
	}
	cal, err := newBusCalendar(opt.CalendarOptions)
	if err != nil {
		return nil, err
	}
	bh, err := newBusinessHours(n, opt.Normalize, opt.Start, opt.End, cal)
	if err != nil {
		return nil, err
	}
	c := &CustomBusinessHour{businessHours: bh, cal: cal}
	c.id = c.buildKey()
	return c, nil
}

func (c *CustomBusinessHour) Start() []string {
	return c.starts()
}

func (c *CustomBusinessHour) End() []string {
	return c.ends()
}

func (c *CustomBusinessHour) Weekmask() Weekmask {
	return c.cal.weekmask
}

func (c *CustomBusinessHour) Holidays() []time.Time {
	return c.cal.options().Holidays
}

func (c *CustomBusinessHour) withN(n int) *CustomBusinessHour {
	out := *c
	out.n = n
	out.id = out.buildKey()
	return &out
}

func (c *CustomBusinessHour) Apply(t time.Time) (time.Time, error) {
	return c.wrap(t, c.step)
}

func (c *CustomBusinessHour) Rollback(t time.Time) (time.Time, error) {
	if !timestamp.IsNaT(t) && c.OnOffset(t) {
		return t, nil
	}
	return c.wrap(t, c.rollback)
}

func (c *CustomBusinessHour) Rollforward(t time.Time) (time.Time, error) {
	if !timestamp.IsNaT(t) && c.OnOffset(t) {
		return t, nil
	}
	return c.wrap(t, c.rollforward)
}

func (c *CustomBusinessHour) OnOffset(t time.Time) bool {
	return c.isOnOffset(t)
}

func (c *CustomBusinessHour) Mul(k int) Offset { return c.withN(c.n * k) }
func (c *CustomBusinessHour) Neg() Offset      { return c.withN(-c.n) }
func (c *CustomBusinessHour) Base() Offset     { return c.withN(1) }
func (c *CustomBusinessHour) Copy() Offset     { return c.withN(c.n) }

func (c *CustomBusinessHour) Name() string     { return "CustomBusinessHour" }
func (c *CustomBusinessHour) RuleCode() string { return "CBH" }

func (c *CustomBusinessHour) FreqStr() string {
	return c.freqstr(c.RuleCode())
}

func (c *CustomBusinessHour) String() string {
	return c.repr(c.Name(), c.attrs(c.RuleCode()))
}

func (c *CustomBusinessHour) Key() string {
	return c.id
}

func (c *CustomBusinessHour) buildKey() string {
	return c.key(c.Name(), append([]string{"hours=" + strings.Join(c.hours(), ",")}, c.cal.params()...)...)
}

func (c *CustomBusinessHour) Equal(other Offset) bool {
	return equal(c, other)
}

package offsets

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/aouyang1/go-frequency/holiday"
)

// DefaultWeekmask is the Monday to Friday work week.
const DefaultWeekmask = "Mon Tue Wed Thu Fri"

var weekmaskDays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Weekmask flags the valid business weekdays, index 0 is Monday.
type Weekmask [7]bool

// ParseWeekmask accepts either day abbreviations, e.g. "Mon Tue Wed Thu Fri", or a
// seven character string of 0 and 1, e.g. "1111100".
func ParseWeekmask(s string) (Weekmask, error) {
	var mask Weekmask

	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	if len(compact) == 7 && strings.Trim(compact, "01") == "" {
		for i, c := range compact {
			mask[i] = c == '1'
		}
		return mask, mask.validate()
	}

	if len(compact)%3 != 0 {
		return mask, fmt.Errorf("%w, %q", ErrInvalidWeekmask, s)
	}
	for i := 0; i < len(compact); i += 3 {
		token := compact[i : i+3]
		idx := slices.IndexFunc(weekmaskDays[:], func(d string) bool {
			return strings.EqualFold(d, token)
		})
		if idx < 0 {
			return mask, fmt.Errorf("%w, unknown day %q in %q", ErrInvalidWeekmask, token, s)
		}
		mask[idx] = true
	}
	return mask, mask.validate()
}

// WeekmaskFromBits converts a seven element boolean list into a Weekmask.
func WeekmaskFromBits(bits []bool) (Weekmask, error) {
	var mask Weekmask
	if len(bits) != 7 {
		return mask, fmt.Errorf("%w, expected 7 values but got %d", ErrInvalidWeekmask, len(bits))
	}
	copy(mask[:], bits)
	return mask, mask.validate()
}

func (w Weekmask) validate() error {
	if !slices.Contains(w[:], true) {
		return fmt.Errorf("%w, at least one weekday must be valid", ErrInvalidWeekmask)
	}
	return nil
}

// String returns the day abbreviations of the mask, e.g. "Mon Tue Wed Thu Fri".
func (w Weekmask) String() string {
	days := make([]string, 0, 7)
	for i, valid := range w {
		if valid {
			days = append(days, weekmaskDays[i])
		}
	}
	return strings.Join(days, " ")
}

// CalendarOptions configure which days custom business offsets treat as business days.
type CalendarOptions struct {
	Weekmask     string      `json:"weekmask"`
	WeekmaskBits []bool      `json:"weekmask_bits"`
	Holidays     []time.Time `json:"holidays"`

	// Calendar holidays within [holiday.DefaultStart, holiday.DefaultEnd] are merged
	// with Holidays at construction.
	Calendar holiday.Calendar `json:"-"`
}

func NewDefaultCalendarOptions() CalendarOptions {
	return CalendarOptions{
		Weekmask: DefaultWeekmask,
	}
}

// dayCalendar decides which days are business days and steps between them keeping
// the time of day. Timestamps are wall clock times.
type dayCalendar interface {
	isBusinessDay(t time.Time) bool
	addBusinessDays(t time.Time, n int) time.Time
}

// weekdays is the Monday to Friday calendar without holidays.
type weekdays struct{}

func (weekdays) isBusinessDay(t time.Time) bool {
	return weekday(t) < 5
}

// addBusinessDays moves whole weeks first and then the remaining days, landing on
// the previous Friday or the next Monday from a weekend.
func (weekdays) addBusinessDays(t time.Time, n int) time.Time {
	wday := weekday(t)

	weeks := floorDiv(n, 5)
	if n <= 0 && wday > 4 {
		n++
	}
	n -= 5 * weeks

	var days int
	switch {
	case n == 0 && wday > 4:
		days = 4 - wday
	case wday > 4:
		days = (7 - wday) + (n - 1)
	case wday+n <= 4:
		days = n
	default:
		days = n + 2
	}
	return t.AddDate(0, 0, 7*weeks+days)
}

// everyDay treats every calendar day as a business day.
type everyDay struct{}

func (everyDay) isBusinessDay(time.Time) bool {
	return true
}

func (everyDay) addBusinessDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// busCalendar is a weekmask and holiday aware calendar.
type busCalendar struct {
	weekmask Weekmask
	holidays []time.Time
	excluded map[int64]struct{}
}

func newBusCalendar(opt CalendarOptions) (*busCalendar, error) {
	var mask Weekmask
	var err error
	switch {
	case opt.WeekmaskBits != nil:
		mask, err = WeekmaskFromBits(opt.WeekmaskBits)
	case opt.Weekmask == "":
		mask, err = ParseWeekmask(DefaultWeekmask)
	default:
		mask, err = ParseWeekmask(opt.Weekmask)
	}
	if err != nil {
		return nil, err
	}

	days := slices.Clone(opt.Holidays)
	if opt.Calendar != nil {
		days = append(days, opt.Calendar.Holidays(holiday.DefaultStart, holiday.DefaultEnd)...)
	}
	days = holiday.Normalize(days)

	excluded := make(map[int64]struct{}, len(days))
	for _, d := range days {
		excluded[dayNumber(d)] = struct{}{}
	}

	return &busCalendar{
		weekmask: mask,
		holidays: days,
		excluded: excluded,
	}, nil
}

func (c *busCalendar) isBusinessDay(t time.Time) bool {
	if !c.weekmask[weekday(t)] {
		return false
	}
	_, isHoliday := c.excluded[dayNumber(t)]
	return !isHoliday
}

// addBusinessDays first rolls an invalid day backward when n > 0 and forward
// otherwise, then counts n valid days in the direction of n.
func (c *busCalendar) addBusinessDays(t time.Time, n int) time.Time {
	step := 1
	if n > 0 {
		step = -1
	}
	for !c.isBusinessDay(t) {
		t = t.AddDate(0, 0, step)
	}

	step = 1
	if n < 0 {
		step = -1
		n = -n
	}
	for n > 0 {
		t = t.AddDate(0, 0, step)
		if c.isBusinessDay(t) {
			n--
		}
	}
	return t
}

func (c *busCalendar) holidayStrings() []string {
	out := make([]string, len(c.holidays))
	for i, d := range c.holidays {
		out[i] = d.Format(time.DateOnly)
	}
	return out
}

func (c *busCalendar) params() []string {
	return []string{
		"weekmask=" + c.weekmask.String(),
		"holidays=[" + strings.Join(c.holidayStrings(), " ") + "]",
	}
}

// options returns calendar options that rebuild an equal calendar.
func (c *busCalendar) options() CalendarOptions {
	return CalendarOptions{
		Weekmask: c.weekmask.String(),
		Holidays: slices.Clone(c.holidays),
	}
}

// dayNumber is the count of days since the epoch of the wall clock date of t.
func dayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// rollDay moves t one day at a time until it is a business day.
func rollDay(c dayCalendar, t time.Time, forward bool) time.Time {
	step := -1
	if forward {
		step = 1
	}
	for !c.isBusinessDay(t) {
		t = t.AddDate(0, 0, step)
	}
	return t
}

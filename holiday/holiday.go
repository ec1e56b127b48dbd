// Package holiday provides holiday calendars that custom business day offsets use to
// exclude dates.
package holiday

import (
	"log/slog"
	"slices"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"

	"github.com/aouyang1/go-frequency/timestamp"
)

var (
	// DefaultStart and DefaultEnd bound the holidays merged into an offset when it is
	// constructed with a calendar.
	DefaultStart = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	DefaultEnd   = time.Date(2200, 12, 31, 0, 0, 0, 0, time.UTC)
)

// Calendar yields holiday dates within [start, end]. Returned dates are midnight UTC
// wall clock dates, sorted and unique.
type Calendar interface {
	Holidays(start, end time.Time) []time.Time
}

// Dates is a fixed list of holidays.
type Dates []time.Time

func (d Dates) Holidays(start, end time.Time) []time.Time {
	lo, hi := Date(start), Date(end)

	out := make([]time.Time, 0, len(d))
	for _, hol := range d {
		day := Date(hol)
		if day.Before(lo) || day.After(hi) {
			continue
		}
		out = append(out, day)
	}
	return Normalize(out)
}

// RulesCalendar computes observed holiday dates from rules.
type RulesCalendar struct {
	Name  string
	Rules []*cal.Holiday
}

func NewRulesCalendar(name string, rules ...*cal.Holiday) *RulesCalendar {
	return &RulesCalendar{
		Name:  name,
		Rules: rules,
	}
}

// NewUSFederalHolidayCalendar returns the US federal holidays with weekend
// observance.
func NewUSFederalHolidayCalendar() *RulesCalendar {
	return NewRulesCalendar(
		"USFederalHolidayCalendar",
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ColumbusDay,
		us.VeteransDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)
}

func (c *RulesCalendar) Holidays(start, end time.Time) []time.Time {
	lo, hi := Date(start), Date(end)

	var out []time.Time
	// observed dates can shift into the neighboring year
	for year := lo.Year() - 1; year <= hi.Year()+1; year++ {
		for _, hol := range c.Rules {
			_, observed := hol.Calc(year)
			if observed.IsZero() {
				slog.Debug("holiday not observed in year", "calendar", c.Name, "holiday", hol.Name, "year", year)
				continue
			}
			day := Date(observed)
			if day.Before(lo) || day.After(hi) {
				continue
			}
			out = append(out, day)
		}
	}
	return Normalize(out)
}

// Date returns the wall clock date of t as midnight UTC.
func Date(t time.Time) time.Time {
	return timestamp.Normalize(timestamp.Wall(t))
}

// Normalize converts holidays to wall clock dates, sorts them and removes duplicates.
func Normalize(days []time.Time) []time.Time {
	out := make([]time.Time, 0, len(days))
	for _, d := range days {
		if timestamp.IsNaT(d) {
			continue
		}
		out = append(out, Date(d))
	}
	slices.SortFunc(out, func(a, b time.Time) int {
		return a.Compare(b)
	})
	return slices.CompactFunc(out, func(a, b time.Time) bool {
		return a.Equal(b)
	})
}

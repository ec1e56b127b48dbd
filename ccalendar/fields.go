package ccalendar

import "time"

// Month position tags returned by MonthPositionCheck.
const (
	CalendarStart = "cs"
	BusinessStart = "bs"
	CalendarEnd   = "ce"
	BusinessEnd   = "be"
)

// Fields is the per element calendar decomposition of a sequence of wall clock
// nanosecond values.
type Fields struct {
	Year        []int
	Month       []int
	Day         []int
	Hour        []int
	Minute      []int
	Second      []int
	Microsecond []int
	DayOfWeek   []int
}

func (f Fields) Len() int {
	return len(f.Year)
}

// BuildFields decomposes wall clock nanoseconds since the epoch into calendar fields.
func BuildFields(values []int64) Fields {
	n := len(values)
	f := Fields{
		Year:        make([]int, n),
		Month:       make([]int, n),
		Day:         make([]int, n),
		Hour:        make([]int, n),
		Minute:      make([]int, n),
		Second:      make([]int, n),
		Microsecond: make([]int, n),
		DayOfWeek:   make([]int, n),
	}
	for i, v := range values {
		t := time.Unix(0, v).UTC()
		f.Year[i] = t.Year()
		f.Month[i] = int(t.Month())
		f.Day[i] = t.Day()
		f.Hour[i] = t.Hour()
		f.Minute[i] = t.Minute()
		f.Second[i] = t.Second()
		f.Microsecond[i] = t.Nanosecond() / 1000
		f.DayOfWeek[i] = DayOfWeek(f.Year[i], f.Month[i], f.Day[i])
	}
	return f
}

// MonthPositionCheck reports whether every date is at the calendar or business start
// or end of its month. Returns "" if no single position describes all of them. End
// positions take precedence over start positions and calendar over business.
func MonthPositionCheck(f Fields) string {
	calendarStart, businessStart := true, true
	calendarEnd, businessEnd := true, true

	for i := 0; i < f.Len(); i++ {
		y, m, d, wd := f.Year[i], f.Month[i], f.Day[i], f.DayOfWeek[i]

		if calendarStart {
			calendarStart = d == 1
		}
		if businessStart {
			businessStart = d == 1 || (d <= 3 && wd == 0)
		}

		if calendarEnd || businessEnd {
			daysInMonth := DaysInMonth(y, m)
			cal := d == daysInMonth
			if calendarEnd {
				calendarEnd = cal
			}
			if businessEnd {
				businessEnd = cal || (daysInMonth-d < 3 && wd == 4)
			}
		} else if !calendarStart && !businessStart {
			break
		}
	}

	switch {
	case calendarEnd:
		return CalendarEnd
	case businessEnd:
		return BusinessEnd
	case calendarStart:
		return CalendarStart
	case businessStart:
		return BusinessStart
	default:
		return ""
	}
}

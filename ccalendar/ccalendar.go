// Package ccalendar contains proleptic Gregorian calendar primitives and the fixed
// English month and weekday tables used by frequency aliases.
package ccalendar

// Days are the weekday abbreviations starting from Monday.
var Days = [7]string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

// Months are the month abbreviations starting from January.
var Months = [12]string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

var (
	// MonthAliases maps a 1 based month number to its abbreviation.
	MonthAliases = map[int]string{}

	// MonthNumbers maps a month abbreviation to its 0 based index.
	MonthNumbers = map[string]int{}

	// WeekdayToInt maps a weekday abbreviation to 0=MON..6=SUN.
	WeekdayToInt = map[string]int{}

	// IntToWeekday maps 0=MON..6=SUN to the weekday abbreviation.
	IntToWeekday = map[int]string{}
)

func init() {
	for i, m := range Months {
		MonthAliases[i+1] = m
		MonthNumbers[m] = i
	}
	for i, d := range Days {
		WeekdayToInt[d] = i
		IntToWeekday[i] = d
	}
}

var daysPerMonth = [2][12]int{
	{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
	{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
}

// cumulative days before each month
var monthOffset = [2][13]int{
	{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365},
	{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335, 366},
}

var sakamoto = [12]int{0, 3, 2, 5, 0, 3, 5, 1, 4, 6, 2, 4}

func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func leapIdx(year int) int {
	if IsLeapYear(year) {
		return 1
	}
	return 0
}

// DaysInMonth returns the number of days in month (1-12) of year.
func DaysInMonth(year, month int) int {
	return daysPerMonth[leapIdx(year)][month-1]
}

// DayOfYear returns the 1 based ordinal day of the date within its year.
func DayOfYear(year, month, day int) int {
	return monthOffset[leapIdx(year)][month-1] + day
}

// DayOfWeek returns the weekday of the date where 0 is Monday and 6 is Sunday.
func DayOfWeek(year, month, day int) int {
	y := year
	if month < 3 {
		y--
	}
	dow := (y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) + sakamoto[month-1] + day) % 7
	if dow < 0 {
		dow += 7
	}
	// sakamoto counts from Sunday
	return (dow + 6) % 7
}

// ISOCalendar returns the ISO 8601 year, week number and weekday (1=Monday..7=Sunday)
// of the date.
func ISOCalendar(year, month, day int) (int, int, int) {
	doy := DayOfYear(year, month, day)
	dow := DayOfWeek(year, month, day)

	isoWeek := (doy - 1) - dow + 3
	if isoWeek >= 0 {
		isoWeek = isoWeek/7 + 1
	}

	if isoWeek < 0 {
		if isoWeek > -2 || (isoWeek == -2 && IsLeapYear(year-1)) {
			isoWeek = 53
		} else {
			isoWeek = 52
		}
	} else if isoWeek == 53 {
		if 31-day+dow < 3 {
			isoWeek = 1
		}
	}

	isoYear := year
	if isoWeek == 1 && month == 12 {
		isoYear++
	} else if isoWeek >= 52 && month == 1 {
		isoYear--
	}
	return isoYear, isoWeek, dow + 1
}

// WeekOfYear returns the ISO 8601 week number of the date.
func WeekOfYear(year, month, day int) int {
	_, week, _ := ISOCalendar(year, month, day)
	return week
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

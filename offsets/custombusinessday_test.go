package offsets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aouyang1/go-frequency/holiday"
)

func mustCustomBusinessDay(t *testing.T, n int, opt *CustomBusinessDayOptions) *CustomBusinessDay {
	t.Helper()
	c, err := NewCustomBusinessDay(n, opt)
	require.NoError(t, err)
	return c
}

func TestParseWeekmask(t *testing.T) {
	testData := map[string]struct {
		in       string
		expected Weekmask
		err      error
	}{
		"default":      {DefaultWeekmask, Weekmask{true, true, true, true, true, false, false}, nil},
		"bits":         {"1111100", Weekmask{true, true, true, true, true, false, false}, nil},
		"uae bits":     {"1111001", Weekmask{true, true, true, true, false, false, true}, nil},
		"egypt":        {"Sun Mon Tue Wed Thu", Weekmask{true, true, true, true, false, false, true}, nil},
		"mixed case":   {"monTUE", Weekmask{true, true, false, false, false, false, false}, nil},
		"no days":      {"0000000", Weekmask{}, ErrInvalidWeekmask},
		"unknown day":  {"Mon Foo", Weekmask{}, ErrInvalidWeekmask},
		"separator":    {"Mon,Tue", Weekmask{}, ErrInvalidWeekmask},
		"empty string": {"", Weekmask{}, ErrInvalidWeekmask},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			mask, err := ParseWeekmask(td.in)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.expected, mask)
		})
	}
}

func TestWeekmaskFromBits(t *testing.T) {
	mask, err := WeekmaskFromBits([]bool{true, true, true, true, true, false, false})
	require.NoError(t, err)
	assert.Equal(t, "Mon Tue Wed Thu Fri", mask.String())

	_, err = WeekmaskFromBits([]bool{true, true})
	assert.ErrorIs(t, err, ErrInvalidWeekmask)

	_, err = WeekmaskFromBits(make([]bool, 7))
	assert.ErrorIs(t, err, ErrInvalidWeekmask)
}

func TestCustomBusinessDayMatchesBusinessDay(t *testing.T) {
	for d := date(2007, 12, 20); d.Before(date(2008, 2, 10)); d = d.Add(7 * time.Hour) {
		for n := -6; n <= 6; n++ {
			expected, err := NewBusinessDay(n, nil).Apply(d)
			require.NoError(t, err)
			res, err := mustCustomBusinessDay(t, n, nil).Apply(d)
			require.NoError(t, err)
			assert.Equal(t, expected, res, "%s with n=%d", d, n)
		}
	}
}

func TestCustomBusinessDayWeekmask(t *testing.T) {
	testData := map[string]struct {
		opt      *CustomBusinessDayOptions
		n        int
		expected time.Time
	}{
		"saudi one": {
			opt:      &CustomBusinessDayOptions{CalendarOptions: CalendarOptions{Weekmask: "Sat Sun Mon Tue Wed"}},
			n:        1,
			expected: date(2013, 5, 4),
		},
		"uae one": {
			opt:      &CustomBusinessDayOptions{CalendarOptions: CalendarOptions{Weekmask: "1111001"}},
			n:        1,
			expected: date(2013, 5, 2),
		},
		"saudi two": {
			opt:      &CustomBusinessDayOptions{CalendarOptions: CalendarOptions{Weekmask: "Sat Sun Mon Tue Wed"}},
			n:        2,
			expected: date(2013, 5, 5),
		},
		"uae two": {
			opt:      &CustomBusinessDayOptions{CalendarOptions: CalendarOptions{Weekmask: "1111001"}},
			n:        2,
			expected: date(2013, 5, 5),
		},
		"bits": {
			opt: &CustomBusinessDayOptions{CalendarOptions: CalendarOptions{
				WeekmaskBits: []bool{true, true, true, true, false, false, true},
			}},
			n:        2,
			expected: date(2013, 5, 5),
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := mustCustomBusinessDay(t, td.n, td.opt).Apply(date(2013, 5, 1))
			require.NoError(t, err)
			assert.Equal(t, td.expected, res)
		})
	}
}

func TestCustomBusinessDayHolidays(t *testing.T) {
	holidays := []time.Time{date(2012, 5, 1), date(2013, 5, 1), dt(2014, 5, 1, 12, 0)}
	cday := mustCustomBusinessDay(t, 1, &CustomBusinessDayOptions{
		CalendarOptions: CalendarOptions{Holidays: holidays},
	})

	for _, year := range []int{2012, 2013, 2014} {
		res, err := cday.Apply(date(year, 4, 30))
		require.NoError(t, err)
		assert.Equal(t, date(year, 5, 2), res)
	}

	assert.Equal(t, []time.Time{date(2012, 5, 1), date(2013, 5, 1), date(2014, 5, 1)}, cday.Holidays())
	assert.False(t, cday.OnOffset(date(2013, 5, 1)))
	assert.True(t, cday.OnOffset(date(2013, 5, 2)))
}

func TestCustomBusinessDayWeekmaskAndHolidays(t *testing.T) {
	egypt := mustCustomBusinessDay(t, 2, &CustomBusinessDayOptions{
		CalendarOptions: CalendarOptions{
			Weekmask: "Sun Mon Tue Wed Thu",
			Holidays: []time.Time{date(2012, 5, 1), date(2013, 5, 1), date(2014, 5, 1)},
		},
	})

	res, err := egypt.Apply(date(2013, 4, 30))
	require.NoError(t, err)
	assert.Equal(t, date(2013, 5, 5), res)
	assert.Equal(t, "Mon Tue Wed Thu Sun", egypt.Weekmask().String())
}

func TestCustomBusinessDayCalendar(t *testing.T) {
	cday := mustCustomBusinessDay(t, 1, &CustomBusinessDayOptions{
		CalendarOptions: CalendarOptions{Calendar: holiday.NewUSFederalHolidayCalendar()},
	})

	// 2014-01-20 is Martin Luther King Jr. Day
	res, err := cday.Apply(date(2014, 1, 17))
	require.NoError(t, err)
	assert.Equal(t, date(2014, 1, 21), res)

	back, err := cday.Neg().Apply(date(2014, 1, 21))
	require.NoError(t, err)
	assert.Equal(t, date(2014, 1, 17), back)

	assert.Contains(t, cday.Holidays(), date(2014, 1, 20))
	assert.Contains(t, cday.Holidays(), date(2014, 12, 25))
}

func TestCustomBusinessDayRoll(t *testing.T) {
	cday := mustCustomBusinessDay(t, 1, &CustomBusinessDayOptions{
		CalendarOptions: CalendarOptions{Holidays: []time.Time{date(2014, 7, 4)}},
	})

	back, err := cday.Rollback(date(2014, 7, 5))
	require.NoError(t, err)
	assert.Equal(t, date(2014, 7, 3), back)

	fwd, err := cday.Rollforward(date(2014, 7, 4))
	require.NoError(t, err)
	assert.Equal(t, date(2014, 7, 7), fwd)

	same, err := cday.Rollback(date(2014, 7, 3))
	require.NoError(t, err)
	assert.Equal(t, date(2014, 7, 3), same)
}

func TestCustomBusinessDayRepr(t *testing.T) {
	assert.Equal(t, "<CustomBusinessDay>", mustCustomBusinessDay(t, 1, nil).String())
	assert.Equal(t, "<2 * CustomBusinessDays>", mustCustomBusinessDay(t, 2, nil).String())
	assert.Equal(t, "C", mustCustomBusinessDay(t, 1, nil).FreqStr())

	opt := NewDefaultCustomBusinessDayOptions()
	opt.Offset = time.Hour
	withOffset := mustCustomBusinessDay(t, -3, opt)
	assert.Equal(t, "<-3 * CustomBusinessDays: offset=1h0m0s>", withOffset.String())
	assert.Equal(t, "-3C+1H", withOffset.FreqStr())

	res, err := withOffset.Apply(date(2008, 1, 7))
	require.NoError(t, err)
	assert.Equal(t, dt(2008, 1, 2, 1, 0), res)
}

func TestCustomBusinessDayEqual(t *testing.T) {
	a := mustCustomBusinessDay(t, 1, &CustomBusinessDayOptions{
		CalendarOptions: CalendarOptions{Holidays: []time.Time{date(2014, 7, 4), date(2014, 1, 1)}},
	})
	b := mustCustomBusinessDay(t, 1, &CustomBusinessDayOptions{
		CalendarOptions: CalendarOptions{
			Weekmask: "1111100",
			Holidays: []time.Time{date(2014, 1, 1), date(2014, 7, 4), date(2014, 7, 4)},
		},
	})
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())

	assert.False(t, a.Equal(mustCustomBusinessDay(t, 1, nil)))
	assert.False(t, a.Equal(a.Mul(2)))
	assert.True(t, a.Mul(2).Equal(b.Mul(2)))
	assert.False(t, mustCustomBusinessDay(t, 1, nil).Equal(NewBusinessDay(1, nil)))
}

func TestCustomBusinessHourApply(t *testing.T) {
	holidays := []time.Time{date(2014, 6, 27), date(2014, 6, 30), date(2014, 7, 2)}
	newCBH := func(n int) *CustomBusinessHour {
		opt := NewDefaultCustomBusinessHourOptions()
		opt.Holidays = holidays
		c, err := NewCustomBusinessHour(n, opt)
		require.NoError(t, err)
		return c
	}

	testData := map[string]struct {
		n     int
		cases map[time.Time]time.Time
	}{
		"one": {
			n: 1,
			cases: map[time.Time]time.Time{
				dt(2014, 7, 1, 11, 0):       dt(2014, 7, 1, 12, 0),
				dt(2014, 7, 1, 13, 0):       dt(2014, 7, 1, 14, 0),
				dt(2014, 7, 1, 15, 0):       dt(2014, 7, 1, 16, 0),
				dt(2014, 7, 1, 19, 0):       dt(2014, 7, 3, 10, 0),
				dt(2014, 7, 1, 16, 0):       dt(2014, 7, 3, 9, 0),
				dts(2014, 7, 1, 16, 30, 15): dts(2014, 7, 3, 9, 30, 15),
				dt(2014, 7, 1, 17, 0):       dt(2014, 7, 3, 10, 0),
				dt(2014, 7, 2, 11, 0):       dt(2014, 7, 3, 10, 0),
				dt(2014, 7, 2, 8, 0):        dt(2014, 7, 3, 10, 0),
				dt(2014, 7, 2, 19, 0):       dt(2014, 7, 3, 10, 0),
				dt(2014, 7, 2, 23, 0):       dt(2014, 7, 3, 10, 0),
				dt(2014, 7, 3, 0, 0):        dt(2014, 7, 3, 10, 0),
				dt(2014, 7, 5, 15, 0):       dt(2014, 7, 7, 10, 0),
				dt(2014, 7, 4, 17, 0):       dt(2014, 7, 7, 10, 0),
				dt(2014, 7, 4, 16, 30):      dt(2014, 7, 7, 9, 30),
				dts(2014, 7, 4, 16, 30, 30): dts(2014, 7, 7, 9, 30, 30),
			},
		},
		"negative one": {
			n: -1,
			cases: map[time.Time]time.Time{
				dt(2014, 7, 1, 11, 0):  dt(2014, 7, 1, 10, 0),
				dt(2014, 7, 1, 10, 0):  dt(2014, 6, 26, 17, 0),
				dt(2014, 7, 3, 9, 30):  dt(2014, 7, 1, 16, 30),
				dt(2014, 7, 2, 11, 0):  dt(2014, 7, 1, 16, 0),
				dt(2014, 7, 7, 9, 0):   dt(2014, 7, 4, 16, 0),
				dt(2014, 7, 1, 16, 30): dt(2014, 7, 1, 15, 30),
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assertSteps(t, newCBH(td.n), td.cases)
		})
	}
}

func TestCustomBusinessHourRoll(t *testing.T) {
	opt := NewDefaultCustomBusinessHourOptions()
	opt.Holidays = []time.Time{date(2014, 7, 2)}
	cbh, err := NewCustomBusinessHour(1, opt)
	require.NoError(t, err)

	fwd, err := cbh.Rollforward(dt(2014, 7, 2, 11, 0))
	require.NoError(t, err)
	assert.Equal(t, dt(2014, 7, 3, 9, 0), fwd)

	back, err := cbh.Rollback(dt(2014, 7, 2, 11, 0))
	require.NoError(t, err)
	assert.Equal(t, dt(2014, 7, 1, 17, 0), back)

	assert.False(t, cbh.OnOffset(dt(2014, 7, 2, 11, 0)))
	assert.True(t, cbh.OnOffset(dt(2014, 7, 3, 11, 0)))
}

func TestCustomBusinessHourWeekmask(t *testing.T) {
	opt := NewDefaultCustomBusinessHourOptions()
	opt.Weekmask = "Tue Wed Thu Fri"
	cbh, err := NewCustomBusinessHour(1, opt)
	require.NoError(t, err)

	// Monday is closed
	res, err := cbh.Apply(dt(2014, 7, 4, 16, 30))
	require.NoError(t, err)
	assert.Equal(t, dt(2014, 7, 8, 9, 30), res)

	assert.Equal(t, "<CustomBusinessHour: CBH=09:00-17:00>", cbh.String())
	assert.Equal(t, "CBH", cbh.FreqStr())
	assert.Equal(t, "Tue Wed Thu Fri", cbh.Weekmask().String())
	assert.Equal(t, []string{"09:00"}, cbh.Start())
	assert.Equal(t, []string{"17:00"}, cbh.End())
}

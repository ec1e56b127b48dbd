package offsets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aouyang1/go-frequency/timestamp"
)

func TestRange(t *testing.T) {
	testData := map[string]struct {
		start    time.Time
		end      time.Time
		periods  int
		offset   Offset
		expected []time.Time
		err      error
	}{
		"business hours": {
			start:  dt(2014, 7, 4, 15, 30),
			end:    dt(2014, 7, 7, 11, 0),
			offset: mustBusinessHour(t, 1, nil),
			expected: []time.Time{
				dt(2014, 7, 4, 15, 30),
				dt(2014, 7, 4, 16, 30),
				dt(2014, 7, 7, 9, 30),
				dt(2014, 7, 7, 10, 30),
			},
		},
		"business hours from closed": {
			start:  dt(2014, 7, 4, 18, 0),
			end:    dt(2014, 7, 7, 12, 0),
			offset: mustBusinessHour(t, 2, nil),
			expected: []time.Time{
				dt(2014, 7, 7, 9, 0),
				dt(2014, 7, 7, 11, 0),
			},
		},
		"business days": {
			start:  date(2008, 1, 1),
			end:    date(2008, 1, 10),
			offset: NewBusinessDay(1, nil),
			expected: []time.Time{
				date(2008, 1, 1), date(2008, 1, 2), date(2008, 1, 3), date(2008, 1, 4),
				date(2008, 1, 7), date(2008, 1, 8), date(2008, 1, 9), date(2008, 1, 10),
			},
		},
		"business days by periods": {
			start:    date(2008, 1, 5),
			end:      timestamp.NaT,
			periods:  3,
			offset:   NewBusinessDay(1, nil),
			expected: []time.Time{date(2008, 1, 7), date(2008, 1, 8), date(2008, 1, 9)},
		},
		"backward": {
			start:  date(2008, 1, 10),
			end:    date(2008, 1, 7),
			offset: NewBusinessDay(-1, nil),
			expected: []time.Time{
				date(2008, 1, 10), date(2008, 1, 9), date(2008, 1, 8), date(2008, 1, 7),
			},
		},
		"month ends": {
			start:   date(2008, 1, 15),
			end:     date(2008, 5, 1),
			offset:  NewBusinessMonthEnd(1, nil),
			periods: 0,
			expected: []time.Time{
				date(2008, 1, 31), date(2008, 2, 29), date(2008, 3, 31), date(2008, 4, 30),
			},
		},
		"end before start": {
			start:    date(2008, 1, 10),
			end:      date(2008, 1, 7),
			offset:   NewBusinessDay(1, nil),
			expected: []time.Time{},
		},
		"nat start": {
			start:    timestamp.NaT,
			end:      date(2008, 1, 7),
			offset:   NewBusinessDay(1, nil),
			expected: []time.Time{},
		},
		"unbounded": {
			start:  date(2008, 1, 1),
			end:    timestamp.NaT,
			offset: NewBusinessDay(1, nil),
			err:    ErrRangeUnbounded,
		},
		"no progress": {
			start:   date(2008, 1, 7),
			end:     timestamp.NaT,
			periods: 3,
			offset:  NewBusinessDay(0, nil),
			err:     ErrNoProgress,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := Range(td.start, td.end, td.periods, td.offset)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.expected, res)
		})
	}
}

func TestRangeStopsAtBounds(t *testing.T) {
	start := timestamp.Max.Add(-150 * time.Minute)
	res, err := Range(start, timestamp.NaT, 10, mustTick(t, "H", 1))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{start, start.Add(time.Hour), start.Add(2 * time.Hour)}, res)
}

package offsets

import (
	"testing"
	"time"

	"github.com/pkg/profile"

	"github.com/aouyang1/go-frequency/holiday"
)

var benchRangeRes []time.Time

func BenchmarkBusinessHourRange(b *testing.B) {
	bh, err := NewCustomBusinessHour(1, &CustomBusinessHourOptions{
		CalendarOptions: CalendarOptions{Calendar: holiday.NewUSFederalHolidayCalendar()},
		Start:           []string{"09:00", "13:00"},
		End:             []string{"12:00", "17:30"},
	})
	if err != nil {
		panic(err)
	}

	start := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2014, 12, 31, 0, 0, 0, 0, time.UTC)

	b.ResetTimer()
	defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	for b.Loop() {
		benchRangeRes, err = Range(start, end, 0, bh)
		if err != nil {
			panic(err)
		}
	}
}

func BenchmarkBusinessDayApply(b *testing.B) {
	bday := NewBusinessDay(7, nil)
	t := time.Date(2014, 7, 5, 10, 0, 0, 0, time.UTC)

	b.ResetTimer()
	for b.Loop() {
		if _, err := bday.Apply(t); err != nil {
			panic(err)
		}
	}
}

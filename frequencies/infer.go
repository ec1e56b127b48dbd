// Package frequencies infers the regular frequency alias of a sequence of timestamps
// and compares frequency aliases by their resolution.
package frequencies

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aouyang1/go-frequency/array"
	"github.com/aouyang1/go-frequency/ccalendar"
	"github.com/aouyang1/go-frequency/timedataset"
	"github.com/aouyang1/go-frequency/timestamp"
)

var (
	ErrTooFewValues = errors.New("need at least 3 dates to infer frequency")
	ErrPeriodIndex  = errors.New("period index given, check the freq of the index instead of inferring it")
	ErrNonTemporal  = errors.New("cannot infer freq from a non-temporal index")
)

const (
	nsPerDay    = int64(24 * time.Hour)
	nsPerHour   = int64(time.Hour)
	nsPerMinute = int64(time.Minute)
	nsPerSecond = int64(time.Second)
	nsPerMilli  = int64(time.Millisecond)
	nsPerMicro  = int64(time.Microsecond)

	minValues = 3
)

// hour delta sets of an hourly series that skips nights (17) and weekends (65)
var businessHourDeltas = [][]float64{
	{1, 17},
	{1, 65},
	{1, 17, 65},
}

// InferFreq returns the most likely frequency alias of the index or an empty string
// if no frequency describes it.
func InferFreq(idx *timedataset.Index) (string, error) {
	inf, err := NewInferer(idx)
	if err != nil {
		if errors.Is(err, ErrTooFewValues) {
			slog.Debug("unable to infer frequency", "reason", "too few values", "len", idx.Len())
			return "", nil
		}
		return "", err
	}
	return inf.Freq(), nil
}

// Inferer classifies one index. Derived views of the index are computed on first use
// and kept for the lifetime of the Inferer, which is not safe for concurrent use.
type Inferer struct {
	idx       *timedataset.Index
	local     []int64
	timedelta bool

	deltas     []int64
	deltasAsi8 []int64
	fields     *ccalendar.Fields
	mdiffs     []int64
	ydiffs     []int64
}

func NewInferer(idx *timedataset.Index) (*Inferer, error) {
	if idx == nil {
		return nil, fmt.Errorf("%w, nil index", ErrNonTemporal)
	}

	switch idx.Kind() {
	case timedataset.KindPeriod:
		return nil, fmt.Errorf("%w, freq %s", ErrPeriodIndex, idx.Freq())
	case timedataset.KindNumeric:
		return nil, fmt.Errorf("%w, kind %s", ErrNonTemporal, idx.Kind())
	case timedataset.KindDatetime, timedataset.KindTimedelta:
	default:
		return nil, fmt.Errorf("%w, kind %s", ErrNonTemporal, idx.Kind())
	}

	if idx.Len() < minValues {
		return nil, fmt.Errorf("%w, got %d", ErrTooFewValues, idx.Len())
	}

	return &Inferer{
		idx:       idx,
		local:     idx.LocalAsi8(),
		timedelta: idx.Kind() == timedataset.KindTimedelta,
	}, nil
}

// Freq returns the inferred frequency alias or an empty string.
func (f *Inferer) Freq() string {
	if f.hasNaT() {
		slog.Debug("unable to infer frequency", "reason", "index contains NaT")
		return ""
	}
	if !f.idx.IsMonotonic() || !f.idx.IsUnique() {
		slog.Debug("unable to infer frequency", "reason", "index is not monotonic and unique")
		return ""
	}

	delta := f.getDeltas()[0]
	if delta != 0 && delta%nsPerDay == 0 {
		return f.inferDailyRule()
	}

	if f.isBusinessHourly() {
		return "BH"
	}

	// local deltas shift around daylight saving transitions so sub-daily spacing
	// is checked on the absolute values
	if !f.isUniqueAsi8() {
		slog.Debug("unable to infer frequency", "reason", "irregular spacing", "deltas", len(f.getDeltasAsi8()))
		return ""
	}

	delta = f.getDeltasAsi8()[0]
	switch {
	case delta%nsPerHour == 0:
		return maybeAddCount("H", delta/nsPerHour)
	case delta%nsPerMinute == 0:
		return maybeAddCount("T", delta/nsPerMinute)
	case delta%nsPerSecond == 0:
		return maybeAddCount("S", delta/nsPerSecond)
	case delta%nsPerMilli == 0:
		return maybeAddCount("L", delta/nsPerMilli)
	case delta%nsPerMicro == 0:
		return maybeAddCount("U", delta/nsPerMicro)
	default:
		return maybeAddCount("N", delta)
	}
}

func (f *Inferer) hasNaT() bool {
	if f.timedelta {
		return false
	}
	for _, v := range f.idx.Asi8() {
		if v == timestamp.NaTNanos {
			return true
		}
	}
	return false
}

func (f *Inferer) getDeltas() []int64 {
	if f.deltas == nil {
		f.deltas = array.UniqueDeltas(f.local)
	}
	return f.deltas
}

func (f *Inferer) getDeltasAsi8() []int64 {
	if f.deltasAsi8 == nil {
		f.deltasAsi8 = array.UniqueDeltas(f.idx.Asi8())
	}
	return f.deltasAsi8
}

func (f *Inferer) isUnique() bool {
	return len(f.getDeltas()) == 1
}

func (f *Inferer) isUniqueAsi8() bool {
	return len(f.getDeltasAsi8()) == 1
}

func (f *Inferer) dayDeltas() []float64 {
	out, err := array.Ratios(f.getDeltas(), nsPerDay)
	if err != nil {
		return nil
	}
	return out
}

func (f *Inferer) hourDeltas() []float64 {
	out, err := array.Ratios(f.getDeltas(), nsPerHour)
	if err != nil {
		return nil
	}
	return out
}

func (f *Inferer) getFields() ccalendar.Fields {
	if f.fields == nil {
		fields := ccalendar.BuildFields(f.local)
		f.fields = &fields
	}
	return *f.fields
}

// repStamp is the wall clock of the first value.
func (f *Inferer) repStamp() time.Time {
	return time.Unix(0, f.local[0]).UTC()
}

func (f *Inferer) getMdiffs() []int64 {
	if f.mdiffs == nil {
		fields := f.getFields()
		nmonths := make([]int64, fields.Len())
		for i := range nmonths {
			nmonths[i] = int64(fields.Year[i]*12 + fields.Month[i])
		}
		f.mdiffs = array.UniqueDeltas(nmonths)
	}
	return f.mdiffs
}

func (f *Inferer) getYdiffs() []int64 {
	if f.ydiffs == nil {
		fields := f.getFields()
		years := make([]int64, fields.Len())
		for i, y := range fields.Year {
			years[i] = int64(y)
		}
		f.ydiffs = array.UniqueDeltas(years)
	}
	return f.ydiffs
}

func (f *Inferer) monthPositionCheck() string {
	return ccalendar.MonthPositionCheck(f.getFields())
}

func (f *Inferer) isBusinessHourly() bool {
	hours := f.hourDeltas()
	for _, expected := range businessHourDeltas {
		if array.EqualFloats(hours, expected) {
			return true
		}
	}
	return false
}

func (f *Inferer) inferDailyRule() string {
	if f.timedelta {
		if f.isUnique() {
			return f.dailyRule()
		}
		slog.Debug("unable to infer frequency", "reason", "irregular timedelta spacing")
		return ""
	}

	if rule := f.annualRule(); rule != "" {
		month := ccalendar.MonthAliases[int(f.repStamp().Month())]
		return maybeAddCount(rule+"-"+month, f.getYdiffs()[0])
	}

	if rule := f.quarterlyRule(); rule != "" {
		month := ccalendar.MonthAliases[quarterEndMonth[int(f.repStamp().Month())%3]]
		return maybeAddCount(rule+"-"+month, f.getMdiffs()[0]/3)
	}

	if rule := f.monthlyRule(); rule != "" {
		return maybeAddCount(rule, f.getMdiffs()[0])
	}

	if f.isUnique() {
		return f.dailyRule()
	}

	if f.isBusinessDaily() {
		return "B"
	}

	if rule := f.weekOfMonthRule(); rule != "" {
		return rule
	}

	slog.Debug("unable to infer frequency", "reason", "no daily rule matched", "deltas", len(f.getDeltas()))
	return ""
}

// quarterEndMonth maps month%3 of a quarterly series to the month ending its quarter.
var quarterEndMonth = map[int]int{0: 12, 2: 11, 1: 10}

var (
	annualRules    = map[string]string{ccalendar.CalendarStart: "AS", ccalendar.BusinessStart: "BAS", ccalendar.CalendarEnd: "A", ccalendar.BusinessEnd: "BA"}
	quarterlyRules = map[string]string{ccalendar.CalendarStart: "QS", ccalendar.BusinessStart: "BQS", ccalendar.CalendarEnd: "Q", ccalendar.BusinessEnd: "BQ"}
	monthlyRules   = map[string]string{ccalendar.CalendarStart: "MS", ccalendar.BusinessStart: "BMS", ccalendar.CalendarEnd: "M", ccalendar.BusinessEnd: "BM"}
)

func (f *Inferer) dailyRule() string {
	days := f.getDeltas()[0] / nsPerDay
	if days%7 == 0 {
		wd := ccalendar.IntToWeekday[(int(f.repStamp().Weekday())+6)%7]
		return maybeAddCount("W-"+wd, days/7)
	}
	return maybeAddCount("D", days)
}

func (f *Inferer) annualRule() string {
	if len(f.getYdiffs()) > 1 {
		return ""
	}
	if len(array.Unique(f.getFields().Month)) > 1 {
		return ""
	}
	return annualRules[f.monthPositionCheck()]
}

func (f *Inferer) quarterlyRule() string {
	mdiffs := f.getMdiffs()
	if len(mdiffs) > 1 {
		return ""
	}
	if mdiffs[0]%3 != 0 {
		return ""
	}
	return quarterlyRules[f.monthPositionCheck()]
}

func (f *Inferer) monthlyRule() string {
	if len(f.getMdiffs()) > 1 {
		return ""
	}
	return monthlyRules[f.monthPositionCheck()]
}

// isBusinessDaily reports whether the series steps one day at a time except for three
// day jumps landing on Mondays.
func (f *Inferer) isBusinessDaily() bool {
	if !array.EqualFloats(f.dayDeltas(), []float64{1, 3}) {
		return false
	}

	shifts, err := array.FloorDivide(array.Diff(f.local), nsPerDay)
	if err != nil {
		return false
	}
	shiftsF := make([]float64, len(shifts))
	for i, s := range shifts {
		shiftsF[i] = float64(s)
	}
	cumShifts := array.CumSum(shiftsF)

	firstWeekday := f.idx.Weekday(0)
	for i, shift := range shifts {
		wd := (firstWeekday + int(cumShifts[i])) % 7
		switch {
		case wd == 0 && shift == 3:
		case wd > 0 && wd <= 4 && shift == 1:
		default:
			return false
		}
	}
	return true
}

func (f *Inferer) weekOfMonthRule() string {
	fields := f.getFields()
	weekdays := array.Unique(fields.DayOfWeek)
	if len(weekdays) > 1 {
		return ""
	}

	weeks := make([]int, 0, fields.Len())
	for _, d := range fields.Day {
		// only the first four weeks of a month are inferred
		if w := (d - 1) / 7; w < 4 {
			weeks = append(weeks, w)
		}
	}
	weeks = array.Unique(weeks)
	if len(weeks) != 1 {
		return ""
	}

	return fmt.Sprintf("WOM-%d%s", weeks[0]+1, ccalendar.IntToWeekday[weekdays[0]])
}

func maybeAddCount(base string, count int64) string {
	if count != 1 {
		return fmt.Sprintf("%d%s", count, base)
	}
	return base
}

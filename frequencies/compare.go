package frequencies

import (
	"slices"
	"strings"

	"github.com/aouyang1/go-frequency/ccalendar"
)

// Freq is anything that names a frequency by its rule code, such as an offset or a
// bare Alias.
type Freq interface {
	RuleCode() string
}

// Alias is a frequency alias string, e.g. "Q-DEC" or "B".
type Alias string

func (a Alias) RuleCode() string {
	return string(a)
}

var (
	// codes at or below daily resolution
	subDaily = []string{"H", "T", "S", "L", "U", "N"}

	daily        = append([]string{"D", "C", "B"}, subDaily...)
	dailyMonthly = append([]string{"D", "C", "B", "M"}, subDaily...)
)

// IsSubperiod reports whether source can be downsampled to target, i.e. source is at
// least as fine as target.
func IsSubperiod(source, target Freq) bool {
	s, t, ok := coerceFreqs(source, target)
	if !ok {
		return false
	}
	return downsamples(s, t) || upsamples(t, s)
}

// IsSuperperiod reports whether source can be upsampled to target, i.e. source is at
// least as coarse as target.
func IsSuperperiod(source, target Freq) bool {
	return IsSubperiod(target, source)
}

func coerceFreqs(source, target Freq) (string, string, bool) {
	if source == nil || target == nil {
		return "", "", false
	}
	return strings.ToUpper(source.RuleCode()), strings.ToUpper(target.RuleCode()), true
}

func downsamples(source, target string) bool {
	switch {
	case isAnnual(target):
		if isQuarterly(source) {
			return quarterMonthsConform(ruleMonth(source), ruleMonth(target))
		}
		return slices.Contains(dailyMonthly, source)
	case isQuarterly(target):
		return slices.Contains(dailyMonthly, source)
	case isMonthly(target):
		return slices.Contains(daily, source)
	case isWeekly(target):
		return source == target || slices.Contains(daily, source)
	case target == "B", target == "C", target == "D":
		return source == target || slices.Contains(subDaily, source)
	}
	return finerOrEqual(source, target)
}

func upsamples(source, target string) bool {
	switch {
	case isAnnual(source):
		if isAnnual(target) {
			return ruleMonth(source) == ruleMonth(target)
		}
		if isQuarterly(target) {
			return quarterMonthsConform(ruleMonth(source), ruleMonth(target))
		}
		return slices.Contains(dailyMonthly, target)
	case isQuarterly(source):
		return slices.Contains(dailyMonthly, target)
	case isMonthly(source):
		return slices.Contains(daily, target)
	case isWeekly(source):
		return target == source || slices.Contains(daily, target)
	case source == "B", source == "C", source == "D":
		return slices.Contains(daily, target)
	}
	return finerOrEqual(target, source)
}

// finerOrEqual compares two sub-daily codes.
func finerOrEqual(fine, coarse string) bool {
	i := slices.Index(subDaily, coarse)
	if i < 0 {
		return false
	}
	return slices.Contains(subDaily[i:], fine)
}

// quarterMonthsConform reports whether two months fall at the same position of their
// quarters.
func quarterMonthsConform(source, target string) bool {
	snum, ok := ccalendar.MonthNumbers[source]
	if !ok {
		return false
	}
	tnum, ok := ccalendar.MonthNumbers[target]
	if !ok {
		return false
	}
	return snum%3 == tnum%3
}

// ruleMonth returns the anchor month of a rule code, DEC when it has none.
func ruleMonth(code string) string {
	code = strings.ToUpper(code)
	_, month, found := strings.Cut(code, "-")
	if !found {
		return "DEC"
	}
	month, _, _ = strings.Cut(month, "-")
	return month
}

func isAnnual(code string) bool {
	return code == "A" || strings.HasPrefix(code, "A-")
}

func isQuarterly(code string) bool {
	return code == "Q" || strings.HasPrefix(code, "Q-") || strings.HasPrefix(code, "BQ")
}

func isMonthly(code string) bool {
	return code == "M" || code == "BM"
}

func isWeekly(code string) bool {
	return code == "W" || strings.HasPrefix(code, "W-")
}

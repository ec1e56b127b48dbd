package frequencies

import "github.com/aouyang1/go-frequency/ccalendar"

var offsetToPeriod = map[string]string{
	"WEEKDAY": "D",
	"EOM":     "M",
	"BM":      "M",
	"CBM":     "M",
	"CBMS":    "M",
	"BQS":     "Q",
	"QS":      "Q",
	"BQ":      "Q",
	"BA":      "A",
	"AS":      "A",
	"BAS":     "A",
	"MS":      "M",
	"BMS":     "M",
	"BH":      "H",
	"CBH":     "H",
	"D":       "D",
	"B":       "B",
	"T":       "T",
	"S":       "S",
	"L":       "L",
	"U":       "U",
	"N":       "N",
	"H":       "H",
	"Q":       "Q",
	"A":       "A",
	"W":       "W",
	"M":       "M",
	"Y":       "A",
	"BY":      "A",
	"YS":      "A",
	"BYS":     "A",
}

// anchored offsets whose period alias drops the month
var needSuffix = []string{"QS", "BQ", "BQS", "YS", "AS", "BY", "BA", "BYS", "BAS"}

func init() {
	for _, prefix := range needSuffix {
		for _, m := range ccalendar.Months {
			offsetToPeriod[prefix+"-"+m] = offsetToPeriod[prefix]
		}
	}
	for _, prefix := range []string{"A", "Q"} {
		for _, m := range ccalendar.Months {
			alias := prefix + "-" + m
			offsetToPeriod[alias] = alias
		}
	}
	for _, d := range ccalendar.Days {
		offsetToPeriod["W-"+d] = "W-" + d
	}
}

// GetPeriodAlias returns the closest period alias of an offset alias, e.g. BQ to Q,
// or an empty string if there is none.
func GetPeriodAlias(offsetStr string) string {
	return offsetToPeriod[offsetStr]
}

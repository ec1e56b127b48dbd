package offsets

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// liteRuleAlias maps shorthand names onto rule codes.
var liteRuleAlias = map[string]string{
	"W":   "W-SUN",
	"Q":   "Q-DEC",
	"A":   "A-DEC",
	"AS":  "AS-JAN",
	"BA":  "BA-DEC",
	"BAS": "BAS-JAN",
	"Min": "T",
	"min": "T",
	"ms":  "L",
	"us":  "U",
	"ns":  "N",
}

// names whose case distinguishes them from another rule code
var dontUppercase = map[string]bool{
	"MS": true,
	"ms": true,
}

var prefixMapping = map[string]func() (Offset, error){
	"B": func() (Offset, error) { return NewBusinessDay(1, nil), nil },
	"C": func() (Offset, error) { return NewCustomBusinessDay(1, nil) },
	"BH": func() (Offset, error) {
		return NewBusinessHour(1, nil)
	},
	"CBH": func() (Offset, error) {
		return NewCustomBusinessHour(1, nil)
	},
	"M":   func() (Offset, error) { return NewMonthEnd(1, nil), nil },
	"MS":  func() (Offset, error) { return NewMonthBegin(1, nil), nil },
	"BM":  func() (Offset, error) { return NewBusinessMonthEnd(1, nil), nil },
	"BMS": func() (Offset, error) { return NewBusinessMonthBegin(1, nil), nil },
	"CBM": func() (Offset, error) {
		return NewCustomBusinessMonthEnd(1, nil)
	},
	"CBMS": func() (Offset, error) {
		return NewCustomBusinessMonthBegin(1, nil)
	},
}

func init() {
	for _, u := range tickUnits {
		code := u.code
		prefixMapping[code] = func() (Offset, error) {
			return NewTick(code, 1, false)
		}
	}
}

// ResolveAlias canonicalizes a rule name, e.g. "b" to "B" and "min" to "T".
func ResolveAlias(name string) string {
	if dontUppercase[name] {
		if alias, exists := liteRuleAlias[name]; exists {
			return alias
		}
		return name
	}

	name = strings.ToUpper(name)
	if alias, exists := liteRuleAlias[name]; exists {
		name = alias
	}
	if alias, exists := liteRuleAlias[strings.ToLower(name)]; exists {
		name = alias
	}
	return name
}

// GetOffset returns the n=1 offset for a rule name such as "B", "BH" or "CBMS".
func GetOffset(name string) (Offset, error) {
	code := ResolveAlias(name)
	newOffset, exists := prefixMapping[code]
	if !exists {
		return nil, fmt.Errorf("%w, %s", ErrInvalidFreq, name)
	}
	return newOffset()
}

var freqstrPattern = regexp.MustCompile(`^\s*([+-]?\d*)\s*([A-Za-z]+)\s*$`)

// ToOffset parses a frequency string made of an optional signed count followed by a
// rule name, e.g. "3B", "-2BH" or "T".
func ToOffset(freqstr string) (Offset, error) {
	match := freqstrPattern.FindStringSubmatch(freqstr)
	if match == nil {
		return nil, fmt.Errorf("%w, %s", ErrInvalidFreq, freqstr)
	}

	n := 1
	switch count := match[1]; count {
	case "", "+":
	case "-":
		n = -1
	default:
		var err error
		n, err = strconv.Atoi(count)
		if err != nil {
			return nil, fmt.Errorf("%w, %s, %w", ErrInvalidFreq, freqstr, err)
		}
	}

	o, err := GetOffset(match[2])
	if err != nil {
		return nil, err
	}
	return o.Mul(n), nil
}

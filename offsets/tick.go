package offsets

import (
	"fmt"
	"time"

	"github.com/aouyang1/go-frequency/timestamp"
)

type tickUnit struct {
	name string
	code string
	unit time.Duration
}

// tickUnits are ordered from coarse to fine.
var tickUnits = []tickUnit{
	{"Day", "D", 24 * time.Hour},
	{"Hour", "H", time.Hour},
	{"Minute", "T", time.Minute},
	{"Second", "S", time.Second},
	{"Milli", "L", time.Millisecond},
	{"Micro", "U", time.Microsecond},
	{"Nano", "N", time.Nanosecond},
}

func lookupTickUnit(code string) (tickUnit, bool) {
	for _, u := range tickUnits {
		if u.code == code {
			return u, true
		}
	}
	return tickUnit{}, false
}

// Tick is a fixed length offset. Every timestamp is on offset so rolling never moves
// a timestamp.
type Tick struct {
	base
	unit tickUnit
}

// NewTick returns a tick of n units where code is one of D, H, T, S, L, U or N. Ticks
// have no anchor within a day so normalize is rejected.
func NewTick(code string, n int, normalize bool) (*Tick, error) {
	u, exists := lookupTickUnit(code)
	if !exists {
		return nil, fmt.Errorf("%w, %q is not a tick", ErrInvalidFreq, code)
	}
	if normalize {
		return nil, ErrNormalizeTick
	}
	return &Tick{base: base{n: n}, unit: u}, nil
}

// deltaToTick returns the coarsest tick that represents d exactly.
func deltaToTick(d time.Duration) *Tick {
	for _, u := range tickUnits {
		if d%u.unit == 0 {
			return &Tick{base: base{n: int(d / u.unit)}, unit: u}
		}
	}
	return &Tick{base: base{n: int(d)}, unit: tickUnits[len(tickUnits)-1]}
}

// Delta is the total length of the tick.
func (t *Tick) Delta() time.Duration {
	return time.Duration(t.n) * t.unit.unit
}

// add sums two ticks keeping the unit when both share it.
func (t *Tick) add(other *Tick) *Tick {
	if t.unit == other.unit {
		return t.withN(t.n + other.n)
	}
	return deltaToTick(t.Delta() + other.Delta())
}

func (t *Tick) withN(n int) *Tick {
	out := *t
	out.n = n
	return &out
}

func (t *Tick) Apply(ts time.Time) (time.Time, error) {
	if timestamp.IsNaT(ts) {
		return timestamp.NaT, nil
	}
	res := ts.Add(t.Delta())
	if err := timestamp.CheckBounds(res); err != nil {
		return timestamp.NaT, err
	}
	return res, nil
}

func (t *Tick) Rollback(ts time.Time) (time.Time, error) {
	return ts, nil
}

func (t *Tick) Rollforward(ts time.Time) (time.Time, error) {
	return ts, nil
}

func (t *Tick) OnOffset(ts time.Time) bool {
	return !timestamp.IsNaT(ts)
}

func (t *Tick) Mul(k int) Offset { return t.withN(t.n * k) }
func (t *Tick) Neg() Offset      { return t.withN(-t.n) }
func (t *Tick) Base() Offset     { return t.withN(1) }
func (t *Tick) Copy() Offset     { return t.withN(t.n) }

func (t *Tick) Name() string     { return t.unit.name }
func (t *Tick) RuleCode() string { return t.unit.code }

func (t *Tick) FreqStr() string {
	return t.freqstr(t.RuleCode())
}

func (t *Tick) String() string {
	return t.repr(t.Name(), "")
}

func (t *Tick) Key() string {
	return t.key(t.Name())
}

func (t *Tick) Equal(other Offset) bool {
	return equal(t, other)
}

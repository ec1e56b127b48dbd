package offsets

import (
	"fmt"
	"time"
)

// timeShifter is implemented by day offsets that carry a time of day offset.
type timeShifter interface {
	Offset
	WithOffset(d time.Duration) Offset
}

// Add evaluates left + right where the operands are time.Time, time.Duration or
// Offset values. Adding an offset and a timestamp applies the offset. A duration
// added to a business day offset extends its time offset and two ticks sum into a
// tick.
func Add(left, right any) (any, error) {
	switch l := left.(type) {
	case time.Time:
		if o, ok := right.(Offset); ok {
			return o.Apply(l)
		}
	case time.Duration:
		if o, ok := right.(timeShifter); ok {
			return o.WithOffset(l), nil
		}
	case Offset:
		switch r := right.(type) {
		case time.Time:
			return l.Apply(r)
		case time.Duration:
			if o, ok := l.(timeShifter); ok {
				return o.WithOffset(r), nil
			}
		case *Tick:
			if lt, ok := l.(*Tick); ok {
				return lt.add(r), nil
			}
		}
	}
	return nil, fmt.Errorf("%w, %s and %s", ErrCannotCombine, kindOf(left), kindOf(right))
}

// Sub evaluates left - right. Subtracting an offset from a timestamp applies the
// negated offset and subtracting offsets of the same variant and parameters
// subtracts their multipliers. An offset minus a timestamp is always invalid.
func Sub(left, right any) (any, error) {
	switch l := left.(type) {
	case time.Time:
		if o, ok := right.(Offset); ok {
			return o.Neg().Apply(l)
		}
	case Offset:
		switch r := right.(type) {
		case time.Time:
			return nil, fmt.Errorf("%w, %s - %s", ErrCannotSubtract, kindOf(left), kindOf(right))
		case time.Duration:
			if o, ok := l.(timeShifter); ok {
				return o.WithOffset(-r), nil
			}
		case *Tick:
			if lt, ok := l.(*Tick); ok {
				return lt.add(r.withN(-r.n)), nil
			}
		case Offset:
			if l.Base().Equal(r.Base()) {
				return l.Base().Mul(l.N() - r.N()), nil
			}
		}
	}
	return nil, fmt.Errorf("%w, %s and %s", ErrCannotCombine, kindOf(left), kindOf(right))
}

func kindOf(v any) string {
	switch val := v.(type) {
	case time.Time:
		return "datetime"
	case time.Duration:
		return "timedelta"
	case Offset:
		return val.Name()
	default:
		return fmt.Sprintf("%T", v)
	}
}

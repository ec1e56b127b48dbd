package offsets

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aouyang1/go-frequency/timestamp"
)

var ErrRangeUnbounded = errors.New("range requires an end or a positive number of periods")

// Range generates the timestamps of o starting from start, rolled forward onto the
// offset, until end rolled back onto the offset. If end is NaT, periods timestamps
// are generated instead. Generation stops quietly once stepping leaves the
// representable timestamp range.
func Range(start, end time.Time, periods int, o Offset) ([]time.Time, error) {
	if timestamp.IsNaT(end) && periods <= 0 {
		return nil, ErrRangeUnbounded
	}
	if timestamp.IsNaT(start) {
		return []time.Time{}, nil
	}

	cur, err := o.Rollforward(start)
	if err != nil {
		return nil, fmt.Errorf("unable to roll range start, %w", err)
	}
	if !timestamp.IsNaT(end) {
		end, err = o.Rollback(end)
		if err != nil {
			return nil, fmt.Errorf("unable to roll range end, %w", err)
		}
	}

	forward := o.N() >= 0
	inRange := func(t time.Time) bool {
		if periods > 0 && timestamp.IsNaT(end) {
			return true
		}
		if forward {
			return !t.After(end)
		}
		return !t.Before(end)
	}

	var out []time.Time
	for inRange(cur) {
		out = append(out, cur)
		if periods > 0 && len(out) >= periods {
			break
		}
		if !timestamp.IsNaT(end) && cur.Equal(end) {
			break
		}

		next, err := o.Apply(cur)
		if errors.Is(err, timestamp.ErrOutOfBounds) {
			slog.Warn("stopping range at timestamp bounds", "offset", o.FreqStr(), "last", cur)
			break
		}
		if err != nil {
			return nil, err
		}

		if (forward && !next.After(cur)) || (!forward && !next.Before(cur)) {
			return nil, fmt.Errorf("%w, %s", ErrNoProgress, o)
		}
		cur = next
	}
	if out == nil {
		out = []time.Time{}
	}
	return out, nil
}

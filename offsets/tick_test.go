package offsets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aouyang1/go-frequency/timestamp"
)

func mustTick(t *testing.T, code string, n int) *Tick {
	t.Helper()
	tick, err := NewTick(code, n, false)
	require.NoError(t, err)
	return tick
}

func TestNewTick(t *testing.T) {
	testData := map[string]struct {
		code      string
		normalize bool
		name      string
		delta     time.Duration
		err       error
	}{
		"day":       {"D", false, "Day", 24 * time.Hour, nil},
		"hour":      {"H", false, "Hour", time.Hour, nil},
		"minute":    {"T", false, "Minute", time.Minute, nil},
		"second":    {"S", false, "Second", time.Second, nil},
		"milli":     {"L", false, "Milli", time.Millisecond, nil},
		"micro":     {"U", false, "Micro", time.Microsecond, nil},
		"nano":      {"N", false, "Nano", time.Nanosecond, nil},
		"normalize": {"H", true, "", 0, ErrNormalizeTick},
		"unknown":   {"X", false, "", 0, ErrInvalidFreq},
		"not tick":  {"B", false, "", 0, ErrInvalidFreq},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			tick, err := NewTick(td.code, 3, td.normalize)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.name, tick.Name())
			assert.Equal(t, td.code, tick.RuleCode())
			assert.Equal(t, 3*td.delta, tick.Delta())
		})
	}
}

func TestTickApply(t *testing.T) {
	res, err := mustTick(t, "H", 2).Apply(dt(2014, 1, 1, 10, 0))
	require.NoError(t, err)
	assert.Equal(t, dt(2014, 1, 1, 12, 0), res)

	res, err = mustTick(t, "T", -90).Apply(dt(2014, 1, 1, 10, 0))
	require.NoError(t, err)
	assert.Equal(t, dt(2014, 1, 1, 8, 30), res)

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// ticks add absolute time across a daylight saving transition
	res, err = mustTick(t, "H", 1).Apply(time.Date(2014, 3, 9, 1, 30, 0, 0, ny))
	require.NoError(t, err)
	assert.True(t, time.Date(2014, 3, 9, 3, 30, 0, 0, ny).Equal(res))

	res, err = mustTick(t, "D", 1).Apply(time.Date(2014, 3, 8, 12, 0, 0, 0, ny))
	require.NoError(t, err)
	assert.True(t, time.Date(2014, 3, 9, 13, 0, 0, 0, ny).Equal(res))

	_, err = mustTick(t, "N", 1).Apply(timestamp.Max)
	assert.ErrorIs(t, err, timestamp.ErrOutOfBounds)
}

func TestTickRoll(t *testing.T) {
	tick := mustTick(t, "S", 5)
	in := time.Date(2014, 1, 1, 10, 0, 0, 123, time.UTC)

	assert.True(t, tick.OnOffset(in))

	back, err := tick.Rollback(in)
	require.NoError(t, err)
	assert.Equal(t, in, back)

	fwd, err := tick.Rollforward(in)
	require.NoError(t, err)
	assert.Equal(t, in, fwd)
}

func TestTickAdd(t *testing.T) {
	testData := map[string]struct {
		left     *Tick
		right    *Tick
		expected *Tick
	}{
		"same unit":     {mustTick(t, "H", 1), mustTick(t, "H", 2), mustTick(t, "H", 3)},
		"minutes":       {mustTick(t, "H", 2), mustTick(t, "T", 30), mustTick(t, "T", 150)},
		"hours":         {mustTick(t, "T", 30), mustTick(t, "T", 30), mustTick(t, "T", 60)},
		"coarsest":      {mustTick(t, "T", 30), mustTick(t, "S", 1800), mustTick(t, "H", 1)},
		"days":          {mustTick(t, "H", 12), mustTick(t, "T", 720), mustTick(t, "D", 1)},
		"cancel":        {mustTick(t, "S", 5), mustTick(t, "S", -5), mustTick(t, "S", 0)},
		"nanos":         {mustTick(t, "U", 1), mustTick(t, "N", 1), mustTick(t, "N", 1001)},
		"mixed sign ms": {mustTick(t, "S", 1), mustTick(t, "L", -1), mustTick(t, "L", 999)},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res := td.left.add(td.right)
			assert.True(t, td.expected.Equal(res), "expected %s, got %s", td.expected, res)
		})
	}
}

func TestTickRepr(t *testing.T) {
	assert.Equal(t, "<Minute>", mustTick(t, "T", 1).String())
	assert.Equal(t, "<2 * Hours>", mustTick(t, "H", 2).String())
	assert.Equal(t, "5T", mustTick(t, "T", 5).FreqStr())
	assert.Equal(t, "N", mustTick(t, "N", 1).FreqStr())
	assert.Equal(t, "-3D", mustTick(t, "D", -3).FreqStr())
}

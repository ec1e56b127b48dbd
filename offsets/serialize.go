package offsets

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// offsetJSON is the serialized form shared by every variant. Calendar holidays are
// stored already merged into Holidays.
type offsetJSON struct {
	Type      string        `json:"type"`
	N         int           `json:"n"`
	Normalize bool          `json:"normalize"`
	Offset    time.Duration `json:"offset,omitempty"`
	Start     []string      `json:"start,omitempty"`
	End       []string      `json:"end,omitempty"`
	Weekmask  string        `json:"weekmask,omitempty"`
	Holidays  []string      `json:"holidays,omitempty"`
}

func (b *BusinessDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(offsetJSON{
		Type:      b.Name(),
		N:         b.n,
		Normalize: b.normalize,
		Offset:    b.offset,
	})
}

func (c *CustomBusinessDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(offsetJSON{
		Type:      c.Name(),
		N:         c.n,
		Normalize: c.normalize,
		Offset:    c.offset,
		Weekmask:  c.cal.weekmask.String(),
		Holidays:  c.cal.holidayStrings(),
	})
}

func (b *BusinessHour) MarshalJSON() ([]byte, error) {
	return json.Marshal(offsetJSON{
		Type:      b.Name(),
		N:         b.n,
		Normalize: b.normalize,
		Start:     b.starts(),
		End:       b.ends(),
	})
}

func (c *CustomBusinessHour) MarshalJSON() ([]byte, error) {
	return json.Marshal(offsetJSON{
		Type:      c.Name(),
		N:         c.n,
		Normalize: c.normalize,
		Start:     c.starts(),
		End:       c.ends(),
		Weekmask:  c.cal.weekmask.String(),
		Holidays:  c.cal.holidayStrings(),
	})
}

func (m *MonthOffset) MarshalJSON() ([]byte, error) {
	out := offsetJSON{
		Type:      m.Name(),
		N:         m.n,
		Normalize: m.normalize,
	}
	if m.cal != nil {
		out.Weekmask = m.cal.weekmask.String()
		out.Holidays = m.cal.holidayStrings()
	}
	return json.Marshal(out)
}

func (t *Tick) MarshalJSON() ([]byte, error) {
	return json.Marshal(offsetJSON{
		Type: t.Name(),
		N:    t.n,
	})
}

// Unmarshal reconstructs an offset serialized with MarshalJSON.
func Unmarshal(data []byte) (Offset, error) {
	var in offsetJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("unable to decode offset, %w", err)
	}

	cal, err := in.calendarOptions()
	if err != nil {
		return nil, err
	}

	switch in.Type {
	case "BusinessDay":
		return NewBusinessDay(in.N, &BusinessDayOptions{Normalize: in.Normalize, Offset: in.Offset}), nil
	case "CustomBusinessDay":
		return NewCustomBusinessDay(in.N, &CustomBusinessDayOptions{
			CalendarOptions: cal,
			Normalize:       in.Normalize,
			Offset:          in.Offset,
		})
	case "BusinessHour":
		return NewBusinessHour(in.N, &BusinessHourOptions{Normalize: in.Normalize, Start: in.Start, End: in.End})
	case "CustomBusinessHour":
		return NewCustomBusinessHour(in.N, &CustomBusinessHourOptions{
			CalendarOptions: cal,
			Normalize:       in.Normalize,
			Start:           in.Start,
			End:             in.End,
		})
	case monthEnd.name:
		return NewMonthEnd(in.N, &MonthOptions{Normalize: in.Normalize}), nil
	case monthBegin.name:
		return NewMonthBegin(in.N, &MonthOptions{Normalize: in.Normalize}), nil
	case businessMonthEnd.name:
		return NewBusinessMonthEnd(in.N, &MonthOptions{Normalize: in.Normalize}), nil
	case businessMonthBegin.name:
		return NewBusinessMonthBegin(in.N, &MonthOptions{Normalize: in.Normalize}), nil
	case customBusinessMonthEnd.name:
		return NewCustomBusinessMonthEnd(in.N, &CustomBusinessMonthOptions{CalendarOptions: cal, Normalize: in.Normalize})
	case customBusinessMonthBegin.name:
		return NewCustomBusinessMonthBegin(in.N, &CustomBusinessMonthOptions{CalendarOptions: cal, Normalize: in.Normalize})
	}

	for _, u := range tickUnits {
		if u.name == in.Type {
			return NewTick(u.code, in.N, in.Normalize)
		}
	}
	return nil, fmt.Errorf("%w, %q", ErrUnknownOffset, in.Type)
}

func (in offsetJSON) calendarOptions() (CalendarOptions, error) {
	opt := CalendarOptions{Weekmask: in.Weekmask}
	for _, h := range in.Holidays {
		d, err := time.Parse(time.DateOnly, h)
		if err != nil {
			return opt, fmt.Errorf("unable to parse holiday %q, %w", h, err)
		}
		opt.Holidays = append(opt.Holidays, d)
	}
	return opt, nil
}

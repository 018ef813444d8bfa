package parse

import (
	"fmt"
	"strings"
	"time"
)

const spanLayout = "2006-01-02 15:04"

// TimestampError reports a clock timestamp that has the right shape but is
// not a real date or time, e.g. "2024-02-30 Fr 25:00".
type TimestampError struct {
	Line  int
	Value string
	Err   error
}

func (e *TimestampError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: bad timestamp %q: %v", e.Line, e.Value, e.Err)
	}
	return fmt.Sprintf("bad timestamp %q: %v", e.Value, e.Err)
}

func (e *TimestampError) Unwrap() error { return e.Err }

// Splitter cuts clock ranges at midnight.
type Splitter struct {
	Location *time.Location
	// EveryDay also emits a whole-day span for each day strictly between
	// the start and end days. Without it only the first midnight is cut.
	EveryDay bool
}

// Split returns the same-day spans covering r. A range within one day comes
// back as a single span, only with the day abbreviation removed.
func (s Splitter) Split(r ClockRange) ([]Span, error) {
	start, err := StripDay(r.Start)
	if err != nil {
		return nil, &TimestampError{Line: r.Line, Value: r.Start, Err: err}
	}
	end, err := StripDay(r.End)
	if err != nil {
		return nil, &TimestampError{Line: r.Line, Value: r.End, Err: err}
	}

	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	startTS, err := time.ParseInLocation(spanLayout, start, loc)
	if err != nil {
		return nil, &TimestampError{Line: r.Line, Value: r.Start, Err: err}
	}
	endTS, err := time.ParseInLocation(spanLayout, end, loc)
	if err != nil {
		return nil, &TimestampError{Line: r.Line, Value: r.End, Err: err}
	}

	if sameDay(startTS, endTS) {
		return []Span{{Start: start, End: end}}, nil
	}

	spans := []Span{{Start: start, End: atClock(startTS, 23, 59).Format(spanLayout)}}
	if s.EveryDay {
		last := atClock(endTS, 0, 0)
		for day := atClock(startTS, 0, 0).AddDate(0, 0, 1); day.Before(last); day = day.AddDate(0, 0, 1) {
			spans = append(spans, Span{
				Start: day.Format(spanLayout),
				End:   atClock(day, 23, 59).Format(spanLayout),
			})
		}
	}
	spans = append(spans, Span{Start: atClock(endTS, 0, 0).Format(spanLayout), End: end})
	return spans, nil
}

// StripDay drops the day abbreviation: "2024-01-01 Mo 22:00" -> "2024-01-01 22:00".
func StripDay(stamp string) (string, error) {
	f := strings.Fields(stamp)
	if len(f) != 3 {
		return "", fmt.Errorf("want \"date day time\", got %d fields", len(f))
	}
	return f[0] + " " + f[2], nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func atClock(t time.Time, hour, minute int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, t.Location())
}

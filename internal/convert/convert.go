package convert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Zuo-Peng/clocktsv/internal/config"
	"github.com/Zuo-Peng/clocktsv/internal/output"
	"github.com/Zuo-Peng/clocktsv/internal/parse"
	"github.com/sirupsen/logrus"
)

const maxLineSize = 10 * 1024 * 1024 // 10MB

type Stats struct {
	Lines    int
	Headings int
	Clocks   int
	Open     int
	Split    int
	Rows     int
	Rejected int
}

func (s Stats) String() string {
	return fmt.Sprintf("lines=%d headings=%d clocks=%d open=%d split=%d rows=%d rejected=%d",
		s.Lines, s.Headings, s.Clocks, s.Open, s.Split, s.Rows, s.Rejected)
}

// Converter turns a timelog into rows, one line at a time.
type Converter struct {
	Vocabulary *parse.Vocabulary
	Clock      *parse.ClockMatcher
	Splitter   parse.Splitter
	// Strict makes the first unparseable clock line fatal instead of
	// skipping it.
	Strict bool
	Log    *logrus.Entry
}

// New builds a Converter from cfg. now stamps running clocks; nil means
// time.Now.
func New(cfg *config.Config, now func() time.Time, log *logrus.Entry) (*Converter, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if now == nil {
		now = time.Now
	}
	// running clocks are closed on the wall clock of the configured zone
	localNow := func() time.Time { return now().In(loc) }
	return &Converter{
		Vocabulary: parse.NewVocabulary(cfg.HeadingMarker, cfg.NoiseTags, cfg.Rewrites),
		Clock:      parse.NewClockMatcher(cfg.ClockMarker, cfg.OpenDaySentinel, localNow),
		Splitter:   parse.Splitter{Location: loc, EveryDay: cfg.SplitEveryDay},
		Log:        log,
	}, nil
}

// state is the scan accumulator threaded through step.
type state struct {
	activity parse.Activity
	stats    Stats
}

// Convert reads r to the end and writes a row for every same-day span of
// every clock line. The caller closes w.
func (c *Converter) Convert(ctx context.Context, r io.Reader, w output.RowWriter) (Stats, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var st state
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return st.stats, err
		}
		st.stats.Lines++

		var rows []parse.Row
		var err error
		st, rows, err = c.step(st, scanner.Text())
		if err != nil {
			return st.stats, err
		}
		for _, row := range rows {
			if err := w.Write(row); err != nil {
				return st.stats, fmt.Errorf("write row: %w", err)
			}
			st.stats.Rows++
		}
	}
	if err := scanner.Err(); err != nil {
		return st.stats, fmt.Errorf("read input: %w", err)
	}
	return st.stats, nil
}

// step consumes one line. The activity in the returned rows is the one in
// effect after this line's heading, if any, was applied.
func (c *Converter) step(st state, line string) (state, []parse.Row, error) {
	lineNo := st.stats.Lines

	if a, ok := c.Vocabulary.Heading(line); ok {
		st.stats.Headings++
		c.Log.WithField("line", lineNo).Debugf("activity %q type %q", a.Name, a.Type)
		st.activity = a
	}

	clock, ok := c.Clock.Match(line)
	if !ok {
		return st, nil, nil
	}
	clock.Line = lineNo
	st.stats.Clocks++
	if clock.Open {
		st.stats.Open++
		c.Log.WithField("line", lineNo).Debugf("running clock since %s, closing at %s", clock.Start, clock.End)
	}

	spans, err := c.Splitter.Split(clock)
	if err != nil {
		var tsErr *parse.TimestampError
		if c.Strict || !errors.As(err, &tsErr) {
			return st, nil, err
		}
		st.stats.Rejected++
		c.Log.WithError(err).WithField("line", lineNo).Warn("Skipping clock line")
		return st, nil, nil
	}
	if len(spans) > 1 {
		st.stats.Split++
	}

	rows := make([]parse.Row, 0, len(spans))
	for _, sp := range spans {
		rows = append(rows, parse.Row{
			Activity:     st.activity.Name,
			ActivityType: st.activity.Type,
			Start:        sp.Start,
			End:          sp.End,
		})
	}
	return st, rows, nil
}

package parse

import (
	"regexp"
	"time"
)

const stampPattern = `[0-9]{4}-[0-9]{2}-[0-9]{2} .. [0-9]{2}:[0-9]{2}`

// ClockMatcher recognizes clock lines such as
//
//	CLOCK: [2024-01-01 Mo 22:00]--[2024-01-02 Di 01:00] =>  3:00
//
// A line with only the opening timestamp is a running clock; its end is
// stamped with the current time and the sentinel day abbreviation.
type ClockMatcher struct {
	re       *regexp.Regexp
	sentinel string
	now      func() time.Time
}

func NewClockMatcher(marker, sentinel string, now func() time.Time) *ClockMatcher {
	if now == nil {
		now = time.Now
	}
	return &ClockMatcher{
		re:       regexp.MustCompile(`^ *` + regexp.QuoteMeta(marker) + ` \[(` + stampPattern + `)\](?:--\[(` + stampPattern + `)\])?`),
		sentinel: sentinel,
		now:      now,
	}
}

func (c *ClockMatcher) Match(line string) (ClockRange, bool) {
	m := c.re.FindStringSubmatch(line)
	if m == nil {
		return ClockRange{}, false
	}
	r := ClockRange{Start: m[1], End: m[2]}
	if r.End == "" {
		now := c.now()
		r.End = now.Format("2006-01-02") + " " + c.sentinel + " " + now.Format("15:04")
		r.Open = true
	}
	return r, true
}

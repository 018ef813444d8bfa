package parse

// Activity is the heading context that clock lines are attributed to.
type Activity struct {
	Name string
	Type string
}

type ClockRange struct {
	Start string // "2006-01-02 Mo 15:04"
	End   string
	Open  bool // End was synthesized from the current time
	Line  int  // line number in the input, set by the caller
}

// Span is a range that starts and ends on the same day, without the
// day-abbreviation field.
type Span struct {
	Start string // "2006-01-02 15:04"
	End   string
}

type Row struct {
	Activity     string
	ActivityType string
	Start        string
	End          string
}

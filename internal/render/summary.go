package render

import (
	"fmt"
	"strings"

	"github.com/Zuo-Peng/clocktsv/internal/convert"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("12")  // bright blue
	colorWarn    = lipgloss.Color("11")  // bright yellow
	colorDim     = lipgloss.Color("240") // gray

	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorDim).
			Width(10)

	styleWarn = lipgloss.NewStyle().
			Foreground(colorWarn).
			Bold(true)
)

// Summary describes a finished run. With color off it is plain text.
func Summary(output string, s convert.Stats, color bool) string {
	title := "Wrote " + output
	label := func(l string) string { return fmt.Sprintf("%-10s", l) }
	rejected := fmt.Sprint(s.Rejected)
	if color {
		title = styleTitle.Render(title)
		label = func(l string) string { return styleLabel.Render(l) }
		if s.Rejected > 0 {
			rejected = styleWarn.Render(rejected)
		}
	}

	var b strings.Builder
	b.WriteString(title + "\n")
	fmt.Fprintf(&b, "  %s%d\n", label("rows"), s.Rows)
	fmt.Fprintf(&b, "  %s%d (%d running, %d split)\n", label("clocks"), s.Clocks, s.Open, s.Split)
	fmt.Fprintf(&b, "  %s%d\n", label("headings"), s.Headings)
	fmt.Fprintf(&b, "  %s%s\n", label("rejected"), rejected)
	return b.String()
}

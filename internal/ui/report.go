package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Detail is one labelled line of a report. Details keep the order given.
type Detail struct {
	Key   string
	Value string
}

// Report is a bordered summary printed after a command finishes.
type Report struct {
	Failed  bool
	Title   string
	Details []Detail
	Err     error
	Hint    string // Multi-line troubleshooting text, shown under the error
	Width   int
}

// Success creates a report for a command that worked.
func Success(title string, details ...Detail) *Report {
	return &Report{Title: title, Details: details, Width: MinReportWidth}
}

// Failure creates a report for a failed command.
func Failure(title string, err error, hint string) *Report {
	return &Report{Failed: true, Title: title, Err: err, Hint: hint, Width: MinReportWidth}
}

// SetWidth sets the rendering width.
func (r *Report) SetWidth(width int) *Report {
	r.Width = width
	return r
}

// Render returns the styled report.
func (r *Report) Render() string {
	width := r.Width
	if width < MinReportWidth {
		width = MinReportWidth
	}

	border, title := SuccessColor, SuccessTitleStyle.Render(fmt.Sprintf("%s  %s", SuccessMarker, r.Title))
	if r.Failed {
		border, title = ErrorColor, ErrorTitleStyle.Render(fmt.Sprintf("%s  %s", FailureMarker, r.Title))
	}

	lines := []string{title, ""}
	for _, d := range r.Details {
		lines = append(lines, DetailKeyStyle.Render(d.Key+":")+" "+DetailValueStyle.Render(d.Value))
	}
	if r.Err != nil {
		lines = append(lines, ErrorMessageStyle.Render(r.Err.Error()))
	}
	if r.Hint != "" {
		lines = append(lines, "", HintStyle.Render(r.Hint))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width-2).
		Padding(0, 1).
		Render(strings.TrimRight(strings.Join(lines, "\n"), "\n"))
}

// String implements fmt.Stringer
func (r *Report) String() string {
	return r.Render()
}

package notify

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Toast colours
var (
	SuccessColor = lipgloss.Color("#43BF6D") // Green
	ErrorColor   = lipgloss.Color("#FF5555") // Red
	InfoColor    = lipgloss.Color("#2B2B2B") // Dark neutral
	TextColor    = lipgloss.Color("#FFFFFF") // White
	FadedColor   = lipgloss.Color("#626262") // Gray
)

// Layout constants
const (
	MinTerminalWidth = 40
	MaxContentWidth  = 120
)

var toastBase = lipgloss.NewStyle().
	Foreground(TextColor).
	Padding(0, 2)

// ToastStyle returns the style for a toast of the given severity. Fading
// toasts keep their background but dim the text.
func ToastStyle(severity Severity, state State) lipgloss.Style {
	style := toastBase.Background(backgroundFor(severity))
	if state == StateFading {
		style = style.Foreground(FadedColor).Faint(true)
	}
	return style
}

func backgroundFor(severity Severity) lipgloss.Color {
	switch severity.Normalize() {
	case SeveritySuccess:
		return SuccessColor
	case SeverityError:
		return ErrorColor
	default:
		return InfoColor
	}
}

// RenderToast renders a toast centred within width columns.
func RenderToast(t Toast, width int) string {
	box := ToastStyle(t.Severity, t.State).Render(t.Message)
	if width <= 0 {
		return box
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

// TerminalWidth returns the width of f when it is a terminal, clamped to the
// supported range, or MinTerminalWidth otherwise.
func TerminalWidth(f *os.File) int {
	if f == nil {
		return MinTerminalWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

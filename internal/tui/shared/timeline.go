package shared

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joe/fetch-examples/internal/loop"
)

// unicodeDisabled switches symbols to ASCII when FETCH_EXAMPLES_ASCII is set.
//
//nolint:gochecknoglobals // Read once at startup
var unicodeDisabled = os.Getenv("FETCH_EXAMPLES_ASCII") != ""

// ActiveSymbol returns a circled dot symbol with ASCII fallback
func ActiveSymbol() string {
	if unicodeDisabled {
		return "[*]"
	}

	return "◉"
}

// CancelledSymbol returns a cancelled/prohibited symbol with ASCII fallback
func CancelledSymbol() string {
	if unicodeDisabled {
		return "[!]"
	}

	return "⊘"
}

// PendingSymbol returns an empty circle with ASCII fallback
func PendingSymbol() string {
	if unicodeDisabled {
		return "[ ]"
	}

	return "○"
}

// SuccessSymbol returns a check mark with ASCII fallback
func SuccessSymbol() string {
	if unicodeDisabled {
		return "[v]"
	}

	return "✓"
}

// RenderTimeline renders the request lifecycle for the header.
// Shows Idle ── Waiting ── Aborted.
// Idle is active while idle and done otherwise; Waiting is active while a
// request is outstanding; Aborted shows ⊘ once the request was aborted.
func RenderTimeline(current loop.Phase) string {
	type step struct {
		name  string
		phase loop.Phase
	}

	steps := []step{
		{"Idle", loop.PhaseIdle},
		{"Waiting", loop.PhaseWaiting},
		{"Aborted", loop.PhaseAborted},
	}

	parts := make([]string, 0, len(steps))

	for _, s := range steps {
		var symbol string
		var style lipgloss.Style

		switch {
		case s.phase == current && current == loop.PhaseAborted:
			symbol = CancelledSymbol()
			style = lipgloss.NewStyle().Foreground(WarningColor())
		case s.phase == current:
			symbol = ActiveSymbol()
			style = lipgloss.NewStyle().Foreground(PrimaryColor())
		case s.phase < current:
			symbol = SuccessSymbol()
			style = lipgloss.NewStyle().Foreground(SuccessColor())
		default:
			symbol = PendingSymbol()
			style = DimStyle()
		}

		parts = append(parts, style.Render(symbol+" "+s.name))
	}

	separator := DimStyle().Render(" ── ")

	return strings.Join(parts, separator)
}

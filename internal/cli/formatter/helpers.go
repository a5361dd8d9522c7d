package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	return StyleDim.Render(ShortID(id))
}

// ShortID returns the first 8 characters of an ID.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ShortDate formats t as "Mar 2" or "--" when nil.
func ShortDate(t *time.Time) string {
	if t == nil {
		return "--"
	}
	return t.Format("Jan 2")
}

// DateRange formats an inclusive start..end pair, collapsing single days.
func DateRange(start, end time.Time) string {
	if start.Equal(end) {
		return start.Format("Jan 2")
	}
	return start.Format("Jan 2") + " – " + end.Format("Jan 2")
}

// Assignees joins names as "@ann @bob", or "" when empty.
func Assignees(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return "@" + strings.Join(names, " @")
}

// Truncate shortens s to at most width visible cells, adding an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// PadRight pads s with spaces to width visible cells.
func PadRight(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

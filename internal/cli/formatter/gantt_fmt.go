package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/kairos-gantt/internal/contract"
)

const (
	cellWidth    = 3
	minNameWidth = 8
	maxNameWidth = 32

	barReal      = "███"
	barEstimated = "▒▒▒"
	todayMarker  = "  │"
)

// GridOptions tunes RenderGrid.
type GridOptions struct {
	// Selected highlights the row at this index; -1 highlights nothing.
	Selected int
	// NameWidth fixes the label column width. Zero sizes it to fit.
	NameWidth int
}

// FormatTimeline renders a timeline response as a titled gantt grid with a
// legend.
func FormatTimeline(resp *contract.TimelineResponse) string {
	var b strings.Builder
	title := resp.Cursor.String()
	if len(resp.Days) > 0 {
		title += "  " + DateRange(resp.Days[0], resp.Days[len(resp.Days)-1])
	}
	b.WriteString(Header(title))
	b.WriteString("\n\n")
	b.WriteString(RenderGrid(resp.Days, resp.TodayIndex, resp.Rows, GridOptions{Selected: -1}))
	b.WriteString("\n")
	b.WriteString(Legend())
	b.WriteString("\n")
	return b.String()
}

// Legend explains the bar glyphs.
func Legend() string {
	return Dim(barReal + " scheduled   " + barEstimated + " estimated   │ today")
}

// RenderGrid draws the day header and one bar per row. A row's bar covers
// columns StartCol up to but excluding EndCol (1-indexed).
func RenderGrid(days []time.Time, todayIndex int, rows []contract.TimelineRow, opts GridOptions) string {
	labels := make([]string, len(rows))
	nameWidth := opts.NameWidth
	for i, r := range rows {
		labels[i] = RowLabel(r)
		if opts.NameWidth == 0 {
			nameWidth = max(nameWidth, len([]rune(labels[i])))
		}
	}
	nameWidth = min(max(nameWidth, minNameWidth), maxNameWidth)

	var b strings.Builder

	// Weekday and day-of-month header rows.
	b.WriteString(strings.Repeat(" ", nameWidth) + " │")
	for i, d := range days {
		b.WriteString(dayCell(fmt.Sprintf("%*s", cellWidth, d.Format("Mon")[:2]), i == todayIndex))
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", nameWidth) + " │")
	for i, d := range days {
		b.WriteString(dayCell(fmt.Sprintf("%*d", cellWidth, d.Day()), i == todayIndex))
	}
	b.WriteString("\n")
	b.WriteString(Dim(strings.Repeat("─", nameWidth+1) + "┼" + strings.Repeat("─", len(days)*cellWidth)))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(Dim("No items in this window."))
		b.WriteString("\n")
		return b.String()
	}

	for i, r := range rows {
		label := PadRight(Truncate(labels[i], nameWidth), nameWidth)
		if i == opts.Selected {
			label = StyleSelected.Render(label)
		} else if r.Completed {
			label = Dim(label)
		}
		b.WriteString(label + " │")

		bar := barEstimated
		if r.HasRealDates {
			bar = barReal
		}
		style := BarStyle(r.IsTask, r.Completed)
		for col := 1; col <= len(days); col++ {
			switch {
			case col >= r.StartCol && col < r.EndCol:
				b.WriteString(style.Render(bar))
			case col-1 == todayIndex:
				b.WriteString(StyleHeader.Render(todayMarker))
			default:
				b.WriteString(strings.Repeat(" ", cellWidth))
			}
		}
		if meta := rowMeta(r); meta != "" {
			b.WriteString("  " + meta)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RowLabel is the indented name with a collapse marker for tasks that have
// subtasks.
func RowLabel(r contract.TimelineRow) string {
	marker := "  "
	if r.IsTask && r.ChildCount > 0 {
		marker = "▾ "
		if r.Collapsed {
			marker = "▸ "
		}
	}
	return strings.Repeat("  ", r.Level) + marker + r.Name
}

func rowMeta(r contract.TimelineRow) string {
	var parts []string
	if r.Completed {
		parts = append(parts, StyleGreen.Render("✔"))
	}
	if !r.IsTask && r.ChildCount > 0 {
		parts = append(parts, Dim(fmt.Sprintf("%d tasks", r.ChildCount)))
	} else if r.Collapsed {
		parts = append(parts, Dim(fmt.Sprintf("%d subtasks", r.ChildCount)))
	}
	if a := Assignees(r.Assignees); a != "" {
		parts = append(parts, StyleYellow.Render(a))
	}
	return strings.Join(parts, " ")
}

func dayCell(text string, today bool) string {
	if today {
		return StyleHeader.Render(text)
	}
	return Dim(text)
}

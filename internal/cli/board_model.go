package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/kairos-gantt/internal/cli/formatter"
	"github.com/alexanderramin/kairos-gantt/internal/contract"
	"github.com/alexanderramin/kairos-gantt/internal/timeline"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type boardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Collapse key.Binding
	Next     key.Binding
	Prev     key.Binding
	Today    key.Binding
	NextMon  key.Binding
	PrevMon  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var _ help.KeyMap = boardKeyMap{}

func defaultBoardKeys() boardKeyMap {
	return boardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "select up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "select down"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move row up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move row down"),
		),
		Collapse: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", "collapse/expand"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n/→", "next half"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p/←", "previous half"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		NextMon: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next month"),
		),
		PrevMon: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous month"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Collapse, k.MoveUp, k.MoveDown, k.Help, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown},
		{k.Collapse, k.Next, k.Prev, k.Today},
		{k.NextMon, k.PrevMon},
		{k.Help, k.Quit},
	}
}

// boardModel is the interactive timeline. All state lives in the board;
// the model only tracks the selected row.
type boardModel struct {
	ctx      context.Context
	board    *timeline.Board
	keys     boardKeyMap
	help     help.Model
	view     timeline.View
	rows     []contract.TimelineRow
	selected int
	status   string
	width    int
}

func newBoardModel(ctx context.Context, board *timeline.Board) *boardModel {
	m := &boardModel{
		ctx:   ctx,
		board: board,
		keys:  defaultBoardKeys(),
		help:  help.New(),
	}
	m.refresh("")
	return m
}

func (m *boardModel) Init() tea.Cmd { return nil }

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.rows)-1 {
			m.selected++
		}

	case key.Matches(msg, m.keys.MoveUp):
		m.moveSelected(-1)

	case key.Matches(msg, m.keys.MoveDown):
		m.moveSelected(1)

	case key.Matches(msg, m.keys.Collapse):
		if row, ok := m.selectedRow(); ok {
			if row.ChildCount == 0 || !row.IsTask {
				m.status = "Nothing to collapse."
				break
			}
			m.board.ToggleCollapse(row.ID)
			m.refresh(row.ID)
		}

	case key.Matches(msg, m.keys.Next):
		m.board.GotoNextHalf(m.ctx)
		m.refresh(m.selectedID())

	case key.Matches(msg, m.keys.Prev):
		m.board.GotoPrevHalf(m.ctx)
		m.refresh(m.selectedID())

	case key.Matches(msg, m.keys.Today):
		m.board.GotoToday(m.ctx)
		m.refresh(m.selectedID())

	case key.Matches(msg, m.keys.NextMon):
		m.board.SetMonth(m.ctx, m.board.Cursor().Anchor().AddDate(0, 1, 0))
		m.refresh(m.selectedID())

	case key.Matches(msg, m.keys.PrevMon):
		m.board.SetMonth(m.ctx, m.board.Cursor().Anchor().AddDate(0, -1, 0))
		m.refresh(m.selectedID())
	}

	return m, nil
}

// moveSelected drops the selected row onto its visible neighbour in
// direction dir and keeps the selection on the moved row.
func (m *boardModel) moveSelected(dir int) {
	target := m.selected + dir
	if target < 0 || target >= len(m.rows) {
		return
	}
	activeID := m.rows[m.selected].ID
	if !m.board.MoveItem(m.ctx, activeID, m.rows[target].ID) {
		m.status = "Order unchanged."
		return
	}
	m.refresh(activeID)
}

// refresh re-reads the board view and reselects keepID when it is still
// visible, clamping the selection otherwise.
func (m *boardModel) refresh(keepID string) {
	m.view = m.board.View()
	m.rows = contract.NewTimelineRows(m.view.Rows)

	if keepID != "" {
		for i, r := range m.rows {
			if r.ID == keepID {
				m.selected = i
				return
			}
		}
	}
	m.selected = max(0, min(m.selected, len(m.rows)-1))
}

func (m *boardModel) selectedRow() (contract.TimelineRow, bool) {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return contract.TimelineRow{}, false
	}
	return m.rows[m.selected], true
}

func (m *boardModel) selectedID() string {
	if row, ok := m.selectedRow(); ok {
		return row.ID
	}
	return ""
}

func (m *boardModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("%s  %s", m.view.Cursor, m.board.Key())
	if n := len(m.view.Days); n > 0 {
		title = fmt.Sprintf("%s  %s  %s", m.view.Cursor, formatter.DateRange(m.view.Days[0], m.view.Days[n-1]), m.board.Key())
	}
	b.WriteString(formatter.Header(title))
	b.WriteString("\n\n")

	selected := -1
	if len(m.rows) > 0 {
		selected = m.selected
	}
	b.WriteString(formatter.RenderGrid(m.view.Days, m.view.TodayIndex, m.rows, formatter.GridOptions{Selected: selected}))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(formatter.StyleYellow.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

package cli

import (
	"fmt"

	"github.com/alexanderramin/kairos-gantt/internal/timeline"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	var window windowFlags

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive timeline board",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("tui requires an interactive terminal; use 'gantt show' instead")
			}
			ctx := cmd.Context()

			opts, err := app.boardOptions(window)
			if err != nil {
				return err
			}
			board, err := app.Timeline.OpenBoard(ctx, app.orderKey(), opts...)
			if err != nil {
				return err
			}

			p := tea.NewProgram(newBoardModel(ctx, board),
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}

	window.register(cmd.Flags())
	return cmd
}

// boardOptions maps the App clock and the window flags onto board options.
func (a *App) boardOptions(w windowFlags) ([]timeline.BoardOption, error) {
	var opts []timeline.BoardOption
	if a.Now != nil {
		opts = append(opts, timeline.WithClock(a.Now))
	}
	if w.month == "" && !w.half.set {
		return opts, nil
	}

	cursor := timeline.CursorForToday(a.now())
	if w.month != "" {
		month, err := parseMonth(w.month)
		if err != nil {
			return nil, err
		}
		cursor = timeline.CursorFor(month, timeline.FirstHalf)
	}
	if w.half.set {
		cursor.Half = w.half.half
	}
	return append(opts, timeline.WithCursor(cursor)), nil
}

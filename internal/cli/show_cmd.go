package cli

import (
	"fmt"

	"github.com/alexanderramin/kairos-gantt/internal/cli/formatter"
	"github.com/alexanderramin/kairos-gantt/internal/contract"
	"github.com/spf13/cobra"
)

// timelineRequest builds a request for the App's order slot and clock.
func (a *App) timelineRequest(w *windowFlags) contract.TimelineRequest {
	req := contract.NewTimelineRequest(a.Kind, a.UserID)
	if a.Now != nil {
		now := a.Now()
		req.Now = &now
	}
	if w != nil {
		req.Month = w.month
		req.Half = w.half.ptr()
	}
	return req
}

func newShowCmd(app *App) *cobra.Command {
	var (
		window   windowFlags
		next     bool
		prev     bool
		today    bool
		collapse []string
		openOnly bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the half-month timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			req := app.timelineRequest(&window)
			req.HideCompleted = openOnly
			switch {
			case next:
				req.Nav = contract.NavNext
			case prev:
				req.Nav = contract.NavPrev
			case today:
				req.Nav = contract.NavToday
			}
			if len(collapse) > 0 {
				ids, err := resolveItemIDs(ctx, app, collapse)
				if err != nil {
					return err
				}
				req.Collapsed = ids
			}

			resp, err := app.timelineUseCase().View(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimeline(resp))
			return nil
		},
	}

	window.register(cmd.Flags())
	cmd.Flags().BoolVar(&next, "next", false, "Step one half forward")
	cmd.Flags().BoolVar(&prev, "prev", false, "Step one half back")
	cmd.Flags().BoolVar(&today, "today", false, "Jump to the half containing today")
	cmd.Flags().StringSliceVar(&collapse, "collapse", nil, "Collapse these task IDs (comma-separated)")
	cmd.Flags().BoolVar(&openOnly, "open", false, "Hide completed items")
	cmd.MarkFlagsMutuallyExclusive("next", "prev", "today")

	return cmd
}

func newMoveCmd(app *App) *cobra.Command {
	var window windowFlags

	cmd := &cobra.Command{
		Use:   "move <active-id> <over-id>",
		Short: "Move a row to the position of another row in the window",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ids, err := resolveItemIDs(ctx, app, args)
			if err != nil {
				return err
			}

			resp, err := app.timelineUseCase().Move(ctx, contract.MoveRequest{
				Timeline: app.timelineRequest(&window),
				ActiveID: ids[0],
				OverID:   ids[1],
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !resp.Moved {
				fmt.Fprintln(out, formatter.StyleYellow.Render("Order unchanged: both rows must be visible in the window."))
			} else {
				fmt.Fprintf(out, "%s Moved %s\n\n", formatter.StyleGreen.Render("✔"), formatter.TruncID(ids[0]))
			}
			if resp.Timeline != nil {
				fmt.Fprint(out, formatter.FormatTimeline(resp.Timeline))
			}
			return nil
		},
	}

	window.register(cmd.Flags())
	return cmd
}

func newOrderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Inspect or reset the saved row order",
	}
	cmd.AddCommand(newOrderShowCmd(app), newOrderResetCmd(app))
	return cmd
}

func newOrderShowCmd(app *App) *cobra.Command {
	var window windowFlags

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the row order for a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.timelineUseCase().View(cmd.Context(), app.timelineRequest(&window))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(fmt.Sprintf("Order %s", resp.Key)))
			if len(resp.Order) == 0 {
				fmt.Fprintln(out, formatter.Dim("No items in this window."))
				return nil
			}
			names := make(map[string]string, len(resp.Rows))
			for _, r := range resp.Rows {
				names[r.ID] = r.Name
			}
			for i, id := range resp.Order {
				name, ok := names[id]
				if !ok {
					name = formatter.Dim("(hidden)")
				}
				fmt.Fprintf(out, "%3d  %s  %s\n", i+1, formatter.TruncID(id), name)
			}
			return nil
		},
	}

	window.register(cmd.Flags())
	return cmd
}

func newOrderResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved row order for the current kind and user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.timelineUseCase().ResetOrder(cmd.Context(), app.orderKey()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Order reset for %s\n",
				formatter.StyleGreen.Render("✔"), app.orderKey())
			return nil
		},
	}
}

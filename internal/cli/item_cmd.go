package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/kairos-gantt/internal/cli/formatter"
	"github.com/alexanderramin/kairos-gantt/internal/domain"
	"github.com/alexanderramin/kairos-gantt/internal/repository"
	"github.com/alexanderramin/kairos-gantt/internal/timeline"
	"github.com/spf13/cobra"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "item",
		Aliases: []string{"i"},
		Short:   "Manage tasks and projects",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemListCmd(app),
		newItemTreeCmd(app),
		newItemDoneCmd(app),
		newItemAssignCmd(app),
		newItemRemoveCmd(app),
	)

	return cmd
}

type itemAddFlags struct {
	kind      string
	parent    string
	project   string
	start     string
	end       string
	due       string
	assignees []string
}

func newItemAddCmd(app *App) *cobra.Command {
	var f itemAddFlags

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a task or project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			name := strings.Join(args, " ")
			if name == "" {
				if !app.interactive() {
					return fmt.Errorf("item name is required")
				}
				if err := itemAddForm(&name, &f).Run(); err != nil {
					return err
				}
			}

			item, err := buildItem(cmd, app, name, f)
			if err != nil {
				return err
			}
			if err := app.Items.Create(ctx, item); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Created %s %s %s\n",
				formatter.StyleGreen.Render("✔"),
				formatter.KindLabel(item.IsTask),
				formatter.Bold(item.Name),
				formatter.TruncID(item.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.kind, "type", "task", "Item type: task or project")
	cmd.Flags().StringVar(&f.parent, "parent", "", "Parent task ID (tasks only)")
	cmd.Flags().StringVar(&f.project, "project", "", "Containing project ID (tasks only)")
	cmd.Flags().StringVar(&f.start, "start", "", "Start (task) or kickoff (project) date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "End (task) or close (project) date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&f.assignees, "assignee", nil, "Assignee name (repeatable)")

	return cmd
}

func buildItem(cmd *cobra.Command, app *App, name string, f itemAddFlags) (*domain.RawItem, error) {
	ctx := cmd.Context()

	item := &domain.RawItem{Name: name, Assignees: f.assignees}
	switch strings.ToLower(f.kind) {
	case "task", "":
		item.IsTask = true
	case "project":
	default:
		return nil, fmt.Errorf("invalid --type %q (expected task or project)", f.kind)
	}

	start, err := parseOptionalDate("--start", f.start)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate("--end", f.end)
	if err != nil {
		return nil, err
	}
	item.DueDate, err = parseOptionalDate("--due", f.due)
	if err != nil {
		return nil, err
	}
	if item.IsTask {
		item.StartDate, item.EndDate = start, end
	} else {
		item.KickoffDate, item.CloseDate = start, end
	}

	if f.parent != "" {
		id, err := resolveItemID(ctx, app, f.parent)
		if err != nil {
			return nil, fmt.Errorf("--parent: %w", err)
		}
		item.ParentID = &id
	}
	if f.project != "" {
		id, err := resolveItemID(ctx, app, f.project)
		if err != nil {
			return nil, fmt.Errorf("--project: %w", err)
		}
		item.ProjectID = &id
	}
	return item, nil
}

func newItemListCmd(app *App) *cobra.Command {
	var (
		kind     string
		openOnly bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List items",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := repository.ItemFilter{HideCompleted: openOnly}
			if kind != "" {
				k, err := domain.ParseResourceKind(kind)
				if err != nil {
					return err
				}
				filter.Kind = k
			}

			items, err := app.Items.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No items found."))
				return nil
			}

			headers := []string{"ID", "TYPE", "NAME", "START", "END", "DUE", "ASSIGNEES", "DONE"}
			rows := make([][]string, 0, len(items))
			for i := range items {
				it := &items[i]
				start, end := it.ExplicitRange()
				done := ""
				if it.Completed() {
					done = formatter.StyleGreen.Render("✔")
				}
				rows = append(rows, []string{
					formatter.TruncID(it.ID),
					formatter.KindLabel(it.IsTask),
					formatter.Truncate(it.Name, 40),
					formatter.ShortDate(start),
					formatter.ShortDate(end),
					formatter.ShortDate(it.DueDate),
					formatter.Assignees(it.Assignees),
					done,
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "type", "", "Only list this kind: tasks or projects")
	cmd.Flags().BoolVar(&openOnly, "open", false, "Hide completed items")

	return cmd
}

func newItemTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Show the item hierarchy for the selected kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			raws, err := app.Items.List(cmd.Context(), repository.ItemFilter{Kind: app.Kind})
			if err != nil {
				return err
			}
			if len(raws) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No items found."))
				return nil
			}

			roots := timeline.BuildForest(timeline.ResolveItems(raws, app.now()))
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTree(treeItems(roots)))
			return nil
		},
	}
}

// treeItems flattens a forest into tree rows, marking the last child of
// each parent so the connectors close correctly.
func treeItems(roots []*domain.GanttItem) []formatter.TreeItem {
	last := make(map[*domain.GanttItem]bool)
	var mark func(siblings []*domain.GanttItem)
	mark = func(siblings []*domain.GanttItem) {
		for i, s := range siblings {
			last[s] = i == len(siblings)-1
			mark(s.Children)
		}
	}
	mark(roots)

	flat := timeline.Flatten(roots)
	out := make([]formatter.TreeItem, 0, len(flat))
	for _, it := range flat {
		detail := formatter.DateRange(it.Start, it.End)
		if !it.HasRealDates {
			detail += " (est.)"
		}
		if len(it.Assignees) > 0 {
			detail += "  " + formatter.Assignees(it.Assignees)
		}
		out = append(out, formatter.TreeItem{
			Title:  it.Name,
			ID:     formatter.TruncID(it.ID),
			Level:  it.Level,
			IsLast: last[it],
			Done:   it.Completed,
			Detail: detail,
		})
	}
	return out
}

func newItemDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark an item as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Items.MarkDone(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Marked %s done\n",
				formatter.StyleGreen.Render("✔"), formatter.TruncID(id))
			return nil
		},
	}
}

func newItemAssignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <id> [name...]",
		Short: "Replace an item's assignees (no names clears them)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Items.Assign(ctx, id, args[1:]); err != nil {
				return err
			}
			item, err := app.Items.GetByID(ctx, id)
			if err != nil {
				return err
			}
			who := formatter.Assignees(item.Assignees)
			if who == "" {
				who = formatter.Dim("nobody")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s assigned to %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(item.Name), who)
			return nil
		},
	}
}

func newItemRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Items.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", formatter.TruncID(id))
			return nil
		},
	}
}

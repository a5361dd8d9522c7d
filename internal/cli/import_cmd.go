package cli

import (
	"fmt"

	"github.com/alexanderramin/kairos-gantt/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import tasks and projects from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := app.importItemsUseCase()
			if uc == nil {
				return fmt.Errorf("import is not available")
			}
			result, err := uc.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d tasks and %d projects (%d assignees)\n",
				formatter.StyleGreen.Render("✔"), result.TaskCount, result.ProjectCount, result.AssigneeCount)
			return nil
		},
	}
}

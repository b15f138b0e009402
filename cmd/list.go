package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kanbandesk/kanbandesk/internal/ui"
	"github.com/kanbandesk/kanbandesk/models"
)

var listStatus string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, optionally filtered by column",
	Long: `List tasks on the board. Without flags every column is shown;
with --status only that column is listed.

Examples:
  kanbandesk list
  kanbandesk list --status in-progress`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "only show one column (todo, in-progress, review, done, cancel)")
}

func runList(cmd *cobra.Command, args []string) error {
	svc, s, err := GetService()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	ctx := context.Background()

	statuses := models.AllStatuses
	if listStatus != "" {
		statuses = []models.TaskStatus{models.TaskStatus(listStatus)}
	}

	for _, status := range statuses {
		tasks, err := svc.ListColumn(ctx, status)
		if err != nil {
			return fmt.Errorf("list column %s: %w", status, err)
		}

		fmt.Println(ui.ColumnTitleStyle(status).Render(fmt.Sprintf("%s (%d)", status.Title(), len(tasks))))
		for _, t := range tasks {
			line := fmt.Sprintf("  %s  %s", t.ID[:8], t.Title)
			if verbose {
				line = fmt.Sprintf("  %s  %s", t.ID, t.Title)
				if t.StartedAt != nil {
					line += "  started " + t.StartedAt.Local().Format("2006-01-02 15:04")
				}
				if t.CompletedAt != nil {
					line += "  completed " + t.CompletedAt.Local().Format("2006-01-02 15:04")
				}
			}
			fmt.Println(line)
		}
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kanbandesk/kanbandesk/models"
)

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear <status>",
	Short: "Delete every task in one column",
	Long: `Delete all tasks currently in the given column as one batch.
Clearing an already empty column is a no-op.

Example:
  kanbandesk clear done`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, s, err := GetService()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		status := models.TaskStatus(args[0])
		n, err := svc.ClearColumn(context.Background(), status)
		if err != nil {
			return fmt.Errorf("clear column: %s", friendlyError(err))
		}
		fmt.Printf("Removed %d task(s) from %s\n", n, status.Title())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// rmCmd represents the rm command
var rmCmd = &cobra.Command{
	Use:   "rm <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, s, err := GetService()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		if err := svc.DeleteTask(context.Background(), args[0]); err != nil {
			return fmt.Errorf("delete task: %s", friendlyError(err))
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

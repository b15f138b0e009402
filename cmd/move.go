package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kanbandesk/kanbandesk/models"
)

// moveCmd represents the move command
var moveCmd = &cobra.Command{
	Use:   "move <task-id> <status>",
	Short: "Move a task to another column",
	Long: `Move a task to one of: todo, in-progress, review, done, cancel.

The first move into in-progress stamps the start time; moving into done
stamps the completion time, and moving out of done clears it again. Any
column can move to any other, so a misfiled task can always be pulled
back.`,
	Args: cobra.ExactArgs(2),
	RunE: runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
}

func runMove(cmd *cobra.Command, args []string) error {
	svc, s, err := GetService()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	id, dest := args[0], models.TaskStatus(args[1])
	if err := svc.MoveTask(context.Background(), id, dest); err != nil {
		return fmt.Errorf("move task: %s", friendlyError(err))
	}
	fmt.Printf("Moved %s to %s\n", id, dest.Title())
	return nil
}

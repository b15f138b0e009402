package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	editTitle       string
	editDescription string
	editTags        []string
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Edit a task's title, description or tags",
	Long: `Patch the editable fields of a task. Status is not editable here:
use 'kanbandesk move' so the timestamp rules apply.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVar(&editTitle, "title", "", "new title")
	editCmd.Flags().StringVar(&editDescription, "desc", "", "new description")
	editCmd.Flags().StringSliceVar(&editTags, "tags", nil, "replace the tag list")
}

func runEdit(cmd *cobra.Command, args []string) error {
	svc, s, err := GetService()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	updates := map[string]interface{}{}
	if cmd.Flags().Changed("title") {
		updates["title"] = editTitle
	}
	if cmd.Flags().Changed("desc") {
		updates["description"] = editDescription
	}
	if cmd.Flags().Changed("tags") {
		updates["tags"] = editTags
	}
	if len(updates) == 0 {
		return fmt.Errorf("nothing to update: pass --title, --desc or --tags")
	}

	if err := svc.UpdateTask(context.Background(), args[0], updates); err != nil {
		return fmt.Errorf("edit task: %s", friendlyError(err))
	}
	fmt.Printf("Updated %s\n", args[0])
	return nil
}

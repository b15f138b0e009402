package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kanbandesk/kanbandesk/internal/speech"
)

var (
	addDescription string
	addTemplateID  string
	addDictate     bool
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task to the To Do column",
	Long: `Add a new task. The task starts in To Do with its creation time
recorded; start and completion times are stamped later as it moves.

Examples:
  kanbandesk add "Write report" --desc "Quarterly numbers"
  kanbandesk add --template <template-id>
  kanbandesk add --dictate`,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addDescription, "desc", "d", "", "task description")
	addCmd.Flags().StringVarP(&addTemplateID, "template", "t", "", "create the task from a saved template")
	addCmd.Flags().BoolVar(&addDictate, "dictate", false, "read the title from a dictation line on stdin")
}

func runAdd(cmd *cobra.Command, args []string) error {
	svc, s, err := GetService()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	ctx := context.Background()

	if addTemplateID != "" {
		task, err := svc.InstantiateTemplate(ctx, addTemplateID)
		if err != nil {
			return fmt.Errorf("instantiate template: %w", err)
		}
		fmt.Printf("Created %q from template (ID: %s)\n", task.Title, task.ID)
		return nil
	}

	title := strings.TrimSpace(strings.Join(args, " "))

	if addDictate {
		recognized, err := dictateTitle(&speech.LineReader{R: cmd.InOrStdin()})
		if err != nil {
			return fmt.Errorf("dictation failed: %w", err)
		}
		title = recognized
	}

	task, err := svc.CreateTask(ctx, title, addDescription)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	fmt.Printf("Created %q (ID: %s)\n", task.Title, task.ID)
	return nil
}

// dictateTitle runs one recognition session, echoing partials to stderr.
func dictateTitle(rec speech.Recognizer) (string, error) {
	var final string
	var recErr error

	fmt.Fprint(os.Stderr, "Dictate title: ")
	rec.Recognize(speech.Callbacks{
		OnPartial: func(text string) { fmt.Fprintf(os.Stderr, "\rDictate title: %s", text) },
		OnFinal:   func(text string) { final = text; fmt.Fprintln(os.Stderr) },
		OnError:   func(err error) { recErr = err },
	})
	if recErr != nil {
		return "", recErr
	}
	return final, nil
}

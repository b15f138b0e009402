package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kanbandesk/kanbandesk/internal/ui"
)

// boardCmd represents the board command
var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive board",
	Long: `Open the five-column board in the terminal. The view is driven by
a live query: any change committed to the store redraws the board
without a manual refresh.

Keys: h/l switch columns, j/k select tasks, H/L or 1-5 move the
selected task, a adds a task to the current column, x deletes the
selected task, q quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, s, err := GetService()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		model := ui.NewBoardModel(svc, s.Live())
		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("run board: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

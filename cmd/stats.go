package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kanbandesk/kanbandesk/internal/ui"
	"github.com/kanbandesk/kanbandesk/models"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion statistics",
	Long: `Show a weekly progress chart (tasks completed per day over the
last seven days) and the history of finished work.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	svc, s, err := GetService()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	ctx := context.Background()

	days, err := svc.WeeklyCompletions(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("weekly completions: %w", err)
	}

	fmt.Println(ui.StyleTitle.Render("Weekly Progress"))
	max := 1
	for _, d := range days {
		if d.Count > max {
			max = d.Count
		}
	}
	for _, d := range days {
		bar := strings.Repeat("█", d.Count*20/max)
		fmt.Printf("  %s  %-20s %d\n", d.Day.Format("Jan 02"), ui.StyleSuccess.Render(bar), d.Count)
	}

	history, err := svc.History(ctx)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}

	fmt.Println()
	fmt.Println(ui.StyleTitle.Render("History"))
	if len(history) == 0 {
		fmt.Println(ui.StyleSubtle.Render("  No completed or cancelled tasks yet."))
		return nil
	}
	for _, t := range history {
		marker := ui.StyleSuccess.Render("✔")
		if t.Status == models.StatusCancel {
			marker = ui.StyleError.Render("✘")
		}
		when := ""
		if t.CompletedAt != nil {
			when = t.CompletedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("  %s %-40s %s\n", marker, t.Title, ui.StyleSubtle.Render(when))
	}
	return nil
}

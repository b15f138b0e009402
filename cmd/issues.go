package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kanbandesk/kanbandesk/internal/github"
	"github.com/kanbandesk/kanbandesk/types"
)

// issuesCmd represents the issues command
var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "List open issues from the configured GitHub repository",
	Long: `List open issues from the repository configured in the settings
(falling back to the github section of the config file). This is a
read-only view: issues never enter the board automatically.`,
	RunE: runIssues,
}

func init() {
	rootCmd.AddCommand(issuesCmd)
}

func runIssues(cmd *cobra.Command, args []string) error {
	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	ctx := context.Background()
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}

	// Stored settings win; config fills gaps.
	cfg := GetConfig()
	token, owner, repo := settings.GitHubToken, settings.GitHubOwner, settings.GitHubRepo
	if token == "" {
		token = cfg.GitHub.Token
	}
	if owner == "" {
		owner = cfg.GitHub.Owner
	}
	if repo == "" {
		repo = cfg.GitHub.Repo
	}

	issues, err := github.NewClient().FetchOpenIssues(ctx, token, owner, repo)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrMissingCredentials):
			return fmt.Errorf("GitHub is not configured: run 'kanbandesk settings set --token ... --owner ... --repo ...'")
		case errors.Is(err, types.ErrInvalidToken):
			return fmt.Errorf("GitHub rejected the stored token: update it with 'kanbandesk settings set --token ...'")
		case errors.Is(err, types.ErrRepoNotFound):
			return fmt.Errorf("repository %s/%s was not found on GitHub", owner, repo)
		default:
			return fmt.Errorf("fetch issues: %w", err)
		}
	}

	if len(issues) == 0 {
		fmt.Printf("No open issues in %s/%s.\n", owner, repo)
		return nil
	}
	for _, issue := range issues {
		fmt.Printf("#%-5d %s\n", issue.Number, issue.Title)
		if verbose {
			fmt.Printf("       %s\n", issue.HTMLURL)
		}
	}
	return nil
}

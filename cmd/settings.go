package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	settingsToken string
	settingsOwner string
	settingsRepo  string
)

// settingsCmd groups the settings subcommands.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the board settings",
	Long: `Settings are a single record holding the optional GitHub
credentials. Writes always update that one record in place.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		settings, err := s.GetSettings(context.Background())
		if err != nil {
			return fmt.Errorf("read settings: %w", err)
		}

		fmt.Printf("GitHub owner: %s\n", orUnset(settings.GitHubOwner))
		fmt.Printf("GitHub repo:  %s\n", orUnset(settings.GitHubRepo))
		fmt.Printf("GitHub token: %s\n", maskToken(settings.GitHubToken))
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update settings fields",
	Long: `Update one or more settings fields. Unset flags leave the stored
value untouched.

Example:
  kanbandesk settings set --owner acme --repo board --token ghp_...`,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		changed := false
		if cmd.Flags().Changed("token") {
			settings.GitHubToken = settingsToken
			changed = true
		}
		if cmd.Flags().Changed("owner") {
			settings.GitHubOwner = settingsOwner
			changed = true
		}
		if cmd.Flags().Changed("repo") {
			settings.GitHubRepo = settingsRepo
			changed = true
		}
		if !changed {
			return fmt.Errorf("nothing to set: pass --token, --owner or --repo")
		}

		if err := s.PutSettings(ctx, settings); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		fmt.Println("Settings saved.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)

	settingsSetCmd.Flags().StringVar(&settingsToken, "token", "", "GitHub access token")
	settingsSetCmd.Flags().StringVar(&settingsOwner, "owner", "", "GitHub repository owner")
	settingsSetCmd.Flags().StringVar(&settingsRepo, "repo", "", "GitHub repository name")
}

func orUnset(v string) string {
	if v == "" {
		return "(unset)"
	}
	return v
}

func maskToken(token string) string {
	if token == "" {
		return "(unset)"
	}
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

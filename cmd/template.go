package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var templateDescription string

// templateCmd groups the template registry subcommands.
var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage reusable task templates",
	Long: `Templates are saved (title, description) pairs used to pre-fill
new tasks. A task created from a template keeps no link back to it;
deleting the template never touches existing tasks.`,
}

var templateAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Save a new template",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, s, err := GetService()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		tmpl, err := svc.AddTemplate(context.Background(), args[0], templateDescription)
		if err != nil {
			return fmt.Errorf("add template: %s", friendlyError(err))
		}
		fmt.Printf("Saved template %q (ID: %s)\n", tmpl.Title, tmpl.ID)
		return nil
	},
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, s, err := GetService()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		templates, err := svc.ListTemplates(context.Background())
		if err != nil {
			return fmt.Errorf("list templates: %w", err)
		}
		if len(templates) == 0 {
			fmt.Println("No templates saved.")
			return nil
		}
		for _, tmpl := range templates {
			fmt.Printf("%s  %s", tmpl.ID, tmpl.Title)
			if tmpl.Description != "" {
				fmt.Printf("  — %s", tmpl.Description)
			}
			fmt.Println()
		}
		return nil
	},
}

var templateRmCmd = &cobra.Command{
	Use:   "rm <template-id>",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, s, err := GetService()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		if err := svc.DeleteTemplate(context.Background(), args[0]); err != nil {
			return fmt.Errorf("delete template: %s", friendlyError(err))
		}
		fmt.Printf("Deleted template %s\n", args[0])
		return nil
	},
}

var templateUseCmd = &cobra.Command{
	Use:   "use <template-id>",
	Short: "Create a task from a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, s, err := GetService()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		task, err := svc.InstantiateTemplate(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("use template: %s", friendlyError(err))
		}
		fmt.Printf("Created %q (ID: %s)\n", task.Title, task.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.AddCommand(templateAddCmd, templateListCmd, templateRmCmd, templateUseCmd)

	templateAddCmd.Flags().StringVarP(&templateDescription, "desc", "d", "", "template description")
}

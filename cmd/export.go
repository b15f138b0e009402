package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v3"

	"github.com/kanbandesk/kanbandesk/models"
)

var exportFormat string

// boardSnapshot is the serialized form of a full board export.
type boardSnapshot struct {
	Tasks     []models.Task         `json:"tasks" yaml:"tasks"`
	Templates []models.TaskTemplate `json:"templates" yaml:"templates"`
}

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export tasks and templates to JSON or YAML",
	Long: `Write a snapshot of all tasks and templates to a file, or to
stdout when no file is given.

Examples:
  kanbandesk export backup.json
  kanbandesk export --format yaml board.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format: json or yaml")
}

func runExport(cmd *cobra.Command, args []string) error {
	svc, s, err := GetService()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	ctx := context.Background()

	snapshot := boardSnapshot{}
	if snapshot.Tasks, err = svc.ListTasks(ctx); err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	if snapshot.Templates, err = svc.ListTemplates(ctx); err != nil {
		return fmt.Errorf("list templates: %w", err)
	}

	var data []byte
	switch strings.ToLower(exportFormat) {
	case "json":
		data, err = json.MarshalIndent(snapshot, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(snapshot)
	default:
		return fmt.Errorf("unsupported format %q: use json or yaml", exportFormat)
	}
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if len(args) == 0 {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", args[0], err)
	}
	fmt.Printf("Exported %d task(s) and %d template(s) to %s\n", len(snapshot.Tasks), len(snapshot.Templates), args[0])
	return nil
}

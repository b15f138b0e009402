package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kanbandesk/kanbandesk/internal/board"
	"github.com/kanbandesk/kanbandesk/store"
	"github.com/kanbandesk/kanbandesk/types"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kanbandesk",
	Short: "kanbandesk is a local kanban board for your tasks.",
	Long: `kanbandesk keeps a personal task board on your machine.
Tasks move across five columns (To Do, In Progress, Review, Done,
Cancel); start and completion times are stamped automatically as tasks
move. Templates pre-fill recurring tasks, and an optional read-only
GitHub integration lists open issues next to the board.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.kanbandesk.yaml or $HOME/.kanbandesk.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// GetBoardFilePath returns the full path to the SQLite database file.
func GetBoardFilePath() string {
	config := GetConfig()
	if config.Data.File == ":memory:" {
		return ":memory:"
	}
	return filepath.Join(config.Project.RootDir, config.Data.File)
}

// GetStore opens the board store configured for this invocation.
func GetStore() (store.BoardStore, error) {
	dbPath := GetBoardFilePath()
	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open board store at %s: %w", dbPath, err)
	}
	return s, nil
}

// GetService opens the store and wraps it in the board service. Callers
// must Close the returned store when done.
func GetService() (*board.Service, store.BoardStore, error) {
	s, err := GetStore()
	if err != nil {
		return nil, nil, err
	}
	return board.NewService(s), s, nil
}

// friendlyError maps typed failures onto short user-facing messages.
func friendlyError(err error) string {
	var appErr *types.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

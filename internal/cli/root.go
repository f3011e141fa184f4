package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/studystreak/internal/bot"
	"github.com/sandeepkv93/studystreak/internal/config"
	"github.com/sandeepkv93/studystreak/internal/ledger"
	"github.com/sandeepkv93/studystreak/internal/storage"
)

var configPath string

// NewRootCmd builds the command tree. Errors are returned, not printed, so
// Execute can print a single diagnostic.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "studystreak",
		Short: "StudyStreak - daily study tasks and points over chat commands",
		Long: `StudyStreak tracks daily study tasks per chat user.

Users add tasks with /addtask, list them with /tasks, complete them with /done
and collect 10 points per completed task.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")

	root.AddCommand(newServeCmd())
	root.AddCommand(newConsoleCmd())
	root.AddCommand(newConfigCmd())
	return root
}

// Execute runs the CLI and reports a failure once on stderr.
func Execute(ctx context.Context) error {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath, true)
}

// newDispatcher opens the configured store. The caller closes the returned
// repository.
func newDispatcher(cfg *config.Config, logOut io.Writer) (*bot.Dispatcher, storage.Repository, error) {
	repo, err := storage.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	logger := log.New(logOut, "studystreak ", log.LstdFlags)
	return bot.NewDispatcher(repo, ledger.New(nil), logger), repo, nil
}

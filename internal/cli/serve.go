package cli

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/studystreak/internal/maxchat"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot against the MAX messenger Bot API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireToken(); err != nil {
		return err
	}

	dispatcher, repo, err := newDispatcher(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer repo.Close()

	poller, err := maxchat.New(cfg.BotToken, dispatcher, log.New(os.Stderr, "maxchat ", log.LstdFlags))
	if err != nil {
		return fmt.Errorf("start bot client: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	if name, err := poller.Identify(ctx); err != nil {
		fmt.Fprintf(out, "Failed to get bot info: %v\n", err)
	} else {
		fmt.Fprintf(out, "Bot: %s\n", name)
	}
	fmt.Fprintf(out, "Bot is running and listening for messages (store: %s %s)...\n", cfg.Store.Backend, cfg.Store.Path)
	fmt.Fprintln(out, "Try sending /start to your bot")

	err = poller.Run(ctx)
	if ctx.Err() == nil {
		return fmt.Errorf("bot stopped: %w", err)
	}
	fmt.Fprintln(out, "Bot stopped")
	return nil
}

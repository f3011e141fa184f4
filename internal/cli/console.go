package cli

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/studystreak/internal/bot"
	"github.com/sandeepkv93/studystreak/internal/console"
)

func newConsoleCmd() *cobra.Command {
	var sender bot.Sender
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Chat with the bot locally in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			// log lines would corrupt the terminal UI
			dispatcher, repo, err := newDispatcher(cfg, io.Discard)
			if err != nil {
				return err
			}
			defer repo.Close()

			program := tea.NewProgram(console.NewModel(cmd.Context(), dispatcher, sender), tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("console: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sender.ID, "user-id", "console", "user id the commands are recorded under")
	cmd.Flags().StringVar(&sender.FirstName, "first-name", "", "first name shown by /score")
	cmd.Flags().StringVar(&sender.Username, "username", "", "username shown by /score when no first name is set")
	return cmd
}

package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/meetulr/talawa-admin/internal/cmd"
	"github.com/meetulr/talawa-admin/internal/config"
	"github.com/meetulr/talawa-admin/internal/logging"
	"github.com/meetulr/talawa-admin/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "talawa",
		Short: "Talawa - organization admin console",
		Long:  "Talawa CLI: manage member profiles, browse the tag tree, and assign tags to people.",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			_, err := config.LoadDotEnv(".env")
			return err
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.LoginCmd())
	root.AddCommand(cmd.TagsCmd())
	root.AddCommand(cmd.MemberCmd())
	return root
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Println("not logged in. run 'talawa login' first.")
		}
		return err
	}

	logFile, log, err := logging.FileLogger(cmd.LogPath(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logFile.Close()

	cache, err := cmd.OpenCache()
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer cache.Close()

	client := cmd.NewClient(cfg)
	client.SetLogger(log)
	log.WithField("api_url", client.BaseURL()).Info("starting tui")

	p := tea.NewProgram(ui.NewApp(client, cfg, cache), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

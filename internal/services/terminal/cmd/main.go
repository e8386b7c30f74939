package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LeonardoBeccarini/symbiont/internal/bootstrap"
	"github.com/LeonardoBeccarini/symbiont/internal/config"
	"github.com/LeonardoBeccarini/symbiont/internal/services/terminal"
)

func newRootCmd() *cobra.Command {
	var (
		dbPath  string
		logPath string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "symbiont",
		Short: "Run the Symbiont farm dashboard in the terminal",
		Long: `Runs the Symbiont dashboard as a terminal UI.

Type an adjustment between -10 and 10 and press enter to co-evolve the
yield. t toggles the theme, q quits. Logs go to --log so they do not
disturb the screen.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("db") {
				cfg.DBPath = dbPath
			}
			if cmd.Flags().Changed("verbose") {
				cfg.Verbose = verbose
			}

			logger, err := bootstrap.NewLogger(cfg.Verbose, logPath)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			// The background is queried once at startup; terminals do not
			// report later changes, so only the t key changes the theme.
			rt := bootstrap.Build(cmd.Context(), cfg, logger, bootstrap.Options{
				DarkMode: lipgloss.HasDarkBackground(),
			})
			defer rt.Close()

			m := terminal.New(terminal.Config{
				Store:    rt.Store,
				Tray:     rt.Tray,
				Theme:    rt.Theme,
				Clock:    rt.Clock,
				Location: cfg.Location(),
			})
			defer m.Close()

			if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
				return fmt.Errorf("terminal ui: %w", err)
			}
			logger.Info("terminal dashboard exited", zap.Float64("yield", rt.Store.State().Yield))
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", `sqlite cache path, "none" disables it (overrides SYMBIONT_DB_PATH)`)
	cmd.Flags().StringVar(&logPath, "log", "symbiont.log", "log file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

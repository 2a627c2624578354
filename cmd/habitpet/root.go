package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dori/habitpet/internal/app"
	"github.com/dori/habitpet/internal/config"
	"github.com/dori/habitpet/internal/ui"
)

var version = "0.1.0"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habitpet",
		Short: "A tiny pet that grows while you finish your missions",
		Long: `habitpet keeps a checklist of missions next to a pet. Finishing a
mission feeds the pet XP; undoing it takes the XP back. Run without a
subcommand to open the widget.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(runTUI)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.AddCommand(
		newTaskCmd(),
		newPetCmd(),
		newStatusCmd(),
		newUpdateCmd(),
		newResetCmd(),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the command line and exits non-zero on failure
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// withApp loads the configuration, opens the data directory and hands the
// session to fn, closing it afterwards.
func withApp(fn func(a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	application, err := app.New(cfg, version)
	if err != nil {
		return err
	}

	runErr := fn(application)
	closeErr := application.Close()
	return errors.Join(runErr, closeErr)
}

func runTUI(a *app.App) error {
	p := tea.NewProgram(ui.NewRootModel(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "habitpet v%s\n", version)
		},
	}
}

// requireYes turns a missing --yes into a readable error
func requireYes(err error) error {
	if errors.Is(err, app.ErrConfirmationRequired) {
		return errors.New("this cannot be undone, re-run with --yes")
	}
	return err
}

package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"p9e.in/assettrack/client/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Start the interactive interface",
	RunE:  runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app := tui.New(ctx, tui.Deps{
		Auth:        env.authStore,
		Inspections: env.inspectionStore,
		Assets:      env.assets,
		Proposals:   env.proposals,
		Reports:     env.inspections,
		Probe:       env.api.Health,
		ReportDir:   env.cfg.ReportDir,
		Log:         env.log.Named("tui"),
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

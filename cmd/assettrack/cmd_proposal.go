package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"p9e.in/assettrack/client/services"
)

var proposalCmd = &cobra.Command{
	Use:     "proposal",
	Aliases: []string{"propuesta"},
	Short:   "Show the current budget proposal",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		p, err := env.proposals.Current(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, p.Nombre)
		fmt.Fprintf(out, "Presupuesto total: %s\n\n", services.FormatEuros(p.PresupuestoTotal))

		rows := make([][]string, 0, 5)
		for _, it := range services.CostBreakdown(p) {
			rows = append(rows, []string{it.Label, services.FormatEuros(it.Value)})
		}
		fmt.Fprintln(out, renderTable([]string{"Concepto", "Coste"}, rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(proposalCmd)
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"p9e.in/assettrack/client/services"
	"p9e.in/assettrack/pkg/apperr"
)

var (
	mineLimit   int
	outDir      string
	exportAsset string
)

var inspectionsCmd = &cobra.Command{
	Use:     "inspections",
	Aliases: []string{"inspecciones"},
	Short:   "Query and manage saved inspections",
}

var inspectionsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your latest inspections",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		list, err := env.inspections.Mine(cmd.Context(), mineLimit)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), inspectionTable(list))
		return nil
	},
}

var inspectionsPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List inspections not yet synchronised",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		list, err := env.inspections.PendingSync(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), inspectionTable(list))
		return nil
	},
}

var inspectionsAssetCmd = &cobra.Command{
	Use:   "asset [asset-id]",
	Short: "List the inspections of one generator, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		list, err := env.inspections.ByAsset(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), inspectionTable(list))
		return nil
	},
}

var inspectionsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one inspection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		insp, err := env.inspections.ByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), inspectionDetail(insp))
		return nil
	},
}

// inspectionsStatusCmd moves an inspection between borrador, completada and aprobada
var inspectionsStatusCmd = &cobra.Command{
	Use:   "status [id] [estado]",
	Short: "Change the status of an inspection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		st := services.InspectionStatus(args[1])
		switch st {
		case services.StatusDraft, services.StatusCompleted, services.StatusApproved:
		default:
			return apperr.Invalidf("cli.status", "Estado no válido: %s", args[1])
		}
		insp, err := env.inspections.ChangeStatus(cmd.Context(), args[0], st)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s → %s\n", deref(insp.NumeroInspeccion), insp.Estado)
		return nil
	},
}

var inspectionsSyncCmd = &cobra.Command{
	Use:   "sync [id]",
	Short: "Mark an inspection as synchronised",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		if err := env.inspections.MarkSynced(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Sincronizada")
		return nil
	},
}

var inspectionsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an inspection (administrators only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		if err := env.inspections.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Eliminada")
		return nil
	},
}

// reportCmd downloads the PDF of a saved inspection
var reportCmd = &cobra.Command{
	Use:   "report [inspection-id]",
	Short: "Download the REVISIONES PDF of an inspection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		data, name, err := env.inspections.Report(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeDownload(cmd, name, data)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the inspections spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		data, name, err := env.inspections.Export(cmd.Context(), exportAsset)
		if err != nil {
			return err
		}
		return writeDownload(cmd, name, data)
	},
}

func init() {
	inspectionsMineCmd.Flags().IntVar(&mineLimit, "limit", 20, "Inspections to list")
	reportCmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default ASSETTRACK_REPORT_DIR)")
	exportCmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default ASSETTRACK_REPORT_DIR)")
	exportCmd.Flags().StringVar(&exportAsset, "asset", "", "Only this asset id")

	inspectionsCmd.AddCommand(
		inspectionsMineCmd,
		inspectionsPendingCmd,
		inspectionsAssetCmd,
		inspectionsShowCmd,
		inspectionsStatusCmd,
		inspectionsSyncCmd,
		inspectionsDeleteCmd,
	)
	rootCmd.AddCommand(inspectionsCmd, reportCmd, exportCmd)
}

func writeDownload(cmd *cobra.Command, name string, data []byte) error {
	dir := outDir
	if dir == "" {
		dir = env.cfg.ReportDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Guardado en %s (%d bytes)\n", path, len(data))
	return nil
}

func inspectionTable(list []services.Inspection) string {
	rows := make([][]string, 0, len(list))
	for _, i := range list {
		asset := i.AssetID
		if i.Asset != nil {
			asset = i.Asset.Codigo
		}
		sync := "no"
		if i.Sincronizado {
			sync = "sí"
		}
		rows = append(rows, []string{
			deref(i.NumeroInspeccion),
			i.FechaInspeccion.Local().Format("02/01/2006 15:04"),
			asset,
			string(i.Estado),
			sync,
			i.ID,
		})
	}
	return renderTable([]string{"Número", "Fecha", "Equipo", "Estado", "Sincronizada", "ID"}, rows)
}

func inspectionDetail(i *services.Inspection) string {
	asset := i.AssetID
	if i.Asset != nil {
		asset = i.Asset.Codigo
	}
	tech := "-"
	if i.Technician != nil {
		tech = i.Technician.DisplayName()
	}
	rows := [][]string{
		{"Número", deref(i.NumeroInspeccion)},
		{"Fecha", i.FechaInspeccion.Local().Format("02/01/2006 15:04")},
		{"Equipo", asset},
		{"Técnico", tech},
		{"Estado", string(i.Estado)},
		{"Horas motor", fmt.Sprintf("%g h", i.HorasMotor)},
		{"Presión aceite", fmt.Sprintf("%g bar", i.PresionAceite)},
		{"Temperatura bloque", fmt.Sprintf("%g °C", i.TemperaturaBloque)},
		{"Nivel combustible", fmt.Sprintf("%g %%", i.NivelCombustible)},
		{"Tensión", fmt.Sprintf("%g V", i.Tension)},
		{"Frecuencia", fmt.Sprintf("%g Hz", i.Frecuencia)},
	}
	for _, f := range services.CheckFields {
		rows = append(rows, []string{f.Label, string(*i.Checklist.Field(f.Key))})
	}
	if i.Observaciones != nil && *i.Observaciones != "" {
		rows = append(rows, []string{"Observaciones", *i.Observaciones})
	}
	return renderTable(nil, rows)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

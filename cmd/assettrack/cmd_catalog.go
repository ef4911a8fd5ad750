package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"p9e.in/assettrack/pkg/apperr"
)

var (
	sitesRegion string
	sitesNear   string
	sitesLimit  int
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the autonomous communities",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		regions, err := env.assets.Regions(cmd.Context())
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(regions))
		for _, r := range regions {
			rows = append(rows, []string{r.Nombre, orDash(r.Codigo), r.ID})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Comunidad", "Código", "ID"}, rows))
		return nil
	},
}

// sitesCmd lists airports by region or by distance
var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List airports of a region or the nearest to a point",
	Long: `Lists the airports of one community, or with --near the airports closest
to a coordinate.

Example:
  assettrack sites --region <id>
  assettrack sites --near 40.47,-3.56 --limit 5`,
	RunE: runSites,
}

var assetsCmd = &cobra.Command{
	Use:   "assets [site-id]",
	Short: "List the active generators of an airport",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		assets, err := env.assets.AssetsBySite(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(assets))
		for _, a := range assets {
			last := "-"
			if a.UltimaRevision != nil {
				last = a.UltimaRevision.Format("02/01/2006")
			}
			rows = append(rows, []string{a.Codigo, a.Tipo, orDash(a.MotorModelo), last, a.ID})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Código", "Tipo", "Motor", "Última revisión", "ID"}, rows))
		return nil
	},
}

var assetCmd = &cobra.Command{
	Use:   "asset [code]",
	Short: "Show one generator by its code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		a, err := env.assets.AssetByCode(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if a == nil {
			fmt.Fprintf(out, "No hay ningún equipo activo con código %s\n", args[0])
			return nil
		}
		rows := [][]string{
			{"Código", a.Codigo},
			{"Tipo", a.Tipo},
			{"Cliente", orDash(a.Cliente)},
			{"Motor", orDash(a.MotorModelo)},
			{"Nº motor", orDash(a.MotorSerial)},
			{"Potencia", orDash(a.MotorPotencia)},
			{"Instalación", orDash(a.Instalacion)},
			{"Dirección", orDash(a.Direccion)},
		}
		if a.Aeropuerto != nil {
			rows = append(rows, []string{"Aeropuerto", a.Aeropuerto.Nombre})
		}
		fmt.Fprintln(out, renderTable(nil, rows))
		return nil
	},
}

func init() {
	sitesCmd.Flags().StringVar(&sitesRegion, "region", "", "Community id")
	sitesCmd.Flags().StringVar(&sitesNear, "near", "", "Coordinate as lat,lng")
	sitesCmd.Flags().IntVar(&sitesLimit, "limit", 5, "Airports to list with --near")
	sitesCmd.MarkFlagsMutuallyExclusive("region", "near")
	sitesCmd.MarkFlagsOneRequired("region", "near")

	rootCmd.AddCommand(regionsCmd, sitesCmd, assetsCmd, assetCmd)
}

func runSites(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}
	ctx := cmd.Context()

	if sitesNear == "" {
		sites, err := env.assets.SitesByRegion(ctx, sitesRegion)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(sites))
		for _, s := range sites {
			rows = append(rows, []string{s.Codigo, s.Nombre, orDash(s.Ciudad), s.ID})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Código", "Aeropuerto", "Ciudad", "ID"}, rows))
		return nil
	}

	lat, lng, err := parseLatLng(sitesNear)
	if err != nil {
		return err
	}
	sites, err := env.assets.NearbySites(ctx, lat, lng, sitesLimit)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(sites))
	for _, s := range sites {
		km := strconv.FormatFloat(s.DistanciaMetros/1000, 'f', 1, 64) + " km"
		rows = append(rows, []string{s.Codigo, s.Nombre, orDash(s.Ciudad), km, s.ID})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Código", "Aeropuerto", "Ciudad", "Distancia", "ID"}, rows))
	return nil
}

func parseLatLng(s string) (float64, float64, error) {
	const op = "cli.near"
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, apperr.Invalidf(op, "--near espera lat,lng")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, apperr.Invalidf(op, "latitud no válida: %s", parts[0])
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || lng < -180 || lng > 180 {
		return 0, 0, apperr.Invalidf(op, "longitud no válida: %s", parts[1])
	}
	return lat, lng, nil
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b"))).
		Rows(rows...)
	if len(headers) > 0 {
		t = t.Headers(headers...)
	}
	return t.String()
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"p9e.in/assettrack/client/services"
)

const barWidth = 30

type proposalMsg struct {
	proposal *services.Proposal
	err      error
}

// proposalModel is the budget and ROI dashboard.
type proposalModel struct {
	loading  bool
	proposal *services.Proposal
}

func (m *proposalModel) load(a *App) tea.Cmd {
	m.loading = true
	loader, ctx := a.deps.Proposals, a.ctx
	return func() tea.Msg {
		p, err := loader.Current(ctx)
		return proposalMsg{proposal: p, err: err}
	}
}

func (m *proposalModel) update(a *App, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case proposalMsg:
		m.loading = false
		if msg.err != nil {
			return a.setStatus("load proposal", msg.err)
		}
		m.proposal = msg.proposal
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "b":
			return navigate(RouteSelector)
		case "r":
			return m.load(a)
		case "q":
			return tea.Quit
		}
	}
	return nil
}

func (m *proposalModel) view(a *App) string {
	s := a.styles
	if m.loading {
		return s.Muted.Render("Cargando propuesta...")
	}
	p := m.proposal
	if p == nil {
		return s.Muted.Render("No hay propuesta disponible · r: reintentar · esc: volver")
	}

	var b strings.Builder
	b.WriteString(s.Title.Render(p.Nombre))
	b.WriteString("\n")
	if p.Cliente != nil {
		b.WriteString(s.Subtitle.Render(*p.Cliente) + "\n")
	}
	b.WriteString("\n")

	metrics := []string{
		metric(s, "Presupuesto total", services.FormatEuros(p.PresupuestoTotal)),
		metric(s, "ROI", percent(p.RoiPorcentaje)),
		metric(s, "Ahorro anual", euros(p.AhorroAnual)),
		metric(s, "Reducción de errores", percent(p.ReduccionErrores)),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, metrics...))
	b.WriteString("\n\n")

	b.WriteString(s.Bold.Render("Desglose de costes"))
	b.WriteString("\n")
	b.WriteString(costChart(s, services.CostBreakdown(p)))

	if p.Descripcion != nil && *p.Descripcion != "" {
		b.WriteString("\n" + *p.Descripcion + "\n")
	}
	if p.VigenciaHasta != nil {
		b.WriteString(s.Muted.Render("Válida hasta " + p.VigenciaHasta.Format("02/01/2006")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("r: recargar · esc: volver · q: salir"))
	return b.String()
}

func metric(s Styles, label, value string) string {
	return s.Card.Render(s.Muted.Render(label) + "\n" + s.Bold.Render(value))
}

func percent(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%g %%", *v)
}

func euros(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return services.FormatEuros(*v)
}

// costChart draws one horizontal bar per entry, scaled to the largest.
func costChart(s Styles, items []services.CostItem) string {
	top := 0.0
	for _, it := range items {
		if it.Value > top {
			top = it.Value
		}
	}
	var b strings.Builder
	for _, it := range items {
		n := 0
		if top > 0 {
			n = min(max(int(it.Value/top*barWidth), 0), barWidth)
		}
		fmt.Fprintf(&b, "%-14s %s%s %s\n",
			it.Label,
			s.Bar.Render(strings.Repeat("█", n)),
			strings.Repeat(" ", barWidth-n),
			services.FormatEuros(it.Value))
	}
	return b.String()
}

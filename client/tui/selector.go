package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type moduleItem struct {
	label string
	desc  string
	route Route
}

var modules = []moduleItem{
	{"Inspecciones", "Revisión de grupos electrógenos en aeropuertos", RouteInspection},
	{"Propuesta económica", "Presupuesto, ROI y desglose de costes", RouteProposal},
}

// selectorModel is the module chooser shown after login.
type selectorModel struct {
	cursor int
}

func newSelectorModel() selectorModel { return selectorModel{} }

func (m *selectorModel) update(a *App, msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(modules)-1 {
			m.cursor++
		}
	case "enter":
		return navigate(modules[m.cursor].route)
	case "L":
		if err := a.deps.Auth.EndSession(); err != nil {
			a.setStatus("logout", err)
		}
		auth, ctx := a.deps.Auth, a.ctx
		return tea.Batch(
			func() tea.Msg { auth.NotifyLogout(ctx); return nil },
			navigate(RouteLogin),
		)
	case "q", "esc":
		return tea.Quit
	}
	return nil
}

func (m *selectorModel) view(a *App) string {
	s := a.styles
	var b strings.Builder
	b.WriteString(s.Title.Render("Seleccione un módulo"))
	b.WriteString("\n")
	for i, it := range modules {
		line := "  " + it.label
		if i == m.cursor {
			line = s.Selected.Render("▸ " + it.label)
		}
		b.WriteString(line + "\n")
		b.WriteString("    " + s.Muted.Render(it.desc) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("enter: abrir · L: cerrar sesión · q: salir"))
	return b.String()
}

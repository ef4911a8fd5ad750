package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"p9e.in/assettrack/client/state"
)

type loginResultMsg struct{ result state.LoginResult }

type loginModel struct {
	username textinput.Model
	password textinput.Model
	focused  int
	busy     bool
}

func newLoginModel() loginModel {
	u := textinput.New()
	u.Placeholder = "Usuario"
	u.CharLimit = 64

	p := textinput.New()
	p.Placeholder = "Contraseña"
	p.EchoMode = textinput.EchoPassword
	p.EchoCharacter = '•'
	p.CharLimit = 128

	return loginModel{username: u, password: p}
}

func (m *loginModel) focus() tea.Cmd {
	m.focused = 0
	m.password.Blur()
	m.password.SetValue("")
	return m.username.Focus()
}

func (m *loginModel) update(a *App, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.busy = false
		if err := a.deps.Auth.Complete(msg.result); err != nil {
			a.setStatus("login", err)
			m.password.SetValue("")
			return nil
		}
		a.setStatus("Sesión iniciada", nil)
		return navigate(RouteSelector)

	case tea.KeyMsg:
		if m.busy {
			return nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			return m.toggle()
		case "enter":
			if m.focused == 0 {
				return m.toggle()
			}
			return m.submit(a)
		case "esc":
			return tea.Quit
		}
	}

	var cmd tea.Cmd
	if m.focused == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return cmd
}

func (m *loginModel) toggle() tea.Cmd {
	if m.focused == 0 {
		m.focused = 1
		m.username.Blur()
		return m.password.Focus()
	}
	m.focused = 0
	m.password.Blur()
	return m.username.Focus()
}

func (m *loginModel) submit(a *App) tea.Cmd {
	username := strings.TrimSpace(m.username.Value())
	password := m.password.Value()
	m.busy = true
	a.status = ""
	auth, ctx := a.deps.Auth, a.ctx
	return func() tea.Msg {
		return loginResultMsg{result: auth.Request(ctx, username, password)}
	}
}

func (m *loginModel) view(a *App) string {
	s := a.styles
	var b strings.Builder
	b.WriteString(s.Title.Render("Iniciar sesión"))
	b.WriteString("\n")
	b.WriteString(s.Subtitle.Render("Revisiones de grupos electrógenos"))
	b.WriteString("\n\n")
	b.WriteString(m.username.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")
	if m.busy {
		b.WriteString(s.Muted.Render("Comprobando credenciales..."))
	} else {
		b.WriteString(s.Muted.Render("tab: cambiar campo · enter: entrar · esc: salir"))
	}
	return b.String()
}

package tui

import "github.com/charmbracelet/lipgloss"

var (
	Primary     = lipgloss.Color("#0f766e")
	Muted       = lipgloss.Color("#64748b")
	Success     = lipgloss.Color("#16a34a")
	Warning     = lipgloss.Color("#d97706")
	Destructive = lipgloss.Color("#dc2626")
	Info        = lipgloss.Color("#2563eb")
)

// Styles are the shared lipgloss styles of every screen.
type Styles struct {
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Selected lipgloss.Style
	Card     lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	Bar      lipgloss.Style
}

func NewStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 2),

		Title: lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true),

		Muted: lipgloss.NewStyle().
			Foreground(Muted),

		Bold: lipgloss.NewStyle().
			Bold(true),

		Selected: lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true),

		Card: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Bar: lipgloss.NewStyle().
			Foreground(Primary),
	}
}

// Package tui is the Asset-Track terminal front-end built on bubbletea.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"p9e.in/assettrack/client/services"
	"p9e.in/assettrack/client/state"
	"p9e.in/assettrack/pkg/apperr"
)

// ProbeInterval is how often the connectivity indicator is refreshed.
const ProbeInterval = 10 * time.Second

type ProposalLoader interface {
	Current(ctx context.Context) (*services.Proposal, error)
}

type AssetLoader interface {
	Regions(ctx context.Context) ([]services.Region, error)
	SitesByRegion(ctx context.Context, regionID string) ([]services.Site, error)
	AssetsBySite(ctx context.Context, siteID string) ([]services.Asset, error)
}

type ReportFetcher interface {
	Report(ctx context.Context, id string) ([]byte, string, error)
}

type Deps struct {
	Auth        *state.AuthStore
	Inspections *state.InspectionStore
	Assets      AssetLoader
	Proposals   ProposalLoader
	Reports     ReportFetcher
	// Probe checks that the backend answers.
	Probe     func(ctx context.Context) error
	ReportDir string
	Log       *zap.Logger
}

type (
	navigateMsg       struct{ route Route }
	healthMsg         struct{ err error }
	probeTickMsg      struct{}
	sessionExpiredMsg struct{ err error }
	statusMsg         struct {
		text string
		err  error
	}
)

func navigate(r Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: r} }
}

// App is the root model. It owns routing, the connectivity indicator and
// the status line; screens do the rest.
type App struct {
	ctx    context.Context
	deps   Deps
	styles Styles

	route  Route
	width  int
	height int
	online bool

	status    string
	statusErr bool

	login      loginModel
	selector   selectorModel
	proposal   proposalModel
	inspection inspectionModel
}

// New builds the app. The auth store must already have run CheckAuth.
func New(ctx context.Context, deps Deps) *App {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	styles := NewStyles()
	return &App{
		ctx:        ctx,
		deps:       deps,
		styles:     styles,
		route:      Resolve(RouteSelector, deps.Auth.IsAuthenticated()),
		online:     true,
		login:      newLoginModel(),
		selector:   newSelectorModel(),
		proposal:   proposalModel{},
		inspection: newInspectionModel(),
	}
}

func (a *App) Route() Route { return a.route }

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.probe(), a.enter(a.route))
}

func (a *App) probe() tea.Cmd {
	if a.deps.Probe == nil {
		return nil
	}
	probe, ctx := a.deps.Probe, a.ctx
	return func() tea.Msg {
		return healthMsg{err: probe(ctx)}
	}
}

// enter switches to route and returns the command that loads its data.
func (a *App) enter(route Route) tea.Cmd {
	a.route = Resolve(route, a.deps.Auth.IsAuthenticated())
	switch a.route {
	case RouteLogin:
		return a.login.focus()
	case RouteProposal:
		return a.proposal.load(a)
	case RouteInspection:
		return a.inspection.enter(a)
	}
	return nil
}

// setStatus reports err, or text when err is nil. A lost or expired
// session outside the login screen yields a command that returns there.
func (a *App) setStatus(text string, err error) tea.Cmd {
	if err != nil {
		a.deps.Log.Warn(text, zap.Error(err))
		a.status = apperr.UserMessage(err)
		a.statusErr = true
		if errors.Is(err, apperr.ErrNoSession) && a.route != RouteLogin {
			return func() tea.Msg { return sessionExpiredMsg{err: err} }
		}
		return nil
	}
	a.status = text
	a.statusErr = false
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case healthMsg:
		a.online = msg.err == nil
		a.deps.Inspections.SetOnline(a.online)
		return a, tea.Tick(ProbeInterval, func(time.Time) tea.Msg { return probeTickMsg{} })

	case probeTickMsg:
		return a, a.probe()

	case navigateMsg:
		a.status = ""
		return a, a.enter(msg.route)

	case statusMsg:
		return a, a.setStatus(msg.text, msg.err)

	case sessionExpiredMsg:
		if err := a.deps.Auth.EndSession(); err != nil {
			a.deps.Log.Warn("end session", zap.Error(err))
		}
		cmd := a.enter(RouteLogin)
		a.status = apperr.UserMessage(msg.err)
		a.statusErr = true
		return a, cmd
	}

	var cmd tea.Cmd
	switch a.route {
	case RouteLogin:
		cmd = a.login.update(a, msg)
	case RouteSelector:
		cmd = a.selector.update(a, msg)
	case RouteProposal:
		cmd = a.proposal.update(a, msg)
	case RouteInspection:
		cmd = a.inspection.update(a, msg)
	}
	return a, cmd
}

func (a *App) View() string {
	var body string
	switch a.route {
	case RouteLogin:
		body = a.login.view(a)
	case RouteSelector:
		body = a.selector.view(a)
	case RouteProposal:
		body = a.proposal.view(a)
	case RouteInspection:
		body = a.inspection.view(a)
	}

	var b strings.Builder
	b.WriteString(a.header())
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	if a.status != "" {
		if a.statusErr {
			b.WriteString(a.styles.Error.Render(a.status))
		} else {
			b.WriteString(a.styles.Success.Render(a.status))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) header() string {
	title := "Asset-Track"
	if u := a.deps.Auth.User; u != nil {
		title += " · " + u.DisplayName()
	}
	indicator := a.styles.Success.Render("● En línea")
	if !a.online {
		indicator = a.styles.Warning.Render("● Sin conexión")
	}
	return a.styles.Header.Render(title) + "  " + indicator
}

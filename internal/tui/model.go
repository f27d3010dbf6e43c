// Package tui implements the interactive shell, the terminal counterpart of
// the browser console's guarded layouts. The shell's phases mirror the route
// guard's state machine: nothing gated is rendered until the current-user
// read has resolved.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/realestatead/adctl/internal/api"
	"github.com/realestatead/adctl/internal/auth"
	"github.com/realestatead/adctl/internal/authz"
	"github.com/realestatead/adctl/internal/console"
	"github.com/realestatead/adctl/internal/guard"
	"github.com/realestatead/adctl/internal/query"
)

// Phase is the shell's top-level state, one per guard outcome plus the login
// form shown for the unauthenticated case.
type Phase int

const (
	// PhaseResolving gates all rendering behind the current-user read.
	PhaseResolving Phase = iota
	// PhaseLogin shows the login form for the current area.
	PhaseLogin
	// PhaseAuthorized renders the sidebar and the active screen.
	PhaseAuthorized
)

// Model is the shell's bubbletea model.
type Model struct {
	area    authz.Area
	guard   *guard.Guard
	gateway *auth.Gateway
	console *console.Console
	cache   *query.Cache

	phase    Phase
	decision guard.Decision
	nav      []authz.NavEntry
	active   int

	spinner       spinner.Model
	tbl           table.Model
	screenLoading bool
	screenEmpty   string

	loginForm     *huh.Form
	loginEmail    string
	loginPassword string

	lastError string
	notice    string

	width    int
	height   int
	quitting bool

	styles Styles
}

// NewModel creates the shell for the given starting area.
func NewModel(area authz.Area, gateway *auth.Gateway, con *console.Console, cache *query.Cache) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		area:    area,
		guard:   guard.New(area, gateway, cache),
		gateway: gateway,
		console: con,
		cache:   cache,
		phase:   PhaseResolving,
		spinner: sp,
		tbl:     table.New(),
		styles:  DefaultStyles(),
	}
}

// Messages.

type decisionMsg struct {
	decision guard.Decision
}

type screenDataMsg struct {
	route   string
	columns []table.Column
	rows    []table.Row
	empty   string
}

type screenErrMsg struct {
	err error
}

type loginDoneMsg struct {
	err error
}

// Init starts with the guard evaluation, matching the layouts' rule that
// children are never rendered before the current-user query resolves.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.evaluateCmd())
}

func (m Model) evaluateCmd() tea.Cmd {
	g := m.guard
	return func() tea.Msg {
		return decisionMsg{decision: g.Evaluate(context.Background(), m.area.DashboardRoute())}
	}
}

func (m *Model) loadScreenCmd() tea.Cmd {
	if len(m.nav) == 0 {
		return nil
	}
	route := m.nav[m.active].Route
	con := m.console
	m.screenLoading = true
	m.lastError = ""
	return func() tea.Msg {
		return fetchScreen(context.Background(), con, route)
	}
}

func (m *Model) startLogin() {
	m.phase = PhaseLogin
	m.loginEmail = ""
	m.loginPassword = ""
	m.loginForm = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key("email").
			Title("Email").
			Placeholder("you@example.com").
			Value(&m.loginEmail),
		huh.NewInput().
			Key("password").
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&m.loginPassword),
	))
}

func (m *Model) submitLoginCmd() tea.Cmd {
	creds := auth.Credentials{Email: m.loginEmail, Password: m.loginPassword}
	asAdmin := m.area == authz.AreaSystem
	gateway := m.gateway
	return func() tea.Msg {
		_, err := gateway.Login(context.Background(), creds, asAdmin)
		return loginDoneMsg{err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case decisionMsg:
		return m.applyDecision(msg.decision)

	case screenDataMsg:
		m.screenLoading = false
		if m.phase != PhaseAuthorized || len(m.nav) == 0 || m.nav[m.active].Route != msg.route {
			// Stale result for a screen no longer on display.
			return m, nil
		}
		m.screenEmpty = msg.empty
		m.tbl = table.New(
			table.WithColumns(msg.columns),
			table.WithRows(msg.rows),
			table.WithFocused(true),
			table.WithHeight(max(3, m.height-10)),
		)
		return m, nil

	case screenErrMsg:
		m.screenLoading = false
		if api.IsUnauthenticated(msg.err) {
			// The wrapper's forced logout already cleared the session
			// and the cache; drop to login.
			m.startLogin()
			m.lastError = errorMessage(msg.err)
			return m, nil
		}
		m.lastError = errorMessage(msg.err)
		return m, nil

	case loginDoneMsg:
		if msg.err != nil {
			m.startLogin()
			m.lastError = errorMessage(msg.err)
			return m, nil
		}
		m.lastError = ""
		m.phase = PhaseResolving
		return m, m.evaluateCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == PhaseLogin && m.loginForm != nil {
		return m.updateLoginForm(msg)
	}
	return m, nil
}

func (m Model) applyDecision(d guard.Decision) (tea.Model, tea.Cmd) {
	m.decision = d
	switch d.State {
	case guard.StateUnauthenticated:
		m.startLogin()
		return m, nil

	case guard.StateWrongRole:
		// Replace-style redirect into the user's home area.
		m.area = authz.HomeArea(d.User.Role)
		m.guard = guard.New(m.area, m.gateway, m.cache)
		m.notice = fmt.Sprintf("Redirected to your %s dashboard.", m.area)
		m.phase = PhaseResolving
		return m, m.evaluateCmd()

	case guard.StateAuthorized:
		m.phase = PhaseAuthorized
		m.nav = m.guard.Navigation(d)
		if m.active >= len(m.nav) {
			m.active = 0
		}
		cmd := m.loadScreenCmd()
		return m, cmd

	default:
		return m, nil
	}
}

func (m Model) updateLoginForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.loginForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.loginForm = f
	}
	if m.loginForm.State == huh.StateCompleted {
		m.phase = PhaseResolving
		return m, tea.Batch(cmd, m.submitLoginCmd())
	}
	if m.loginForm.State == huh.StateAborted {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.phase == PhaseLogin && m.loginForm != nil {
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m.updateLoginForm(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "tab", "right":
		if m.phase == PhaseAuthorized && len(m.nav) > 0 {
			m.active = (m.active + 1) % len(m.nav)
			cmd := m.loadScreenCmd()
			return m, cmd
		}

	case "shift+tab", "left":
		if m.phase == PhaseAuthorized && len(m.nav) > 0 {
			m.active = (m.active - 1 + len(m.nav)) % len(m.nav)
			cmd := m.loadScreenCmd()
			return m, cmd
		}

	case "r":
		if m.phase == PhaseAuthorized && len(m.nav) > 0 {
			m.cache.InvalidatePrefix(routeCacheKey(m.nav[m.active].Route))
			cmd := m.loadScreenCmd()
			return m, cmd
		}

	case "L":
		if m.phase == PhaseAuthorized {
			gateway := m.gateway
			m.phase = PhaseResolving
			m.notice = ""
			return m, func() tea.Msg {
				_ = gateway.Logout(context.Background())
				return decisionMsg{decision: guard.Decision{
					State:    guard.StateUnauthenticated,
					Redirect: m.area.LoginRoute(),
				}}
			}
		}

	default:
		if m.phase == PhaseAuthorized {
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// errorMessage extracts the user-facing message from a normalized API error,
// falling back to the raw error text.
func errorMessage(err error) string {
	if apiErr, ok := api.AsError(err); ok {
		return apiErr.Message
	}
	return err.Error()
}

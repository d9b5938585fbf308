// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/authshell/internal/auth"
	"github.com/jeranaias/authshell/internal/i18n"
	"github.com/jeranaias/authshell/internal/layout"
	"github.com/jeranaias/authshell/internal/router"
	"github.com/jeranaias/authshell/internal/ui/components"
	"github.com/jeranaias/authshell/internal/ui/styles"
)

// Options configures the shell model.
type Options struct {
	// Store is the auth state store. Required.
	Store *auth.Store
	// Layout owns the sidebar flag. Required.
	Layout *layout.Sidebar
	// Localizer is shared with the store so both follow locale changes.
	Localizer *i18n.Active
	Theme     *styles.Theme
	Policy    router.Policy
	// CellWidthPx converts terminal columns to layout pixels.
	CellWidthPx int
	// StartPath is the first route shown once the session is known.
	StartPath string
	Logger    zerolog.Logger
	// Context bounds every store call. Defaults to context.Background().
	Context context.Context
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx       context.Context
	store     *auth.Store
	layout    *layout.Sidebar
	tr        *i18n.Active
	theme     *styles.Theme
	policy    router.Policy
	cellWidth int
	logger    zerolog.Logger

	history *router.History
	route   router.Route

	width  int
	height int
	sized  bool

	keys     KeyMap
	help     help.Model
	header   *components.Header
	sidebar  *components.Sidebar
	forms    map[components.FormKind]*components.Form
	page     *components.Page
	notFound *components.NotFound
	toasts   *components.ToastManager
	loading  components.Spinner

	toastTicking bool
}

// New creates the shell model.
func New(opts Options) *Model {
	if opts.Localizer == nil {
		opts.Localizer = i18n.NewActive(i18n.MustNew(""))
	}
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme(styles.ModeAuto)
	}
	if opts.CellWidthPx <= 0 {
		opts.CellWidthPx = layout.DefaultCellWidthPx
	}
	if opts.StartPath == "" {
		opts.StartPath = router.PathHome
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	tr := opts.Localizer
	theme := opts.Theme
	m := &Model{
		ctx:       opts.Context,
		store:     opts.Store,
		layout:    opts.Layout,
		tr:        tr,
		theme:     theme,
		policy:    opts.Policy,
		cellWidth: opts.CellWidthPx,
		logger:    opts.Logger,
		history:   router.NewHistory(router.Normalize(opts.StartPath)),
		keys:      NewKeyMap(tr),
		help:      help.New(),
		header:    components.NewHeader(theme),
		sidebar:   components.NewSidebar(theme, tr),
		forms: map[components.FormKind]*components.Form{
			components.FormSignIn:         components.NewForm(components.FormSignIn, theme, tr),
			components.FormSignUp:         components.NewForm(components.FormSignUp, theme, tr),
			components.FormForgotPassword: components.NewForm(components.FormForgotPassword, theme, tr),
		},
		page:     components.NewPage(theme),
		notFound: components.NewNotFound(theme, tr),
		toasts:   components.NewToastManager(),
		loading:  components.NewSpinner(theme, tr.T("loading.text")),
	}
	m.route = router.Match(m.history.Current())
	m.sidebar.SetActive(m.route.Path)
	m.sidebar.SetWidth(layout.PxToColumns(layout.SidebarWidthPx, m.cellWidth))
	return m
}

// Init starts the session check and the loading animation.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.checkAuthCmd(), m.loading.Start())
}

// Route returns the current route.
func (m *Model) Route() router.Route { return m.route }

// Toasts returns the toast manager.
func (m *Model) Toasts() *components.ToastManager { return m.toasts }

// Form returns the form of kind.
func (m *Model) Form(kind components.FormKind) *components.Form { return m.forms[kind] }

// SidebarOpen reports whether the sidebar is shown.
func (m *Model) SidebarOpen() bool { return m.layout.Open() }

// =============================================================================
// STORE COMMANDS
// =============================================================================

func (m *Model) checkAuthCmd() tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		return SessionCheckedMsg{Authenticated: store.CheckAuth(ctx)}
	}
}

func (m *Model) loginCmd(email, password string) tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		return LoginDoneMsg{Email: email, Result: store.Login(ctx, email, password)}
	}
}

func (m *Model) registerCmd(email, password string) tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		return RegisterDoneMsg{Email: email, Result: store.Register(ctx, email, password)}
	}
}

func (m *Model) logoutCmd() tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		store.Logout(ctx)
		return LogoutDoneMsg{}
	}
}

// =============================================================================
// NAVIGATION
// =============================================================================

// navigate pushes path onto the history and shows its route.
func (m *Model) navigate(path string) tea.Cmd {
	m.history.Push(router.Normalize(path))
	return m.show(m.history.Current())
}

// back returns to the previous route, if any.
func (m *Model) back() tea.Cmd {
	path, ok := m.history.Back()
	if !ok {
		return nil
	}
	return m.show(path)
}

// show renders path as the current route and applies the gate.
func (m *Model) show(path string) tea.Cmd {
	prev := m.route
	m.route = router.Match(path)
	if prev.Requested != m.route.Requested {
		m.logger.Debug().Str("from", prev.Requested).Str("to", m.route.Requested).Msg("NAVIGATE")
		m.layout.Navigated()
	}
	m.sidebar.SetActive(m.route.Path)
	m.help.ShowAll = false

	if cmd, redirected := m.applyGate(); redirected {
		return cmd
	}
	if form := m.currentForm(); form != nil {
		if prev.Path != m.route.Path {
			form.Reset()
		}
		return form.FocusCmd()
	}
	return nil
}

// applyGate follows the gate decision for the current route. Redirects
// replace the history entry.
func (m *Model) applyGate() (tea.Cmd, bool) {
	d := router.Gate(m.store.Snapshot(), m.route, m.policy)
	if d.Outcome != router.Redirect {
		return nil, false
	}
	m.logger.Info().Str("from", m.route.Requested).Str("to", d.Target).Msg("ROUTE_REDIRECT")
	m.history.Replace(d.Target)
	return m.show(d.Target), true
}

// currentForm returns the form of the current route, or nil.
func (m *Model) currentForm() *components.Form {
	switch m.route.Path {
	case router.PathSignIn:
		return m.forms[components.FormSignIn]
	case router.PathSignUp:
		return m.forms[components.FormSignUp]
	case router.PathForgotPassword:
		return m.forms[components.FormForgotPassword]
	default:
		return nil
	}
}

// =============================================================================
// TOASTS
// =============================================================================

// toast shows a notification and starts the expiry ticker if it is idle.
func (m *Model) toast(kind components.ToastKind, message string) tea.Cmd {
	m.toasts.Add(kind, message)
	if m.toastTicking {
		return nil
	}
	m.toastTicking = true
	return components.ToastTickCmd()
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/authshell/internal/config"
	"github.com/jeranaias/authshell/internal/forms"
	"github.com/jeranaias/authshell/internal/i18n"
	"github.com/jeranaias/authshell/internal/layout"
	"github.com/jeranaias/authshell/internal/router"
	"github.com/jeranaias/authshell/internal/ui/components"
	"github.com/jeranaias/authshell/internal/ui/styles"
)

// Update handles all messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case SessionCheckedMsg:
		m.loading.Stop()
		m.logger.Debug().Bool("authenticated", msg.Authenticated).Msg("SESSION_CHECKED")
		cmd, _ := m.applyGate()
		if form := m.currentForm(); form != nil && cmd == nil {
			cmd = form.FocusCmd()
		}
		return m, cmd

	case LoginDoneMsg:
		return m, m.loginDone(msg)

	case RegisterDoneMsg:
		return m, m.registerDone(msg)

	case LogoutDoneMsg:
		return m, tea.Batch(
			m.toast(components.ToastInfo, m.tr.T("nav.signed_out")),
			m.navigate(router.PathSignIn),
		)

	case components.NavigateMsg:
		return m, m.navigate(msg.Path)

	case components.LogoutMsg:
		return m, m.logoutCmd()

	case components.SubmitMsg:
		return m, m.submit(msg)

	case components.ToastTickMsg:
		if m.toasts.Expire(msg.Time) {
			return m, components.ToastTickCmd()
		}
		m.toastTicking = false
		return m, nil

	case ConfigReloadedMsg:
		return m, m.applyConfig(msg.Config)
	}

	// Animation ticks and cursor blinks.
	var cmds []tea.Cmd
	if m.loading.IsActive() {
		var cmd tea.Cmd
		m.loading, cmd = m.loading.Update(msg)
		cmds = append(cmds, cmd)
	}
	if form := m.currentForm(); form != nil {
		cmds = append(cmds, form.Update(msg))
	}
	return m, tea.Batch(cmds...)
}

// resize converts the terminal width to layout pixels and lets the layout
// re-derive the sidebar state.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	px := layout.ColumnsToPx(width, m.cellWidth)
	if !m.sized {
		m.sized = true
		m.layout.Initial(px)
	} else {
		m.layout.Resize(px)
	}

	docked := layout.PxToColumns(layout.SidebarWidthPx, m.cellWidth)
	if docked > width/2 {
		docked = width / 2
	}
	m.sidebar.SetWidth(docked)
	m.header.SetWidth(width)
	m.page.SetWidth(m.contentWidth() - m.theme.Content.GetHorizontalFrameSize())
}

// =============================================================================
// KEYS
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}
	if m.store.Snapshot().Loading {
		return nil
	}

	switch m.route.Kind {
	case router.KindAuth:
		if key.Matches(msg, m.keys.Back) {
			return m.back()
		}
		return m.currentForm().Update(msg)

	case router.KindNotFound:
		switch {
		case key.Matches(msg, m.keys.Select):
			return m.navigate(m.notFound.Target())
		case key.Matches(msg, m.keys.Back):
			return m.back()
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.ToggleSidebar):
		m.layout.Toggle()
		return nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Back):
		if m.layout.Mobile() && m.layout.Open() {
			m.layout.Toggle()
			return nil
		}
		return m.back()
	}

	if !m.layout.Open() {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		m.sidebar.CursorUp()
	case key.Matches(msg, m.keys.Down):
		m.sidebar.CursorDown()
	case key.Matches(msg, m.keys.Select):
		return m.sidebar.Select()
	}
	return nil
}

// =============================================================================
// FORMS
// =============================================================================

// submit validates a form and starts the matching store call.
func (m *Model) submit(msg components.SubmitMsg) tea.Cmd {
	form := m.forms[msg.Form]
	v := msg.Values

	var check forms.FieldErrors
	switch msg.Form {
	case components.FormSignIn:
		check = forms.Check(forms.SignIn{Email: v[forms.FieldEmail], Password: v[forms.FieldPassword]})
	case components.FormSignUp:
		check = forms.Check(forms.SignUp{
			Name:            v[forms.FieldName],
			Email:           v[forms.FieldEmail],
			Password:        v[forms.FieldPassword],
			ConfirmPassword: v[forms.FieldConfirmPassword],
		})
	case components.FormForgotPassword:
		check = forms.Check(forms.ForgotPassword{Email: v[forms.FieldEmail]})
	}
	if check != nil {
		form.SetErrors(check.Localize(m.tr))
		return form.FocusCmd()
	}
	form.SetErrors(nil)

	email := v[forms.FieldEmail]
	switch msg.Form {
	case components.FormSignIn:
		return tea.Batch(form.SetBusy(true), m.loginCmd(email, v[forms.FieldPassword]))
	case components.FormSignUp:
		return tea.Batch(form.SetBusy(true), m.registerCmd(email, v[forms.FieldPassword]))
	default:
		// No backend endpoint exists for password resets.
		m.logger.Info().Msg("PASSWORD_RESET_REQUESTED")
		form.Reset()
		return tea.Batch(
			m.toast(components.ToastInfo, m.tr.Tf("forgot.sent", email)),
			m.navigate(router.PathSignIn),
		)
	}
}

func (m *Model) loginDone(msg LoginDoneMsg) tea.Cmd {
	form := m.forms[components.FormSignIn]
	form.SetBusy(false)
	if !msg.Result.Success {
		m.logger.Info().Str("reason", msg.Result.Error).Msg("SIGN_IN_FAILED")
		return m.toast(components.ToastError, msg.Result.Error)
	}

	form.Reset()
	email := msg.Email
	if s := m.store.Snapshot(); s.User != nil {
		email = s.User.Email
	}
	return tea.Batch(
		m.toast(components.ToastSuccess, m.tr.Tf("signin.welcome", email)),
		m.navigate(router.PathHome),
	)
}

func (m *Model) registerDone(msg RegisterDoneMsg) tea.Cmd {
	form := m.forms[components.FormSignUp]
	form.SetBusy(false)
	if !msg.Result.Success {
		m.logger.Info().Str("reason", msg.Result.Error).Msg("SIGN_UP_FAILED")
		return m.toast(components.ToastError, msg.Result.Error)
	}

	form.Reset()
	signIn := m.forms[components.FormSignIn]
	cmd := m.navigate(router.PathSignIn)
	signIn.SetValue(forms.FieldEmail, msg.Email)
	return tea.Batch(m.toast(components.ToastSuccess, m.tr.T("signup.success")), cmd)
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

// applyConfig re-applies the settings that can change at runtime: theme,
// locale, route guarding and cell width.
func (m *Model) applyConfig(cfg *config.Config) tea.Cmd {
	if cfg == nil {
		return nil
	}

	theme := styles.NewTheme(cfg.UI.Theme)
	m.theme = theme
	m.header.SetTheme(theme)
	m.sidebar.SetTheme(theme)
	m.page.SetTheme(theme)
	m.notFound.SetTheme(theme)
	m.loading.SetTheme(theme)
	for _, form := range m.forms {
		form.SetTheme(theme)
	}

	if l, err := i18n.New(i18n.DetectLocale(cfg.UI.Locale)); err != nil {
		m.logger.Warn().Err(err).Msg("LOCALE_RELOAD_FAILED")
	} else {
		m.tr.Set(l)
		m.keys = NewKeyMap(m.tr)
		m.loading.SetMessage(m.tr.T("loading.text"))
		for _, form := range m.forms {
			form.SetTranslator(m.tr)
		}
	}

	if cfg.UI.CellWidthPx > 0 {
		m.cellWidth = cfg.UI.CellWidthPx
	}
	m.policy = router.Policy{EnforceAuth: cfg.Router.EnforceAuth}
	if m.sized {
		m.resize(m.width, m.height)
	}

	m.logger.Info().
		Str("theme", theme.Mode).
		Str("locale", m.tr.Current().Language().String()).
		Bool("enforce_auth", m.policy.EnforceAuth).
		Msg("CONFIG_APPLIED")

	cmd, _ := m.applyGate()
	return tea.Batch(m.toast(components.ToastInfo, m.tr.T("app.config_reloaded")), cmd)
}

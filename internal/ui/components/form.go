// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/authshell/internal/forms"
	"github.com/jeranaias/authshell/internal/router"
	"github.com/jeranaias/authshell/internal/ui/styles"
)

// =============================================================================
// FORM SPECS
// =============================================================================

// FormKind identifies one of the auth screens.
type FormKind int

const (
	FormSignIn FormKind = iota
	FormSignUp
	FormForgotPassword
)

// String returns the form name.
func (k FormKind) String() string {
	switch k {
	case FormSignIn:
		return "sign-in"
	case FormSignUp:
		return "sign-up"
	case FormForgotPassword:
		return "forgot-password"
	default:
		return "unknown"
	}
}

// FieldSpec describes one text field.
type FieldSpec struct {
	Name           string
	LabelKey       string
	PlaceholderKey string
	Secret         bool
}

// LinkSpec describes a link under the submit button. PromptKey is optional
// text shown before the link.
type LinkSpec struct {
	PromptKey string
	LabelKey  string
	Path      string
}

// FormSpec describes a whole form.
type FormSpec struct {
	Kind        FormKind
	TitleKey    string
	SubtitleKey string
	SubmitKey   string
	BusyKey     string
	Fields      []FieldSpec
	Links       []LinkSpec
}

// SpecFor returns the spec of kind.
func SpecFor(kind FormKind) FormSpec {
	switch kind {
	case FormSignUp:
		return FormSpec{
			Kind:      FormSignUp,
			TitleKey:  "signup.title",
			SubmitKey: "signup.submit",
			BusyKey:   "signup.submitting",
			Fields: []FieldSpec{
				{Name: forms.FieldName, LabelKey: "signup.name_label", PlaceholderKey: "signup.name_placeholder"},
				{Name: forms.FieldEmail, LabelKey: "signup.email_label", PlaceholderKey: "signup.email_placeholder"},
				{Name: forms.FieldPassword, LabelKey: "signup.password_label", PlaceholderKey: "signup.password_placeholder", Secret: true},
				{Name: forms.FieldConfirmPassword, LabelKey: "signup.confirm_label", PlaceholderKey: "signup.confirm_placeholder", Secret: true},
			},
			Links: []LinkSpec{
				{PromptKey: "signup.have_account", LabelKey: "signup.sign_in_link", Path: router.PathSignIn},
			},
		}
	case FormForgotPassword:
		return FormSpec{
			Kind:        FormForgotPassword,
			TitleKey:    "forgot.title",
			SubtitleKey: "forgot.subtitle",
			SubmitKey:   "forgot.submit",
			Fields: []FieldSpec{
				{Name: forms.FieldEmail, LabelKey: "forgot.email_label", PlaceholderKey: "forgot.email_placeholder"},
			},
			Links: []LinkSpec{
				{LabelKey: "forgot.back_link", Path: router.PathSignIn},
			},
		}
	default:
		return FormSpec{
			Kind:      FormSignIn,
			TitleKey:  "signin.title",
			SubmitKey: "signin.submit",
			BusyKey:   "signin.submitting",
			Fields: []FieldSpec{
				{Name: forms.FieldEmail, LabelKey: "signin.email_label", PlaceholderKey: "signin.email_placeholder"},
				{Name: forms.FieldPassword, LabelKey: "signin.password_label", PlaceholderKey: "signin.password_placeholder", Secret: true},
			},
			Links: []LinkSpec{
				{LabelKey: "signin.forgot_link", Path: router.PathForgotPassword},
				{PromptKey: "signin.no_account", LabelKey: "signin.sign_up_link", Path: router.PathSignUp},
			},
		}
	}
}

// =============================================================================
// KEY BINDINGS
// =============================================================================

// FormKeyMap holds the form key bindings.
type FormKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
}

// DefaultFormKeyMap returns the default form key bindings. Help text is
// filled in by the shell in the active locale.
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up")),
		Submit: key.NewBinding(key.WithKeys("enter")),
	}
}

// =============================================================================
// FORM MODEL
// =============================================================================

const (
	formWidth      = 44
	echoCharacter  = '•'
	inputCharLimit = 254
)

// Form is the model of one auth screen. Focus moves over the fields, then the
// submit button, then the links.
type Form struct {
	spec    FormSpec
	theme   *styles.Theme
	tr      Translator
	keys    FormKeyMap
	inputs  []textinput.Model
	errors  map[string]string
	focus   int
	busy    bool
	spinner Spinner
}

// NewForm creates the form of kind with the first field focused.
func NewForm(kind FormKind, theme *styles.Theme, tr Translator) *Form {
	spec := SpecFor(kind)
	f := &Form{
		spec:    spec,
		theme:   theme,
		tr:      tr,
		keys:    DefaultFormKeyMap(),
		inputs:  make([]textinput.Model, len(spec.Fields)),
		spinner: NewSpinner(theme, ""),
	}
	for i, field := range spec.Fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = inputCharLimit
		in.Width = formWidth - 2
		if field.Secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = echoCharacter
		}
		f.inputs[i] = in
	}
	f.applyText()
	f.setFocus(0)
	return f
}

// Kind returns the form kind.
func (f *Form) Kind() FormKind { return f.spec.Kind }

// Spec returns the form spec.
func (f *Form) Spec() FormSpec { return f.spec }

// SetTheme restyles the form.
func (f *Form) SetTheme(theme *styles.Theme) {
	f.theme = theme
	f.spinner.SetTheme(theme)
}

// SetTranslator changes the form language.
func (f *Form) SetTranslator(tr Translator) {
	f.tr = tr
	f.applyText()
}

func (f *Form) applyText() {
	for i, field := range f.spec.Fields {
		f.inputs[i].Placeholder = f.tr.T(field.PlaceholderKey)
	}
}

// Values returns the field values keyed by field name.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.inputs))
	for i, field := range f.spec.Fields {
		out[field.Name] = f.inputs[i].Value()
	}
	return out
}

// Value returns the value of field name.
func (f *Form) Value(name string) string {
	if i := f.index(name); i >= 0 {
		return f.inputs[i].Value()
	}
	return ""
}

// SetValue replaces the value of field name.
func (f *Form) SetValue(name, value string) {
	if i := f.index(name); i >= 0 {
		f.inputs[i].SetValue(value)
	}
}

func (f *Form) index(name string) int {
	for i, field := range f.spec.Fields {
		if field.Name == name {
			return i
		}
	}
	return -1
}

// SetErrors shows display text under the named fields and focuses the first
// field in error. A nil map clears every error.
func (f *Form) SetErrors(errs map[string]string) {
	f.errors = make(map[string]string, len(errs))
	for k, v := range errs {
		f.errors[k] = v
	}
	for i, field := range f.spec.Fields {
		if _, ok := errs[field.Name]; ok {
			f.setFocus(i)
			return
		}
	}
}

// Error returns the error shown under field name.
func (f *Form) Error(name string) string {
	return f.errors[name]
}

// SetBusy marks the form as submitting. Input is ignored while busy.
func (f *Form) SetBusy(busy bool) tea.Cmd {
	f.busy = busy
	if busy {
		return f.spinner.Start()
	}
	f.spinner.Stop()
	return nil
}

// Busy reports whether the form is submitting.
func (f *Form) Busy() bool { return f.busy }

// Reset clears values and errors and focuses the first field.
func (f *Form) Reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.errors = nil
	f.busy = false
	f.spinner.Stop()
	f.setFocus(0)
}

// Focused returns the focus index. Fields come first, then the submit button
// at len(fields), then the links.
func (f *Form) Focused() int { return f.focus }

func (f *Form) buttonIndex() int { return len(f.inputs) }

func (f *Form) stops() int { return len(f.inputs) + 1 + len(f.spec.Links) }

// FocusCmd returns the cursor blink command of the focused field.
func (f *Form) FocusCmd() tea.Cmd {
	if f.focus < len(f.inputs) {
		return textinput.Blink
	}
	return nil
}

func (f *Form) setFocus(i int) {
	n := f.stops()
	f.focus = ((i % n) + n) % n
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

// Submit emits the form values as a SubmitMsg.
func (f *Form) Submit() tea.Cmd {
	msg := SubmitMsg{Form: f.spec.Kind, Values: f.Values()}
	return func() tea.Msg { return msg }
}

// Update handles key presses and cursor blinks.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if f.busy {
		var cmd tea.Cmd
		f.spinner, cmd = f.spinner.Update(msg)
		return cmd
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, f.keys.Next):
			f.setFocus(f.focus + 1)
			return f.FocusCmd()
		case key.Matches(k, f.keys.Prev):
			f.setFocus(f.focus - 1)
			return f.FocusCmd()
		case key.Matches(k, f.keys.Submit):
			if link := f.focus - f.buttonIndex() - 1; link >= 0 {
				return Navigate(f.spec.Links[link].Path)
			}
			return f.Submit()
		}
	}

	if f.focus >= len(f.inputs) {
		return nil
	}
	before := f.inputs[f.focus].Value()
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if f.inputs[f.focus].Value() != before {
		delete(f.errors, f.spec.Fields[f.focus].Name)
	}
	return cmd
}

// View renders the form box.
func (f *Form) View() string {
	t := f.theme
	inner := formWidth - t.FormBox.GetHorizontalFrameSize()

	var b strings.Builder
	b.WriteString(t.FormTitle.Width(inner).Render(f.tr.T(f.spec.TitleKey)))
	b.WriteString("\n")
	if f.spec.SubtitleKey != "" {
		b.WriteString(t.FormSubtitle.Width(inner).Render(f.tr.T(f.spec.SubtitleKey)))
		b.WriteString("\n")
	}

	for i, field := range f.spec.Fields {
		label := t.Label
		if i == f.focus {
			label = t.LabelFocused
		}
		b.WriteString(label.Render(f.tr.T(field.LabelKey)) + t.Required.Render(" *"))
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
		if msg, ok := f.errors[field.Name]; ok {
			b.WriteString(t.FieldError.Width(inner).Render(msg))
		}
		b.WriteString("\n")
	}

	b.WriteString(f.buttonView(inner))
	b.WriteString("\n")

	for i, link := range f.spec.Links {
		style := t.Link
		if f.focus == f.buttonIndex()+1+i {
			style = t.LinkFocused
		}
		line := style.Render(f.tr.T(link.LabelKey))
		if link.PromptKey != "" {
			line = t.Muted.Render(f.tr.T(link.PromptKey)) + " " + line
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Center, line))
	}

	return t.FormBox.Render(b.String())
}

func (f *Form) buttonView(width int) string {
	t := f.theme
	switch {
	case f.busy:
		text := f.tr.T(f.spec.SubmitKey)
		if f.spec.BusyKey != "" {
			text = f.tr.T(f.spec.BusyKey)
		}
		return t.ButtonBusy.Width(width).Render(f.spinner.Frame() + " " + text)
	case f.focus == f.buttonIndex():
		return t.ButtonFocused.Width(width).Render(f.tr.T(f.spec.SubmitKey))
	default:
		return t.Button.Width(width).Render(f.tr.T(f.spec.SubmitKey))
	}
}

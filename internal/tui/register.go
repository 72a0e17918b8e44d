package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/langgpt/internal/guard"
	"github.com/naveenspark/langgpt/internal/i18n"
	"github.com/naveenspark/langgpt/internal/session"
	"github.com/naveenspark/langgpt/pkg/client"
)

const (
	regUsername = iota
	regEmail
	regPassword
	regConfirm
	numRegisterFields
)

// registerDoneMsg reports the register-then-login chain.
type registerDoneMsg struct {
	err      error
	loggedIn bool
}

type registerModel struct {
	session    *session.Store
	tr         *i18n.Translator
	fields     [numRegisterFields]string
	focus      int
	submitting bool
	errKey     string
	// errText is a backend message shown verbatim, preferred over errKey.
	errText string
}

func newRegisterModel(s *session.Store, tr *i18n.Translator) registerModel {
	return registerModel{session: s, tr: tr}
}

func (m registerModel) reset() registerModel {
	return newRegisterModel(m.session, m.tr)
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case registerDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errKey, m.errText = registerError(msg.err)
			return m, nil
		}
		m = m.reset()
		if msg.loggedIn {
			return m, navigate(guard.Translate, "")
		}
		return m, navigate(guard.Login, "auth.register_success")

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

// registerError maps a failed registration to what the form shows: the
// backend's detail string when there is one, a generic validation
// message for structured details, or the catch-all failure.
func registerError(err error) (key, text string) {
	httpErr := client.AsHTTPError(err)
	if httpErr == nil {
		return "errors.register_failed", ""
	}
	if detail, ok := httpErr.DetailText(); ok {
		return "", detail
	}
	if httpErr.Structured() {
		return "errors.invalid_input", ""
	}
	return "errors.register_failed", ""
}

func (m registerModel) updateKeys(msg tea.KeyMsg) (registerModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	if f, ok := formFocus(m.focus, numRegisterFields, msg.String()); ok {
		m.focus = f
		return m, nil
	}
	switch msg.String() {
	case "enter":
		if m.focus < numRegisterFields-1 {
			m.focus++
			return m, nil
		}
		return m.submit()
	case "ctrl+r":
		return m, navigate(guard.Login, "")
	}
	m.fields[m.focus] = editKey(m.fields[m.focus], msg)
	return m, nil
}

func (m registerModel) submit() (registerModel, tea.Cmd) {
	username := strings.TrimSpace(m.fields[regUsername])
	email := strings.TrimSpace(m.fields[regEmail])
	password := m.fields[regPassword]
	if username == "" || email == "" || password == "" {
		return m, nil
	}

	m.errKey, m.errText = "", ""
	if password != m.fields[regConfirm] {
		m.errKey = "errors.password_mismatch"
		return m, nil
	}

	m.submitting = true
	s := m.session
	return m, func() tea.Msg {
		ctx := context.Background()
		if err := s.RegisterErr(ctx, username, email, password); err != nil {
			return registerDoneMsg{err: err}
		}
		return registerDoneMsg{loggedIn: s.Login(ctx, username, password)}
	}
}

func (m registerModel) View() string {
	t := m.tr.T
	var b strings.Builder

	b.WriteString(" " + titleStyle.Render(t("nav.register")) + "\n")
	b.WriteString(" " + dimStyle.Render(t("auth.tagline")) + "\n\n")

	labels := [numRegisterFields]string{
		t("auth.username"), t("auth.email"), t("auth.password"), t("auth.confirm_password"),
	}
	for i := 0; i < numRegisterFields; i++ {
		secret := i == regPassword || i == regConfirm
		b.WriteString(renderField(labels[i], m.fields[i], "", m.focus == i, secret) + "\n")
	}
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("   " + buttonIdleStyle.Render(t("processing")) + "\n")
	} else {
		b.WriteString("   " + buttonStyle.Render(t("nav.register")) + "\n")
	}

	switch {
	case m.errText != "":
		b.WriteString("\n " + errorStyle.Render(m.errText) + "\n")
	case m.errKey != "":
		b.WriteString("\n " + errorStyle.Render(t(m.errKey)) + "\n")
	}

	b.WriteString("\n " + dimStyle.Render(t("auth.have_account")) + " " + accentStyle.Render(t("auth.login_link")) + " " + metaStyle.Render("(ctrl+r)") + "\n")
	return b.String()
}

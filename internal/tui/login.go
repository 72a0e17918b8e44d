package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/langgpt/internal/guard"
	"github.com/naveenspark/langgpt/internal/i18n"
	"github.com/naveenspark/langgpt/internal/session"
)

const (
	loginUsername = iota
	loginPassword
	numLoginFields
)

type loginDoneMsg struct {
	ok bool
}

type loginModel struct {
	session    *session.Store
	tr         *i18n.Translator
	fields     [numLoginFields]string
	focus      int
	submitting bool
	errKey     string
	// flashKey is an informational message left by a redirect.
	flashKey string
}

func newLoginModel(s *session.Store, tr *i18n.Translator) loginModel {
	return loginModel{session: s, tr: tr}
}

// reset clears the form, keeping a flash message for the next render.
func (m loginModel) reset(flashKey string) loginModel {
	m.fields = [numLoginFields]string{}
	m.focus = loginUsername
	m.submitting = false
	m.errKey = ""
	m.flashKey = flashKey
	return m
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.submitting = false
		if !msg.ok {
			m.errKey = "errors.login_failed"
			return m, nil
		}
		m = m.reset("")
		return m, navigate(guard.Translate, "")

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m loginModel) updateKeys(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	if f, ok := formFocus(m.focus, numLoginFields, msg.String()); ok {
		m.focus = f
		return m, nil
	}
	switch msg.String() {
	case "enter":
		if m.focus < numLoginFields-1 {
			m.focus++
			return m, nil
		}
		return m.submit()
	case "ctrl+r":
		return m, navigate(guard.Register, "")
	}
	m.fields[m.focus] = editKey(m.fields[m.focus], msg)
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	username := strings.TrimSpace(m.fields[loginUsername])
	password := m.fields[loginPassword]
	if username == "" || password == "" {
		return m, nil
	}

	m.submitting = true
	m.errKey = ""
	m.flashKey = ""
	s := m.session
	return m, func() tea.Msg {
		return loginDoneMsg{ok: s.Login(context.Background(), username, password)}
	}
}

func (m loginModel) View() string {
	t := m.tr.T
	var b strings.Builder

	b.WriteString(" " + titleStyle.Render(t("nav.login")) + "\n")
	b.WriteString(" " + dimStyle.Render(t("auth.tagline")) + "\n\n")

	if m.flashKey != "" {
		style := successStyle
		if strings.HasPrefix(m.flashKey, "errors.") {
			style = errorStyle
		}
		b.WriteString(" " + style.Render(t(m.flashKey)) + "\n\n")
	}

	b.WriteString(renderField(t("auth.username"), m.fields[loginUsername], "", m.focus == loginUsername, false) + "\n")
	b.WriteString(renderField(t("auth.password"), m.fields[loginPassword], "", m.focus == loginPassword, true) + "\n\n")

	if m.submitting {
		b.WriteString("   " + buttonIdleStyle.Render(t("processing")) + "\n")
	} else {
		b.WriteString("   " + buttonStyle.Render(t("nav.login")) + "\n")
	}

	if m.errKey != "" {
		b.WriteString("\n " + errorStyle.Render(t(m.errKey)) + "\n")
	}

	b.WriteString("\n " + dimStyle.Render(t("auth.no_account")) + " " + accentStyle.Render(t("auth.register_link")) + " " + metaStyle.Render("(ctrl+r)") + "\n")
	return b.String()
}

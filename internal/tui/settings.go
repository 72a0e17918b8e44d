package tui

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/langgpt/internal/apikey"
	"github.com/naveenspark/langgpt/internal/i18n"
	"github.com/naveenspark/langgpt/internal/session"
	"github.com/naveenspark/langgpt/pkg/domain"
)

// APIKeysURL is where OpenAI users create keys.
const APIKeysURL = "https://platform.openai.com/api-keys"

type browserOpenedMsg struct {
	err error
}

type settingsModel struct {
	session *session.Store
	keys    apikey.KeyStore
	tr      *i18n.Translator
	openURL func(string) error

	hasKey  bool
	input   string
	editing bool
	// msgKey is the outcome of the last save or browser open.
	msgKey string
	msgErr bool
	expiry time.Time
}

func newSettingsModel(s *session.Store, keys apikey.KeyStore, tr *i18n.Translator, openURL func(string) error) settingsModel {
	return settingsModel{session: s, keys: keys, tr: tr, openURL: openURL}
}

// refresh re-reads the key status and token expiry.
func (m settingsModel) refresh() settingsModel {
	m.hasKey = m.keys != nil && m.keys.Has()
	m.expiry = time.Time{}
	if m.session != nil {
		if exp, err := m.session.TokenExpiry(); err == nil {
			m.expiry = exp
		}
	}
	return m
}

func (m settingsModel) Update(msg tea.Msg) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case browserOpenedMsg:
		if msg.err != nil {
			m.msgKey, m.msgErr = "settings.browser_failed", true
		} else {
			m.msgKey, m.msgErr = "settings.browser_opened", false
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		switch msg.String() {
		case "enter", "i":
			m.editing = true
			m.msgKey = ""
		case "b":
			if m.openURL != nil {
				open := m.openURL
				return m, func() tea.Msg {
					return browserOpenedMsg{err: open(APIKeysURL)}
				}
			}
		}
	}
	return m, nil
}

func (m settingsModel) updateEditing(msg tea.KeyMsg) (settingsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input = ""
		return m, nil
	case "enter":
		return m.save(), nil
	}
	m.input = editKey(m.input, msg)
	return m, nil
}

func (m settingsModel) save() settingsModel {
	err := m.keys.Save(m.input)
	switch {
	case errors.Is(err, apikey.ErrInvalidFormat):
		m.msgKey, m.msgErr = "settings.invalid_api_key", true
		return m
	case err != nil:
		m.msgKey, m.msgErr = "settings.update_failed", true
		return m
	}
	m.msgKey, m.msgErr = "settings.api_key_updated", false
	m.input = ""
	m.editing = false
	return m.refresh()
}

func (m settingsModel) View(user *domain.UserProfile) string {
	t := m.tr.T
	var b strings.Builder

	b.WriteString(" " + titleStyle.Render(t("settings.title")) + "\n\n")

	b.WriteString(" " + sectionHeaderStyle.Render(t("settings.account_info")) + "\n")
	if user != nil {
		b.WriteString("   " + metaStyle.Render(t("auth.username")+": ") + normalStyle.Render(user.Username) + "\n")
		b.WriteString("   " + metaStyle.Render(t("auth.email")+": ") + normalStyle.Render(user.Email) + "\n")
	}
	if !m.expiry.IsZero() {
		b.WriteString("   " + metaStyle.Render(t("settings.session_expires", "time", formatLocal(m.expiry))) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(" " + sectionHeaderStyle.Render(t("settings.api_key_section")) + "\n")
	if m.hasKey {
		b.WriteString("   " + successStyle.Render("● "+t("settings.api_key_active")) + "\n")
	} else {
		b.WriteString("   " + errorStyle.Render("○ "+t("settings.api_key_required")) + "\n")
	}
	b.WriteString("\n" + renderField(t("settings.api_key"), m.input, "sk-...", m.editing, true) + "\n")
	b.WriteString("   " + buttonStyle.Render(t("settings.save")) + "\n")

	if m.msgKey != "" {
		style := successStyle
		if m.msgErr {
			style = errorStyle
		}
		b.WriteString("\n " + style.Render(t(m.msgKey, "url", APIKeysURL)) + "\n")
	}

	b.WriteString("\n " + sectionHeaderStyle.Render(t("settings.api_key_instructions")) + "\n")
	b.WriteString("   " + dimStyle.Render(t("settings.visit_openai")) + accentStyle.Render(APIKeysURL) + " " + metaStyle.Render("(b)") + "\n")
	b.WriteString("   " + dimStyle.Render(t("settings.create_account")) + "\n")
	b.WriteString("   " + dimStyle.Render(t("settings.create_key")) + "\n")
	b.WriteString("   " + dimStyle.Render(t("settings.copy_key")) + "\n")
	return b.String()
}

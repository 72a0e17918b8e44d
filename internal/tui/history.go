package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/langgpt/internal/i18n"
	"github.com/naveenspark/langgpt/pkg/client"
	"github.com/naveenspark/langgpt/pkg/domain"
)

type historyLoadedMsg struct {
	records []domain.TranslationRecord
	err     error
}

type historyModel struct {
	client  *client.Client
	tr      *i18n.Translator
	records []domain.TranslationRecord
	loading bool
	errKey  string
	offset  int
	width   int
	height  int
}

func newHistoryModel(c *client.Client, tr *i18n.Translator) historyModel {
	return historyModel{client: c, tr: tr}
}

func (m historyModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		records, err := c.History(context.Background(), 0)
		return historyLoadedMsg{records: records, err: err}
	}
}

// start marks the view as loading and returns the fetch.
func (m historyModel) start() (historyModel, tea.Cmd) {
	m.loading = true
	m.errKey = ""
	return m, m.load()
}

func (m historyModel) Update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errKey = "errors.history_failed"
			return m, nil
		}
		m.records = msg.records
		m.errKey = ""
		m.offset = 0
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.offset < len(m.records)-1 {
				m.offset++
			}
		case "k", "up":
			if m.offset > 0 {
				m.offset--
			}
		case "g", "home":
			m.offset = 0
		case "r":
			return m.start()
		}
	}
	return m, nil
}

func (m historyModel) View() string {
	t := m.tr.T
	var b strings.Builder
	b.WriteString(" " + titleStyle.Render(t("history.title")) + "\n\n")

	switch {
	case m.loading && len(m.records) == 0:
		b.WriteString(" " + dimStyle.Render(t("loading")) + "\n")
		return b.String()
	case m.errKey != "":
		b.WriteString(" " + errorStyle.Render(t(m.errKey)) + "\n")
		return b.String()
	case len(m.records) == 0:
		b.WriteString(" " + dimStyle.Render(t("history.empty")) + "\n")
		return b.String()
	}

	w := m.width - 6
	if w < 20 {
		w = 0
	}
	for _, rec := range m.records[m.offset:] {
		b.WriteString(" " + metaStyle.Render(formatLocal(rec.CreatedAt.Time)) + "\n")
		b.WriteString(indent(dimStyle.Render(wrapText(rec.OriginalText, w)), "   ") + "\n")
		b.WriteString(indent(normalStyle.Render(wrapText(rec.ReviewedText, w)), "   ") + "\n")
		b.WriteString(" " + metaStyle.Render(strings.Repeat("─", max(m.width-2, 4))) + "\n")
	}
	return b.String()
}

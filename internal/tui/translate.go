package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/langgpt/internal/i18n"
	"github.com/naveenspark/langgpt/pkg/client"
	"github.com/naveenspark/langgpt/pkg/domain"
)

// recentLimit is how many recent translations the home view lists.
const recentLimit = 3

type translatedMsg struct {
	result *domain.TranslationResult
	err    error
}

type recentLoadedMsg struct {
	records []domain.TranslationRecord
	err     error
}

type copiedMsg struct {
	err error
}

type translateModel struct {
	client    *client.Client
	tr        *i18n.Translator
	copy      func(string) error
	direction domain.Direction
	input     string
	editing   bool
	loading   bool
	result    *domain.TranslationResult
	errKey    string
	statusKey string

	showOriginal bool
	showDraft    bool

	recent []domain.TranslationRecord
	width  int
}

func newTranslateModel(c *client.Client, tr *i18n.Translator, copyFn func(string) error) translateModel {
	return translateModel{
		client:    c,
		tr:        tr,
		copy:      copyFn,
		direction: domain.DefaultDirection,
		editing:   true,
	}
}

func (m translateModel) Init() tea.Cmd {
	return m.loadRecent()
}

func (m translateModel) loadRecent() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		records, err := c.History(context.Background(), recentLimit)
		return recentLoadedMsg{records: records, err: err}
	}
}

func (m translateModel) Update(msg tea.Msg) (translateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case translatedMsg:
		m.loading = false
		if msg.err != nil {
			if client.IsUnauthorized(msg.err) {
				m.errKey = "errors.login_required"
			} else {
				m.errKey = "errors.translation_failed"
			}
			return m, nil
		}
		m.result = msg.result
		m.showOriginal = false
		m.showDraft = false
		return m, m.loadRecent()

	case recentLoadedMsg:
		// The recent list is a convenience; failures leave it as it was.
		if msg.err == nil {
			m.recent = msg.records
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.statusKey = "result.copy_failed"
		} else {
			m.statusKey = "result.copied"
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateNav(msg)
	}
	return m, nil
}

func (m translateModel) updateEditing(msg tea.KeyMsg) (translateModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		return m, nil
	case "enter":
		return m.submit()
	case "alt+enter", "ctrl+j":
		m.input = appendClamped(m.input, "\n")
		return m, nil
	case "tab":
		m.toggleDirection()
		return m, nil
	}
	m.input = editKey(m.input, msg)
	return m, nil
}

func (m translateModel) updateNav(msg tea.KeyMsg) (translateModel, tea.Cmd) {
	m.statusKey = ""
	switch msg.String() {
	case "enter", "i":
		m.editing = true
	case "t":
		m.toggleDirection()
	case "o":
		if m.result != nil {
			m.showOriginal = !m.showOriginal
		}
	case "d":
		if m.result != nil {
			m.showDraft = !m.showDraft
		}
	case "c":
		if m.result != nil && m.copy != nil {
			text, copyFn := m.result.Reviewed, m.copy
			return m, func() tea.Msg {
				return copiedMsg{err: copyFn(text)}
			}
		}
	case "r":
		return m, m.loadRecent()
	}
	return m, nil
}

// toggleDirection flips the direction and drops the now-stale result.
func (m *translateModel) toggleDirection() {
	m.direction = m.direction.Toggle()
	m.result = nil
	m.errKey = ""
	m.showOriginal = false
	m.showDraft = false
}

func (m translateModel) submit() (translateModel, tea.Cmd) {
	if strings.TrimSpace(m.input) == "" || m.loading {
		return m, nil
	}

	m.loading = true
	m.errKey = ""
	m.statusKey = ""
	c, dir, text := m.client, m.direction, m.input
	return m, func() tea.Msg {
		res, err := c.Translate(context.Background(), text, dir)
		return translatedMsg{result: res, err: err}
	}
}

func (m translateModel) wrapWidth() int {
	w := m.width - 6
	if w < 20 {
		return 0
	}
	return w
}

func (m translateModel) View() string {
	t := m.tr.T
	var b strings.Builder

	dirLabel := t("direction." + string(m.direction))
	b.WriteString(" " + selectedStyle.Render(dirLabel) + "  " + metaStyle.Render("⇄ "+t("change_direction")+" (t)") + "\n\n")

	inputLabel, placeholder := t("form.ko_input"), t("form.ko_placeholder")
	if m.direction == domain.JaToKo {
		inputLabel, placeholder = t("form.ja_input"), t("form.ja_placeholder")
	}
	b.WriteString(renderField(inputLabel, m.input, placeholder, m.editing, false) + "\n\n")

	if m.loading {
		b.WriteString("   " + buttonIdleStyle.Render(t("form.translating")) + "\n")
	} else {
		b.WriteString("   " + buttonStyle.Render(t("form.translate")) + "\n")
	}

	if m.errKey != "" {
		b.WriteString("\n " + errorStyle.Render(t(m.errKey)) + "\n")
	}

	if m.result != nil {
		b.WriteString("\n" + m.resultView())
	}

	if m.statusKey != "" {
		b.WriteString(" " + successStyle.Render(t(m.statusKey)) + "\n")
	}

	if len(m.recent) > 0 {
		b.WriteString("\n " + sectionHeaderStyle.Render(t("history.recent")) + "\n")
		for _, rec := range m.recent {
			b.WriteString("   " + metaStyle.Render(formatLocal(rec.CreatedAt.Time)) + "\n")
			b.WriteString("   " + dimStyle.Render(previewText(rec.OriginalText, recentPreviewLen)) + "\n")
			b.WriteString("   " + normalStyle.Render(previewText(rec.ReviewedText, recentPreviewLen)) + "\n")
		}
		b.WriteString("   " + accentStyle.Render(t("history.view_all")) + " " + metaStyle.Render("(2)") + "\n")
	}
	return b.String()
}

// resultView shows the reviewed translation up front; the source text
// and the first draft stay folded until asked for.
func (m translateModel) resultView() string {
	t := m.tr.T
	w := m.wrapWidth()
	var b strings.Builder

	b.WriteString(" " + sectionHeaderStyle.Render(t("result.translated")) + "\n")
	b.WriteString(indent(resultStyle.Render(wrapText(m.result.Reviewed, w)), "   ") + "\n\n")

	b.WriteString(foldHeader(t("result.show_original"), "o", m.showOriginal) + "\n")
	if m.showOriginal {
		b.WriteString(indent(normalStyle.Render(wrapText(m.result.Original, w)), "     ") + "\n")
	}
	b.WriteString(foldHeader(t("result.initial"), "d", m.showDraft) + "\n")
	if m.showDraft {
		b.WriteString(indent(normalStyle.Render(wrapText(m.result.Translated, w)), "     ") + "\n")
	}
	return b.String()
}

func foldHeader(label, key string, open bool) string {
	marker := "▸"
	if open {
		marker = "▾"
	}
	return "   " + accentStyle.Render(marker) + " " + dimStyle.Render(label) + " " + metaStyle.Render("("+key+")")
}

package tui

import (
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 2000

// editKey applies a keystroke to a single text field. Backspace deletes
// one rune, ctrl+u clears the field, and typed or pasted runes are
// appended up to maxInputLen. Other keys leave text unchanged.
func editKey(text string, msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyBackspace:
		if text == "" {
			return text
		}
		runes := []rune(text)
		return string(runes[:len(runes)-1])
	case tea.KeyCtrlU:
		return ""
	case tea.KeySpace:
		return appendClamped(text, " ")
	case tea.KeyRunes:
		return appendClamped(text, string(msg.Runes))
	}
	return text
}

func appendClamped(text, add string) string {
	room := maxInputLen - utf8.RuneCountInString(text)
	if room <= 0 {
		return text
	}
	if utf8.RuneCountInString(add) > room {
		add = string([]rune(add)[:room])
	}
	return text + add
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// renderField renders one labelled form input. Secret values are masked.
func renderField(label, value, placeholder string, focused, secret bool) string {
	shown := value
	if secret {
		shown = strings.Repeat("•", utf8.RuneCountInString(value))
	}

	prefix := "  "
	labelStyle := metaStyle
	if focused {
		prefix = inputPromptStyle.Render("> ")
		labelStyle = selectedStyle
	}

	var field string
	switch {
	case shown == "" && !focused:
		field = inputPlaceholderStyle.Render(placeholder)
	case focused:
		field = normalStyle.Render(shown) + accentStyle.Render("█")
	default:
		field = dimStyle.Render(shown)
	}
	return prefix + labelStyle.Render(label) + "\n    " + field
}

// formFocus moves a form cursor for tab/shift+tab/up/down keys and
// reports whether the key was a focus key.
func formFocus(focus, n int, key string) (int, bool) {
	switch key {
	case "tab", "down":
		return (focus + 1) % n, true
	case "shift+tab", "up":
		return (focus - 1 + n) % n, true
	}
	return focus, false
}

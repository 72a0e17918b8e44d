package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestEditKey(t *testing.T) {
	tests := []struct {
		name  string
		start string
		msg   tea.KeyMsg
		want  string
	}{
		{"append to empty", "", key("a"), "a"},
		{"append hangul", "안녕", key("하"), "안녕하"},
		{"paste", "", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("こんにちは"), Paste: true}, "こんにちは"},
		{"space", "a", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, "a "},
		{"backspace multibyte", "héllo한", key("backspace"), "héllo"},
		{"backspace on empty does nothing", "", key("backspace"), ""},
		{"ctrl+u clears", "secret", tea.KeyMsg{Type: tea.KeyCtrlU}, ""},
		{"enter ignored", "abc", key("enter"), "abc"},
		{"esc ignored", "abc", key("esc"), "abc"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := editKey(tc.start, tc.msg); got != tc.want {
				t.Errorf("editKey(%q, %v) = %q, want %q", tc.start, tc.msg, got, tc.want)
			}
		})
	}
}

func TestEditKeyClampsLength(t *testing.T) {
	full := strings.Repeat("a", maxInputLen)
	if got := editKey(full, key("b")); got != full {
		t.Errorf("editKey on a full field grew to %d runes", len([]rune(got)))
	}
	almost := strings.Repeat("a", maxInputLen-2)
	got := editKey(almost, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("한국어")})
	if n := len([]rune(got)); n != maxInputLen {
		t.Errorf("paste clamped to %d runes, want %d", n, maxInputLen)
	}
}

func TestTruncateToHeight(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLines int
		want     string
	}{
		{"fits", "a\nb\n", 5, "a\nb\n"},
		{"cut", "a\nb\nc\nd\n", 2, "a\nb\n"},
		{"zero means no limit", "a\nb\n", 0, "a\nb\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncateToHeight(tc.input, tc.maxLines); got != tc.want {
				t.Errorf("truncateToHeight(%q, %d) = %q, want %q", tc.input, tc.maxLines, got, tc.want)
			}
		})
	}
}

func TestFormFocus(t *testing.T) {
	if f, ok := formFocus(1, 2, "tab"); !ok || f != 0 {
		t.Errorf("tab from last = %d, %v", f, ok)
	}
	if f, ok := formFocus(0, 4, "shift+tab"); !ok || f != 3 {
		t.Errorf("shift+tab from first = %d, %v", f, ok)
	}
	if _, ok := formFocus(0, 4, "a"); ok {
		t.Error("letter treated as focus key")
	}
}

func TestRenderFieldMasksSecrets(t *testing.T) {
	out := renderField("비밀번호", "hunter2", "", true, true)
	if strings.Contains(out, "hunter2") {
		t.Errorf("secret leaked: %q", out)
	}
	if !strings.Contains(out, strings.Repeat("•", 7)) {
		t.Errorf("mask missing: %q", out)
	}
	if out := renderField("name", "", "placeholder", false, false); !strings.Contains(out, "placeholder") {
		t.Errorf("placeholder missing: %q", out)
	}
}

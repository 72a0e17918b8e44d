package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/langgpt/internal/i18n"
	"github.com/naveenspark/langgpt/pkg/client"
	"github.com/naveenspark/langgpt/pkg/domain"
)

func TestTranslateShowsReviewedPrimary(t *testing.T) {
	h := newHarness(t)
	m := tea.Model(h.loggedIn(t))
	m = typeText(t, m, "안녕하세요")
	m = press(t, m, "enter")

	view := m.(App).View()
	mustContain(t, view, "번역 결과", "[ja] 안녕하세요", "▸ 원문 보기", "▸ 초벌 번역 보기")
	mustNotContain(t, view, "[ja draft] 안녕하세요")
	// Folded sections show only their headers.
	if n := strings.Count(m.(App).translate.resultView(), "안녕하세요"); n != 1 {
		t.Errorf("result section shows the text %d times, want 1 (reviewed only)", n)
	}

	m = press(t, m, "esc", "d")
	view = m.(App).View()
	mustContain(t, view, "▾ 초벌 번역 보기", "[ja draft] 안녕하세요")

	m = press(t, m, "o")
	mustContain(t, m.(App).View(), "▾ 원문 보기")
	if n := strings.Count(m.(App).translate.resultView(), "안녕하세요"); n != 3 {
		t.Errorf("result section shows the text %d times, want 3 once expanded", n)
	}

	req, ok := h.srv.LastRequest("/translate")
	if !ok || req.Authorization == "" {
		t.Errorf("translate request = %+v, want bearer token", req)
	}
}

func TestTranslateIgnoresBlankInput(t *testing.T) {
	h := newHarness(t)
	m := tea.Model(h.loggedIn(t))
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = press(t, m, "enter")

	if _, ok := h.srv.LastRequest("/translate"); ok {
		t.Error("blank input reached the backend")
	}
	if m.(App).translate.loading {
		t.Error("blank input left the view loading")
	}
}

func TestTranslateToggleDirectionClearsResult(t *testing.T) {
	h := newHarness(t)
	m := tea.Model(h.loggedIn(t))
	m = typeText(t, m, "こんにちは")
	m = press(t, m, "enter")
	if m.(App).translate.result == nil {
		t.Fatal("no result after translate")
	}

	m = press(t, m, "esc", "t")
	a := m.(App)
	if a.translate.direction != domain.JaToKo {
		t.Errorf("direction = %s, want %s", a.translate.direction, domain.JaToKo)
	}
	if a.translate.result != nil {
		t.Error("result kept after direction change")
	}
	mustContain(t, a.View(), "일본어 → 한국어", "일본어 입력")

	m = press(t, m, "enter", "enter")
	if res := m.(App).translate.result; res == nil || !strings.HasPrefix(res.Reviewed, "[ko]") {
		t.Errorf("result = %+v, want ja2ko translation", res)
	}
}

func TestTranslateRecentList(t *testing.T) {
	h := newHarness(t)
	long := strings.Repeat("가", 60)
	h.srv.AddRecord("mina", domain.TranslationRecord{
		ID:           1,
		OriginalText: long,
		ReviewedText: "short",
		CreatedAt:    domain.Timestamp{Time: time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local)},
	})

	a := h.loggedIn(t)
	view := a.View()
	mustContain(t, view, "최근 번역", strings.Repeat("가", 50)+"...", "short", "2024-03-01 09:30", "전체 기록 보기")
	mustNotContain(t, view, strings.Repeat("가", 51))

	req, _ := h.srv.LastRequest("/history")
	if req.Query != "limit=3" {
		t.Errorf("recent query = %q, want limit=3", req.Query)
	}
}

func TestTranslateRefreshesRecentAfterSuccess(t *testing.T) {
	h := newHarness(t)
	m := tea.Model(h.loggedIn(t))
	m = typeText(t, m, "하나")
	m = press(t, m, "enter")

	recent := m.(App).translate.recent
	if len(recent) != 1 || recent[0].OriginalText != "하나" {
		t.Errorf("recent = %+v, want the new translation", recent)
	}
}

func TestTranslateCopy(t *testing.T) {
	h := newHarness(t)
	m := tea.Model(h.loggedIn(t))
	m = typeText(t, m, "고마워")
	m = press(t, m, "enter", "esc", "c")

	if len(h.copied) != 1 || h.copied[0] != "[ja] 고마워" {
		t.Errorf("copied = %q, want reviewed text", h.copied)
	}
	mustContain(t, m.(App).View(), "번역 결과를 클립보드에 복사했습니다.")
}

func TestTranslateErrors(t *testing.T) {
	tr := i18n.New(nil, i18n.Ko)
	m := newTranslateModel(nil, tr, nil)
	m.loading = true

	m, _ = m.Update(translatedMsg{err: errors.New("dial tcp: refused")})
	if m.loading {
		t.Error("still loading after failure")
	}
	if !strings.Contains(m.View(), "번역에 실패했습니다") {
		t.Errorf("view missing translation_failed:\n%s", m.View())
	}

	m, _ = m.Update(translatedMsg{err: &client.HTTPError{StatusCode: 401, Message: "expired"}})
	if !strings.Contains(m.View(), "로그인이 필요합니다") {
		t.Errorf("view missing login_required:\n%s", m.View())
	}

	m, _ = m.Update(copiedMsg{err: errors.New("no clipboard")})
	if !strings.Contains(m.View(), "클립보드 복사에 실패했습니다.") {
		t.Errorf("view missing copy failure:\n%s", m.View())
	}
}

func TestTranslateMultilineInput(t *testing.T) {
	m := newTranslateModel(nil, i18n.New(nil, i18n.Ko), nil)
	m, _ = m.Update(key("첫째"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	m, _ = m.Update(key("둘째"))
	if m.input != "첫째\n둘째" {
		t.Errorf("input = %q, want two lines", m.input)
	}
}

func TestTranslateSendsInputUnchanged(t *testing.T) {
	h := newHarness(t)
	m := tea.Model(h.loggedIn(t))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	m = typeText(t, m, "  첫째")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	m = typeText(t, m, "둘째 ")
	m = press(t, m, "enter")

	res := m.(App).translate.result
	if res == nil {
		t.Fatalf("no result; view:\n%s", m.(App).View())
	}
	if want := "\n  첫째\n둘째 "; res.Original != want {
		t.Errorf("sent %q, want %q", res.Original, want)
	}
}

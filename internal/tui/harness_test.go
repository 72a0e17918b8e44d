package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/langgpt/internal/apikey"
	"github.com/naveenspark/langgpt/internal/apitest"
	"github.com/naveenspark/langgpt/internal/i18n"
	"github.com/naveenspark/langgpt/internal/session"
	"github.com/naveenspark/langgpt/internal/storage"
	"github.com/naveenspark/langgpt/pkg/client"
)

type harness struct {
	srv    *apitest.Server
	store  *storage.MemoryStore
	api    *client.Client
	sess   *session.Store
	tr     *i18n.Translator
	mu     sync.Mutex
	copied []string
	opened []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{srv: apitest.New(t), store: storage.NewMemoryStore()}
	h.srv.AddUser("mina", "mina@example.com", "pw")
	h.api = client.New(h.srv.URL, storage.TokenReader(h.store))
	h.sess = session.New(h.api, h.store, nil)
	h.api.SetUnauthorizedHandler(h.sess.Expire)
	h.tr = i18n.New(h.store, i18n.Ko)
	return h
}

func (h *harness) newApp() App {
	a := NewApp(Deps{
		Client:  h.api,
		Session: h.sess,
		Keys:    apikey.NewLocal(h.store),
		Tr:      h.tr,
		OpenURL: func(u string) error {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.opened = append(h.opened, u)
			return nil
		},
		Copy: func(s string) error {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.copied = append(h.copied, s)
			return nil
		},
	})
	a.width = 100
	a.height = 80
	return a
}

// booted returns an app whose session has finished bootstrapping.
func (h *harness) booted(t *testing.T) App {
	t.Helper()
	a := h.newApp()
	h.sess.Bootstrap(context.Background())
	return send(t, a, sessionChangedMsg{}).(App)
}

// loggedIn returns a booted app with mina logged in, on the translate view.
func (h *harness) loggedIn(t *testing.T) App {
	t.Helper()
	a := h.booted(t)
	m := typeText(t, a, "mina")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "pw")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	app := m.(App)
	if !app.state.Authenticated {
		t.Fatalf("login did not authenticate; view:\n%s", app.View())
	}
	return app
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m tea.Model, s string) tea.Model {
	t.Helper()
	return send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func press(t *testing.T, m tea.Model, keys ...string) tea.Model {
	t.Helper()
	for _, k := range keys {
		m = send(t, m, key(k))
	}
	return m
}

// send delivers msg and runs the resulting commands to completion.
func send(t *testing.T, m tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	m, cmd := m.Update(msg)
	return drain(t, m, cmd)
}

// drain executes cmd and feeds its messages back into m until nothing
// is left. Commands that block (the session listener) or tick forever
// (the logo shimmer) are dropped.
func drain(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("drain: too many commands")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := runCmd(c).(type) {
		case nil, shimmerTickMsg, tea.QuitMsg, sessionChangedMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		}
	}
	return m
}

func runCmd(c tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- c() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(500 * time.Millisecond):
		return nil
	}
}

func mustContain(t *testing.T, view string, subs ...string) {
	t.Helper()
	for _, s := range subs {
		if !strings.Contains(view, s) {
			t.Errorf("view missing %q:\n%s", s, view)
		}
	}
}

func mustNotContain(t *testing.T, view string, subs ...string) {
	t.Helper()
	for _, s := range subs {
		if strings.Contains(view, s) {
			t.Errorf("view unexpectedly contains %q:\n%s", s, view)
		}
	}
}

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/naveenspark/langgpt/internal/apikey"
	"github.com/naveenspark/langgpt/internal/browser"
	"github.com/naveenspark/langgpt/internal/guard"
	"github.com/naveenspark/langgpt/internal/i18n"
	"github.com/naveenspark/langgpt/internal/session"
	"github.com/naveenspark/langgpt/pkg/client"
)

// Deps are the collaborators the UI drives.
type Deps struct {
	Client  *client.Client
	Session *session.Store
	Keys    apikey.KeyStore
	Tr      *i18n.Translator
	Log     *zap.Logger
	// OpenURL and Copy default to the system browser and clipboard.
	OpenURL func(string) error
	Copy    func(string) error
}

// sessionChangedMsg wakes the app after the session store published.
type sessionChangedMsg struct{}

// navigateMsg asks the app to switch routes.
type navigateMsg struct {
	route    guard.Route
	flashKey string
}

func navigate(r guard.Route, flashKey string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: r, flashKey: flashKey} }
}

// App is the root Bubbletea model.
type App struct {
	session *session.Store
	tr      *i18n.Translator
	log     *zap.Logger
	changes chan struct{}

	state session.State
	route guard.Route

	login     loginModel
	register  registerModel
	translate translateModel
	history   historyModel
	settings  settingsModel

	width  int
	height int
	frame  int // logo shimmer animation frame
}

// NewApp creates the TUI application and subscribes it to the session.
func NewApp(d Deps) App {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Tr == nil {
		d.Tr = i18n.New(nil, i18n.Fallback)
	}
	if d.OpenURL == nil {
		d.OpenURL = browser.Open
	}
	if d.Copy == nil {
		d.Copy = clipboard.WriteAll
	}

	changes := make(chan struct{}, 1)
	d.Session.Subscribe(func(session.State) {
		select {
		case changes <- struct{}{}:
		default: // a wake-up is already pending; the app reads the latest snapshot
		}
	})

	return App{
		session:   d.Session,
		tr:        d.Tr,
		log:       d.Log.Named("tui"),
		changes:   changes,
		state:     d.Session.Snapshot(),
		route:     guard.Translate,
		login:     newLoginModel(d.Session, d.Tr),
		register:  newRegisterModel(d.Session, d.Tr),
		translate: newTranslateModel(d.Client, d.Tr, d.Copy),
		history:   newHistoryModel(d.Client, d.Tr),
		settings:  newSettingsModel(d.Session, d.Keys, d.Tr, d.OpenURL),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), a.bootstrap(), waitForSession(a.changes))
}

func (a App) bootstrap() tea.Cmd {
	s := a.session
	return func() tea.Msg {
		s.Bootstrap(context.Background())
		return nil
	}
}

func waitForSession(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return sessionChangedMsg{}
	}
}

// current is the route actually rendered after the guard has had its say.
func (a App) current() guard.Route {
	r, _ := guard.Resolve(a.route, a.state)
	return r
}

// syncSession pulls the latest session snapshot and reacts to the
// transition from the previous one.
func (a *App) syncSession() tea.Cmd {
	prev := a.state
	a.state = a.session.Snapshot()
	cur := a.state

	switch {
	case prev.Loading && !cur.Loading:
		a.log.Debug("bootstrap finished", zap.Bool("authenticated", cur.Authenticated))
		return a.enter(a.current())

	case !prev.Authenticated && cur.Authenticated:
		a.route = guard.Translate
		a.translate = newTranslateModel(a.translate.client, a.tr, a.translate.copy)
		a.history = newHistoryModel(a.history.client, a.tr)
		return a.enter(guard.Translate)

	case prev.Authenticated && !cur.Authenticated:
		flash := ""
		if cur.Expired {
			flash = "errors.login_required"
		}
		a.log.Info("session ended", zap.Bool("expired", cur.Expired))
		a.login = a.login.reset(flash)
		a.translate = newTranslateModel(a.translate.client, a.tr, a.translate.copy)
		a.history = newHistoryModel(a.history.client, a.tr)
	}
	return nil
}

// enter prepares the view behind r and returns its initial load.
func (a *App) enter(r guard.Route) tea.Cmd {
	if guard.Protected(r) && guard.Evaluate(a.state) != guard.Granted {
		return nil
	}
	switch r {
	case guard.Translate:
		return a.translate.Init()
	case guard.History:
		var cmd tea.Cmd
		a.history, cmd = a.history.start()
		return cmd
	case guard.Settings:
		a.settings = a.settings.refresh()
	}
	return nil
}

func (a App) navigate(r guard.Route, flashKey string) (App, tea.Cmd) {
	if cmd := a.syncSession(); cmd != nil && a.route == r && flashKey == "" {
		return a, cmd
	}
	a.route = r
	switch r {
	case guard.Login:
		a.login = a.login.reset(flashKey)
	case guard.Register:
		a.register = a.register.reset()
	}
	return a, a.enter(a.current())
}

func (a *App) toggleLanguage() {
	lang, err := a.tr.Toggle()
	if err != nil {
		a.log.Warn("persist language", zap.Error(err))
		return
	}
	a.log.Debug("language changed", zap.String("lang", string(lang)))
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - chromeLines}
		a.translate, _ = a.translate.Update(bodyMsg)
		a.history, _ = a.history.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case sessionChangedMsg:
		cmd := a.syncSession()
		return a, tea.Batch(cmd, waitForSession(a.changes))

	case navigateMsg:
		return a.navigate(msg.route, msg.flashKey)

	case loginDoneMsg:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	case registerDoneMsg:
		var cmd tea.Cmd
		a.register, cmd = a.register.Update(msg)
		return a, cmd

	case translatedMsg, recentLoadedMsg, copiedMsg:
		var cmd tea.Cmd
		a.translate, cmd = a.translate.Update(msg)
		return a, cmd

	case historyLoadedMsg:
		var cmd tea.Cmd
		a.history, cmd = a.history.Update(msg)
		return a, cmd

	case browserOpenedMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "ctrl+l":
		a.toggleLanguage()
		return a, nil
	}

	cur := a.current()
	if guard.Protected(cur) && guard.Evaluate(a.state) == guard.Pending {
		if msg.String() == "q" {
			return a, tea.Quit
		}
		return a, nil
	}

	if !a.isEditing(cur) {
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "1":
			return a.navigate(guard.Translate, "")
		case "2":
			return a.navigate(guard.History, "")
		case "3":
			return a.navigate(guard.Settings, "")
		case "x":
			if a.state.Authenticated {
				a.session.Logout()
				return a, a.syncSession()
			}
		}
	}

	var cmd tea.Cmd
	switch cur {
	case guard.Login:
		a.login, cmd = a.login.Update(msg)
	case guard.Register:
		a.register, cmd = a.register.Update(msg)
	case guard.Translate:
		a.translate, cmd = a.translate.Update(msg)
	case guard.History:
		a.history, cmd = a.history.Update(msg)
	case guard.Settings:
		a.settings, cmd = a.settings.Update(msg)
	}
	return a, cmd
}

func (a App) isEditing(r guard.Route) bool {
	switch r {
	case guard.Login, guard.Register:
		return true
	case guard.Translate:
		return a.translate.editing
	case guard.Settings:
		return a.settings.editing
	}
	return false
}

// chromeLines is header(2) + blank(1) + help(1).
const chromeLines = 4

func (a App) View() string {
	t := a.tr.T

	logo := renderShimmerLogo(a.frame)
	header := centered(logo, a.width) + "\n" + centered(a.navLine(), a.width)

	cur := a.current()
	var body, help string
	switch {
	case guard.Protected(cur) && guard.Evaluate(a.state) == guard.Pending:
		body = " " + dimStyle.Render(t("loading"))
		help = helpBar(helpEntry("q", t("help.quit")))
	case cur == guard.Login:
		body = a.login.View()
		help = helpBar(
			helpEntry("tab", t("help.navigate")), helpEntry("enter", t("help.submit")),
			helpEntry("ctrl+r", t("help.switch_form")), helpEntry("ctrl+l", t("help.language")),
			helpEntry("ctrl+c", t("help.quit")),
		)
	case cur == guard.Register:
		body = a.register.View()
		help = helpBar(
			helpEntry("tab", t("help.navigate")), helpEntry("enter", t("help.submit")),
			helpEntry("ctrl+r", t("help.switch_form")), helpEntry("ctrl+l", t("help.language")),
			helpEntry("ctrl+c", t("help.quit")),
		)
	case cur == guard.Translate:
		body = a.translate.View()
		if a.translate.editing {
			help = helpBar(
				helpEntry("enter", t("form.translate")), helpEntry("tab", t("help.toggle")),
				helpEntry("esc", t("help.done")), helpEntry("ctrl+l", t("help.language")),
			)
		} else {
			help = helpBar(
				helpEntry("1-3", t("help.navigate")), helpEntry("i", t("help.edit")),
				helpEntry("t", t("help.toggle")), helpEntry("c", t("help.copy")),
				helpEntry("x", t("nav.logout")), helpEntry("q", t("help.quit")),
			)
		}
	case cur == guard.History:
		body = a.history.View()
		help = helpBar(
			helpEntry("1-3", t("help.navigate")), helpEntry("j/k", t("help.scroll")),
			helpEntry("r", t("help.refresh")), helpEntry("x", t("nav.logout")),
			helpEntry("q", t("help.quit")),
		)
	case cur == guard.Settings:
		body = a.settings.View(a.state.User)
		if a.settings.editing {
			help = helpBar(helpEntry("enter", t("settings.save")), helpEntry("esc", t("help.done")))
		} else {
			help = helpBar(
				helpEntry("1-3", t("help.navigate")), helpEntry("i", t("help.edit")),
				helpEntry("b", t("help.open_browser")), helpEntry("x", t("nav.logout")),
				helpEntry("q", t("help.quit")),
			)
		}
	}

	body = strings.TrimRight(truncateToHeight(body, a.height-chromeLines), "\n")
	return fmt.Sprintf("%s\n\n%s\n%s", header, body, help)
}

// navLine is the welcome text plus the tab strip for the current route.
func (a App) navLine() string {
	t := a.tr.T
	if !a.state.Authenticated {
		login, register := dimStyle.Render(t("nav.login")), dimStyle.Render(t("nav.register"))
		switch a.current() {
		case guard.Login:
			login = selectedStyle.Underline(true).Render(t("nav.login"))
		case guard.Register:
			register = selectedStyle.Underline(true).Render(t("nav.register"))
		}
		return login + metaStyle.Render(" · ") + register
	}

	name := t("user")
	if a.state.User != nil && a.state.User.Username != "" {
		name = a.state.User.Username
	}
	tabs := []struct {
		key   string
		label string
		route guard.Route
	}{
		{"1", t("nav.translate"), guard.Translate},
		{"2", t("nav.history"), guard.History},
		{"3", t("nav.settings"), guard.Settings},
	}
	parts := []string{dimStyle.Render(t("nav.welcome", "username", name))}
	for _, tab := range tabs {
		if tab.route == a.current() {
			parts = append(parts, accentStyle.Render(tab.key)+" "+selectedStyle.Underline(true).Render(tab.label))
		} else {
			parts = append(parts, metaStyle.Render(tab.key)+" "+dimStyle.Render(tab.label))
		}
	}
	return strings.Join(parts, "   ")
}

func centered(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

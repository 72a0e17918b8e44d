package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/naveenspark/langgpt/internal/apikey"
	"github.com/naveenspark/langgpt/internal/config"
	"github.com/naveenspark/langgpt/internal/i18n"
	"github.com/naveenspark/langgpt/internal/logging"
	"github.com/naveenspark/langgpt/internal/session"
	"github.com/naveenspark/langgpt/internal/storage"
	"github.com/naveenspark/langgpt/internal/tui"
	"github.com/naveenspark/langgpt/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, rest, err := config.Load(args, os.Getenv)
	if err != nil {
		return err
	}

	if len(rest) > 0 {
		switch rest[0] {
		case "--version", "version", "-v":
			fmt.Println("langgpt " + version)
			return nil
		case "help", "--help", "-h":
			printHelp(os.Stdout)
			return nil
		}
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush

	app := wire(cfg, logger)
	app.out = os.Stdout
	app.in = os.Stdin

	if len(rest) > 0 {
		return app.dispatch(rest[0], rest[1:])
	}
	return app.runTUI()
}

// app bundles the wired collaborators shared by every subcommand.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	store storage.Store
	api   *client.Client
	sess  *session.Store
	keys  apikey.KeyStore
	tr    *i18n.Translator

	prompter
}

// wire builds the app. LANGGPT_TOKEN overrides the stored token for this
// process only and is never written to the data dir.
func wire(cfg *config.Config, logger *zap.Logger) *app {
	var store storage.Store = storage.NewFileStore(cfg.DataDir)
	if cfg.Token != "" {
		store = storage.Overlay(store, storage.TokenKey, cfg.Token)
	}

	api := client.New(cfg.APIURL, storage.TokenReader(store),
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(logger.Named("client")),
	)
	sess := session.New(api, store, logger)
	api.SetUnauthorizedHandler(sess.Expire)

	lang := i18n.Detect(store, os.Getenv)
	logger.Info("starting",
		zap.String("version", version),
		zap.String("api", cfg.APIURL),
		zap.String("data_dir", cfg.DataDir),
		zap.String("lang", string(lang)),
	)

	return &app{
		cfg:   cfg,
		log:   logger,
		store: store,
		api:   api,
		sess:  sess,
		keys:  apikey.NewLocal(store),
		tr:    i18n.New(store, lang),
		prompter: prompter{
			readPassword: readTerminalPassword,
		},
	}
}

func (a *app) runTUI() error {
	model := tui.NewApp(tui.Deps{
		Client:  a.api,
		Session: a.sess,
		Keys:    a.keys,
		Tr:      a.tr,
		Log:     a.log,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/naveenspark/langgpt/internal/storage"
	"github.com/naveenspark/langgpt/pkg/client"
	"github.com/naveenspark/langgpt/pkg/domain"
)

// errNotLoggedIn is returned by commands that need a session.
var errNotLoggedIn = errors.New("not logged in (run: langgpt login)")

func (a *app) dispatch(cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.runLogin(args)
	case "register":
		return a.runRegister(args)
	case "logout":
		return a.runLogout()
	case "whoami":
		return a.runWhoami()
	case "translate":
		return a.runTranslate(args)
	case "history":
		return a.runHistory(args)
	}
	return fmt.Errorf("unknown command %q (run: langgpt help)", cmd)
}

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet("langgpt "+name, flag.ContinueOnError)
}

func (a *app) runLogin(args []string) error {
	fs := newFlagSet("login")
	username := fs.String("u", "", "username")
	fs.SetOutput(a.out)
	if err := fs.Parse(args); err != nil {
		return err
	}

	name := strings.TrimSpace(*username)
	if name == "" {
		var err error
		if name, err = a.promptLine(a.tr.T("auth.username")); err != nil {
			return err
		}
	}
	password, err := a.promptPassword(a.tr.T("auth.password"))
	if err != nil {
		return err
	}

	if !a.sess.Login(context.Background(), name, password) {
		return errors.New(a.tr.T("errors.login_failed"))
	}
	a.printUser()
	return nil
}

func (a *app) runRegister(args []string) error {
	fs := newFlagSet("register")
	username := fs.String("u", "", "username")
	email := fs.String("e", "", "email")
	fs.SetOutput(a.out)
	if err := fs.Parse(args); err != nil {
		return err
	}

	name, mail := strings.TrimSpace(*username), strings.TrimSpace(*email)
	var err error
	if name == "" {
		if name, err = a.promptLine(a.tr.T("auth.username")); err != nil {
			return err
		}
	}
	if mail == "" {
		if mail, err = a.promptLine(a.tr.T("auth.email")); err != nil {
			return err
		}
	}
	password, err := a.promptPassword(a.tr.T("auth.password"))
	if err != nil {
		return err
	}
	confirm, err := a.promptPassword(a.tr.T("auth.confirm_password"))
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New(a.tr.T("errors.password_mismatch"))
	}

	ctx := context.Background()
	if err := a.sess.RegisterErr(ctx, name, mail, password); err != nil {
		return errors.New(a.registerMessage(err))
	}
	if !a.sess.Login(ctx, name, password) {
		fmt.Fprintln(a.out, a.tr.T("auth.register_success")) //nolint:errcheck
		return nil
	}
	a.printUser()
	return nil
}

func (a *app) registerMessage(err error) string {
	httpErr := client.AsHTTPError(err)
	switch {
	case httpErr == nil:
		return a.tr.T("errors.register_failed")
	case httpErr.Structured():
		return a.tr.T("errors.invalid_input")
	}
	if detail, ok := httpErr.DetailText(); ok {
		return detail
	}
	return a.tr.T("errors.register_failed")
}

func (a *app) runLogout() error {
	if !storage.Has(a.store, storage.TokenKey) {
		fmt.Fprintln(a.out, "Already logged out.") //nolint:errcheck
		return nil
	}
	a.sess.Logout()
	fmt.Fprintln(a.out, "Logged out.") //nolint:errcheck
	return nil
}

// requireSession bootstraps the session and fails when nobody is
// logged in.
func (a *app) requireSession() error {
	a.sess.Bootstrap(context.Background())
	if !a.sess.Snapshot().Authenticated {
		return errNotLoggedIn
	}
	return nil
}

func (a *app) runWhoami() error {
	if err := a.requireSession(); err != nil {
		return err
	}
	a.printUser()
	if exp, err := a.sess.TokenExpiry(); err == nil {
		fmt.Fprintln(a.out, a.tr.T("settings.session_expires", "time", exp.Local().Format("2006-01-02 15:04"))) //nolint:errcheck
	}
	return nil
}

func (a *app) printUser() {
	st := a.sess.Snapshot()
	if st.User == nil {
		return
	}
	fmt.Fprintf(a.out, "%s (%s)\n", st.User.Username, st.User.Email) //nolint:errcheck
}

func (a *app) runTranslate(args []string) error {
	fs := newFlagSet("translate")
	dir := fs.String("d", string(domain.DefaultDirection), "direction: ko2ja or ja2ko")
	all := fs.Bool("a", false, "also print the original and the first draft")
	fs.SetOutput(a.out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	direction, err := domain.ParseDirection(*dir)
	if err != nil {
		return err
	}

	text := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(text) == "" || text == "-" {
		if text, err = a.readAll(); err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("nothing to translate")
	}

	if err := a.requireSession(); err != nil {
		return err
	}
	res, err := a.api.Translate(context.Background(), text, direction)
	if err != nil {
		if client.IsUnauthorized(err) {
			return errors.New(a.tr.T("errors.login_required"))
		}
		a.log.Sugar().Debugw("translate failed", "error", err)
		return fmt.Errorf("%s: %w", a.tr.T("errors.translation_failed"), err)
	}

	if *all {
		fmt.Fprintf(a.out, "%s:\n%s\n\n%s:\n%s\n\n%s:\n", //nolint:errcheck
			a.tr.T("result.original"), res.Original,
			a.tr.T("result.initial"), res.Translated,
			a.tr.T("result.translated"))
	}
	fmt.Fprint(a.out, res.Reviewed) //nolint:errcheck
	if !strings.HasSuffix(res.Reviewed, "\n") {
		fmt.Fprintln(a.out) //nolint:errcheck
	}
	return nil
}

func (a *app) runHistory(args []string) error {
	fs := newFlagSet("history")
	limit := fs.Int("n", 20, "number of entries")
	fs.SetOutput(a.out)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.requireSession(); err != nil {
		return err
	}
	records, err := a.api.History(context.Background(), *limit)
	if err != nil {
		return fmt.Errorf("%s: %w", a.tr.T("errors.history_failed"), err)
	}
	if len(records) == 0 {
		fmt.Fprintln(a.out, a.tr.T("history.empty")) //nolint:errcheck
		return nil
	}
	for _, rec := range records {
		fmt.Fprintf(a.out, "%s  %s\n    → %s\n", //nolint:errcheck
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			oneLine(rec.OriginalText), oneLine(rec.ReviewedText))
	}
	return nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

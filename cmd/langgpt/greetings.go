package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

func printHelp(w io.Writer) {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7cc4fa")).
		Bold(true).
		Render("L A N G G P T")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("한국어 ⇄ 日本語")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"langgpt", "Interactive translator (TUI)"},
		{"langgpt login [-u user]", "Log in with username and password"},
		{"langgpt register -u -e", "Create an account, then log in"},
		{"langgpt logout", "Forget the stored token"},
		{"langgpt whoami", "Show the logged-in account"},
		{"langgpt translate [-d dir] [-a] text", "Translate text (ko2ja or ja2ko; - reads stdin)"},
		{"langgpt history [-n N]", "List recent translations"},
		{"langgpt version", "Show version"},
		{"langgpt help", "You are here"},
	}
	flags := []struct{ flag, desc string }{
		{"-api URL", "Backend root (LANGGPT_API_URL, default http://localhost:8000)"},
		{"-data-dir DIR", "Local state (LANGGPT_DATA_DIR, default ~/.langgpt)"},
		{"-log-file PATH", "Log destination, - for stderr (LANGGPT_LOG_FILE)"},
		{"-log-level LEVEL", "debug, info, warn, error (LANGGPT_LOG_LEVEL)"},
		{"-timeout DUR", "Per-request timeout (LANGGPT_TIMEOUT)"},
	}

	fmt.Fprintf(w, "\n  %s\n  %s\n\n  Commands:\n", title, tagline) //nolint:errcheck
	for _, c := range commands {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-38s", c.cmd)), descStyle.Render(c.desc)) //nolint:errcheck
	}
	fmt.Fprintf(w, "\n  Global flags (before the command):\n") //nolint:errcheck
	for _, f := range flags {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-38s", f.flag)), descStyle.Render(f.desc)) //nolint:errcheck
	}
	fmt.Fprintln(w) //nolint:errcheck
}

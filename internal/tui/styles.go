package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Palette.
const (
	colInk     = lipgloss.Color("#0f1720")
	colText    = lipgloss.Color("#e6edf3")
	colSoft    = lipgloss.Color("#b8c4cf")
	colMuted   = lipgloss.Color("#7d8a96")
	colFaint   = lipgloss.Color("#4a5560")
	colGhost   = lipgloss.Color("#2e3842")
	colEdge    = lipgloss.Color("#1c252e")
	colAccent  = lipgloss.Color("#5eead4")
	colDanger  = lipgloss.Color("#f87171")
	colSuccess = lipgloss.Color("#86efac")
)

type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(90*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// logoRamp runs from a deep teal to the accent colour.
var logoRamp = func() []lipgloss.Style {
	const steps = 12
	from := [3]float64{0x13, 0x4e, 0x4a}
	to := [3]float64{0x5e, 0xea, 0xd4}
	ramp := make([]lipgloss.Style, steps)
	for i := range ramp {
		f := float64(i) / float64(steps-1)
		var c [3]int
		for k := range c {
			c[k] = int(math.Round(from[k] + f*(to[k]-from[k])))
		}
		ramp[i] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])))
	}
	return ramp
}()

// renderShimmerLogo spells LANGGPT with a bright band sweeping left to
// right once per cycle.
func renderShimmerLogo(frame int) string {
	const (
		word  = "LANGGPT"
		cycle = 40
	)
	head := float64(frame%cycle)/float64(cycle)*float64(len(word)+4) - 2

	var b strings.Builder
	for i, ch := range word {
		glow := 1 - math.Abs(float64(i)-head)/2.5
		glow = math.Max(0.15, math.Min(1, glow))
		b.WriteString(logoRamp[int(glow*float64(len(logoRamp)-1))].Render(string(ch)))
		if i < len(word)-1 {
			b.WriteString(" ")
		}
	}
	return b.String()
}

var (
	dimStyle      = lipgloss.NewStyle().Foreground(colMuted)
	normalStyle   = lipgloss.NewStyle().Foreground(colSoft)
	metaStyle     = lipgloss.NewStyle().Foreground(colFaint)
	selectedStyle = lipgloss.NewStyle().Foreground(colText).Bold(true)
	accentStyle   = lipgloss.NewStyle().Foreground(colAccent)
	titleStyle    = lipgloss.NewStyle().Foreground(colAccent).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(colDanger)
	successStyle  = lipgloss.NewStyle().Foreground(colSuccess)
	resultStyle   = lipgloss.NewStyle().Foreground(colText).Bold(true)

	helpKeyStyle   = lipgloss.NewStyle().Foreground(colAccent)
	helpLabelStyle = lipgloss.NewStyle().Foreground(colFaint)

	sectionHeaderStyle    = lipgloss.NewStyle().Foreground(colMuted).Underline(true)
	inputPromptStyle      = lipgloss.NewStyle().Foreground(colAccent).Bold(true)
	inputPlaceholderStyle = lipgloss.NewStyle().Foreground(colGhost).Italic(true)

	buttonStyle     = lipgloss.NewStyle().Foreground(colInk).Background(colAccent).Padding(0, 1)
	buttonIdleStyle = lipgloss.NewStyle().Foreground(colMuted).Background(colEdge).Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colEdge).
			Padding(0, 1)
)

// helpEntry renders one "key label" pair.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpBar is the footer line shared by every view.
func helpBar(entries ...string) string {
	return " " + strings.Join(entries, "  ")
}

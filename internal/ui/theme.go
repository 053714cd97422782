// Package ui holds the look shared by the interactive list and the
// line-mode commands: one named theme of lipgloss styles and frame glyphs.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme names accepted by SetTheme.
const (
	ThemeClassic = "classic"
	ThemeNeon    = "neon"
	ThemeMono    = "mono"
)

// Theme bundles the styles, frame and symbols one look is drawn with.
type Theme struct {
	Name string

	Title    lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Due      lipgloss.Style
	Overdue  lipgloss.Style
	Selected lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor

	Bullet, Check, Cross, Prev, Next string
}

var current = classic()

// SetTheme switches the active theme. Unknown names fall back to classic;
// config validation rejects them before this point.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case ThemeNeon:
		current = neon()
	case ThemeMono:
		current = mono()
	default:
		current = classic()
	}
}

func Current() Theme { return current }

// Frame is the bordered box used around panels and input bars.
func (t Theme) Frame() lipgloss.Style {
	s := lipgloss.NewStyle().Border(t.Border).Padding(0, 1)
	if t.BorderColor != nil {
		s = s.BorderForeground(t.BorderColor)
	}
	return s
}

func fg(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }

func classic() Theme {
	return Theme{
		Name:        ThemeClassic,
		Title:       lipgloss.NewStyle().Bold(true),
		Muted:       lipgloss.NewStyle().Faint(true),
		Accent:      fg("12"),
		Success:     fg("42"),
		Error:       fg("9").Bold(true),
		Due:         fg("214"),
		Overdue:     fg("9"),
		Selected:    lipgloss.NewStyle().Bold(true).Reverse(true),
		Border:      lipgloss.NormalBorder(),
		BorderColor: lipgloss.Color("8"),
		Bullet:      "•", Check: "✔", Cross: "✖", Prev: "‹", Next: "›",
	}
}

func neon() Theme {
	return Theme{
		Name:        ThemeNeon,
		Title:       fg("13").Bold(true),
		Muted:       fg("8"),
		Accent:      fg("14"),
		Success:     fg("10"),
		Error:       fg("9").Bold(true),
		Due:         fg("11"),
		Overdue:     fg("9").Underline(true),
		Selected:    fg("13").Reverse(true),
		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("13"),
		Bullet:      "◆", Check: "✔", Cross: "✖", Prev: "◀", Next: "▶",
	}
}

// mono renders no color or attributes and frames with plain ASCII.
func mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:  ThemeMono,
		Title: plain, Muted: plain, Accent: plain, Success: plain,
		Error: plain, Due: plain, Overdue: plain, Selected: plain,
		Border: lipgloss.Border{
			Top: "-", Bottom: "-", Left: "|", Right: "|",
			TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
		},
		Bullet: "-", Check: "ok", Cross: "error:", Prev: "<", Next: ">",
	}
}

package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/kulku/internal/digitransit"
)

// Theme defines colors for both views.
type Theme struct {
	Name string

	// Base colors
	Surface string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Warning string

	// Leg backgrounds keyed by transport mode
	ModeColors map[digitransit.Mode]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)).
			Bold(true),

		Border:      lipgloss.Color(t.Border),
		BorderFocus: lipgloss.Color(t.BorderFocus),

		modeColors: t.ModeColors,
		text:       t.Text,
		muted:      t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	WarningText lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Selected lipgloss.Style

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	modeColors map[digitransit.Mode]string
	text       string
	muted      string
}

// LegStyle returns the block style for a leg of the given mode.
func (s Styles) LegStyle(mode digitransit.Mode) lipgloss.Style {
	color := s.modeColors[mode.Normalize()]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color(s.text))
}

// StopStyle returns the reversed style used for stop names on a leg.
func (s Styles) StopStyle(mode digitransit.Mode) lipgloss.Style {
	return s.LegStyle(mode).Reverse(true)
}

// Theme definitions

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Surface: "#192330", // bg1

		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1

		Border:      "#39506d", // bg4
		BorderFocus: "#719cd6", // blue

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6", // blue
		Warning: "#dbc074", // yellow

		ModeColors: map[digitransit.Mode]string{
			digitransit.ModeWalk:    "#131a24", // bg0
			digitransit.ModeBicycle: "#212e3f", // bg2
			digitransit.ModeBus:     "#39506d", // bg4
			digitransit.ModeTram:    "#3d6b57", // dim green
			digitransit.ModeRail:    "#6b4f91", // dim magenta
			digitransit.ModeSubway:  "#a5623a", // dim orange
			digitransit.ModeFerry:   "#2f6f72", // dim cyan
		},
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name: "Kanagawa",

		Surface: "#1F1F28", // sumiInk3

		SelectionBg:   "#2D4F67", // waveBlue1
		SelectionText: "#DCD7BA", // fujiWhite

		Border:      "#54546D", // sumiInk6
		BorderFocus: "#7E9CD8", // crystalBlue

		Text:    "#DCD7BA", // fujiWhite
		Muted:   "#C8C093", // oldWhite
		Faint:   "#727169", // fujiGray
		Accent:  "#7E9CD8", // crystalBlue
		Warning: "#E6C384", // carpYellow

		ModeColors: map[digitransit.Mode]string{
			digitransit.ModeWalk:    "#16161D", // sumiInk0
			digitransit.ModeBicycle: "#2A2A37", // sumiInk4
			digitransit.ModeBus:     "#223249", // waveBlue1
			digitransit.ModeTram:    "#2B3328", // winterGreen
			digitransit.ModeRail:    "#4F3F6B", // dim oniViolet
			digitransit.ModeSubway:  "#7A4B2A", // dim surimiOrange
			digitransit.ModeFerry:   "#252535", // winterBlue
		},
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Surface: "#0f172a", // slate-900

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Warning: "#f59e0b", // amber-500

		ModeColors: map[digitransit.Mode]string{
			digitransit.ModeWalk:    "#020617", // slate-950
			digitransit.ModeBicycle: "#1e293b", // slate-800
			digitransit.ModeBus:     "#0369a1", // sky-700
			digitransit.ModeTram:    "#15803d", // green-700
			digitransit.ModeRail:    "#a21caf", // fuchsia-700
			digitransit.ModeSubway:  "#c2410c", // orange-700
			digitransit.ModeFerry:   "#0e7490", // cyan-700
		},
	}
}

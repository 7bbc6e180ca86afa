package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Background lipgloss.Color
	Panel      lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Highlight  lipgloss.Color
	Star       lipgloss.Color
	Orbit      lipgloss.Color
	Warning    lipgloss.Color
}

var (
	ThemeDark = Theme{
		Name:       "dark",
		Background: lipgloss.Color("#000000"),
		Panel:      lipgloss.Color("#111111"),
		Text:       lipgloss.Color("#e8e8e8"),
		Muted:      lipgloss.Color("#666677"),
		Accent:     lipgloss.Color("#ffcc00"),
		Highlight:  lipgloss.Color("#00ccff"),
		Star:       lipgloss.Color("#bbbbbb"),
		Orbit:      lipgloss.Color("#333344"),
		Warning:    lipgloss.Color("#ffaa00"),
	}

	ThemeLight = Theme{
		Name:       "light",
		Background: lipgloss.Color("#f0f0f0"),
		Panel:      lipgloss.Color("#f0f0f0"),
		Text:       lipgloss.Color("#111111"),
		Muted:      lipgloss.Color("#888888"),
		Accent:     lipgloss.Color("#cc6600"),
		Highlight:  lipgloss.Color("#0055cc"),
		Star:       lipgloss.Color("#999999"),
		Orbit:      lipgloss.Color("#cccccc"),
		Warning:    lipgloss.Color("#cc4400"),
	}

	Themes = []Theme{ThemeDark, ThemeLight}
)

// GetTheme returns a theme by name, falling back to dark.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDark
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Blend mixes two hex colours in Lab space; t=0 gives a, t=1 gives b.
// Unparseable colours fall back to b.
func Blend(a, b lipgloss.Color, t float64) lipgloss.Color {
	ca, err := colorful.Hex(string(a))
	if err != nil {
		return b
	}
	cb, err := colorful.Hex(string(b))
	if err != nil {
		return a
	}
	return lipgloss.Color(ca.BlendLab(cb, t).Clamped().Hex())
}

// BodyColor returns the body's colour, lifted toward the theme's text colour
// when it would be too dark to read against the background.
func BodyColor(hex string, th Theme) lipgloss.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return th.Text
	}
	bg, err := colorful.Hex(string(th.Background))
	if err != nil {
		return lipgloss.Color(hex)
	}
	l, _, _ := c.Lab()
	bl, _, _ := bg.Lab()
	if d := l - bl; d < 0.35 && d > -0.35 {
		return Blend(lipgloss.Color(hex), th.Text, 0.35)
	}
	return lipgloss.Color(hex)
}

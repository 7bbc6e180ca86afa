package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const panelWidth = 44

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Header   lipgloss.Style
	Canvas   lipgloss.Style
	Panel    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Active   lipgloss.Style
	Graph    lipgloss.Style
	Help     lipgloss.Style
	Running  lipgloss.Style
	Paused   lipgloss.Style
	Tooltip  lipgloss.Style
	Subtle   lipgloss.Style
	Selected lipgloss.Style
}

func NewStyles(th Theme) Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Foreground(th.Accent).Bold(true).MarginBottom(1),
		Canvas:   lipgloss.NewStyle().Padding(canvasPadY, canvasPadX),
		Panel:    lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(th.Muted).Background(th.Panel).Foreground(th.Text).Padding(1, 2).Width(panelWidth),
		Label:    lipgloss.NewStyle().Foreground(th.Muted).Width(10),
		Value:    lipgloss.NewStyle().Foreground(th.Text),
		Active:   lipgloss.NewStyle().Foreground(th.Highlight).Bold(true),
		Graph:    lipgloss.NewStyle().Foreground(th.Highlight).Padding(1, 0),
		Help:     lipgloss.NewStyle().Foreground(th.Muted).MarginTop(1),
		Running:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00cc66")),
		Paused:   lipgloss.NewStyle().Bold(true).Foreground(th.Warning),
		Tooltip:  lipgloss.NewStyle().Foreground(th.Accent).Bold(true),
		Subtle:   lipgloss.NewStyle().Foreground(th.Muted),
		Selected: lipgloss.NewStyle().Foreground(th.Highlight).Bold(true),
	}
}

// Slider renders a speed slider like "[=====-----] 0.010".
func Slider(v, min, max float64, width int) string {
	ratio := 0.0
	if max > min {
		ratio = (v - min) / (max - min)
	}
	if ratio > 1 {
		ratio = 1
	} else if ratio < 0 {
		ratio = 0
	}
	filled := int(ratio*float64(width) + 0.5)
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "] " + fmt.Sprintf("%.3f", v)
}

// Separator draws a muted rule with a diamond in the middle.
func Separator(st Styles, width int) string {
	if width < 8 {
		width = 8
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return st.Subtle.Render(left + " ◆ " + right)
}

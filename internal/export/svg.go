package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/orrery/internal/viz"
)

// Braille dot-to-bit mapping
var pixelMap = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// CanvasToSVG converts a Braille canvas to SVG, one circle per dot, grouped
// by cell colour.
func CanvasToSVG(canvas *viz.Canvas, scale float64, th viz.Theme) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char
	dotRadius := scale * 0.4

	groups := map[lipgloss.Color]*strings.Builder{}
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			color := canvas.Colors[row][col]
			if color == "" {
				color = th.Text
			}
			g, ok := groups[color]
			if !ok {
				g = &strings.Builder{}
				groups[color] = g
			}

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(g, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
					}
				}
			}
		}
	}

	colors := make([]string, 0, len(groups))
	for c := range groups {
		colors = append(colors, string(c))
	}
	sort.Strings(colors)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, th.Background)
	for _, c := range colors {
		fmt.Fprintf(&sb, "<g fill=\"%s\">\n%s</g>\n", c, groups[lipgloss.Color(c)].String())
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// OrbitsToSVG draws each body's recorded path seen from above (x right,
// z down), one stroked path per body in its own colour.
func OrbitsToSVG(frames []Frame, colors map[string]string, size int, th viz.Theme) string {
	if len(frames) < 2 || len(frames[0].Bodies) == 0 {
		return ""
	}

	extent := 0.0
	for _, f := range frames {
		for _, b := range f.Bodies {
			extent = max(extent, abs(b.X), abs(b.Z))
		}
	}
	if extent == 0 {
		extent = 1
	}
	extent *= 1.1
	half := float64(size) / 2
	toPx := func(v float64) float64 { return half + v/extent*half }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, size, size, size, size, th.Background)

	for i, b := range frames[0].Bodies {
		stroke := colors[b.Name]
		if stroke == "" {
			stroke = string(th.Text)
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)
		for j, f := range frames {
			s := f.Bodies[i]
			if j == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", toPx(s.X), toPx(s.Z))
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", toPx(s.X), toPx(s.Z))
			}
		}
		sb.WriteString("\"/>\n")
	}
	sb.WriteString("</svg>")
	return sb.String()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

package gui

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/pick"
)

const (
	// height of the control strip under the 3D view
	controlsHeight = 150

	sliderColumns = 4
	sliderHeight  = 6
	rowHeight     = 44
	marginX       = 30
	buttonWidth   = 110
	buttonHeight  = 28
)

// viewRect is the area the 3D scene is drawn into, in window pixels.
func viewRect(w, h int32) pick.Rect {
	vh := h - controlsHeight
	if vh < 1 {
		vh = 1
	}
	return pick.Rect{W: float64(w), H: float64(vh)}
}

// sliderRect lays planet sliders out in rows of four across the control strip.
func sliderRect(i int, w, h int32) rl.Rectangle {
	colWidth := float32(w-2*marginX-buttonWidth-20) / sliderColumns
	col, row := i%sliderColumns, i/sliderColumns
	top := float32(h-controlsHeight) + 34
	return rl.Rectangle{
		X:      marginX + float32(col)*colWidth,
		Y:      top + float32(row*rowHeight) + 18,
		Width:  colWidth - 30,
		Height: sliderHeight,
	}
}

// hitRect widens a thin slider track so it is easy to grab.
func hitRect(r rl.Rectangle) rl.Rectangle {
	return rl.Rectangle{X: r.X - 6, Y: r.Y - 10, Width: r.Width + 12, Height: r.Height + 20}
}

func buttonRect(i int, w, h int32) rl.Rectangle {
	return rl.Rectangle{
		X:      float32(w - marginX - buttonWidth),
		Y:      float32(h-controlsHeight) + 34 + float32(i*(buttonHeight+8)),
		Width:  buttonWidth,
		Height: buttonHeight,
	}
}

// sliderValue maps a pointer x inside the track onto [lo, hi].
func sliderValue(r rl.Rectangle, x float32, lo, hi float64) float64 {
	if r.Width <= 0 {
		return lo
	}
	f := float64((x - r.X) / r.Width)
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	return lo + f*(hi-lo)
}

func sliderFraction(v, lo, hi float64) float32 {
	if hi <= lo {
		return 0
	}
	f := (v - lo) / (hi - lo)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return float32(f)
}

// rgba converts a theme or body hex colour, falling back when it does not parse.
func rgba(hex lipgloss.Color, fallback color.RGBA) color.RGBA {
	c, err := colorful.Hex(string(hex))
	if err != nil {
		return fallback
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

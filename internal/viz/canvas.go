package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a grid of braille cells, each holding 2x4 sub-pixels. Every cell
// carries one foreground colour (the last one drawn into it) and may be
// overwritten by a text label.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]lipgloss.Color
	Text          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]lipgloss.Color, h),
		Text:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]lipgloss.Color, w)
		c.Text[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// SubWidth and SubHeight are the canvas size in sub-pixels.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Aspect is the sub-pixel aspect ratio. Braille dots are roughly square on
// a terminal whose cells are twice as tall as wide.
func (c *Canvas) Aspect() float64 {
	return float64(c.SubWidth()) / float64(c.SubHeight())
}

func (c *Canvas) cell(x, y int) (col, row int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return col, row, true
}

// Set sets a pixel at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	col, row, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// SetColor sets a pixel and gives its cell the colour.
func (c *Canvas) SetColor(x, y int, color lipgloss.Color) {
	col, row, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Colors[row][col] = color
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	col, row, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) IsSet(x, y int) bool {
	col, row, ok := c.cell(x, y)
	if !ok {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Colors[i][j] = ""
			c.Text[i][j] = 0
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, color lipgloss.Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.SetColor(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillDisk fills every sub-pixel within r of (cx, cy). A disk smaller than
// a sub-pixel still sets its centre.
func (c *Canvas) FillDisk(cx, cy, r float64, color lipgloss.Color) {
	x0, y0 := int(cx), int(cy)
	c.SetColor(x0, y0, color)
	if r < 0.5 {
		return
	}
	ri := int(r) + 1
	r2 := r * r
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			fx, fy := float64(x0+dx)+0.5-cx, float64(y0+dy)+0.5-cy
			if fx*fx+fy*fy <= r2 {
				c.SetColor(x0+dx, y0+dy, color)
			}
		}
	}
}

// Label writes text into cells starting at (col, row), clipped at the edge.
func (c *Canvas) Label(col, row int, text string, color lipgloss.Color) {
	if row < 0 || row >= c.Height {
		return
	}
	for _, r := range text {
		if col >= c.Width {
			return
		}
		if col >= 0 {
			c.Text[row][col] = r
			c.Colors[row][col] = color
		}
		col++
	}
}

// String renders the canvas without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := range c.Grid {
		for col, r := range c.Grid[row] {
			if t := c.Text[row][col]; t != 0 {
				r = t
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render draws the canvas with the theme's background, grouping cells of the
// same colour into one styled run.
func (c *Canvas) Render(th Theme) string {
	base := lipgloss.NewStyle().Background(th.Background)
	var b strings.Builder
	var run strings.Builder
	for row := range c.Grid {
		current := lipgloss.Color("")
		flush := func() {
			if run.Len() == 0 {
				return
			}
			fg := current
			if fg == "" {
				fg = th.Text
			}
			b.WriteString(base.Foreground(fg).Render(run.String()))
			run.Reset()
		}
		for col, r := range c.Grid[row] {
			if t := c.Text[row][col]; t != 0 {
				r = t
			}
			color := c.Colors[row][col]
			if color != current {
				flush()
				current = color
			}
			run.WriteRune(r)
		}
		flush()
		if row < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

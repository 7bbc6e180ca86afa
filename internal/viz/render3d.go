package viz

import (
	"math"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/scene"
)

const orbitSegments = 96

// Projector maps world points onto canvas sub-pixels through a camera.
type Projector struct {
	vp    mgl64.Mat4
	w, h  float64
	focal float64
	near  float64
}

func NewProjector(cam *camera.Camera, c *Canvas) Projector {
	h := float64(c.SubHeight())
	return Projector{
		vp:    cam.ViewProjection(),
		w:     float64(c.SubWidth()),
		h:     h,
		focal: h / 2 / math.Tan(mgl64.DegToRad(cam.FOV)/2),
		near:  cam.Near,
	}
}

// Project returns sub-pixel coordinates and the view depth of p. ok is false
// for points behind the near plane.
func (p Projector) Project(v mgl64.Vec3) (x, y, depth float64, ok bool) {
	clip := p.vp.Mul4x1(v.Vec4(1))
	w := clip.W()
	if w < p.near {
		return 0, 0, 0, false
	}
	nx, ny := clip.X()/w, clip.Y()/w
	return (nx + 1) / 2 * p.w, (1 - ny) / 2 * p.h, w, true
}

// Radius is the on-canvas radius in sub-pixels of a sphere at the given depth.
func (p Projector) Radius(r, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return r * p.focal / depth
}

func (p Projector) inView(x, y float64) bool {
	return x >= 0 && y >= 0 && x < p.w && y < p.h
}

// Tooltip is a label drawn at a cell of the canvas.
type Tooltip struct {
	Text     string
	Col, Row int
	Visible  bool
}

type RenderOptions struct {
	Orbits  bool
	Tooltip Tooltip
}

// RenderScene draws stars, orbit rings and bodies, far bodies first so nearer
// ones cover them.
func RenderScene(c *Canvas, s *scene.Scene, th Theme, opts RenderOptions) {
	if c == nil || s == nil {
		return
	}
	c.Clear()
	p := NewProjector(s.Camera(), c)

	for _, st := range s.Stars() {
		if x, y, _, ok := p.Project(st); ok && p.inView(x, y) {
			c.SetColor(int(x), int(y), th.Star)
		}
	}

	if opts.Orbits {
		for _, b := range s.Planets() {
			drawRing(c, p, b.Distance, Blend(th.Orbit, BodyColor(b.Color, th), 0.2))
		}
	}

	type projected struct {
		body   *orbit.Body
		x, y   float64
		depth  float64
		radius float64
	}
	var drawn []projected
	for _, b := range s.Bodies() {
		x, y, d, ok := p.Project(b.Position)
		if !ok {
			continue
		}
		r := p.Radius(b.Radius, d)
		if x+r < 0 || y+r < 0 || x-r >= p.w || y-r >= p.h {
			continue
		}
		drawn = append(drawn, projected{b, x, y, d, r})
	}
	sort.Slice(drawn, func(i, j int) bool { return drawn[i].depth > drawn[j].depth })
	for _, d := range drawn {
		c.FillDisk(d.x, d.y, d.radius, BodyColor(d.body.Color, th))
	}

	if t := opts.Tooltip; t.Visible && t.Text != "" {
		c.Label(t.Col, t.Row, " "+t.Text+" ", th.Accent)
	}
}

func drawRing(c *Canvas, p Projector, radius float64, color lipgloss.Color) {
	var px, py int
	prev := false
	for i := 0; i <= orbitSegments; i++ {
		a := float64(i) / orbitSegments * 2 * math.Pi
		x, y, _, ok := p.Project(mgl64.Vec3{radius * math.Cos(a), 0, radius * math.Sin(a)})
		ok = ok && math.Abs(x) < 4*p.w && math.Abs(y) < 4*p.h
		if ok && prev {
			c.DrawLine(px, py, int(x), int(y), color)
		}
		px, py, prev = int(x), int(y), ok
	}
}

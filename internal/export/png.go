package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/pick"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/viz"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type SnapshotOptions struct {
	Width, Height int
	Labels        bool
}

// Snapshot rasterizes the scene from its current camera: stars as single
// pixels, bodies as flat disks painted far to near, and optional name labels.
func Snapshot(s *scene.Scene, th viz.Theme, opts SnapshotOptions) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("snapshot size %dx%d", opts.Width, opts.Height)
	}
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{rgba(string(th.Background), color.Black)}, image.Point{}, draw.Src)

	s.SetAspect(float64(opts.Width) / float64(opts.Height))
	cam := s.Camera()
	rect := pick.Rect{W: float64(opts.Width), H: float64(opts.Height)}
	focal := float64(opts.Height) / 2 / math.Tan(cam.FOV*math.Pi/360)

	star := rgba(string(th.Star), color.White)
	for _, st := range s.Stars() {
		x, y, _, ok := pick.Project(cam, st)
		if !ok || math.Abs(x) > 1 || math.Abs(y) > 1 {
			continue
		}
		px, py := pick.ToPointer(x, y, rect)
		img.Set(int(px), int(py), star)
	}

	type disk struct {
		body   *orbit.Body
		x, y   float64
		depth  float64
		radius float64
	}
	var disks []disk
	for _, b := range s.Bodies() {
		x, y, depth, ok := pick.Project(cam, b.Position)
		if !ok {
			continue
		}
		px, py := pick.ToPointer(x, y, rect)
		disks = append(disks, disk{b, px, py, depth, math.Max(1, b.Radius*focal/depth)})
	}
	sort.Slice(disks, func(i, j int) bool { return disks[i].depth > disks[j].depth })
	for _, d := range disks {
		fillDisk(img, d.x, d.y, d.radius, rgba(d.body.Color, color.White))
	}

	if opts.Labels {
		drawer := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(rgba(string(th.Text), color.White)),
			Face: basicfont.Face7x13,
		}
		for _, d := range disks {
			drawer.Dot = fixed.Point26_6{
				X: fixed.I(int(d.x + d.radius + 3)),
				Y: fixed.I(int(d.y) + 4),
			}
			drawer.DrawString(d.body.Name)
		}
	}
	return img, nil
}

// WritePNG renders a snapshot and encodes it as PNG.
func WritePNG(w io.Writer, s *scene.Scene, th viz.Theme, opts SnapshotOptions) error {
	img, err := Snapshot(s, th, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func fillDisk(img *image.RGBA, cx, cy, r float64, c color.Color) {
	b := img.Bounds()
	x0, x1 := max(b.Min.X, int(cx-r)), min(b.Max.X-1, int(cx+r)+1)
	y0, y1 := max(b.Min.Y, int(cy-r)), min(b.Max.Y-1, int(cy+r)+1)
	r2 := r * r
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r2 {
				img.Set(x, y, c)
			}
		}
	}
}

func rgba(hex string, fallback color.Color) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

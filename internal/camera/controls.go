package camera

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
)

// Controls orbits a camera around its look-at point. Position is kept in
// spherical coordinates (radius, azimuth around Y, elevation from the XZ
// plane); drags and dollies move target values and Update eases the camera
// toward them with a damped spring.
type Controls struct {
	radius, azimuth, elevation    float64
	tRadius, tAzimuth, tElevation float64
	vRadius, vAzimuth, vElevation float64

	spring harmonica.Spring

	minRadius, maxRadius       float64
	minElevation, maxElevation float64
	sensitivity                float64
	dollyFactor                float64

	pressed        bool
	dragging       bool
	startX, startY float64
	lastX, lastY   float64
	dragThreshold  float64
	synced         bool
}

type ControlsOption func(*Controls)

func WithDistanceLimits(min, max float64) ControlsOption {
	return func(c *Controls) {
		if min > 0 && max > min {
			c.minRadius, c.maxRadius = min, max
		}
	}
}

// WithDamping sets the spring's damping ratio. Values below 0.5 oscillate
// visibly so they are raised to that floor.
func WithDamping(fps int, damping float64) ControlsOption {
	return func(c *Controls) {
		if fps <= 0 {
			fps = 60
		}
		c.spring = harmonica.NewSpring(harmonica.FPS(fps), 8.0, math.Max(0.5, damping*4))
	}
}

// WithSensitivity sets radians of rotation per pointer unit of drag and the
// pointer distance a press must travel before it counts as a drag.
func WithSensitivity(radiansPerUnit, dragThreshold float64) ControlsOption {
	return func(c *Controls) {
		if radiansPerUnit > 0 {
			c.sensitivity = radiansPerUnit
		}
		if dragThreshold >= 0 {
			c.dragThreshold = dragThreshold
		}
	}
}

func NewControls(opts ...ControlsOption) *Controls {
	c := &Controls{
		spring:        harmonica.NewSpring(harmonica.FPS(60), 8.0, 1.0),
		minRadius:     2,
		maxRadius:     100,
		minElevation:  -math.Pi/2 + 0.05,
		maxElevation:  math.Pi/2 - 0.05,
		sensitivity:   0.01,
		dollyFactor:   0.9,
		dragThreshold: 3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sync reads the camera's current offset into both current and target
// coordinates and stops any residual motion.
func (c *Controls) Sync(cam *Camera) {
	off := cam.Position.Sub(cam.LookAt)
	r := off.Len()
	if r < 1e-9 {
		r = c.minRadius
		off = mgl64.Vec3{0, 0, r}
	}
	c.radius = r
	c.elevation = math.Asin(mgl64.Clamp(off.Y()/r, -1, 1))
	c.azimuth = math.Atan2(off.X(), off.Z())
	c.tRadius, c.tAzimuth, c.tElevation = c.radius, c.azimuth, c.elevation
	c.vRadius, c.vAzimuth, c.vElevation = 0, 0, 0
	c.synced = true
}

// BeginDrag records a pointer press. The press only becomes a drag once the
// pointer travels past the drag threshold.
func (c *Controls) BeginDrag(x, y float64) {
	c.pressed = true
	c.dragging = false
	c.startX, c.startY = x, y
	c.lastX, c.lastY = x, y
}

func (c *Controls) Drag(x, y float64) {
	if !c.pressed {
		return
	}
	if !c.dragging && math.Hypot(x-c.startX, y-c.startY) > c.dragThreshold {
		c.dragging = true
	}
	if c.dragging {
		c.tAzimuth -= (x - c.lastX) * c.sensitivity
		c.tElevation = mgl64.Clamp(c.tElevation+(y-c.lastY)*c.sensitivity, c.minElevation, c.maxElevation)
	}
	c.lastX, c.lastY = x, y
}

func (c *Controls) EndDrag() {
	c.pressed = false
}

func (c *Controls) Pressed() bool { return c.pressed }

// Dragging reports a drag in progress: the button is held and the pointer
// has moved past the drag threshold.
func (c *Controls) Dragging() bool { return c.pressed && c.dragging }

// DragEnded reports that the last press turned into a drag and has been
// released. It stays true until the next BeginDrag.
func (c *Controls) DragEnded() bool { return !c.pressed && c.dragging }

// Dolly moves the camera toward (positive steps) or away from the look-at.
func (c *Controls) Dolly(steps float64) {
	c.tRadius = mgl64.Clamp(c.tRadius*math.Pow(c.dollyFactor, steps), c.minRadius, c.maxRadius)
}

// Settled reports whether the spring has come to rest on its targets.
func (c *Controls) Settled() bool {
	const eps = 1e-4
	return math.Abs(c.radius-c.tRadius) < eps &&
		math.Abs(c.azimuth-c.tAzimuth) < eps &&
		math.Abs(c.elevation-c.tElevation) < eps &&
		math.Abs(c.vRadius)+math.Abs(c.vAzimuth)+math.Abs(c.vElevation) < eps
}

// Update eases toward the target coordinates and places the camera. When
// nothing is moving it re-syncs from the camera instead, so a camera
// transition in progress is never overridden.
func (c *Controls) Update(cam *Camera) {
	if !c.synced || (!(c.pressed && c.dragging) && c.Settled()) {
		c.Sync(cam)
		c.clampRadius(cam)
		return
	}
	c.radius, c.vRadius = c.spring.Update(c.radius, c.vRadius, c.tRadius)
	c.azimuth, c.vAzimuth = c.spring.Update(c.azimuth, c.vAzimuth, c.tAzimuth)
	c.elevation, c.vElevation = c.spring.Update(c.elevation, c.vElevation, c.tElevation)
	c.place(cam)
}

func (c *Controls) Radius() float64 { return c.radius }

// Stop drops any residual spring motion; the next Update re-syncs from the camera.
func (c *Controls) Stop() {
	c.synced = false
}

func (c *Controls) clampRadius(cam *Camera) {
	r := mgl64.Clamp(c.radius, c.minRadius, c.maxRadius)
	if r == c.radius {
		return
	}
	c.radius, c.tRadius = r, r
	c.place(cam)
}

func (c *Controls) place(cam *Camera) {
	ce := math.Cos(c.elevation)
	cam.Position = cam.LookAt.Add(mgl64.Vec3{
		c.radius * ce * math.Sin(c.azimuth),
		c.radius * math.Sin(c.elevation),
		c.radius * ce * math.Cos(c.azimuth),
	})
}

package scene

import (
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/pick"
)

// Scene owns every piece of mutable state the frontends share: bodies,
// camera, transition, controls, hover, pause flag and theme. It is not safe
// for concurrent use; a frontend drives it from its single event loop.
type Scene struct {
	system     *orbit.System
	cam        *camera.Camera
	transition *camera.Transition
	controls   *camera.Controls
	resolver   pick.Resolver
	hover      pick.Hover

	stars      []mgl64.Vec3
	home       camera.Goal
	zoomFactor float64
	speeds     config.ControlsConfig

	paused bool
	theme  string
	frames uint64

	logger *log.Logger
}

type Option func(*Scene)

func WithLogger(l *log.Logger) Option {
	return func(s *Scene) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIntersector replaces the analytic ray-sphere test used for picking.
func WithIntersector(in pick.Intersector) Option {
	return func(s *Scene) { s.resolver.Intersector = in }
}

func New(cfg *config.Config, opts ...Option) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.ResolveSeed()))

	var orbitOpts []orbit.Option
	if cfg.NormalizeAngles {
		orbitOpts = append(orbitOpts, orbit.WithAngleNormalization(true))
	}
	system, err := orbit.NewSystem(cfg.OrbitBodies(rng), orbitOpts...)
	if err != nil {
		return nil, fmt.Errorf("build system: %w", err)
	}

	cc := cfg.Camera
	cam := camera.New(vec(cc.Position), vec(cc.LookAt))
	cam.FOV, cam.Near, cam.Far = cc.FOV, cc.Near, cc.Far

	s := &Scene{
		system:     system,
		cam:        cam,
		transition: camera.NewTransition(cfg.Transition.Alpha, cfg.Transition.Epsilon),
		controls: camera.NewControls(
			camera.WithDistanceLimits(cc.MinDistance, cc.MaxDistance),
			camera.WithDamping(cfg.FPS, cc.Damping),
		),
		stars:      starfield(rng, cfg.Stars.Count, cfg.Stars.Spread),
		home:       camera.Goal{Position: cam.Position, LookAt: cam.LookAt},
		zoomFactor: cfg.Transition.ZoomFactor,
		speeds:     cfg.Controls,
		theme:      cfg.Theme,
		logger:     log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.controls.Sync(cam)
	return s, nil
}

func vec(a [3]float64) mgl64.Vec3 { return mgl64.Vec3{a[0], a[1], a[2]} }

func starfield(rng *rand.Rand, n int, spread float64) []mgl64.Vec3 {
	stars := make([]mgl64.Vec3, n)
	for i := range stars {
		stars[i] = mgl64.Vec3{
			(rng.Float64() - 0.5) * spread,
			(rng.Float64() - 0.5) * spread,
			(rng.Float64() - 0.5) * spread,
		}
	}
	return stars
}

// Frame runs one tick: orbits advance unless paused, then the orbit controls
// ease the camera. Transition steps are scheduled separately by the frontend.
func (s *Scene) Frame() {
	s.frames++
	s.system.Tick(1, s.paused)
	s.controls.Update(s.cam)
}

// StepTransition advances the transition scheduled under gen and reports
// whether the frontend should schedule another step.
func (s *Scene) StepTransition(gen uint64) bool {
	if gen != s.transition.Generation() {
		return false
	}
	more := s.transition.Step(gen, s.cam)
	s.controls.Sync(s.cam)
	if !more {
		s.logger.Printf("transition %d settled after %d steps", gen, s.transition.Steps())
	}
	return more
}

func (s *Scene) TogglePause() bool {
	s.paused = !s.paused
	s.logger.Printf("paused=%v", s.paused)
	return s.paused
}

func (s *Scene) Paused() bool { return s.paused }

// SetSpeed clamps v into the slider range, snaps it to the slider step and
// applies it. It returns the value actually set.
func (s *Scene) SetSpeed(name string, v float64) (float64, error) {
	v = s.snap(v)
	if err := s.system.SetSpeed(name, v); err != nil {
		return 0, err
	}
	return v, nil
}

// NudgeSpeed moves a body's speed by a number of slider steps.
func (s *Scene) NudgeSpeed(name string, steps int) (float64, error) {
	cur, err := s.system.Speed(name)
	if err != nil {
		return 0, err
	}
	return s.SetSpeed(name, cur+float64(steps)*s.speeds.SpeedStep)
}

func (s *Scene) snap(v float64) float64 {
	lo, hi, step := s.speeds.SpeedMin, s.speeds.SpeedMax, s.speeds.SpeedStep
	v = mgl64.Clamp(v, lo, hi)
	v = lo + math.Round((v-lo)/step)*step
	v = math.Round(v*1e9) / 1e9
	return mgl64.Clamp(v, lo, hi)
}

func (s *Scene) SpeedRange() config.ControlsConfig { return s.speeds }

func (s *Scene) Speed(name string) (float64, error) { return s.system.Speed(name) }

// PointerMove resolves the body under the pointer and reports what the
// tooltip should do. The sun blocks picking but shows no tooltip.
func (s *Scene) PointerMove(px, py float64, rect pick.Rect) pick.HoverEvent {
	hit, ok := s.resolve(px, py, rect)
	if ok {
		if b, found := s.system.Body(hit.ID()); found && b.Static() {
			ok = false
		}
	}
	return s.hover.Update(hit, ok, px, py)
}

// Hovered is the name of the body under the pointer, or "".
func (s *Scene) Hovered() string { return s.hover.Current() }

// Click zooms to the body under the pointer, or resets the camera when the
// pointer is over empty space. A release that ends a drag is ignored.
func (s *Scene) Click(px, py float64, rect pick.Rect) (uint64, bool) {
	if s.controls.DragEnded() {
		return 0, false
	}
	if _, _, inside := pick.NDC(px, py, rect); !inside {
		return 0, false
	}
	if hit, ok := s.resolve(px, py, rect); ok {
		gen, err := s.ZoomTo(hit.ID())
		return gen, err == nil
	}
	return s.ResetCamera(), true
}

func (s *Scene) resolve(px, py float64, rect pick.Rect) (pick.Hit, bool) {
	return s.resolver.Resolve(px, py, rect, s.cam, s.Pickables())
}

// ZoomTo starts a transition that frames the named body from the side the
// camera currently views it.
func (s *Scene) ZoomTo(name string) (uint64, error) {
	b, ok := s.system.Body(name)
	if !ok {
		return 0, &orbit.BodyError{Name: name, Wrapped: orbit.ErrUnknownBody}
	}
	goal := camera.ZoomGoal(s.cam, b.Position, b.Radius, s.zoomFactor)
	gen := s.start(goal)
	s.logger.Printf("zoom to %s (gen %d)", name, gen)
	return gen, nil
}

// ResetCamera starts a transition back to the home view.
func (s *Scene) ResetCamera() uint64 {
	gen := s.start(camera.ResetGoal(s.home))
	s.logger.Printf("reset camera (gen %d)", gen)
	return gen
}

func (s *Scene) start(goal camera.Goal) uint64 {
	s.controls.Stop()
	return s.transition.Start(goal, s.cam)
}

func (s *Scene) BeginDrag(x, y float64) { s.controls.BeginDrag(x, y) }

// Drag orbits the camera. Moving with the button held past the drag
// threshold cancels any transition in flight; plain pointer motion does not.
func (s *Scene) Drag(x, y float64) {
	s.controls.Drag(x, y)
	if s.controls.Dragging() && s.transition.Active() {
		s.transition.Cancel()
		s.logger.Printf("transition cancelled by drag")
	}
}

func (s *Scene) EndDrag() { s.controls.EndDrag() }

// Dolly moves the camera toward or away from its look-at point.
func (s *Scene) Dolly(steps float64) {
	if s.transition.Active() {
		s.transition.Cancel()
	}
	s.controls.Dolly(steps)
}

// ToggleTheme switches between dark and light and returns the new theme.
func (s *Scene) ToggleTheme() string {
	if s.theme == "dark" {
		s.theme = "light"
	} else {
		s.theme = "dark"
	}
	s.logger.Printf("theme=%s", s.theme)
	return s.theme
}

func (s *Scene) Theme() string { return s.theme }

// SetAspect updates the projection after the render surface is resized.
func (s *Scene) SetAspect(a float64) {
	if a > 0 && !math.IsInf(a, 0) {
		s.cam.Aspect = a
	}
}

// Pickables returns every body as a pick target, sun included.
func (s *Scene) Pickables() []pick.Target {
	bodies := s.system.Bodies()
	out := make([]pick.Target, len(bodies))
	for i, b := range bodies {
		out[i] = b
	}
	return out
}

func (s *Scene) Camera() *camera.Camera         { return s.cam }
func (s *Scene) Transition() *camera.Transition { return s.transition }
func (s *Scene) Controls() *camera.Controls     { return s.controls }
func (s *Scene) System() *orbit.System          { return s.system }
func (s *Scene) Stars() []mgl64.Vec3            { return s.stars }
func (s *Scene) Bodies() []*orbit.Body          { return s.system.Bodies() }
func (s *Scene) Planets() []*orbit.Body         { return s.system.Orbiting() }
func (s *Scene) Home() camera.Goal              { return s.home }
func (s *Scene) Frames() uint64                 { return s.frames }

// Sun returns the first static body.
func (s *Scene) Sun() *orbit.Body {
	for _, b := range s.system.Bodies() {
		if b.Static() {
			return b
		}
	}
	return nil
}

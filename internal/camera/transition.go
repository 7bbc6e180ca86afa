package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultAlpha      = 0.05
	DefaultEpsilon    = 0.1
	DefaultZoomFactor = 5.0
)

// DefaultHome is where a reset sends the camera.
var DefaultHome = Goal{
	Position: mgl64.Vec3{0, 10, 30},
	LookAt:   mgl64.Vec3{0, 0, 0},
}

// Goal is a target camera position and look-at point.
type Goal struct {
	Position mgl64.Vec3
	LookAt   mgl64.Vec3
}

// Transition eases a camera toward a goal, one Step per frame.
//
// Each Start bumps the generation. Step takes the generation its caller was
// scheduled with, so a frame loop started for an older goal stops the moment
// a newer one replaces it.
type Transition struct {
	alpha, epsilon float64

	position mgl64.Vec3
	lookAt   mgl64.Vec3
	goal     Goal
	active   bool
	gen      uint64
	steps    int
}

func NewTransition(alpha, epsilon float64) *Transition {
	if alpha <= 0 || alpha >= 1 {
		alpha = DefaultAlpha
	}
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return &Transition{alpha: alpha, epsilon: epsilon}
}

// Start replaces any transition in flight and returns the new generation.
func (t *Transition) Start(goal Goal, cam *Camera) uint64 {
	t.gen++
	t.goal = goal
	t.position = cam.Position
	t.lookAt = cam.LookAt
	t.active = true
	t.steps = 0
	return t.gen
}

// Step advances the transition scheduled under gen and writes the
// interpolated values to cam. It reports whether another step is needed.
// Stale generations and finished transitions leave cam untouched.
func (t *Transition) Step(gen uint64, cam *Camera) bool {
	if !t.active || gen != t.gen {
		return false
	}
	t.position = lerp(t.position, t.goal.Position, t.alpha)
	t.lookAt = lerp(t.lookAt, t.goal.LookAt, t.alpha)
	t.steps++

	cam.Position = t.position
	cam.LookAt = t.lookAt

	if t.position.Sub(t.goal.Position).Len() <= t.epsilon &&
		t.lookAt.Sub(t.goal.LookAt).Len() <= t.epsilon {
		t.active = false
		return false
	}
	return true
}

// Cancel stops the transition in flight without moving the camera.
func (t *Transition) Cancel() {
	t.gen++
	t.active = false
}

func (t *Transition) Active() bool       { return t.active }
func (t *Transition) Generation() uint64 { return t.gen }
func (t *Transition) Goal() Goal         { return t.goal }
func (t *Transition) Steps() int         { return t.steps }
func (t *Transition) Alpha() float64     { return t.alpha }
func (t *Transition) Epsilon() float64   { return t.epsilon }

// Remaining returns the larger of the position and look-at distances to the goal.
func (t *Transition) Remaining() float64 {
	return math.Max(t.position.Sub(t.goal.Position).Len(), t.lookAt.Sub(t.goal.LookAt).Len())
}

// ZoomGoal frames a sphere of the given radius at center, keeping the camera
// on the side it currently views from.
func ZoomGoal(cam *Camera, center mgl64.Vec3, radius, factor float64) Goal {
	if factor <= 0 {
		factor = DefaultZoomFactor
	}
	return Goal{
		Position: center.Add(cam.Backward().Mul(radius * factor)),
		LookAt:   center,
	}
}

func ResetGoal(home Goal) Goal { return home }

// MaxSteps bounds the number of steps a transition needs to bring an initial
// distance d within epsilon.
func MaxSteps(d, alpha, epsilon float64) int {
	if d <= epsilon {
		return 1
	}
	return int(math.Ceil(math.Log(epsilon/d) / math.Log(1-alpha)))
}

func lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

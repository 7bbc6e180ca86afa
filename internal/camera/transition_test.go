package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func homeCamera() *Camera {
	return New(DefaultHome.Position, DefaultHome.LookAt)
}

func TestNewTransitionDefaults(t *testing.T) {
	tests := []struct {
		alpha, eps         float64
		wantAlpha, wantEps float64
	}{
		{0, 0, DefaultAlpha, DefaultEpsilon},
		{1, -1, DefaultAlpha, DefaultEpsilon},
		{0.2, 0.01, 0.2, 0.01},
	}
	for _, tt := range tests {
		tr := NewTransition(tt.alpha, tt.eps)
		if tr.Alpha() != tt.wantAlpha || tr.Epsilon() != tt.wantEps {
			t.Errorf("NewTransition(%v, %v) = (%v, %v), want (%v, %v)",
				tt.alpha, tt.eps, tr.Alpha(), tr.Epsilon(), tt.wantAlpha, tt.wantEps)
		}
	}
}

func TestTransitionConvergesWithinBound(t *testing.T) {
	goals := []struct {
		name string
		goal Goal
	}{
		{"earth", Goal{Position: mgl64.Vec3{8, 0.5, 3}, LookAt: mgl64.Vec3{8, 0, 0}}},
		{"far", Goal{Position: mgl64.Vec3{-90, 40, 10}, LookAt: mgl64.Vec3{-22, 0, 0}}},
		{"home", DefaultHome},
	}

	for _, g := range goals {
		t.Run(g.name, func(t *testing.T) {
			cam := New(mgl64.Vec3{3, 2, 1}, mgl64.Vec3{1, 0, 0})
			tr := NewTransition(DefaultAlpha, DefaultEpsilon)
			d := math.Max(cam.Position.Sub(g.goal.Position).Len(), cam.LookAt.Sub(g.goal.LookAt).Len())
			bound := MaxSteps(d, DefaultAlpha, DefaultEpsilon)

			gen := tr.Start(g.goal, cam)
			for tr.Step(gen, cam) {
				if tr.Steps() > bound {
					t.Fatalf("still running after %d steps, bound %d", tr.Steps(), bound)
				}
			}

			if tr.Active() {
				t.Error("transition should be inactive after converging")
			}
			if tr.Steps() > bound {
				t.Errorf("took %d steps, bound %d", tr.Steps(), bound)
			}
			if cam.Position.Sub(g.goal.Position).Len() > DefaultEpsilon {
				t.Errorf("position %v not within epsilon of %v", cam.Position, g.goal.Position)
			}
			if cam.LookAt.Sub(g.goal.LookAt).Len() > DefaultEpsilon {
				t.Errorf("look-at %v not within epsilon of %v", cam.LookAt, g.goal.LookAt)
			}
		})
	}
}

func TestTransitionFirstStepLerps(t *testing.T) {
	cam := New(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{})
	tr := NewTransition(0.5, DefaultEpsilon)
	gen := tr.Start(Goal{Position: mgl64.Vec3{0, 0, 20}, LookAt: mgl64.Vec3{4, 0, 0}}, cam)

	if !tr.Step(gen, cam) {
		t.Fatal("expected another step to be needed")
	}
	if !cam.Position.ApproxEqual(mgl64.Vec3{0, 0, 15}) {
		t.Errorf("position = %v, want (0,0,15)", cam.Position)
	}
	if !cam.LookAt.ApproxEqual(mgl64.Vec3{2, 0, 0}) {
		t.Errorf("look-at = %v, want (2,0,0)", cam.LookAt)
	}
}

func TestTransitionStepAfterConvergenceIsNoop(t *testing.T) {
	cam := homeCamera()
	tr := NewTransition(0, 0)
	gen := tr.Start(Goal{Position: mgl64.Vec3{0, 5, 10}, LookAt: mgl64.Vec3{}}, cam)
	for tr.Step(gen, cam) {
	}

	pos, steps := cam.Position, tr.Steps()
	if tr.Step(gen, cam) {
		t.Error("Step after convergence returned true")
	}
	if cam.Position != pos || tr.Steps() != steps {
		t.Error("Step after convergence moved the camera")
	}
}

func TestTransitionAlreadyAtGoal(t *testing.T) {
	cam := homeCamera()
	tr := NewTransition(0, 0)
	gen := tr.Start(DefaultHome, cam)

	if tr.Step(gen, cam) {
		t.Error("expected a single step when already at the goal")
	}
	if tr.Steps() != 1 || MaxSteps(0, DefaultAlpha, DefaultEpsilon) != 1 {
		t.Errorf("steps = %d, want 1", tr.Steps())
	}
}

func TestTransitionSupersede(t *testing.T) {
	cam := homeCamera()
	tr := NewTransition(0, 0)

	first := tr.Start(Goal{Position: mgl64.Vec3{8, 1, 3}, LookAt: mgl64.Vec3{8, 0, 0}}, cam)
	tr.Step(first, cam)
	tr.Step(first, cam)

	second := tr.Start(Goal{Position: mgl64.Vec3{-22, 1, 4}, LookAt: mgl64.Vec3{-22, 0, 0}}, cam)
	if second <= first {
		t.Fatalf("generation did not increase: %d then %d", first, second)
	}

	before := *cam
	if tr.Step(first, cam) {
		t.Error("stale generation reported more work")
	}
	if *cam != before {
		t.Error("stale generation mutated the camera")
	}

	for tr.Step(second, cam) {
	}
	if cam.LookAt.Sub(mgl64.Vec3{-22, 0, 0}).Len() > DefaultEpsilon {
		t.Errorf("camera ended at %v, want the second goal", cam.LookAt)
	}
}

func TestTransitionCancel(t *testing.T) {
	cam := homeCamera()
	tr := NewTransition(0, 0)
	gen := tr.Start(Goal{Position: mgl64.Vec3{8, 1, 3}, LookAt: mgl64.Vec3{8, 0, 0}}, cam)
	tr.Step(gen, cam)

	tr.Cancel()
	before := *cam
	if tr.Step(gen, cam) || tr.Active() {
		t.Error("cancelled transition kept running")
	}
	if *cam != before {
		t.Error("cancelled transition mutated the camera")
	}
}

func TestZoomGoal(t *testing.T) {
	cam := New(mgl64.Vec3{0, 0, 30}, mgl64.Vec3{})
	center := mgl64.Vec3{8, 0, 0}

	g := ZoomGoal(cam, center, 0.65, DefaultZoomFactor)
	if g.LookAt != center {
		t.Errorf("look-at = %v, want %v", g.LookAt, center)
	}
	want := mgl64.Vec3{8, 0, 3.25}
	if !g.Position.ApproxEqual(want) {
		t.Errorf("position = %v, want %v", g.Position, want)
	}

	// zero factor falls back to the default
	if z := ZoomGoal(cam, center, 0.65, 0); !z.Position.ApproxEqual(want) {
		t.Errorf("default factor position = %v, want %v", z.Position, want)
	}

	// the framing distance scales with the body's size
	sun := ZoomGoal(cam, mgl64.Vec3{}, 2, DefaultZoomFactor)
	if math.Abs(sun.Position.Len()-10) > 1e-9 {
		t.Errorf("sun framing distance = %v, want 10", sun.Position.Len())
	}
}

func TestBackwardFallback(t *testing.T) {
	cam := New(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, 1})
	if got := cam.Backward(); got != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("Backward() = %v, want +Z", got)
	}
	g := ZoomGoal(cam, mgl64.Vec3{}, 1, 5)
	if !g.Position.ApproxEqual(mgl64.Vec3{0, 0, 5}) {
		t.Errorf("zoom from degenerate camera = %v", g.Position)
	}
}

func TestResetGoal(t *testing.T) {
	if g := ResetGoal(DefaultHome); g != DefaultHome {
		t.Errorf("ResetGoal = %v", g)
	}
}

func TestMaxSteps(t *testing.T) {
	tests := []struct {
		d    float64
		want int
	}{
		{0.05, 1},
		{0.1, 1},
		{1, 45},
		{31.6, 113},
	}
	for _, tt := range tests {
		if got := MaxSteps(tt.d, DefaultAlpha, DefaultEpsilon); got != tt.want {
			t.Errorf("MaxSteps(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}
}

package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settle(c *Controls, cam *Camera, frames int) {
	for i := 0; i < frames; i++ {
		c.Update(cam)
	}
}

func TestControlsIdleKeepsCamera(t *testing.T) {
	cam := homeCamera()
	c := NewControls()

	settle(c, cam, 10)

	assert.True(t, cam.Position.ApproxEqualThreshold(DefaultHome.Position, 1e-9))
	assert.InDelta(t, math.Sqrt(1000), c.Radius(), 1e-9)
}

func TestControlsClampDistance(t *testing.T) {
	tests := []struct {
		name  string
		start mgl64.Vec3
		want  float64
	}{
		{"too far", mgl64.Vec3{0, 0, 200}, 100},
		{"too close", mgl64.Vec3{0, 0, 0.5}, 2},
		{"inside", mgl64.Vec3{0, 0, 50}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := New(tt.start, mgl64.Vec3{})
			c := NewControls()
			c.Update(cam)
			assert.InDelta(t, tt.want, cam.Distance(), 1e-9)
			assert.InDelta(t, tt.want, cam.Position.Z(), 1e-9)
		})
	}
}

func TestControlsCustomLimits(t *testing.T) {
	cam := New(mgl64.Vec3{0, 0, 30}, mgl64.Vec3{})
	c := NewControls(WithDistanceLimits(5, 20))
	c.Update(cam)
	assert.InDelta(t, 20, cam.Distance(), 1e-9)

	// invalid limits are ignored
	c = NewControls(WithDistanceLimits(10, 1))
	cam = New(mgl64.Vec3{0, 0, 150}, mgl64.Vec3{})
	c.Update(cam)
	assert.InDelta(t, 100, cam.Distance(), 1e-9)
}

func TestControlsDragThreshold(t *testing.T) {
	c := NewControls()

	c.BeginDrag(10, 10)
	assert.True(t, c.Pressed())
	c.Drag(11, 11)
	assert.False(t, c.Dragging(), "small jitter is still a click")

	c.Drag(30, 10)
	assert.True(t, c.Dragging())

	assert.False(t, c.DragEnded())

	c.EndDrag()
	assert.False(t, c.Pressed())
	assert.False(t, c.Dragging(), "released pointer is not dragging")
	assert.True(t, c.DragEnded(), "release that ends a drag must not read as a click")

	c.Drag(40, 20)
	assert.False(t, c.Dragging(), "motion without a press is not a drag")

	c.BeginDrag(0, 0)
	assert.False(t, c.Dragging())
	assert.False(t, c.DragEnded())
}

func TestControlsDragOrbitsCamera(t *testing.T) {
	cam := homeCamera()
	c := NewControls()
	c.Update(cam)
	r := cam.Distance()

	c.BeginDrag(0, 0)
	c.Drag(40, 0)
	settle(c, cam, 240)
	c.EndDrag()
	settle(c, cam, 10)

	assert.Less(t, cam.Position.X(), 0.0, "dragging right swings the camera to -X")
	assert.InDelta(t, r, cam.Distance(), 1e-6, "orbiting keeps the distance")
	assert.Equal(t, mgl64.Vec3{}, cam.LookAt)
}

func TestControlsElevationClamped(t *testing.T) {
	cam := homeCamera()
	c := NewControls()
	c.Update(cam)

	c.BeginDrag(0, 0)
	c.Drag(0, 10000)
	settle(c, cam, 600)

	assert.Greater(t, cam.Position.Z()*cam.Position.Z()+cam.Position.X()*cam.Position.X(), 0.0,
		"camera never reaches the pole")
	assert.Less(t, cam.Position.Y(), cam.Distance())
}

func TestControlsDolly(t *testing.T) {
	cam := New(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{})
	c := NewControls()
	c.Update(cam)

	c.Dolly(1)
	settle(c, cam, 300)
	assert.InDelta(t, 9, cam.Distance(), 1e-3)

	c.Dolly(-1000)
	settle(c, cam, 600)
	assert.InDelta(t, 100, cam.Distance(), 1e-3)
}

func TestControlsStopResyncs(t *testing.T) {
	cam := homeCamera()
	c := NewControls()
	c.Update(cam)

	c.BeginDrag(0, 0)
	c.Drag(100, 0)
	c.EndDrag()
	c.Update(cam)
	require.False(t, c.Settled())

	// a camera transition takes over
	c.Stop()
	cam.Position = mgl64.Vec3{8, 0, 5}
	cam.LookAt = mgl64.Vec3{8, 0, 0}
	c.Update(cam)
	c.Update(cam)

	assert.Equal(t, mgl64.Vec3{8, 0, 5}, cam.Position)
	assert.InDelta(t, 5, c.Radius(), 1e-9)
}

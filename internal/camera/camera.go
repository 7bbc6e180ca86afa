package camera

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera looking from Position at LookAt.
// FOV is the vertical field of view in degrees.
type Camera struct {
	Position mgl64.Vec3
	LookAt   mgl64.Vec3
	Up       mgl64.Vec3
	FOV      float64
	Aspect   float64
	Near     float64
	Far      float64
}

func New(position, lookAt mgl64.Vec3) *Camera {
	return &Camera{
		Position: position,
		LookAt:   lookAt,
		Up:       mgl64.Vec3{0, 1, 0},
		FOV:      45,
		Aspect:   16.0 / 9.0,
		Near:     0.1,
		Far:      1000,
	}
}

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.LookAt, c.Up)
}

func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Backward is the unit vector from LookAt towards Position. It is the
// camera's local +Z axis; when the two points coincide +Z is returned.
func (c *Camera) Backward() mgl64.Vec3 {
	d := c.Position.Sub(c.LookAt)
	if d.Len() < 1e-12 {
		return mgl64.Vec3{0, 0, 1}
	}
	return d.Normalize()
}

// Distance returns |Position - LookAt|.
func (c *Camera) Distance() float64 {
	return c.Position.Sub(c.LookAt).Len()
}

package pick

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/camera"
)

// Rect is the render surface in pointer units: terminal cells for the TUI,
// window pixels for the GUI.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(px, py float64) bool {
	return r.W > 0 && r.H > 0 &&
		px >= r.X && px < r.X+r.W &&
		py >= r.Y && py < r.Y+r.H
}

// NDC maps a pointer position into normalized device coordinates of rect,
// with +y up. inside is false when the pointer is off the render surface.
func NDC(px, py float64, rect Rect) (x, y float64, inside bool) {
	if rect.W <= 0 || rect.H <= 0 {
		return 0, 0, false
	}
	x = ((px-rect.X)/rect.W)*2 - 1
	y = -((py-rect.Y)/rect.H)*2 + 1
	return x, y, rect.Contains(px, py)
}

type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// At returns the point t units along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// RayFromCamera casts a ray through (ndcX, ndcY) by unprojecting the near and
// far clip planes through the inverse view-projection.
func RayFromCamera(cam *camera.Camera, ndcX, ndcY float64) Ray {
	inv := cam.ViewProjection().Inv()
	near := unproject(inv, ndcX, ndcY, -1)
	far := unproject(inv, ndcX, ndcY, 1)
	return Ray{Origin: near, Dir: far.Sub(near).Normalize()}
}

// Project maps a world point to NDC. ok is false for points behind the camera.
func Project(cam *camera.Camera, p mgl64.Vec3) (x, y, depth float64, ok bool) {
	clip := cam.ViewProjection().Mul4x1(p.Vec4(1))
	if clip.W() <= 1e-9 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	return ndc.X(), ndc.Y(), clip.W(), true
}

// ToPointer is the inverse of NDC.
func ToPointer(x, y float64, rect Rect) (px, py float64) {
	return rect.X + (x+1)/2*rect.W, rect.Y + (1-y)/2*rect.H
}

func unproject(inv mgl64.Mat4, x, y, z float64) mgl64.Vec3 {
	v := inv.Mul4x1(mgl64.Vec4{x, y, z, 1})
	return v.Vec3().Mul(1 / v.W())
}

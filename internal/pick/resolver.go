package pick

import (
	"github.com/san-kum/orrery/internal/camera"
)

// Resolver turns a pointer position into the nearest body under it.
// The zero value uses SphereIntersector.
type Resolver struct {
	Intersector Intersector
}

func (r Resolver) Resolve(px, py float64, rect Rect, cam *camera.Camera, targets []Target) (Hit, bool) {
	x, y, inside := NDC(px, py, rect)
	if !inside || len(targets) == 0 {
		return Hit{}, false
	}
	in := r.Intersector
	if in == nil {
		in = SphereIntersector{}
	}
	hits := in.Intersect(RayFromCamera(cam, x, y), targets)
	if len(hits) == 0 {
		return Hit{}, false
	}
	return hits[0], true
}

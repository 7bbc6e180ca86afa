package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/pick"
)

// raycaster tests pick rays with raylib's sphere collision.
type raycaster struct{}

func (raycaster) Intersect(ray pick.Ray, targets []pick.Target) []pick.Hit {
	r := rl.NewRay(vec3(ray.Origin), vec3(ray.Dir))
	var hits []pick.Hit
	for _, t := range targets {
		c := rl.GetRayCollisionSphere(r, vec3(t.Center()), float32(t.BoundRadius()))
		if c.Hit {
			hits = append(hits, pick.Hit{Target: t, Distance: float64(c.Distance)})
		}
	}
	pick.SortHits(hits)
	return hits
}

func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

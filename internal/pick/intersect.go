package pick

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Target is anything a ray can hit, bounded by a sphere.
type Target interface {
	ID() string
	Center() mgl64.Vec3
	BoundRadius() float64
}

type Hit struct {
	Target
	Distance float64
}

// Intersector returns every target the ray hits, nearest first.
type Intersector interface {
	Intersect(ray Ray, targets []Target) []Hit
}

// SphereIntersector is the analytic ray-sphere test.
type SphereIntersector struct{}

func (SphereIntersector) Intersect(ray Ray, targets []Target) []Hit {
	var hits []Hit
	for _, t := range targets {
		if d, ok := RaySphere(ray, t.Center(), t.BoundRadius()); ok {
			hits = append(hits, Hit{Target: t, Distance: d})
		}
	}
	SortHits(hits)
	return hits
}

// RaySphere returns the distance along ray to the first surface point of the
// sphere. A ray starting inside the sphere hits its far side.
func RaySphere(ray Ray, center mgl64.Vec3, radius float64) (float64, bool) {
	oc := ray.Origin.Sub(center)
	b := oc.Dot(ray.Dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// SortHits orders hits nearest first, breaking ties by ID.
func SortHits(hits []Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].ID() < hits[j].ID()
	})
}

package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const twoPi = 2 * math.Pi

// Body is a sun or planet. Position is derived from Angle and Distance and is
// only authoritative after Place or a Tick.
type Body struct {
	Name         string
	Color        string
	Radius       float64
	Angle        float64
	Distance     float64
	AngularSpeed float64
	Position     mgl64.Vec3
}

// Place recomputes Position from Angle and Distance.
func (b *Body) Place() {
	b.Position = mgl64.Vec3{
		b.Distance * math.Cos(b.Angle),
		0,
		b.Distance * math.Sin(b.Angle),
	}
}

// Static reports whether the body sits at the centre of the system.
func (b *Body) Static() bool { return b.Distance == 0 }

func (b *Body) ID() string           { return b.Name }
func (b *Body) Center() mgl64.Vec3   { return b.Position }
func (b *Body) BoundRadius() float64 { return b.Radius }

type Option func(*System)

// WithAngleNormalization keeps every angle in [0, 2π) after each tick.
func WithAngleNormalization(on bool) Option {
	return func(s *System) { s.normalize = on }
}

type System struct {
	bodies    []*Body
	index     map[string]*Body
	normalize bool
}

// NewSystem validates the bodies, copies them and places each one.
func NewSystem(bodies []Body, opts ...Option) (*System, error) {
	s := &System{
		bodies: make([]*Body, 0, len(bodies)),
		index:  make(map[string]*Body, len(bodies)),
	}
	for _, opt := range opts {
		opt(s)
	}
	for i := range bodies {
		b := bodies[i]
		if b.Name == "" || b.Radius <= 0 || b.Distance < 0 || math.IsNaN(b.Angle) {
			return nil, &BodyError{Name: b.Name, Wrapped: ErrInvalidBody}
		}
		if _, ok := s.index[b.Name]; ok {
			return nil, &BodyError{Name: b.Name, Wrapped: ErrDuplicateBody}
		}
		b.Place()
		s.bodies = append(s.bodies, &b)
		s.index[b.Name] = &b
	}
	return s, nil
}

// Tick advances every body by speed*dtTicks. It is a no-op while paused.
func (s *System) Tick(dtTicks float64, paused bool) {
	if paused {
		return
	}
	for _, b := range s.bodies {
		if b.Static() {
			continue
		}
		b.Angle += b.AngularSpeed * dtTicks
		if s.normalize {
			b.Angle = math.Mod(b.Angle, twoPi)
			if b.Angle < 0 {
				b.Angle += twoPi
			}
		}
		b.Place()
	}
}

func (s *System) SetSpeed(name string, v float64) error {
	b, ok := s.index[name]
	if !ok {
		return &BodyError{Name: name, Wrapped: ErrUnknownBody}
	}
	b.AngularSpeed = v
	return nil
}

func (s *System) Speed(name string) (float64, error) {
	b, ok := s.index[name]
	if !ok {
		return 0, &BodyError{Name: name, Wrapped: ErrUnknownBody}
	}
	return b.AngularSpeed, nil
}

func (s *System) Body(name string) (*Body, bool) {
	b, ok := s.index[name]
	return b, ok
}

// Bodies returns the bodies in configuration order. The slice is shared.
func (s *System) Bodies() []*Body { return s.bodies }

// Orbiting returns the bodies that move, in configuration order.
func (s *System) Orbiting() []*Body {
	out := make([]*Body, 0, len(s.bodies))
	for _, b := range s.bodies {
		if !b.Static() {
			out = append(out, b)
		}
	}
	return out
}

func (s *System) Len() int { return len(s.bodies) }

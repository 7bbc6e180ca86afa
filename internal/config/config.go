package config

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/orbit"
	"gopkg.in/yaml.v3"
)

const (
	DefaultStarCount   = 10000
	DefaultStarSpread  = 2000.0
	DefaultFOV         = 45.0
	DefaultNear        = 0.1
	DefaultFar         = 1000.0
	DefaultMinDistance = 2.0
	DefaultMaxDistance = 100.0
	DefaultDamping     = 0.25
	DefaultAlpha       = 0.05
	DefaultEpsilon     = 0.1
	DefaultZoomFactor  = 5.0
	DefaultSpeedMin    = 0.001
	DefaultSpeedMax    = 0.05
	DefaultSpeedStep   = 0.001
	DefaultTheme       = "dark"
	DefaultFPS         = 60
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Sun             SunConfig        `yaml:"sun"`
	Bodies          []BodyConfig     `yaml:"bodies"`
	Stars           StarsConfig      `yaml:"stars"`
	Camera          CameraConfig     `yaml:"camera"`
	Transition      TransitionConfig `yaml:"transition"`
	Controls        ControlsConfig   `yaml:"controls"`
	Theme           string           `yaml:"theme"`
	NormalizeAngles bool             `yaml:"normalize_angles"`
	Seed            int64            `yaml:"seed"`
	FPS             int              `yaml:"fps"`
}

type SunConfig struct {
	Name  string  `yaml:"name"`
	Color string  `yaml:"color"`
	Size  float64 `yaml:"size"`
}

// BodyConfig describes one planet. A nil Phase means a random starting angle.
type BodyConfig struct {
	Name     string   `yaml:"name"`
	Color    string   `yaml:"color"`
	Size     float64  `yaml:"size"`
	Distance float64  `yaml:"distance"`
	Speed    float64  `yaml:"speed"`
	Phase    *float64 `yaml:"phase,omitempty"`
}

type StarsConfig struct {
	Count  int     `yaml:"count"`
	Spread float64 `yaml:"spread"`
}

type CameraConfig struct {
	Position    [3]float64 `yaml:"position,flow"`
	LookAt      [3]float64 `yaml:"look_at,flow"`
	FOV         float64    `yaml:"fov"`
	Near        float64    `yaml:"near"`
	Far         float64    `yaml:"far"`
	MinDistance float64    `yaml:"min_distance"`
	MaxDistance float64    `yaml:"max_distance"`
	Damping     float64    `yaml:"damping"`
}

type TransitionConfig struct {
	Alpha      float64 `yaml:"alpha"`
	Epsilon    float64 `yaml:"epsilon"`
	ZoomFactor float64 `yaml:"zoom_factor"`
}

// ControlsConfig bounds the per-planet speed sliders.
type ControlsConfig struct {
	SpeedMin  float64 `yaml:"speed_min"`
	SpeedMax  float64 `yaml:"speed_max"`
	SpeedStep float64 `yaml:"speed_step"`
}

// Planets returns the eight planets of the classic layout.
func Planets() []BodyConfig {
	return []BodyConfig{
		{Name: "Mercury", Color: "#aaaaaa", Size: 0.3, Distance: 4, Speed: 0.04},
		{Name: "Venus", Color: "#ffaa00", Size: 0.6, Distance: 6, Speed: 0.015},
		{Name: "Earth", Color: "#0000ff", Size: 0.65, Distance: 8, Speed: 0.01},
		{Name: "Mars", Color: "#ff0000", Size: 0.5, Distance: 10, Speed: 0.008},
		{Name: "Jupiter", Color: "#ffcc99", Size: 1.2, Distance: 13, Speed: 0.006},
		{Name: "Saturn", Color: "#ffff99", Size: 1.1, Distance: 16, Speed: 0.004},
		{Name: "Uranus", Color: "#66ffff", Size: 0.9, Distance: 19, Speed: 0.003},
		{Name: "Neptune", Color: "#3366ff", Size: 0.85, Distance: 22, Speed: 0.002},
	}
}

func DefaultConfig() *Config {
	return &Config{
		Sun:    SunConfig{Name: "Sun", Color: "#ffcc00", Size: 2},
		Bodies: Planets(),
		Stars:  StarsConfig{Count: DefaultStarCount, Spread: DefaultStarSpread},
		Camera: CameraConfig{
			Position:    [3]float64{0, 10, 30},
			FOV:         DefaultFOV,
			Near:        DefaultNear,
			Far:         DefaultFar,
			MinDistance: DefaultMinDistance,
			MaxDistance: DefaultMaxDistance,
			Damping:     DefaultDamping,
		},
		Transition: TransitionConfig{
			Alpha:      DefaultAlpha,
			Epsilon:    DefaultEpsilon,
			ZoomFactor: DefaultZoomFactor,
		},
		Controls: ControlsConfig{
			SpeedMin:  DefaultSpeedMin,
			SpeedMax:  DefaultSpeedMax,
			SpeedStep: DefaultSpeedStep,
		},
		Theme: DefaultTheme,
		FPS:   DefaultFPS,
	}
}

// Load reads a yaml file over the defaults. A bodies list in the file
// replaces the default planets entirely.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := checkBody(c.Sun.Name, c.Sun.Color, c.Sun.Size); err != nil {
		return err
	}
	seen := map[string]bool{c.Sun.Name: true}
	for _, b := range c.Bodies {
		if err := checkBody(b.Name, b.Color, b.Size); err != nil {
			return err
		}
		if seen[b.Name] {
			return fmt.Errorf("%w: duplicate body %q", ErrInvalidConfig, b.Name)
		}
		seen[b.Name] = true
		if b.Distance <= 0 {
			return fmt.Errorf("%w: body %q needs a positive distance", ErrInvalidConfig, b.Name)
		}
		if math.IsNaN(b.Speed) || math.IsInf(b.Speed, 0) {
			return fmt.Errorf("%w: body %q speed %v", ErrInvalidConfig, b.Name, b.Speed)
		}
	}
	if c.Stars.Count < 0 || c.Stars.Spread < 0 {
		return fmt.Errorf("%w: stars count and spread must not be negative", ErrInvalidConfig)
	}

	cam := c.Camera
	switch {
	case cam.FOV <= 0 || cam.FOV >= 180:
		return fmt.Errorf("%w: camera fov %v", ErrInvalidConfig, cam.FOV)
	case cam.Near <= 0 || cam.Far <= cam.Near:
		return fmt.Errorf("%w: camera clip planes %v..%v", ErrInvalidConfig, cam.Near, cam.Far)
	case cam.MinDistance <= 0 || cam.MaxDistance <= cam.MinDistance:
		return fmt.Errorf("%w: camera distance limits %v..%v", ErrInvalidConfig, cam.MinDistance, cam.MaxDistance)
	case cam.Damping < 0:
		return fmt.Errorf("%w: camera damping %v", ErrInvalidConfig, cam.Damping)
	}

	tr := c.Transition
	if tr.Alpha <= 0 || tr.Alpha >= 1 {
		return fmt.Errorf("%w: transition alpha %v not in (0, 1)", ErrInvalidConfig, tr.Alpha)
	}
	if tr.Epsilon <= 0 || tr.ZoomFactor <= 0 {
		return fmt.Errorf("%w: transition epsilon and zoom factor must be positive", ErrInvalidConfig)
	}

	ctl := c.Controls
	if ctl.SpeedStep <= 0 || ctl.SpeedMin < 0 || ctl.SpeedMax <= ctl.SpeedMin {
		return fmt.Errorf("%w: speed slider %v..%v step %v", ErrInvalidConfig, ctl.SpeedMin, ctl.SpeedMax, ctl.SpeedStep)
	}
	if c.Theme != "dark" && c.Theme != "light" {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidConfig, c.Theme)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", ErrInvalidConfig, c.FPS)
	}
	return nil
}

func checkBody(name, color string, size float64) error {
	if name == "" {
		return fmt.Errorf("%w: body without a name", ErrInvalidConfig)
	}
	if size <= 0 {
		return fmt.Errorf("%w: body %q size %v", ErrInvalidConfig, name, size)
	}
	if _, err := colorful.Hex(color); err != nil {
		return fmt.Errorf("%w: body %q color %q", ErrInvalidConfig, name, color)
	}
	return nil
}

// ResolveSeed returns the configured seed, or a time-based one when unset.
func (c *Config) ResolveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// OrbitBodies converts the sun and planets into orbit bodies, drawing a
// random phase from rng for every planet without one.
func (c *Config) OrbitBodies(rng *rand.Rand) []orbit.Body {
	out := make([]orbit.Body, 0, len(c.Bodies)+1)
	out = append(out, orbit.Body{Name: c.Sun.Name, Color: c.Sun.Color, Radius: c.Sun.Size})
	for _, b := range c.Bodies {
		angle := rng.Float64() * 2 * math.Pi
		if b.Phase != nil {
			angle = *b.Phase
		}
		out = append(out, orbit.Body{
			Name:         b.Name,
			Color:        b.Color,
			Radius:       b.Size,
			Distance:     b.Distance,
			AngularSpeed: b.Speed,
			Angle:        angle,
		})
	}
	return out
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Bodies = make([]BodyConfig, len(c.Bodies))
	for i, b := range c.Bodies {
		if b.Phase != nil {
			p := *b.Phase
			b.Phase = &p
		}
		out.Bodies[i] = b
	}
	return &out
}

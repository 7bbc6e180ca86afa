package scene_test

import (
	"bytes"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/pick"
	"github.com/san-kum/orrery/internal/scene"
)

var viewport = pick.Rect{W: 1280, H: 570}

// testConfig puts Earth on +X and every other planet on -X so that rays to
// Earth and to the sun cross nothing else.
func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Seed = 11
	cfg.Stars.Count = 200
	for i := range cfg.Bodies {
		phase := math.Pi
		if cfg.Bodies[i].Name == "Earth" {
			phase = 0
		}
		cfg.Bodies[i].Phase = &phase
	}
	return cfg
}

func pointerOver(s *scene.Scene, p mgl64.Vec3) (float64, float64) {
	x, y, _, ok := pick.Project(s.Camera(), p)
	Expect(ok).To(BeTrue())
	return pick.ToPointer(x, y, viewport)
}

func runTransition(s *scene.Scene, gen uint64) int {
	n := 0
	for s.StepTransition(gen) {
		n++
		Expect(n).To(BeNumerically("<", 10000))
	}
	return n + 1
}

var _ = Describe("Scene", func() {
	var (
		s   *scene.Scene
		buf *bytes.Buffer
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		var err error
		s, err = scene.New(testConfig(), scene.WithLogger(log.New(buf, "", 0)))
		Expect(err).NotTo(HaveOccurred())
		s.SetAspect(viewport.W / viewport.H)
	})

	It("rejects an invalid config", func() {
		cfg := testConfig()
		cfg.Transition.Alpha = 2
		_, err := scene.New(cfg)
		Expect(err).To(MatchError(config.ErrInvalidConfig))
	})

	Describe("frames", func() {
		It("advances orbits by one tick per frame", func() {
			earth, _ := s.System().Body("Earth")
			s.Frame()
			Expect(earth.Position.X()).To(BeNumerically("~", 7.9996, 1e-4))
			Expect(earth.Position.Z()).To(BeNumerically("~", 0.08, 1e-4))
			Expect(s.Frames()).To(Equal(uint64(1)))
		})

		It("freezes orbits while paused", func() {
			Expect(s.TogglePause()).To(BeTrue())
			earth, _ := s.System().Body("Earth")
			before := earth.Position
			for i := 0; i < 50; i++ {
				s.Frame()
			}
			Expect(earth.Position).To(Equal(before))

			Expect(s.TogglePause()).To(BeFalse())
			s.Frame()
			Expect(earth.Position).NotTo(Equal(before))
		})

		It("keeps the sun at the origin", func() {
			for i := 0; i < 20; i++ {
				s.Frame()
			}
			Expect(s.Sun().Position).To(Equal(mgl64.Vec3{}))
			Expect(s.Planets()).To(HaveLen(8))
			Expect(s.Bodies()).To(HaveLen(9))
		})
	})

	Describe("speed sliders", func() {
		DescribeTable("clamps and snaps",
			func(in, want float64) {
				got, err := s.SetSpeed("Mars", in)
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(BeNumerically("~", want, 1e-12))
				v, _ := s.Speed("Mars")
				Expect(v).To(Equal(got))
			},
			Entry("above max", 1.0, 0.05),
			Entry("below min", -0.3, 0.001),
			Entry("between steps", 0.0123, 0.012),
			Entry("on a step", 0.02, 0.02),
		)

		It("nudges by whole steps", func() {
			v, err := s.NudgeSpeed("Earth", 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(BeNumerically("~", 0.013, 1e-12))
			v, _ = s.NudgeSpeed("Earth", -100)
			Expect(v).To(BeNumerically("~", 0.001, 1e-12))
		})

		It("reports unknown bodies", func() {
			_, err := s.SetSpeed("Pluto", 0.01)
			Expect(err).To(MatchError(orbit.ErrUnknownBody))
			_, err = s.NudgeSpeed("Pluto", 1)
			Expect(err).To(MatchError(orbit.ErrUnknownBody))
		})
	})

	Describe("hover", func() {
		It("shows on change and hides once", func() {
			earth, _ := s.System().Body("Earth")
			ex, ey := pointerOver(s, earth.Position)

			ev := s.PointerMove(ex, ey, viewport)
			Expect(ev.Kind).To(Equal(pick.HoverShow))
			Expect(ev.Name).To(Equal("Earth"))
			Expect(s.Hovered()).To(Equal("Earth"))

			Expect(s.PointerMove(ex+0.1, ey, viewport).Kind).To(Equal(pick.HoverNone))

			Expect(s.PointerMove(5, 5, viewport).Kind).To(Equal(pick.HoverHide))
			Expect(s.PointerMove(6, 5, viewport).Kind).To(Equal(pick.HoverNone))
			Expect(s.Hovered()).To(BeEmpty())
		})

		It("shows no tooltip for the sun", func() {
			earth, _ := s.System().Body("Earth")
			ex, ey := pointerOver(s, earth.Position)
			s.PointerMove(ex, ey, viewport)

			Expect(s.PointerMove(640, 285, viewport).Kind).To(Equal(pick.HoverHide))
			Expect(s.PointerMove(641, 285, viewport).Kind).To(Equal(pick.HoverNone))
		})
	})

	Describe("click", func() {
		It("zooms to the sun and converges within the bound", func() {
			cam := s.Camera()
			start := cam.Distance()
			goal := camera.ZoomGoal(cam, mgl64.Vec3{}, 2, camera.DefaultZoomFactor)

			gen, ok := s.Click(640, 285, viewport)
			Expect(ok).To(BeTrue())
			Expect(s.Transition().Goal()).To(Equal(goal))

			d := cam.Position.Sub(goal.Position).Len()
			steps := runTransition(s, gen)
			Expect(steps).To(BeNumerically("<=", camera.MaxSteps(d, camera.DefaultAlpha, camera.DefaultEpsilon)))
			Expect(cam.Position.Sub(goal.Position).Len()).To(BeNumerically("<=", camera.DefaultEpsilon))
			Expect(cam.Distance()).To(BeNumerically("<", start))
			Expect(s.Transition().Active()).To(BeFalse())
			Expect(buf.String()).To(ContainSubstring("zoom to Sun"))
		})

		It("zooms to a planet under the pointer", func() {
			earth, _ := s.System().Body("Earth")
			ex, ey := pointerOver(s, earth.Position)

			_, ok := s.Click(ex, ey, viewport)
			Expect(ok).To(BeTrue())
			Expect(s.Transition().Goal().LookAt).To(Equal(earth.Position))
		})

		It("resets from empty space", func() {
			gen, err := s.ZoomTo("Jupiter")
			Expect(err).NotTo(HaveOccurred())
			runTransition(s, gen)
			Expect(s.Camera().Position.Sub(s.Home().Position).Len()).To(BeNumerically(">", 1))

			gen, ok := s.Click(5, 5, viewport)
			Expect(ok).To(BeTrue())
			Expect(s.Transition().Goal()).To(Equal(s.Home()))
			runTransition(s, gen)
			Expect(s.Camera().Position.Sub(s.Home().Position).Len()).To(BeNumerically("<=", camera.DefaultEpsilon))
			Expect(s.Camera().LookAt.Len()).To(BeNumerically("<=", camera.DefaultEpsilon))
		})

		It("ignores clicks outside the render surface", func() {
			_, ok := s.Click(640, 700, viewport)
			Expect(ok).To(BeFalse())
			Expect(s.Transition().Active()).To(BeFalse())
		})

		It("ignores the release that ends a drag", func() {
			s.BeginDrag(640, 285)
			s.Drag(700, 285)
			s.EndDrag()
			_, ok := s.Click(700, 285, viewport)
			Expect(ok).To(BeFalse())

			s.BeginDrag(640, 285)
			s.EndDrag()
			_, ok = s.Click(640, 285, viewport)
			Expect(ok).To(BeTrue())
		})
	})

	Describe("transitions", func() {
		It("drops steps from a superseded generation", func() {
			first, _ := s.ZoomTo("Earth")
			s.StepTransition(first)
			second := s.ResetCamera()
			Expect(second).To(BeNumerically(">", first))

			before := *s.Camera()
			Expect(s.StepTransition(first)).To(BeFalse())
			Expect(*s.Camera()).To(Equal(before))

			Expect(s.StepTransition(second)).To(BeTrue())
		})

		It("is cancelled by a drag", func() {
			gen, _ := s.ZoomTo("Earth")
			s.StepTransition(gen)
			s.BeginDrag(0, 0)
			Expect(s.Transition().Active()).To(BeTrue())
			s.Drag(50, 0)
			Expect(s.Transition().Active()).To(BeFalse())
			Expect(s.StepTransition(gen)).To(BeFalse())
		})

		It("survives pointer motion after a finished drag", func() {
			s.BeginDrag(0, 0)
			s.Drag(60, 0)
			s.EndDrag()

			gen, err := s.ZoomTo("Earth")
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Transition().Active()).To(BeTrue())
			s.Drag(65, 5)
			Expect(s.Transition().Active()).To(BeTrue())
			Expect(s.StepTransition(gen)).To(BeTrue())
		})

		It("is cancelled by a dolly", func() {
			s.ZoomTo("Earth")
			s.Dolly(1)
			Expect(s.Transition().Active()).To(BeFalse())
		})

		It("is not fought by the controls between steps", func() {
			gen, _ := s.ZoomTo("Saturn")
			for s.StepTransition(gen) {
				s.Frame()
			}
			saturn, _ := s.System().Body("Saturn")
			Expect(s.Camera().LookAt.Sub(s.Transition().Goal().LookAt).Len()).To(BeNumerically("<=", camera.DefaultEpsilon))
			Expect(s.Transition().Goal().LookAt).NotTo(Equal(saturn.Position))
		})
	})

	Describe("theme", func() {
		It("toggles between dark and light", func() {
			Expect(s.Theme()).To(Equal("dark"))
			Expect(s.ToggleTheme()).To(Equal("light"))
			Expect(s.ToggleTheme()).To(Equal("dark"))
		})
	})

	Describe("starfield", func() {
		It("is seeded and bounded", func() {
			Expect(s.Stars()).To(HaveLen(200))
			for _, st := range s.Stars() {
				for i := 0; i < 3; i++ {
					Expect(math.Abs(st[i])).To(BeNumerically("<=", 1000))
				}
			}
			other, err := scene.New(testConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(other.Stars()).To(Equal(s.Stars()))
		})
	})

	It("lists every body as pickable", func() {
		ids := []string{}
		for _, t := range s.Pickables() {
			ids = append(ids, t.ID())
		}
		Expect(ids).To(ContainElements("Sun", "Earth", "Neptune"))
		Expect(ids).To(HaveLen(9))
	})

	It("ignores nonsense aspect ratios", func() {
		s.SetAspect(0)
		s.SetAspect(math.Inf(1))
		Expect(s.Camera().Aspect).To(BeNumerically("~", viewport.W/viewport.H, 1e-12))
	})
})

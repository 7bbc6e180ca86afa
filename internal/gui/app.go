package gui

import (
	"fmt"
	"io"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/pick"
	"github.com/san-kum/orrery/internal/scene"
)

const historyCapacity = 200

// tooltip is the hover label, anchored at the pointer position it was
// shown for.
type tooltip struct {
	text    string
	x, y    float32
	visible bool
}

type App struct {
	scene  *scene.Scene
	logger *log.Logger
	font   rl.Font

	width, height int32
	target        rl.RenderTexture2D

	// transition generation the loop is stepping, if stepping
	gen      uint64
	stepping bool

	slider      int // slider being dragged, -1 for none
	showOrbits  bool
	tip         tooltip
	distHistory []float64
}

type Option func(*App)

func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

func WithOrbits(on bool) Option {
	return func(a *App) { a.showOrbits = on }
}

// initWindow opens a resizable 1280×720 window at 60 FPS and disables the
// default exit key.
func initWindow(fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(1280, 720, "orrery")
	rl.SetWindowMinSize(640, 400)
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono from the system path and enables bilinear
// filtering. raylib falls back to its built-in font when the file is missing.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// Run opens the window, builds a scene from cfg that picks through raylib,
// and blocks until the window is closed.
func Run(cfg *config.Config, opts ...Option) error {
	a := &App{
		slider:      -1,
		showOrbits:  true,
		distHistory: make([]float64, 0, historyCapacity),
		logger:      log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(a)
	}

	s, err := scene.New(cfg, scene.WithLogger(a.logger), scene.WithIntersector(raycaster{}))
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}
	a.scene = s

	initWindow(cfg.FPS)
	defer rl.CloseWindow()
	a.font = loadFont()
	defer rl.UnloadFont(a.font)

	a.resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	defer func() { rl.UnloadRenderTexture(a.target) }()

	a.logger.Printf("window %dx%d", a.width, a.height)
	a.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// resize reallocates the render texture to cover the window minus the
// control strip and refits the camera's aspect.
func (a *App) resize(w, h int32) {
	if a.target.ID != 0 {
		rl.UnloadRenderTexture(a.target)
	}
	a.width, a.height = w, h
	view := viewRect(w, h)
	a.target = rl.LoadRenderTexture(int32(view.W), int32(view.H))
	a.scene.SetAspect(view.W / view.H)
}

// follow makes the loop step the transition started under gen.
func (a *App) follow(gen uint64) {
	a.gen, a.stepping = gen, true
}

// Update handles one frame of input and advances the scene. It returns
// false when the user asked to quit.
func (a *App) Update() bool {
	if rl.IsWindowResized() {
		a.resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
		a.tip.visible = false
	}

	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.scene.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.scene.ToggleTheme()
	}
	if rl.IsKeyPressed(rl.KeyO) {
		a.showOrbits = !a.showOrbits
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.follow(a.scene.ResetCamera())
	}

	a.handleMouse()

	a.scene.Frame()
	if a.stepping {
		a.stepping = a.scene.StepTransition(a.gen)
	}

	a.distHistory = append(a.distHistory, a.scene.Camera().Distance())
	if len(a.distHistory) > historyCapacity {
		a.distHistory = a.distHistory[1:]
	}
	return true
}

func (a *App) handleMouse() {
	mouse := rl.GetMousePosition()
	px, py := float64(mouse.X), float64(mouse.Y)
	view := viewRect(a.width, a.height)

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && view.Contains(px, py) {
		a.scene.Dolly(float64(wheel))
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		switch {
		case view.Contains(px, py):
			a.scene.BeginDrag(px, py)
		case a.pressButton(mouse):
		default:
			a.slider = a.sliderAt(mouse)
		}
	}

	if a.slider >= 0 && rl.IsMouseButtonDown(rl.MouseLeftButton) {
		a.dragSlider(mouse.X)
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		if a.slider >= 0 {
			a.slider = -1
		} else if a.scene.Controls().Pressed() {
			a.scene.EndDrag()
			if gen, ok := a.scene.Click(px, py, view); ok {
				a.follow(gen)
			}
		}
	}

	if delta := rl.GetMouseDelta(); delta.X != 0 || delta.Y != 0 {
		a.scene.Drag(px, py)
		a.hover(px, py, view)
	}
}

func (a *App) hover(px, py float64, view pick.Rect) {
	ev := a.scene.PointerMove(px, py, view)
	switch ev.Kind {
	case pick.HoverShow:
		a.tip = tooltip{text: ev.Name, x: float32(ev.X), y: float32(ev.Y), visible: true}
	case pick.HoverHide:
		a.tip.visible = false
	}
}

// pressButton handles a press on the pause or theme button and reports
// whether one was hit.
func (a *App) pressButton(mouse rl.Vector2) bool {
	switch {
	case rl.CheckCollisionPointRec(mouse, buttonRect(0, a.width, a.height)):
		a.scene.TogglePause()
	case rl.CheckCollisionPointRec(mouse, buttonRect(1, a.width, a.height)):
		a.scene.ToggleTheme()
	case rl.CheckCollisionPointRec(mouse, buttonRect(2, a.width, a.height)):
		a.follow(a.scene.ResetCamera())
	default:
		return false
	}
	return true
}

func (a *App) sliderAt(mouse rl.Vector2) int {
	for i := range a.scene.Planets() {
		if rl.CheckCollisionPointRec(mouse, hitRect(sliderRect(i, a.width, a.height))) {
			return i
		}
	}
	return -1
}

func (a *App) dragSlider(x float32) {
	planets := a.scene.Planets()
	if a.slider >= len(planets) {
		return
	}
	rng := a.scene.SpeedRange()
	name := planets[a.slider].Name
	v := sliderValue(sliderRect(a.slider, a.width, a.height), x, rng.SpeedMin, rng.SpeedMax)
	if _, err := a.scene.SetSpeed(name, v); err != nil {
		a.logger.Printf("set speed %s: %v", name, err)
	}
}

package viz

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orrery/internal/pick"
	"github.com/san-kum/orrery/internal/scene"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 300

	headerRows = 2
	canvasPadY = 1
	canvasPadX = 2

	// approximate pixel size of a terminal cell, so drags feel the same as
	// in the window frontend
	cellPixelsX = 8
	cellPixelsY = 16
)

type TickMsg time.Time

// transitionMsg asks for one camera transition step. It carries the
// generation it was scheduled for and is dropped once that is stale.
type transitionMsg struct{ gen uint64 }

// Model is the bubbletea model of the terminal frontend.
type Model struct {
	scene         *scene.Scene
	canvas        *Canvas
	width, height int
	fps           int
	selected      int
	showHelp      bool
	showOrbits    bool
	tooltip       Tooltip
	distHistory   []float64
	logger        *log.Logger
}

type ModelOption func(*Model)

func WithFPS(fps int) ModelOption {
	return func(m *Model) {
		if fps > 0 {
			m.fps = fps
		}
	}
}

func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

func WithOrbits(on bool) ModelOption {
	return func(m *Model) { m.showOrbits = on }
}

func NewModel(s *scene.Scene, opts ...ModelOption) Model {
	m := Model{
		scene:       s,
		fps:         60,
		showOrbits:  true,
		distHistory: make([]float64, 0, historyCapacity),
		logger:      log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.resize(width, height)
	return m
}

func (m Model) frame() time.Duration { return time.Second / time.Duration(m.fps) }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame(), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) step(gen uint64) tea.Cmd {
	return tea.Tick(m.frame(), func(time.Time) tea.Msg { return transitionMsg{gen: gen} })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// resize fits the canvas between the header, the padding and the side panel.
func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cw := w - panelWidth - 2*canvasPadX - 6
	ch := h - headerRows - 2*canvasPadY
	if cw < 10 {
		cw = 10
	}
	if ch < 5 {
		ch = 5
	}
	m.canvas = NewCanvas(cw, ch)
	m.scene.SetAspect(m.canvas.Aspect())
}

// CanvasRect is where the canvas sits on screen, in cells.
func (m Model) CanvasRect() pick.Rect {
	return pick.Rect{
		X: canvasPadX,
		Y: headerRows + canvasPadY,
		W: float64(m.canvas.Width),
		H: float64(m.canvas.Height),
	}
}

func (m Model) theme() Theme { return GetTheme(m.scene.Theme()) }

// Update handles input events and advances the scene.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.tooltip.Visible = false
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case TickMsg:
		m.scene.Frame()
		m.distHistory = append(m.distHistory, m.scene.Camera().Distance())
		if len(m.distHistory) > historyCapacity {
			m.distHistory = m.distHistory[1:]
		}
		return m, m.tick()
	case transitionMsg:
		if m.scene.StepTransition(msg.gen) {
			return m, m.step(msg.gen)
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	planets := m.scene.Planets()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.scene.TogglePause()
	case "t":
		m.scene.ToggleTheme()
	case "o":
		m.showOrbits = !m.showOrbits
	case "?":
		m.showHelp = !m.showHelp
	case "tab", "down", "j":
		if len(planets) > 0 {
			m.selected = (m.selected + 1) % len(planets)
		}
	case "shift+tab", "up", "k":
		if len(planets) > 0 {
			m.selected = (m.selected - 1 + len(planets)) % len(planets)
		}
	case "right", "l":
		m.nudge(1)
	case "left", "h":
		m.nudge(-1)
	case "L":
		m.nudge(10)
	case "H":
		m.nudge(-10)
	case "+", "=":
		m.scene.Dolly(1)
	case "-", "_":
		m.scene.Dolly(-1)
	case "r":
		return m, m.step(m.scene.ResetCamera())
	case "enter":
		if m.selected < len(planets) {
			gen, err := m.scene.ZoomTo(planets[m.selected].Name)
			if err == nil {
				return m, m.step(gen)
			}
		}
	}
	return m, nil
}

func (m *Model) nudge(steps int) {
	planets := m.scene.Planets()
	if m.selected >= len(planets) {
		return
	}
	name := planets[m.selected].Name
	if _, err := m.scene.NudgeSpeed(name, steps); err != nil {
		m.logger.Printf("nudge %s: %v", name, err)
	}
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	rect := m.CanvasRect()
	// pick through the centre of the cell under the pointer
	px, py := float64(msg.X)+0.5, float64(msg.Y)+0.5
	dx, dy := float64(msg.X*cellPixelsX), float64(msg.Y*cellPixelsY)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scene.Dolly(1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.scene.Dolly(-1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if rect.Contains(px, py) {
			m.scene.BeginDrag(dx, dy)
		}
	case msg.Action == tea.MouseActionRelease:
		if !m.scene.Controls().Pressed() {
			return m, nil
		}
		m.scene.EndDrag()
		if gen, ok := m.scene.Click(px, py, rect); ok {
			return m, m.step(gen)
		}
	case msg.Action == tea.MouseActionMotion:
		m.scene.Drag(dx, dy)
		m.hover(px, py, rect)
	}
	return m, nil
}

func (m *Model) hover(px, py float64, rect pick.Rect) {
	ev := m.scene.PointerMove(px, py, rect)
	switch ev.Kind {
	case pick.HoverShow:
		m.tooltip = Tooltip{
			Text:    ev.Name,
			Col:     int(ev.X-rect.X) + 1,
			Row:     int(ev.Y - rect.Y),
			Visible: true,
		}
	case pick.HoverHide:
		m.tooltip.Visible = false
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	th := m.theme()
	st := NewStyles(th)

	RenderScene(m.canvas, m.scene, th, RenderOptions{Orbits: m.showOrbits, Tooltip: m.tooltip})
	canvasView := st.Canvas.Render(m.canvas.Render(th))

	status := st.Running.Render("RUNNING")
	if m.scene.Paused() {
		status = st.Paused.Render("PAUSED")
	}
	header := st.Header.Render("ORRERY") + "  " + status
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.panel(st))
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func (m Model) panel(st Styles) string {
	if m.showHelp {
		return st.Panel.Render(helpText)
	}

	var s strings.Builder
	cam := m.scene.Camera()
	row := func(label, value string) {
		s.WriteString(st.Label.Render(label) + st.Value.Render(value) + "\n")
	}
	row("Theme", m.scene.Theme())
	row("Distance", fmt.Sprintf("%.2f", cam.Distance()))
	row("Look at", fmt.Sprintf("%.1f %.1f %.1f", cam.LookAt.X(), cam.LookAt.Y(), cam.LookAt.Z()))
	if tr := m.scene.Transition(); tr.Active() {
		row("Camera", fmt.Sprintf("moving (%.2f left)", tr.Remaining()))
	} else {
		row("Camera", "idle")
	}
	hovered := m.scene.Hovered()
	if hovered == "" {
		hovered = "-"
	}
	row("Hover", hovered)

	if len(m.distHistory) > 1 {
		chart := asciigraph.Plot(m.distHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("camera distance"))
		s.WriteString(st.Graph.Render(chart) + "\n")
	}

	s.WriteString("\nSPEEDS\n")
	rng := m.scene.SpeedRange()
	for i, b := range m.scene.Planets() {
		line := fmt.Sprintf("%-8s %s", b.Name, Slider(b.AngularSpeed, rng.SpeedMin, rng.SpeedMax, 12))
		if i == m.selected {
			s.WriteString(st.Selected.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.Value.Render(line) + "\n")
		}
	}
	s.WriteString(st.Help.Render(Separator(st, panelWidth-6) + "\nSP:Pause T:Theme R:Reset Q:Quit\n↑↓:Select ←→:Speed ⏎:Zoom ?:Help"))
	return st.Panel.Render(s.String())
}

const helpText = `KEYBOARD
  Space      pause / resume
  T          toggle light / dark
  R          fly back to the home view
  Enter      fly to the selected planet
  Tab / ↓ j  next slider
  S-Tab / ↑ k previous slider
  ← h / → l  speed down / up one step
  H / L      ten steps
  + / -      dolly in / out
  O          toggle orbit rings
  ?          toggle this help
  Q          quit

MOUSE
  hover      show the planet's name
  click      fly to a body, or home on empty space
  drag       orbit the camera
  wheel      dolly`

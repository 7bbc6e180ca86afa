package gui

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/orrery/internal/viz"
)

var (
	fallbackText = color.RGBA{R: 140, G: 140, B: 140, A: 255}
	fallbackBg   = color.RGBA{R: 10, G: 10, B: 10, A: 255}
)

// palette is a theme resolved to raylib colours.
type palette struct {
	bg, panel, text, muted, accent, highlight, star, orbit color.RGBA
}

func newPalette(th viz.Theme) palette {
	return palette{
		bg:        rgba(th.Background, fallbackBg),
		panel:     rgba(th.Panel, fallbackBg),
		text:      rgba(th.Text, fallbackText),
		muted:     rgba(th.Muted, fallbackText),
		accent:    rgba(th.Accent, fallbackText),
		highlight: rgba(th.Highlight, fallbackText),
		star:      rgba(th.Star, fallbackText),
		orbit:     rgba(th.Orbit, fallbackText),
	}
}

func (a *App) camera3D() rl.Camera3D {
	cam := a.scene.Camera()
	return rl.NewCamera3D(vec3(cam.Position), vec3(cam.LookAt), vec3(cam.Up), float32(cam.FOV), rl.CameraPerspective)
}

func (a *App) Draw() {
	th := viz.GetTheme(a.scene.Theme())
	pal := newPalette(th)

	rl.BeginTextureMode(a.target)
	rl.ClearBackground(pal.bg)
	a.drawScene(th, pal)
	rl.EndTextureMode()

	rl.BeginDrawing()
	rl.ClearBackground(pal.panel)
	tex := a.target.Texture
	// render textures are stored upside down
	src := rl.Rectangle{Width: float32(tex.Width), Height: -float32(tex.Height)}
	rl.DrawTextureRec(tex, src, rl.NewVector2(0, 0), rl.White)

	a.drawHUD(pal)
	a.drawTooltip(pal)
	a.drawControls(pal)
	rl.EndDrawing()
}

func (a *App) drawScene(th viz.Theme, pal palette) {
	rl.BeginMode3D(a.camera3D())
	for _, st := range a.scene.Stars() {
		rl.DrawPoint3D(vec3(st), pal.star)
	}
	if a.showOrbits {
		for _, b := range a.scene.Planets() {
			// DrawCircle3D draws in the XY plane; tip it onto the ecliptic
			rl.DrawCircle3D(rl.NewVector3(0, 0, 0), float32(b.Distance), rl.NewVector3(1, 0, 0), 90, pal.orbit)
		}
	}
	for _, b := range a.scene.Bodies() {
		col := rgba(viz.BodyColor(b.Color, th), pal.text)
		rl.DrawSphere(vec3(b.Position), float32(b.Radius), col)
	}
	rl.EndMode3D()
}

func (a *App) drawHUD(pal palette) {
	a.drawText("orrery", 30, 24, 24, pal.text)

	status, col := "RUNNING", pal.text
	if a.scene.Paused() {
		status, col = "PAUSED", pal.muted
	}
	a.drawText(status, int(a.width)-150, 28, 16, col)
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int(a.width)-150, 50, 14, pal.muted)

	if name := a.scene.Hovered(); name != "" {
		a.drawText(name, 30, 56, 16, pal.accent)
	}
	a.drawDistance(pal)
}

// drawDistance plots the camera distance over recent frames.
func (a *App) drawDistance(pal palette) {
	if len(a.distHistory) < 2 {
		return
	}
	view := viewRect(a.width, a.height)
	rectX, rectY := float32(30), float32(view.H)-80
	w, h := float32(300), float32(50)

	lo, hi := a.distHistory[0], a.distHistory[0]
	for _, v := range a.distHistory {
		lo, hi = min(lo, v), max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	points := make([]rl.Vector2, len(a.distHistory))
	for i, v := range a.distHistory {
		px := rectX + float32(i)/float32(historyCapacity)*w
		py := rectY + h - float32((v-lo)/(hi-lo))*h
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, pal.highlight)
	last := a.distHistory[len(a.distHistory)-1]
	a.drawText(fmt.Sprintf("d %.1f", last), int(rectX+w)+10, int(rectY+h)-10, 14, pal.muted)
}

func (a *App) drawTooltip(pal palette) {
	if !a.tip.visible {
		return
	}
	const size, pad = 16, 6
	m := rl.MeasureTextEx(a.font, a.tip.text, size, 1)
	box := rl.Rectangle{X: a.tip.x + 12, Y: a.tip.y - m.Y - 2*pad, Width: m.X + 2*pad, Height: m.Y + 2*pad}
	rl.DrawRectangleRec(box, rl.ColorAlpha(pal.panel, 0.85))
	rl.DrawRectangleLinesEx(box, 1, pal.muted)
	rl.DrawTextEx(a.font, a.tip.text, rl.NewVector2(box.X+pad, box.Y+pad), size, 1, pal.text)
}

func (a *App) drawControls(pal palette) {
	top := a.height - controlsHeight
	rl.DrawRectangle(0, top, a.width, controlsHeight, pal.panel)
	rl.DrawLine(0, top, a.width, top, pal.muted)
	a.drawText("SPEEDS", marginX, int(top)+10, 14, pal.muted)

	rng := a.scene.SpeedRange()
	for i, b := range a.scene.Planets() {
		r := sliderRect(i, a.width, a.height)
		col := pal.text
		if i == a.slider {
			col = pal.highlight
		}
		a.drawText(fmt.Sprintf("%s %.3f", b.Name, b.AngularSpeed), int(r.X), int(r.Y)-18, 14, col)
		rl.DrawRectangleRec(r, pal.orbit)
		filled := r
		filled.Width *= sliderFraction(b.AngularSpeed, rng.SpeedMin, rng.SpeedMax)
		rl.DrawRectangleRec(filled, col)
		rl.DrawCircleV(rl.NewVector2(r.X+filled.Width, r.Y+r.Height/2), 7, col)
	}

	pause := "Pause"
	if a.scene.Paused() {
		pause = "Resume"
	}
	theme := "Light"
	if a.scene.Theme() == "light" {
		theme = "Dark"
	}
	for i, label := range []string{pause, theme, "Reset"} {
		a.drawButton(buttonRect(i, a.width, a.height), label, pal)
	}
}

func (a *App) drawButton(r rl.Rectangle, label string, pal palette) {
	col := pal.muted
	if rl.CheckCollisionPointRec(rl.GetMousePosition(), r) {
		col = pal.accent
	}
	rl.DrawRectangleLinesEx(r, 1, col)
	m := rl.MeasureTextEx(a.font, label, 16, 1)
	rl.DrawTextEx(a.font, label, rl.NewVector2(r.X+(r.Width-m.X)/2, r.Y+(r.Height-m.Y)/2), 16, 1, col)
}

func (a *App) drawText(text string, x, y int, size int, col color.RGBA) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, col)
}

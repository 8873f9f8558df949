package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bridge-runner/internal/bridge"
	"github.com/vovakirdan/bridge-runner/internal/config"
	"github.com/vovakirdan/bridge-runner/internal/core"
)

// skyAbove is how much world height above the floor stays in view.
const skyAbove = 260.0

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Each same-colored run is styled once to keep escape sequences down.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, run := range s.Runs(y) {
			style, ok := colorStyles[run.Fg]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.Text))
		}
	}
	return sb.String()
}

// WorldProjection maps the camera's view of the world onto dst, leaving row 0
// free for the HUD. jolt in [-1, 1] picks the shake direction for this frame.
func WorldProjection(dst *core.Screen, rs bridge.RenderState, cfg config.BridgeConfig, jolt float64) core.Projection {
	top := cfg.FloorY() - skyAbove
	rows := max(dst.Height()-1, 1)
	proj := core.Fit(rs.CameraX+rs.Shake*jolt, top, cfg.Viewport.Width, cfg.Viewport.Height-top, max(dst.Width(), 1), rows)
	proj.OriginY -= 1 / proj.ScaleY
	return proj
}

// DrawWorld draws platforms, stick and hero.
func DrawWorld(dst *core.Screen, rs bridge.RenderState, cfg config.BridgeConfig, proj core.Projection) {
	floor := cfg.FloorY()

	for i, p := range rs.Platforms {
		color := core.ColorGray
		if p.IsMoving {
			color = core.ColorBlue
		}
		dst.FillRect(proj.Rect(p.X, floor, p.Width, cfg.Platforms.Height), '█', color)
		if i > 0 {
			cx, cy := proj.Cell(p.Center(), floor)
			dst.Set(cx, cy, '▀', core.ColorRed)
		}
	}

	drawStick(dst, rs, floor, proj)

	h := rs.Hero
	glyph := '█'
	if h.Rotation != 0 {
		glyph = '▓'
	}
	dst.FillRect(proj.Rect(h.X, h.Y, cfg.Hero.Width, cfg.Hero.Height), glyph, core.ColorCyan)
}

// drawStick samples the stick densely enough to leave no gaps between cells.
func drawStick(dst *core.Screen, rs bridge.RenderState, floor float64, proj core.Projection) {
	s := rs.Stick
	if s.Length <= 0 {
		return
	}
	rad := bridge.AngleRad(s.Rotation)
	dx, dy := math.Sin(rad), -math.Cos(rad)
	glyph := stickGlyph(s.Rotation)

	steps := int(s.Length*math.Max(proj.ScaleX, proj.ScaleY)*2) + 1
	for i := 0; i <= steps; i++ {
		t := s.Length * float64(i) / float64(steps)
		// Nudge up so a flat stick sits on the platform's top row
		x, y := proj.Cell(rs.StickX+dx*t, floor+dy*t-0.01)
		dst.Set(x, y, glyph, core.ColorYellow)
	}
}

func stickGlyph(deg float64) rune {
	deg = math.Mod(deg, 180)
	switch {
	case deg < 22.5:
		return '│'
	case deg < 67.5:
		return '/'
	case deg < 112.5:
		return '━'
	case deg < 157.5:
		return '\\'
	default:
		return '│'
	}
}

// HUD is the text drawn over the world.
type HUD struct {
	Score    int
	Best     int
	Streak   int
	Seed     uint32
	Preset   string
	Banner   string
	Paused   bool
	Prompt   bool
	Over     bool
	Verdict  string
	Verified int
}

// DrawHUD writes the status line and any modal overlay.
func DrawHUD(dst *core.Screen, h HUD) {
	line := fmt.Sprintf(" SCORE %d  BEST %d", h.Score, h.Best)
	if h.Streak > 1 {
		line += fmt.Sprintf("  PERFECT x%d", h.Streak)
	}
	dst.DrawText(0, 0, line, core.ColorWhite)

	tag := fmt.Sprintf("%s #%d ", h.Preset, h.Seed)
	dst.DrawText(dst.Width()-len([]rune(tag)), 0, tag, core.ColorGray)

	if h.Banner != "" {
		dst.DrawTextCentered(2, h.Banner, core.ColorYellow)
	}

	switch {
	case h.Prompt:
		drawPanel(dst, core.ColorMagenta,
			"YOU FELL",
			fmt.Sprintf("score %d", h.Score),
			"",
			"[v] free revive   [x] power-up",
			"[r] give up")
	case h.Over:
		result := "not submitted"
		if h.Verdict != "" {
			result = fmt.Sprintf("replay %s (%d)", h.Verdict, h.Verified)
		}
		drawPanel(dst, core.ColorRed,
			"GAME OVER",
			fmt.Sprintf("score %d", h.Score),
			result,
			"",
			"[r] new run   [q] quit")
	case h.Paused:
		drawPanel(dst, core.ColorYellow, "PAUSED", "", "[p] resume")
	}
}

// drawPanel draws a boxed block of centered lines in the middle of dst.
func drawPanel(dst *core.Screen, c core.Color, lines ...string) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w += 4
	h := len(lines) + 2
	r := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)

	dst.FillRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, c)
	for i, l := range lines {
		x := r.X + (w-len([]rune(l)))/2
		dst.DrawText(x, r.Y+1+i, l, core.ColorWhite)
	}
}

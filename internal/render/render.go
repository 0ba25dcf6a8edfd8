// Package render paints a simulation snapshot onto a drawing surface.
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/olivierh59500/gridview/internal/sim"
)

// Colors used for a frame
var (
	Background = color.RGBA{200, 230, 200, 255} // light green field
	GridLine   = color.RGBA{128, 128, 128, 255}
	LabelColor = color.RGBA{0, 0, 0, 255}
)

// LabelOffset lifts agent labels above their cell.
const LabelOffset = 5

// Surface is a display area the renderer draws on. Coordinates are pixels
// from the top-left of the surface.
type Surface interface {
	Size() (width, height int)
	FillRect(x, y, w, h int, c color.Color)
	Line(x0, y0, x1, y1 int, c color.Color)
	DrawImage(img image.Image, x, y, w, h int)
	Text(s string, x, y int, c color.Color)
}

// Images resolves image keys. *imagecache.Cache satisfies it.
type Images interface {
	Resolve(key string) image.Image
}

// Renderer draws frames using images from its cache
type Renderer struct {
	images Images
}

// NewRenderer creates a renderer
func NewRenderer(images Images) *Renderer {
	return &Renderer{images: images}
}

// CellSize returns the largest integer cell that fits the grid in the surface on both axes.
func CellSize(surfaceW, surfaceH, gridW, gridH int) int {
	if gridW <= 0 || gridH <= 0 {
		return 0
	}
	return min(surfaceW/gridW, surfaceH/gridH)
}

// Render draws snap onto s: background, grid lines, uncollected resources, then
// agents with their labels. A nil snapshot draws nothing, as does a surface too
// small to give a cell at least one pixel.
//
// Render must be called from the goroutine that advances the simulation.
func (r *Renderer) Render(s Surface, snap *sim.Snapshot) {
	if snap == nil {
		return
	}
	env := snap.Env
	sw, sh := s.Size()
	cell := CellSize(sw, sh, env.Width, env.Height)
	if cell <= 0 {
		return
	}

	r.background(s, env, cell)
	r.resources(s, env, cell)
	r.agents(s, snap.Agents, cell)
}

func (r *Renderer) background(s Surface, env sim.Environment, cell int) {
	w := env.Width * cell
	h := env.Height * cell
	s.FillRect(0, 0, w, h, Background)

	for x := 0; x <= env.Width; x++ {
		s.Line(x*cell, 0, x*cell, h, GridLine)
	}
	for y := 0; y <= env.Height; y++ {
		s.Line(0, y*cell, w, y*cell, GridLine)
	}
}

func (r *Renderer) resources(s Surface, env sim.Environment, cell int) {
	for _, res := range env.Resources {
		if res.Collected {
			continue
		}
		img := r.images.Resolve(res.Image)
		s.DrawImage(img, res.Pos.X*cell, res.Pos.Y*cell, cell, cell)
	}
}

func (r *Renderer) agents(s Surface, agents []sim.Agent, cell int) {
	for _, a := range agents {
		img := r.images.Resolve(a.Image)
		x, y := a.Pos.X*cell, a.Pos.Y*cell
		s.DrawImage(img, x, y, cell, cell)
		s.Text(Label(a), x, y-LabelOffset, LabelColor)
	}
}

// Label is the text shown above an agent.
func Label(a sim.Agent) string {
	return fmt.Sprintf("%s: %d", a.Name, a.Collected)
}

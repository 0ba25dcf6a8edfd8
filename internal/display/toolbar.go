package display

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Toolbar geometry
const (
	toolbarHeight   = 36
	statusBarHeight = 24
	buttonPadX      = 10
	buttonGap       = 8
	glyphWidth      = 7 // basicfont.Face7x13 advance
)

var (
	panelColor       = color.RGBA{235, 235, 235, 255}
	buttonColor      = color.RGBA{250, 250, 250, 255}
	buttonHoverColor = color.RGBA{215, 228, 245, 255}
	buttonEdgeColor  = color.RGBA{150, 150, 150, 255}
	textColor        = color.RGBA{20, 20, 20, 255}
)

type button struct {
	label  string
	key    ebiten.Key // Keyboard shortcut
	rect   image.Rectangle
	action func()
}

// layoutButtons places buttons left to right, centered in the toolbar.
func layoutButtons(buttons []*button, width int) {
	total := 0
	for _, b := range buttons {
		total += len(b.label)*glyphWidth + 2*buttonPadX
	}
	total += buttonGap * (len(buttons) - 1)

	x := max((width-total)/2, buttonGap)
	for _, b := range buttons {
		w := len(b.label)*glyphWidth + 2*buttonPadX
		b.rect = image.Rect(x, 6, x+w, toolbarHeight-6)
		x += w + buttonGap
	}
}

// hit returns the button under (x, y), or nil.
func hit(buttons []*button, x, y int) *button {
	p := image.Pt(x, y)
	for _, b := range buttons {
		if p.In(b.rect) {
			return b
		}
	}
	return nil
}

func drawButton(dst *ebiten.Image, s *Surface, b *button, hover bool) {
	r := b.rect
	fill := buttonColor
	if hover {
		fill = buttonHoverColor
	}
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), fill, false)
	vector.StrokeRect(dst, float32(r.Min.X)+0.5, float32(r.Min.Y)+0.5, float32(r.Dx()-1), float32(r.Dy()-1), 1, buttonEdgeColor, false)
	s.Text(b.label, r.Min.X+buttonPadX, r.Min.Y+r.Dy()/2+4, textColor)
}

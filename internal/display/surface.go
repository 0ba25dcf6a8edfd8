package display

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/olivierh59500/gridview/internal/render"
)

// DefaultFace is the bitmap font used for labels and controls
func DefaultFace() text.Face {
	return text.NewGoXFace(basicfont.Face7x13)
}

// Upload turns a decoded image into a texture. It is the image cache's upload hook,
// so each asset reaches the GPU once.
func Upload(img image.Image) image.Image {
	if e, ok := img.(*ebiten.Image); ok {
		return e
	}
	return ebiten.NewImageFromImage(img)
}

// Surface draws on an ebiten image. It implements render.Surface.
type Surface struct {
	dst  *ebiten.Image
	face text.Face
}

var _ render.Surface = (*Surface)(nil)

// NewSurface wraps dst
func NewSurface(dst *ebiten.Image, face text.Face) *Surface {
	return &Surface{dst: dst, face: face}
}

// Size returns the target image size in pixels.
func (s *Surface) Size() (int, int) {
	b := s.dst.Bounds()
	return b.Dx(), b.Dy()
}

// FillRect fills the w×h rectangle at (x, y).
func (s *Surface) FillRect(x, y, w, h int, c color.Color) {
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), c, false)
}

// Line strokes a one pixel line through pixel centers.
func (s *Surface) Line(x0, y0, x1, y1 int, c color.Color) {
	vector.StrokeLine(s.dst, float32(x0)+0.5, float32(y0)+0.5, float32(x1)+0.5, float32(y1)+0.5, 1, c, false)
}

// DrawImage scales img into the w×h box at (x, y).
func (s *Surface) DrawImage(img image.Image, x, y, w, h int) {
	src, ok := img.(*ebiten.Image)
	if !ok {
		// Only reached for images that bypassed the cache upload.
		src = ebiten.NewImageFromImage(img)
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	op.GeoM.Translate(float64(x), float64(y))
	op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(src, op)
}

// Text draws s with its baseline at y.
func (s *Surface) Text(str string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y)-s.face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.dst, str, s.face, op)
}

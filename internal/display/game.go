// Package display runs the viewer window on Ebitengine: controls, status bar and
// the simulation area. Ebitengine calls Update and Draw on one goroutine, which is
// the only goroutine that touches the loop, the simulation and the image cache.
package display

import (
	"context"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/gridview/internal/imagecache"
	"github.com/olivierh59500/gridview/internal/logger"
	"github.com/olivierh59500/gridview/internal/loop"
)

// Option configures a Game
type Option func(*Game)

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		g.log = l
	}
}

// WithContext ends the game when ctx is done.
func WithContext(ctx context.Context) Option {
	return func(g *Game) {
		g.done = ctx.Done()
	}
}

// WithStats enables the F3 overlay's process figures and shows it at startup if visible is set.
func WithStats(s *Stats, visible bool) Option {
	return func(g *Game) {
		g.stats = s
		g.showStats = visible
	}
}

// Game is the Ebitengine game for one display session.
type Game struct {
	loop     *loop.Loop
	cache    *imagecache.Cache
	scenario string
	log      *log.Logger
	face     text.Face
	buttons  []*button

	width, height int

	// Cached rendering of the simulation area
	frame    *ebiten.Image
	frameGen uint64
	stale    bool

	stats     *Stats
	showStats bool
	done      <-chan struct{}
}

// NewGame creates the window contents. scenario is the id the Start button loads.
func NewGame(l *loop.Loop, cache *imagecache.Cache, scenario string, opts ...Option) *Game {
	g := &Game{
		loop:     l,
		cache:    cache,
		scenario: scenario,
		log:      logger.Discard(),
		face:     DefaultFace(),
		stale:    true,
	}
	g.buttons = []*button{
		{label: "Start simulation", key: ebiten.KeyEnter, action: g.start},
		{label: "Next turn", key: ebiten.KeyN, action: g.nextTurn},
		{label: "Auto run", key: ebiten.KeySpace, action: g.toggleAuto},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Game) start() {
	if err := g.loop.Start(g.scenario); err != nil {
		g.fail("start", err)
	}
}

func (g *Game) nextTurn() {
	if err := g.loop.ManualAdvanceTurn(); err != nil {
		g.fail("next turn", err)
	}
}

func (g *Game) toggleAuto() {
	g.loop.ToggleAutoAdvance()
}

func (g *Game) fail(action string, err error) {
	g.log.Error(action+" failed", "err", err)
	g.loop.SetStatusText(fmt.Sprintf("Error: %v", err))
}

// Update is called every tick by Ebitengine
func (g *Game) Update() error {
	select {
	case <-g.done:
		return ebiten.Termination
	default:
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showStats = !g.showStats
	}

	for _, b := range g.buttons {
		if inpututil.IsKeyJustPressed(b.key) {
			b.action()
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if b := hit(g.buttons, mx, my); b != nil {
			b.action()
		}
	}

	// The periodic driver: at most one whole turn per tick.
	if err := g.loop.Update(); err != nil {
		g.fail("auto turn", err)
	}
	return nil
}

// Draw is called every frame by Ebitengine
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(panelColor)
	s := NewSurface(screen, g.face)

	g.drawSimulation(screen)

	mx, my := ebiten.CursorPosition()
	hover := hit(g.buttons, mx, my)
	for _, b := range g.buttons {
		drawButton(screen, s, b, b == hover)
	}

	st := g.loop.Status()
	y := g.height - statusBarHeight/2 + 4
	s.Text(st.Turn, buttonGap, y, textColor)
	s.Text(st.Text, buttonGap+len(st.Turn)*glyphWidth+4*buttonGap, y, textColor)

	if g.showStats {
		g.drawOverlay(screen, s)
	}
}

// drawSimulation repaints the cached frame only when a turn completed or the
// area changed size, then copies it under the toolbar.
func (g *Game) drawSimulation(screen *ebiten.Image) {
	w, h := g.width, g.height-toolbarHeight-statusBarHeight
	if w <= 0 || h <= 0 {
		return
	}
	if g.frame == nil || g.frame.Bounds().Dx() != w || g.frame.Bounds().Dy() != h {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(w, h)
		g.stale = true
	}
	if gen := g.loop.Generation(); g.stale || gen != g.frameGen {
		g.frame.Clear()
		g.loop.RenderFrame(NewSurface(g.frame, g.face))
		g.frameGen = gen
		g.stale = false
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, toolbarHeight)
	screen.DrawImage(g.frame, op)
}

func (g *Game) drawOverlay(screen *ebiten.Image, s *Surface) {
	lines := g.overlayLines()
	const lineH = 16
	w := 0
	for _, l := range lines {
		w = max(w, len(l)*glyphWidth)
	}
	x, y := g.width-w-2*buttonGap, toolbarHeight+buttonGap
	vector.DrawFilledRect(screen, float32(x-buttonGap/2), float32(y), float32(w+buttonGap), float32(len(lines)*lineH+buttonGap), color.RGBA{0, 0, 0, 160}, false)
	for i, l := range lines {
		s.Text(l, x, y+(i+1)*lineH, color.White)
	}
}

// Layout follows the window size so resizing re-lays the controls.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		layoutButtons(g.buttons, g.width)
	}
	return outsideWidth, outsideHeight
}

package render

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/olivierh59500/gridview/internal/sim"
)

type call struct {
	op         string
	x, y, w, h int
	text       string
	img        image.Image
}

// recorder is a Surface that logs draw calls.
type recorder struct {
	w, h  int
	calls []call
}

func (r *recorder) Size() (int, int) { return r.w, r.h }

func (r *recorder) FillRect(x, y, w, h int, c color.Color) {
	r.calls = append(r.calls, call{op: "fill", x: x, y: y, w: w, h: h})
}

func (r *recorder) Line(x0, y0, x1, y1 int, c color.Color) {
	r.calls = append(r.calls, call{op: "line", x: x0, y: y0, w: x1, h: y1})
}

func (r *recorder) DrawImage(img image.Image, x, y, w, h int) {
	r.calls = append(r.calls, call{op: "image", x: x, y: y, w: w, h: h, img: img})
}

func (r *recorder) Text(s string, x, y int, c color.Color) {
	r.calls = append(r.calls, call{op: "text", x: x, y: y, text: s})
}

func (r *recorder) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

// images hands out one distinct bitmap per key and counts lookups.
type images struct {
	lookups []string
	byKey   map[string]image.Image
}

func (i *images) Resolve(key string) image.Image {
	i.lookups = append(i.lookups, key)
	if i.byKey == nil {
		i.byKey = make(map[string]image.Image)
	}
	img, ok := i.byKey[key]
	if !ok {
		img = image.NewRGBA(image.Rect(0, 0, 1, 1))
		i.byKey[key] = img
	}
	return img
}

func TestCellSize(t *testing.T) {
	tests := []struct {
		sw, sh, gw, gh int
		want           int
	}{
		{800, 800, 10, 20, 40},
		{800, 800, 20, 10, 40},
		{799, 800, 10, 10, 79},
		{1000, 700, 30, 30, 23},
		{5, 5, 10, 10, 0},
		{800, 800, 0, 10, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dx%d/%dx%d", tt.sw, tt.sh, tt.gw, tt.gh), func(t *testing.T) {
			if got := CellSize(tt.sw, tt.sh, tt.gw, tt.gh); got != tt.want {
				t.Errorf("CellSize = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRenderNilSnapshotDrawsNothing(t *testing.T) {
	surf := &recorder{w: 800, h: 800}
	imgs := &images{}
	NewRenderer(imgs).Render(surf, nil)

	if len(surf.calls) != 0 || len(imgs.lookups) != 0 {
		t.Errorf("Expected no draw calls and no lookups, got %d calls, %d lookups", len(surf.calls), len(imgs.lookups))
	}
}

func TestRenderEmptyWorldDrawsOnlyBackgroundAndGrid(t *testing.T) {
	surf := &recorder{w: 800, h: 800}
	imgs := &images{}
	snap := &sim.Snapshot{Env: sim.Environment{Width: 10, Height: 20}}

	NewRenderer(imgs).Render(surf, snap)

	if len(imgs.lookups) != 0 {
		t.Errorf("Expected zero image lookups, got %v", imgs.lookups)
	}
	if surf.count("fill") != 1 {
		t.Errorf("Expected one background fill, got %d", surf.count("fill"))
	}
	// 11 vertical + 21 horizontal
	if surf.count("line") != 32 {
		t.Errorf("Expected 32 grid lines, got %d", surf.count("line"))
	}
	if surf.count("image") != 0 || surf.count("text") != 0 {
		t.Error("Expected no images or text")
	}

	bg := surf.calls[0]
	if bg.op != "fill" || bg.w != 400 || bg.h != 800 {
		t.Errorf("Expected 400x800 background first, got %+v", bg)
	}
}

func TestRenderSkipsCollectedResources(t *testing.T) {
	surf := &recorder{w: 100, h: 100}
	imgs := &images{}
	snap := &sim.Snapshot{Env: sim.Environment{
		Width: 10, Height: 10,
		Resources: []sim.Resource{
			{Pos: sim.Point{X: 1, Y: 2}, Image: "mate.png"},
			{Pos: sim.Point{X: 3, Y: 4}, Image: "gone.png", Collected: true},
		},
	}}

	NewRenderer(imgs).Render(surf, snap)

	if surf.count("image") != 1 {
		t.Fatalf("Expected 1 image draw, got %d", surf.count("image"))
	}
	for _, key := range imgs.lookups {
		if key == "gone.png" {
			t.Error("Collected resource must not be resolved")
		}
	}
	for _, c := range surf.calls {
		if c.op == "image" && (c.x != 10 || c.y != 20 || c.w != 10 || c.h != 10) {
			t.Errorf("Expected resource at (10,20) size 10, got %+v", c)
		}
	}
}

func TestRenderOrderAndLabels(t *testing.T) {
	surf := &recorder{w: 200, h: 200}
	imgs := &images{}
	snap := &sim.Snapshot{
		Env: sim.Environment{
			Width: 4, Height: 4,
			Resources: []sim.Resource{{Pos: sim.Point{X: 2, Y: 2}, Image: "mate.png"}},
		},
		Agents: []sim.Agent{{Name: "Guarani", Pos: sim.Point{X: 2, Y: 2}, Collected: 3, Image: "agent.png"}},
	}

	NewRenderer(imgs).Render(surf, snap)

	var order []string
	for _, c := range surf.calls {
		if len(order) == 0 || order[len(order)-1] != c.op {
			order = append(order, c.op)
		}
	}
	want := []string{"fill", "line", "image", "text"}
	if fmt.Sprint(order) != fmt.Sprint(want) {
		t.Fatalf("Expected draw order %v, got %v", want, order)
	}

	n := len(surf.calls)
	resource, agent, label := surf.calls[n-3], surf.calls[n-2], surf.calls[n-1]
	if resource.img != imgs.byKey["mate.png"] || agent.img != imgs.byKey["agent.png"] {
		t.Error("Expected resource drawn before agent")
	}
	if label.text != "Guarani: 3" {
		t.Errorf("Expected label %q, got %q", "Guarani: 3", label.text)
	}
	if label.x != 100 || label.y != 100-LabelOffset {
		t.Errorf("Expected label at (100,%d), got (%d,%d)", 100-LabelOffset, label.x, label.y)
	}
}

func TestRenderTooSmallSurface(t *testing.T) {
	surf := &recorder{w: 3, h: 3}
	snap := &sim.Snapshot{Env: sim.Environment{Width: 10, Height: 10}}
	NewRenderer(&images{}).Render(surf, snap)
	if len(surf.calls) != 0 {
		t.Errorf("Expected nothing drawn, got %d calls", len(surf.calls))
	}
}

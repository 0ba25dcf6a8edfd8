package display

import "testing"

func TestLayoutButtonsAndHit(t *testing.T) {
	clicked := ""
	buttons := []*button{
		{label: "Start simulation", action: func() { clicked = "start" }},
		{label: "Next turn", action: func() { clicked = "next" }},
		{label: "Auto run", action: func() { clicked = "auto" }},
	}
	layoutButtons(buttons, 1000)

	for i := 1; i < len(buttons); i++ {
		if buttons[i].rect.Min.X <= buttons[i-1].rect.Max.X {
			t.Errorf("button %d overlaps button %d", i, i-1)
		}
	}
	if last := buttons[len(buttons)-1].rect; last.Max.X > 1000 || last.Max.Y > toolbarHeight {
		t.Errorf("Expected buttons inside the toolbar, got %v", last)
	}

	r := buttons[1].rect
	if b := hit(buttons, r.Min.X+1, r.Min.Y+1); b == nil {
		t.Fatal("Expected a hit on the second button")
	} else {
		b.action()
	}
	if clicked != "next" {
		t.Errorf("Expected next, got %q", clicked)
	}
	if b := hit(buttons, 0, toolbarHeight+10); b != nil {
		t.Errorf("Expected no hit below the toolbar, got %q", b.label)
	}
}

func TestLayoutButtonsNarrowWindow(t *testing.T) {
	buttons := []*button{{label: "Start simulation"}, {label: "Next turn"}}
	layoutButtons(buttons, 50)
	if buttons[0].rect.Min.X != buttonGap {
		t.Errorf("Expected first button pinned at %d, got %d", buttonGap, buttons[0].rect.Min.X)
	}
}

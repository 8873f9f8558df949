package core

import "testing"

func TestRectClip(t *testing.T) {
	tests := []struct {
		name     string
		r        Rect
		expected Rect
	}{
		{"inside", NewRect(2, 2, 3, 3), NewRect(2, 2, 3, 3)},
		{"hangs off right", NewRect(8, 0, 5, 2), NewRect(8, 0, 2, 2)},
		{"hangs off top-left", NewRect(-3, -1, 5, 3), NewRect(0, 0, 2, 2)},
		{"fully outside", NewRect(20, 20, 3, 3), NewRect(10, 10, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Clip(10, 10); got != tc.expected {
				t.Errorf("Clip() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
	if !NewRect(20, 20, 3, 3).Clip(10, 10).Empty() {
		t.Error("clipped-away rect should be empty")
	}
}

func TestProjection(t *testing.T) {
	// 400x200 world band shown on 80x20 cells: 5 units per column, 10 per row
	p := Fit(100, 500, 400, 200, 80, 20)

	tests := []struct {
		name   string
		x, y   float64
		cx, cy int
	}{
		{"origin", 100, 500, 0, 0},
		{"inside first cell", 104.9, 509.9, 0, 0},
		{"next cell", 105, 510, 1, 1},
		{"far corner", 499, 699, 79, 19},
		{"left of view", 90, 500, -2, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cx, cy := p.Cell(tc.x, tc.y)
			if cx != tc.cx || cy != tc.cy {
				t.Errorf("Cell(%v, %v) = (%d, %d), expected (%d, %d)", tc.x, tc.y, cx, cy, tc.cx, tc.cy)
			}
		})
	}

	if r := p.Rect(110, 520, 20, 28); r != NewRect(2, 2, 4, 3) {
		t.Errorf("Rect() = %+v, expected {2 2 4 3}", r)
	}
	if r := p.Rect(110, 520, 0.5, 0.5); r.W != 1 || r.H != 1 {
		t.Errorf("tiny Rect() = %+v, expected one cell", r)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampFrame(t *testing.T) {
	if got := ClampFrame(0.5); got != MaxFrameSeconds {
		t.Errorf("ClampFrame(0.5) = %v, expected %v", got, MaxFrameSeconds)
	}
	if got := ClampFrame(-1); got != 0 {
		t.Errorf("ClampFrame(-1) = %v, expected 0", got)
	}
	if got := ClampFrame(0.016); got != 0.016 {
		t.Errorf("ClampFrame(0.016) = %v", got)
	}
	cfg := DefaultConfig()
	if got := cfg.FrameSeconds(); got != 1.0/60 {
		t.Errorf("FrameSeconds() = %v, expected 1/60", got)
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}
	f.Set(ActionPress)
	if !f.Has(ActionPress) || f.Has(ActionRevive) {
		t.Errorf("Has() mismatch: %v", f.Actions)
	}
	f.Clear()
	if !f.Empty() {
		t.Error("Clear() should remove all actions")
	}

	var zero InputFrame
	zero.Set(ActionQuit)
	if !zero.Has(ActionQuit) {
		t.Error("Set() on zero frame should allocate")
	}
	if ActionPowerUp.String() != "PowerUp" || Action(99).String() != "Unknown" {
		t.Error("String() names mismatch")
	}
}

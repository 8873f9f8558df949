package bridge

import (
	"math"
	"testing"

	"github.com/vovakirdan/bridge-runner/internal/config"
)

func TestPositionAtMatchesLiveMotion(t *testing.T) {
	tests := []struct {
		name     string
		velocity float64
		initialX float64
	}{
		{"rightward from middle", 50, 115},
		{"leftward from middle", -50, 115},
		{"starts on min bound", 73, 100},
		{"starts on max bound", -41, 130},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Platform{
				X: tc.initialX, Width: 40, IsMoving: true,
				Velocity: tc.velocity, InitialVelocity: tc.velocity,
				MinX: 100, MaxX: 130, InitialX: tc.initialX,
			}
			period := 2 * (p.MaxX - p.MinX) / math.Abs(tc.velocity)

			// Several full periods at an uneven frame rate
			dts := []float64{1.0 / 60, 1.0 / 30, 0.007, 0.1}
			for i := 0; p.Age < 4*period; i++ {
				p.Update(dts[i%len(dts)])
				want := p.PositionAt(p.Age)
				if math.Abs(p.X-want) > 1e-6 {
					t.Fatalf("t=%.4f: live X = %v, closed form = %v", p.Age, p.X, want)
				}
				if p.X < p.MinX || p.X > p.MaxX {
					t.Fatalf("t=%.4f: X = %v escaped [%v, %v]", p.Age, p.X, p.MinX, p.MaxX)
				}
			}
		})
	}
}

func TestPositionAtIsPeriodic(t *testing.T) {
	p := Platform{Width: 40, IsMoving: true, InitialVelocity: 60, MinX: 200, MaxX: 224, InitialX: 210}
	period := 2 * (p.MaxX - p.MinX) / 60

	for _, at := range []float64{0, 0.13, 0.5, 0.79} {
		a := p.PositionAt(at)
		b := p.PositionAt(at + 3*period)
		if math.Abs(a-b) > 1e-9 {
			t.Errorf("PositionAt(%v) = %v, PositionAt(+3 periods) = %v", at, a, b)
		}
	}
	if got := p.PositionAt(0); got != p.InitialX {
		t.Errorf("PositionAt(0) = %v, expected InitialX %v", got, p.InitialX)
	}
}

func TestPositionAtCollapsedRange(t *testing.T) {
	p := Platform{X: 150, Width: 40, IsMoving: true, InitialVelocity: 80, MinX: 150, MaxX: 150, InitialX: 150}
	if got := p.PositionAt(12.5); got != 150 {
		t.Errorf("PositionAt() = %v, expected constant 150", got)
	}
	p.Update(0.5)
	if p.X != 150 {
		t.Errorf("Update() moved a zero-range platform to %v", p.X)
	}
}

func TestStopKeepsBounds(t *testing.T) {
	p := Platform{X: 110, IsMoving: true, Velocity: 30, InitialVelocity: 30, MinX: 100, MaxX: 130, InitialX: 110}
	p.Stop()
	p.Update(1)
	if p.X != 110 || p.IsMoving {
		t.Errorf("stopped platform moved: %+v", p)
	}
	if p.MinX != 100 || p.MaxX != 130 {
		t.Errorf("Stop() dropped bounds: %+v", p)
	}
}

func TestLayoutNeverOverlaps(t *testing.T) {
	cfg := config.DefaultBridgeConfig()
	cfg.Moving.Probability = 1

	for seed := uint32(1); seed <= 50; seed++ {
		l := NewLayout(cfg, seed)
		prev, next := l.Initial()
		for i := 0; i < 80; i++ {
			if next.IsMoving {
				if next.MinX > next.InitialX || next.InitialX > next.MaxX {
					t.Fatalf("seed %d index %d: InitialX %v outside [%v, %v]", seed, next.Index, next.InitialX, next.MinX, next.MaxX)
				}
			}
			// Closest approach of the new platform vs farthest reach of the old one
			if next.MinX < prev.SweepRight() {
				t.Fatalf("seed %d index %d: MinX %v overlaps previous sweep %v", seed, next.Index, next.MinX, prev.SweepRight())
			}
			if next.Index != prev.Index+1 {
				t.Fatalf("seed %d: index %d follows %d", seed, next.Index, prev.Index)
			}
			prev, next = next, l.Next(next, int64(i)*1000)
		}
	}
}

func TestLayoutHonoursFromIndex(t *testing.T) {
	cfg := config.DefaultBridgeConfig()
	cfg.Moving.Probability = 1
	cfg.Moving.FromIndex = 3

	l := NewLayout(cfg, 7)
	_, next := l.Initial()
	for next.Index < 3 {
		if next.IsMoving {
			t.Fatalf("platform %d moves before from_index", next.Index)
		}
		next = l.Next(next, 0)
	}
	if !next.IsMoving {
		t.Errorf("platform %d should move with probability 1", next.Index)
	}
}

func TestLayoutIgnoresLiveDrift(t *testing.T) {
	cfg := config.DefaultBridgeConfig()
	cfg.Moving.Probability = 1

	a := NewLayout(cfg, 321)
	b := NewLayout(cfg, 321)
	_, pa := a.Initial()
	_, pb := b.Initial()
	pa = a.Next(pa, 0)
	pb = b.Next(pb, 0)

	// Drift one copy and freeze it somewhere else
	pb.Update(0.77)
	pb = Freeze(pb, 1234)

	na := a.Next(pa, 500)
	nb := b.Next(pb, 500)
	if na.InitialX != nb.InitialX || na.Width != nb.Width || na.MinX != nb.MinX || na.MaxX != nb.MaxX {
		t.Errorf("generation depends on live position:\n%+v\n%+v", na, nb)
	}
}

func TestJudge(t *testing.T) {
	sc := config.DefaultBridgeConfig().Scoring
	current := Platform{X: 40, Width: 80}
	target := Platform{X: 200, Width: 60} // Center at 230

	tests := []struct {
		name    string
		length  float64
		hit     bool
		perfect bool
		points  int
	}{
		{"short", 50, false, false, 0},
		{"left edge", 80, true, false, 1},
		{"center", 110, true, true, 3},
		{"edge of perfect zone", 115, true, true, 3},
		{"just outside perfect zone", 115.5, true, false, 1},
		{"right edge", 140, true, false, 1},
		{"overshoot", 141, false, false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := Judge(sc, current, target, tc.length)
			if l.Hit != tc.hit || l.Perfect != tc.perfect || l.Points != tc.points {
				t.Errorf("Judge(%v) = %+v, expected hit=%v perfect=%v points=%d", tc.length, l, tc.hit, tc.perfect, tc.points)
			}
			if l.Tip != 120+tc.length {
				t.Errorf("Tip = %v, expected %v", l.Tip, 120+tc.length)
			}
		})
	}
}

func TestFreeze(t *testing.T) {
	p := Platform{X: 0, Width: 50, IsMoving: true, Velocity: 20, InitialVelocity: 20, MinX: 300, MaxX: 320, InitialX: 310, SpawnTimeMs: 1000}
	f := Freeze(p, 1500)
	if f.IsMoving || f.Velocity != 0 {
		t.Errorf("Freeze() left platform moving: %+v", f)
	}
	if f.X != 320 {
		t.Errorf("X = %v, expected 320", f.X)
	}
	// Freezing again must not move it
	if g := Freeze(f, 9000); g.X != f.X {
		t.Errorf("second Freeze() moved platform to %v", g.X)
	}
}

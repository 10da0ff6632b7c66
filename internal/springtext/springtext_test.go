package springtext

import (
	"image/color"
	"math"
	"testing"

	"github.com/iburimskiy/particle-morph/internal/morph"
)

var palette = []color.RGBA{{R: 0xF7, G: 0xA5, B: 0x41, A: 255}, {R: 0x47, G: 0x83, B: 0xC3, A: 255}}

func newField(t *testing.T, opts Options) *Field {
	t.Helper()
	f, err := New(opts, palette, morph.NewSource(5))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := f.Layout(400, 200); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	return f
}

func TestLayout_PointsInsideTextBox(t *testing.T) {
	opts := DesktopOptions("Hi")
	opts.Amount = 500
	f := newField(t, opts)

	pts := f.Points()
	if len(pts) != 500 {
		t.Fatalf("Expected 500 points, got %d", len(pts))
	}
	for i, p := range pts {
		if p.TargetY < 100-30 || p.TargetY > 100+30 {
			t.Fatalf("point %d target y %v outside the text band", i, p.TargetY)
		}
		if p.TargetX < 100 || p.TargetX > 300 {
			t.Fatalf("point %d target x %v far from centre", i, p.TargetX)
		}
		if p.Color.A == 0 {
			t.Fatalf("point %d picked from an empty pixel", i)
		}
		if p.Color.R != palette[0].R && p.Color.R != palette[1].R {
			t.Fatalf("point %d colour %v not from palette", i, p.Color)
		}
	}
}

func TestLayout_EmptyMessage(t *testing.T) {
	f := newField(t, DesktopOptions(""))
	if len(f.Points()) != 0 {
		t.Errorf("Expected no points for an empty title, got %d", len(f.Points()))
	}
}

func TestUpdate_Settles(t *testing.T) {
	opts := CompactOptions("Go")
	f := newField(t, opts)
	if len(f.Points()) != 200 {
		t.Fatalf("Expected 200 points, got %d", len(f.Points()))
	}

	for i := 0; i < 3000; i++ {
		f.Update()
	}
	for i, p := range f.Points() {
		if math.Abs(p.X-p.TargetX) > 1 || math.Abs(p.Y-p.TargetY) > 1 {
			t.Fatalf("point %d at (%v, %v), target (%v, %v)", i, p.X, p.Y, p.TargetX, p.TargetY)
		}
		if p.Moving() {
			t.Fatalf("point %d still moving after settling", i)
		}
	}
}

func TestClick_ScattersAwayFromPointer(t *testing.T) {
	f := newField(t, DesktopOptions("Hi"))
	f.Click(200, 100)

	for i, p := range f.Points() {
		dx, dy := p.X-200, p.Y-100
		if dx == 0 && dy == 0 {
			continue
		}
		if dx*p.VelX+dy*p.VelY <= 0 {
			t.Fatalf("point %d velocity (%v, %v) does not point away from the click", i, p.VelX, p.VelY)
		}
		speed := math.Hypot(p.VelX, p.VelY)
		if speed < 15-1e-9 || speed > 30+1e-9 {
			t.Fatalf("point %d scatter speed %v outside [15, 30]", i, speed)
		}
	}
}

func TestMovePointer_IgnoredWhenCompact(t *testing.T) {
	f := newField(t, CompactOptions("Go"))
	f.MovePointer(200, 100)
	if f.mouseX != 0 || f.mouseY != 0 {
		t.Errorf("compact layout should not track the pointer, got (%v, %v)", f.mouseX, f.mouseY)
	}

	d := newField(t, DesktopOptions("Go"))
	d.MovePointer(200, 100)
	if d.mouseX != 200 || d.mouseY != 100 {
		t.Errorf("desktop layout should track the pointer, got (%v, %v)", d.mouseX, d.mouseY)
	}
}

func TestNew_RejectsEmptyPalette(t *testing.T) {
	if _, err := New(DesktopOptions("x"), nil, morph.NewSource(1)); err == nil {
		t.Error("Expected error for empty palette")
	}
}

package morph

import (
	"math"
	"testing"
)

func TestRandomPosition_Exact(t *testing.T) {
	rnd := &seqSource{vals: []float64{0, 0.25, 0.5}}
	p := RandomPosition(rnd, Ring{Width: 100}, true)

	if math.Abs(p.X) > 1e-9 || math.Abs(p.Y-100) > 1e-9 || p.Z != 50 {
		t.Errorf("RandomPosition = %+v, want (0, 100, 50)", p)
	}
}

func TestRandomPosition_Rings(t *testing.T) {
	tests := []struct {
		name string
		ring Ring
	}{
		{"width only", Ring{Width: 800}},
		{"clear beyond width", Ring{Width: 800, Clear: 2500}},
		{"clear inside width", Ring{Width: 800, Clear: 300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tt.ring.Width
			minFar := math.Max(w, tt.ring.Clear)
			rnd := NewSource(7)
			for i := 0; i < 1000; i++ {
				far := RandomPosition(rnd, tt.ring, true)
				d := math.Hypot(far.X, far.Y)
				if d < minFar-1e-9 || d > minFar+5*w+1e-9 {
					t.Fatalf("far position %+v at %.1f, want [%.1f, %.1f]", far, d, minFar, minFar+5*w)
				}
				near := RandomPosition(rnd, tt.ring, false)
				if d := math.Hypot(near.X, near.Y); d > w+1e-9 {
					t.Fatalf("near position %+v beyond one view width (%.1f)", near, d)
				}
				if far.Z < 0 || far.Z >= w || near.Z < 0 || near.Z >= w {
					t.Fatalf("depth out of range: far %v near %v", far.Z, near.Z)
				}
			}
		})
	}
}

func TestRing_FarRadius(t *testing.T) {
	if got := (Ring{Width: 500}).FarRadius(); got != 500 {
		t.Errorf("FarRadius without clear = %v", got)
	}
	if got := (Ring{Width: 500, Clear: 1800}).FarRadius(); got != 1800 {
		t.Errorf("FarRadius with clear = %v", got)
	}
}

func TestProject(t *testing.T) {
	p := DefaultProjector()
	got := p.Project(Sample{X: 130, Y: 70}, &seqSource{vals: []float64{0.5}})
	want := Vec3{X: (130 - 120 - 4) * 3, Y: (70 - 60 - 4) * 3, Z: 30}
	if got != want {
		t.Errorf("Project = %+v, want %+v", got, want)
	}
}

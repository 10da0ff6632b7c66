// Package backdrop holds the scenery behind the agent field: grey spheres
// deep in the scene and flat floating particles that fade in after a delay.
package backdrop

import (
	"image/color"
	"math"
	"time"

	"github.com/iburimskiy/particle-morph/internal/morph"
)

type Sphere struct {
	Pos    morph.Vec3
	Radius float64
}

var SphereColor = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}

// NewSpheres scatters n spheres over twice the view size, 200 to 2200 units
// behind the origin.
func NewSpheres(n int, width, height, radius float64, rnd morph.Source) []Sphere {
	out := make([]Sphere, n)
	for i := range out {
		out[i] = Sphere{
			Pos: morph.Vec3{
				X: rnd.Float64()*width*2 - width,
				Y: rnd.Float64()*height*2 - height,
				Z: rnd.Float64()*-2000 - 200,
			},
			Radius: radius,
		}
	}
	return out
}

type Floater struct {
	X, Y           float64
	Size           float64
	SpeedX, SpeedY float64
	Color          color.RGBA
}

// Floaters drift in straight lines and respawn somewhere random once they
// leave the canvas.
type Floaters struct {
	items         []Floater
	width, height float64
	rnd           morph.Source
}

func NewFloaters(n int, width, height float64, rnd morph.Source) *Floaters {
	f := &Floaters{items: make([]Floater, n), width: width, height: height, rnd: rnd}
	for i := range f.items {
		f.items[i] = f.spawn()
	}
	return f
}

func (f *Floaters) spawn() Floater {
	r := f.rnd
	return Floater{
		X:      r.Float64() * f.width,
		Y:      r.Float64() * f.height,
		Size:   r.Float64()*5 + 1,
		SpeedX: r.Float64()*3 - 1.5,
		SpeedY: r.Float64()*3 - 1.5,
		Color: color.RGBA{
			R: uint8(r.Float64() * 255),
			G: uint8(r.Float64() * 255),
			B: uint8(r.Float64() * 255),
			A: 204,
		},
	}
}

func (f *Floaters) Items() []Floater { return f.items }

func (f *Floaters) Resize(width, height float64) {
	f.width, f.height = width, height
}

func (f *Floaters) Update() {
	for i := range f.items {
		p := &f.items[i]
		p.X += p.SpeedX
		p.Y += p.SpeedY
		if p.X < 0 || p.X > f.width || p.Y < 0 || p.Y > f.height {
			*p = f.spawn()
		}
	}
}

// Fade ramps opacity from 0 to 1 in fixed steps once a delay has passed.
type Fade struct {
	Start    time.Time
	Delay    time.Duration
	Step     float64
	Interval time.Duration
}

// Started reports whether the delay is over.
func (f Fade) Started(now time.Time) bool {
	return now.Sub(f.Start) >= f.Delay
}

func (f Fade) Opacity(now time.Time) float64 {
	elapsed := now.Sub(f.Start) - f.Delay
	if elapsed < 0 || f.Interval <= 0 {
		return 0
	}
	steps := math.Floor(float64(elapsed) / float64(f.Interval))
	return math.Min(1, steps*f.Step)
}

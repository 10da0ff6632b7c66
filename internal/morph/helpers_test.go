package morph

import (
	"image/color"
	"time"
)

// seqSource replays vals in order, wrapping around.
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

var testPalette = []color.RGBA{
	{R: 1, A: 255},
	{G: 2, A: 255},
}

func newTestRetargeter(rnd Source) *Retargeter {
	return &Retargeter{
		Rand:      rnd,
		Projector: DefaultProjector(),
		Palette:   testPalette,
		Ring:      Ring{Width: 1000},
	}
}

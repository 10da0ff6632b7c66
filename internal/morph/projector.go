package morph

import "github.com/iburimskiy/particle-morph/internal/config"

// Projector maps canvas samples into world space.
type Projector struct {
	OffsetX, OffsetY float64
	Scale            float64
	JitterBase       float64
	JitterSpread     float64
	DepthBase        float64
	DepthSpread      float64
}

// DefaultProjector centres the canvas horizontally and frames it a quarter of
// its height above the origin.
func DefaultProjector() Projector {
	return Projector{
		OffsetX:      config.CanvasWidth / 2,
		OffsetY:      config.CanvasHeight / 4,
		Scale:        config.Magnification,
		JitterBase:   config.JitterBase,
		JitterSpread: config.JitterSpread,
		DepthBase:    config.DepthBase,
		DepthSpread:  config.DepthSpread,
	}
}

// Project places s in world space with a small random offset and a shallow
// random depth. It draws three values from rnd: x jitter, y jitter, depth.
func (p Projector) Project(s Sample, rnd Source) Vec3 {
	x := (float64(s.X) - p.OffsetX - rnd.Float64()*p.JitterSpread - p.JitterBase) * p.Scale
	y := (float64(s.Y) - p.OffsetY - rnd.Float64()*p.JitterSpread - p.JitterBase) * p.Scale
	z := p.DepthBase - p.DepthSpread*rnd.Float64()
	return Vec3{X: x, Y: y, Z: z}
}

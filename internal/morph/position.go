package morph

import "math"

// Ring sizes the random positions around the origin.
type Ring struct {
	// Width is the view width in world units. Near points land within it.
	Width float64
	// Clear is the distance from the z axis beyond which a point with z >= 0
	// cannot be seen. Zero means Width is trusted.
	Clear float64
}

// FarRadius is the smallest XY distance a far point can have.
func (r Ring) FarRadius() float64 {
	return math.Max(r.Width, r.Clear)
}

// RandomPosition picks a point on a ring around the origin. Far points land
// between FarRadius and five view widths beyond it. Near points land within
// one view width, which is where agents gather while a slide is being swapped.
func RandomPosition(rnd Source, ring Ring, far bool) Vec3 {
	base, spread := ring.Width, ring.Width*-2
	if far {
		base, spread = ring.FarRadius(), ring.Width*5
	}
	r := base + spread*rnd.Float64()
	angle := rnd.Float64() * math.Pi * 2

	return Vec3{
		X: r * math.Cos(angle),
		Y: r * math.Sin(angle),
		Z: rnd.Float64() * ring.Width,
	}
}

package morph

import (
	"image/color"

	"github.com/iburimskiy/particle-morph/internal/config"
)

// Retargeter reconciles sample sets against a Pool.
type Retargeter struct {
	Rand      Source
	Projector Projector
	Palette   []color.RGBA
	Ring      Ring
}

// Reconcile points agent i at samples[i], creating agents the pool lacks and
// sending agents beyond len(samples) off-screen. Existing agents keep their
// current position and colour.
func (r *Retargeter) Reconcile(pool *Pool, samples []Sample) {
	n := max(len(samples), pool.Len())
	for i := 0; i < n; i++ {
		switch {
		case i < len(samples) && i < pool.Len():
			pool.At(i).Target = r.Projector.Project(samples[i], r.Rand)
		case i < len(samples):
			pool.add(r.newAgent(i, samples[i]))
		default:
			pool.At(i).Target = RandomPosition(r.Rand, r.Ring, true)
		}
	}
}

// Disperse scatters every agent's target close around the centre.
func (r *Retargeter) Disperse(pool *Pool) {
	for i := 0; i < pool.Len(); i++ {
		pool.At(i).Target = RandomPosition(r.Rand, r.Ring, false)
	}
}

func (r *Retargeter) newAgent(i int, s Sample) Agent {
	a := Agent{Color: r.Palette[i%len(r.Palette)]}
	a.Spin[0] = r.Rand.Float64() * config.SpinMax
	a.Spin[1] = r.Rand.Float64() * config.SpinMax
	a.Target = r.Projector.Project(s, r.Rand)
	a.Current = RandomPosition(r.Rand, r.Ring, true)
	return a
}

// Step eases every agent towards its target by alpha and advances its spin.
func Step(pool *Pool, alpha float64) {
	for i := range pool.agents {
		a := &pool.agents[i]
		a.Current = a.Current.Lerp(a.Target, alpha)
		a.Rotation.X += a.Spin[0]
		a.Rotation.Y += a.Spin[1]
	}
}

// Settled reports whether every agent is within eps of its target.
func Settled(pool *Pool, eps float64) bool {
	for i := range pool.agents {
		a := &pool.agents[i]
		if a.Current.Dist(a.Target) > eps {
			return false
		}
	}
	return true
}

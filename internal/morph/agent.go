package morph

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Agent is one particle of the field. Its index in the Pool is its identity.
type Agent struct {
	Current  Vec3
	Target   Vec3
	Spin     [2]float64
	Rotation Vec3
	Color    color.RGBA
}

// Pool holds agents by index. It only ever grows.
type Pool struct {
	agents []Agent
}

func (p *Pool) Len() int { return len(p.agents) }

// At returns the agent at index i. The pointer stays valid until the pool grows.
func (p *Pool) At(i int) *Agent { return &p.agents[i] }

func (p *Pool) add(a Agent) int {
	p.agents = append(p.agents, a)
	return len(p.agents) - 1
}

// ParsePalette turns "#rrggbb" strings into colours.
func ParsePalette(hexes []string) ([]color.RGBA, error) {
	out := make([]color.RGBA, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette colour %q: %w", h, err)
		}
		r, g, b := c.RGB255()
		out = append(out, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("palette is empty")
	}
	return out, nil
}

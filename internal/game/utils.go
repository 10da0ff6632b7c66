package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// lighten blends c towards white by t (0-1), keeping its alpha.
func lighten(c color.RGBA, t float64) color.RGBA {
	base := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	r, g, b := base.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, clamp01(t)).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: c.A}
}

// gradient returns the background colour at height ratio (0 top, 1 bottom).
func gradient(top, bottom colorful.Color, ratio float64) color.RGBA {
	r, g, b := top.BlendLab(bottom, clamp01(ratio)).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// withAlpha scales the alpha of c by a.
func withAlpha(c color.RGBA, a float64) color.RGBA {
	f := clamp01(a)
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: uint8(float64(c.A) * f),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

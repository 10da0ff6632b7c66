package morph

import "image"

// Sample is an ink pixel picked from the sampling canvas. Y grows upwards.
type Sample struct {
	X, Y int
}

// SampleImage collects the pixels of img whose red channel is exactly zero,
// keeping only those with even coordinates. Pixels are visited from the last
// one backwards, so the result is in reverse raster order.
func SampleImage(img *image.RGBA) []Sample {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	samples := make([]Sample, 0, w*h/16)
	for p := w*h - 1; p >= 0; p-- {
		row, col := p/w, p%w
		if img.Pix[img.PixOffset(b.Min.X+col, b.Min.Y+row)] != 0 {
			continue
		}
		x, y := col, h-row
		if x%2 == 0 && y%2 == 0 {
			samples = append(samples, Sample{X: x, Y: y})
		}
	}
	return samples
}

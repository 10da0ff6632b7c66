// Package springtext scatters a title into coloured points that spring back
// into the glyph shapes, flee the pointer and burst away on click.
package springtext

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/iburimskiy/particle-morph/internal/morph"
)

type Options struct {
	Message             string
	FontSize            float64
	Amount              int
	Size                float64
	InitialDisplacement float64
	InitialVelocity     float64
	VelocityRetention   float64
	SettleSpeed         float64
	FleeSpeed           float64
	FleeDistance        float64
	Flee                bool
	ScatterVelocity     float64
	Scatter             bool
}

// DesktopOptions is the full-size variant.
func DesktopOptions(msg string) Options {
	return Options{
		Message:             msg,
		FontSize:            60,
		Amount:              3000,
		Size:                2,
		InitialDisplacement: 100,
		InitialVelocity:     5,
		VelocityRetention:   0.95,
		SettleSpeed:         1.0 / 100,
		FleeSpeed:           1.0 / 10,
		FleeDistance:        50,
		Flee:                true,
		ScatterVelocity:     3 * 10,
		Scatter:             true,
	}
}

// CompactOptions is the small-screen variant: fewer, smaller points and no
// pointer flee.
func CompactOptions(msg string) Options {
	o := DesktopOptions(msg)
	o.FontSize = 30
	o.Amount = 200
	o.Size = 1
	o.Flee = false
	o.ScatterVelocity = 2 * 10
	return o
}

// Point is one dot of the title.
type Point struct {
	X, Y             float64
	VelX, VelY       float64
	TargetX, TargetY float64
	Color            color.RGBA
	moved            bool
}

// Moving reports whether the point moved on the last update.
func (p *Point) Moving() bool { return p.moved }

type Field struct {
	opts    Options
	font    *sfnt.Font
	palette []color.RGBA
	rnd     morph.Source

	points        []Point
	mouseX        float64
	mouseY        float64
	width, height int
}

func New(opts Options, palette []color.RGBA, rnd morph.Source) (*Field, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse title font: %w", err)
	}
	if len(palette) == 0 {
		return nil, fmt.Errorf("springtext: empty palette")
	}
	return &Field{opts: opts, font: f, palette: palette, rnd: rnd}, nil
}

func (f *Field) Options() Options { return f.opts }

func (f *Field) Points() []Point { return f.points }

// Layout rebuilds the points for a canvas of the given size, centring the
// message on it.
func (f *Field) Layout(width, height int) error {
	f.width, f.height = width, height

	mask, err := f.renderMask()
	if err != nil {
		return err
	}
	f.points = f.points[:0]
	if mask == nil {
		return nil
	}

	var ink []int
	for i, a := range mask.Pix {
		if a != 0 {
			ink = append(ink, i)
		}
	}
	if len(ink) == 0 {
		return nil
	}

	w := mask.Bounds().Dx()
	for count := 0; count < f.opts.Amount; count++ {
		num := ink[int(f.rnd.Float64()*float64(len(ink)))]
		x := float64(w)/2 - float64(num%w)
		y := f.opts.FontSize/2 - float64(num/w)
		f.points = append(f.points, f.newPoint(x, y, mask.Pix[num]))
	}
	return nil
}

func (f *Field) renderMask() (*image.Alpha, error) {
	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    f.opts.FontSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("title face: %w", err)
	}
	defer face.Close()

	w := font.MeasureString(face, f.opts.Message).Ceil()
	h := int(f.opts.FontSize)
	if w == 0 || h == 0 {
		return nil, nil
	}

	m := face.Metrics()
	baseline := (h + m.Ascent.Round() - m.Descent.Round()) / 2

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, baseline),
	}
	d.DrawString(f.opts.Message)
	return mask, nil
}

func (f *Field) newPoint(x, y float64, alpha uint8) Point {
	angle := f.rnd.Float64() * 6.28
	c := f.palette[int(f.rnd.Float64()*float64(len(f.palette)))]
	c.A = alpha

	cx, cy := float64(f.width)/2, float64(f.height)/2
	return Point{
		X:       cx - x + (f.rnd.Float64()-0.5)*f.opts.InitialDisplacement,
		Y:       cy - y + (f.rnd.Float64()-0.5)*f.opts.InitialDisplacement,
		VelX:    f.opts.InitialVelocity * math.Cos(angle),
		VelY:    f.opts.InitialVelocity * math.Sin(angle),
		TargetX: cx - x,
		TargetY: cy - y,
		Color:   c,
	}
}

// MovePointer tracks the pointer for fleeing. Ignored when flee is off.
func (f *Field) MovePointer(x, y float64) {
	if !f.opts.Flee {
		return
	}
	f.mouseX, f.mouseY = x, y
}

// Click bursts every point away from (x, y).
func (f *Field) Click(x, y float64) {
	if !f.opts.Scatter {
		return
	}
	f.mouseX, f.mouseY = x, y
	for i := range f.points {
		f.scatter(&f.points[i])
	}
}

// Update moves every point one frame.
func (f *Field) Update() {
	for i := range f.points {
		f.move(&f.points[i])
	}
}

func (f *Field) move(p *Point) {
	if math.Hypot(f.mouseX-p.X, f.mouseY-p.Y) <= f.opts.FleeDistance {
		p.VelX -= (f.mouseX - p.X) * f.opts.FleeSpeed
		p.VelY -= (f.mouseY - p.Y) * f.opts.FleeSpeed
	} else {
		p.VelX = f.opts.VelocityRetention * (p.VelX + (p.TargetX-p.X)*f.opts.SettleSpeed)
		p.VelY = f.opts.VelocityRetention * (p.VelY + (p.TargetY-p.Y)*f.opts.SettleSpeed)
	}

	p.moved = !(math.Round(p.TargetX-p.X) == 0 &&
		math.Round(p.TargetY-p.Y) == 0 &&
		math.Round(p.VelX) == 0 &&
		math.Round(p.VelY) == 0)
	if !p.moved {
		return
	}
	p.X += p.VelX
	p.Y += p.VelY
}

func (f *Field) scatter(p *Point) {
	dx, dy := f.mouseX-p.X, f.mouseY-p.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return
	}
	vel := f.opts.ScatterVelocity * (0.5 + f.rnd.Float64()/2)
	p.VelX = -dx / d * vel
	p.VelY = -dy / d * vel
}

package game

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/particle-morph/internal/audio"
	"github.com/iburimskiy/particle-morph/internal/backdrop"
	"github.com/iburimskiy/particle-morph/internal/camera"
	"github.com/iburimskiy/particle-morph/internal/config"
	"github.com/iburimskiy/particle-morph/internal/director"
	"github.com/iburimskiy/particle-morph/internal/morph"
	"github.com/iburimskiy/particle-morph/internal/slides"
	"github.com/iburimskiy/particle-morph/internal/springtext"
)

var (
	backgroundTop    = colorful.Color{R: 1, G: 1, B: 1}
	backgroundBottom = colorful.Color{R: 0.93, G: 0.94, B: 0.96}
)

type Options struct {
	Settings   *config.Settings
	SlidePaths []string
	Seed       int64
	Cue        *audio.Cue
	Background image.Image
}

type Game struct {
	settings *config.Settings
	palette  []color.RGBA
	rnd      morph.Source

	// field
	anim     *morph.Animation
	carousel *slides.Carousel
	director *director.Director
	loader   *slides.Loader
	loading  []<-chan error
	cam      *camera.Camera
	agents   []morph.Agent

	// scenery
	spheres    []backdrop.Sphere
	floaters   *backdrop.Floaters
	fade       backdrop.Fade
	gradient   *ebiten.Image
	background *ebiten.Image

	// title
	text      *springtext.Field
	textStart time.Time

	cue *audio.Cue

	width, height int
	start         time.Time

	// input edge detection
	prevKey map[ebiten.Key]bool

	// button state
	buttonHovered bool
	buttonPressed bool
	prevHovered   bool
	nextHovered   bool

	// state
	paused  bool
	lastErr error
}

func New(opts Options) (*Game, error) {
	s := opts.Settings
	if s == nil {
		s = config.Default()
	}
	palette, err := morph.ParsePalette(s.Palette)
	if err != nil {
		return nil, err
	}

	rnd := morph.NewSource(opts.Seed)
	cam := camera.New(config.WindowWidth, config.WindowHeight)
	now := time.Now()
	g := &Game{
		settings: s,
		palette:  palette,
		rnd:      rnd,
		anim: morph.New(morph.Options{
			Rand:          rnd,
			Palette:       palette,
			ViewWidth:     config.WindowWidth,
			ClearRadius:   cam.ClearRadius(),
			Smoothing:     s.Smoothing,
			DisperseDelay: s.DisperseDelay(),
		}),
		loader: &slides.Loader{
			Width:   config.CanvasWidth,
			Height:  config.CanvasHeight,
			Workers: config.DecodeWorkers,
		},
		cam:       cam,
		spheres:   backdrop.NewSpheres(config.SphereCount, config.WindowWidth, config.WindowHeight, config.SphereRadius, rnd),
		floaters:  backdrop.NewFloaters(config.FloaterCount, config.WindowWidth, config.WindowHeight, rnd),
		fade:      backdrop.Fade{Start: now, Delay: config.BackdropDelay, Step: config.FadeStep, Interval: config.FadeInterval},
		textStart: now.Add(config.SpringTextDelay),
		cue:       opts.Cue,
		width:     config.WindowWidth,
		height:    config.WindowHeight,
		start:     now,
		prevKey:   map[ebiten.Key]bool{},
	}
	if opts.Background != nil {
		g.background = ebiten.NewImageFromImage(opts.Background)
	}

	g.carousel = slides.NewCarousel()
	g.director = director.New(g.anim, g.carousel)
	g.director.OnDisperse = func() {
		if g.cue != nil {
			g.cue.Play()
		}
	}

	if len(opts.SlidePaths) > 0 {
		g.addSlides(opts.SlidePaths)
	}
	return g, nil
}

// addSlides starts decoding paths and selects the first new slide.
func (g *Game) addSlides(paths []string) {
	loaded, done := g.loader.Load(paths)
	g.loading = append(g.loading, done)
	first := g.carousel.Append(loaded...)
	g.carousel.Select(first)
	log.Printf("Queued %d slide(s)", len(loaded))
}

func (g *Game) Update() error {

	justPressed := func(k ebiten.Key) bool {
		return g.keyEdge(k, ebiten.IsKeyPressed(k))
	}

	// Handle button interactions
	mouseX, mouseY := ebiten.CursorPosition()
	g.buttonHovered = inRect(mouseX, mouseY, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight)
	prevX, nextX, arrowY := g.arrowRects()
	g.prevHovered = inRect(mouseX, mouseY, prevX, arrowY, config.ArrowSize, config.ArrowSize)
	g.nextHovered = inRect(mouseX, mouseY, nextX, arrowY, config.ArrowSize, config.ArrowSize)
	overControl := g.buttonHovered || g.prevHovered || g.nextHovered

	// Button click detection
	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			// Button was clicked
			if err := g.openSlidesDialog(); err != nil {
				g.lastErr = err
			}
		}
		g.buttonPressed = false
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		switch {
		case g.prevHovered:
			g.carousel.Prev()
		case g.nextHovered:
			g.carousel.Next()
		case !overControl && g.text != nil:
			g.text.Click(float64(mouseX), float64(mouseY))
		}
	}

	g.cam.Follow(float64(mouseX), float64(mouseY))
	if g.text != nil {
		g.text.MovePointer(float64(mouseX), float64(mouseY))
	}

	if justPressed(ebiten.KeyArrowLeft) {
		g.carousel.Prev()
	}
	if justPressed(ebiten.KeyArrowRight) {
		g.carousel.Next()
	}
	if justPressed(ebiten.KeyO) {
		if err := g.openSlidesDialog(); err != nil {
			g.lastErr = err
		}
	}
	if justPressed(ebiten.KeyM) && g.cue != nil {
		g.cue.SetMuted(!g.cue.Muted())
	}
	if justPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if g.quitRequested(ebiten.IsKeyPressed) {
		return ebiten.Termination
	}

	g.pollLoading()
	if err := g.director.Poll(); err != nil {
		g.lastErr = err
	}

	if g.paused {
		return nil
	}

	now := time.Now()
	g.anim.Update()
	g.cam.Update()
	if g.fade.Started(now) {
		g.floaters.Update()
	}
	if err := g.updateText(now); err != nil {
		g.lastErr = err
	}
	return nil
}

// keyEdge records k's state and reports whether it went down this frame.
func (g *Game) keyEdge(k ebiten.Key, pressed bool) bool {
	jp := pressed && !g.prevKey[k]
	g.prevKey[k] = pressed
	return jp
}

// quitRequested samples both quit keys every frame, even when the first fires.
func (g *Game) quitRequested(pressed func(ebiten.Key) bool) bool {
	escape := g.keyEdge(ebiten.KeyEscape, pressed(ebiten.KeyEscape))
	quit := g.keyEdge(ebiten.KeyQ, pressed(ebiten.KeyQ))
	return escape || quit
}

// pollLoading collects finished decode batches without blocking.
func (g *Game) pollLoading() {
	pending := g.loading[:0]
	for _, done := range g.loading {
		select {
		case err := <-done:
			if err != nil {
				g.lastErr = err
			}
		default:
			pending = append(pending, done)
		}
	}
	g.loading = pending
}

func (g *Game) compact() bool {
	return g.settings.Compact || g.width < config.CompactThreshold
}

func (g *Game) updateText(now time.Time) error {
	if g.text == nil {
		if now.Before(g.textStart) {
			return nil
		}
		msg := g.settings.Title(g.compact())
		opts := springtext.DesktopOptions(msg)
		if g.compact() {
			opts = springtext.CompactOptions(msg)
		}
		field, err := springtext.New(opts, g.palette, g.rnd)
		if err != nil {
			g.textStart = now.Add(time.Hour)
			return fmt.Errorf("title: %w", err)
		}
		if err := field.Layout(g.width, g.height); err != nil {
			g.textStart = now.Add(time.Hour)
			return fmt.Errorf("title: %w", err)
		}
		g.text = field
		log.Printf("Title effect started with %d points", len(field.Points()))
	}
	g.text.Update()
	return nil
}

func (g *Game) openSlidesDialog() error {
	patterns := make([]string, len(slides.Extensions))
	for i, ext := range slides.Extensions {
		patterns[i] = "*" + ext
	}
	paths, err := zenity.SelectFileMultiple(
		zenity.Title("Open Slide Images"),
		zenity.FileFilters{{
			Name:     "Images",
			Patterns: patterns,
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	if len(paths) == 0 {
		return nil
	}

	log.Printf("Selected %d image(s)", len(paths))
	g.addSlides(paths)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	g.drawSpheres(screen)
	g.drawAgents(screen)
	g.drawFloaters(screen)
	g.drawTitle(screen)
	g.drawButton(screen)
	g.drawArrows(screen)
	g.drawStatus(screen)
}

// gradientPixels renders the backdrop gradient as a one pixel wide column.
func gradientPixels(height int) []byte {
	pix := make([]byte, 4*height)
	for y := 0; y < height; y++ {
		c := gradient(backgroundTop, backgroundBottom, float64(y)/float64(height))
		copy(pix[4*y:], []byte{c.R, c.G, c.B, c.A})
	}
	return pix
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	if g.gradient == nil || g.gradient.Bounds().Dy() != g.height {
		if g.gradient != nil {
			g.gradient.Deallocate()
		}
		g.gradient = ebiten.NewImage(1, g.height)
		g.gradient.WritePixels(gradientPixels(g.height))
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.width), 1)
	screen.DrawImage(g.gradient, op)

	if g.background == nil {
		return
	}
	op = &ebiten.DrawImageOptions{}
	b := g.background.Bounds()
	op.GeoM.Scale(float64(g.width)/float64(b.Dx()), float64(g.height)/float64(b.Dy()))
	op.ColorScale.ScaleAlpha(float32(g.fade.Opacity(time.Now())))
	screen.DrawImage(g.background, op)
}

func (g *Game) drawSpheres(screen *ebiten.Image) {
	for _, s := range g.spheres {
		sx, sy, scale, ok := g.cam.Project(s.Pos)
		if !ok {
			continue
		}
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(s.Radius*scale), backdrop.SphereColor, true)
	}
}

func (g *Game) drawAgents(screen *ebiten.Image) {
	g.agents = g.anim.Snapshot(g.agents)
	// Far agents first so near ones overlap them.
	sort.Slice(g.agents, func(i, j int) bool {
		return g.agents[i].Current.Z < g.agents[j].Current.Z
	})

	pulse := 1.0
	if g.cue != nil {
		pulse += clamp01(g.cue.Level() * 4)
	}

	for _, a := range g.agents {
		sx, sy, scale, ok := g.cam.Project(a.Current)
		if !ok {
			continue
		}
		r := config.AgentRadius * scale * pulse
		if sx < -r || sy < -r || sx > float64(g.width)+r || sy > float64(g.height)+r {
			continue
		}
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(r), a.Color, true)

		// A lighter fleck that orbits with the agent's spin.
		hx := sx + math.Cos(a.Rotation.Y)*r*0.45
		hy := sy + math.Sin(a.Rotation.X)*r*0.45
		vector.DrawFilledCircle(screen, float32(hx), float32(hy), float32(r*0.35), lighten(a.Color, 0.6), true)
	}
}

func (g *Game) drawFloaters(screen *ebiten.Image) {
	opacity := g.fade.Opacity(time.Now())
	if opacity == 0 {
		return
	}
	for _, p := range g.floaters.Items() {
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Size), withAlpha(p.Color, opacity), true)
	}
}

func (g *Game) drawTitle(screen *ebiten.Image) {
	if g.text == nil {
		return
	}
	size := float32(g.text.Options().Size)
	for _, p := range g.text.Points() {
		c := p.Color
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), size, withAlpha(color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}, float64(c.A)/255), false)
	}
}

func (g *Game) drawButton(screen *ebiten.Image) {
	// Button background
	var bgColor color.Color
	if g.buttonPressed {
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255} // Pressed
	} else if g.buttonHovered {
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255} // Hovered
	} else {
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255} // Normal
	}

	vector.DrawFilledRect(screen, float32(config.ButtonX), float32(config.ButtonY), float32(config.ButtonWidth), float32(config.ButtonHeight), bgColor, false)

	borderColor := color.RGBA{R: 150, G: 170, B: 200, A: 255}
	vector.StrokeRect(screen, float32(config.ButtonX), float32(config.ButtonY), float32(config.ButtonWidth), float32(config.ButtonHeight), 2, borderColor, false)

	text := "Open Images"
	textWidth := len(text) * 6 // debug font glyphs are 6px wide
	textX := config.ButtonX + (config.ButtonWidth-textWidth)/2
	textY := config.ButtonY + (config.ButtonHeight-16)/2
	ebitenutil.DebugPrintAt(screen, text, textX, textY)
}

func (g *Game) arrowRects() (prevX, nextX, y int) {
	y = g.height/2 - config.ArrowSize/2
	return 12, g.width - 12 - config.ArrowSize, y
}

func (g *Game) drawArrows(screen *ebiten.Image) {
	if g.carousel.Len() < 2 {
		return
	}
	prevX, nextX, y := g.arrowRects()
	for _, a := range []struct {
		x       int
		label   string
		hovered bool
	}{
		{prevX, "<", g.prevHovered},
		{nextX, ">", g.nextHovered},
	} {
		c := color.RGBA{R: 100, G: 120, B: 160, A: 160}
		if a.hovered {
			c.A = 230
		}
		vector.DrawFilledCircle(screen, float32(a.x+config.ArrowSize/2), float32(y+config.ArrowSize/2), config.ArrowSize/2, c, true)
		ebitenutil.DebugPrintAt(screen, a.label, a.x+config.ArrowSize/2-3, y+config.ArrowSize/2-8)
	}
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	var status string
	if s := g.carousel.Selected(); s == nil {
		status = "Click the button below to open slide images"
	} else {
		status = fmt.Sprintf("Slide %d/%d %s", g.carousel.Index()+1, g.carousel.Len(), s.Name)
		if g.director.Waiting() {
			status += " (loading)"
		}
		status += fmt.Sprintf(" | %d agents, %d shown | %s", g.anim.Len(), g.anim.Shown(), g.anim.Phase())
	}
	if g.paused {
		status += " | Paused"
	}
	if g.cue != nil && g.cue.Muted() {
		status += " | Muted"
	}
	status += " | " + formatDuration(time.Since(g.start))
	if err := g.statusErr(); err != nil {
		status += " | Error: " + err.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

// statusErr is the error for the HUD: the game's own, else the last slide
// that failed to load.
func (g *Game) statusErr() error {
	if g.lastErr != nil {
		return g.lastErr
	}
	return g.director.Err()
}

// Layout follows the window size so the camera and random rings track it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return g.width, g.height
	}
	if outsideWidth != g.width || outsideHeight != g.height {
		g.resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (g *Game) resize(w, h int) {
	g.width, g.height = w, h
	g.cam.SetViewport(w, h)
	g.anim.SetViewWidth(float64(w))
	g.anim.SetClearRadius(g.cam.ClearRadius())
	g.floaters.Resize(float64(w), float64(h))
	if g.text != nil {
		if err := g.text.Layout(w, h); err != nil {
			g.lastErr = err
		}
	}
}

func inRect(x, y, rx, ry, rw, rh int) bool {
	return x >= rx && x <= rx+rw && y >= ry && y <= ry+rh
}

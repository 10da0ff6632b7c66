package morph

import (
	"image/color"
	"sync"
	"time"

	"github.com/iburimskiy/particle-morph/internal/config"
)

// Phase is where the field is in its disperse/reform cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDispersing
	PhaseReforming
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDispersing:
		return "dispersing"
	case PhaseReforming:
		return "reforming"
	}
	return "unknown"
}

// Clock tells the animation what time it is.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

type Options struct {
	Rand          Source
	Clock         Clock
	Palette       []color.RGBA
	ViewWidth     float64
	ClearRadius   float64
	Projector     *Projector
	Smoothing     float64
	DisperseDelay time.Duration
}

// Animation owns the agent pool and every change made to it. All methods are
// safe for concurrent use; reconciliation runs inside Update so the pool is
// only ever rewritten by the frame loop.
type Animation struct {
	mu sync.Mutex

	pool  Pool
	rt    Retargeter
	clock Clock
	alpha float64
	delay time.Duration

	phase    Phase
	pending  []Sample
	deadline time.Time
	shown    int
}

func New(opts Options) *Animation {
	if opts.Rand == nil {
		opts.Rand = NewSource(0)
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if len(opts.Palette) == 0 {
		opts.Palette, _ = ParsePalette(config.Palette)
	}
	if opts.ViewWidth <= 0 {
		opts.ViewWidth = config.WindowWidth
	}
	proj := DefaultProjector()
	if opts.Projector != nil {
		proj = *opts.Projector
	}
	if opts.Smoothing <= 0 || opts.Smoothing >= 1 {
		opts.Smoothing = config.SmoothingFactor
	}

	return &Animation{
		rt: Retargeter{
			Rand:      opts.Rand,
			Projector: proj,
			Palette:   opts.Palette,
			Ring:      Ring{Width: opts.ViewWidth, Clear: opts.ClearRadius},
		},
		clock: opts.Clock,
		alpha: opts.Smoothing,
		delay: opts.DisperseDelay,
	}
}

// Retarget starts moving the field to a new sample set: agents scatter now and
// reform on the first Update after the disperse delay. Calling it again while
// dispersing replaces the pending samples and restarts the delay.
func (a *Animation) Retarget(samples []Sample) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.rt.Disperse(&a.pool)
	a.pending = append(a.pending[:0:0], samples...)
	a.deadline = a.clock.Now().Add(a.delay)
	a.phase = PhaseDispersing
}

// Update runs a due reform and then integrates one frame. A reform ends,
// and the field goes idle, once every agent has reached its target.
func (a *Animation) Update() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.phase == PhaseDispersing && !a.clock.Now().Before(a.deadline) {
		a.rt.Reconcile(&a.pool, a.pending)
		a.shown = len(a.pending)
		a.pending = nil
		a.phase = PhaseReforming
	}
	Step(&a.pool, a.alpha)
	if a.phase == PhaseReforming && Settled(&a.pool, config.SettleDistance) {
		a.phase = PhaseIdle
	}
}

// SetViewWidth changes the ring size used for future random positions.
func (a *Animation) SetViewWidth(w float64) {
	if w <= 0 {
		return
	}
	a.mu.Lock()
	a.rt.Ring.Width = w
	a.mu.Unlock()
}

// SetClearRadius sets the distance beyond which far positions are off-screen,
// usually from the camera that draws the field.
func (a *Animation) SetClearRadius(r float64) {
	if r < 0 {
		return
	}
	a.mu.Lock()
	a.rt.Ring.Clear = r
	a.mu.Unlock()
}

func (a *Animation) ViewWidth() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rt.Ring.Width
}

// Ring returns the current ring sizes.
func (a *Animation) Ring() Ring {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rt.Ring
}

func (a *Animation) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase
}

// Len returns the pool size.
func (a *Animation) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pool.Len()
}

// Shown returns how many agents are drawing the current slide.
func (a *Animation) Shown() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.shown
}

// Snapshot copies the agents into dst, reusing its storage.
func (a *Animation) Snapshot(dst []Agent) []Agent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append(dst[:0], a.pool.agents...)
}

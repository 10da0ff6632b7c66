// Package director turns carousel selections into animation retargets.
package director

import (
	"errors"
	"log"
	"sync"

	"github.com/iburimskiy/particle-morph/internal/morph"
	"github.com/iburimskiy/particle-morph/internal/slides"
)

// Director samples the selected slide and hands it to the animation. A slide
// that is still decoding is skipped and retried by Poll once it is ready.
type Director struct {
	anim     *morph.Animation
	carousel *slides.Carousel

	// OnDisperse runs after every retarget, e.g. to play the cue.
	OnDisperse func()

	mu      sync.Mutex
	waiting *slides.Slide
	lastErr error
}

func New(anim *morph.Animation, c *slides.Carousel) *Director {
	d := &Director{anim: anim, carousel: c}
	c.OnSelect(func(_ int, s *slides.Slide) {
		if err := d.Show(s); err != nil {
			log.Printf("Cannot show slide %s: %v", s.Name, err)
		}
	})
	return d
}

// Show retargets the field at s. It returns nil without touching the field
// when s has not finished loading.
func (d *Director) Show(s *slides.Slide) error {
	if s == nil {
		return nil
	}
	canvas, err := s.Canvas()
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case errors.Is(err, slides.ErrNotReady):
		d.waiting = s
		return nil
	case err != nil:
		d.waiting = nil
		d.lastErr = err
		return err
	}

	d.waiting = nil
	samples := morph.SampleImage(canvas)
	d.anim.Retarget(samples)
	log.Printf("Slide %s: %d samples", s.Name, len(samples))
	if d.OnDisperse != nil {
		d.OnDisperse()
	}
	return nil
}

// Poll shows the selected slide if it was skipped earlier and has since
// finished loading. Call it once per frame.
func (d *Director) Poll() error {
	d.mu.Lock()
	w := d.waiting
	d.mu.Unlock()
	if w == nil || w != d.carousel.Selected() {
		return nil
	}
	if _, err := w.Canvas(); errors.Is(err, slides.ErrNotReady) {
		return nil
	}
	return d.Show(w)
}

// Waiting reports whether a selected slide is still loading.
func (d *Director) Waiting() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.waiting != nil
}

// Err returns the last slide error.
func (d *Director) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

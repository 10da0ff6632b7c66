package slides

import (
	"image"
	"log"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Loader decodes slide files in the background.
type Loader struct {
	Width, Height int
	Workers       int
	Decode        func(path string) (image.Image, error)
}

// Load returns one not-yet-ready slide per path straight away and decodes
// them on background goroutines. The returned channel yields the first
// decode error (or nil) once every slide has settled.
func (l *Loader) Load(paths []string) ([]*Slide, <-chan error) {
	decode := l.Decode
	if decode == nil {
		decode = DecodeFile
	}

	slides := make([]*Slide, len(paths))
	for i, p := range paths {
		slides[i] = NewSlide(filepath.Base(p))
	}

	done := make(chan error, 1)
	go func() {
		var g errgroup.Group
		if l.Workers > 0 {
			g.SetLimit(l.Workers)
		}
		for i, p := range paths {
			s, p := slides[i], p
			g.Go(func() error {
				img, err := decode(p)
				if err != nil {
					log.Printf("Failed to load slide %s: %v", p, err)
					s.fail(err)
					return err
				}
				s.SetImage(img, l.Width, l.Height)
				log.Printf("Loaded slide %s", s.Name)
				return nil
			})
		}
		done <- g.Wait()
	}()

	return slides, done
}

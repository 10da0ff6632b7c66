package slides

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	// Decoders for slide files
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrNotReady is returned for a slide whose image is still decoding.
var ErrNotReady = errors.New("slide not loaded yet")

// Extensions lists the file types a slide can be read from.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}

// Slide is one carousel image, rasterized onto the fixed sampling canvas once
// it has been decoded.
type Slide struct {
	Name string

	canvas atomic.Pointer[image.RGBA]

	mu  sync.Mutex
	err error
}

func NewSlide(name string) *Slide {
	return &Slide{Name: name}
}

// Ready reports whether the slide can be sampled.
func (s *Slide) Ready() bool {
	return s.canvas.Load() != nil
}

// Canvas returns the rasterized slide, ErrNotReady while it is decoding, or
// the error that stopped it from loading.
func (s *Slide) Canvas() (*image.RGBA, error) {
	if c := s.canvas.Load(); c != nil {
		return c, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return nil, ErrNotReady
}

// SetImage rasterizes img onto a w x h canvas and marks the slide ready.
func (s *Slide) SetImage(img image.Image, w, h int) {
	s.canvas.Store(Rasterize(img, w, h))
}

func (s *Slide) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Rasterize stretches src over a white w x h canvas.
func Rasterize(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

// DecodeFile reads any of the supported image formats.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// Supported reports whether path has an image extension we can decode.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ListDir returns the supported image files in dir, sorted by name.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

package director

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/iburimskiy/particle-morph/internal/morph"
	"github.com/iburimskiy/particle-morph/internal/slides"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func inkImage(n int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	// n black pixels on even columns of row 0 (y = 8, even)
	for i := 0; i < n; i++ {
		img.SetRGBA(i*2, 0, color.RGBA{A: 255})
	}
	return img
}

func setup() (*Director, *morph.Animation, *slides.Carousel, *fixedClock) {
	clock := &fixedClock{now: time.Unix(0, 0)}
	anim := morph.New(morph.Options{Rand: morph.NewSource(1), Clock: clock, ViewWidth: 500})
	c := slides.NewCarousel(slides.NewSlide("a"), slides.NewSlide("b"))
	return New(anim, c), anim, c, clock
}

func TestShow_NotReadyIsNoop(t *testing.T) {
	d, anim, c, _ := setup()
	cues := 0
	d.OnDisperse = func() { cues++ }

	c.Select(0)
	if anim.Phase() != morph.PhaseIdle || anim.Len() != 0 {
		t.Fatalf("unloaded slide changed the field: phase=%v len=%d", anim.Phase(), anim.Len())
	}
	if !d.Waiting() || cues != 0 {
		t.Errorf("Expected waiting without cue, waiting=%v cues=%d", d.Waiting(), cues)
	}
}

func TestPoll_RetriesWhenLoaded(t *testing.T) {
	d, anim, c, _ := setup()
	c.Select(0)

	if err := d.Poll(); err != nil || anim.Phase() != morph.PhaseIdle {
		t.Fatalf("Poll before load changed state: %v %v", err, anim.Phase())
	}

	c.Slide(0).SetImage(inkImage(3), 8, 8)
	if err := d.Poll(); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if anim.Phase() != morph.PhaseDispersing {
		t.Fatalf("Expected dispersing after load, got %v", anim.Phase())
	}
	if d.Waiting() {
		t.Error("Expected no pending slide")
	}

	anim.Update()
	if anim.Len() != 3 {
		t.Errorf("Expected 3 agents, got %d", anim.Len())
	}
}

func TestPoll_IgnoresDeselectedSlide(t *testing.T) {
	d, anim, c, _ := setup()
	c.Select(0)
	c.Slide(1).SetImage(inkImage(2), 8, 8)
	c.Select(1)
	anim.Update()
	if anim.Len() != 2 {
		t.Fatalf("Expected 2 agents from slide b, got %d", anim.Len())
	}

	c.Slide(0).SetImage(inkImage(4), 8, 8)
	if err := d.Poll(); err != nil {
		t.Fatal(err)
	}
	anim.Update()
	if anim.Len() != 2 {
		t.Errorf("deselected slide should not be shown, got %d agents", anim.Len())
	}
}

func TestShow_Nil(t *testing.T) {
	d, _, _, _ := setup()
	if err := d.Show(nil); err != nil {
		t.Errorf("Show(nil) = %v", err)
	}
}

func TestPoll_RecordsLoadFailure(t *testing.T) {
	boom := errors.New("corrupt file")
	release := make(chan struct{})
	l := &slides.Loader{Width: 8, Height: 8, Decode: func(string) (image.Image, error) {
		<-release
		return nil, boom
	}}
	loaded, done := l.Load([]string{"bad.png"})

	clock := &fixedClock{now: time.Unix(0, 0)}
	anim := morph.New(morph.Options{Rand: morph.NewSource(1), Clock: clock, ViewWidth: 500})
	c := slides.NewCarousel(loaded...)
	d := New(anim, c)
	c.Select(0)
	if !d.Waiting() || d.Err() != nil {
		t.Fatalf("Expected a clean wait, waiting=%v err=%v", d.Waiting(), d.Err())
	}

	close(release)
	<-done
	if err := d.Poll(); !errors.Is(err, boom) {
		t.Fatalf("Poll = %v, want %v", err, boom)
	}
	if !errors.Is(d.Err(), boom) {
		t.Errorf("Err() = %v, want %v", d.Err(), boom)
	}
	if d.Waiting() || anim.Len() != 0 {
		t.Errorf("failed slide touched the field: waiting=%v len=%d", d.Waiting(), anim.Len())
	}
}

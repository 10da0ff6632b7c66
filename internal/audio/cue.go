// Package audio plays the short cue heard when the field scatters.
package audio

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/particle-morph/internal/config"
)

const levelWindow = 1024

// Whoosh synthesizes a band of noise that swells and fades over the given
// duration, with a low-pass cutoff sweeping upwards.
func Whoosh(sr beep.SampleRate, d time.Duration, seed int64) beep.Streamer {
	total := sr.N(d)
	rnd := rand.New(rand.NewSource(seed))
	pos := 0
	var lp float64

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			t := float64(pos) / float64(total)
			env := math.Sin(math.Pi * t)
			cutoff := 0.02 + 0.25*t
			lp += cutoff * (rnd.Float64()*2 - 1 - lp)
			v := lp * env * 2
			samples[i][0] = v
			samples[i][1] = v
			pos++
			n++
		}
		return n, true
	})
}

// Decode opens a wav, mp3 or flac file.
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, errors.New("unsupported file type: " + ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return streamer, format, nil
}

// Cue holds a buffered sound and plays it through the speaker on demand.
type Cue struct {
	format beep.Format
	buffer *beep.Buffer
	volume float64
	muted  bool

	mu      sync.Mutex
	current *tap
	ready   bool
}

// NewCue buffers the sound at path, or a synthesized whoosh when path is
// empty, resampled to the cue sample rate.
func NewCue(path string, volume float64) (*Cue, error) {
	format := beep.Format{SampleRate: config.CueSampleRate, NumChannels: 2, Precision: 2}
	buffer := beep.NewBuffer(format)

	if path == "" {
		buffer.Append(Whoosh(format.SampleRate, config.CueDuration, 1))
	} else {
		streamer, f, err := Decode(path)
		if err != nil {
			return nil, err
		}
		defer streamer.Close()
		var s beep.Streamer = streamer
		if f.SampleRate != format.SampleRate {
			s = beep.Resample(4, f.SampleRate, format.SampleRate, streamer)
		}
		buffer.Append(s)
		if err := streamer.Err(); err != nil {
			return nil, fmt.Errorf("read cue %s: %w", filepath.Base(path), err)
		}
	}

	return &Cue{format: format, buffer: buffer, volume: volume}, nil
}

// Init opens the speaker. Without it Play is a no-op.
func (c *Cue) Init() error {
	sr := c.format.SampleRate
	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	c.mu.Lock()
	c.ready = true
	c.mu.Unlock()
	return nil
}

func (c *Cue) SetMuted(m bool) {
	c.mu.Lock()
	c.muted = m
	c.mu.Unlock()
}

func (c *Cue) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

func (c *Cue) Len() int { return c.buffer.Len() }

// stream builds the playback chain: buffer -> volume -> tap.
func (c *Cue) stream() *tap {
	vol := &effects.Volume{
		Streamer: c.buffer.Streamer(0, c.buffer.Len()),
		Base:     2,
		Volume:   c.volume,
		Silent:   c.muted,
	}
	return newTap(vol, config.CueRingSize)
}

// Play starts the cue from the beginning, cutting off any earlier one.
func (c *Cue) Play() {
	c.mu.Lock()
	if !c.ready {
		c.mu.Unlock()
		return
	}
	t := c.stream()
	c.current = t
	c.mu.Unlock()

	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
	speaker.Play(t)
	log.Printf("Playing transition cue")
}

// Level is the loudness of the cue playing right now, 0 when silent.
func (c *Cue) Level() float64 {
	c.mu.Lock()
	t := c.current
	c.mu.Unlock()
	if t == nil {
		return 0
	}
	return t.level(levelWindow)
}

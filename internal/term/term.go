// Package term draws the agent field in a terminal.
package term

import (
	"image/color"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/particle-morph/internal/camera"
	"github.com/iburimskiy/particle-morph/internal/director"
	"github.com/iburimskiy/particle-morph/internal/morph"
	"github.com/iburimskiy/particle-morph/internal/slides"
)

// Screen is the part of tcell.Screen the renderer needs.
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
	Clear()
	Show()
}

func styleFor(c color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// Draw plots every agent that projects inside the screen. Each cell covers
// two projected pixel rows, which roughly matches a terminal glyph's shape.
func Draw(scr Screen, agents []morph.Agent, cam *camera.Camera, status string) {
	scr.Clear()
	cols, rows := scr.Size()

	for _, a := range agents {
		sx, sy, _, ok := cam.Project(a.Current)
		if !ok {
			continue
		}
		x, y := int(sx), int(sy/2)
		if x < 0 || x >= cols || y < 1 || y >= rows {
			continue
		}
		scr.SetContent(x, y, '•', nil, styleFor(a.Color))
	}

	for i, r := range []rune(status) {
		if i >= cols {
			break
		}
		scr.SetContent(i, 0, r, nil, tcell.StyleDefault.Reverse(true))
	}
	scr.Show()
}

// Preview runs the field in a terminal until Esc or q.
type Preview struct {
	Screen   tcell.Screen
	Anim     *morph.Animation
	Carousel *slides.Carousel
	Director *director.Director
	Camera   *camera.Camera

	agents []morph.Agent
}

func (p *Preview) resize() {
	p.fit(p.Screen.Size())
}

// fit sizes the camera to the terminal. The field stays in window-scale world
// units; only the clear radius follows the smaller frustum.
func (p *Preview) fit(cols, rows int) {
	p.Camera.SetViewport(cols, rows*2)
	p.Anim.SetClearRadius(p.Camera.ClearRadius())
}

// handle returns false when the preview should stop.
func (p *Preview) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			p.Carousel.Prev()
		case tcell.KeyRight:
			p.Carousel.Next()
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
		}
	case *tcell.EventResize:
		p.resize()
		p.Screen.Sync()
	}
	return true
}

func (p *Preview) status() string {
	s := p.Carousel.Selected()
	name := "no slides"
	if s != nil {
		name = s.Name
	}
	if p.Director.Waiting() {
		name += " (loading)"
	}
	status := " " + name + " | " + p.Anim.Phase().String()
	if err := p.Director.Err(); err != nil {
		status += " | error: " + err.Error()
	}
	return status + " | ←/→ slides, q quit "
}

func (p *Preview) Run() {
	p.resize()

	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.Screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !p.handle(ev) {
				return
			}

		case <-ticker.C:
			if err := p.Director.Poll(); err != nil {
				log.Printf("Slide error: %v", err)
			}
			p.Anim.Update()
			p.Camera.Update()
			p.agents = p.Anim.Snapshot(p.agents)
			Draw(p.Screen, p.agents, p.Camera, p.status())
		}
	}
}

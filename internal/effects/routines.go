package effects

import (
	"time"

	"github.com/coreman2200/funtimes-scenestrip/internal/led"
	"github.com/coreman2200/funtimes-scenestrip/internal/scene"
)

// Step is one rendering phase: paint, refresh, then suspend for Delay.
type Step struct {
	Paint func(f *Frame)
	Delay time.Duration
	// Fixed steps ignore speed.
	Fixed bool
}

// Routine is one pass of a scene. Poll is the number of steps between scene
// re-checks; 1 re-checks before every step.
type Routine struct {
	Poll  int
	Steps func(n int) []Step
}

var (
	PartyColor     = led.Color{R: 6, G: 2, B: 8}
	RomanticColorA = led.Color{R: 6, G: 1, B: 5}
	RomanticColorB = led.Color{R: 2, G: 0, B: 2}
	RelaxColor     = led.Color{R: 2, G: 1, B: 0}
)

const (
	OffIdle       = 200 * time.Millisecond
	PartyDelay    = 30 * time.Millisecond
	RomanticDelay = 400 * time.Millisecond
	RelaxDelay    = 500 * time.Millisecond
)

// DefaultRoutines renders the built-in scenes.
func DefaultRoutines() map[scene.Scene]Routine {
	return map[scene.Scene]Routine{
		scene.Off: {Poll: 1, Steps: func(int) []Step {
			return []Step{{Paint: (*Frame).Clear, Delay: OffIdle, Fixed: true}}
		}},
		scene.Party: {Poll: 1, Steps: chase(PartyColor, PartyDelay)},
		scene.Romantic: {Poll: 1, Steps: func(int) []Step {
			return []Step{fill(RomanticColorA, RomanticDelay), fill(RomanticColorB, RomanticDelay)}
		}},
		scene.Relax: {Poll: 1, Steps: func(int) []Step {
			return []Step{fill(RelaxColor, RelaxDelay)}
		}},
	}
}

func fill(c led.Color, d time.Duration) Step {
	return Step{Paint: func(f *Frame) { f.Fill(c) }, Delay: d}
}

// chase lights a single pixel at a time from the first to the last.
func chase(c led.Color, d time.Duration) func(n int) []Step {
	return func(n int) []Step {
		steps := make([]Step, n)
		for i := range steps {
			i := i
			steps[i] = Step{Paint: func(f *Frame) {
				f.Clear()
				f.Set(i, c)
			}, Delay: d}
		}
		return steps
	}
}

// Frame is the paint surface handed to steps. Every color is capped at the
// brightness read when the step started.
type Frame struct {
	strip led.Strip
	limit uint8
}

func (f *Frame) Len() int { return f.strip.Len() }

func (f *Frame) Clear() { f.strip.Clear() }

func (f *Frame) Set(i int, c led.Color) { f.strip.SetPixel(i, c.Limit(f.limit)) }

func (f *Frame) Fill(c led.Color) {
	c = c.Limit(f.limit)
	for i := 0; i < f.strip.Len(); i++ {
		f.strip.SetPixel(i, c)
	}
}

// Package smoketest drives a fixed colour sequence through a strip so wiring,
// colour order and pixel count can be checked by eye.
package smoketest

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-scenestrip/internal/effects"
	"github.com/coreman2200/funtimes-scenestrip/internal/led"
	"github.com/coreman2200/funtimes-scenestrip/internal/notify"
)

type Phase int

const (
	Red Phase = iota
	Green
	Blue
	Chase
	Warm
	Done
)

var phaseNames = [...]string{"red", "green", "blue", "chase", "warm", "done"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

var (
	ColorRed   = led.Color{R: 4}
	ColorGreen = led.Color{G: 4}
	ColorBlue  = led.Color{B: 4}
	ColorChase = led.Color{R: 2, G: 2, B: 2}
	ColorWarm  = led.Color{R: 3, G: 2, B: 1}
)

var solids = map[Phase]led.Color{Red: ColorRed, Green: ColorGreen, Blue: ColorBlue, Warm: ColorWarm}

const (
	SolidHold = time.Second
	ChaseHold = 40 * time.Millisecond
)

const (
	TitleStart = "LED TEST"
	TitleOK    = "LED TEST OK"
)

// Runner walks the sequence one frame at a time.
type Runner struct {
	phase Phase
	pixel int
}

func NewRunner() *Runner { return &Runner{} }

func (r *Runner) Phase() Phase { return r.phase }

// Step paints the next frame into s and returns how long it should be held.
// It returns false once the sequence is complete; the strip is left cleared.
func (r *Runner) Step(s led.Strip) (time.Duration, bool) {
	s.Clear()
	switch r.phase {
	case Red, Green, Blue, Warm:
		c := solids[r.phase]
		for i := 0; i < s.Len(); i++ {
			s.SetPixel(i, c)
		}
		r.phase++
		return SolidHold, true
	case Chase:
		if r.pixel >= s.Len() {
			r.phase = Warm
			return r.Step(s)
		}
		s.SetPixel(r.pixel, ColorChase)
		r.pixel++
		return ChaseHold, true
	default:
		return 0, false
	}
}

type options struct {
	notifier notify.Notifier
	sleep    effects.SleepFunc
	log      zerolog.Logger
}

type Option func(*options)

func WithNotifier(n notify.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

func WithSleep(f effects.SleepFunc) Option {
	return func(o *options) { o.sleep = f }
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// Run plays the whole sequence on s. Cancelling ctx stops it between frames and
// blanks the strip. Refresh errors abort the run.
func Run(ctx context.Context, s led.Strip, opts ...Option) error {
	o := options{notifier: notify.Nop{}, sleep: effects.Sleep, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	o.notifier.Notify(TitleStart, fmt.Sprintf("%d pixels", s.Len()))
	r := NewRunner()
	for {
		p := r.Phase()
		hold, ok := r.Step(s)
		if err := s.Refresh(); err != nil {
			return fmt.Errorf("smoke test %s: %w", p, err)
		}
		if !ok {
			break
		}
		if err := o.sleep(ctx, hold); err != nil {
			s.Clear()
			_ = s.Refresh()
			o.log.Warn().Err(err).Str("phase", r.Phase().String()).Msg("smoke test interrupted")
			return err
		}
	}
	o.log.Info().Int("leds", s.Len()).Msg("smoke test passed")
	o.notifier.Notify(TitleOK, "")
	return nil
}

// Package effects renders lighting scenes onto an LED strip.
//
// An Engine is the single worker that owns the strip: it polls the control
// plane, runs one pass of the active scene's Routine, and loops until its
// context is cancelled. A Controller wraps bring-up and tear-down of that
// worker behind the control API.
package effects

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-scenestrip/internal/control"
	"github.com/coreman2200/funtimes-scenestrip/internal/led"
	"github.com/coreman2200/funtimes-scenestrip/internal/scene"
)

type options struct {
	routines   map[scene.Scene]Routine
	sleep      SleepFunc
	log        zerolog.Logger
	startScene scene.Scene
}

type Option func(*options)

// WithRoutines replaces the scene routines. Scenes missing from m render as Off.
func WithRoutines(m map[scene.Scene]Routine) Option {
	return func(o *options) { o.routines = m }
}

// WithSleep replaces the inter-step sleep, mainly for tests.
func WithSleep(f SleepFunc) Option {
	return func(o *options) { o.sleep = f }
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithStartScene sets the scene a Controller selects after a successful Init.
func WithStartScene(s scene.Scene) Option {
	return func(o *options) { o.startScene = s }
}

func buildOptions(opts []Option) options {
	o := options{
		routines:   DefaultRoutines(),
		sleep:      Sleep,
		log:        zerolog.Nop(),
		startScene: scene.Relax,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type Engine struct {
	plane *control.Plane
	strip led.Strip
	opts  options
}

func NewEngine(plane *control.Plane, strip led.Strip, opts ...Option) *Engine {
	return &Engine{plane: plane, strip: strip, opts: buildOptions(opts)}
}

// Run renders until ctx is cancelled and then returns ctx.Err().
func (e *Engine) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		sc := e.plane.Scene()
		r, ok := e.opts.routines[sc]
		if !ok {
			r = e.idle()
		}
		if err := e.pass(ctx, sc, r); err != nil {
			return err
		}
	}
}

func (e *Engine) idle() Routine {
	if r, ok := e.opts.routines[scene.Off]; ok {
		return r
	}
	return DefaultRoutines()[scene.Off]
}

// pass runs the steps of one routine pass, returning early when the scene
// changes at a poll boundary.
func (e *Engine) pass(ctx context.Context, sc scene.Scene, r Routine) error {
	steps := r.Steps(e.strip.Len())
	if len(steps) == 0 {
		return e.opts.sleep(ctx, MinDelay)
	}
	poll := max(r.Poll, 1)
	reported := false
	for i, st := range steps {
		if i > 0 && i%poll == 0 && e.plane.Scene() != sc {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		f := Frame{strip: e.strip, limit: uint8(e.plane.Brightness())}
		st.Paint(&f)
		if err := e.strip.Refresh(); err != nil && !reported {
			e.opts.log.Debug().Err(err).Str("scene", sc.String()).Msg("refresh failed")
			reported = true
		}
		d := st.Delay
		if !st.Fixed {
			d = ScaledDelay(d, e.plane.Speed())
		}
		if err := e.opts.sleep(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

package effects

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/coreman2200/funtimes-scenestrip/internal/control"
	"github.com/coreman2200/funtimes-scenestrip/internal/led"
)

// Status reports whether the rendering worker is running.
type Status int32

const (
	Uninitialized Status = iota
	Rendering
	// Unavailable means the last Init could not acquire the strip. Control
	// calls still succeed but nothing is drawn.
	Unavailable
)

func (s Status) String() string {
	switch s {
	case Rendering:
		return "rendering"
	case Unavailable:
		return "unavailable"
	default:
		return "uninitialized"
	}
}

// Controller is the control API: the embedded Plane's setters and getters
// plus idempotent bring-up of the rendering worker.
type Controller struct {
	*control.Plane

	open led.Opener
	opts options

	mu     sync.Mutex
	strip  led.Strip
	cancel context.CancelFunc
	done   chan struct{}
	status atomic.Int32
}

func NewController(plane *control.Plane, open led.Opener, opts ...Option) *Controller {
	return &Controller{Plane: plane, open: open, opts: buildOptions(opts)}
}

// Init opens the strip and starts the worker. It returns at once if a strip is
// already held. A failed open is logged, leaves the controller Unavailable and
// is not retried until Init is called again.
func (c *Controller) Init() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.strip != nil {
		return
	}
	strip, err := c.open()
	if err != nil {
		c.status.Store(int32(Unavailable))
		c.opts.log.Error().Err(err).Msg("led strip init failed; rendering disabled")
		return
	}
	strip.Clear()
	if err := strip.Refresh(); err != nil {
		c.opts.log.Warn().Err(err).Msg("initial clear failed")
	}
	c.strip = strip
	c.SetScene(c.opts.startScene)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.cancel, c.done = cancel, done
	eng := &Engine{plane: c.Plane, strip: strip, opts: c.opts}
	go func() {
		defer close(done)
		err := eng.Run(ctx)
		c.opts.log.Debug().Err(err).Msg("render worker stopped")
	}()

	c.status.Store(int32(Rendering))
	c.opts.log.Info().Int("leds", strip.Len()).Str("scene", c.opts.startScene.String()).Msg("render worker started")
}

func (c *Controller) Status() Status { return Status(c.status.Load()) }

// Close stops the worker, waits for it to exit and releases the strip.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.strip == nil {
		return nil
	}
	c.cancel()
	<-c.done
	err := c.strip.Close()
	c.strip, c.cancel, c.done = nil, nil, nil
	c.status.Store(int32(Uninitialized))
	return err
}

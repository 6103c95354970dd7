// Package control holds the shared lighting state written by command issuers
// and polled by the animation worker.
//
// Each field is an independent atomic value. Readers may observe an update to
// one field before or after an update to another; nothing here relies on
// cross-field consistency.
package control

import (
	"sync/atomic"

	"github.com/coreman2200/funtimes-scenestrip/internal/scene"
)

const (
	MaxBrightness = 8
	SpeedMin      = 1
	SpeedMax      = 10
	SpeedDefault  = 5
)

// Plane is the control state. The zero value is not ready; use New.
type Plane struct {
	scene      atomic.Int32
	brightness atomic.Int32
	speed      atomic.Int32
}

// State is a point-in-time read of the plane, field by field.
type State struct {
	Scene      scene.Scene `json:"scene"`
	Brightness int         `json:"brightness"`
	Speed      int         `json:"speed"`
}

// New returns a plane with scene Off, full brightness and default speed.
func New() *Plane {
	p := &Plane{}
	p.scene.Store(int32(scene.Off))
	p.brightness.Store(MaxBrightness)
	p.speed.Store(SpeedDefault)
	return p
}

// SetScene replaces the active scene. Last write wins.
func (p *Plane) SetScene(s scene.Scene) { p.scene.Store(int32(s)) }

func (p *Plane) Scene() scene.Scene { return scene.Scene(p.scene.Load()) }

// SetBrightness stores level clamped into [0, MaxBrightness].
func (p *Plane) SetBrightness(level int) {
	p.brightness.Store(int32(Clamp(level, 0, MaxBrightness)))
}

func (p *Plane) Brightness() int { return int(p.brightness.Load()) }

// SetSpeed stores level clamped into [SpeedMin, SpeedMax].
func (p *Plane) SetSpeed(level int) {
	p.speed.Store(int32(Clamp(level, SpeedMin, SpeedMax)))
}

func (p *Plane) Speed() int { return int(p.speed.Load()) }

func (p *Plane) Snapshot() State {
	return State{Scene: p.Scene(), Brightness: p.Brightness(), Speed: p.Speed()}
}

// Clamp saturates v into [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package led is the boundary between the animation engine and the physical
// strip: a pixel buffer (Strip) in front of one or more frame sinks.
package led

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned when a driver is not compiled into this build.
var ErrUnsupported = errors.New("led driver not supported in this build")

// Color is a raw RGB triple.
type Color struct{ R, G, B uint8 }

// Limit caps every channel at max.
func (c Color) Limit(max uint8) Color {
	return Color{R: min(c.R, max), G: min(c.G, max), B: min(c.B, max)}
}

// Sink abstracts an LED output. Write receives an RGB frame of 3*N bytes and
// must not retain it after returning.
type Sink interface {
	Write(rgb []byte) error
	Close() error
}

// Strip is the pixel-level capability the engine drives.
type Strip interface {
	Len() int
	SetPixel(i int, c Color)
	Clear()
	// Refresh flushes the buffer to the output.
	Refresh() error
	// Close releases the output.
	Close() error
}

// Opener acquires a strip. It is called once per successful bring-up.
type Opener func() (Strip, error)

// Buffer is a fixed-length pixel buffer flushed to a Sink.
type Buffer struct {
	px    []Color
	frame []byte
	sink  Sink
}

func NewBuffer(n int, sink Sink) (*Buffer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", n)
	}
	if sink == nil {
		return nil, errors.New("nil sink")
	}
	return &Buffer{px: make([]Color, n), frame: make([]byte, n*3), sink: sink}, nil
}

func (b *Buffer) Len() int { return len(b.px) }

// SetPixel ignores indexes outside the strip.
func (b *Buffer) SetPixel(i int, c Color) {
	if i < 0 || i >= len(b.px) {
		return
	}
	b.px[i] = c
}

func (b *Buffer) Pixel(i int) Color { return b.px[i] }

func (b *Buffer) Clear() {
	for i := range b.px {
		b.px[i] = Color{}
	}
}

func (b *Buffer) Refresh() error {
	for i, c := range b.px {
		b.frame[i*3+0] = c.R
		b.frame[i*3+1] = c.G
		b.frame[i*3+2] = c.B
	}
	return b.sink.Write(b.frame)
}

func (b *Buffer) Close() error { return b.sink.Close() }

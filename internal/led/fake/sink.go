// Package fake provides an in-memory led.Sink for headless tests.
package fake

import (
	"errors"
	"sync"
)

// Sink records every frame written to it.
type Sink struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool

	// OnWrite, if set, runs after a frame is recorded with its 1-based count.
	OnWrite func(count int, rgb []byte)
	// Err, if set, is returned from Write after recording.
	Err error
}

var ErrClosed = errors.New("fake sink closed")

func (s *Sink) Write(rgb []byte) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.frames = append(s.frames, append([]byte(nil), rgb...))
	n := len(s.frames)
	hook, err := s.OnWrite, s.Err
	s.mu.Unlock()
	if hook != nil {
		hook(n, rgb)
	}
	return err
}

func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Sink) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Frames returns copies of all recorded frames.
func (s *Sink) Frames() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, len(s.frames))
	for i, f := range s.frames {
		out[i] = append([]byte(nil), f...)
	}
	return out
}

func (s *Sink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

// Lit returns the indexes of pixels with any nonzero channel.
func Lit(rgb []byte) []int {
	var out []int
	for i := 0; i+2 < len(rgb); i += 3 {
		if rgb[i] != 0 || rgb[i+1] != 0 || rgb[i+2] != 0 {
			out = append(out, i/3)
		}
	}
	return out
}

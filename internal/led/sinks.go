package led

import (
	"errors"
	"sync"
)

// Null discards every frame.
type Null struct{}

func (Null) Write([]byte) error { return nil }
func (Null) Close() error       { return nil }

// Tee writes each frame to every sink in order. All sinks are attempted; the
// errors are joined.
type Tee []Sink

func (t Tee) Write(rgb []byte) error {
	var errs []error
	for _, s := range t {
		if err := s.Write(rgb); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t Tee) Close() error {
	var errs []error
	for _, s := range t {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Snapshot keeps a copy of the latest frame for readers on other goroutines.
type Snapshot struct {
	mu      sync.RWMutex
	rgb     []byte
	frameID uint64
}

func (s *Snapshot) Write(rgb []byte) error {
	s.mu.Lock()
	s.rgb = append(s.rgb[:0], rgb...)
	s.frameID++
	s.mu.Unlock()
	return nil
}

func (s *Snapshot) Close() error { return nil }

// Frame returns a copy of the last frame and its sequence number.
func (s *Snapshot) Frame() ([]byte, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.rgb...), s.frameID
}

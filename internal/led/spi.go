package led

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// DefaultSPIFreq is the NRZ bit rate: 3 SPI bits per WS2812 bit at 800kHz,
// plus headroom.
const DefaultSPIFreq = 2500 * physic.KiloHertz

// SPI drives WS2812 pixels through an SPI port using the nrzled encoder.
// Frames are RGB; nrzled emits the GRB wire order WS2812 expects.
type SPI struct {
	mu     sync.Mutex
	dev    *nrzled.Dev
	closer spi.PortCloser
	count  int
}

// OpenSPI initializes the host drivers and opens the named SPI port ("" picks
// the first one available).
func OpenSPI(name string, count int, freq physic.Frequency) (*SPI, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	p, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", name, err)
	}
	s, err := NewSPI(p, count, freq)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	s.closer = p
	return s, nil
}

// NewSPI wraps an already opened port. The caller keeps ownership of p.
func NewSPI(p spi.Port, count int, freq physic.Frequency) (*SPI, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", count)
	}
	if freq == 0 {
		freq = DefaultSPIFreq
	}
	d, err := nrzled.NewSPI(p, &nrzled.Opts{NumPixels: count, Channels: 3, Freq: freq})
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	return &SPI{dev: d, count: count}, nil
}

func (s *SPI) Write(rgb []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return fmt.Errorf("spi closed")
	}
	if len(rgb) != s.count*3 {
		return fmt.Errorf("rgb length %d does not match count %d", len(rgb), s.count)
	}
	if _, err := s.dev.Write(rgb); err != nil {
		return fmt.Errorf("spi write: %w", err)
	}
	return nil
}

// Close blanks the strip and releases the port if this sink opened it.
func (s *SPI) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return nil
	}
	err := s.dev.Halt()
	s.dev = nil
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
		s.closer = nil
	}
	return err
}

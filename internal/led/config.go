package led

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
)

const (
	DriverSPI    = "spi"
	DriverPWM    = "pwm"
	DriverScreen = "screen"
	DriverNull   = "null"
)

// Config fixes the output hardware for the life of a strip handle.
type Config struct {
	Driver     string
	GPIO       int
	Count      int
	Order      Order
	SPIPort    string
	SPIFreqKHz int
	ScreenGain int
}

// OpenSink opens the configured hardware output.
func (c Config) OpenSink() (Sink, error) {
	switch c.Driver {
	case DriverSPI:
		freq := physic.Frequency(c.SPIFreqKHz) * physic.KiloHertz
		return OpenSPI(c.SPIPort, c.Count, freq)
	case DriverPWM:
		return OpenPWM(c.GPIO, c.Count, c.Order)
	case DriverScreen:
		return NewScreen(c.Count, c.ScreenGain), nil
	case DriverNull, "":
		return Null{}, nil
	default:
		return nil, fmt.Errorf("unknown driver %q", c.Driver)
	}
}

// NewOpener returns an Opener that builds a Buffer over the hardware sink,
// mirrored into any extra sinks (previews, snapshots).
func NewOpener(c Config, extra ...Sink) Opener {
	return func() (Strip, error) {
		hw, err := c.OpenSink()
		if err != nil {
			return nil, fmt.Errorf("open %s driver: %w", c.Driver, err)
		}
		var sink Sink = hw
		if len(extra) > 0 {
			sink = append(Tee{hw}, extra...)
		}
		b, err := NewBuffer(c.Count, sink)
		if err != nil {
			_ = sink.Close()
			return nil, err
		}
		return b, nil
	}
}

//go:build rpi

package led

import (
	"fmt"
	"sync"

	ws2811 "github.com/rpi-ws281x/rpi-ws281x-go"
)

// PWM drives the strip from a GPIO pin through the rpi_ws281x DMA engine.
type PWM struct {
	mu    sync.Mutex
	dev   *ws2811.WS2811
	count int
}

func OpenPWM(gpio, count int, order Order) (*PWM, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", count)
	}
	opt := ws2811.DefaultOptions
	opt.Channels[0].GpioPin = gpio
	opt.Channels[0].LedCount = count
	opt.Channels[0].Brightness = 255
	opt.Channels[0].StripeType = stripeType(order)

	dev, err := ws2811.MakeWS2811(&opt)
	if err != nil {
		return nil, fmt.Errorf("ws2811: %w", err)
	}
	if err := dev.Init(); err != nil {
		return nil, fmt.Errorf("ws2811 init on gpio %d: %w", gpio, err)
	}
	return &PWM{dev: dev, count: count}, nil
}

func stripeType(o Order) int {
	switch o.String() {
	case "RGB":
		return ws2811.WS2811StripRGB
	case "RBG":
		return ws2811.WS2811StripRBG
	case "GBR":
		return ws2811.WS2811StripGBR
	case "BRG":
		return ws2811.WS2811StripBRG
	case "BGR":
		return ws2811.WS2811StripBGR
	default:
		return ws2811.WS2811StripGRB
	}
}

// Write packs the frame as 0x00RRGGBB; the stripe type handles wire order.
func (p *PWM) Write(rgb []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dev == nil {
		return fmt.Errorf("pwm closed")
	}
	leds := p.dev.Leds(0)
	for i := 0; i < p.count && i < len(leds) && i*3+2 < len(rgb); i++ {
		leds[i] = uint32(rgb[i*3])<<16 | uint32(rgb[i*3+1])<<8 | uint32(rgb[i*3+2])
	}
	if err := p.dev.Render(); err != nil {
		return fmt.Errorf("ws2811 render: %w", err)
	}
	return nil
}

func (p *PWM) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dev != nil {
		leds := p.dev.Leds(0)
		for i := range leds {
			leds[i] = 0
		}
		_ = p.dev.Render()
		p.dev.Fini()
		p.dev = nil
	}
	return nil
}

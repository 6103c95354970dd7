package led

import (
	"image"
	"image/color"
	"sync"

	"periph.io/x/extra/devices/screen"
)

type drawer interface {
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
	Halt() error
}

// Screen prints each frame to the terminal as a row of colored blocks.
// Strip levels are tiny on purpose, so Gain scales them up for visibility.
type Screen struct {
	mu   sync.Mutex
	d    drawer
	img  *image.NRGBA
	gain int
}

func NewScreen(count, gain int) *Screen {
	if gain <= 0 {
		gain = 1
	}
	return &Screen{
		d:    screen.New(count),
		img:  image.NewNRGBA(image.Rect(0, 0, count, 1)),
		gain: gain,
	}
}

func (s *Screen) Write(rgb []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.img.Rect.Dx()
	for i := 0; i < n && i*3+2 < len(rgb); i++ {
		s.img.SetNRGBA(i, 0, color.NRGBA{
			R: scale(rgb[i*3], s.gain),
			G: scale(rgb[i*3+1], s.gain),
			B: scale(rgb[i*3+2], s.gain),
			A: 255,
		})
	}
	return s.d.Draw(s.d.Bounds(), s.img, image.Point{})
}

func (s *Screen) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d.Halt()
}

func scale(v byte, gain int) byte {
	x := int(v) * gain
	if x > 255 {
		return 255
	}
	return byte(x)
}

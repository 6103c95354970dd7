//go:build !rpi

package led

import "fmt"

type PWM struct{}

func OpenPWM(gpio, count int, order Order) (*PWM, error) {
	return nil, fmt.Errorf("pwm on gpio %d: %w (build with -tags rpi)", gpio, ErrUnsupported)
}

func (p *PWM) Write(rgb []byte) error { return ErrUnsupported }
func (p *PWM) Close() error           { return nil }

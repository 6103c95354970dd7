// Package config loads the strip's YAML configuration. Values are read at
// start-up only; nothing here is written back while the program runs.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/coreman2200/funtimes-scenestrip/internal/control"
	"github.com/coreman2200/funtimes-scenestrip/internal/led"
	"github.com/coreman2200/funtimes-scenestrip/internal/scene"
)

var ErrInvalid = errors.New("invalid config")

type SPI struct {
	Port    string `yaml:"port"`     // e.g. /dev/spidev0.0, empty for the first port
	FreqKHz int    `yaml:"freq_khz"` // e.g. 2500
}

type Logging struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

type Preview struct {
	Addr string `yaml:"addr,omitempty"` // e.g. :8080, empty disables
}

type Classifier struct {
	Rules []scene.Rule `yaml:"rules,omitempty"`
}

type Config struct {
	Driver     string `yaml:"driver"` // "spi" | "pwm" | "screen" | "null"
	GPIO       int    `yaml:"gpio"`
	Count      int    `yaml:"count"`
	ColorOrder string `yaml:"color_order"`
	ScreenGain int    `yaml:"screen_gain,omitempty"`
	SPI        SPI    `yaml:"spi,omitempty"`

	StartScene string `yaml:"start_scene"`
	Brightness int    `yaml:"brightness"`
	Speed      int    `yaml:"speed"`

	Logging    Logging    `yaml:"logging"`
	Preview    Preview    `yaml:"preview,omitempty"`
	Classifier Classifier `yaml:"classifier,omitempty"`
}

// Default matches the reference build: 60 GRB pixels on GPIO 18.
func Default() *Config {
	return &Config{
		Driver:     led.DriverSPI,
		GPIO:       18,
		Count:      60,
		ColorOrder: "GRB",
		ScreenGain: 24,
		SPI:        SPI{FreqKHz: 2500},
		StartScene: scene.Relax.String(),
		Brightness: control.MaxBrightness,
		Speed:      control.SpeedDefault,
		Logging:    Logging{Level: "info"},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate reports every problem at once, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	switch c.Driver {
	case led.DriverSPI, led.DriverPWM, led.DriverScreen, led.DriverNull:
	default:
		errs = append(errs, fmt.Errorf("driver %q is not one of spi, pwm, screen, null", c.Driver))
	}
	if c.Count <= 0 {
		errs = append(errs, fmt.Errorf("count must be positive, got %d", c.Count))
	}
	if _, err := led.ParseOrder(c.ColorOrder); err != nil {
		errs = append(errs, err)
	}
	if c.GPIO < 0 {
		errs = append(errs, fmt.Errorf("gpio must not be negative, got %d", c.GPIO))
	}
	if c.SPI.FreqKHz < 0 {
		errs = append(errs, fmt.Errorf("spi.freq_khz must not be negative, got %d", c.SPI.FreqKHz))
	}
	if _, err := scene.Parse(c.StartScene); err != nil {
		errs = append(errs, fmt.Errorf("start_scene: %w", err))
	}
	if c.Brightness < 0 || c.Brightness > control.MaxBrightness {
		errs = append(errs, fmt.Errorf("brightness must be within 0..%d, got %d", control.MaxBrightness, c.Brightness))
	}
	if c.Speed < control.SpeedMin || c.Speed > control.SpeedMax {
		errs = append(errs, fmt.Errorf("speed must be within %d..%d, got %d", control.SpeedMin, control.SpeedMax, c.Speed))
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	for i, r := range c.Classifier.Rules {
		if len(r.Keywords) == 0 {
			errs = append(errs, fmt.Errorf("classifier.rules[%d] has no keywords", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// LED returns the driver settings. Call after Validate.
func (c *Config) LED() led.Config {
	order, _ := led.ParseOrder(c.ColorOrder)
	return led.Config{
		Driver:     c.Driver,
		GPIO:       c.GPIO,
		Count:      c.Count,
		Order:      order,
		SPIPort:    c.SPI.Port,
		SPIFreqKHz: c.SPI.FreqKHz,
		ScreenGain: c.ScreenGain,
	}
}

// Scene returns the parsed start scene, or Relax if it does not parse.
func (c *Config) Scene() scene.Scene {
	s, err := scene.Parse(c.StartScene)
	if err != nil {
		return scene.Relax
	}
	return s
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-scenestrip/internal/config"
	"github.com/coreman2200/funtimes-scenestrip/internal/control"
	"github.com/coreman2200/funtimes-scenestrip/internal/effects"
	"github.com/coreman2200/funtimes-scenestrip/internal/led"
	"github.com/coreman2200/funtimes-scenestrip/internal/logging"
	"github.com/coreman2200/funtimes-scenestrip/internal/notify"
	"github.com/coreman2200/funtimes-scenestrip/internal/preview"
	"github.com/coreman2200/funtimes-scenestrip/internal/scene"
	"github.com/coreman2200/funtimes-scenestrip/internal/smoketest"
	"github.com/coreman2200/funtimes-scenestrip/internal/tui"
)

type flags struct {
	configPath  string
	writeConfig string
	smoke       bool
	tui         bool
	say         string
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "scenestrip: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var f flags
	cfg, err := parse(args, &f, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	if f.writeConfig != "" {
		if err := config.Save(f.writeConfig, cfg); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Fprintf(stdout, "wrote %s\n", f.writeConfig)
		return nil
	}

	// The console UI owns the terminal, so logs go to the file or nowhere.
	var console io.Writer = stderr
	if f.tui {
		console = nil
	}
	log, closeLog, err := logging.New(logging.Options{Level: cfg.Logging.Level, File: cfg.Logging.File, Console: console})
	if err != nil {
		return err
	}
	defer closeLog.Close()

	var notifier notify.Notifier = notify.Multi{notify.NewConsole(stdout), notify.Log{Logger: logging.Component(log, "notify")}}
	if f.tui {
		notifier = notify.Log{Logger: logging.Component(log, "notify")}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snap := &led.Snapshot{}
	extras := []led.Sink{snap}
	var hub *preview.Hub
	if cfg.Preview.Addr != "" {
		hub = preview.NewHub(logging.Component(log, "preview"))
		extras = append(extras, hub)
	}
	open := led.NewOpener(cfg.LED(), extras...)

	if f.smoke {
		return runSmoke(ctx, open, notifier, log)
	}

	plane := control.New()
	plane.SetBrightness(cfg.Brightness)
	plane.SetSpeed(cfg.Speed)
	ctl := effects.NewController(plane, open,
		effects.WithLogger(logging.Component(log, "effects")),
		effects.WithStartScene(cfg.Scene()),
	)
	ctl.Init()
	defer func() {
		if err := ctl.Close(); err != nil {
			log.Warn().Err(err).Msg("close strip")
		}
	}()

	classifier := scene.Default().WithRules(cfg.Classifier.Rules)
	if f.say != "" {
		sc := classifier.Classify(f.say)
		ctl.SetScene(sc)
		notifier.Notify(scene.Name(sc), f.say)
	}

	if hub != nil {
		srv := preview.NewServer(cfg.Preview.Addr, hub, ctl)
		go func() {
			log.Info().Str("addr", cfg.Preview.Addr).Msg("preview server starting")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("preview server stopped")
			}
		}()
		defer func() {
			hub.Shutdown()
			_ = srv.Close()
		}()
	}

	if f.tui {
		p := tea.NewProgram(tui.NewModel(ctl, classifier, notifier, snap), tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("console: %w", err)
		}
		return nil
	}

	log.Info().Str("driver", cfg.Driver).Str("status", ctl.Status().String()).Msg("running; ctrl+c to stop")
	<-ctx.Done()
	log.Info().Msg("shutting down")
	return nil
}

func runSmoke(ctx context.Context, open led.Opener, n notify.Notifier, log zerolog.Logger) error {
	strip, err := open()
	if err != nil {
		return err
	}
	defer strip.Close()
	return smoketest.Run(ctx, strip,
		smoketest.WithNotifier(n),
		smoketest.WithLogger(logging.Component(log, "smoketest")),
	)
}

// parse loads the config file and lets explicitly set flags override it.
// A missing file is only an error when -config was given.
func parse(args []string, f *flags, stderr io.Writer) (*config.Config, error) {
	def := config.Default()
	set := flag.NewFlagSet("scenestrip", flag.ContinueOnError)
	set.SetOutput(stderr)
	set.StringVar(&f.configPath, "config", "config.yaml", "path to config.yaml")
	set.StringVar(&f.writeConfig, "write-config", "", "write the effective config to this path and exit")
	set.BoolVar(&f.smoke, "smoke", false, "run the hardware smoke test and exit")
	set.BoolVar(&f.tui, "tui", false, "interactive console")
	set.StringVar(&f.say, "say", "", "classify this text and switch to its scene")
	set.String("driver", def.Driver, "driver: spi | pwm | screen | null")
	set.Int("gpio", def.GPIO, "PWM data pin (BCM number)")
	set.Int("count", def.Count, "number of pixels")
	set.String("color", def.ColorOrder, "LED color order (e.g. GRB, RGB)")
	set.Int("brightness", def.Brightness, "start brightness 0..8")
	set.Int("speed", def.Speed, "start speed 1..10")
	set.String("scene", def.StartScene, "scene after init: off | party | romantic | relax")
	set.String("preview", "", "preview monitor listen address, e.g. :8080")
	set.String("log-level", def.Logging.Level, "log level")
	if err := set.Parse(args); err != nil {
		return nil, err
	}

	explicit := false
	set.Visit(func(fl *flag.Flag) {
		if fl.Name == "config" {
			explicit = true
		}
	})
	cfg, err := config.Load(f.configPath)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		cfg = def
	default:
		return nil, err
	}

	set.Visit(func(fl *flag.Flag) {
		v := fl.Value.String()
		switch fl.Name {
		case "driver":
			cfg.Driver = v
		case "color":
			cfg.ColorOrder = v
		case "scene":
			cfg.StartScene = v
		case "preview":
			cfg.Preview.Addr = v
		case "log-level":
			cfg.Logging.Level = v
		case "gpio", "count", "brightness", "speed":
			*intField(cfg, fl.Name) = fl.Value.(flag.Getter).Get().(int)
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// The screen sink prints to the terminal the console UI owns.
	if f.tui && cfg.Driver == led.DriverScreen {
		return nil, fmt.Errorf("%w: driver %q cannot be used with -tui", config.ErrInvalid, cfg.Driver)
	}
	return cfg, nil
}

func intField(c *config.Config, name string) *int {
	switch name {
	case "gpio":
		return &c.GPIO
	case "count":
		return &c.Count
	case "brightness":
		return &c.Brightness
	default:
		return &c.Speed
	}
}

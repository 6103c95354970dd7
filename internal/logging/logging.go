// Package logging builds the zerolog logger shared by the binary's components.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	Level string
	// File, if set, receives JSON events instead of the console.
	File string
	// Console receives human-readable output. Nil with no File discards logs.
	Console io.Writer
}

// New returns the root logger and a closer for any file it opened.
func New(o Options) (zerolog.Logger, io.Closer, error) {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl := zerolog.InfoLevel
	if o.Level != "" {
		l, err := zerolog.ParseLevel(o.Level)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("log level: %w", err)
		}
		lvl = l
	}

	var (
		out    io.Writer = io.Discard
		closer io.Closer = nopCloser{}
	)
	switch {
	case o.File != "":
		f, err := os.OpenFile(o.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	case o.Console != nil:
		out = zerolog.ConsoleWriter{Out: o.Console, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), closer, nil
}

// Component tags l with the name of the package logging through it.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

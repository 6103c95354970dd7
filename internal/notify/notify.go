// Package notify shows short status messages to whoever is watching the strip.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

type Notifier interface {
	Notify(title, detail string)
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Notify(string, string) {}

// Multi fans a notification out to each Notifier in order.
type Multi []Notifier

func (m Multi) Notify(title, detail string) {
	for _, n := range m {
		n.Notify(title, detail)
	}
}

// Log writes notifications as info events.
type Log struct {
	Logger zerolog.Logger
}

func (l Log) Notify(title, detail string) {
	l.Logger.Info().Str("title", title).Str("detail", detail).Msg("notify")
}

var (
	colorBadge = lipgloss.Color("#B794F4")
	colorInk   = lipgloss.Color("#1A1A2E")
	colorMuted = lipgloss.Color("#A0A0B0")

	styleBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorInk).
			Background(colorBadge).
			Padding(0, 1)

	styleDetail = lipgloss.NewStyle().
			Foreground(colorMuted).
			PaddingLeft(1)
)

// Console prints a styled badge line per notification.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console { return &Console{w: w} }

func (c *Console) Notify(title, detail string) {
	line := styleBadge.Render(title)
	if detail != "" {
		line += styleDetail.Render(detail)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, line)
}

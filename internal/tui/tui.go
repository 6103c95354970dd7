// Package tui is an interactive console for the strip: type a command, watch
// the scene change.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/coreman2200/funtimes-scenestrip/internal/control"
	"github.com/coreman2200/funtimes-scenestrip/internal/effects"
	"github.com/coreman2200/funtimes-scenestrip/internal/led"
	"github.com/coreman2200/funtimes-scenestrip/internal/notify"
	"github.com/coreman2200/funtimes-scenestrip/internal/scene"
)

const refreshEvery = 100 * time.Millisecond

// Control is the part of the controller the console drives.
type Control interface {
	SetScene(scene.Scene)
	SetBrightness(int)
	SetSpeed(int)
	Snapshot() control.State
	Status() effects.Status
}

var (
	colorPrimary = lipgloss.Color("#B794F4")
	colorMuted   = lipgloss.Color("#A0A0B0")
	colorError   = lipgloss.Color("#FC8181")
	colorOff     = lipgloss.Color("#4A4A5A")

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1).
			MarginBottom(1)

	styleMuted = lipgloss.NewStyle().Foreground(colorMuted)
	styleError = lipgloss.NewStyle().Foreground(colorError)
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type Model struct {
	ctl        Control
	classifier *scene.Classifier
	notifier   notify.Notifier
	frames     *led.Snapshot

	input textinput.Model
	last  string
	width int
}

// NewModel builds the console. frames may be nil to hide the strip preview.
func NewModel(ctl Control, c *scene.Classifier, n notify.Notifier, frames *led.Snapshot) Model {
	ti := textinput.New()
	ti.Placeholder = "派对 / party / relax ..."
	ti.CharLimit = 80
	ti.Focus()
	if n == nil {
		n = notify.Nop{}
	}
	return Model{ctl: ctl, classifier: c, notifier: n, frames: frames, input: ti}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("scenestrip"), textinput.Blink, tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		return m, tick()

	case tea.KeyMsg:
		st := m.ctl.Snapshot()
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up":
			m.ctl.SetBrightness(st.Brightness + 1)
			return m, nil
		case "down":
			m.ctl.SetBrightness(st.Brightness - 1)
			return m, nil
		case "pgup":
			m.ctl.SetSpeed(st.Speed + 1)
			return m, nil
		case "pgdown":
			m.ctl.SetSpeed(st.Speed - 1)
			return m, nil
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if text == "" {
				return m, nil
			}
			sc := m.classifier.Classify(text)
			m.ctl.SetScene(sc)
			m.last = scene.Name(sc)
			m.notifier.Notify(m.last, text)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	st := m.ctl.Snapshot()

	b.WriteString(styleHeader.Render("scenestrip"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  brightness %d/%d  speed %d/%d  ",
		scene.Name(st.Scene), st.Brightness, control.MaxBrightness, st.Speed, control.SpeedMax)
	if s := m.ctl.Status(); s == effects.Unavailable {
		b.WriteString(styleError.Render(s.String()))
	} else {
		b.WriteString(styleMuted.Render(s.String()))
	}
	b.WriteString("\n\n")

	if m.frames != nil {
		rgb, _ := m.frames.Frame()
		b.WriteString(renderStrip(rgb, m.width))
		b.WriteString("\n\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.last != "" {
		b.WriteString(styleMuted.Render("→ " + m.last))
		b.WriteString("\n")
	}
	b.WriteString(styleMuted.Render("enter: apply  ↑/↓: brightness  pgup/pgdn: speed  esc: quit"))
	return b.String()
}

// renderStrip draws one block per pixel. Channels are stretched from the
// 0..MaxBrightness range so dim scenes stay visible.
func renderStrip(rgb []byte, width int) string {
	n := len(rgb) / 3
	if width > 0 && n > width {
		n = width
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		r, g, bl := rgb[i*3], rgb[i*3+1], rgb[i*3+2]
		if r == 0 && g == 0 && bl == 0 {
			b.WriteString(lipgloss.NewStyle().Foreground(colorOff).Render("·"))
			continue
		}
		c := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", stretch(r), stretch(g), stretch(bl)))
		b.WriteString(lipgloss.NewStyle().Foreground(c).Render("█"))
	}
	return b.String()
}

func stretch(v byte) byte {
	s := int(v) * 255 / control.MaxBrightness
	if s > 255 {
		s = 255
	}
	return byte(s)
}

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-scenestrip/internal/control"
	"github.com/coreman2200/funtimes-scenestrip/internal/effects"
	"github.com/coreman2200/funtimes-scenestrip/internal/led"
	"github.com/coreman2200/funtimes-scenestrip/internal/scene"
)

type fakeControl struct {
	*control.Plane
	status effects.Status
}

func (f fakeControl) Status() effects.Status { return f.status }

type titles []string

func (t *titles) Notify(title, _ string) { *t = append(*t, title) }

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	var tm tea.Model = m
	for _, msg := range msgs {
		tm, _ = tm.Update(msg)
	}
	out, ok := tm.(Model)
	require.True(t, ok)
	return out
}

func typeText(s string) tea.Msg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestEnterClassifiesAndNotifies(t *testing.T) {
	ctl := fakeControl{Plane: control.New(), status: effects.Rendering}
	var got titles
	m := NewModel(ctl, scene.Default(), &got, nil)

	m = send(t, m, typeText("今晚派对"), tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, scene.Party, ctl.Scene())
	assert.Equal(t, titles{"Scene: Party"}, got)
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.View(), "Scene: Party")
}

func TestEnterUnknownTextFallsBackToRelax(t *testing.T) {
	ctl := fakeControl{Plane: control.New()}
	m := NewModel(ctl, scene.Default(), nil, nil)

	send(t, m, typeText("hello world"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, scene.Relax, ctl.Scene())
}

func TestEmptyEnterIsIgnored(t *testing.T) {
	ctl := fakeControl{Plane: control.New()}
	var got titles
	m := NewModel(ctl, scene.Default(), &got, nil)

	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, scene.Off, ctl.Scene())
	assert.Empty(t, got)
}

func TestArrowKeysAdjustAndClamp(t *testing.T) {
	ctl := fakeControl{Plane: control.New()}
	m := NewModel(ctl, scene.Default(), nil, nil)

	send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, control.MaxBrightness, ctl.Brightness())

	send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, control.MaxBrightness-2, ctl.Brightness())

	send(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, control.SpeedDefault+1, ctl.Speed())

	for i := 0; i < 20; i++ {
		send(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	}
	assert.Equal(t, control.SpeedMin, ctl.Speed())
}

func TestQuitKeys(t *testing.T) {
	m := NewModel(fakeControl{Plane: control.New()}, scene.Default(), nil, nil)
	for _, k := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(k)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestViewShowsStatusAndStrip(t *testing.T) {
	ctl := fakeControl{Plane: control.New(), status: effects.Unavailable}
	snap := &led.Snapshot{}
	require.NoError(t, snap.Write([]byte{2, 1, 0, 0, 0, 0}))

	m := NewModel(ctl, scene.Default(), nil, snap)
	view := m.View()
	assert.Contains(t, view, "Scene: Off")
	assert.Contains(t, view, "unavailable")
	assert.Contains(t, view, "█")
	assert.Contains(t, view, "·")
}

func TestStretch(t *testing.T) {
	assert.Equal(t, byte(0), stretch(0))
	assert.Equal(t, byte(255), stretch(control.MaxBrightness))
	assert.Equal(t, byte(255), stretch(200))
}

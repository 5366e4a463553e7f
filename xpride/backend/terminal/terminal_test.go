package terminal

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-xpride/xpride/backend"
	"github.com/valerio/go-xpride/xpride/event"
	"github.com/valerio/go-xpride/xpride/flags"
	"github.com/valerio/go-xpride/xpride/geometry"
)

func newSimulated(t *testing.T) (*Backend, tcell.SimulationScreen, *bytes.Buffer) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	b := NewWithScreen(screen)
	logs := &bytes.Buffer{}
	b.SetLogOutput(logs)

	require.NoError(t, b.Init(backend.Config{Title: "xpride"}))
	t.Cleanup(func() { _ = b.Cleanup() })
	return b, screen, logs
}

func backgroundAt(screen tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func TestTerminalBackend_InitialRedraw(t *testing.T) {
	b, screen, _ := newSimulated(t)

	width, height := screen.Size()
	events, err := b.Update()
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, event.NewRedraw(width, height), events[0])
}

func TestTerminalBackend_ResizeCoalesces(t *testing.T) {
	b, screen, _ := newSimulated(t)

	screen.SetSize(40, 10)
	require.NoError(t, screen.PostEvent(tcell.NewEventResize(30, 12)))
	require.NoError(t, screen.PostEvent(tcell.NewEventResize(40, 10)))

	events, err := b.Update()
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, event.Redraw, events[0].Type)
	assert.Equal(t, geometry.Size{Width: 40, Height: 10}, events[0].Size)
}

func TestTerminalBackend_QuitKeys(t *testing.T) {
	keys := []struct {
		name string
		ev   *tcell.EventKey
	}{
		{name: "escape", ev: tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)},
		{name: "ctrl-c", ev: tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone)},
		{name: "q", ev: tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)},
	}

	for _, tt := range keys {
		t.Run(tt.name, func(t *testing.T) {
			b, screen, _ := newSimulated(t)

			// Drain the initial redraw
			_, err := b.Update()
			require.NoError(t, err)

			require.NoError(t, screen.PostEvent(tt.ev))
			events, err := b.Update()
			require.NoError(t, err)

			require.Len(t, events, 1)
			assert.Equal(t, event.Quit, events[0].Type)
		})
	}
}

func TestTerminalBackend_RedrawBeforeQuit(t *testing.T) {
	b, screen, _ := newSimulated(t)

	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
	require.NoError(t, screen.PostEvent(tcell.NewEventInterrupt("SIGTERM")))

	events, err := b.Update()
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, event.Redraw, events[0].Type)
	assert.Equal(t, event.Quit, events[1].Type)
}

func TestTerminalBackend_Draw(t *testing.T) {
	b, screen, _ := newSimulated(t)
	screen.SetSize(40, 10)

	flag := flags.New(0xff0000, 0x00ff00, 0x0000ff)
	resolved, err := geometry.Resolve(flag, 40, 10)
	require.NoError(t, err)
	require.NoError(t, b.Draw(resolved))

	rows := map[int]tcell.Color{
		0: tcell.NewHexColor(0xff0000),
		2: tcell.NewHexColor(0xff0000),
		3: tcell.NewHexColor(0x00ff00),
		5: tcell.NewHexColor(0x00ff00),
		6: tcell.NewHexColor(0x0000ff),
		8: tcell.NewHexColor(0x0000ff),
	}
	for y, want := range rows {
		assert.Equal(t, want, backgroundAt(screen, 0, y), "row %d", y)
		assert.Equal(t, want, backgroundAt(screen, 39, y), "row %d", y)
	}

	// 10 rows split in 3 stripes leaves the last row on the screen background
	assert.Equal(t, tcell.ColorWhite, backgroundAt(screen, 0, 9))
	assert.Equal(t, tcell.ColorWhite, backgroundAt(screen, 39, 9))

	// The shown frame matches the back buffer
	cells, width, _ := screen.GetContents()
	require.Equal(t, 40, width)
	_, bg, _ := cells[9*width].Style.Decompose()
	assert.Equal(t, tcell.ColorWhite, bg)
	_, bg, _ = cells[6*width].Style.Decompose()
	assert.Equal(t, tcell.NewHexColor(0x0000ff), bg)
}

func TestTerminalBackend_CleanupReplaysWarnings(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	b := NewWithScreen(screen)
	logs := &bytes.Buffer{}
	b.SetLogOutput(logs)

	prior := slog.Default()
	require.NoError(t, b.Init(backend.Config{}))
	assert.NotSame(t, prior, slog.Default())

	slog.Warn("Flag parse warning", "diagnostic", "line 1: unexpected character")
	slog.Info("not replayed")

	require.NoError(t, b.Cleanup())
	assert.Same(t, prior, slog.Default())
	assert.Contains(t, logs.String(), "[WRN] Flag parse warning")
	assert.NotContains(t, logs.String(), "not replayed")

	// A second cleanup is harmless
	assert.NoError(t, b.Cleanup())
}

func TestTerminalBackend_NotInitialized(t *testing.T) {
	b := New()

	_, err := b.Update()
	assert.Error(t, err)
	assert.Error(t, b.Draw(geometry.ResolvedFlag{}))
	assert.NoError(t, b.Cleanup())
}

func TestTerminalImplementsBackend(t *testing.T) {
	var _ backend.Backend = (*Backend)(nil)
}

package terminal

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-xpride/xpride/backend"
	"github.com/valerio/go-xpride/xpride/event"
	"github.com/valerio/go-xpride/xpride/flags"
	"github.com/valerio/go-xpride/xpride/geometry"
)

const logBufferSize = 100

// backgroundStyle fills the rows no stripe covers
var backgroundStyle = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)

// Backend implements the Backend interface using tcell for terminal rendering.
// One terminal cell is one unit of surface; stripes are painted as cell backgrounds.
type Backend struct {
	screen    tcell.Screen
	newScreen func() (tcell.Screen, error)
	config    backend.Config

	logBuffer   *LogBuffer
	logLevel    slog.Level
	priorLogger *slog.Logger
	logOutput   io.Writer // Receives buffered warnings on cleanup

	signals chan os.Signal
	pending []event.Event
}

// New creates a new terminal backend on the controlling terminal
func New() *Backend {
	return &Backend{
		newScreen: tcell.NewScreen,
		logLevel:  slog.LevelInfo,
		logOutput: os.Stderr,
	}
}

// NewWithScreen creates a terminal backend drawing to an existing screen,
// such as a tcell simulation screen.
func NewWithScreen(screen tcell.Screen) *Backend {
	b := New()
	b.newScreen = func() (tcell.Screen, error) { return screen, nil }
	return b
}

// SetLogLevel sets the minimum level captured while the screen is active
func (t *Backend) SetLogLevel(level slog.Level) {
	t.logLevel = level
}

// SetLogOutput sets where buffered warnings are written on cleanup
func (t *Backend) SetLogOutput(w io.Writer) {
	t.logOutput = w
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.Config) error {
	t.config = config

	screen, err := t.newScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	t.screen = screen

	// Log output would corrupt the screen, capture it until cleanup
	t.logBuffer = NewLogBuffer(logBufferSize)
	t.priorLogger = slog.Default()
	slog.SetDefault(slog.New(NewLogBufferHandler(t.logBuffer, t.logLevel)))

	t.screen.SetStyle(backgroundStyle)
	t.screen.HideCursor()
	t.screen.Fill(' ', backgroundStyle)

	// The first paint does not wait for a resize
	width, height := t.screen.Size()
	t.pending = append(t.pending, event.NewRedraw(width, height))

	// Set up signal handling for graceful shutdown
	t.signals = make(chan os.Signal, 1)
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go t.forwardSignals(t.screen, t.signals)

	slog.Info("Terminal backend initialized", "width", width, "height", height)
	return nil
}

// Update waits for terminal events. Consecutive resizes collapse into one
// redraw at the latest size.
func (t *Backend) Update() ([]event.Event, error) {
	if t.screen == nil {
		return nil, fmt.Errorf("terminal backend not initialized")
	}

	if len(t.pending) == 0 {
		t.handleEvent(t.screen.PollEvent())
	}
	for t.screen.HasPendingEvent() {
		t.handleEvent(t.screen.PollEvent())
	}

	var (
		events []event.Event
		redraw *event.Event
		quit   bool
	)
	for i := range t.pending {
		switch t.pending[i].Type {
		case event.Redraw:
			redraw = &t.pending[i]
		case event.Quit:
			quit = true
		}
	}
	if redraw != nil {
		events = append(events, *redraw)
	}
	if quit {
		events = append(events, event.NewQuit())
	}
	t.pending = t.pending[:0]

	return events, nil
}

// Draw paints each stripe by filling its cells with the stripe colour
func (t *Backend) Draw(flag geometry.ResolvedFlag) error {
	if t.screen == nil {
		return fmt.Errorf("terminal backend not initialized")
	}

	t.screen.Fill(' ', backgroundStyle)
	for _, stripe := range flag.Stripes {
		style := tcell.StyleDefault.Background(cellColor(stripe.Color))
		bottom := int(stripe.Y) + int(stripe.Height)
		right := int(stripe.X) + int(stripe.Width)
		for y := int(stripe.Y); y < bottom; y++ {
			for x := int(stripe.X); x < right; x++ {
				t.screen.SetContent(x, y, ' ', nil, style)
			}
		}
	}
	t.screen.Show()

	slog.Debug("Drew flag", "stripes", flag.Len(), "uncovered_rows", flag.Uncovered())
	return nil
}

// Cleanup restores the terminal and prints any warnings logged meanwhile
func (t *Backend) Cleanup() error {
	if t.signals != nil {
		signal.Stop(t.signals)
		close(t.signals)
		t.signals = nil
	}

	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
		t.screen = nil
	}

	if t.priorLogger != nil {
		slog.SetDefault(t.priorLogger)
		t.priorLogger = nil
	}

	if t.logBuffer != nil && t.logOutput != nil {
		if err := t.logBuffer.Replay(t.logOutput, slog.LevelWarn); err != nil {
			return fmt.Errorf("failed to replay terminal logs: %w", err)
		}
		t.logBuffer.Clear()
	}
	return nil
}

func (t *Backend) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case nil:
		// PollEvent returns nil once the screen is finalized
		t.pending = append(t.pending, event.NewQuit())
	case *tcell.EventResize:
		width, height := ev.Size()
		t.screen.Sync()
		t.pending = append(t.pending, event.NewRedraw(width, height))
	case *tcell.EventKey:
		if isQuitKey(ev) {
			t.pending = append(t.pending, event.NewQuit())
		}
	case *tcell.EventInterrupt:
		slog.Info("Received signal, shutting down", "signal", ev.Data())
		t.pending = append(t.pending, event.NewQuit())
	}
}

// forwardSignals turns OS signals into screen interrupts so they are
// handled on the event loop.
func (t *Backend) forwardSignals(screen tcell.Screen, signals <-chan os.Signal) {
	sig, ok := <-signals
	if !ok {
		return
	}
	screen.PostEvent(tcell.NewEventInterrupt(sig))
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	default:
		return false
	}
}

// cellColor maps a stripe colour to a 24-bit terminal colour
func cellColor(c flags.Color) tcell.Color {
	return tcell.NewHexColor(int32(c & 0xFFFFFF))
}

package flags

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ErrNilSource is returned when Load is called without a reader.
var ErrNilSource = errors.New("no flag source to read from")

// LoaderConfig holds the settings used while parsing a flag file.
type LoaderConfig struct {
	MaxStripes int          // Stripes kept before the rest of the input is ignored (0 = DefaultMaxStripes, capped at MaxStripesLimit)
	Logger     *slog.Logger // Receives one warning per diagnostic (nil = slog.Default())
}

func (c LoaderConfig) maxStripes() int {
	if c.MaxStripes <= 0 {
		return DefaultMaxStripes
	}
	return min(c.MaxStripes, MaxStripesLimit)
}

func (c LoaderConfig) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// DiagnosticKind identifies the problem a Diagnostic reports.
type DiagnosticKind int

const (
	InvalidCharacter DiagnosticKind = iota // A byte that is neither a hex digit nor a newline was skipped
	StripeLimit                            // The stripe limit was reached and the rest of the input was ignored
)

// Diagnostic is a recoverable problem found while parsing a flag.
type Diagnostic struct {
	Kind   DiagnosticKind
	Line   int   // 1-based line the problem was found on
	Offset int64 // Byte offset in the input
	Char   byte  // Offending byte, InvalidCharacter only
	Limit  int   // Configured stripe limit, StripeLimit only
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case InvalidCharacter:
		return fmt.Sprintf("line %d: unexpected character %q (0x%02x), expected a hexadecimal digit", d.Line, d.Char, d.Char)
	case StripeLimit:
		return fmt.Sprintf("line %d: reached maximum stripe count (%d), ignoring remaining input", d.Line, d.Limit)
	default:
		return fmt.Sprintf("line %d: unknown diagnostic", d.Line)
	}
}

// Load parses a flag from r. Each line holds one colour written as hex
// digits and must end with '\n'; a trailing line without a newline is not
// counted. Bytes that are not hex digits are skipped and reported. Parsing
// stops once the stripe limit is reached.
//
// The returned error is only set when r is nil or fails to read.
func Load(r io.Reader, cfg LoaderConfig) (*Flag, []Diagnostic, error) {
	if r == nil {
		return nil, nil, ErrNilSource
	}

	maxStripes := cfg.maxStripes()
	logger := cfg.logger()

	var (
		colors      = make([]Color, 0, maxStripes)
		current     Color
		diagnostics []Diagnostic
		line        = 1
		offset      int64
	)

	report := func(d Diagnostic) {
		diagnostics = append(diagnostics, d)
		logger.Warn("Flag parse warning", "diagnostic", d.String())
	}

	br := bufio.NewReader(r)
	for ; ; offset++ {
		c, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, diagnostics, fmt.Errorf("failed to read flag data: %w", err)
		}

		if c == '\n' {
			colors = append(colors, current)
			current = 0

			if len(colors) >= maxStripes {
				report(Diagnostic{Kind: StripeLimit, Line: line, Offset: offset, Limit: maxStripes})
				break
			}
			line++
			continue
		}

		digit, ok := hexDigit(c)
		if !ok {
			report(Diagnostic{Kind: InvalidCharacter, Line: line, Offset: offset, Char: c})
			continue
		}

		current = current<<4 | Color(digit)
	}

	return &Flag{colors: colors}, diagnostics, nil
}

// LoadFile opens path and parses it with Load.
func LoadFile(path string, cfg LoaderConfig) (*Flag, []Diagnostic, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open flag file: %w", err)
	}
	defer file.Close()

	return Load(file, cfg)
}

// hexDigit converts an ASCII hex digit to its value.
func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

package dbug

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"pkt.systems/dbug/ansi"
)

// DefaultDelimiter separates the segments Extend joins into a namespace.
const DefaultDelimiter = ":"

// Options controls how a Registry filters and renders debug lines.
type Options struct {
	// Patterns is the raw enable string, e.g. "app:*,-app:db". Empty enables
	// nothing.
	Patterns string

	// Writer receives one line per enabled Log call. Defaults to os.Stdout.
	Writer io.Writer

	// NoColor forces colour escape codes off regardless of terminal detection.
	NoColor bool

	// ForceColor bypasses terminal detection and emits colour even when the
	// destination is not a TTY.
	ForceColor bool

	// ShowDate prefixes every line with a UTC millisecond timestamp.
	ShowDate bool

	// Palette selects the colours namespaces are hashed onto. When nil,
	// ansi.PaletteDefault is used.
	Palette *ansi.Palette

	// Delimiter joins parent and suffix in Extend. Defaults to ":".
	Delimiter string

	// Clock supplies timestamps and elapsed times. Defaults to the wall clock.
	Clock clock.Clock
}

// Registry owns the parsed enable patterns and the output shared by every
// Logger created from it. The patterns are parsed once by NewRegistry and
// never change afterwards.
type Registry struct {
	patterns  PatternSet
	writer    io.Writer
	color     bool
	showDate  bool
	palette   *ansi.Palette
	delimiter string
	clock     clock.Clock

	// writeMu keeps lines from different loggers from interleaving.
	writeMu sync.Mutex
	enabled sync.Map // namespace -> bool
}

// NewRegistry builds a Registry from explicit options.
func NewRegistry(opts Options) *Registry {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	palette := opts.Palette
	if palette == nil || palette.Len() == 0 {
		palette = &ansi.PaletteDefault
	}
	delimiter := opts.Delimiter
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	return &Registry{
		patterns:  ParsePatterns(opts.Patterns),
		writer:    w,
		color:     !opts.NoColor && (opts.ForceColor || isTerminal(w)),
		showDate:  opts.ShowDate,
		palette:   palette,
		delimiter: delimiter,
		clock:     clk,
	}
}

// Patterns returns the registry's parsed enable patterns.
func (r *Registry) Patterns() PatternSet {
	return r.patterns
}

// Enabled reports whether namespace passes the registry's patterns. Results
// are cached per namespace.
func (r *Registry) Enabled(namespace string) bool {
	if v, ok := r.enabled.Load(namespace); ok {
		return v.(bool)
	}
	v, _ := r.enabled.LoadOrStore(namespace, r.patterns.Enabled(namespace))
	return v.(bool)
}

// Color reports whether lines are rendered with ANSI colour.
func (r *Registry) Color() bool {
	return r.color
}

// Delimiter returns the separator Extend places between segments.
func (r *Registry) Delimiter() string {
	return r.delimiter
}

// New returns a Logger for namespace. Whether it prints is decided here,
// once, against the registry's patterns.
func (r *Registry) New(namespace string) *Logger {
	l := &Logger{
		registry:  r,
		namespace: namespace,
		enabled:   r.Enabled(namespace),
		last:      r.clock.Now(),
	}
	if l.enabled && r.color {
		l.color = colorFor(r.palette, namespace)
	}
	return l
}

// Close releases an output the registry opened itself (see DEBUG_OUTPUT).
// Caller supplied writers and the standard streams are left open.
func (r *Registry) Close() error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	return closeOutput(r.writer)
}

func (r *Registry) emit(l *Logger, msg string, now time.Time, elapsed time.Duration) {
	lw := acquireLineWriter()
	if r.showDate {
		lw.writeTimestamp(now)
		lw.writeByte(' ')
	}
	lw.writeColored(l.color, l.namespace)
	lw.writeByte(' ')
	lw.writeString(msg)
	lw.writeByte(' ')
	lw.writeElapsed(l.color, elapsed)
	lw.writeByte('\n')
	r.writeMu.Lock()
	lw.commit(r.writer)
	r.writeMu.Unlock()
	releaseLineWriter(lw)
}

package dbug

import (
	"fmt"
	"sync"
	"time"
)

// Logger prints debug lines for one namespace. Whether it prints is fixed
// when the Logger is created; a disabled Logger returns from every call
// without formatting anything.
//
// A Logger is safe for concurrent use. Each Logger tracks the time of its own
// previous line and reports the gap as "+<elapsed>" on the next one.
type Logger struct {
	registry  *Registry
	namespace string
	enabled   bool
	color     string

	mu   sync.Mutex
	last time.Time
}

// New returns a Logger for namespace from the Default registry.
func New(namespace string) *Logger {
	return Default().New(namespace)
}

// Namespace returns the full namespace, including every extended segment.
func (l *Logger) Namespace() string {
	return l.namespace
}

// Enabled reports whether the Logger prints.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}

// Log prints msg followed by the time elapsed since the Logger's previous
// line, or since it was created for the first line.
func (l *Logger) Log(msg string) {
	if !l.Enabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.registry.clock.Now()
	elapsed := now.Sub(l.last)
	l.last = now
	l.registry.emit(l, msg, now, elapsed)
}

// Logf formats according to format and prints the result like Log. Nothing
// is formatted when the Logger is disabled.
func (l *Logger) Logf(format string, args ...any) {
	if !l.Enabled() {
		return
	}
	l.Log(fmt.Sprintf(format, args...))
}

// Extend returns a new Logger whose namespace is the receiver's namespace,
// the registry delimiter and suffix. The child is resolved against the
// patterns on its own and shares no state with the receiver. Extending a nil
// Logger returns nil, which is disabled.
func (l *Logger) Extend(suffix string) *Logger {
	if l == nil {
		return nil
	}
	return l.registry.New(l.namespace + l.registry.delimiter + suffix)
}

// Func returns l.Log as a plain function value. Every call goes through the
// same Logger, so elapsed times are shared with direct Log calls.
func (l *Logger) Func() func(string) {
	return l.Log
}

// Funcf is Func for Logf.
func (l *Logger) Funcf() func(string, ...any) {
	return l.Logf
}

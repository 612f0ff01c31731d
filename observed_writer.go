package dbug

import (
	"io"
	"sync/atomic"
)

// LostLine describes a debug line the destination did not fully accept.
type LostLine struct {
	Err     error
	Written int
	Length  int
}

// ObservedWriterStats counts lines an ObservedWriter saw go missing.
type ObservedWriterStats struct {
	Lines       uint64
	Lost        uint64
	ShortWrites uint64
}

// ObservedWriter wraps a Registry destination so that write failures, which
// Log never reports, can still be counted or acted upon.
//
// The wrapped writer's file descriptor is exposed through Fd, so wrapping
// os.Stderr keeps terminal colour detection working.
type ObservedWriter struct {
	dst    io.Writer
	onLoss func(LostLine)

	lines atomic.Uint64
	lost  atomic.Uint64
	short atomic.Uint64
}

// NewObservedWriter wraps dst. onLoss, when non-nil, is called once for every
// lost line, while the registry's write lock is held.
func NewObservedWriter(dst io.Writer, onLoss func(LostLine)) *ObservedWriter {
	if dst == nil {
		dst = io.Discard
	}
	return &ObservedWriter{dst: dst, onLoss: onLoss}
}

func (w *ObservedWriter) Write(p []byte) (int, error) {
	if w == nil {
		return len(p), nil
	}
	w.lines.Add(1)
	n, err := w.dst.Write(p)
	if n < len(p) {
		w.short.Add(1)
		if err == nil {
			err = io.ErrShortWrite
		}
	}
	if err != nil {
		w.lost.Add(1)
		if w.onLoss != nil {
			w.onLoss(LostLine{Err: err, Written: n, Length: len(p)})
		}
	}
	return n, err
}

// Fd returns the wrapped writer's descriptor, or ^uintptr(0) when it has none.
func (w *ObservedWriter) Fd() uintptr {
	if w == nil {
		return ^uintptr(0)
	}
	if f, ok := w.dst.(fdWriter); ok {
		return f.Fd()
	}
	return ^uintptr(0)
}

// Stats returns the counters accumulated so far.
func (w *ObservedWriter) Stats() ObservedWriterStats {
	if w == nil {
		return ObservedWriterStats{}
	}
	return ObservedWriterStats{
		Lines:       w.lines.Load(),
		Lost:        w.lost.Load(),
		ShortWrites: w.short.Load(),
	}
}

// Close closes the wrapped destination only when the registry opened it.
func (w *ObservedWriter) Close() error {
	return w.dbugOwnedClose()
}

func (w *ObservedWriter) dbugOwnedClose() error {
	if w == nil {
		return nil
	}
	return closeOutput(w.dst)
}

package dbug

import (
	"io"
	"sync"
	"time"

	"pkt.systems/dbug/ansi"
)

const (
	lineWriterDefaultCap = 256
	lineWriterMaxCap     = 64 << 10
)

// lineWriter assembles one output line so it reaches the destination in a
// single Write call.
type lineWriter struct {
	buf []byte
}

var lineWriterPool = sync.Pool{
	New: func() any {
		return &lineWriter{buf: make([]byte, 0, lineWriterDefaultCap)}
	},
}

func acquireLineWriter() *lineWriter {
	lw := lineWriterPool.Get().(*lineWriter)
	lw.buf = lw.buf[:0]
	return lw
}

func releaseLineWriter(lw *lineWriter) {
	if cap(lw.buf) > lineWriterMaxCap {
		lw.buf = make([]byte, 0, lineWriterDefaultCap)
	} else {
		lw.buf = lw.buf[:0]
	}
	lineWriterPool.Put(lw)
}

func (lw *lineWriter) writeByte(b byte) {
	lw.buf = append(lw.buf, b)
}

func (lw *lineWriter) writeString(s string) {
	lw.buf = append(lw.buf, s...)
}

func (lw *lineWriter) writeColored(code, s string) {
	lw.buf = ansi.AppendColorized(lw.buf, code, s)
}

func (lw *lineWriter) writeElapsed(code string, d time.Duration) {
	var scratch [24]byte
	lw.buf = ansi.AppendColorized(lw.buf, code, appendElapsed(scratch[:0], d))
}

func (lw *lineWriter) writeTimestamp(t time.Time) {
	lw.buf = appendTimestamp(lw.buf, t)
}

// commit writes the buffered line to dst. Write errors belong to the
// destination and are not reported.
func (lw *lineWriter) commit(dst io.Writer) {
	if len(lw.buf) == 0 || dst == nil {
		return
	}
	_, _ = dst.Write(lw.buf)
}

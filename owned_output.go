package dbug

import (
	"io"
	"sync"
)

type dbugOwnedCloser interface {
	dbugOwnedClose() error
}

// ownedOutput marks a writer the registry opened itself and therefore
// closes in Registry.Close.
type ownedOutput struct {
	writer   io.Writer
	closer   io.Closer
	closeErr error
	once     sync.Once
}

func newOwnedOutput(writer io.Writer, closer io.Closer) io.Writer {
	if writer == nil {
		writer = io.Discard
	}
	if closer == nil {
		return writer
	}
	if existing, ok := writer.(*ownedOutput); ok {
		return existing
	}
	return &ownedOutput{writer: writer, closer: closer}
}

func (o *ownedOutput) Write(p []byte) (int, error) {
	return o.writer.Write(p)
}

func (o *ownedOutput) Close() error {
	return o.dbugOwnedClose()
}

func (o *ownedOutput) dbugOwnedClose() error {
	o.once.Do(func() {
		o.closeErr = o.closer.Close()
	})
	return o.closeErr
}

package dbug

import (
	"io"
	"os"
)

func closeOutput(w io.Writer) error {
	if w == nil || w == os.Stdout || w == os.Stderr {
		return nil
	}
	if c, ok := w.(dbugOwnedCloser); ok {
		return c.dbugOwnedClose()
	}
	return nil
}

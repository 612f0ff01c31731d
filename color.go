package dbug

import (
	"github.com/zeebo/xxh3"

	"pkt.systems/dbug/ansi"
)

// colorFor returns the escape sequence palette assigns to namespace. The
// same namespace always lands on the same entry.
func colorFor(palette *ansi.Palette, namespace string) string {
	if palette == nil {
		palette = &ansi.PaletteDefault
	}
	return palette.Pick(xxh3.HashString(namespace))
}

// Package ansi provides the ANSI escape sequences and namespace palettes used
// by dbug's colorized output. A Palette is an ordered list of foreground
// sequences; dbug hashes each namespace onto one entry so the same namespace
// always renders in the same colour.
package ansi

import (
	"fmt"
	"strconv"
	"strings"
)

// Reset is the ANSI escape code that clears all terminal styling; the
// remaining constants expose the basic foregrounds used by PaletteBasic.
const (
	Reset         = "\x1b[0m"
	BrightRed     = "\x1b[1;31m"
	BrightGreen   = "\x1b[1;32m"
	BrightYellow  = "\x1b[1;33m"
	BrightBlue    = "\x1b[1;34m"
	BrightMagenta = "\x1b[1;35m"
	BrightCyan    = "\x1b[1;36m"
)

// FallbackColor is the xterm-256 index used when a palette entry cannot be
// converted.
const FallbackColor uint8 = 123

// Foreground256Bold returns the bold xterm-256 foreground sequence for index.
func Foreground256Bold(index uint8) string {
	return "\x1b[1;38;5;" + strconv.Itoa(int(index)) + "m"
}

// Colorize wraps s in code and a trailing Reset. An empty code returns s
// untouched.
func Colorize(code, s string) string {
	if code == "" {
		return s
	}
	return string(AppendColorized(make([]byte, 0, len(code)+len(s)+len(Reset)), code, s))
}

// AppendColorized is the append form of Colorize.
func AppendColorized[T ~string | ~[]byte](dst []byte, code string, text T) []byte {
	if code == "" {
		return append(dst, text...)
	}
	dst = append(dst, code...)
	dst = append(dst, text...)
	return append(dst, Reset...)
}

// HexTo256 converts a #RRGGBB colour into the nearest xterm-256 index.
func HexTo256(hex string) (uint8, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(digits) != 6 {
		return FallbackColor, fmt.Errorf("ansi: invalid hex colour %q", hex)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return FallbackColor, fmt.Errorf("ansi: invalid hex colour %q: %w", hex, err)
	}
	return RGBTo256(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// RGBTo256 maps an RGB triple onto the xterm-256 colour cube, or onto the
// greyscale ramp when all three channels are equal.
func RGBTo256(r, g, b uint8) uint8 {
	if r == g && g == b {
		switch {
		case r < 8:
			return 16
		case r > 248:
			return 231
		default:
			return 232 + uint8((uint16(r)-8)*24/247)
		}
	}
	return 16 + 36*cubeLevel(r) + 6*cubeLevel(g) + cubeLevel(b)
}

func cubeLevel(v uint8) uint8 {
	switch {
	case v < 48:
		return 0
	case v < 115:
		return 1
	case v < 155:
		return 2
	case v < 195:
		return 3
	case v < 235:
		return 4
	default:
		return 5
	}
}

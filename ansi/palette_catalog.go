package ansi

import (
	"sort"
	"strings"
)

// Palette is an ordered set of foreground escape sequences that namespaces
// are hashed onto. Palettes are read-only once built.
type Palette struct {
	Name   string
	Colors []string
}

// Pick returns the sequence for hash. An empty palette yields "".
func (p *Palette) Pick(hash uint64) string {
	if p == nil || len(p.Colors) == 0 {
		return ""
	}
	return p.Colors[hash%uint64(len(p.Colors))]
}

// Len reports the number of colours in the palette.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Colors)
}

// xtermHex is the set of colours that read well on both dark and light
// backgrounds.
var xtermHex = []string{
	"#0000CC", "#0000FF", "#0033CC", "#0033FF", "#0066CC", "#0066FF", "#0099CC", "#0099FF",
	"#00CC00", "#00CC33", "#00CC66", "#00CC99", "#00CCCC", "#00CCFF", "#3300CC", "#3300FF",
	"#3333CC", "#3333FF", "#3366CC", "#3366FF", "#3399CC", "#3399FF", "#33CC00", "#33CC33",
	"#33CC66", "#33CC99", "#33CCCC", "#33CCFF", "#6600CC", "#6600FF", "#6633CC", "#6633FF",
	"#66CC00", "#66CC33", "#9900CC", "#9900FF", "#9933CC", "#9933FF", "#99CC00", "#99CC33",
	"#CC0000", "#CC0033", "#CC0066", "#CC0099", "#CC00CC", "#CC00FF", "#CC3300", "#CC3333",
	"#CC3366", "#CC3399", "#CC33CC", "#CC33FF", "#CC6600", "#CC6633", "#CC9900", "#CC9933",
	"#CCCC00", "#CCCC33", "#FF0000", "#FF0033", "#FF0066", "#FF0099", "#FF00CC", "#FF00FF",
	"#FF3300", "#FF3333", "#FF3366", "#FF3399", "#FF33CC", "#FF33FF", "#FF6600", "#FF6633",
	"#FF9900", "#FF9933", "#FFCC00", "#FFCC33",
}

// PaletteDefault hashes namespaces onto 76 bold xterm-256 colours.
var PaletteDefault = Palette{Name: "default", Colors: xterm256Colors(xtermHex)}

// PaletteBasic uses the six bright 16-colour foregrounds for terminals
// without 256-colour support.
var PaletteBasic = Palette{Name: "basic", Colors: []string{
	BrightCyan,
	BrightGreen,
	BrightYellow,
	BrightBlue,
	BrightMagenta,
	BrightRed,
}}

func xterm256Colors(hexes []string) []string {
	out := make([]string, 0, len(hexes))
	for _, hex := range hexes {
		// FallbackColor is returned alongside the error.
		idx, _ := HexTo256(hex)
		out = append(out, Foreground256Bold(idx))
	}
	return out
}

var namedPalettes = map[string]*Palette{
	"default": &PaletteDefault,
	"basic":   &PaletteBasic,
}

var paletteAliases = map[string]string{
	"256":      "default",
	"xterm":    "default",
	"xterm256": "default",
	"16":       "basic",
	"ansi":     "basic",
	"ansi16":   "basic",
}

// PaletteByName resolves a built-in palette by its canonical name.
// Names are case-insensitive and support compatibility aliases. Unknown
// names resolve to PaletteDefault.
func PaletteByName(name string) *Palette {
	normalized := normalizePaletteName(name)
	if normalized == "" {
		return &PaletteDefault
	}
	if canonical, ok := paletteAliases[normalized]; ok {
		normalized = canonical
	}
	if palette, ok := namedPalettes[normalized]; ok && palette != nil {
		return palette
	}
	return &PaletteDefault
}

// AvailablePaletteNames returns canonical built-in palette names in sorted order.
func AvailablePaletteNames() []string {
	names := make([]string, 0, len(namedPalettes))
	for name := range namedPalettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizePaletteName(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimPrefix(s, "palette")
	return s
}

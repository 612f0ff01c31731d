package dbug

import (
	"strings"
	"unicode"
)

// Pattern is one fragment of an enable string. A prefix pattern came from a
// token ending in '*' and matches every name starting with Literal; otherwise
// the name must equal Literal.
type Pattern struct {
	Literal string
	Prefix  bool
}

// Match reports whether name is covered by the fragment.
func (p Pattern) Match(name string) bool {
	if p.Prefix {
		return strings.HasPrefix(name, p.Literal)
	}
	return name == p.Literal
}

// String returns the fragment in its token form.
func (p Pattern) String() string {
	if p.Prefix {
		return p.Literal + "*"
	}
	return p.Literal
}

// PatternSet is the parsed form of an enable string such as "app:*,-app:db".
// The zero value enables nothing. A PatternSet is never modified after
// ParsePatterns returns it, so it can be shared between goroutines.
type PatternSet struct {
	Raw    string
	Enable []Pattern
	Skip   []Pattern
}

// ParsePatterns parses raw into a PatternSet. Tokens are separated by commas
// or whitespace; empty tokens are dropped. A leading '-' turns a token into a
// skip pattern, a trailing '*' into a prefix pattern, and a bare "*" matches
// every namespace. Parsing never fails: unusable input enables nothing.
func ParsePatterns(raw string) PatternSet {
	set := PatternSet{Raw: raw}
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	for _, token := range tokens {
		skip := false
		if strings.HasPrefix(token, "-") {
			skip = true
			token = token[1:]
		}
		p := parseFragment(token)
		if skip {
			set.Skip = append(set.Skip, p)
		} else {
			set.Enable = append(set.Enable, p)
		}
	}
	return set
}

func parseFragment(token string) Pattern {
	if literal, ok := strings.CutSuffix(token, "*"); ok {
		return Pattern{Literal: literal, Prefix: true}
	}
	return Pattern{Literal: token}
}

// Enabled reports whether name matches at least one enable pattern and no
// skip pattern. Skip patterns win regardless of where they appear in the
// source string.
func (s PatternSet) Enabled(name string) bool {
	return s.Explain(name).Enabled
}

// Empty reports whether the set can enable anything at all.
func (s PatternSet) Empty() bool {
	return len(s.Enable) == 0
}

// String renders the set in canonical token form: enable tokens first, then
// skip tokens, comma separated.
func (s PatternSet) String() string {
	var b strings.Builder
	for _, p := range s.Enable {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.String())
	}
	for _, p := range s.Skip {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('-')
		b.WriteString(p.String())
	}
	return b.String()
}

// Decision records why a namespace is enabled or disabled.
type Decision struct {
	Name    string
	Enabled bool
	// Enable is the first enable pattern that matched, if any.
	Enable *Pattern
	// Skip is the first skip pattern that matched, if any.
	Skip *Pattern
}

// Explain evaluates name against the set and reports the deciding patterns.
func (s PatternSet) Explain(name string) Decision {
	d := Decision{Name: name}
	for i := range s.Enable {
		if s.Enable[i].Match(name) {
			d.Enable = &s.Enable[i]
			break
		}
	}
	if d.Enable == nil {
		return d
	}
	for i := range s.Skip {
		if s.Skip[i].Match(name) {
			d.Skip = &s.Skip[i]
			return d
		}
	}
	d.Enabled = true
	return d
}

func (d Decision) String() string {
	switch {
	case d.Enabled:
		return "enabled by " + quoteToken(d.Enable.String())
	case d.Skip != nil:
		return "disabled by " + quoteToken("-"+d.Skip.String())
	default:
		return "disabled, no enable pattern matched"
	}
}

func quoteToken(s string) string {
	return `"` + s + `"`
}

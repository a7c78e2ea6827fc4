package traverse

import (
	"path/filepath"

	"github.com/gobwas/glob"

	"dua/internal/errors"
)

// Matcher decides which paths a walk skips.
type Matcher struct {
	patterns []glob.Glob
}

// NewMatcher compiles ignore patterns. '/' is the separator, so '*' stays
// within one path segment and '**' spans any number of them.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, errors.NewConfigError("invalid ignore pattern", p, errors.InvalidConfig, err)
		}
		m.patterns = append(m.patterns, g)
	}
	return m, nil
}

// Match reports whether path, or its base name, matches any pattern
func (m *Matcher) Match(path string) bool {
	if m == nil || len(m.patterns) == 0 {
		return false
	}
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, g := range m.patterns {
		if g.Match(slashed) || g.Match(base) {
			return true
		}
	}
	return false
}

package server

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// OriginFilter decides which browser origins may call the API.
type OriginFilter struct {
	patterns []string
	allowAll bool
}

// NewOriginFilter creates a filter from glob patterns such as
// "http://localhost:*" or "https://*.example.com". A "*" pattern allows
// every origin. Matching is case-insensitive.
func NewOriginFilter(patterns []string) *OriginFilter {
	f := &OriginFilter{}
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		switch p {
		case "":
			continue
		case "*":
			f.allowAll = true
		default:
			f.patterns = append(f.patterns, p)
		}
	}
	return f
}

// AllowAll reports whether every origin is allowed.
func (f *OriginFilter) AllowAll() bool {
	return f.allowAll
}

// Allow reports whether origin matches one of the patterns.
func (f *OriginFilter) Allow(origin string) bool {
	if f.allowAll {
		return true
	}

	normalized := strings.ToLower(origin)
	for _, pattern := range f.patterns {
		// Invalid patterns never match.
		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
	}

	return false
}

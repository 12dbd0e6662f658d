package errors

import "strings"

// PatternMatcher matches error messages to categories using string patterns.
type PatternMatcher interface {
	Match(errorMsg string) ErrorCategory
}

type categoryPatterns struct {
	category ErrorCategory
	patterns []string
}

// NewPatternMatcher creates a new PatternMatcher with predefined patterns.
// Categories are tried in order, so a timed-out connection attempt is a
// timeout rather than a transport error.
func NewPatternMatcher() PatternMatcher {
	return &patternMatcher{
		patterns: []categoryPatterns{
			{CategoryAborted, []string{
				"aborterror",
				"aborted a request",
				"context canceled",
			}},
			{CategoryTimeout, []string{
				"deadline exceeded",
				"client.timeout",
				"i/o timeout",
				"timed out",
			}},
			{CategoryDecode, []string{
				"decode failed",
				"eof while parsing",
				"missing field",
				"invalid character",
				"syntax error",
				"unexpected end of json",
			}},
			{CategoryStatus, []string{
				"unexpected status",
			}},
			{CategoryTransport, []string{
				"connection refused",
				"connection reset",
				"no such host",
				"network is unreachable",
				"request failed",
			}},
		},
	}
}

// patternMatcher is the concrete implementation of PatternMatcher.
type patternMatcher struct {
	patterns []categoryPatterns
}

// Match returns the error category based on pattern matching.
func (m *patternMatcher) Match(errorMsg string) ErrorCategory {
	lowerMsg := strings.ToLower(errorMsg)

	for _, entry := range m.patterns {
		for _, pattern := range entry.patterns {
			if strings.Contains(lowerMsg, pattern) {
				return entry.category
			}
		}
	}

	return CategoryUnknown
}

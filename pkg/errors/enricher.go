package errors

import (
	"errors"
	"regexp"
	"strings"
)

// Enricher diagnoses request failures.
type Enricher interface {
	Enrich(err error, target string) *Diagnosis
}

// NewEnricher creates a new Enricher with default pattern matcher and suggestion generator.
func NewEnricher() Enricher {
	return &enricher{
		matcher:   NewPatternMatcher(),
		generator: NewSuggestionGenerator(),
	}
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Compiled regexes shared across all enricher instances
	targetExtractionPatterns = []*regexp.Regexp{
		// net/http: Get "http://host/path": ...
		regexp.MustCompile(`\b[A-Z][a-z]+ "([a-z][a-z0-9+.-]*://[^"]+)"`),
		// bare URLs anywhere in the message
		regexp.MustCompile(`\b(https?://[^\s"]+)`),
	}
)

// enricher is the concrete implementation of Enricher.
type enricher struct {
	matcher   PatternMatcher
	generator SuggestionGenerator
}

// Enrich categorizes err and attaches suggestions for target. An err that
// already carries a diagnosis gets that diagnosis back. An empty target is
// looked for in the error message.
func (e *enricher) Enrich(err error, target string) *Diagnosis {
	var diagnosed *Diagnosis
	if errors.As(err, &diagnosed) {
		return diagnosed
	}

	errMsg := err.Error()

	if target == "" {
		target = extractTarget(errMsg)
	}

	category := e.matcher.Match(errMsg)

	return NewDiagnosis(err, category, target, e.generator.Generate(category, target))
}

// extractTarget pulls the request URL out of a net/http error message such as
//
//	Get "http://localhost:8080/api/data": dial tcp [::1]:8080: connect: connection refused
//
// Returns empty string if no URL is found.
func extractTarget(errorMsg string) string {
	for _, pattern := range targetExtractionPatterns {
		if matches := pattern.FindStringSubmatch(errorMsg); len(matches) > 1 {
			target := strings.TrimRight(strings.TrimSpace(matches[1]), ":,")
			if target != "" {
				return target
			}
		}
	}

	return ""
}

package errors

import "fmt"

// SuggestionGenerator generates actionable suggestions based on error category.
type SuggestionGenerator interface {
	Generate(category ErrorCategory, target string) []string
}

// NewSuggestionGenerator creates a new SuggestionGenerator.
func NewSuggestionGenerator() SuggestionGenerator {
	return &suggestionGenerator{}
}

// suggestionGenerator is the concrete implementation of SuggestionGenerator.
type suggestionGenerator struct{}

// Generate returns actionable suggestions based on the error category and request target.
func (g *suggestionGenerator) Generate(category ErrorCategory, target string) []string {
	switch category {
	case CategoryAborted:
		return g.generateAbortedSuggestions(target)
	case CategoryTimeout:
		return g.generateTimeoutSuggestions(target)
	case CategoryDecode:
		return g.generateDecodeSuggestions(target)
	case CategoryStatus:
		return g.generateStatusSuggestions(target)
	case CategoryTransport:
		return g.generateTransportSuggestions(target)
	case CategoryUnknown:
		return g.generateUnknownSuggestions(target)
	default:
		return g.generateUnknownSuggestions(target)
	}
}

func (g *suggestionGenerator) generateAbortedSuggestions(_ string) []string {
	return []string{
		"The request was cancelled before it completed",
		"Send the request again to retry",
	}
}

func (g *suggestionGenerator) generateDecodeSuggestions(target string) []string {
	suggestions := []string{
		"The server answered, but the body is not the expected JSON",
		"Check that the endpoint exists; a 404 usually comes with an empty body",
	}

	if target != "" {
		suggestions = append(suggestions, fmt.Sprintf("Inspect the raw response with 'curl -i %s'", target))
	}

	return suggestions
}

func (g *suggestionGenerator) generateStatusSuggestions(target string) []string {
	suggestions := []string{
		"The server rejected the request",
	}

	if target != "" {
		suggestions = append(suggestions, "Verify the endpoint is correct: "+target)
	} else {
		suggestions = append(suggestions, "Verify the endpoint path is correct")
	}

	suggestions = append(suggestions, "Check the server logs for the reason")

	return suggestions
}

func (g *suggestionGenerator) generateTimeoutSuggestions(target string) []string {
	suggestions := []string{
		"The server did not answer in time",
		"Increase the timeout with --timeout",
	}

	if target != "" {
		suggestions = append(suggestions, "Check whether "+target+" is overloaded or slow to respond")
	}

	return suggestions
}

func (g *suggestionGenerator) generateTransportSuggestions(target string) []string {
	suggestions := []string{
		"Make sure the demo server is running ('fetch-server')",
	}

	if target != "" {
		suggestions = append(suggestions, "Check that the server is reachable: "+target)
	} else {
		suggestions = append(suggestions, "Check the --base-url setting")
	}

	suggestions = append(suggestions, "Verify network connectivity and DNS resolution")

	return suggestions
}

func (g *suggestionGenerator) generateUnknownSuggestions(target string) []string {
	suggestions := []string{
		"Check the error message for more details",
		"Run with --log-level debug and inspect the log file",
	}

	if target != "" {
		suggestions = append(suggestions, "Verify the endpoint is accessible: "+target)
	}

	return suggestions
}

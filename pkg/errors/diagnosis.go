// Package errors turns request failures into diagnoses: a category saying what
// kind of failure it was, the URL or path it concerned, and a few things the
// user can try next.
//
//	enricher := errors.NewEnricher()
//	_, err := http.Get("http://localhost:8080/api/data")
//	if err != nil {
//	    d := enricher.Enrich(err, "")
//	    fmt.Println(d.Category, d.Target)
//	    fmt.Println(d.Hint())
//	}
//
// When no target is given it is taken from the URL quoted in net/http error
// messages.
package errors

import "strings"

// Failure categories.
const (
	CategoryAborted   ErrorCategory = "aborted"
	CategoryDecode    ErrorCategory = "decode"
	CategoryStatus    ErrorCategory = "status"
	CategoryTimeout   ErrorCategory = "timeout"
	CategoryTransport ErrorCategory = "transport"
	CategoryUnknown   ErrorCategory = "unknown"
)

// ErrorCategory names a kind of request failure.
type ErrorCategory string

// Diagnosis wraps a request failure. Error and Unwrap expose the failure
// itself, so errors.Is and errors.As see through it.
type Diagnosis struct {
	Category    ErrorCategory
	Target      string
	Suggestions []string

	err error
}

// NewDiagnosis wraps err.
func NewDiagnosis(err error, category ErrorCategory, target string, suggestions []string) *Diagnosis {
	return &Diagnosis{
		Category:    category,
		Target:      target,
		Suggestions: suggestions,
		err:         err,
	}
}

func (d *Diagnosis) Error() string {
	return d.err.Error()
}

func (d *Diagnosis) Unwrap() error {
	return d.err
}

// Hint lists the suggestions one per line, bulleted and indented by two
// spaces. It is empty for a nil diagnosis or one without suggestions.
func (d *Diagnosis) Hint() string {
	if d == nil || len(d.Suggestions) == 0 {
		return ""
	}
	var b strings.Builder
	for i, s := range d.Suggestions {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("  • ")
		b.WriteString(s)
	}
	return b.String()
}

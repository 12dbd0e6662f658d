package errors_test

import (
	"context"
	"errors"
	"testing"

	pkgerrors "github.com/joe/fetch-examples/pkg/errors"
)

func TestDiagnosis_ErrorIsTheWrappedMessage(t *testing.T) {
	t.Parallel()

	d := pkgerrors.NewDiagnosis(errors.New("connection refused"), pkgerrors.CategoryTransport, "/api/data", nil)

	if d.Error() != "connection refused" {
		t.Errorf("expected the wrapped message, got %q", d.Error())
	}
}

func TestDiagnosis_UnwrapsToTheFailure(t *testing.T) {
	t.Parallel()

	var err error = pkgerrors.NewDiagnosis(context.DeadlineExceeded, pkgerrors.CategoryTimeout, "", nil)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected errors.Is to see the deadline through %v", err)
	}
}

func TestDiagnosis_HintWithoutSuggestions(t *testing.T) {
	t.Parallel()

	d := pkgerrors.NewDiagnosis(errors.New("unknown error"), pkgerrors.CategoryUnknown, "/api/data", []string{})

	if hint := d.Hint(); hint != "" {
		t.Errorf("expected empty hint, got %q", hint)
	}
}

func TestDiagnosis_HintOfNil(t *testing.T) {
	t.Parallel()

	var d *pkgerrors.Diagnosis

	if hint := d.Hint(); hint != "" {
		t.Errorf("expected empty hint for nil diagnosis, got %q", hint)
	}
}

func TestDiagnosis_HintSingleSuggestion(t *testing.T) {
	t.Parallel()

	d := pkgerrors.NewDiagnosis(context.DeadlineExceeded, pkgerrors.CategoryTimeout, "",
		[]string{"Increase the timeout"})

	if hint := d.Hint(); hint != "  • Increase the timeout" {
		t.Errorf("unexpected hint %q", hint)
	}
}

func TestDiagnosis_HintBulletsEverySuggestion(t *testing.T) {
	t.Parallel()

	d := pkgerrors.NewDiagnosis(errors.New("connection refused"), pkgerrors.CategoryTransport, "http://localhost:8080",
		[]string{"Start the server", "Check the base URL", "Check your network"})

	expected := "  • Start the server\n  • Check the base URL\n  • Check your network"
	if hint := d.Hint(); hint != expected {
		t.Errorf("expected:\n%q\ngot:\n%q", expected, hint)
	}
}

func TestErrorCategory_CategoriesAreDistinct(t *testing.T) {
	t.Parallel()

	categories := []pkgerrors.ErrorCategory{
		pkgerrors.CategoryAborted,
		pkgerrors.CategoryDecode,
		pkgerrors.CategoryStatus,
		pkgerrors.CategoryTimeout,
		pkgerrors.CategoryTransport,
		pkgerrors.CategoryUnknown,
	}

	seen := make(map[pkgerrors.ErrorCategory]bool)
	for _, cat := range categories {
		if cat == "" {
			t.Error("category should not be empty string")
		}

		if seen[cat] {
			t.Errorf("duplicate category: %q", cat)
		}

		seen[cat] = true
	}
}

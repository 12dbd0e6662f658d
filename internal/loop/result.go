package loop

import (
	"errors"
	"fmt"
)

// Exported variables.
var (
	ErrAborted      = errors.New("the user aborted a request")
	ErrEmptyBody    = errors.New("EOF while parsing a value")
	ErrMissingField = errors.New("missing field")
)

// AbortErrorName is the error name shown for aborted requests.
const AbortErrorName = "AbortError"

// Status is the HTTP status line of a response.
type Status struct {
	Code int
	Text string
}

// OK reports whether the status is 2xx.
func (s Status) OK() bool {
	return s.Code >= 200 && s.Code < 300
}

// ExpectedResponseData is the shape JSON endpoints are decoded into.
type ExpectedResponseData struct {
	Something string `json:"something"`
}

// Response is a successfully received and decoded response.
type Response struct {
	Status Status
	Body   string
	// Data holds the body for text endpoints and ExpectedResponseData for JSON ones.
	Data any
}

// FailureReason is one of TransportFailure, DecodeFailure, AbortedFailure
// or StatusFailure.
type FailureReason interface {
	error
	isFailure()
}

// TransportFailure means no usable response arrived (network, DNS, timeout).
type TransportFailure struct {
	Err error
}

func (f TransportFailure) Error() string { return "request failed: " + f.Err.Error() }

// Unwrap returns the underlying transport error.
func (f TransportFailure) Unwrap() error { return f.Err }

func (TransportFailure) isFailure() {}

// DecodeFailure means a response arrived but its body does not have the expected shape.
type DecodeFailure struct {
	Status Status
	Body   string
	Err    error
}

func (f DecodeFailure) Error() string { return "decode failed: " + f.Err.Error() }

// Unwrap returns the underlying decode error.
func (f DecodeFailure) Unwrap() error { return f.Err }

func (DecodeFailure) isFailure() {}

// AbortedFailure means the request was cancelled through its handle.
type AbortedFailure struct {
	Name    string
	Message string
}

// NewAbortedFailure builds the failure reported for an aborted request.
func NewAbortedFailure(cause error) AbortedFailure {
	if cause == nil {
		cause = ErrAborted
	}
	return AbortedFailure{Name: AbortErrorName, Message: cause.Error()}
}

func (f AbortedFailure) Error() string { return f.Name + ": " + f.Message }

// Is makes errors.Is(f, ErrAborted) hold.
func (f AbortedFailure) Is(target error) bool { return target == ErrAborted }

func (AbortedFailure) isFailure() {}

// StatusFailure means a text endpoint answered with a non-2xx status.
type StatusFailure struct {
	Status Status
	Body   string
}

func (f StatusFailure) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", f.Status.Code, f.Status.Text)
}

func (StatusFailure) isFailure() {}

// Result is the outcome of one operation. Exactly one field is set.
type Result struct {
	Response *Response
	Failure  FailureReason
}

// Succeeded wraps a response.
func Succeeded(resp Response) Result {
	return Result{Response: &resp}
}

// Failed wraps a failure reason.
func Failed(reason FailureReason) Result {
	return Result{Failure: reason}
}

// OK reports whether the operation produced a response.
func (r Result) OK() bool {
	return r.Failure == nil && r.Response != nil
}

// Outcome is a short label for logs and metrics.
func (r Result) Outcome() string {
	switch r.Failure.(type) {
	case nil:
		return "ok"
	case TransportFailure:
		return "transport"
	case DecodeFailure:
		return "decode"
	case AbortedFailure:
		return "aborted"
	case StatusFailure:
		return "status"
	default:
		return "unknown"
	}
}

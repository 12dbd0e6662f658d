// Package fetch runs the HTTP requests started by the update loop.
//
// Every request goes through a resty client backed by a retrying transport
// and a client-side rate limiter. The Runner classifies each outcome into a
// loop.Result and delivers it exactly once.
package fetch

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// Options configures the HTTP client.
type Options struct {
	BaseURL      string
	Timeout      time.Duration
	Retries      int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	RateLimit    float64 // requests per second, 0 means unlimited
	Burst        int
	UserAgent    string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		BaseURL:      "http://localhost:8080",
		Timeout:      30 * time.Second,
		Retries:      2,
		RetryWaitMin: 200 * time.Millisecond,
		RetryWaitMax: 2 * time.Second,
		UserAgent:    "fetch-examples/1.0",
	}
}

// NewClient builds the resty client. Retries are left to the transport so a
// request is never retried twice over.
func NewClient(opts Options) *resty.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.Retries
	retryClient.RetryWaitMin = opts.RetryWaitMin
	retryClient.RetryWaitMax = opts.RetryWaitMax
	retryClient.Logger = nil
	// Hand the last response back instead of an error once retries run out.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := resty.NewWithClient(retryClient.StandardClient())
	client.
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", opts.UserAgent)

	return client
}

// NewLimiter builds the client-side rate limiter.
func NewLimiter(opts Options) *rate.Limiter {
	if opts.RateLimit <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}

	burst := opts.Burst
	if burst < 1 {
		burst = 1
	}

	return rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
}

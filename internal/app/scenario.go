package app

import (
	"fmt"

	"github.com/joe/fetch-examples/internal/config"
	"github.com/joe/fetch-examples/internal/loop"
	"github.com/joe/fetch-examples/internal/view"
)

// Scenario pairs what Send fetches with the page that shows it.
type Scenario struct {
	Endpoint loop.Endpoint
	Page     view.Page
}

// ScenarioFor returns the scenario selected by cfg.
func ScenarioFor(cfg *config.Config) Scenario {
	switch cfg.Scenario {
	case config.DecodeFailure:
		return Scenario{
			Endpoint: loop.Endpoint{Path: "/api/non-existent-endpoint", Decoding: loop.DecodeJSON},
			Page: view.Page{
				Title: "Example B",
				Description: "Press 'Try to Fetch JSON' to send a request to a non-existent endpoint. " +
					"The server returns 404 with an empty body, which then fails to decode into the expected JSON.",
				SendLabel: "Try to Fetch JSON",
			},
		}
	default:
		return Scenario{
			Endpoint: loop.Endpoint{
				Path:     fmt.Sprintf("/api/delayed-response/%d", cfg.Delay),
				Decoding: loop.DecodeText,
			},
			Page: view.Page{
				Title: "Example C",
				Description: "Press 'Send request' to send a request to an endpoint with a configurable delay. " +
					"Press it again to abort the request.",
				SendLabel: "Send request",
			},
		}
	}
}

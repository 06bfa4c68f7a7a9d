package models

import "time"

// Requests/responses for the signal HTTP endpoints. Defined in domain for
// consistency and reuse.

type SignalFetchRequest struct {
	SignalNames   []string       `json:"signal_names" validate:"required,min=1,dive,required"`
	AdapterInputs map[string]any `json:"adapter_inputs"`
}

type SignalFetchResponse struct {
	Signals map[string]any `json:"signals"`
}

type ListAdaptersResponse struct {
	Adapters []AdapterDefinition `json:"adapters"`
}

// AdapterDefinition is the wire form of an adapter descriptor.
type AdapterDefinition struct {
	Name           string   `json:"name"`
	RequiredInputs []string `json:"required_inputs"`
	Signals        []string `json:"signals"`
}

// ErrorResponse is the structured error body returned by the API.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// FetchEvent is published after a successful multi-adapter fetch when the
// event publisher is enabled.
type FetchEvent struct {
	SignalNames []string      `json:"signal_names"`
	Adapters    []string      `json:"adapters"`
	Duration    time.Duration `json:"duration_ns"`
	FetchedAt   time.Time     `json:"fetched_at"`
}

package models

import "fmt"

// InvalidInputError is raised before any I/O when a caller-supplied input is
// malformed (bad address, missing required value). Maps to HTTP 400.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

// NewInvalidInputError formats an InvalidInputError.
func NewInvalidInputError(format string, a ...any) *InvalidInputError {
	return &InvalidInputError{Message: fmt.Sprintf(format, a...)}
}

// NotFoundError is raised after a successful upstream call explicitly
// reported absence of the requested entity. Maps to HTTP 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// NewNotFoundError formats a NotFoundError.
func NewNotFoundError(format string, a ...any) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, a...)}
}

// UpstreamError wraps an unexpected failure from a data source or contract
// call. Maps to HTTP 500.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// NewUpstreamError wraps err with a message.
func NewUpstreamError(err error, format string, a ...any) *UpstreamError {
	return &UpstreamError{Message: fmt.Sprintf(format, a...), Err: err}
}

// AdapterNotFoundError reports a dotted signal name whose adapter prefix is
// not registered.
type AdapterNotFoundError struct {
	Adapter string
}

func (e *AdapterNotFoundError) Error() string {
	return fmt.Sprintf("signal adapter %s not found in registry", e.Adapter)
}

// SignalNotFoundError reports a signal suffix the owning adapter does not
// produce.
type SignalNotFoundError struct {
	Signal  string
	Adapter string
}

func (e *SignalNotFoundError) Error() string {
	return fmt.Sprintf("signal %s not found in adapter %s", e.Signal, e.Adapter)
}

// MissingInputError reports a required adapter input absent from the shared
// input map.
type MissingInputError struct {
	Input   string
	Adapter string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing required input %s for adapter %s", e.Input, e.Adapter)
}

package adapter

import (
	"context"
	"fmt"

	"CreditPull/internal/domain/models"
)

// Definition is the static, side-effect-free descriptor of a signal adapter.
// It is fixed at construction time; the signal set must exactly match the
// field set of the record Fetch returns (asserted by tests).
type Definition struct {
	Name           string
	RequiredInputs []string
	Signals        []string
}

// Wire converts the descriptor to its HTTP form.
func (d Definition) Wire() models.AdapterDefinition {
	return models.AdapterDefinition{
		Name:           d.Name,
		RequiredInputs: d.RequiredInputs,
		Signals:        d.Signals,
	}
}

// Record is a flat typed record of signal values produced by one fetch.
type Record interface {
	// SignalValues returns the record's fields keyed by signal name.
	SignalValues() map[string]any
}

// Inputs carries the caller-supplied adapter inputs. Extra keys are ignored
// by adapters; missing required keys are rejected before Fetch is called.
type Inputs map[string]any

// String extracts a string input by key.
func (in Inputs) String(key string) (string, error) {
	v, ok := in[key]
	if !ok {
		return "", models.NewInvalidInputError("input %s is required", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", models.NewInvalidInputError("input %s must be a string, got %T", key, v)
	}
	return s, nil
}

// StringOr extracts a string input, accepting numeric JSON values as their
// decimal rendering. Claim and receivable ids arrive either way.
func (in Inputs) StringOr(key string) (string, error) {
	v, ok := in[key]
	if !ok {
		return "", models.NewInvalidInputError("input %s is required", key)
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return fmt.Sprintf("%.0f", t), nil
	case int:
		return fmt.Sprintf("%d", t), nil
	}
	return "", models.NewInvalidInputError("input %s must be a string or number, got %T", key, v)
}

// Adapter maps one external data domain into named signals.
type Adapter interface {
	Definition() Definition
	Fetch(ctx context.Context, inputs Inputs) (Record, error)
}

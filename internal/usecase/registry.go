package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"CreditPull/internal/domain/adapter"
	"CreditPull/internal/domain/models"
	"CreditPull/internal/domain/repository"
	applogger "CreditPull/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Registry is the runtime directory of signal adapters and the fetch
// orchestrator. It is built once at startup and read-only afterwards, so it
// is safe for concurrent use.
type Registry struct {
	adapters []adapter.Adapter
	byName   map[string]adapter.Adapter

	logger    *applogger.Logger
	metrics   repository.Metrics
	publisher repository.SignalPublisher
}

// Option configures optional registry collaborators.
type Option func(*Registry)

// WithMetrics records per-adapter fetch metrics.
func WithMetrics(m repository.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithPublisher emits a fetch event after each successful fetch.
func WithPublisher(p repository.SignalPublisher) Option {
	return func(r *Registry) { r.publisher = p }
}

// NewRegistry indexes the adapter list by name. Duplicate names are a
// construction error.
func NewRegistry(logger *applogger.Logger, adapters []adapter.Adapter, opts ...Option) (*Registry, error) {
	byName := make(map[string]adapter.Adapter, len(adapters))
	for _, a := range adapters {
		name := a.Definition().Name
		if _, dup := byName[name]; dup {
			return nil, fmt.Errorf("duplicate adapter name: %s", name)
		}
		byName[name] = a
	}
	r := &Registry{adapters: adapters, byName: byName, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Definitions lists every registered adapter's descriptor in registration
// order.
func (r *Registry) Definitions() []models.AdapterDefinition {
	defs := make([]models.AdapterDefinition, 0, len(r.adapters))
	for _, a := range r.adapters {
		defs = append(defs, a.Definition().Wire())
	}
	return defs
}

// FindRequiredAdapters resolves dotted "adapter.signal" names to the
// deduplicated set of adapters that own them, in first-mention order.
func (r *Registry) FindRequiredAdapters(signalNames []string) ([]adapter.Adapter, error) {
	seen := make(map[string]struct{}, len(signalNames))
	required := make([]adapter.Adapter, 0, len(signalNames))
	for _, name := range signalNames {
		adapterName, signalName, err := splitSignalName(name)
		if err != nil {
			return nil, err
		}
		a, ok := r.byName[adapterName]
		if !ok {
			return nil, &models.AdapterNotFoundError{Adapter: adapterName}
		}
		if !definitionHasSignal(a.Definition(), signalName) {
			return nil, &models.SignalNotFoundError{Signal: signalName, Adapter: adapterName}
		}
		if _, dup := seen[adapterName]; dup {
			continue
		}
		seen[adapterName] = struct{}{}
		required = append(required, a)
	}
	return required, nil
}

// FetchSignals resolves the required adapters, fans their fetches out
// concurrently, merges the records keyed "{adapter}.{field}" and filters the
// merge down to the requested names. Any adapter failing fails the whole
// request; sibling fetches are cancelled through the group context.
func (r *Registry) FetchSignals(ctx context.Context, signalNames []string, adapterInputs map[string]any) (map[string]any, error) {
	required, err := r.FindRequiredAdapters(signalNames)
	if err != nil {
		return nil, err
	}

	// Validate every adapter's inputs before any I/O starts.
	inputsByAdapter := make(map[string]adapter.Inputs, len(required))
	for _, a := range required {
		def := a.Definition()
		subset, err := subsetInputs(def, adapterInputs)
		if err != nil {
			return nil, err
		}
		inputsByAdapter[def.Name] = subset
	}

	started := time.Now()
	merged := make(map[string]any)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, a := range required {
		a := a
		g.Go(func() error {
			def := a.Definition()
			fetchStarted := time.Now()
			record, err := a.Fetch(gctx, inputsByAdapter[def.Name])
			if err != nil {
				if r.metrics != nil {
					r.metrics.RecordFetchError(def.Name)
				}
				r.logger.Error("adapter fetch failed",
					applogger.String("adapter", def.Name),
					applogger.Error(err))
				return err
			}
			if r.metrics != nil {
				r.metrics.RecordFetch(def.Name, time.Since(fetchStarted))
			}
			mu.Lock()
			for field, value := range record.SignalValues() {
				merged[def.Name+"."+field] = value
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	filtered := make(map[string]any, len(signalNames))
	for _, name := range signalNames {
		if value, ok := merged[name]; ok {
			filtered[name] = value
		}
	}
	if r.metrics != nil {
		r.metrics.RecordSignalsServed(len(filtered))
	}
	r.publishFetchEvent(ctx, signalNames, required, time.Since(started))
	return filtered, nil
}

func (r *Registry) publishFetchEvent(ctx context.Context, signalNames []string, required []adapter.Adapter, duration time.Duration) {
	if r.publisher == nil {
		return
	}
	adapterNames := make([]string, 0, len(required))
	for _, a := range required {
		adapterNames = append(adapterNames, a.Definition().Name)
	}
	event := models.FetchEvent{
		SignalNames: signalNames,
		Adapters:    adapterNames,
		Duration:    duration,
		FetchedAt:   time.Now().UTC(),
	}
	if err := r.publisher.PublishFetchEvent(ctx, event); err != nil {
		// Event publishing is best-effort; the fetch result already stands.
		r.logger.Warn("failed to publish fetch event", applogger.Error(err))
	}
}

func splitSignalName(name string) (adapterName, signalName string, err error) {
	adapterName, signalName, found := strings.Cut(name, ".")
	if !found || adapterName == "" || signalName == "" {
		return "", "", models.NewInvalidInputError("signal name %q must be of the form adapter.signal", name)
	}
	return adapterName, signalName, nil
}

func definitionHasSignal(def adapter.Definition, signalName string) bool {
	for _, s := range def.Signals {
		if s == signalName {
			return true
		}
	}
	return false
}

func subsetInputs(def adapter.Definition, shared map[string]any) (adapter.Inputs, error) {
	subset := make(adapter.Inputs, len(def.RequiredInputs))
	for _, key := range def.RequiredInputs {
		value, ok := shared[key]
		if !ok {
			return nil, &models.MissingInputError{Input: key, Adapter: def.Name}
		}
		subset[key] = value
	}
	return subset, nil
}

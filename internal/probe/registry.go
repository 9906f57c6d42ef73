package probe

import (
	"fmt"
	"strings"

	"github.com/mcncl/coercekit/internal/errors"
)

// Registry resolves probers by name.
type Registry struct {
	probers []Prober
}

// NewRegistry returns a registry holding probers in the given order.
func NewRegistry(probers ...Prober) *Registry {
	return &Registry{probers: probers}
}

// DefaultRegistry holds the lenient reference and every third-party decoder.
func DefaultRegistry() *Registry {
	return NewRegistry(Lenient{}, StdJSON(), GoJSON(), JSONIter())
}

// Names lists the registered prober names in order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.probers))
	for i, p := range r.probers {
		names[i] = p.Name()
	}
	return names
}

// All returns every registered prober.
func (r *Registry) All() []Prober {
	out := make([]Prober, len(r.probers))
	copy(out, r.probers)
	return out
}

// Lookup finds a prober by name, ignoring case.
func (r *Registry) Lookup(name string) (Prober, error) {
	for _, p := range r.probers {
		if strings.EqualFold(p.Name(), strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return nil, errors.NewProbeError(
		fmt.Sprintf("unknown probe %q (available: %s)", name, strings.Join(r.Names(), ", ")),
		errors.ErrNoSuchProbe,
	)
}

// Resolve looks up each name in turn. No names selects every prober.
func (r *Registry) Resolve(names []string) ([]Prober, error) {
	if len(names) == 0 {
		return r.All(), nil
	}
	out := make([]Prober, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		p, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		if seen[p.Name()] {
			continue
		}
		seen[p.Name()] = true
		out = append(out, p)
	}
	return out, nil
}

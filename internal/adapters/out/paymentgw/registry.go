package paymentgw

import (
	"errors"
	"sort"

	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

var ErrProviderNotConfigured = errors.New("payment provider not configured")

var _ ports.PaymentProviders = (*Registry)(nil)

// Registry is the fixed set of providers built at startup. Looking up a provider
// that was not configured is an explicit error, never a nil provider.
type Registry struct {
	providers map[string]ports.PaymentProvider
}

func NewRegistry(providers ...ports.PaymentProvider) *Registry {
	r := &Registry{providers: make(map[string]ports.PaymentProvider, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

func (r *Registry) Provider(name string) (ports.PaymentProvider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, errs.NewObjectNotFoundErrorWithCause("payment provider", name, ErrProviderNotConfigured)
	}
	return p, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

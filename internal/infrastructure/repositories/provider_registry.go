package repositories

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
	domainRepos "github.com/rios0rios0/modrelease/internal/domain/repositories"
)

// ProviderFactory is a constructor function that creates a ProviderRepository from
// the settings, the resolved credentials and the HTTP capability to use.
type ProviderFactory func(
	settings *entities.Settings,
	credentials entities.Credentials,
	client domainRepos.HTTPClient,
) domainRepos.ProviderRepository

// ProviderRegistry manages all registered publishing provider implementations.
type ProviderRegistry struct {
	providers map[string]ProviderFactory
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ProviderFactory),
	}
}

// Register adds a provider factory under the given name (e.g. "curseforge").
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// Get returns a configured provider instance for the given name.
func (r *ProviderRegistry) Get(
	name string,
	settings *entities.Settings,
	credentials entities.Credentials,
	client domainRepos.HTTPClient,
) (domainRepos.ProviderRepository, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider type: %q (registered: %s)",
			name, strings.Join(r.Names(), ", "))
	}
	return factory(settings, credentials, client), nil
}

// Names returns the sorted list of registered provider names.
func (r *ProviderRegistry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

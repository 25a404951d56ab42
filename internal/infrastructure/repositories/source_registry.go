package repositories

import (
	"sort"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
	domainRepos "github.com/rios0rios0/modrelease/internal/domain/repositories"
)

// SourceRegistry manages all registered dependency source implementations.
type SourceRegistry struct {
	sources map[entities.SourceKind]domainRepos.DependencySourceRepository
}

// NewSourceRegistry creates an empty source registry.
func NewSourceRegistry() *SourceRegistry {
	return &SourceRegistry{
		sources: make(map[entities.SourceKind]domainRepos.DependencySourceRepository),
	}
}

// Register adds a source under its kind.
func (r *SourceRegistry) Register(source domainRepos.DependencySourceRepository) {
	r.sources[source.Kind()] = source
}

// Get returns the source for the given kind, or nil if not registered.
func (r *SourceRegistry) Get(kind entities.SourceKind) domainRepos.DependencySourceRepository {
	return r.sources[kind]
}

// Kinds returns the sorted list of registered source kinds.
func (r *SourceRegistry) Kinds() []entities.SourceKind {
	kinds := make([]entities.SourceKind, 0, len(r.sources))
	for kind := range r.sources {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

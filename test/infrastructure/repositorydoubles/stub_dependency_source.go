//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
	"github.com/rios0rios0/modrelease/internal/domain/repositories"
)

// StubDependencySource implements repositories.DependencySourceRepository.
// OnFetch, when set, runs before FetchErr is returned and can write files
// into the build tree.
type StubDependencySource struct {
	SourceKind entities.SourceKind
	FetchErr   error
	OnFetch    func(spec entities.DependencySpec, scratchPath, buildPath string) error
	Fetched    []entities.DependencySpec
}

var _ repositories.DependencySourceRepository = (*StubDependencySource)(nil)

func (s *StubDependencySource) Kind() entities.SourceKind { return s.SourceKind }

func (s *StubDependencySource) Fetch(
	_ context.Context,
	spec entities.DependencySpec,
	scratchPath, buildPath string,
) error {
	s.Fetched = append(s.Fetched, spec)
	if s.OnFetch != nil {
		if err := s.OnFetch(spec, scratchPath, buildPath); err != nil {
			return err
		}
	}
	return s.FetchErr
}

//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
	"github.com/rios0rios0/modrelease/internal/domain/repositories"
)

// SpyProviderRepository implements repositories.ProviderRepository as a configurable spy.
type SpyProviderRepository struct {
	ProviderName string

	// --- Open ---
	Session   *SpySession
	OpenErr   error
	OpenCalls int
}

var _ repositories.ProviderRepository = (*SpyProviderRepository)(nil)

func (p *SpyProviderRepository) Name() string { return p.ProviderName }

func (p *SpyProviderRepository) Open(_ context.Context) (repositories.ProviderSession, error) {
	p.OpenCalls++
	if p.OpenErr != nil {
		return nil, p.OpenErr
	}
	if p.Session == nil {
		p.Session = &SpySession{}
	}
	return p.Session, nil
}

// SpySession implements repositories.ProviderSession as a configurable spy.
type SpySession struct {
	// --- Publish ---
	Result     *entities.PublishResult
	PublishErr error
	Releases   []entities.Release

	// --- Close ---
	CloseErr   error
	CloseCalls int
}

var _ repositories.ProviderSession = (*SpySession)(nil)

func (s *SpySession) Publish(_ context.Context, release entities.Release) (*entities.PublishResult, error) {
	s.Releases = append(s.Releases, release)
	if s.PublishErr != nil {
		return nil, s.PublishErr
	}
	if s.Result != nil {
		return s.Result, nil
	}
	return &entities.PublishResult{Status: 200, Body: "{}"}, nil
}

func (s *SpySession) Close() error {
	s.CloseCalls++
	return s.CloseErr
}

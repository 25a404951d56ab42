package repositories

import (
	"context"
	"net/http"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
)

// HTTPClient is the session-like capability providers send requests through.
// *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ProviderRepository abstracts a publishing destination (CurseForge, SpaceDock, etc.).
type ProviderRepository interface {
	// Name returns the provider identifier (e.g. "curseforge").
	Name() string

	// Open authenticates and returns a session. Token-based providers do not
	// contact the remote here.
	Open(ctx context.Context) (ProviderSession, error)
}

// ProviderSession is an authenticated provider connection. Close must be
// called exactly once whatever the outcome of Publish.
type ProviderSession interface {
	// Publish uploads the release and returns the raw provider response.
	// Failures are *entities.PublishError or *entities.VersionResolutionError.
	Publish(ctx context.Context, release entities.Release) (*entities.PublishResult, error)

	// Close ends the session.
	Close() error
}

package repositories

import (
	"context"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
)

// DependencySourceRepository fetches dependencies of one source kind into the
// build tree. Implementations must report failures as *entities.TransferError.
type DependencySourceRepository interface {
	// Kind returns the source kind served by this implementation.
	Kind() entities.SourceKind

	// Fetch downloads the dependency into scratchPath and merges its content
	// into buildPath.
	Fetch(ctx context.Context, spec entities.DependencySpec, scratchPath, buildPath string) error
}

package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
	"github.com/rios0rios0/modrelease/internal/domain/repositories"
)

// SourceLookup resolves the dependency source serving a kind, or nil when none is registered.
type SourceLookup interface {
	Get(kind entities.SourceKind) repositories.DependencySourceRepository
	Kinds() []entities.SourceKind
}

// DependencyCollector merges pinned external dependencies into the build tree.
type DependencyCollector struct {
	sources SourceLookup
	stager  repositories.StagerRepository
}

// NewDependencyCollector creates a collector dispatching by source kind.
func NewDependencyCollector(
	sources SourceLookup,
	stager repositories.StagerRepository,
) *DependencyCollector {
	return &DependencyCollector{sources: sources, stager: stager}
}

// CollectAll wipes the scratch area and fetches every dependency into buildPath.
// The first failure aborts the collection. The scratch area is left in place.
func (it *DependencyCollector) CollectAll(
	ctx context.Context,
	buildData *entities.BuildData,
	scratchPath, buildPath string,
) error {
	if err := it.stager.PrepareCleanTree(scratchPath); err != nil {
		return err
	}

	for _, name := range buildData.DependencyNames() {
		if err := ctx.Err(); err != nil {
			return err
		}

		spec := buildData.Dependencies[name]
		source := it.sources.Get(spec.Kind)
		if source == nil {
			return &entities.UnsupportedSourceError{
				Dependency: spec.Name,
				Kind:       string(spec.Kind),
				Supported:  kindNames(it.sources.Kinds()),
			}
		}

		logger.Infof("> Collecting %s from %s", spec.Name, spec.Locator())
		if err := source.Fetch(ctx, spec, scratchPath, buildPath); err != nil {
			return err
		}
	}

	return nil
}

func kindNames(kinds []entities.SourceKind) []string {
	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, string(kind))
	}
	return names
}

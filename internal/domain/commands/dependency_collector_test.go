//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/modrelease/internal/domain/commands"
	"github.com/rios0rios0/modrelease/internal/domain/entities"
	infraRepos "github.com/rios0rios0/modrelease/internal/infrastructure/repositories"
	"github.com/rios0rios0/modrelease/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/modrelease/test/infrastructure/repositorydoubles"
)

func TestDependencyCollectorCollectAll(t *testing.T) {
	t.Parallel()

	t.Run("should wipe the scratch area and dispatch each dependency by kind", func(t *testing.T) {
		// given
		s3Source := &doubles.StubDependencySource{SourceKind: entities.SourceObjectStorage}
		gitSource := &doubles.StubDependencySource{SourceKind: entities.SourceControl}
		sources := infraRepos.NewSourceRegistry()
		sources.Register(s3Source)
		sources.Register(gitSource)
		stager := &doubles.SpyStager{}

		buildData := entitybuilders.NewBuildDataBuilder().
			WithDependency(entitybuilders.NewDependencySpecBuilder().
				WithName("Bar").WithObjectStorage("2.0").BuildDependencySpec()).
			WithDependency(entitybuilders.NewDependencySpecBuilder().
				WithName("Baz").WithSourceControl("Acct/BazRepo", "v1.1").BuildDependencySpec()).
			BuildBuildData()

		collector := commands.NewDependencyCollector(sources, stager)

		// when
		err := collector.CollectAll(context.Background(), buildData, "/ws/tmp", "/ws/build")

		// then
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"/ws/tmp"}}, stager.PreparedPaths)
		require.Len(t, s3Source.Fetched, 1)
		assert.Equal(t, "Bar", s3Source.Fetched[0].Name)
		require.Len(t, gitSource.Fetched, 1)
		assert.Equal(t, "v1.1", gitSource.Fetched[0].Tag)
	})

	t.Run("should return UnsupportedSourceError when no source serves the kind", func(t *testing.T) {
		// given
		sources := infraRepos.NewSourceRegistry()
		sources.Register(&doubles.StubDependencySource{SourceKind: entities.SourceObjectStorage})
		sources.Register(&doubles.StubDependencySource{SourceKind: entities.SourceControl})
		buildData := entitybuilders.NewBuildDataBuilder().
			WithDependency(entitybuilders.NewDependencySpecBuilder().
				WithName("Qux").WithKind("ftp").BuildDependencySpec()).
			BuildBuildData()
		collector := commands.NewDependencyCollector(sources, &doubles.SpyStager{})

		// when
		err := collector.CollectAll(context.Background(), buildData, "/ws/tmp", "/ws/build")

		// then
		var unsupported *entities.UnsupportedSourceError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "Qux", unsupported.Dependency)
		assert.Equal(t, "ftp", unsupported.Kind)
		assert.Equal(t, []string{"github", "s3"}, unsupported.Supported)
		assert.Contains(t, err.Error(), "(supported: github, s3)")
	})

	t.Run("should abort on the first failing dependency", func(t *testing.T) {
		// given
		transferErr := &entities.TransferError{Dependency: "A", Op: "download", Err: errors.New("boom")}
		source := &doubles.StubDependencySource{
			SourceKind: entities.SourceObjectStorage,
			FetchErr:   transferErr,
		}
		sources := infraRepos.NewSourceRegistry()
		sources.Register(source)
		buildData := entitybuilders.NewBuildDataBuilder().
			WithDependency(entitybuilders.NewDependencySpecBuilder().WithName("A").BuildDependencySpec()).
			WithDependency(entitybuilders.NewDependencySpecBuilder().WithName("B").BuildDependencySpec()).
			BuildBuildData()
		collector := commands.NewDependencyCollector(sources, &doubles.SpyStager{})

		// when
		err := collector.CollectAll(context.Background(), buildData, "/ws/tmp", "/ws/build")

		// then
		var transfer *entities.TransferError
		require.ErrorAs(t, err, &transfer)
		assert.Len(t, source.Fetched, 1)
	})

	t.Run("should not touch sources when the scratch area cannot be prepared", func(t *testing.T) {
		// given
		source := &doubles.StubDependencySource{SourceKind: entities.SourceObjectStorage}
		sources := infraRepos.NewSourceRegistry()
		sources.Register(source)
		stager := &doubles.SpyStager{PrepareErr: errors.New("permission denied")}
		buildData := entitybuilders.NewBuildDataBuilder().
			WithDependency(entitybuilders.NewDependencySpecBuilder().BuildDependencySpec()).
			BuildBuildData()
		collector := commands.NewDependencyCollector(sources, stager)

		// when
		err := collector.CollectAll(context.Background(), buildData, "/ws/tmp", "/ws/build")

		// then
		require.Error(t, err)
		assert.Empty(t, source.Fetched)
	})

	t.Run("should stop when the context is cancelled", func(t *testing.T) {
		// given
		source := &doubles.StubDependencySource{SourceKind: entities.SourceObjectStorage}
		sources := infraRepos.NewSourceRegistry()
		sources.Register(source)
		buildData := entitybuilders.NewBuildDataBuilder().
			WithDependency(entitybuilders.NewDependencySpecBuilder().BuildDependencySpec()).
			BuildBuildData()
		collector := commands.NewDependencyCollector(sources, &doubles.SpyStager{})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		err := collector.CollectAll(ctx, buildData, "/ws/tmp", "/ws/build")

		// then
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, source.Fetched)
	})
}

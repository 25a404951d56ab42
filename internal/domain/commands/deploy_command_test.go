//go:build unit

package commands_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/modrelease/internal/domain/commands"
	"github.com/rios0rios0/modrelease/internal/domain/entities"
	"github.com/rios0rios0/modrelease/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/modrelease/internal/infrastructure/repositories"
	"github.com/rios0rios0/modrelease/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/modrelease/test/infrastructure/repositorydoubles"
)

func newDeployFixture(t *testing.T) *fakeWorkspace {
	t.Helper()

	workspace := newFakeWorkspace(t.TempDir())
	workspace.metadata.BuildData = entitybuilders.NewBuildDataBuilder().
		WithModName("Foo").WithCurseForgeID("111").WithSpaceDockID("222").BuildBuildData()
	workspace.metadata.Version = entitybuilders.NewVersionInfoBuilder().
		WithVersion("1", "2", "3").WithGameVersion("1", "12", "5").BuildVersionInfo()
	workspace.metadata.Changelog = entities.Changelog{Lines: []string{"* fixed"}}

	archive := workspace.settings.ReleaseArchivePath("Foo", workspace.metadata.Version)
	require.NoError(t, os.MkdirAll(filepath.Dir(archive), 0o755))
	require.NoError(t, os.WriteFile(archive, []byte("zip"), 0o644))
	return workspace
}

func newSpyRegistry(spies map[string]*doubles.SpyProviderRepository) *infraRepos.ProviderRegistry {
	registry := infraRepos.NewProviderRegistry()
	for name, spy := range spies {
		registry.Register(name, func(
			_ *entities.Settings, _ entities.Credentials, _ repositories.HTTPClient,
		) repositories.ProviderRepository {
			return spy
		})
	}
	return registry
}

func TestDeployCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should publish the complete archive to every selected provider", func(t *testing.T) {
		// given
		workspace := newDeployFixture(t)
		curse := &doubles.SpyProviderRepository{ProviderName: entities.ProviderCurseForge}
		spaceDock := &doubles.SpyProviderRepository{ProviderName: entities.ProviderSpaceDock}
		registry := newSpyRegistry(map[string]*doubles.SpyProviderRepository{
			entities.ProviderCurseForge: curse,
			entities.ProviderSpaceDock:  spaceDock,
		})
		cmd := commands.NewDeployCommand(registry, workspace.factory())

		// when
		outcomes, err := cmd.Execute(context.Background(), workspace.settings, commands.DeployOptions{
			Providers:       []string{entities.ProviderCurseForge, entities.ProviderSpaceDock},
			ReleaseType:     entities.ReleaseTypeBeta,
			NotifyFollowers: true,
		})

		// then
		require.NoError(t, err)
		require.Len(t, outcomes, 2)
		assert.True(t, outcomes[0].Succeeded())
		assert.True(t, outcomes[1].Succeeded())

		require.Len(t, curse.Session.Releases, 1)
		release := curse.Session.Releases[0]
		assert.Equal(t, "111", release.ModID)
		assert.Equal(t, "1.2.3", release.Version)
		assert.Equal(t, "1.12.5", release.GameVersion)
		assert.Equal(t, entities.ReleaseTypeBeta, release.ReleaseType)
		assert.Equal(t, filepath.Join(workspace.settings.DeployPath(), "Foo_1_2_3.zip"), release.ArchivePath)
		assert.Equal(t, "222", spaceDock.Session.Releases[0].ModID)
		assert.Equal(t, 1, curse.Session.CloseCalls)
		assert.Equal(t, 1, spaceDock.Session.CloseCalls)
	})

	t.Run("should continue to the next provider and aggregate the failure", func(t *testing.T) {
		// given
		workspace := newDeployFixture(t)
		publishErr := &entities.PublishError{
			Provider: entities.ProviderCurseForge,
			Status:   401,
			Body:     `{"errorMessage":"bad token"}`,
		}
		curse := &doubles.SpyProviderRepository{
			ProviderName: entities.ProviderCurseForge,
			Session:      &doubles.SpySession{PublishErr: publishErr},
		}
		spaceDock := &doubles.SpyProviderRepository{ProviderName: entities.ProviderSpaceDock}
		registry := newSpyRegistry(map[string]*doubles.SpyProviderRepository{
			entities.ProviderCurseForge: curse,
			entities.ProviderSpaceDock:  spaceDock,
		})
		cmd := commands.NewDeployCommand(registry, workspace.factory())

		// when
		outcomes, err := cmd.Execute(context.Background(), workspace.settings, commands.DeployOptions{
			Providers:   []string{entities.ProviderCurseForge, entities.ProviderSpaceDock},
			ReleaseType: entities.ReleaseTypeRelease,
		})

		// then
		var got *entities.PublishError
		require.ErrorAs(t, err, &got)
		assert.Equal(t, 401, got.Status)
		assert.Contains(t, got.Body, "bad token")
		require.Len(t, outcomes, 2)
		assert.False(t, outcomes[0].Succeeded())
		assert.True(t, outcomes[1].Succeeded())
		assert.Equal(t, 1, curse.Session.CloseCalls)
		assert.Len(t, spaceDock.Session.Releases, 1)
	})

	t.Run("should record a failed login without publishing", func(t *testing.T) {
		// given
		workspace := newDeployFixture(t)
		spaceDock := &doubles.SpyProviderRepository{
			ProviderName: entities.ProviderSpaceDock,
			OpenErr:      &entities.PublishError{Provider: entities.ProviderSpaceDock, Status: 403},
		}
		registry := newSpyRegistry(map[string]*doubles.SpyProviderRepository{
			entities.ProviderSpaceDock: spaceDock,
		})
		cmd := commands.NewDeployCommand(registry, workspace.factory())

		// when
		outcomes, err := cmd.Execute(context.Background(), workspace.settings, commands.DeployOptions{
			Providers:   []string{entities.ProviderSpaceDock},
			ReleaseType: entities.ReleaseTypeRelease,
		})

		// then
		require.Error(t, err)
		require.Len(t, outcomes, 1)
		assert.Equal(t, entities.ProviderSpaceDock, outcomes[0].Provider)
		assert.Nil(t, spaceDock.Session)
	})

	t.Run("should fail before any upload when the release archive is missing", func(t *testing.T) {
		// given
		workspace := newFakeWorkspace(t.TempDir())
		workspace.metadata.BuildData = entitybuilders.NewBuildDataBuilder().BuildBuildData()
		curse := &doubles.SpyProviderRepository{ProviderName: entities.ProviderCurseForge}
		registry := newSpyRegistry(map[string]*doubles.SpyProviderRepository{
			entities.ProviderCurseForge: curse,
		})
		cmd := commands.NewDeployCommand(registry, workspace.factory())

		// when
		outcomes, err := cmd.Execute(context.Background(), workspace.settings, commands.DeployOptions{
			Providers:   []string{entities.ProviderCurseForge},
			ReleaseType: entities.ReleaseTypeRelease,
		})

		// then
		var missing *entities.MissingSourceError
		require.ErrorAs(t, err, &missing)
		assert.Nil(t, outcomes)
		assert.Equal(t, 0, curse.OpenCalls)
	})

	t.Run("should reject an unknown release type", func(t *testing.T) {
		// given
		workspace := newDeployFixture(t)
		cmd := commands.NewDeployCommand(infraRepos.NewProviderRegistry(), workspace.factory())

		// when
		_, err := cmd.Execute(context.Background(), workspace.settings, commands.DeployOptions{
			Providers:   []string{entities.ProviderCurseForge},
			ReleaseType: "nightly",
		})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nightly")
	})

	t.Run("should report a provider without a mod id as a failed outcome", func(t *testing.T) {
		// given
		workspace := newDeployFixture(t)
		workspace.metadata.BuildData.CurseForge.ModID = ""
		curse := &doubles.SpyProviderRepository{ProviderName: entities.ProviderCurseForge}
		registry := newSpyRegistry(map[string]*doubles.SpyProviderRepository{
			entities.ProviderCurseForge: curse,
		})
		cmd := commands.NewDeployCommand(registry, workspace.factory())

		// when
		outcomes, err := cmd.Execute(context.Background(), workspace.settings, commands.DeployOptions{
			Providers:   []string{entities.ProviderCurseForge},
			ReleaseType: entities.ReleaseTypeRelease,
		})

		// then
		require.Error(t, err)
		require.Len(t, outcomes, 1)
		assert.False(t, outcomes[0].Succeeded())
		assert.Equal(t, 0, curse.OpenCalls)
	})

	t.Run("should log and ignore a failing session close", func(t *testing.T) {
		// given
		workspace := newDeployFixture(t)
		curse := &doubles.SpyProviderRepository{
			ProviderName: entities.ProviderCurseForge,
			Session:      &doubles.SpySession{CloseErr: errors.New("already closed")},
		}
		registry := newSpyRegistry(map[string]*doubles.SpyProviderRepository{
			entities.ProviderCurseForge: curse,
		})
		cmd := commands.NewDeployCommand(registry, workspace.factory())

		// when
		outcomes, err := cmd.Execute(context.Background(), workspace.settings, commands.DeployOptions{
			Providers:   []string{entities.ProviderCurseForge},
			ReleaseType: entities.ReleaseTypeRelease,
		})

		// then
		require.NoError(t, err)
		assert.True(t, outcomes[0].Succeeded())
	})
}

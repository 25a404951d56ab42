//go:build unit

package commands_test

import (
	"github.com/rios0rios0/modrelease/internal/domain/entities"
	infraRepos "github.com/rios0rios0/modrelease/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/modrelease/test/infrastructure/repositorydoubles"
)

type fakeWorkspace struct {
	settings *entities.Settings
	metadata *doubles.StubMetadataRepository
	stager   *doubles.SpyStager
	bundler  *doubles.SpyBundler
	lock     *doubles.StubLockRepository
	sources  *infraRepos.SourceRegistry
}

func newFakeWorkspace(workDir string) *fakeWorkspace {
	settings := entities.NewDefaultSettings().WithWorkDir(workDir)
	return &fakeWorkspace{
		settings: settings,
		metadata: &doubles.StubMetadataRepository{},
		stager:   &doubles.SpyStager{BuildPath: settings.BuildPath()},
		bundler:  &doubles.SpyBundler{},
		lock:     &doubles.StubLockRepository{},
		sources:  infraRepos.NewSourceRegistry(),
	}
}

func (w *fakeWorkspace) factory() infraRepos.WorkspaceFactory {
	return func(settings *entities.Settings) (*infraRepos.Workspace, error) {
		return &infraRepos.Workspace{
			Settings: settings,
			Metadata: w.metadata,
			Stager:   w.stager,
			Bundler:  w.bundler,
			Lock:     w.lock,
			Sources:  w.sources,
		}, nil
	}
}

package repositories

import (
	"github.com/rios0rios0/modrelease/internal/domain/entities"
	domainRepos "github.com/rios0rios0/modrelease/internal/domain/repositories"
	"github.com/rios0rios0/modrelease/internal/infrastructure/repositories/filesystem"
	gitRepo "github.com/rios0rios0/modrelease/internal/infrastructure/repositories/git"
	"github.com/rios0rios0/modrelease/internal/infrastructure/repositories/lock"
	"github.com/rios0rios0/modrelease/internal/infrastructure/repositories/metadata"
	s3Repo "github.com/rios0rios0/modrelease/internal/infrastructure/repositories/s3"
)

// Workspace groups the repositories bound to one mod workspace.
type Workspace struct {
	Settings *entities.Settings
	Metadata domainRepos.MetadataRepository
	Stager   domainRepos.StagerRepository
	Bundler  domainRepos.BundlerRepository
	Lock     domainRepos.LockRepository
	Sources  *SourceRegistry
}

// WorkspaceFactory builds a Workspace once the settings are known, which only
// happens after the CLI flags have been parsed.
type WorkspaceFactory func(settings *entities.Settings) (*Workspace, error)

// NewWorkspace wires the filesystem, metadata, lock and dependency source
// repositories for the given settings.
func NewWorkspace(settings *entities.Settings) (*Workspace, error) {
	bundler, err := filesystem.NewBundler(settings)
	if err != nil {
		return nil, err
	}

	sources := NewSourceRegistry()
	sources.Register(s3Repo.NewSourceRepository(settings))
	sources.Register(gitRepo.NewSourceRepository(settings))

	return &Workspace{
		Settings: settings,
		Metadata: metadata.NewJSONMetadataRepository(settings),
		Stager:   filesystem.NewStager(settings),
		Bundler:  bundler,
		Lock:     lock.NewFileLockRepository(settings),
		Sources:  sources,
	}, nil
}

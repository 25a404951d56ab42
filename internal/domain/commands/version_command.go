package commands

import (
	"context"
	"fmt"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
	infraRepos "github.com/rios0rios0/modrelease/internal/infrastructure/repositories"
)

// Version is the interface for the version command.
type Version interface {
	Execute(ctx context.Context, settings *entities.Settings) (*VersionReport, error)
}

// VersionReport is the resolved release identity of the workspace.
type VersionReport struct {
	ModName   string
	Version   entities.VersionInfo
	Changelog entities.Changelog
}

// VersionCommand reads the mod version and latest changelog entry without
// touching the build tree.
type VersionCommand struct {
	workspaceFactory infraRepos.WorkspaceFactory
}

// NewVersionCommand creates a new VersionCommand.
func NewVersionCommand(workspaceFactory infraRepos.WorkspaceFactory) *VersionCommand {
	return &VersionCommand{workspaceFactory: workspaceFactory}
}

// Execute resolves the version and changelog.
func (it *VersionCommand) Execute(_ context.Context, settings *entities.Settings) (*VersionReport, error) {
	workspace, err := it.workspaceFactory(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare workspace: %w", err)
	}

	buildData, err := workspace.Metadata.LoadBuildData()
	if err != nil {
		return nil, err
	}
	version, err := workspace.Metadata.LoadVersion(buildData.ModName)
	if err != nil {
		return nil, err
	}
	changelog, err := workspace.Metadata.LoadChangelog()
	if err != nil {
		return nil, err
	}

	return &VersionReport{ModName: buildData.ModName, Version: version, Changelog: changelog}, nil
}

package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
	infraRepos "github.com/rios0rios0/modrelease/internal/infrastructure/repositories"
)

// Build is the interface for the build command.
type Build interface {
	Execute(ctx context.Context, settings *entities.Settings, opts BuildOptions) (*BuildReport, error)
}

// BuildOptions selects which archive variants are written.
type BuildOptions struct {
	Core     bool // core package without dependencies
	Extras   bool // one package per extra
	Complete bool // core, extras and dependencies
}

// BuildReport summarises a successful build.
type BuildReport struct {
	ModName   string
	Version   entities.VersionInfo
	Changelog entities.Changelog
	Archives  []string
}

// BuildCommand stages the mod content and its dependencies and writes the
// requested release archives.
type BuildCommand struct {
	workspaceFactory infraRepos.WorkspaceFactory
}

// NewBuildCommand creates a new BuildCommand.
func NewBuildCommand(workspaceFactory infraRepos.WorkspaceFactory) *BuildCommand {
	return &BuildCommand{workspaceFactory: workspaceFactory}
}

// Execute runs a full build. Any failure aborts the build.
func (it *BuildCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts BuildOptions,
) (report *BuildReport, err error) {
	workspace, err := it.workspaceFactory(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare workspace: %w", err)
	}

	release, err := workspace.Lock.Acquire()
	if err != nil {
		return nil, err
	}
	defer func() {
		if unlockErr := release(); unlockErr != nil {
			logger.Warnf("Failed to release workspace lock: %v", unlockErr)
		}
	}()

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

	logger.Infof("Building %s version %s", buildData.ModName, version.FormatVersion())

	report = &BuildReport{ModName: buildData.ModName, Version: version, Changelog: changelog}
	buildPath := settings.BuildPath()
	deployPath := settings.DeployPath()

	if err = workspace.Stager.PrepareCleanTree(buildPath, deployPath, settings.TempPath()); err != nil {
		return nil, err
	}

	logger.Info("Compiling core mod content")
	if err = workspace.Stager.StageCore(buildData.ModName); err != nil {
		return nil, err
	}

	if opts.Core {
		logger.Info("Building BASIC release package")
		variant := entities.NewCoreVariant(buildData.ModName, version, buildPath, deployPath)
		if err = it.bundle(workspace, variant, report); err != nil {
			return nil, err
		}
	}

	if err = it.stageExtras(workspace, version, opts.Extras, report); err != nil {
		return nil, err
	}

	logger.Info("Compiling complete release package")
	collector := NewDependencyCollector(workspace.Sources, workspace.Stager)
	if err = collector.CollectAll(ctx, buildData, settings.TempPath(), buildPath); err != nil {
		return nil, err
	}

	if opts.Complete {
		logger.Info("Building COMPLETE release package")
		variant := entities.NewCompleteVariant(buildData.ModName, version, buildPath, deployPath)
		if err = it.bundle(workspace, variant, report); err != nil {
			return nil, err
		}
	}

	if err = workspace.Metadata.WriteReleaseNotes(version.FormatVersion(), changelog); err != nil {
		return nil, err
	}

	logger.Infof("Build complete: %d archive(s) written", len(report.Archives))
	return report, nil
}

// stageExtras copies every extra into the build tree so the complete package
// carries them, zipping each one when requested.
func (it *BuildCommand) stageExtras(
	workspace *infraRepos.Workspace,
	version entities.VersionInfo,
	bundleEach bool,
	report *BuildReport,
) error {
	extras, err := workspace.Stager.DiscoverExtras()
	if err != nil {
		return err
	}
	if len(extras) == 0 {
		return nil
	}

	logger.Infof("Compiling and building EXTRAS release packages (%d found)", len(extras))
	for _, extra := range extras {
		stagedPath, stageErr := workspace.Stager.StageExtra(extra)
		if stageErr != nil {
			return stageErr
		}
		if !bundleEach {
			continue
		}
		variant := entities.NewExtraVariant(extra, version, stagedPath, workspace.Settings.DeployPath())
		if bundleErr := it.bundle(workspace, variant, report); bundleErr != nil {
			return bundleErr
		}
	}
	return nil
}

func (it *BuildCommand) bundle(
	workspace *infraRepos.Workspace,
	variant entities.ArchiveVariant,
	report *BuildReport,
) error {
	archive, err := workspace.Bundler.Bundle(variant)
	if err != nil {
		return err
	}
	report.Archives = append(report.Archives, archive)
	return nil
}

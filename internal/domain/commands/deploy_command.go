package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
	"github.com/rios0rios0/modrelease/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/modrelease/internal/infrastructure/repositories"
)

// Deploy is the interface for the deploy command.
type Deploy interface {
	Execute(ctx context.Context, settings *entities.Settings, opts DeployOptions) ([]entities.PublishOutcome, error)
}

// DeployOptions holds runtime options for a single deploy.
type DeployOptions struct {
	Providers       []string
	ReleaseType     entities.ReleaseType
	NotifyFollowers bool
	Credentials     entities.Credentials
	HTTPClient      repositories.HTTPClient // nil selects the default pooled client
}

// DeployCommand publishes the complete release archive to the selected
// providers, one after the other.
type DeployCommand struct {
	providerRegistry *infraRepos.ProviderRegistry
	workspaceFactory infraRepos.WorkspaceFactory
}

// NewDeployCommand creates a new DeployCommand.
func NewDeployCommand(
	providerRegistry *infraRepos.ProviderRegistry,
	workspaceFactory infraRepos.WorkspaceFactory,
) *DeployCommand {
	return &DeployCommand{
		providerRegistry: providerRegistry,
		workspaceFactory: workspaceFactory,
	}
}

// Execute publishes to every selected provider. A provider failure is logged
// and does not stop the next one; the returned error joins all failures.
func (it *DeployCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts DeployOptions,
) ([]entities.PublishOutcome, error) {
	if len(opts.Providers) == 0 {
		return nil, errors.New("no provider selected")
	}
	if !opts.ReleaseType.Valid() {
		return nil, fmt.Errorf("invalid release type %q", opts.ReleaseType)
	}

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

	archivePath := settings.ReleaseArchivePath(buildData.ModName, version)
	if _, statErr := os.Stat(archivePath); statErr != nil {
		return nil, &entities.MissingSourceError{Path: archivePath, Err: statErr}
	}

	base := entities.Release{
		Version:         version.FormatVersion(),
		GameVersion:     version.FormatGameVersion(),
		Changelog:       changelog,
		ReleaseType:     opts.ReleaseType,
		ArchivePath:     archivePath,
		NotifyFollowers: opts.NotifyFollowers,
	}

	outcomes := make([]entities.PublishOutcome, 0, len(opts.Providers))
	var failures []error
	for _, name := range opts.Providers {
		outcome := it.publishTo(ctx, name, buildData, base, settings, opts)
		if !outcome.Succeeded() {
			logger.Errorf("[%s] Publish failed: %v", name, outcome.Err)
			failures = append(failures, fmt.Errorf("%s: %w", name, outcome.Err))
		} else {
			logger.Infof("[%s] Published %s (status %d)", name, base.Version, outcome.Result.Status)
			logger.Debugf("[%s] Response: %s", name, outcome.Result.Body)
		}
		outcomes = append(outcomes, outcome)
	}

	logger.Infof(
		"Deploy complete: %d provider(s), %d failure(s)",
		len(outcomes), len(failures),
	)
	return outcomes, errors.Join(failures...)
}

// publishTo runs one provider session. The session is closed whatever the
// outcome of the upload.
func (it *DeployCommand) publishTo(
	ctx context.Context,
	name string,
	buildData *entities.BuildData,
	release entities.Release,
	settings *entities.Settings,
	opts DeployOptions,
) entities.PublishOutcome {
	outcome := entities.PublishOutcome{Provider: name}

	modID, err := buildData.ModIDFor(name)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	release.ModID = modID

	provider, err := it.providerRegistry.Get(name, settings, opts.Credentials, opts.HTTPClient)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	logger.Infof("[%s] Opening session", provider.Name())
	session, err := provider.Open(ctx)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			logger.Warnf("[%s] Failed to close session: %v", name, closeErr)
		}
	}()

	logger.Infof("[%s] Uploading %s to project %s", name, release.ArchivePath, release.ModID)
	outcome.Result, outcome.Err = session.Publish(ctx, release)
	return outcome
}

package metadata

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/renameio/v2"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
)

const outputFileMode = 0o644

// JSONMetadataRepository reads the JSON metadata documents of a mod workspace.
type JSONMetadataRepository struct {
	settings *entities.Settings
}

// NewJSONMetadataRepository creates a repository for the workspace in settings.
func NewJSONMetadataRepository(settings *entities.Settings) *JSONMetadataRepository {
	return &JSONMetadataRepository{settings: settings}
}

func (it *JSONMetadataRepository) LoadBuildData() (*entities.BuildData, error) {
	path := it.settings.BuildDataPath()
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	buildData, err := entities.ParseBuildData(data)
	if err != nil {
		var unsupported *entities.UnsupportedSourceError
		if errors.As(err, &unsupported) {
			return nil, err
		}
		return nil, &entities.ParseError{Path: path, Err: err}
	}
	return buildData, nil
}

func (it *JSONMetadataRepository) LoadVersion(modName string) (entities.VersionInfo, error) {
	path := it.settings.VersionFilePath(modName)
	data, err := readDocument(path)
	if err != nil {
		return entities.VersionInfo{}, err
	}

	version, err := entities.ParseVersionInfo(data)
	if err != nil {
		return entities.VersionInfo{}, &entities.ParseError{Path: path, Err: err}
	}
	return version, nil
}

func (it *JSONMetadataRepository) LoadChangelog() (entities.Changelog, error) {
	path := it.settings.ChangelogPath()
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return entities.Changelog{}, &entities.NotFoundError{Path: path, Err: err}
	}
	if err != nil {
		return entities.Changelog{}, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer file.Close()

	changelog, err := entities.ExtractLatestChangelogEntry(file)
	if err != nil {
		return entities.Changelog{}, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return changelog, nil
}

func (it *JSONMetadataRepository) WriteReleaseNotes(version string, changelog entities.Changelog) error {
	if err := os.MkdirAll(it.settings.Resolve(it.settings.Paths.Scripts), 0o755); err != nil {
		return err
	}
	if err := renameio.WriteFile(it.settings.VersionOutputPath(), []byte(version), outputFileMode); err != nil {
		return fmt.Errorf("failed to write version output: %w", err)
	}
	if err := renameio.WriteFile(
		it.settings.ChangelogOutputPath(), []byte(changelog.Markdown()), outputFileMode,
	); err != nil {
		return fmt.Errorf("failed to write changelog output: %w", err)
	}
	return nil
}

func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &entities.NotFoundError{Path: path, Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return data, nil
}

package repositories

import (
	"github.com/rios0rios0/modrelease/internal/domain/entities"
)

// MetadataRepository reads the persisted documents describing a mod release.
type MetadataRepository interface {
	// LoadBuildData reads build_data.json.
	LoadBuildData() (*entities.BuildData, error)

	// LoadVersion reads the .version file of the given mod.
	LoadVersion(modName string) (entities.VersionInfo, error)

	// LoadChangelog extracts the most recent entry of the changelog document.
	LoadChangelog() (entities.Changelog, error)

	// WriteReleaseNotes writes the version string and markdown changelog for
	// downstream automation.
	WriteReleaseNotes(version string, changelog entities.Changelog) error
}

package entities

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// VersionPart is a single component of a version triple. It is kept verbatim:
// numbers and strings are both accepted and nothing is range-checked.
type VersionPart string

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (p *VersionPart) UnmarshalJSON(data []byte) error {
	value, err := decodeNumberOrString(data)
	if err != nil {
		return fmt.Errorf("version part %w", err)
	}
	*p = VersionPart(value)
	return nil
}

// decodeNumberOrString returns a JSON string as is and a JSON number in its
// literal form, so "4.10" and 4.10 are not rewritten.
func decodeNumberOrString(data []byte) (string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return "", fmt.Errorf("must be a number or a string, got %s", string(trimmed))
	}
	return n.String(), nil
}

// VersionTriple is a major/minor/patch triple as stored in a .version file.
type VersionTriple struct {
	Major VersionPart `json:"MAJOR"`
	Minor VersionPart `json:"MINOR"`
	Patch VersionPart `json:"PATCH"`
}

// String returns the dot-joined form "major.minor.patch".
func (t VersionTriple) String() string {
	return t.join(".")
}

func (t VersionTriple) join(sep string) string {
	return strings.Join([]string{string(t.Major), string(t.Minor), string(t.Patch)}, sep)
}

// VersionKind selects which triple of a VersionInfo to format.
type VersionKind int

const (
	// ModVersion is the mod's own release version.
	ModVersion VersionKind = iota
	// GameVersion is the targeted host-application version.
	GameVersion
)

// VersionInfo is the parsed content of a mod's .version file.
type VersionInfo struct {
	Version     VersionTriple `json:"VERSION"`
	GameVersion VersionTriple `json:"KSP_VERSION"`
}

// Format returns the selected triple as "major.minor.patch".
func (v VersionInfo) Format(which VersionKind) string {
	if which == GameVersion {
		return v.GameVersion.String()
	}
	return v.Version.String()
}

// FormatVersion is shorthand for Format(ModVersion).
func (v VersionInfo) FormatVersion() string { return v.Format(ModVersion) }

// FormatGameVersion is shorthand for Format(GameVersion).
func (v VersionInfo) FormatGameVersion() string { return v.Format(GameVersion) }

// ArchiveSuffix returns the mod version as used in archive names: "major_minor_patch".
func (v VersionInfo) ArchiveSuffix() string {
	return v.Version.join("_")
}

// ParseVersionInfo decodes a .version document. Both the VERSION and
// KSP_VERSION objects are required.
func ParseVersionInfo(data []byte) (VersionInfo, error) {
	var doc struct {
		Version     *VersionTriple `json:"VERSION"`
		GameVersion *VersionTriple `json:"KSP_VERSION"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return VersionInfo{}, err
	}
	if doc.Version == nil {
		return VersionInfo{}, errors.New("missing VERSION object")
	}
	if doc.GameVersion == nil {
		return VersionInfo{}, errors.New("missing KSP_VERSION object")
	}
	return VersionInfo{Version: *doc.Version, GameVersion: *doc.GameVersion}, nil
}

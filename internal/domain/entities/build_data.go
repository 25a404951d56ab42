package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

const (
	ProviderCurseForge = "curseforge"
	ProviderSpaceDock  = "spacedock"
)

// ProviderTarget holds the per-provider project identifier.
type ProviderTarget struct {
	ModID string `json:"mod-id"`
}

// BuildData is the parsed content of build_data.json.
type BuildData struct {
	ModName      string
	Dependencies map[string]DependencySpec
	SpaceDock    ProviderTarget
	CurseForge   ProviderTarget
}

// looseString decodes a JSON number or string into its literal text.
type looseString string

func (l *looseString) UnmarshalJSON(data []byte) error {
	value, err := decodeNumberOrString(data)
	if err != nil {
		return err
	}
	*l = looseString(value)
	return nil
}

type providerDocument struct {
	ModID looseString `json:"mod-id"`
}

type dependencyDocument struct {
	Location   string      `json:"location"`
	Version    looseString `json:"version"`
	Tag        string      `json:"tag"`
	Repository string      `json:"repository"`
}

type buildDataDocument struct {
	ModName      string                        `json:"mod_name"`
	Dependencies map[string]dependencyDocument `json:"dependencies"`
	SpaceDock    providerDocument              `json:"spacedock"`
	CurseForge   providerDocument              `json:"curseforge"`
}

// ParseBuildData decodes a build_data.json document. Unknown dependency
// locations are rejected so a partial dependency set is never bundled.
func ParseBuildData(data []byte) (*BuildData, error) {
	var doc buildDataDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.ModName == "" {
		return nil, errors.New("mod_name is required")
	}

	result := &BuildData{
		ModName:      doc.ModName,
		Dependencies: make(map[string]DependencySpec, len(doc.Dependencies)),
		SpaceDock:    ProviderTarget{ModID: string(doc.SpaceDock.ModID)},
		CurseForge:   ProviderTarget{ModID: string(doc.CurseForge.ModID)},
	}
	for name, dep := range doc.Dependencies {
		spec := DependencySpec{
			Name:       name,
			Kind:       SourceKind(dep.Location),
			Version:    string(dep.Version),
			Repository: dep.Repository,
			Tag:        dep.Tag,
		}
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("invalid dependency: %w", err)
		}
		result.Dependencies[name] = spec
	}

	return result, nil
}

// DependencyNames returns the dependency names sorted, for stable logging.
func (b *BuildData) DependencyNames() []string {
	names := make([]string, 0, len(b.Dependencies))
	for name := range b.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ModIDFor returns the project identifier registered for a provider.
func (b *BuildData) ModIDFor(provider string) (string, error) {
	var target ProviderTarget
	switch provider {
	case ProviderCurseForge:
		target = b.CurseForge
	case ProviderSpaceDock:
		target = b.SpaceDock
	default:
		return "", fmt.Errorf("unknown provider %q", provider)
	}
	if target.ModID == "" {
		return "", fmt.Errorf("%s.mod-id is not set in build data", provider)
	}
	return target.ModID, nil
}

package entities

import "fmt"

// SourceKind identifies where a dependency is fetched from.
type SourceKind string

const (
	// SourceObjectStorage fetches a pre-built zip from the dependency bucket.
	SourceObjectStorage SourceKind = "s3"
	// SourceControl clones a repository and checks out a tag.
	SourceControl SourceKind = "github"
)

// DependencySpec describes one pinned external dependency of a mod.
type DependencySpec struct {
	Name       string
	Kind       SourceKind
	Version    string // object storage only
	Repository string // source control only, "Account/RepoName"
	Tag        string // source control only
}

// Locator returns the human-readable pin of the dependency.
func (d DependencySpec) Locator() string {
	if d.Kind == SourceControl {
		return fmt.Sprintf("%s@%s", d.Repository, d.Tag)
	}
	return d.Version
}

// ObjectName returns the conventional object name "{name}_{version}.zip".
func (d DependencySpec) ObjectName() string {
	return fmt.Sprintf("%s_%s.zip", d.Name, d.Version)
}

// Validate checks that the locator fields required by the kind are present.
func (d DependencySpec) Validate() error {
	switch d.Kind {
	case SourceObjectStorage:
		if d.Version == "" {
			return fmt.Errorf("dependency %q: version is required for %s", d.Name, d.Kind)
		}
	case SourceControl:
		if d.Repository == "" || d.Tag == "" {
			return fmt.Errorf("dependency %q: repository and tag are required for %s", d.Name, d.Kind)
		}
	default:
		return &UnsupportedSourceError{Dependency: d.Name, Kind: string(d.Kind)}
	}
	return nil
}

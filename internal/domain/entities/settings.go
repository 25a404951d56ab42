package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultContentRoot   = "GameData"
	defaultExtrasPath    = "Extras"
	defaultBuildPath     = "build"
	defaultDeployPath    = "deploy"
	defaultTempPath      = "tmp"
	defaultScriptsPath   = "build_scripts"
	defaultBuildDataName = "build_data.json"
	defaultChangelogName = "changelog.txt"
	defaultReadmeName    = "readme.txt"
	defaultVersionOutput = "version.txt"
	defaultChangelogMD   = "changelog.md"

	defaultBucket       = "nertea-ksp-modding-dependencies"
	defaultBucketPrefix = "external"
	defaultRegion       = "us-east-1"
	defaultGitBaseURL   = "https://github.com"

	defaultCurseForgeURL = "https://kerbal.curseforge.com"
	defaultSpaceDockURL  = "https://spacedock.info"

	defaultTransferTimeout = 10 * time.Minute
	defaultHTTPTimeout     = 5 * time.Minute
)

// Settings is the optional modrelease configuration. Every field has a
// default matching the conventional mod repository layout.
type Settings struct {
	// WorkDir is the mod repository root every relative path is resolved against.
	WorkDir string `yaml:"-"`

	Paths     PathSettings     `yaml:"paths"`
	Bundle    BundleSettings   `yaml:"bundle"`
	Storage   StorageSettings  `yaml:"storage"`
	Git       GitSettings      `yaml:"git"`
	Providers ProviderSettings `yaml:"providers"`
	Timeouts  TimeoutSettings  `yaml:"timeouts"`
}

// PathSettings lists the directories and files of the workspace, relative to
// the working directory.
type PathSettings struct {
	ContentRoot   string `yaml:"content_root"`
	Extras        string `yaml:"extras"`
	Build         string `yaml:"build"`
	Deploy        string `yaml:"deploy"`
	Temp          string `yaml:"temp"`
	Scripts       string `yaml:"scripts"`
	BuildData     string `yaml:"build_data"`
	Changelog     string `yaml:"changelog"`
	Readme        string `yaml:"readme"`
	VersionOutput string `yaml:"version_output"`
	ChangelogMD   string `yaml:"changelog_output"`
}

// BundleSettings controls what survives at the root of a bundled archive.
type BundleSettings struct {
	RootAllowList []string `yaml:"root_allow_list"`
}

// StorageSettings locates object-storage dependencies.
type StorageSettings struct {
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

// GitSettings locates source-control dependencies.
type GitSettings struct {
	BaseURL       string `yaml:"base_url"`
	DefaultBranch string `yaml:"default_branch"` // Empty keeps the branch checked out by the clone
	Token         string `yaml:"token"`          // Inline or ${ENV_VAR}; optional for public repositories
}

// ProviderSettings holds publishing endpoints.
type ProviderSettings struct {
	CurseForgeURL string `yaml:"curseforge_url"`
	SpaceDockURL  string `yaml:"spacedock_url"`
}

// TimeoutSettings bounds every network operation.
type TimeoutSettings struct {
	Transfer time.Duration `yaml:"transfer"`
	HTTP     time.Duration `yaml:"http"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewDefaultSettings returns the settings used when no config file exists.
func NewDefaultSettings() *Settings {
	settings := &Settings{}
	settings.applyDefaults()
	return settings
}

// NewSettings reads a YAML settings file and fills in defaults for every
// field left empty.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Git.Token = expandEnv(settings.Git.Token)
	settings.applyDefaults()

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}
	return &settings, nil
}

// FindConfigFile searches the working directory for a settings file.
func FindConfigFile(workDir string) (string, error) {
	patterns := []string{
		".modrelease.yaml",
		".modrelease.yml",
		"modrelease.yaml",
		"modrelease.yml",
	}
	locations := []string{
		workDir,
		filepath.Join(workDir, defaultScriptsPath),
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// WithWorkDir returns a copy of the settings rooted at workDir.
func (s *Settings) WithWorkDir(workDir string) *Settings {
	clone := *s
	clone.Bundle.RootAllowList = append([]string(nil), s.Bundle.RootAllowList...)
	clone.WorkDir = workDir
	return &clone
}

// Resolve joins a workspace-relative path onto WorkDir.
func (s *Settings) Resolve(elem ...string) string {
	rel := filepath.Join(elem...)
	if filepath.IsAbs(rel) || s.WorkDir == "" {
		return rel
	}
	return filepath.Join(s.WorkDir, rel)
}

// BuildPath returns the build tree location.
func (s *Settings) BuildPath() string { return s.Resolve(s.Paths.Build) }

// DeployPath returns the archive output location.
func (s *Settings) DeployPath() string { return s.Resolve(s.Paths.Deploy) }

// TempPath returns the scratch area used during dependency collection.
func (s *Settings) TempPath() string { return s.Resolve(s.Paths.Temp) }

// ExtrasPath returns the directory holding optional sub-packages.
func (s *Settings) ExtrasPath() string { return s.Resolve(s.Paths.Extras) }

// ContentPath returns the primary content directory of a mod.
func (s *Settings) ContentPath(modName string) string {
	return s.Resolve(s.Paths.ContentRoot, modName)
}

// ChangelogPath returns the changelog document location.
func (s *Settings) ChangelogPath() string { return s.Resolve(s.Paths.Changelog) }

// ReadmePath returns the readme document location.
func (s *Settings) ReadmePath() string { return s.Resolve(s.Paths.Readme) }

// BuildDataPath returns the location of build_data.json.
func (s *Settings) BuildDataPath() string {
	return s.Resolve(s.Paths.Scripts, s.Paths.BuildData)
}

// VersionFilePath returns the location of a mod's .version file.
func (s *Settings) VersionFilePath(modName string) string {
	return s.Resolve(s.Paths.ContentRoot, modName, "Versioning", modName+".version")
}

// VersionOutputPath returns where the plain-text version is written for CI.
func (s *Settings) VersionOutputPath() string {
	return s.Resolve(s.Paths.Scripts, s.Paths.VersionOutput)
}

// ChangelogOutputPath returns where the markdown changelog is written for CI.
func (s *Settings) ChangelogOutputPath() string {
	return s.Resolve(s.Paths.Scripts, s.Paths.ChangelogMD)
}

// LockPath returns the advisory lock file guarding the workspace.
func (s *Settings) LockPath() string { return s.Resolve(".modrelease.lock") }

// ReleaseArchivePath returns the path of the complete archive that gets deployed.
func (s *Settings) ReleaseArchivePath(modName string, version VersionInfo) string {
	return NewCompleteVariant(modName, version, s.BuildPath(), s.DeployPath()).OutputPath
}

//nolint:cyclop // flat list of defaults
func (s *Settings) applyDefaults() {
	setDefault(&s.Paths.ContentRoot, defaultContentRoot)
	setDefault(&s.Paths.Extras, defaultExtrasPath)
	setDefault(&s.Paths.Build, defaultBuildPath)
	setDefault(&s.Paths.Deploy, defaultDeployPath)
	setDefault(&s.Paths.Temp, defaultTempPath)
	setDefault(&s.Paths.Scripts, defaultScriptsPath)
	setDefault(&s.Paths.BuildData, defaultBuildDataName)
	setDefault(&s.Paths.Changelog, defaultChangelogName)
	setDefault(&s.Paths.Readme, defaultReadmeName)
	setDefault(&s.Paths.VersionOutput, defaultVersionOutput)
	setDefault(&s.Paths.ChangelogMD, defaultChangelogMD)

	if len(s.Bundle.RootAllowList) == 0 {
		s.Bundle.RootAllowList = []string{s.Paths.Changelog, s.Paths.Readme}
	}

	setDefault(&s.Storage.Bucket, defaultBucket)
	setDefault(&s.Storage.Prefix, defaultBucketPrefix)
	setDefault(&s.Storage.Region, defaultRegion)
	setDefault(&s.Git.BaseURL, defaultGitBaseURL)
	setDefault(&s.Providers.CurseForgeURL, defaultCurseForgeURL)
	setDefault(&s.Providers.SpaceDockURL, defaultSpaceDockURL)

	if s.Timeouts.Transfer <= 0 {
		s.Timeouts.Transfer = defaultTransferTimeout
	}
	if s.Timeouts.HTTP <= 0 {
		s.Timeouts.HTTP = defaultHTTPTimeout
	}
}

func (s *Settings) validate() error {
	for i, pattern := range s.Bundle.RootAllowList {
		if pattern == "" {
			return fmt.Errorf("bundle.root_allow_list[%d] must not be empty", i)
		}
	}
	if filepath.Clean(s.Paths.Build) == filepath.Clean(s.Paths.Deploy) {
		return errors.New("paths.build and paths.deploy must differ")
	}
	return nil
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// expandEnv replaces ${ENV_VAR} references with their values.
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

package entities

import (
	"fmt"
	"path/filepath"
)

// VariantKind tells which part of the build tree a variant ships.
type VariantKind string

const (
	VariantCore     VariantKind = "core"
	VariantExtra    VariantKind = "extra"
	VariantComplete VariantKind = "complete"
)

const coreQualifier = "Core"

// ArchiveVariant is a request to zip a subtree of the build tree.
type ArchiveVariant struct {
	Label         string
	Kind          VariantKind
	SourceSubtree string
	OutputPath    string
	// FilterRoot drops top-level files that are not in the root allow-list.
	FilterRoot bool
}

// ExtraPackage is an optional sub-package living under the extras directory.
type ExtraPackage struct {
	Name       string
	SourcePath string
}

// NewCoreVariant describes the release without dependencies: {mod}_Core_{M}_{m}_{p}.zip.
func NewCoreVariant(modName string, version VersionInfo, buildPath, deployPath string) ArchiveVariant {
	label := fmt.Sprintf("%s_%s", modName, coreQualifier)
	return ArchiveVariant{
		Label:         label,
		Kind:          VariantCore,
		SourceSubtree: buildPath,
		OutputPath:    archivePath(deployPath, label, version),
		FilterRoot:    true,
	}
}

// NewCompleteVariant describes the release with every dependency: {mod}_{M}_{m}_{p}.zip.
func NewCompleteVariant(modName string, version VersionInfo, buildPath, deployPath string) ArchiveVariant {
	return ArchiveVariant{
		Label:         modName,
		Kind:          VariantComplete,
		SourceSubtree: buildPath,
		OutputPath:    archivePath(deployPath, modName, version),
		FilterRoot:    true,
	}
}

// NewExtraVariant describes a single extra package: {extra}_{M}_{m}_{p}.zip.
func NewExtraVariant(extra ExtraPackage, version VersionInfo, stagedPath, deployPath string) ArchiveVariant {
	return ArchiveVariant{
		Label:         extra.Name,
		Kind:          VariantExtra,
		SourceSubtree: stagedPath,
		OutputPath:    archivePath(deployPath, extra.Name, version),
	}
}

func archivePath(deployPath, label string, version VersionInfo) string {
	return filepath.Join(deployPath, fmt.Sprintf("%s_%s.zip", label, version.ArchiveSuffix()))
}

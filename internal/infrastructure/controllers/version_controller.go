package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/modrelease/internal/domain/commands"
	"github.com/rios0rios0/modrelease/internal/domain/entities"
)

// VersionController handles the "version" subcommand.
type VersionController struct {
	command commands.Version
}

// NewVersionController creates a new VersionController.
func NewVersionController(command commands.Version) *VersionController {
	return &VersionController{command: command}
}

// GetBind returns the Cobra command metadata for the version controller.
func (it *VersionController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "version",
		Short: "Print the mod version and latest changelog entry",
	}
}

// AddFlags is a no-op: the version command only uses the global flags.
func (it *VersionController) AddFlags(_ *cobra.Command) {}

// Execute prints the resolved version, game version and changelog.
func (it *VersionController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	report, err := it.command.Execute(cmd.Context(), settings)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s %s (KSP %s)\n\n",
		report.ModName, report.Version.FormatVersion(), report.Version.FormatGameVersion())
	_, _ = fmt.Fprint(out, report.Changelog.Markdown())
	return nil
}

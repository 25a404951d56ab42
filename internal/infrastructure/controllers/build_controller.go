package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/modrelease/internal/domain/commands"
	"github.com/rios0rios0/modrelease/internal/domain/entities"
)

// BuildController handles the "build" subcommand.
type BuildController struct {
	command commands.Build
}

// NewBuildController creates a new BuildController.
func NewBuildController(command commands.Build) *BuildController {
	return &BuildController{command: command}
}

// GetBind returns the Cobra command metadata for the build controller.
func (it *BuildController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "build",
		Short: "Build the release packages of the mod",
		Long: `Stage the mod content, its extras and its pinned dependencies into the
build tree and write the release archives into the deploy directory.

The version is read from GameData/<mod>/Versioning/<mod>.version and the
dependencies from build_scripts/build_data.json. The resolved version and
latest changelog entry are written to build_scripts for CI deploy steps.`,
	}
}

// AddFlags adds the build-specific flags to the given Cobra command.
func (it *BuildController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("complete", "c", true, "Write the complete package with dependencies")
	cmd.Flags().BoolP("extras", "e", false, "Write one package per extra")
	cmd.Flags().BoolP("basic", "b", false, "Write the core package without dependencies")
}

// Execute runs the build.
func (it *BuildController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	complete, _ := cmd.Flags().GetBool("complete")
	extras, _ := cmd.Flags().GetBool("extras")
	basic, _ := cmd.Flags().GetBool("basic")

	_, err = it.command.Execute(cmd.Context(), settings, commands.BuildOptions{
		Core:     basic,
		Extras:   extras,
		Complete: complete,
	})
	return err
}

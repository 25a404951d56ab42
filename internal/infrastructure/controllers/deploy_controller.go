package controllers

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/modrelease/internal/domain/commands"
	"github.com/rios0rios0/modrelease/internal/domain/entities"
)

// DeployController handles the "deploy" subcommand.
type DeployController struct {
	command commands.Deploy
}

// NewDeployController creates a new DeployController.
func NewDeployController(command commands.Deploy) *DeployController {
	return &DeployController{command: command}
}

// GetBind returns the Cobra command metadata for the deploy controller.
func (it *DeployController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "deploy",
		Short: "Publish the complete package to the mod hosting providers",
		Long: `Upload the complete release archive to CurseForge and/or SpaceDock.

Credentials are read from the environment:
  CURSEFORGE_TOKEN                       CurseForge API token
  SPACEDOCK_LOGIN, SPACEDOCK_PASSWORD    SpaceDock account

Providers are published one after the other. A failing provider does not
stop the next one, but the command exits with an error.`,
	}
}

// AddFlags adds the deploy-specific flags to the given Cobra command.
func (it *DeployController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("curse", false, "Publish to CurseForge")
	cmd.Flags().Bool("spacedock", false, "Publish to SpaceDock")
	cmd.Flags().String("release-type", string(entities.ReleaseTypeRelease),
		"CurseForge release type (release, beta, alpha)")
	cmd.Flags().Bool("notify-followers", true, "Notify SpaceDock followers of the update")
}

// Execute runs the deploy.
func (it *DeployController) Execute(cmd *cobra.Command, _ []string) error {
	curse, _ := cmd.Flags().GetBool("curse")
	spaceDock, _ := cmd.Flags().GetBool("spacedock")
	releaseType, _ := cmd.Flags().GetString("release-type")
	notify, _ := cmd.Flags().GetBool("notify-followers")

	var providers []string
	if curse {
		providers = append(providers, entities.ProviderCurseForge)
	}
	if spaceDock {
		providers = append(providers, entities.ProviderSpaceDock)
	}
	if len(providers) == 0 {
		return errors.New("select at least one provider with --curse or --spacedock")
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	_, err = it.command.Execute(cmd.Context(), settings, commands.DeployOptions{
		Providers:       providers,
		ReleaseType:     entities.ReleaseType(releaseType),
		NotifyFollowers: notify,
		Credentials:     entities.NewCredentialsFromEnv(nil),
	})
	return err
}

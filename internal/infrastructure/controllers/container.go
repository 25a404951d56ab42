package controllers

import (
	"github.com/rios0rios0/modrelease/internal/domain/entities"
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewBuildController); err != nil {
		return err
	}
	if err := container.Provide(NewDeployController); err != nil {
		return err
	}
	if err := container.Provide(NewVersionController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	buildController *BuildController,
	deployController *DeployController,
	versionController *VersionController,
) *[]entities.Controller {
	return &[]entities.Controller{
		buildController,
		deployController,
		versionController,
	}
}

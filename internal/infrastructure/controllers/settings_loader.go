package controllers

import (
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
)

// loadSettings resolves the workspace root and settings from the global flags.
// Without an explicit or discoverable config file the defaults are used.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	workDir, _ := cmd.Flags().GetString("workdir")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	if workDir == "" {
		workDir = "."
	}
	absWorkDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working directory: %w", err)
	}

	if configPath == "" {
		found, findErr := entities.FindConfigFile(absWorkDir)
		if findErr != nil {
			logger.Debugf("No config file found in %s, using defaults", absWorkDir)
			return entities.NewDefaultSettings().WithWorkDir(absWorkDir), nil
		}
		configPath = found
	}

	logger.Infof("Using config file: %s", configPath)
	settings, err := entities.NewSettings(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return settings.WithWorkDir(absWorkDir), nil
}

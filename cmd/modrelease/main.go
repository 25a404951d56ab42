package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/modrelease/internal"
)

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "modrelease",
		Short: "Build and publish Kerbal Space Program mod releases",
		Long: `Release pipeline for a KSP mod workspace.

Reads the mod version and pinned dependencies, stages the mod content and its
extras into a build tree, collects dependencies from object storage or from
tagged Git repositories, writes the release archives and publishes the
complete package to CurseForge and SpaceDock.

Usage:
  modrelease build --basic --extras    Build every package
  modrelease deploy --curse --spacedock
  modrelease version`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "C", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().StringP("workdir", "w", ".",
		"Root of the mod workspace")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.NoArgs,
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}
		ctrl.AddFlags(subCmd)
		rootCmd.AddCommand(subCmd)
	}
}

func newApp() (*cobra.Command, error) {
	appContext, err := injectAppContext()
	if err != nil {
		return nil, err
	}
	rootCmd := buildRootCommand()
	addSubcommands(rootCmd, appContext)
	return rootCmd, nil
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd, err := newApp()
	if err != nil {
		logger.Fatalf("Failed to initialize 'modrelease': %s", err)
	}

	if execErr := rootCmd.ExecuteContext(ctx); execErr != nil {
		stop()
		logger.Fatalf("Error executing 'modrelease': %s", execErr)
	}
}

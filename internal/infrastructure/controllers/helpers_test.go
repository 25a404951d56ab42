//go:build unit

package controllers_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
)

// runController wires the controller the way the CLI does and runs it with args.
func runController(t *testing.T, controller entities.Controller, args ...string) (string, error) {
	t.Helper()

	root := &cobra.Command{Use: "modrelease", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().StringP("config", "C", "", "")
	root.PersistentFlags().StringP("workdir", "w", ".", "")
	root.PersistentFlags().BoolP("verbose", "v", false, "")

	bind := controller.GetBind()
	sub := &cobra.Command{
		Use: bind.Use,
		RunE: func(command *cobra.Command, arguments []string) error {
			return controller.Execute(command, arguments)
		},
	}
	controller.AddFlags(sub)
	root.AddCommand(sub)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(append([]string{bind.Use}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

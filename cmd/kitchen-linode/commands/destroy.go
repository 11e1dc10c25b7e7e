package commands

import (
	"github.com/spf13/cobra"

	"github.com/testkitchen/kitchen-linode/cmd/kitchen-linode/handlers"
)

// Destroy returns the destroy command.
//
// The destroy command deletes the instance recorded in the state file and
// clears the record. A state file without an instance, or an instance the
// provider no longer knows about, is treated as already destroyed.
func Destroy() *cobra.Command {
	var configPath string
	var statePath string

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Destroy the recorded test instance",
		Long: `Destroy deletes the instance recorded in the state file.

The state file is cleared once the instance is gone, so destroy can be run
repeatedly. An instance that was already deleted out of band counts as
success.

Example:
  kitchen-linode destroy -c ci.yaml --state .kitchen/state.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath, statePath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "kitchen-linode.yaml", "Path to driver configuration file")
	cmd.Flags().StringVar(&statePath, "state", ".kitchen-linode/state.yaml", "Path to instance state file")

	return cmd
}

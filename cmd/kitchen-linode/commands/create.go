package commands

import (
	"github.com/spf13/cobra"

	"github.com/testkitchen/kitchen-linode/cmd/kitchen-linode/handlers"
)

// Create returns the create command.
//
// The create command provisions a Linode instance, waits for it to boot and
// prepares SSH access for the configured user. The resulting instance ID,
// label, address and key path are written to the state file; re-running
// create against a state file that already records an instance is a no-op.
//
// Environment variables:
//
//	LINODE_TOKEN: Linode API token (used when the config file sets none)
func Create() *cobra.Command {
	var configPath string
	var statePath string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create and bootstrap a test instance",
		Long: `Create provisions a Linode instance for a test run.

The instance label is derived from the CI job and instance name, suffixed to
avoid collisions with concurrent runs. After the instance boots, the
configured public key is installed over SSH and password login is disabled.

The state file records what was created. Running create again with the same
state file does nothing; delete the file (or run destroy) to start over.

Examples:
  # Create using kitchen-linode.yaml in the current directory
  kitchen-linode create

  # Create using a specific config and state file
  kitchen-linode create -c ci.yaml --state .kitchen/state.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Create(cmd.Context(), configPath, statePath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "kitchen-linode.yaml", "Path to driver configuration file")
	cmd.Flags().StringVar(&statePath, "state", ".kitchen-linode/state.yaml", "Path to instance state file")

	return cmd
}

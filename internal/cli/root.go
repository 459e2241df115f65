// Package cli implements the synapseflow command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var configPath string

// NewRootCmd creates the top-level synapseflow CLI command with all subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synapseflow",
		Short: "Lightweight agent orchestration engine",
		Long: `SynapseFlow routes free-text requests through a swarm of agents:
each request is recorded, decomposed into steps and dispatched to the
most relevant registered capabilities.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")

	cmd.AddCommand(
		newServeCmd(),
		newRunCmd(),
		newGenCmd(),
	)

	return cmd
}

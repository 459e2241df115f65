package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	synapseflow "github.com/hupe1980/synapseflow"
	"github.com/hupe1980/synapseflow/agent"
)

func newRunCmd() *cobra.Command {
	var (
		agentName string
		userID    string
		noPlan    bool
	)

	cmd := &cobra.Command{
		Use:   "run [query...]",
		Short: "Dispatch a query through the swarm and print the step results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			rt, err := buildRuntime(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer rt.close()

			query := strings.Join(args, " ")

			var outcome synapseflow.Outcome
			if noPlan {
				a, ok := rt.swarm.Agent(agentName)
				if !ok {
					outcome = synapseflow.Outcome{Agent: agentName, Error: "agent not found"}
				} else {
					steps := a.Run(cmd.Context(), userID, query, func(o *agent.RunOptions) {
						o.UsePlanner = false
					})
					outcome = synapseflow.Outcome{Agent: agentName, Found: true, Steps: steps}
				}
			} else {
				outcome = rt.swarm.RunAs(cmd.Context(), agentName, userID, query)
			}

			raw, err := json.MarshalIndent(outcome, "", "  ")
			if err != nil {
				return fmt.Errorf("encode outcome: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		},
	}

	cmd.Flags().StringVarP(&agentName, "agent", "a", DefaultAgentName, "Agent to dispatch to")
	cmd.Flags().StringVarP(&userID, "user", "u", synapseflow.DefaultSwarmUser, "User id to record the run under")
	cmd.Flags().BoolVar(&noPlan, "no-plan", false, "Skip decomposition and dispatch the query as a single step")

	return cmd
}

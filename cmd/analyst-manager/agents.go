// cmd/analyst-manager/agents.go
package main

import (
	"fmt"
	"text/tabwriter"

	"startup-analyst/internal/common/config"
	"startup-analyst/pkg/registry"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "List the pipeline agent slots",
		RunE:  runAgents,
	}
	validate := &cobra.Command{
		Use:   "validate <path>",
		Short: "Validate an agent catalogue override file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := registry.LoadRegistry(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d agent slots OK\n", args[0], len(r.Agents))
			return nil
		},
	}
	cmd.AddCommand(validate)

	rootCmd.AddCommand(cmd)
}

func runAgents(cmd *cobra.Command, _ []string) error {
	catalogue, err := registry.LoadWithOverrides(registryPath)
	if err != nil {
		return err
	}
	// Enablement is best effort: without a config file every agent is on.
	cfg, err := loadConfig()
	if err != nil {
		cfg = &config.Config{}
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PHASE\tSLOT\tTASK TYPE\tTIMEOUT\tENABLED\tDESCRIPTION")
	for _, s := range catalogue.Sorted() {
		timeout := s.Timeout
		if agent := config.GetAgentConfig(cfg, s.ID); agent.Timeout > 0 {
			timeout = config.GetDuration(agent.Timeout).String()
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\t%s\n",
			s.Phase, s.ID, s.TaskType, timeout, config.IsAgentEnabled(cfg, s.ID), s.Description)
	}
	return w.Flush()
}

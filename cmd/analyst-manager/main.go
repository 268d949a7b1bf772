// cmd/analyst-manager/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath   string
	registryPath string
)

var rootCmd = &cobra.Command{
	Use:   "analyst-manager",
	Short: "Multi-agent startup analysis pipeline",
	Long: "Runs pitch documents, founder voice data and public market data through extraction, " +
		"consolidation, analysis, decision and memo agents, and serves the results over HTTP and Zeebe.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&registryPath, "registry", "", "Agent catalogue overrides (JSON)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

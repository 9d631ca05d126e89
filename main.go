package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "synapse-spark-inventory <config-file>",
		Short: "Synapse Spark metadata inventory",
		Long: "Enumerates Azure Synapse workspaces across the configured subscriptions, " +
			"collects Spark metadata (big data pools, notebooks, Spark job definitions) " +
			"and writes console and JSON reports.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.Context(), args[0])
		},
	}

	rootCmd.AddCommand(NewVersionCommand())

	// Set up context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Command execution failed: %v\n", err)
		os.Exit(1)
	}
}

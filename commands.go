package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"go.goms.io/synapse/spark-inventory/pkg/config"
	"go.goms.io/synapse/spark-inventory/pkg/logger"
	"go.goms.io/synapse/spark-inventory/pkg/scanner"
)

// Version information variables (set at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// NewVersionCommand creates a new version command
func NewVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version, build commit, and build time information",
		Run: func(cmd *cobra.Command, args []string) {
			runVersion()
		},
	}

	return cmd
}

// runScan loads the configuration and executes a full inventory scan
func runScan(ctx context.Context, configPath string) error {
	cfg, created, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	if created {
		fmt.Printf("📁 Created sample config file: %s\n", configPath)
		fmt.Println("   Please update it with your subscription IDs and run again.")
	}

	ctx = logger.Setup(ctx, cfg.LogLevel, cfg.LogDir)
	log := logger.FromContext(ctx)

	s := scanner.New(cfg, log)
	return s.Run(ctx)
}

// runVersion displays version information
func runVersion() {
	fmt.Printf("synapse-spark-inventory version %s\n", Version)
	fmt.Printf("Git commit: %s\n", GitCommit)
	fmt.Printf("Build time: %s\n", BuildTime)
}

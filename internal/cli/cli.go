//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for pgedge-shopstats.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-shopstats/internal/config"
	"github.com/pgEdge/pgedge-shopstats/internal/datagen/demand"
	"github.com/pgEdge/pgedge-shopstats/internal/logging"
	"github.com/pgEdge/pgedge-shopstats/internal/rfm"
	"github.com/pgEdge/pgedge-shopstats/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	driver     string
	logLevel   string
	logFormat  string
	outputDir  string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "pgedge-shopstats",
		Short: "Synthetic e-commerce sales data and RFM customer segmentation",
		Long: `pgedge-shopstats generates a synthetic e-commerce sales history, loads
it into PostgreSQL or MySQL, and analyses it: monthly sales, category and
city performance, and RFM (recency, frequency, monetary) customer
segmentation. Results are written as CSV files and PNG charts.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./pgedge-shopstats.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"database connection string")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "",
		"database driver (postgres, mysql)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"log format (console, json)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "",
		"directory for CSV files, charts and the run manifest")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(segmentsCmd)
	rootCmd.AddCommand(profilesCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if driver != "" {
		cfg.Driver = driver
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	return nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			logging.Info().
				Str("signal", sig.String()).
				Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var segmentsCmd = &cobra.Command{
	Use:   "segments",
	Short: "List customer segments and their rules",
	Long: `List the RFM customer segments in the order their rules are
checked. Each score runs from 1 (worst) to 5 (best); a customer gets the
first segment whose rule matches.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Customer segments (first match wins):")
		cmd.Println()
		for _, rule := range rfm.Rules {
			cmd.Printf("  %-10s - %s\n", rule.Segment, rule.Description)
		}
	},
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List available demand profiles",
	Long: `List the demand profiles that weight order dates when generating
the synthetic sales history.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available demand profiles:")
		cmd.Println()
		for _, name := range demand.List() {
			p, err := demand.Get(name)
			if err != nil {
				continue
			}
			cmd.Printf("  %-10s - %s\n", p.Name(), p.Description())
		}
	},
}

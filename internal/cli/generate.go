//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-shopstats/internal/datagen"
	"github.com/pgEdge/pgedge-shopstats/internal/datagen/demand"
	"github.com/pgEdge/pgedge-shopstats/internal/logging"
)

var (
	genStartDate    string
	genEndDate      string
	genProducts     int
	genCustomers    int
	genTransactions int
	genSeed         uint64
	genProfile      string
	genProgress     bool
	genLoad         bool
	genDropExisting bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic sales dataset",
	Long: `Generate products, customers and sales for the given date range and
write them as CSV files to the output directory. With --load the dataset is
also loaded into the database.

Example:
  pgedge-shopstats generate --customers 5000 --transactions 50000 --seed 7 \
      --load --connection "postgres://..."`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genStartDate, "start-date", "",
		"first order date (YYYY-MM-DD)")
	generateCmd.Flags().StringVar(&genEndDate, "end-date", "",
		"last order date (YYYY-MM-DD)")
	generateCmd.Flags().IntVar(&genProducts, "products", 0,
		"number of products (multiple of 25)")
	generateCmd.Flags().IntVar(&genCustomers, "customers", 0,
		"number of customers")
	generateCmd.Flags().IntVar(&genTransactions, "transactions", 0,
		"number of sales")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 0,
		"random seed for reproducible output (0: time based)")
	generateCmd.Flags().StringVar(&genProfile, "profile", "",
		"demand profile (see 'pgedge-shopstats profiles')")
	generateCmd.Flags().BoolVar(&genProgress, "progress", true,
		"show a progress bar while generating sales")
	generateCmd.Flags().BoolVar(&genLoad, "load", false,
		"load the generated dataset into the database")
	generateCmd.Flags().BoolVar(&genDropExisting, "drop-existing", false,
		"drop existing tables before loading")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if genStartDate != "" {
		cfg.Generate.StartDate = genStartDate
	}
	if genEndDate != "" {
		cfg.Generate.EndDate = genEndDate
	}
	if genProducts > 0 {
		cfg.Generate.Products = genProducts
	}
	if genCustomers > 0 {
		cfg.Generate.Customers = genCustomers
	}
	if genTransactions > 0 {
		cfg.Generate.Transactions = genTransactions
	}
	if genSeed != 0 {
		cfg.Generate.Seed = genSeed
	}
	if genProfile != "" {
		cfg.Generate.Profile = genProfile
	}
	if cmd.Flags().Changed("progress") {
		cfg.Generate.Progress = genProgress
	}
	if genLoad {
		cfg.Generate.Load = true
	}
	if genDropExisting {
		cfg.Generate.DropExisting = true
	}

	// Validate configuration
	if err := cfg.ValidateGenerate(); err != nil {
		return err
	}

	profile, err := demand.Get(cfg.Generate.Profile)
	if err != nil {
		return err
	}
	start, end, err := cfg.Generate.Dates()
	if err != nil {
		return err
	}

	var progressOut io.Writer
	if cfg.Generate.Progress {
		progressOut = os.Stderr
	}

	ctx, cancel := signalContext()
	defer cancel()

	gen := datagen.NewGenerator(datagen.GeneratorConfig{
		StartDate:    start,
		EndDate:      end,
		Products:     cfg.Generate.Products,
		Customers:    cfg.Generate.Customers,
		Transactions: cfg.Generate.Transactions,
		Seed:         cfg.Generate.Seed,
		Profile:      profile,
		ProgressBar:  progressOut,
	})
	ds, err := gen.Generate(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate dataset: %w", err)
	}

	if _, err := datagen.WriteDataset(cfg.OutputDir, ds); err != nil {
		return err
	}

	if cfg.Generate.Load {
		if err := loadDataset(ctx, ds, cfg.Generate.DropExisting); err != nil {
			return err
		}
	}

	logging.Info().
		Int("products", len(ds.Products)).
		Int("customers", len(ds.Customers)).
		Int("sales", len(ds.Sales)).
		Str("output_dir", cfg.OutputDir).
		Msg("Dataset generation complete")

	return nil
}

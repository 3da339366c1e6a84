// Package cmd defines the CLI surface: process for batch conversion, serve
// for the HTTP API, and version.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/catalog"
	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/config"
	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/export"
	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/logger"
	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/pipeline"
	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/repository"
)

var (
	cfgFile string
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "po-processor",
	Short: "Supplier purchase-order PDF processor",
	Long: `Converts supplier purchase-order PDFs (standard, consolidated and
picking-note layouts) into catalog-reconciled, quantity-normalized orders
and exports them as a fixed-column XLSX for the downstream ordering system.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger.Init(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildPipeline wires the store, catalog, resolver, conversion table and
// export writer from configuration. The conversion snapshot is loaded once
// here and is read-only for the run.
func buildPipeline(ctx context.Context) (*repository.Store, *pipeline.Processor, *export.Writer, error) {
	store, err := repository.Open(ctx, cfg.DatabasePath, logger.L())
	if err != nil {
		return nil, nil, nil, err
	}

	cat := catalog.New(store, cfg.CatalogTTLDuration())
	resolver := catalog.NewResolver(cat, logger.L())

	loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	conversions, err := store.LoadFactors(loadCtx)
	if err != nil {
		store.Close()
		return nil, nil, nil, err
	}

	proc := pipeline.NewProcessor(resolver, conversions, logger.L())
	writer := export.NewWriter(store, cfg.VendorCode, cfg.VendorName, logger.L())
	return store, proc, writer, nil
}

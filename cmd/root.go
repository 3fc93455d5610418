package cmd

import (
	"fmt"
	"os"

	"github.com/jjenkins/hansard/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose     bool
	driver      string
	databaseURL string

	logger *zap.Logger
	cfg    config.Config
)

var rootCmd = &cobra.Command{
	Use:   "hansard",
	Short: "Browse Singapore parliamentary records",
	Long: `hansard serves a read-only view of parliamentary sittings, the sections
debated in them, bills and their readings, members and ministries.

The data is loaded by a separate ingestion pipeline. Configuration is read
from the environment (DATABASE_URL, DB_DRIVER, PORT, DB_MAX_OPEN_CONNS,
DB_MAX_IDLE_CONNS, DB_CONN_MAX_LIFETIME, DEFAULT_PAGE_SIZE, REQUEST_TIMEOUT);
the flags below override it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		cfg, err = config.Load(flagOverrides(cmd))
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		logger.Debug("configuration loaded",
			zap.String("driver", cfg.Driver),
			zap.Int("max_open_conns", cfg.MaxOpenConns),
			zap.Int("default_page_size", cfg.DefaultPageSize))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// flagOverrides applies only the flags the user actually set
func flagOverrides(cmd *cobra.Command) config.Option {
	return func(c *config.Config) {
		if cmd.Flags().Changed("driver") {
			c.Driver = driver
		}
		if cmd.Flags().Changed("database-url") {
			c.DatabaseURL = databaseURL
		}
	}
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", config.DriverPostgres, "Database driver (postgres or sqlite)")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Database connection string")
}

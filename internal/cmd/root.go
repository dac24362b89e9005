package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"jewelbox/internal/config"
	"jewelbox/internal/repos"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "jewelbox",
	Short: "Jewellery shop REST API",
	Long: `jewelbox serves the jewellery shop API: accounts, catalog, per-user carts
and checkout into orders, backed by SQLite or MySQL.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./config.yaml or ./config/config.yaml)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	// Optional file logging
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.Log.File, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}
	return cfg, nil
}

func openDB(cfg *config.Config) (*repos.DB, error) {
	db, err := repos.OpenDB(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Printf("[db] %s ready", db.Driver())
	return db, nil
}

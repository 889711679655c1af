// Package main implements the screener CLI for extracting, scoring, and
// ranking candidate profiles from resume text.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/screenware/resume-screener/internal/config"
	"github.com/screenware/resume-screener/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "Candidate profile extraction and ranking engine",
	Long:  "Screener extracts structured candidate profiles from resume text files, scores them against a job requirement across weighted dimensions, and produces a deterministic ranking with pool analytics.",
}

var (
	rootConfigPath string
	rootVerbose    bool
	rootLogJSON    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().BoolVar(&rootLogJSON, "log-json", false, "Emit logs as JSON instead of console encoding")
}

// loadRuntimeConfig resolves the effective configuration: the --config file
// when given, with the root flags applied on top.
func loadRuntimeConfig() (config.Config, error) {
	var cfg config.Config
	if rootConfigPath != "" {
		loaded, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	if rootVerbose {
		cfg.Verbose = true
	}
	if rootLogJSON {
		cfg.LogJSON = true
	}
	return cfg, nil
}

// newLogger builds the zap logger for one command invocation and records
// the resolved configuration. The database URL is logged as presence only.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.LogJSON, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	log.Debug("resolved configuration",
		zap.String("config_path", rootConfigPath),
		zap.String("vocabulary", cfg.Vocabulary),
		zap.String("ner_model", cfg.NERModel),
		zap.String("experience_mode", cfg.ExperienceMode),
		zap.Int("concurrency", cfg.Concurrency),
		zap.Bool("database_url_set", cfg.DatabaseURL != ""),
	)
	return log, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

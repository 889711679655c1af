package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/screenware/resume-screener/internal/pipeline"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Run the full screening pipeline end-to-end",
	Long: `Orchestrates the entire screening process in one invocation: ingest the
job requirement, extract candidate profiles from resume text, score and rank
the pool, and write the screening report.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runScreen,
}

var (
	screenInput       string
	screenJob         string
	screenJobURL      string
	screenVocab       string
	screenNER         string
	screenAPIKey      string
	screenOutput      string
	screenCSV         string
	screenSave        bool
	screenDatabaseURL string
	screenUseBrowser  bool
)

func init() {
	screenCmd.Flags().StringVarP(&screenInput, "in", "i", "", "Path to a resume .txt file or a directory of them (required)")
	screenCmd.Flags().StringVarP(&screenJob, "job", "j", "", "Path to job requirement JSON file (mutually exclusive with --job-url)")
	screenCmd.Flags().StringVar(&screenJobURL, "job-url", "", "URL to fetch the job posting from (mutually exclusive with --job)")
	screenCmd.Flags().StringVar(&screenVocab, "vocab", "", "Path to vocabulary JSON file overriding the built-in tables")
	screenCmd.Flags().StringVar(&screenNER, "ner", "off", "Entity recognition mode: gemini or off")
	screenCmd.Flags().StringVar(&screenAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	screenCmd.Flags().StringVarP(&screenOutput, "out", "o", "", "Path to output screening report JSON")
	screenCmd.Flags().StringVar(&screenCSV, "csv", "", "Path to output ranked candidates CSV")
	screenCmd.Flags().BoolVar(&screenSave, "save", false, "Persist the screening run to Postgres")
	screenCmd.Flags().StringVar(&screenDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	screenCmd.Flags().BoolVar(&screenUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")

	if err := screenCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadRuntimeConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// CLI flags override config file values.
	if cmd.Flags().Changed("job") {
		cfg.Job = screenJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = screenJobURL
	}
	if cmd.Flags().Changed("vocab") {
		cfg.Vocabulary = screenVocab
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = screenAPIKey
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = screenUseBrowser
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = screenDatabaseURL
	}

	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	// Persistence only happens when asked for, and then it needs a URL.
	databaseURL := ""
	if screenSave {
		databaseURL = cfg.DatabaseURL
		if databaseURL == "" {
			databaseURL = os.Getenv("DATABASE_URL")
		}
		if databaseURL == "" {
			return fmt.Errorf("--save requires a database URL (set DATABASE_URL or use --db-url)")
		}
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	result, err := pipeline.Run(ctx, pipeline.RunOptions{
		ResumesPath:    screenInput,
		JobPath:        cfg.Job,
		JobURL:         cfg.JobURL,
		VocabPath:      cfg.Vocabulary,
		NERMode:        screenNER,
		APIKey:         apiKey,
		NERModel:       cfg.NERModel,
		NERTimeout:     cfg.NERTimeout(),
		ExperienceMode: cfg.ExperienceMode,
		Weights:        cfg.Weights,
		Concurrency:    cfg.Concurrency,
		UseBrowser:     cfg.UseBrowser,
		Verbose:        cfg.Verbose,
		ReportPath:     screenOutput,
		CSVPath:        screenCSV,
		DatabaseURL:    databaseURL,
		Log:            log,
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully screened %d candidates\n", len(result.Report.Candidates))

	return nil
}

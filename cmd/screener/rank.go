package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/screenware/resume-screener/internal/export"
	"github.com/screenware/resume-screener/internal/ingestion"
	"github.com/screenware/resume-screener/internal/observability"
	"github.com/screenware/resume-screener/internal/ranking"
	"github.com/screenware/resume-screener/internal/schemas"
	"github.com/screenware/resume-screener/internal/scoring"
	"github.com/screenware/resume-screener/internal/store"
	"github.com/screenware/resume-screener/internal/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score and rank candidate profiles against a job requirement",
	Long: `Scores each candidate profile across the weighted dimensions (skills,
experience, education, certifications) and produces a deterministic 1-based
ranking with pool analytics. The job requirement comes from a JSON file or is
built from a job posting URL.`,
	RunE: runRank,
}

var (
	rankProfiles    string
	rankJob         string
	rankJobURL      string
	rankWeights     string
	rankOutput      string
	rankCSV         string
	rankSave        bool
	rankDatabaseURL string
	rankUseBrowser  bool
	rankValidate    bool
)

func init() {
	rankCmd.Flags().StringVarP(&rankProfiles, "profiles", "p", "", "Path to candidate profiles JSON produced by parse (required)")
	rankCmd.Flags().StringVarP(&rankJob, "job", "j", "", "Path to job requirement JSON file (mutually exclusive with --job-url)")
	rankCmd.Flags().StringVar(&rankJobURL, "job-url", "", "URL to fetch the job posting from (mutually exclusive with --job)")
	rankCmd.Flags().StringVar(&rankWeights, "weights", "", "Path to scoring weights JSON file (overrides job and config weights)")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Path to output screening report JSON (stdout if no output flags are given)")
	rankCmd.Flags().StringVar(&rankCSV, "csv", "", "Path to output ranked candidates CSV")
	rankCmd.Flags().BoolVar(&rankSave, "save", false, "Persist the screening run to Postgres")
	rankCmd.Flags().StringVar(&rankDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	rankCmd.Flags().BoolVar(&rankUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	rankCmd.Flags().BoolVar(&rankValidate, "validate", false, "Validate the report against its JSON schema after writing")

	if err := rankCmd.MarkFlagRequired("profiles"); err != nil {
		panic(fmt.Sprintf("failed to mark profiles flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
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
		cfg.Job = rankJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = rankJobURL
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = rankUseBrowser
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = rankDatabaseURL
	}

	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	profiles, err := loadProfiles(rankProfiles)
	if err != nil {
		return err
	}

	var job *types.JobRequirement
	if cfg.Job != "" {
		job, err = ingestion.LoadJob(cfg.Job)
		if err != nil {
			return fmt.Errorf("failed to load job requirement: %w", err)
		}
	} else {
		cleanedText, _, err := ingestion.FetchJobPosting(ctx, cfg.JobURL, cfg.UseBrowser, log)
		if err != nil {
			return fmt.Errorf("failed to fetch job posting: %w", err)
		}
		job = ingestion.JobFromPosting("", cleanedText)
	}

	weights, err := resolveWeights(cfg.Weights, job.Weights, rankWeights)
	if err != nil {
		return fmt.Errorf("invalid scoring weights: %w", err)
	}

	engine, err := scoring.NewEngine(weights)
	if err != nil {
		return fmt.Errorf("failed to create scoring engine: %w", err)
	}

	coordinator := ranking.NewCoordinator(engine, cfg.Concurrency, log)
	ranked, err := coordinator.Rank(ctx, profiles, job)
	if err != nil {
		return err
	}

	report := export.NewReport(job, ranked)

	// No output flags: stream the report JSON to stdout.
	if rankOutput == "" && rankCSV == "" {
		return export.JSON(cmd.OutOrStdout(), report)
	}

	if rankOutput != "" {
		if err := export.WriteJSONFile(rankOutput, report); err != nil {
			return err
		}
		if rankValidate {
			validateReport(rankOutput)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Report: %s\n", rankOutput)
	}
	if rankCSV != "" {
		if err := export.WriteCSVFile(rankCSV, ranked); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "CSV: %s\n", rankCSV)
	}

	if rankSave {
		runID, err := saveRun(ctx, cfg.DatabaseURL, job, ranked, report)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Saved screening run: %s\n", runID)
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintRankedCandidates(ranked)
		printer.PrintSummary(&report.Summary)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully ranked %d candidates\n", len(ranked))

	return nil
}

func loadProfiles(path string) ([]*types.CandidateProfile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles file %s: %w", path, err)
	}
	var profiles []*types.CandidateProfile
	if err := json.Unmarshal(content, &profiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profiles JSON: %w", err)
	}
	return profiles, nil
}

// resolveWeights picks the effective weight set. The most specific source
// wins whole: weights file, then the job's weights, then config, then the
// built-in defaults.
func resolveWeights(configWeights, jobWeights map[string]float64, weightsPath string) (scoring.Weights, error) {
	if weightsPath != "" {
		content, err := os.ReadFile(weightsPath)
		if err != nil {
			return scoring.Weights{}, fmt.Errorf("failed to read weights file %s: %w", weightsPath, err)
		}
		var m map[string]float64
		if err := json.Unmarshal(content, &m); err != nil {
			return scoring.Weights{}, fmt.Errorf("failed to unmarshal weights JSON: %w", err)
		}
		return scoring.WeightsFromMap(m)
	}
	if len(jobWeights) > 0 {
		return scoring.WeightsFromMap(jobWeights)
	}
	if len(configWeights) > 0 {
		return scoring.WeightsFromMap(configWeights)
	}
	return scoring.DefaultWeights(), nil
}

// validateReport checks a written report against its schema. Validation is
// a safety net over an artifact we just produced, so failures warn instead
// of aborting.
func validateReport(path string) {
	schemaPath := schemas.ResolveSchemaPath("schemas/screening_report.schema.json")
	if schemaPath == "" {
		return
	}
	if err := schemas.ValidateJSON(schemaPath, path); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Output validation failed: %v\n", err)
	}
}

func saveRun(ctx context.Context, databaseURL string, job *types.JobRequirement, ranked []types.ScoredCandidate, report export.Report) (string, error) {
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return "", fmt.Errorf("--save requires a database URL (set DATABASE_URL or use --db-url)")
	}

	st, err := store.Connect(ctx, databaseURL)
	if err != nil {
		return "", fmt.Errorf("failed to connect to database: %w", err)
	}
	defer st.Close()

	if err := st.EnsureSchema(ctx); err != nil {
		return "", fmt.Errorf("failed to ensure schema: %w", err)
	}

	runID, err := st.SaveRun(ctx, job, ranked, report.Summary)
	if err != nil {
		return "", fmt.Errorf("failed to save screening run: %w", err)
	}
	return runID.String(), nil
}

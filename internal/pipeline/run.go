// Package pipeline provides the high-level orchestration for a screening
// run: ingest the job requirement, extract candidate profiles from resume
// text, score and rank the pool, and assemble the report.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/screenware/resume-screener/internal/export"
	"github.com/screenware/resume-screener/internal/extract"
	"github.com/screenware/resume-screener/internal/ingestion"
	"github.com/screenware/resume-screener/internal/logger"
	"github.com/screenware/resume-screener/internal/ner"
	"github.com/screenware/resume-screener/internal/observability"
	"github.com/screenware/resume-screener/internal/ranking"
	"github.com/screenware/resume-screener/internal/scoring"
	"github.com/screenware/resume-screener/internal/store"
	"github.com/screenware/resume-screener/internal/types"
	"github.com/screenware/resume-screener/internal/vocab"
)

// NER modes accepted by the pipeline.
const (
	NEROff    = "off"
	NERGemini = "gemini"
)

// RunOptions holds configuration for running a screening end-to-end.
type RunOptions struct {
	ResumesPath    string // a .txt resume file or a directory of them
	JobPath        string // job requirement JSON file (mutually exclusive with JobURL)
	JobURL         string // job posting URL to fetch and convert
	VocabPath      string // vocabulary override; empty uses the built-in tables
	NERMode        string // "off" or "gemini"
	APIKey         string // Gemini key, required when NERMode is "gemini"
	NERModel       string
	NERTimeout     time.Duration
	ExperienceMode string
	Weights        map[string]float64 // configured weights; the job's own weights win
	Concurrency    int
	UseBrowser     bool
	Verbose        bool
	ReportPath     string // JSON report destination; empty skips the file
	CSVPath        string // CSV export destination; empty skips the file
	DatabaseURL    string // non-empty persists the run to PostgreSQL
	Log            *zap.Logger
}

// RunResult collects what a screening run produced.
type RunResult struct {
	Job      *types.JobRequirement
	Profiles []*types.CandidateProfile
	Report   export.Report
	RunID    uuid.UUID // uuid.Nil when the run was not persisted
}

// Run orchestrates the full screening pipeline.
func Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	log := logger.Or(opts.Log)
	printer := observability.NewPrinter(os.Stdout)

	// Step 1: Ingest the job requirement (from URL or file)
	var job *types.JobRequirement
	if opts.JobURL != "" {
		fmt.Printf("Step 1/5: Ingesting job posting from URL: %s...\n", opts.JobURL)
		cleanedText, _, err := ingestion.FetchJobPosting(ctx, opts.JobURL, opts.UseBrowser, log)
		if err != nil {
			return nil, fmt.Errorf("job ingestion from URL failed: %w", err)
		}
		job = ingestion.JobFromPosting("", cleanedText)
	} else {
		fmt.Printf("Step 1/5: Loading job requirement from file: %s...\n", opts.JobPath)
		var err error
		job, err = ingestion.LoadJob(opts.JobPath)
		if err != nil {
			return nil, fmt.Errorf("job loading failed: %w", err)
		}
	}

	// Step 2: Load resume text
	fmt.Printf("Step 2/5: Loading resumes from: %s...\n", opts.ResumesPath)
	resumes, err := loadResumes(opts.ResumesPath)
	if err != nil {
		return nil, fmt.Errorf("loading resumes failed: %w", err)
	}
	fmt.Printf("Loaded %d resumes\n", len(resumes))

	// Step 3: Extract candidate profiles in parallel
	fmt.Printf("Step 3/5: Extracting candidate profiles...\n")
	extractor, closeRecognizer, err := buildExtractor(ctx, opts, log)
	if err != nil {
		return nil, err
	}
	defer closeRecognizer()

	profiles := make([]*types.CandidateProfile, len(resumes))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrencyOrDefault(opts.Concurrency))
	for i, resume := range resumes {
		i, resume := i, resume
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			profiles[i] = extractor.Parse(gCtx, resume.Text, filepath.Base(resume.Path))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extracting profiles failed: %w", err)
	}
	if opts.Verbose {
		for _, profile := range profiles {
			printer.PrintCandidateProfile(profile)
		}
	}

	// Step 4: Score and rank the pool
	fmt.Printf("Step 4/5: Scoring and ranking %d candidates...\n", len(profiles))
	weights, err := effectiveWeights(job, opts.Weights)
	if err != nil {
		return nil, err
	}
	engine, err := scoring.NewEngine(weights)
	if err != nil {
		return nil, err
	}
	coordinator := ranking.NewCoordinator(engine, opts.Concurrency, log)
	ranked, err := coordinator.Rank(ctx, profiles, job)
	if err != nil {
		return nil, fmt.Errorf("ranking failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintRankedCandidates(ranked)
	}

	// Step 5: Assemble the report and write the configured sinks
	fmt.Printf("Step 5/5: Building screening report...\n")
	report := export.NewReport(job, ranked)
	result := &RunResult{
		Job:      job,
		Profiles: profiles,
		Report:   report,
	}

	if opts.ReportPath != "" {
		if err := export.WriteJSONFile(opts.ReportPath, report); err != nil {
			return nil, fmt.Errorf("writing report failed: %w", err)
		}
		fmt.Printf("Report: %s\n", opts.ReportPath)
	}
	if opts.CSVPath != "" {
		if err := export.WriteCSVFile(opts.CSVPath, ranked); err != nil {
			return nil, fmt.Errorf("writing csv failed: %w", err)
		}
		fmt.Printf("CSV: %s\n", opts.CSVPath)
	}

	if opts.DatabaseURL != "" {
		runID, err := persistRun(ctx, opts.DatabaseURL, job, ranked, report)
		if err != nil {
			// Persistence is best-effort here; the report already exists.
			fmt.Printf("Warning: Failed to persist screening run: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
		} else {
			result.RunID = runID
			fmt.Printf("Screening run: %s\n", runID)
		}
	}

	printer.PrintSummary(&report.Summary)

	return result, nil
}

// loadResumes accepts a single .txt file or a directory of them.
func loadResumes(path string) ([]ingestion.Resume, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat input %s: %w", path, err)
	}
	if info.IsDir() {
		return ingestion.LoadResumeDir(path)
	}
	resume, err := ingestion.LoadResumeFile(path)
	if err != nil {
		return nil, err
	}
	return []ingestion.Resume{*resume}, nil
}

// buildExtractor wires the vocabulary and entity recognizer into an
// extractor. The returned closer releases the recognizer, if any.
func buildExtractor(ctx context.Context, opts RunOptions, log *zap.Logger) (*extract.Extractor, func(), error) {
	vocabulary := vocab.Default()
	if opts.VocabPath != "" {
		loaded, err := vocab.Load(opts.VocabPath)
		if err != nil {
			return nil, nil, fmt.Errorf("loading vocabulary failed: %w", err)
		}
		vocabulary = loaded
	}

	var recognizer ner.Recognizer
	closer := func() {}

	switch opts.NERMode {
	case "", NEROff:
	case NERGemini:
		apiKey := opts.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			return nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable or an API key is required for Gemini entity recognition")
		}
		gemini, err := ner.NewGemini(ctx, &ner.GeminiConfig{
			Model:   opts.NERModel,
			Timeout: opts.NERTimeout,
		}, apiKey)
		if err != nil {
			return nil, nil, fmt.Errorf("creating entity recognizer failed: %w", err)
		}
		recognizer = gemini
		closer = func() { _ = gemini.Close() }
	default:
		return nil, nil, fmt.Errorf("unknown NER mode %q", opts.NERMode)
	}

	extractor := extract.New(vocabulary, recognizer, extract.ExperienceMode(opts.ExperienceMode), log)
	return extractor, closer, nil
}

// effectiveWeights picks the weight set for a run. The job's own weights
// win over configured ones; both fall back to the defaults.
func effectiveWeights(job *types.JobRequirement, configured map[string]float64) (scoring.Weights, error) {
	if job != nil && len(job.Weights) > 0 {
		return scoring.WeightsFromMap(job.Weights)
	}
	if len(configured) > 0 {
		return scoring.WeightsFromMap(configured)
	}
	return scoring.DefaultWeights(), nil
}

func persistRun(ctx context.Context, databaseURL string, job *types.JobRequirement, ranked []types.ScoredCandidate, report export.Report) (uuid.UUID, error) {
	st, err := store.Connect(ctx, databaseURL)
	if err != nil {
		return uuid.Nil, err
	}
	defer st.Close()

	if err := st.EnsureSchema(ctx); err != nil {
		return uuid.Nil, err
	}
	return st.SaveRun(ctx, job, ranked, report.Summary)
}

func concurrencyOrDefault(n int) int {
	if n <= 0 {
		return ranking.DefaultConcurrency
	}
	return n
}

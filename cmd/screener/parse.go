package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/screenware/resume-screener/internal/extract"
	"github.com/screenware/resume-screener/internal/ingestion"
	"github.com/screenware/resume-screener/internal/ner"
	"github.com/screenware/resume-screener/internal/observability"
	"github.com/screenware/resume-screener/internal/ranking"
	"github.com/screenware/resume-screener/internal/types"
	"github.com/screenware/resume-screener/internal/vocab"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Extract structured candidate profiles from resume text files",
	Long:  "Parse one resume text file, or every .txt file in a directory, into structured candidate profiles. Extraction is heuristic and vocabulary-driven; entity recognition is optional and degrades to heuristics when unavailable.",
	RunE:  runParse,
}

var (
	parseInput   string
	parseVocab   string
	parseNERMode string
	parseOutput  string
	parseAPIKey  string
)

func init() {
	parseCmd.Flags().StringVarP(&parseInput, "in", "i", "", "Path to a resume .txt file or a directory of resumes (required)")
	parseCmd.Flags().StringVar(&parseVocab, "vocab", "", "Path to vocabulary JSON file (defaults to the built-in vocabulary)")
	parseCmd.Flags().StringVar(&parseNERMode, "ner", "off", "Entity recognition backend: gemini or off")
	parseCmd.Flags().StringVarP(&parseOutput, "out", "o", "", "Path to output profiles JSON file (stdout if omitted)")
	parseCmd.Flags().StringVar(&parseAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY env var)")

	if err := parseCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
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

	// Vocabulary: flag wins over config; otherwise the built-in tables.
	vocabPath := parseVocab
	if vocabPath == "" {
		vocabPath = cfg.Vocabulary
	}
	vocabulary := vocab.Default()
	if vocabPath != "" {
		vocabulary, err = vocab.Load(vocabPath)
		if err != nil {
			return fmt.Errorf("failed to load vocabulary: %w", err)
		}
	}

	// Entity recognition backend.
	var recognizer ner.Recognizer
	switch parseNERMode {
	case "off":
	case "gemini":
		apiKey := parseAPIKey
		if apiKey == "" {
			apiKey = cfg.APIKey
		}
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			return fmt.Errorf("--ner gemini requires an API key (set GEMINI_API_KEY or use --api-key)")
		}
		gemini, err := ner.NewGemini(ctx, &ner.GeminiConfig{Model: cfg.NERModel, Timeout: cfg.NERTimeout()}, apiKey)
		if err != nil {
			return fmt.Errorf("failed to create recognizer: %w", err)
		}
		defer func() { _ = gemini.Close() }()
		recognizer = gemini
	default:
		return fmt.Errorf("unknown --ner mode %q (expected gemini or off)", parseNERMode)
	}

	extractor := extract.New(vocabulary, recognizer, extract.ExperienceMode(cfg.ExperienceMode), log)

	resumes, err := loadResumes(parseInput)
	if err != nil {
		return err
	}

	// Parse in parallel; profile order follows input order.
	profiles := make([]*types.CandidateProfile, len(resumes))
	g, gCtx := errgroup.WithContext(ctx)
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = ranking.DefaultConcurrency
	}
	g.SetLimit(concurrency)
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
		return fmt.Errorf("parsing resumes: %w", err)
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		for _, profile := range profiles {
			printer.PrintCandidateProfile(profile)
		}
	}

	jsonBytes, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profiles to JSON: %w", err)
	}

	if parseOutput == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return nil
	}

	if err := writeArtifact(parseOutput, jsonBytes); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully parsed %d resumes\n", len(profiles))
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", parseOutput)

	return nil
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

// writeArtifact writes a JSON artifact, creating the parent directory first.
func writeArtifact(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/screenware/resume-screener/internal/ingestion"
)

var ingestJobCmd = &cobra.Command{
	Use:   "ingest-job",
	Short: "Build a job requirement from a posting text file or URL",
	Long:  "Ingest a job posting from either a text file or URL, clean the content, and produce a job requirement JSON skeleton whose description is the cleaned posting text. Skills and experience bounds can then be filled in by hand.",
	RunE:  runIngestJob,
}

var (
	ingestTextFile string
	ingestURL      string
	ingestTitle    string
	ingestBrowser  bool
	ingestOutput   string
	ingestDumpDir  string
)

func init() {
	ingestJobCmd.Flags().StringVarP(&ingestTextFile, "file", "f", "", "Path to text file containing the job posting")
	ingestJobCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL to fetch the job posting from")
	ingestJobCmd.Flags().StringVar(&ingestTitle, "title", "", "Job title to record on the job requirement")
	ingestJobCmd.Flags().BoolVar(&ingestBrowser, "browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	ingestJobCmd.Flags().StringVarP(&ingestOutput, "out", "o", "", "Path to output job requirement JSON (stdout if omitted)")
	ingestJobCmd.Flags().StringVar(&ingestDumpDir, "dump-text", "", "Directory to also write the cleaned posting text and fetch metadata into")

	rootCmd.AddCommand(ingestJobCmd)
}

func runIngestJob(cmd *cobra.Command, _ []string) error {
	// Validate mutually exclusive flags
	if ingestTextFile == "" && ingestURL == "" {
		return fmt.Errorf("either --file or --url must be provided")
	}
	if ingestTextFile != "" && ingestURL != "" {
		return fmt.Errorf("--file and --url are mutually exclusive; provide only one")
	}

	cfg, err := loadRuntimeConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var cleanedText string
	var metadata *ingestion.Metadata

	if ingestTextFile != "" {
		cleanedText, metadata, err = ingestion.IngestFromFile(ingestTextFile)
		if err != nil {
			return fmt.Errorf("failed to ingest from file: %w", err)
		}
	} else {
		cleanedText, metadata, err = ingestion.FetchJobPosting(context.Background(), ingestURL, ingestBrowser, log)
		if err != nil {
			return fmt.Errorf("failed to ingest from URL: %w", err)
		}
	}

	if ingestDumpDir != "" {
		if err := ingestion.WriteOutput(ingestDumpDir, cleanedText, metadata); err != nil {
			return fmt.Errorf("failed to write cleaned text: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Cleaned text: %s/job_posting.cleaned.txt\n", ingestDumpDir)
		_, _ = fmt.Fprintf(os.Stdout, "Metadata: %s/job_posting.meta.json\n", ingestDumpDir)
	}

	job := ingestion.JobFromPosting(ingestTitle, cleanedText)
	jsonBytes, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal job requirement: %w", err)
	}

	if ingestOutput == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return nil
	}

	if err := writeArtifact(ingestOutput, jsonBytes); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully ingested job posting\n")
	_, _ = fmt.Fprintf(os.Stdout, "Job requirement: %s\n", ingestOutput)

	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/screenware/resume-screener/internal/analytics"
	"github.com/screenware/resume-screener/internal/export"
	"github.com/screenware/resume-screener/internal/observability"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize a screening report",
	Long:  "Reads a screening report JSON produced by rank and renders pool analytics: score statistics, most common skills, and the experience level distribution.",
	RunE:  runStats,
}

var (
	statsInput string
	statsJSON  bool
)

func init() {
	statsCmd.Flags().StringVarP(&statsInput, "in", "i", "", "Path to screening report JSON file (required)")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print the summary as JSON instead of console boxes")

	if err := statsCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	content, err := os.ReadFile(statsInput)
	if err != nil {
		return fmt.Errorf("failed to read report file %s: %w", statsInput, err)
	}

	var report export.Report
	if err := json.Unmarshal(content, &report); err != nil {
		return fmt.Errorf("failed to unmarshal report JSON: %w", err)
	}

	// Recompute from the candidates rather than trusting the stored summary.
	summary := analytics.Summarize(report.Candidates)

	if statsJSON {
		jsonBytes, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary to JSON: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return nil
	}

	out := cmd.OutOrStdout()
	if report.JobTitle != "" {
		_, _ = fmt.Fprintf(out, "Job: %s\n", report.JobTitle)
	}
	printer := observability.NewPrinter(out)
	printer.PrintRankedCandidates(report.Candidates)
	printer.PrintSummary(&summary)

	return nil
}

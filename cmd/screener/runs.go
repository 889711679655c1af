package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/screenware/resume-screener/internal/observability"
	"github.com/screenware/resume-screener/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect screening runs saved to Postgres",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent screening runs",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a saved screening run with its ranked candidates",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a saved screening run and its candidates",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

var (
	runsDatabaseURL string
	runsListLimit   int
)

func init() {
	runsCmd.PersistentFlags().StringVar(&runsDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	runsListCmd.Flags().IntVar(&runsListLimit, "limit", 20, "Maximum number of runs to list")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsDeleteCmd)
	rootCmd.AddCommand(runsCmd)
}

// connectStore opens the store using the flag, config, or environment URL.
func connectStore(ctx context.Context) (*store.Store, error) {
	databaseURL := runsDatabaseURL
	if databaseURL == "" {
		cfg, err := loadRuntimeConfig()
		if err != nil {
			return nil, err
		}
		databaseURL = cfg.DatabaseURL
	}
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return nil, fmt.Errorf("a database URL is required (set DATABASE_URL or use --db-url)")
	}

	st, err := store.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return st, nil
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	st, err := connectStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(ctx, runsListLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		_, _ = fmt.Fprintln(out, "No screening runs found")
		return nil
	}

	for _, run := range runs {
		title := run.JobTitle
		if title == "" {
			title = "(untitled)"
		}
		_, _ = fmt.Fprintf(out, "%s  %s  %-30s  %d candidates\n",
			run.ID, run.CreatedAt.Format("2006-01-02 15:04"), title, run.Candidates)
	}

	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	runID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid run id: %w", err)
	}

	st, err := connectStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.GetRun(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("screening run not found: %s", runID)
	}

	candidates, err := st.RunCandidates(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to load run candidates: %w", err)
	}

	out := cmd.OutOrStdout()
	if run.JobTitle != "" {
		_, _ = fmt.Fprintf(out, "Job: %s\n", run.JobTitle)
	}
	_, _ = fmt.Fprintf(out, "Created: %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))

	printer := observability.NewPrinter(out)
	printer.PrintRankedCandidates(candidates)
	printer.PrintSummary(&run.Summary)

	return nil
}

func runRunsDelete(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	runID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid run id: %w", err)
	}

	st, err := connectStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteRun(ctx, runID); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Deleted screening run: %s\n", runID)

	return nil
}

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeReportFixture writes a minimal screening report for the stats command.
func writeReportFixture(t *testing.T) string {
	t.Helper()
	reportJSON := `{
		"job_title": "Backend Engineer",
		"generated_at": "2025-01-15T10:00:00Z",
		"summary": {"total_candidates": 0},
		"candidates": [
			{"id": "1", "name": "Priya Sharma", "email": "priya@example.com", "skills": ["python", "go"],
			 "years_of_experience": 6, "rank": 1, "total_score": 82.75, "skills_score": 100,
			 "experience_score": 100, "education_score": 85, "certifications_score": 0},
			{"id": "2", "name": "Mark Reyes", "email": "mark@example.com", "skills": ["java"],
			 "years_of_experience": 1, "rank": 2, "total_score": 40, "skills_score": 50,
			 "experience_score": 33.33, "education_score": 20, "certifications_score": 0}
		]
	}`
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte(reportJSON), 0644))
	return path
}

func TestStatsCommand_MissingInputFlag(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "stats")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "required")
}

func TestStatsCommand_FileNotFound(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "stats", "--in", "/nonexistent/report.json")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "failed to read report file")
}

func TestStatsCommand_PrintsSummary(t *testing.T) {
	binaryPath := getBinaryPath(t)

	reportPath := writeReportFixture(t)

	cmd := exec.Command(binaryPath, "stats", "--in", reportPath)
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "stats should succeed: %s", string(output))
	text := string(output)
	assert.Contains(t, text, "Job: Backend Engineer")
	assert.Contains(t, text, "SCREENING SUMMARY")
	assert.Contains(t, text, "Priya Sharma")
}

// Stats recomputes the summary from the stored candidates, so a stale
// summary block in the report must not leak through.
func TestStatsCommand_JSONOutput(t *testing.T) {
	binaryPath := getBinaryPath(t)

	reportPath := writeReportFixture(t)

	cmd := exec.Command(binaryPath, "stats", "--in", reportPath, "--json")
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "stats should succeed: %s", string(output))
	text := string(output)
	assert.Contains(t, text, `"total_candidates": 2`)
	assert.Contains(t, text, `"max_score": 82.75`)
}

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenCommand_MissingInputFlag(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "screen", "--job", "job.json")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "required")
}

func TestScreenCommand_MissingJobSource(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()
	resumePath := filepath.Join(tmpDir, "resume.txt")
	require.NoError(t, os.WriteFile(resumePath, []byte("Jane Doe"), 0644))

	cmd := exec.Command(binaryPath, "screen", "--in", resumePath)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "either --job or --job-url must be provided")
}

func TestScreenCommand_JobSourcesMutuallyExclusive(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()
	resumePath := filepath.Join(tmpDir, "resume.txt")
	require.NoError(t, os.WriteFile(resumePath, []byte("Jane Doe"), 0644))

	cmd := exec.Command(binaryPath, "screen",
		"--in", resumePath,
		"--job", "job.json",
		"--job-url", "https://example.com/posting")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "mutually exclusive")
}

func TestScreenCommand_SaveRequiresDatabaseURL(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()
	resumePath := filepath.Join(tmpDir, "resume.txt")
	require.NoError(t, os.WriteFile(resumePath, []byte("Jane Doe"), 0644))
	jobPath := filepath.Join(tmpDir, "job.json")
	require.NoError(t, os.WriteFile(jobPath, []byte(`{"description": "role"}`), 0644))

	cmd := exec.Command(binaryPath, "screen", "--in", resumePath, "--job", jobPath, "--save")
	cmd.Dir = tmpDir
	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "DATABASE_URL=") {
			env = append(env, e)
		}
	}
	cmd.Env = env

	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "--save requires a database URL")
}

func TestScreenCommand_EndToEnd(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()

	resumesDir := filepath.Join(tmpDir, "resumes")
	require.NoError(t, os.Mkdir(resumesDir, 0755))
	resume := "Priya Sharma\npriya@example.com\n\nSKILLS\nPython, AWS, Docker\n"
	require.NoError(t, os.WriteFile(filepath.Join(resumesDir, "priya.txt"), []byte(resume), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(resumesDir, "mark.txt"), []byte("Mark Reyes\n\nSKILLS\nExcel\n"), 0644))

	jobJSON := `{
		"title": "Backend Engineer",
		"description": "Build python services on aws with docker",
		"required_skills": ["python", "aws", "docker"]
	}`
	jobPath := filepath.Join(tmpDir, "job.json")
	require.NoError(t, os.WriteFile(jobPath, []byte(jobJSON), 0644))

	reportPath := filepath.Join(tmpDir, "report.json")

	cmd := exec.Command(binaryPath, "screen",
		"--in", resumesDir,
		"--job", jobPath,
		"--out", reportPath)
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "screen should succeed: %s", string(output))
	text := string(output)
	assert.Contains(t, text, "Step 1/5: Loading job requirement")
	assert.Contains(t, text, "Step 5/5: Building screening report")
	assert.Contains(t, text, "Successfully screened 2 candidates")

	content, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Priya Sharma")
}

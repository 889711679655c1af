package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestJobCommand_MissingSource(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "ingest-job")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "either --file or --url must be provided")
}

func TestIngestJobCommand_BothSourcesProvided(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "posting.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("posting"), 0644))

	cmd := exec.Command(binaryPath, "ingest-job", "--file", testFile, "--url", "https://example.com")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "mutually exclusive")
}

func TestIngestJobCommand_FileNotFound(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "ingest-job", "--file", "/nonexistent/posting.txt")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "file not found")
}

func TestIngestJobCommand_PrintsJobJSON(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "posting.txt")
	posting := "We are hiring a Backend Engineer.\n\nYou will build Go services on AWS.\n"
	require.NoError(t, os.WriteFile(testFile, []byte(posting), 0644))

	cmd := exec.Command(binaryPath, "ingest-job", "--file", testFile, "--title", "Backend Engineer")
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "ingest-job should succeed: %s", string(output))
	text := string(output)
	assert.Contains(t, text, `"title": "Backend Engineer"`)
	assert.Contains(t, text, "Go services on AWS")
}

func TestIngestJobCommand_WritesJobFile(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "posting.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("Senior engineer role with Python."), 0644))

	outPath := filepath.Join(tmpDir, "out", "job.json")

	cmd := exec.Command(binaryPath, "ingest-job", "--file", testFile, "--out", outPath)
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "ingest-job should succeed: %s", string(output))
	assert.Contains(t, string(output), "Successfully ingested job posting")

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Senior engineer role with Python.")
}

func TestIngestJobCommand_DumpsCleanedText(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "posting.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("Backend   role\n\n\n\nwith    Go."), 0644))

	dumpDir := filepath.Join(tmpDir, "dump")

	cmd := exec.Command(binaryPath, "ingest-job", "--file", testFile, "--dump-text", dumpDir)
	_, err := cmd.CombinedOutput()
	require.NoError(t, err)

	cleaned, err := os.ReadFile(filepath.Join(dumpDir, "job_posting.cleaned.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(cleaned), "Backend role")

	meta, err := os.ReadFile(filepath.Join(dumpDir, "job_posting.meta.json"))
	require.NoError(t, err)
	assert.Contains(t, string(meta), "hash")
	assert.Contains(t, string(meta), "timestamp")
}

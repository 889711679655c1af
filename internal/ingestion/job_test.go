package ingestion

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJobFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadJob_Valid(t *testing.T) {
	path := writeJobFile(t, `{
		"title": "Backend Engineer",
		"description": "Go services and PostgreSQL",
		"required_skills": ["Go", "Postgresql"],
		"min_experience_years": 2,
		"max_experience_years": 8,
		"weights": {"skills": 0.5, "experience": 0.2, "education": 0.2, "certifications": 0.1}
	}`)

	job, err := LoadJob(path)
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", job.Title)
	assert.Equal(t, []string{"Go", "Postgresql"}, job.RequiredSkills)
	assert.Equal(t, 2, job.MinExperienceYears)
	assert.Equal(t, 8, job.MaxExperienceYears)
	assert.InDelta(t, 0.5, job.Weights["skills"], 1e-9)
}

func TestLoadJob_DescriptionOnly(t *testing.T) {
	path := writeJobFile(t, `{"description": "Any engineer welcome"}`)

	job, err := LoadJob(path)
	require.NoError(t, err)
	assert.Equal(t, "Any engineer welcome", job.Description)
	assert.Empty(t, job.RequiredSkills)
}

func TestLoadJob_FileNotFound(t *testing.T) {
	job, err := LoadJob("/nonexistent/job.json")
	assert.Error(t, err)
	assert.Nil(t, job)
	assert.Contains(t, err.Error(), "job file not found")
}

func TestLoadJob_MalformedJSON(t *testing.T) {
	path := writeJobFile(t, `{"description": "broken"`)

	_, err := LoadJob(path)
	assert.Error(t, err)
}

func TestLoadJob_SchemaViolation(t *testing.T) {
	// "urgency" is not a recognized scoring dimension.
	path := writeJobFile(t, `{
		"description": "Go services",
		"weights": {"urgency": 1.0}
	}`)

	_, err := LoadJob(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation")
}

func TestLoadJob_InvertedExperienceBounds(t *testing.T) {
	path := writeJobFile(t, `{
		"description": "Go services",
		"min_experience_years": 6,
		"max_experience_years": 2
	}`)

	_, err := LoadJob(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid job requirement")
}

func TestJobFromPosting(t *testing.T) {
	job := JobFromPosting("Platform Engineer", "We need Kubernetes and Go experience.")

	assert.Equal(t, "Platform Engineer", job.Title)
	assert.Equal(t, "We need Kubernetes and Go experience.", job.Description)
	assert.Empty(t, job.RequiredSkills)
	assert.Zero(t, job.MinExperienceYears)
	assert.Zero(t, job.MaxExperienceYears)
}

func TestJobFromPosting_WrittenSkeletonLoads(t *testing.T) {
	job := JobFromPosting("Platform Engineer", "We need Kubernetes and Go experience.")

	data, err := json.Marshal(job)
	require.NoError(t, err)
	path := writeJobFile(t, string(data))

	loaded, err := LoadJob(path)
	require.NoError(t, err)
	assert.Equal(t, job.Title, loaded.Title)
	assert.Equal(t, job.Description, loaded.Description)
}

package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenware/resume-screener/internal/types"
)

func writeScreeningFixtures(t *testing.T) (resumesDir, jobPath string) {
	t.Helper()
	tmpDir := t.TempDir()

	resumesDir = filepath.Join(tmpDir, "resumes")
	require.NoError(t, os.Mkdir(resumesDir, 0755))

	strong := `Priya Sharma
priya.sharma@example.com
(555) 123-4567

EXPERIENCE
Senior Engineer at Initech (2018 - 2024)

SKILLS
Python, AWS, Docker, PostgreSQL

EDUCATION
Master of Science in Computer Science, MIT, 2018

CERTIFICATIONS
AWS Certified Solutions Architect
`
	weak := `Mark Reyes
mark.reyes@example.com

SKILLS
Excel
`
	require.NoError(t, os.WriteFile(filepath.Join(resumesDir, "priya.txt"), []byte(strong), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(resumesDir, "mark.txt"), []byte(weak), 0644))

	jobJSON := `{
		"title": "Backend Engineer",
		"description": "Build python services on aws with docker and postgresql",
		"required_skills": ["python", "aws", "docker"],
		"min_experience_years": 3
	}`
	jobPath = filepath.Join(tmpDir, "job.json")
	require.NoError(t, os.WriteFile(jobPath, []byte(jobJSON), 0644))

	return resumesDir, jobPath
}

func TestRun_EndToEnd(t *testing.T) {
	resumesDir, jobPath := writeScreeningFixtures(t)
	outDir := t.TempDir()
	reportPath := filepath.Join(outDir, "report.json")
	csvPath := filepath.Join(outDir, "ranked.csv")

	result, err := Run(context.Background(), RunOptions{
		ResumesPath: resumesDir,
		JobPath:     jobPath,
		NERMode:     NEROff,
		ReportPath:  reportPath,
		CSVPath:     csvPath,
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Profiles, 2)
	require.Len(t, result.Report.Candidates, 2)

	assert.Equal(t, "Backend Engineer", result.Job.Title)
	assert.Equal(t, uuid.Nil, result.RunID)

	// The stronger skill match must rank first.
	first := result.Report.Candidates[0]
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, "Priya Sharma", first.Name)
	assert.Greater(t, first.TotalScore, result.Report.Candidates[1].TotalScore)

	assert.Equal(t, 2, result.Report.Summary.TotalCandidates)

	reportContent, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(reportContent), "Priya Sharma")

	csvContent, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(csvContent), "Rank,Name,Email")
}

func TestRun_SingleResumeFile(t *testing.T) {
	resumesDir, jobPath := writeScreeningFixtures(t)

	result, err := Run(context.Background(), RunOptions{
		ResumesPath: filepath.Join(resumesDir, "priya.txt"),
		JobPath:     jobPath,
		NERMode:     NEROff,
	})

	require.NoError(t, err)
	require.Len(t, result.Report.Candidates, 1)
	assert.Equal(t, "priya.txt", result.Profiles[0].SourceFile)
}

func TestRun_JobFileMissing(t *testing.T) {
	resumesDir, _ := writeScreeningFixtures(t)

	_, err := Run(context.Background(), RunOptions{
		ResumesPath: resumesDir,
		JobPath:     "/nonexistent/job.json",
		NERMode:     NEROff,
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "job loading failed")
}

func TestRun_ResumesMissing(t *testing.T) {
	_, jobPath := writeScreeningFixtures(t)

	_, err := Run(context.Background(), RunOptions{
		ResumesPath: "/nonexistent/resumes",
		JobPath:     jobPath,
		NERMode:     NEROff,
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "loading resumes failed")
}

func TestRun_UnknownNERMode(t *testing.T) {
	resumesDir, jobPath := writeScreeningFixtures(t)

	_, err := Run(context.Background(), RunOptions{
		ResumesPath: resumesDir,
		JobPath:     jobPath,
		NERMode:     "spacy",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown NER mode")
}

func TestEffectiveWeights_JobWins(t *testing.T) {
	job := &types.JobRequirement{
		Description: "role",
		Weights: map[string]float64{
			"skills":         0.70,
			"experience":     0.10,
			"education":      0.10,
			"certifications": 0.10,
		},
	}
	configured := map[string]float64{
		"skills":         0.25,
		"experience":     0.25,
		"education":      0.25,
		"certifications": 0.25,
	}

	weights, err := effectiveWeights(job, configured)

	require.NoError(t, err)
	assert.InDelta(t, 0.70, weights.Skills, 1e-9)
}

func TestEffectiveWeights_ConfiguredFallback(t *testing.T) {
	job := &types.JobRequirement{Description: "role"}
	configured := map[string]float64{
		"skills":         0.25,
		"experience":     0.25,
		"education":      0.25,
		"certifications": 0.25,
	}

	weights, err := effectiveWeights(job, configured)

	require.NoError(t, err)
	assert.InDelta(t, 0.25, weights.Experience, 1e-9)
}

func TestEffectiveWeights_Defaults(t *testing.T) {
	weights, err := effectiveWeights(&types.JobRequirement{Description: "role"}, nil)

	require.NoError(t, err)
	assert.InDelta(t, 0.40, weights.Skills, 1e-9)
	assert.InDelta(t, 0.15, weights.Certifications, 1e-9)
}

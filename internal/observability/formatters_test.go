package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/screenware/resume-screener/internal/analytics"
	"github.com/screenware/resume-screener/internal/types"
)

func TestPrintCandidateProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := &types.CandidateProfile{
		Name:              "Priya Sharma",
		Email:             "priya@example.com",
		Phone:             "+1-555-0100",
		Skills:            []string{"Go", "Python", "Kubernetes", "Postgresql", "Docker", "Terraform"},
		YearsOfExperience: 6,
		Education: []types.EducationEntry{
			{Degree: "B.Tech Computer Science", Institution: "IIT Bombay"},
		},
		Certifications: []string{"AWS Certified Solutions Architect"},
	}

	p.PrintCandidateProfile(profile)
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED CANDIDATE PROFILE")
	assert.Contains(t, output, "Priya Sharma")
	assert.Contains(t, output, "priya@example.com")
	assert.Contains(t, output, "Go")
	assert.Contains(t, output, "... and 1 more")
	assert.Contains(t, output, "B.Tech Computer Science")
	assert.Contains(t, output, "AWS Certified")
}

func TestPrintCandidateProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCandidateProfile(nil)

	assert.Empty(t, buf.String())
}

func TestPrintRankedCandidates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	candidates := []types.ScoredCandidate{
		{
			CandidateProfile: types.CandidateProfile{
				Name:   "Priya Sharma",
				Skills: []string{"Go", "Kubernetes"},
			},
			ScoreBreakdown: types.ScoreBreakdown{
				SkillsScore:         100,
				ExperienceScore:     85,
				EducationScore:      70,
				CertificationsScore: 50,
				TotalScore:          82.75,
			},
			Rank: 1,
		},
		{
			CandidateProfile: types.CandidateProfile{
				Name:   "Mark Taylor",
				Skills: []string{"Python"},
			},
			ScoreBreakdown: types.ScoreBreakdown{TotalScore: 40},
			Rank:           2,
		},
	}

	p.PrintRankedCandidates(candidates)
	output := buf.String()

	assert.Contains(t, output, "TOP RANKED CANDIDATES")
	assert.Contains(t, output, "#1  Priya Sharma")
	assert.Contains(t, output, "82.75")
	assert.Contains(t, output, "Skills 100.0")
	assert.Contains(t, output, "Go, Kubernetes")
	assert.Contains(t, output, "#2  Mark Taylor")
}

func TestPrintRankedCandidates_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRankedCandidates(nil)

	assert.Empty(t, buf.String())
}

func TestPrintRankedCandidates_LargePool(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	candidates := make([]types.ScoredCandidate, 8)
	for i := range candidates {
		candidates[i].Name = "Candidate"
		candidates[i].Rank = i + 1
	}

	p.PrintRankedCandidates(candidates)
	output := buf.String()

	assert.Contains(t, output, "Total candidates ranked: 8")
	assert.Contains(t, output, "... and 3 more candidates")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	summary := &analytics.Summary{
		TotalCandidates:   4,
		AverageScore:      75,
		MedianScore:       75,
		MaxScore:          90,
		MinScore:          60,
		AverageExperience: 5.75,
		TotalUniqueSkills: 3,
		MostCommonSkills:  []string{"Go", "Python", "Aws"},
		ExperienceLevels: []analytics.LevelCount{
			{Level: analytics.LevelEntry, Count: 1},
			{Level: analytics.LevelJunior, Count: 2},
			{Level: analytics.LevelMid, Count: 1},
			{Level: analytics.LevelSenior, Count: 0},
			{Level: analytics.LevelExpert, Count: 0},
		},
	}

	p.PrintSummary(summary)
	output := buf.String()

	assert.Contains(t, output, "SCREENING SUMMARY")
	assert.Contains(t, output, "Candidates:   4")
	assert.Contains(t, output, "75.00")
	assert.Contains(t, output, "60.00 - 90.00")
	assert.Contains(t, output, "Go")
	assert.Contains(t, output, analytics.LevelJunior)
}

func TestPrintSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSummary(&analytics.Summary{})
	p.PrintSummary(nil)

	assert.Empty(t, buf.String())
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	// Test with a profile containing long text
	profile := &types.CandidateProfile{
		Name: "A Candidate With A Remarkably Long Name That Should Be Truncated To Fit The Box",
	}

	p.PrintCandidateProfile(profile)
	output := buf.String()

	// Should contain box characters
	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
}

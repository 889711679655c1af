// Package export writes screening results to CSV files and JSON reports.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/screenware/resume-screener/internal/analytics"
	"github.com/screenware/resume-screener/internal/types"
)

// csvColumns fixes the export column order. Keys address the flat field
// mapping on ScoredCandidate.
var csvColumns = []struct {
	header string
	key    string
}{
	{"Rank", "rank"},
	{"Name", "name"},
	{"Email", "email"},
	{"Phone", "phone"},
	{"Total Score", "total_score"},
	{"Skills Score", "skills_score"},
	{"Experience Score", "experience_score"},
	{"Education Score", "education_score"},
	{"Certifications Score", "certifications_score"},
	{"Years of Experience", "years_of_experience"},
	{"Skills", "skills"},
	{"Certifications", "certifications"},
}

// Report is the JSON document a screening run produces: the ranked
// candidates plus pool statistics.
type Report struct {
	JobTitle    string                  `json:"job_title"`
	GeneratedAt time.Time               `json:"generated_at"`
	Summary     analytics.Summary       `json:"summary"`
	Candidates  []types.ScoredCandidate `json:"candidates"`
}

// NewReport assembles a report for a ranked batch.
func NewReport(job *types.JobRequirement, candidates []types.ScoredCandidate) Report {
	report := Report{
		GeneratedAt: time.Now().UTC(),
		Summary:     analytics.Summarize(candidates),
		Candidates:  candidates,
	}
	if job != nil {
		report.JobTitle = job.Title
	}
	return report
}

// CSV writes the ranked candidates as CSV, header row first.
func CSV(w io.Writer, candidates []types.ScoredCandidate) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(csvColumns))
	for i, col := range csvColumns {
		header[i] = col.header
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	row := make([]string, len(csvColumns))
	for i := range candidates {
		flat := candidates[i].Flat()
		for j, col := range csvColumns {
			row[j] = flat[col.key]
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the ranked candidates to a CSV file at path.
func WriteCSVFile(path string, candidates []types.ScoredCandidate) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv file: %w", err)
	}
	if err := CSV(f, candidates); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing csv file: %w", err)
	}
	return nil
}

// JSON writes the report as indented JSON.
func JSON(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// WriteJSONFile writes the report to a JSON file at path.
func WriteJSONFile(path string, report Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	if err := JSON(f, report); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report file: %w", err)
	}
	return nil
}

// TimestampedName builds the default export file name for a run, such as
// "candidates_ranked_20240101_150405.csv".
func TimestampedName(ext string, now time.Time) string {
	return fmt.Sprintf("candidates_ranked_%s.%s", now.Format("20060102_150405"), ext)
}

// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/screenware/resume-screener/internal/analytics"
	"github.com/screenware/resume-screener/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens long list renderings to fit the box.
func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}

// PrintCandidateProfile outputs a human-readable summary of one extracted profile.
func (p *Printer) PrintCandidateProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.Name))
	if profile.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", profile.Email))
	}
	if profile.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:    %s\n", profile.Phone))
	}
	sb.WriteString(fmt.Sprintf("Years:    %.1f\n", profile.YearsOfExperience))
	sb.WriteString("\n")

	if len(profile.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(profile.Skills)))
		count := min(len(profile.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills[i]))
		}
		if len(profile.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(profile.Education) > 0 {
		sb.WriteString("Education:\n")
		count := min(len(profile.Education), 3)
		for i := 0; i < count; i++ {
			entry := profile.Education[i]
			line := entry.Degree
			if entry.Institution != "" {
				line += fmt.Sprintf(", %s", entry.Institution)
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", truncate(line, 50)))
		}
		if len(profile.Education) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Education)-3))
		}
		sb.WriteString("\n")
	}

	if len(profile.Certifications) > 0 {
		sb.WriteString("Certifications:\n")
		count := min(len(profile.Certifications), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", truncate(profile.Certifications[i], 50)))
		}
		if len(profile.Certifications) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Certifications)-3))
		}
	}

	p.printBox("EXTRACTED CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedCandidates outputs the top N ranked candidates with score breakdowns.
func (p *Printer) PrintRankedCandidates(candidates []types.ScoredCandidate) {
	if len(candidates) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates ranked: %d\n\n", len(candidates)))

	count := min(len(candidates), maxItemsToShow)
	for i := 0; i < count; i++ {
		candidate := candidates[i]
		name := candidate.Name
		if name == "" {
			name = "(unnamed)"
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", candidate.Rank, truncate(name, 45)))
		sb.WriteString(fmt.Sprintf("    Total: %.2f\n", candidate.TotalScore))
		sb.WriteString(fmt.Sprintf("    Skills %.1f | Exp %.1f | Edu %.1f | Certs %.1f\n",
			candidate.SkillsScore, candidate.ExperienceScore,
			candidate.EducationScore, candidate.CertificationsScore))
		if len(candidate.Skills) > 0 {
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", truncate(strings.Join(candidate.Skills, ", "), 40)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(candidates) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(candidates)-maxItemsToShow))
	}

	p.printBox("TOP RANKED CANDIDATES", sb.String())
}

// PrintSummary outputs pool-level analytics for a completed screening run.
func (p *Printer) PrintSummary(summary *analytics.Summary) {
	if summary == nil || summary.TotalCandidates == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates:   %d\n", summary.TotalCandidates))
	sb.WriteString(fmt.Sprintf("Avg score:    %.2f\n", summary.AverageScore))
	sb.WriteString(fmt.Sprintf("Median score: %.2f\n", summary.MedianScore))
	sb.WriteString(fmt.Sprintf("Score range:  %.2f - %.2f\n", summary.MinScore, summary.MaxScore))
	sb.WriteString(fmt.Sprintf("Avg years:    %.1f\n", summary.AverageExperience))
	sb.WriteString(fmt.Sprintf("Unique skills: %d\n", summary.TotalUniqueSkills))

	if len(summary.MostCommonSkills) > 0 {
		sb.WriteString("\nMost common skills:\n")
		count := min(len(summary.MostCommonSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", summary.MostCommonSkills[i]))
		}
		if len(summary.MostCommonSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(summary.MostCommonSkills)-maxItemsToShow))
		}
	}

	sb.WriteString("\nExperience levels:\n")
	for _, level := range summary.ExperienceLevels {
		sb.WriteString(fmt.Sprintf("  %-20s %d\n", level.Level, level.Count))
	}

	p.printBox("SCREENING SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

package ingestion

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/screenware/resume-screener/internal/schemas"
	"github.com/screenware/resume-screener/internal/types"
)

// JobSchemaRelPath is the job requirement schema location relative to the
// repo root.
const JobSchemaRelPath = "schemas/job_requirement.schema.json"

// LoadJob reads a job requirement JSON file, validates it against the job
// requirement schema when the schema can be resolved, and validates the
// decoded struct.
func LoadJob(path string) (*types.JobRequirement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("job file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	if schemaPath := schemas.ResolveSchemaPath(JobSchemaRelPath); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, data); err != nil {
			return nil, fmt.Errorf("job file failed schema validation: %w", err)
		}
	}

	var job types.JobRequirement
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job JSON: %w", err)
	}

	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job requirement: %w", err)
	}

	return &job, nil
}

// JobFromPosting builds a job requirement from a fetched posting's text.
// Required skills start empty so the written skeleton shows the field for
// hand-editing; scoring falls back on description similarity until it is
// filled in.
func JobFromPosting(title, text string) *types.JobRequirement {
	return &types.JobRequirement{
		Title:          title,
		Description:    text,
		RequiredSkills: []string{},
	}
}

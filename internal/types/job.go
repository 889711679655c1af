// Package types provides type definitions for structured data used throughout the resume-screener system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// JobRequirement describes the position candidates are scored against.
type JobRequirement struct {
	Title              string             `json:"title,omitempty"`
	Description        string             `json:"description" validate:"required"`
	RequiredSkills     []string           `json:"required_skills"`
	MinExperienceYears int                `json:"min_experience_years" validate:"gte=0"`
	MaxExperienceYears int                `json:"max_experience_years" validate:"omitempty,gtefield=MinExperienceYears"`
	Weights            map[string]float64 `json:"weights,omitempty"`
}

// Validate validates the JobRequirement using the validator.
func (j *JobRequirement) Validate() error {
	validate := validator.New()
	return validate.Struct(j)
}

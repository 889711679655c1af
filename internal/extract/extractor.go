// Package extract turns raw resume text into a structured candidate
// profile. Extraction is heuristic and never fails: empty or malformed
// input produces a profile with empty fields, and a failing entity
// recognizer downgrades extraction to the deterministic paths.
package extract

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/screenware/resume-screener/internal/logger"
	"github.com/screenware/resume-screener/internal/ner"
	"github.com/screenware/resume-screener/internal/types"
	"github.com/screenware/resume-screener/internal/vocab"
)

// Extractor runs the full extraction pipeline over resume text. Extractors
// and their compiled patterns are immutable after construction and safe for
// concurrent use.
type Extractor struct {
	names      *NameResolver
	skills     *SkillMatcher
	education  *EducationClassifier
	certs      *CertificationDetector
	experience *ExperienceEstimator
	recognizer ner.Recognizer
	log        *zap.Logger
}

// New builds an Extractor. A nil recognizer disables entity recognition;
// a nil logger disables logging.
func New(v *vocab.Vocabulary, recognizer ner.Recognizer, mode ExperienceMode, log *zap.Logger) *Extractor {
	if recognizer == nil {
		recognizer = ner.Disabled{}
	}

	return &Extractor{
		names:      NewNameResolver(v),
		skills:     NewSkillMatcher(v),
		education:  NewEducationClassifier(v),
		certs:      NewCertificationDetector(v),
		experience: NewExperienceEstimator(mode),
		recognizer: recognizer,
		log:        logger.Or(log),
	}
}

// Parse extracts a structured profile from one resume's text. sourceFile is
// recorded on the profile for traceability and may be empty.
func (e *Extractor) Parse(ctx context.Context, text, sourceFile string) *types.CandidateProfile {
	started := time.Now()
	spans := e.recognize(ctx, text)
	email := Email(text)

	profile := &types.CandidateProfile{
		ID:                uuid.NewString(),
		SourceFile:        sourceFile,
		Name:              e.names.Resolve(text, email, ner.ByLabel(spans, ner.LabelPerson)),
		Email:             email,
		Phone:             Phone(text),
		Skills:            e.skills.Match(text),
		Education:         e.education.Classify(text),
		Experience:        CompaniesFromSpans(spans),
		Certifications:    e.certs.Detect(text),
		YearsOfExperience: e.experience.Years(text),
		ParsedAt:          time.Now().UTC(),
	}

	e.log.Info("parsed resume",
		zap.String("source", sourceFile),
		zap.String("name", profile.Name),
		zap.Int("skills", len(profile.Skills)),
		zap.Float64("years", profile.YearsOfExperience),
		zap.Duration("took", time.Since(started)),
	)
	return profile
}

// recognize runs entity recognition and converts any failure into "no
// entities": recognition may be slow, unconfigured, or broken, and none of
// that aborts extraction.
func (e *Extractor) recognize(ctx context.Context, text string) []ner.Span {
	spans, err := e.recognizer.Recognize(ctx, text)
	if err != nil {
		if errors.Is(err, ner.ErrUnavailable) {
			e.log.Debug("entity recognition disabled, using heuristics")
		} else {
			e.log.Warn("entity recognition degraded, using heuristics", zap.Error(err))
		}
		return nil
	}
	return spans
}

// Package match implements the resume evaluation flow: a lexical
// overlap score between resume and job description, plus an AI feedback
// narrative.
package match

import (
	"context"
	"math"
	"strings"

	"mockmate/internal/errors"
	"mockmate/internal/types"
)

// TextGenerator is the slice of the AI service the scorer consumes.
type TextGenerator interface {
	Generate(ctx context.Context, args ...any) string
}

// Score computes the overlap between the job description's word set and
// the resume's word set: |intersection| / |jdWords| * 100, rounded to
// two decimals. An empty job description scores 0.
//
// This is a coarse lexical heuristic, not semantic matching: synonyms,
// stemming and phrasing are all invisible to it. The AI feedback
// narrative is the semantic counterweight.
func Score(jdText, resumeText string) float64 {
	jdWords := wordSet(jdText)
	if len(jdWords) == 0 {
		return 0
	}

	resumeWords := wordSet(resumeText)
	common := 0
	for word := range jdWords {
		if resumeWords[word] {
			common++
		}
	}

	return math.Round(float64(common)/float64(len(jdWords))*100*100) / 100
}

// wordSet tokenizes text into a lowercase whitespace-delimited word set.
func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		set[word] = true
	}
	return set
}

// Scorer pairs the overlap score with a feedback-generation call.
type Scorer struct {
	feedback TextGenerator
	logger   *errors.Logger
}

// NewScorer creates a scorer using the given feedback generator.
func NewScorer(feedback TextGenerator, logger *errors.Logger) *Scorer {
	return &Scorer{
		feedback: feedback,
		logger:   logger,
	}
}

// Evaluate scores the resume against the job description and requests
// the feedback narrative using the full texts.
func (s *Scorer) Evaluate(ctx context.Context, input types.MatchInput) types.MatchResult {
	score := Score(input.JobDescription, input.ResumeText)

	feedback := s.feedback.Generate(ctx, input.JobDescription, input.ResumeText)

	s.logger.Info("Resume evaluated",
		"score", score,
		"jd_length", len(input.JobDescription),
		"resume_length", len(input.ResumeText))

	return types.MatchResult{
		Score:    score,
		Feedback: feedback,
	}
}

// Package report assembles a completed interview into its final
// feedback and a downloadable PDF document.
package report

import (
	"context"
	"fmt"

	"mockmate/internal/errors"
	"mockmate/internal/session"
	"mockmate/internal/types"
)

// TextGenerator is the slice of the AI service the compiler consumes.
type TextGenerator interface {
	Generate(ctx context.Context, args ...any) string
}

// Compiler produces the final feedback and report for a session.
type Compiler struct {
	feedback TextGenerator
	logger   *errors.Logger
}

// NewCompiler creates a compiler using the given feedback generator.
func NewCompiler(feedback TextGenerator, logger *errors.Logger) *Compiler {
	return &Compiler{
		feedback: feedback,
		logger:   logger,
	}
}

// CompileFeedback generates the comprehensive post-interview feedback.
// The full job description and transcript go into this one-shot call;
// unlike the per-turn prompts there is no window bound here. Idempotent:
// once a session has feedback, the cached value is returned.
func (c *Compiler) CompileFeedback(ctx context.Context, s *session.Session) (string, error) {
	if s.Phase != session.PhaseCompleted {
		return "", errors.NewValidationError(errors.ErrCodeSessionNotActive,
			"Feedback is only available after the interview completes", nil)
	}

	if s.FinalFeedback != "" {
		return s.FinalFeedback, nil
	}

	s.FinalFeedback = c.feedback.Generate(ctx, s.JobDescription, s.TranscriptText())

	c.logger.Info("Interview feedback compiled",
		"questions_asked", s.QuestionCount,
		"feedback_length", len(s.FinalFeedback))

	return s.FinalFeedback, nil
}

// BuildReport compiles feedback if needed and assembles the report value
// the formatters and PDF renderer consume.
func (c *Compiler) BuildReport(ctx context.Context, s *session.Session) (types.InterviewReport, error) {
	feedback, err := c.CompileFeedback(ctx, s)
	if err != nil {
		return types.InterviewReport{}, err
	}

	return types.InterviewReport{
		Title:         fmt.Sprintf("Interview Assessment - %d Qs", s.QuestionTurns()),
		QuestionCount: s.QuestionTurns(),
		Transcript:    s.TranscriptText(),
		Feedback:      feedback,
	}, nil
}

// BuildTranscriptReport assembles a transcript-only report without
// requesting feedback.
func (c *Compiler) BuildTranscriptReport(s *session.Session) types.InterviewReport {
	return types.InterviewReport{
		Title:         "Interview Transcript Only",
		QuestionCount: s.QuestionTurns(),
		Transcript:    s.TranscriptText(),
	}
}

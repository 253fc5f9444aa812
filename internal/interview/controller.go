// Package interview implements the adaptive interview control loop: the
// state machine that decides when to ask, what to ask next, and when to
// stop, driven by repeated calls to a text generation service.
package interview

import (
	"context"
	"strings"
	"unicode/utf8"

	"mockmate/internal/config"
	"mockmate/internal/errors"
	"mockmate/internal/session"
	"mockmate/internal/speech"
)

// ClosingMessage is the interviewer's fixed final line.
const ClosingMessage = "Thank you. The interview is now complete."

// Placeholder candidate turns substituted for failed or skipped captures.
// The interview always continues with a placeholder as if the candidate
// had spoken it.
const (
	PlaceholderTimeout = "[No response - timeout]"
	PlaceholderUnclear = "[Response unclear]"
	PlaceholderError   = "[Audio error]"
	PlaceholderSkipped = "[Question skipped]"
)

// TextGenerator is the slice of the AI service the controller consumes.
// Generate is total: failures come back as tagged strings, not errors.
type TextGenerator interface {
	Generate(ctx context.Context, args ...any) string
}

// Generators bundles the per-operation generators the controller drives.
type Generators struct {
	Analyze  TextGenerator
	Opening  TextGenerator
	Next     TextGenerator
	Decision TextGenerator
}

// Controller is the adaptive interview state machine. It owns no session
// state itself; every operation takes the session it mutates, and exactly
// one caller drives a given session at a time.
type Controller struct {
	gen    Generators
	bounds config.InterviewConfig
	logger *errors.Logger
}

// NewController creates a controller with the given generators and
// prompt bounds.
func NewController(gen Generators, bounds config.InterviewConfig, logger *errors.Logger) *Controller {
	return &Controller{
		gen:    gen,
		bounds: bounds,
		logger: logger,
	}
}

// Start transitions a session from NotStarted to Active: it runs the
// one-time candidate-context analysis, generates the opening question
// and records it as the first interviewer turn.
func (c *Controller) Start(ctx context.Context, s *session.Session) error {
	if s.Phase != session.PhaseNotStarted {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Interview has already been started", nil)
	}
	if strings.TrimSpace(s.JobDescription) == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Job description is required to start the interview", nil)
	}
	if strings.TrimSpace(s.ResumeText) == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Resume text is required to start the interview", nil)
	}

	analysis := c.gen.Analyze.Generate(ctx,
		prefix(s.ResumeText, c.bounds.ResumeAnalysisLimit),
		prefix(s.JobDescription, c.bounds.JobDescriptionLimit))

	question := c.gen.Opening.Generate(ctx, analysis, s.JobDescription, s.ResumeText)

	s.AskQuestion(question)
	s.Phase = session.PhaseActive

	c.logger.Info("Interview started",
		"resume_length", len(s.ResumeText),
		"jd_length", len(s.JobDescription))
	return nil
}

// Respond records the candidate's answer to the current question, then
// advances one decision cycle: either the next question is asked or the
// interview is closed. Returns true while the interview remains active.
func (c *Controller) Respond(ctx context.Context, s *session.Session, answer string) (bool, error) {
	if s.Phase != session.PhaseActive {
		return false, errors.NewValidationError(errors.ErrCodeSessionNotActive,
			"Interview is not active", nil)
	}

	s.AppendAnswer(answer)
	return c.advance(ctx, s), nil
}

// Skip records a skipped question and advances the decision cycle
// without capturing speech.
func (c *Controller) Skip(ctx context.Context, s *session.Session) (bool, error) {
	return c.Respond(ctx, s, PlaceholderSkipped)
}

// End forces the interview to Completed. The closing line is not spoken
// or recorded on a forced end.
func (c *Controller) End(s *session.Session) error {
	if s.Phase != session.PhaseActive {
		return errors.NewValidationError(errors.ErrCodeSessionNotActive,
			"Interview is not active", nil)
	}
	s.Phase = session.PhaseCompleted
	c.logger.Info("Interview ended by caller", "questions_asked", s.QuestionCount)
	return nil
}

// RunTurn drives one full turn for a blocking host: speak the current
// question, capture one utterance, then advance. Returns true while the
// interview remains active.
func (c *Controller) RunTurn(ctx context.Context, s *session.Session, gw speech.Gateway) (bool, error) {
	if s.Phase != session.PhaseActive {
		return false, errors.NewValidationError(errors.ErrCodeSessionNotActive,
			"Interview is not active", nil)
	}

	if err := gw.Speak(ctx, s.CurrentQuestion); err != nil {
		// A playback failure does not end the interview; the question is
		// still in the transcript for the candidate to read.
		c.logger.Warn("Question playback failed", "error", err.Error())
	}

	answer := ResponseFromCapture(gw.Listen(ctx))
	active, err := c.Respond(ctx, s, answer)
	if err != nil {
		return false, err
	}

	if !active {
		if err := gw.Speak(ctx, ClosingMessage); err != nil {
			c.logger.Warn("Closing playback failed", "error", err.Error())
		}
	}
	return active, nil
}

// advance runs the continuation decision and either asks the next
// question or closes the interview. Fail-safe: any decision that is not
// a literal CONTINUE ends the interview.
func (c *Controller) advance(ctx context.Context, s *session.Session) bool {
	raw := c.gen.Decision.Generate(ctx,
		prefix(s.JobDescription, c.bounds.JobDescriptionLimit),
		prefix(s.ResumeText, c.bounds.ResumePromptLimit),
		s.RecentTranscript(c.bounds.DecisionWindow))

	decision := ParseDecision(raw)
	if !decision.Continue {
		s.AppendClosing(ClosingMessage)
		s.Phase = session.PhaseCompleted
		c.logger.Info("Interview completed", "questions_asked", s.QuestionCount)
		return false
	}

	question := c.gen.Next.Generate(ctx,
		decision.FocusArea,
		prefix(s.ResumeText, c.bounds.ResumePromptLimit),
		prefix(s.JobDescription, c.bounds.JobDescriptionLimit),
		s.RecentTranscript(c.bounds.QuestionWindow))

	s.AskQuestion(question)

	c.logger.Debug("Next question generated",
		"focus_area", decision.FocusArea,
		"question_count", s.QuestionCount)
	return true
}

// ResponseFromCapture maps a speech capture result to the candidate turn
// text: transcribed speech verbatim, or the documented placeholder for
// each failure outcome.
func ResponseFromCapture(res speech.Result) string {
	switch res.Outcome {
	case speech.OutcomeText:
		return res.Text
	case speech.OutcomeTimeout:
		return PlaceholderTimeout
	case speech.OutcomeUnclear:
		return PlaceholderUnclear
	default:
		return PlaceholderError
	}
}

// prefix returns at most limit bytes of s without splitting a rune.
// A non-positive limit disables truncation.
func prefix(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// Package speech wraps spoken-utterance playback and capture behind a
// small gateway interface. Capture failures are reported as sentinel
// outcomes, never as hard errors: the interview continues with a
// placeholder answer when the candidate cannot be heard.
package speech

import (
	"context"
	"fmt"

	"mockmate/internal/config"
	"mockmate/internal/errors"
)

// Outcome classifies the result of one capture attempt.
type Outcome int

const (
	// OutcomeText means the candidate was heard and transcribed.
	OutcomeText Outcome = iota
	// OutcomeTimeout means no speech was detected before the time bound.
	OutcomeTimeout
	// OutcomeUnclear means speech was detected but could not be transcribed.
	OutcomeUnclear
	// OutcomeError means the capture itself failed (device, network).
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeText:
		return "text"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeUnclear:
		return "unclear"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the outcome of one Listen call. Text is only meaningful
// when Outcome is OutcomeText; Err carries detail for OutcomeError.
type Result struct {
	Text    string
	Outcome Outcome
	Err     error
}

// Gateway plays one utterance and captures one utterance. Both calls
// block until the audio operation finishes.
type Gateway interface {
	// Speak synthesizes and plays text, blocking until playback ends.
	Speak(ctx context.Context, text string) error
	// Listen captures one spoken utterance, blocking until speech ends,
	// silence exceeds the pause threshold, or the listen timeout elapses.
	Listen(ctx context.Context) Result
}

// NewGateway builds the gateway selected by the speech configuration.
func NewGateway(cfg config.SpeechConfig, logger *errors.Logger) (Gateway, error) {
	switch cfg.Backend {
	case "console", "":
		return NewConsoleGateway(cfg, logger), nil
	case "exec":
		return NewExecGateway(cfg, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported speech backend: %s", cfg.Backend), nil)
	}
}

package speech

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"mockmate/internal/config"
	"mockmate/internal/errors"

	"github.com/google/uuid"
)

// ExecGateway shells out to external speak/listen commands, which keeps
// the audio toolchain (TTS engine, recognizer) swappable per host.
//
// The speak command receives the utterance through a temp file whose
// path replaces the "{file}" placeholder (or is appended when no
// placeholder is present). The listen command must print the
// transcription to stdout, or one of the literal sentinels TIMEOUT or
// UNCLEAR, or an ERROR: prefixed message.
type ExecGateway struct {
	speakCommand  []string
	listenCommand []string
	listenTimeout time.Duration
	logger        *errors.Logger
}

// Listen command sentinels.
const (
	sentinelTimeout = "TIMEOUT"
	sentinelUnclear = "UNCLEAR"
	sentinelErrored = "ERROR"
)

// NewExecGateway creates a gateway over the configured external commands.
func NewExecGateway(cfg config.SpeechConfig, logger *errors.Logger) (*ExecGateway, error) {
	if len(cfg.SpeakCommand) == 0 {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"speech.speakCommand is required for the exec backend", nil)
	}
	if len(cfg.ListenCommand) == 0 {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"speech.listenCommand is required for the exec backend", nil)
	}
	return &ExecGateway{
		speakCommand:  cfg.SpeakCommand,
		listenCommand: cfg.ListenCommand,
		listenTimeout: cfg.ListenTimeout,
		logger:        logger,
	}, nil
}

// Speak writes the utterance to a temp file and runs the speak command,
// blocking until playback finishes. The temp file is removed on every
// exit path.
func (g *ExecGateway) Speak(ctx context.Context, text string) error {
	uttPath := filepath.Join(os.TempDir(), fmt.Sprintf("utterance_%s.txt", uuid.New().String()))
	if err := os.WriteFile(uttPath, []byte(text), 0o600); err != nil {
		return errors.NewSpeechError(errors.ErrCodeSpeechPlayback,
			"Failed to write utterance file", err)
	}
	defer func() {
		if err := os.Remove(uttPath); err != nil && g.logger != nil {
			g.logger.Warn("Failed to remove utterance file", "file", uttPath, "error", err)
		}
	}()

	args := substitutePlaceholder(g.speakCommand[1:], uttPath)
	cmd := exec.CommandContext(ctx, g.speakCommand[0], args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if g.logger != nil {
			g.logger.LogError(err, "Speak command failed",
				"command", g.speakCommand[0],
				"stderr", strings.TrimSpace(stderr.String()))
		}
		return errors.NewSpeechError(errors.ErrCodeSpeechPlayback,
			"Speak command failed", err)
	}
	return nil
}

// Listen runs the listen command and classifies its output.
func (g *ExecGateway) Listen(ctx context.Context) Result {
	timeout := g.listenTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	listenCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(listenCtx, g.listenCommand[0], g.listenCommand[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if listenCtx.Err() == context.DeadlineExceeded {
		return Result{Outcome: OutcomeTimeout}
	}
	if err != nil {
		if g.logger != nil {
			g.logger.LogError(err, "Listen command failed",
				"command", g.listenCommand[0],
				"stderr", strings.TrimSpace(stderr.String()))
		}
		return Result{Outcome: OutcomeError,
			Err: errors.NewSpeechError(errors.ErrCodeSpeechCapture, "Listen command failed", err)}
	}

	text := strings.TrimSpace(stdout.String())
	switch {
	case text == sentinelTimeout:
		return Result{Outcome: OutcomeTimeout}
	case text == sentinelUnclear, text == "":
		return Result{Outcome: OutcomeUnclear}
	case strings.HasPrefix(text, sentinelErrored):
		return Result{Outcome: OutcomeError,
			Err: errors.NewSpeechError(errors.ErrCodeSpeechCapture, text, nil)}
	default:
		return Result{Text: text, Outcome: OutcomeText}
	}
}

// substitutePlaceholder replaces "{file}" arguments with the utterance
// path, appending the path when no placeholder is configured.
func substitutePlaceholder(args []string, path string) []string {
	out := make([]string, 0, len(args)+1)
	replaced := false
	for _, arg := range args {
		if strings.Contains(arg, "{file}") {
			arg = strings.ReplaceAll(arg, "{file}", path)
			replaced = true
		}
		out = append(out, arg)
	}
	if !replaced {
		out = append(out, path)
	}
	return out
}

package speech

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"mockmate/internal/config"
	"mockmate/internal/errors"
)

// ConsoleGateway is a text stand-in for real audio hardware: questions
// are printed to the output stream and answers read line-by-line from
// the input stream. It keeps the interview loop usable in terminals and
// in tests.
type ConsoleGateway struct {
	in            *bufio.Reader
	out           io.Writer
	listenTimeout time.Duration
	logger        *errors.Logger

	lines chan lineResult
}

type lineResult struct {
	text string
	err  error
}

// NewConsoleGateway creates a console gateway over stdin/stdout.
func NewConsoleGateway(cfg config.SpeechConfig, logger *errors.Logger) *ConsoleGateway {
	return NewConsoleGatewayStreams(os.Stdin, os.Stdout, cfg, logger)
}

// NewConsoleGatewayStreams creates a console gateway over explicit streams.
func NewConsoleGatewayStreams(in io.Reader, out io.Writer, cfg config.SpeechConfig, logger *errors.Logger) *ConsoleGateway {
	g := &ConsoleGateway{
		in:            bufio.NewReader(in),
		out:           out,
		listenTimeout: cfg.ListenTimeout,
		logger:        logger,
		lines:         make(chan lineResult),
	}
	go g.readLines()
	return g
}

// readLines feeds input lines into the channel Listen selects on. A
// single reader goroutine keeps partial reads from being lost when a
// Listen call times out before the line arrives.
func (g *ConsoleGateway) readLines() {
	for {
		line, err := g.in.ReadString('\n')
		if err != nil {
			if line != "" {
				g.lines <- lineResult{text: line}
			}
			g.lines <- lineResult{err: err}
			return
		}
		g.lines <- lineResult{text: line}
	}
}

// Speak prints the utterance to the output stream.
func (g *ConsoleGateway) Speak(ctx context.Context, text string) error {
	if _, err := fmt.Fprintf(g.out, "\n%s\n\n", text); err != nil {
		return errors.NewSpeechError(errors.ErrCodeSpeechPlayback,
			"Failed to write utterance to output", err)
	}
	return nil
}

// Listen reads one line of input, honoring the configured listen timeout.
func (g *ConsoleGateway) Listen(ctx context.Context) Result {
	timeout := g.listenTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case line := <-g.lines:
		if line.err != nil {
			if line.err == io.EOF {
				return Result{Outcome: OutcomeTimeout}
			}
			return Result{Outcome: OutcomeError, Err: line.err}
		}
		text := strings.TrimSpace(line.text)
		if text == "" {
			return Result{Outcome: OutcomeUnclear}
		}
		return Result{Text: text, Outcome: OutcomeText}
	case <-timer.C:
		return Result{Outcome: OutcomeTimeout}
	case <-ctx.Done():
		return Result{Outcome: OutcomeError, Err: ctx.Err()}
	}
}

package speech

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"mockmate/internal/config"
	"mockmate/internal/errors"
)

func testLogger() *errors.Logger {
	return errors.NewLogger(slog.LevelError)
}

func consoleConfig() config.SpeechConfig {
	return config.SpeechConfig{
		Backend:       "console",
		ListenTimeout: 2 * time.Second,
	}
}

func TestConsoleGatewaySpeak(t *testing.T) {
	var out bytes.Buffer
	g := NewConsoleGatewayStreams(strings.NewReader(""), &out, consoleConfig(), testLogger())

	if err := g.Speak(context.Background(), "Tell me about yourself."); err != nil {
		t.Fatalf("Speak() error = %v", err)
	}
	if got := out.String(); got != "\nTell me about yourself.\n\n" {
		t.Errorf("output = %q", got)
	}
}

func TestConsoleGatewayListen(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantText    string
		wantOutcome Outcome
	}{
		{
			name:        "line is trimmed and returned",
			input:       "  I worked on payment systems.  \n",
			wantText:    "I worked on payment systems.",
			wantOutcome: OutcomeText,
		},
		{
			name:        "blank line is unclear",
			input:       "   \n",
			wantOutcome: OutcomeUnclear,
		},
		{
			name:        "closed input is a timeout",
			input:       "",
			wantOutcome: OutcomeTimeout,
		},
		{
			name:        "final line without newline is returned",
			input:       "last answer",
			wantText:    "last answer",
			wantOutcome: OutcomeText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			g := NewConsoleGatewayStreams(strings.NewReader(tt.input), &out, consoleConfig(), testLogger())

			res := g.Listen(context.Background())
			if res.Outcome != tt.wantOutcome {
				t.Errorf("Outcome = %v, want %v", res.Outcome, tt.wantOutcome)
			}
			if res.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", res.Text, tt.wantText)
			}
		})
	}
}

func TestConsoleGatewayListenTimeout(t *testing.T) {
	cfg := consoleConfig()
	cfg.ListenTimeout = 20 * time.Millisecond

	// A pipe-like reader that never produces a line.
	blocked := make(chan struct{})
	t.Cleanup(func() { close(blocked) })
	g := NewConsoleGatewayStreams(blockingReader{blocked}, &bytes.Buffer{}, cfg, testLogger())

	res := g.Listen(context.Background())
	if res.Outcome != OutcomeTimeout {
		t.Errorf("Outcome = %v, want %v", res.Outcome, OutcomeTimeout)
	}
}

func TestConsoleGatewayListenCancelled(t *testing.T) {
	blocked := make(chan struct{})
	t.Cleanup(func() { close(blocked) })
	g := NewConsoleGatewayStreams(blockingReader{blocked}, &bytes.Buffer{}, consoleConfig(), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := g.Listen(ctx)
	if res.Outcome != OutcomeError {
		t.Errorf("Outcome = %v, want %v", res.Outcome, OutcomeError)
	}
	if res.Err == nil {
		t.Error("Err = nil, want context error")
	}
}

func TestConsoleGatewaySequentialListens(t *testing.T) {
	input := "first\nsecond\n"
	g := NewConsoleGatewayStreams(strings.NewReader(input), &bytes.Buffer{}, consoleConfig(), testLogger())

	for _, want := range []string{"first", "second"} {
		res := g.Listen(context.Background())
		if res.Outcome != OutcomeText || res.Text != want {
			t.Errorf("Listen() = %+v, want text %q", res, want)
		}
	}
	if res := g.Listen(context.Background()); res.Outcome != OutcomeTimeout {
		t.Errorf("Listen() after input exhausted = %+v, want timeout", res)
	}
}

// blockingReader blocks Read until the channel closes.
type blockingReader struct {
	release chan struct{}
}

func (r blockingReader) Read(p []byte) (int, error) {
	<-r.release
	return 0, context.Canceled
}

func TestNewGateway(t *testing.T) {
	tests := []struct {
		name      string
		backend   string
		expectErr bool
	}{
		{name: "console backend", backend: "console"},
		{name: "default backend", backend: ""},
		{name: "unknown backend", backend: "telepathy", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.SpeechConfig{Backend: tt.backend, ListenTimeout: time.Second}
			gw, err := NewGateway(cfg, testLogger())
			if tt.expectErr {
				if err == nil {
					t.Errorf("NewGateway(backend=%q) error = nil, want error", tt.backend)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewGateway(backend=%q) error = %v", tt.backend, err)
			}
			if gw == nil {
				t.Error("NewGateway() = nil gateway")
			}
		})
	}
}

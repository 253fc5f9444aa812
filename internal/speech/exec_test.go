package speech

import (
	"testing"
	"time"

	"mockmate/internal/config"
)

func TestNewExecGatewayValidation(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.SpeechConfig
		expectErr bool
	}{
		{
			name: "both commands configured",
			cfg: config.SpeechConfig{
				Backend:       "exec",
				SpeakCommand:  []string{"say", "-f", "{file}"},
				ListenCommand: []string{"listen-util"},
				ListenTimeout: time.Minute,
			},
		},
		{
			name: "missing speak command",
			cfg: config.SpeechConfig{
				Backend:       "exec",
				ListenCommand: []string{"listen-util"},
			},
			expectErr: true,
		},
		{
			name: "missing listen command",
			cfg: config.SpeechConfig{
				Backend:      "exec",
				SpeakCommand: []string{"say"},
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw, err := NewExecGateway(tt.cfg, testLogger())
			if tt.expectErr {
				if err == nil {
					t.Error("NewExecGateway() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewExecGateway() error = %v", err)
			}
			if gw == nil {
				t.Error("NewExecGateway() = nil gateway")
			}
		})
	}
}

func TestSubstitutePlaceholder(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "placeholder replaced",
			args: []string{"-f", "{file}"},
			want: []string{"-f", "/tmp/u.txt"},
		},
		{
			name: "placeholder inside an argument",
			args: []string{"--input={file}"},
			want: []string{"--input=/tmp/u.txt"},
		},
		{
			name: "no placeholder appends the path",
			args: []string{"-v"},
			want: []string{"-v", "/tmp/u.txt"},
		},
		{
			name: "no args appends the path",
			args: nil,
			want: []string{"/tmp/u.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := substitutePlaceholder(tt.args, "/tmp/u.txt")
			if len(got) != len(tt.want) {
				t.Fatalf("substitutePlaceholder() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("arg[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

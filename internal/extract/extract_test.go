package extract

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mockmate/internal/errors"

	"golang.org/x/net/html"
)

func testExtractor() *Extractor {
	return NewExtractor(errors.NewLogger(slog.LevelError))
}

func TestDocumentText(t *testing.T) {
	e := testExtractor()

	tests := []struct {
		name      string
		data      []byte
		want      string
		expectErr bool
	}{
		{
			name: "plain text is trimmed",
			data: []byte("  Go developer, 5 years.  \n"),
			want: "Go developer, 5 years.",
		},
		{
			name:      "empty input",
			data:      nil,
			expectErr: true,
		},
		{
			name:      "whitespace-only text",
			data:      []byte("   \n\t  "),
			expectErr: true,
		},
		{
			name:      "corrupt pdf",
			data:      []byte("%PDF-1.4 not actually a pdf"),
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.ResumeText(tt.data)
			if tt.expectErr {
				if err == nil {
					t.Errorf("ResumeText(%q) error = nil, want error", tt.data)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResumeText(%q) error = %v", tt.data, err)
			}
			if got != tt.want {
				t.Errorf("ResumeText(%q) = %q, want %q", tt.data, got, tt.want)
			}
		})
	}
}

func TestJobDescriptionTextErrorWording(t *testing.T) {
	e := testExtractor()

	_, err := e.JobDescriptionText(nil)
	if err == nil {
		t.Fatal("JobDescriptionText(nil) error = nil, want error")
	}
	if !strings.Contains(err.Error(), "Job description") {
		t.Errorf("error = %q, want job description wording", err.Error())
	}

	_, err = e.ResumeText(nil)
	if err == nil {
		t.Fatal("ResumeText(nil) error = nil, want error")
	}
	if !strings.Contains(err.Error(), "Resume") {
		t.Errorf("error = %q, want resume wording", err.Error())
	}
}

func TestJobDescriptionFromURL(t *testing.T) {
	page := `<html><head>
		<style>body { color: red; }</style>
		<script>console.log("tracking");</script>
	</head><body>
		<h1>Senior Go Engineer</h1>
		<p>Build   distributed systems.</p>
	</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != userAgent {
			t.Errorf("User-Agent = %q, want %q", got, userAgent)
		}
		w.Write([]byte(page))
	}))
	defer srv.Close()

	e := testExtractor()
	text, err := e.JobDescriptionFromURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("JobDescriptionFromURL() error = %v", err)
	}

	if !strings.Contains(text, "Senior Go Engineer") {
		t.Errorf("text = %q, want heading", text)
	}
	if !strings.Contains(text, "Build   distributed systems.") {
		t.Errorf("text = %q, want paragraph", text)
	}
	if strings.Contains(text, "color: red") || strings.Contains(text, "tracking") {
		t.Errorf("text = %q, want script and style content dropped", text)
	}
}

func TestJobDescriptionFromURLErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		if _, err := testExtractor().JobDescriptionFromURL(context.Background(), srv.URL); err == nil {
			t.Error("error = nil, want error for status 403")
		}
	})

	t.Run("empty page", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html><body><script>x()</script></body></html>"))
		}))
		defer srv.Close()

		if _, err := testExtractor().JobDescriptionFromURL(context.Background(), srv.URL); err == nil {
			t.Error("error = nil, want error for page with no text")
		}
	})

	t.Run("unreachable host", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		if _, err := testExtractor().JobDescriptionFromURL(context.Background(), srv.URL); err == nil {
			t.Error("error = nil, want network error")
		}
	})
}

func TestCleanHTMLText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "lines are trimmed and blank lines dropped",
			in:   "<p>  one  </p><p></p><p>two</p>",
			want: "one\ntwo",
		},
		{
			name: "nested script content is skipped",
			in:   "<div>keep<script>drop()</script></div>",
			want: "keep",
		},
		{
			name: "style content is skipped",
			in:   "<style>h1{}</style><h1>title</h1>",
			want: "title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := html.Parse(strings.NewReader(tt.in))
			if err != nil {
				t.Fatalf("parsing fixture: %v", err)
			}
			if got := CleanHTMLText(doc); got != tt.want {
				t.Errorf("CleanHTMLText() = %q, want %q", got, tt.want)
			}
		})
	}
}

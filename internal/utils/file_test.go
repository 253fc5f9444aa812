package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateInputFile(t *testing.T) {
	tempDir := t.TempDir()
	valid := filepath.Join(tempDir, "resume.txt")
	if err := os.WriteFile(valid, []byte("content"), 0600); err != nil {
		t.Fatalf("creating fixture: %v", err)
	}

	tests := []struct {
		name      string
		filename  string
		expectErr bool
	}{
		{name: "valid file", filename: valid},
		{name: "empty filename", filename: "", expectErr: true},
		{name: "missing file", filename: filepath.Join(tempDir, "missing.txt"), expectErr: true},
		{name: "directory", filename: tempDir, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputFile(tt.filename)
			if tt.expectErr && err == nil {
				t.Errorf("ValidateInputFile(%q) error = nil, want error", tt.filename)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("ValidateInputFile(%q) error = %v", tt.filename, err)
			}
		})
	}
}

func TestValidateOutputFile(t *testing.T) {
	tempDir := t.TempDir()

	if err := ValidateOutputFile(""); err != nil {
		t.Errorf("ValidateOutputFile(\"\") error = %v, want nil for stdout", err)
	}

	nested := filepath.Join(tempDir, "reports", "out.pdf")
	if err := ValidateOutputFile(nested); err != nil {
		t.Fatalf("ValidateOutputFile(%q) error = %v", nested, err)
	}
	if _, err := os.Stat(filepath.Dir(nested)); err != nil {
		t.Errorf("output directory was not created: %v", err)
	}
}

func TestGetFileExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"resume.PDF", ".pdf"},
		{"notes.txt", ".txt"},
		{"README", ""},
		{"archive.tar.gz", ".gz"},
	}

	for _, tt := range tests {
		if got := GetFileExtension(tt.filename); got != tt.want {
			t.Errorf("GetFileExtension(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestIsTextFile(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"resume.txt", true},
		{"resume.md", true},
		{"resume.markdown", true},
		{"resume.TEXT", true},
		{"resume.pdf", false},
		{"resume.docx", false},
		{"resume", false},
	}

	for _, tt := range tests {
		if got := IsTextFile(tt.filename); got != tt.want {
			t.Errorf("IsTextFile(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestIsPDFFile(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"resume.pdf", true},
		{"resume.PDF", true},
		{"resume.txt", false},
		{"resume", false},
	}

	for _, tt := range tests {
		if got := IsPDFFile(tt.filename); got != tt.want {
			t.Errorf("IsPDFFile(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{2 * 1024 * 1024, "2.0 MB"},
	}

	for _, tt := range tests {
		if got := FormatFileSize(tt.size); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

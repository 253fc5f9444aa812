package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"mockmate/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "MatchResult", &MatchTextFormatter{})
	registry.RegisterFormatter("markdown", "MatchResult", &MatchMarkdownFormatter{})
	registry.RegisterFormatter("text", "InterviewReport", &ReportTextFormatter{})
	registry.RegisterFormatter("markdown", "InterviewReport", &ReportMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.MatchResult:
		return "MatchResult"
	case types.InterviewReport:
		return "InterviewReport"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// MatchTextFormatter handles text formatting for resume evaluation results
type MatchTextFormatter struct{}

func (mtf *MatchTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchResult)
	if !ok {
		return "", fmt.Errorf("expected MatchResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME EVALUATION ===\n\n")
	output.WriteString(fmt.Sprintf("Resume Match Score: %.2f%%\n\n", result.Score))
	output.WriteString("=== AI FEEDBACK ===\n")
	output.WriteString(result.Feedback)
	output.WriteString("\n")

	return output.String(), nil
}

func (mtf *MatchTextFormatter) SupportedType() string {
	return "MatchResult"
}

// MatchMarkdownFormatter handles markdown formatting for resume evaluation results
type MatchMarkdownFormatter struct{}

func (mmf *MatchMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchResult)
	if !ok {
		return "", fmt.Errorf("expected MatchResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Evaluation\n\n")
	output.WriteString(fmt.Sprintf("**Resume Match Score:** %.2f%%\n\n", result.Score))
	output.WriteString("## AI Feedback\n\n")
	output.WriteString(result.Feedback)
	output.WriteString("\n")

	return output.String(), nil
}

func (mmf *MatchMarkdownFormatter) SupportedType() string {
	return "MatchResult"
}

// ReportTextFormatter handles text formatting for interview reports
type ReportTextFormatter struct{}

func (rtf *ReportTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.InterviewReport)
	if !ok {
		return "", fmt.Errorf("expected InterviewReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("=== %s ===\n\n", strings.ToUpper(result.Title)))
	output.WriteString(fmt.Sprintf("Questions Asked: %d\n\n", result.QuestionCount))
	output.WriteString("Transcript:\n")
	output.WriteString(result.Transcript)
	output.WriteString("\n")

	if result.Feedback != "" {
		output.WriteString("AI Feedback:\n")
		output.WriteString(result.Feedback)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (rtf *ReportTextFormatter) SupportedType() string {
	return "InterviewReport"
}

// ReportMarkdownFormatter handles markdown formatting for interview reports
type ReportMarkdownFormatter struct{}

func (rmf *ReportMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.InterviewReport)
	if !ok {
		return "", fmt.Errorf("expected InterviewReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("# %s\n\n", result.Title))
	output.WriteString(fmt.Sprintf("**Questions Asked:** %d\n\n", result.QuestionCount))
	output.WriteString("## Transcript\n\n")
	output.WriteString(result.Transcript)
	output.WriteString("\n")

	if result.Feedback != "" {
		output.WriteString("## AI Feedback\n\n")
		output.WriteString(result.Feedback)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (rmf *ReportMarkdownFormatter) SupportedType() string {
	return "InterviewReport"
}

// GlobalRegistry is the default formatter registry instance
var GlobalRegistry = NewFormatterRegistry()

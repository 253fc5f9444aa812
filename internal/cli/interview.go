package cli

import (
	"fmt"

	"mockmate/internal/ai"
	"mockmate/internal/common"
	"mockmate/internal/config"
	"mockmate/internal/errors"
	"mockmate/internal/interview"
	"mockmate/internal/report"
	"mockmate/internal/session"
	"mockmate/internal/speech"

	"github.com/spf13/cobra"
)

var interviewCmd = &cobra.Command{
	Use:   "interview [job-description-file-or-url] [resume-file]",
	Short: "Run an adaptive mock interview",
	Long: `Run a spoken or console mock interview driven by your resume and a
job description. The interviewer analyzes both documents, asks an opening
question, and after every answer decides whether to continue with a new
focus area or end the interview.

When the interview completes, comprehensive AI feedback is compiled and
the transcript plus feedback are written as a PDF report.

The job description may be a local file or an http(s) URL of a job
posting. The resume may be a plain text or PDF file.`,
	Args: cobra.ExactArgs(2),
	RunE: runInterview,
}

var (
	interviewReportFile     string
	interviewTranscriptOnly bool
)

func init() {
	interviewCmd.Flags().StringVarP(&interviewReportFile, "output", "o", "", "Report PDF path (default: generated name under the report directory)")
	interviewCmd.Flags().BoolVar(&interviewTranscriptOnly, "transcript-only", false, "Skip AI feedback and write a transcript-only report")
}

func runInterview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := getConfigFromContext(ctx)
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(ctx)
	if err != nil {
		return err
	}

	jdText, resumeText, err := resolveInterviewInputs(ctx, args[0], args[1], logger)
	if err != nil {
		return fmt.Errorf("failed to resolve inputs: %w", err)
	}

	controller, err := newInterviewController(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI services: %w", err)
	}

	gateway, err := speech.NewGateway(cfg.Speech, logger)
	if err != nil {
		return fmt.Errorf("failed to create speech gateway: %w", err)
	}

	logger.Info("Starting mock interview",
		"job_description_chars", len(jdText),
		"resume_chars", len(resumeText),
		"speech_backend", cfg.Speech.Backend)

	sess := session.New(jdText, resumeText)
	if err := controller.Start(ctx, sess); err != nil {
		return fmt.Errorf("failed to start interview: %w", err)
	}

	for sess.Phase == session.PhaseActive {
		if ctx.Err() != nil {
			logger.Info("Interview interrupted, ending early")
			_ = controller.End(sess)
			break
		}

		active, err := controller.RunTurn(ctx, sess, gateway)
		if err != nil {
			return fmt.Errorf("interview turn failed: %w", err)
		}
		if !active {
			break
		}
	}

	logger.Info("Interview completed", "questions", sess.QuestionTurns())
	fmt.Printf("\nInterview complete. The AI asked %d questions.\n", sess.QuestionTurns())

	return writeInterviewReport(cmd, cfg, logger, sess)
}

// newInterviewController builds a controller backed by per-operation AI services.
func newInterviewController(cfg *config.Config, logger *errors.Logger) (*interview.Controller, error) {
	analyze, err := newGenerator(cfg, ai.OperationAnalyze, logger)
	if err != nil {
		return nil, err
	}
	opening, err := newGenerator(cfg, ai.OperationOpeningQuestion, logger)
	if err != nil {
		return nil, err
	}
	next, err := newGenerator(cfg, ai.OperationNextQuestion, logger)
	if err != nil {
		return nil, err
	}
	decision, err := newGenerator(cfg, ai.OperationDecision, logger)
	if err != nil {
		return nil, err
	}

	gen := interview.Generators{
		Analyze:  analyze,
		Opening:  opening,
		Next:     next,
		Decision: decision,
	}
	return interview.NewController(gen, cfg.Interview, logger), nil
}

// writeInterviewReport compiles the feedback, renders the PDF and reports
// where it was written.
func writeInterviewReport(cmd *cobra.Command, cfg *config.Config, logger *errors.Logger, sess *session.Session) error {
	ctx := cmd.Context()

	var compiler *report.Compiler
	if interviewTranscriptOnly {
		compiler = report.NewCompiler(nil, logger)
	} else {
		feedback, err := newGenerator(cfg, ai.OperationFeedback, logger)
		if err != nil {
			return fmt.Errorf("failed to create AI service: %w", err)
		}
		compiler = report.NewCompiler(feedback, logger)
	}

	var doc = compiler.BuildTranscriptReport(sess)
	if !interviewTranscriptOnly {
		full, err := compiler.BuildReport(ctx, sess)
		if err != nil {
			return fmt.Errorf("failed to compile feedback: %w", err)
		}
		doc = full

		fmt.Println("\n=== Interview Feedback ===")
		fmt.Println(doc.Feedback)
	}

	data, err := report.RenderDocument(doc)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	var path string
	if interviewReportFile != "" {
		fileProcessor := common.NewFileProcessor(logger)
		if err := fileProcessor.WriteFileBytes(interviewReportFile, data); err != nil {
			return err
		}
		path = interviewReportFile
	} else {
		path, err = report.SaveDocument(cfg.App.ReportDir, data)
		if err != nil {
			return err
		}
	}

	logger.Info("Interview report written", "path", path, "bytes", len(data))
	fmt.Printf("\nReport saved to %s\n", path)
	return nil
}

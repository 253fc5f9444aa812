package cli

import (
	"context"
	"fmt"

	"mockmate/internal/ai"
	"mockmate/internal/common"
	"mockmate/internal/extract"
	"mockmate/internal/match"
	"mockmate/internal/report"
	"mockmate/internal/types"

	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [job-description-file-or-url] [resume-file]",
	Short: "Score a resume against a job description",
	Long: `Evaluate how well a resume matches a job description. The score is
the percentage of job description words that also appear in the resume,
and the AI provides qualitative feedback on strengths, missing skills
and suggestions.

The job description may be a local file or an http(s) URL of a job
posting. The resume may be a plain text or PDF file.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		// Apply default format if not specified
		if evaluateConfig.OutputFormat == "" {
			evaluateConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(evaluateConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runEvaluate,
}

var (
	evaluateConfig  common.CommandConfig
	evaluatePDFFile string
)

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	evaluateCmd.Flags().StringVar(&evaluateConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	evaluateCmd.Flags().StringVar(&evaluatePDFFile, "pdf", "", "Also write the evaluation report as a PDF to this path")

	// Add completion for format flag
	_ = evaluateCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveError
		}
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	// Create AI service for match feedback
	aiService, err := newGenerator(cfg, ai.OperationMatchFeedback, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}
	scorer := match.NewScorer(aiService, logger)

	// A job posting URL is fetched directly, and a PDF report needs the
	// evaluation result in hand; both take the manual path. Plain file
	// inputs go through the common file command path.
	if isURL(args[0]) || evaluatePDFFile != "" {
		jdText, resumeText, err := resolveInterviewInputs(cmd.Context(), args[0], args[1], logger)
		if err != nil {
			return fmt.Errorf("failed to resolve inputs: %w", err)
		}

		logger.Info("Starting resume evaluation",
			"job_description_source", args[0],
			"resume_chars", len(resumeText),
			"output_format", evaluateConfig.OutputFormat)

		result := scorer.Evaluate(cmd.Context(), types.MatchInput{
			JobDescription: jdText,
			ResumeText:     resumeText,
		})

		outputHandler := common.NewOutputHandler(logger)
		if err := outputHandler.HandleOutput(result, evaluateConfig); err != nil {
			return err
		}

		if evaluatePDFFile != "" {
			data, err := report.RenderEvaluation(resumeText, result)
			if err != nil {
				return fmt.Errorf("failed to render evaluation PDF: %w", err)
			}
			fileProcessor := common.NewFileProcessor(logger)
			if err := fileProcessor.WriteFileBytes(evaluatePDFFile, data); err != nil {
				return fmt.Errorf("failed to write evaluation PDF: %w", err)
			}
			fmt.Printf("Evaluation report saved to %s\n", evaluatePDFFile)
		}

		logger.Info("Resume evaluation completed successfully")
		return nil
	}

	extractor := extract.NewExtractor(logger)

	createInput := func(contents []string) (types.MatchInput, error) {
		if len(contents) != 2 {
			return types.MatchInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		jdText, err := extractor.JobDescriptionText([]byte(contents[0]))
		if err != nil {
			return types.MatchInput{}, err
		}
		resumeText, err := extractor.ResumeText([]byte(contents[1]))
		if err != nil {
			return types.MatchInput{}, err
		}
		return types.MatchInput{
			JobDescription: jdText,
			ResumeText:     resumeText,
		}, nil
	}

	logDetails := func(input types.MatchInput, cfg common.CommandConfig) {
		logger.Info("Starting resume evaluation",
			"job_description_chars", len(input.JobDescription),
			"resume_chars", len(input.ResumeText),
			"output_format", cfg.OutputFormat)
	}

	evaluateOperation := func(ctx context.Context, input types.MatchInput) (types.MatchResult, error) {
		return scorer.Evaluate(ctx, input), nil
	}

	err = common.RunFileCommand(
		cmd.Context(),
		logger,
		evaluateConfig,
		args,
		createInput,
		evaluateOperation,
		logDetails,
	)
	if err != nil {
		return fmt.Errorf("failed to evaluate resume: %w", err)
	}
	logger.Info("Resume evaluation completed successfully")
	return nil
}

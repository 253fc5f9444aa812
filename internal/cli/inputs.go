package cli

import (
	"context"
	"strings"

	"mockmate/internal/ai"
	"mockmate/internal/common"
	"mockmate/internal/config"
	"mockmate/internal/errors"
	"mockmate/internal/extract"
)

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// resolveInterviewInputs turns the job description argument (file path or
// URL) and the resume file path into plain text.
func resolveInterviewInputs(ctx context.Context, jdSource, resumeFile string, logger *errors.Logger) (string, string, error) {
	extractor := extract.NewExtractor(logger)
	fileProcessor := common.NewFileProcessor(logger)

	var jdText string
	var err error
	if isURL(jdSource) {
		jdText, err = extractor.JobDescriptionFromURL(ctx, jdSource)
	} else {
		var data []byte
		data, err = fileProcessor.ReadFileBytes(jdSource)
		if err == nil {
			jdText, err = extractor.JobDescriptionText(data)
		}
	}
	if err != nil {
		return "", "", err
	}

	data, err := fileProcessor.ReadFileBytes(resumeFile)
	if err != nil {
		return "", "", err
	}
	resumeText, err := extractor.ResumeText(data)
	if err != nil {
		return "", "", err
	}

	return jdText, resumeText, nil
}

// newGenerator creates the AI service for a single operation.
func newGenerator(cfg *config.Config, op ai.Operation, logger *errors.Logger) (*ai.Service, error) {
	var opCfg config.OperationAIConfig
	switch op {
	case ai.OperationAnalyze:
		opCfg = cfg.GetAnalyzeConfig()
	case ai.OperationOpeningQuestion, ai.OperationNextQuestion:
		opCfg = cfg.GetQuestionConfig()
	case ai.OperationDecision:
		opCfg = cfg.GetDecisionConfig()
	default:
		opCfg = cfg.GetFeedbackConfig()
	}
	return ai.NewService(&opCfg, op, logger)
}

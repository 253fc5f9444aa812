package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"mockmate/internal/ai"
	"mockmate/internal/config"
	"mockmate/internal/interview"
	"mockmate/internal/match"
	"mockmate/internal/observability"
	"mockmate/internal/report"
	"mockmate/internal/session"
	"mockmate/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// newGenerator creates the AI service for a single operation.
func (s *Server) newGenerator(op ai.Operation) (*ai.Service, error) {
	var opCfg config.OperationAIConfig
	switch op {
	case ai.OperationAnalyze:
		opCfg = s.AppConfig.GetAnalyzeConfig()
	case ai.OperationOpeningQuestion, ai.OperationNextQuestion:
		opCfg = s.AppConfig.GetQuestionConfig()
	case ai.OperationDecision:
		opCfg = s.AppConfig.GetDecisionConfig()
	default:
		opCfg = s.AppConfig.GetFeedbackConfig()
	}
	return ai.NewService(&opCfg, op, s.Logger)
}

// newController builds an interview controller backed by per-operation
// AI services.
func (s *Server) newController() (*interview.Controller, error) {
	analyze, err := s.newGenerator(ai.OperationAnalyze)
	if err != nil {
		return nil, err
	}
	opening, err := s.newGenerator(ai.OperationOpeningQuestion)
	if err != nil {
		return nil, err
	}
	next, err := s.newGenerator(ai.OperationNextQuestion)
	if err != nil {
		return nil, err
	}
	decision, err := s.newGenerator(ai.OperationDecision)
	if err != nil {
		return nil, err
	}

	gen := interview.Generators{
		Analyze:  analyze,
		Opening:  opening,
		Next:     next,
		Decision: decision,
	}
	return interview.NewController(gen, s.AppConfig.Interview, s.Logger), nil
}

// newCompiler builds a report compiler backed by the feedback AI service.
func (s *Server) newCompiler() (*report.Compiler, error) {
	feedback, err := s.newGenerator(ai.OperationFeedback)
	if err != nil {
		return nil, err
	}
	return report.NewCompiler(feedback, s.Logger), nil
}

// newScorer builds a resume match scorer backed by the feedback AI service.
func (s *Server) newScorer() (*match.Scorer, error) {
	feedback, err := s.newGenerator(ai.OperationMatchFeedback)
	if err != nil {
		return nil, err
	}
	return match.NewScorer(feedback, s.Logger), nil
}

// sessionResponse renders the wire form of a stored session.
func sessionResponse(id string, sess *session.Session) SessionResponse {
	return SessionResponse{
		ID:              id,
		Phase:           sess.Phase.String(),
		CurrentQuestion: sess.CurrentQuestion,
		QuestionCount:   sess.QuestionCount,
		Completed:       sess.Phase == session.PhaseCompleted,
	}
}

// writeJSONResponse encodes a response body with the given status code
func writeJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// createEvaluateHandler wraps the resume match handler with observability
func (s *Server) createEvaluateHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("mockmate.api")
		ctx, span := tracer.Start(ctx, "api.evaluate")
		defer span.End()

		var req EvaluateRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.String("operation", "evaluate"),
		)

		scorer, err := s.newScorer()
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		input := types.MatchInput{
			JobDescription: req.JobDescription,
			ResumeText:     req.ResumeText,
		}

		metrics := om.GetMetrics()
		var result types.MatchResult
		_ = metrics.TrackAIOperationWithTokens(ctx, "match_feedback", func(ctx context.Context) *observability.AIOperationResult {
			result = scorer.Evaluate(ctx, input)
			return &observability.AIOperationResult{}
		}, om)

		metrics.RecordBusinessMetric(ctx, "resume_evaluated", true, om,
			attribute.Float64("match.score", result.Score))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("match.score", result.Score),
		)

		if r.URL.Query().Get("format") == "pdf" {
			data, err := report.RenderEvaluation(req.ResumeText, result)
			if err != nil {
				span.RecordError(err)
				writeErrorResponse(w, "Failed to render evaluation PDF", err.Error(), http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", `attachment; filename="resume_evaluation.pdf"`)
			w.WriteHeader(http.StatusOK)
			if _, err := w.Write(data); err != nil {
				s.Logger.Warn("Failed to write evaluation PDF response", "error", err.Error())
			}
			return
		}

		writeJSONResponse(w, http.StatusOK, result)
	}
}

// createStartSessionHandler wraps session creation with observability
func (s *Server) createStartSessionHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("mockmate.api")
		ctx, span := tracer.Start(ctx, "api.session.start")
		defer span.End()

		var req StartSessionRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}

		// Size validation
		if s.MaxRequestSize > 0 && len(req.ResumeText) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("resume too large: %d chars", len(req.ResumeText))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume too large", fmt.Sprintf("resumeText exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}
		if s.MaxRequestSize > 0 && len(req.JobDescription) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("job description too large: %d chars", len(req.JobDescription))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Job description too large", fmt.Sprintf("jobDescription exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		controller, err := s.newController()
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		sess := session.New(req.JobDescription, req.ResumeText)

		metrics := om.GetMetrics()
		err = metrics.TrackAIOperationWithTokens(ctx, "session_start", func(ctx context.Context) *observability.AIOperationResult {
			return &observability.AIOperationResult{Error: controller.Start(ctx, sess)}
		}, om)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "session_start"))
			metrics.RecordBusinessMetric(ctx, "interview_started", false, om)
			writeErrorResponse(w, "Failed to start interview", err.Error(), http.StatusInternalServerError)
			return
		}

		id := s.Sessions.Create(sess)

		metrics.RecordBusinessMetric(ctx, "interview_started", true, om)
		metrics.RecordBusinessMetric(ctx, "question_asked", true, om)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("session.id", id),
		)

		writeJSONResponse(w, http.StatusCreated, sessionResponse(id, sess))
	}
}

// createRespondHandler records a candidate answer and advances the interview
func (s *Server) createRespondHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return s.sessionTurnHandler(om, "api.session.respond", func(ctx context.Context, controller *interview.Controller, ms *ManagedSession, r *http.Request) (bool, error) {
		var req RespondRequest
		if err := parseJSONRequest(r, &req); err != nil {
			return false, err
		}
		if strings.TrimSpace(req.Answer) == "" {
			return false, fmt.Errorf("answer field is required")
		}
		return controller.Respond(ctx, ms.Session, req.Answer)
	})
}

// createSkipHandler records the skip placeholder and advances the interview
func (s *Server) createSkipHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return s.sessionTurnHandler(om, "api.session.skip", func(ctx context.Context, controller *interview.Controller, ms *ManagedSession, r *http.Request) (bool, error) {
		return controller.Skip(ctx, ms.Session)
	})
}

// sessionTurnHandler is the shared handler shape for operations that
// consume the current question and advance the interview.
func (s *Server) sessionTurnHandler(
	om *observability.ObservabilityManager,
	spanName string,
	turn func(ctx context.Context, controller *interview.Controller, ms *ManagedSession, r *http.Request) (bool, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("mockmate.api")
		ctx, span := tracer.Start(ctx, spanName)
		defer span.End()

		id := r.PathValue("id")
		ms, ok := s.Sessions.Get(id)
		if !ok {
			writeErrorResponse(w, "Session not found", fmt.Sprintf("no interview session with id %s", id), http.StatusNotFound)
			return
		}
		span.SetAttributes(attribute.String("session.id", id))

		controller, err := s.newController()
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		ms.Lock()
		defer ms.Unlock()

		if ms.Session.Phase != session.PhaseActive {
			writeErrorResponse(w, "Session not active",
				fmt.Sprintf("session is %s, answers require an active interview", ms.Session.Phase), http.StatusConflict)
			return
		}

		metrics := om.GetMetrics()
		var active bool
		err = metrics.TrackAIOperationWithTokens(ctx, "session_turn", func(ctx context.Context) *observability.AIOperationResult {
			var turnErr error
			active, turnErr = turn(ctx, controller, ms, r)
			return &observability.AIOperationResult{Error: turnErr}
		}, om)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to process answer", err.Error(), http.StatusBadRequest)
			return
		}

		if active {
			metrics.RecordBusinessMetric(ctx, "question_asked", true, om)
		} else {
			metrics.RecordBusinessMetric(ctx, "interview_completed", true, om,
				attribute.Int("interview.questions", ms.Session.QuestionTurns()))
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Bool("interview.completed", !active),
		)

		writeJSONResponse(w, http.StatusOK, sessionResponse(id, ms.Session))
	}
}

// createEndHandler force-completes an interview without a closing AI turn
func (s *Server) createEndHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("mockmate.api")
		ctx, span := tracer.Start(ctx, "api.session.end")
		defer span.End()

		id := r.PathValue("id")
		ms, ok := s.Sessions.Get(id)
		if !ok {
			writeErrorResponse(w, "Session not found", fmt.Sprintf("no interview session with id %s", id), http.StatusNotFound)
			return
		}
		span.SetAttributes(attribute.String("session.id", id))

		// Ending is a pure state transition; no generators are needed.
		controller := interview.NewController(interview.Generators{}, s.AppConfig.Interview, s.Logger)

		ms.Lock()
		defer ms.Unlock()

		if err := controller.End(ms.Session); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to end interview",
				fmt.Sprintf("session is %s, only active interviews can be ended", ms.Session.Phase), http.StatusConflict)
			return
		}

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "interview_completed", true, om,
			attribute.Bool("interview.forced", true))

		span.SetAttributes(attribute.Bool("success", true))

		writeJSONResponse(w, http.StatusOK, sessionResponse(id, ms.Session))
	}
}

// createReportHandler compiles feedback and renders the interview report.
// ?transcript=only skips feedback compilation and works in any phase;
// ?format=json returns the report structure instead of the PDF document.
func (s *Server) createReportHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("mockmate.api")
		ctx, span := tracer.Start(ctx, "api.session.report")
		defer span.End()

		id := r.PathValue("id")
		ms, ok := s.Sessions.Get(id)
		if !ok {
			writeErrorResponse(w, "Session not found", fmt.Sprintf("no interview session with id %s", id), http.StatusNotFound)
			return
		}
		span.SetAttributes(attribute.String("session.id", id))

		transcriptOnly := r.URL.Query().Get("transcript") == "only"
		asJSON := r.URL.Query().Get("format") == "json"

		ms.Lock()
		defer ms.Unlock()

		var doc types.InterviewReport
		metrics := om.GetMetrics()

		if transcriptOnly {
			compiler := report.NewCompiler(nil, s.Logger)
			doc = compiler.BuildTranscriptReport(ms.Session)
		} else {
			compiler, err := s.newCompiler()
			if err != nil {
				span.RecordError(err)
				writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
				return
			}

			err = metrics.TrackAIOperationWithTokens(ctx, "feedback", func(ctx context.Context) *observability.AIOperationResult {
				var buildErr error
				doc, buildErr = compiler.BuildReport(ctx, ms.Session)
				return &observability.AIOperationResult{Error: buildErr}
			}, om)
			if err != nil {
				span.RecordError(err)
				metrics.RecordBusinessMetric(ctx, "report_generated", false, om)
				writeErrorResponse(w, "Failed to compile report",
					"feedback requires a completed interview", http.StatusConflict)
				return
			}
		}

		if asJSON {
			metrics.RecordBusinessMetric(ctx, "report_generated", true, om,
				attribute.String("report.format", "json"))
			writeJSONResponse(w, http.StatusOK, doc)
			return
		}

		data, err := report.RenderDocument(doc)
		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "report_generated", false, om)
			writeErrorResponse(w, "Failed to render report", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "report_generated", true, om,
			attribute.String("report.format", "pdf"),
			attribute.Int("report.bytes", len(data)))

		span.SetAttributes(attribute.Bool("success", true))

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=interview_report_%s.pdf", id))
		if _, err := w.Write(data); err != nil {
			span.RecordError(err)
		}
	}
}

// createDeleteSessionHandler removes a stored session
func (s *Server) createDeleteSessionHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tracer := om.Tracer("mockmate.api")
		_, span := tracer.Start(r.Context(), "api.session.delete")
		defer span.End()

		id := r.PathValue("id")
		if !s.Sessions.Delete(id) {
			writeErrorResponse(w, "Session not found", fmt.Sprintf("no interview session with id %s", id), http.StatusNotFound)
			return
		}

		span.SetAttributes(attribute.String("session.id", id), attribute.Bool("success", true))
		w.WriteHeader(http.StatusNoContent)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

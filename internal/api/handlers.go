package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hypoplan/domain/core"
	"hypoplan/domain/plan"
	apperrors "hypoplan/internal/errors"
	"hypoplan/internal/profiling"
)

// PlanRequest is the body of /plan_hypothesis
type PlanRequest struct {
	Prompt string `json:"prompt"`
}

// DeconstructRequest is the body of /deconstruct
type DeconstructRequest struct {
	Hypothesis    string `json:"hypothesis"`
	SchemaContext string `json:"schema_context,omitempty"`
}

// GenerateSQLRequest is the body of /generate_sql
type GenerateSQLRequest struct {
	Prompt string      `json:"prompt"`
	Schema plan.Schema `json:"schema,omitempty"`
}

// AnalyzeRequest is the body of /analyze_data
type AnalyzeRequest struct {
	Name   string   `json:"name"`
	Cols   []string `json:"cols"`
	Sample [][]any  `json:"sample"`
}

// DashboardRequest is the body of /generate_dashboard_insights
type DashboardRequest struct {
	Widgets []profiling.Widget              `json:"widgets"`
	Sources map[string]profiling.DataSource `json:"sources"`
}

func (s *Server) handleHealth(c *gin.Context) {
	d := s.deps.Deconstructor
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"ready":    d.Ready(),
		"state":    d.State().String(),
		"composer": d.ComposerName(),
	})
}

func (s *Server) handleInitialize(c *gin.Context) {
	ok := s.deps.Deconstructor.InitializeModel(c.Request.Context())
	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"initialized": ok})
}

func (s *Server) handlePlanHypothesis(c *gin.Context) {
	var req PlanRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := s.deps.Planner.Plan(c.Request.Context(), req.Prompt)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": result})
}

func (s *Server) handleDeconstruct(c *gin.Context) {
	var req DeconstructRequest
	if !bindJSON(c, &req) {
		return
	}

	resp := s.deps.Deconstructor.Deconstruct(c.Request.Context(), req.Hypothesis, req.SchemaContext)
	status := http.StatusOK
	if !resp.Success {
		switch resp.Error {
		case apperrors.CodeEmptyHypothesis:
			status = http.StatusBadRequest
		default:
			status = http.StatusInternalServerError
		}
	}
	c.JSON(status, resp)
}

func (s *Server) handleGenerateSQL(c *gin.Context) {
	var req GenerateSQLRequest
	if !bindJSON(c, &req) {
		return
	}

	sql, err := s.deps.SQLService.Generate(c.Request.Context(), req.Prompt, req.Schema)
	if err != nil {
		writeError(c, apperrors.Wrap(err, "SQL generation failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"sql": sql})
}

func (s *Server) handleAnalyzeData(c *gin.Context) {
	var req AnalyzeRequest
	if !bindJSON(c, &req) {
		return
	}
	if len(req.Cols) == 0 {
		writeError(c, apperrors.InvalidInput("cols must not be empty"))
		return
	}

	summary := profiling.Summarize(req.Name, req.Cols, profiling.StringRows(req.Sample))
	c.JSON(http.StatusOK, gin.H{
		"insights": summary.Insights(),
		"summary":  summary,
	})
}

func (s *Server) handleDashboardInsights(c *gin.Context) {
	var req DashboardRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": profiling.DashboardInsights(req.Widgets, req.Sources)})
}

func (s *Server) handleNoRoute(c *gin.Context) {
	writeError(c, apperrors.NotFound("route "+c.Request.URL.Path))
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, apperrors.WithCode(apperrors.CodeInvalidInput, fmt.Errorf("invalid request body: %w", err)))
		return false
	}
	return true
}

func writeError(c *gin.Context, err error) {
	code := apperrors.GetCode(err)
	if code == "UNKNOWN" {
		code = domainCode(err)
	}
	status := apperrors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		log.Printf("[API] %s %s failed (request %s): %v", c.Request.Method, c.FullPath(), c.GetString(requestIDKey), err)
	}
	c.JSON(status, gin.H{"error": code, "message": err.Error()})
}

// domainCode maps bare domain errors onto API codes.
func domainCode(err error) string {
	switch {
	case core.IsInputError(err), core.IsClosedSetError(err):
		return apperrors.CodeInvalidInput
	case core.IsGenerationError(err):
		return apperrors.CodeGenerationFailed
	default:
		return apperrors.CodeInternalError
	}
}

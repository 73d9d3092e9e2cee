package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/faizrashid/nazeer/internal/observability"
	"github.com/faizrashid/nazeer/internal/retrieval/orchestrator"
	"github.com/faizrashid/nazeer/internal/retrieval/semantic"
	"github.com/faizrashid/nazeer/pkg/models"
)

// QAHandler exposes the Retrieval Orchestrator (C10) over HTTP.
type QAHandler struct {
	orchestrator *orchestrator.Orchestrator
	logger       *observability.Logger
}

// NewQAHandler wires the QA handler to an already-assembled orchestrator.
func NewQAHandler(o *orchestrator.Orchestrator, logger *observability.Logger) *QAHandler {
	return &QAHandler{orchestrator: o, logger: logger}
}

// QARequest is the wire shape of a retrieve_for_qa call.
type QARequest struct {
	Query        string `json:"query"`
	SessionID    string `json:"session_id,omitempty"`
	TopK         int    `json:"top_k,omitempty"`
	LegalDomain  string `json:"legal_domain,omitempty"`
	CaseType     string `json:"case_type,omitempty"`
	Court        string `json:"court,omitempty"`
	Year         string `json:"year,omitempty"`
}

// QAResponse wraps the ranked results with the elapsed retrieval time.
type QAResponse struct {
	Results    []models.RankedResult `json:"results"`
	TotalHits  int                   `json:"total_hits"`
	SearchTime float64               `json:"search_time_ms"`
}

// Ask handles POST /api/v1/qa
func (h *QAHandler) Ask(c *fiber.Ctx) error {
	var req QARequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query is required",
		})
	}

	if h.orchestrator == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "retrieval engine not configured",
		})
	}

	results := h.orchestrator.RetrieveForQA(c.Context(), orchestrator.Request{
		Query:     req.Query,
		SessionID: req.SessionID,
		TopK:      req.TopK,
		Filters: semantic.Filters{
			LegalDomain: req.LegalDomain,
			CaseType:    req.CaseType,
			Court:       req.Court,
			Year:        req.Year,
		},
	})

	var elapsedMs float64
	if len(results) > 0 {
		elapsedMs = float64(results[0].RetrievalTime.Microseconds()) / 1000.0
	}

	return c.JSON(QAResponse{
		Results:    results,
		TotalHits:  len(results),
		SearchTime: elapsedMs,
	})
}

package handlers

import (
	"net/http"

	"legalbridge-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CaseHandler handles HTTP requests for the case-submission wizard
type CaseHandler struct {
	caseService *service.CaseService
	log         *zap.Logger
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(caseService *service.CaseService, log *zap.Logger) *CaseHandler {
	return &CaseHandler{
		caseService: caseService,
		log:         log,
	}
}

// StartCase handles POST /api/cases
func (h *CaseHandler) StartCase(c *gin.Context) {
	const op = "handlers.CaseHandler.StartCase"

	view, err := h.caseService.Start(c.Request.Context(), c.Query("category"))
	if err != nil {
		fail(c, h.log, op, err)
		return
	}

	h.log.Info("case session started", zap.String("op", op), zap.String("session_id", view.ID.String()))
	respondOK(c, http.StatusCreated, view)
}

// GetCase handles GET /api/cases/:id
func (h *CaseHandler) GetCase(c *gin.Context) {
	const op = "handlers.CaseHandler.GetCase"

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	view, err := h.caseService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.log, op, err)
		return
	}
	respondOK(c, http.StatusOK, view)
}

// UpdateCase handles PUT /api/cases/:id
func (h *CaseHandler) UpdateCase(c *gin.Context) {
	const op = "handlers.CaseHandler.UpdateCase"

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.DraftUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, badRequest("INVALID_REQUEST", err.Error()))
		return
	}

	view, err := h.caseService.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, h.log, op, err)
		return
	}
	respondOK(c, http.StatusOK, view)
}

// NextStep handles POST /api/cases/:id/next
func (h *CaseHandler) NextStep(c *gin.Context) {
	const op = "handlers.CaseHandler.NextStep"

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.caseService.Next(c.Request.Context(), id)
	if err != nil {
		fail(c, h.log, op, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

// PreviousStep handles POST /api/cases/:id/back
func (h *CaseHandler) PreviousStep(c *gin.Context) {
	const op = "handlers.CaseHandler.PreviousStep"

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	view, err := h.caseService.Back(c.Request.Context(), id)
	if err != nil {
		fail(c, h.log, op, err)
		return
	}
	respondOK(c, http.StatusOK, view)
}

// DiscardCase handles DELETE /api/cases/:id
func (h *CaseHandler) DiscardCase(c *gin.Context) {
	const op = "handlers.CaseHandler.DiscardCase"

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.caseService.Discard(c.Request.Context(), id); err != nil {
		fail(c, h.log, op, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"discarded": true})
}

package handlers

import (
	"net/http"

	"legalbridge-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConsentHandler handles HTTP requests for consent gates
type ConsentHandler struct {
	consent *service.ConsentService
	log     *zap.Logger
}

// NewConsentHandler creates a new consent handler
func NewConsentHandler(consent *service.ConsentService, log *zap.Logger) *ConsentHandler {
	return &ConsentHandler{
		consent: consent,
		log:     log,
	}
}

// SetAffirmationRequest toggles one checkbox of a gate
type SetAffirmationRequest struct {
	Index   *int `json:"index" binding:"required"`
	Checked bool `json:"checked"`
}

// OpenGate handles POST /api/consent
func (h *ConsentHandler) OpenGate(c *gin.Context) {
	const op = "handlers.ConsentHandler.OpenGate"

	var req service.OpenRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, badRequest("INVALID_REQUEST", err.Error()))
			return
		}
	}

	gate, err := h.consent.Open(c.Request.Context(), req)
	if err != nil {
		fail(c, h.log, op, err)
		return
	}
	respondOK(c, http.StatusCreated, gate)
}

// GetGate handles GET /api/consent/:id
func (h *ConsentHandler) GetGate(c *gin.Context) {
	const op = "handlers.ConsentHandler.GetGate"

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	gate, err := h.consent.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.log, op, err)
		return
	}
	respondOK(c, http.StatusOK, gate)
}

// SetAffirmation handles PUT /api/consent/:id
func (h *ConsentHandler) SetAffirmation(c *gin.Context) {
	const op = "handlers.ConsentHandler.SetAffirmation"

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req SetAffirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, badRequest("INVALID_REQUEST", err.Error()))
		return
	}

	gate, err := h.consent.Set(c.Request.Context(), id, *req.Index, req.Checked)
	if err != nil {
		fail(c, h.log, op, err)
		return
	}
	respondOK(c, http.StatusOK, gate)
}

// AcceptGate handles POST /api/consent/:id/accept
func (h *ConsentHandler) AcceptGate(c *gin.Context) {
	const op = "handlers.ConsentHandler.AcceptGate"

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.consent.Accept(c.Request.Context(), id)
	if err != nil {
		fail(c, h.log, op, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

// CancelGate handles POST /api/consent/:id/cancel
func (h *ConsentHandler) CancelGate(c *gin.Context) {
	const op = "handlers.ConsentHandler.CancelGate"

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.consent.Cancel(c.Request.Context(), id); err != nil {
		fail(c, h.log, op, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"closed": true})
}

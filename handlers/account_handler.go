package handlers

import (
	"net/http"

	"legalbridge-backend/models"
	"legalbridge-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccountHandler handles sign-in and contributor applications
type AccountHandler struct {
	accounts *service.AccountService
	log      *zap.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts *service.AccountService, log *zap.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		log:      log,
	}
}

// SignIn handles POST /api/auth/signin
func (h *AccountHandler) SignIn(c *gin.Context) {
	const op = "handlers.AccountHandler.SignIn"

	var req models.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, badRequest("INVALID_REQUEST", err.Error()))
		return
	}

	notification, err := h.accounts.SignIn(c.Request.Context(), req)
	if err != nil {
		fail(c, h.log, op, err)
		return
	}
	respondOK(c, http.StatusOK, notification)
}

// SignInWithGoogle handles POST /api/auth/google
func (h *AccountHandler) SignInWithGoogle(c *gin.Context) {
	const op = "handlers.AccountHandler.SignInWithGoogle"

	notification, err := h.accounts.SignInWithGoogle(c.Request.Context())
	if err != nil {
		fail(c, h.log, op, err)
		return
	}
	respondOK(c, http.StatusOK, notification)
}

// SubmitApplication handles POST /api/applications
func (h *AccountHandler) SubmitApplication(c *gin.Context) {
	const op = "handlers.AccountHandler.SubmitApplication"

	var req models.ContributorApplication
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, badRequest("INVALID_REQUEST", err.Error()))
		return
	}

	notification, err := h.accounts.SubmitApplication(c.Request.Context(), req)
	if err != nil {
		fail(c, h.log, op, err)
		return
	}
	respondOK(c, http.StatusOK, notification)
}

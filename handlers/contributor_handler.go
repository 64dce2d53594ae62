package handlers

import (
	"net/http"

	"legalbridge-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContributorHandler serves the contributor directory
type ContributorHandler struct {
	directory *service.DirectoryService
	consent   *service.ConsentService
	log       *zap.Logger
}

// NewContributorHandler creates a new contributor handler
func NewContributorHandler(directory *service.DirectoryService, consent *service.ConsentService, log *zap.Logger) *ContributorHandler {
	return &ContributorHandler{
		directory: directory,
		consent:   consent,
		log:       log,
	}
}

// ListContributors handles GET /api/contributors?q=&region=&role=
func (h *ContributorHandler) ListContributors(c *gin.Context) {
	const op = "handlers.ContributorHandler.ListContributors"

	result, err := h.directory.Search(c.Request.Context(), service.ContributorFilter{
		Query:  c.Query("q"),
		Region: c.Query("region"),
		Role:   c.Query("role"),
	})
	if err != nil {
		fail(c, h.log, op, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

// GetContributor handles GET /api/contributors/:id
func (h *ContributorHandler) GetContributor(c *gin.Context) {
	const op = "handlers.ContributorHandler.GetContributor"

	contributor, err := h.directory.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.log, op, err)
		return
	}
	respondOK(c, http.StatusOK, service.NewContributorCard(*contributor))
}

// Connect handles POST /api/contributors/:id/connect
func (h *ContributorHandler) Connect(c *gin.Context) {
	const op = "handlers.ContributorHandler.Connect"

	gate, err := h.consent.Connect(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.log, op, err)
		return
	}
	respondOK(c, http.StatusCreated, gate)
}

package handlers

import (
	"net/http"

	"legalbridge-backend/models"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the static reference data the pages render
type CatalogHandler struct{}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	respondOK(c, http.StatusOK, models.CaseCategories)
}

// GetCategory handles GET /api/categories/:id
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category, ok := models.FindCategory(c.Param("id"))
	if !ok {
		respondError(c, apiError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "case category not found"})
		return
	}
	respondOK(c, http.StatusOK, category)
}

// ListRegions handles GET /api/regions
func (h *CatalogHandler) ListRegions(c *gin.Context) {
	respondOK(c, http.StatusOK, models.Regions)
}

// HowItWorks handles GET /api/how-it-works
func (h *CatalogHandler) HowItWorks(c *gin.Context) {
	respondOK(c, http.StatusOK, models.HowItWorks)
}

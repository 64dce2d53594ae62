package handlers

import (
	"errors"
	"net/http"

	"legalbridge-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// apiError is the error half of the response envelope
type apiError struct {
	Status  int               `json:"-"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, e apiError) {
	c.JSON(e.Status, gin.H{
		"success": false,
		"error":   e,
	})
}

func badRequest(code, message string) apiError {
	return apiError{Status: http.StatusBadRequest, Code: code, Message: message}
}

// resolveError maps service errors onto stable envelope codes
func resolveError(err error) apiError {
	var stepErr *service.StepError
	if errors.As(err, &stepErr) {
		return apiError{
			Status:  http.StatusUnprocessableEntity,
			Code:    "STEP_INCOMPLETE",
			Message: "Please complete all required fields",
			Fields:  stepErr.Fields,
		}
	}
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return apiError{
			Status:  http.StatusBadRequest,
			Code:    "VALIDATION_FAILED",
			Message: "Please fix the errors in the form",
			Fields:  verr.Fields,
		}
	}

	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrGateNotFound),
		errors.Is(err, service.ErrContributorNotFound),
		errors.Is(err, service.ErrCategoryNotFound):
		return apiError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, service.ErrConsentIncomplete):
		return apiError{Status: http.StatusConflict, Code: "CONSENT_INCOMPLETE", Message: err.Error()}
	case errors.Is(err, service.ErrContributorUnavailable):
		return apiError{Status: http.StatusConflict, Code: "CONTRIBUTOR_UNAVAILABLE", Message: err.Error()}
	case errors.Is(err, service.ErrWizardComplete):
		return apiError{Status: http.StatusConflict, Code: "CASE_SUBMITTED", Message: err.Error()}
	case errors.Is(err, service.ErrNotAtReview):
		return apiError{Status: http.StatusConflict, Code: "NOT_AT_REVIEW", Message: err.Error()}
	case errors.Is(err, service.ErrFileIndexOutOfRange):
		return badRequest("INVALID_FILE_INDEX", err.Error())
	case errors.Is(err, service.ErrAffirmationOutOfRange):
		return badRequest("INVALID_AFFIRMATION_INDEX", err.Error())
	default:
		return apiError{Status: http.StatusInternalServerError, Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}
	}
}

// fail logs err under op and writes its envelope
func fail(c *gin.Context, log *zap.Logger, op string, err error) {
	e := resolveError(err)
	if e.Status >= http.StatusInternalServerError {
		log.Error(op+": request failed", zap.String("op", op), zap.Error(err))
	} else {
		log.Debug(op+": request rejected", zap.String("op", op), zap.String("code", e.Code), zap.Error(err))
	}
	respondError(c, e)
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		respondError(c, badRequest("INVALID_ID", "Invalid "+param+" format"))
		return uuid.Nil, false
	}
	return id, true
}

package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"legalbridge-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileHandler handles staging of evidence files on a wizard session
type FileHandler struct {
	caseService *service.CaseService
	log         *zap.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(caseService *service.CaseService, log *zap.Logger) *FileHandler {
	return &FileHandler{
		caseService: caseService,
		log:         log,
	}
}

// StageFiles handles POST /api/cases/:id/files
func (h *FileHandler) StageFiles(c *gin.Context) {
	const op = "handlers.FileHandler.StageFiles"

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, badRequest("INVALID_REQUEST", "Request must be multipart/form-data"))
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		respondError(c, badRequest("MISSING_FILE", "At least one file is required"))
		return
	}

	batch := make([]service.FileUpload, 0, len(headers))
	for _, fh := range headers {
		batch = append(batch, uploadFromHeader(fh))
	}

	result, err := h.caseService.StageFiles(c.Request.Context(), id, batch)
	if err != nil {
		fail(c, h.log, op, err)
		return
	}

	h.log.Info("files staged",
		zap.String("op", op),
		zap.String("session_id", id.String()),
		zap.Int("received", len(batch)),
		zap.Int("rejected", len(result.Rejected)),
	)
	respondOK(c, http.StatusOK, result)
}

// RemoveFile handles DELETE /api/cases/:id/files/:index
func (h *FileHandler) RemoveFile(c *gin.Context) {
	const op = "handlers.FileHandler.RemoveFile"

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondError(c, badRequest("INVALID_FILE_INDEX", "File index must be an integer"))
		return
	}

	result, err := h.caseService.RemoveFile(c.Request.Context(), id, index)
	if err != nil {
		fail(c, h.log, op, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

func uploadFromHeader(fh *multipart.FileHeader) service.FileUpload {
	return service.FileUpload{
		Name:     fh.Filename,
		Size:     fh.Size,
		MimeType: service.DetectMimeType(fh.Header.Get("Content-Type"), fh.Filename),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medgen/internal/domain"
	"medgen/internal/service"
)

// DocumentHandler handles ad hoc single-document analysis.
type DocumentHandler struct {
	reportSvc service.ReportService
	maxBytes  int64
}

// NewDocumentHandler creates a new DocumentHandler. maxBytes bounds the
// accepted upload size.
func NewDocumentHandler(reportSvc service.ReportService, maxBytes int64) *DocumentHandler {
	return &DocumentHandler{reportSvc: reportSvc, maxBytes: maxBytes}
}

// Analyze handles POST /api/v1/documents/analyze
// Multipart form: "file" (the document) and "kind" (pdf or image).
func (h *DocumentHandler) Analyze(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file is required")
		return
	}
	kind, ok := domain.ParseAssetKind(c.PostForm("kind"))
	if !ok || kind == domain.AssetKindUnknown {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "kind must be pdf or image")
		return
	}
	if h.maxBytes > 0 && fileHeader.Size > h.maxBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read uploaded file")
		return
	}
	defer func() { _ = file.Close() }()

	analysis, err := h.reportSvc.AnalyzeDocument(c.Request.Context(), &service.AnalyzeDocumentInput{
		FileName: fileHeader.Filename,
		Kind:     kind,
		File:     file,
		MaxBytes: h.maxBytes,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, analysis)
}

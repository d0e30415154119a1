package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"medgen/internal/service"
)

// ReportHandler handles report generation endpoints.
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// GenerateReportRequest is the request body for report generation.
type GenerateReportRequest struct {
	PatientID string `json:"patient_id" binding:"required"`
}

// Generate handles POST /api/v1/reports
func (h *ReportHandler) Generate(c *gin.Context) {
	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "patient_id is required")
		return
	}

	rep, err := h.reportSvc.GenerateReport(c.Request.Context(), req.PatientID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rep)
}

// Audit handles GET /api/v1/reports/:patient_id/audit
func (h *ReportHandler) Audit(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, total, err := h.reportSvc.ListAudit(c.Request.Context(), c.Param("patient_id"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"entries": entries, "total": total})
}

// GetArchived handles GET /api/v1/reports/:patient_id/archived/:timestamp
func (h *ReportHandler) GetArchived(c *gin.Context) {
	rep, err := h.reportSvc.GetArchivedReport(c.Request.Context(), c.Param("patient_id"), c.Param("timestamp"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rep)
}

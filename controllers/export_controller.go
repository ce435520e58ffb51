package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andrey156p/taskflow/config"
	"github.com/andrey156p/taskflow/services"
)

// ExportController streams the week-grouped spreadsheet.
type ExportController struct {
	svc    TaskManager
	report *services.ReportService
}

func NewExportController(svc TaskManager, report *services.ReportService) *ExportController {
	return &ExportController{svc: svc, report: report}
}

// Export handles GET /api/export. Unlike the live list this includes archived
// tasks: the report is the audit trail.
func (ec *ExportController) Export(c *gin.Context) {
	tasks, err := ec.svc.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := ec.report.Generate(tasks)
	if err != nil {
		config.Logger.Errorw("report generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.ReportFilename))
	c.Data(http.StatusOK, services.ReportMIME, report.Bytes())
}

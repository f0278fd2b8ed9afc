package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/service"
)

// ReportsHandler exposes the monthly performance report.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reportService}
}

// Monthly handles GET /api/reports/monthly?month=&year=, defaulting to
// the current month.
func (h *ReportsHandler) Monthly(c *fiber.Ctx) error {
	accountID, err := requireAccountID(c)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	month := c.QueryInt("month", int(now.Month()))
	year := c.QueryInt("year", now.Year())

	report, err := h.reports.Monthly(c.UserContext(), accountID, month, year)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"report": report})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/service"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

// AttendanceHandler exposes the clock-in/out and summary endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendanceService}
}

// ClockIn handles POST /api/attendance/clock-in.
func (h *AttendanceHandler) ClockIn(c *fiber.Ctx) error {
	accountID, err := requireAccountID(c)
	if err != nil {
		return err
	}

	record, err := h.attendance.ClockIn(c.UserContext(), accountID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Clocked in successfully",
		"attendance": record,
	})
}

// ClockOut handles POST /api/attendance/clock-out.
func (h *AttendanceHandler) ClockOut(c *fiber.Ctx) error {
	accountID, err := requireAccountID(c)
	if err != nil {
		return err
	}

	record, err := h.attendance.ClockOut(c.UserContext(), accountID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Clocked out successfully",
		"attendance": record,
	})
}

// Today handles GET /api/attendance/today.
func (h *AttendanceHandler) Today(c *fiber.Ctx) error {
	accountID, err := requireAccountID(c)
	if err != nil {
		return err
	}

	summary, err := h.attendance.GetTodaySummary(c.UserContext(), accountID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"summary": summary})
}

// Weekly handles GET /api/attendance/weekly.
func (h *AttendanceHandler) Weekly(c *fiber.Ctx) error {
	accountID, err := requireAccountID(c)
	if err != nil {
		return err
	}

	week, err := h.attendance.GetWeeklyAttendance(c.UserContext(), accountID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"week": week})
}

// Monthly handles GET /api/attendance/monthly.
func (h *AttendanceHandler) Monthly(c *fiber.Ctx) error {
	accountID, err := requireAccountID(c)
	if err != nil {
		return err
	}

	stats, err := h.attendance.GetMonthlyStats(c.UserContext(), accountID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"stats": stats})
}

// requireAccountID pulls the authenticated account id set by the auth
// middleware.
func requireAccountID(c *fiber.Ctx) (string, error) {
	accountID, ok := auth.AccountIDFromContext(c)
	if !ok {
		return "", apperrors.NewUnauthorized("authentication required")
	}
	return accountID, nil
}

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/api/dto"
	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/service"
)

// LeaveHandler exposes leave-request endpoints.
type LeaveHandler struct {
	leaves *service.LeaveService
}

// NewLeaveHandler constructs handler.
func NewLeaveHandler(leaveService *service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaves: leaveService}
}

// Create handles POST /api/leave.
func (h *LeaveHandler) Create(c *fiber.Ctx) error {
	accountID, err := requireAccountID(c)
	if err != nil {
		return err
	}

	var req dto.LeaveCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	leave, err := h.leaves.Create(c.UserContext(), service.LeaveCreateInput{
		AccountID: accountID,
		LeaveType: req.LeaveType,
		FromDate:  req.FromDate,
		ToDate:    req.ToDate,
		Reason:    req.Reason,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"leave":   leave,
	})
}

// History handles GET /api/leave/history.
func (h *LeaveHandler) History(c *fiber.Ctx) error {
	accountID, err := requireAccountID(c)
	if err != nil {
		return err
	}

	history, err := h.leaves.History(c.UserContext(), accountID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"leaves": history})
}

// AdminList handles GET /api/admin/leave with an optional status
// filter.
func (h *LeaveHandler) AdminList(c *fiber.Ctx) error {
	leaves, err := h.leaves.ListAll(c.UserContext(), c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"leaves": leaves})
}

// Decide handles PATCH /api/admin/leave/:id.
func (h *LeaveHandler) Decide(c *fiber.Ctx) error {
	var req dto.LeaveDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	leave, err := h.leaves.Decide(c.UserContext(), c.Params("id"), domain.LeaveStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"leave":   leave,
	})
}

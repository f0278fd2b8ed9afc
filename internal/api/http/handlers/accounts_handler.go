package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/api/dto"
	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/service"
)

// AccountsHandler exposes employee provisioning and profile endpoints.
type AccountsHandler struct {
	accounts *service.AccountService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accountService *service.AccountService) *AccountsHandler {
	return &AccountsHandler{accounts: accountService}
}

// Register handles POST /api/admin/register.
func (h *AccountsHandler) Register(c *fiber.Ctx) error {
	var req dto.EmployeeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	accountID, err := h.accounts.CreateEmployee(c.UserContext(), service.EmployeeCreateInput{
		Name:        req.Name,
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		Department:  domain.Department(req.Department),
		Designation: domain.Designation(req.Designation),
		Phone:       req.Phone,
		EmployeeID:  req.EmployeeID,
		Gender:      domain.Gender(req.Gender),
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":    "Employee created",
		"account_id": accountID,
	})
}

// GrantAdmin handles POST /api/admin/grant.
func (h *AccountsHandler) GrantAdmin(c *fiber.Ctx) error {
	grantedBy, err := requireAccountID(c)
	if err != nil {
		return err
	}

	var req dto.AdminGrantRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.accounts.GrantAdmin(c.UserContext(), req.AccountID, grantedBy, req.PermissionLevel); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Admin privileges granted"})
}

// Profile handles GET /api/profile.
func (h *AccountsHandler) Profile(c *fiber.Ctx) error {
	accountID, err := requireAccountID(c)
	if err != nil {
		return err
	}

	profile, err := h.accounts.Profile(c.UserContext(), accountID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"profile": profile})
}

package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/config"
	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/repository"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

// AccountService provisions employee accounts. Creation spans three
// tables (account, credential, profile) and runs in one transaction.
type AccountService struct {
	accounts   repository.AccountRepository
	creds      repository.CredentialRepository
	profiles   repository.ProfileRepository
	tx         repository.TxRunner
	bcryptCost int
}

// AccountDependencies bundles repositories for the service.
type AccountDependencies struct {
	AccountRepo    repository.AccountRepository
	CredentialRepo repository.CredentialRepository
	ProfileRepo    repository.ProfileRepository
	Tx             repository.TxRunner
}

// NewAccountService constructs the service.
func NewAccountService(cfg config.AuthConfig, deps AccountDependencies) *AccountService {
	return &AccountService{
		accounts:   deps.AccountRepo,
		creds:      deps.CredentialRepo,
		profiles:   deps.ProfileRepo,
		tx:         deps.Tx,
		bcryptCost: cfg.BcryptCost,
	}
}

// EmployeeCreateInput describes a new employee. Name is required in its
// own right, not derived from any other field.
type EmployeeCreateInput struct {
	Name        string
	Username    string
	Password    string
	Email       *string
	Department  domain.Department
	Designation domain.Designation
	Phone       string
	EmployeeID  string
	Gender      domain.Gender
}

// CreateEmployee provisions an account with its credential and profile
// and returns the new account id.
func (s *AccountService) CreateEmployee(ctx context.Context, input EmployeeCreateInput) (string, error) {
	if input.Name == "" || input.Username == "" || input.Password == "" ||
		input.Phone == "" || input.EmployeeID == "" {
		return "", apperrors.NewValidationError("Missing required fields", nil)
	}
	if input.Gender != domain.GenderMale && input.Gender != domain.GenderFemale {
		return "", apperrors.NewValidationError("Invalid gender", nil)
	}
	if !validDepartment(input.Department) {
		return "", apperrors.NewValidationError("Invalid department", nil)
	}
	if !validDesignation(input.Designation) {
		return "", apperrors.NewValidationError("Invalid designation", nil)
	}

	if _, taken, err := s.creds.FindByUsername(ctx, input.Username); err != nil {
		return "", apperrors.NewInternalError(err)
	} else if taken {
		return "", apperrors.NewUsernameTaken()
	}

	passwordHash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}

	accountID := uuid.NewString()
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		account := &domain.Account{
			ID:     accountID,
			Role:   domain.RoleEmployee,
			Active: true,
			Name:   input.Name,
		}
		if err := s.accounts.Create(txCtx, account); err != nil {
			return err
		}

		cred := &domain.Credential{
			AccountID:    accountID,
			Username:     input.Username,
			PasswordHash: passwordHash,
		}
		if err := s.creds.Create(txCtx, cred); err != nil {
			if err == repository.ErrDuplicate {
				return apperrors.NewUsernameTaken()
			}
			return err
		}

		profile := &domain.EmployeeProfile{
			AccountID:   accountID,
			Name:        input.Name,
			Email:       input.Email,
			Department:  input.Department,
			Designation: input.Designation,
			Phone:       input.Phone,
			EmployeeID:  input.EmployeeID,
			Gender:      input.Gender,
		}
		if err := s.profiles.Create(txCtx, profile); err != nil {
			if err == repository.ErrDuplicate {
				return apperrors.NewConflict("Email, phone or employee id already in use")
			}
			return err
		}
		return nil
	})
	if err != nil {
		if apperrors.KindOf(err) != "" {
			return "", err
		}
		return "", apperrors.NewInternalError(err)
	}

	return accountID, nil
}

// GrantAdmin promotes an existing active account to administrator. The
// role flip and the grant row commit together; a grant without the
// admin role would never pass the admin check.
func (s *AccountService) GrantAdmin(ctx context.Context, accountID, grantedBy string, permissionLevel int) error {
	if permissionLevel < 1 || permissionLevel > 3 {
		return apperrors.NewValidationError("Permission level must be between 1 and 3", nil)
	}

	account, found, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if !found {
		return apperrors.NewNotFound("account")
	}
	if !account.Active {
		return apperrors.NewConflict("Cannot grant admin to an inactive account")
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		grant := &domain.AdminGrant{
			AccountID:       accountID,
			PermissionLevel: permissionLevel,
			GrantedBy:       &grantedBy,
		}
		if err := s.accounts.CreateAdminGrant(txCtx, grant); err != nil {
			if err == repository.ErrDuplicate {
				return apperrors.NewConflict("Account already has an admin grant")
			}
			return err
		}
		if _, err := s.accounts.UpdateRole(txCtx, accountID, domain.RoleAdmin); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if apperrors.KindOf(err) != "" {
			return err
		}
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Profile returns the employee profile for an account.
func (s *AccountService) Profile(ctx context.Context, accountID string) (*domain.EmployeeProfile, error) {
	profile, found, err := s.profiles.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !found {
		return nil, apperrors.NewNotFound("profile")
	}
	return profile, nil
}

func validDepartment(d domain.Department) bool {
	switch d {
	case domain.DepartmentSoftwareDevelopment, domain.DepartmentQA, domain.DepartmentDevOps,
		domain.DepartmentHR, domain.DepartmentFinance, domain.DepartmentSales:
		return true
	}
	return false
}

func validDesignation(d domain.Designation) bool {
	switch d {
	case domain.DesignationJuniorDeveloper, domain.DesignationDeveloper, domain.DesignationSeniorDeveloper,
		domain.DesignationTechLead, domain.DesignationEngineeringManager:
		return true
	}
	return false
}

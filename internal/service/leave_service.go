package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/events"
	"github.com/spec-kit/hr-service/internal/repository"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

const leaveDateInputFormat = "01/02/2006"

// leaveTypesByDisplay normalizes the caller-facing display names to the
// stored enum values; leaveTypeDisplay is the reverse mapping.
var leaveTypesByDisplay = map[string]domain.LeaveType{
	"Casual Leave":    domain.LeaveTypeCasual,
	"Sick Leave":      domain.LeaveTypeSick,
	"Annual Leave":    domain.LeaveTypeAnnual,
	"Emergency Leave": domain.LeaveTypeEmergency,
}

var leaveTypeDisplay = map[domain.LeaveType]string{
	domain.LeaveTypeCasual:    "Casual Leave",
	domain.LeaveTypeSick:      "Sick Leave",
	domain.LeaveTypeAnnual:    "Annual Leave",
	domain.LeaveTypeEmergency: "Emergency Leave",
}

// LeaveService manages leave requests and their approval lifecycle.
type LeaveService struct {
	leaves     repository.LeaveRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewLeaveService constructs the service.
func NewLeaveService(leaves repository.LeaveRepository, dispatcher events.Dispatcher) *LeaveService {
	return &LeaveService{
		leaves:     leaves,
		dispatcher: dispatcher,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// LeaveView is the caller-facing shape of one leave request.
type LeaveView struct {
	ID        string             `json:"leave_id"`
	LeaveType string             `json:"leave_type"`
	FromDate  string             `json:"from_date"`
	ToDate    string             `json:"to_date"`
	Days      int                `json:"days"`
	Reason    string             `json:"reason"`
	Status    domain.LeaveStatus `json:"status"`
	CreatedAt string             `json:"created_at"`
}

// AdminLeaveView adds the requesting employee's details for the admin
// listing.
type AdminLeaveView struct {
	LeaveView
	AccountID    string  `json:"account_id"`
	EmployeeName *string `json:"employee_name"`
	EmployeeID   *string `json:"employee_id"`
	Department   *string `json:"department"`
}

// LeaveCreateInput describes the request payload. Dates arrive in
// mm/dd/yyyy form; LeaveType is the display name.
type LeaveCreateInput struct {
	AccountID string
	LeaveType string
	FromDate  string
	ToDate    string
	Reason    string
}

// Create validates and persists a pending leave request. The day count
// is inclusive of both endpoints.
func (s *LeaveService) Create(ctx context.Context, input LeaveCreateInput) (*LeaveView, error) {
	if input.AccountID == "" || input.LeaveType == "" || input.FromDate == "" || input.ToDate == "" || input.Reason == "" {
		return nil, apperrors.NewValidationError("Missing required fields", nil)
	}

	leaveType, ok := leaveTypesByDisplay[input.LeaveType]
	if !ok {
		return nil, apperrors.NewValidationError("Invalid leave type", nil)
	}

	fromDate, err := time.ParseInLocation(leaveDateInputFormat, input.FromDate, time.UTC)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid date format. Use mm/dd/yyyy", nil)
	}
	toDate, err := time.ParseInLocation(leaveDateInputFormat, input.ToDate, time.UTC)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid date format. Use mm/dd/yyyy", nil)
	}
	if toDate.Before(fromDate) {
		return nil, apperrors.NewValidationError("To date cannot be before from date", nil)
	}

	days := int(toDate.Sub(fromDate).Hours()/24) + 1

	leave := &domain.LeaveRequest{
		ID:        uuid.NewString(),
		AccountID: input.AccountID,
		Type:      leaveType,
		FromDate:  fromDate,
		ToDate:    toDate,
		Days:      days,
		Reason:    strings.TrimSpace(input.Reason),
		Status:    domain.LeaveStatusPending,
	}
	if err := s.leaves.Create(ctx, leave); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventLeaveRequested,
			AccountID: leave.AccountID,
			Timestamp: s.now(),
			Payload: events.LeaveRequestedPayload{
				LeaveID: leave.ID,
				Type:    leave.Type,
				Days:    leave.Days,
			},
		})
	}
	return leaveViewOf(leave), nil
}

// History returns the account's leave requests, newest first.
func (s *LeaveService) History(ctx context.Context, accountID string) ([]LeaveView, error) {
	leaves, err := s.leaves.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	views := make([]LeaveView, 0, len(leaves))
	for i := range leaves {
		views = append(views, *leaveViewOf(&leaves[i]))
	}
	return views, nil
}

// ListAll returns every leave request with the requesting employee's
// details, optionally filtered by status.
func (s *LeaveService) ListAll(ctx context.Context, status string) ([]AdminLeaveView, error) {
	var filter *domain.LeaveStatus
	if status != "" {
		parsed := domain.LeaveStatus(status)
		switch parsed {
		case domain.LeaveStatusPending, domain.LeaveStatusApproved, domain.LeaveStatusRejected:
			filter = &parsed
		default:
			return nil, apperrors.NewValidationError("Invalid status filter", nil)
		}
	}

	items, err := s.leaves.ListAll(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	views := make([]AdminLeaveView, 0, len(items))
	for i := range items {
		item := &items[i]
		views = append(views, AdminLeaveView{
			LeaveView:    *leaveViewOf(&item.LeaveRequest),
			AccountID:    item.AccountID,
			EmployeeName: item.EmployeeName,
			EmployeeID:   item.EmployeeID,
			Department:   item.Department,
		})
	}
	return views, nil
}

// Decide approves or rejects a pending leave request. A request that
// has already been decided is left untouched.
func (s *LeaveService) Decide(ctx context.Context, leaveID string, status domain.LeaveStatus) (*LeaveView, error) {
	if status != domain.LeaveStatusApproved && status != domain.LeaveStatusRejected {
		return nil, apperrors.NewValidationError("Status must be approved or rejected", nil)
	}

	leave, found, err := s.leaves.FindByID(ctx, leaveID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !found {
		return nil, apperrors.NewLeaveNotFound()
	}
	if leave.Status != domain.LeaveStatusPending {
		return nil, apperrors.NewLeaveAlreadyDecided(string(leave.Status))
	}

	decidedAt := s.now()
	updated, err := s.leaves.UpdateStatus(ctx, leaveID, status, decidedAt)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !updated {
		// Decided concurrently between the read and the update.
		return nil, apperrors.NewLeaveAlreadyDecided(string(leave.Status))
	}

	leave.Status = status
	leave.UpdatedAt = decidedAt

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventLeaveDecided,
			AccountID: leave.AccountID,
			Timestamp: decidedAt,
			Payload: events.LeaveDecidedPayload{
				LeaveID: leave.ID,
				Status:  status,
			},
		})
	}
	return leaveViewOf(leave), nil
}

func leaveViewOf(leave *domain.LeaveRequest) *LeaveView {
	display, ok := leaveTypeDisplay[leave.Type]
	if !ok {
		display = string(leave.Type)
	}
	return &LeaveView{
		ID:        leave.ID,
		LeaveType: display,
		FromDate:  leave.FromDate.Format(dayFormat),
		ToDate:    leave.ToDate.Format(dayFormat),
		Days:      leave.Days,
		Reason:    leave.Reason,
		Status:    leave.Status,
		CreatedAt: leave.CreatedAt.Format(time.RFC3339),
	}
}

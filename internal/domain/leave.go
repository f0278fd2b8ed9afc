package domain

import "time"

// LeaveType enumerates the supported leave categories.
type LeaveType string

const (
	LeaveTypeCasual    LeaveType = "casual_leave"
	LeaveTypeSick      LeaveType = "sick_leave"
	LeaveTypeAnnual    LeaveType = "annual_leave"
	LeaveTypeEmergency LeaveType = "emergency_leave"
)

// LeaveStatus tracks the approval lifecycle of a request.
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

// LeaveRequest is an employee's request for a contiguous span of days
// off. Days is the inclusive count between FromDate and ToDate.
type LeaveRequest struct {
	ID        string
	AccountID string
	Type      LeaveType
	FromDate  time.Time
	ToDate    time.Time
	Days      int
	Reason    string
	Status    LeaveStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

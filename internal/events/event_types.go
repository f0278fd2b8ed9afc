package events

import (
	"time"

	"github.com/spec-kit/hr-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventClockedIn      EventType = "attendance_clocked_in"
	EventClockedOut     EventType = "attendance_clocked_out"
	EventLeaveRequested EventType = "leave_requested"
	EventLeaveDecided   EventType = "leave_request_decided"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	AccountID string      `json:"account_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ClockedInPayload payload.
type ClockedInPayload struct {
	Day     string    `json:"day"`
	ClockIn time.Time `json:"clock_in"`
}

// ClockedOutPayload payload.
type ClockedOutPayload struct {
	Day         string    `json:"day"`
	ClockOut    time.Time `json:"clock_out"`
	HoursWorked float64   `json:"hours_worked"`
}

// LeaveRequestedPayload payload.
type LeaveRequestedPayload struct {
	LeaveID string           `json:"leave_id"`
	Type    domain.LeaveType `json:"type"`
	Days    int              `json:"days"`
}

// LeaveDecidedPayload payload.
type LeaveDecidedPayload struct {
	LeaveID string             `json:"leave_id"`
	Status  domain.LeaveStatus `json:"status"`
}

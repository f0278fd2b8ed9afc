package dto

// LeaveCreateRequest payload for a new leave request. Dates use
// mm/dd/yyyy; LeaveType is the display name ("Casual Leave" etc).
type LeaveCreateRequest struct {
	LeaveType string `json:"leave_type"`
	FromDate  string `json:"from_date"`
	ToDate    string `json:"to_date"`
	Reason    string `json:"reason"`
}

// LeaveDecisionRequest payload for approving or rejecting a request.
type LeaveDecisionRequest struct {
	Status string `json:"status"`
}

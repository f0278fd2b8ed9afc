package dto

// EmployeeCreateRequest payload for admin-driven employee creation.
// Name is a required field in its own right.
type EmployeeCreateRequest struct {
	Name        string  `json:"name"`
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	Email       *string `json:"email"`
	Department  string  `json:"department"`
	Designation string  `json:"designation"`
	Phone       string  `json:"phone"`
	EmployeeID  string  `json:"employee_id"`
	Gender      string  `json:"gender"`
}

// AdminGrantRequest payload for promoting an account to admin.
type AdminGrantRequest struct {
	AccountID       string `json:"account_id"`
	PermissionLevel int    `json:"permission_level"`
}

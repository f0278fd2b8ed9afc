package domain

import "time"

// Department enumerates the org units employees belong to.
type Department string

const (
	DepartmentSoftwareDevelopment Department = "software_development"
	DepartmentQA                  Department = "qa"
	DepartmentDevOps              Department = "devops"
	DepartmentHR                  Department = "hr"
	DepartmentFinance             Department = "finance"
	DepartmentSales               Department = "sales"
)

// Designation enumerates job titles.
type Designation string

const (
	DesignationJuniorDeveloper    Designation = "junior_developer"
	DesignationDeveloper          Designation = "developer"
	DesignationSeniorDeveloper    Designation = "senior_developer"
	DesignationTechLead           Designation = "tech_lead"
	DesignationEngineeringManager Designation = "engineering_manager"
)

// Gender as captured on the employee profile.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// EmployeeProfile carries the HR-facing details of an account.
type EmployeeProfile struct {
	AccountID   string
	Name        string
	Email       *string
	Department  Department
	Designation Designation
	Phone       string
	EmployeeID  string
	Gender      Gender
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

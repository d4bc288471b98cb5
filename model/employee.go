// model/employee.go
package model

import "time"

// Employee is the directory record for the subject of a request. Only the
// fields the workflow core needs are modelled here; payroll attributes live
// in their own service.
type Employee struct {
	ID            string    `json:"id"`
	EmpNo         string    `json:"emp_no"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	DivisionID    string    `json:"division_id,omitempty"`
	DepartmentID  string    `json:"department_id,omitempty"`
	DesignationID string    `json:"designation_id,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AttendanceDay is a read-only view of one employee-day from the attendance
// store, consulted as a prerequisite gate for permission requests.
type AttendanceDay struct {
	EmployeeNo      string     `json:"employee_no"`
	Date            string     `json:"date"` // YYYY-MM-DD
	InTime          *time.Time `json:"in_time,omitempty"`
	OutTime         *time.Time `json:"out_time,omitempty"`
	PermissionHours float64    `json:"permission_hours"`
	PermissionCount int        `json:"permission_count"`
}

// HasLoggedIn reports whether an in-time exists for the day.
func (a *AttendanceDay) HasLoggedIn() bool {
	return a != nil && a.InTime != nil
}

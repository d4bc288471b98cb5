// model/actor.go
package model

// Role is the closed set of actor roles known to the workflow engine.
type Role string

const (
	RoleEmployee       Role = "employee"
	RoleHOD            Role = "hod"
	RoleManager        Role = "manager"
	RoleHR             Role = "hr"
	RoleFinalAuthority Role = "final_authority"
	RoleSubAdmin       Role = "sub_admin"
	RoleSuperAdmin     Role = "super_admin"
)

// IsGlobalAdmin reports whether the role bypasses jurisdiction checks.
func (r Role) IsGlobalAdmin() bool {
	return r == RoleSubAdmin || r == RoleSuperAdmin
}

// DataScope bounds the set of employees an actor may see or act on.
type DataScope string

const (
	ScopeOwn         DataScope = "own"
	ScopeDepartment  DataScope = "department"
	ScopeDepartments DataScope = "departments"
	ScopeDivision    DataScope = "division"
	ScopeDivisions   DataScope = "divisions"
	ScopeAll         DataScope = "all"
)

// DefaultScopeForRole maps a role to its data scope when the user record
// carries none.
func DefaultScopeForRole(r Role) DataScope {
	switch r {
	case RoleHOD:
		return ScopeDepartment
	case RoleHR:
		return ScopeDepartments
	case RoleManager:
		return ScopeDivision
	case RoleSubAdmin, RoleSuperAdmin:
		return ScopeAll
	default:
		return ScopeOwn
	}
}

// DivisionMapping pairs a division with an optional department subset. An
// empty Departments list grants every department within the division.
type DivisionMapping struct {
	Division    string   `json:"division"`
	Departments []string `json:"departments"`
}

// ActorScope carries everything jurisdiction decisions need about the
// acting user. It is resolved from the user store per request; an
// unresolvable actor is denied, never allowed.
type ActorScope struct {
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Role       Role      `json:"role"`
	DataScope  DataScope `json:"data_scope,omitempty"`
	EmployeeID string    `json:"employee_id,omitempty"`
	EmployeeNo string    `json:"employee_no,omitempty"`

	Department  string   `json:"department,omitempty"`
	Departments []string `json:"departments,omitempty"`

	DivisionMapping  []DivisionMapping `json:"division_mapping,omitempty"`
	AllowedDivisions []string          `json:"allowed_divisions,omitempty"`
}

// EffectiveScope returns the explicit DataScope, or the role default.
func (a *ActorScope) EffectiveScope() DataScope {
	if a.DataScope != "" {
		return a.DataScope
	}
	return DefaultScopeForRole(a.Role)
}

// ScopeTarget is the organizational position of the record or employee a
// jurisdiction check is evaluated against.
type ScopeTarget struct {
	EmployeeID  string `json:"employee_id,omitempty"`
	EmployeeNo  string `json:"employee_no,omitempty"`
	Division    string `json:"division,omitempty"`
	Department  string `json:"department,omitempty"`
	RequestedBy string `json:"requested_by,omitempty"`
}

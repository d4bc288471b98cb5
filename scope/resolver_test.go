package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	hrms_errors "github.com/sakethdamerla/li-hrms-sub003/errors"
	"github.com/sakethdamerla/li-hrms-sub003/model"
	"github.com/sakethdamerla/li-hrms-sub003/scope"
)

func TestCheckJurisdiction_NilActorDenied(t *testing.T) {
	err := scope.CheckJurisdiction(nil, model.ScopeTarget{EmployeeID: "E1"})
	assert.ErrorIs(t, err, hrms_errors.ErrUnauthorized)
}

func TestCheckJurisdiction_GlobalAdminBypassesEverything(t *testing.T) {
	actor := &model.ActorScope{UserID: "u1", Role: model.RoleSuperAdmin}
	err := scope.CheckJurisdiction(actor, model.ScopeTarget{Division: "DIV9", Department: "D9"})
	assert.NoError(t, err)
}

func TestCheckJurisdiction_ScopeAllBypassesEverything(t *testing.T) {
	actor := &model.ActorScope{UserID: "u1", Role: model.RoleHR, DataScope: model.ScopeAll}
	err := scope.CheckJurisdiction(actor, model.ScopeTarget{Division: "DIV9"})
	assert.NoError(t, err)
}

func TestCheckJurisdiction_Ownership(t *testing.T) {
	tests := []struct {
		name   string
		actor  model.ActorScope
		target model.ScopeTarget
	}{
		{
			name:   "by employee id",
			actor:  model.ActorScope{UserID: "u1", Role: model.RoleEmployee, EmployeeID: "E1"},
			target: model.ScopeTarget{EmployeeID: "E1", Department: "OTHER"},
		},
		{
			name:   "by employee number",
			actor:  model.ActorScope{UserID: "u1", Role: model.RoleEmployee, EmployeeNo: "1001"},
			target: model.ScopeTarget{EmployeeNo: "1001"},
		},
		{
			name:   "by requester",
			actor:  model.ActorScope{UserID: "u1", Role: model.RoleEmployee},
			target: model.ScopeTarget{RequestedBy: "u1"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.NoError(t, scope.CheckJurisdiction(&tc.actor, tc.target))
		})
	}
}

func TestCheckJurisdiction_OwnScopeDeniedBeyondSelf(t *testing.T) {
	// An own-scoped actor's department never grants access to colleagues.
	actor := &model.ActorScope{
		UserID:     "u1",
		Role:       model.RoleEmployee,
		EmployeeID: "E1",
		Department: "D1",
	}

	assert.NoError(t, scope.CheckJurisdiction(actor, model.ScopeTarget{EmployeeID: "E1", Department: "D1"}))
	assert.ErrorIs(t,
		scope.CheckJurisdiction(actor, model.ScopeTarget{EmployeeID: "E2", Department: "D1"}),
		hrms_errors.ErrOutOfJurisdiction)
}

func TestCheckJurisdiction_ExplicitOwnScopeOverridesRoleGrants(t *testing.T) {
	actor := &model.ActorScope{
		UserID:           "u1",
		Role:             model.RoleHOD,
		DataScope:        model.ScopeOwn,
		Department:       "D1",
		AllowedDivisions: []string{"DIV1"},
	}

	assert.ErrorIs(t,
		scope.CheckJurisdiction(actor, model.ScopeTarget{Division: "DIV1", Department: "D1"}),
		hrms_errors.ErrOutOfJurisdiction)
}

func TestCheckJurisdiction_DepartmentScopeIgnoresDivisionGrants(t *testing.T) {
	actor := &model.ActorScope{
		UserID:           "u1",
		Role:             model.RoleHOD,
		Department:       "D1",
		AllowedDivisions: []string{"DIV1"},
	}

	assert.NoError(t, scope.CheckJurisdiction(actor, model.ScopeTarget{Department: "D1"}))
	assert.ErrorIs(t,
		scope.CheckJurisdiction(actor, model.ScopeTarget{Division: "DIV1", Department: "D9"}),
		hrms_errors.ErrOutOfJurisdiction)
}

func TestCheckJurisdiction_DivisionMapping(t *testing.T) {
	actor := &model.ActorScope{
		UserID:    "u1",
		Role:      model.RoleHR,
		DataScope: model.ScopeDivisions,
		DivisionMapping: []model.DivisionMapping{
			{Division: "DIV1", Departments: []string{"D1", "D2"}},
			{Division: "DIV2"}, // whole division
		},
	}

	assert.NoError(t, scope.CheckJurisdiction(actor, model.ScopeTarget{Division: "DIV1", Department: "D2"}))
	assert.NoError(t, scope.CheckJurisdiction(actor, model.ScopeTarget{Division: "DIV2", Department: "ANY"}))
	assert.ErrorIs(t,
		scope.CheckJurisdiction(actor, model.ScopeTarget{Division: "DIV1", Department: "D3"}),
		hrms_errors.ErrOutOfJurisdiction)
	assert.ErrorIs(t,
		scope.CheckJurisdiction(actor, model.ScopeTarget{Division: "DIV3", Department: "D1"}),
		hrms_errors.ErrOutOfJurisdiction)
}

func TestCheckJurisdiction_DivisionMappingShadowsDepartmentLists(t *testing.T) {
	// Once a division mapping exists it is authoritative: the flat
	// department list no longer widens access.
	actor := &model.ActorScope{
		UserID:          "u1",
		Role:            model.RoleHR,
		DataScope:       model.ScopeDivisions,
		Departments:     []string{"D5"},
		DivisionMapping: []model.DivisionMapping{{Division: "DIV1", Departments: []string{"D1"}}},
	}

	err := scope.CheckJurisdiction(actor, model.ScopeTarget{Division: "DIV2", Department: "D5"})

	assert.ErrorIs(t, err, hrms_errors.ErrOutOfJurisdiction)
}

func TestCheckJurisdiction_AllowedDivisions(t *testing.T) {
	actor := &model.ActorScope{
		UserID:           "u1",
		Role:             model.RoleManager,
		AllowedDivisions: []string{"DIV1", "DIV2"},
	}

	assert.NoError(t, scope.CheckJurisdiction(actor, model.ScopeTarget{Division: "DIV2"}))
	assert.ErrorIs(t,
		scope.CheckJurisdiction(actor, model.ScopeTarget{Division: "DIV3"}),
		hrms_errors.ErrOutOfJurisdiction)
	// A target with no division cannot match a division grant.
	assert.ErrorIs(t,
		scope.CheckJurisdiction(actor, model.ScopeTarget{Department: "D1"}),
		hrms_errors.ErrOutOfJurisdiction)
}

func TestCheckJurisdiction_DepartmentLists(t *testing.T) {
	actor := &model.ActorScope{
		UserID:      "u1",
		Role:        model.RoleHOD,
		Department:  "D1",
		Departments: []string{"D2"},
	}

	assert.NoError(t, scope.CheckJurisdiction(actor, model.ScopeTarget{Department: "D1"}))
	assert.NoError(t, scope.CheckJurisdiction(actor, model.ScopeTarget{Department: "D2"}))
	assert.ErrorIs(t,
		scope.CheckJurisdiction(actor, model.ScopeTarget{Department: "D3"}),
		hrms_errors.ErrOutOfJurisdiction)
}

func TestCheckJurisdiction_FailsClosedOnEmptyScope(t *testing.T) {
	actor := &model.ActorScope{UserID: "u1", Role: model.RoleHOD}

	err := scope.CheckJurisdiction(actor, model.ScopeTarget{Department: "D1"})

	assert.ErrorIs(t, err, hrms_errors.ErrOutOfJurisdiction)
}

func TestBuildScopeFilter_NilActorMatchesNothing(t *testing.T) {
	p := scope.BuildScopeFilter(nil)
	assert.True(t, p.IsNone())
}

func TestBuildScopeFilter_GlobalAdminMatchesEverything(t *testing.T) {
	p := scope.BuildScopeFilter(&model.ActorScope{UserID: "u1", Role: model.RoleSubAdmin})
	assert.True(t, p.IsAll())
}

func TestBuildScopeFilter_OwnershipOnly(t *testing.T) {
	actor := &model.ActorScope{UserID: "u1", Role: model.RoleEmployee, EmployeeID: "E1"}

	p := scope.BuildScopeFilter(actor)

	assert.Contains(t, p.Clause, "r.employeeId = $ownEmployeeId")
	assert.Contains(t, p.Clause, "r.requestedBy = $ownUserId")
	assert.Equal(t, "E1", p.Params["ownEmployeeId"])
	assert.Equal(t, "u1", p.Params["ownUserId"])
}

func TestBuildScopeFilter_OwnScopeExcludesDepartment(t *testing.T) {
	// A department on the user record must not leak into an own-scoped
	// actor's visibility.
	actor := &model.ActorScope{
		UserID:     "u1",
		Role:       model.RoleEmployee,
		EmployeeID: "E1",
		Department: "D1",
	}

	p := scope.BuildScopeFilter(actor)

	assert.NotContains(t, p.Clause, "r.departmentId")
	assert.NotContains(t, p.Clause, "r.divisionId")
	assert.Contains(t, p.Clause, "r.employeeId = $ownEmployeeId")
}

func TestBuildScopeFilter_Departments(t *testing.T) {
	actor := &model.ActorScope{
		UserID:      "u1",
		Role:        model.RoleHOD,
		Department:  "D1",
		Departments: []string{"D2"},
	}

	p := scope.BuildScopeFilter(actor)

	assert.Contains(t, p.Clause, "r.departmentId IN $scopeDepartments")
	assert.Equal(t, []string{"D1", "D2"}, p.Params["scopeDepartments"])
}

func TestBuildScopeFilter_AllowedDivisions(t *testing.T) {
	actor := &model.ActorScope{
		UserID:           "u1",
		Role:             model.RoleManager,
		AllowedDivisions: []string{"DIV1"},
	}

	p := scope.BuildScopeFilter(actor)

	assert.Contains(t, p.Clause, "r.divisionId IN $scopeDivisions")
	assert.Equal(t, []string{"DIV1"}, p.Params["scopeDivisions"])
}

func TestBuildScopeFilter_DivisionMapping(t *testing.T) {
	actor := &model.ActorScope{
		UserID:    "u1",
		Role:      model.RoleHR,
		DataScope: model.ScopeDivisions,
		DivisionMapping: []model.DivisionMapping{
			{Division: "DIV1", Departments: []string{"D1", "D2"}},
			{Division: "DIV2"},
		},
	}

	p := scope.BuildScopeFilter(actor)

	assert.Contains(t, p.Clause, "r.divisionId = $mapDivision0")
	assert.Contains(t, p.Clause, "r.departmentId IN $mapDepartments0")
	assert.Contains(t, p.Clause, "r.divisionId IN $mapWholeDivisions")
	assert.Equal(t, "DIV1", p.Params["mapDivision0"])
	assert.Equal(t, []string{"D1", "D2"}, p.Params["mapDepartments0"])
	assert.Equal(t, []string{"DIV2"}, p.Params["mapWholeDivisions"])
}

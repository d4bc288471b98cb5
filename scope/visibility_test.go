package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakethdamerla/li-hrms-sub003/model"
	"github.com/sakethdamerla/li-hrms-sub003/scope"
)

func TestBuildWorkflowVisibilityFilter_NilActor(t *testing.T) {
	p := scope.BuildWorkflowVisibilityFilter(nil)
	assert.True(t, p.IsNone())
}

func TestBuildWorkflowVisibilityFilter_GlobalAdminSeesAllActive(t *testing.T) {
	p := scope.BuildWorkflowVisibilityFilter(&model.ActorScope{UserID: "u1", Role: model.RoleSuperAdmin})

	assert.Contains(t, p.Clause, "r.isActive = $visActive")
	assert.Contains(t, p.Clause, "r.isCompleted = $visCompleted")
	assert.NotContains(t, p.Clause, "r.currentStepRole")
	assert.Equal(t, true, p.Params["visActive"])
	assert.Equal(t, false, p.Params["visCompleted"])
}

func TestBuildWorkflowVisibilityFilter_RoleGatedAndScoped(t *testing.T) {
	actor := &model.ActorScope{
		UserID:     "u1",
		Role:       model.RoleHOD,
		Department: "D1",
	}

	p := scope.BuildWorkflowVisibilityFilter(actor)

	assert.Contains(t, p.Clause, "r.currentStepRole IN $visRoles")
	assert.Contains(t, p.Clause, "r.requestedBy <> $visActor")
	assert.Contains(t, p.Clause, "r.departmentId IN $scopeDepartments")
	assert.Equal(t, []string{"hod"}, p.Params["visRoles"])
	assert.Equal(t, "u1", p.Params["visActor"])
}

func TestBuildWorkflowVisibilityFilter_HRAlsoCoversFinalAuthority(t *testing.T) {
	actor := &model.ActorScope{
		UserID:      "u1",
		Role:        model.RoleHR,
		Departments: []string{"D1", "D2"},
	}

	p := scope.BuildWorkflowVisibilityFilter(actor)

	assert.Equal(t, []string{"hr", "final_authority"}, p.Params["visRoles"])
}

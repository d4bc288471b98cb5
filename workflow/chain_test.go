package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakethdamerla/li-hrms-sub003/model"
	"github.com/sakethdamerla/li-hrms-sub003/workflow"
)

func TestBuildApprovalChain_DefaultDefinition(t *testing.T) {
	chain := workflow.BuildApprovalChain(model.RequestTypeLeave, nil)

	assert.Len(t, chain, 2)
	assert.Equal(t, model.RoleHOD, chain[0].Role)
	assert.Equal(t, 1, chain[0].Order)
	assert.True(t, chain[0].IsCurrent)
	assert.Equal(t, model.StepPending, chain[0].Status)
	assert.Equal(t, model.StatusHODApproved, chain[0].ApprovedStatus)
	assert.Equal(t, model.StatusHODRejected, chain[0].RejectedStatus)

	assert.Equal(t, model.RoleHR, chain[1].Role)
	assert.Equal(t, 2, chain[1].Order)
	assert.False(t, chain[1].IsCurrent)
}

func TestBuildApprovalChain_MandatoryFirstStepPrepended(t *testing.T) {
	def := &model.WorkflowDefinition{
		RequestType: model.RequestTypeOD,
		Steps: []model.WorkflowStepDefinition{
			{Order: 1, Role: model.RoleManager, Label: "Manager Approval", IsActive: true},
			{Order: 2, Role: model.RoleHR, Label: "HR Approval", IsActive: true},
		},
		FinalAuthorityRole: model.RoleHR,
	}

	chain := workflow.BuildApprovalChain(model.RequestTypeOD, def)

	// The configured steps never listed hod, so it is prepended.
	assert.Len(t, chain, 3)
	assert.Equal(t, model.RoleHOD, chain[0].Role)
	assert.True(t, chain[0].IsCurrent)
	assert.Equal(t, model.RoleManager, chain[1].Role)
	assert.Equal(t, model.RoleHR, chain[2].Role)

	for i, step := range chain {
		assert.Equal(t, i+1, step.Order)
	}
}

func TestBuildApprovalChain_DuplicateFirstRoleNotRepeated(t *testing.T) {
	def := &model.WorkflowDefinition{
		RequestType: model.RequestTypeLeave,
		Steps: []model.WorkflowStepDefinition{
			{Order: 1, Role: model.RoleHOD, Label: "HOD Approval", IsActive: true},
			{Order: 2, Role: model.RoleHR, Label: "HR Approval", IsActive: true},
		},
		FinalAuthorityRole: model.RoleHR,
	}

	chain := workflow.BuildApprovalChain(model.RequestTypeLeave, def)

	assert.Len(t, chain, 2)
	assert.Equal(t, model.RoleHOD, chain[0].Role)
	assert.Equal(t, model.RoleHR, chain[1].Role)
}

func TestBuildApprovalChain_InactiveStepsSkipped(t *testing.T) {
	def := &model.WorkflowDefinition{
		RequestType: model.RequestTypeLeave,
		Steps: []model.WorkflowStepDefinition{
			{Order: 1, Role: model.RoleManager, Label: "Manager Approval", IsActive: false},
			{Order: 2, Role: model.RoleHR, Label: "HR Approval", IsActive: true},
		},
		FinalAuthorityRole: model.RoleHR,
	}

	chain := workflow.BuildApprovalChain(model.RequestTypeLeave, def)

	assert.Len(t, chain, 2)
	assert.Equal(t, model.RoleHOD, chain[0].Role)
	assert.Equal(t, model.RoleHR, chain[1].Role)
}

func TestBuildApprovalChain_SingleCurrentStep(t *testing.T) {
	chain := workflow.BuildApprovalChain(model.RequestTypePermission, nil)

	current := 0
	for _, step := range chain {
		if step.IsCurrent {
			current++
		}
	}
	assert.Equal(t, 1, current)
}

func TestNewWorkflow_Defaults(t *testing.T) {
	w := workflow.NewWorkflow(model.RequestTypeArrears, nil)

	assert.Equal(t, model.RoleHR, w.FinalAuthorityRole)
	assert.Equal(t, model.ForwardBypass, w.ForwardPolicy)
	assert.False(t, w.IsCompleted)
	assert.NotNil(t, w.History)
	assert.Equal(t, 1, w.CurrentStepOrder())
}

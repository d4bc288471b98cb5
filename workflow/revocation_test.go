package workflow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	hrms_errors "github.com/sakethdamerla/li-hrms-sub003/errors"
	"github.com/sakethdamerla/li-hrms-sub003/model"
	"github.com/sakethdamerla/li-hrms-sub003/workflow"
)

func approvedOnceWorkflow(t *testing.T, actionAt time.Time) model.Workflow {
	t.Helper()
	m := workflow.NewMachine()
	w := workflow.NewWorkflow(model.RequestTypeLeave, nil)
	result, err := m.Approve(&w, model.StatusPending, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "", actionAt)
	assert.NoError(t, err)
	return result.Workflow
}

func TestCanRevoke_WithinWindow(t *testing.T) {
	approvedAt := time.Now()
	w := approvedOnceWorkflow(t, approvedAt)

	err := workflow.CanRevoke(&w, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, 3*time.Hour, approvedAt.Add(time.Hour))

	assert.NoError(t, err)
}

func TestCanRevoke_WindowExpired(t *testing.T) {
	approvedAt := time.Now()
	w := approvedOnceWorkflow(t, approvedAt)

	err := workflow.CanRevoke(&w, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, 3*time.Hour, approvedAt.Add(3*time.Hour+time.Minute))

	assert.ErrorIs(t, err, hrms_errors.ErrRevocationWindowExpired)
}

func TestCanRevoke_OnlyOriginalApprover(t *testing.T) {
	approvedAt := time.Now()
	w := approvedOnceWorkflow(t, approvedAt)

	err := workflow.CanRevoke(&w, workflow.Actor{ID: "hod-2", Role: model.RoleHOD}, 3*time.Hour, approvedAt)

	assert.ErrorIs(t, err, hrms_errors.ErrUnauthorized)
}

func TestCanRevoke_GlobalAdminMayRevokeForOthers(t *testing.T) {
	approvedAt := time.Now()
	w := approvedOnceWorkflow(t, approvedAt)

	err := workflow.CanRevoke(&w, workflow.Actor{ID: "admin-1", Role: model.RoleSuperAdmin}, 3*time.Hour, approvedAt)

	assert.NoError(t, err)
}

func TestCanRevoke_NoApproval(t *testing.T) {
	w := workflow.NewWorkflow(model.RequestTypeLeave, nil)

	err := workflow.CanRevoke(&w, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, 3*time.Hour, time.Now())

	assert.ErrorIs(t, err, hrms_errors.ErrNoApprovalToRevoke)
}

func TestLastApprovalAt(t *testing.T) {
	approvedAt := time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)
	w := approvedOnceWorkflow(t, approvedAt)

	assert.Equal(t, approvedAt, workflow.LastApprovalAt(&w))

	empty := workflow.NewWorkflow(model.RequestTypeLeave, nil)
	assert.True(t, workflow.LastApprovalAt(&empty).IsZero())
}

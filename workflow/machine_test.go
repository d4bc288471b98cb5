package workflow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	hrms_errors "github.com/sakethdamerla/li-hrms-sub003/errors"
	"github.com/sakethdamerla/li-hrms-sub003/model"
	"github.com/sakethdamerla/li-hrms-sub003/workflow"
)

func defaultWorkflow(t model.RequestType) model.Workflow {
	return workflow.NewWorkflow(t, nil)
}

func threeStepWorkflow(policy model.ForwardPolicy) model.Workflow {
	def := &model.WorkflowDefinition{
		RequestType: model.RequestTypeLeave,
		Steps: []model.WorkflowStepDefinition{
			{Order: 1, Role: model.RoleHOD, Label: "HOD Approval", IsActive: true},
			{Order: 2, Role: model.RoleManager, Label: "Manager Approval", IsActive: true},
			{Order: 3, Role: model.RoleHR, Label: "HR Approval", IsActive: true},
		},
		FinalAuthorityRole: model.RoleHR,
		ForwardPolicy:      policy,
	}
	return workflow.NewWorkflow(model.RequestTypeLeave, def)
}

func TestMachine_Approve_AdvancesToNextStep(t *testing.T) {
	m := workflow.NewMachine()
	w := defaultWorkflow(model.RequestTypeLeave)
	now := time.Now()
	actor := workflow.Actor{ID: "hod-1", Role: model.RoleHOD}

	result, err := m.Approve(&w, model.StatusPending, actor, "ok", now)

	assert.NoError(t, err)
	assert.Equal(t, model.StatusHODApproved, result.Status)
	assert.False(t, result.Completed)
	assert.Equal(t, model.StatusPending, result.ExpectedStatus)
	assert.Equal(t, 1, result.ExpectedOrder)

	chain := result.Workflow.ApprovalChain
	assert.Equal(t, model.StepApproved, chain[0].Status)
	assert.Equal(t, "hod-1", chain[0].ActionBy)
	assert.False(t, chain[0].IsCurrent)
	assert.True(t, chain[1].IsCurrent)

	// The input workflow must not be mutated.
	assert.True(t, w.ApprovalChain[0].IsCurrent)
	assert.Equal(t, model.StepPending, w.ApprovalChain[0].Status)
}

func TestMachine_Approve_LastStepCompletes(t *testing.T) {
	m := workflow.NewMachine()
	w := defaultWorkflow(model.RequestTypeLeave)
	now := time.Now()

	first, err := m.Approve(&w, model.StatusPending, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "", now)
	assert.NoError(t, err)

	second, err := m.Approve(&first.Workflow, first.Status, workflow.Actor{ID: "hr-1", Role: model.RoleHR}, "", now)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusApproved, second.Status)
	assert.True(t, second.Completed)
	assert.True(t, second.Workflow.IsCompleted)
	assert.Equal(t, 0, second.Workflow.CurrentStepOrder())
}

func TestMachine_Approve_FinalAuthorityPreemptsRemainingSteps(t *testing.T) {
	m := workflow.NewMachine()
	w := threeStepWorkflow(model.ForwardBypass)
	now := time.Now()

	// Forward past the manager desk, then the hr (final authority) approval
	// must complete without touching the manager.
	fwd, err := m.Forward(&w, model.StatusPending, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "urgent", now)
	assert.NoError(t, err)
	assert.Equal(t, model.StepSkipped, fwd.Workflow.ApprovalChain[1].Status)

	final, err := m.Approve(&fwd.Workflow, fwd.Status, workflow.Actor{ID: "hr-1", Role: model.RoleHR}, "", now)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusApproved, final.Status)
	assert.True(t, final.Completed)
}

func TestMachine_Approve_MidChainFinalAuthoritySkipsTrailingSteps(t *testing.T) {
	m := workflow.NewMachine()
	def := &model.WorkflowDefinition{
		RequestType: model.RequestTypeLeave,
		Steps: []model.WorkflowStepDefinition{
			{Order: 1, Role: model.RoleHOD, Label: "HOD Approval", IsActive: true},
			{Order: 2, Role: model.RoleHR, Label: "HR Approval", IsActive: true},
			{Order: 3, Role: model.RoleManager, Label: "Manager Review", IsActive: true},
		},
		FinalAuthorityRole: model.RoleHR,
	}
	w := workflow.NewWorkflow(model.RequestTypeLeave, def)
	now := time.Now()

	first, err := m.Approve(&w, model.StatusPending, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "", now)
	assert.NoError(t, err)

	second, err := m.Approve(&first.Workflow, first.Status, workflow.Actor{ID: "hr-1", Role: model.RoleHR}, "", now)
	assert.NoError(t, err)
	assert.True(t, second.Completed)
	assert.Equal(t, model.StatusApproved, second.Status)
	assert.Equal(t, model.StepSkipped, second.Workflow.ApprovalChain[2].Status)
}

func TestMachine_Approve_RoleMismatchDenied(t *testing.T) {
	m := workflow.NewMachine()
	w := defaultWorkflow(model.RequestTypeLeave)

	_, err := m.Approve(&w, model.StatusPending, workflow.Actor{ID: "hr-1", Role: model.RoleHR}, "", time.Now())

	assert.ErrorIs(t, err, hrms_errors.ErrRoleMismatch)
}

func TestMachine_Approve_GlobalAdminSatisfiesAnyStep(t *testing.T) {
	m := workflow.NewMachine()
	w := defaultWorkflow(model.RequestTypeLeave)

	result, err := m.Approve(&w, model.StatusPending, workflow.Actor{ID: "admin-1", Role: model.RoleSuperAdmin}, "", time.Now())

	assert.NoError(t, err)
	// The admin clears the hod desk but that desk is not the final
	// authority, so the chain advances instead of completing.
	assert.False(t, result.Completed)
	assert.True(t, result.Workflow.ApprovalChain[1].IsCurrent)
}

func TestMachine_Approve_CompletedWorkflowHasNoActiveStep(t *testing.T) {
	m := workflow.NewMachine()
	w := defaultWorkflow(model.RequestTypeLeave)
	now := time.Now()

	first, _ := m.Approve(&w, model.StatusPending, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "", now)
	second, _ := m.Approve(&first.Workflow, first.Status, workflow.Actor{ID: "hr-1", Role: model.RoleHR}, "", now)

	_, err := m.Approve(&second.Workflow, second.Status, workflow.Actor{ID: "hr-1", Role: model.RoleHR}, "", now)

	assert.ErrorIs(t, err, hrms_errors.ErrNoActiveStep)
}

func TestMachine_Reject_IsTerminal(t *testing.T) {
	m := workflow.NewMachine()
	w := defaultWorkflow(model.RequestTypeLeave)

	result, err := m.Reject(&w, model.StatusPending, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "no cover", time.Now())

	assert.NoError(t, err)
	assert.Equal(t, model.StatusHODRejected, result.Status)
	assert.True(t, result.Terminal)
	assert.True(t, result.Workflow.IsCompleted)
	assert.Equal(t, model.StepRejected, result.Workflow.ApprovalChain[0].Status)
	assert.Equal(t, model.StepSkipped, result.Workflow.ApprovalChain[1].Status)
	assert.True(t, result.Status.IsTerminal())
}

func TestMachine_Forward_BypassSkipsFirstStep(t *testing.T) {
	m := workflow.NewMachine()
	w := defaultWorkflow(model.RequestTypeLeave)

	result, err := m.Forward(&w, model.StatusPending, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "travelling", time.Now())

	assert.NoError(t, err)
	assert.Equal(t, model.StatusPending, result.Status)
	assert.Len(t, result.Workflow.ApprovalChain, 2)
	assert.Equal(t, model.StepSkipped, result.Workflow.ApprovalChain[0].Status)
	assert.True(t, result.Workflow.ApprovalChain[1].IsCurrent)
}

func TestMachine_Forward_CountersignRequeuesSkippedRole(t *testing.T) {
	m := workflow.NewMachine()
	def := model.DefaultWorkflowDefinition(model.RequestTypeLeave)
	def.ForwardPolicy = model.ForwardCountersign
	w := workflow.NewWorkflow(model.RequestTypeLeave, def)
	now := time.Now()

	fwd, err := m.Forward(&w, model.StatusPending, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "", now)
	assert.NoError(t, err)
	assert.Len(t, fwd.Workflow.ApprovalChain, 3)

	tail := fwd.Workflow.ApprovalChain[2]
	assert.Equal(t, model.RoleHOD, tail.Role)
	assert.Equal(t, "HOD Approval (countersign)", tail.Label)
	assert.Equal(t, model.StepPending, tail.Status)
	assert.True(t, tail.Countersign)

	// The hr approval does not complete even though hr is the final
	// authority: the countersign desk still owes its signature, so the
	// chain parks there.
	hr, err := m.Approve(&fwd.Workflow, fwd.Status, workflow.Actor{ID: "hr-1", Role: model.RoleHR}, "", now)
	assert.NoError(t, err)
	assert.False(t, hr.Completed)
	assert.Equal(t, model.StatusHRApproved, hr.Status)
	assert.True(t, hr.Workflow.ApprovalChain[2].IsCurrent)

	// The countersign approval is what completes the workflow.
	cs, err := m.Approve(&hr.Workflow, hr.Status, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "", now)
	assert.NoError(t, err)
	assert.True(t, cs.Completed)
	assert.Equal(t, model.StatusApproved, cs.Status)
}

func TestMachine_Approve_CountersignSurvivesMidChainFinalAuthority(t *testing.T) {
	m := workflow.NewMachine()
	def := &model.WorkflowDefinition{
		RequestType: model.RequestTypeLeave,
		Steps: []model.WorkflowStepDefinition{
			{Order: 1, Role: model.RoleHOD, Label: "HOD Approval", IsActive: true},
			{Order: 2, Role: model.RoleHR, Label: "HR Approval", IsActive: true},
			{Order: 3, Role: model.RoleManager, Label: "Manager Review", IsActive: true},
		},
		FinalAuthorityRole: model.RoleHR,
		ForwardPolicy:      model.ForwardCountersign,
	}
	w := workflow.NewWorkflow(model.RequestTypeLeave, def)
	now := time.Now()

	fwd, err := m.Forward(&w, model.StatusPending, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "", now)
	assert.NoError(t, err)

	// HR signs mid-chain: the manager desk is pre-empted as usual but the
	// countersign tail stays pending and becomes current.
	hr, err := m.Approve(&fwd.Workflow, fwd.Status, workflow.Actor{ID: "hr-1", Role: model.RoleHR}, "", now)
	assert.NoError(t, err)
	assert.False(t, hr.Completed)
	assert.Equal(t, model.StepSkipped, hr.Workflow.ApprovalChain[2].Status)
	assert.True(t, hr.Workflow.ApprovalChain[3].IsCurrent)
}

func TestMachine_Forward_NoHRDeskFallsToNextStep(t *testing.T) {
	m := workflow.NewMachine()
	def := &model.WorkflowDefinition{
		RequestType: model.RequestTypeLeave,
		Steps: []model.WorkflowStepDefinition{
			{Order: 1, Role: model.RoleHOD, Label: "HOD Approval", IsActive: true},
			{Order: 2, Role: model.RoleManager, Label: "Manager Approval", IsActive: true},
		},
		FinalAuthorityRole: model.RoleManager,
	}
	w := workflow.NewWorkflow(model.RequestTypeLeave, def)

	result, err := m.Forward(&w, model.StatusPending, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "", time.Now())

	assert.NoError(t, err)
	assert.True(t, result.Workflow.ApprovalChain[1].IsCurrent)
}

func TestMachine_Forward_OnlyFromFirstStep(t *testing.T) {
	m := workflow.NewMachine()
	w := threeStepWorkflow(model.ForwardBypass)
	now := time.Now()

	first, err := m.Approve(&w, model.StatusPending, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "", now)
	assert.NoError(t, err)

	_, err = m.Forward(&first.Workflow, first.Status, workflow.Actor{ID: "mgr-1", Role: model.RoleManager}, "", now)

	assert.ErrorIs(t, err, hrms_errors.ErrInvalidAction)
}

func TestMachine_Cancel_ByRequesterBeforeAnyApproval(t *testing.T) {
	m := workflow.NewMachine()
	w := defaultWorkflow(model.RequestTypeLeave)

	result, err := m.Cancel(&w, model.StatusPending, workflow.Actor{ID: "emp-1", Role: model.RoleEmployee}, "emp-1", "plans changed", time.Now())

	assert.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, result.Status)
	assert.True(t, result.Workflow.IsCompleted)
	for _, step := range result.Workflow.ApprovalChain {
		assert.Equal(t, model.StepSkipped, step.Status)
		assert.False(t, step.IsCurrent)
	}
}

func TestMachine_Cancel_DeniedForOtherUsers(t *testing.T) {
	m := workflow.NewMachine()
	w := defaultWorkflow(model.RequestTypeLeave)

	_, err := m.Cancel(&w, model.StatusPending, workflow.Actor{ID: "emp-2", Role: model.RoleEmployee}, "emp-1", "", time.Now())

	assert.ErrorIs(t, err, hrms_errors.ErrCancelNotAllowed)
}

func TestMachine_Cancel_AllowedAfterFirstApprovalOnly(t *testing.T) {
	m := workflow.NewMachine()
	w := threeStepWorkflow(model.ForwardBypass)
	now := time.Now()

	first, err := m.Approve(&w, model.StatusPending, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "", now)
	assert.NoError(t, err)

	// One approval deep the requester may still withdraw.
	cancelled, err := m.Cancel(&first.Workflow, first.Status, workflow.Actor{ID: "emp-1", Role: model.RoleEmployee}, "emp-1", "", now)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, cancelled.Status)

	// Two approvals deep cancellation is closed off.
	second, err := m.Approve(&first.Workflow, first.Status, workflow.Actor{ID: "mgr-1", Role: model.RoleManager}, "", now)
	assert.NoError(t, err)

	_, err = m.Cancel(&second.Workflow, second.Status, workflow.Actor{ID: "emp-1", Role: model.RoleEmployee}, "emp-1", "", now)
	assert.ErrorIs(t, err, hrms_errors.ErrCancelNotAllowed)
}

func TestMachine_Cancel_DeniedOnTerminalStatus(t *testing.T) {
	m := workflow.NewMachine()
	w := defaultWorkflow(model.RequestTypeLeave)

	_, err := m.Cancel(&w, model.StatusRejected, workflow.Actor{ID: "emp-1", Role: model.RoleEmployee}, "emp-1", "", time.Now())

	assert.ErrorIs(t, err, hrms_errors.ErrRequestTerminal)
}

func TestMachine_Revoke_RegressesExactlyOneStep(t *testing.T) {
	m := workflow.NewMachine()
	w := threeStepWorkflow(model.ForwardBypass)
	now := time.Now()

	first, _ := m.Approve(&w, model.StatusPending, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "", now)
	second, _ := m.Approve(&first.Workflow, first.Status, workflow.Actor{ID: "mgr-1", Role: model.RoleManager}, "", now)

	revoked, err := m.Revoke(&second.Workflow, second.Status, workflow.Actor{ID: "mgr-1", Role: model.RoleManager}, "wrong record", now)

	assert.NoError(t, err)
	chain := revoked.Workflow.ApprovalChain
	// The manager approval is undone and its desk is current again; the hod
	// approval stands.
	assert.Equal(t, model.StepApproved, chain[0].Status)
	assert.Equal(t, model.StepPending, chain[1].Status)
	assert.True(t, chain[1].IsCurrent)
	assert.Empty(t, chain[1].ActionBy)
	assert.Nil(t, chain[1].ActionAt)
	assert.Equal(t, model.StatusHODApproved, revoked.Status)
	assert.Equal(t, 3, revoked.ExpectedOrder)
}

func TestMachine_Revoke_FirstApprovalRestoresPending(t *testing.T) {
	m := workflow.NewMachine()
	w := defaultWorkflow(model.RequestTypeLeave)
	now := time.Now()

	first, _ := m.Approve(&w, model.StatusPending, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "", now)

	revoked, err := m.Revoke(&first.Workflow, first.Status, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "", now)

	assert.NoError(t, err)
	assert.Equal(t, model.StatusPending, revoked.Status)
	assert.True(t, revoked.Workflow.ApprovalChain[0].IsCurrent)
}

func TestMachine_Revoke_AfterCompletionReopensChain(t *testing.T) {
	m := workflow.NewMachine()
	w := defaultWorkflow(model.RequestTypeLeave)
	now := time.Now()

	first, _ := m.Approve(&w, model.StatusPending, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "", now)
	second, _ := m.Approve(&first.Workflow, first.Status, workflow.Actor{ID: "hr-1", Role: model.RoleHR}, "", now)
	assert.True(t, second.Completed)

	revoked, err := m.Revoke(&second.Workflow, second.Status, workflow.Actor{ID: "hr-1", Role: model.RoleHR}, "", now)

	assert.NoError(t, err)
	assert.False(t, revoked.Workflow.IsCompleted)
	assert.Equal(t, model.StatusHODApproved, revoked.Status)
	assert.True(t, revoked.Workflow.ApprovalChain[1].IsCurrent)
	// A completed workflow carries step order 0 as its concurrency marker.
	assert.Equal(t, 0, revoked.ExpectedOrder)
}

func TestMachine_Revoke_DeniedAfterRejection(t *testing.T) {
	m := workflow.NewMachine()
	w := threeStepWorkflow(model.ForwardBypass)
	now := time.Now()

	first, err := m.Approve(&w, model.StatusPending, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "", now)
	assert.NoError(t, err)
	rejected, err := m.Reject(&first.Workflow, first.Status, workflow.Actor{ID: "mgr-1", Role: model.RoleManager}, "no cover", now)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusManagerRejected, rejected.Status)

	// The hod approval before the rejection is not revocable: the chain
	// ended at the rejected desk.
	_, err = m.Revoke(&rejected.Workflow, rejected.Status, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "", now)

	assert.ErrorIs(t, err, hrms_errors.ErrRequestTerminal)
}

func TestMachine_Revoke_NoApprovalToRevoke(t *testing.T) {
	m := workflow.NewMachine()
	w := defaultWorkflow(model.RequestTypeLeave)

	_, err := m.Revoke(&w, model.StatusPending, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "", time.Now())

	assert.ErrorIs(t, err, hrms_errors.ErrNoApprovalToRevoke)
}

// conditionalStore applies a transition only when its concurrency markers
// still match the stored state, the same contract the request store's
// conditional update enforces.
type conditionalStore struct {
	workflow model.Workflow
	status   model.Status
}

func (cs *conditionalStore) apply(result *workflow.TransitionResult) bool {
	if cs.status != result.ExpectedStatus || cs.workflow.CurrentStepOrder() != result.ExpectedOrder {
		return false
	}
	cs.workflow = result.Workflow
	cs.status = result.Status
	return true
}

func TestMachine_RacingApprovers_OnlyOneWins(t *testing.T) {
	m := workflow.NewMachine()
	store := &conditionalStore{
		workflow: defaultWorkflow(model.RequestTypeLeave),
		status:   model.StatusPending,
	}
	now := time.Now()

	// Both actors read the same snapshot and compute a transition.
	snapshot := store.workflow.Clone()
	first, err := m.Approve(&snapshot, store.status, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "", now)
	assert.NoError(t, err)
	second, err := m.Reject(&snapshot, store.status, workflow.Actor{ID: "hod-2", Role: model.RoleHOD}, "", now)
	assert.NoError(t, err)

	assert.True(t, store.apply(first))
	// The loser's markers no longer match and its write is refused.
	assert.False(t, store.apply(second))
	assert.Equal(t, model.StatusHODApproved, store.status)
}

func TestMachine_HistoryAppendsEveryTransition(t *testing.T) {
	m := workflow.NewMachine()
	w := defaultWorkflow(model.RequestTypeLeave)
	now := time.Now()

	first, _ := m.Approve(&w, model.StatusPending, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "", now)
	revoked, _ := m.Revoke(&first.Workflow, first.Status, workflow.Actor{ID: "hod-1", Role: model.RoleHOD}, "", now)

	assert.Len(t, revoked.Workflow.History, 2)
	assert.Equal(t, model.ActionApproved, revoked.Workflow.History[0].Action)
	assert.Equal(t, model.ActionRevoked, revoked.Workflow.History[1].Action)
}

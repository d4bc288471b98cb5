// workflow/machine.go
package workflow

import (
	"time"

	"github.com/sakethdamerla/li-hrms-sub003/errors"
	"github.com/sakethdamerla/li-hrms-sub003/model"
)

// Actor identifies who performs a transition.
type Actor struct {
	ID   string
	Role model.Role
}

// TransitionResult carries the mutated workflow plus the optimistic
// concurrency markers the caller must hand to the store. ExpectedStatus and
// ExpectedOrder describe the state the transition was computed from; a
// conditional write on them loses cleanly when a concurrent actor got there
// first.
type TransitionResult struct {
	Workflow  model.Workflow
	Status    model.Status
	Completed bool
	Terminal  bool
	Event     model.WorkflowEvent

	ExpectedStatus model.Status
	ExpectedOrder  int
}

// Machine executes approval chain transitions. Every transition works on a
// deep copy of the input workflow so a failed conditional write leaves the
// caller's value untouched.
type Machine struct{}

// NewMachine returns a transition executor.
func NewMachine() *Machine {
	return &Machine{}
}

// RoleSatisfies reports whether the actor role may act on a step that
// requires the given role. Global admins satisfy every step; the hr role
// satisfies a final_authority step since final authority is an hr hat, not a
// separate desk.
func RoleSatisfies(actor, required model.Role) bool {
	if actor == required {
		return true
	}
	if actor.IsGlobalAdmin() {
		return true
	}
	if required == model.RoleFinalAuthority && actor == model.RoleHR {
		return true
	}
	return false
}

// Approve marks the current step approved and advances the chain. Approving
// the last step, or any step by the final authority role, completes the
// workflow with the overall approved status; otherwise the request takes the
// step's intermediate approved status and the next pending step becomes
// current. A pending countersign step is never pre-empted: the final
// authority's approval parks the chain on it instead of completing.
func (m *Machine) Approve(w *model.Workflow, currentStatus model.Status, actor Actor, comments string, now time.Time) (*TransitionResult, error) {
	out := w.Clone()
	idx := out.CurrentStepIndex()
	if idx < 0 {
		return nil, errors.ErrNoActiveStep
	}
	step := &out.ApprovalChain[idx]
	if !RoleSatisfies(actor.Role, step.Role) {
		return nil, errors.ErrRoleMismatch
	}

	expectedOrder := step.Order
	step.Status = model.StepApproved
	step.ActionBy = actor.ID
	step.ActionAt = &now
	step.Comments = comments
	step.IsCurrent = false

	finalAuthority := RoleSatisfies(actor.Role, out.FinalAuthorityRole) && step.Role == out.FinalAuthorityRole
	csIdx := -1
	for i := idx + 1; i < len(out.ApprovalChain); i++ {
		if out.ApprovalChain[i].Countersign && out.ApprovalChain[i].Status == model.StepPending {
			csIdx = i
			break
		}
	}
	completes := (idx == len(out.ApprovalChain)-1 || finalAuthority) && csIdx < 0

	status := step.ApprovedStatus
	switch {
	case completes:
		status = model.StatusApproved
		out.IsCompleted = true
		// Trailing steps the final authority pre-empted are skipped, not
		// left pending.
		for i := idx + 1; i < len(out.ApprovalChain); i++ {
			if out.ApprovalChain[i].Status == model.StepPending {
				out.ApprovalChain[i].Status = model.StepSkipped
			}
		}
	case finalAuthority:
		// The final authority signed but a countersign is still owed:
		// skip the remaining regular desks and park on the countersign.
		for i := idx + 1; i < csIdx; i++ {
			if out.ApprovalChain[i].Status == model.StepPending {
				out.ApprovalChain[i].Status = model.StepSkipped
			}
		}
		out.ApprovalChain[csIdx].IsCurrent = true
	default:
		out.ApprovalChain[idx+1].IsCurrent = true
	}

	ev := model.WorkflowEvent{
		Step:      step.Label,
		Action:    model.ActionApproved,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Comments:  comments,
		Timestamp: now,
	}
	out.History = append(out.History, ev)

	return &TransitionResult{
		Workflow:       out,
		Status:         status,
		Completed:      completes,
		Terminal:       completes,
		Event:          ev,
		ExpectedStatus: currentStatus,
		ExpectedOrder:  expectedOrder,
	}, nil
}

// Reject marks the current step rejected and terminates the workflow. No
// later step ever becomes current after a rejection.
func (m *Machine) Reject(w *model.Workflow, currentStatus model.Status, actor Actor, comments string, now time.Time) (*TransitionResult, error) {
	out := w.Clone()
	idx := out.CurrentStepIndex()
	if idx < 0 {
		return nil, errors.ErrNoActiveStep
	}
	step := &out.ApprovalChain[idx]
	if !RoleSatisfies(actor.Role, step.Role) {
		return nil, errors.ErrRoleMismatch
	}

	expectedOrder := step.Order
	step.Status = model.StepRejected
	step.ActionBy = actor.ID
	step.ActionAt = &now
	step.Comments = comments
	step.IsCurrent = false
	out.IsCompleted = true

	for i := idx + 1; i < len(out.ApprovalChain); i++ {
		if out.ApprovalChain[i].Status == model.StepPending {
			out.ApprovalChain[i].Status = model.StepSkipped
		}
	}

	ev := model.WorkflowEvent{
		Step:      step.Label,
		Action:    model.ActionRejected,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Comments:  comments,
		Timestamp: now,
	}
	out.History = append(out.History, ev)

	return &TransitionResult{
		Workflow:       out,
		Status:         step.RejectedStatus,
		Completed:      true,
		Terminal:       true,
		Event:          ev,
		ExpectedStatus: currentStatus,
		ExpectedOrder:  expectedOrder,
	}, nil
}

// Forward expedites a request past the mandatory first step straight to the
// hr desk. Only the first step may be forwarded, and only while it is
// current. Under the bypass policy the skipped step is closed permanently;
// under countersign it is re-queued at the tail of the chain so its role
// still signs before completion.
func (m *Machine) Forward(w *model.Workflow, currentStatus model.Status, actor Actor, comments string, now time.Time) (*TransitionResult, error) {
	out := w.Clone()
	idx := out.CurrentStepIndex()
	if idx < 0 {
		return nil, errors.ErrNoActiveStep
	}
	if idx != 0 {
		return nil, errors.ErrInvalidAction
	}
	step := &out.ApprovalChain[idx]
	if !RoleSatisfies(actor.Role, step.Role) {
		return nil, errors.ErrRoleMismatch
	}

	hrIdx := -1
	for i := idx + 1; i < len(out.ApprovalChain); i++ {
		if out.ApprovalChain[i].Role == model.RoleHR || out.ApprovalChain[i].Role == model.RoleFinalAuthority {
			hrIdx = i
			break
		}
	}
	if hrIdx < 0 {
		// No hr desk in the chain: forward falls through to the next step.
		if idx+1 >= len(out.ApprovalChain) {
			return nil, errors.ErrInvalidAction
		}
		hrIdx = idx + 1
	}

	expectedOrder := step.Order
	step.Status = model.StepSkipped
	step.ActionBy = actor.ID
	step.ActionAt = &now
	step.Comments = comments
	step.IsCurrent = false

	// Intermediate desks between the first step and hr are skipped too.
	for i := idx + 1; i < hrIdx; i++ {
		if out.ApprovalChain[i].Status == model.StepPending {
			out.ApprovalChain[i].Status = model.StepSkipped
		}
	}
	out.ApprovalChain[hrIdx].IsCurrent = true

	if out.ForwardPolicy == model.ForwardCountersign {
		tail := model.ApprovalStep{
			Order:          len(out.ApprovalChain) + 1,
			Role:           step.Role,
			Label:          step.Label + " (countersign)",
			Status:         model.StepPending,
			ApprovedStatus: step.ApprovedStatus,
			RejectedStatus: step.RejectedStatus,
			Countersign:    true,
		}
		out.ApprovalChain = append(out.ApprovalChain, tail)
	}

	ev := model.WorkflowEvent{
		Step:      step.Label,
		Action:    model.ActionForwarded,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Comments:  comments,
		Timestamp: now,
	}
	out.History = append(out.History, ev)

	return &TransitionResult{
		Workflow:       out,
		Status:         model.StatusPending,
		Event:          ev,
		ExpectedStatus: currentStatus,
		ExpectedOrder:  expectedOrder,
	}, nil
}

// Cancel withdraws a request. Only the requester cancels, and only while at
// most the first step has been approved; once the chain is deeper the
// request is withdrawn via revoke or rejection instead.
func (m *Machine) Cancel(w *model.Workflow, currentStatus model.Status, actor Actor, requestedBy string, comments string, now time.Time) (*TransitionResult, error) {
	if currentStatus.IsTerminal() {
		return nil, errors.ErrRequestTerminal
	}
	if actor.ID != requestedBy && !actor.Role.IsGlobalAdmin() {
		return nil, errors.ErrCancelNotAllowed
	}
	out := w.Clone()
	if last := out.LastApproval(); last != nil && last.Order > out.ApprovalChain[0].Order {
		return nil, errors.ErrCancelNotAllowed
	}
	idx := out.CurrentStepIndex()
	if idx < 0 {
		return nil, errors.ErrNoActiveStep
	}

	expectedOrder := out.ApprovalChain[idx].Order
	out.ApprovalChain[idx].IsCurrent = false
	out.IsCompleted = true
	for i := range out.ApprovalChain {
		if out.ApprovalChain[i].Status == model.StepPending {
			out.ApprovalChain[i].Status = model.StepSkipped
		}
	}

	ev := model.WorkflowEvent{
		Step:      out.ApprovalChain[idx].Label,
		Action:    model.ActionCancelled,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Comments:  comments,
		Timestamp: now,
	}
	out.History = append(out.History, ev)

	return &TransitionResult{
		Workflow:       out,
		Status:         model.StatusCancelled,
		Completed:      true,
		Terminal:       true,
		Event:          ev,
		ExpectedStatus: currentStatus,
		ExpectedOrder:  expectedOrder,
	}, nil
}

// Revoke undoes the most recent approval, regressing the chain exactly one
// step. The regressed step reverts to pending and becomes current again; any
// step that was current after it loses the flag. A chain holding a rejected
// step cannot be revoked. The caller enforces the revocation time window and
// actor authorization before invoking this.
func (m *Machine) Revoke(w *model.Workflow, currentStatus model.Status, actor Actor, comments string, now time.Time) (*TransitionResult, error) {
	out := w.Clone()
	// A rejected step ends the chain for good; reverting the approval
	// before it would leave a non-pending step current.
	for i := range out.ApprovalChain {
		if out.ApprovalChain[i].Status == model.StepRejected {
			return nil, errors.ErrRequestTerminal
		}
	}
	last := out.LastApproval()
	if last == nil {
		return nil, errors.ErrNoApprovalToRevoke
	}

	expectedOrder := out.CurrentStepOrder()

	for i := range out.ApprovalChain {
		out.ApprovalChain[i].IsCurrent = false
		// Steps after the revoked one go back to pending, including ones a
		// completing approval marked skipped.
		if out.ApprovalChain[i].Order > last.Order && out.ApprovalChain[i].Status == model.StepSkipped {
			out.ApprovalChain[i].Status = model.StepPending
		}
	}

	last.Status = model.StepPending
	last.ActionBy = ""
	last.ActionAt = nil
	last.Comments = ""
	last.IsCurrent = true
	out.IsCompleted = false

	status := model.StatusPending
	if prev := out.LastApproval(); prev != nil {
		status = prev.ApprovedStatus
	}

	ev := model.WorkflowEvent{
		Step:      last.Label,
		Action:    model.ActionRevoked,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Comments:  comments,
		Timestamp: now,
	}
	out.History = append(out.History, ev)

	return &TransitionResult{
		Workflow:       out,
		Status:         status,
		Event:          ev,
		ExpectedStatus: currentStatus,
		ExpectedOrder:  expectedOrder,
	}, nil
}

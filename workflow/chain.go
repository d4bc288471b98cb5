// workflow/chain.go
package workflow

import (
	"strings"

	"github.com/sakethdamerla/li-hrms-sub003/model"
)

// MandatoryFirstRole opens every approval chain unless the workflow
// definition explicitly overrides it.
const MandatoryFirstRole = model.RoleHOD

// BuildApprovalChain materializes the ordered approval steps for a new
// request from an externally supplied definition. The mandatory first step
// is always emitted as order 1 and current; configured steps whose role
// differs from it follow in configured order, renumbered sequentially. A
// nil definition falls back to the built-in hod -> hr default. The result
// always contains at least the mandatory step.
func BuildApprovalChain(requestType model.RequestType, def *model.WorkflowDefinition) []model.ApprovalStep {
	if def == nil {
		def = model.DefaultWorkflowDefinition(requestType)
	}

	firstRole := def.FirstRole
	if firstRole == "" {
		firstRole = MandatoryFirstRole
	}

	chain := []model.ApprovalStep{{
		Order:          1,
		Role:           firstRole,
		Label:          stepLabel(firstRole, labelFor(def, firstRole)),
		Status:         model.StepPending,
		ApprovedStatus: approvedStatusFor(def, firstRole),
		RejectedStatus: rejectedStatusFor(def, firstRole),
		IsCurrent:      true,
	}}

	for _, sd := range def.Steps {
		if sd.Role == firstRole || !sd.IsActive {
			continue
		}
		chain = append(chain, model.ApprovalStep{
			Order:          len(chain) + 1,
			Role:           sd.Role,
			Label:          stepLabel(sd.Role, sd.Label),
			Status:         model.StepPending,
			ApprovedStatus: stepApprovedStatus(sd),
			RejectedStatus: stepRejectedStatus(sd),
			IsCurrent:      false,
		})
	}

	return chain
}

// NewWorkflow builds the full workflow value attached to a request at
// creation time.
func NewWorkflow(requestType model.RequestType, def *model.WorkflowDefinition) model.Workflow {
	if def == nil {
		def = model.DefaultWorkflowDefinition(requestType)
	}
	finalRole := def.FinalAuthorityRole
	if finalRole == "" {
		finalRole = model.RoleHR
	}
	policy := def.ForwardPolicy
	if policy == "" {
		policy = model.ForwardBypass
	}
	return model.Workflow{
		ApprovalChain:      BuildApprovalChain(requestType, def),
		FinalAuthorityRole: finalRole,
		ForwardPolicy:      policy,
		History:            []model.WorkflowEvent{},
	}
}

func labelFor(def *model.WorkflowDefinition, role model.Role) string {
	for _, sd := range def.Steps {
		if sd.Role == role {
			return sd.Label
		}
	}
	return ""
}

func approvedStatusFor(def *model.WorkflowDefinition, role model.Role) model.Status {
	for _, sd := range def.Steps {
		if sd.Role == role && sd.ApprovedStatus != "" {
			return sd.ApprovedStatus
		}
	}
	return model.ApprovedStatusForRole(role)
}

func rejectedStatusFor(def *model.WorkflowDefinition, role model.Role) model.Status {
	for _, sd := range def.Steps {
		if sd.Role == role && sd.RejectedStatus != "" {
			return sd.RejectedStatus
		}
	}
	return model.RejectedStatusForRole(role)
}

func stepApprovedStatus(sd model.WorkflowStepDefinition) model.Status {
	if sd.ApprovedStatus != "" {
		return sd.ApprovedStatus
	}
	return model.ApprovedStatusForRole(sd.Role)
}

func stepRejectedStatus(sd model.WorkflowStepDefinition) model.Status {
	if sd.RejectedStatus != "" {
		return sd.RejectedStatus
	}
	return model.RejectedStatusForRole(sd.Role)
}

func stepLabel(role model.Role, configured string) string {
	if configured != "" {
		return configured
	}
	return strings.ToUpper(string(role)) + " Approval"
}

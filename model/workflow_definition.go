// model/workflow_definition.go
package model

// ForwardPolicy names what happens to the step an expedited forward skips.
type ForwardPolicy string

const (
	// ForwardBypass drops the skipped step permanently.
	ForwardBypass ForwardPolicy = "bypass"
	// ForwardCountersign re-queues the skipped step at the tail of the
	// chain so its role still signs before the workflow can complete.
	ForwardCountersign ForwardPolicy = "countersign"
)

// ActionType enumerates the workflow actions a step may offer.
type ActionType string

const (
	ActionTypeApprove ActionType = "approve"
	ActionTypeReject  ActionType = "reject"
	ActionTypeForward ActionType = "forward"
)

// WorkflowStepDefinition is one configured desk in a workflow definition.
type WorkflowStepDefinition struct {
	Order            int          `json:"order"`
	Role             Role         `json:"role"`
	Label            string       `json:"label,omitempty"`
	ApprovedStatus   Status       `json:"approved_status,omitempty"`
	RejectedStatus   Status       `json:"rejected_status,omitempty"`
	AvailableActions []ActionType `json:"available_actions,omitempty"`
	IsActive         bool         `json:"is_active"`
}

// WorkflowDefinition is the externally supplied configuration a new
// request's approval chain is materialized from.
type WorkflowDefinition struct {
	RequestType        RequestType              `json:"request_type"`
	Steps              []WorkflowStepDefinition `json:"steps"`
	FinalAuthorityRole Role                     `json:"final_authority_role"`
	// FirstRole overrides the mandatory first approver; empty means hod.
	FirstRole     Role          `json:"first_role,omitempty"`
	ForwardPolicy ForwardPolicy `json:"forward_policy,omitempty"`
}

// DefaultWorkflowDefinition is the built-in two step hod -> hr fallback used
// when no configuration exists for a request type.
func DefaultWorkflowDefinition(t RequestType) *WorkflowDefinition {
	return &WorkflowDefinition{
		RequestType: t,
		Steps: []WorkflowStepDefinition{
			{
				Order:            1,
				Role:             RoleHOD,
				Label:            "HOD Approval",
				ApprovedStatus:   StatusHODApproved,
				RejectedStatus:   StatusHODRejected,
				AvailableActions: []ActionType{ActionTypeApprove, ActionTypeReject, ActionTypeForward},
				IsActive:         true,
			},
			{
				Order:            2,
				Role:             RoleHR,
				Label:            "HR Approval",
				ApprovedStatus:   StatusHRApproved,
				RejectedStatus:   StatusHRRejected,
				AvailableActions: []ActionType{ActionTypeApprove, ActionTypeReject},
				IsActive:         true,
			},
		},
		FinalAuthorityRole: RoleHR,
		ForwardPolicy:      ForwardBypass,
	}
}

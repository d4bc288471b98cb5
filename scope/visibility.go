// scope/visibility.go
package scope

import (
	"github.com/sakethdamerla/li-hrms-sub003/model"
)

// BuildWorkflowVisibilityFilter builds the predicate for an approver's
// pending-approvals inbox: active requests whose current step waits on the
// actor's role, within the actor's jurisdiction, excluding the actor's own
// submissions. An hr actor also sees steps parked on final_authority.
// Global admins see every active incomplete request.
func BuildWorkflowVisibilityFilter(actor *model.ActorScope) model.Predicate {
	if actor == nil {
		return model.MatchNone()
	}

	active := model.And(
		model.Eq("r.isActive", "visActive", true),
		model.Eq("r.isCompleted", "visCompleted", false),
	)

	if actor.Role.IsGlobalAdmin() {
		return active
	}

	roles := []string{string(actor.Role)}
	if actor.Role == model.RoleHR {
		roles = append(roles, string(model.RoleFinalAuthority))
	}

	return model.And(
		active,
		model.In("r.currentStepRole", "visRoles", roles),
		model.Neq("r.requestedBy", "visActor", actor.UserID),
		BuildScopeFilter(actor),
	)
}

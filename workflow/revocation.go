// workflow/revocation.go
package workflow

import (
	"time"

	"github.com/sakethdamerla/li-hrms-sub003/errors"
	"github.com/sakethdamerla/li-hrms-sub003/model"
)

// LastApprovalAt returns the timestamp of the most recent approval in the
// chain, or the zero time when none exists.
func LastApprovalAt(w *model.Workflow) time.Time {
	if s := w.LastApproval(); s != nil {
		return *s.ActionAt
	}
	return time.Time{}
}

// CanRevoke checks whether the actor may undo the most recent approval right
// now. The approval must exist, must have been recorded by the actor unless
// the actor is a global admin, and must be younger than the revocation
// window.
func CanRevoke(w *model.Workflow, actor Actor, window time.Duration, now time.Time) error {
	last := w.LastApproval()
	if last == nil {
		return errors.ErrNoApprovalToRevoke
	}
	if last.ActionBy != actor.ID && !actor.Role.IsGlobalAdmin() {
		return errors.ErrUnauthorized
	}
	if now.Sub(*last.ActionAt) > window {
		return errors.ErrRevocationWindowExpired
	}
	return nil
}

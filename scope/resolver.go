// scope/resolver.go
package scope

import (
	"fmt"

	"github.com/sakethdamerla/li-hrms-sub003/errors"
	"github.com/sakethdamerla/li-hrms-sub003/model"
)

// CheckJurisdiction decides whether the actor may act on the target.
// Evaluation order: global admin bypass, ownership, then whatever the
// actor's data scope admits. An own-scoped actor never reaches an
// administrative branch; department scopes consult only the flat
// department fields; division scopes consult the division mapping first,
// then allowed divisions, then the flat department lists. Anything left
// unmatched is denied; missing or malformed scope data never widens
// access.
func CheckJurisdiction(actor *model.ActorScope, target model.ScopeTarget) error {
	if actor == nil {
		return errors.ErrUnauthorized
	}
	if actor.Role.IsGlobalAdmin() || actor.EffectiveScope() == model.ScopeAll {
		return nil
	}

	if ownsTarget(actor, target) {
		return nil
	}

	switch actor.EffectiveScope() {
	case model.ScopeDepartment, model.ScopeDepartments:
		if matchesDepartments(actor, target) {
			return nil
		}
	case model.ScopeDivision, model.ScopeDivisions:
		if len(actor.DivisionMapping) > 0 {
			if matchesDivisionMapping(actor.DivisionMapping, target) {
				return nil
			}
			return errors.ErrOutOfJurisdiction
		}
		if len(actor.AllowedDivisions) > 0 {
			if target.Division != "" && contains(actor.AllowedDivisions, target.Division) {
				return nil
			}
			return errors.ErrOutOfJurisdiction
		}
		if matchesDepartments(actor, target) {
			return nil
		}
	}

	return errors.ErrOutOfJurisdiction
}

func matchesDepartments(actor *model.ActorScope, target model.ScopeTarget) bool {
	if target.Department == "" {
		return false
	}
	if actor.Department != "" && actor.Department == target.Department {
		return true
	}
	return contains(actor.Departments, target.Department)
}

// matchesDivisionMapping checks the target against each division grant. A
// grant with an empty department list covers the whole division; otherwise
// the target's department must be listed.
func matchesDivisionMapping(mapping []model.DivisionMapping, target model.ScopeTarget) bool {
	if target.Division == "" {
		return false
	}
	for _, m := range mapping {
		if m.Division != target.Division {
			continue
		}
		if len(m.Departments) == 0 {
			return true
		}
		if target.Department != "" && contains(m.Departments, target.Department) {
			return true
		}
	}
	return false
}

func ownsTarget(actor *model.ActorScope, target model.ScopeTarget) bool {
	if actor.EmployeeID != "" && actor.EmployeeID == target.EmployeeID {
		return true
	}
	if actor.EmployeeNo != "" && actor.EmployeeNo == target.EmployeeNo {
		return true
	}
	return actor.UserID != "" && actor.UserID == target.RequestedBy
}

// BuildScopeFilter translates the actor's jurisdiction into a query
// predicate over request nodes. The record is visible when the actor owns
// it or it falls inside the grant the actor's data scope admits; an
// own-scoped actor sees only their own records.
func BuildScopeFilter(actor *model.ActorScope) model.Predicate {
	if actor == nil {
		return model.MatchNone()
	}
	if actor.Role.IsGlobalAdmin() || actor.EffectiveScope() == model.ScopeAll {
		return model.MatchAll()
	}

	own := ownershipFilter(actor)

	switch actor.EffectiveScope() {
	case model.ScopeDepartment, model.ScopeDepartments:
		return model.Or(own, departmentFilter(actor))
	case model.ScopeDivision, model.ScopeDivisions:
		if len(actor.DivisionMapping) > 0 {
			return model.Or(own, divisionMappingFilter(actor.DivisionMapping))
		}
		if len(actor.AllowedDivisions) > 0 {
			return model.Or(own, model.In("r.divisionId", "scopeDivisions", actor.AllowedDivisions))
		}
		return model.Or(own, departmentFilter(actor))
	}

	return own
}

func departmentFilter(actor *model.ActorScope) model.Predicate {
	depts := actor.Departments
	if actor.Department != "" && !contains(depts, actor.Department) {
		depts = append([]string{actor.Department}, depts...)
	}
	return model.In("r.departmentId", "scopeDepartments", depts)
}

func ownershipFilter(actor *model.ActorScope) model.Predicate {
	parts := []model.Predicate{}
	if actor.EmployeeID != "" {
		parts = append(parts, model.Eq("r.employeeId", "ownEmployeeId", actor.EmployeeID))
	}
	if actor.EmployeeNo != "" {
		parts = append(parts, model.Eq("r.employeeNo", "ownEmployeeNo", actor.EmployeeNo))
	}
	if actor.UserID != "" {
		parts = append(parts, model.Eq("r.requestedBy", "ownUserId", actor.UserID))
	}
	if len(parts) == 0 {
		return model.MatchNone()
	}
	return model.Or(parts...)
}

func divisionMappingFilter(mapping []model.DivisionMapping) model.Predicate {
	wholeDivisions := []string{}
	parts := []model.Predicate{}
	for i, m := range mapping {
		if m.Division == "" {
			continue
		}
		if len(m.Departments) == 0 {
			wholeDivisions = append(wholeDivisions, m.Division)
			continue
		}
		parts = append(parts, model.And(
			model.Eq("r.divisionId", paramName("mapDivision", i), m.Division),
			model.In("r.departmentId", paramName("mapDepartments", i), m.Departments),
		))
	}
	if len(wholeDivisions) > 0 {
		parts = append(parts, model.In("r.divisionId", "mapWholeDivisions", wholeDivisions))
	}
	if len(parts) == 0 {
		return model.MatchNone()
	}
	return model.Or(parts...)
}

func paramName(prefix string, i int) string {
	return fmt.Sprintf("%s%d", prefix, i)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// model/predicate.go
package model

import (
	"fmt"
	"strings"
)

// Predicate is a composable query condition: a Cypher WHERE fragment over
// the request node alias "r" plus its bound parameters. Builders never
// concatenate values into the clause; everything rides in Params.
type Predicate struct {
	Clause string
	Params map[string]interface{}
}

// MatchAll places no restriction.
func MatchAll() Predicate {
	return Predicate{}
}

// MatchNone matches nothing; the fail-closed identity.
func MatchNone() Predicate {
	return Predicate{Clause: "false"}
}

// IsNone reports whether the predicate can never match.
func (p Predicate) IsNone() bool {
	return p.Clause == "false"
}

// IsAll reports whether the predicate places no restriction.
func (p Predicate) IsAll() bool {
	return p.Clause == ""
}

// Eq binds field = $param.
func Eq(field, param string, value interface{}) Predicate {
	return Predicate{
		Clause: fmt.Sprintf("%s = $%s", field, param),
		Params: map[string]interface{}{param: value},
	}
}

// Neq binds field <> $param.
func Neq(field, param string, value interface{}) Predicate {
	return Predicate{
		Clause: fmt.Sprintf("%s <> $%s", field, param),
		Params: map[string]interface{}{param: value},
	}
}

// In binds field IN $param. An empty value list matches nothing.
func In(field, param string, values []string) Predicate {
	if len(values) == 0 {
		return MatchNone()
	}
	return Predicate{
		Clause: fmt.Sprintf("%s IN $%s", field, param),
		Params: map[string]interface{}{param: values},
	}
}

// NotIn binds NOT field IN $param.
func NotIn(field, param string, values []string) Predicate {
	if len(values) == 0 {
		return MatchAll()
	}
	return Predicate{
		Clause: fmt.Sprintf("NOT %s IN $%s", field, param),
		Params: map[string]interface{}{param: values},
	}
}

// And conjoins predicates. MatchAll operands vanish; a MatchNone operand
// collapses the whole conjunction.
func And(ps ...Predicate) Predicate {
	return combine(" AND ", true, ps)
}

// Or disjoins predicates. MatchNone operands vanish; a MatchAll operand
// collapses the whole disjunction.
func Or(ps ...Predicate) Predicate {
	return combine(" OR ", false, ps)
}

func combine(sep string, conjunction bool, ps []Predicate) Predicate {
	clauses := make([]string, 0, len(ps))
	params := map[string]interface{}{}
	for _, p := range ps {
		if conjunction {
			if p.IsNone() {
				return MatchNone()
			}
			if p.IsAll() {
				continue
			}
		} else {
			if p.IsAll() {
				return MatchAll()
			}
			if p.IsNone() {
				continue
			}
		}
		clauses = append(clauses, p.Clause)
		for k, v := range p.Params {
			params[k] = v
		}
	}
	switch len(clauses) {
	case 0:
		if conjunction {
			return MatchAll()
		}
		return MatchNone()
	case 1:
		return Predicate{Clause: clauses[0], Params: params}
	default:
		for i := range clauses {
			clauses[i] = "(" + clauses[i] + ")"
		}
		return Predicate{Clause: strings.Join(clauses, sep), Params: params}
	}
}

// Where renders the predicate as a WHERE clause, or an empty string for
// MatchAll.
func (p Predicate) Where() string {
	if p.IsAll() {
		return ""
	}
	return "WHERE " + p.Clause
}

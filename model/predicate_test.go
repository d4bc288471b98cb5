package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakethdamerla/li-hrms-sub003/model"
)

func TestPredicate_EqBindsParameter(t *testing.T) {
	p := model.Eq("r.status", "status", "pending")

	assert.Equal(t, "r.status = $status", p.Clause)
	assert.Equal(t, "pending", p.Params["status"])
	assert.Equal(t, "WHERE r.status = $status", p.Where())
}

func TestPredicate_InEmptyListMatchesNothing(t *testing.T) {
	p := model.In("r.departmentId", "depts", nil)
	assert.True(t, p.IsNone())
}

func TestPredicate_AndIdentities(t *testing.T) {
	eq := model.Eq("r.type", "type", "leave")

	assert.Equal(t, eq.Clause, model.And(model.MatchAll(), eq).Clause)
	assert.True(t, model.And(eq, model.MatchNone()).IsNone())
	assert.True(t, model.And().IsAll())
}

func TestPredicate_OrIdentities(t *testing.T) {
	eq := model.Eq("r.type", "type", "leave")

	assert.Equal(t, eq.Clause, model.Or(model.MatchNone(), eq).Clause)
	assert.True(t, model.Or(eq, model.MatchAll()).IsAll())
	assert.True(t, model.Or().IsNone())
}

func TestPredicate_CombineParenthesizesAndMergesParams(t *testing.T) {
	p := model.And(
		model.Eq("r.status", "status", "pending"),
		model.In("r.departmentId", "depts", []string{"D1"}),
	)

	assert.Equal(t, "(r.status = $status) AND (r.departmentId IN $depts)", p.Clause)
	assert.Equal(t, "pending", p.Params["status"])
	assert.Equal(t, []string{"D1"}, p.Params["depts"])
}

func TestPredicate_MatchAllRendersNoWhere(t *testing.T) {
	assert.Equal(t, "", model.MatchAll().Where())
}

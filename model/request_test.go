package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sakethdamerla/li-hrms-sub003/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b model.Interval
		want bool
	}{
		{
			name: "disjoint",
			a:    model.Interval{From: day(2025, 6, 1), To: day(2025, 6, 3)},
			b:    model.Interval{From: day(2025, 6, 4), To: day(2025, 6, 6)},
			want: false,
		},
		{
			name: "shared boundary day",
			a:    model.Interval{From: day(2025, 6, 1), To: day(2025, 6, 3)},
			b:    model.Interval{From: day(2025, 6, 3), To: day(2025, 6, 5)},
			want: true,
		},
		{
			name: "contained",
			a:    model.Interval{From: day(2025, 6, 1), To: day(2025, 6, 10)},
			b:    model.Interval{From: day(2025, 6, 4), To: day(2025, 6, 5)},
			want: true,
		},
		{
			name: "same single day",
			a:    model.Interval{From: day(2025, 6, 1), To: day(2025, 6, 1)},
			b:    model.Interval{From: day(2025, 6, 1), To: day(2025, 6, 1)},
			want: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestRequestType_CompetingTypes(t *testing.T) {
	assert.Equal(t, []model.RequestType{model.RequestTypeOD}, model.RequestTypeLeave.CompetingTypes())
	assert.Equal(t, []model.RequestType{model.RequestTypeLeave}, model.RequestTypeOD.CompetingTypes())
	assert.Equal(t,
		[]model.RequestType{model.RequestTypeLeave, model.RequestTypeOD},
		model.RequestTypePermission.CompetingTypes())
	assert.Nil(t, model.RequestTypeArrears.CompetingTypes())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, model.StatusApproved.IsTerminal())
	assert.True(t, model.StatusRejected.IsTerminal())
	assert.True(t, model.StatusCancelled.IsTerminal())
	assert.True(t, model.StatusHODRejected.IsTerminal())
	assert.False(t, model.StatusPending.IsTerminal())
	assert.False(t, model.StatusHODApproved.IsTerminal())
	assert.False(t, model.StatusHRApproved.IsTerminal())
}

func TestLiveStatuses(t *testing.T) {
	assert.Equal(t, []model.Status{model.StatusApproved}, model.LiveStatuses(true))

	live := model.LiveStatuses(false)
	assert.Contains(t, live, model.StatusPending)
	assert.Contains(t, live, model.StatusHODApproved)
	assert.Contains(t, live, model.StatusApproved)
	assert.NotContains(t, live, model.StatusRejected)
	assert.NotContains(t, live, model.StatusCancelled)
}

func TestWorkflow_LastApproval(t *testing.T) {
	now := time.Now()
	w := model.Workflow{
		ApprovalChain: []model.ApprovalStep{
			{Order: 1, Role: model.RoleHOD, Status: model.StepApproved, ActionBy: "hod-1", ActionAt: &now},
			{Order: 2, Role: model.RoleHR, Status: model.StepPending, IsCurrent: true},
		},
	}

	last := w.LastApproval()
	assert.NotNil(t, last)
	assert.Equal(t, 1, last.Order)

	empty := model.Workflow{ApprovalChain: []model.ApprovalStep{{Order: 1, Status: model.StepPending, IsCurrent: true}}}
	assert.Nil(t, empty.LastApproval())
}

func TestRequest_ScopeTarget(t *testing.T) {
	r := model.Request{
		EmployeeID:   "E1",
		EmployeeNo:   "1001",
		RequestedBy:  "u1",
		DivisionID:   "DIV1",
		DepartmentID: "D1",
	}

	target := r.ScopeTarget()

	assert.Equal(t, "E1", target.EmployeeID)
	assert.Equal(t, "1001", target.EmployeeNo)
	assert.Equal(t, "u1", target.RequestedBy)
	assert.Equal(t, "DIV1", target.Division)
	assert.Equal(t, "D1", target.Department)
}

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sakethdamerla/li-hrms-sub003/model"
)

func dateOn(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func singleDayRequest(t model.RequestType, on time.Time, halfDay bool, halfType string) *model.Request {
	return &model.Request{
		Type:        t,
		FromDate:    on,
		ToDate:      on,
		IsHalfDay:   halfDay,
		HalfDayType: halfType,
	}
}

func TestIntervalsCollide_FullDayOverlap(t *testing.T) {
	a := &model.Request{Type: model.RequestTypeLeave, FromDate: dateOn(2025, 6, 1), ToDate: dateOn(2025, 6, 5)}
	b := &model.Request{Type: model.RequestTypeOD, FromDate: dateOn(2025, 6, 5), ToDate: dateOn(2025, 6, 7)}

	assert.True(t, intervalsCollide(a, b))
}

func TestIntervalsCollide_DisjointDates(t *testing.T) {
	a := &model.Request{Type: model.RequestTypeLeave, FromDate: dateOn(2025, 6, 1), ToDate: dateOn(2025, 6, 3)}
	b := &model.Request{Type: model.RequestTypeOD, FromDate: dateOn(2025, 6, 4), ToDate: dateOn(2025, 6, 6)}

	assert.False(t, intervalsCollide(a, b))
}

func TestIntervalsCollide_OppositeHalvesCoexist(t *testing.T) {
	on := dateOn(2025, 6, 1)
	a := singleDayRequest(model.RequestTypeLeave, on, true, model.FirstHalf)
	b := singleDayRequest(model.RequestTypeOD, on, true, model.SecondHalf)

	assert.False(t, intervalsCollide(a, b))
}

func TestIntervalsCollide_SameHalfCollides(t *testing.T) {
	on := dateOn(2025, 6, 1)
	a := singleDayRequest(model.RequestTypeLeave, on, true, model.FirstHalf)
	b := singleDayRequest(model.RequestTypeOD, on, true, model.FirstHalf)

	assert.True(t, intervalsCollide(a, b))
}

func TestIntervalsCollide_HalfDayAgainstFullDayCollides(t *testing.T) {
	on := dateOn(2025, 6, 1)
	a := singleDayRequest(model.RequestTypeLeave, on, true, model.FirstHalf)
	b := singleDayRequest(model.RequestTypeOD, on, false, "")

	assert.True(t, intervalsCollide(a, b))
}

func TestIntervalsCollide_HalfDayRefinementNeedsSingleDay(t *testing.T) {
	// A half-day flag on a multi-day range gets no refinement.
	a := &model.Request{
		Type:        model.RequestTypeLeave,
		FromDate:    dateOn(2025, 6, 1),
		ToDate:      dateOn(2025, 6, 2),
		IsHalfDay:   true,
		HalfDayType: model.FirstHalf,
	}
	b := singleDayRequest(model.RequestTypeOD, dateOn(2025, 6, 1), true, model.SecondHalf)

	assert.True(t, intervalsCollide(a, b))
}

func TestPermissionHours(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 11, 30, 0, 0, time.UTC)
	r := &model.Request{Type: model.RequestTypePermission, StartTime: &start, EndTime: &end}

	assert.Equal(t, 1.5, PermissionHours(r))
	assert.Equal(t, 0.0, PermissionHours(&model.Request{}))
}

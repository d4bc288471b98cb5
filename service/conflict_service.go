// service/conflict_service.go
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sakethdamerla/li-hrms-sub003/dao"
	hrms_errors "github.com/sakethdamerla/li-hrms-sub003/errors"
	logger "github.com/sakethdamerla/li-hrms-sub003/logging"
	"github.com/sakethdamerla/li-hrms-sub003/model"
)

// IConflictService validates a candidate request against the employee's
// live requests of competing types.
type IConflictService interface {
	Validate(ctx context.Context, request *model.Request, approvedOnly bool) ([]string, error)
	CheckAttendance(ctx context.Context, request *model.Request) error
}

type ConflictService struct {
	requestDAO    *dao.RequestDAO
	attendanceDAO *dao.AttendanceDAO
}

var _ IConflictService = &ConflictService{}

func NewConflictService(requestDAO *dao.RequestDAO, attendanceDAO *dao.AttendanceDAO) *ConflictService {
	return &ConflictService{
		requestDAO:    requestDAO,
		attendanceDAO: attendanceDAO,
	}
}

// Validate checks the request's interval against live competitors. Approved
// competitors always fail the check. With approvedOnly false the net widens
// to pending and intermediate-approved competitors, which come back as
// warnings instead of an error. The first hard conflict found is returned
// wrapped so callers can match hrms_errors.ErrRequestConflict.
func (s *ConflictService) Validate(ctx context.Context, request *model.Request, approvedOnly bool) ([]string, error) {
	competingTypes := request.Type.CompetingTypes()
	if len(competingTypes) == 0 {
		return nil, nil
	}

	statuses := model.LiveStatuses(approvedOnly)
	competitors, err := s.requestDAO.FindCompetingRequests(
		ctx,
		request.EmployeeID,
		competingTypes,
		statuses,
		request.FromDate,
		request.ToDate,
		request.ID,
	)
	if err != nil {
		return nil, err
	}

	var warnings []string
	for _, competitor := range competitors {
		if !intervalsCollide(request, competitor) {
			continue
		}

		conflict := &hrms_errors.ConflictError{
			CompetingType:   string(competitor.Type),
			CompetingStatus: string(competitor.Status),
			From:            competitor.FromDate,
			To:              competitor.ToDate,
		}

		if competitor.Status == model.StatusApproved {
			logger.Warn("Request conflicts with approved competitor",
				zap.String("employeeID", request.EmployeeID),
				zap.String("competitorID", competitor.ID),
				zap.String("competitorType", string(competitor.Type)))
			return warnings, conflict
		}

		warnings = append(warnings, conflict.Error())
	}

	return warnings, nil
}

// intervalsCollide layers the half-day refinement on top of the date
// overlap the store already guaranteed: two single-day half-day requests on
// the same date coexist when they occupy opposite halves.
func intervalsCollide(a, b *model.Request) bool {
	if !a.Interval().Overlaps(b.Interval()) {
		return false
	}
	if a.IsHalfDay && b.IsHalfDay &&
		a.Interval().SingleDay() && b.Interval().SingleDay() &&
		a.FromDate.Equal(b.FromDate) &&
		a.HalfDayType != b.HalfDayType {
		return false
	}
	return true
}

// CheckAttendance gates permission requests on a recorded in-time for the
// requested day. Other request types pass unconditionally.
func (s *ConflictService) CheckAttendance(ctx context.Context, request *model.Request) error {
	if request.Type != model.RequestTypePermission {
		return nil
	}

	day, err := s.attendanceDAO.GetDay(ctx, request.EmployeeNo, request.FromDate)
	if err != nil {
		return err
	}
	if !day.HasLoggedIn() {
		logger.Warn("Permission request without attendance login",
			zap.String("employeeNo", request.EmployeeNo),
			zap.String("date", request.FromDate.Format("2006-01-02")))
		return hrms_errors.ErrAttendanceRequired
	}
	return nil
}

// PermissionHours returns the span of a permission request in hours.
func PermissionHours(request *model.Request) float64 {
	if request.StartTime == nil || request.EndTime == nil {
		return 0
	}
	return request.EndTime.Sub(*request.StartTime).Hours()
}

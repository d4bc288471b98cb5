package dao

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	hrms_errors "github.com/sakethdamerla/li-hrms-sub003/errors"
	logger "github.com/sakethdamerla/li-hrms-sub003/logging"
	"github.com/sakethdamerla/li-hrms-sub003/model"
	helper_util "github.com/sakethdamerla/li-hrms-sub003/util/helper"
)

type AttendanceDAO struct {
	Driver neo4j.Driver
}

func NewAttendanceDAO(driver neo4j.Driver) *AttendanceDAO {
	return &AttendanceDAO{Driver: driver}
}

// GetDay returns the attendance record for one employee-day, or nil when no
// record exists yet.
func (dao *AttendanceDAO) GetDay(ctx context.Context, employeeNo string, date time.Time) (*model.AttendanceDay, error) {
	start := time.Now()
	day := date.Format(dateLayout)
	logger.Debug("Retrieving attendance day",
		zap.String("employeeNo", employeeNo),
		zap.String("date", day))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (a:Attendance {employeeNo: $employeeNo, date: $date})
    RETURN a
    `
	result, err := session.Run(query, map[string]interface{}{
		"employeeNo": employeeNo,
		"date":       day,
	})
	if err != nil {
		logger.Error("Failed to execute get attendance query",
			zap.Error(err),
			zap.String("employeeNo", employeeNo),
			zap.Duration("duration", time.Since(start)))
		return nil, hrms_errors.ErrDatabaseOperation
	}

	if result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		return mapNodeToAttendanceDay(node), nil
	}

	return nil, nil
}

// AddPermissionUsage records approved permission hours against the
// employee-day so attendance summaries stay consistent with the request
// store.
func (dao *AttendanceDAO) AddPermissionUsage(ctx context.Context, employeeNo string, date time.Time, hours float64) error {
	start := time.Now()
	day := date.Format(dateLayout)
	logger.Info("Recording permission usage",
		zap.String("employeeNo", employeeNo),
		zap.String("date", day),
		zap.Float64("hours", hours))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MERGE (a:Attendance {employeeNo: $employeeNo, date: $date})
        ON CREATE SET a.permissionHours = $hours,
                      a.permissionCount = 1,
                      a.createdAt = $now
        ON MATCH SET a.permissionHours = coalesce(a.permissionHours, 0) + $hours,
                     a.permissionCount = coalesce(a.permissionCount, 0) + 1,
                     a.updatedAt = $now
        RETURN a
        `
		_, err := transaction.Run(query, map[string]interface{}{
			"employeeNo": employeeNo,
			"date":       day,
			"hours":      hours,
			"now":        time.Now().Format(time.RFC3339),
		})
		if err != nil {
			return nil, hrms_errors.ErrDatabaseOperation
		}
		return nil, nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to record permission usage",
			zap.Error(err),
			zap.String("employeeNo", employeeNo),
			zap.Duration("duration", duration))
		return err
	}

	logger.Info("Permission usage recorded",
		zap.String("employeeNo", employeeNo),
		zap.Duration("duration", duration))
	return nil
}

func mapNodeToAttendanceDay(node neo4j.Node) *model.AttendanceDay {
	props := node.Props
	day := &model.AttendanceDay{}

	if employeeNo, ok := props["employeeNo"].(string); ok {
		day.EmployeeNo = employeeNo
	}
	if date, ok := props["date"].(string); ok {
		day.Date = date
	}
	if inTime, ok := props["inTime"].(string); ok {
		t := helper_util.ParseTime(inTime)
		day.InTime = &t
	}
	if outTime, ok := props["outTime"].(string); ok {
		t := helper_util.ParseTime(outTime)
		day.OutTime = &t
	}
	if hours, ok := props["permissionHours"].(float64); ok {
		day.PermissionHours = hours
	}
	if count, ok := props["permissionCount"].(int64); ok {
		day.PermissionCount = int(count)
	}

	return day
}

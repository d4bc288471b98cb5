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

type EmployeeDAO struct {
	Driver neo4j.Driver
}

func NewEmployeeDAO(driver neo4j.Driver) *EmployeeDAO {
	return &EmployeeDAO{Driver: driver}
}

func (dao *EmployeeDAO) GetEmployee(ctx context.Context, employeeID string) (*model.Employee, error) {
	start := time.Now()
	logger.Debug("Retrieving employee", zap.String("employeeID", employeeID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (e:Employee)
    WHERE e.id = $id OR e.empNo = $id
    RETURN e
    `
	result, err := session.Run(query, map[string]interface{}{"id": employeeID})
	if err != nil {
		logger.Error("Failed to execute get employee query",
			zap.Error(err),
			zap.String("employeeID", employeeID),
			zap.Duration("duration", time.Since(start)))
		return nil, hrms_errors.ErrDatabaseOperation
	}

	if result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		employee, err := mapNodeToEmployee(node)
		if err != nil {
			logger.Error("Failed to map employee node to struct",
				zap.Error(err),
				zap.String("employeeID", employeeID),
				zap.Duration("duration", time.Since(start)))
			return nil, hrms_errors.ErrInternalServer
		}
		return employee, nil
	}

	logger.Warn("Employee not found",
		zap.String("employeeID", employeeID),
		zap.Duration("duration", time.Since(start)))
	return nil, hrms_errors.ErrEmployeeNotFound
}

func mapNodeToEmployee(node neo4j.Node) (*model.Employee, error) {
	props := node.Props
	employee := &model.Employee{}

	employee.ID = props["id"].(string)
	if empNo, ok := props["empNo"].(string); ok {
		employee.EmpNo = empNo
	}
	if firstName, ok := props["firstName"].(string); ok {
		employee.FirstName = firstName
	}
	if lastName, ok := props["lastName"].(string); ok {
		employee.LastName = lastName
	}
	if divisionID, ok := props["divisionId"].(string); ok {
		employee.DivisionID = divisionID
	}
	if departmentID, ok := props["departmentId"].(string); ok {
		employee.DepartmentID = departmentID
	}
	if designationID, ok := props["designationId"].(string); ok {
		employee.DesignationID = designationID
	}
	if isActive, ok := props["isActive"].(bool); ok {
		employee.IsActive = isActive
	}
	if createdAt, ok := props["createdAt"].(string); ok {
		employee.CreatedAt = helper_util.ParseTime(createdAt)
	}
	if updatedAt, ok := props["updatedAt"].(string); ok {
		employee.UpdatedAt = helper_util.ParseTime(updatedAt)
	}

	return employee, nil
}

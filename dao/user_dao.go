package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	hrms_errors "github.com/sakethdamerla/li-hrms-sub003/errors"
	logger "github.com/sakethdamerla/li-hrms-sub003/logging"
	"github.com/sakethdamerla/li-hrms-sub003/model"
)

type UserDAO struct {
	Driver neo4j.Driver
}

func NewUserDAO(driver neo4j.Driver) *UserDAO {
	return &UserDAO{Driver: driver}
}

// GetActorScope resolves the jurisdiction profile for the acting user. Any
// failure to resolve or parse the record surfaces as an error; callers deny
// on error.
func (dao *UserDAO) GetActorScope(ctx context.Context, userID string) (*model.ActorScope, error) {
	start := time.Now()
	logger.Debug("Resolving actor scope", zap.String("userID", userID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (u:User {id: $id})
    RETURN u
    `
	result, err := session.Run(query, map[string]interface{}{"id": userID})
	if err != nil {
		logger.Error("Failed to execute get user query",
			zap.Error(err),
			zap.String("userID", userID),
			zap.Duration("duration", time.Since(start)))
		return nil, hrms_errors.ErrDatabaseOperation
	}

	if result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		scope, err := mapNodeToActorScope(node)
		if err != nil {
			logger.Error("Failed to map user node to actor scope",
				zap.Error(err),
				zap.String("userID", userID),
				zap.Duration("duration", time.Since(start)))
			return nil, hrms_errors.ErrInternalServer
		}
		return scope, nil
	}

	logger.Warn("User not found",
		zap.String("userID", userID),
		zap.Duration("duration", time.Since(start)))
	return nil, hrms_errors.ErrUserNotFound
}

func mapNodeToActorScope(node neo4j.Node) (*model.ActorScope, error) {
	props := node.Props
	scope := &model.ActorScope{}

	scope.UserID = props["id"].(string)
	if name, ok := props["name"].(string); ok {
		scope.Name = name
	}
	role, ok := props["role"].(string)
	if !ok || role == "" {
		return nil, fmt.Errorf("user record has no role")
	}
	scope.Role = model.Role(role)

	if dataScope, ok := props["dataScope"].(string); ok {
		scope.DataScope = model.DataScope(dataScope)
	}
	if employeeID, ok := props["employeeId"].(string); ok {
		scope.EmployeeID = employeeID
	}
	if employeeNo, ok := props["employeeNo"].(string); ok {
		scope.EmployeeNo = employeeNo
	}
	if department, ok := props["department"].(string); ok {
		scope.Department = department
	}
	if departments, ok := props["departments"].([]interface{}); ok {
		for _, d := range departments {
			if s, ok := d.(string); ok {
				scope.Departments = append(scope.Departments, s)
			}
		}
	}
	if allowedDivisions, ok := props["allowedDivisions"].([]interface{}); ok {
		for _, d := range allowedDivisions {
			if s, ok := d.(string); ok {
				scope.AllowedDivisions = append(scope.AllowedDivisions, s)
			}
		}
	}
	if mappingJSON, ok := props["divisionMapping"].(string); ok && mappingJSON != "" {
		if err := json.Unmarshal([]byte(mappingJSON), &scope.DivisionMapping); err != nil {
			return nil, fmt.Errorf("invalid division mapping document: %w", err)
		}
	}

	return scope, nil
}

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

type WorkflowDefinitionDAO struct {
	Driver neo4j.Driver
}

func NewWorkflowDefinitionDAO(driver neo4j.Driver) *WorkflowDefinitionDAO {
	return &WorkflowDefinitionDAO{Driver: driver}
}

// GetDefinition loads the configured workflow for a request type, or nil
// when none has been configured. Callers fall back to the built-in default.
func (dao *WorkflowDefinitionDAO) GetDefinition(ctx context.Context, requestType model.RequestType) (*model.WorkflowDefinition, error) {
	start := time.Now()
	logger.Debug("Retrieving workflow definition", zap.String("requestType", string(requestType)))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (w:WorkflowDefinition {requestType: $requestType})
    RETURN w
    `
	result, err := session.Run(query, map[string]interface{}{"requestType": string(requestType)})
	if err != nil {
		logger.Error("Failed to execute get workflow definition query",
			zap.Error(err),
			zap.String("requestType", string(requestType)),
			zap.Duration("duration", time.Since(start)))
		return nil, hrms_errors.ErrDatabaseOperation
	}

	if result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		def, err := mapNodeToWorkflowDefinition(node)
		if err != nil {
			logger.Error("Failed to map workflow definition node to struct",
				zap.Error(err),
				zap.String("requestType", string(requestType)),
				zap.Duration("duration", time.Since(start)))
			return nil, hrms_errors.ErrInternalServer
		}
		return def, nil
	}

	return nil, nil
}

// SaveDefinition upserts the workflow configuration for a request type.
func (dao *WorkflowDefinitionDAO) SaveDefinition(ctx context.Context, def model.WorkflowDefinition) error {
	start := time.Now()
	logger.Info("Saving workflow definition", zap.String("requestType", string(def.RequestType)))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	stepsJSON, err := json.Marshal(def.Steps)
	if err != nil {
		return fmt.Errorf("failed to serialize workflow steps: %w", err)
	}

	_, err = session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MERGE (w:WorkflowDefinition {requestType: $requestType})
        SET w.steps = $steps,
            w.finalAuthorityRole = $finalAuthorityRole,
            w.firstRole = $firstRole,
            w.forwardPolicy = $forwardPolicy,
            w.updatedAt = $updatedAt
        RETURN w
        `
		_, err := transaction.Run(query, map[string]interface{}{
			"requestType":        string(def.RequestType),
			"steps":              string(stepsJSON),
			"finalAuthorityRole": string(def.FinalAuthorityRole),
			"firstRole":          string(def.FirstRole),
			"forwardPolicy":      string(def.ForwardPolicy),
			"updatedAt":          time.Now().Format(time.RFC3339),
		})
		if err != nil {
			return nil, hrms_errors.ErrDatabaseOperation
		}
		return nil, nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to save workflow definition",
			zap.Error(err),
			zap.String("requestType", string(def.RequestType)),
			zap.Duration("duration", duration))
		return err
	}

	logger.Info("Workflow definition saved",
		zap.String("requestType", string(def.RequestType)),
		zap.Duration("duration", duration))
	return nil
}

func mapNodeToWorkflowDefinition(node neo4j.Node) (*model.WorkflowDefinition, error) {
	props := node.Props
	def := &model.WorkflowDefinition{}

	def.RequestType = model.RequestType(props["requestType"].(string))
	if stepsJSON, ok := props["steps"].(string); ok {
		if err := json.Unmarshal([]byte(stepsJSON), &def.Steps); err != nil {
			return nil, fmt.Errorf("invalid workflow steps document: %w", err)
		}
	}
	if finalAuthorityRole, ok := props["finalAuthorityRole"].(string); ok {
		def.FinalAuthorityRole = model.Role(finalAuthorityRole)
	}
	if firstRole, ok := props["firstRole"].(string); ok {
		def.FirstRole = model.Role(firstRole)
	}
	if forwardPolicy, ok := props["forwardPolicy"].(string); ok {
		def.ForwardPolicy = model.ForwardPolicy(forwardPolicy)
	}

	return def, nil
}

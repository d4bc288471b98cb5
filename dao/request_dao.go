package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/sakethdamerla/li-hrms-sub003/audit"
	hrms_errors "github.com/sakethdamerla/li-hrms-sub003/errors"
	logger "github.com/sakethdamerla/li-hrms-sub003/logging"
	"github.com/sakethdamerla/li-hrms-sub003/model"
	helper_util "github.com/sakethdamerla/li-hrms-sub003/util/helper"
)

const dateLayout = "2006-01-02"

type RequestDAO struct {
	Driver       neo4j.Driver
	AuditService audit.Service
}

func NewRequestDAO(driver neo4j.Driver, auditService audit.Service) *RequestDAO {
	dao := &RequestDAO{Driver: driver, AuditService: auditService}
	ctx := context.Background()
	if err := dao.EnsureUniqueConstraint(ctx); err != nil {
		logger.Fatal("Failed to ensure unique constraint for Request", zap.Error(err))
	}
	return dao
}

func (dao *RequestDAO) EnsureUniqueConstraint(ctx context.Context) error {
	logger.Info("Ensuring unique constraint on Request ID")
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        CREATE CONSTRAINT unique_request_id IF NOT EXISTS
        FOR (r:Request) REQUIRE r.id IS UNIQUE
        `
		_, err := transaction.Run(query, nil)
		return nil, err
	})

	if err != nil {
		logger.Error("Failed to ensure unique constraint on Request ID", zap.Error(err))
		return err
	}

	logger.Info("Successfully ensured unique constraint on Request ID")
	return nil
}

// CreateRequest persists a new request node. Workflow chain and history ride
// as a JSON document; the fields queries and the optimistic concurrency
// check need are denormalized onto node properties.
func (dao *RequestDAO) CreateRequest(ctx context.Context, request model.Request) (string, error) {
	start := time.Now()
	logger.Info("Creating new request",
		zap.String("requestType", string(request.Type)),
		zap.String("employeeID", request.EmployeeID))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	if request.ID == "" {
		request.ID = uuid.New().String()
	}

	props, err := requestToProps(&request)
	if err != nil {
		return "", fmt.Errorf("failed to serialize request: %w", err)
	}

	result, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MERGE (r:Request {id: $id})
        ON CREATE SET r += $props
        RETURN r.id as id
        `

		params := map[string]interface{}{
			"id":    request.ID,
			"props": props,
		}

		result, err := transaction.Run(query, params)
		if err != nil {
			return nil, hrms_errors.ErrDatabaseOperation
		}

		if result.Next() {
			return result.Record().Values[0], nil
		}

		return nil, hrms_errors.ErrInternalServer
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create request",
			zap.Error(err),
			zap.String("requestType", string(request.Type)),
			zap.Duration("duration", duration))
		return "", err
	}

	requestID := fmt.Sprintf("%v", result)
	logger.Info("Request created successfully",
		zap.String("requestID", requestID),
		zap.Duration("duration", duration))

	// Audit trail
	auditLog := audit.AuditLog{
		Timestamp:     time.Now(),
		UserID:        requestingUserID(ctx),
		Action:        "CREATE_REQUEST",
		RequestID:     requestID,
		RequestType:   string(request.Type),
		ToStatus:      string(request.Status),
		AccessGranted: true,
	}
	if err := dao.AuditService.LogAction(ctx, auditLog); err != nil {
		logger.Error("Failed to create audit log", zap.Error(err))
	}

	return requestID, nil
}

func (dao *RequestDAO) GetRequest(ctx context.Context, requestID string) (*model.Request, error) {
	start := time.Now()
	logger.Info("Retrieving request", zap.String("requestID", requestID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (r:Request {id: $id})
    RETURN r
    `
	result, err := session.Run(query, map[string]interface{}{"id": requestID})
	if err != nil {
		logger.Error("Failed to execute get request query",
			zap.Error(err),
			zap.String("requestID", requestID),
			zap.Duration("duration", time.Since(start)))
		return nil, hrms_errors.ErrDatabaseOperation
	}

	if result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		request, err := mapNodeToRequest(node)
		if err != nil {
			logger.Error("Failed to map request node to struct",
				zap.Error(err),
				zap.String("requestID", requestID),
				zap.Duration("duration", time.Since(start)))
			return nil, hrms_errors.ErrInternalServer
		}
		logger.Info("Request retrieved successfully",
			zap.String("requestID", requestID),
			zap.Duration("duration", time.Since(start)))
		return request, nil
	}

	logger.Warn("Request not found",
		zap.String("requestID", requestID),
		zap.Duration("duration", time.Since(start)))
	return nil, hrms_errors.ErrRequestNotFound
}

// UpdateWorkflow applies a workflow transition with an optimistic
// concurrency check. The write matches only when the node still carries the
// status and current step order the transition was computed from; zero
// matched nodes against an existing request means a concurrent actor won the
// race.
func (dao *RequestDAO) UpdateWorkflow(ctx context.Context, requestID string, result *model.Request, expectedStatus model.Status, expectedOrder int, action string) error {
	start := time.Now()
	logger.Info("Updating request workflow",
		zap.String("requestID", requestID),
		zap.String("action", action),
		zap.String("expectedStatus", string(expectedStatus)),
		zap.Int("expectedOrder", expectedOrder))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	workflowJSON, err := json.Marshal(result.Workflow)
	if err != nil {
		return fmt.Errorf("failed to serialize workflow: %w", err)
	}

	_, err = session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (r:Request {id: $id})
        WHERE r.status = $expectedStatus AND r.currentStepOrder = $expectedOrder
        SET r.workflow = $workflow,
            r.status = $status,
            r.currentStepRole = $currentStepRole,
            r.currentStepOrder = $currentStepOrder,
            r.isCompleted = $isCompleted,
            r.isActive = $isActive,
            r.updatedAt = $updatedAt
        RETURN r.id as id
        `
		params := map[string]interface{}{
			"id":               requestID,
			"expectedStatus":   string(expectedStatus),
			"expectedOrder":    expectedOrder,
			"workflow":         string(workflowJSON),
			"status":           string(result.Status),
			"currentStepRole":  currentStepRoleProp(&result.Workflow),
			"currentStepOrder": result.Workflow.CurrentStepOrder(),
			"isCompleted":      result.Workflow.IsCompleted,
			"isActive":         result.IsActive,
			"updatedAt":        time.Now().Format(time.RFC3339),
		}

		res, err := transaction.Run(query, params)
		if err != nil {
			return nil, hrms_errors.ErrDatabaseOperation
		}
		if res.Next() {
			return nil, nil
		}

		// Distinguish a lost race from a missing node.
		check, err := transaction.Run(`MATCH (r:Request {id: $id}) RETURN r.id`, map[string]interface{}{"id": requestID})
		if err != nil {
			return nil, hrms_errors.ErrDatabaseOperation
		}
		if check.Next() {
			return nil, hrms_errors.ErrStaleWorkflowState
		}
		return nil, hrms_errors.ErrRequestNotFound
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to update request workflow",
			zap.Error(err),
			zap.String("requestID", requestID),
			zap.String("action", action),
			zap.Duration("duration", duration))
		return err
	}

	logger.Info("Request workflow updated successfully",
		zap.String("requestID", requestID),
		zap.String("action", action),
		zap.String("status", string(result.Status)),
		zap.Duration("duration", duration))

	// Audit trail
	auditLog := audit.AuditLog{
		Timestamp:     time.Now(),
		UserID:        requestingUserID(ctx),
		Action:        action,
		RequestID:     requestID,
		RequestType:   string(result.Type),
		FromStatus:    string(expectedStatus),
		ToStatus:      string(result.Status),
		AccessGranted: true,
	}
	if err := dao.AuditService.LogAction(ctx, auditLog); err != nil {
		logger.Error("Failed to create audit log", zap.Error(err))
	}

	return nil
}

// FindCompetingRequests returns the employee's live requests of the given
// types whose date range intersects [fromDate, toDate]. Closed intervals:
// [a,b] and [c,d] intersect iff a <= d and c <= b.
func (dao *RequestDAO) FindCompetingRequests(ctx context.Context, employeeID string, types []model.RequestType, statuses []model.Status, fromDate, toDate time.Time, excludeID string) ([]*model.Request, error) {
	start := time.Now()
	logger.Info("Finding competing requests",
		zap.String("employeeID", employeeID),
		zap.Int("typeCount", len(types)))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	typeStrings := make([]string, len(types))
	for i, t := range types {
		typeStrings[i] = string(t)
	}
	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	query := `
    MATCH (r:Request)
    WHERE r.employeeId = $employeeId
      AND r.type IN $types
      AND r.status IN $statuses
      AND r.isActive = true
      AND r.id <> $excludeId
      AND r.fromDate <= $toDate
      AND $fromDate <= r.toDate
    RETURN r
    ORDER BY r.fromDate
    `
	result, err := session.Run(query, map[string]interface{}{
		"employeeId": employeeID,
		"types":      typeStrings,
		"statuses":   statusStrings,
		"excludeId":  excludeID,
		"fromDate":   fromDate.Format(dateLayout),
		"toDate":     toDate.Format(dateLayout),
	})
	if err != nil {
		logger.Error("Failed to execute competing requests query",
			zap.Error(err),
			zap.String("employeeID", employeeID),
			zap.Duration("duration", time.Since(start)))
		return nil, hrms_errors.ErrDatabaseOperation
	}

	var requests []*model.Request
	for result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		request, err := mapNodeToRequest(node)
		if err != nil {
			logger.Error("Failed to map request node to struct",
				zap.Error(err),
				zap.Duration("duration", time.Since(start)))
			return nil, hrms_errors.ErrInternalServer
		}
		requests = append(requests, request)
	}

	logger.Info("Competing requests retrieved",
		zap.String("employeeID", employeeID),
		zap.Int("count", len(requests)),
		zap.Duration("duration", time.Since(start)))

	return requests, nil
}

// SearchRequests lists request nodes matching the filter predicate plus any
// explicit criteria, newest first.
func (dao *RequestDAO) SearchRequests(ctx context.Context, filter model.Predicate, criteria model.RequestSearchCriteria) ([]*model.Request, error) {
	start := time.Now()
	logger.Info("Searching requests", zap.String("filter", filter.Clause))

	if filter.IsNone() {
		return []*model.Request{}, nil
	}

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	combined := filter
	if criteria.Type != "" {
		combined = model.And(combined, model.Eq("r.type", "critType", string(criteria.Type)))
	}
	if criteria.Status != "" {
		combined = model.And(combined, model.Eq("r.status", "critStatus", string(criteria.Status)))
	}
	if criteria.EmployeeID != "" {
		combined = model.And(combined, model.Eq("r.employeeId", "critEmployeeId", criteria.EmployeeID))
	}
	if criteria.EmployeeNo != "" {
		combined = model.And(combined, model.Eq("r.employeeNo", "critEmployeeNo", criteria.EmployeeNo))
	}
	// Date range criteria reuse the closed interval test.
	if criteria.FromDate != nil {
		combined = model.And(combined, model.Predicate{
			Clause: "r.toDate >= $critFromDate",
			Params: map[string]interface{}{"critFromDate": criteria.FromDate.Format(dateLayout)},
		})
	}
	if criteria.ToDate != nil {
		combined = model.And(combined, model.Predicate{
			Clause: "r.fromDate <= $critToDate",
			Params: map[string]interface{}{"critToDate": criteria.ToDate.Format(dateLayout)},
		})
	}
	if combined.IsNone() {
		return []*model.Request{}, nil
	}

	limit := criteria.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := criteria.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
    MATCH (r:Request)
    %s
    RETURN r
    ORDER BY r.createdAt DESC
    SKIP $offset
    LIMIT $limit
    `, combined.Where())

	params := map[string]interface{}{
		"offset": offset,
		"limit":  limit,
	}
	for k, v := range combined.Params {
		params[k] = v
	}

	result, err := session.Run(query, params)
	if err != nil {
		logger.Error("Failed to execute search requests query",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return nil, hrms_errors.ErrDatabaseOperation
	}

	var requests []*model.Request
	for result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		request, err := mapNodeToRequest(node)
		if err != nil {
			logger.Error("Failed to map request node to struct",
				zap.Error(err),
				zap.Duration("duration", time.Since(start)))
			return nil, hrms_errors.ErrInternalServer
		}
		requests = append(requests, request)
	}

	logger.Info("Requests searched successfully",
		zap.Int("resultCount", len(requests)),
		zap.Duration("duration", time.Since(start)))

	return requests, nil
}

// SetInactive soft-deletes a request node.
func (dao *RequestDAO) SetInactive(ctx context.Context, requestID string) error {
	start := time.Now()
	logger.Info("Deactivating request", zap.String("requestID", requestID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (r:Request {id: $id})
        SET r.isActive = false, r.updatedAt = $updatedAt
        RETURN r.id as id
        `
		result, err := transaction.Run(query, map[string]interface{}{
			"id":        requestID,
			"updatedAt": time.Now().Format(time.RFC3339),
		})
		if err != nil {
			return nil, hrms_errors.ErrDatabaseOperation
		}
		if !result.Next() {
			return nil, hrms_errors.ErrRequestNotFound
		}
		return nil, nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to deactivate request",
			zap.Error(err),
			zap.String("requestID", requestID),
			zap.Duration("duration", duration))
		return err
	}

	logger.Info("Request deactivated successfully",
		zap.String("requestID", requestID),
		zap.Duration("duration", duration))
	return nil
}

// UpdateOutpass attaches the outpass artifact to an approved permission
// request. coalesce keeps the first issued code, so replays are idempotent.
func (dao *RequestDAO) UpdateOutpass(ctx context.Context, requestID, code, url string, expiry time.Time) (*model.Request, error) {
	start := time.Now()
	logger.Info("Issuing outpass", zap.String("requestID", requestID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	var updated *model.Request
	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (r:Request {id: $id})
        SET r.outpassCode = coalesce(r.outpassCode, $code),
            r.outpassUrl = coalesce(r.outpassUrl, $url),
            r.outpassExpiry = coalesce(r.outpassExpiry, $expiry),
            r.updatedAt = $updatedAt
        RETURN r
        `
		result, err := transaction.Run(query, map[string]interface{}{
			"id":        requestID,
			"code":      code,
			"url":       url,
			"expiry":    expiry.Format(time.RFC3339),
			"updatedAt": time.Now().Format(time.RFC3339),
		})
		if err != nil {
			return nil, hrms_errors.ErrDatabaseOperation
		}
		if result.Next() {
			node := result.Record().Values[0].(neo4j.Node)
			updated, err = mapNodeToRequest(node)
			if err != nil {
				return nil, fmt.Errorf("failed to map request node to struct: %w", err)
			}
			return nil, nil
		}
		return nil, hrms_errors.ErrRequestNotFound
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to issue outpass",
			zap.Error(err),
			zap.String("requestID", requestID),
			zap.Duration("duration", duration))
		return nil, err
	}

	logger.Info("Outpass issued successfully",
		zap.String("requestID", requestID),
		zap.Duration("duration", duration))
	return updated, nil
}

func currentStepRoleProp(w *model.Workflow) string {
	if s := w.CurrentStep(); s != nil {
		return string(s.Role)
	}
	return ""
}

func requestToProps(request *model.Request) (map[string]interface{}, error) {
	workflowJSON, err := json.Marshal(request.Workflow)
	if err != nil {
		return nil, err
	}

	now := time.Now().Format(time.RFC3339)
	props := map[string]interface{}{
		"type":             string(request.Type),
		"employeeId":       request.EmployeeID,
		"employeeNo":       request.EmployeeNo,
		"requestedBy":      request.RequestedBy,
		"fromDate":         request.FromDate.Format(dateLayout),
		"toDate":           request.ToDate.Format(dateLayout),
		"numberOfDays":     request.NumberOfDays,
		"isHalfDay":        request.IsHalfDay,
		"halfDayType":      request.HalfDayType,
		"purpose":          request.Purpose,
		"contactNumber":    request.ContactNumber,
		"remarks":          request.Remarks,
		"divisionId":       request.DivisionID,
		"departmentId":     request.DepartmentID,
		"status":           string(request.Status),
		"isActive":         request.IsActive,
		"workflow":         string(workflowJSON),
		"currentStepRole":  currentStepRoleProp(&request.Workflow),
		"currentStepOrder": request.Workflow.CurrentStepOrder(),
		"isCompleted":      request.Workflow.IsCompleted,
		"appliedAt":        request.AppliedAt.Format(time.RFC3339),
		"createdAt":        now,
		"updatedAt":        now,
	}
	if request.StartTime != nil {
		props["startTime"] = request.StartTime.Format(time.RFC3339)
	}
	if request.EndTime != nil {
		props["endTime"] = request.EndTime.Format(time.RFC3339)
	}
	return props, nil
}

// Helper function to map Neo4j Node to Request struct
func mapNodeToRequest(node neo4j.Node) (*model.Request, error) {
	props := node.Props
	request := &model.Request{}

	request.ID = props["id"].(string)
	request.Type = model.RequestType(props["type"].(string))
	request.EmployeeID = props["employeeId"].(string)
	if employeeNo, ok := props["employeeNo"].(string); ok {
		request.EmployeeNo = employeeNo
	}
	request.RequestedBy = props["requestedBy"].(string)

	fromDate, err := time.Parse(dateLayout, props["fromDate"].(string))
	if err != nil {
		return nil, fmt.Errorf("invalid fromDate: %w", err)
	}
	request.FromDate = fromDate
	toDate, err := time.Parse(dateLayout, props["toDate"].(string))
	if err != nil {
		return nil, fmt.Errorf("invalid toDate: %w", err)
	}
	request.ToDate = toDate

	if startTime, ok := props["startTime"].(string); ok {
		t := helper_util.ParseTime(startTime)
		request.StartTime = &t
	}
	if endTime, ok := props["endTime"].(string); ok {
		t := helper_util.ParseTime(endTime)
		request.EndTime = &t
	}

	if numberOfDays, ok := props["numberOfDays"].(float64); ok {
		request.NumberOfDays = numberOfDays
	}
	if isHalfDay, ok := props["isHalfDay"].(bool); ok {
		request.IsHalfDay = isHalfDay
	}
	if halfDayType, ok := props["halfDayType"].(string); ok {
		request.HalfDayType = halfDayType
	}
	if purpose, ok := props["purpose"].(string); ok {
		request.Purpose = purpose
	}
	if contactNumber, ok := props["contactNumber"].(string); ok {
		request.ContactNumber = contactNumber
	}
	if remarks, ok := props["remarks"].(string); ok {
		request.Remarks = remarks
	}
	if divisionID, ok := props["divisionId"].(string); ok {
		request.DivisionID = divisionID
	}
	if departmentID, ok := props["departmentId"].(string); ok {
		request.DepartmentID = departmentID
	}

	request.Status = model.Status(props["status"].(string))
	if isActive, ok := props["isActive"].(bool); ok {
		request.IsActive = isActive
	}

	if workflowJSON, ok := props["workflow"].(string); ok {
		if err := json.Unmarshal([]byte(workflowJSON), &request.Workflow); err != nil {
			return nil, fmt.Errorf("invalid workflow document: %w", err)
		}
	}

	if outpassCode, ok := props["outpassCode"].(string); ok {
		request.OutpassCode = outpassCode
	}
	if outpassURL, ok := props["outpassUrl"].(string); ok {
		request.OutpassURL = outpassURL
	}
	if outpassExpiry, ok := props["outpassExpiry"].(string); ok {
		t := helper_util.ParseTime(outpassExpiry)
		request.OutpassExpiry = &t
	}

	if appliedAt, ok := props["appliedAt"].(string); ok {
		request.AppliedAt = helper_util.ParseTime(appliedAt)
	}
	if createdAt, ok := props["createdAt"].(string); ok {
		request.CreatedAt = helper_util.ParseTime(createdAt)
	}
	if updatedAt, ok := props["updatedAt"].(string); ok {
		request.UpdatedAt = helper_util.ParseTime(updatedAt)
	}

	return request, nil
}

// requestingUserID pulls the acting user off the context for audit entries.
func requestingUserID(ctx context.Context) string {
	if v, ok := ctx.Value("requestingUserID").(string); ok {
		return v
	}
	return "system"
}

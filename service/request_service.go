// service/request_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sakethdamerla/li-hrms-sub003/config"
	"github.com/sakethdamerla/li-hrms-sub003/dao"
	"github.com/sakethdamerla/li-hrms-sub003/db"
	hrms_errors "github.com/sakethdamerla/li-hrms-sub003/errors"
	logger "github.com/sakethdamerla/li-hrms-sub003/logging"
	"github.com/sakethdamerla/li-hrms-sub003/model"
	"github.com/sakethdamerla/li-hrms-sub003/scope"
	"github.com/sakethdamerla/li-hrms-sub003/util"
	"github.com/sakethdamerla/li-hrms-sub003/workflow"
)

// IRequestService defines the operations of the approval workflow engine.
type IRequestService interface {
	CreateRequest(ctx context.Context, request model.Request, actor *model.ActorScope) (*model.Request, []string, error)
	ApplyAction(ctx context.Context, requestID string, action model.ActionType, actor *model.ActorScope, comments string) (*model.Request, error)
	Revoke(ctx context.Context, requestID string, actor *model.ActorScope, comments string) (*model.Request, error)
	Cancel(ctx context.Context, requestID string, actor *model.ActorScope, comments string) (*model.Request, error)
	GetRequest(ctx context.Context, requestID string, actor *model.ActorScope) (*model.Request, error)
	ListRequests(ctx context.Context, actor *model.ActorScope, criteria model.RequestSearchCriteria) ([]*model.Request, error)
	ListPendingApprovals(ctx context.Context, actor *model.ActorScope, criteria model.RequestSearchCriteria) ([]*model.Request, error)
	ReplayCompletionEffects(ctx context.Context, requestID string, actor *model.ActorScope) (*model.Request, error)
}

// RequestService handles business logic for approvable requests
type RequestService struct {
	requestDAO      *dao.RequestDAO
	employeeDAO     *dao.EmployeeDAO
	attendanceDAO   *dao.AttendanceDAO
	workflowDefDAO  *dao.WorkflowDefinitionDAO
	conflictSvc     IConflictService
	machine         *workflow.Machine
	validationUtil  *util.ValidationUtil
	cacheService    *util.CacheService
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

var _ IRequestService = &RequestService{}

// NewRequestService creates a new instance of RequestService
func NewRequestService(
	requestDAO *dao.RequestDAO,
	employeeDAO *dao.EmployeeDAO,
	attendanceDAO *dao.AttendanceDAO,
	workflowDefDAO *dao.WorkflowDefinitionDAO,
	conflictSvc IConflictService,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) *RequestService {
	service := &RequestService{
		requestDAO:      requestDAO,
		employeeDAO:     employeeDAO,
		attendanceDAO:   attendanceDAO,
		workflowDefDAO:  workflowDefDAO,
		conflictSvc:     conflictSvc,
		machine:         workflow.NewMachine(),
		validationUtil:  validationUtil,
		cacheService:    cacheService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}

	// Set up event subscriptions
	eventBus.Subscribe("request.created", service.handleRequestCreated)
	eventBus.Subscribe("request.actioned", service.handleRequestActioned)
	eventBus.Subscribe("request.completed", service.handleRequestCompleted)

	return service
}

// CreateRequest validates, scopes, conflict-checks and persists a new
// request with a freshly built approval chain. Warnings name pending or
// intermediate-approved competitors that did not block creation.
func (s *RequestService) CreateRequest(ctx context.Context, request model.Request, actor *model.ActorScope) (*model.Request, []string, error) {
	if err := s.validationUtil.ValidateRequest(request); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", hrms_errors.ErrInvalidRequestData, err)
	}

	lookup := request.EmployeeID
	if lookup == "" {
		lookup = request.EmployeeNo
	}
	employee, err := s.getEmployee(ctx, lookup)
	if err != nil {
		return nil, nil, err
	}

	// Snapshot the organizational position so later moves do not rewrite
	// history.
	request.EmployeeID = employee.ID
	request.EmployeeNo = employee.EmpNo
	request.DivisionID = employee.DivisionID
	request.DepartmentID = employee.DepartmentID
	request.RequestedBy = actor.UserID

	if err := scope.CheckJurisdiction(actor, request.ScopeTarget()); err != nil {
		return nil, nil, err
	}

	if err := s.conflictSvc.CheckAttendance(ctx, &request); err != nil {
		return nil, nil, err
	}

	// Serialize conflict validation per employee so two overlapping
	// requests cannot both pass the check.
	lockKey := "request:" + request.EmployeeID
	locked, err := db.LockResource(ctx, lockKey, 10*time.Second)
	if err != nil {
		return nil, nil, err
	}
	if !locked {
		return nil, nil, hrms_errors.ErrStaleWorkflowState
	}
	defer func() {
		if err := db.UnlockResource(ctx, lockKey); err != nil {
			logger.Error("Failed to release request lock", zap.Error(err), zap.String("key", lockKey))
		}
	}()

	warnings, err := s.conflictSvc.Validate(ctx, &request, false)
	if err != nil {
		return nil, warnings, err
	}

	def, err := s.getWorkflowDefinition(ctx, request.Type)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	request.Workflow = workflow.NewWorkflow(request.Type, def)
	request.Workflow.History = append(request.Workflow.History, model.WorkflowEvent{
		Step:      "Submission",
		Action:    model.ActionSubmitted,
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
		Timestamp: now,
	})
	request.Status = model.StatusPending
	request.IsActive = true
	request.AppliedAt = now

	requestID, err := s.requestDAO.CreateRequest(ctx, request)
	if err != nil {
		return nil, warnings, err
	}
	request.ID = requestID

	s.eventBus.Publish(ctx, "request.created", request)

	return &request, warnings, nil
}

// ApplyAction executes an approve, reject or forward on the request's
// current step. A terminal approval re-validates conflicts against approved
// competitors before committing.
func (s *RequestService) ApplyAction(ctx context.Context, requestID string, action model.ActionType, actor *model.ActorScope, comments string) (*model.Request, error) {
	request, err := s.requestDAO.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !request.IsActive {
		return nil, hrms_errors.ErrRequestNotFound
	}
	if request.Status.IsTerminal() {
		return nil, hrms_errors.ErrRequestTerminal
	}

	if err := scope.CheckJurisdiction(actor, request.ScopeTarget()); err != nil {
		return nil, err
	}

	wactor := workflow.Actor{ID: actor.UserID, Role: actor.Role}
	now := time.Now()

	var result *workflow.TransitionResult
	switch action {
	case model.ActionTypeApprove:
		result, err = s.machine.Approve(&request.Workflow, request.Status, wactor, comments, now)
	case model.ActionTypeReject:
		result, err = s.machine.Reject(&request.Workflow, request.Status, wactor, comments, now)
	case model.ActionTypeForward:
		result, err = s.machine.Forward(&request.Workflow, request.Status, wactor, comments, now)
	default:
		return nil, hrms_errors.ErrInvalidAction
	}
	if err != nil {
		return nil, err
	}

	// The approval that completes the workflow re-checks conflicts, this
	// time against fully approved competitors only: a competitor may have
	// been approved while this one sat in the chain.
	if result.Completed && result.Status == model.StatusApproved {
		if _, err := s.conflictSvc.Validate(ctx, request, true); err != nil {
			return nil, err
		}
	}

	request.Workflow = result.Workflow
	request.Status = result.Status

	if err := s.requestDAO.UpdateWorkflow(ctx, requestID, request, result.ExpectedStatus, result.ExpectedOrder, actionAuditName(action)); err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, "request.actioned", map[string]interface{}{
		"action":  string(result.Event.Action),
		"request": *request,
	})
	if result.Completed && result.Status == model.StatusApproved {
		s.eventBus.Publish(ctx, "request.completed", *request)
	}

	return request, nil
}

// Revoke undoes the most recent approval while it is still inside the
// revocation window, regressing the chain exactly one step.
func (s *RequestService) Revoke(ctx context.Context, requestID string, actor *model.ActorScope, comments string) (*model.Request, error) {
	request, err := s.requestDAO.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !request.IsActive {
		return nil, hrms_errors.ErrRequestNotFound
	}
	// Only an approval can be revoked. Rejections and cancellations stay
	// terminal, including the role-specific rejected statuses.
	if request.Status.IsTerminal() && request.Status != model.StatusApproved {
		return nil, hrms_errors.ErrRequestTerminal
	}

	if err := scope.CheckJurisdiction(actor, request.ScopeTarget()); err != nil {
		return nil, err
	}

	wactor := workflow.Actor{ID: actor.UserID, Role: actor.Role}
	now := time.Now()
	window := config.RevocationWindow(request.DepartmentID)

	if err := workflow.CanRevoke(&request.Workflow, wactor, window, now); err != nil {
		return nil, err
	}

	result, err := s.machine.Revoke(&request.Workflow, request.Status, wactor, comments, now)
	if err != nil {
		return nil, err
	}

	request.Workflow = result.Workflow
	request.Status = result.Status

	if err := s.requestDAO.UpdateWorkflow(ctx, requestID, request, result.ExpectedStatus, result.ExpectedOrder, "REVOKE_APPROVAL"); err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, "request.actioned", map[string]interface{}{
		"action":  string(model.ActionRevoked),
		"request": *request,
	})

	return request, nil
}

// Cancel withdraws a request the actor submitted, while no approval has
// been recorded yet. A cancelled request stops occupying its interval.
func (s *RequestService) Cancel(ctx context.Context, requestID string, actor *model.ActorScope, comments string) (*model.Request, error) {
	request, err := s.requestDAO.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !request.IsActive {
		return nil, hrms_errors.ErrRequestNotFound
	}

	if err := scope.CheckJurisdiction(actor, request.ScopeTarget()); err != nil {
		return nil, err
	}

	wactor := workflow.Actor{ID: actor.UserID, Role: actor.Role}
	result, err := s.machine.Cancel(&request.Workflow, request.Status, wactor, request.RequestedBy, comments, time.Now())
	if err != nil {
		return nil, err
	}

	request.Workflow = result.Workflow
	request.Status = result.Status
	request.IsActive = false

	if err := s.requestDAO.UpdateWorkflow(ctx, requestID, request, result.ExpectedStatus, result.ExpectedOrder, "CANCEL_REQUEST"); err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, "request.actioned", map[string]interface{}{
		"action":  string(model.ActionCancelled),
		"request": *request,
	})

	return request, nil
}

func (s *RequestService) GetRequest(ctx context.Context, requestID string, actor *model.ActorScope) (*model.Request, error) {
	request, err := s.requestDAO.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := scope.CheckJurisdiction(actor, request.ScopeTarget()); err != nil {
		return nil, err
	}
	return request, nil
}

// ListRequests returns requests inside the actor's jurisdiction, own
// records included, narrowed by the criteria.
func (s *RequestService) ListRequests(ctx context.Context, actor *model.ActorScope, criteria model.RequestSearchCriteria) ([]*model.Request, error) {
	filter := scope.BuildScopeFilter(actor)
	return s.requestDAO.SearchRequests(ctx, filter, criteria)
}

// ListPendingApprovals returns the actor's approval inbox: active requests
// whose current step waits on the actor's role, excluding own submissions.
func (s *RequestService) ListPendingApprovals(ctx context.Context, actor *model.ActorScope, criteria model.RequestSearchCriteria) ([]*model.Request, error) {
	filter := scope.BuildWorkflowVisibilityFilter(actor)
	return s.requestDAO.SearchRequests(ctx, filter, criteria)
}

// ReplayCompletionEffects re-runs the post-approval side effects for an
// approved request. Effects are idempotent, so a crash between commit and
// effects is recovered by replaying.
func (s *RequestService) ReplayCompletionEffects(ctx context.Context, requestID string, actor *model.ActorScope) (*model.Request, error) {
	request, err := s.requestDAO.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := scope.CheckJurisdiction(actor, request.ScopeTarget()); err != nil {
		return nil, err
	}
	if request.Status != model.StatusApproved || !request.Workflow.IsCompleted {
		return nil, hrms_errors.ErrInvalidAction
	}

	if err := s.applyCompletionEffects(ctx, *request); err != nil {
		return nil, err
	}

	return s.requestDAO.GetRequest(ctx, requestID)
}

func (s *RequestService) handleRequestCreated(ctx context.Context, event util.Event) error {
	request := event.Payload.(model.Request)
	logger.Info("Request created event received",
		zap.String("requestID", request.ID),
		zap.String("requestType", string(request.Type)))

	if err := s.notificationSvc.NotifyRequestChange(ctx, "created", request); err != nil {
		logger.Warn("Failed to send request creation notification", zap.Error(err), zap.String("requestID", request.ID))
	}
	if err := s.notificationSvc.NotifyPendingApprover(ctx, request); err != nil {
		logger.Warn("Failed to notify pending approver", zap.Error(err), zap.String("requestID", request.ID))
	}
	return nil
}

func (s *RequestService) handleRequestActioned(ctx context.Context, event util.Event) error {
	payload := event.Payload.(map[string]interface{})
	action := payload["action"].(string)
	request := payload["request"].(model.Request)

	logger.Info("Request actioned event received",
		zap.String("requestID", request.ID),
		zap.String("action", action))

	if err := s.notificationSvc.NotifyRequestChange(ctx, action, request); err != nil {
		logger.Warn("Failed to send request action notification", zap.Error(err), zap.String("requestID", request.ID))
	}
	if !request.Status.IsTerminal() {
		if err := s.notificationSvc.NotifyPendingApprover(ctx, request); err != nil {
			logger.Warn("Failed to notify pending approver", zap.Error(err), zap.String("requestID", request.ID))
		}
	}
	return nil
}

func (s *RequestService) handleRequestCompleted(ctx context.Context, event util.Event) error {
	request := event.Payload.(model.Request)
	logger.Info("Request completed event received", zap.String("requestID", request.ID))
	return s.applyCompletionEffects(ctx, request)
}

// applyCompletionEffects runs the side effects of a terminal approval. The
// outpass write keeps the first issued code, and the attendance usage write
// is skipped when the outpass already existed, so replays are safe.
func (s *RequestService) applyCompletionEffects(ctx context.Context, request model.Request) error {
	if request.Type == model.RequestTypePermission {
		code := uuid.New().String()
		url := fmt.Sprintf("%s/outpass/%s", config.GetString("outpass.baseUrl"), code)
		validity := time.Duration(config.GetInt("outpass.validityHours")) * time.Hour
		expiry := time.Now().Add(validity)

		updated, err := s.requestDAO.UpdateOutpass(ctx, request.ID, code, url, expiry)
		if err != nil {
			return err
		}

		if updated.OutpassCode == code {
			hours := PermissionHours(&request)
			if err := s.attendanceDAO.AddPermissionUsage(ctx, request.EmployeeNo, request.FromDate, hours); err != nil {
				return err
			}
		} else {
			logger.Info("Outpass already issued, skipping attendance usage",
				zap.String("requestID", request.ID),
				zap.String("outpassCode", updated.OutpassCode))
		}

		if err := s.notificationSvc.NotifyOutpassIssued(ctx, *updated); err != nil {
			logger.Warn("Failed to send outpass notification", zap.Error(err), zap.String("requestID", request.ID))
		}
	}

	if err := s.notificationSvc.NotifyRequestChange(ctx, "approved", request); err != nil {
		logger.Warn("Failed to send completion notification", zap.Error(err), zap.String("requestID", request.ID))
	}
	return nil
}

func (s *RequestService) getEmployee(ctx context.Context, lookup string) (*model.Employee, error) {
	cached, err := s.cacheService.GetEmployee(ctx, lookup)
	if err != nil {
		logger.Warn("Employee cache read failed", zap.Error(err), zap.String("lookup", lookup))
	} else if cached != nil {
		return cached, nil
	}

	employee, err := s.employeeDAO.GetEmployee(ctx, lookup)
	if err != nil {
		return nil, err
	}

	if err := s.cacheService.SetEmployee(ctx, *employee); err != nil {
		logger.Warn("Failed to cache employee", zap.Error(err), zap.String("employeeID", employee.ID))
	}

	return employee, nil
}

// getWorkflowDefinition resolves the chain configuration for a request
// type: cache, then store, then the built-in default. The configured
// forward policy falls back to the deployment-wide setting.
func (s *RequestService) getWorkflowDefinition(ctx context.Context, requestType model.RequestType) (*model.WorkflowDefinition, error) {
	def, err := s.cacheService.GetWorkflowDefinition(ctx, requestType)
	if err != nil {
		logger.Warn("Workflow definition cache read failed", zap.Error(err), zap.String("requestType", string(requestType)))
	}
	if def == nil {
		def, err = s.workflowDefDAO.GetDefinition(ctx, requestType)
		if err != nil {
			return nil, err
		}
		if def != nil {
			if err := s.cacheService.SetWorkflowDefinition(ctx, *def); err != nil {
				logger.Warn("Failed to cache workflow definition", zap.Error(err), zap.String("requestType", string(requestType)))
			}
		}
	}
	if def == nil {
		def = model.DefaultWorkflowDefinition(requestType)
	}
	if def.ForwardPolicy == "" {
		def.ForwardPolicy = model.ForwardPolicy(config.GetString("workflow.forwardPolicy"))
	}
	return def, nil
}

func actionAuditName(action model.ActionType) string {
	switch action {
	case model.ActionTypeApprove:
		return "APPROVE_STEP"
	case model.ActionTypeReject:
		return "REJECT_REQUEST"
	case model.ActionTypeForward:
		return "FORWARD_REQUEST"
	default:
		return "WORKFLOW_ACTION"
	}
}

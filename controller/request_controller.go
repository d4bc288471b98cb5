// controller/request_controller.go
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	hrms_errors "github.com/sakethdamerla/li-hrms-sub003/errors"
	"github.com/sakethdamerla/li-hrms-sub003/model"
	"github.com/sakethdamerla/li-hrms-sub003/service"
	"github.com/sakethdamerla/li-hrms-sub003/util"
	helper_util "github.com/sakethdamerla/li-hrms-sub003/util/helper"
)

type RequestController struct {
	requestService service.IRequestService
}

func NewRequestController(requestService service.IRequestService) *RequestController {
	return &RequestController{
		requestService: requestService,
	}
}

// RegisterRoutes registers the API routes
func (rc *RequestController) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/requests")
	{
		requests.POST("/:type", rc.CreateRequest)
		requests.GET("", rc.ListRequests)
		requests.GET("/approvals/pending", rc.ListPendingApprovals)
		requests.GET("/:id", rc.GetRequest)
		requests.PUT("/:id/action", rc.ApplyAction)
		requests.PUT("/:id/revoke", rc.Revoke)
		requests.PUT("/:id/cancel", rc.Cancel)
		// gin cannot register ":id" here alongside POST "/:type"; the wildcard
		// name must match, so the request ID arrives as the "type" param.
		requests.POST("/:type/effects/replay", rc.ReplayCompletionEffects)
	}
}

type createRequestBody struct {
	EmployeeID    string     `json:"employee_id"`
	EmployeeNo    string     `json:"employee_no"`
	FromDate      string     `json:"from_date" binding:"required"`
	ToDate        string     `json:"to_date" binding:"required"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	NumberOfDays  float64    `json:"number_of_days"`
	IsHalfDay     bool       `json:"is_half_day"`
	HalfDayType   string     `json:"half_day_type"`
	Purpose       string     `json:"purpose" binding:"required"`
	ContactNumber string     `json:"contact_number"`
	Remarks       string     `json:"remarks"`
}

type actionBody struct {
	Action   string `json:"action" binding:"required"`
	Comments string `json:"comments"`
}

type commentsBody struct {
	Comments string `json:"comments"`
}

// CreateRequest endpoint
func (rc *RequestController) CreateRequest(c *gin.Context) {
	requestType := model.RequestType(c.Param("type"))
	if !requestType.Valid() {
		util.RespondWithError(c, http.StatusBadRequest, "Unknown request type", hrms_errors.ErrInvalidRequestData)
		return
	}

	var body createRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	fromDate, err := helper_util.ParseDate(body.FromDate)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid from date", err)
		return
	}
	toDate, err := helper_util.ParseDate(body.ToDate)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid to date", err)
		return
	}

	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	request := model.Request{
		Type:          requestType,
		EmployeeID:    body.EmployeeID,
		EmployeeNo:    body.EmployeeNo,
		FromDate:      fromDate,
		ToDate:        toDate,
		StartTime:     body.StartTime,
		EndTime:       body.EndTime,
		NumberOfDays:  body.NumberOfDays,
		IsHalfDay:     body.IsHalfDay,
		HalfDayType:   body.HalfDayType,
		Purpose:       body.Purpose,
		ContactNumber: body.ContactNumber,
		Remarks:       body.Remarks,
	}
	if request.EmployeeID == "" && request.EmployeeNo == "" {
		// Self-service: the actor requests for themselves.
		request.EmployeeID = actor.EmployeeID
		request.EmployeeNo = actor.EmployeeNo
	}

	created, warnings, err := rc.requestService.CreateRequest(c, request, actor)
	if err != nil {
		rc.respondWithServiceError(c, err, "Failed to create request")
		return
	}

	response := gin.H{"request": created}
	if len(warnings) > 0 {
		response["warnings"] = warnings
	}
	c.JSON(http.StatusCreated, response)
}

// ApplyAction endpoint
func (rc *RequestController) ApplyAction(c *gin.Context) {
	requestID := c.Param("id")

	var body actionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid action data", err)
		return
	}

	action := model.ActionType(body.Action)
	switch action {
	case model.ActionTypeApprove, model.ActionTypeReject, model.ActionTypeForward:
	default:
		util.RespondWithError(c, http.StatusBadRequest, "Unknown action", hrms_errors.ErrInvalidAction)
		return
	}

	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updated, err := rc.requestService.ApplyAction(c, requestID, action, actor, body.Comments)
	if err != nil {
		rc.respondWithServiceError(c, err, "Failed to apply action")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Revoke endpoint
func (rc *RequestController) Revoke(c *gin.Context) {
	requestID := c.Param("id")

	// Comments are optional, the body may be absent entirely.
	var body commentsBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid revoke data", err)
			return
		}
	}

	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updated, err := rc.requestService.Revoke(c, requestID, actor, body.Comments)
	if err != nil {
		rc.respondWithServiceError(c, err, "Failed to revoke approval")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Cancel endpoint
func (rc *RequestController) Cancel(c *gin.Context) {
	requestID := c.Param("id")

	var body commentsBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid cancel data", err)
			return
		}
	}

	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updated, err := rc.requestService.Cancel(c, requestID, actor, body.Comments)
	if err != nil {
		rc.respondWithServiceError(c, err, "Failed to cancel request")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// GetRequest endpoint
func (rc *RequestController) GetRequest(c *gin.Context) {
	requestID := c.Param("id")

	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	request, err := rc.requestService.GetRequest(c, requestID, actor)
	if err != nil {
		rc.respondWithServiceError(c, err, "Failed to get request")
		return
	}

	c.JSON(http.StatusOK, request)
}

// ListRequests endpoint
func (rc *RequestController) ListRequests(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	criteria, err := rc.parseCriteria(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	requests, err := rc.requestService.ListRequests(c, actor, criteria)
	if err != nil {
		rc.respondWithServiceError(c, err, "Failed to list requests")
		return
	}

	c.JSON(http.StatusOK, requests)
}

// ListPendingApprovals endpoint
func (rc *RequestController) ListPendingApprovals(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	criteria, err := rc.parseCriteria(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	requests, err := rc.requestService.ListPendingApprovals(c, actor, criteria)
	if err != nil {
		rc.respondWithServiceError(c, err, "Failed to list pending approvals")
		return
	}

	c.JSON(http.StatusOK, requests)
}

// ReplayCompletionEffects endpoint
func (rc *RequestController) ReplayCompletionEffects(c *gin.Context) {
	requestID := c.Param("type")

	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	request, err := rc.requestService.ReplayCompletionEffects(c, requestID, actor)
	if err != nil {
		rc.respondWithServiceError(c, err, "Failed to replay completion effects")
		return
	}

	c.JSON(http.StatusOK, request)
}

func (rc *RequestController) parseCriteria(c *gin.Context) (model.RequestSearchCriteria, error) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		return model.RequestSearchCriteria{}, hrms_errors.ErrInvalidPagination
	}

	criteria := model.RequestSearchCriteria{
		Type:       model.RequestType(c.Query("type")),
		Status:     model.Status(c.Query("status")),
		EmployeeID: c.Query("employee_id"),
		EmployeeNo: c.Query("employee_no"),
		Limit:      limit,
		Offset:     offset,
	}
	if criteria.Type != "" && !criteria.Type.Valid() {
		return model.RequestSearchCriteria{}, hrms_errors.ErrInvalidRequestData
	}

	if from := c.Query("from_date"); from != "" {
		t, err := helper_util.ParseDate(from)
		if err != nil {
			return model.RequestSearchCriteria{}, err
		}
		criteria.FromDate = &t
	}
	if to := c.Query("to_date"); to != "" {
		t, err := helper_util.ParseDate(to)
		if err != nil {
			return model.RequestSearchCriteria{}, err
		}
		criteria.ToDate = &t
	}

	return criteria, nil
}

func (rc *RequestController) respondWithServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, hrms_errors.ErrRequestNotFound):
		util.RespondWithError(c, http.StatusNotFound, "Request not found", err)
	case errors.Is(err, hrms_errors.ErrEmployeeNotFound):
		util.RespondWithError(c, http.StatusNotFound, "Employee not found", err)
	case errors.Is(err, hrms_errors.ErrUserNotFound):
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
	case errors.Is(err, hrms_errors.ErrUnauthorized):
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
	case errors.Is(err, hrms_errors.ErrOutOfJurisdiction):
		util.RespondWithError(c, http.StatusForbidden, "Outside your jurisdiction", err)
	case errors.Is(err, hrms_errors.ErrRoleMismatch):
		util.RespondWithError(c, http.StatusForbidden, "Current step is not assigned to your role", err)
	case errors.Is(err, hrms_errors.ErrCancelNotAllowed):
		util.RespondWithError(c, http.StatusForbidden, "Request cannot be cancelled", err)
	case errors.Is(err, hrms_errors.ErrRequestConflict):
		util.RespondWithError(c, http.StatusConflict, err.Error(), err)
	case errors.Is(err, hrms_errors.ErrStaleWorkflowState):
		util.RespondWithError(c, http.StatusConflict, "Request was updated concurrently, retry", err)
	case errors.Is(err, hrms_errors.ErrRequestTerminal):
		util.RespondWithError(c, http.StatusConflict, "Request already processed", err)
	case errors.Is(err, hrms_errors.ErrRevocationWindowExpired):
		util.RespondWithError(c, http.StatusConflict, "Revocation window expired", err)
	case errors.Is(err, hrms_errors.ErrNoApprovalToRevoke):
		util.RespondWithError(c, http.StatusConflict, "No approval to revoke", err)
	case errors.Is(err, hrms_errors.ErrNoActiveStep):
		util.RespondWithError(c, http.StatusConflict, "No active approval step", err)
	case errors.Is(err, hrms_errors.ErrInvalidRequestData):
		util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, hrms_errors.ErrInvalidPagination):
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
	case errors.Is(err, hrms_errors.ErrInvalidAction):
		util.RespondWithError(c, http.StatusBadRequest, "Invalid workflow action", err)
	case errors.Is(err, hrms_errors.ErrAttendanceRequired):
		util.RespondWithError(c, http.StatusBadRequest, "Attendance with in-time is required", err)
	case errors.Is(err, hrms_errors.ErrDatabaseOperation):
		util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
	default:
		util.RespondWithError(c, http.StatusInternalServerError, fallback, err)
	}
}

// controller/workflow_definition_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	hrms_errors "github.com/sakethdamerla/li-hrms-sub003/errors"
	"github.com/sakethdamerla/li-hrms-sub003/model"
	"github.com/sakethdamerla/li-hrms-sub003/service"
	"github.com/sakethdamerla/li-hrms-sub003/util"
)

type WorkflowDefinitionController struct {
	definitionService service.IWorkflowDefinitionService
}

func NewWorkflowDefinitionController(definitionService service.IWorkflowDefinitionService) *WorkflowDefinitionController {
	return &WorkflowDefinitionController{
		definitionService: definitionService,
	}
}

// RegisterRoutes registers the API routes
func (wc *WorkflowDefinitionController) RegisterRoutes(r *gin.RouterGroup) {
	definitions := r.Group("/workflow-definitions")
	{
		definitions.GET("/:type", wc.GetDefinition)
		definitions.PUT("/:type", wc.SaveDefinition)
	}
}

// GetDefinition endpoint
func (wc *WorkflowDefinitionController) GetDefinition(c *gin.Context) {
	requestType := model.RequestType(c.Param("type"))

	def, err := wc.definitionService.GetDefinition(c, requestType)
	if err != nil {
		if errors.Is(err, hrms_errors.ErrInvalidRequestData) {
			util.RespondWithError(c, http.StatusBadRequest, "Unknown request type", err)
			return
		}
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to get workflow definition", err)
		return
	}

	c.JSON(http.StatusOK, def)
}

// SaveDefinition endpoint
func (wc *WorkflowDefinitionController) SaveDefinition(c *gin.Context) {
	requestType := model.RequestType(c.Param("type"))

	var def model.WorkflowDefinition
	if err := c.ShouldBindJSON(&def); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid workflow definition", err)
		return
	}
	def.RequestType = requestType

	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	saved, err := wc.definitionService.SaveDefinition(c, def, actor)
	if err != nil {
		switch {
		case errors.Is(err, hrms_errors.ErrUnauthorized):
			util.RespondWithError(c, http.StatusForbidden, "Only administrators may change workflow definitions", err)
		case errors.Is(err, hrms_errors.ErrInvalidRequestData):
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to save workflow definition", err)
		}
		return
	}

	c.JSON(http.StatusOK, saved)
}

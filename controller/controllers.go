// controller/controllers.go
package controller

import "github.com/sakethdamerla/li-hrms-sub003/service"

type Controllers struct {
	Request            *RequestController
	WorkflowDefinition *WorkflowDefinitionController
}

func InitializeControllers(services *service.Services) *Controllers {
	return &Controllers{
		Request:            NewRequestController(services.Request),
		WorkflowDefinition: NewWorkflowDefinitionController(services.WorkflowDefinition),
	}
}

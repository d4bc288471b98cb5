// service/services.go
package service

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/sakethdamerla/li-hrms-sub003/audit"
	"github.com/sakethdamerla/li-hrms-sub003/dao"
	"github.com/sakethdamerla/li-hrms-sub003/util"
)

type Services struct {
	Request            IRequestService
	Conflict           IConflictService
	User               IUserService
	WorkflowDefinition IWorkflowDefinitionService
}

func InitializeServices(
	driver neo4j.Driver,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) (*Services, error) {
	requestDAO := dao.NewRequestDAO(driver, auditService)
	employeeDAO := dao.NewEmployeeDAO(driver)
	attendanceDAO := dao.NewAttendanceDAO(driver)
	workflowDefDAO := dao.NewWorkflowDefinitionDAO(driver)
	userDAO := dao.NewUserDAO(driver)

	conflictSvc := NewConflictService(requestDAO, attendanceDAO)

	services := &Services{
		Request: NewRequestService(
			requestDAO,
			employeeDAO,
			attendanceDAO,
			workflowDefDAO,
			conflictSvc,
			validationUtil,
			cacheService,
			notificationSvc,
			eventBus,
		),
		Conflict:           conflictSvc,
		User:               NewUserService(userDAO, cacheService),
		WorkflowDefinition: NewWorkflowDefinitionService(workflowDefDAO, validationUtil, cacheService),
	}

	return services, nil
}

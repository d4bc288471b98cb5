// util/cache_service.go

package util

import (
	"context"

	"github.com/sakethdamerla/li-hrms-sub003/db"
	"github.com/sakethdamerla/li-hrms-sub003/model"
)

type CacheService struct{}

func NewCacheService() *CacheService {
	return &CacheService{}
}

func (c *CacheService) GetActorScope(ctx context.Context, userID string) (*model.ActorScope, error) {
	return db.GetCachedActorScope(ctx, userID)
}

func (c *CacheService) SetActorScope(ctx context.Context, scope model.ActorScope) error {
	return db.CacheActorScope(ctx, &scope)
}

func (c *CacheService) DeleteActorScope(ctx context.Context, userID string) error {
	return db.DeleteCachedActorScope(ctx, userID)
}

func (c *CacheService) GetWorkflowDefinition(ctx context.Context, requestType model.RequestType) (*model.WorkflowDefinition, error) {
	return db.GetCachedWorkflowDefinition(ctx, requestType)
}

func (c *CacheService) SetWorkflowDefinition(ctx context.Context, def model.WorkflowDefinition) error {
	return db.CacheWorkflowDefinition(ctx, &def)
}

func (c *CacheService) DeleteWorkflowDefinition(ctx context.Context, requestType model.RequestType) error {
	return db.DeleteCachedWorkflowDefinition(ctx, requestType)
}

func (c *CacheService) GetEmployee(ctx context.Context, employeeID string) (*model.Employee, error) {
	return db.GetCachedEmployee(ctx, employeeID)
}

func (c *CacheService) SetEmployee(ctx context.Context, employee model.Employee) error {
	return db.CacheEmployee(ctx, &employee)
}

func (c *CacheService) DeleteEmployee(ctx context.Context, employeeID string) error {
	return db.DeleteCachedEmployee(ctx, employeeID)
}

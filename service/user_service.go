// service/user_service.go
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sakethdamerla/li-hrms-sub003/dao"
	logger "github.com/sakethdamerla/li-hrms-sub003/logging"
	"github.com/sakethdamerla/li-hrms-sub003/model"
	"github.com/sakethdamerla/li-hrms-sub003/util"
)

// IUserService resolves acting users to their jurisdiction profile.
type IUserService interface {
	GetActorScope(ctx context.Context, userID string) (*model.ActorScope, error)
	InvalidateActorScope(ctx context.Context, userID string) error
}

type UserService struct {
	userDAO      *dao.UserDAO
	cacheService *util.CacheService
}

var _ IUserService = &UserService{}

func NewUserService(userDAO *dao.UserDAO, cacheService *util.CacheService) *UserService {
	return &UserService{
		userDAO:      userDAO,
		cacheService: cacheService,
	}
}

// GetActorScope reads through the cache to the user store. Cache failures
// fall through to the store; store failures surface to the caller, who
// denies access.
func (s *UserService) GetActorScope(ctx context.Context, userID string) (*model.ActorScope, error) {
	cached, err := s.cacheService.GetActorScope(ctx, userID)
	if err != nil {
		logger.Warn("Actor scope cache read failed", zap.Error(err), zap.String("userID", userID))
	} else if cached != nil {
		return cached, nil
	}

	scope, err := s.userDAO.GetActorScope(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cacheService.SetActorScope(ctx, *scope); err != nil {
		logger.Warn("Failed to cache actor scope", zap.Error(err), zap.String("userID", userID))
	}

	return scope, nil
}

func (s *UserService) InvalidateActorScope(ctx context.Context, userID string) error {
	return s.cacheService.DeleteActorScope(ctx, userID)
}

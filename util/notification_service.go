// util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/sakethdamerla/li-hrms-sub003/logging"
	"github.com/sakethdamerla/li-hrms-sub003/model"
)

type NotificationService struct {
	// You might want to add dependencies here, such as a message queue client
}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (n *NotificationService) NotifyRequestChange(ctx context.Context, changeType string, request model.Request) error {
	// In a real implementation, you might send this to a message queue or external notification service
	switch changeType {
	case "created":
		logger.Info("NOTIFICATION: New request submitted",
			zap.String("requestID", request.ID),
			zap.String("requestType", string(request.Type)),
			zap.String("employeeID", request.EmployeeID))
	case "approved", "rejected", "forwarded", "revoked", "cancelled":
		logger.Info("NOTIFICATION: Request "+changeType,
			zap.String("requestID", request.ID),
			zap.String("requestType", string(request.Type)),
			zap.String("status", string(request.Status)))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}

	return nil
}

// NotifyPendingApprover tells the role now holding the current step that a
// request awaits action.
func (n *NotificationService) NotifyPendingApprover(ctx context.Context, request model.Request) error {
	step := request.Workflow.CurrentStep()
	if step == nil {
		return nil
	}
	logger.Info("NOTIFICATION: Approval pending",
		zap.String("requestID", request.ID),
		zap.String("requestType", string(request.Type)),
		zap.String("approverRole", string(step.Role)))
	return nil
}

func (n *NotificationService) NotifyOutpassIssued(ctx context.Context, request model.Request) error {
	logger.Info("NOTIFICATION: Outpass issued",
		zap.String("requestID", request.ID),
		zap.String("employeeNo", request.EmployeeNo),
		zap.String("outpassURL", request.OutpassURL))
	return nil
}

func (n *NotificationService) SendEmail(ctx context.Context, recipient, subject, body string) error {
	// Mock email sending
	logger.Info("Sending email",
		zap.String("recipient", recipient),
		zap.String("subject", subject))

	return nil
}

func (n *NotificationService) NotifyAdmins(ctx context.Context, message string) error {
	// Logic to notify all system administrators
	logger.Info("Notifying admins", zap.String("message", message))
	return nil
}

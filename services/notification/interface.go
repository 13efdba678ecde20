package notification

import (
	"context"
	"fmt"

	technicianRepo "fotura/database/repository/technician"
	"fotura/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService defines methods for sending FCM pushes to technicians.
// Dispatch is fire-and-forget from the caller's perspective: errors are
// returned for logging, never retried here.
type NotificationService interface {
	SendTechnicianPush(ctx context.Context, technicianID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	techs technicianRepo.TechnicianRepository
}

func NewDefaultNotificationService(techs technicianRepo.TechnicianRepository) (*DefaultNotificationService, error) {
	if techs == nil {
		return nil, fmt.Errorf("notification service initialization error: technician repository is nil")
	}
	return &DefaultNotificationService{techs: techs}, nil
}

// SendTechnicianPush looks up a technician's FCM token and sends a push.
func (s *DefaultNotificationService) SendTechnicianPush(
	ctx context.Context,
	technicianID, title, body string,
	data map[string]string,
) error {
	t, err := s.techs.GetByID(ctx, technicianID)
	if err != nil {
		return fmt.Errorf("SendTechnicianPush: could not find technician %s: %w", technicianID, err)
	}
	if t.FCMToken == "" {
		return fmt.Errorf("SendTechnicianPush: technician %s has no FCM token", technicianID)
	}
	if utils.FCMClient == nil {
		utils.GetLogger().Debug("push skipped, FCM not configured",
			zap.String("technicianID", technicianID))
		return nil
	}

	msg := &messaging.Message{
		Token: t.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendTechnicianPush: send failed for technician %s: %w", technicianID, err)
	}
	return nil
}

package scheduling

import (
	"context"

	"fotura/models"
	"fotura/utils"

	"go.uber.org/zap"
)

// Notification dispatch is fire-and-forget: failures are logged and never
// block or roll back a scheduling write.

func (se *DefaultSchedulingEngine) notifyConfirm(ctx context.Context, b *models.Booking) {
	if se.Notification == nil || b == nil {
		return
	}
	logger := utils.GetLogger()
	data := map[string]string{
		"bookingId": b.ID,
		"date":      b.Date,
		"start":     models.MinutesToLabel(b.Start),
	}
	if err := se.Notification.SendTechnicianPush(ctx, b.TechnicianID,
		"New session assigned",
		"Session on "+b.Date+" at "+models.MinutesToLabel(b.Start)+", "+b.Address,
		data); err != nil {
		logger.Warn("confirm notification failed",
			zap.String("bookingID", b.ID), zap.Error(err))
	}
}

func (se *DefaultSchedulingEngine) notifySwap(ctx context.Context, b *models.Booking, newTechnicianID string) {
	if se.Notification == nil || b == nil {
		return
	}
	logger := utils.GetLogger()
	data := map[string]string{
		"bookingId": b.ID,
		"date":      b.Date,
		"start":     models.MinutesToLabel(b.Start),
	}
	if err := se.Notification.SendTechnicianPush(ctx, newTechnicianID,
		"Session handed to you",
		"Session on "+b.Date+" at "+models.MinutesToLabel(b.Start)+", "+b.Address,
		data); err != nil {
		logger.Warn("swap notification failed",
			zap.String("bookingID", b.ID), zap.Error(err))
	}
	if err := se.Notification.SendTechnicianPush(ctx, b.TechnicianID,
		"Session reassigned",
		"Your session on "+b.Date+" at "+models.MinutesToLabel(b.Start)+" was handed over",
		data); err != nil {
		logger.Warn("swap notification failed",
			zap.String("bookingID", b.ID), zap.Error(err))
	}
}

func (se *DefaultSchedulingEngine) scheduleReminder(ctx context.Context, b *models.Booking) {
	if se.Reminders == nil || b == nil {
		return
	}
	if err := se.Reminders.ScheduleSessionReminder(ctx, *b); err != nil {
		utils.GetLogger().Warn("failed to schedule session reminder",
			zap.String("bookingID", b.ID), zap.Error(err))
	}
}

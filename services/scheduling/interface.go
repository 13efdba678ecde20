package scheduling

import (
	"context"

	"fotura/config"
	bookingRepo "fotura/database/repository/booking"
	serviceRepo "fotura/database/repository/service"
	technicianRepo "fotura/database/repository/technician"
	timeoffRepo "fotura/database/repository/timeoff"
	"fotura/models"
	"fotura/services/notification"

	"go.mongodb.org/mongo-driver/mongo"
)

// SchedulingService is the scheduling & assignment core: slot computation,
// finalization, reassignment, time-off blocking, route optimization and the
// booking lifecycle.
type SchedulingService interface {
	GetAvailableSlots(ctx context.Context, location models.GeoPoint, serviceIDs []string, date string) ([]models.AvailableSlot, error)
	FinalizeDraftBooking(ctx context.Context, p FinalizeRequest) (*models.Booking, error)
	GetEligibleTechniciansForSwap(ctx context.Context, bookingID string) ([]models.SwapCandidate, error)
	ReassignBooking(ctx context.Context, bookingID, technicianID, actor string) error
	BlockTimeOffSlots(ctx context.Context, technicianID, date string, slots []string, reason string, blockType models.BlockType) ([]models.TimeOffBlock, error)
	FindRouteOptimizations(ctx context.Context, date string) ([]models.RouteSuggestion, error)
	AdvanceStatus(ctx context.Context, bookingID string, to models.BookingStatus, actor string) error
	CreateDraftBooking(ctx context.Context, p DraftRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	GetDaySchedule(ctx context.Context, technicianID, date string) (*models.DaySchedule, error)
}

// SchedulingConfig carries the platform's scheduling knobs, loaded once from
// the app configuration.
type SchedulingConfig struct {
	SlotGridMinutes     int
	TravelBufferMinutes int
	MaxServiceRadiusKm  float64
	MaxBookingsPerDay   int
	RouteOptMaxPasses   int
}

// SchedulingConfigFromApp reads the knobs from the loaded viper config.
func SchedulingConfigFromApp() SchedulingConfig {
	return SchedulingConfig{
		SlotGridMinutes:     config.AppConfig.SlotGridMinutes,
		TravelBufferMinutes: config.AppConfig.TravelBufferMinutes,
		MaxServiceRadiusKm:  config.AppConfig.MaxServiceRadiusKm,
		MaxBookingsPerDay:   config.AppConfig.MaxBookingsPerDay,
		RouteOptMaxPasses:   config.AppConfig.RouteOptMaxPasses,
	}
}

// DefaultSchedulingEngine is the production scheduling core.
type DefaultSchedulingEngine struct {
	BookingRepo    bookingRepo.BookingRepository
	TechnicianRepo technicianRepo.TechnicianRepository
	TimeOffRepo    timeoffRepo.TimeOffRepository
	ServiceRepo    serviceRepo.ServiceRepository
	Notification   notification.NotificationService
	Reminders      ReminderScheduler
	Cfg            SchedulingConfig
}

// ReminderScheduler enqueues day-before session reminders. Nil-safe via
// the engine's helpers; delivery failures are logged, never retried here.
type ReminderScheduler interface {
	ScheduleSessionReminder(ctx context.Context, booking models.Booking) error
}

// loadSnapshot assembles the read snapshot for a date from the store.
func (se *DefaultSchedulingEngine) loadSnapshot(ctx context.Context, date string) (DaySnapshot, error) {
	techs, err := se.TechnicianRepo.ListActive(ctx)
	if err != nil {
		return DaySnapshot{}, err
	}
	bookings, err := se.BookingRepo.GetByDate(ctx, date)
	if err != nil {
		return DaySnapshot{}, err
	}
	timeOffs, err := se.TimeOffRepo.GetByDate(ctx, date)
	if err != nil {
		return DaySnapshot{}, err
	}
	return NewDaySnapshot(date, techs, bookings, timeOffs)
}

func (se *DefaultSchedulingEngine) getBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := se.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, NewNotFoundError("booking %s not found", bookingID)
		}
		return nil, err
	}
	return b, nil
}

// GetBooking exposes a single booking with its history.
func (se *DefaultSchedulingEngine) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return se.getBooking(ctx, bookingID)
}

// mapRepoError translates repository sentinels into typed scheduling errors.
func (se *DefaultSchedulingEngine) mapRepoError(err error, bookingID string) error {
	switch err {
	case bookingRepo.ErrIntervalTaken:
		return NewConflictError("interval for booking %s was taken by a concurrent writer", bookingID)
	case bookingRepo.ErrStaleBooking:
		return NewConflictError("booking %s changed since it was read", bookingID)
	case mongo.ErrNoDocuments:
		return NewNotFoundError("booking %s not found", bookingID)
	}
	return err
}

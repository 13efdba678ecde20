package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"fotura/config"
	"fotura/models"
	"fotura/services/notification"
	"fotura/utils"

	"github.com/hibiken/asynq"
)

const TypeSessionReminder = "reminder:session"

// SessionReminderPayload is the queued reminder for a confirmed booking.
type SessionReminderPayload struct {
	BookingID    string `json:"bookingId"`
	TechnicianID string `json:"technicianId"`
	Date         string `json:"date"`
	StartLabel   string `json:"startLabel"`
	Address      string `json:"address"`
}

// ReminderClient enqueues day-before session reminders onto the redis-backed
// queue. It satisfies the scheduling engine's ReminderScheduler.
type ReminderClient struct {
	client *asynq.Client
}

func NewReminderClient() *ReminderClient {
	return &ReminderClient{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueue,
		}),
	}
}

// ScheduleSessionReminder queues a push for 24h before the session start.
// Sessions closer than 24h get no reminder.
func (c *ReminderClient) ScheduleSessionReminder(ctx context.Context, b models.Booking) error {
	day, err := time.Parse(utils.DateLayout, b.Date)
	if err != nil {
		return fmt.Errorf("schedule reminder: bad booking date %q: %w", b.Date, err)
	}
	fireAt := day.Add(time.Duration(b.Start)*time.Minute - 24*time.Hour)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload, err := json.Marshal(SessionReminderPayload{
		BookingID:    b.ID,
		TechnicianID: b.TechnicianID,
		Date:         b.Date,
		StartLabel:   models.MinutesToLabel(b.Start),
		Address:      b.Address,
	})
	if err != nil {
		return fmt.Errorf("schedule reminder: marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeSessionReminder, payload)
	if _, err := c.client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt)); err != nil {
		return fmt.Errorf("schedule reminder: enqueue: %w", err)
	}
	return nil
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueue,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSessionReminder, handleSessionReminder(notifSvc))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleSessionReminder(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p SessionReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		data := map[string]string{
			"bookingId": p.BookingID,
			"date":      p.Date,
			"start":     p.StartLabel,
		}
		err := notifSvc.SendTechnicianPush(ctx, p.TechnicianID,
			"Session tomorrow",
			"Session on "+p.Date+" at "+p.StartLabel+", "+p.Address,
			data)
		if err != nil {
			log.Printf("[ReminderHandler] failed to send reminder for booking %s: %v", p.BookingID, err)
		}
		return err
	}
}

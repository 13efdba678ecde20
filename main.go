// File: fotura/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fotura/config"
	"fotura/cron"
	"fotura/database"
	bookingRepo "fotura/database/repository/booking"
	serviceRepo "fotura/database/repository/service"
	technicianRepo "fotura/database/repository/technician"
	timeoffRepo "fotura/database/repository/timeoff"
	"fotura/handlers"
	"fotura/middleware"
	"fotura/routes"
	"fotura/services/notification"
	"fotura/services/scheduling"
	"fotura/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(routes.CORSConfig())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	techRepo := technicianRepo.NewMongoTechnicianRepo()
	bkRepo := bookingRepo.NewMongoBookingRepo()
	toRepo := timeoffRepo.NewMongoTimeOffRepo()
	svcRepo := serviceRepo.NewMongoServiceRepo()

	// services.
	notifService, err := notification.NewDefaultNotificationService(techRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	schedulingEngine := &scheduling.DefaultSchedulingEngine{
		BookingRepo:    bkRepo,
		TechnicianRepo: techRepo,
		TimeOffRepo:    toRepo,
		ServiceRepo:    svcRepo,
		Notification:   notifService,
		Reminders:      cron.NewReminderClient(),
		Cfg:            scheduling.SchedulingConfigFromApp(),
	}

	// handlers.
	schedulingHandler := handlers.NewSchedulingHandler(schedulingEngine)
	technicianHandler := handlers.NewTechnicianHandler(techRepo, svcRepo)

	// routes.
	routes.RegisterBookingRoutes(router, schedulingHandler)
	routes.RegisterAdminRoutes(router, schedulingHandler, technicianHandler)
	routes.RegisterCatalogueRoutes(router, technicianHandler)
	routes.RegisterHealthRoute(router)

	// background workers & health.
	cron.InitReminderWorker(notifService)
	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient()}, database.MongoClient)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("listening on :%s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("forced shutdown: %v", err)
	}
	logger.Info("server stopped")
}

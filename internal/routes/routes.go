package routes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/config"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/events"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barbershop-scheduling/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/middleware"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/notification"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barbershop-scheduling/internal/usecase/appointment"
)

// Closer releases the background resources started by RegisterRoutes.
type Closer func(ctx context.Context) error

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, logger *slog.Logger) Closer {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(logger),
		middleware.CORSMiddleware(),
	)

	loc := cfg.Location()

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	catalogRepo := infraRepo.NewCatalogGormRepository(db)
	clientRepo := infraRepo.NewClientGormRepository(db)
	hoursRepo := infraRepo.NewWorkingHoursGormRepository(db)
	userRepo := infraRepo.NewUserGormRepository(db)
	auditRepo := infraRepo.NewAuditLogGormRepository(db)

	// ======================================================
	// 📣 EVENTOS DE CICLO DE VIDA
	// ======================================================
	sinks := notification.Fanout{
		notification.NewLogSink(logger),
		notification.NewAuditSink(db),
	}

	var kafkaSink *notification.KafkaSink
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink = notification.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		sinks = append(sinks, kafkaSink)
		logger.Info("kafka notifications enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	}

	dispatcher := events.NewDispatcher(sinks, logger, cfg.EventQueueSize)

	// ======================================================
	// 🧠 USE CASE
	// ======================================================
	scheduling := ucAppointment.NewSchedulingService(ucAppointment.Deps{
		Appointments:     appointmentRepo,
		Services:         catalogRepo,
		Clients:          clientRepo,
		Barbers:          catalogRepo,
		Hours:            hoursRepo,
		Notifier:         dispatcher,
		Clock:            timezone.NewSystemClock(loc),
		Location:         loc,
		SlotMinutes:      cfg.SlotMinutes,
		PublicMinAdvance: time.Duration(cfg.PublicMinAdvanceMinutes) * time.Minute,
		Logger:           logger,
	})

	// ======================================================
	// 🚦 RATE LIMIT (rotas públicas)
	// ======================================================
	var (
		counter middleware.WindowCounter = middleware.NewMemoryCounter()
		rdb     *redis.Client
	)
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		counter = middleware.NewRedisCounter(rdb)
	}
	publicLimit := middleware.RateLimit(counter, cfg.RateLimitRequests, cfg.RateLimitWindow, "rl:public", logger)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(userRepo, cfg)
	meHandler := handlers.NewMeHandler(userRepo)
	workingHoursHandler := handlers.NewWorkingHoursHandler(hoursRepo)
	appointmentHandler := handlers.NewAppointmentHandler(scheduling)
	publicHandler := handlers.NewPublicHandler(scheduling)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditRepo, loc)

	// ======================================================
	// ❤️ HEALTH
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public", publicLimit)
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/availability/:barberID", publicHandler.Availability)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/appointments/:id/confirm", publicHandler.ConfirmAppointment)
			publicAPI.GET("/business-hours", publicHandler.BusinessHours)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", publicLimit, authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/start", appointmentHandler.Start)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return func(ctx context.Context) error {
		// drena os eventos antes de fechar os destinos
		errs := []error{dispatcher.Close(ctx)}
		if kafkaSink != nil {
			errs = append(errs, kafkaSink.Close())
		}
		if rdb != nil {
			errs = append(errs, rdb.Close())
		}
		return errors.Join(errs...)
	}
}

package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucPricing "github.com/BruksfildServices01/barber-booking/internal/usecase/pricing"
)

// Deps carries the long-lived singletons built by the entrypoint. Redis is
// optional: without it schedules are read straight from the database and
// bookings are serialised in-process.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Config *config.Config
	Conv   *timezone.Converter
	Audit  *audit.Dispatcher
	Log    *slog.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	gormRepo := infraRepo.NewAppointmentGormRepository(d.DB)

	var appointmentRepo domain.Repository = gormRepo
	var locker ucAppointment.Locker = lock.NewKeyedMutex()

	if d.Redis != nil {
		appointmentRepo = infraRepo.NewCachedScheduleRepository(
			gormRepo,
			d.Redis,
			d.Config.ScheduleCacheTTL,
			d.Log,
		)
		locker = lock.NewRedisLocker(d.Redis, d.Config.BookingLockTTL, d.Log)
	}

	// ======================================================
	// USE CASES
	// ======================================================
	resolvePriceUC := ucPricing.NewResolvePrice(gormRepo, d.Conv.Now)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		resolvePriceUC,
		locker,
		d.Conv,
		d.Audit,
		d.Log,
	)

	checkInUC := ucAppointment.NewCheckInAppointment(appointmentRepo, d.Conv, d.Audit, d.Log)
	startUC := ucAppointment.NewStartAppointment(appointmentRepo, d.Conv, d.Audit, d.Log)
	finishUC := ucAppointment.NewFinishAppointment(appointmentRepo, d.Conv, d.Audit, d.Log)
	cancelUC := ucAppointment.NewCancelAppointment(appointmentRepo, d.Conv, d.Audit, d.Log)

	listByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo, d.Conv)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo, d.Conv)

	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		d.Conv,
		d.Config.SlotGranularity,
		d.Log,
	)

	getScheduleUC := ucAppointment.NewGetSchedule(appointmentRepo)
	replaceScheduleUC := ucAppointment.NewReplaceSchedule(appointmentRepo, d.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	meHandler := handlers.NewMeHandler(d.DB)
	serviceHandler := handlers.NewServiceHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Conv)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		checkInUC,
		startUC,
		finishUC,
		cancelUC,
		listByDateUC,
		listByMonthUC,
	)

	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC)
	scheduleHandler := handlers.NewScheduleHandler(getScheduleUC, replaceScheduleUC)
	priceHandler := handlers.NewPriceHandler(resolvePriceUC)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/services", serviceHandler.List)
		api.GET("/services/:id", serviceHandler.Get)
		api.GET("/barbers/:id/available-slots", availabilityHandler.AvailableSlots)
		api.GET("/barbers/:id/schedule", scheduleHandler.Get)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/price", priceHandler.Quote)
			secured.POST("/appointments", appointmentHandler.Create)

			staff := secured.Group("/")
			staff.Use(middleware.RequireRoles(
				models.RoleAdmin,
				models.RoleBarber,
				models.RoleReceptionist,
			))
			{
				staff.POST("/appointments/:id/check-in", appointmentHandler.CheckIn)
				staff.POST("/appointments/:id/start", appointmentHandler.Start)
				staff.POST("/appointments/:id/finish", appointmentHandler.Finish)
				staff.POST("/appointments/:id/cancel", appointmentHandler.Cancel)

				staff.GET("/barbers/:id/appointments", appointmentHandler.ListByDate)
				staff.GET("/barbers/:id/appointments/month", appointmentHandler.ListByMonth)
			}

			secured.PUT("/barbers/:id/schedule",
				middleware.RequireRoles(models.RoleAdmin, models.RoleBarber),
				scheduleHandler.Update,
			)

			secured.GET("/audit-logs",
				middleware.RequireRoles(models.RoleAdmin),
				auditLogsHandler.List,
			)
		}
	}
}

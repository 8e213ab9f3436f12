package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/infra/session"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// Deps are the process-wide singletons owned by main.
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Config   *config.Config
	Logger   *zap.Logger
	Audit    *audit.Dispatcher
	Notifier notification.Notifier
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	catalogRepo := infraRepo.NewCatalogGormRepository(d.DB)
	sessionStore := session.NewRedisStore(d.Redis, d.Config.BookingSessionTTL, d.Config.IdempotencyTTL)

	// ======================================================
	// 🧠 USE CASES (APPOINTMENTS)
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(catalogRepo, appointmentRepo)

	confirmBookingUC := ucAppointment.NewConfirmBooking(
		availabilityUC,
		appointmentRepo,
		d.Notifier,
		d.Audit,
		d.Logger,
	)

	createAppointmentUC := ucAppointment.NewCreatePrivateAppointment(
		availabilityUC,
		appointmentRepo,
		appointmentRepo,
		d.Audit,
	)

	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(appointmentRepo, d.Audit)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo, appointmentRepo, d.Audit, d.Logger)
	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(availabilityUC, appointmentRepo, d.Audit)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config, d.Logger)
	meHandler := handlers.NewMeHandler(d.DB, d.Logger)
	barbershopHandler := handlers.NewBarbershopHandler(d.DB, d.Audit, d.Logger)

	barberProductHandler := handlers.NewBarberProductHandler(d.DB, d.Logger)
	comboHandler := handlers.NewComboHandler(d.DB, d.Logger)
	professionalHandler := handlers.NewProfessionalHandler(d.DB, d.Audit, d.Logger)
	clientHandler := handlers.NewClientHandler(d.DB, d.Logger)
	workingHoursHandler := handlers.NewWorkingHoursHandler(d.DB, d.Audit, d.Logger)
	notificationHandler := handlers.NewNotificationHandler(d.DB, d.Logger)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		listAppointmentsUC,
		confirmAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		rescheduleAppointmentUC,
		d.Logger,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Logger)

	publicHandler := handlers.NewPublicHandler(
		catalogRepo,
		availabilityUC,
		confirmBookingUC,
		sessionStore,
		sessionStore,
		d.Logger,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public/:slug")
		publicAPI.Use(middleware.RateLimit(d.Config.PublicRatePerMinute, d.Logger))
		{
			publicAPI.GET("/catalog", publicHandler.Catalog)
			publicAPI.GET("/availability", publicHandler.Availability)

			publicAPI.POST("/sessions", publicHandler.StartSession)
			publicAPI.GET("/sessions/:id", publicHandler.GetSession)
			publicAPI.PUT("/sessions/:id/items", publicHandler.SelectItems)
			publicAPI.PUT("/sessions/:id/professional", publicHandler.SelectProfessional)
			publicAPI.PUT("/sessions/:id/date", publicHandler.SelectDate)
			publicAPI.PUT("/sessions/:id/time", publicHandler.SelectTime)
			publicAPI.PUT("/sessions/:id/contact", publicHandler.SetContact)
			publicAPI.POST("/sessions/:id/next", publicHandler.NextStep)
			publicAPI.POST("/sessions/:id/prev", publicHandler.PrevStep)
			publicAPI.POST("/sessions/:id/confirm", publicHandler.Confirm)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/barbershop", barbershopHandler.GetMeBarbershop)
			secured.GET("/me/clients", clientHandler.List)
			secured.GET("/me/products", barberProductHandler.List)
			secured.GET("/me/combos", comboHandler.List)
			secured.GET("/me/professionals", professionalHandler.List)
			secured.GET("/me/working-hours", workingHoursHandler.Get)

			secured.GET("/me/notifications", notificationHandler.List)
			secured.PATCH("/me/notifications/:id/read", notificationHandler.MarkRead)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)

			// ------------------------------
			// SETTINGS (DONO)
			// ------------------------------
			owner := secured.Group("/")
			owner.Use(middleware.RequireOwner())
			{
				owner.PATCH("/me/barbershop", barbershopHandler.UpdateMeBarbershop)

				owner.POST("/me/products", barberProductHandler.Create)
				owner.PATCH("/me/products/:id", barberProductHandler.Update)

				owner.POST("/me/combos", comboHandler.Create)
				owner.PATCH("/me/combos/:id", comboHandler.Update)

				owner.POST("/me/professionals", professionalHandler.Create)
				owner.PATCH("/me/professionals/:id", professionalHandler.Update)
				owner.PUT("/me/professionals/:id/excluded-services", professionalHandler.SetExcludedServices)
				owner.PUT("/me/professionals/:id/unavailability", professionalHandler.SetUnavailability)

				owner.PUT("/me/working-hours", workingHoursHandler.Update)

				owner.GET("/me/audit-logs", auditLogsHandler.List)
			}
		}
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/maintenance-scheduler/internal/audit"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/config"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/handlers"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/maintenance-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/middleware"
	ucAssignment "github.com/BruksfildServices01/maintenance-scheduler/internal/usecase/assignment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)
	dashboardCache := cache.New(cfg.RedisURL)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — ASSIGNMENT
	// ======================================================
	submitRequestUC := ucAssignment.NewSubmitRequest(
		schedulingRepo,
		auditDispatcher,
	)

	assignWorkerUC := ucAssignment.NewAssignWorker(
		schedulingRepo,
		auditDispatcher,
	)

	completeBookingUC := ucAssignment.NewCompleteBooking(
		schedulingRepo,
		auditDispatcher,
	)

	declineRequestUC := ucAssignment.NewDeclineRequest(
		schedulingRepo,
		auditDispatcher,
	)

	recommendWorkersUC := ucAssignment.NewRecommendWorkers(
		schedulingRepo,
	)

	availabilityOverviewUC := ucAssignment.NewAvailabilityOverview(
		schedulingRepo,
		dashboardCache,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	companyHandler := handlers.NewCompanyHandler(db)
	propertyHandler := handlers.NewPropertyHandler(db)

	workerHandler := handlers.NewWorkerHandler(db)
	requestHandler := handlers.NewRequestHandler(
		db,
		declineRequestUC,
		recommendWorkersUC,
	)

	assignmentHandler := handlers.NewAssignmentHandler(
		assignWorkerUC,
		completeBookingUC,
	)

	dashboardHandler := handlers.NewDashboardHandler(db, availabilityOverviewUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, submitRequestUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA (portal do morador)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.POST("/:slug/requests", publicHandler.CreateRequest)
			publicAPI.GET("/:slug/slots", publicHandler.Slots)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/company", companyHandler.GetMeCompany)
			secured.PATCH("/me/company", companyHandler.UpdateMeCompany)

			secured.GET("/me/properties", propertyHandler.List)
			secured.POST("/me/properties", propertyHandler.Create)

			// ------------------------------
			// WORKERS
			// ------------------------------
			secured.GET("/me/workers", workerHandler.List)
			secured.POST("/me/workers", workerHandler.Create)
			secured.PATCH("/me/workers/:id", workerHandler.Update)
			secured.GET("/me/workers/:id/availability", workerHandler.Availability)
			secured.GET("/me/workers/:id/bookings", workerHandler.Bookings)

			// ------------------------------
			// REQUESTS / ASSIGNMENTS
			// ------------------------------
			secured.GET("/me/requests", requestHandler.List)
			secured.GET("/me/requests/:id", requestHandler.Get)
			secured.PATCH("/me/requests/:id/decline", requestHandler.Decline)
			secured.PATCH("/me/requests/:id/close", requestHandler.Close)
			secured.GET("/me/requests/:id/recommendations", requestHandler.Recommendations)
			secured.GET("/me/requests/:id/best-match", requestHandler.BestMatch)
			secured.POST("/me/requests/:id/assign", assignmentHandler.Assign)

			secured.PATCH("/me/bookings/:id/complete", assignmentHandler.Complete)

			// ------------------------------
			// DASHBOARD
			// ------------------------------
			secured.GET("/me/dashboard/workload", dashboardHandler.Workload)
			secured.GET("/me/dashboard/availability", dashboardHandler.Availability)
			secured.GET("/me/dashboard/groups", dashboardHandler.Groups)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}

package router

import (
	"database/sql"

	"gym_crm_backend/internal/handlers"
	"gym_crm_backend/internal/middleware"
	"gym_crm_backend/internal/repositories"
	"gym_crm_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, photoBaseDir string) {
	// Initialize Repositories
	memberRepo := repositories.NewMemberRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	trainingRepo := repositories.NewTrainingRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	adminRepo := repositories.NewAdminRepository(db)

	// Initialize Services
	memberService := services.NewMemberService(memberRepo, paymentRepo, trainingRepo, db)
	paymentService := services.NewPaymentService(paymentRepo, memberRepo, db)
	trainingService := services.NewTrainingService(trainingRepo, memberRepo, paymentRepo, db)
	attendanceService := services.NewAttendanceService(attendanceRepo, memberRepo, trainingRepo, db)
	authService := services.NewAuthService(adminRepo, db)
	dashboardService := services.NewDashboardService(memberRepo, paymentRepo, trainingRepo, attendanceRepo)

	// Initialize Handlers
	memberHandler := handlers.NewMemberHandler(memberService, photoBaseDir)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	trainingHandler := handlers.NewTrainingHandler(trainingService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	authHandler := handlers.NewAuthHandler(authService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	apiV1 := engine.Group("/api/v1")

	// Public authentication routes
	authPublic := apiV1.Group("/auth")
	authPublic.POST("/login", authHandler.Login)

	// Everything else requires a valid session
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		authenticated.POST("/auth/change-password", authHandler.ChangePassword)

		SetupMemberRoutes(authenticated, memberHandler)
		SetupPaymentRoutes(authenticated, paymentHandler)
		SetupTrainingRoutes(authenticated, trainingHandler)
		SetupAttendanceRoutes(authenticated, attendanceHandler)
		SetupDashboardRoutes(authenticated, dashboardHandler)
	}
}

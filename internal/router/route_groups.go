package router

import (
	"gym_crm_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupMemberRoutes registers member registration and lookup endpoints.
func SetupMemberRoutes(rg *gin.RouterGroup, h *handlers.MemberHandler) {
	members := rg.Group("/members")
	{
		members.POST("", h.RegisterMember)
		members.GET("", h.GetMembers)
		members.GET("/:id", h.GetMemberByID)
		members.PUT("/:id", h.UpdateMember)
		members.DELETE("/:id", h.DeleteMember)
		members.POST("/:id/photo", h.UploadMemberPhoto)
		members.GET("/:id/badge-photo", h.GetMemberBadgePhoto)
	}
	// Fee lookup is by phone, the way the desk searches
	rg.GET("/fees/:phone", h.GetMemberFeeDetails)
}

// SetupPaymentRoutes registers payment ledger endpoints.
func SetupPaymentRoutes(rg *gin.RouterGroup, h *handlers.PaymentHandler) {
	payments := rg.Group("/payments")
	{
		payments.POST("", h.RecordPayment)
		payments.GET("", h.GetPayments)
		payments.GET("/:id", h.GetPaymentByID)
	}
	// Separate path to avoid colliding with /payments/:id in the route tree
	rg.GET("/pending-payments", h.GetPendingPayments)
	rg.GET("/members/:id/payments", h.GetMemberPayments)
}

// SetupTrainingRoutes registers personal-training endpoints.
func SetupTrainingRoutes(rg *gin.RouterGroup, h *handlers.TrainingHandler) {
	training := rg.Group("/training")
	{
		training.POST("", h.AssignTraining)
		training.GET("", h.GetAllTraining)
		training.PUT("/:id", h.UpdateTraining)
		training.DELETE("/:id", h.DeleteTraining)
	}
	rg.GET("/trainers", h.GetTrainers)
	rg.GET("/members/:id/training", h.GetMemberTraining)
}

// SetupAttendanceRoutes registers check-in endpoints.
func SetupAttendanceRoutes(rg *gin.RouterGroup, h *handlers.AttendanceHandler) {
	attendance := rg.Group("/attendance")
	{
		attendance.POST("/check-in", h.CheckIn)
		attendance.GET("/today", h.GetTodayAttendance)
		attendance.GET("/trainer/:name", h.GetAttendanceByTrainer)
	}
	rg.GET("/members/:id/attendance", h.GetMemberAttendance)
}

// SetupDashboardRoutes registers the dashboard summary endpoint.
func SetupDashboardRoutes(rg *gin.RouterGroup, h *handlers.DashboardHandler) {
	rg.GET("/dashboard", h.GetSummary)
}

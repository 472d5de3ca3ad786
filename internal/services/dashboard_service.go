package services

import (
	"fmt"
	"time"

	"gym_crm_backend/internal/lifecycle"
	"gym_crm_backend/internal/models"
	"gym_crm_backend/internal/repositories"
)

// --- DashboardService Interface ---
type DashboardService interface {
	GetSummary() (*models.DashboardSummary, error)
}

// --- dashboardService Implementation ---
type dashboardService struct {
	memberRepo     repositories.MemberRepository
	paymentRepo    repositories.PaymentRepository
	trainingRepo   repositories.TrainingRepository
	attendanceRepo repositories.AttendanceRepository
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(mr repositories.MemberRepository, pr repositories.PaymentRepository, tr repositories.TrainingRepository, ar repositories.AttendanceRepository) DashboardService {
	return &dashboardService{
		memberRepo:     mr,
		paymentRepo:    pr,
		trainingRepo:   tr,
		attendanceRepo: ar,
	}
}

// GetSummary composes the front-desk dashboard numbers: member counts,
// today's footfall, today's and this month's collections, and this
// month's plan revenue (membership plus training fees).
func (s *dashboardService) GetSummary() (*models.DashboardSummary, error) {
	today := lifecycle.Today()
	todayStr := lifecycle.FormatDate(today)
	firstOfMonth := lifecycle.FormatDate(time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC))

	total, active, expired, err := s.memberRepo.CountMembers()
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	footfall, err := s.attendanceRepo.CountAttendanceOn(todayStr)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's attendance: %w", err)
	}

	todayCollections, err := s.paymentRepo.CollectionsOn(todayStr)
	if err != nil {
		return nil, fmt.Errorf("failed to sum today's collections: %w", err)
	}

	monthCollections, err := s.paymentRepo.CollectionsSince(firstOfMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to sum monthly collections: %w", err)
	}

	membershipRevenue, err := s.memberRepo.MembershipRevenueSince(firstOfMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to sum membership revenue: %w", err)
	}
	trainingRevenue, err := s.trainingRepo.TrainingRevenueSince(firstOfMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to sum training revenue: %w", err)
	}

	return &models.DashboardSummary{
		TotalMembers:       total,
		ActiveMembers:      active,
		ExpiredMembers:     expired,
		TodayAttendance:    footfall,
		TodayCollections:   todayCollections,
		MonthlyCollections: monthCollections,
		MonthlyRevenue:     membershipRevenue + trainingRevenue,
	}, nil
}

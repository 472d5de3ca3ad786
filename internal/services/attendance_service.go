package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gym_crm_backend/internal/lifecycle"
	"gym_crm_backend/internal/models"
	"gym_crm_backend/internal/repositories"
	"gym_crm_backend/pkg/utils"
)

// --- Custom Service Errors for Attendance ---
var (
	ErrMembershipExpired = errors.New("membership has expired")
	ErrAlreadyCheckedIn  = errors.New("member has already checked in today")
)

// CheckInResult is what the desk sees after a check-in attempt: the
// event, the member, and a warning when fees are still owed.
type CheckInResult struct {
	Event      *models.AttendanceEvent `json:"event"`
	Member     *models.Member          `json:"member"`
	PendingFee float64                 `json:"pending_fee"`
	Warning    string                  `json:"warning,omitempty"`
}

// --- AttendanceService Interface ---
type AttendanceService interface {
	CheckIn(phone string) (*CheckInResult, error)
	GetTodayAttendance() ([]models.AttendanceEvent, error)
	GetMemberAttendance(memberID int64) ([]models.AttendanceEvent, error)
	GetAttendanceByTrainer(trainerName string) ([]models.AttendanceEvent, error)
}

// --- attendanceService Implementation ---
type attendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	memberRepo     repositories.MemberRepository
	trainingRepo   repositories.TrainingRepository
	db             *sql.DB
}

// NewAttendanceService creates a new instance of AttendanceService.
func NewAttendanceService(ar repositories.AttendanceRepository, mr repositories.MemberRepository, tr repositories.TrainingRepository, db *sql.DB) AttendanceService {
	return &attendanceService{
		attendanceRepo: ar,
		memberRepo:     mr,
		trainingRepo:   tr,
		db:             db,
	}
}

// CheckIn records a gym visit for the member with the given phone.
//
// An expired membership blocks the check-in, as does a second check-in
// on the same day. A pending fee only produces a warning; the visit is
// still recorded. If the member has an active training assignment the
// trainer's name goes on the event, otherwise it stays empty.
func (s *attendanceService) CheckIn(phone string) (*CheckInResult, error) {
	member, err := s.memberRepo.GetMemberByPhone(utils.NormalizePhone(phone))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member for check-in: %w", err)
	}

	today := lifecycle.Today()
	todayStr := lifecycle.FormatDate(today)

	endDate, err := lifecycle.ParseDate(member.EndDate)
	if err != nil {
		return nil, fmt.Errorf("member %d has malformed end date %q: %w", member.ID, member.EndDate, err)
	}
	if !lifecycle.IsActive(endDate, today) {
		return nil, fmt.Errorf("%w: ended on %s", ErrMembershipExpired, member.EndDate)
	}

	alreadyIn, err := s.attendanceRepo.HasCheckedIn(member.ID, todayStr)
	if err != nil {
		return nil, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	if alreadyIn {
		return nil, ErrAlreadyCheckedIn
	}

	var trainerName *string
	training, err := s.trainingRepo.GetActiveTraining(member.ID, todayStr)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up active training: %w", err)
	}
	if training != nil {
		trainerName = &training.TrainerName
	}

	event := &models.AttendanceEvent{
		MemberID:    member.ID,
		CheckInTime: time.Now().Format("15:04:05"),
		Date:        todayStr,
		TrainerName: trainerName,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin check-in transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = s.attendanceRepo.CreateAttendance(tx, event); err != nil {
		return nil, fmt.Errorf("failed to record check-in: %w", err)
	}
	if err = s.memberRepo.RefreshStatuses(tx, todayStr); err != nil {
		return nil, fmt.Errorf("failed to refresh member statuses: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit check-in: %w", err)
	}

	result := &CheckInResult{
		Event:      event,
		Member:     member,
		PendingFee: lifecycle.PendingFee(member.MembershipType, member.AmountPaid),
	}
	if result.PendingFee > 0 {
		result.Warning = fmt.Sprintf("Fee pending: %s", utils.FormatCurrency(result.PendingFee))
	}
	return result, nil
}

func (s *attendanceService) GetTodayAttendance() ([]models.AttendanceEvent, error) {
	events, err := s.attendanceRepo.GetTodayAttendance(lifecycle.FormatDate(lifecycle.Today()))
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	return events, nil
}

func (s *attendanceService) GetMemberAttendance(memberID int64) ([]models.AttendanceEvent, error) {
	if _, err := s.memberRepo.GetMemberByID(memberID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member for attendance history: %w", err)
	}
	events, err := s.attendanceRepo.GetMemberAttendance(memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance for member: %w", err)
	}
	return events, nil
}

func (s *attendanceService) GetAttendanceByTrainer(trainerName string) ([]models.AttendanceEvent, error) {
	if !models.IsKnownTrainer(trainerName) {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownTrainer, trainerName)
	}
	events, err := s.attendanceRepo.GetAttendanceByTrainer(trainerName)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance for trainer: %w", err)
	}
	return events, nil
}

package services

import (
	"database/sql"
	"errors"
	"fmt"

	"gym_crm_backend/internal/lifecycle"
	"gym_crm_backend/internal/models"
	"gym_crm_backend/internal/repositories"
	"gym_crm_backend/pkg/utils"
)

// --- Custom Service Errors for Training ---
var (
	ErrTrainingNotFound   = errors.New("personal training assignment not found")
	ErrTrainingValidation = errors.New("training data validation error")
	ErrUnknownTrainer     = errors.New("trainer is not on the roster")
)

// --- Training DTOs ---
type AssignTrainingRequest struct {
	Phone        string  `json:"phone" binding:"required"`
	TrainerName  string  `json:"trainer_name" binding:"required"`
	PlanDuration int     `json:"plan_duration" binding:"required"` // months
	Fee          float64 `json:"fee" binding:"required"`
	StartDate    string  `json:"start_date"` // Defaults to today
}

type UpdateTrainingRequest struct {
	TrainerName  *string  `json:"trainer_name"`
	PlanDuration *int     `json:"plan_duration"`
	Fee          *float64 `json:"fee"`
	StartDate    *string  `json:"start_date"`
	Status       *string  `json:"status"`
}

// --- TrainingService Interface ---
type TrainingService interface {
	AssignTraining(req AssignTrainingRequest) (*models.PersonalTraining, error)
	GetTrainingByID(trainingID int64) (*models.PersonalTraining, error)
	GetTrainingByMember(memberID int64) ([]models.PersonalTraining, error)
	GetActiveTraining(memberID int64) (*models.PersonalTraining, error)
	GetAllTraining() ([]models.PersonalTraining, error)
	GetTrainers() []string
	UpdateTraining(trainingID int64, req UpdateTrainingRequest) (*models.PersonalTraining, error)
	DeleteTraining(trainingID int64) error
}

// --- trainingService Implementation ---
type trainingService struct {
	trainingRepo repositories.TrainingRepository
	memberRepo   repositories.MemberRepository
	paymentRepo  repositories.PaymentRepository
	db           *sql.DB
}

// NewTrainingService creates a new instance of TrainingService.
func NewTrainingService(tr repositories.TrainingRepository, mr repositories.MemberRepository, pr repositories.PaymentRepository, db *sql.DB) TrainingService {
	return &trainingService{
		trainingRepo: tr,
		memberRepo:   mr,
		paymentRepo:  pr,
		db:           db,
	}
}

// AssignTraining creates a personal-training assignment for a member and
// writes the training fee to the payment ledger in the same transaction.
func (s *trainingService) AssignTraining(req AssignTrainingRequest) (*models.PersonalTraining, error) {
	if !models.IsKnownTrainer(req.TrainerName) {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownTrainer, req.TrainerName)
	}
	if req.PlanDuration < 1 || req.PlanDuration > 12 {
		return nil, fmt.Errorf("%w: plan duration must be between 1 and 12 months", ErrTrainingValidation)
	}
	if req.Fee <= 0 {
		return nil, fmt.Errorf("%w: fee must be positive", ErrTrainingValidation)
	}

	today := lifecycle.Today()
	startDate := today
	if req.StartDate != "" {
		parsed, err := lifecycle.ParseDate(req.StartDate)
		if err != nil {
			return nil, ErrDateFormat
		}
		startDate = parsed
	}

	member, err := s.memberRepo.GetMemberByPhone(utils.NormalizePhone(req.Phone))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member for training assignment: %w", err)
	}

	training := &models.PersonalTraining{
		MemberID:     member.ID,
		TrainerName:  req.TrainerName,
		PlanDuration: req.PlanDuration,
		Fee:          req.Fee,
		StartDate:    lifecycle.FormatDate(startDate),
		EndDate:      lifecycle.FormatDate(lifecycle.TrainingEndDate(startDate, req.PlanDuration)),
		Status:       models.TrainingStatusActive,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin training transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = s.trainingRepo.CreateTraining(tx, training); err != nil {
		return nil, fmt.Errorf("failed to create training assignment: %w", err)
	}

	note := fmt.Sprintf("Personal training with %s (%d months)", req.TrainerName, req.PlanDuration)
	payment := &models.Payment{
		MemberID:    member.ID,
		Phone:       member.Phone,
		Amount:      req.Fee,
		PaymentDate: lifecycle.FormatDate(today),
		PaymentType: models.PaymentTypePT,
		Notes:       &note,
		ReceiptRef:  utils.NewReceiptRef(),
	}
	if _, err = s.paymentRepo.CreatePayment(tx, payment); err != nil {
		return nil, fmt.Errorf("failed to record training payment: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit training assignment: %w", err)
	}
	return training, nil
}

func (s *trainingService) GetTrainingByID(trainingID int64) (*models.PersonalTraining, error) {
	training, err := s.trainingRepo.GetTrainingByID(trainingID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, fmt.Errorf("failed to get training by ID: %w", err)
	}
	return training, nil
}

func (s *trainingService) GetTrainingByMember(memberID int64) ([]models.PersonalTraining, error) {
	if _, err := s.memberRepo.GetMemberByID(memberID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member for training history: %w", err)
	}
	training, err := s.trainingRepo.GetTrainingByMember(memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get training for member: %w", err)
	}
	return training, nil
}

// GetActiveTraining returns the member's current assignment, or
// ErrTrainingNotFound when none is in progress.
func (s *trainingService) GetActiveTraining(memberID int64) (*models.PersonalTraining, error) {
	training, err := s.trainingRepo.GetActiveTraining(memberID, lifecycle.FormatDate(lifecycle.Today()))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, fmt.Errorf("failed to get active training: %w", err)
	}
	return training, nil
}

func (s *trainingService) GetAllTraining() ([]models.PersonalTraining, error) {
	training, err := s.trainingRepo.GetAllTraining()
	if err != nil {
		return nil, fmt.Errorf("failed to get training roster: %w", err)
	}
	return training, nil
}

// GetTrainers returns the trainer roster.
func (s *trainingService) GetTrainers() []string {
	return models.Trainers
}

// UpdateTraining edits an assignment. Changing the start date or plan
// duration recomputes the end date.
func (s *trainingService) UpdateTraining(trainingID int64, req UpdateTrainingRequest) (*models.PersonalTraining, error) {
	training, err := s.trainingRepo.GetTrainingByID(trainingID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, fmt.Errorf("failed to find training for update: %w", err)
	}

	if req.TrainerName != nil {
		if !models.IsKnownTrainer(*req.TrainerName) {
			return nil, fmt.Errorf("%w: '%s'", ErrUnknownTrainer, *req.TrainerName)
		}
		training.TrainerName = *req.TrainerName
	}
	if req.PlanDuration != nil {
		if *req.PlanDuration < 1 || *req.PlanDuration > 12 {
			return nil, fmt.Errorf("%w: plan duration must be between 1 and 12 months", ErrTrainingValidation)
		}
		training.PlanDuration = *req.PlanDuration
	}
	if req.Fee != nil {
		if *req.Fee <= 0 {
			return nil, fmt.Errorf("%w: fee must be positive", ErrTrainingValidation)
		}
		training.Fee = *req.Fee
	}
	if req.StartDate != nil {
		if _, err := lifecycle.ParseDate(*req.StartDate); err != nil {
			return nil, ErrDateFormat
		}
		training.StartDate = *req.StartDate
	}
	if req.Status != nil {
		if !models.IsValidTrainingStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown status '%s'", ErrTrainingValidation, *req.Status)
		}
		training.Status = *req.Status
	}

	startDate, _ := lifecycle.ParseDate(training.StartDate)
	training.EndDate = lifecycle.FormatDate(lifecycle.TrainingEndDate(startDate, training.PlanDuration))

	if err = s.trainingRepo.UpdateTraining(s.db, training); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, fmt.Errorf("failed to update training: %w", err)
	}
	return training, nil
}

func (s *trainingService) DeleteTraining(trainingID int64) error {
	if err := s.trainingRepo.DeleteTraining(s.db, trainingID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTrainingNotFound
		}
		return fmt.Errorf("failed to delete training: %w", err)
	}
	return nil
}

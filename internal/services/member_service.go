package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gym_crm_backend/internal/lifecycle"
	"gym_crm_backend/internal/models"
	"gym_crm_backend/internal/repositories"
	"gym_crm_backend/pkg/utils"
)

// --- Custom Service Errors for Member ---
var (
	ErrMemberNotFound    = errors.New("member not found")
	ErrPhoneNumberExists = errors.New("phone number already exists")
	ErrMemberValidation  = errors.New("member data validation error")
	ErrDateFormat        = errors.New("invalid date format, please use YYYY-MM-DD")
)

// --- Member DTOs ---
type CreateMemberRequest struct {
	Name           string   `json:"name" binding:"required"`
	Phone          string   `json:"phone" binding:"required"`
	Address        *string  `json:"address"`
	Age            int      `json:"age" binding:"required"`
	Gender         string   `json:"gender"`
	MembershipType string   `json:"membership_type" binding:"required"`
	StartDate      string   `json:"start_date" binding:"required"` // Format YYYY-MM-DD
	Fees           *float64 `json:"fees"`                          // Defaults to the plan fee
	PaymentStatus  string   `json:"payment_status"`                // Paid or Pending, default Pending
}

type UpdateMemberRequest struct {
	Name           *string  `json:"name"`
	Phone          *string  `json:"phone"`
	Address        *string  `json:"address"`
	Age            *int     `json:"age"`
	Gender         *string  `json:"gender"`
	MembershipType *string  `json:"membership_type"`
	StartDate      *string  `json:"start_date"`
	Fees           *float64 `json:"fees"`
	PaymentStatus  *string  `json:"payment_status"`
}

// --- MemberService Interface ---
type MemberService interface {
	RegisterMember(req CreateMemberRequest) (*models.Member, error)
	GetMemberByID(memberID int64) (*models.Member, error)
	GetMemberByPhone(phone string) (*models.Member, error)
	GetMembers(searchTerm *string) ([]models.Member, error)
	GetMemberFeeDetails(phone string) (*models.MemberFeeDetails, error)
	UpdateMember(memberID int64, req UpdateMemberRequest) (*models.Member, error)
	UpdateMemberPhoto(memberID int64, photoPath string) error
	DeleteMember(memberID int64) error
}

// --- memberService Implementation ---
type memberService struct {
	memberRepo   repositories.MemberRepository
	paymentRepo  repositories.PaymentRepository
	trainingRepo repositories.TrainingRepository
	db           *sql.DB
}

// NewMemberService creates a new instance of MemberService.
func NewMemberService(mr repositories.MemberRepository, pr repositories.PaymentRepository, tr repositories.TrainingRepository, db *sql.DB) MemberService {
	return &memberService{
		memberRepo:   mr,
		paymentRepo:  pr,
		trainingRepo: tr,
		db:           db,
	}
}

// validateRegistration checks the form fields the way the front desk
// expects: everything is rejected before any write is attempted.
func (s *memberService) validateRegistration(name, phone string, age int, gender, membershipType, startDate string, excludeID int64) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: name cannot be empty", ErrMemberValidation)
	}

	normalizedPhone := utils.NormalizePhone(phone)
	if !utils.IsValidPhone(normalizedPhone) {
		return "", fmt.Errorf("%w: phone must be at least 10 digits", ErrMemberValidation)
	}

	// Uniqueness is checked explicitly so a friendly duplicate error is
	// raised before any write, not just surfaced from the storage layer.
	existing, err := s.memberRepo.GetMemberByPhone(normalizedPhone)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return "", fmt.Errorf("failed to check phone uniqueness: %w", err)
	}
	if existing != nil && existing.ID != excludeID {
		return "", ErrPhoneNumberExists
	}

	if age < 10 || age > 100 {
		return "", fmt.Errorf("%w: age must be between 10 and 100", ErrMemberValidation)
	}
	if gender != "" && !models.IsValidGender(gender) {
		return "", fmt.Errorf("%w: unknown gender '%s'", ErrMemberValidation, gender)
	}
	if !models.IsValidMembershipType(membershipType) {
		return "", fmt.Errorf("%w: unknown membership type '%s'", ErrMemberValidation, membershipType)
	}
	if _, err := lifecycle.ParseDate(startDate); err != nil {
		return "", ErrDateFormat
	}
	return normalizedPhone, nil
}

// RegisterMember creates a member, derives their financial state and,
// when the registration is already paid, writes the initial ledger row.
// The whole flow runs in one transaction.
func (s *memberService) RegisterMember(req CreateMemberRequest) (*models.Member, error) {
	normalizedPhone, err := s.validateRegistration(req.Name, req.Phone, req.Age, req.Gender, req.MembershipType, req.StartDate, 0)
	if err != nil {
		return nil, err
	}

	startDate, _ := lifecycle.ParseDate(req.StartDate)
	today := lifecycle.Today()

	fees := lifecycle.PlanFee(req.MembershipType)
	if req.Fees != nil {
		if *req.Fees < 0 {
			return nil, fmt.Errorf("%w: fees cannot be negative", ErrMemberValidation)
		}
		fees = *req.Fees
	}

	paymentStatus := models.PaymentStatusPending
	if req.PaymentStatus == models.PaymentStatusPaid {
		paymentStatus = models.PaymentStatusPaid
	}

	endDate := lifecycle.ComputeEndDate(startDate, req.MembershipType)

	var amountPaid, pendingAmount float64
	var lastPaymentDate *string
	if paymentStatus == models.PaymentStatusPaid {
		amountPaid = fees
		pendingAmount = lifecycle.PendingFee(req.MembershipType, amountPaid)
		todayStr := lifecycle.FormatDate(today)
		lastPaymentDate = &todayStr
	} else {
		amountPaid = 0
		pendingAmount = lifecycle.PendingFee(req.MembershipType, 0)
	}

	member := &models.Member{
		Name:            strings.TrimSpace(req.Name),
		Phone:           normalizedPhone,
		Address:         req.Address,
		Age:             &req.Age,
		MembershipType:  req.MembershipType,
		StartDate:       lifecycle.FormatDate(startDate),
		EndDate:         lifecycle.FormatDate(endDate),
		Fees:            fees,
		PaymentStatus:   paymentStatus,
		LastPaymentDate: lastPaymentDate,
		AmountPaid:      amountPaid,
		PendingAmount:   pendingAmount,
		Status:          lifecycle.Status(endDate, today),
	}
	if req.Gender != "" {
		member.Gender = &req.Gender
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin registration transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := s.memberRepo.CreateMember(tx, member)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrPhoneNumberExists
		}
		return nil, fmt.Errorf("failed to create member in repository: %w", err)
	}

	if paymentStatus == models.PaymentStatusPaid {
		note := "Initial registration"
		payment := &models.Payment{
			MemberID:    id,
			Phone:       normalizedPhone,
			Amount:      fees,
			PaymentDate: lifecycle.FormatDate(today),
			PaymentType: models.PaymentTypeMembership,
			Notes:       &note,
			ReceiptRef:  utils.NewReceiptRef(),
		}
		if _, err = s.paymentRepo.CreatePayment(tx, payment); err != nil {
			return nil, fmt.Errorf("failed to record registration payment: %w", err)
		}
	}

	if err = s.memberRepo.RefreshStatuses(tx, lifecycle.FormatDate(today)); err != nil {
		return nil, fmt.Errorf("failed to refresh member statuses: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit registration: %w", err)
	}
	return s.memberRepo.GetMemberByID(id)
}

func (s *memberService) GetMemberByID(memberID int64) (*models.Member, error) {
	member, err := s.memberRepo.GetMemberByID(memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member by ID: %w", err)
	}
	return member, nil
}

func (s *memberService) GetMemberByPhone(phone string) (*models.Member, error) {
	member, err := s.memberRepo.GetMemberByPhone(utils.NormalizePhone(phone))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member by phone: %w", err)
	}
	return member, nil
}

func (s *memberService) GetMembers(searchTerm *string) ([]models.Member, error) {
	members, err := s.memberRepo.GetMembers(searchTerm)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	return members, nil
}

// GetMemberFeeDetails returns the full fee picture for one member. The
// stored derived fields are recomputed here rather than trusted.
func (s *memberService) GetMemberFeeDetails(phone string) (*models.MemberFeeDetails, error) {
	member, err := s.GetMemberByPhone(phone)
	if err != nil {
		return nil, err
	}

	today := lifecycle.Today()
	endDate, err := lifecycle.ParseDate(member.EndDate)
	if err != nil {
		return nil, fmt.Errorf("member %d has malformed end date %q: %w", member.ID, member.EndDate, err)
	}
	member.PendingAmount = lifecycle.PendingFee(member.MembershipType, member.AmountPaid)
	member.Status = lifecycle.Status(endDate, today)
	if member.PendingAmount == 0 {
		member.PaymentStatus = models.PaymentStatusPaid
	} else {
		member.PaymentStatus = models.PaymentStatusPending
	}

	details := &models.MemberFeeDetails{
		Member:        *member,
		RemainingDays: lifecycle.RemainingDays(endDate, today),
	}

	training, err := s.trainingRepo.GetActiveTraining(member.ID, lifecycle.FormatDate(today))
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to get active training: %w", err)
	}
	if training != nil {
		details.CurrentTrainer = &training.TrainerName
		details.PTFee = &training.Fee
		details.PTEndDate = &training.EndDate
	}
	return details, nil
}

// UpdateMember edits the registration fields. Changing the plan or the
// start date recomputes the end date, as the desk form does.
func (s *memberService) UpdateMember(memberID int64, req UpdateMemberRequest) (*models.Member, error) {
	member, err := s.memberRepo.GetMemberByID(memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member for update: %w", err)
	}

	if req.Name != nil {
		member.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		member.Phone = *req.Phone
	}
	if req.Address != nil {
		member.Address = req.Address
	}
	age := 0
	if member.Age != nil {
		age = *member.Age
	}
	if req.Age != nil {
		age = *req.Age
	}
	if req.Gender != nil {
		member.Gender = req.Gender
	}
	if req.MembershipType != nil {
		member.MembershipType = *req.MembershipType
	}
	if req.StartDate != nil {
		member.StartDate = *req.StartDate
	}
	if req.Fees != nil {
		if *req.Fees < 0 {
			return nil, fmt.Errorf("%w: fees cannot be negative", ErrMemberValidation)
		}
		member.Fees = *req.Fees
	}
	if req.PaymentStatus != nil {
		if *req.PaymentStatus != models.PaymentStatusPaid && *req.PaymentStatus != models.PaymentStatusPending {
			return nil, fmt.Errorf("%w: payment status must be Paid or Pending", ErrMemberValidation)
		}
		member.PaymentStatus = *req.PaymentStatus
	}

	gender := ""
	if member.Gender != nil {
		gender = *member.Gender
	}
	normalizedPhone, err := s.validateRegistration(member.Name, member.Phone, age, gender, member.MembershipType, member.StartDate, memberID)
	if err != nil {
		return nil, err
	}
	member.Phone = normalizedPhone
	member.Age = &age

	startDate, _ := lifecycle.ParseDate(member.StartDate)
	member.EndDate = lifecycle.FormatDate(lifecycle.ComputeEndDate(startDate, member.MembershipType))

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin member update transaction: %w", err)
	}
	defer tx.Rollback()

	if err = s.memberRepo.UpdateMember(tx, member); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrPhoneNumberExists
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to update member in repository: %w", err)
	}
	if err = s.memberRepo.RefreshStatuses(tx, lifecycle.FormatDate(lifecycle.Today())); err != nil {
		return nil, fmt.Errorf("failed to refresh member statuses: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit member update: %w", err)
	}
	return s.memberRepo.GetMemberByID(memberID)
}

// UpdateMemberPhoto stores the relative photo path.
func (s *memberService) UpdateMemberPhoto(memberID int64, photoPath string) error {
	if err := s.memberRepo.UpdateMemberPhoto(s.db, memberID, photoPath); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to update member photo: %w", err)
	}
	return nil
}

// DeleteMember removes a member; payments, training and attendance rows
// for the member cascade with it.
func (s *memberService) DeleteMember(memberID int64) error {
	_, err := s.memberRepo.GetMemberByID(memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find member for deletion: %w", err)
	}

	if err = s.memberRepo.DeleteMember(s.db, memberID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}

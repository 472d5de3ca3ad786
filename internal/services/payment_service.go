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

// --- Custom Service Errors for Payment ---
var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrPaymentValidation = errors.New("payment data validation error")
)

// --- Payment DTOs ---
type RecordPaymentRequest struct {
	Phone       string  `json:"phone" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	PaymentDate string  `json:"payment_date"` // Defaults to today
	PaymentType string  `json:"payment_type"` // Membership, Personal Training, Renewal
	Notes       *string `json:"notes"`
	Extend      bool    `json:"extend"` // Extend/renew the membership cycle
}

type PaymentResult struct {
	Payment *models.Payment `json:"payment"`
	Member  *models.Member  `json:"member"`
}

// --- PaymentService Interface ---
type PaymentService interface {
	ProcessPayment(req RecordPaymentRequest) (*PaymentResult, error)
	GetPaymentByID(paymentID int64) (*models.Payment, error)
	GetPaymentsByMember(memberID int64) ([]models.Payment, error)
	GetAllPayments() ([]models.Payment, error)
	GetPendingPaymentMembers() ([]models.Member, error)
}

// --- paymentService Implementation ---
type paymentService struct {
	paymentRepo repositories.PaymentRepository
	memberRepo  repositories.MemberRepository
	db          *sql.DB
}

// NewPaymentService creates a new instance of PaymentService.
func NewPaymentService(pr repositories.PaymentRepository, mr repositories.MemberRepository, db *sql.DB) PaymentService {
	return &paymentService{
		paymentRepo: pr,
		memberRepo:  mr,
		db:          db,
	}
}

// ProcessPayment appends the ledger row, re-derives the member's balance
// fields and runs the status sweep, all in one transaction so the ledger
// and the member row can never disagree.
//
// Balance rules:
//   - a payment always adds to amount_paid while the current cycle is active
//   - an extending payment moves end_date forward from max(end_date, today)
//   - an extending payment on an expired cycle starts a fresh cycle, so
//     amount_paid resets to just this payment
func (s *paymentService) ProcessPayment(req RecordPaymentRequest) (*PaymentResult, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrPaymentValidation)
	}
	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = models.PaymentTypeMembership
	}
	if !models.IsValidPaymentType(paymentType) {
		return nil, fmt.Errorf("%w: unknown payment type '%s'", ErrPaymentValidation, paymentType)
	}

	today := lifecycle.Today()
	paymentDate := lifecycle.FormatDate(today)
	if req.PaymentDate != "" {
		if _, err := lifecycle.ParseDate(req.PaymentDate); err != nil {
			return nil, ErrDateFormat
		}
		paymentDate = req.PaymentDate
	}

	member, err := s.memberRepo.GetMemberByPhone(utils.NormalizePhone(req.Phone))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member for payment: %w", err)
	}

	endDate, err := lifecycle.ParseDate(member.EndDate)
	if err != nil {
		return nil, fmt.Errorf("member %d has malformed end date %q: %w", member.ID, member.EndDate, err)
	}
	wasActive := lifecycle.IsActive(endDate, today)

	newPaid := member.AmountPaid + req.Amount
	newEndDate := member.EndDate
	if req.Extend && (paymentType == models.PaymentTypeMembership || paymentType == models.PaymentTypeRenewal) {
		newEndDate = lifecycle.FormatDate(lifecycle.RenewEndDate(endDate, today, member.MembershipType))
		if !wasActive {
			// Fresh cycle: the old cycle's balance does not carry over.
			newPaid = req.Amount
		}
	}

	newPending := lifecycle.PendingFee(member.MembershipType, newPaid)
	paymentStatus := models.PaymentStatusPending
	if newPending == 0 {
		paymentStatus = models.PaymentStatusPaid
	}
	newStatus := lifecycle.Status(mustParseDate(newEndDate), today)

	payment := &models.Payment{
		MemberID:    member.ID,
		Phone:       member.Phone,
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		PaymentType: paymentType,
		Notes:       req.Notes,
		ReceiptRef:  utils.NewReceiptRef(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin payment transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = s.paymentRepo.CreatePayment(tx, payment); err != nil {
		return nil, fmt.Errorf("failed to append payment to ledger: %w", err)
	}

	err = s.memberRepo.UpdateMemberPayment(tx, member.ID, newPaid, newPending, paymentStatus, paymentDate, newEndDate, newStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to update member balance: %w", err)
	}

	if err = s.memberRepo.RefreshStatuses(tx, lifecycle.FormatDate(today)); err != nil {
		return nil, fmt.Errorf("failed to refresh member statuses: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	updated, err := s.memberRepo.GetMemberByID(member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload member after payment: %w", err)
	}
	return &PaymentResult{Payment: payment, Member: updated}, nil
}

func (s *paymentService) GetPaymentByID(paymentID int64) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetPaymentByID(paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment by ID: %w", err)
	}
	return payment, nil
}

func (s *paymentService) GetPaymentsByMember(memberID int64) ([]models.Payment, error) {
	if _, err := s.memberRepo.GetMemberByID(memberID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member for payment history: %w", err)
	}
	payments, err := s.paymentRepo.GetPaymentsByMember(memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments for member: %w", err)
	}
	return payments, nil
}

func (s *paymentService) GetAllPayments() ([]models.Payment, error) {
	payments, err := s.paymentRepo.GetAllPayments()
	if err != nil {
		return nil, fmt.Errorf("failed to get payment ledger: %w", err)
	}
	return payments, nil
}

// GetPendingPaymentMembers lists members who still owe part of their plan fee.
func (s *paymentService) GetPendingPaymentMembers() ([]models.Member, error) {
	members, err := s.memberRepo.GetPendingPaymentMembers()
	if err != nil {
		return nil, fmt.Errorf("failed to get pending payment members: %w", err)
	}
	return members, nil
}

// mustParseDate is for dates this package just formatted itself.
func mustParseDate(value string) (t time.Time) {
	t, _ = lifecycle.ParseDate(value)
	return t
}

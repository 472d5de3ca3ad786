package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gym_crm_backend/internal/models"
)

// PaymentRepository defines the interface for the append-only payment ledger.
// Ledger rows are inserted and read, never updated or deleted.
type PaymentRepository interface {
	CreatePayment(executor SQLExecutor, payment *models.Payment) (int64, error)
	GetPaymentByID(id int64) (*models.Payment, error)
	GetPaymentsByMember(memberID int64) ([]models.Payment, error)
	GetAllPayments() ([]models.Payment, error)
	CollectionsOn(date string) (float64, error)
	CollectionsSince(firstDay string) (float64, error)
}

type paymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func scanPayment(row scanner, withMemberName bool) (*models.Payment, error) {
	payment := &models.Payment{}
	var notes sql.NullString
	var createdAt sql.NullTime
	var memberName sql.NullString

	scanDest := []interface{}{
		&payment.ID, &payment.MemberID, &payment.Phone, &payment.Amount,
		&payment.PaymentDate, &payment.PaymentType, &notes, &payment.ReceiptRef, &createdAt,
	}
	if withMemberName {
		scanDest = append(scanDest, &memberName)
	}

	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning payment: %v", ErrDatabaseError, err)
	}

	if notes.Valid {
		payment.Notes = &notes.String
	}
	if createdAt.Valid {
		payment.CreatedAt = createdAt.Time
	}
	if memberName.Valid {
		payment.MemberName = &memberName.String
	}
	return payment, nil
}

// CreatePayment appends one transaction to the ledger.
func (r *paymentRepository) CreatePayment(executor SQLExecutor, payment *models.Payment) (int64, error) {
	query := `INSERT INTO payments (member_id, phone, amount, payment_date, payment_type, notes, receipt_ref, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}

	result, err := executor.Exec(query,
		payment.MemberID, payment.Phone, payment.Amount, payment.PaymentDate,
		payment.PaymentType, payment.Notes, payment.ReceiptRef, payment.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: creating payment: %v", ErrDatabaseError, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: fetching new payment id: %v", ErrDatabaseError, err)
	}
	payment.ID = id
	return id, nil
}

// GetPaymentByID retrieves one ledger row.
func (r *paymentRepository) GetPaymentByID(id int64) (*models.Payment, error) {
	query := `SELECT id, member_id, phone, amount, payment_date, payment_type, notes, receipt_ref, created_at
	          FROM payments WHERE id = ?`
	payment, err := scanPayment(r.db.QueryRow(query, id), false)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting payment by ID %d: %w", id, err)
	}
	return payment, nil
}

// GetPaymentsByMember lists a member's payment history, newest first.
func (r *paymentRepository) GetPaymentsByMember(memberID int64) ([]models.Payment, error) {
	payments := []models.Payment{}
	query := `SELECT id, member_id, phone, amount, payment_date, payment_type, notes, receipt_ref, created_at
	          FROM payments WHERE member_id = ?
	          ORDER BY payment_date DESC, created_at DESC`

	rows, err := r.db.Query(query, memberID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying payments for member %d: %v", ErrDatabaseError, memberID, err)
	}
	defer rows.Close()

	for rows.Next() {
		payment, scanErr := scanPayment(rows, false)
		if scanErr != nil {
			return nil, scanErr
		}
		payments = append(payments, *payment)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating payment rows: %v", ErrDatabaseError, err)
	}
	return payments, nil
}

// GetAllPayments lists the whole ledger with member names, newest first.
func (r *paymentRepository) GetAllPayments() ([]models.Payment, error) {
	payments := []models.Payment{}
	query := `SELECT p.id, p.member_id, p.phone, p.amount, p.payment_date, p.payment_type, p.notes, p.receipt_ref, p.created_at,
	                 m.name
	          FROM payments p
	          JOIN members m ON p.member_id = m.id
	          ORDER BY p.payment_date DESC, p.created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying payment ledger: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		payment, scanErr := scanPayment(rows, true)
		if scanErr != nil {
			return nil, scanErr
		}
		payments = append(payments, *payment)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating ledger rows: %v", ErrDatabaseError, err)
	}
	return payments, nil
}

// CollectionsOn sums all payments dated exactly the given day.
func (r *paymentRepository) CollectionsOn(date string) (float64, error) {
	var total float64
	if err := r.db.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payment_date = ?`, date).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: summing collections on %s: %v", ErrDatabaseError, date, err)
	}
	return total, nil
}

// CollectionsSince sums all payments dated on or after the given day.
func (r *paymentRepository) CollectionsSince(firstDay string) (float64, error) {
	var total float64
	if err := r.db.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payment_date >= ?`, firstDay).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: summing collections since %s: %v", ErrDatabaseError, firstDay, err)
	}
	return total, nil
}

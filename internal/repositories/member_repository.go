package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gym_crm_backend/internal/models"
)

// MemberRepository defines the interface for member-related database operations.
type MemberRepository interface {
	CreateMember(executor SQLExecutor, member *models.Member) (int64, error)
	GetMemberByID(id int64) (*models.Member, error)
	GetMemberByPhone(phone string) (*models.Member, error)
	GetMembers(searchTerm *string) ([]models.Member, error)
	UpdateMember(executor SQLExecutor, member *models.Member) error
	DeleteMember(executor SQLExecutor, id int64) error
	UpdateMemberPayment(executor SQLExecutor, id int64, amountPaid, pendingAmount float64, paymentStatus, lastPaymentDate, endDate, status string) error
	UpdateMemberPhoto(executor SQLExecutor, id int64, photoPath string) error
	RefreshStatuses(executor SQLExecutor, today string) error
	GetPendingPaymentMembers() ([]models.Member, error)
	CountMembers() (total, active, expired int, err error)
	MembershipRevenueSince(firstDay string) (float64, error)
}

type memberRepository struct {
	db *sql.DB
}

// NewMemberRepository creates a new instance of MemberRepository.
func NewMemberRepository(db *sql.DB) MemberRepository {
	return &memberRepository{db: db}
}

const memberColumns = `id, name, phone, address, age, gender, membership_type, start_date, end_date,
	fees, payment_status, last_payment_date, amount_paid, pending_amount, status, photo_path, created_at`

// scanMember scans one member row into a model, handling nullable columns.
func scanMember(row scanner) (*models.Member, error) {
	member := &models.Member{}
	var address, gender, lastPayment, status, photoPath sql.NullString
	var age sql.NullInt64
	var amountPaid, pendingAmount sql.NullFloat64
	var createdAt sql.NullTime

	err := row.Scan(
		&member.ID, &member.Name, &member.Phone, &address, &age, &gender,
		&member.MembershipType, &member.StartDate, &member.EndDate,
		&member.Fees, &member.PaymentStatus, &lastPayment,
		&amountPaid, &pendingAmount, &status, &photoPath, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning member: %v", ErrDatabaseError, err)
	}

	if address.Valid {
		member.Address = &address.String
	}
	if age.Valid {
		a := int(age.Int64)
		member.Age = &a
	}
	if gender.Valid {
		member.Gender = &gender.String
	}
	if lastPayment.Valid {
		member.LastPaymentDate = &lastPayment.String
	}
	member.AmountPaid = amountPaid.Float64
	member.PendingAmount = pendingAmount.Float64
	if status.Valid {
		member.Status = status.String
	} else {
		member.Status = models.MemberStatusActive
	}
	if photoPath.Valid {
		member.PhotoPath = &photoPath.String
	}
	if createdAt.Valid {
		member.CreatedAt = createdAt.Time
	}
	return member, nil
}

// CreateMember inserts a new member.
func (r *memberRepository) CreateMember(executor SQLExecutor, member *models.Member) (int64, error) {
	query := `INSERT INTO members (name, phone, address, age, gender, membership_type, start_date, end_date,
	            fees, payment_status, last_payment_date, amount_paid, pending_amount, status, photo_path, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now()
	}

	result, err := executor.Exec(query,
		member.Name, member.Phone, member.Address, member.Age, member.Gender,
		member.MembershipType, member.StartDate, member.EndDate,
		member.Fees, member.PaymentStatus, member.LastPaymentDate,
		member.AmountPaid, member.PendingAmount, member.Status, member.PhotoPath, member.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: members.phone: %v", ErrDuplicateKey, err)
		}
		return 0, fmt.Errorf("%w: creating member: %v", ErrDatabaseError, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: fetching new member id: %v", ErrDatabaseError, err)
	}
	member.ID = id
	return id, nil
}

// GetMemberByID retrieves a member by their ID.
func (r *memberRepository) GetMemberByID(id int64) (*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = ?`
	member, err := scanMember(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting member by ID %d: %w", id, err)
	}
	return member, nil
}

// GetMemberByPhone retrieves a member by their phone number. The caller
// is expected to pass an already-normalized phone.
func (r *memberRepository) GetMemberByPhone(phone string) (*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE phone = ?`
	member, err := scanMember(r.db.QueryRow(query, phone))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting member by phone %s: %w", phone, err)
	}
	return member, nil
}

// GetMembers retrieves all members ordered by name, optionally filtered
// by a case-insensitive name/phone substring.
func (r *memberRepository) GetMembers(searchTerm *string) ([]models.Member, error) {
	members := []models.Member{}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + memberColumns + ` FROM members`)

	var args []interface{}
	if searchTerm != nil && *searchTerm != "" {
		pattern := "%" + strings.ToLower(*searchTerm) + "%"
		queryBuilder.WriteString(` WHERE LOWER(name) LIKE ? OR phone LIKE ?`)
		args = append(args, pattern, pattern)
	}
	queryBuilder.WriteString(` ORDER BY name ASC`)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying members: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		member, scanErr := scanMember(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		members = append(members, *member)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating member rows: %v", ErrDatabaseError, err)
	}
	return members, nil
}

// UpdateMember updates an existing member's registration fields.
func (r *memberRepository) UpdateMember(executor SQLExecutor, member *models.Member) error {
	query := `UPDATE members SET
	            name = ?, phone = ?, address = ?, age = ?, gender = ?, membership_type = ?,
	            start_date = ?, end_date = ?, fees = ?, payment_status = ?
	          WHERE id = ?`

	result, err := executor.Exec(query,
		member.Name, member.Phone, member.Address, member.Age, member.Gender,
		member.MembershipType, member.StartDate, member.EndDate,
		member.Fees, member.PaymentStatus, member.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: members.phone: %v", ErrDuplicateKey, err)
		}
		return fmt.Errorf("%w: updating member ID %d: %v", ErrDatabaseError, member.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating member ID %d: %v", ErrDatabaseError, member.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMember removes a member. Payments, training and attendance rows
// cascade via foreign keys.
func (r *memberRepository) DeleteMember(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting member ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting member ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateMemberPayment overwrites the financial state of a member after
// a payment has been applied. All values are absolute; the service layer
// owns the arithmetic.
func (r *memberRepository) UpdateMemberPayment(executor SQLExecutor, id int64, amountPaid, pendingAmount float64, paymentStatus, lastPaymentDate, endDate, status string) error {
	query := `UPDATE members SET
	            amount_paid = ?, pending_amount = ?, payment_status = ?,
	            last_payment_date = ?, end_date = ?, status = ?
	          WHERE id = ?`

	result, err := executor.Exec(query, amountPaid, pendingAmount, paymentStatus, lastPaymentDate, endDate, status, id)
	if err != nil {
		return fmt.Errorf("%w: updating payment state for member ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for member ID %d payment update: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateMemberPhoto stores the relative photo path for a member.
func (r *memberRepository) UpdateMemberPhoto(executor SQLExecutor, id int64, photoPath string) error {
	result, err := executor.Exec(`UPDATE members SET photo_path = ? WHERE id = ?`, photoPath, id)
	if err != nil {
		return fmt.Errorf("%w: updating photo for member ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for member ID %d photo update: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RefreshStatuses recomputes the stored Active/Expired status cache for
// all members from their end dates.
func (r *memberRepository) RefreshStatuses(executor SQLExecutor, today string) error {
	if _, err := executor.Exec(`UPDATE members SET status = ? WHERE end_date < ?`, models.MemberStatusExpired, today); err != nil {
		return fmt.Errorf("%w: marking expired members: %v", ErrDatabaseError, err)
	}
	if _, err := executor.Exec(`UPDATE members SET status = ? WHERE end_date >= ?`, models.MemberStatusActive, today); err != nil {
		return fmt.Errorf("%w: marking active members: %v", ErrDatabaseError, err)
	}
	return nil
}

// GetPendingPaymentMembers lists members who still owe part of their plan fee.
func (r *memberRepository) GetPendingPaymentMembers() ([]models.Member, error) {
	members := []models.Member{}
	query := `SELECT ` + memberColumns + ` FROM members
	          WHERE payment_status = ? OR pending_amount > 0
	          ORDER BY name ASC`

	rows, err := r.db.Query(query, models.PaymentStatusPending)
	if err != nil {
		return nil, fmt.Errorf("%w: querying pending payment members: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		member, scanErr := scanMember(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		members = append(members, *member)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating pending payment rows: %v", ErrDatabaseError, err)
	}
	return members, nil
}

// CountMembers returns total, active and expired member counts. Active
// means end_date >= today, boundary inclusive.
func (r *memberRepository) CountMembers() (int, int, int, error) {
	today := time.Now().Format("2006-01-02")
	var total, active, expired int

	if err := r.db.QueryRow(`SELECT COUNT(*) FROM members`).Scan(&total); err != nil {
		return 0, 0, 0, fmt.Errorf("%w: counting members: %v", ErrDatabaseError, err)
	}
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM members WHERE end_date >= ?`, today).Scan(&active); err != nil {
		return 0, 0, 0, fmt.Errorf("%w: counting active members: %v", ErrDatabaseError, err)
	}
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM members WHERE end_date < ?`, today).Scan(&expired); err != nil {
		return 0, 0, 0, fmt.Errorf("%w: counting expired members: %v", ErrDatabaseError, err)
	}
	return total, active, expired, nil
}

// MembershipRevenueSince sums membership fees of paid-up members whose
// cycle started on or after the given date.
func (r *memberRepository) MembershipRevenueSince(firstDay string) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(fees), 0) FROM members WHERE payment_status = ? AND start_date >= ?`
	if err := r.db.QueryRow(query, models.PaymentStatusPaid, firstDay).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: summing membership revenue: %v", ErrDatabaseError, err)
	}
	return total, nil
}

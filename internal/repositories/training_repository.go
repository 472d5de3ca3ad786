package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gym_crm_backend/internal/models"
)

// TrainingRepository defines the interface for personal-training database operations.
type TrainingRepository interface {
	CreateTraining(executor SQLExecutor, training *models.PersonalTraining) (int64, error)
	GetTrainingByID(id int64) (*models.PersonalTraining, error)
	GetTrainingByMember(memberID int64) ([]models.PersonalTraining, error)
	GetActiveTraining(memberID int64, today string) (*models.PersonalTraining, error)
	GetAllTraining() ([]models.PersonalTraining, error)
	UpdateTraining(executor SQLExecutor, training *models.PersonalTraining) error
	DeleteTraining(executor SQLExecutor, id int64) error
	TrainingRevenueSince(firstDay string) (float64, error)
}

type trainingRepository struct {
	db *sql.DB
}

// NewTrainingRepository creates a new instance of TrainingRepository.
func NewTrainingRepository(db *sql.DB) TrainingRepository {
	return &trainingRepository{db: db}
}

func scanTraining(row scanner, withMember bool) (*models.PersonalTraining, error) {
	training := &models.PersonalTraining{}
	var status sql.NullString
	var createdAt sql.NullTime
	var memberName, memberPhone sql.NullString

	scanDest := []interface{}{
		&training.ID, &training.MemberID, &training.TrainerName, &training.PlanDuration,
		&training.Fee, &training.StartDate, &training.EndDate, &status, &createdAt,
	}
	if withMember {
		scanDest = append(scanDest, &memberName, &memberPhone)
	}

	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning personal training: %v", ErrDatabaseError, err)
	}

	if status.Valid {
		training.Status = status.String
	} else {
		training.Status = models.TrainingStatusActive
	}
	if createdAt.Valid {
		training.CreatedAt = createdAt.Time
	}
	if memberName.Valid {
		training.MemberName = &memberName.String
	}
	if memberPhone.Valid {
		training.MemberPhone = &memberPhone.String
	}
	return training, nil
}

// CreateTraining inserts a new personal-training assignment.
func (r *trainingRepository) CreateTraining(executor SQLExecutor, training *models.PersonalTraining) (int64, error) {
	query := `INSERT INTO personal_training (member_id, trainer_name, plan_duration, fee, start_date, end_date, status, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	if training.CreatedAt.IsZero() {
		training.CreatedAt = time.Now()
	}

	result, err := executor.Exec(query,
		training.MemberID, training.TrainerName, training.PlanDuration, training.Fee,
		training.StartDate, training.EndDate, training.Status, training.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: creating personal training: %v", ErrDatabaseError, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: fetching new training id: %v", ErrDatabaseError, err)
	}
	training.ID = id
	return id, nil
}

// GetTrainingByID retrieves a training assignment by ID.
func (r *trainingRepository) GetTrainingByID(id int64) (*models.PersonalTraining, error) {
	query := `SELECT id, member_id, trainer_name, plan_duration, fee, start_date, end_date, status, created_at
	          FROM personal_training WHERE id = ?`
	training, err := scanTraining(r.db.QueryRow(query, id), false)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting training by ID %d: %w", id, err)
	}
	return training, nil
}

// GetTrainingByMember lists a member's training history, newest first.
func (r *trainingRepository) GetTrainingByMember(memberID int64) ([]models.PersonalTraining, error) {
	training := []models.PersonalTraining{}
	query := `SELECT id, member_id, trainer_name, plan_duration, fee, start_date, end_date, status, created_at
	          FROM personal_training WHERE member_id = ?
	          ORDER BY start_date DESC`

	rows, err := r.db.Query(query, memberID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying training for member %d: %v", ErrDatabaseError, memberID, err)
	}
	defer rows.Close()

	for rows.Next() {
		row, scanErr := scanTraining(rows, false)
		if scanErr != nil {
			return nil, scanErr
		}
		training = append(training, *row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating training rows: %v", ErrDatabaseError, err)
	}
	return training, nil
}

// GetActiveTraining returns the member's current Active assignment with
// the latest end date on or after today, or ErrNotFound.
func (r *trainingRepository) GetActiveTraining(memberID int64, today string) (*models.PersonalTraining, error) {
	query := `SELECT id, member_id, trainer_name, plan_duration, fee, start_date, end_date, status, created_at
	          FROM personal_training
	          WHERE member_id = ? AND end_date >= ? AND status = ?
	          ORDER BY end_date DESC LIMIT 1`
	training, err := scanTraining(r.db.QueryRow(query, memberID, today, models.TrainingStatusActive), false)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting active training for member %d: %w", memberID, err)
	}
	return training, nil
}

// GetAllTraining lists every assignment with member name and phone,
// latest end date first.
func (r *trainingRepository) GetAllTraining() ([]models.PersonalTraining, error) {
	training := []models.PersonalTraining{}
	query := `SELECT pt.id, pt.member_id, pt.trainer_name, pt.plan_duration, pt.fee, pt.start_date, pt.end_date, pt.status, pt.created_at,
	                 m.name, m.phone
	          FROM personal_training pt
	          JOIN members m ON pt.member_id = m.id
	          ORDER BY pt.end_date DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying all training: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		row, scanErr := scanTraining(rows, true)
		if scanErr != nil {
			return nil, scanErr
		}
		training = append(training, *row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating training rows: %v", ErrDatabaseError, err)
	}
	return training, nil
}

// UpdateTraining updates an existing assignment.
func (r *trainingRepository) UpdateTraining(executor SQLExecutor, training *models.PersonalTraining) error {
	query := `UPDATE personal_training SET
	            trainer_name = ?, plan_duration = ?, fee = ?, start_date = ?, end_date = ?, status = ?
	          WHERE id = ?`

	result, err := executor.Exec(query,
		training.TrainerName, training.PlanDuration, training.Fee,
		training.StartDate, training.EndDate, training.Status, training.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating training ID %d: %v", ErrDatabaseError, training.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for training ID %d: %v", ErrDatabaseError, training.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTraining removes an assignment.
func (r *trainingRepository) DeleteTraining(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM personal_training WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting training ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting training ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TrainingRevenueSince sums training fees for plans starting on or after the given date.
func (r *trainingRepository) TrainingRevenueSince(firstDay string) (float64, error) {
	var total float64
	if err := r.db.QueryRow(`SELECT COALESCE(SUM(fee), 0) FROM personal_training WHERE start_date >= ?`, firstDay).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: summing training revenue: %v", ErrDatabaseError, err)
	}
	return total, nil
}

package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"gym_crm_backend/internal/models"
)

// AttendanceRepository defines the interface for the append-only attendance log.
type AttendanceRepository interface {
	CreateAttendance(executor SQLExecutor, event *models.AttendanceEvent) (int64, error)
	HasCheckedIn(memberID int64, date string) (bool, error)
	GetTodayAttendance(date string) ([]models.AttendanceEvent, error)
	GetMemberAttendance(memberID int64) ([]models.AttendanceEvent, error)
	GetAttendanceByTrainer(trainerName string) ([]models.AttendanceEvent, error)
	CountAttendanceOn(date string) (int, error)
}

type attendanceRepository struct {
	db *sql.DB
}

// NewAttendanceRepository creates a new instance of AttendanceRepository.
func NewAttendanceRepository(db *sql.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row scanner, withMember bool) (*models.AttendanceEvent, error) {
	event := &models.AttendanceEvent{}
	var trainerName, memberName, memberPhone sql.NullString

	scanDest := []interface{}{
		&event.ID, &event.MemberID, &event.CheckInTime, &event.Date, &trainerName,
	}
	if withMember {
		scanDest = append(scanDest, &memberName, &memberPhone)
	}

	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning attendance: %v", ErrDatabaseError, err)
	}

	if trainerName.Valid {
		event.TrainerName = &trainerName.String
	}
	if memberName.Valid {
		event.MemberName = &memberName.String
	}
	if memberPhone.Valid {
		event.MemberPhone = &memberPhone.String
	}
	return event, nil
}

// CreateAttendance appends one check-in event.
func (r *attendanceRepository) CreateAttendance(executor SQLExecutor, event *models.AttendanceEvent) (int64, error) {
	query := `INSERT INTO attendance (member_id, check_in_time, date, trainer_name)
	          VALUES (?, ?, ?, ?)`

	result, err := executor.Exec(query, event.MemberID, event.CheckInTime, event.Date, event.TrainerName)
	if err != nil {
		return 0, fmt.Errorf("%w: creating attendance: %v", ErrDatabaseError, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: fetching new attendance id: %v", ErrDatabaseError, err)
	}
	event.ID = id
	return id, nil
}

// HasCheckedIn reports whether the member already has an event on the given date.
func (r *attendanceRepository) HasCheckedIn(memberID int64, date string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM attendance WHERE member_id = ? AND date = ?`
	if err := r.db.QueryRow(query, memberID, date).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: checking attendance for member %d: %v", ErrDatabaseError, memberID, err)
	}
	return count > 0, nil
}

// GetTodayAttendance lists check-ins for a date with member details,
// latest check-in first.
func (r *attendanceRepository) GetTodayAttendance(date string) ([]models.AttendanceEvent, error) {
	events := []models.AttendanceEvent{}
	query := `SELECT a.id, a.member_id, a.check_in_time, a.date, a.trainer_name, m.name, m.phone
	          FROM attendance a
	          JOIN members m ON a.member_id = m.id
	          WHERE a.date = ?
	          ORDER BY a.check_in_time DESC`

	rows, err := r.db.Query(query, date)
	if err != nil {
		return nil, fmt.Errorf("%w: querying attendance for %s: %v", ErrDatabaseError, date, err)
	}
	defer rows.Close()

	for rows.Next() {
		event, scanErr := scanAttendance(rows, true)
		if scanErr != nil {
			return nil, scanErr
		}
		events = append(events, *event)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating attendance rows: %v", ErrDatabaseError, err)
	}
	return events, nil
}

// GetMemberAttendance lists a member's check-in history, newest first.
func (r *attendanceRepository) GetMemberAttendance(memberID int64) ([]models.AttendanceEvent, error) {
	events := []models.AttendanceEvent{}
	query := `SELECT id, member_id, check_in_time, date, trainer_name
	          FROM attendance WHERE member_id = ?
	          ORDER BY date DESC, check_in_time DESC`

	rows, err := r.db.Query(query, memberID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying attendance for member %d: %v", ErrDatabaseError, memberID, err)
	}
	defer rows.Close()

	for rows.Next() {
		event, scanErr := scanAttendance(rows, false)
		if scanErr != nil {
			return nil, scanErr
		}
		events = append(events, *event)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating attendance rows: %v", ErrDatabaseError, err)
	}
	return events, nil
}

// GetAttendanceByTrainer lists check-ins recorded against a trainer, newest first.
func (r *attendanceRepository) GetAttendanceByTrainer(trainerName string) ([]models.AttendanceEvent, error) {
	events := []models.AttendanceEvent{}
	query := `SELECT a.id, a.member_id, a.check_in_time, a.date, a.trainer_name, m.name, m.phone
	          FROM attendance a
	          JOIN members m ON a.member_id = m.id
	          WHERE a.trainer_name = ?
	          ORDER BY a.date DESC, a.check_in_time DESC`

	rows, err := r.db.Query(query, trainerName)
	if err != nil {
		return nil, fmt.Errorf("%w: querying attendance for trainer %s: %v", ErrDatabaseError, trainerName, err)
	}
	defer rows.Close()

	for rows.Next() {
		event, scanErr := scanAttendance(rows, true)
		if scanErr != nil {
			return nil, scanErr
		}
		events = append(events, *event)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating attendance rows: %v", ErrDatabaseError, err)
	}
	return events, nil
}

// CountAttendanceOn counts check-ins on a date.
func (r *attendanceRepository) CountAttendanceOn(date string) (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM attendance WHERE date = ?`, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting attendance on %s: %v", ErrDatabaseError, date, err)
	}
	return count, nil
}

package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"gym_crm_backend/internal/models"
)

// AdminRepository defines the interface for the single-row admin credential table.
type AdminRepository interface {
	GetAdminByUsername(username string) (*models.Admin, error)
	UpdatePasswordHash(executor SQLExecutor, username, passwordHash string) error
}

type adminRepository struct {
	db *sql.DB
}

// NewAdminRepository creates a new instance of AdminRepository.
func NewAdminRepository(db *sql.DB) AdminRepository {
	return &adminRepository{db: db}
}

// GetAdminByUsername fetches the stored credential row for a username.
func (r *adminRepository) GetAdminByUsername(username string) (*models.Admin, error) {
	admin := &models.Admin{}
	var createdAt sql.NullTime

	query := `SELECT id, username, password_hash, created_at FROM admin WHERE username = ?`
	err := r.db.QueryRow(query, username).Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting admin %s: %v", ErrDatabaseError, username, err)
	}
	if createdAt.Valid {
		admin.CreatedAt = createdAt.Time
	}
	return admin, nil
}

// UpdatePasswordHash replaces the stored password hash for a username.
func (r *adminRepository) UpdatePasswordHash(executor SQLExecutor, username, passwordHash string) error {
	result, err := executor.Exec(`UPDATE admin SET password_hash = ? WHERE username = ?`, passwordHash, username)
	if err != nil {
		return fmt.Errorf("%w: updating password for %s: %v", ErrDatabaseError, username, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for password update: %v", ErrDatabaseError, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

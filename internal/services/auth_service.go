package services

import (
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"gym_crm_backend/internal/repositories"
	"gym_crm_backend/pkg/utils"
)

// --- Custom Service Errors for Auth ---
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
)

// --- Auth DTOs ---
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// --- AuthService Interface ---
type AuthService interface {
	Login(req LoginRequest) (*AuthResponse, error)
	ChangePassword(username string, req ChangePasswordRequest) error
}

// --- authService Implementation ---
type authService struct {
	adminRepo repositories.AdminRepository
	db        *sql.DB
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(ar repositories.AdminRepository, db *sql.DB) AuthService {
	return &authService{adminRepo: ar, db: db}
}

// Login verifies the operator's credentials and issues a JWT.
func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	admin, err := s.adminRepo.GetAdminByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(admin.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{Token: token, Username: admin.Username}, nil
}

// ChangePassword swaps the stored hash after verifying the old password.
func (s *authService) ChangePassword(username string, req ChangePasswordRequest) error {
	if len(req.NewPassword) < 6 {
		return ErrPasswordTooShort
	}

	admin, err := s.adminRepo.GetAdminByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err = s.adminRepo.UpdatePasswordHash(s.db, username, string(hash)); err != nil {
		return fmt.Errorf("failed to store new password: %w", err)
	}
	return nil
}

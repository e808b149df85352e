// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/your-org/pos-terminal/internal/config"
	"github.com/your-org/pos-terminal/internal/pkg/auth"
)

var (
	// ErrInvalidCredentials is returned for a bad username or password
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAccountDisabled is returned when the account exists but is inactive
	ErrAccountDisabled = errors.New("account is disabled")
)

// Service handles operator authentication
type Service struct {
	db         *gorm.DB
	jwtManager *auth.JWTManager
	passwords  *auth.PasswordManager
}

// NewService creates a user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:         db,
		jwtManager: auth.NewJWTManager(cfg),
		passwords:  auth.NewPasswordManager(cfg),
	}
}

// AuthResult is a successful login
type AuthResult struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
}

// Authenticate verifies the credentials and issues an access token
func (s *Service) Authenticate(ctx context.Context, username, password string) (*AuthResult, error) {
	var u User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !u.IsActive {
		return nil, ErrAccountDisabled
	}

	if err := s.passwords.VerifyPassword(password, u.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessToken(u.ID, u.Username, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := time.Now()
	u.LastLoginAt = &now
	if err := s.db.WithContext(ctx).Model(&u).Update("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	return &AuthResult{User: &u, AccessToken: token}, nil
}

// FindByID returns the operator account or gorm.ErrRecordNotFound
func (s *Service) FindByID(ctx context.Context, id uint) (*User, error) {
	var u User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, fmt.Errorf("failed to find user %d: %w", id, err)
	}
	return &u, nil
}

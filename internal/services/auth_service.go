package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lottoloss/lottoloss-backend/internal/config"
	"github.com/lottoloss/lottoloss-backend/internal/models"
	"github.com/lottoloss/lottoloss-backend/internal/repositories"
	"github.com/lottoloss/lottoloss-backend/internal/utils"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// ErrInvalidCredentials is returned for any login failure; the reason is
// deliberately not disclosed to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles admin registration and login
type AuthService struct {
	adminRepo repositories.AdminUserRepository
	cfg       *config.Config
}

// NewAuthService creates a new AuthService
func NewAuthService(adminRepo repositories.AdminUserRepository, cfg *config.Config) *AuthService {
	return &AuthService{adminRepo: adminRepo, cfg: cfg}
}

// Register creates a new admin user with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AdminUser, error) {
	_, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, errors.New("user with this email already exists")
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = "admin"
	}
	user := &models.AdminUser{
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.adminRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	slog.Info("admin user registered", "email", user.Email, "role", user.Role)
	return user, nil
}

// Login verifies credentials and issues a JWT.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpiresIn) * time.Second)
	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role, expiresAt, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

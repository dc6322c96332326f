package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"campus-connect/internal/events"
	"campus-connect/internal/models"
	"campus-connect/internal/repositories/postgres"
	"campus-connect/internal/security"
	apperrors "campus-connect/pkg/errors"
	"campus-connect/pkg/logger"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	maxNameLength     = 120
)

var ErrInvalidCredentials = apperrors.Validation("invalid credentials")

type AuthService struct {
	users    *postgres.UserRepository
	tokens   *security.TokenManager
	events   events.Publisher
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAuthService(users *postgres.UserRepository, tokens *security.TokenManager, pub events.Publisher, log *logger.Logger) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		events:   pub,
		validate: validator.New(),
		logger:   log,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	email := NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperrors.Validation("email and password required")
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return nil, apperrors.Validation("invalid email")
	}
	if len(req.Password) < minPasswordLength {
		return nil, apperrors.Validation(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	role := models.RoleJunior
	if r := strings.ToUpper(strings.TrimSpace(req.Role)); r != "" {
		role = models.Role(r)
	}
	if role == models.RoleAdmin {
		return nil, apperrors.Validation("cannot sign up as admin")
	}
	if !role.IsValid() {
		return nil, apperrors.Validation("invalid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err, "hash password")
	}

	profileType := models.ProfileStudent
	if role == models.RoleAlumni {
		profileType = models.ProfileAlumni
	}

	user := &models.User{
		Name:         security.CleanText(req.Name, maxNameLength),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		ProfileType:  profileType,
		Visibility:   models.DefaultVisibility(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, postgres.ErrEmailExists) {
			return nil, apperrors.Conflict("email already registered")
		}
		return nil, apperrors.Internal(err, "create user")
	}

	s.logger.Info("User signed up", "user_id", user.ID, "role", user.Role)
	publish(ctx, s.events, s.logger, events.New(events.UserSignedUp, user.ID, user.ID, map[string]interface{}{
		"role": user.Role,
	}))

	return s.authResponse(user)
}

func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperrors.Validation("email and password required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperrors.Internal(err, "load user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.authResponse(user)
}

// Me returns the caller's own account.
func (s *AuthService) Me(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "user not found")
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *AuthService) authResponse(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.Internal(err, "generate token")
	}
	return &models.AuthResponse{Token: token, User: user.ToResponse()}, nil
}

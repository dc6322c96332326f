package services

import (
	"context"
	"testing"
	"time"

	"campus-connect/internal/events"
	"campus-connect/internal/models"
	"campus-connect/internal/repositories/postgres"
	"campus-connect/internal/security"
	"campus-connect/internal/testutil"
	apperrors "campus-connect/pkg/errors"
	"campus-connect/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *security.TokenManager, *recordingPublisher) {
	db := testutil.NewDB(t)
	tokens := security.NewTokenManager("test_secret_key_minimum_32_chars", time.Hour)
	pub := &recordingPublisher{}
	return NewAuthService(postgres.NewUserRepository(db), tokens, pub, logger.NewNop()), tokens, pub
}

func TestSignup(t *testing.T) {
	svc, tokens, pub := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, &models.SignupRequest{Name: "Priya", Email: " Priya@Campus.edu ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "priya@campus.edu", resp.User.Email)
	assert.Equal(t, models.RoleJunior, resp.User.Role)
	assert.False(t, resp.User.ProfileVisibility.ShowEmail)
	assert.True(t, resp.User.ProfileVisibility.ShowCareerInfo)

	claims, err := tokens.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "JUNIOR", claims.Role)
	assert.Equal(t, []string{events.UserSignedUp}, pub.types())

	_, err = svc.Signup(ctx, &models.SignupRequest{Email: "priya@campus.edu", Password: "another"})
	assert.Equal(t, apperrors.ErrCodeConflict, apperrors.CodeOf(err))

	alumni, err := svc.Signup(ctx, &models.SignupRequest{Email: "old@campus.edu", Password: "secret1", Role: "alumni"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAlumni, alumni.User.Role)
	assert.Equal(t, models.ProfileAlumni, alumni.User.ProfileType)
}

func TestSignup_Validation(t *testing.T) {
	svc, _, _ := newAuthService(t)

	tests := []struct {
		name string
		req  models.SignupRequest
		msg  string
	}{
		{"missing email", models.SignupRequest{Password: "secret1"}, "email and password required"},
		{"missing password", models.SignupRequest{Email: "a@b.edu"}, "email and password required"},
		{"bad email", models.SignupRequest{Email: "not-an-email", Password: "secret1"}, "invalid email"},
		{"short password", models.SignupRequest{Email: "a@b.edu", Password: "123"}, "password must be at least 6 characters"},
		{"admin role", models.SignupRequest{Email: "a@b.edu", Password: "secret1", Role: "ADMIN"}, "cannot sign up as admin"},
		{"unknown role", models.SignupRequest{Email: "a@b.edu", Password: "secret1", Role: "DEAN"}, "invalid role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), &tt.req)
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
			assert.Equal(t, tt.msg, appErr.Message)
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &models.SignupRequest{Email: "sam@campus.edu", Password: "secret1", Role: "SENIOR"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &models.LoginRequest{Email: "SAM@campus.edu", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSenior, resp.User.Role)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "sam@campus.edu", Password: "wrong-pass"})
	assert.Equal(t, ErrInvalidCredentials, err)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "nobody@campus.edu", Password: "secret1"})
	assert.Equal(t, ErrInvalidCredentials, err)

	me, err := svc.Me(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "sam@campus.edu", me.Email)

	_, err = svc.Me(ctx, 9999)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.CodeOf(err))
}

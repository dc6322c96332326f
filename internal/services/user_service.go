package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"campus-connect/internal/adapters/storage"
	"campus-connect/internal/models"
	"campus-connect/internal/repositories/postgres"
	"campus-connect/internal/security"
	apperrors "campus-connect/pkg/errors"
	"campus-connect/pkg/logger"

	"gorm.io/datatypes"
)

const (
	maxBioLength   = 1000
	maxFieldLength = 200
	minYear        = 1950
	maxYear        = 2100
)

type UserService struct {
	users          *postgres.UserRepository
	avatars        storage.AvatarStore
	maxAvatarBytes int64
	logger         *logger.Logger
	now            func() time.Time
}

func NewUserService(users *postgres.UserRepository, avatars storage.AvatarStore, maxAvatarBytes int64, log *logger.Logger) *UserService {
	return &UserService{
		users:          users,
		avatars:        avatars,
		maxAvatarBytes: maxAvatarBytes,
		logger:         log,
		now:            time.Now,
	}
}

// ListSeniors is the mentor directory, sorted by name.
func (s *UserService) ListSeniors(ctx context.Context, query, baseURL string) ([]models.PublicProfile, error) {
	users, err := s.users.ListByRoles(ctx, models.MentorRoles, query)
	if err != nil {
		return nil, apperrors.Internal(err, "list seniors")
	}

	now := s.now()
	out := make([]models.PublicProfile, 0, len(users))
	for i := range users {
		out = append(out, models.NewPublicProfile(&users[i], now).WithAbsoluteAvatar(baseURL))
	}
	return out, nil
}

func (s *UserService) GetPublicProfile(ctx context.Context, id uint, baseURL string) (*models.PublicProfile, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "user not found")
	}
	p := models.NewPublicProfile(user, s.now()).WithAbsoluteAvatar(baseURL)
	return &p, nil
}

// UpdateProfile applies the fields present in req.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req *models.UpdateProfileRequest) (*models.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "user not found")
	}

	if req.Name != nil {
		name := security.CleanText(*req.Name, maxNameLength)
		if name == "" {
			return nil, apperrors.Validation("name cannot be empty")
		}
		user.Name = name
	}
	if req.Bio != nil {
		user.Bio = security.SanitizeHTML(*req.Bio, maxBioLength)
	}
	if req.Tags != nil {
		user.Tags = datatypes.JSONSlice[string](models.NormalizeTags(*req.Tags))
	}

	if req.ProfileType != nil {
		pt := models.ProfileType(strings.ToLower(strings.TrimSpace(*req.ProfileType)))
		if pt != models.ProfileStudent && pt != models.ProfileAlumni {
			return nil, apperrors.Validation("profileType must be student or alumni")
		}
		user.ProfileType = pt
	}
	for _, y := range []*int{req.EnrollmentYear, req.GraduationYear} {
		if y != nil && (*y < minYear || *y > maxYear) {
			return nil, apperrors.Validation(fmt.Sprintf("years must be between %d and %d", minYear, maxYear))
		}
	}
	if req.EnrollmentYear != nil {
		user.EnrollmentYear = req.EnrollmentYear
	}
	if req.GraduationYear != nil {
		user.GraduationYear = req.GraduationYear
	}
	if req.CurrentYearOfStudy != nil {
		if *req.CurrentYearOfStudy < 1 || *req.CurrentYearOfStudy > 10 {
			return nil, apperrors.Validation("currentYearOfStudy must be between 1 and 10")
		}
		user.CurrentYearOfStudy = req.CurrentYearOfStudy
	}

	setText(&user.Degree, req.Degree)
	setText(&user.Branch, req.Branch)
	if req.Achievements != nil {
		user.Achievements = security.SanitizeHTML(*req.Achievements, maxBioLength)
	}
	setText(&user.CurrentCompany, req.CurrentCompany)
	setText(&user.JobTitle, req.JobTitle)
	setText(&user.LinkedIn, req.LinkedIn)
	setText(&user.Location, req.Location)

	if v := req.ProfileVisibility; v != nil {
		if v.ShowEmail != nil {
			user.Visibility.ShowEmail = *v.ShowEmail
		}
		if v.ShowEnrollmentYears != nil {
			user.Visibility.ShowEnrollmentYears = *v.ShowEnrollmentYears
		}
		if v.ShowCareerInfo != nil {
			user.Visibility.ShowCareerInfo = *v.ShowCareerInfo
		}
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, apperrors.Internal(err, "update profile")
	}
	resp := user.ToResponse()
	return &resp, nil
}

// SetAvatar stores an uploaded image and replaces the previous avatar,
// which is removed best effort.
func (s *UserService) SetAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (*models.AvatarResponse, error) {
	if file == nil {
		return nil, apperrors.Validation("no file uploaded")
	}
	if !security.ValidateFileType(file.Filename, security.AvatarTypes) {
		return nil, apperrors.Validation("only image files are allowed")
	}
	if !security.ValidateFileSize(file.Size, s.maxAvatarBytes) {
		return nil, apperrors.Validation(fmt.Sprintf("file must be smaller than %d bytes", s.maxAvatarBytes))
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "user not found")
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.Internal(err, "open upload")
	}
	defer src.Close()

	url, err := s.avatars.Save(ctx, userID, file.Filename, file.Header.Get("Content-Type"), file.Size, src)
	if err != nil {
		return nil, apperrors.Internal(err, "store avatar")
	}
	if err := s.users.UpdateAvatar(ctx, userID, url); err != nil {
		s.removeAvatar(ctx, userID, url)
		return nil, apperrors.Internal(err, "update avatar")
	}

	previous := user.AvatarURL
	user.AvatarURL = url
	s.removeAvatar(ctx, userID, previous)

	resp := user.ToResponse()
	return &models.AvatarResponse{User: resp, AvatarURL: resp.AvatarURL}, nil
}

func (s *UserService) RemoveAvatar(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "user not found")
	}
	if user.AvatarURL != "" {
		if err := s.users.UpdateAvatar(ctx, userID, ""); err != nil {
			return nil, apperrors.Internal(err, "clear avatar")
		}
		s.removeAvatar(ctx, userID, user.AvatarURL)
		user.AvatarURL = ""
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *UserService) removeAvatar(ctx context.Context, userID uint, url string) {
	if url == "" {
		return
	}
	if err := s.avatars.Delete(ctx, url); err != nil {
		s.logger.Warn("Failed to delete avatar", "user_id", userID, "url", url, "error", err)
	}
}

func setText(dst *string, src *string) {
	if src != nil {
		*dst = security.CleanText(*src, maxFieldLength)
	}
}

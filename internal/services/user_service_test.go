package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"campus-connect/internal/adapters/storage"
	"campus-connect/internal/models"
	"campus-connect/internal/repositories/postgres"
	"campus-connect/internal/testutil"
	apperrors "campus-connect/pkg/errors"
	"campus-connect/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(t *testing.T) (*UserService, *gorm.DB, string) {
	t.Helper()
	db := testutil.NewDB(t)
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)
	return NewUserService(postgres.NewUserRepository(db), store, 1024, logger.NewNop()), db, dir
}

// fileHeader builds a multipart upload the way gin's FormFile would see it.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("avatar", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["avatar"][0]
}

func ptr[T any](v T) *T { return &v }

func TestUserService_ListSeniors(t *testing.T) {
	svc, db, _ := newUserService(t)
	ctx := context.Background()

	testutil.CreateUser(t, db, "Zoe", "zoe@campus.edu", models.RoleSenior)
	testutil.CreateUser(t, db, "Adam", "adam@campus.edu", models.RoleAlumni)
	testutil.CreateUser(t, db, "Junior", "junior@campus.edu", models.RoleJunior)

	list, err := svc.ListSeniors(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Adam", list[0].Name)
	assert.Equal(t, "Zoe", list[1].Name)
	assert.Empty(t, list[0].Email, "email hidden by default")

	list, err = svc.ListSeniors(ctx, "zo", "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Zoe", list[0].Name)
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc, db, _ := newUserService(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "Mia", "mia@campus.edu", models.RoleSenior)

	tags := models.TagList{" Go ", "go", "Backend"}
	resp, err := svc.UpdateProfile(ctx, user.ID, &models.UpdateProfileRequest{
		Bio:            ptr("<b>Distributed</b> systems"),
		Tags:           &tags,
		JobTitle:       ptr("Engineer"),
		GraduationYear: ptr(2020),
		ProfileVisibility: &models.Visibility{
			ShowEmail: ptr(true),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Distributed systems", resp.Bio)
	assert.Equal(t, "Mia", resp.Name, "absent fields stay untouched")
	assert.Equal(t, "Engineer", resp.JobTitle)
	assert.True(t, resp.ProfileVisibility.ShowEmail)
	assert.True(t, resp.ProfileVisibility.ShowCareerInfo)
	assert.Equal(t, models.NormalizeTags(tags), resp.Tags)

	profile, err := svc.GetPublicProfile(ctx, user.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "mia@campus.edu", profile.Email)
	assert.Equal(t, "Engineer", profile.JobTitle)
	assert.Nil(t, profile.GraduationYear, "enrollment years hidden by default")

	_, err = svc.UpdateProfile(ctx, user.ID, &models.UpdateProfileRequest{Name: ptr("  ")})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
	_, err = svc.UpdateProfile(ctx, user.ID, &models.UpdateProfileRequest{ProfileType: ptr("faculty")})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
	_, err = svc.UpdateProfile(ctx, user.ID, &models.UpdateProfileRequest{EnrollmentYear: ptr(1800)})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
	_, err = svc.UpdateProfile(ctx, user.ID, &models.UpdateProfileRequest{CurrentYearOfStudy: ptr(11)})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))

	_, err = svc.GetPublicProfile(ctx, 9999, "")
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.CodeOf(err))
}

func TestUserService_Avatar(t *testing.T) {
	svc, db, dir := newUserService(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "Lee", "lee@campus.edu", models.RoleJunior)

	_, err := svc.SetAvatar(ctx, user.ID, nil)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))

	_, err = svc.SetAvatar(ctx, user.ID, fileHeader(t, "notes.txt", []byte("text")))
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))

	_, err = svc.SetAvatar(ctx, user.ID, fileHeader(t, "big.png", bytes.Repeat([]byte{1}, 2048)))
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))

	first, err := svc.SetAvatar(ctx, user.ID, fileHeader(t, "my face.png", []byte("png-1")))
	require.NoError(t, err)
	require.NotNil(t, first.AvatarURL)
	assert.True(t, strings.HasPrefix(*first.AvatarURL, storage.PublicPrefix+"/"))
	assert.True(t, strings.HasSuffix(*first.AvatarURL, "-my-face.png"))
	firstFile := filepath.Join(dir, filepath.Base(*first.AvatarURL))
	assert.FileExists(t, firstFile)

	second, err := svc.SetAvatar(ctx, user.ID, fileHeader(t, "second.jpg", []byte("jpg-2")))
	require.NoError(t, err)
	assert.NoFileExists(t, firstFile, "previous avatar is removed")

	secondFile := filepath.Join(dir, filepath.Base(*second.AvatarURL))
	data, err := os.ReadFile(secondFile)
	require.NoError(t, err)
	assert.Equal(t, "jpg-2", string(data))

	cleared, err := svc.RemoveAvatar(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, cleared.AvatarURL)
	assert.NoFileExists(t, secondFile)
}

func TestUserService_AvatarSaveRollsBackOnUpdateFailure(t *testing.T) {
	svc, db, dir := newUserService(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "Kai", "kai@campus.edu", models.RoleJunior)

	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:fail_update", func(tx *gorm.DB) {
		_ = tx.AddError(errors.New("database unavailable"))
	}))

	_, err := svc.SetAvatar(ctx, user.ID, fileHeader(t, "kai.png", []byte("png")))
	assert.Equal(t, apperrors.ErrCodeInternalError, apperrors.CodeOf(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "stored upload is deleted when the user row is not updated")
}

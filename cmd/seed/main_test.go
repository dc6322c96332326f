package main

import (
	"context"
	"testing"

	"campus-connect/internal/models"
	"campus-connect/internal/testutil"
	"campus-connect/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	require.NoError(t, seed(ctx, db, logger.NewNop()))
	require.NoError(t, seed(ctx, db, logger.NewNop()))

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, len(seedUsers), users)

	var chats int64
	require.NoError(t, db.Model(&models.Chat{}).Count(&chats).Error)
	assert.EqualValues(t, 1, chats)

	var accepted int64
	require.NoError(t, db.Model(&models.Request{}).Where("status = ?", models.RequestAccepted).Count(&accepted).Error)
	assert.EqualValues(t, 1, accepted)

	var alumni models.User
	require.NoError(t, db.Where("email = ?", "alex@campus.edu").First(&alumni).Error)
	assert.Equal(t, models.ProfileAlumni, alumni.ProfileType)
}

package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"campus-connect/internal/config"
	"campus-connect/internal/database"
	"campus-connect/internal/models"
	"campus-connect/internal/repositories"
	"campus-connect/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live server only when MONGO_TEST_URI is set.
func TestMessageRepository(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	db, err := database.NewMongoConnection(ctx, config.MongoConfig{URI: uri, Database: "campus_test_" + uuid.NewString()[:8]}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.DB.Drop(context.Background())
		_ = db.Close(context.Background())
	})

	repo := NewMessageRepository(db)
	require.NoError(t, repo.EnsureIndexes(ctx))

	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	for i, text := range []string{"one", "two", "three"} {
		require.NoError(t, repo.Create(ctx, &models.Message{ChatID: 7, SenderID: 1, Text: text, CreatedAt: base.Add(time.Duration(i) * time.Minute)}))
	}

	all, err := repo.ListByChat(ctx, 7, 0, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "one", all[0].Text)

	page, err := repo.ListByChat(ctx, 7, 2, nil)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "two", page[0].Text)

	latest, err := repo.Latest(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "three", latest.Text)

	_, err = repo.Latest(ctx, 99)
	assert.Error(t, err)

	// m1 and m2 share a millisecond and straddle the page boundary
	later := base.Add(time.Millisecond)
	for _, m := range []models.Message{
		{ID: "m3", CreatedAt: later}, {ID: "m1", CreatedAt: base}, {ID: "m2", CreatedAt: base},
	} {
		m.ChatID, m.SenderID, m.Text = 8, 1, m.ID
		require.NoError(t, repo.Create(ctx, &m))
	}
	tail, err := repo.ListByChat(ctx, 8, 2, nil)
	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.Equal(t, "m2", tail[0].ID)
	assert.Equal(t, "m3", tail[1].ID)
	head, err := repo.ListByChat(ctx, 8, 2, &repositories.MessageCursor{CreatedAt: tail[0].CreatedAt, ID: tail[0].ID})
	require.NoError(t, err)
	require.Len(t, head, 1)
	assert.Equal(t, "m1", head[0].ID)

	count, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)
}

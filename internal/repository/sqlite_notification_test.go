package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leuz9/oolu-kpis-sub000/internal/testutil"
)

func TestNotificationRepo_ListForUserNewestFirst(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteNotificationRepo(database)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	for i, title := range []string{"oldest", "middle", "newest"} {
		n := testutil.NewTestNotification("alice", title)
		n.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Enqueue(ctx, n))
	}
	other := testutil.NewTestNotification("bob", "not for alice")
	require.NoError(t, repo.Enqueue(ctx, other))

	got, err := repo.ListForUser(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "newest", got[0].Title)
	assert.Equal(t, "middle", got[1].Title)
	assert.Equal(t, "oldest", got[2].Title)
	for _, n := range got {
		assert.Nil(t, n.ReadAt)
	}
}

func TestNotificationRepo_ListForUserHonorsLimit(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteNotificationRepo(database)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		n := testutil.NewTestNotification("alice", "status update")
		n.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Enqueue(ctx, n))
	}

	got, err := repo.ListForUser(ctx, "alice", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestNotificationRepo_MarkRead(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteNotificationRepo(database)
	ctx := context.Background()

	n := testutil.NewTestNotification("alice", "status update")
	require.NoError(t, repo.Enqueue(ctx, n))

	require.NoError(t, repo.MarkRead(ctx, n.ID))

	got, err := repo.ListForUser(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].ReadAt)
	first := *got[0].ReadAt

	// Marking again is a no-op and keeps the original read timestamp.
	require.NoError(t, repo.MarkRead(ctx, n.ID))
	got, err = repo.ListForUser(ctx, "alice", 10)
	require.NoError(t, err)
	assert.Equal(t, first, *got[0].ReadAt)
}

func TestNotificationRepo_MarkReadMissingReturnsNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteNotificationRepo(database)

	err := repo.MarkRead(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

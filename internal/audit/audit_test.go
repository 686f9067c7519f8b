package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leuz9/oolu-kpis-sub000/internal/testutil"
)

func TestRecordAndRecent(t *testing.T) {
	database := testutil.NewTestDB(t)
	logger := NewLogger(database)
	ctx := context.Background()

	require.NoError(t, logger.Record(ctx, "alice", "objective_created", map[string]string{"id": "o-1"}))
	require.NoError(t, logger.Record(ctx, "bob", "kpi_linked", map[string]string{"id": "k-1"}))

	events, err := logger.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first.
	assert.Equal(t, "kpi_linked", events[0].Type)
	assert.Equal(t, "bob", events[0].Actor)
	assert.JSONEq(t, `{"id":"k-1"}`, events[0].Payload)
	assert.False(t, events[0].TS.IsZero())

	assert.Equal(t, "objective_created", events[1].Type)
	assert.Equal(t, "alice", events[1].Actor)
}

func TestRecent_HonorsLimit(t *testing.T) {
	database := testutil.NewTestDB(t)
	logger := NewLogger(database)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, logger.Record(ctx, "alice", "kpi_value_set", nil))
	}

	events, err := logger.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestNilLoggerDropsEvents(t *testing.T) {
	var logger *Logger
	ctx := context.Background()

	assert.NoError(t, logger.Record(ctx, "alice", "objective_created", nil))

	events, err := logger.Recent(ctx, 10)
	assert.NoError(t, err)
	assert.Empty(t, events)
}

package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/ersonp/adledger/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Alerts(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	advance := freezeTime(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	first, err := repo.LogAlert(ctx, entities.AlertWarning, entities.AlertCategorySpendCap, "Bid increase blocked", "Brand")
	require.NoError(t, err)
	advance(time.Minute)
	second, err := repo.LogAlert(ctx, entities.AlertInfo, "report", "daily report ready", "")
	require.NoError(t, err)

	t.Run("list newest first", func(t *testing.T) {
		alerts, err := repo.ListAlerts(ctx, 10, false)
		require.NoError(t, err)
		require.Len(t, alerts, 2)
		assert.Equal(t, second, alerts[0].ID)
		assert.Equal(t, first, alerts[1].ID)
		assert.Equal(t, entities.AlertWarning, alerts[1].Level)
		assert.Equal(t, entities.AlertCategorySpendCap, alerts[1].Category)
		assert.Equal(t, "Brand", alerts[1].Campaign)
		assert.Equal(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), alerts[1].Timestamp)
		assert.False(t, alerts[1].Acknowledged)
	})

	t.Run("acknowledge hides from open list", func(t *testing.T) {
		require.NoError(t, repo.AcknowledgeAlert(ctx, first))

		open, err := repo.ListAlerts(ctx, 0, true)
		require.NoError(t, err)
		require.Len(t, open, 1)
		assert.Equal(t, second, open[0].ID)

		all, err := repo.ListAlerts(ctx, 0, false)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.True(t, all[1].Acknowledged)
	})

	t.Run("limit", func(t *testing.T) {
		alerts, err := repo.ListAlerts(ctx, 1, false)
		require.NoError(t, err)
		assert.Len(t, alerts, 1)
	})

	t.Run("acknowledge unknown id", func(t *testing.T) {
		err := repo.AcknowledgeAlert(ctx, 999)
		require.ErrorIs(t, err, entities.ErrNotFound)
	})
}

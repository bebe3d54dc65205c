package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/adledger/internal/domain/entities"
	"github.com/ersonp/adledger/internal/domain/mocks"
	"github.com/ersonp/adledger/internal/domain/services"
	"github.com/ersonp/adledger/internal/infrastructure/config"
	"github.com/ersonp/adledger/internal/infrastructure/mutator"
	"github.com/ersonp/adledger/internal/infrastructure/relationaldb/sqlite"
)

func setupRollback(t *testing.T, m *mocks.Mutator) (*RollbackHandler, *ActionHandler, *sqlite.Repository) {
	t.Helper()
	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	engine := services.NewRollbackEngine(repo, m, nil)
	return NewRollbackHandler(engine), NewActionHandler(services.NewLedgerService(repo, nil)), repo
}

func TestRollbackHandler_BidRoundTrip(t *testing.T) {
	m := mocks.NewMutator()
	rollbacks, actions, repo := setupRollback(t, m)
	ctx := context.Background()

	recorded, err := actions.HandleRecord(ctx, &entities.NewAction{
		ActionType: entities.ActionAdjustBid,
		TargetType: entities.TargetKeyword,
		TargetID:   "customers/1/adGroupCriteria/2~3",
		TargetName: "running shoes",
		OldValue:   "$1.00",
		NewValue:   "$1.50",
		Reason:     "strong conversion rate",
	})
	require.NoError(t, err)
	id := recorded.Action.ID

	result := rollbacks.HandleRollback(ctx, id)
	require.True(t, result.OK(), result.Reason())

	require.Len(t, m.Calls, 1)
	assert.Equal(t, int64(1_000_000), m.Calls[0].BidMicros)

	rb, err := actions.HandleShow(ctx, result.RollbackActionID)
	require.NoError(t, err)
	assert.Equal(t, entities.ActionType("rollback_adjust_bid"), rb.ActionType)
	assert.Equal(t, "$1.50", rb.OldValue)
	assert.Equal(t, "$1.00", rb.NewValue)
	require.NotNil(t, rb.RollbackOf)
	assert.Equal(t, id, *rb.RollbackOf)

	original, err := actions.HandleShow(ctx, id)
	require.NoError(t, err)
	assert.True(t, original.RolledBack)

	// A second attempt is refused before any mutation and writes nothing
	before, err := repo.Count(ctx)
	require.NoError(t, err)

	again := rollbacks.HandleRollback(ctx, id)
	require.ErrorIs(t, again.Err, entities.ErrAlreadyRolledBack)
	assert.Len(t, m.Calls, 1)

	after, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRollbackHandler_NotFoundLeavesLedgerUnchanged(t *testing.T) {
	rollbacks, _, repo := setupRollback(t, mocks.NewMutator())
	ctx := context.Background()

	before, err := repo.Count(ctx)
	require.NoError(t, err)

	result := rollbacks.HandleRollback(ctx, 42)
	require.ErrorIs(t, result.Err, entities.ErrNotFound)

	after, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRollbackHandler_ReadOnlyMutator(t *testing.T) {
	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	handler := NewRollbackHandler(services.NewRollbackEngine(repo, mutator.NewReadOnly(), nil))
	id, err := repo.Append(context.Background(), &entities.NewAction{
		ActionType: entities.ActionPauseAd,
		TargetType: entities.TargetAd,
		TargetID:   "customers/1/adGroupAds/2~3",
	})
	require.NoError(t, err)

	result := handler.HandleRollback(context.Background(), id)
	require.ErrorIs(t, result.Err, entities.ErrExternalMutation)
	require.ErrorIs(t, result.Err, mutator.ErrReadOnly)

	original, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, original.RolledBack)
}

func TestRollbackHandler_HandleRollbackSince(t *testing.T) {
	m := mocks.NewMutator()
	rollbacks, actions, _ := setupRollback(t, m)
	ctx := context.Background()
	since := time.Now().Add(-time.Minute)

	for _, na := range []*entities.NewAction{
		{ActionType: entities.ActionAddKeyword, TargetType: entities.TargetKeyword, TargetID: "customers/1/adGroupCriteria/2~4", TargetName: "trail shoes"},
		{ActionType: entities.ActionPauseCampaign, TargetType: entities.TargetCampaign, TargetID: "customers/1/campaigns/9"},
	} {
		_, err := actions.HandleRecord(ctx, na)
		require.NoError(t, err)
	}

	batch, err := rollbacks.HandleRollbackSince(ctx, since)
	require.NoError(t, err)
	require.Len(t, batch.Results, 2)
	assert.Equal(t, 1, batch.Succeeded())
	assert.Equal(t, 1, batch.Failed())
	assert.Len(t, m.Calls, 1)

	// Rollback records are themselves newer than since but are refused
	next, err := rollbacks.HandleRollbackSince(ctx, since)
	require.NoError(t, err)
	for _, r := range next.Results {
		assert.False(t, r.OK())
		assert.ErrorIs(t, r.Err, entities.ErrUnsupportedAction)
	}
}

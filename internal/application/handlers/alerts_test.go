package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/adledger/internal/domain/entities"
	"github.com/ersonp/adledger/internal/domain/mocks"
)

func TestAlertHandler(t *testing.T) {
	alerts := mocks.NewAlertLog()
	handler := NewAlertHandler(alerts)
	ctx := context.Background()

	first, err := alerts.LogAlert(ctx, entities.AlertWarning, entities.AlertCategorySpendCap, "Bid increase blocked", "")
	require.NoError(t, err)
	_, err = alerts.LogAlert(ctx, entities.AlertInfo, "report", "ready", "")
	require.NoError(t, err)

	listed, err := handler.HandleList(ctx, 0, false)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	require.NoError(t, handler.HandleAcknowledge(ctx, first))

	open, err := handler.HandleList(ctx, 10, true)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "ready", open[0].Message)

	err = handler.HandleAcknowledge(ctx, 99)
	require.ErrorIs(t, err, entities.ErrNotFound)
}

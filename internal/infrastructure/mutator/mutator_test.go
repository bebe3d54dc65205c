package mutator

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ersonp/adledger/internal/domain/ports"
)

var (
	_ ports.Mutator = (*ReadOnly)(nil)
	_ ports.Mutator = (*Outbox)(nil)
)

func TestReadOnly(t *testing.T) {
	ctx := context.Background()
	m := NewReadOnly()

	tests := []struct {
		name string
		call func() error
		op   string
	}{
		{name: "set bid", call: func() error { return m.SetKeywordBid(ctx, "crit/1", 1_000_000) }, op: OpSetKeywordBid},
		{name: "remove campaign criterion", call: func() error { return m.RemoveCampaignCriterion(ctx, "crit/1") }, op: OpRemoveCampaignCriterion},
		{name: "remove ad group criterion", call: func() error { return m.RemoveAdGroupCriterion(ctx, "crit/1") }, op: OpRemoveAdGroupCriterion},
		{name: "enable ad", call: func() error { return m.EnableAd(ctx, "crit/1") }, op: OpEnableAd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.ErrorIs(t, err, ErrReadOnly)
			assert.Contains(t, err.Error(), tt.op)
			assert.Contains(t, err.Error(), "crit/1")
		})
	}
}

func readEntries(t *testing.T, path string) []Entry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		entries = append(entries, e)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func TestOutbox(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "outbox.jsonl")
	o, err := NewOutbox(path, zap.NewNop())
	require.NoError(t, err)
	fixed := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	o.now = func() time.Time { return fixed }

	ctx := context.Background()
	require.NoError(t, o.SetKeywordBid(ctx, "customers/1/adGroupCriteria/2~3", 1_000_000))
	require.NoError(t, o.RemoveCampaignCriterion(ctx, "customers/1/campaignCriteria/4~5"))
	require.NoError(t, o.RemoveAdGroupCriterion(ctx, "customers/1/adGroupCriteria/6~7"))
	require.NoError(t, o.EnableAd(ctx, "customers/1/adGroupAds/8~9"))

	entries := readEntries(t, path)
	require.Len(t, entries, 4)
	assert.Equal(t, Entry{Time: fixed, Operation: OpSetKeywordBid, Resource: "customers/1/adGroupCriteria/2~3", BidMicros: 1_000_000}, entries[0])
	assert.Equal(t, OpRemoveCampaignCriterion, entries[1].Operation)
	assert.Equal(t, OpRemoveAdGroupCriterion, entries[2].Operation)
	assert.Equal(t, OpEnableAd, entries[3].Operation)
	assert.Zero(t, entries[3].BidMicros)
}

func TestOutbox_AppendsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outbox.jsonl")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		o, err := NewOutbox(path, nil)
		require.NoError(t, err)
		require.NoError(t, o.EnableAd(ctx, "ad"))
	}

	assert.Len(t, readEntries(t, path), 2)
}

func TestOutbox_CanceledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outbox.jsonl")
	o, err := NewOutbox(path, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = o.EnableAd(ctx, "ad")
	require.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewOutbox_RequiresPath(t *testing.T) {
	_, err := NewOutbox("", nil)
	require.Error(t, err)
}

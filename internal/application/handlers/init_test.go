package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/adledger/internal/infrastructure/config"
)

func TestInitHandler_Handle_Success(t *testing.T) {
	tmpDir := t.TempDir()

	handler := NewInitHandler()

	result, err := handler.Handle(context.Background(), tmpDir)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Contains(t, result.ConfigPath, "config.yaml")
	assert.Equal(t, filepath.Join(tmpDir, config.DefaultConfigDir, config.DefaultDBFile), result.DBPath)
	assert.Equal(t, uint(2), result.SchemaVersion)

	// Verify config and database were created
	assert.True(t, config.Exists(tmpDir))
	_, err = os.Stat(result.DBPath)
	assert.NoError(t, err)
}

func TestInitHandler_Handle_AlreadyInitialized(t *testing.T) {
	tmpDir := t.TempDir()

	// Initialize first
	err := config.WriteDefault(tmpDir)
	require.NoError(t, err)

	handler := NewInitHandler()

	_, err = handler.Handle(context.Background(), tmpDir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")
}

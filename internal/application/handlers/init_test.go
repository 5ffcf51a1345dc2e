package handlers

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/hunt-tracker/internal/domain/mocks"
	"github.com/ersonp/hunt-tracker/internal/domain/ports"
	"github.com/ersonp/hunt-tracker/internal/infrastructure/config"
)

func storeOpener(store ports.MatchStore, err error) StoreOpener {
	return func(config.SQLiteConfig) (ports.MatchStore, error) {
		return store, err
	}
}

func TestNewInitHandler(t *testing.T) {
	handler := NewInitHandler(storeOpener(mocks.NewMatchStore(), nil), nil)

	require.NotNil(t, handler)
	assert.Nil(t, handler.openIndex)
}

func TestInitHandler_Handle_Success(t *testing.T) {
	tmpDir := t.TempDir()
	indexOpened := false
	openIndex := func(config.QdrantConfig) (ports.LobbyIndex, error) {
		indexOpened = true
		return &mocks.LobbyIndex{}, nil
	}

	handler := NewInitHandler(storeOpener(mocks.NewMatchStore(), nil), openIndex)

	result, err := handler.Handle(t.Context(), tmpDir)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Contains(t, result.ConfigPath, "config.yaml")
	assert.Contains(t, result.DatabasePath, config.DefaultDatabaseFile)
	assert.Empty(t, result.CollectionName)
	assert.False(t, indexOpened, "qdrant is disabled by default")

	// Verify config and resources dir were created
	assert.True(t, config.Exists(tmpDir))
	info, err := os.Stat(result.ResourcesDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInitHandler_Handle_AlreadyInitialized(t *testing.T) {
	tmpDir := t.TempDir()

	// Initialize first
	err := config.WriteDefault(tmpDir)
	require.NoError(t, err)

	handler := NewInitHandler(storeOpener(mocks.NewMatchStore(), nil), nil)

	_, err = handler.Handle(t.Context(), tmpDir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")
}

func TestInitHandler_Handle_StoreErrors(t *testing.T) {
	t.Run("open fails", func(t *testing.T) {
		handler := NewInitHandler(storeOpener(nil, errors.New("read-only filesystem")), nil)

		_, err := handler.Handle(t.Context(), t.TempDir())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "opening match database")
		assert.Contains(t, err.Error(), "read-only filesystem")
	})

	t.Run("schema fails", func(t *testing.T) {
		store := mocks.NewMatchStore()
		store.Err = errors.New("disk I/O error")
		handler := NewInitHandler(storeOpener(store, nil), nil)

		_, err := handler.Handle(t.Context(), t.TempDir())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "creating schema")
	})
}

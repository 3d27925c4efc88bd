package stores

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/homedash/homedash-backend/internal/catalog"
	"github.com/homedash/homedash-backend/internal/models"
	"github.com/homedash/homedash-backend/internal/providers"
	"github.com/homedash/homedash-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// failingDatabase fails every read.
type failingDatabase struct {
	err error
}

func (p *failingDatabase) ProfileByUser(context.Context, string) (*models.ProfileRow, error) {
	return nil, p.err
}

func (p *failingDatabase) ListServices(context.Context, string) ([]models.ConnectedServiceRow, error) {
	return nil, p.err
}

func newServicesStore(t *testing.T, db providers.Database) (*ServicesStore, *storage.MemorySnapshots) {
	t.Helper()
	snapshots := storage.NewMemorySnapshots()
	return NewServicesStore(snapshots, db, catalog.Builtin()), snapshots
}

func TestFetchServices(t *testing.T) {
	t.Run("replaces the sequence with mapped rows", func(t *testing.T) {
		db := providers.NewMemoryDatabase()
		userID := uuid.NewString()
		synced := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		db.SeedServices(userID, []models.ConnectedServiceRow{
			{
				ID:          uuid.New(),
				UserID:      uuid.MustParse(userID),
				Type:        "gmail",
				Name:        "Gmail",
				IsConnected: true,
				LastSynced:  &synced,
				Settings:    datatypes.JSONMap{"labels": []any{"inbox"}},
			},
			{
				ID:     uuid.New(),
				UserID: uuid.MustParse(userID),
				Type:   "fitbit",
				Name:   "Fitbit",
			},
		})

		store, _ := newServicesStore(t, db)
		require.NoError(t, store.FetchServices(context.Background(), userID))

		services := store.Services()
		require.Len(t, services, 2)
		assert.Equal(t, models.ServiceGmail, services[0].Type)
		assert.Equal(t, "Gmail", services[0].Name)
		assert.True(t, services[0].IsConnected)
		assert.Equal(t, &synced, services[0].LastSynced)
		assert.Equal(t, []any{"inbox"}, []any(services[0].Settings["labels"].([]any)))
		assert.Equal(t, models.ServiceFitbit, services[1].Type)
		assert.False(t, services[1].IsConnected)
		assert.False(t, store.IsLoading())
		assert.Empty(t, store.Err())
	})

	t.Run("failure keeps the previous sequence and records the error", func(t *testing.T) {
		store, _ := newServicesStore(t, providers.NewMemoryDatabase())
		existing, err := store.ConnectService(models.ConnectedService{Type: models.ServiceReddit})
		require.NoError(t, err)

		store.db = &failingDatabase{err: errors.New("connection refused")}

		fetchErr := store.FetchServices(context.Background(), uuid.NewString())
		require.Error(t, fetchErr)

		var ferr *FetchError
		require.ErrorAs(t, fetchErr, &ferr)
		assert.Equal(t, "failed to fetch connected services: connection refused", fetchErr.Error())
		assert.Equal(t, fetchErr.Error(), store.Err())

		services := store.Services()
		require.Len(t, services, 1)
		assert.Equal(t, existing.ID, services[0].ID)

		store.ClearError()
		assert.Empty(t, store.Err())
	})
}

func TestConnectService(t *testing.T) {
	store, _ := newServicesStore(t, providers.NewMemoryDatabase())

	t.Run("assigns id, connects, and stamps sync time", func(t *testing.T) {
		svc, err := store.ConnectService(models.ConnectedService{
			Type:     models.ServiceStocks,
			Name:     "Brokerage",
			Settings: datatypes.JSONMap{"symbols": []any{"AAPL"}},
		})
		require.NoError(t, err)

		_, parseErr := uuid.Parse(svc.ID)
		assert.NoError(t, parseErr)
		assert.True(t, svc.IsConnected)
		require.NotNil(t, svc.LastSynced)
		assert.WithinDuration(t, time.Now(), *svc.LastSynced, 5*time.Second)
		assert.Equal(t, "Brokerage", svc.Name)
	})

	t.Run("defaults the name from the catalog", func(t *testing.T) {
		svc, err := store.ConnectService(models.ConnectedService{Type: models.ServiceAppleHealth})
		require.NoError(t, err)
		assert.Equal(t, "Apple Health", svc.Name)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := store.ConnectService(models.ConnectedService{Type: "myspace"})
		assert.ErrorIs(t, err, ErrUnknownServiceType)
	})
}

func TestServiceUpdates(t *testing.T) {
	store, _ := newServicesStore(t, providers.NewMemoryDatabase())
	svc, err := store.ConnectService(models.ConnectedService{
		Type:     models.ServiceTwitter,
		Settings: datatypes.JSONMap{"handle": "@me", "muted": true},
	})
	require.NoError(t, err)

	t.Run("disconnect keeps the record", func(t *testing.T) {
		require.NoError(t, store.DisconnectService(svc.ID))
		services := store.Services()
		require.Len(t, services, 1)
		assert.False(t, services[0].IsConnected)
	})

	t.Run("partial update", func(t *testing.T) {
		name := "Personal Twitter"
		updated, err := store.UpdateService(svc.ID, models.ConnectedServiceUpdate{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Personal Twitter", updated.Name)
		assert.False(t, updated.IsConnected)
	})

	t.Run("settings merge by key and refresh the sync time", func(t *testing.T) {
		before := store.Services()[0].LastSynced

		updated, err := store.UpdateServiceSettings(svc.ID, map[string]any{"muted": false, "lists": []any{"tech"}})
		require.NoError(t, err)
		assert.Equal(t, "@me", updated.Settings["handle"])
		assert.Equal(t, false, updated.Settings["muted"])
		assert.Equal(t, []any{"tech"}, []any(updated.Settings["lists"].([]any)))
		require.NotNil(t, updated.LastSynced)
		assert.False(t, updated.LastSynced.Before(*before))
	})

	t.Run("unknown service", func(t *testing.T) {
		_, err := store.UpdateService("missing", models.ConnectedServiceUpdate{})
		assert.ErrorIs(t, err, ErrServiceNotFound)
		_, err = store.UpdateServiceSettings("missing", map[string]any{})
		assert.ErrorIs(t, err, ErrServiceNotFound)
		assert.ErrorIs(t, store.RemoveService("missing"), ErrServiceNotFound)
	})

	t.Run("remove deletes the record", func(t *testing.T) {
		require.NoError(t, store.RemoveService(svc.ID))
		assert.Empty(t, store.Services())
	})
}

func TestServicesStoreRehydrates(t *testing.T) {
	store, snapshots := newServicesStore(t, providers.NewMemoryDatabase())
	svc, err := store.ConnectService(models.ConnectedService{Type: models.ServiceNews})
	require.NoError(t, err)

	reloaded := NewServicesStore(snapshots, providers.NewMemoryDatabase(), catalog.Builtin())
	services := reloaded.Services()
	require.Len(t, services, 1)
	assert.Equal(t, svc.ID, services[0].ID)
	assert.Equal(t, models.ServiceNews, services[0].Type)
	assert.True(t, services[0].IsConnected)
}

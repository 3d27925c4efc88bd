package stores

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/homedash/homedash-backend/internal/catalog"
	"github.com/homedash/homedash-backend/internal/models"
	"github.com/homedash/homedash-backend/internal/providers"
	"github.com/homedash/homedash-backend/internal/storage"
	"gorm.io/datatypes"
)

// servicesState is the persisted snapshot shape. The loading flag and error
// message are transient and never persisted.
type servicesState struct {
	Services []models.ConnectedService `json:"services"`
}

// ServicesStore owns the connected-service records. It is the single source
// of truth; user settings reference these records rather than keeping a copy.
type ServicesStore struct {
	mu        sync.Mutex
	snapshots storage.Snapshots
	db        providers.Database
	catalog   *catalog.Catalog
	now       func() time.Time

	services  []models.ConnectedService
	isLoading bool
	lastError string
}

// NewServicesStore hydrates the store from its snapshot.
func NewServicesStore(snapshots storage.Snapshots, db providers.Database, cat *catalog.Catalog) *ServicesStore {
	s := &ServicesStore{
		snapshots: snapshots,
		db:        db,
		catalog:   cat,
		now:       time.Now,
		services:  []models.ConnectedService{},
	}

	if blob, err := snapshots.Get(storage.KeyServices); err == nil {
		var state servicesState
		if err := json.Unmarshal(blob, &state); err == nil {
			s.services = state.Services
		} else {
			slog.Warn("services snapshot unreadable, starting empty", "store", "services", "error", err)
		}
	}
	return s
}

func (s *ServicesStore) persist() {
	blob, err := json.Marshal(servicesState{Services: s.services})
	if err != nil {
		slog.Error("failed to marshal services state", "store", "services", "error", err)
		return
	}
	if err := s.snapshots.Put(storage.KeyServices, blob); err != nil {
		slog.Error("failed to persist services state", "store", "services", "error", err)
	}
}

// Services returns a copy of the connected-service records in order.
func (s *ServicesStore) Services() []models.ConnectedService {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ConnectedService, len(s.services))
	copy(out, s.services)
	return out
}

// IsLoading reports whether a fetch is in flight.
func (s *ServicesStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}

// Err returns the last recorded error message, empty when none.
func (s *ServicesStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// ClearError resets the recorded error message.
func (s *ServicesStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

// FetchServices reads the user's rows from the database provider and
// replaces the in-memory sequence wholesale. On failure the previous
// sequence is left untouched and the error message is recorded.
func (s *ServicesStore) FetchServices(ctx context.Context, userID string) error {
	s.mu.Lock()
	s.isLoading = true
	s.lastError = ""
	s.mu.Unlock()

	rows, err := s.db.ListServices(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false

	if err != nil {
		ferr := &FetchError{Err: err}
		s.lastError = ferr.Error()
		slog.Error("service fetch failed", "store", "services", "action", "fetch", "user_id", userID, "error", err)
		return ferr
	}

	services := make([]models.ConnectedService, len(rows))
	for i, row := range rows {
		services[i] = row.ToConnectedService()
	}
	s.services = services
	s.persist()
	return nil
}

// ConnectService synthesizes an id, marks the service connected, stamps
// LastSynced, and appends it. The write is purely local.
func (s *ServicesStore) ConnectService(service models.ConnectedService) (models.ConnectedService, error) {
	if !s.catalog.HasService(service.Type) {
		return models.ConnectedService{}, ErrUnknownServiceType
	}
	if service.Name == "" {
		service.Name = s.catalog.Service(service.Type).Name
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	service.ID = uuid.NewString()
	service.IsConnected = true
	service.LastSynced = &now

	next := make([]models.ConnectedService, 0, len(s.services)+1)
	next = append(next, s.services...)
	next = append(next, service)
	s.services = next

	s.persist()
	return service, nil
}

// DisconnectService marks the service disconnected without removing it.
func (s *ServicesStore) DisconnectService(serviceID string) error {
	connected := false
	_, err := s.UpdateService(serviceID, models.ConnectedServiceUpdate{IsConnected: &connected})
	return err
}

// RemoveService deletes the record entirely.
func (s *ServicesStore) RemoveService(serviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.ConnectedService, 0, len(s.services))
	found := false
	for _, svc := range s.services {
		if svc.ID == serviceID {
			found = true
			continue
		}
		next = append(next, svc)
	}
	if !found {
		return ErrServiceNotFound
	}

	s.services = next
	s.persist()
	return nil
}

// UpdateService merges the partial update into the matching record.
func (s *ServicesStore) UpdateService(serviceID string, update models.ConnectedServiceUpdate) (models.ConnectedService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.ConnectedService, len(s.services))
	var updated models.ConnectedService
	found := false
	for i, svc := range s.services {
		if svc.ID == serviceID {
			if update.Name != nil {
				svc.Name = *update.Name
			}
			if update.IsConnected != nil {
				svc.IsConnected = *update.IsConnected
			}
			if update.Settings != nil {
				svc.Settings = update.Settings
			}
			updated = svc
			found = true
		}
		next[i] = svc
	}
	if !found {
		return models.ConnectedService{}, ErrServiceNotFound
	}

	s.services = next
	s.persist()
	return updated, nil
}

// UpdateServiceSettings shallow-merges the given keys into the record's
// settings and refreshes LastSynced.
func (s *ServicesStore) UpdateServiceSettings(serviceID string, settings map[string]any) (models.ConnectedService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.ConnectedService, len(s.services))
	var updated models.ConnectedService
	found := false
	for i, svc := range s.services {
		if svc.ID == serviceID {
			merged := make(datatypes.JSONMap, len(svc.Settings)+len(settings))
			for k, v := range svc.Settings {
				merged[k] = v
			}
			for k, v := range settings {
				merged[k] = v
			}
			svc.Settings = merged
			now := s.now().UTC()
			svc.LastSynced = &now
			updated = svc
			found = true
		}
		next[i] = svc
	}
	if !found {
		return models.ConnectedService{}, ErrServiceNotFound
	}

	s.services = next
	s.persist()
	return updated, nil
}

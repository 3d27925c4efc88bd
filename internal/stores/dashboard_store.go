package stores

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/homedash/homedash-backend/internal/catalog"
	"github.com/homedash/homedash-backend/internal/models"
	"github.com/homedash/homedash-backend/internal/storage"
	"gorm.io/datatypes"
)

// dashboardState is the persisted snapshot shape. Connected services are
// owned by the services store and deliberately absent here.
type dashboardState struct {
	Dashboards        []models.Dashboard `json:"dashboards"`
	ActiveDashboardID string             `json:"activeDashboardId"`
	Theme             models.Theme       `json:"theme"`
	DefaultDashboard  string             `json:"defaultDashboard"`
	IsFirstLaunch     bool               `json:"isFirstLaunch"`
}

// DashboardStore owns the dashboards, the widgets nested within them, and
// the user settings. Connected-service operations delegate to the owning
// ServicesStore so there is a single source of truth for those records.
type DashboardStore struct {
	mu        sync.Mutex
	snapshots storage.Snapshots
	catalog   *catalog.Catalog
	services  *ServicesStore
	now       func() time.Time

	state dashboardState
}

// NewDashboardStore hydrates the store from its snapshot, or seeds the
// default dashboard on first launch.
func NewDashboardStore(snapshots storage.Snapshots, cat *catalog.Catalog, services *ServicesStore) *DashboardStore {
	s := &DashboardStore{
		snapshots: snapshots,
		catalog:   cat,
		services:  services,
		now:       time.Now,
	}

	if blob, err := snapshots.Get(storage.KeyDashboards); err == nil {
		var state dashboardState
		if err := json.Unmarshal(blob, &state); err == nil {
			if len(state.Dashboards) > 0 {
				s.state = state
				return s
			}
		} else {
			slog.Warn("dashboard snapshot unreadable, reseeding", "store", "dashboards", "error", err)
		}
	}

	def := models.DefaultDashboard()
	s.state = dashboardState{
		Dashboards:        []models.Dashboard{def},
		ActiveDashboardID: def.ID,
		Theme:             models.ThemeLight,
		DefaultDashboard:  def.ID,
		IsFirstLaunch:     true,
	}
	s.persist()
	return s
}

// persist writes the full snapshot. Callers hold the lock. A failed write is
// logged and never fails the action.
func (s *DashboardStore) persist() {
	blob, err := json.Marshal(s.state)
	if err != nil {
		slog.Error("failed to marshal dashboard state", "store", "dashboards", "error", err)
		return
	}
	if err := s.snapshots.Put(storage.KeyDashboards, blob); err != nil {
		slog.Error("failed to persist dashboard state", "store", "dashboards", "error", err)
	}
}

// Dashboards returns a copy of all dashboards in order.
func (s *DashboardStore) Dashboards() []models.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneDashboards(s.state.Dashboards)
}

// Dashboard returns the dashboard with the given id.
func (s *DashboardStore) Dashboard(id string) (models.Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.state.Dashboards {
		if d.ID == id {
			return cloneDashboard(d), nil
		}
	}
	return models.Dashboard{}, ErrDashboardNotFound
}

// ActiveDashboardID returns the currently selected dashboard id, which may
// be empty when no dashboard is selected.
func (s *DashboardStore) ActiveDashboardID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ActiveDashboardID
}

// IsFirstLaunch reports whether the first-launch flow has completed.
func (s *DashboardStore) IsFirstLaunch() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsFirstLaunch
}

// AddDashboard creates an empty dashboard and appends it.
func (s *DashboardStore) AddDashboard(name string) models.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := models.Dashboard{
		ID:      uuid.NewString(),
		Name:    name,
		Widgets: []models.Widget{},
	}
	next := make([]models.Dashboard, 0, len(s.state.Dashboards)+1)
	next = append(next, s.state.Dashboards...)
	next = append(next, d)
	s.state.Dashboards = next

	s.persist()
	return cloneDashboard(d)
}

// RemoveDashboard removes the dashboard. The last remaining dashboard cannot
// be removed. If the removed dashboard was active, the selection moves to
// the first remaining one.
func (s *DashboardStore) RemoveDashboard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.state.Dashboards) <= 1 {
		return ErrLastDashboard
	}

	next := make([]models.Dashboard, 0, len(s.state.Dashboards)-1)
	found := false
	for _, d := range s.state.Dashboards {
		if d.ID == id {
			found = true
			continue
		}
		next = append(next, d)
	}
	if !found {
		return ErrDashboardNotFound
	}

	s.state.Dashboards = next
	if s.state.ActiveDashboardID == id {
		if len(next) > 0 {
			s.state.ActiveDashboardID = next[0].ID
		} else {
			s.state.ActiveDashboardID = ""
		}
	}

	s.persist()
	return nil
}

// RenameDashboard replaces the dashboard's name.
func (s *DashboardStore) RenameDashboard(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Dashboard, len(s.state.Dashboards))
	found := false
	for i, d := range s.state.Dashboards {
		if d.ID == id {
			d.Name = name
			found = true
		}
		next[i] = d
	}
	if !found {
		return ErrDashboardNotFound
	}

	s.state.Dashboards = next
	s.persist()
	return nil
}

// SetActiveDashboard sets the current selection. The id is not validated
// against existing dashboards.
func (s *DashboardStore) SetActiveDashboard(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ActiveDashboardID = id
	s.persist()
}

// AddWidget appends a widget to the dashboard. The incoming widget's ID and
// Position are ignored: a fresh id is derived from the type and creation
// time, and the widget lands at the end of the sequence. Empty title, size,
// and settings fall back to the catalog defaults for the type.
func (s *DashboardStore) AddWidget(dashboardID string, w models.Widget) (models.Widget, error) {
	def := s.catalog.Widget(w.Type)
	if def == nil {
		return models.Widget{}, ErrUnknownWidgetType
	}
	if w.Title == "" {
		w.Title = def.DefaultTitle
	}
	if w.Size == "" {
		w.Size = def.DefaultSize
	}
	if w.Settings == nil && def.DefaultSettings != nil {
		w.Settings = datatypes.JSONMap(def.DefaultSettings)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(dashboardID)
	if idx < 0 {
		return models.Widget{}, ErrDashboardNotFound
	}

	w.ID = fmt.Sprintf("%s-%d", w.Type, s.now().UnixNano())
	w.Position = len(s.state.Dashboards[idx].Widgets)

	s.state.Dashboards = replaceDashboard(s.state.Dashboards, idx, func(d models.Dashboard) models.Dashboard {
		widgets := make([]models.Widget, 0, len(d.Widgets)+1)
		widgets = append(widgets, d.Widgets...)
		widgets = append(widgets, w)
		d.Widgets = widgets
		return d
	})

	s.persist()
	return w, nil
}

// UpdateWidget merges the partial update into the matching widget.
func (s *DashboardStore) UpdateWidget(dashboardID, widgetID string, update models.WidgetUpdate) (models.Widget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(dashboardID)
	if idx < 0 {
		return models.Widget{}, ErrDashboardNotFound
	}

	var updated models.Widget
	found := false
	s.state.Dashboards = replaceDashboard(s.state.Dashboards, idx, func(d models.Dashboard) models.Dashboard {
		widgets := make([]models.Widget, len(d.Widgets))
		for i, w := range d.Widgets {
			if w.ID == widgetID {
				if update.Type != nil {
					w.Type = *update.Type
				}
				if update.Title != nil {
					w.Title = *update.Title
				}
				if update.Position != nil {
					w.Position = *update.Position
				}
				if update.Size != nil {
					w.Size = *update.Size
				}
				if update.Settings != nil {
					w.Settings = update.Settings
				}
				updated = w
				found = true
			}
			widgets[i] = w
		}
		d.Widgets = widgets
		return d
	})

	if !found {
		return models.Widget{}, ErrWidgetNotFound
	}

	s.persist()
	return updated, nil
}

// RemoveWidget removes the widget and renumbers the remaining positions to a
// dense 0..n-1 sequence matching array order.
func (s *DashboardStore) RemoveWidget(dashboardID, widgetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(dashboardID)
	if idx < 0 {
		return ErrDashboardNotFound
	}

	found := false
	s.state.Dashboards = replaceDashboard(s.state.Dashboards, idx, func(d models.Dashboard) models.Dashboard {
		widgets := make([]models.Widget, 0, len(d.Widgets))
		for _, w := range d.Widgets {
			if w.ID == widgetID {
				found = true
				continue
			}
			w.Position = len(widgets)
			widgets = append(widgets, w)
		}
		d.Widgets = widgets
		return d
	})

	if !found {
		return ErrWidgetNotFound
	}

	s.persist()
	return nil
}

// ReorderWidgets rebuilds the dashboard's widget sequence per orderedIDs,
// assigning each widget the position of its index. IDs that do not match a
// widget are silently dropped, as are widgets absent from orderedIDs.
func (s *DashboardStore) ReorderWidgets(dashboardID string, orderedIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(dashboardID)
	if idx < 0 {
		return ErrDashboardNotFound
	}

	s.state.Dashboards = replaceDashboard(s.state.Dashboards, idx, func(d models.Dashboard) models.Dashboard {
		byID := make(map[string]models.Widget, len(d.Widgets))
		for _, w := range d.Widgets {
			byID[w.ID] = w
		}
		widgets := make([]models.Widget, 0, len(orderedIDs))
		for _, id := range orderedIDs {
			w, ok := byID[id]
			if !ok {
				continue
			}
			w.Position = len(widgets)
			widgets = append(widgets, w)
		}
		d.Widgets = widgets
		return d
	})

	s.persist()
	return nil
}

// UserSettings returns the current settings with connected services
// materialized from the owning services store.
func (s *DashboardStore) UserSettings() models.UserSettings {
	s.mu.Lock()
	theme := s.state.Theme
	def := s.state.DefaultDashboard
	s.mu.Unlock()

	return models.UserSettings{
		Theme:             theme,
		DefaultDashboard:  def,
		ConnectedServices: s.services.Services(),
	}
}

// UpdateUserSettings shallow-merges the partial update.
func (s *DashboardStore) UpdateUserSettings(update models.UserSettingsUpdate) models.UserSettings {
	s.mu.Lock()
	if update.Theme != nil {
		s.state.Theme = *update.Theme
	}
	if update.DefaultDashboard != nil {
		s.state.DefaultDashboard = *update.DefaultDashboard
	}
	s.persist()
	s.mu.Unlock()

	return s.UserSettings()
}

// SetFirstLaunchComplete clears the first-launch flag.
func (s *DashboardStore) SetFirstLaunchComplete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsFirstLaunch = false
	s.persist()
}

// AddConnectedService delegates to the owning services store.
func (s *DashboardStore) AddConnectedService(service models.ConnectedService) (models.ConnectedService, error) {
	return s.services.ConnectService(service)
}

// RemoveConnectedService delegates to the owning services store.
func (s *DashboardStore) RemoveConnectedService(serviceID string) error {
	return s.services.RemoveService(serviceID)
}

// UpdateConnectedService delegates to the owning services store.
func (s *DashboardStore) UpdateConnectedService(serviceID string, update models.ConnectedServiceUpdate) (models.ConnectedService, error) {
	return s.services.UpdateService(serviceID, update)
}

// indexOf returns the index of the dashboard, or -1. Callers hold the lock.
func (s *DashboardStore) indexOf(id string) int {
	for i, d := range s.state.Dashboards {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// replaceDashboard rebuilds the dashboard slice with the dashboard at idx
// replaced by fn's result, leaving the original slice untouched.
func replaceDashboard(dashboards []models.Dashboard, idx int, fn func(models.Dashboard) models.Dashboard) []models.Dashboard {
	next := make([]models.Dashboard, len(dashboards))
	copy(next, dashboards)
	next[idx] = fn(dashboards[idx])
	return next
}

func cloneDashboard(d models.Dashboard) models.Dashboard {
	widgets := make([]models.Widget, len(d.Widgets))
	copy(widgets, d.Widgets)
	d.Widgets = widgets
	return d
}

func cloneDashboards(dashboards []models.Dashboard) []models.Dashboard {
	next := make([]models.Dashboard, len(dashboards))
	for i, d := range dashboards {
		next[i] = cloneDashboard(d)
	}
	return next
}

package stores

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/homedash/homedash-backend/internal/catalog"
	"github.com/homedash/homedash-backend/internal/models"
	"github.com/homedash/homedash-backend/internal/providers"
	"github.com/homedash/homedash-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newDashboardStore(t *testing.T) (*DashboardStore, *storage.MemorySnapshots) {
	t.Helper()
	snapshots := storage.NewMemorySnapshots()
	cat := catalog.Builtin()
	services := NewServicesStore(snapshots, providers.NewMemoryDatabase(), cat)
	return NewDashboardStore(snapshots, cat, services), snapshots
}

func widgetIDs(d models.Dashboard) []string {
	ids := make([]string, len(d.Widgets))
	for i, w := range d.Widgets {
		ids[i] = w.ID
	}
	return ids
}

func TestNewDashboardStoreSeedsDefault(t *testing.T) {
	store, snapshots := newDashboardStore(t)

	dashboards := store.Dashboards()
	require.Len(t, dashboards, 1)
	assert.Equal(t, "default", dashboards[0].ID)
	assert.Equal(t, "My Dashboard", dashboards[0].Name)
	assert.Equal(t, "default", store.ActiveDashboardID())
	assert.True(t, store.IsFirstLaunch())

	require.Len(t, dashboards[0].Widgets, 4)
	for i, w := range dashboards[0].Widgets {
		assert.Equal(t, i, w.Position)
	}
	assert.Equal(t, []string{"clock-1", "weather-1", "news-1", "tasks-1"}, widgetIDs(dashboards[0]))

	// The seed is persisted immediately.
	blob, err := snapshots.Get(storage.KeyDashboards)
	require.NoError(t, err)
	var state dashboardState
	require.NoError(t, json.Unmarshal(blob, &state))
	assert.Len(t, state.Dashboards, 1)
	assert.Equal(t, "default", state.ActiveDashboardID)
	assert.True(t, state.IsFirstLaunch)
}

func TestAddDashboardIDsAreUnique(t *testing.T) {
	store, _ := newDashboardStore(t)

	// Even with the clock frozen, concurrent creations must not collide.
	store.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	first := store.AddDashboard("Work")
	second := store.AddDashboard("Home")
	require.NotEqual(t, first.ID, second.ID)

	require.NoError(t, store.RemoveDashboard(first.ID))

	dashboards := store.Dashboards()
	require.Len(t, dashboards, 2)
	assert.Equal(t, "default", dashboards[0].ID)
	assert.Equal(t, second.ID, dashboards[1].ID)
}

func TestNewDashboardStoreReseeds(t *testing.T) {
	t.Run("corrupt snapshot", func(t *testing.T) {
		snapshots := storage.NewMemorySnapshots()
		require.NoError(t, snapshots.Put(storage.KeyDashboards, []byte("{not json")))

		cat := catalog.Builtin()
		services := NewServicesStore(snapshots, providers.NewMemoryDatabase(), cat)
		store := NewDashboardStore(snapshots, cat, services)

		dashboards := store.Dashboards()
		require.Len(t, dashboards, 1)
		assert.Equal(t, "default", dashboards[0].ID)
		assert.True(t, store.IsFirstLaunch())

		// The reseed overwrites the corrupt blob.
		blob, err := snapshots.Get(storage.KeyDashboards)
		require.NoError(t, err)
		var state dashboardState
		require.NoError(t, json.Unmarshal(blob, &state))
		require.Len(t, state.Dashboards, 1)
	})

	t.Run("valid snapshot with no dashboards", func(t *testing.T) {
		snapshots := storage.NewMemorySnapshots()
		require.NoError(t, snapshots.Put(storage.KeyDashboards, []byte(`{"dashboards":[]}`)))

		cat := catalog.Builtin()
		services := NewServicesStore(snapshots, providers.NewMemoryDatabase(), cat)
		store := NewDashboardStore(snapshots, cat, services)

		dashboards := store.Dashboards()
		require.Len(t, dashboards, 1)
		assert.Equal(t, "default", dashboards[0].ID)
	})
}

func TestDashboardLifecycle(t *testing.T) {
	store, _ := newDashboardStore(t)

	t.Run("add appends an empty dashboard", func(t *testing.T) {
		d := store.AddDashboard("Work")
		assert.Equal(t, "Work", d.Name)
		assert.NotEmpty(t, d.ID)
		assert.Empty(t, d.Widgets)

		dashboards := store.Dashboards()
		require.Len(t, dashboards, 2)
		assert.Equal(t, d.ID, dashboards[1].ID)
		assert.Equal(t, "default", store.ActiveDashboardID())
	})

	t.Run("rename", func(t *testing.T) {
		require.NoError(t, store.RenameDashboard("default", "Home"))
		d, err := store.Dashboard("default")
		require.NoError(t, err)
		assert.Equal(t, "Home", d.Name)

		assert.ErrorIs(t, store.RenameDashboard("missing", "x"), ErrDashboardNotFound)
	})

	t.Run("removing the active dashboard moves the selection", func(t *testing.T) {
		store.SetActiveDashboard("default")
		require.NoError(t, store.RemoveDashboard("default"))

		dashboards := store.Dashboards()
		require.Len(t, dashboards, 1)
		assert.Equal(t, dashboards[0].ID, store.ActiveDashboardID())
	})

	t.Run("the last dashboard cannot be removed", func(t *testing.T) {
		dashboards := store.Dashboards()
		require.Len(t, dashboards, 1)
		assert.ErrorIs(t, store.RemoveDashboard(dashboards[0].ID), ErrLastDashboard)
		assert.Len(t, store.Dashboards(), 1)
	})

	t.Run("removing an unknown dashboard", func(t *testing.T) {
		store.AddDashboard("Spare")
		assert.ErrorIs(t, store.RemoveDashboard("missing"), ErrDashboardNotFound)
	})
}

func TestAddWidget(t *testing.T) {
	store, _ := newDashboardStore(t)

	t.Run("applies catalog defaults", func(t *testing.T) {
		w, err := store.AddWidget("default", models.Widget{Type: models.WidgetQuote})
		require.NoError(t, err)
		assert.Equal(t, "Quote", w.Title)
		assert.Equal(t, models.SizeSmall, w.Size)
		assert.Equal(t, 4, w.Position)
		assert.Regexp(t, `^quote-\d+$`, w.ID)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		w, err := store.AddWidget("default", models.Widget{
			Type:     models.WidgetNotes,
			Title:    "Scratchpad",
			Size:     models.SizeLarge,
			Settings: datatypes.JSONMap{"color": "yellow"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Scratchpad", w.Title)
		assert.Equal(t, models.SizeLarge, w.Size)
		assert.Equal(t, "yellow", w.Settings["color"])
		assert.Equal(t, 5, w.Position)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := store.AddWidget("default", models.Widget{Type: "teleporter"})
		assert.ErrorIs(t, err, ErrUnknownWidgetType)
	})

	t.Run("unknown dashboard", func(t *testing.T) {
		_, err := store.AddWidget("missing", models.Widget{Type: models.WidgetClock})
		assert.ErrorIs(t, err, ErrDashboardNotFound)
	})
}

func TestUpdateWidget(t *testing.T) {
	store, _ := newDashboardStore(t)

	t.Run("merges only the provided fields", func(t *testing.T) {
		title := "World Clock"
		size := models.SizeLarge
		w, err := store.UpdateWidget("default", "clock-1", models.WidgetUpdate{
			Title: &title,
			Size:  &size,
		})
		require.NoError(t, err)
		assert.Equal(t, "World Clock", w.Title)
		assert.Equal(t, models.SizeLarge, w.Size)
		assert.Equal(t, models.WidgetClock, w.Type)
		assert.Equal(t, 0, w.Position)
	})

	t.Run("settings replace wholesale", func(t *testing.T) {
		w, err := store.UpdateWidget("default", "weather-1", models.WidgetUpdate{
			Settings: datatypes.JSONMap{"location": "Berlin"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Berlin", w.Settings["location"])
		_, hasUnit := w.Settings["unit"]
		assert.False(t, hasUnit)
	})

	t.Run("unknown widget leaves the dashboard untouched", func(t *testing.T) {
		before, err := store.Dashboard("default")
		require.NoError(t, err)

		title := "nope"
		_, err = store.UpdateWidget("default", "missing", models.WidgetUpdate{Title: &title})
		assert.ErrorIs(t, err, ErrWidgetNotFound)

		after, err := store.Dashboard("default")
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestRemoveWidgetKeepsPositionsDense(t *testing.T) {
	store, _ := newDashboardStore(t)

	require.NoError(t, store.RemoveWidget("default", "weather-1"))

	d, err := store.Dashboard("default")
	require.NoError(t, err)
	require.Len(t, d.Widgets, 3)
	assert.Equal(t, []string{"clock-1", "news-1", "tasks-1"}, widgetIDs(d))
	for i, w := range d.Widgets {
		assert.Equal(t, i, w.Position)
	}

	assert.ErrorIs(t, store.RemoveWidget("default", "weather-1"), ErrWidgetNotFound)
}

func TestReorderWidgets(t *testing.T) {
	t.Run("permutation assigns positions by index", func(t *testing.T) {
		store, _ := newDashboardStore(t)

		order := []string{"tasks-1", "clock-1", "news-1", "weather-1"}
		require.NoError(t, store.ReorderWidgets("default", order))

		d, err := store.Dashboard("default")
		require.NoError(t, err)
		assert.Equal(t, order, widgetIDs(d))
		for i, w := range d.Widgets {
			assert.Equal(t, i, w.Position)
		}
	})

	t.Run("unknown ids and unlisted widgets are dropped", func(t *testing.T) {
		store, _ := newDashboardStore(t)

		require.NoError(t, store.ReorderWidgets("default", []string{"news-1", "ghost", "clock-1"}))

		d, err := store.Dashboard("default")
		require.NoError(t, err)
		assert.Equal(t, []string{"news-1", "clock-1"}, widgetIDs(d))
		assert.Equal(t, 0, d.Widgets[0].Position)
		assert.Equal(t, 1, d.Widgets[1].Position)
	})
}

func TestUserSettings(t *testing.T) {
	store, _ := newDashboardStore(t)

	settings := store.UserSettings()
	assert.Equal(t, models.ThemeLight, settings.Theme)
	assert.Equal(t, "default", settings.DefaultDashboard)
	assert.Empty(t, settings.ConnectedServices)

	t.Run("partial update", func(t *testing.T) {
		dark := models.ThemeDark
		updated := store.UpdateUserSettings(models.UserSettingsUpdate{Theme: &dark})
		assert.Equal(t, models.ThemeDark, updated.Theme)
		assert.Equal(t, "default", updated.DefaultDashboard)
	})

	t.Run("connected services come from the services store", func(t *testing.T) {
		svc, err := store.AddConnectedService(models.ConnectedService{Type: models.ServiceReddit})
		require.NoError(t, err)

		settings := store.UserSettings()
		require.Len(t, settings.ConnectedServices, 1)
		assert.Equal(t, svc.ID, settings.ConnectedServices[0].ID)

		require.NoError(t, store.RemoveConnectedService(svc.ID))
		assert.Empty(t, store.UserSettings().ConnectedServices)
	})

	t.Run("first launch completes once", func(t *testing.T) {
		require.True(t, store.IsFirstLaunch())
		store.SetFirstLaunchComplete()
		assert.False(t, store.IsFirstLaunch())
	})
}

func TestDashboardStoreRehydrates(t *testing.T) {
	store, snapshots := newDashboardStore(t)

	d := store.AddDashboard("Work")
	store.SetActiveDashboard(d.ID)
	store.SetFirstLaunchComplete()
	_, err := store.AddWidget(d.ID, models.Widget{Type: models.WidgetStocks})
	require.NoError(t, err)

	cat := catalog.Builtin()
	services := NewServicesStore(snapshots, providers.NewMemoryDatabase(), cat)
	reloaded := NewDashboardStore(snapshots, cat, services)

	assert.Equal(t, d.ID, reloaded.ActiveDashboardID())
	assert.False(t, reloaded.IsFirstLaunch())

	dashboards := reloaded.Dashboards()
	require.Len(t, dashboards, 2)
	require.Len(t, dashboards[1].Widgets, 1)
	assert.Equal(t, models.WidgetStocks, dashboards[1].Widgets[0].Type)
}

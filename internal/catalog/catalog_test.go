package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/homedash/homedash-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	c := Builtin()

	assert.Len(t, c.Widgets(), 14)
	assert.Len(t, c.Services(), 11)

	t.Run("widget defaults", func(t *testing.T) {
		def := c.Widget(models.WidgetWeather)
		require.NotNil(t, def)
		assert.Equal(t, "Weather", def.DefaultTitle)
		assert.Equal(t, models.SizeMedium, def.DefaultSize)
		assert.Equal(t, "celsius", def.DefaultSettings["unit"])
	})

	t.Run("listings are sorted by type", func(t *testing.T) {
		widgets := c.Widgets()
		for i := 1; i < len(widgets); i++ {
			assert.Less(t, string(widgets[i-1].Type), string(widgets[i].Type))
		}
		services := c.Services()
		for i := 1; i < len(services); i++ {
			assert.Less(t, string(services[i-1].Type), string(services[i].Type))
		}
	})

	t.Run("lookups", func(t *testing.T) {
		assert.True(t, c.HasWidget(models.WidgetClock))
		assert.False(t, c.HasWidget("teleporter"))
		assert.True(t, c.HasService(models.ServiceGmail))
		assert.False(t, c.HasService("myspace"))
		assert.Nil(t, c.Widget("teleporter"))
		assert.Nil(t, c.Service("myspace"))
	})
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns the builtin catalog", func(t *testing.T) {
		c, err := Load("")
		require.NoError(t, err)
		assert.Len(t, c.Widgets(), 14)
	})

	t.Run("file extends and overrides the builtin catalog", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		payload := `{
			"widgets": [
				{"type": "countdown", "name": "Countdown", "default_title": "Countdown", "default_size": "small"},
				{"type": "clock", "name": "Clock", "default_title": "World Clock", "default_size": "medium"}
			],
			"services": [
				{"type": "mastodon", "name": "Mastodon"}
			]
		}`
		require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

		c, err := Load(path)
		require.NoError(t, err)

		assert.True(t, c.HasWidget("countdown"))
		assert.True(t, c.HasService("mastodon"))

		clock := c.Widget(models.WidgetClock)
		require.NotNil(t, clock)
		assert.Equal(t, "World Clock", clock.DefaultTitle)
		assert.Equal(t, models.SizeMedium, clock.DefaultSize)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

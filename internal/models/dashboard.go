package models

import "gorm.io/datatypes"

// WidgetType identifies one of the known widget kinds.
type WidgetType string

const (
	WidgetWeather    WidgetType = "weather"
	WidgetTasks      WidgetType = "tasks"
	WidgetNotes      WidgetType = "notes"
	WidgetCalendar   WidgetType = "calendar"
	WidgetClock      WidgetType = "clock"
	WidgetQuote      WidgetType = "quote"
	WidgetLinks      WidgetType = "links"
	WidgetNews       WidgetType = "news"
	WidgetNewsSearch WidgetType = "news-search"
	WidgetSocial     WidgetType = "social"
	WidgetReddit     WidgetType = "reddit"
	WidgetHealth     WidgetType = "health"
	WidgetStocks     WidgetType = "stocks"
	WidgetEmail      WidgetType = "email"
)

// WidgetSize is the display size of a widget on a dashboard.
type WidgetSize string

const (
	SizeSmall  WidgetSize = "small"
	SizeMedium WidgetSize = "medium"
	SizeLarge  WidgetSize = "large"
)

// Theme is the UI color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Widget is a configurable unit placed on a dashboard. Position is the
// zero-based display order within its dashboard and stays dense (0..n-1)
// across additions and removals.
type Widget struct {
	ID       string            `json:"id"`
	Type     WidgetType        `json:"type"`
	Title    string            `json:"title"`
	Position int               `json:"position"`
	Size     WidgetSize        `json:"size"`
	Settings datatypes.JSONMap `json:"settings,omitempty"`
}

// WidgetUpdate is a partial widget update. Nil fields are left untouched.
// Settings replaces the widget's settings wholesale; callers merge keys
// before submitting.
type WidgetUpdate struct {
	Type     *WidgetType       `json:"type,omitempty"`
	Title    *string           `json:"title,omitempty"`
	Position *int              `json:"position,omitempty"`
	Size     *WidgetSize       `json:"size,omitempty"`
	Settings datatypes.JSONMap `json:"settings,omitempty"`
}

// Dashboard is a named, ordered collection of widgets.
type Dashboard struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Widgets []Widget `json:"widgets"`
}

// UserSettings holds per-user preferences. ConnectedServices is materialized
// from the services store; it is never the owning copy.
type UserSettings struct {
	Theme             Theme              `json:"theme"`
	DefaultDashboard  string             `json:"defaultDashboard"`
	ConnectedServices []ConnectedService `json:"connectedServices"`
}

// UserSettingsUpdate is a partial settings update. Nil fields are left untouched.
type UserSettingsUpdate struct {
	Theme            *Theme  `json:"theme,omitempty"`
	DefaultDashboard *string `json:"defaultDashboard,omitempty"`
}

// DefaultDashboard returns the dashboard seeded on first launch.
func DefaultDashboard() Dashboard {
	return Dashboard{
		ID:   "default",
		Name: "My Dashboard",
		Widgets: []Widget{
			{
				ID:       "clock-1",
				Type:     WidgetClock,
				Title:    "Clock",
				Position: 0,
				Size:     SizeSmall,
			},
			{
				ID:       "weather-1",
				Type:     WidgetWeather,
				Title:    "Weather",
				Position: 1,
				Size:     SizeMedium,
				Settings: datatypes.JSONMap{
					"location": "auto",
					"unit":     "celsius",
				},
			},
			{
				ID:       "news-1",
				Type:     WidgetNews,
				Title:    "Latest News",
				Position: 2,
				Size:     SizeLarge,
				Settings: datatypes.JSONMap{
					"sources":         []any{"bbc-news", "cnn", "the-verge"},
					"categories":      []any{"technology", "business"},
					"refreshInterval": 30,
				},
			},
			{
				ID:       "tasks-1",
				Type:     WidgetTasks,
				Title:    "Tasks",
				Position: 3,
				Size:     SizeMedium,
			},
		},
	}
}

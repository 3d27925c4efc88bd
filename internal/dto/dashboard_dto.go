package dto

import "github.com/homedash/homedash-backend/internal/models"

type CreateDashboardRequest struct {
	Name string `json:"name"`
}

type RenameDashboardRequest struct {
	Name string `json:"name"`
}

type SetActiveDashboardRequest struct {
	ID string `json:"id"`
}

type AddWidgetRequest struct {
	Type     models.WidgetType `json:"type"`
	Title    string            `json:"title,omitempty"`
	Size     models.WidgetSize `json:"size,omitempty"`
	Settings map[string]any    `json:"settings,omitempty"`
}

type ReorderWidgetsRequest struct {
	WidgetIDs []string `json:"widget_ids"`
}

type DashboardsResponse struct {
	Dashboards        []models.Dashboard `json:"dashboards"`
	ActiveDashboardID string             `json:"activeDashboardId"`
	IsFirstLaunch     bool               `json:"isFirstLaunch"`
}

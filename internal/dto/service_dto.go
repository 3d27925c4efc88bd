package dto

import "github.com/homedash/homedash-backend/internal/models"

type ConnectServiceRequest struct {
	Type     models.ServiceType `json:"type"`
	Name     string             `json:"name,omitempty"`
	Settings map[string]any     `json:"settings,omitempty"`
}

type UpdateServiceSettingsRequest struct {
	Settings map[string]any `json:"settings"`
}

type ServicesResponse struct {
	Services  []models.ConnectedService `json:"services"`
	IsLoading bool                      `json:"isLoading"`
	Error     string                    `json:"error,omitempty"`
}

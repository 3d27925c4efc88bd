package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ServiceType identifies one of the known third-party service kinds.
type ServiceType string

const (
	ServiceNews        ServiceType = "news"
	ServiceTwitter     ServiceType = "twitter"
	ServiceFacebook    ServiceType = "facebook"
	ServiceInstagram   ServiceType = "instagram"
	ServiceReddit      ServiceType = "reddit"
	ServiceFitbit      ServiceType = "fitbit"
	ServiceAppleHealth ServiceType = "apple_health"
	ServiceGoogleFit   ServiceType = "google_fit"
	ServiceStocks      ServiceType = "stocks"
	ServiceGmail       ServiceType = "gmail"
	ServiceOutlook     ServiceType = "outlook"
)

// ConnectedService is a linked third-party data source as exposed to clients.
type ConnectedService struct {
	ID          string            `json:"id"`
	Type        ServiceType       `json:"type"`
	Name        string            `json:"name"`
	IsConnected bool              `json:"isConnected"`
	LastSynced  *time.Time        `json:"lastSynced,omitempty"`
	Settings    datatypes.JSONMap `json:"settings,omitempty"`
}

// ConnectedServiceUpdate is a partial connected-service update.
// Nil fields are left untouched.
type ConnectedServiceUpdate struct {
	Name        *string           `json:"name,omitempty"`
	IsConnected *bool             `json:"isConnected,omitempty"`
	Settings    datatypes.JSONMap `json:"settings,omitempty"`
}

// ConnectedServiceRow is the connected_services table as the database
// provider returns it. Field names follow the provider's snake_case wire
// shape; the services store maps rows into ConnectedService.
type ConnectedServiceRow struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Type        string            `gorm:"size:50;not null" json:"type"`
	Name        string            `gorm:"size:255;not null" json:"name"`
	IsConnected bool              `gorm:"default:true" json:"is_connected"`
	LastSynced  *time.Time        `json:"last_synced"`
	Settings    datatypes.JSONMap `gorm:"type:jsonb" json:"settings"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// TableName specifies the table name for ConnectedServiceRow.
func (ConnectedServiceRow) TableName() string {
	return "connected_services"
}

// ToConnectedService maps the provider row into the public shape.
func (r ConnectedServiceRow) ToConnectedService() ConnectedService {
	return ConnectedService{
		ID:          r.ID.String(),
		Type:        ServiceType(r.Type),
		Name:        r.Name,
		IsConnected: r.IsConnected,
		LastSynced:  r.LastSynced,
		Settings:    r.Settings,
	}
}

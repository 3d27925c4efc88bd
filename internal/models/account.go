package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is the identity provider's account record.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Session is the identity provider's server-side session. The current
// session is the most recent unrevoked row; an expired session leaves the
// app anonymous on the next load.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Revoked   bool      `gorm:"default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// ProfileRow is the profiles table as the database provider returns it.
// Field names follow the provider's snake_case wire shape.
type ProfileRow struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Email       string            `gorm:"not null;size:255" json:"email"`
	Name        string            `gorm:"size:255" json:"name"`
	AvatarURL   *string           `gorm:"size:500" json:"avatar_url"`
	Preferences datatypes.JSONMap `gorm:"type:jsonb" json:"preferences"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// TableName specifies the table name for ProfileRow.
func (ProfileRow) TableName() string {
	return "profiles"
}

// ToUserProfile maps the provider row into the public shape. LastLogin is
// stamped by the caller; the row does not carry it.
func (r ProfileRow) ToUserProfile() UserProfile {
	profile := UserProfile{
		ID:          r.UserID.String(),
		Email:       r.Email,
		Name:        r.Name,
		CreatedAt:   r.CreatedAt,
		LastLogin:   time.Now().UTC(),
		Preferences: DefaultPreferences(),
	}
	if r.AvatarURL != nil {
		profile.Avatar = *r.AvatarURL
	}
	if len(r.Preferences) > 0 {
		if v, ok := r.Preferences["notifications"].(bool); ok {
			profile.Preferences.Notifications = v
		}
		if v, ok := r.Preferences["emailUpdates"].(bool); ok {
			profile.Preferences.EmailUpdates = v
		}
	}
	return profile
}

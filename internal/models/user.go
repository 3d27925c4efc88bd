package models

import "time"

// Preferences are the notification toggles on a user profile.
type Preferences struct {
	Notifications bool `json:"notifications"`
	EmailUpdates  bool `json:"emailUpdates"`
}

// UserProfile is the single signed-in user's profile as exposed to clients.
// It is replaced wholesale on sign-in and sign-out.
type UserProfile struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name,omitempty"`
	Avatar      string      `json:"avatar,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	LastLogin   time.Time   `json:"lastLogin"`
	Preferences Preferences `json:"preferences"`
}

// DefaultPreferences are applied when a profile is synthesized on first sign-in.
func DefaultPreferences() Preferences {
	return Preferences{Notifications: true, EmailUpdates: false}
}

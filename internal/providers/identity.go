package providers

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Account is the identity provider's view of the signed-in user.
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthSession is the current server-side session, if any.
type AuthSession struct {
	Account   Account   `json:"account"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Identity is the auth provider the auth store drives. GetUser and
// GetSession return nil with no error when there is no current user or no
// valid session.
type Identity interface {
	SignUp(ctx context.Context, email, password string) (*Account, error)
	SignIn(ctx context.Context, email, password string) (*Account, error)
	SignOut(ctx context.Context) error
	GetUser(ctx context.Context) (*Account, error)
	GetSession(ctx context.Context) (*AuthSession, error)
}

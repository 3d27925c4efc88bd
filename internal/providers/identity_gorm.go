package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/homedash/homedash-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// GormIdentity backs the identity provider with the users and sessions
// tables. The app is single-user from the client's point of view, so the
// current session is simply the most recent unrevoked row.
type GormIdentity struct {
	db            *gorm.DB
	sessionExpiry time.Duration
}

func NewGormIdentity(db *gorm.DB, sessionExpiry time.Duration) *GormIdentity {
	return &GormIdentity{db: db, sessionExpiry: sessionExpiry}
}

func (p *GormIdentity) SignUp(ctx context.Context, email, password string) (*Account, error) {
	if len(email) == 0 || len(password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	var existing models.User
	if err := p.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{Email: email, Password: string(hash)}
	if err := p.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := p.openSession(ctx, user); err != nil {
		return nil, err
	}

	return &Account{ID: user.ID.String(), Email: user.Email, CreatedAt: user.CreatedAt}, nil
}

func (p *GormIdentity) SignIn(ctx context.Context, email, password string) (*Account, error) {
	var user models.User
	if err := p.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := p.openSession(ctx, user); err != nil {
		return nil, err
	}

	return &Account{ID: user.ID.String(), Email: user.Email, CreatedAt: user.CreatedAt}, nil
}

func (p *GormIdentity) SignOut(ctx context.Context) error {
	return p.db.WithContext(ctx).Model(&models.Session{}).
		Where("revoked = false").
		Update("revoked", true).Error
}

func (p *GormIdentity) GetUser(ctx context.Context) (*Account, error) {
	session, err := p.GetSession(ctx)
	if err != nil || session == nil {
		return nil, err
	}
	return &session.Account, nil
}

func (p *GormIdentity) GetSession(ctx context.Context) (*AuthSession, error) {
	var session models.Session
	err := p.db.WithContext(ctx).
		Where("revoked = false").
		Order("created_at DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	if session.Expired() {
		p.db.WithContext(ctx).Model(&session).Update("revoked", true)
		return nil, nil
	}

	var user models.User
	if err := p.db.WithContext(ctx).First(&user, "id = ?", session.UserID).Error; err != nil {
		return nil, fmt.Errorf("session user not found: %w", err)
	}

	return &AuthSession{
		Account:   Account{ID: user.ID.String(), Email: user.Email, CreatedAt: user.CreatedAt},
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// openSession revokes any current session and opens a fresh one.
func (p *GormIdentity) openSession(ctx context.Context, user models.User) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Session{}).
			Where("revoked = false").
			Update("revoked", true).Error; err != nil {
			return err
		}
		session := models.Session{
			UserID:    user.ID,
			ExpiresAt: time.Now().Add(p.sessionExpiry),
		}
		if err := tx.Create(&session).Error; err != nil {
			return fmt.Errorf("failed to open session: %w", err)
		}
		return nil
	})
}

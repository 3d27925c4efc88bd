package stores

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/homedash/homedash-backend/internal/config"
	"github.com/homedash/homedash-backend/internal/models"
	"github.com/homedash/homedash-backend/internal/providers"
	"github.com/homedash/homedash-backend/internal/storage"
)

// authState is the persisted snapshot shape. Only the authenticated flag and
// the profile survive restarts; loading and error state are transient.
type authState struct {
	IsAuthenticated bool                `json:"isAuthenticated"`
	User            *models.UserProfile `json:"user"`
}

// AuthStore tracks the single signed-in user's session lifecycle:
// anonymous -> authenticated on sign-up/sign-in, back to anonymous on
// sign-out or session expiry.
type AuthStore struct {
	mu        sync.Mutex
	snapshots storage.Snapshots
	identity  providers.Identity
	db        providers.Database
	cfg       *config.Config
	now       func() time.Time

	isAuthenticated bool
	user            *models.UserProfile
	isLoading       bool
	lastError       string
}

// NewAuthStore hydrates the store from its snapshot.
func NewAuthStore(snapshots storage.Snapshots, identity providers.Identity, db providers.Database, cfg *config.Config) *AuthStore {
	s := &AuthStore{
		snapshots: snapshots,
		identity:  identity,
		db:        db,
		cfg:       cfg,
		now:       time.Now,
	}

	if blob, err := snapshots.Get(storage.KeyAuth); err == nil {
		var state authState
		if err := json.Unmarshal(blob, &state); err == nil {
			s.isAuthenticated = state.IsAuthenticated
			s.user = state.User
		} else {
			slog.Warn("auth snapshot unreadable, starting anonymous", "store", "auth", "error", err)
		}
	}
	return s
}

func (s *AuthStore) persist() {
	blob, err := json.Marshal(authState{IsAuthenticated: s.isAuthenticated, User: s.user})
	if err != nil {
		slog.Error("failed to marshal auth state", "store", "auth", "error", err)
		return
	}
	if err := s.snapshots.Put(storage.KeyAuth, blob); err != nil {
		slog.Error("failed to persist auth state", "store", "auth", "error", err)
	}
}

// IsAuthenticated reports whether a user is signed in.
func (s *AuthStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isAuthenticated
}

// User returns a copy of the signed-in profile, or nil when anonymous.
func (s *AuthStore) User() *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// IsLoading reports whether a provider call is in flight.
func (s *AuthStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}

// Err returns the last recorded error message, empty when none.
func (s *AuthStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// ClearError resets the recorded error message.
func (s *AuthStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

// SignUp creates an account and signs in with a freshly built profile.
func (s *AuthStore) SignUp(ctx context.Context, email, password string) error {
	s.setLoading()

	account, err := s.identity.SignUp(ctx, email, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false

	if err != nil {
		return s.recordAuthError("sign up", err)
	}

	now := s.now().UTC()
	s.user = &models.UserProfile{
		ID:          account.ID,
		Email:       account.Email,
		CreatedAt:   now,
		LastLogin:   now,
		Preferences: models.DefaultPreferences(),
	}
	s.isAuthenticated = true
	s.persist()
	return nil
}

// SignIn authenticates and loads the user's profile, synthesizing a default
// one when no profile record exists.
func (s *AuthStore) SignIn(ctx context.Context, email, password string) error {
	s.setLoading()

	account, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.isLoading = false
		return s.recordAuthError("sign in", err)
	}

	profile := s.profileFor(ctx, account)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false
	s.user = &profile
	s.isAuthenticated = true
	s.persist()
	return nil
}

// SignOut ends the session. On provider failure the state is left
// authenticated; there is no forced local logout.
func (s *AuthStore) SignOut(ctx context.Context) error {
	s.setLoading()

	err := s.identity.SignOut(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false

	if err != nil {
		return s.recordAuthError("sign out", err)
	}

	s.isAuthenticated = false
	s.user = nil
	s.persist()
	return nil
}

// LoadUser inspects the persisted session at startup. An expired or absent
// session returns the store to anonymous; a valid one populates the profile
// and marks the store authenticated.
func (s *AuthStore) LoadUser(ctx context.Context) error {
	s.setLoading()

	session, err := s.identity.GetSession(ctx)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.isLoading = false
		return s.recordAuthError("load user", err)
	}

	if session == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.isLoading = false
		s.isAuthenticated = false
		s.user = nil
		s.persist()
		return nil
	}

	profile := s.profileFor(ctx, &session.Account)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false
	s.user = &profile
	s.isAuthenticated = true
	s.persist()
	return nil
}

// IssueToken mints a signed access token for the current user so the HTTP
// surface can gate protected routes.
func (s *AuthStore) IssueToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isAuthenticated || s.user == nil {
		return "", ErrNotAuthenticated
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub":   s.user.ID,
		"email": s.user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.JWTAccessExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// profileFor loads the account's profile row, falling back to a synthesized
// default profile when none exists or the read fails.
func (s *AuthStore) profileFor(ctx context.Context, account *providers.Account) models.UserProfile {
	row, err := s.db.ProfileByUser(ctx, account.ID)
	if err != nil {
		slog.Error("profile load failed, synthesizing default", "store", "auth", "user_id", account.ID, "error", err)
	}
	if row != nil {
		profile := row.ToUserProfile()
		profile.LastLogin = s.now().UTC()
		return profile
	}

	createdAt := account.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now().UTC()
	}
	return models.UserProfile{
		ID:          account.ID,
		Email:       account.Email,
		CreatedAt:   createdAt,
		LastLogin:   s.now().UTC(),
		Preferences: models.DefaultPreferences(),
	}
}

func (s *AuthStore) setLoading() {
	s.mu.Lock()
	s.isLoading = true
	s.lastError = ""
	s.mu.Unlock()
}

// recordAuthError stores the message and returns the wrapped error.
// Callers hold the lock.
func (s *AuthStore) recordAuthError(op string, err error) error {
	aerr := &AuthError{Op: op, Err: err}
	s.lastError = aerr.Error()
	slog.Error("auth provider call failed", "store", "auth", "action", op, "error", err)
	return aerr
}

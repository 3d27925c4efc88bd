package stores

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/homedash/homedash-backend/internal/config"
	"github.com/homedash/homedash-backend/internal/models"
	"github.com/homedash/homedash-backend/internal/providers"
	"github.com/homedash/homedash-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// failingIdentity fails every provider call.
type failingIdentity struct {
	err error
}

func (p *failingIdentity) SignUp(context.Context, string, string) (*providers.Account, error) {
	return nil, p.err
}

func (p *failingIdentity) SignIn(context.Context, string, string) (*providers.Account, error) {
	return nil, p.err
}

func (p *failingIdentity) SignOut(context.Context) error { return p.err }

func (p *failingIdentity) GetUser(context.Context) (*providers.Account, error) {
	return nil, p.err
}

func (p *failingIdentity) GetSession(context.Context) (*providers.AuthSession, error) {
	return nil, p.err
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		JWTAccessExpiry: 15 * time.Minute,
		SessionExpiry:   168 * time.Hour,
	}
}

func newAuthStore(t *testing.T, identity providers.Identity, db providers.Database) (*AuthStore, *storage.MemorySnapshots) {
	t.Helper()
	snapshots := storage.NewMemorySnapshots()
	return NewAuthStore(snapshots, identity, db, testConfig()), snapshots
}

func TestSignUp(t *testing.T) {
	store, _ := newAuthStore(t, providers.NewMemoryIdentity(0, time.Hour), providers.NewMemoryDatabase())

	require.NoError(t, store.SignUp(context.Background(), "new@example.com", "secret"))

	assert.True(t, store.IsAuthenticated())
	user := store.User()
	require.NotNil(t, user)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Regexp(t, `^user_\d+$`, user.ID)
	assert.Equal(t, models.DefaultPreferences(), user.Preferences)
	assert.False(t, store.IsLoading())
}

func TestSignIn(t *testing.T) {
	t.Run("without a profile row a default profile is synthesized", func(t *testing.T) {
		store, _ := newAuthStore(t, providers.NewMemoryIdentity(0, time.Hour), providers.NewMemoryDatabase())

		require.NoError(t, store.SignIn(context.Background(), "demo@example.com", "whatever"))

		assert.True(t, store.IsAuthenticated())
		user := store.User()
		require.NotNil(t, user)
		assert.Equal(t, "demo@example.com", user.Email)
		assert.True(t, user.CreatedAt.Before(user.LastLogin))
		assert.Equal(t, models.DefaultPreferences(), user.Preferences)
	})

	t.Run("provider failure records the error and stays anonymous", func(t *testing.T) {
		store, _ := newAuthStore(t, &failingIdentity{err: providers.ErrInvalidCredentials}, providers.NewMemoryDatabase())

		err := store.SignIn(context.Background(), "demo@example.com", "wrong")
		require.Error(t, err)
		assert.ErrorIs(t, err, providers.ErrInvalidCredentials)

		var aerr *AuthError
		require.ErrorAs(t, err, &aerr)
		assert.Equal(t, "sign in", aerr.Op)
		assert.Equal(t, err.Error(), store.Err())
		assert.False(t, store.IsAuthenticated())
	})
}

// fixedIdentity always signs in the same account.
type fixedIdentity struct {
	account providers.Account
}

func (p *fixedIdentity) SignUp(context.Context, string, string) (*providers.Account, error) {
	account := p.account
	return &account, nil
}

func (p *fixedIdentity) SignIn(context.Context, string, string) (*providers.Account, error) {
	account := p.account
	return &account, nil
}

func (p *fixedIdentity) SignOut(context.Context) error { return nil }

func (p *fixedIdentity) GetUser(context.Context) (*providers.Account, error) {
	account := p.account
	return &account, nil
}

func (p *fixedIdentity) GetSession(context.Context) (*providers.AuthSession, error) {
	return &providers.AuthSession{Account: p.account, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func TestSignInLoadsProfileRow(t *testing.T) {
	userID := uuid.New()
	identity := &fixedIdentity{account: providers.Account{
		ID:        userID.String(),
		Email:     "pro@example.com",
		CreatedAt: time.Now().AddDate(0, -6, 0),
	}}
	db := providers.NewMemoryDatabase()
	avatar := "https://cdn.example.com/a.png"
	db.SeedProfile(userID.String(), models.ProfileRow{
		ID:          uuid.New(),
		UserID:      userID,
		Email:       "pro@example.com",
		Name:        "Pro User",
		AvatarURL:   &avatar,
		Preferences: datatypes.JSONMap{"notifications": false, "emailUpdates": true},
	})

	store, _ := newAuthStore(t, identity, db)
	require.NoError(t, store.SignIn(context.Background(), "pro@example.com", "x"))

	user := store.User()
	require.NotNil(t, user)
	assert.Equal(t, userID.String(), user.ID)
	assert.Equal(t, "Pro User", user.Name)
	assert.Equal(t, avatar, user.Avatar)
	assert.False(t, user.Preferences.Notifications)
	assert.True(t, user.Preferences.EmailUpdates)
}

func TestSignOut(t *testing.T) {
	t.Run("returns to anonymous", func(t *testing.T) {
		store, _ := newAuthStore(t, providers.NewMemoryIdentity(0, time.Hour), providers.NewMemoryDatabase())
		require.NoError(t, store.SignIn(context.Background(), "demo@example.com", "x"))

		require.NoError(t, store.SignOut(context.Background()))
		assert.False(t, store.IsAuthenticated())
		assert.Nil(t, store.User())
	})

	t.Run("provider failure leaves the session authenticated", func(t *testing.T) {
		identity := providers.NewMemoryIdentity(0, time.Hour)
		store, _ := newAuthStore(t, identity, providers.NewMemoryDatabase())
		require.NoError(t, store.SignIn(context.Background(), "demo@example.com", "x"))

		store.identity = &failingIdentity{err: errors.New("gateway timeout")}

		err := store.SignOut(context.Background())
		require.Error(t, err)
		assert.True(t, store.IsAuthenticated())
		assert.NotNil(t, store.User())
		assert.Equal(t, "sign out failed: gateway timeout", store.Err())
	})
}

func TestLoadUser(t *testing.T) {
	t.Run("a valid session authenticates", func(t *testing.T) {
		identity := providers.NewMemoryIdentity(0, time.Hour)
		_, err := identity.SignIn(context.Background(), "demo@example.com", "x")
		require.NoError(t, err)

		store, _ := newAuthStore(t, identity, providers.NewMemoryDatabase())
		require.NoError(t, store.LoadUser(context.Background()))
		assert.True(t, store.IsAuthenticated())
		require.NotNil(t, store.User())
		assert.Equal(t, "demo@example.com", store.User().Email)
	})

	t.Run("an expired session drops to anonymous", func(t *testing.T) {
		identity := providers.NewMemoryIdentity(0, -time.Minute)
		_, err := identity.SignIn(context.Background(), "demo@example.com", "x")
		require.NoError(t, err)

		store, _ := newAuthStore(t, identity, providers.NewMemoryDatabase())
		require.NoError(t, store.SignIn(context.Background(), "demo@example.com", "x"))
		require.True(t, store.IsAuthenticated())

		require.NoError(t, store.LoadUser(context.Background()))
		assert.False(t, store.IsAuthenticated())
		assert.Nil(t, store.User())
	})

	t.Run("a provider failure is recorded", func(t *testing.T) {
		store, _ := newAuthStore(t, &failingIdentity{err: errors.New("unreachable")}, providers.NewMemoryDatabase())

		err := store.LoadUser(context.Background())
		require.Error(t, err)
		assert.Equal(t, "load user failed: unreachable", store.Err())
	})
}

func TestAuthStoreRehydrates(t *testing.T) {
	identity := providers.NewMemoryIdentity(0, time.Hour)
	db := providers.NewMemoryDatabase()
	store, snapshots := newAuthStore(t, identity, db)
	require.NoError(t, store.SignIn(context.Background(), "demo@example.com", "x"))

	reloaded := NewAuthStore(snapshots, identity, db, testConfig())
	assert.True(t, reloaded.IsAuthenticated())
	require.NotNil(t, reloaded.User())
	assert.Equal(t, "demo@example.com", reloaded.User().Email)

	// Transient flags are never persisted.
	assert.False(t, reloaded.IsLoading())
	assert.Empty(t, reloaded.Err())
}

func TestIssueToken(t *testing.T) {
	store, _ := newAuthStore(t, providers.NewMemoryIdentity(0, time.Hour), providers.NewMemoryDatabase())

	t.Run("anonymous", func(t *testing.T) {
		_, err := store.IssueToken()
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("signed in", func(t *testing.T) {
		require.NoError(t, store.SignIn(context.Background(), "demo@example.com", "x"))

		signed, err := store.IssueToken()
		require.NoError(t, err)

		token, err := jwt.Parse(signed, func(*jwt.Token) (any, error) {
			return []byte("test-secret"), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		require.NoError(t, err)
		require.True(t, token.Valid)

		claims, ok := token.Claims.(jwt.MapClaims)
		require.True(t, ok)
		assert.Equal(t, store.User().ID, claims["sub"])
		assert.Equal(t, "demo@example.com", claims["email"])

		exp, err := claims.GetExpirationTime()
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp.Time, time.Minute)
	})
}

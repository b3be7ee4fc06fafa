package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askbm-backend/models"
	"askbm-backend/store"
)

const adminEmail = "owner@example.com"

func newTestSessions(t *testing.T) (*store.SessionStore, *store.Store) {
	t.Helper()
	s, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return store.NewSessionStore(s, adminEmail), s
}

func TestSessionStore_LoginSetsIdentity(t *testing.T) {
	sessions, _ := newTestSessions(t)

	assert.False(t, sessions.IsAuthenticated())

	require.NoError(t, sessions.Login("user@example.com"))
	assert.True(t, sessions.IsAuthenticated())
	assert.False(t, sessions.IsAdmin())

	identity, ok := sessions.Identity()
	require.True(t, ok)
	assert.Equal(t, "user@example.com", identity)
}

func TestSessionStore_AdminFlag(t *testing.T) {
	sessions, _ := newTestSessions(t)

	t.Run("admin email sets the flag", func(t *testing.T) {
		require.NoError(t, sessions.Login("OWNER@Example.com"))
		assert.True(t, sessions.IsAdmin())
	})

	t.Run("subsequent normal login clears it", func(t *testing.T) {
		require.NoError(t, sessions.Login("user@example.com"))
		assert.False(t, sessions.IsAdmin())
	})
}

func TestSessionStore_GuestSeedsDemoTenant(t *testing.T) {
	sessions, s := newTestSessions(t)

	tenant, err := sessions.LoginAsGuest()
	require.NoError(t, err)
	assert.Equal(t, store.GuestTenantID, tenant)

	active, ok := sessions.ActiveTenant()
	require.True(t, ok)
	assert.Equal(t, store.GuestTenantID, active)

	cache := store.NewCache(s, nil, nil)

	profile, found, err := cache.Profile(tenant)
	require.NoError(t, err)
	require.True(t, found)
	assert.NotEmpty(t, profile.Name)

	services, err := cache.Services(tenant)
	require.NoError(t, err)
	assert.NotEmpty(t, services)

	staff, err := cache.Staff(tenant)
	require.NoError(t, err)
	assert.NotEmpty(t, staff)

	customers, err := cache.Customers(tenant)
	require.NoError(t, err)
	assert.NotEmpty(t, customers)
}

func TestSessionStore_GuestSeedIsIdempotent(t *testing.T) {
	sessions, s := newTestSessions(t)

	tenant, err := sessions.LoginAsGuest()
	require.NoError(t, err)

	cache := store.NewCache(s, nil, nil)
	require.NoError(t, cache.SaveService(tenant, models.Service{ID: "extra", Name: "Beard Trim"}))
	before, err := cache.Services(tenant)
	require.NoError(t, err)

	// Coming back as guest must not re-seed over existing data.
	_, err = sessions.LoginAsGuest()
	require.NoError(t, err)

	after, err := cache.Services(tenant)
	require.NoError(t, err)
	assert.Equal(t, len(before), len(after))
}

func TestSessionStore_LogoutClearsSessionAndTenantData(t *testing.T) {
	sessions, s := newTestSessions(t)

	require.NoError(t, s.SetLanguage("hi"))
	tenant, err := sessions.LoginAsGuest()
	require.NoError(t, err)
	require.NoError(t, sessions.SetProviderToken("tok-123"))

	require.NoError(t, sessions.Logout())

	assert.False(t, sessions.IsAuthenticated())
	assert.False(t, sessions.IsAdmin())

	_, ok := sessions.ActiveTenant()
	assert.False(t, ok)
	_, ok = sessions.ProviderToken()
	assert.False(t, ok)

	cache := store.NewCache(s, nil, nil)
	_, found, err := cache.Profile(tenant)
	require.NoError(t, err)
	assert.False(t, found)

	services, err := cache.Services(tenant)
	require.NoError(t, err)
	assert.Empty(t, services)

	// The device language survives logout.
	assert.Equal(t, "hi", s.Language())
}

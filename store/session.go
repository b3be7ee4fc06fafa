package store

import "strings"

// Guest identity used by the demo mode.
const (
	GuestEmail    = "guest@demo.com"
	GuestTenantID = "guest_biz"
)

// SessionStore records who is acting on this device and with what privilege.
// Password verification is an external concern; Login only records the
// already-verified identity.
type SessionStore struct {
	store      *Store
	adminEmail string
}

func NewSessionStore(s *Store, adminEmail string) *SessionStore {
	return &SessionStore{store: s, adminEmail: strings.ToLower(strings.TrimSpace(adminEmail))}
}

// IsAuthenticated reports whether a session identity is present.
func (ss *SessionStore) IsAuthenticated() bool {
	_, ok := ss.Identity()
	return ok
}

// Identity returns the current session identity, if any.
func (ss *SessionStore) Identity() (string, bool) {
	raw, err := ss.store.getRaw(keySessionIdentity)
	if err != nil || len(raw) == 0 {
		return "", false
	}
	return string(raw), true
}

// IsAdmin reports whether the super-admin flag was set at login time.
func (ss *SessionStore) IsAdmin() bool {
	raw, err := ss.store.getRaw(keySessionAdmin)
	return err == nil && string(raw) == "true"
}

// Login records identity. The admin flag is set iff identity equals the
// configured super-admin address; otherwise any stale flag is cleared.
func (ss *SessionStore) Login(identity string) error {
	identity = strings.TrimSpace(identity)
	if err := ss.store.setRaw(keySessionIdentity, []byte(identity)); err != nil {
		return err
	}
	if ss.adminEmail != "" && strings.ToLower(identity) == ss.adminEmail {
		return ss.store.setRaw(keySessionAdmin, []byte("true"))
	}
	return ss.store.deleteKey(keySessionAdmin)
}

// ActiveTenant returns the tenant the session is scoped to, if resolved.
func (ss *SessionStore) ActiveTenant() (string, bool) {
	raw, err := ss.store.getRaw(keySessionTenant)
	if err != nil || len(raw) == 0 {
		return "", false
	}
	return string(raw), true
}

func (ss *SessionStore) SetActiveTenant(tenantID string) error {
	return ss.store.setRaw(keySessionTenant, []byte(tenantID))
}

// ProviderToken is the identity provider's access token for this session,
// kept only so logout can ask the provider to invalidate it.
func (ss *SessionStore) ProviderToken() (string, bool) {
	raw, err := ss.store.getRaw(keySessionProvider)
	if err != nil || len(raw) == 0 {
		return "", false
	}
	return string(raw), true
}

func (ss *SessionStore) SetProviderToken(token string) error {
	return ss.store.setRaw(keySessionProvider, []byte(token))
}

// LoginAsGuest establishes the demo identity and, if this device has no
// guest tenant yet, seeds one with sample data so the demo is immediately
// usable. Returns the guest tenant id.
func (ss *SessionStore) LoginAsGuest() (string, error) {
	if err := ss.store.setRaw(keySessionIdentity, []byte(GuestEmail)); err != nil {
		return "", err
	}
	if err := ss.store.deleteKey(keySessionAdmin); err != nil {
		return "", err
	}
	if err := ss.store.setRaw(keySessionTenant, []byte(GuestTenantID)); err != nil {
		return "", err
	}
	var profile struct{}
	ok, err := getJSON(ss.store, tenantKey(GuestTenantID, ColProfile), &profile)
	if err != nil {
		return "", err
	}
	if !ok {
		if err := seedDemoTenant(ss.store, GuestTenantID); err != nil {
			return "", err
		}
	}
	return GuestTenantID, nil
}

// Logout clears the session identity, the admin flag and every tenant
// collection on this device, so no data leaks to the next user. The device
// language preference is kept.
func (ss *SessionStore) Logout() error {
	if err := ss.store.deleteKey(keySessionIdentity); err != nil {
		return err
	}
	if err := ss.store.deleteKey(keySessionAdmin); err != nil {
		return err
	}
	if err := ss.store.deleteKey(keySessionTenant); err != nil {
		return err
	}
	if err := ss.store.deleteKey(keySessionProvider); err != nil {
		return err
	}
	return ss.store.dropPrefix(tenantPrefix)
}

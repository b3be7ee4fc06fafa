// Package store holds all device-local durable state in an embedded
// BadgerDB: the session identity, the per-tenant record collections and the
// device preferences. Reads and writes here always succeed without the
// network; remote replication is someone else's job.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
)

// Collection names. These double as local key segments and as the routing
// key for remote mirror operations.
const (
	ColProfile       = "profile"
	ColServices      = "services"
	ColStaff         = "staff"
	ColCustomers     = "customers"
	ColInventory     = "inventory"
	ColAppointments  = "appointments"
	ColInvoices      = "invoices"
	ColConsultations = "consultations"
)

const (
	keySessionIdentity = "session/identity"
	keySessionAdmin    = "session/admin"
	keySessionTenant   = "session/tenant"
	keySessionProvider = "session/provider_token"
	keyDeviceLanguage  = "device/language"
	tenantPrefix       = "tenant/"
)

// Mirror receives fire-and-forget replication requests for local mutations.
// Implementations must never block the caller and never return errors to it.
type Mirror interface {
	EnqueueUpsert(collection, tenantID string, record any)
	EnqueueDelete(collection, id string)
}

// Store wraps the embedded database.
type Store struct {
	db *badger.DB
}

// Open opens (creating if needed) the store at dir.
func Open(dir string) (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a non-durable store. Used by tests.
func OpenInMemory() (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open in-memory store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Language returns the device-level language preference, which survives
// logout.
func (s *Store) Language() string {
	v, _ := s.getRaw(keyDeviceLanguage)
	if v == nil {
		return "en"
	}
	return string(v)
}

func (s *Store) SetLanguage(lang string) error {
	return s.setRaw(keyDeviceLanguage, []byte(lang))
}

func tenantKey(tenantID, collection string) string {
	return tenantPrefix + tenantID + "/" + collection
}

func (s *Store) getRaw(key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	return out, err
}

func (s *Store) setRaw(key string, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (s *Store) deleteKey(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

func (s *Store) dropPrefix(prefix string) error {
	return s.db.DropPrefix([]byte(prefix))
}

// getJSON decodes the value at key into out. Returns false when the key is
// absent.
func getJSON(s *Store, key string, out any) (bool, error) {
	raw, err := s.getRaw(key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func setJSON(s *Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.setRaw(key, raw)
}

func getList[T any](s *Store, key string) ([]T, error) {
	var list []T
	ok, err := getJSON(s, key, &list)
	if err != nil {
		return nil, err
	}
	if !ok || list == nil {
		return []T{}, nil
	}
	return list, nil
}

func putList[T any](s *Store, key string, list []T) error {
	return setJSON(s, key, list)
}

// upsertByID replaces the element whose id matches in place, or appends.
func upsertByID[T any](list []T, idOf func(T) string, rec T) []T {
	id := idOf(rec)
	for i := range list {
		if idOf(list[i]) == id {
			list[i] = rec
			return list
		}
	}
	return append(list, rec)
}

func removeByID[T any](list []T, idOf func(T) string, id string) []T {
	out := list[:0]
	for _, item := range list {
		if idOf(item) != id {
			out = append(out, item)
		}
	}
	return out
}

package mirror_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askbm-backend/mirror"
	"askbm-backend/models"
	"askbm-backend/store"
)

// fakeRemote serves canned collections and can fail selected fetches.
type fakeRemote struct {
	services     []models.Service
	staff        []models.Staff
	customers    []models.Customer
	inventory    []models.InventoryItem
	appointments []models.Appointment
	invoices     []models.Invoice

	failServices bool
}

func (f *fakeRemote) FetchServices(ctx context.Context, businessID string) ([]models.Service, error) {
	if f.failServices {
		return nil, errors.New("table unavailable")
	}
	return f.services, nil
}

func (f *fakeRemote) FetchStaff(ctx context.Context, businessID string) ([]models.Staff, error) {
	return f.staff, nil
}

func (f *fakeRemote) FetchCustomers(ctx context.Context, businessID string) ([]models.Customer, error) {
	return f.customers, nil
}

func (f *fakeRemote) FetchInventory(ctx context.Context, businessID string) ([]models.InventoryItem, error) {
	return f.inventory, nil
}

func (f *fakeRemote) FetchAppointments(ctx context.Context, businessID string) ([]models.Appointment, error) {
	return f.appointments, nil
}

func (f *fakeRemote) FetchInvoices(ctx context.Context, businessID string) ([]models.Invoice, error) {
	return f.invoices, nil
}

func newSyncFixture(t *testing.T, remote *fakeRemote) (*mirror.Syncer, *store.Cache) {
	t.Helper()
	s, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	cache := store.NewCache(s, nil, nil)
	return mirror.NewSyncer(remote, cache, nil), cache
}

func TestSyncer_PullAllReplacesCollections(t *testing.T) {
	remote := &fakeRemote{
		services:  []models.Service{{ID: "s1", Name: "Haircut", Price: 500}},
		staff:     []models.Staff{{ID: "st1", Name: "Asha", Role: models.RoleOwner, AttendanceToday: true}},
		customers: []models.Customer{{ID: "c1", Name: "Alice", Phone: "+911234567890"}},
		invoices:  []models.Invoice{{ID: "INV-1", Amount: 500, Tax: 90, Total: 590}},
	}
	syncer, cache := newSyncFixture(t, remote)

	// Stale local state that the pull must replace.
	require.NoError(t, cache.ReplaceServices("biz1", []models.Service{{ID: "old", Name: "Old"}}))

	syncer.PullAll(context.Background(), "biz1")

	services, err := cache.Services("biz1")
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Haircut", services[0].Name)

	customers, err := cache.Customers("biz1")
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Alice", customers[0].Name)

	invoices, err := cache.Invoices("biz1")
	require.NoError(t, err)
	assert.Len(t, invoices, 1)
}

func TestSyncer_PullAllResetsAttendance(t *testing.T) {
	remote := &fakeRemote{
		staff: []models.Staff{{ID: "st1", Name: "Asha", AttendanceToday: true}},
	}
	syncer, cache := newSyncFixture(t, remote)

	syncer.PullAll(context.Background(), "biz1")

	staff, err := cache.Staff("biz1")
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.False(t, staff[0].AttendanceToday)
}

func TestSyncer_FailedFetchLeavesCollectionUntouched(t *testing.T) {
	remote := &fakeRemote{
		failServices: true,
		staff:        []models.Staff{{ID: "st1", Name: "Asha"}},
	}
	syncer, cache := newSyncFixture(t, remote)

	local := []models.Service{{ID: "s1", Name: "Haircut"}}
	require.NoError(t, cache.ReplaceServices("biz1", local))

	syncer.PullAll(context.Background(), "biz1")

	// Services fetch failed: local copy stays.
	services, err := cache.Services("biz1")
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Haircut", services[0].Name)

	// Other collections still refreshed.
	staff, err := cache.Staff("biz1")
	require.NoError(t, err)
	assert.Len(t, staff, 1)
}

func TestSyncer_PullAllIsIdempotent(t *testing.T) {
	remote := &fakeRemote{
		services: []models.Service{{ID: "s1", Name: "Haircut"}},
	}
	syncer, cache := newSyncFixture(t, remote)

	syncer.PullAll(context.Background(), "biz1")
	syncer.PullAll(context.Background(), "biz1")

	services, err := cache.Services("biz1")
	require.NoError(t, err)
	assert.Len(t, services, 1)
}

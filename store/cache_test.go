package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askbm-backend/models"
	"askbm-backend/store"
)

type recordedOp struct {
	kind       string
	collection string
	tenantID   string
	id         string
}

// fakeMirror records what the cache hands to the replication path.
type fakeMirror struct {
	ops []recordedOp
}

func (f *fakeMirror) EnqueueUpsert(collection, tenantID string, record any) {
	f.ops = append(f.ops, recordedOp{kind: "upsert", collection: collection, tenantID: tenantID})
}

func (f *fakeMirror) EnqueueDelete(collection, id string) {
	f.ops = append(f.ops, recordedOp{kind: "delete", collection: collection, id: id})
}

func newTestCache(t *testing.T) (*store.Cache, *fakeMirror) {
	t.Helper()
	s, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	m := &fakeMirror{}
	return store.NewCache(s, m, nil), m
}

func TestCache_ServiceReadAfterWrite(t *testing.T) {
	cache, m := newTestCache(t)

	svc := models.Service{ID: "s1", Name: "Haircut", Price: 500, DurationMinutes: 30}
	require.NoError(t, cache.SaveService("biz1", svc))

	list, err := cache.Services("biz1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, svc, list[0])

	require.Len(t, m.ops, 1)
	assert.Equal(t, "upsert", m.ops[0].kind)
	assert.Equal(t, store.ColServices, m.ops[0].collection)
	assert.Equal(t, "biz1", m.ops[0].tenantID)
}

func TestCache_UpsertByIDReplacesInPlace(t *testing.T) {
	cache, _ := newTestCache(t)

	require.NoError(t, cache.SaveService("biz1", models.Service{ID: "s1", Name: "Haircut", Price: 500}))
	require.NoError(t, cache.SaveService("biz1", models.Service{ID: "s2", Name: "Facial", Price: 800}))
	require.NoError(t, cache.SaveService("biz1", models.Service{ID: "s1", Name: "Haircut Deluxe", Price: 700}))

	list, err := cache.Services("biz1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Haircut Deluxe", list[0].Name)
	assert.Equal(t, int64(700), list[0].Price)
	assert.Equal(t, "Facial", list[1].Name)
}

func TestCache_TenantIsolation(t *testing.T) {
	cache, _ := newTestCache(t)

	require.NoError(t, cache.SaveService("biz1", models.Service{ID: "s1", Name: "Haircut"}))
	require.NoError(t, cache.SaveService("biz2", models.Service{ID: "s2", Name: "Massage"}))

	list1, err := cache.Services("biz1")
	require.NoError(t, err)
	list2, err := cache.Services("biz2")
	require.NoError(t, err)

	require.Len(t, list1, 1)
	require.Len(t, list2, 1)
	assert.Equal(t, "Haircut", list1[0].Name)
	assert.Equal(t, "Massage", list2[0].Name)
}

func TestCache_DeleteService(t *testing.T) {
	cache, m := newTestCache(t)

	require.NoError(t, cache.SaveService("biz1", models.Service{ID: "s1"}))
	require.NoError(t, cache.SaveService("biz1", models.Service{ID: "s2"}))
	require.NoError(t, cache.DeleteService("biz1", "s1"))

	list, err := cache.Services("biz1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "s2", list[0].ID)

	last := m.ops[len(m.ops)-1]
	assert.Equal(t, "delete", last.kind)
	assert.Equal(t, "s1", last.id)
}

func TestCache_AdjustStockClampsAtZero(t *testing.T) {
	cache, _ := newTestCache(t)

	require.NoError(t, cache.SaveInventoryItem("biz1", models.InventoryItem{ID: "i1", Name: "Shampoo", Stock: 3}))

	item, err := cache.AdjustStock("biz1", "i1", -10)
	require.NoError(t, err)
	assert.Equal(t, 0, item.Stock)

	item, err = cache.AdjustStock("biz1", "i1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Stock)

	_, err = cache.AdjustStock("biz1", "missing", 1)
	assert.Error(t, err)
}

func TestCache_SaveInventoryItemClampsNegativeStock(t *testing.T) {
	cache, _ := newTestCache(t)

	require.NoError(t, cache.SaveInventoryItem("biz1", models.InventoryItem{ID: "i1", Stock: -4}))
	list, err := cache.Inventory("biz1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 0, list[0].Stock)
}

func TestCache_CheckAvailability(t *testing.T) {
	cache, _ := newTestCache(t)

	booked := models.Appointment{
		ID: "a1", StaffID: "st1", Date: "2026-09-01", Time: "10:00",
		Status: models.ApptScheduled,
	}
	require.NoError(t, cache.SaveAppointment("biz1", booked))

	t.Run("same slot is taken", func(t *testing.T) {
		free, err := cache.CheckAvailability("biz1", "st1", "2026-09-01", "10:00", 30, "")
		require.NoError(t, err)
		assert.False(t, free)
	})

	t.Run("different time is free", func(t *testing.T) {
		free, err := cache.CheckAvailability("biz1", "st1", "2026-09-01", "11:00", 30, "")
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("different staff is free", func(t *testing.T) {
		free, err := cache.CheckAvailability("biz1", "st2", "2026-09-01", "10:00", 30, "")
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("cancelled appointment frees the slot", func(t *testing.T) {
		booked.Status = models.ApptCancelled
		require.NoError(t, cache.SaveAppointment("biz1", booked))
		free, err := cache.CheckAvailability("biz1", "st1", "2026-09-01", "10:00", 30, "")
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("excluded id does not block itself", func(t *testing.T) {
		booked.Status = models.ApptScheduled
		require.NoError(t, cache.SaveAppointment("biz1", booked))
		free, err := cache.CheckAvailability("biz1", "st1", "2026-09-01", "10:00", 30, "a1")
		require.NoError(t, err)
		assert.True(t, free)
	})
}

func TestCache_ReplaceStaffResetsAttendance(t *testing.T) {
	cache, _ := newTestCache(t)

	incoming := []models.Staff{
		{ID: "st1", Name: "Asha", Role: models.RoleOwner, AttendanceToday: true},
		{ID: "st2", Name: "Ravi", Role: models.RoleStaff, AttendanceToday: true},
	}
	require.NoError(t, cache.ReplaceStaff("biz1", incoming))

	list, err := cache.Staff("biz1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, m := range list {
		assert.False(t, m.AttendanceToday)
	}
}

func TestCache_ResetAttendance(t *testing.T) {
	cache, _ := newTestCache(t)

	require.NoError(t, cache.SaveStaff("biz1", models.Staff{ID: "st1", AttendanceToday: true}))
	require.NoError(t, cache.ResetAttendance("biz1"))

	list, err := cache.Staff("biz1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].AttendanceToday)
}

func TestCache_InvoicesAppendOnly(t *testing.T) {
	cache, _ := newTestCache(t)

	inv := models.Invoice{ID: "INV-1", AppointmentID: "a1", Amount: 500, Tax: 90, Total: 590}
	require.NoError(t, cache.AppendInvoice("biz1", inv))
	require.NoError(t, cache.AppendInvoice("biz1", models.Invoice{ID: "INV-2", AppointmentID: "a2"}))

	list, err := cache.Invoices("biz1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	billed, err := cache.HasInvoiceForAppointment("biz1", "a1")
	require.NoError(t, err)
	assert.True(t, billed)

	billed, err = cache.HasInvoiceForAppointment("biz1", "a9")
	require.NoError(t, err)
	assert.False(t, billed)
}

func TestCache_FindCustomerByPhone(t *testing.T) {
	cache, _ := newTestCache(t)

	require.NoError(t, cache.SaveCustomer("biz1", models.Customer{ID: "c1", Name: "Alice", Phone: "+911234567890"}))

	got, found, err := cache.FindCustomerByPhone("biz1", "+911234567890")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Alice", got.Name)

	_, found, err = cache.FindCustomerByPhone("biz1", "+910000000000")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_NilMirrorIsTolerated(t *testing.T) {
	s, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	cache := store.NewCache(s, nil, nil)
	require.NoError(t, cache.SaveService("biz1", models.Service{ID: "s1"}))
	require.NoError(t, cache.DeleteService("biz1", "s1"))
}

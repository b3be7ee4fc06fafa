package store

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"askbm-backend/models"
)

// Cache provides synchronous, always-available access to the tenant record
// collections. Every write persists the full updated collection locally
// before returning and then hands a best-effort replication request to the
// mirror. The tenant id is an explicit parameter on every call.
//
// The HTTP surface is concurrent, so a mutex serialises access; the original
// single-threaded ordering guarantee for local writes is preserved by call
// sequence under the lock.
type Cache struct {
	store  *Store
	mirror Mirror
	log    *zap.Logger

	mu sync.RWMutex
}

// NewCache builds a cache over s. mirror may be nil when the device runs
// fully offline.
func NewCache(s *Store, mirror Mirror, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{store: s, mirror: mirror, log: log}
}

func (c *Cache) enqueueUpsert(collection, tenantID string, record any) {
	if c.mirror != nil {
		c.mirror.EnqueueUpsert(collection, tenantID, record)
	}
}

func (c *Cache) enqueueDelete(collection, id string) {
	if c.mirror != nil {
		c.mirror.EnqueueDelete(collection, id)
	}
}

// --- Profile ---

func (c *Cache) Profile(tenantID string) (models.BusinessProfile, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var p models.BusinessProfile
	ok, err := getJSON(c.store, tenantKey(tenantID, ColProfile), &p)
	return p, ok, err
}

func (c *Cache) SaveProfile(tenantID string, p models.BusinessProfile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := setJSON(c.store, tenantKey(tenantID, ColProfile), p); err != nil {
		return err
	}
	c.enqueueUpsert(ColProfile, tenantID, p)
	return nil
}

// ReplaceProfile overwrites the local profile without mirroring (used when
// rehydrating from the remote store).
func (c *Cache) ReplaceProfile(tenantID string, p models.BusinessProfile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return setJSON(c.store, tenantKey(tenantID, ColProfile), p)
}

// --- Services ---

func (c *Cache) Services(tenantID string) ([]models.Service, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getList[models.Service](c.store, tenantKey(tenantID, ColServices))
}

func (c *Cache) SaveService(tenantID string, svc models.Service) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := tenantKey(tenantID, ColServices)
	list, err := getList[models.Service](c.store, key)
	if err != nil {
		return err
	}
	list = upsertByID(list, func(s models.Service) string { return s.ID }, svc)
	if err := putList(c.store, key, list); err != nil {
		return err
	}
	c.enqueueUpsert(ColServices, tenantID, svc)
	return nil
}

func (c *Cache) DeleteService(tenantID, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := tenantKey(tenantID, ColServices)
	list, err := getList[models.Service](c.store, key)
	if err != nil {
		return err
	}
	list = removeByID(list, func(s models.Service) string { return s.ID }, id)
	if err := putList(c.store, key, list); err != nil {
		return err
	}
	c.enqueueDelete(ColServices, id)
	return nil
}

func (c *Cache) ReplaceServices(tenantID string, list []models.Service) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return putList(c.store, tenantKey(tenantID, ColServices), list)
}

// --- Staff ---

func (c *Cache) Staff(tenantID string) ([]models.Staff, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getList[models.Staff](c.store, tenantKey(tenantID, ColStaff))
}

func (c *Cache) SaveStaff(tenantID string, st models.Staff) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := tenantKey(tenantID, ColStaff)
	list, err := getList[models.Staff](c.store, key)
	if err != nil {
		return err
	}
	list = upsertByID(list, func(s models.Staff) string { return s.ID }, st)
	if err := putList(c.store, key, list); err != nil {
		return err
	}
	c.enqueueUpsert(ColStaff, tenantID, st)
	return nil
}

func (c *Cache) DeleteStaff(tenantID, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := tenantKey(tenantID, ColStaff)
	list, err := getList[models.Staff](c.store, key)
	if err != nil {
		return err
	}
	list = removeByID(list, func(s models.Staff) string { return s.ID }, id)
	if err := putList(c.store, key, list); err != nil {
		return err
	}
	c.enqueueDelete(ColStaff, id)
	return nil
}

// ReplaceStaff overwrites the local staff collection from remote rows.
// Attendance is a local-session concept, so every rehydrated record comes
// back with AttendanceToday false.
func (c *Cache) ReplaceStaff(tenantID string, list []models.Staff) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range list {
		list[i].AttendanceToday = false
	}
	return putList(c.store, tenantKey(tenantID, ColStaff), list)
}

// ResetAttendance clears the present-today flag for every staff member.
// Runs at the start of each day.
func (c *Cache) ResetAttendance(tenantID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := tenantKey(tenantID, ColStaff)
	list, err := getList[models.Staff](c.store, key)
	if err != nil {
		return err
	}
	for i := range list {
		list[i].AttendanceToday = false
	}
	return putList(c.store, key, list)
}

// --- Customers ---

func (c *Cache) Customers(tenantID string) ([]models.Customer, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getList[models.Customer](c.store, tenantKey(tenantID, ColCustomers))
}

// SaveCustomer persists the record as given. Visit and loyalty counters are
// the caller's responsibility; the cache does no business-rule computation.
func (c *Cache) SaveCustomer(tenantID string, cust models.Customer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := tenantKey(tenantID, ColCustomers)
	list, err := getList[models.Customer](c.store, key)
	if err != nil {
		return err
	}
	list = upsertByID(list, func(cu models.Customer) string { return cu.ID }, cust)
	if err := putList(c.store, key, list); err != nil {
		return err
	}
	c.enqueueUpsert(ColCustomers, tenantID, cust)
	return nil
}

// FindCustomerByPhone implements the existing-vs-new customer decision.
func (c *Cache) FindCustomerByPhone(tenantID, phone string) (models.Customer, bool, error) {
	list, err := c.Customers(tenantID)
	if err != nil {
		return models.Customer{}, false, err
	}
	for _, cu := range list {
		if cu.Phone == phone {
			return cu, true, nil
		}
	}
	return models.Customer{}, false, nil
}

func (c *Cache) ReplaceCustomers(tenantID string, list []models.Customer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return putList(c.store, tenantKey(tenantID, ColCustomers), list)
}

// --- Inventory ---

func (c *Cache) Inventory(tenantID string) ([]models.InventoryItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getList[models.InventoryItem](c.store, tenantKey(tenantID, ColInventory))
}

func (c *Cache) SaveInventoryItem(tenantID string, item models.InventoryItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if item.Stock < 0 {
		item.Stock = 0
	}
	key := tenantKey(tenantID, ColInventory)
	list, err := getList[models.InventoryItem](c.store, key)
	if err != nil {
		return err
	}
	list = upsertByID(list, func(i models.InventoryItem) string { return i.ID }, item)
	if err := putList(c.store, key, list); err != nil {
		return err
	}
	c.enqueueUpsert(ColInventory, tenantID, item)
	return nil
}

// AdjustStock applies a delta to an item's stock count, clamping at zero.
func (c *Cache) AdjustStock(tenantID, id string, delta int) (models.InventoryItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := tenantKey(tenantID, ColInventory)
	list, err := getList[models.InventoryItem](c.store, key)
	if err != nil {
		return models.InventoryItem{}, err
	}
	for i := range list {
		if list[i].ID != id {
			continue
		}
		stock := list[i].Stock + delta
		if stock < 0 {
			stock = 0
		}
		list[i].Stock = stock
		if err := putList(c.store, key, list); err != nil {
			return models.InventoryItem{}, err
		}
		c.enqueueUpsert(ColInventory, tenantID, list[i])
		return list[i], nil
	}
	return models.InventoryItem{}, fmt.Errorf("inventory item %s not found", id)
}

func (c *Cache) ReplaceInventory(tenantID string, list []models.InventoryItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return putList(c.store, tenantKey(tenantID, ColInventory), list)
}

// --- Appointments ---

func (c *Cache) Appointments(tenantID string) ([]models.Appointment, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getList[models.Appointment](c.store, tenantKey(tenantID, ColAppointments))
}

func (c *Cache) SaveAppointment(tenantID string, appt models.Appointment) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := tenantKey(tenantID, ColAppointments)
	list, err := getList[models.Appointment](c.store, key)
	if err != nil {
		return err
	}
	list = upsertByID(list, func(a models.Appointment) string { return a.ID }, appt)
	if err := putList(c.store, key, list); err != nil {
		return err
	}
	c.enqueueUpsert(ColAppointments, tenantID, appt)
	return nil
}

// CheckAvailability reports whether the staff member is free at the given
// date and start time. A slot is taken when any non-cancelled appointment
// for that staff member on that date has the exact same start time; service
// duration does not enter the comparison. durationMinutes is accepted so the
// signature has a seam for interval-overlap checking if that is ever
// confirmed as the intended behavior.
func (c *Cache) CheckAvailability(tenantID, staffID, date, timeStr string, durationMinutes int, excludeID string) (bool, error) {
	_ = durationMinutes
	list, err := c.Appointments(tenantID)
	if err != nil {
		return false, err
	}
	for _, a := range list {
		if a.ID == excludeID || a.StaffID != staffID || a.Status == models.ApptCancelled {
			continue
		}
		if a.Date == date && a.Time == timeStr {
			return false, nil
		}
	}
	return true, nil
}

func (c *Cache) ReplaceAppointments(tenantID string, list []models.Appointment) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return putList(c.store, tenantKey(tenantID, ColAppointments), list)
}

// --- Invoices ---

func (c *Cache) Invoices(tenantID string) ([]models.Invoice, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getList[models.Invoice](c.store, tenantKey(tenantID, ColInvoices))
}

// AppendInvoice adds a freshly generated invoice. Invoices are append-only
// and immutable; there is no upsert path.
func (c *Cache) AppendInvoice(tenantID string, inv models.Invoice) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := tenantKey(tenantID, ColInvoices)
	list, err := getList[models.Invoice](c.store, key)
	if err != nil {
		return err
	}
	list = append(list, inv)
	if err := putList(c.store, key, list); err != nil {
		return err
	}
	c.enqueueUpsert(ColInvoices, tenantID, inv)
	return nil
}

// HasInvoiceForAppointment backs the "already billed" filter.
func (c *Cache) HasInvoiceForAppointment(tenantID, appointmentID string) (bool, error) {
	list, err := c.Invoices(tenantID)
	if err != nil {
		return false, err
	}
	for _, inv := range list {
		if inv.AppointmentID == appointmentID {
			return true, nil
		}
	}
	return false, nil
}

func (c *Cache) ReplaceInvoices(tenantID string, list []models.Invoice) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return putList(c.store, tenantKey(tenantID, ColInvoices), list)
}

// --- AI Consultations ---

func (c *Cache) Consultations(tenantID string) ([]models.Consultation, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getList[models.Consultation](c.store, tenantKey(tenantID, ColConsultations))
}

func (c *Cache) AppendConsultation(tenantID string, con models.Consultation) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := tenantKey(tenantID, ColConsultations)
	list, err := getList[models.Consultation](c.store, key)
	if err != nil {
		return err
	}
	list = append(list, con)
	if err := putList(c.store, key, list); err != nil {
		return err
	}
	c.enqueueUpsert(ColConsultations, tenantID, con)
	return nil
}

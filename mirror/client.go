package mirror

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"askbm-backend/models"
	"askbm-backend/store"
)

// Client talks to the remote relational store. All writes are upserts keyed
// by id; concurrent writers race last-write-wins by arrival order, which is
// the accepted multi-device policy.
type Client struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewClient connects to the remote store. The caller decides what to do when
// the remote is unreachable; the rest of the system runs fine without one.
func NewClient(dsn string, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect remote store: %w", err)
	}
	return &Client{db: db, log: log}, nil
}

// AutoMigrate creates the remote tables when missing.
func (c *Client) AutoMigrate() error {
	return c.db.AutoMigrate(
		&profileRow{},
		&serviceRow{},
		&staffRow{},
		&customerRow{},
		&inventoryRow{},
		&appointmentRow{},
		&invoiceRow{},
		&consultationRow{},
	)
}

func upsertRow(ctx context.Context, db *gorm.DB, row any) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error
}

// Push applies one outbox operation remotely. Unknown collections and
// mistyped payloads are programming errors reported back so the outbox can
// log them; they are never retried into oblivion.
func (c *Client) Push(ctx context.Context, op Op) error {
	if op.Kind == OpDelete {
		return c.pushDelete(ctx, op.Collection, op.ID)
	}
	return c.pushUpsert(ctx, op)
}

func (c *Client) pushUpsert(ctx context.Context, op Op) error {
	switch op.Collection {
	case store.ColProfile:
		p, ok := op.Record.(models.BusinessProfile)
		if !ok {
			return fmt.Errorf("outbox upsert %s: unexpected payload %T", op.Collection, op.Record)
		}
		return upsertRow(ctx, c.db, profileToRow(p))
	case store.ColServices:
		s, ok := op.Record.(models.Service)
		if !ok {
			return fmt.Errorf("outbox upsert %s: unexpected payload %T", op.Collection, op.Record)
		}
		return upsertRow(ctx, c.db, serviceToRow(op.TenantID, s))
	case store.ColStaff:
		s, ok := op.Record.(models.Staff)
		if !ok {
			return fmt.Errorf("outbox upsert %s: unexpected payload %T", op.Collection, op.Record)
		}
		return upsertRow(ctx, c.db, staffToRow(op.TenantID, s))
	case store.ColCustomers:
		cu, ok := op.Record.(models.Customer)
		if !ok {
			return fmt.Errorf("outbox upsert %s: unexpected payload %T", op.Collection, op.Record)
		}
		return upsertRow(ctx, c.db, customerToRow(op.TenantID, cu))
	case store.ColInventory:
		i, ok := op.Record.(models.InventoryItem)
		if !ok {
			return fmt.Errorf("outbox upsert %s: unexpected payload %T", op.Collection, op.Record)
		}
		return upsertRow(ctx, c.db, inventoryToRow(op.TenantID, i))
	case store.ColAppointments:
		a, ok := op.Record.(models.Appointment)
		if !ok {
			return fmt.Errorf("outbox upsert %s: unexpected payload %T", op.Collection, op.Record)
		}
		return upsertRow(ctx, c.db, appointmentToRow(op.TenantID, a))
	case store.ColInvoices:
		inv, ok := op.Record.(models.Invoice)
		if !ok {
			return fmt.Errorf("outbox upsert %s: unexpected payload %T", op.Collection, op.Record)
		}
		return upsertRow(ctx, c.db, invoiceToRow(op.TenantID, inv))
	case store.ColConsultations:
		con, ok := op.Record.(models.Consultation)
		if !ok {
			return fmt.Errorf("outbox upsert %s: unexpected payload %T", op.Collection, op.Record)
		}
		return upsertRow(ctx, c.db, consultationToRow(op.TenantID, con))
	}
	return fmt.Errorf("outbox upsert: unknown collection %q", op.Collection)
}

func (c *Client) pushDelete(ctx context.Context, collection, id string) error {
	switch collection {
	case store.ColServices:
		return c.db.WithContext(ctx).Delete(&serviceRow{}, "id = ?", id).Error
	case store.ColStaff:
		return c.db.WithContext(ctx).Delete(&staffRow{}, "id = ?", id).Error
	}
	return fmt.Errorf("outbox delete: unsupported collection %q", collection)
}

// --- Bulk fetches, tenant scoped ---

func fetchRows[R any, T any](ctx context.Context, db *gorm.DB, businessID string, decode func(R) (T, error)) ([]T, error) {
	var rows []R
	if err := db.WithContext(ctx).Where("business_id = ?", businessID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		rec, err := decode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *Client) FetchServices(ctx context.Context, businessID string) ([]models.Service, error) {
	return fetchRows[serviceRow](ctx, c.db, businessID, serviceFromRow)
}

func (c *Client) FetchStaff(ctx context.Context, businessID string) ([]models.Staff, error) {
	return fetchRows[staffRow](ctx, c.db, businessID, staffFromRow)
}

func (c *Client) FetchCustomers(ctx context.Context, businessID string) ([]models.Customer, error) {
	return fetchRows[customerRow](ctx, c.db, businessID, customerFromRow)
}

func (c *Client) FetchInventory(ctx context.Context, businessID string) ([]models.InventoryItem, error) {
	return fetchRows[inventoryRow](ctx, c.db, businessID, inventoryFromRow)
}

func (c *Client) FetchAppointments(ctx context.Context, businessID string) ([]models.Appointment, error) {
	return fetchRows[appointmentRow](ctx, c.db, businessID, appointmentFromRow)
}

func (c *Client) FetchInvoices(ctx context.Context, businessID string) ([]models.Invoice, error) {
	return fetchRows[invoiceRow](ctx, c.db, businessID, invoiceFromRow)
}

// FindProfileByEmail locates a business profile by its owner email. Used at
// login to resolve the tenant for a fresh device.
func (c *Client) FindProfileByEmail(ctx context.Context, email string) (models.BusinessProfile, bool, error) {
	var row profileRow
	err := c.db.WithContext(ctx).Where("email = ?", email).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.BusinessProfile{}, false, nil
	}
	if err != nil {
		return models.BusinessProfile{}, false, err
	}
	p, err := profileFromRow(row)
	if err != nil {
		return models.BusinessProfile{}, false, err
	}
	return p, true, nil
}

// ErrTenantNotFound reports an approval write against an unknown business id.
var ErrTenantNotFound = errors.New("business not found")

// SetApproved flips the approval flag on a business. Super-admin only; the
// owning device picks the change up on its next pull.
func (c *Client) SetApproved(ctx context.Context, businessID string, approved bool) error {
	res := c.db.WithContext(ctx).Model(&profileRow{}).Where("id = ?", businessID).Update("approved", approved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTenantNotFound
	}
	return nil
}

// --- Super-admin aggregate reads (cross-tenant, read only) ---

func (c *Client) ListAllTenants(ctx context.Context) ([]models.BusinessProfile, error) {
	var rows []profileRow
	if err := c.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.BusinessProfile, 0, len(rows))
	for _, r := range rows {
		p, err := profileFromRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (c *Client) ListAllCustomersAcrossTenants(ctx context.Context) ([]models.Customer, error) {
	var rows []customerRow
	if err := c.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Customer, 0, len(rows))
	for _, r := range rows {
		cu, err := customerFromRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, cu)
	}
	return out, nil
}

package mirror

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"askbm-backend/models"
	"askbm-backend/store"
)

// Remote is the read side of the mirror, faked in tests.
type Remote interface {
	FetchServices(ctx context.Context, businessID string) ([]models.Service, error)
	FetchStaff(ctx context.Context, businessID string) ([]models.Staff, error)
	FetchCustomers(ctx context.Context, businessID string) ([]models.Customer, error)
	FetchInventory(ctx context.Context, businessID string) ([]models.InventoryItem, error)
	FetchAppointments(ctx context.Context, businessID string) ([]models.Appointment, error)
	FetchInvoices(ctx context.Context, businessID string) ([]models.Invoice, error)
}

// Syncer reconciles the local cache to the remote state.
type Syncer struct {
	remote Remote
	cache  *store.Cache
	log    *zap.Logger
}

func NewSyncer(remote Remote, cache *store.Cache, log *zap.Logger) *Syncer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Syncer{remote: remote, cache: cache, log: log}
}

// PullAll fetches every collection for the tenant in parallel and overwrites
// the corresponding local collection. A collection whose fetch fails is left
// untouched, so one broken table costs staleness, not data loss. Idempotent;
// runs after every remote-verified login and on the periodic refresh.
func (s *Syncer) PullAll(ctx context.Context, tenantID string) {
	if s.remote == nil {
		return
	}
	var wg sync.WaitGroup
	pull := func(name string, fetch func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fetch(); err != nil {
				s.log.Warn("pull skipped collection",
					zap.String("collection", name),
					zap.String("tenant_id", tenantID),
					zap.Error(err),
				)
			}
		}()
	}

	pull(store.ColServices, func() error {
		list, err := s.remote.FetchServices(ctx, tenantID)
		if err != nil {
			return err
		}
		return s.cache.ReplaceServices(tenantID, list)
	})
	pull(store.ColStaff, func() error {
		list, err := s.remote.FetchStaff(ctx, tenantID)
		if err != nil {
			return err
		}
		return s.cache.ReplaceStaff(tenantID, list)
	})
	pull(store.ColCustomers, func() error {
		list, err := s.remote.FetchCustomers(ctx, tenantID)
		if err != nil {
			return err
		}
		return s.cache.ReplaceCustomers(tenantID, list)
	})
	pull(store.ColInventory, func() error {
		list, err := s.remote.FetchInventory(ctx, tenantID)
		if err != nil {
			return err
		}
		return s.cache.ReplaceInventory(tenantID, list)
	})
	pull(store.ColAppointments, func() error {
		list, err := s.remote.FetchAppointments(ctx, tenantID)
		if err != nil {
			return err
		}
		return s.cache.ReplaceAppointments(tenantID, list)
	})
	pull(store.ColInvoices, func() error {
		list, err := s.remote.FetchInvoices(ctx, tenantID)
		if err != nil {
			return err
		}
		return s.cache.ReplaceInvoices(tenantID, list)
	})

	wg.Wait()
}

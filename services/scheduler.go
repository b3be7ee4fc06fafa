// services/scheduler.go
package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"askbm-backend/store"
)

// Puller is the slice of the sync layer the scheduler needs.
type Puller interface {
	PullAll(ctx context.Context, tenantID string)
}

// Scheduler owns the background clocks: the nightly attendance reset (staff
// presence is a per-day, local-only flag) and a periodic remote re-pull to
// pick up edits made from other devices.
type Scheduler struct {
	cron     *cron.Cron
	cache    *store.Cache
	sessions *store.SessionStore
	puller   Puller
	tenantID func() (string, bool)
	log      *zap.Logger
}

// NewScheduler wires the jobs. tenantID resolves the currently active tenant
// and reports false when nobody is signed in.
func NewScheduler(cache *store.Cache, sessions *store.SessionStore, puller Puller, tenantID func() (string, bool), log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron:     cron.New(),
		cache:    cache,
		sessions: sessions,
		puller:   puller,
		tenantID: tenantID,
		log:      log,
	}
}

func (s *Scheduler) Start() {
	// Midnight: yesterday's attendance does not carry over.
	s.cron.AddFunc("0 0 * * *", s.resetAttendance)

	// Every 6 hours: refresh the local cache from the remote mirror.
	s.cron.AddFunc("0 */6 * * *", s.refresh)

	s.cron.Start()
	s.log.Info("scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) resetAttendance() {
	tenant, ok := s.tenantID()
	if !ok {
		return
	}
	if err := s.cache.ResetAttendance(tenant); err != nil {
		s.log.Warn("attendance reset failed", zap.String("tenant_id", tenant), zap.Error(err))
		return
	}
	s.log.Info("attendance reset", zap.String("tenant_id", tenant))
}

func (s *Scheduler) refresh() {
	if s.puller == nil || !s.sessions.IsAuthenticated() {
		return
	}
	tenant, ok := s.tenantID()
	if !ok || tenant == store.GuestTenantID {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	s.puller.PullAll(ctx, tenant)
}

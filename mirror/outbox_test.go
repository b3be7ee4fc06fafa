package mirror_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askbm-backend/mirror"
	"askbm-backend/models"
	"askbm-backend/store"
)

// fakePusher counts push attempts and can be told to fail the first n calls.
type fakePusher struct {
	mu        sync.Mutex
	failFirst int
	calls     []mirror.Op
}

func (f *fakePusher) Push(ctx context.Context, op mirror.Op) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	if len(f.calls) <= f.failFirst {
		return errors.New("remote unavailable")
	}
	return nil
}

func (f *fakePusher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakePusher) lastCall() mirror.Op {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func testConfig() mirror.OutboxConfig {
	return mirror.OutboxConfig{
		QueueSize:   16,
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		PushTimeout: time.Second,
	}
}

func TestOutbox_DeliversUpsert(t *testing.T) {
	pusher := &fakePusher{}
	outbox := mirror.NewOutbox(pusher, testConfig(), nil)

	svc := models.Service{ID: "s1", Name: "Haircut"}
	outbox.EnqueueUpsert(store.ColServices, "biz1", svc)
	outbox.Close()

	require.Equal(t, 1, pusher.callCount())
	op := pusher.lastCall()
	assert.Equal(t, mirror.OpUpsert, op.Kind)
	assert.Equal(t, store.ColServices, op.Collection)
	assert.Equal(t, "biz1", op.TenantID)
	assert.Equal(t, svc, op.Record)
}

func TestOutbox_DeliversDelete(t *testing.T) {
	pusher := &fakePusher{}
	outbox := mirror.NewOutbox(pusher, testConfig(), nil)

	outbox.EnqueueDelete(store.ColStaff, "st1")
	outbox.Close()

	require.Equal(t, 1, pusher.callCount())
	op := pusher.lastCall()
	assert.Equal(t, mirror.OpDelete, op.Kind)
	assert.Equal(t, store.ColStaff, op.Collection)
	assert.Equal(t, "st1", op.ID)
}

func TestOutbox_RetriesUntilSuccess(t *testing.T) {
	pusher := &fakePusher{failFirst: 2}
	outbox := mirror.NewOutbox(pusher, testConfig(), nil)

	outbox.EnqueueUpsert(store.ColServices, "biz1", models.Service{ID: "s1"})
	outbox.Close()

	assert.Equal(t, 3, pusher.callCount())
}

func TestOutbox_GivesUpAfterMaxAttempts(t *testing.T) {
	pusher := &fakePusher{failFirst: 100}
	outbox := mirror.NewOutbox(pusher, testConfig(), nil)

	outbox.EnqueueUpsert(store.ColServices, "biz1", models.Service{ID: "s1"})
	outbox.EnqueueUpsert(store.ColServices, "biz1", models.Service{ID: "s2"})
	outbox.Close()

	// 3 attempts per operation, then the next operation still runs.
	assert.Equal(t, 6, pusher.callCount())
}

func TestOutbox_NilPusherDropsQuietly(t *testing.T) {
	outbox := mirror.NewOutbox(nil, testConfig(), nil)

	outbox.EnqueueUpsert(store.ColServices, "biz1", models.Service{ID: "s1"})
	outbox.Close()
}

func TestOutbox_EnqueueNeverBlocks(t *testing.T) {
	// No worker progress: a pusher that hangs until release.
	release := make(chan struct{})
	blocking := &blockingPusher{release: release}
	cfg := testConfig()
	cfg.QueueSize = 1
	outbox := mirror.NewOutbox(blocking, cfg, nil)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			outbox.EnqueueUpsert(store.ColServices, "biz1", models.Service{ID: "s"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("enqueue blocked on a full queue")
	}
	close(release)
	outbox.Close()
}

type blockingPusher struct {
	release chan struct{}
}

func (b *blockingPusher) Push(ctx context.Context, op mirror.Op) error {
	<-b.release
	return nil
}

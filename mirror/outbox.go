package mirror

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// OpKind distinguishes outbox operations.
type OpKind int

const (
	OpUpsert OpKind = iota
	OpDelete
)

// Op is one pending remote operation.
type Op struct {
	Kind       OpKind
	Collection string
	TenantID   string
	ID         string // delete target
	Record     any    // upsert payload
}

// Pusher applies a single operation remotely.
type Pusher interface {
	Push(ctx context.Context, op Op) error
}

// OutboxConfig tunes queue depth and retry behavior. Zero values get
// defaults.
type OutboxConfig struct {
	QueueSize   int
	MaxAttempts int
	BaseDelay   time.Duration
	PushTimeout time.Duration
}

// Outbox is the fire-and-forget write path to the remote mirror. Enqueue
// never blocks and never fails the caller; a single worker drains the queue
// with retry and exponential backoff, logging what it cannot deliver. The
// local cache stays the source of truth regardless.
type Outbox struct {
	ops    chan Op
	pusher Pusher
	log    *zap.Logger
	cfg    OutboxConfig
	wg     sync.WaitGroup

	closeOnce sync.Once
}

// NewOutbox starts the worker. pusher may be nil when no remote is
// configured; operations are then dropped quietly.
func NewOutbox(pusher Pusher, cfg OutboxConfig, log *zap.Logger) *Outbox {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 500 * time.Millisecond
	}
	if cfg.PushTimeout <= 0 {
		cfg.PushTimeout = 10 * time.Second
	}
	o := &Outbox{
		ops:    make(chan Op, cfg.QueueSize),
		pusher: pusher,
		log:    log,
		cfg:    cfg,
	}
	o.wg.Add(1)
	go o.run()
	return o
}

// EnqueueUpsert queues a record replication. Implements store.Mirror.
func (o *Outbox) EnqueueUpsert(collection, tenantID string, record any) {
	o.enqueue(Op{Kind: OpUpsert, Collection: collection, TenantID: tenantID, Record: record})
}

// EnqueueDelete queues a remote delete by id. Implements store.Mirror.
func (o *Outbox) EnqueueDelete(collection, id string) {
	o.enqueue(Op{Kind: OpDelete, Collection: collection, ID: id})
}

func (o *Outbox) enqueue(op Op) {
	select {
	case o.ops <- op:
	default:
		// A full queue must not stall a local write.
		o.log.Warn("outbox full, dropping operation",
			zap.String("collection", op.Collection),
			zap.Int("kind", int(op.Kind)),
		)
	}
}

// Close stops accepting operations and waits for the worker to drain.
func (o *Outbox) Close() {
	o.closeOnce.Do(func() { close(o.ops) })
	o.wg.Wait()
}

func (o *Outbox) run() {
	defer o.wg.Done()
	for op := range o.ops {
		o.deliver(op)
	}
}

func (o *Outbox) deliver(op Op) {
	if o.pusher == nil {
		o.log.Debug("no remote configured, dropping operation",
			zap.String("collection", op.Collection))
		return
	}
	delay := o.cfg.BaseDelay
	var err error
	for attempt := 1; attempt <= o.cfg.MaxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), o.cfg.PushTimeout)
		err = o.pusher.Push(ctx, op)
		cancel()
		if err == nil {
			return
		}
		if attempt < o.cfg.MaxAttempts {
			time.Sleep(delay)
			delay *= 2
		}
	}
	o.log.Error("remote mirror write failed, giving up",
		zap.String("collection", op.Collection),
		zap.String("tenant_id", op.TenantID),
		zap.Int("attempts", o.cfg.MaxAttempts),
		zap.Error(err),
	)
}

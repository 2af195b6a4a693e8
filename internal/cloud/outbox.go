package cloud

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ravlabs/ravos/internal/profile"
)

// Outbox decouples session mutations from network pushes. It holds at
// most one pending snapshot: a newer enqueue replaces an unpushed older
// one, since each snapshot carries the full session anyway.
type Outbox struct {
	mirror *Mirror
	log    *zap.Logger

	pending chan profile.Session
	done    chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewOutbox starts the push worker. Call Close to flush and stop it.
func NewOutbox(mirror *Mirror, logger *zap.Logger) *Outbox {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &Outbox{
		mirror:  mirror,
		log:     logger,
		pending: make(chan profile.Session, 1),
		done:    make(chan struct{}),
	}
	go o.run()
	return o
}

// Enqueue schedules a session snapshot for upload, replacing any
// not-yet-pushed predecessor. It never blocks the mutating caller.
// Snapshots arriving after Close are dropped.
func (o *Outbox) Enqueue(sess profile.Session) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	for {
		select {
		case o.pending <- sess:
			return
		default:
		}
		// Slot occupied by a stale snapshot; drop it and retry.
		select {
		case <-o.pending:
		default:
		}
	}
}

// Close stops the worker after flushing any pending snapshot. It is
// idempotent.
func (o *Outbox) Close() {
	o.mu.Lock()
	if !o.closed {
		o.closed = true
		close(o.pending)
	}
	o.mu.Unlock()
	<-o.done
}

func (o *Outbox) run() {
	defer close(o.done)
	for sess := range o.pending {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		if err := o.mirror.Push(ctx, sess); err != nil {
			o.log.Warn("session push failed", zap.Error(err))
		}
		cancel()
	}
}

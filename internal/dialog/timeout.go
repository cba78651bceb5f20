package dialog

import (
	"context"
	"log/slog"
	"time"

	"github.com/gaubit/respirabot/core/logger"
)

// NotifyFunc tells an expired user their conversation was dropped.
type NotifyFunc func(userID int64, text string)

// Reaper periodically sweeps idle sessions out of the store and notifies
// their owners. Expired sessions are never persisted.
type Reaper struct {
	store    *Store
	cat      Catalog
	ttl      time.Duration
	interval time.Duration
	notify   NotifyFunc
	now      func() time.Time
}

func NewReaper(store *Store, cat Catalog, ttl, interval time.Duration, notify NotifyFunc) *Reaper {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Reaper{
		store:    store,
		cat:      cat,
		ttl:      ttl,
		interval: interval,
		notify:   notify,
		now:      time.Now,
	}
}

// Notify sets the expiry notifier. Must be called before Run.
func (r *Reaper) Notify(fn NotifyFunc) {
	r.notify = fn
}

// Run blocks sweeping until the context is cancelled.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Reaper) sweep(ctx context.Context) {
	expired := r.store.Sweep(r.now(), r.ttl)
	if len(expired) == 0 {
		return
	}

	logger.Info(ctx, "dialog", "session.expired",
		slog.Int("count", len(expired)),
		slog.Int("active", r.store.Active()),
	)
	if r.notify == nil {
		return
	}
	for _, sess := range expired {
		r.notify(sess.UserID, r.cat.Text("caducado"))
	}
}

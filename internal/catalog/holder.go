package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const defaultLoadTimeout = 5 * time.Second

// Holder owns the snapshot a server hands out. It is the only writer of
// that snapshot: loads are serialized and a new snapshot replaces the old
// one atomically. Readers never block on each other.
type Holder struct {
	Store   Store
	Timeout time.Duration
	Log     *zap.Logger
	Metrics *LoadMetrics

	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

// Current returns the held snapshot, or nil before the first successful load.
func (h *Holder) Current() *Snapshot { return h.current.Load() }

// Get returns the held snapshot, loading it on first use. A failed load is
// returned to the caller and not remembered; the next call tries again.
func (h *Holder) Get(ctx context.Context) (*Snapshot, error) {
	if s := h.current.Load(); s != nil {
		return s, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if s := h.current.Load(); s != nil {
		return s, nil
	}
	return h.loadLocked(ctx)
}

// Reload loads a fresh snapshot and swaps it in. On failure the previous
// snapshot stays in place.
func (h *Holder) Reload(ctx context.Context) (*Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loadLocked(ctx)
}

func (h *Holder) loadLocked(ctx context.Context) (*Snapshot, error) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = defaultLoadTimeout
	}

	var snap *Snapshot
	start := time.Now()
	err := withTimeout(ctx, timeout, func(ctx context.Context) error {
		var err error
		snap, err = h.Store.Load(ctx)
		return err
	})
	if err != nil && !IsLoadFailure(err) {
		err = fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	h.Metrics.observe(snap, err, time.Since(start))

	if err != nil {
		if h.Log != nil {
			h.Log.Error("catalog load failed", zap.Error(err))
		}
		return nil, err
	}

	prev := h.current.Swap(snap)
	if h.Log != nil {
		fields := []zap.Field{
			zap.String("snapshot", snap.ID.String()),
			zap.String("source", snap.Source),
			zap.Int("entries", snap.Len()),
		}
		if prev != nil {
			fields = append(fields, zap.Bool("changed", prev.Version != snap.Version))
		}
		h.Log.Info("catalog loaded", fields...)
	}
	return snap, nil
}

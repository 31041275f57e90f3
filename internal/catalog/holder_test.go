package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

// scriptedStore returns the queued results in order, then repeats the last.
type scriptedStore struct {
	mu      sync.Mutex
	results []error
	calls   atomic.Int32
}

func (s *scriptedStore) Ping(context.Context) error { return nil }

func (s *scriptedStore) Load(ctx context.Context) (*Snapshot, error) {
	n := int(s.calls.Add(1)) - 1

	s.mu.Lock()
	var err error
	if len(s.results) > 0 {
		err = s.results[min(n, len(s.results)-1)]
	}
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return NewMemStore(DemoEntries()...).Load(ctx)
}

func TestHolder_GetLoadsOnce(t *testing.T) {
	store := &scriptedStore{}
	h := &Holder{Store: store, Log: zap.NewNop()}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := h.Get(context.Background()); err != nil {
				t.Errorf("Get: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := store.calls.Load(); got != 1 {
		t.Fatalf("loads=%d want 1", got)
	}
	if h.Current() == nil {
		t.Fatalf("no current snapshot")
	}
}

func TestHolder_FailureIsNotCached(t *testing.T) {
	boom := errors.New("disk on fire")
	store := &scriptedStore{results: []error{boom, nil}}
	h := &Holder{Store: store}

	_, err := h.Get(context.Background())
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("err=%v: foreign errors must be reported as ErrSourceUnavailable", err)
	}
	if h.Current() != nil {
		t.Fatalf("failed load must not install a snapshot")
	}

	snap, err := h.Get(context.Background())
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if snap.Len() != len(DemoEntries()) {
		t.Fatalf("len=%d", snap.Len())
	}
}

func TestHolder_ReloadKeepsPreviousOnFailure(t *testing.T) {
	store := &scriptedStore{results: []error{nil, nil, ErrMalformedData}}
	reg := prometheus.NewRegistry()
	h := &Holder{Store: store, Metrics: NewLoadMetrics(reg)}

	first, err := h.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	second, err := h.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if second.ID == first.ID || h.Current() != second {
		t.Fatalf("reload did not swap the snapshot")
	}

	if _, err := h.Reload(context.Background()); !errors.Is(err, ErrMalformedData) {
		t.Fatalf("err=%v want ErrMalformedData", err)
	}
	if h.Current() != second {
		t.Fatalf("failed reload replaced the snapshot")
	}

	if got := testutil.ToFloat64(h.Metrics.Failures.WithLabelValues(reasonMalformed)); got != 1 {
		t.Fatalf("malformed failures=%v want 1", got)
	}
	if got := testutil.ToFloat64(h.Metrics.Entries); got != float64(len(DemoEntries())) {
		t.Fatalf("entries gauge=%v", got)
	}
}

package publisher

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "unibus/pkg/platform/audit"
	"unibus/pkg/platform/audit/metrics"
	"unibus/pkg/platform/audit/store/memory"
)

type failingStore struct {
	err error
}

func (s *failingStore) Append(context.Context, audit.Entry) error { return s.err }

// blockingStore holds every Append until release is closed.
type blockingStore struct {
	release chan struct{}
	mu      sync.Mutex
	count   int
}

func (s *blockingStore) Append(context.Context, audit.Entry) error {
	<-s.release
	s.mu.Lock()
	s.count++
	s.mu.Unlock()
	return nil
}

func entry(detail string) audit.Entry {
	return audit.NewEntry(context.Background(), audit.CategoryPostalCheck, map[string]string{"cep": "50740-560"}, true, detail)
}

func TestSyncAppendPersistsBeforeReturning(t *testing.T) {
	store := memory.New()
	pub := New(store)

	pub.Append(context.Background(), entry("first"))

	got, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].Detail)
}

func TestSyncAppendSurvivesCancelledContext(t *testing.T) {
	store := memory.New()
	pub := New(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pub.Append(ctx, entry("after cancel"))

	got, _ := store.List(context.Background(), 0)
	assert.Len(t, got, 1)
}

// stallingStore ignores its context and answers after delay.
type stallingStore struct {
	delay time.Duration
}

func (s *stallingStore) Append(context.Context, audit.Entry) error {
	time.Sleep(s.delay)
	return nil
}

func TestSyncAppendIsBoundedByWriteTimeout(t *testing.T) {
	var buf bytes.Buffer
	pub := New(&stallingStore{delay: 3 * time.Second},
		WithWriteTimeout(50*time.Millisecond),
		WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	pub.Append(ctx, entry("stalled"))

	assert.Less(t, time.Since(start), time.Second)
	assert.Contains(t, buf.String(), "audit write timed out")
}

func TestSyncAppendPassesDeadlineToStore(t *testing.T) {
	var gotDeadline bool
	store := storeFunc(func(ctx context.Context, _ audit.Entry) error {
		_, gotDeadline = ctx.Deadline()
		return nil
	})
	New(store, WithWriteTimeout(time.Second)).Append(context.Background(), entry("bounded"))

	assert.True(t, gotDeadline)
}

type storeFunc func(context.Context, audit.Entry) error

func (f storeFunc) Append(ctx context.Context, e audit.Entry) error { return f(ctx, e) }

func TestStoreFailureIsLoggedAndCounted(t *testing.T) {
	var buf bytes.Buffer
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	pub := New(&failingStore{err: errors.New("disk full")},
		WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))),
		WithMetrics(m),
	)

	assert.NotPanics(t, func() { pub.Append(context.Background(), entry("lost")) })
	assert.Contains(t, buf.String(), "failed to persist audit entry")
	assert.Contains(t, buf.String(), "disk full")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistFailures))
}

func TestAsyncDrainsOnClose(t *testing.T) {
	store := memory.New()
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	pub := New(store, WithAsyncBuffer(10), WithMetrics(m))

	for i := 0; i < 5; i++ {
		pub.Append(context.Background(), entry("queued"))
	}
	pub.Close()
	pub.Close()

	got, _ := store.List(context.Background(), 0)
	assert.Len(t, got, 5)
	assert.Equal(t, 5.0, testutil.ToFloat64(m.EntriesEnqueued))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.QueueDepth))
}

func TestAsyncFullBufferDropsWithoutBlocking(t *testing.T) {
	var buf bytes.Buffer
	store := &blockingStore{release: make(chan struct{})}
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	pub := New(store,
		WithAsyncBuffer(1),
		WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))),
		WithMetrics(m),
	)

	done := make(chan struct{})
	go func() {
		// one in flight in the drain goroutine, one buffered, the rest dropped
		for i := 0; i < 10; i++ {
			pub.Append(context.Background(), entry("burst"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Append blocked on a full buffer")
	}

	close(store.release)
	pub.Close()

	assert.GreaterOrEqual(t, testutil.ToFloat64(m.EntriesDropped), 8.0)
	assert.Contains(t, buf.String(), "audit buffer full")
}

func TestAppendAfterCloseIsDropped(t *testing.T) {
	store := memory.New()
	pub := New(store, WithAsyncBuffer(4))
	pub.Close()

	assert.NotPanics(t, func() { pub.Append(context.Background(), entry("late")) })
	got, _ := store.List(context.Background(), 0)
	assert.Empty(t, got)
}

func TestNewPanicsWithoutStore(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}

package memstore_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/go-authz-server/grants"
	"github.com/jrsteele09/go-authz-server/grants/memstore"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, options ...memstore.Option) *memstore.Store {
	t.Helper()
	options = append([]memstore.Option{memstore.WithJanitorInterval(time.Hour)}, options...)
	store := memstore.New(options...)
	t.Cleanup(store.Stop)
	return store
}

func TestStore_PutAndTake(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Put(ctx, "request:abc", []byte(`{"client_id":"c1"}`), time.Minute))

	value, err := store.Take(ctx, "request:abc")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"client_id":"c1"}`), value)
}

func TestStore_TakeRemoves(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Put(ctx, "code:xyz", []byte("grant"), time.Minute))

	_, err := store.Take(ctx, "code:xyz")
	require.NoError(t, err)

	_, err = store.Take(ctx, "code:xyz")
	require.ErrorIs(t, err, grants.ErrNotFound)
}

func TestStore_TakeMissingKey(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Take(context.Background(), "code:never-stored")
	require.ErrorIs(t, err, grants.ErrNotFound)
}

func TestStore_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Put(ctx, "request:abc", []byte("old"), time.Minute))
	require.NoError(t, store.Put(ctx, "request:abc", []byte("new"), time.Minute))

	value, err := store.Take(ctx, "request:abc")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), value)
}

func TestStore_Expiry(t *testing.T) {
	ctx := context.Background()

	var mu sync.Mutex
	now := time.Now()
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	store := newTestStore(t, memstore.WithNowTime(clock))

	require.NoError(t, store.Put(ctx, "code:expiring", []byte("grant"), 5*time.Minute))

	mu.Lock()
	now = now.Add(6 * time.Minute)
	mu.Unlock()

	_, err := store.Take(ctx, "code:expiring")
	require.ErrorIs(t, err, grants.ErrNotFound)
}

func TestStore_ValidatesInput(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.Error(t, store.Put(ctx, "", []byte("v"), time.Minute))
	require.Error(t, store.Put(ctx, "k", []byte("v"), 0))

	_, err := store.Take(ctx, "")
	require.Error(t, err)
}

func TestStore_ConcurrentTakeSingleWinner(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Put(ctx, "code:contested", []byte("grant"), time.Minute))

	const attempts = 50
	var successes, notFound int64
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := store.Take(ctx, "code:contested")
			switch {
			case err == nil:
				atomic.AddInt64(&successes, 1)
			case err == grants.ErrNotFound:
				atomic.AddInt64(&notFound, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	close(start)
	wg.Wait()

	require.EqualValues(t, 1, successes)
	require.EqualValues(t, attempts-1, notFound)
}

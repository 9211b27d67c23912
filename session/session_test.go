package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/docsight/docsight/core"
	"github.com/docsight/docsight/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestIndex(t *testing.T, texts ...string) *index.Index {
	t.Helper()
	chunks := make([]core.Chunk, len(texts))
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		chunks[i] = core.Chunk{
			Id:       core.IDFromContent(text),
			Position: i,
			Text:     text,
		}
		vectors[i] = []float32{float32(i + 1), 1, 0}
	}
	idx, err := index.Build("test-model", chunks, vectors)
	require.NoError(t, err)
	return idx
}

func TestSessionLifecycle(t *testing.T) {
	store := NewStore()

	sess, err := store.GetOrCreate("user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", sess.ID())
	assert.False(t, sess.Ready())
	assert.Nil(t, sess.Index())

	again, err := store.GetOrCreate("user-1")
	require.NoError(t, err)
	assert.Same(t, sess, again)

	_, err = store.GetOrCreate("")
	assert.ErrorIs(t, err, core.ErrEmptySessionID)
}

func TestSessionIngestSwap(t *testing.T) {
	store := NewStore()
	sess, err := store.GetOrCreate("user-1")
	require.NoError(t, err)

	first := buildTestIndex(t, "alpha", "beta")
	err = sess.RunIngest(1, func() (*index.Index, error) {
		return first, nil
	})
	require.NoError(t, err)
	assert.True(t, sess.Ready())
	assert.Same(t, first, sess.Index())

	stats := sess.Stats()
	assert.Equal(t, 1, stats.Documents)
	assert.Equal(t, 2, stats.Chunks)
	assert.False(t, stats.IngestedAt.IsZero())

	second := buildTestIndex(t, "gamma")
	err = sess.RunIngest(2, func() (*index.Index, error) {
		return second, nil
	})
	require.NoError(t, err)
	assert.Same(t, second, sess.Index())
	assert.Equal(t, 1, sess.Stats().Chunks)
}

func TestSessionIngestFailureKeepsOldIndex(t *testing.T) {
	store := NewStore()
	sess, err := store.GetOrCreate("user-1")
	require.NoError(t, err)

	first := buildTestIndex(t, "alpha")
	require.NoError(t, sess.RunIngest(1, func() (*index.Index, error) {
		return first, nil
	}))

	buildErr := errors.New("embedding service down")
	err = sess.RunIngest(1, func() (*index.Index, error) {
		return nil, buildErr
	})
	assert.ErrorIs(t, err, buildErr)
	assert.Same(t, first, sess.Index())
	assert.Equal(t, 1, sess.Stats().Documents)
}

func TestSessionConcurrentReadDuringIngest(t *testing.T) {
	store := NewStore()
	sess, err := store.GetOrCreate("user-1")
	require.NoError(t, err)

	first := buildTestIndex(t, "alpha", "beta")
	require.NoError(t, sess.RunIngest(1, func() (*index.Index, error) {
		return first, nil
	}))

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				idx := sess.Index()
				// Readers must always see a complete index.
				if idx == nil || idx.Len() == 0 {
					t.Error("observed incomplete index during swap")
					return
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		replacement := buildTestIndex(t, "gamma", "delta", "epsilon")
		require.NoError(t, sess.RunIngest(1, func() (*index.Index, error) {
			return replacement, nil
		}))
	}
	close(done)
	wg.Wait()
}

func TestSessionIsolation(t *testing.T) {
	store := NewStore()

	a, err := store.GetOrCreate("user-a")
	require.NoError(t, err)
	b, err := store.GetOrCreate("user-b")
	require.NoError(t, err)

	require.NoError(t, a.RunIngest(1, func() (*index.Index, error) {
		return buildTestIndex(t, "only in a"), nil
	}))

	assert.True(t, a.Ready())
	assert.False(t, b.Ready())
	assert.Nil(t, b.Index())
}

type recordingPurger struct {
	mu     sync.Mutex
	purged []string
}

func (p *recordingPurger) PurgeSession(_ context.Context, sessionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.purged = append(p.purged, sessionID)
	return nil
}

func (p *recordingPurger) sessions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.purged...)
}

func TestStoreCapacityEviction(t *testing.T) {
	purger := &recordingPurger{}
	store := NewStore(WithCapacity(2), WithPurger(purger))

	_, err := store.GetOrCreate("user-1")
	require.NoError(t, err)
	_, err = store.GetOrCreate("user-2")
	require.NoError(t, err)
	_, err = store.GetOrCreate("user-3")
	require.NoError(t, err)

	assert.Equal(t, 2, store.Len())
	assert.Equal(t, []string{"user-1"}, purger.sessions())

	_, ok := store.Get("user-1")
	assert.False(t, ok)
	_, ok = store.Get("user-3")
	assert.True(t, ok)
}

func TestStoreIdleTTLRefreshedByAccess(t *testing.T) {
	store := NewStore(WithTTL(300 * time.Millisecond))

	created, err := store.GetOrCreate("user-1")
	require.NoError(t, err)

	// Keep touching the session past the original expiry; an active
	// session must survive.
	for i := 0; i < 3; i++ {
		time.Sleep(150 * time.Millisecond)
		sess, err := store.GetOrCreate("user-1")
		require.NoError(t, err)
		assert.Same(t, created, sess, "active session was evicted at touch %d", i)
	}

	// Once idle past the TTL, the session expires.
	time.Sleep(400 * time.Millisecond)
	_, ok := store.Get("user-1")
	assert.False(t, ok)
}

func TestStoreRemovePurgesHistory(t *testing.T) {
	purger := &recordingPurger{}
	store := NewStore(WithPurger(purger))

	_, err := store.GetOrCreate("user-1")
	require.NoError(t, err)

	assert.True(t, store.Remove("user-1"))
	assert.False(t, store.Remove("user-1"))
	assert.Equal(t, []string{"user-1"}, purger.sessions())
	assert.Equal(t, 0, store.Len())
}

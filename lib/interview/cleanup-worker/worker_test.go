package cleanupworker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeCleaner struct {
	calls int32
	ttl   atomic.Value
}

func (f *fakeCleaner) CleanupIdle(ttl time.Duration) int {
	f.ttl.Store(ttl)
	atomic.AddInt32(&f.calls, 1)
	return 1
}

func TestWorker(t *testing.T) {
	t.Run(`cleanup is called periodically check`, func(t *testing.T) {
		cleaner := &fakeCleaner{}
		w := newWorker(cleaner, time.Hour, time.Millisecond)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go w.Run(ctx, w.handle)

		require.Eventually(t, func() bool { return atomic.LoadInt32(&cleaner.calls) >= 2 }, time.Second, time.Millisecond)
		require.Equal(t, time.Hour, cleaner.ttl.Load())
	})
}

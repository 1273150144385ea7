package lock

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var (
	lockMap sync.Map

	ErrLockTimeout = errors.New("не удалось получить блокировку")
)

const retryDelay = 20 * time.Millisecond

// WithDelay выполняет safeCode под блокировкой key, ожидая освобождения не дольше wait.
// success=false если блокировку получить не удалось, в этом случае err содержит причину.
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	isTimeout := time.NewTimer(wait)
	defer isTimeout.Stop()
	for {
		if _, loaded := lockMap.LoadOrStore(key, true); !loaded {
			break
		}
		select {
		case <-isTimeout.C:
			return false, errors.Wrapf(ErrLockTimeout, "ключ: %v", key)
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	defer lockMap.Delete(key)
	return true, safeCode()
}

func IsLocked(key string) bool {
	_, ok := lockMap.Load(key)
	return ok
}

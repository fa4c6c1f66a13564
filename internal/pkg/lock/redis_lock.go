package lock

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SweepLock is a best-effort mutex over Redis so that two service instances
// do not burn cycles sweeping the same backlog at the same time. Correctness
// never depends on it: the conditional status update in the repository is
// what guarantees at-most-once transitions.
type SweepLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewSweepLock(client *redis.Client, key string, ttl time.Duration) *SweepLock {
	return &SweepLock{client: client, key: key, ttl: ttl}
}

// TryAcquire returns true when this instance holds the lock. A nil client or
// an unreachable Redis yields true so a degraded cache never blocks sweeps.
func (l *SweepLock) TryAcquire(ctx context.Context) bool {
	if l == nil || l.client == nil {
		return true
	}
	ok, err := l.client.SetNX(ctx, l.key, "1", l.ttl).Result()
	if err != nil {
		return true
	}
	return ok
}

func (l *SweepLock) Release(ctx context.Context) {
	if l == nil || l.client == nil {
		return
	}
	l.client.Del(ctx, l.key)
}

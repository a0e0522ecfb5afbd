package cache

import (
	"context"
	"errors"
	"log"
	"time"

	"sorteios_api/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultReconciliationLockTTL = 30 * time.Second
	reconciliationLockPrefix     = "payment_reconcile_lock:"
)

var ErrRedisClientRequired = errors.New("redis client is required")

// releaseScript deletes the key only while it still holds the caller's token, so
// a run whose lock already expired cannot drop the lock of the next run.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisReconciliationLock is a per-payment mutex shared by every service instance.
// The TTL bounds how long a crashed run can block others.
type RedisReconciliationLock struct {
	client *redis.Client
	ttl    time.Duration
}

var _ interfaces.IReconciliationLock = (*RedisReconciliationLock)(nil)

func NewRedisReconciliationLock(client *redis.Client, ttl time.Duration) (*RedisReconciliationLock, error) {
	if client == nil {
		return nil, ErrRedisClientRequired
	}
	if ttl <= 0 {
		ttl = DefaultReconciliationLockTTL
	}
	return &RedisReconciliationLock{client: client, ttl: ttl}, nil
}

func (l *RedisReconciliationLock) Acquire(ctx context.Context, paymentID string) (func(context.Context) error, bool, error) {
	key := reconciliationLockPrefix + paymentID
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		log.Printf("[cache][lock] acquire failed payment_id=%s err=%v", paymentID, err)
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	release := func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		return nil
	}
	return release, true, nil
}

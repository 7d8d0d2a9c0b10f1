package lock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gdugdh24/purposematch/internal/domain"
)

// ErrLockNotHeld is returned when releasing a lock that expired or was taken over.
var ErrLockNotHeld = errors.New("lock not held")

// ReleaseFunc releases a previously acquired lock.
type ReleaseFunc = func(ctx context.Context) error

var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// RedisLocker provides per-key mutual exclusion across service instances.
type RedisLocker struct {
	client    *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

func NewRedisLocker(client *redis.Client, keyPrefix string, logger *zap.Logger) *RedisLocker {
	if keyPrefix == "" {
		keyPrefix = "lock:"
	}
	return &RedisLocker{
		client:    client,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

// Acquire takes the lock for key or fails with domain.ErrGenerationInProgress
// when somebody else holds it.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (ReleaseFunc, error) {
	lockKey := l.keyPrefix + key
	token := uuid.New().String()

	ok, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrGenerationInProgress
	}

	l.logger.Debug("acquired lock", zap.String("key", lockKey))

	return func(ctx context.Context) error {
		released, err := releaseScript.Run(ctx, l.client, []string{lockKey}, token).Int64()
		if err != nil {
			return err
		}
		if released == 0 {
			return ErrLockNotHeld
		}
		return nil
	}, nil
}

// NoopLocker never blocks. Used when redis is not configured.
type NoopLocker struct{}

func (NoopLocker) Acquire(context.Context, string, time.Duration) (ReleaseFunc, error) {
	return func(context.Context) error { return nil }, nil
}

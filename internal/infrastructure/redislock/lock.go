package redislock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLocked = errors.New("Lock is held")

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock is a held lock. Release is safe to call more than once.
type Lock struct {
	rdb   *redis.Client
	key   string
	token string
}

// Acquire takes key with SET NX and the given TTL. A nil client yields a no-op lock.
func Acquire(ctx context.Context, rdb *redis.Client, key string, ttl time.Duration) (*Lock, error) {
	if rdb == nil {
		return &Lock{}, nil
	}
	token := uuid.NewString()
	ok, err := rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLocked
	}
	return &Lock{rdb: rdb, key: key, token: token}, nil
}

func (l *Lock) Release(ctx context.Context) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return releaseScript.Run(ctx, l.rdb, []string{l.key}, l.token).Err()
}

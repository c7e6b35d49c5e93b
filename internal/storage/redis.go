package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const clearBatch = 100

// Redis keeps blobs as plain string keys under a namespace prefix.
type Redis struct {
	RDB    *redis.Client
	prefix string
	sf     singleflight.Group
}

func DialRedis(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
}

func NewRedis(rdb *redis.Client, prefix string) *Redis {
	return &Redis{RDB: rdb, prefix: prefix}
}

func (r *Redis) k(key string) string { return r.prefix + key }

// Get coalesces concurrent loads of one key into a single round trip. The
// shared fetch ignores any one caller's cancellation; each caller still stops
// waiting when its own ctx ends.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fetchCtx := context.WithoutCancel(ctx)
	ch := r.sf.DoChan(key, func() (any, error) {
		b, e := r.RDB.Get(fetchCtx, r.k(key)).Bytes()
		if errors.Is(e, redis.Nil) {
			return []byte(nil), nil
		}
		return b, e
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	r.sf.Forget(key)
	return r.RDB.Set(ctx, r.k(key), value, 0).Err()
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	r.sf.Forget(key)
	return r.RDB.Del(ctx, r.k(key)).Err()
}

// Clear deletes every key under the prefix. Keys outside it are untouched.
func (r *Redis) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := r.RDB.Scan(ctx, cursor, r.prefix+"*", clearBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.RDB.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

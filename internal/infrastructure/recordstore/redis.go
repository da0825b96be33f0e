package recordstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisMedium stores each collection as a string value with a companion
// "<key>:version" counter. PutIfVersion uses WATCH/MULTI on the counter.
type RedisMedium struct {
	client *redis.Client
	prefix string
}

// NewRedisMedium creates a medium whose keys live under prefix, e.g.
// "ticketdesk:".
func NewRedisMedium(client *redis.Client, prefix string) *RedisMedium {
	return &RedisMedium{client: client, prefix: prefix}
}

func (r *RedisMedium) dataKey(key string) string {
	return r.prefix + key
}

func (r *RedisMedium) versionKey(key string) string {
	return r.prefix + key + ":version"
}

func (r *RedisMedium) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, r.dataKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}
	return data, true, nil
}

func (r *RedisMedium) GetVersioned(ctx context.Context, key string) ([]byte, int64, bool, error) {
	var dataCmd *redis.StringCmd
	var versionCmd *redis.StringCmd

	_, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		dataCmd = pipe.Get(ctx, r.dataKey(key))
		versionCmd = pipe.Get(ctx, r.versionKey(key))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}

	version, err := versionCmd.Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, fmt.Errorf("invalid version for %s: %w", key, err)
	}

	data, err := dataCmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}
	return data, version, true, nil
}

func (r *RedisMedium) Put(ctx context.Context, key string, data []byte) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.dataKey(key), data, 0)
		pipe.Incr(ctx, r.versionKey(key))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store %s in redis: %w", key, err)
	}
	return nil
}

func (r *RedisMedium) PutIfVersion(ctx context.Context, key string, data []byte, expected int64) error {
	vKey := r.versionKey(key)

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != expected {
			return ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.dataKey(key), data, 0)
			pipe.Set(ctx, vKey, expected+1, 0)
			return nil
		})
		return err
	}, vKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrVersionConflict), errors.Is(err, redis.TxFailedErr):
		return ErrVersionConflict
	default:
		return fmt.Errorf("failed to store %s in redis: %w", key, err)
	}
}

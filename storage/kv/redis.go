package kv

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/kylycht/coinboard/storage"
)

type redisKV struct {
	client    redis.UniversalClient // works with both single and cluster
	namespace string                // prefix of every key, may be empty
}

func NewRedis(client redis.UniversalClient, namespace string) storage.KV {
	return &redisKV{client: client, namespace: namespace}
}

func (r *redisKV) key(key string) string {
	if r.namespace == "" {
		return key
	}

	return r.namespace + ":" + key
}

// Get implements storage.KV.
func (r *redisKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}

	return value, err
}

// Set implements storage.KV.
// Values never expire.
func (r *redisKV) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

// Close implements storage.KV.
func (r *redisKV) Close(context.Context) error {
	return r.client.Close()
}

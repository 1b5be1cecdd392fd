package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisKV struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// NewRedisKV substrate backed by redis string keys under prefix
func NewRedisKV(client *redis.Client, prefix string, timeout time.Duration) KVStore {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &redisKV{client: client, prefix: prefix, timeout: timeout}
}

func (r *redisKV) Read(key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (r *redisKV) Write(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return r.client.Set(ctx, r.prefix+key, value, 0).Err()
}

func (r *redisKV) Dump() (map[string][]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	out := make(map[string][]byte)
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		full := iter.Val()
		data, err := r.client.Get(ctx, full).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[strings.TrimPrefix(full, r.prefix)] = data
	}
	return out, iter.Err()
}

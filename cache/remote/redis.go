// Package remote implements cache backends backed by external stores.
package remote

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/botirk38/vectorize/types"
	"github.com/botirk38/vectorize/vectors"
	"github.com/redis/go-redis/v9"
)

// RedisBackend implements types.CacheBackend on Redis, so cached
// vectors survive process restarts and can be shared between replicas.
// Vectors are stored as little-endian float32 buffers under prefixed
// hash keys, with an optional TTL.
type RedisBackend struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// parseRedisURL parses a Redis URL and returns redis.Options.
func parseRedisURL(connectionString string) (*redis.Options, error) {
	// Handle redis:// or rediss:// URLs
	if strings.HasPrefix(connectionString, "redis://") || strings.HasPrefix(connectionString, "rediss://") {
		parsedURL, err := url.Parse(connectionString)
		if err != nil {
			return nil, fmt.Errorf("invalid Redis URL: %w", err)
		}

		opts := &redis.Options{
			Addr: parsedURL.Host,
		}

		if parsedURL.Scheme == "rediss" {
			opts.TLSConfig = &tls.Config{
				MinVersion: tls.VersionTLS12,
			}
		}

		if parsedURL.User != nil {
			opts.Username = parsedURL.User.Username()
			if password, ok := parsedURL.User.Password(); ok {
				opts.Password = password
			}
		}

		if parsedURL.Path != "" && parsedURL.Path != "/" {
			dbStr := strings.TrimPrefix(parsedURL.Path, "/")
			if db, err := strconv.Atoi(dbStr); err == nil {
				opts.DB = db
			}
		}

		return opts, nil
	}

	// Simple host:port address
	return &redis.Options{
		Addr: connectionString,
	}, nil
}

// NewRedisBackend creates a new Redis backend.
func NewRedisBackend(config types.BackendConfig) (*RedisBackend, error) {
	opts, err := parseRedisURL(config.ConnectionString)
	if err != nil {
		return nil, err
	}

	if config.Username != "" {
		opts.Username = config.Username
	}
	if config.Password != "" {
		opts.Password = config.Password
	}
	if config.Database != 0 {
		opts.DB = config.Database
	}

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := config.Prefix
	if prefix == "" {
		prefix = "vectorize:"
	}

	return &RedisBackend{
		client: client,
		prefix: prefix,
		ttl:    config.TTL,
	}, nil
}

// Set stores a vector in Redis as a little-endian float32 buffer.
func (b *RedisBackend) Set(ctx context.Context, key string, vector types.Vector) error {
	return b.client.Set(ctx, b.prefix+key, vectors.ToBytes(vector), b.ttl).Err()
}

// Get retrieves a vector from Redis.
func (b *RedisBackend) Get(ctx context.Context, key string) (types.Vector, bool, error) {
	data, err := b.client.Get(ctx, b.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	vector, err := vectors.FromBytes(data)
	if err != nil {
		return nil, false, fmt.Errorf("corrupt vector for key %s: %w", key, err)
	}
	return vector, true, nil
}

// Flush removes all entries under this backend's prefix.
func (b *RedisBackend) Flush(ctx context.Context) error {
	iter := b.client.Scan(ctx, 0, b.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := b.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Len counts the entries under this backend's prefix.
func (b *RedisBackend) Len(ctx context.Context) (int, error) {
	count := 0
	iter := b.client.Scan(ctx, 0, b.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	return count, iter.Err()
}

// Close closes the Redis connection.
func (b *RedisBackend) Close() error {
	return b.client.Close()
}

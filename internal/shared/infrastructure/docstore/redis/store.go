// Package redis stores documents as namespaced Redis string keys.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/docstore"
)

// ValueMaxSize is the largest document the backend accepts.
const ValueMaxSize = 8 * 1024 * 1024

// ErrValueTooBig is returned by Put for oversized documents.
var ErrValueTooBig = errors.New("document exceeds redis value limit")

func init() {
	docstore.Register(docstore.DriverRedis, func(ctx context.Context, cfg docstore.Config) (docstore.Store, error) {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return New(client, cfg.Namespace), nil
	})
}

// Store implements docstore.Store on Redis. Keys are namespaced as
// {namespace}:doc:{key}.
type Store struct {
	client    *redis.Client
	namespace string
}

// New wraps an existing client.
func New(client *redis.Client, namespace string) *Store {
	if namespace == "" {
		namespace = "pytron"
	}
	return &Store{client: client, namespace: namespace}
}

func (s *Store) namespaceKey(key string) string {
	return fmt.Sprintf("%s:doc:%s", s.namespace, key)
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.namespaceKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, docstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", key, err)
	}
	return val, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if len(value) > ValueMaxSize {
		return ErrValueTooBig
	}
	if err := s.client.Set(ctx, s.namespaceKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to put document %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.namespaceKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete document %s: %w", key, err)
	}
	return nil
}

// Keys lists the document keys stored under the namespace.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	prefix := s.namespaceKey("")
	var keys []string
	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Driver() docstore.Driver {
	return docstore.DriverRedis
}

func (s *Store) Close() error {
	return s.client.Close()
}

// Package codes stores short-lived one-time login codes. Redis backs the
// store when available so codes survive restarts and work across replicas;
// without Redis it degrades to an in-process map.
package codes

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"promoback/internal/platform/config"
)

type Store interface {
	Put(ctx context.Context, promoterID, code string, ttl time.Duration) error
	// Take returns true and consumes the code when it matches.
	Take(ctx context.Context, promoterID, code string) (bool, error)
}

// Generate returns a six-digit numeric code.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// New picks the Redis store when the server answers a ping, otherwise the
// in-memory fallback.
func New(cfg config.Config) Store {
	if cfg.RedisAddr == "" {
		return NewMemory()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return NewMemory()
	}
	return &redisStore{client: client}
}

type redisStore struct {
	client *redis.Client
}

func (s *redisStore) key(promoterID string) string {
	return "login_code:" + promoterID
}

func (s *redisStore) Put(ctx context.Context, promoterID, code string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(promoterID), code, ttl).Err()
}

func (s *redisStore) Take(ctx context.Context, promoterID, code string) (bool, error) {
	stored, err := s.client.Get(ctx, s.key(promoterID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != code {
		return false, nil
	}
	if err := s.client.Del(ctx, s.key(promoterID)).Err(); err != nil {
		return false, err
	}
	return true, nil
}

type memoryEntry struct {
	code    string
	expires time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemory() Store {
	return &memoryStore{entries: make(map[string]memoryEntry)}
}

func (s *memoryStore) Put(ctx context.Context, promoterID, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[promoterID] = memoryEntry{code: code, expires: time.Now().Add(ttl)}
	return nil
}

func (s *memoryStore) Take(ctx context.Context, promoterID, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[promoterID]
	if !ok || time.Now().After(entry.expires) || entry.code != code {
		return false, nil
	}
	delete(s.entries, promoterID)
	return true, nil
}

// Package nonce stores the per-user anti-forgery tokens required by the
// state-changing endpoints.
package nonce

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	noncePrefix    = "support:nonce:"
	nonceTTL       = 24 * time.Hour
	nonceRandBytes = 16
)

// Store issues and checks anti-forgery nonces.
type Store interface {
	Issue(ctx context.Context, userID uint) (string, error)
	Validate(ctx context.Context, userID uint, nonce string) (bool, error)
}

// RedisStore keeps one active nonce per user. Issue is idempotent within the
// TTL so page reloads do not invalidate forms already rendered.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func nonceKey(userID uint) string {
	return noncePrefix + strconv.FormatUint(uint64(userID), 10)
}

func (s *RedisStore) Issue(ctx context.Context, userID uint) (string, error) {
	key := nonceKey(userID)

	existing, err := s.client.Get(ctx, key).Result()
	if err == nil && existing != "" {
		return existing, nil
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("failed to read nonce: %w", err)
	}

	buf := make([]byte, nonceRandBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	fresh := hex.EncodeToString(buf)

	if err := s.client.Set(ctx, key, fresh, nonceTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store nonce: %w", err)
	}
	return fresh, nil
}

func (s *RedisStore) Validate(ctx context.Context, userID uint, nonce string) (bool, error) {
	if nonce == "" {
		return false, nil
	}

	stored, err := s.client.Get(ctx, nonceKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read nonce: %w", err)
	}

	return subtle.ConstantTimeCompare([]byte(stored), []byte(nonce)) == 1, nil
}

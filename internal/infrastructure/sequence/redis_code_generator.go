package sequence

import (
	"context"
	"fmt"
	"time"

	appdocument "github.com/salonops/backend/internal/application/document"
	"github.com/redis/go-redis/v9"
)

// RedisCodeGenerator issues document codes from a Redis counter.
// Codes look like ORD-20240115-0001 and the counter resets daily,
// which keeps codes short while staying unique across instances.
type RedisCodeGenerator struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisCodeGenerator creates a generator with its own Redis client
func NewRedisCodeGenerator(cfg RedisConfig) (*RedisCodeGenerator, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCodeGenerator{
		client:    client,
		keyPrefix: "sequence:document:",
	}, nil
}

// NewRedisCodeGeneratorWithClient creates a generator with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisCodeGeneratorWithClient(client *redis.Client, keyPrefix string) *RedisCodeGenerator {
	if keyPrefix == "" {
		keyPrefix = "sequence:document:"
	}
	return &RedisCodeGenerator{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Next returns the next code for the given prefix.
// INCR is atomic, so concurrent callers always get distinct numbers.
func (g *RedisCodeGenerator) Next(ctx context.Context, prefix string) (string, error) {
	day := time.Now().UTC().Format("20060102")
	key := fmt.Sprintf("%s%s:%s", g.keyPrefix, prefix, day)

	seq, err := g.client.Incr(ctx, key).Result()
	if err != nil {
		return "", fmt.Errorf("failed to increment document sequence: %w", err)
	}

	// Stale daily counters expire on their own. The TTL is refreshed on
	// every call, which is harmless since the key name embeds the day.
	if seq == 1 {
		g.client.Expire(ctx, key, 48*time.Hour)
	}

	return fmt.Sprintf("%s-%s-%04d", prefix, day, seq), nil
}

// Close closes the Redis client
func (g *RedisCodeGenerator) Close() error {
	return g.client.Close()
}

// Ensure RedisCodeGenerator implements CodeGenerator
var _ appdocument.CodeGenerator = (*RedisCodeGenerator)(nil)

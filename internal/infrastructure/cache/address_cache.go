package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	appcustomer "github.com/softhouse/customers/internal/application/customer"
	"github.com/softhouse/customers/internal/domain/customer"
	"github.com/softhouse/customers/internal/infrastructure/config"
)

// RedisAddressCache implements the application AddressCache using Redis.
// Entries are keyed by postal code and expire after the configured TTL,
// so stale lookup data is eventually refreshed from the store.
type RedisAddressCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisAddressCache creates a Redis-backed address cache
func NewRedisAddressCache(cfg *config.RedisConfig) (*RedisAddressCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisAddressCache{
		client:    client,
		keyPrefix: "address:",
		ttl:       cfg.TTL,
	}, nil
}

// Ping checks Redis reachability
func (c *RedisAddressCache) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err()
}

// NewRedisAddressCacheWithClient creates a cache with an existing Redis client
// This is useful for testing or when sharing a client across components
func NewRedisAddressCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisAddressCache {
	if keyPrefix == "" {
		keyPrefix = "address:"
	}
	return &RedisAddressCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Get returns the cached address for the postal code, or nil on a miss
func (c *RedisAddressCache) Get(ctx context.Context, postalCode string) (*customer.Address, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+postalCode).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached address: %w", err)
	}

	var address customer.Address
	if err := json.Unmarshal(data, &address); err != nil {
		// Corrupt entry, treat as a miss
		return nil, nil
	}
	return &address, nil
}

// Set stores the address under its postal code with the configured TTL
func (c *RedisAddressCache) Set(ctx context.Context, address *customer.Address) error {
	data, err := json.Marshal(address)
	if err != nil {
		return fmt.Errorf("failed to encode address: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+address.PostalCode, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache address: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisAddressCache) Close() error {
	return c.client.Close()
}

// MemoryAddressCache is an in-process AddressCache for single-instance
// deployments and tests. Entries never expire.
type MemoryAddressCache struct {
	mu        sync.RWMutex
	addresses map[string]customer.Address
}

// NewMemoryAddressCache creates an in-memory address cache
func NewMemoryAddressCache() *MemoryAddressCache {
	return &MemoryAddressCache{
		addresses: make(map[string]customer.Address),
	}
}

// Get returns the cached address for the postal code, or nil on a miss
func (c *MemoryAddressCache) Get(_ context.Context, postalCode string) (*customer.Address, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if address, ok := c.addresses[postalCode]; ok {
		return &address, nil
	}
	return nil, nil
}

// Set stores the address under its postal code
func (c *MemoryAddressCache) Set(_ context.Context, address *customer.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.addresses[address.PostalCode] = *address
	return nil
}

// Ensure both caches implement the application AddressCache
var (
	_ appcustomer.AddressCache = (*RedisAddressCache)(nil)
	_ appcustomer.AddressCache = (*MemoryAddressCache)(nil)
)

package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"salesdocs/internal/domain"
	"salesdocs/internal/port"
)

// kv is the subset of *redis.Client the store needs.
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type printConfigStore struct {
	rdb    kv
	prefix string
}

// NewPrintConfigStore creates a Redis-backed PrintConfigStore. Keys read
// {prefix}:print_config:{tenant}:{type} and never expire.
func NewPrintConfigStore(rdb kv, prefix string) port.PrintConfigStore {
	if prefix == "" {
		prefix = "salesdocs"
	}
	return &printConfigStore{rdb: rdb, prefix: prefix}
}

// PrintConfigKey returns the Redis key of a tenant's print configuration.
func PrintConfigKey(prefix string, tenantID uuid.UUID, docType domain.DocumentType) string {
	return fmt.Sprintf("%s:print_config:%s:%s", prefix, tenantID, docType)
}

func (s *printConfigStore) Load(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType) (domain.PrintConfig, error) {
	raw, err := s.rdb.Get(ctx, PrintConfigKey(s.prefix, tenantID, docType)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.DefaultPrintConfig(), nil
	}
	if err != nil {
		return domain.PrintConfig{}, fmt.Errorf("printConfigStore.Load: %w", err)
	}

	cfg := domain.DefaultPrintConfig()
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return domain.PrintConfig{}, fmt.Errorf("printConfigStore.Load decode: %w", err)
	}
	return cfg, nil
}

func (s *printConfigStore) Save(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, cfg domain.PrintConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("printConfigStore.Save encode: %w", err)
	}
	if err := s.rdb.Set(ctx, PrintConfigKey(s.prefix, tenantID, docType), raw, 0).Err(); err != nil {
		return fmt.Errorf("printConfigStore.Save: %w", err)
	}
	return nil
}

func (s *printConfigStore) Reset(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType) error {
	if err := s.rdb.Del(ctx, PrintConfigKey(s.prefix, tenantID, docType)).Err(); err != nil {
		return fmt.Errorf("printConfigStore.Reset: %w", err)
	}
	return nil
}

type memoryPrintConfigStore struct {
	mu      sync.RWMutex
	configs map[string]domain.PrintConfig
}

// NewMemoryPrintConfigStore keeps print configurations in process memory. It is used
// when no Redis address is configured; values are lost on restart.
func NewMemoryPrintConfigStore() port.PrintConfigStore {
	return &memoryPrintConfigStore{configs: make(map[string]domain.PrintConfig)}
}

func (s *memoryPrintConfigStore) Load(_ context.Context, tenantID uuid.UUID, docType domain.DocumentType) (domain.PrintConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if cfg, ok := s.configs[PrintConfigKey("", tenantID, docType)]; ok {
		return cfg, nil
	}
	return domain.DefaultPrintConfig(), nil
}

func (s *memoryPrintConfigStore) Save(_ context.Context, tenantID uuid.UUID, docType domain.DocumentType, cfg domain.PrintConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[PrintConfigKey("", tenantID, docType)] = cfg
	return nil
}

func (s *memoryPrintConfigStore) Reset(_ context.Context, tenantID uuid.UUID, docType domain.DocumentType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.configs, PrintConfigKey("", tenantID, docType))
	return nil
}

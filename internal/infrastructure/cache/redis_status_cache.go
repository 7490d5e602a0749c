package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ingressos_checkout/internal/domain/entities"
	"ingressos_checkout/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const (
	preferenceKeyPrefix = "checkout:preference:"
	webhookKeyPrefix    = "checkout:webhook:"

	defaultStatusTTL   = 10 * time.Second
	terminalTTLFactor  = 30
	defaultWebhookLock = 24 * time.Hour
)

// RedisStatusCache keeps the preference snapshot polled by the browser.
// Terminal snapshots never change, so they live longer than pending ones.
type RedisStatusCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

var _ interfaces.IPreferenceStatusCache = (*RedisStatusCache)(nil)

func NewRedisStatusCache(rdb redis.Cmdable, ttl time.Duration) *RedisStatusCache {
	if ttl <= 0 {
		ttl = defaultStatusTTL
	}
	return &RedisStatusCache{rdb: rdb, ttl: ttl}
}

func (c *RedisStatusCache) Get(ctx context.Context, id string) (entities.PaymentPreference, bool, error) {
	raw, err := c.rdb.Get(ctx, preferenceKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entities.PaymentPreference{}, false, nil
	}
	if err != nil {
		return entities.PaymentPreference{}, false, err
	}

	var p entities.PaymentPreference
	if err := json.Unmarshal(raw, &p); err != nil {
		return entities.PaymentPreference{}, false, err
	}
	return p, true, nil
}

func (c *RedisStatusCache) Set(ctx context.Context, p entities.PaymentPreference) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, preferenceKey(p.ID), raw, c.ttlFor(p.Status)).Err()
}

func (c *RedisStatusCache) Invalidate(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, preferenceKey(id)).Err()
}

func (c *RedisStatusCache) ttlFor(status entities.PreferenceStatus) time.Duration {
	if status.IsTerminal() {
		return c.ttl * terminalTTLFactor
	}
	return c.ttl
}

// RedisWebhookDeduplicator holds a SET NX lock per notification key.
type RedisWebhookDeduplicator struct {
	rdb redis.Cmdable
	ttl time.Duration
}

var _ interfaces.IWebhookDeduplicator = (*RedisWebhookDeduplicator)(nil)

func NewRedisWebhookDeduplicator(rdb redis.Cmdable, ttl time.Duration) *RedisWebhookDeduplicator {
	if ttl <= 0 {
		ttl = defaultWebhookLock
	}
	return &RedisWebhookDeduplicator{rdb: rdb, ttl: ttl}
}

func (d *RedisWebhookDeduplicator) Acquire(ctx context.Context, key string) (bool, error) {
	return d.rdb.SetNX(ctx, webhookKeyPrefix+key, 1, d.ttl).Result()
}

func (d *RedisWebhookDeduplicator) Release(ctx context.Context, key string) error {
	return d.rdb.Del(ctx, webhookKeyPrefix+key).Err()
}

func preferenceKey(id string) string {
	return preferenceKeyPrefix + id
}

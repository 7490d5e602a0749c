package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ingressos_checkout/internal/domain/entities"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cachedPreference(status entities.PreferenceStatus) entities.PaymentPreference {
	return entities.PaymentPreference{
		ID:                "pref456",
		EventID:           "evt123",
		TicketQuantity:    2,
		TotalAmount:       100,
		Status:            status,
		ExternalReference: "evt123|pref456|user789",
		CreatedAt:         time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestRedisStatusCache_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("miss", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		c := NewRedisStatusCache(db, time.Second)
		mock.ExpectGet("checkout:preference:pref456").RedisNil()

		_, ok, err := c.Get(ctx, "pref456")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hit", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		c := NewRedisStatusCache(db, time.Second)
		raw, err := json.Marshal(cachedPreference(entities.PreferenceStatusApproved))
		require.NoError(t, err)
		mock.ExpectGet("checkout:preference:pref456").SetVal(string(raw))

		p, ok, err := c.Get(ctx, "pref456")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, entities.PreferenceStatusApproved, p.Status)
		assert.Equal(t, 100.0, p.TotalAmount)
	})

	t.Run("redis error", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		c := NewRedisStatusCache(db, time.Second)
		mock.ExpectGet("checkout:preference:pref456").SetErr(errors.New("connection refused"))

		_, ok, err := c.Get(ctx, "pref456")
		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("corrupt value", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		c := NewRedisStatusCache(db, time.Second)
		mock.ExpectGet("checkout:preference:pref456").SetVal("{not json")

		_, ok, err := c.Get(ctx, "pref456")
		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestRedisStatusCache_SetUsesStatusTTL(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	c := NewRedisStatusCache(db, 10*time.Second)

	pending := cachedPreference(entities.PreferenceStatusPending)
	pendingRaw, _ := json.Marshal(pending)
	mock.ExpectSet("checkout:preference:pref456", pendingRaw, 10*time.Second).SetVal("OK")
	require.NoError(t, c.Set(ctx, pending))

	approved := cachedPreference(entities.PreferenceStatusApproved)
	approvedRaw, _ := json.Marshal(approved)
	mock.ExpectSet("checkout:preference:pref456", approvedRaw, 300*time.Second).SetVal("OK")
	require.NoError(t, c.Set(ctx, approved))

	mock.ExpectDel("checkout:preference:pref456").SetVal(1)
	require.NoError(t, c.Invalidate(ctx, "pref456"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisWebhookDeduplicator(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	d := NewRedisWebhookDeduplicator(db, 0)

	mock.ExpectSetNX("checkout:webhook:payment:n-1", 1, 24*time.Hour).SetVal(true)
	ok, err := d.Acquire(ctx, "payment:n-1")
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectSetNX("checkout:webhook:payment:n-1", 1, 24*time.Hour).SetVal(false)
	ok, err = d.Acquire(ctx, "payment:n-1")
	require.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectDel("checkout:webhook:payment:n-1").SetVal(1)
	require.NoError(t, d.Release(ctx, "payment:n-1"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

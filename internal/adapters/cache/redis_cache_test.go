package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webemergencia/petty_cash_app/internal/core/domain"
)

type fakeStore struct {
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (f *fakeStore) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeStore) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = value.([]byte)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestRedisFilterOptionsCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	fake := newFakeStore()
	c := &RedisFilterOptionsCache{store: fake}

	_, found, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	opts := &domain.ReportFilterOptions{
		Users:         []domain.UserRef{{ID: "u-1", Name: "Ana"}},
		CashRegisters: []domain.CashRegisterRef{{ID: 1, Name: "Caja Principal"}},
		DateRange:     &domain.DateRange{Earliest: "2025-01-02", Latest: "2025-03-10"},
	}
	require.NoError(t, c.Set(ctx, opts, 5*time.Minute))
	assert.Equal(t, 5*time.Minute, fake.ttls[FilterOptionsKey])

	got, found, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, opts, got)
}

func TestRedisFilterOptionsCache_Errors(t *testing.T) {
	ctx := context.Background()
	fake := newFakeStore()
	c := &RedisFilterOptionsCache{store: fake}

	fake.data[FilterOptionsKey] = []byte("{not json")
	_, found, err := c.Get(ctx)
	assert.Error(t, err)
	assert.False(t, found)

	fake.getErr = errors.New("connection refused")
	_, _, err = c.Get(ctx)
	assert.ErrorContains(t, err, "connection refused")

	assert.NoError(t, c.Set(ctx, nil, time.Minute))
}

func TestNoopFilterOptionsCache(t *testing.T) {
	var c NoopFilterOptionsCache
	require.NoError(t, c.Set(context.Background(), &domain.ReportFilterOptions{}, time.Minute))

	got, found, err := c.Get(context.Background())
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

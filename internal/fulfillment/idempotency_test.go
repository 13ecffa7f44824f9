package fulfillment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdempotencyStore struct {
	keys   map[string]bool
	setErr error
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{keys: map[string]bool{}}
}

func (f *fakeIdempotencyStore) SetNX(_ context.Context, key string, _ any, _ time.Duration) (bool, error) {
	if f.setErr != nil {
		return false, f.setErr
	}
	if f.keys[key] {
		return false, nil
	}
	f.keys[key] = true
	return true, nil
}

func (f *fakeIdempotencyStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.keys, key)
	}
	return nil
}

func (f *fakeIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "shop:idempotency:" + scope + ":" + id
}

func TestCheckAndMarkFirstDelivery(t *testing.T) {
	guard, err := NewIdempotencyGuard(newFakeIdempotencyStore(), time.Hour, "stripe-events")
	require.NoError(t, err)

	seen, err := guard.CheckAndMark(context.Background(), "evt_1")
	require.NoError(t, err)
	assert.False(t, seen)

	seen, err = guard.CheckAndMark(context.Background(), "evt_1")
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestDeleteReleasesMark(t *testing.T) {
	store := newFakeIdempotencyStore()
	guard, err := NewIdempotencyGuard(store, time.Hour, "stripe-events")
	require.NoError(t, err)

	_, err = guard.CheckAndMark(context.Background(), "evt_2")
	require.NoError(t, err)
	require.NoError(t, guard.Delete(context.Background(), "evt_2"))

	seen, err := guard.CheckAndMark(context.Background(), "evt_2")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestCheckAndMarkStoreFailure(t *testing.T) {
	store := newFakeIdempotencyStore()
	store.setErr = errors.New("redis gone")
	guard, err := NewIdempotencyGuard(store, time.Hour, "stripe-events")
	require.NoError(t, err)

	_, err = guard.CheckAndMark(context.Background(), "evt_3")
	assert.Error(t, err)
}

func TestNewIdempotencyGuardValidation(t *testing.T) {
	_, err := NewIdempotencyGuard(nil, time.Hour, "scope")
	assert.Error(t, err)

	_, err = NewIdempotencyGuard(newFakeIdempotencyStore(), -time.Second, "scope")
	assert.Error(t, err)

	_, err = NewIdempotencyGuard(newFakeIdempotencyStore(), time.Hour, "")
	assert.Error(t, err)
}

package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

func setupTestStore(t *testing.T, ttl time.Duration) (*Store, *fakeTimeProvider, func()) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	tp := &fakeTimeProvider{now: time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)}
	store := NewStore(client, ttl, tp)

	return store, tp, func() {
		client.Close()
		mr.Close()
	}
}

func TestStore_ReserveAndCountForeign(t *testing.T) {
	store, _, cleanup := setupTestStore(t, 60*time.Second)
	defer cleanup()

	ctx := context.Background()
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	slot := types.TimeString("10:00")

	err := store.Reserve(ctx, 1, date, slot, "session-a")
	require.NoError(t, err)

	// Собственная резервация не считается чужой
	count, err := store.CountForeign(ctx, 1, date, slot, "session-a")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Для другой сессии резервация видна
	count, err = store.CountForeign(ctx, 1, date, slot, "session-b")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStore_ReserveIsIdempotentPerSession(t *testing.T) {
	store, _, cleanup := setupTestStore(t, 60*time.Second)
	defer cleanup()

	ctx := context.Background()
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	slot := types.TimeString("10:00")

	require.NoError(t, store.Reserve(ctx, 1, date, slot, "session-a"))
	require.NoError(t, store.Reserve(ctx, 1, date, slot, "session-a"))

	count, err := store.CountAll(ctx, 1, date, slot)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStore_ExpiredReservationsArePruned(t *testing.T) {
	store, tp, cleanup := setupTestStore(t, 60*time.Second)
	defer cleanup()

	ctx := context.Background()
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	slot := types.TimeString("10:00")

	require.NoError(t, store.Reserve(ctx, 1, date, slot, "session-a"))

	// Через 61 секунду резервация истекла
	tp.now = tp.now.Add(61 * time.Second)

	count, err := store.CountForeign(ctx, 1, date, slot, "session-b")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStore_Release(t *testing.T) {
	store, _, cleanup := setupTestStore(t, 60*time.Second)
	defer cleanup()

	ctx := context.Background()
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	slot := types.TimeString("10:00")

	require.NoError(t, store.Reserve(ctx, 1, date, slot, "session-a"))
	require.NoError(t, store.Release(ctx, 1, date, slot, "session-a"))

	count, err := store.CountAll(ctx, 1, date, slot)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStore_SlotsAreIndependent(t *testing.T) {
	store, _, cleanup := setupTestStore(t, 60*time.Second)
	defer cleanup()

	ctx := context.Background()
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Reserve(ctx, 1, date, types.TimeString("10:00"), "session-a"))

	// Другой слот, другая клиника, другая дата — резервации не пересекаются
	count, err := store.CountAll(ctx, 1, date, types.TimeString("10:30"))
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = store.CountAll(ctx, 2, date, types.TimeString("10:00"))
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = store.CountAll(ctx, 1, date.AddDate(0, 0, 1), types.TimeString("10:00"))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

package autofill

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/ptr"
)

func setupTestStore(t *testing.T) (*Store, *miniredis.Miniredis, func()) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewStore(client, 30*24*time.Hour)

	return store, mr, func() {
		client.Close()
		mr.Close()
	}
}

func TestNewStore_DefaultTTL(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewStore(client, 0)
	assert.Equal(t, DefaultTTL, store.ttl)

	require.NoError(t, store.Save(context.Background(), "session-1", domain.ContactInfo{
		Name:  "Анна Петрова",
		Phone: "+79991234567",
	}))
	assert.InDelta(t, DefaultTTL, mr.TTL("autofill:session-1"), float64(time.Minute))
}

func TestStore_SaveAndGet(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	contact := domain.ContactInfo{
		Name:  "Анна Петрова",
		Phone: "+79991234567",
		Email: ptr.Ptr("anna@example.com"),
	}

	require.NoError(t, store.Save(ctx, "session-1", contact))

	got, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, contact.Name, got.Name)
	assert.Equal(t, contact.Phone, got.Phone)
	require.NotNil(t, got.Email)
	assert.Equal(t, "anna@example.com", *got.Email)
}

func TestStore_SaveWithoutEmail(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-1", domain.ContactInfo{
		Name:  "Анна Петрова",
		Phone: "+79991234567",
	}))

	got, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Nil(t, got.Email)
}

func TestStore_GetUnknownSession(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.Get(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Expiration(t *testing.T) {
	store, mr, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-1", domain.ContactInfo{
		Name:  "Анна Петрова",
		Phone: "+79991234567",
	}))

	mr.FastForward(31 * 24 * time.Hour)

	_, err := store.Get(ctx, "session-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-1", domain.ContactInfo{
		Name:  "Анна Петрова",
		Phone: "+79991234567",
	}))
	require.NoError(t, store.Delete(ctx, "session-1"))

	_, err := store.Get(ctx, "session-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

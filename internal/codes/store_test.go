package codes

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	models "github.com/tayotravel/tourbook/internal"
)

func TestMemoryStore(t *testing.T) {
	code := models.VerificationCode{Code: "123456", UserID: uuid.New()}

	t.Run("round trip within ttl", func(t *testing.T) {
		store := NewMemoryStore()
		ctx := context.Background()

		assert.NoError(t, store.Put(ctx, "jane@example.com", code, 15*time.Minute))

		got, err := store.Get(ctx, "jane@example.com")
		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.Equal(t, "123456", got.Code)
	})

	t.Run("absent key", func(t *testing.T) {
		store := NewMemoryStore()

		got, err := store.Get(context.Background(), "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("expired entry removed on access", func(t *testing.T) {
		store := NewMemoryStore()
		ctx := context.Background()

		clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		store.now = func() time.Time { return clock }

		assert.NoError(t, store.Put(ctx, "jane@example.com", code, 15*time.Minute))

		// one second short of the deadline: still readable
		clock = clock.Add(15*time.Minute - time.Second)
		got, err := store.Get(ctx, "jane@example.com")
		assert.NoError(t, err)
		assert.NotNil(t, got)

		// past the deadline: gone, and stays gone
		clock = clock.Add(2 * time.Second)
		got, err = store.Get(ctx, "jane@example.com")
		assert.NoError(t, err)
		assert.Nil(t, got)

		assert.Empty(t, store.codes)
	})

	t.Run("delete", func(t *testing.T) {
		store := NewMemoryStore()
		ctx := context.Background()

		assert.NoError(t, store.Put(ctx, "jane@example.com", code, 15*time.Minute))
		assert.NoError(t, store.Delete(ctx, "jane@example.com"))

		got, err := store.Get(ctx, "jane@example.com")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("put overwrites earlier code", func(t *testing.T) {
		store := NewMemoryStore()
		ctx := context.Background()

		assert.NoError(t, store.Put(ctx, "jane@example.com", code, 15*time.Minute))
		replacement := models.VerificationCode{Code: "654321", UserID: code.UserID}
		assert.NoError(t, store.Put(ctx, "jane@example.com", replacement, 15*time.Minute))

		got, err := store.Get(ctx, "jane@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "654321", got.Code)
	})
}

package prefstore

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/darkroompro/devcalc/internal/domain/preferences"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "lab")
	require.NoError(t, err)
	require.False(t, ok)

	prefs := preferences.Preferences{Profile: "lab", DefaultFilm: "hp5-400", Temperature: decimal.NewFromInt(22), Volume: 600}
	require.NoError(t, store.Save(ctx, prefs, 0))

	got, ok, err := store.Get(ctx, "lab")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "hp5-400", got.DefaultFilm)
	require.Equal(t, 600, got.Volume)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	current := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, preferences.Preferences{Profile: "lab"}, time.Minute))
	_, ok, err := store.Get(ctx, "lab")
	require.NoError(t, err)
	require.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok, err = store.Get(ctx, "lab")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, store.items)
}

func TestMemoryStoreExpiryKeepsConcurrentSave(t *testing.T) {
	store := NewMemoryStore()
	current := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	var interleave func()
	store.now = func() time.Time {
		if fn := interleave; fn != nil {
			interleave = nil
			fn()
		}
		return current
	}
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, preferences.Preferences{Profile: "lab", Volume: 500}, time.Minute))
	current = current.Add(2 * time.Minute)

	// Save lands after Get has read the stale entry but before it deletes it.
	interleave = func() {
		require.NoError(t, store.Save(ctx, preferences.Preferences{Profile: "lab", Volume: 750}, time.Minute))
	}
	_, ok, err := store.Get(ctx, "lab")
	require.NoError(t, err)
	require.False(t, ok)

	got, ok, err := store.Get(ctx, "lab")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 750, got.Volume)
}

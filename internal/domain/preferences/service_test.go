package preferences

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/darkroompro/devcalc/internal/domain/darkroom"
	apperrors "github.com/darkroompro/devcalc/pkg/errors"
)

type stubStore struct {
	items   map[string]Preferences
	lastTTL time.Duration
	err     error
}

func newStubStore() *stubStore {
	return &stubStore{items: make(map[string]Preferences)}
}

func (s *stubStore) Get(_ context.Context, profile string) (Preferences, bool, error) {
	if s.err != nil {
		return Preferences{}, false, s.err
	}
	prefs, ok := s.items[profile]
	return prefs, ok, nil
}

func (s *stubStore) Save(_ context.Context, prefs Preferences, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.items[prefs.Profile] = prefs
	s.lastTTL = ttl
	return nil
}

func newTestService(store Store) *service {
	svc := NewService(Config{TTL: time.Hour}, store, slog.New(slog.NewTextHandler(io.Discard, nil))).(*service)
	svc.now = func() time.Time { return time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestGetReturnsDefaultsForUnknownProfile(t *testing.T) {
	svc := newTestService(newStubStore())

	prefs, err := svc.Get(context.Background(), " lab ")
	require.NoError(t, err)
	require.Equal(t, "lab", prefs.Profile)
	require.True(t, decimal.NewFromInt(20).Equal(prefs.Temperature))
	require.Equal(t, 0, prefs.PushPull)
	require.Equal(t, 500, prefs.Volume)
	require.True(t, prefs.UpdatedAt.IsZero())
}

func TestSaveThenGet(t *testing.T) {
	store := newStubStore()
	svc := newTestService(store)

	saved, err := svc.Save(context.Background(), Preferences{
		Profile:          "lab",
		DefaultFilm:      " tri-x-400 ",
		DefaultDeveloper: "d76",
		Temperature:      decimal.RequireFromString("21.5"),
		PushPull:         1,
		Volume:           300,
	})
	require.NoError(t, err)
	require.Equal(t, "tri-x-400", saved.DefaultFilm)
	require.Equal(t, time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC), saved.UpdatedAt)
	require.Equal(t, time.Hour, store.lastTTL)

	got, err := svc.Get(context.Background(), "lab")
	require.NoError(t, err)
	require.Equal(t, saved, got)
}

func TestSaveFillsUnsetFields(t *testing.T) {
	svc := newTestService(newStubStore())

	saved, err := svc.Save(context.Background(), Preferences{Profile: "lab"})
	require.NoError(t, err)
	require.True(t, darkroom.StandardTemperature.Equal(saved.Temperature))
	require.Equal(t, DefaultVolume, saved.Volume)
}

func TestSaveValidatesBounds(t *testing.T) {
	svc := newTestService(newStubStore())

	_, err := svc.Save(context.Background(), Preferences{Profile: "lab", Temperature: decimal.NewFromInt(31)})
	var tempErr *darkroom.InvalidTemperatureError
	require.ErrorAs(t, err, &tempErr)

	_, err = svc.Save(context.Background(), Preferences{Profile: "lab", PushPull: 4})
	require.True(t, apperrors.IsCode(err, darkroom.CodeInvalidPushPull))

	_, err = svc.Save(context.Background(), Preferences{Profile: "lab", Volume: 5000})
	require.True(t, apperrors.IsCode(err, darkroom.CodeInvalidVolume))
}

func TestProfileValidation(t *testing.T) {
	svc := newTestService(newStubStore())

	_, err := svc.Get(context.Background(), "   ")
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	long := make([]byte, maxProfileLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = svc.Save(context.Background(), Preferences{Profile: string(long)})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestStoreFailuresAreStorageErrors(t *testing.T) {
	store := newStubStore()
	store.err = errors.New("connection refused")
	svc := newTestService(store)

	_, err := svc.Get(context.Background(), "lab")
	require.True(t, apperrors.IsCode(err, "storage_error"))
	require.ErrorIs(t, err, store.err)

	_, err = svc.Save(context.Background(), Preferences{Profile: "lab"})
	require.True(t, apperrors.IsCode(err, "storage_error"))
}

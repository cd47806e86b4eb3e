package history

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/darkroompro/devcalc/internal/domain/darkroom"
	apperrors "github.com/darkroompro/devcalc/pkg/errors"
)

type stubRepo struct {
	entries   []Entry
	lastLimit int
	err       error
}

func (r *stubRepo) Append(_ context.Context, entry Entry) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *stubRepo) Recent(_ context.Context, limit int) ([]Entry, error) {
	r.lastLimit = limit
	if r.err != nil {
		return nil, r.err
	}
	if len(r.entries) == 0 {
		return nil, nil
	}
	return r.entries, nil
}

func newTestService(cfg Config, repo Repository) *service {
	svc := NewService(cfg, repo, slog.New(slog.NewTextHandler(io.Discard, nil))).(*service)
	svc.now = func() time.Time { return time.Date(2026, 10, 2, 8, 30, 0, 0, time.UTC) }
	seq := 0
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	return svc
}

func TestRecordCopiesRequestAndResult(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(Config{}, repo)

	req := darkroom.Request{FilmKey: "tri-x-400", DeveloperKey: "d76", Temperature: decimal.NewFromInt(20), PushPull: 1, Volume: 500}
	res := darkroom.Result{
		TimeMinutes:     decimal.RequireFromString("12.6"),
		TimeFormatted:   "12:36",
		Dilution:        "1:1",
		DeveloperAmount: 250,
		WaterAmount:     250,
		FilmName:        "Kodak Tri-X 400",
		DeveloperName:   "Kodak D-76",
	}

	entry, err := svc.Record(context.Background(), req, res)
	require.NoError(t, err)
	require.Equal(t, "id-1", entry.ID)
	require.Equal(t, "tri-x-400", entry.FilmKey)
	require.Equal(t, 1, entry.PushPull)
	require.Equal(t, "12:36", entry.TimeFormatted)
	require.Equal(t, 250, entry.WaterAmount)
	require.Equal(t, time.Date(2026, 10, 2, 8, 30, 0, 0, time.UTC), entry.CreatedAt)
	require.Len(t, repo.entries, 1)
}

func TestRecordWrapsRepositoryFailure(t *testing.T) {
	repo := &stubRepo{err: errors.New("db down")}
	svc := newTestService(Config{}, repo)

	_, err := svc.Record(context.Background(), darkroom.Request{}, darkroom.Result{})
	require.True(t, apperrors.IsCode(err, "storage_error"))
	require.ErrorIs(t, err, repo.err)
}

func TestRecentClampsLimit(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(Config{DefaultLimit: 10, MaxLimit: 50}, repo)
	ctx := context.Background()

	entries, err := svc.Recent(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Equal(t, 10, repo.lastLimit)

	_, err = svc.Recent(ctx, 500)
	require.NoError(t, err)
	require.Equal(t, 50, repo.lastLimit)

	_, err = svc.Recent(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 7, repo.lastLimit)
}

func TestConfigDefaults(t *testing.T) {
	svc := newTestService(Config{DefaultLimit: 500, MaxLimit: 0}, &stubRepo{})
	require.Equal(t, maxLimit, svc.cfg.MaxLimit)
	require.Equal(t, maxLimit, svc.cfg.DefaultLimit)
}

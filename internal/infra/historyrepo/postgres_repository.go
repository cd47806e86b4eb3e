package historyrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/darkroompro/devcalc/internal/domain/history"
)

const schema = `
	CREATE TABLE IF NOT EXISTS calculation_history (
		id               UUID PRIMARY KEY,
		film_key         TEXT NOT NULL,
		developer_key    TEXT NOT NULL,
		temperature      NUMERIC(6, 2) NOT NULL,
		push_pull        INTEGER NOT NULL,
		volume_ml        INTEGER NOT NULL,
		film_name        TEXT NOT NULL,
		developer_name   TEXT NOT NULL,
		time_minutes     NUMERIC NOT NULL,
		time_formatted   TEXT NOT NULL,
		dilution         TEXT NOT NULL,
		developer_amount INTEGER NOT NULL,
		water_amount     INTEGER NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS calculation_history_created_at_idx
		ON calculation_history (created_at DESC);
`

// PostgresRepository implements history.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the history table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, schema)
	return err
}

// Append inserts one entry. Decimals travel as text so no precision is lost.
func (r *PostgresRepository) Append(ctx context.Context, entry history.Entry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO calculation_history (
			id, film_key, developer_key, temperature, push_pull, volume_ml,
			film_name, developer_name, time_minutes, time_formatted,
			dilution, developer_amount, water_amount, created_at
		)
		VALUES ($1, $2, $3, $4::text::numeric, $5, $6, $7, $8, $9::text::numeric, $10, $11, $12, $13, $14)
	`,
		entry.ID, entry.FilmKey, entry.DeveloperKey, entry.Temperature.String(), entry.PushPull, entry.Volume,
		entry.FilmName, entry.DeveloperName, entry.TimeMinutes.String(), entry.TimeFormatted,
		entry.Dilution, entry.DeveloperAmount, entry.WaterAmount, entry.CreatedAt,
	)
	return err
}

// Recent returns the newest entries first.
func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]history.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, film_key, developer_key, temperature::text, push_pull, volume_ml,
			film_name, developer_name, time_minutes::text, time_formatted,
			dilution, developer_amount, water_amount, created_at
		FROM calculation_history
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []history.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (history.Entry, error) {
	var (
		entry       history.Entry
		temperature string
		minutes     string
	)
	if err := row.Scan(
		&entry.ID, &entry.FilmKey, &entry.DeveloperKey, &temperature, &entry.PushPull, &entry.Volume,
		&entry.FilmName, &entry.DeveloperName, &minutes, &entry.TimeFormatted,
		&entry.Dilution, &entry.DeveloperAmount, &entry.WaterAmount, &entry.CreatedAt,
	); err != nil {
		return history.Entry{}, err
	}
	var err error
	if entry.Temperature, err = decimal.NewFromString(temperature); err != nil {
		return history.Entry{}, err
	}
	if entry.TimeMinutes, err = decimal.NewFromString(minutes); err != nil {
		return history.Entry{}, err
	}
	entry.CreatedAt = entry.CreatedAt.UTC()
	return entry, nil
}

var _ history.Repository = (*PostgresRepository)(nil)

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for database operations. Methods accept
// context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveSnapshots inserts new price baselines in a single transaction.
	SaveSnapshots(ctx context.Context, snapshots []*PriceSnapshot) error

	// GetLatestSnapshots returns the most recent snapshot per symbol.
	GetLatestSnapshots(ctx context.Context) (map[string]*PriceSnapshot, error)

	// PruneSnapshots deletes snapshots older than the retention window,
	// keeping the latest one per symbol so the baseline is never lost.
	PruneSnapshots(ctx context.Context, olderThan time.Time) (int64, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SaveSnapshots inserts new price baselines in a single transaction so a
// partially written watch cycle never becomes the comparison base.
func (s *sqlxStore) SaveSnapshots(ctx context.Context, snapshots []*PriceSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	for _, snap := range snapshots {
		if snap == nil {
			return fmt.Errorf("cannot save nil snapshot")
		}
		if snap.Symbol == "" {
			return fmt.Errorf("snapshot must have a non-empty symbol")
		}
		if snap.Kind != KindCrypto && snap.Kind != KindAsset {
			return fmt.Errorf("snapshot has unknown kind %q", snap.Kind)
		}
	}

	now := time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction for saving snapshots", "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.ErrorContext(ctx, "Failed to rollback snapshot transaction", "error", rollbackErr)
			}
		}
	}()

	const query = `
		INSERT INTO price_snapshots (created_at, symbol, kind, price, ticker)
		VALUES (:created_at, :symbol, :kind, :price, :ticker)`

	for _, snap := range snapshots {
		snap.CreatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, snap); err != nil {
			s.logger.ErrorContext(ctx, "Failed to insert price snapshot",
				"symbol", snap.Symbol, "error", err)
			return fmt.Errorf("failed to insert snapshot for %s: %w", snap.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot transaction: %w", err)
	}
	tx = nil

	s.logger.DebugContext(ctx, "Saved price snapshots", "count", len(snapshots))
	return nil
}

// GetLatestSnapshots returns the most recent snapshot per symbol, keyed by
// symbol.
func (s *sqlxStore) GetLatestSnapshots(ctx context.Context) (map[string]*PriceSnapshot, error) {
	const query = `
		SELECT ps.id, ps.created_at, ps.symbol, ps.kind, ps.price, ps.ticker
		FROM price_snapshots ps
		INNER JOIN (
			SELECT symbol, MAX(id) AS max_id
			FROM price_snapshots
			GROUP BY symbol
		) latest ON ps.id = latest.max_id`

	var rows []PriceSnapshot
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		s.logger.ErrorContext(ctx, "Failed to load latest snapshots", "error", err)
		return nil, fmt.Errorf("failed to load latest snapshots: %w", err)
	}

	result := make(map[string]*PriceSnapshot, len(rows))
	for i := range rows {
		result[rows[i].Symbol] = &rows[i]
	}

	s.logger.DebugContext(ctx, "Loaded latest snapshots", "count", len(result))
	return result, nil
}

// PruneSnapshots deletes snapshots older than the cutoff, except the latest
// one per symbol.
func (s *sqlxStore) PruneSnapshots(ctx context.Context, olderThan time.Time) (int64, error) {
	const query = `
		DELETE FROM price_snapshots
		WHERE created_at < ?
		AND id NOT IN (
			SELECT MAX(id) FROM price_snapshots GROUP BY symbol
		)`

	res, err := s.db.ExecContext(ctx, query, olderThan.UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to prune snapshots", "error", err)
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read pruned row count: %w", err)
	}

	s.logger.DebugContext(ctx, "Pruned old snapshots", "deleted", deleted)
	return deleted, nil
}

// RunSQLMaintenance performs database maintenance tasks.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	for _, stmt := range []string{"ANALYZE", "VACUUM"} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			s.logger.ErrorContext(ctx, "Maintenance statement failed", "statement", stmt, "error", err)
			return fmt.Errorf("maintenance statement %s failed: %w", stmt, err)
		}
	}

	s.logger.InfoContext(ctx, "SQL maintenance completed")
	return nil
}

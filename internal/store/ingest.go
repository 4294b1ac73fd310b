package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dadidelux/sheng-project/internal/schema"
	"github.com/dadidelux/sheng-project/pkg/apperrors"
)

// CopyHouseholds bulk-loads survey rows via COPY. Each row must carry the
// full poverty_data column set in schema order.
func (s *Store) CopyHouseholds(ctx context.Context, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	cols := make([]string, 0)
	for _, c := range schema.PovertyData.Columns() {
		cols = append(cols, c.Name)
	}
	n, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{schema.PovertyData.Name()},
		cols,
		pgx.CopyFromRows(rows))
	if err != nil {
		return 0, apperrors.Store(fmt.Errorf("copy households: %w", err))
	}
	return n, nil
}

// TruncateHouseholds clears the survey table before a full reload.
func (s *Store) TruncateHouseholds(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, "TRUNCATE TABLE "+schema.PovertyData.Name()); err != nil {
		return apperrors.Store(fmt.Errorf("truncate households: %w", err))
	}
	return nil
}

// Ping verifies store connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return apperrors.Store(fmt.Errorf("ping: %w", err))
	}
	return nil
}

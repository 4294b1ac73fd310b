// Package store executes the compiled queries against Postgres and shapes
// raw rows into JSON-safe values. It never retries; connection and query
// failures surface to the caller as database errors.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dadidelux/sheng-project/internal/models"
	"github.com/dadidelux/sheng-project/internal/query"
	"github.com/dadidelux/sheng-project/internal/schema"
	"github.com/dadidelux/sheng-project/pkg/apperrors"
)

// ExportRowCap bounds a CSV export to keep exports from scanning the whole
// table unbounded; callers needing more must narrow their filters.
const ExportRowCap = 100000

// Store runs table queries against a Postgres pool.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store on top of an existing connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// FetchPage runs the count query and the bounded data query for one page
// and materializes the result. The count is exact and taken before the
// data query; ordering is the table's fixed ORDER BY clause.
func (s *Store) FetchPage(ctx context.Context, t *schema.Table, projection []string, pred query.Predicate, req query.PageRequest) (*models.DataTableResponse, error) {
	countSQL := buildCountQuery(t, pred)

	var total int64
	if err := s.pool.QueryRow(ctx, countSQL, pred.Args...).Scan(&total); err != nil {
		return nil, apperrors.Store(fmt.Errorf("count query: %w", err))
	}

	dataSQL, args := buildDataQuery(t, projection, pred, req.Limit, req.Offset())
	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, apperrors.Store(fmt.Errorf("data query: %w", err))
	}
	defer rows.Close()

	data, err := materialize(projection, rows)
	if err != nil {
		return nil, apperrors.Store(fmt.Errorf("read rows: %w", err))
	}

	return &models.DataTableResponse{
		Data:       data,
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: query.TotalPages(total, req.Limit),
	}, nil
}

// FetchForExport runs a single capped, ordered query and returns the rows
// as positional values in projection order, normalized for serialization.
func (s *Store) FetchForExport(ctx context.Context, t *schema.Table, projection []string, pred query.Predicate) ([][]any, error) {
	sql, args := buildExportQuery(t, projection, pred)
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.Store(fmt.Errorf("export query: %w", err))
	}
	defer rows.Close()

	var out [][]any
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, apperrors.Store(fmt.Errorf("read export row: %w", err))
		}
		for i, v := range vals {
			vals[i] = normalizeValue(v)
		}
		out = append(out, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(fmt.Errorf("export rows: %w", err))
	}
	return out, nil
}

func buildCountQuery(t *schema.Table, pred query.Predicate) string {
	return "SELECT COUNT(*) FROM " + t.Name() + pred.Where()
}

func buildDataQuery(t *schema.Table, projection []string, pred query.Predicate, limit, offset int) (string, []any) {
	args := append([]any(nil), pred.Args...)
	sql := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		strings.Join(projection, ", "), t.Name(), pred.Where(), t.OrderBy(),
		len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return sql, args
}

func buildExportQuery(t *schema.Table, projection []string, pred query.Predicate) (string, []any) {
	args := append([]any(nil), pred.Args...)
	sql := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT $%d",
		strings.Join(projection, ", "), t.Name(), pred.Where(), t.OrderBy(),
		len(args)+1)
	args = append(args, ExportRowCap)
	return sql, args
}

// materialize zips each row positionally against the projection into a
// column-keyed map with JSON-safe values.
func materialize(projection []string, rows pgx.Rows) ([]map[string]any, error) {
	data := make([]map[string]any, 0)
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(map[string]any, len(projection))
		for i, name := range projection {
			if i >= len(vals) {
				break
			}
			row[name] = normalizeValue(vals[i])
		}
		data = append(data, row)
	}
	return data, rows.Err()
}

// normalizeValue converts store-native values that have no JSON
// representation (UUID bytes, raw byte slices, timestamps) to their
// canonical textual form. Unexpected types are stringified rather than
// dropped so a single odd value never loses a row.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return val
	case [16]byte:
		return uuid.UUID(val).String()
	case []byte:
		return string(val)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}

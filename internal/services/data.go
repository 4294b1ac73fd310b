package services

import (
	"context"

	"github.com/dadidelux/sheng-project/internal/models"
	"github.com/dadidelux/sheng-project/internal/query"
	"github.com/dadidelux/sheng-project/internal/schema"
	"github.com/dadidelux/sheng-project/internal/store"
)

// DataService serves filtered, paginated table views and CSV exports.
type DataService struct {
	store *store.Store
}

// NewDataService creates a new DataService
func NewDataService(st *store.Store) *DataService {
	return &DataService{store: st}
}

// Page resolves the projection and predicate for one table view and
// fetches the requested page.
func (s *DataService) Page(ctx context.Context, t *schema.Table, req query.PageRequest, columns []string, filters query.Expression) (*models.DataTableResponse, error) {
	projection := t.ResolveProjection(columns)
	pred := query.Compile(t, filters)
	return s.store.FetchPage(ctx, t, projection, pred, req)
}

// Export runs the capped export query and returns the resolved projection
// alongside the rows, ready for CSV serialization.
func (s *DataService) Export(ctx context.Context, t *schema.Table, columns []string, filters query.Expression) ([]string, [][]any, error) {
	// Exports default to the full column set, not the view default.
	var projection []string
	if len(columns) > 0 {
		projection = t.ResolveProjection(columns)
	} else {
		projection = allColumns(t)
	}
	pred := query.Compile(t, filters)
	rows, err := s.store.FetchForExport(ctx, t, projection, pred)
	if err != nil {
		return nil, nil, err
	}
	return projection, rows, nil
}

// Columns lists the selectable columns of a table with their types.
func (s *DataService) Columns(t *schema.Table) []models.ColumnInfo {
	cols := t.Columns()
	out := make([]models.ColumnInfo, len(cols))
	for i, c := range cols {
		out[i] = models.ColumnInfo{Name: c.Name, Type: string(c.Type)}
	}
	return out
}

func allColumns(t *schema.Table) []string {
	cols := t.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

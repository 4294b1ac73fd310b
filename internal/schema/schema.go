// Package schema holds the fixed table definitions served by the data viewer.
// Tables are defined at init and never mutated; every column name arriving
// from the outside (projections, filters) is validated against them.
package schema

// ColumnType is the declared scalar type of a table column.
type ColumnType string

const (
	TypeString   ColumnType = "String"
	TypeUInt8    ColumnType = "UInt8"
	TypeFloat32  ColumnType = "Float32"
	TypeDateTime ColumnType = "DateTime"
	TypeUUID     ColumnType = "UUID"
)

// Column describes a single table column.
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Table is an immutable description of a queryable table: its columns in
// declaration order, the default projection, the fallback projection used
// when a requested column list contains no known names, and the fixed
// ORDER BY clause that keeps LIMIT/OFFSET pagination deterministic.
type Table struct {
	name     string
	columns  []Column
	types    map[string]ColumnType
	defaults []string
	// fallbackLen limits the fallback projection to the first N schema
	// columns; 0 means the full schema.
	fallbackLen int
	orderBy     string
}

func newTable(name string, columns []Column, defaults []string, fallbackLen int, orderBy string) *Table {
	types := make(map[string]ColumnType, len(columns))
	for _, col := range columns {
		types[col.Name] = col.Type
	}
	if defaults == nil {
		defaults = columnNames(columns)
	}
	return &Table{
		name:        name,
		columns:     columns,
		types:       types,
		defaults:    defaults,
		fallbackLen: fallbackLen,
		orderBy:     orderBy,
	}
}

func columnNames(columns []Column) []string {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}
	return names
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// OrderBy returns the fixed ordering clause for the table.
func (t *Table) OrderBy() string { return t.orderBy }

// Columns returns the column descriptions in declaration order.
func (t *Table) Columns() []Column {
	return append([]Column(nil), t.columns...)
}

// Has reports whether the table declares the given column.
func (t *Table) Has(name string) bool {
	_, ok := t.types[name]
	return ok
}

// ResolveProjection validates a requested column list against the table.
// An empty request yields the default projection. Unknown names are
// silently dropped while preserving the caller's order; if nothing
// survives, the fallback projection is returned instead of an error.
// Malformed requests from the table UI degrade to a sane default.
func (t *Table) ResolveProjection(requested []string) []string {
	if len(requested) == 0 {
		return append([]string(nil), t.defaults...)
	}
	valid := make([]string, 0, len(requested))
	for _, name := range requested {
		if t.Has(name) {
			valid = append(valid, name)
		}
	}
	if len(valid) == 0 {
		return t.fallback()
	}
	return valid
}

func (t *Table) fallback() []string {
	names := columnNames(t.columns)
	if t.fallbackLen > 0 && t.fallbackLen < len(names) {
		return names[:t.fallbackLen]
	}
	return names
}

// PovertyData is the household survey table.
var PovertyData = newTable(
	"poverty_data",
	[]Column{
		{"hh_id", TypeString},
		{"region_name", TypeString},
		{"province_name", TypeString},
		{"city_name", TypeString},
		{"barangay_name", TypeString},
		{"urb_rur", TypeUInt8},
		{"no_of_indiv", TypeUInt8},
		{"no_of_families", TypeUInt8},
		{"no_sleeping_rooms", TypeUInt8},
		{"house_type", TypeUInt8},
		{"roof_mat", TypeUInt8},
		{"out_wall", TypeUInt8},
		{"toilet_facilities", TypeUInt8},
		{"has_electricity", TypeUInt8},
		{"water_supply", TypeUInt8},
		{"radio", TypeUInt8},
		{"television", TypeUInt8},
		{"ref", TypeUInt8},
		{"motorcycle", TypeUInt8},
		{"phone", TypeUInt8},
		{"pc", TypeUInt8},
		{"received_pppp", TypeUInt8},
		{"received_philhealth", TypeUInt8},
		{"received_scholarship", TypeUInt8},
		{"received_livelihood", TypeUInt8},
		{"poverty_status", TypeString},
		{"poverty_status2", TypeUInt8},
		{"poor", TypeUInt8},
	},
	[]string{
		"hh_id", "province_name", "city_name", "barangay_name", "urb_rur",
		"no_of_indiv", "no_sleeping_rooms", "house_type", "has_electricity",
		"television", "ref", "motorcycle", "poverty_status", "poor",
	},
	15,
	"province_name, city_name, hh_id",
)

// Predictions is the prediction log table.
var Predictions = newTable(
	"poverty_predictions",
	[]Column{
		{"prediction_id", TypeUUID},
		{"prediction_date", TypeDateTime},
		{"province_name", TypeString},
		{"urb_rur", TypeUInt8},
		{"no_of_indiv", TypeUInt8},
		{"no_sleeping_rooms", TypeUInt8},
		{"house_type", TypeUInt8},
		{"has_electricity", TypeUInt8},
		{"television", TypeUInt8},
		{"ref", TypeUInt8},
		{"motorcycle", TypeUInt8},
		{"predicted_poverty_status", TypeUInt8},
		{"prediction_probability", TypeFloat32},
		{"model_version", TypeString},
	},
	nil, // all columns by default
	0,
	"prediction_date DESC",
)

// ByName looks up one of the fixed tables by its SQL name.
func ByName(name string) (*Table, bool) {
	switch name {
	case PovertyData.name:
		return PovertyData, true
	case Predictions.name:
		return Predictions, true
	}
	return nil, false
}

// Package query builds safe, parameterized SQL fragments from untrusted
// filter and pagination input. Filter values are decoded into explicit
// tagged variants and always bound as query parameters; nothing taken from
// a request ever reaches the query text itself.
package query

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dadidelux/sheng-project/internal/schema"
)

// Kind discriminates the supported filter variants.
type Kind int

const (
	// KindEquals matches a column exactly against a single scalar.
	KindEquals Kind = iota
	// KindRange matches a column against an inclusive min/max window.
	KindRange
	// KindMembership matches a column against a set of literal values.
	KindMembership
	// KindSubstring matches a column containing a string (case-sensitive).
	KindSubstring
)

// Filter is one decoded filter value for a single column.
type Filter struct {
	Kind   Kind
	Min    any   // range lower bound, nil when absent
	Max    any   // range upper bound, nil when absent
	Values []any // membership set
	Value  any   // substring or equality operand
}

// UnmarshalJSON decodes the wire shape into a tagged variant:
// an object with min/max keys is a range, an array is a membership set,
// a string is a substring match and any other scalar is an equality.
func (f *Filter) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case map[string]any:
		f.Kind = KindRange
		f.Min = v["min"]
		f.Max = v["max"]
	case []any:
		f.Kind = KindMembership
		f.Values = v
	case string:
		f.Kind = KindSubstring
		f.Value = v
	default:
		f.Kind = KindEquals
		f.Value = v
	}
	return nil
}

// Expression maps column names to their decoded filters.
type Expression map[string]Filter

// ParseExpression decodes a JSON filter payload. Callers at the HTTP
// boundary treat a decode failure as "no filter" rather than an error.
func ParseExpression(raw string) (Expression, error) {
	if raw == "" {
		return nil, nil
	}
	var expr Expression
	if err := json.Unmarshal([]byte(raw), &expr); err != nil {
		return nil, fmt.Errorf("failed to parse filter expression: %w", err)
	}
	return expr, nil
}

// Predicate is a compiled WHERE fragment with positional parameters.
// An empty Clause means match-all.
type Predicate struct {
	Clause string
	Args   []any
}

// Where returns the fragment prefixed with " WHERE ", or "" when empty.
func (p Predicate) Where() string {
	if p.Clause == "" {
		return ""
	}
	return " WHERE " + p.Clause
}

// Compile translates a filter expression into a conjunction of
// parameterized clauses against the given table. Columns not declared by
// the table are dropped, as are filters whose operands are null or empty.
// Clauses are emitted in sorted column order so the output is stable.
func Compile(t *schema.Table, filters Expression) Predicate {
	if len(filters) == 0 {
		return Predicate{}
	}

	names := make([]string, 0, len(filters))
	for name := range filters {
		if t.Has(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var (
		clauses []string
		args    []any
	)
	bind := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	for _, name := range names {
		f := filters[name]
		switch f.Kind {
		case KindRange:
			if present(f.Min) {
				clauses = append(clauses, name+" >= "+bind(f.Min))
			}
			if present(f.Max) {
				clauses = append(clauses, name+" <= "+bind(f.Max))
			}
		case KindMembership:
			if len(f.Values) == 0 {
				continue
			}
			placeholders := make([]string, len(f.Values))
			for i, v := range f.Values {
				placeholders[i] = bind(v)
			}
			clauses = append(clauses, name+" IN ("+strings.Join(placeholders, ", ")+")")
		case KindSubstring:
			s, _ := f.Value.(string)
			if s == "" {
				continue
			}
			clauses = append(clauses, name+" LIKE "+bind("%"+s+"%"))
		case KindEquals:
			if !present(f.Value) {
				continue
			}
			clauses = append(clauses, name+" = "+bind(f.Value))
		}
	}

	if len(clauses) == 0 {
		return Predicate{}
	}
	return Predicate{
		Clause: strings.Join(clauses, " AND "),
		Args:   args,
	}
}

// present reports whether a filter operand carries a value. Null and
// empty-string operands are treated as absent and dropped.
func present(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok && s == "" {
		return false
	}
	return true
}

// Package export serializes query results to RFC 4180 CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Write writes the projection as a header line followed by one line per
// row. Fields containing commas, quotes or newlines are quoted with
// internal quotes doubled (encoding/csv semantics). Nil values become
// empty fields. Zero rows produce a header-only document.
func Write(w io.Writer, projection []string, rows [][]any) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(projection); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(projection))
	for _, row := range rows {
		for i := range projection {
			if i < len(row) {
				record[i] = formatValue(row[i])
			} else {
				record[i] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatValue stringifies a normalized store value for CSV output.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

package dataset

import (
	"strconv"
	"strings"
)

// Row is one loosely typed record from a CSV or Excel source, keyed by
// header name. Accessors are best-effort: a missing or malformed cell
// yields the zero value, so callers never see a parse error for bad data.
type Row map[string]string

// Text returns the first non-empty trimmed cell among the given header
// aliases. Header matching is case-insensitive.
func (r Row) Text(aliases ...string) string {
	for _, alias := range aliases {
		if v, ok := r.lookup(alias); ok && v != "" {
			return v
		}
	}
	return ""
}

// Float returns the first cell among the aliases that parses as a number.
// Thousands separators and stray % suffixes are tolerated. Unparseable or
// missing cells yield 0.
func (r Row) Float(aliases ...string) float64 {
	for _, alias := range aliases {
		v, ok := r.lookup(alias)
		if !ok || v == "" {
			continue
		}
		v = strings.ReplaceAll(v, ",", "")
		v = strings.TrimSuffix(v, "%")
		v = strings.TrimSpace(v)
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}

// Int returns the first cell among the aliases that parses as an integer,
// truncating fractional values. Unparseable or missing cells yield 0.
func (r Row) Int(aliases ...string) int {
	return int(r.Float(aliases...))
}

func (r Row) lookup(alias string) (string, bool) {
	if v, ok := r[alias]; ok {
		return strings.TrimSpace(v), true
	}
	for k, v := range r {
		if strings.EqualFold(strings.TrimSpace(k), alias) {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// RowsFromTable converts a header row plus data rows into loose Rows.
// Short data rows are padded with empty cells; extra cells beyond the
// header are dropped.
func RowsFromTable(header []string, records [][]string) []Row {
	rows := make([]Row, 0, len(records))
	for _, record := range records {
		row := make(Row, len(header))
		for i, name := range header {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

package record

import (
	"database/sql"
	"strconv"
)

// Row is one result row, values ordered as selected.
type Row []any

// Int64 returns column i as an integer. NULL and unparsable values are 0.
func (r Row) Int64(i int) int64 {
	if v := r.NullInt64(i); v != nil {
		return *v
	}
	return 0
}

// NullInt64 returns column i as an integer, or nil when it is NULL.
func (r Row) NullInt64(i int) *int64 {
	if i < 0 || i >= len(r) {
		return nil
	}
	var n int64
	switch v := r[i].(type) {
	case nil:
		return nil
	case int64:
		n = v
	case int32:
		n = int64(v)
	case int:
		n = int64(v)
	case float64:
		n = int64(v)
	case []byte:
		parsed, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return nil
		}
		n = parsed
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil
		}
		n = parsed
	default:
		return nil
	}
	return &n
}

// String returns column i as text. NULL is "".
func (r Row) String(i int) string {
	if v := r.NullString(i); v != nil {
		return *v
	}
	return ""
}

// NullString returns column i as text, or nil when it is NULL.
func (r Row) NullString(i int) *string {
	if i < 0 || i >= len(r) {
		return nil
	}
	var s string
	switch v := r[i].(type) {
	case nil:
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	default:
		return nil
	}
	return &s
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	out := []Row{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			// Drivers may reuse byte buffers between rows.
			if b, ok := v.([]byte); ok {
				values[i] = append([]byte(nil), b...)
			}
		}
		out = append(out, Row(values))
	}
	return out, rows.Err()
}

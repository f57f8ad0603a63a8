package database

import "database/sql"

// nullStringValue converts a sql.NullString to a string (empty if not valid)
func nullStringValue(n sql.NullString) string {
	if n.Valid {
		return n.String
	}
	return ""
}

// nullFloat64Value converts a sql.NullFloat64 to a float64 (zero if not valid)
func nullFloat64Value(n sql.NullFloat64) float64 {
	if n.Valid {
		return n.Float64
	}
	return 0
}

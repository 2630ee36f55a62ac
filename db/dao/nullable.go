package dao

import "database/sql"

type NullInt64 struct {
	sql.NullInt64
}

// AsPtr returns nil when the column was NULL.
func (ni *NullInt64) AsPtr() *int64 {
	if !ni.NullInt64.Valid {
		return nil
	}
	return &ni.NullInt64.Int64
}

type NullString struct {
	sql.NullString
}

// OrEmpty returns "" when the column was NULL.
func (ns *NullString) OrEmpty() string {
	if !ns.NullString.Valid {
		return ""
	}
	return ns.NullString.String
}

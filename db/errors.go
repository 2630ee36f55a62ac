package db

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// IsDupKeyErr reports whether err is a MySQL duplicate-key violation,
// e.g. inserting a user with an already-taken username.
func IsDupKeyErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	return strings.Contains(mysqlErr.Error(), "Duplicate")
}

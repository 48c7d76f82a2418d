package db

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrDuplicateEntryCode = 1062
)

func MysqlErrCode(err error) int {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return 0
	}
	return int(mysqlErr.Number)
}

// IsDuplicateEntry reports a unique key violation for mysql and sqlite.
func IsDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	if MysqlErrCode(err) == ErrDuplicateEntryCode {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

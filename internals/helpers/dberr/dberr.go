// Package dberr classifies storage errors across postgres and sqlite.
package dberr

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
)

type sqlStater interface{ SQLState() string }

func sqlState(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var st sqlStater
	if errors.As(err, &st) {
		return st.SQLState()
	}
	return ""
}

// IsUniqueViolation reports a duplicate key from any supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if sqlState(err) == sqlStateUniqueViolation {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate key") || strings.Contains(low, "unique constraint")
}

// IsForeignKeyViolation reports a blocked delete/insert due to a foreign key.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	if sqlState(err) == sqlStateForeignKeyViolation {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "foreign key")
}

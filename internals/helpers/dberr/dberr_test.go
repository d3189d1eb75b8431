package dberr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type pgxLike struct{ code string }

func (e pgxLike) Error() string    { return "pg error " + e.code }
func (e pgxLike) SQLState() string { return e.code }

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"lib/pq", &pq.Error{Code: "23505"}, true},
		{"wrapped pq", fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), true},
		{"sqlstate iface", pgxLike{code: "23505"}, true},
		{"sqlite text", errors.New("UNIQUE constraint failed: users.email"), true},
		{"fk is not unique", &pq.Error{Code: "23503"}, false},
		{"other", errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		if got := IsUniqueViolation(tc.err); got != tc.want {
			t.Errorf("%s: IsUniqueViolation = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"gorm translated", gorm.ErrForeignKeyViolated, true},
		{"lib/pq", &pq.Error{Code: "23503"}, true},
		{"sqlstate iface", pgxLike{code: "23503"}, true},
		{"sqlite text", errors.New("FOREIGN KEY constraint failed"), true},
		{"unique", &pq.Error{Code: "23505"}, false},
	}
	for _, tc := range cases {
		if got := IsForeignKeyViolation(tc.err); got != tc.want {
			t.Errorf("%s: IsForeignKeyViolation = %v, want %v", tc.name, got, tc.want)
		}
	}
}

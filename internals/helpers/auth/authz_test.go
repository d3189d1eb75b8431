package auth

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestCanModify(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	cases := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"owner", Actor{UserID: owner, Role: "student"}, true},
		{"faculty non-owner", Actor{UserID: other, Role: "faculty"}, false},
		{"admin non-owner", Actor{UserID: other, Role: "admin"}, true},
		{"admin mixed case", Actor{UserID: other, Role: "Admin"}, true},
		{"anonymous", Actor{}, false},
	}
	for _, tc := range cases {
		if got := CanModify(tc.actor, owner); got != tc.want {
			t.Errorf("%s: CanModify = %v, want %v", tc.name, got, tc.want)
		}
	}

	if err := EnsureCanModify(Actor{UserID: other, Role: "student"}, owner); !errors.Is(err, ErrForbidden) {
		t.Fatalf("EnsureCanModify err = %v, want ErrForbidden", err)
	}
}

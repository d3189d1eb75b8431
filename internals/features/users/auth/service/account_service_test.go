package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus_events_backend/internals/databases/dbtest"
	"campus_events_backend/internals/features/users/auth/dto"
	"campus_events_backend/internals/features/users/auth/service"
	helper "campus_events_backend/internals/helpers"
)

type fakeGoogle struct {
	ident service.GoogleIdentity
	err   error
}

func (f fakeGoogle) Verify(string) (service.GoogleIdentity, error) { return f.ident, f.err }

func newAccounts(t *testing.T, g service.GoogleVerifier) *service.AccountService {
	t.Helper()
	db := dbtest.Open(t)
	return service.NewAccountService(db, service.NewSessionService(db, "test-secret", time.Hour), g)
}

func validRegister() dto.RegisterRequest {
	return dto.RegisterRequest{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "Ada@Math.Uni.edu",
		Password:        "analytical1",
		ConfirmPassword: "analytical1",
		Role:            "faculty",
	}
}

func TestRegisterCreatesUser(t *testing.T) {
	s := newAccounts(t, nil)
	ctx := context.Background()

	u, err := s.Register(ctx, validRegister())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Email != "ada@math.uni.edu" || u.Role != "faculty" {
		t.Fatalf("user = %+v", u)
	}
	if u.Password == "analytical1" || !service.CheckPassword(u.Password, "analytical1") {
		t.Fatal("password not hashed with bcrypt")
	}

	if _, err := s.Register(ctx, validRegister()); !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("duplicate Register err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	s := newAccounts(t, nil)

	cases := []struct {
		field  string
		mutate func(*dto.RegisterRequest)
	}{
		{"first_name", func(r *dto.RegisterRequest) { r.FirstName = "A" }},
		{"email", func(r *dto.RegisterRequest) { r.Email = "ada@gmail.com" }},
		{"password", func(r *dto.RegisterRequest) { r.Password, r.ConfirmPassword = "onlyletters", "onlyletters" }},
		{"confirm_password", func(r *dto.RegisterRequest) { r.ConfirmPassword = "different1" }},
		{"role", func(r *dto.RegisterRequest) { r.Role = "admin" }},
	}
	for _, tc := range cases {
		req := validRegister()
		tc.mutate(&req)
		_, err := s.Register(context.Background(), req)
		var fe helper.FieldErrors
		if !errors.As(err, &fe) || !fe.Has(tc.field) {
			t.Errorf("%s: err = %v, want field error on %s", tc.field, err, tc.field)
		}
	}
}

func TestRegisterAcceptsAcademicDomain(t *testing.T) {
	s := newAccounts(t, nil)
	req := validRegister()
	req.Email = "someone@cs.ox.ac.uk"
	if _, err := s.Register(context.Background(), req); err != nil {
		t.Fatalf("Register(.ac. domain): %v", err)
	}
}

func TestLoginGoogleCreatesThenReuses(t *testing.T) {
	g := fakeGoogle{ident: service.GoogleIdentity{Subject: "g-123", Email: "grace@navy.edu", Name: "Grace Brewster Hopper"}}
	s := newAccounts(t, g)
	ctx := context.Background()

	sess, token, err := s.LoginGoogle(ctx, "id-token", "", service.ClientMeta{})
	if err != nil {
		t.Fatalf("LoginGoogle: %v", err)
	}
	if token == "" || sess.Role != "student" || sess.FirstName != "Grace" || sess.LastName != "Brewster Hopper" {
		t.Fatalf("session = %+v", sess)
	}

	again, _, err := s.LoginGoogle(ctx, "id-token", token, service.ClientMeta{})
	if err != nil {
		t.Fatalf("second LoginGoogle: %v", err)
	}
	if again.UserID != sess.UserID {
		t.Fatal("second sign-in created another user")
	}
}

func TestLoginGoogleRejects(t *testing.T) {
	ctx := context.Background()

	if _, _, err := newAccounts(t, nil).LoginGoogle(ctx, "x", "", service.ClientMeta{}); !errors.Is(err, service.ErrGoogleDisabled) {
		t.Errorf("disabled err = %v", err)
	}
	bad := fakeGoogle{err: errors.New("bad signature")}
	if _, _, err := newAccounts(t, bad).LoginGoogle(ctx, "x", "", service.ClientMeta{}); !errors.Is(err, service.ErrGoogleToken) {
		t.Errorf("bad token err = %v", err)
	}
	personal := fakeGoogle{ident: service.GoogleIdentity{Subject: "g-9", Email: "someone@gmail.com"}}
	if _, _, err := newAccounts(t, personal).LoginGoogle(ctx, "x", "", service.ClientMeta{}); !errors.Is(err, service.ErrNotUniversityID) {
		t.Errorf("personal account err = %v", err)
	}
}

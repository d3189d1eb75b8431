package service_test

import (
	"context"
	"errors"
	"testing"

	"campus_events_backend/internals/databases/dbtest"
	regModel "campus_events_backend/internals/features/events/registrations/model"
	"campus_events_backend/internals/features/users/user/dto"
	"campus_events_backend/internals/features/users/user/model"
	"campus_events_backend/internals/features/users/user/service"
	helper "campus_events_backend/internals/helpers"
	helperAuth "campus_events_backend/internals/helpers/auth"
	"campus_events_backend/internals/helpers/storage/storagetest"
)

type recordingRefresher struct {
	users []*model.UserModel
}

func (r *recordingRefresher) RefreshUser(_ context.Context, u *model.UserModel) error {
	r.users = append(r.users, u)
	return nil
}

func actorOf(u *model.UserModel) helperAuth.Actor {
	return helperAuth.Actor{UserID: u.ID, Role: u.Role}
}

func TestProfileStats(t *testing.T) {
	db := dbtest.Open(t)
	s := service.NewProfileService(db, storagetest.NewMemoryStore(), nil)
	ctx := context.Background()

	me := dbtest.User(t, db, "faculty")
	other := dbtest.User(t, db, "faculty")
	dbtest.Event(t, db, me.ID, dbtest.EventOpts{})
	dbtest.Event(t, db, me.ID, dbtest.EventOpts{Private: true})
	theirs := dbtest.Event(t, db, other.ID, dbtest.EventOpts{})
	if err := db.Create(&regModel.EventRegistrationModel{EventID: theirs.ID, UserID: me.ID}).Error; err != nil {
		t.Fatalf("create registration: %v", err)
	}

	out, err := s.Get(ctx, actorOf(me))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out.User.ID != me.ID || out.Stats.EventsCreated != 2 || out.Stats.EventsAttended != 1 {
		t.Fatalf("profile = %+v stats = %+v", out.User, out.Stats)
	}
}

func TestProfileUpdate(t *testing.T) {
	db := dbtest.Open(t)
	refresher := &recordingRefresher{}
	images := storagetest.NewMemoryStore()
	s := service.NewProfileService(db, images, refresher)
	ctx := context.Background()
	me := dbtest.User(t, db, "student")

	photo := storagetest.FileHeader(t, service.PhotoField, "me.png", "image/png", storagetest.PNG(t, 4, 4))
	updated, err := s.Update(ctx, actorOf(me), dto.UpdateProfileRequest{
		FirstName: "Alan",
		LastName:  "Turing",
		Email:     " Alan@Kings.AC.uk ",
		Role:      "admin",
	}, photo)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Email != "alan@kings.ac.uk" || updated.FirstName != "Alan" {
		t.Fatalf("updated = %+v", updated)
	}
	if updated.Role != "student" {
		t.Fatalf("non-admin changed own role to %q", updated.Role)
	}
	if updated.ProfilePhotoURL == nil || images.LiveCount() != 1 {
		t.Fatalf("photo not stored: %v", updated.ProfilePhotoURL)
	}
	if len(refresher.users) != 1 || refresher.users[0].Email != "alan@kings.ac.uk" {
		t.Fatalf("sessions not refreshed: %+v", refresher.users)
	}

	// replacing the photo releases the previous one
	first := *updated.ProfilePhotoURL
	second := storagetest.FileHeader(t, service.PhotoField, "me2.png", "image/png", storagetest.PNG(t, 4, 4))
	if _, err := s.Update(ctx, actorOf(me), dto.UpdateProfileRequest{FirstName: "Alan", LastName: "Turing", Email: "alan@kings.ac.uk"}, second); err != nil {
		t.Fatalf("second Update: %v", err)
	}
	if !images.WasDeleted(first) || images.LiveCount() != 1 {
		t.Fatalf("old photo kept: deleted=%v live=%d", images.Deleted, images.LiveCount())
	}
}

func TestProfileUpdateAdminMayChangeRole(t *testing.T) {
	db := dbtest.Open(t)
	s := service.NewProfileService(db, nil, nil)
	admin := dbtest.User(t, db, "admin")

	updated, err := s.Update(context.Background(), actorOf(admin), dto.UpdateProfileRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     admin.Email,
		Role:      "faculty",
	}, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Role != "faculty" {
		t.Fatalf("role = %q, want faculty", updated.Role)
	}
}

func TestProfileUpdateRejections(t *testing.T) {
	db := dbtest.Open(t)
	images := storagetest.NewMemoryStore()
	s := service.NewProfileService(db, images, nil)
	ctx := context.Background()
	me := dbtest.User(t, db, "student")
	other := dbtest.User(t, db, "student")

	_, err := s.Update(ctx, actorOf(me), dto.UpdateProfileRequest{FirstName: "A", LastName: "Turing", Email: "x@gmail.com"}, nil)
	var fe helper.FieldErrors
	if !errors.As(err, &fe) || !fe.Has("first_name") || !fe.Has("email") {
		t.Fatalf("err = %v, want first_name and email field errors", err)
	}

	photo := storagetest.FileHeader(t, service.PhotoField, "me.png", "image/png", storagetest.PNG(t, 4, 4))
	_, err = s.Update(ctx, actorOf(me), dto.UpdateProfileRequest{FirstName: "Alan", LastName: "Turing", Email: other.Email}, photo)
	if !errors.Is(err, service.ErrEmailInUse) {
		t.Fatalf("err = %v, want ErrEmailInUse", err)
	}
	if images.LiveCount() != 0 {
		t.Fatal("photo stored for a rejected update")
	}
}

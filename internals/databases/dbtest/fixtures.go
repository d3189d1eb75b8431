package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	categoryModel "campus_events_backend/internals/features/events/categories/model"
	eventModel "campus_events_backend/internals/features/events/events/model"
	userModel "campus_events_backend/internals/features/users/user/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var userSeq atomic.Int64

// Password is the plaintext for every fixture user.
const Password = "password123"

var fixtureHash = func() string {
	h, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}()

func User(t testing.TB, db *gorm.DB, role string) *userModel.UserModel {
	t.Helper()
	n := userSeq.Add(1)
	u := &userModel.UserModel{
		Email:     fmt.Sprintf("user%d@campus.edu", n),
		Password:  fixtureHash,
		FirstName: "User",
		LastName:  fmt.Sprintf("N%d", n),
		Role:      role,
		IsActive:  true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func Category(t testing.TB, db *gorm.DB, name string) *categoryModel.CategoryModel {
	t.Helper()
	c := &categoryModel.CategoryModel{Name: name, Color: "#123456"}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return c
}

// EventOpts zero values produce a public, uncapped event starting in 48h.
type EventOpts struct {
	Title        string
	Description  string
	Location     string
	Start        time.Time
	CategoryID   uint
	MaxAttendees int
	Private      bool
}

// Event inserts directly, bypassing service validation (past events, etc).
func Event(t testing.TB, db *gorm.DB, organizer uuid.UUID, o EventOpts) *eventModel.EventModel {
	t.Helper()
	if o.Title == "" {
		o.Title = "Event"
	}
	if o.Location == "" {
		o.Location = "Main Hall"
	}
	if o.Start.IsZero() {
		o.Start = time.Now().UTC().Add(48 * time.Hour)
	}
	ev := &eventModel.EventModel{
		Title:         o.Title,
		Location:      o.Location,
		StartDatetime: o.Start.UTC(),
		EndDatetime:   o.Start.UTC().Add(2 * time.Hour),
		OrganizerID:   organizer,
		IsPublic:      !o.Private,
	}
	if o.Description != "" {
		ev.Description = &o.Description
	}
	if o.CategoryID != 0 {
		id := o.CategoryID
		ev.CategoryID = &id
	}
	if o.MaxAttendees != 0 {
		m := o.MaxAttendees
		ev.MaxAttendees = &m
	}
	if err := db.Create(ev).Error; err != nil {
		t.Fatalf("create event: %v", err)
	}
	return ev
}

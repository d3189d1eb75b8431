package service_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"campus_events_backend/internals/databases/dbtest"
	"campus_events_backend/internals/features/events/registrations/model"
	"campus_events_backend/internals/features/events/registrations/service"
	userModel "campus_events_backend/internals/features/users/user/model"
	"campus_events_backend/internals/helpers/dberr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*service.RegistrationService, *gorm.DB, *userModel.UserModel) {
	t.Helper()
	db := dbtest.Open(t)
	return service.NewRegistrationService(db), db, dbtest.User(t, db, "faculty")
}

func rows(t *testing.T, db *gorm.DB, eventID uuid.UUID) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&model.EventRegistrationModel{}).
		Where("event_registration_event_id = ?", eventID).
		Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

func TestRegisterThenDuplicate(t *testing.T) {
	s, db, org := setup(t)
	ctx := context.Background()
	ev := dbtest.Event(t, db, org.ID, dbtest.EventOpts{})
	student := dbtest.User(t, db, "student")

	reg, err := s.Register(ctx, ev.ID, student.ID)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.Status != model.StatusRegistered || reg.RegisteredAt.IsZero() {
		t.Fatalf("registration = %+v", reg)
	}

	if _, err := s.Register(ctx, ev.ID, student.ID); !errors.Is(err, service.ErrAlreadyRegistered) {
		t.Fatalf("second Register err = %v, want ErrAlreadyRegistered", err)
	}
	if n := rows(t, db, ev.ID); n != 1 {
		t.Fatalf("rows = %d, want 1", n)
	}
	if n, _ := s.Count(ctx, ev.ID); n != 1 {
		t.Fatalf("Count = %d, want 1", n)
	}
}

func TestRegisterPreconditionOrder(t *testing.T) {
	s, db, org := setup(t)
	ctx := context.Background()
	student := dbtest.User(t, db, "student")

	// private and started: not found wins
	hidden := dbtest.Event(t, db, org.ID, dbtest.EventOpts{Private: true, Start: time.Now().Add(-time.Hour)})
	if _, err := s.Register(ctx, hidden.ID, student.ID); !errors.Is(err, service.ErrEventNotFound) {
		t.Fatalf("private event err = %v, want ErrEventNotFound", err)
	}
	if _, err := s.Register(ctx, uuid.New(), student.ID); !errors.Is(err, service.ErrEventNotFound) {
		t.Fatalf("unknown event err = %v, want ErrEventNotFound", err)
	}

	started := dbtest.Event(t, db, org.ID, dbtest.EventOpts{Start: time.Now().Add(-time.Minute), MaxAttendees: 1})
	if _, err := s.Register(ctx, started.ID, student.ID); !errors.Is(err, service.ErrEventStarted) {
		t.Fatalf("started event err = %v, want ErrEventStarted", err)
	}
	if n := rows(t, db, started.ID); n != 0 {
		t.Fatalf("started event has %d rows", n)
	}

	// already registered is reported before full
	tiny := dbtest.Event(t, db, org.ID, dbtest.EventOpts{MaxAttendees: 1})
	if _, err := s.Register(ctx, tiny.ID, student.ID); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := s.Register(ctx, tiny.ID, student.ID); !errors.Is(err, service.ErrAlreadyRegistered) {
		t.Fatalf("full + duplicate err = %v, want ErrAlreadyRegistered", err)
	}
}

func TestRegisterStopsAtCapacity(t *testing.T) {
	s, db, org := setup(t)
	ctx := context.Background()
	ev := dbtest.Event(t, db, org.ID, dbtest.EventOpts{MaxAttendees: 1})
	a := dbtest.User(t, db, "student")
	b := dbtest.User(t, db, "student")

	if _, err := s.Register(ctx, ev.ID, a.ID); err != nil {
		t.Fatalf("Register(a): %v", err)
	}
	if _, err := s.Register(ctx, ev.ID, b.ID); !errors.Is(err, service.ErrEventFull) {
		t.Fatalf("Register(b) err = %v, want ErrEventFull", err)
	}
	if n, _ := s.Count(ctx, ev.ID); n != 1 {
		t.Fatalf("Count = %d, want 1", n)
	}
}

func TestConcurrentRegistrationsNeverExceedCapacity(t *testing.T) {
	s, db, org := setup(t)
	const capacity, attempts = 10, 100
	ev := dbtest.Event(t, db, org.ID, dbtest.EventOpts{MaxAttendees: capacity})

	users := make([]*userModel.UserModel, attempts)
	for i := range users {
		users[i] = dbtest.User(t, db, "student")
	}

	var ok, full, other atomic.Int64
	var wg sync.WaitGroup
	for _, u := range users {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := s.Register(context.Background(), ev.ID, id)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, service.ErrEventFull):
				full.Add(1)
			default:
				other.Add(1)
				t.Errorf("unexpected error: %v", err)
			}
		}(u.ID)
	}
	wg.Wait()

	if ok.Load() != capacity || full.Load() != attempts-capacity || other.Load() != 0 {
		t.Fatalf("ok=%d full=%d other=%d", ok.Load(), full.Load(), other.Load())
	}
	if n, _ := s.Count(context.Background(), ev.ID); n != capacity {
		t.Fatalf("Count = %d, want %d", n, capacity)
	}
}

func TestConcurrentDuplicatesCreateOneRow(t *testing.T) {
	s, db, org := setup(t)
	ev := dbtest.Event(t, db, org.ID, dbtest.EventOpts{})
	student := dbtest.User(t, db, "student")

	var ok, dup atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Register(context.Background(), ev.ID, student.ID)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, service.ErrAlreadyRegistered):
				dup.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok.Load() != 1 || dup.Load() != 19 {
		t.Fatalf("ok=%d dup=%d", ok.Load(), dup.Load())
	}
	if n := rows(t, db, ev.ID); n != 1 {
		t.Fatalf("rows = %d, want 1", n)
	}
}

func TestActiveUniqueIndex(t *testing.T) {
	_, db, org := setup(t)
	ev := dbtest.Event(t, db, org.ID, dbtest.EventOpts{})
	student := dbtest.User(t, db, "student")

	first := model.EventRegistrationModel{EventID: ev.ID, UserID: student.ID, RegisteredAt: time.Now()}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	dup := model.EventRegistrationModel{EventID: ev.ID, UserID: student.ID, RegisteredAt: time.Now()}
	if err := db.Create(&dup).Error; !dberr.IsUniqueViolation(err) {
		t.Fatalf("duplicate active insert err = %v, want unique violation", err)
	}

	// cancelled rows are outside the index
	cancelled := model.EventRegistrationModel{EventID: ev.ID, UserID: student.ID, Status: model.StatusCancelled, RegisteredAt: time.Now()}
	if err := db.Create(&cancelled).Error; err != nil {
		t.Fatalf("cancelled insert: %v", err)
	}
}

func TestCancelThenRegisterAgain(t *testing.T) {
	s, db, org := setup(t)
	ctx := context.Background()
	ev := dbtest.Event(t, db, org.ID, dbtest.EventOpts{MaxAttendees: 1})
	a := dbtest.User(t, db, "student")
	b := dbtest.User(t, db, "student")

	if _, err := s.Register(ctx, ev.ID, a.ID); err != nil {
		t.Fatalf("Register(a): %v", err)
	}
	if err := s.Cancel(ctx, ev.ID, a.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if err := s.Cancel(ctx, ev.ID, a.ID); !errors.Is(err, service.ErrNotRegistered) {
		t.Fatalf("second Cancel err = %v, want ErrNotRegistered", err)
	}

	// the freed seat goes to b, a is then full
	if _, err := s.Register(ctx, ev.ID, b.ID); err != nil {
		t.Fatalf("Register(b): %v", err)
	}
	if _, err := s.Register(ctx, ev.ID, a.ID); !errors.Is(err, service.ErrEventFull) {
		t.Fatalf("Register(a) again err = %v, want ErrEventFull", err)
	}
	if n := rows(t, db, ev.ID); n != 2 {
		t.Fatalf("rows = %d, want 2 (cancelled + active)", n)
	}
}

func TestCancelAfterStartIsRefused(t *testing.T) {
	s, db, org := setup(t)
	ctx := context.Background()
	ev := dbtest.Event(t, db, org.ID, dbtest.EventOpts{})
	student := dbtest.User(t, db, "student")
	if _, err := s.Register(ctx, ev.ID, student.ID); err != nil {
		t.Fatalf("Register: %v", err)
	}

	s.Now = func() time.Time { return ev.StartDatetime.Add(time.Minute) }
	if err := s.Cancel(ctx, ev.ID, student.ID); !errors.Is(err, service.ErrEventStarted) {
		t.Fatalf("Cancel err = %v, want ErrEventStarted", err)
	}
	if n, _ := s.Count(ctx, ev.ID); n != 1 {
		t.Fatalf("Count = %d, want 1", n)
	}
}

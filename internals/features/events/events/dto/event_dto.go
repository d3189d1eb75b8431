package dto

import (
	"strconv"
	"strings"
	"time"

	"campus_events_backend/internals/features/events/events/model"
	helper "campus_events_backend/internals/helpers"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

/* ===============================
   Request
=================================*/

// FormValue keeps a scalar exactly as sent, whether it came as a JSON
// string, number or bool, or as form text. Set is false when absent or null.
type FormValue struct {
	Raw string
	Set bool
}

func NewFormValue(raw string) FormValue {
	return FormValue{Raw: strings.TrimSpace(raw), Set: true}
}

func (v *FormValue) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == "" {
		*v = FormValue{}
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := sonic.Unmarshal(b, &str); err != nil {
			return err
		}
		s = str
	}
	*v = NewFormValue(s)
	return nil
}

// Empty is true when absent or blank.
func (v FormValue) Empty() bool {
	return !v.Set || v.Raw == ""
}

// Bool: "", "0", "false", "off" are false, any other present value is true; absent is false.
func (v FormValue) Bool() bool {
	if !v.Set {
		return false
	}
	switch strings.ToLower(v.Raw) {
	case "", "0", "false", "off":
		return false
	}
	return true
}

// EventRequest is the create/update payload, from JSON or a form.
type EventRequest struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	StartDatetime string    `json:"start_datetime"`
	EndDatetime   string    `json:"end_datetime"`
	CategoryID    FormValue `json:"category_id"`
	MaxAttendees  FormValue `json:"max_attendees"`
	IsPublic      FormValue `json:"is_public"`
}

// EventRequestFromForm reads the same fields from form values (multipart or urlencoded).
func EventRequestFromForm(values map[string][]string) EventRequest {
	get := func(k string) string {
		if vs := values[k]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}
	opt := func(k string) FormValue {
		if vs, ok := values[k]; ok && len(vs) > 0 {
			return NewFormValue(vs[0])
		}
		return FormValue{}
	}
	return EventRequest{
		Title:         get("title"),
		Description:   get("description"),
		Location:      get("location"),
		StartDatetime: get("start_datetime"),
		EndDatetime:   get("end_datetime"),
		CategoryID:    opt("category_id"),
		MaxAttendees:  opt("max_attendees"),
		IsPublic:      opt("is_public"),
	}
}

func (r *EventRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Location = strings.TrimSpace(r.Location)
	r.StartDatetime = strings.TrimSpace(r.StartDatetime)
	r.EndDatetime = strings.TrimSpace(r.EndDatetime)
}

// EventFields is the typed shape checked by the validator. Datetimes stay
// raw here because parsing depends on the caller's timezone.
type EventFields struct {
	Title         string `json:"title" validate:"required,max=100"`
	Description   string `json:"description" validate:"max=5000"`
	Location      string `json:"location" validate:"required,max=100"`
	StartDatetime string `json:"start_datetime" validate:"required"`
	EndDatetime   string `json:"end_datetime" validate:"required"`
	CategoryID    string `json:"category_id" validate:"required,number"`
	MaxAttendees  *int   `json:"max_attendees" validate:"omitempty,min=1,max=100000"`
	IsPublic      bool   `json:"is_public"`
}

// Fields normalizes r. A max_attendees that is not an integer becomes 0 so it fails min.
func (r EventRequest) Fields() EventFields {
	r.Normalize()
	f := EventFields{
		Title:         r.Title,
		Description:   r.Description,
		Location:      r.Location,
		StartDatetime: r.StartDatetime,
		EndDatetime:   r.EndDatetime,
		CategoryID:    r.CategoryID.Raw,
		IsPublic:      r.IsPublic.Bool(),
	}
	if !r.MaxAttendees.Empty() {
		n, err := strconv.Atoi(r.MaxAttendees.Raw)
		if err != nil {
			n = 0
		}
		f.MaxAttendees = &n
	}
	return f
}

/* ===============================
   Listing
=================================*/

const (
	SortUpcoming = "upcoming"
	SortNewest   = "newest"
	SortPopular  = "popular"

	DateAll   = "all"
	DateToday = "today"
)

type ListQuery struct {
	Category string
	Date     string
	Search   string
	Sort     string
	Page     int
	PerPage  int
}

func (q *ListQuery) Normalize() {
	q.Category = strings.TrimSpace(q.Category)
	if strings.EqualFold(q.Category, "all") {
		q.Category = ""
	}
	q.Search = strings.TrimSpace(q.Search)

	switch strings.ToLower(strings.TrimSpace(q.Date)) {
	case DateToday:
		q.Date = DateToday
	default:
		q.Date = DateAll
	}
	switch strings.ToLower(strings.TrimSpace(q.Sort)) {
	case SortNewest:
		q.Sort = SortNewest
	case SortPopular:
		q.Sort = SortPopular
	default:
		q.Sort = SortUpcoming
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = 6
	}
	q.Page = helper.ClampPage(q.Page, q.PerPage)
}

// EventListItem is a row of the public listing and of "my events".
type EventListItem struct {
	ID                 uuid.UUID `json:"id" gorm:"column:id"`
	Title              string    `json:"title" gorm:"column:title"`
	Description        *string   `json:"description" gorm:"column:description"`
	Location           string    `json:"location" gorm:"column:location"`
	Date               time.Time `json:"date" gorm:"column:date"`
	EndDatetime        time.Time `json:"end_datetime" gorm:"column:end_datetime"`
	IsPublic           bool      `json:"is_public" gorm:"column:is_public"`
	ImageURL           *string   `json:"event_image_url" gorm:"column:event_image_url"`
	CategoryID         *uint     `json:"category_id" gorm:"column:category_id"`
	Category           *string   `json:"category" gorm:"column:category"`
	CategoryColor      *string   `json:"category_color" gorm:"column:category_color"`
	OrganizerID        uuid.UUID `json:"organizer_id" gorm:"column:organizer_id"`
	OrganizerFirstName *string   `json:"organizer_first_name" gorm:"column:organizer_first_name"`
	OrganizerLastName  *string   `json:"organizer_last_name" gorm:"column:organizer_last_name"`
	MaxAttendees       *int      `json:"max_attendees" gorm:"column:max_attendees"`
	Attendees          int64     `json:"attendees" gorm:"column:attendees"`
}

/* ===============================
   Detail
=================================*/

type EventResponse struct {
	ID            uuid.UUID `json:"event_id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	Location      string    `json:"location"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	CategoryID    *uint     `json:"category_id"`
	Category      *string   `json:"category"`
	CategoryColor *string   `json:"category_color"`
	OrganizerID   uuid.UUID `json:"organizer_id"`
	MaxAttendees  *int      `json:"max_attendees"`
	IsPublic      bool      `json:"is_public"`
	ImageURL      *string   `json:"event_image_url"`
	Attendees     int64     `json:"attendees"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToEventResponse(m *model.EventModel, attendees int64) EventResponse {
	r := EventResponse{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Location:      m.Location,
		StartDatetime: m.StartDatetime.UTC(),
		EndDatetime:   m.EndDatetime.UTC(),
		CategoryID:    m.CategoryID,
		OrganizerID:   m.OrganizerID,
		MaxAttendees:  m.MaxAttendees,
		IsPublic:      m.IsPublic,
		ImageURL:      m.ImageURL,
		Attendees:     attendees,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Category != nil {
		r.Category = &m.Category.Name
		r.CategoryColor = &m.Category.Color
	}
	return r
}

// AttendeeResponse is one row of an event's registration list.
type AttendeeResponse struct {
	RegistrationID uuid.UUID `json:"registration_id" gorm:"column:registration_id"`
	UserID         uuid.UUID `json:"user_id" gorm:"column:user_id"`
	FirstName      string    `json:"first_name" gorm:"column:first_name"`
	LastName       string    `json:"last_name" gorm:"column:last_name"`
	Email          string    `json:"email" gorm:"column:email"`
	Status         string    `json:"status" gorm:"column:status"`
	RegisteredAt   time.Time `json:"registration_date" gorm:"column:registration_date"`
}

type MyEventsResponse struct {
	Registered []EventListItem `json:"registered"`
	Created    []EventListItem `json:"created"`
}

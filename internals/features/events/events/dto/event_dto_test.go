package dto

import (
	"strings"
	"testing"

	helper "campus_events_backend/internals/helpers"

	"github.com/bytedance/sonic"
)

func TestFormValueBool(t *testing.T) {
	cases := []struct {
		v    FormValue
		want bool
	}{
		{FormValue{}, false},
		{NewFormValue(""), false},
		{NewFormValue("0"), false},
		{NewFormValue("false"), false},
		{NewFormValue("OFF"), false},
		{NewFormValue("on"), true},
		{NewFormValue("1"), true},
		{NewFormValue("true"), true},
		{NewFormValue("yes"), true},
	}
	for _, tc := range cases {
		if got := tc.v.Bool(); got != tc.want {
			t.Errorf("%+v.Bool() = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestEventRequestAcceptsLooseJSON(t *testing.T) {
	body := `{"title":"T","category_id":3,"max_attendees":"25","is_public":false}`
	var req EventRequest
	if err := sonic.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.CategoryID.Raw != "3" || !req.CategoryID.Set {
		t.Errorf("category_id = %+v", req.CategoryID)
	}
	if req.MaxAttendees.Raw != "25" {
		t.Errorf("max_attendees = %+v", req.MaxAttendees)
	}
	if !req.IsPublic.Set || req.IsPublic.Bool() {
		t.Errorf("is_public = %+v", req.IsPublic)
	}

	var empty EventRequest
	if err := sonic.Unmarshal([]byte(`{"max_attendees":null}`), &empty); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !empty.MaxAttendees.Empty() || empty.IsPublic.Set {
		t.Errorf("absent/null fields = %+v", empty)
	}
}

func TestEventRequestFromForm(t *testing.T) {
	req := EventRequestFromForm(map[string][]string{
		"title":       {" Workshop "},
		"category_id": {"2"},
		"is_public":   {"on"},
	})
	req.Normalize()
	if req.Title != "Workshop" || req.CategoryID.Raw != "2" || !req.IsPublic.Bool() {
		t.Fatalf("req = %+v", req)
	}
	if req.MaxAttendees.Set {
		t.Fatalf("max_attendees should be absent: %+v", req.MaxAttendees)
	}
}

func TestEventFieldsTags(t *testing.T) {
	v := helper.NewValidator()
	base := EventRequest{
		Title:         "Workshop",
		Location:      "Room 1",
		StartDatetime: "2030-01-01T10:00",
		EndDatetime:   "2030-01-01T12:00",
		CategoryID:    NewFormValue("3"),
	}
	if fe := helper.ValidateStruct(v, base.Fields(), nil); len(fe) != 0 {
		t.Fatalf("valid request rejected: %+v", fe)
	}

	cases := []struct {
		name   string
		field  string
		mutate func(*EventRequest)
	}{
		{"title 100 runes ok", "", func(r *EventRequest) { r.Title = strings.Repeat("é", 100) }},
		{"title 101 runes", "title", func(r *EventRequest) { r.Title = strings.Repeat("é", 101) }},
		{"blank location", "location", func(r *EventRequest) { r.Location = "   " }},
		{"description 5001", "description", func(r *EventRequest) { r.Description = strings.Repeat("d", 5001) }},
		{"category text", "category_id", func(r *EventRequest) { r.CategoryID = NewFormValue("x1") }},
		{"attendees text", "max_attendees", func(r *EventRequest) { r.MaxAttendees = NewFormValue("many") }},
		{"attendees upper bound ok", "", func(r *EventRequest) { r.MaxAttendees = NewFormValue("100000") }},
		{"attendees blank is absent", "", func(r *EventRequest) { r.MaxAttendees = NewFormValue(" ") }},
	}
	for _, tc := range cases {
		req := base
		tc.mutate(&req)
		fe := helper.ValidateStruct(v, req.Fields(), nil)
		if tc.field == "" {
			if len(fe) != 0 {
				t.Errorf("%s: unexpected errors %+v", tc.name, fe)
			}
			continue
		}
		if !fe.Has(tc.field) {
			t.Errorf("%s: errors = %+v, want %s", tc.name, fe, tc.field)
		}
	}
}

func TestListQueryNormalize(t *testing.T) {
	q := ListQuery{Category: " All ", Date: "TODAY", Sort: "bogus"}
	q.Normalize()
	if q.Category != "" || q.Date != DateToday || q.Sort != SortUpcoming || q.Page != 1 || q.PerPage != 6 {
		t.Fatalf("q = %+v", q)
	}
}

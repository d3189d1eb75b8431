package dbtime

import (
	"testing"
	"time"
)

func TestParseDateTime(t *testing.T) {
	jkt := time.FixedZone("WIB", 7*3600)

	cases := []struct {
		in   string
		loc  *time.Location
		want time.Time
		ok   bool
	}{
		{"2030-05-01T10:00:00Z", nil, time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC), true},
		{"2030-05-01T10:00:00+02:00", nil, time.Date(2030, 5, 1, 8, 0, 0, 0, time.UTC), true},
		{"2030-05-01T10:00", jkt, time.Date(2030, 5, 1, 3, 0, 0, 0, time.UTC), true},
		{"2030-05-01 10:00:30", nil, time.Date(2030, 5, 1, 10, 0, 30, 0, time.UTC), true},
		{"tomorrow", nil, time.Time{}, false},
		{"", nil, time.Time{}, false},
	}

	for _, tc := range cases {
		got, err := ParseDateTime(tc.in, tc.loc)
		if tc.ok != (err == nil) {
			t.Fatalf("ParseDateTime(%q) err = %v, want ok=%v", tc.in, err, tc.ok)
		}
		if tc.ok && !got.Equal(tc.want) {
			t.Errorf("ParseDateTime(%q) = %s, want %s", tc.in, got, tc.want)
		}
		if tc.ok && got.Location() != time.UTC {
			t.Errorf("ParseDateTime(%q) location = %s, want UTC", tc.in, got.Location())
		}
	}
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	// 02:00 UTC on the 10th is still the 9th at UTC-5
	now := time.Date(2030, 3, 10, 2, 0, 0, 0, time.UTC)

	start, end := DayBounds(now, loc)

	wantStart := time.Date(2030, 3, 9, 5, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %s, want %s", start, wantStart)
	}
	if !end.Equal(wantStart.Add(24 * time.Hour)) {
		t.Errorf("end = %s, want %s", end, wantStart.Add(24*time.Hour))
	}
}

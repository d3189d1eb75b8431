package helper

import (
	"math"
	"testing"
)

func TestNewPaging(t *testing.T) {
	cases := []struct {
		page, perPage string
		want          Paging
	}{
		{"", "", Paging{Page: 1, PerPage: 6, Offset: 0, Limit: 6}},
		{"3", "10", Paging{Page: 3, PerPage: 10, Offset: 20, Limit: 10}},
		{"-2", "abc", Paging{Page: 1, PerPage: 6, Offset: 0, Limit: 6}},
		{"2", "500", Paging{Page: 2, PerPage: 50, Offset: 50, Limit: 50}},
	}
	for _, c := range cases {
		if got := NewPaging(c.page, c.perPage, 6, 50); got != c.want {
			t.Errorf("NewPaging(%q, %q) = %+v, want %+v", c.page, c.perPage, got, c.want)
		}
	}
}

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(13, 2, 6)
	if p.TotalPages != 3 || !p.HasNext || !p.HasPrev {
		t.Fatalf("middle page: %+v", p)
	}
	if empty := BuildPaginationFromPage(0, 1, 6); empty.TotalPages != 1 || empty.HasNext {
		t.Fatalf("empty: %+v", empty)
	}
}

func TestNewPagingHugePageStaysPastTheEnd(t *testing.T) {
	for _, page := range []string{"4611686018427387905", "99999999999999999999999"} {
		p := NewPaging(page, "2", 6, 50)
		if p.Page <= 1 || p.Offset < 0 {
			t.Fatalf("NewPaging(%q) = %+v, want a large non-negative offset", page, p)
		}
	}
	if got := ClampPage(math.MaxInt, 50); (got-1)*50 < 0 {
		t.Fatalf("ClampPage overflowed: %d", got)
	}
	if got := ClampPage(7, 50); got != 7 {
		t.Fatalf("ClampPage(7) = %d", got)
	}
}

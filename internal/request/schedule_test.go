package request

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseSport(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"all", ""},
		{"All", ""},
		{"padel", "padel"},
		{" Cricket ", "cricket"},
		{"tennis", ""},
	}
	for _, tc := range cases {
		if got := ParseSport(tc.in); got != tc.want {
			t.Errorf("ParseSport(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	if got := ParseDate("2026-01-02", now); got.Format("2006-01-02") != "2026-01-02" {
		t.Errorf("valid date parsed as %v", got)
	}
	if got := ParseDate("", now); !got.Equal(now) {
		t.Errorf("empty date = %v, want now", got)
	}
	if got := ParseDate("02/01/2026", now); !got.Equal(now) {
		t.Errorf("bad format = %v, want now", got)
	}
}

func TestParseView(t *testing.T) {
	if ParseView("week") != "week" || ParseView("WEEK ") != "week" {
		t.Error("week not recognized")
	}
	if ParseView("") != "day" || ParseView("month") != "day" {
		t.Error("default should be day")
	}
}

func TestScheduleParamsFromRequest(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	r := httptest.NewRequest("GET", "/admin/schedule?view=week&date=2026-01-02&sport=padel", nil)
	view, date, sport := ScheduleParamsFromRequest(r, now)
	if view != "week" || date.Format("2006-01-02") != "2026-01-02" || sport != "padel" {
		t.Errorf("got %s/%s/%s", view, date.Format("2006-01-02"), sport)
	}
}

func TestScheduleParamsFromHTMXHeader(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	r := httptest.NewRequest("GET", "/admin/schedule/grid", nil)
	r.Header.Set("HX-Current-URL", "http://localhost:8080/admin/schedule?view=week&sport=cricket")
	view, date, sport := ScheduleParamsFromRequest(r, now)
	if view != "week" || sport != "cricket" {
		t.Errorf("header fallback ignored: %s/%s", view, sport)
	}
	if !date.Equal(now) {
		t.Errorf("missing date should default to now, got %v", date)
	}

	// Query wins over the header when both are present.
	r = httptest.NewRequest("GET", "/admin/schedule/grid?view=day", nil)
	r.Header.Set("HX-Current-URL", "http://localhost:8080/admin/schedule?view=week")
	view, _, _ = ScheduleParamsFromRequest(r, now)
	if view != "day" {
		t.Errorf("query did not win: %s", view)
	}
}

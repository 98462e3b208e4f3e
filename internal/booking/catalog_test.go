package booking

import (
	"reflect"
	"testing"
)

func TestAllCourtsOrder(t *testing.T) {
	var ids []string
	for _, c := range AllCourts("") {
		ids = append(ids, c.ID)
	}
	want := []string{"padel-1", "padel-2", "cricket-1", "cricket-2", "futsal-1", "pickleball-1"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("catalog order = %v, want %v", ids, want)
	}
}

func TestAllCourtsFilter(t *testing.T) {
	courts := AllCourts(SportPadel)
	if len(courts) != 2 {
		t.Fatalf("padel courts = %d, want 2", len(courts))
	}
	for _, c := range courts {
		if c.Sport != SportPadel {
			t.Errorf("court %s has sport %s", c.ID, c.Sport)
		}
	}
	if got := len(AllCourts("all")); got != 6 {
		t.Errorf(`AllCourts("all") = %d courts, want 6`, got)
	}
}

func TestCourtName(t *testing.T) {
	if got := CourtName("padel-1"); got != "Court 1: Teracotta Court" {
		t.Errorf("padel-1 name = %q", got)
	}
	if got := CourtName(AllCourtsID); got != "All Courts" {
		t.Errorf("all-courts name = %q", got)
	}
	if got := CourtName("squash-9"); got != "squash-9" {
		t.Errorf("unknown id should echo, got %q", got)
	}
}

func TestHourlyRate(t *testing.T) {
	cases := map[string]int{
		SportPadel:      5500,
		SportCricket:    3000,
		SportFutsal:     2500,
		SportPickleball: 2500,
		"squash":        2500,
	}
	for sport, want := range cases {
		if got := HourlyRate(sport); got != want {
			t.Errorf("HourlyRate(%q) = %d, want %d", sport, got, want)
		}
	}
}

func TestConflictingCourts(t *testing.T) {
	if got := ConflictingCourts("cricket-2"); !reflect.DeepEqual(got, []string{"futsal-1"}) {
		t.Errorf("cricket-2 conflicts = %v", got)
	}
	if got := ConflictingCourts("futsal-1"); !reflect.DeepEqual(got, []string{"cricket-2"}) {
		t.Errorf("futsal-1 conflicts = %v", got)
	}
	if got := ConflictingCourts("padel-1"); got != nil {
		t.Errorf("padel-1 conflicts = %v, want none", got)
	}
}

func TestQuickBookDefaults(t *testing.T) {
	dur, players := QuickBookDefaults(SportCricket)
	if dur != 2 || players != 6 {
		t.Errorf("cricket defaults = %v/%d, want 2/6", dur, players)
	}
	dur, players = QuickBookDefaults(SportPadel)
	if dur != 1.5 || players != 4 {
		t.Errorf("padel defaults = %v/%d, want 1.5/4", dur, players)
	}
}

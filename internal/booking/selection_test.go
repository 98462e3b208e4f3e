package booking

import (
	"errors"
	"math/rand"
	"testing"
)

func TestSelectionGrowsAtEndsOnly(t *testing.T) {
	s := NewSelection(SportPadel, "padel-1", "2026-01-02")
	for _, idx := range []int{10, 11, 9} {
		if err := s.Toggle(idx); err != nil {
			t.Fatalf("toggle %d: %v", idx, err)
		}
	}
	if got := s.Count(); got != 3 {
		t.Fatalf("count = %d, want 3", got)
	}
	if err := s.Toggle(14); !errors.Is(err, ErrNotContiguous) {
		t.Errorf("gap select err = %v, want ErrNotContiguous", err)
	}
	if got := s.Count(); got != 3 {
		t.Errorf("rejected toggle mutated selection, count = %d", got)
	}
}

func TestSelectionMiddleRemovalRejected(t *testing.T) {
	s := NewSelection(SportCricket, "cricket-1", "2026-01-02")
	for idx := 10; idx <= 12; idx++ {
		if err := s.Select(idx); err != nil {
			t.Fatalf("select %d: %v", idx, err)
		}
	}
	if err := s.Toggle(11); !errors.Is(err, ErrMiddleRemoval) {
		t.Fatalf("middle deselect err = %v, want ErrMiddleRemoval", err)
	}
	if got := s.Count(); got != 3 {
		t.Errorf("selection changed after rejected removal, count = %d", got)
	}
	if err := s.Toggle(12); err != nil {
		t.Fatalf("end deselect: %v", err)
	}
	if err := s.Toggle(10); err != nil {
		t.Fatalf("start deselect: %v", err)
	}
	if got := s.Count(); got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
}

func TestSelectionDerivedFields(t *testing.T) {
	s := NewSelection(SportPadel, "padel-2", "2026-01-02")
	// 18:00 and 18:30
	for _, tm := range []string{"18:00", "18:30"} {
		idx, ok := SlotIndex(tm)
		if !ok {
			t.Fatalf("SlotIndex(%q) failed", tm)
		}
		if err := s.Select(idx); err != nil {
			t.Fatalf("select %s: %v", tm, err)
		}
	}
	if got := s.StartTime(); got != "18:00" {
		t.Errorf("start = %q", got)
	}
	if got := s.EndTime(); got != "19:00" {
		t.Errorf("end = %q", got)
	}
	if got := s.Duration(); got != 1.0 {
		t.Errorf("duration = %v", got)
	}
	if got := s.TotalAmount(); got != 5500 {
		t.Errorf("amount = %d, want 5500", got)
	}
}

func TestSelectionEndTimeWrapsAtClose(t *testing.T) {
	s := NewSelection(SportFutsal, "futsal-1", "2026-01-02")
	for idx := SlotsPerDay - 2; idx < SlotsPerDay; idx++ {
		if err := s.Select(idx); err != nil {
			t.Fatalf("select %d: %v", idx, err)
		}
	}
	if got := s.StartTime(); got != "05:00" {
		t.Errorf("start = %q", got)
	}
	if got := s.EndTime(); got != "06:00" {
		t.Errorf("end = %q, want wrap to 06:00", got)
	}
}

func TestSelectionValidate(t *testing.T) {
	s := NewSelection(SportPickleball, "pickleball-1", "2026-01-02")
	if err := s.Validate(); !errors.Is(err, ErrTooShort) {
		t.Errorf("empty selection validate = %v", err)
	}
	if err := s.Select(4); err != nil {
		t.Fatal(err)
	}
	if err := s.Validate(); !errors.Is(err, ErrTooShort) {
		t.Errorf("single slot validate = %v", err)
	}
	if err := s.Select(5); err != nil {
		t.Fatal(err)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("two slots validate = %v", err)
	}
}

func TestSelectionDisplayRangeCrossMidnight(t *testing.T) {
	s := NewSelection(SportCricket, "cricket-2", "2026-01-02")
	// 23:00 through 00:30 next morning
	start, _ := SlotIndex("23:00")
	for i := 0; i < 3; i++ {
		if err := s.Select(start + i); err != nil {
			t.Fatal(err)
		}
	}
	got, err := s.DisplayRange()
	if err != nil {
		t.Fatal(err)
	}
	want := "Fri, Jan 2 11:00 PM - Sat, Jan 3 12:30 AM"
	if got != want {
		t.Errorf("range = %q, want %q", got, want)
	}
}

func TestSelectionDisplayRangeSameDay(t *testing.T) {
	s := NewSelection(SportPadel, "padel-1", "2026-01-02")
	start, _ := SlotIndex("11:00")
	for i := 0; i < 3; i++ {
		if err := s.Select(start + i); err != nil {
			t.Fatal(err)
		}
	}
	got, err := s.DisplayRange()
	if err != nil {
		t.Fatal(err)
	}
	want := "Fri, Jan 2 11:00 AM - 12:30 PM"
	if got != want {
		t.Errorf("range = %q, want %q", got, want)
	}
}

func TestRestoreSelection(t *testing.T) {
	slots := []TimeSlot{
		{Time: "10:30", Index: 9},
		{Time: "10:00", Index: 8},
	}
	s, err := RestoreSelection(SportPadel, "padel-1", "2026-01-02", slots)
	if err != nil {
		t.Fatal(err)
	}
	if s.StartTime() != "10:00" || s.EndTime() != "11:00" {
		t.Errorf("restored range %s-%s", s.StartTime(), s.EndTime())
	}

	broken := []TimeSlot{{Index: 3}, {Index: 5}}
	if _, err := RestoreSelection(SportPadel, "padel-1", "2026-01-02", broken); !errors.Is(err, ErrNotContiguous) {
		t.Errorf("gap restore err = %v", err)
	}
}

// Random toggles must never leave a non-contiguous run behind.
func TestSelectionInvariantUnderRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewSelection(SportFutsal, "futsal-1", "2026-01-02")
	for i := 0; i < 500; i++ {
		s.Toggle(rng.Intn(SlotsPerDay))
		slots := s.Slots()
		for j := 1; j < len(slots); j++ {
			if slots[j].Index != slots[j-1].Index+1 {
				t.Fatalf("op %d: non-contiguous run %v", i, slots)
			}
		}
		if wantDur := float64(len(slots)) * 0.5; s.Duration() != wantDur {
			t.Fatalf("op %d: duration %v for %d slots", i, s.Duration(), len(slots))
		}
	}
}

func TestSlotsForRange(t *testing.T) {
	slots, err := SlotsForRange("18:00", 1.5)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 3 {
		t.Fatalf("slot count = %d, want 3", len(slots))
	}
	if slots[0].Time != "18:00" || slots[2].Time != "19:00" {
		t.Errorf("range = %s..%s", slots[0].Time, slots[2].Time)
	}

	if _, err := SlotsForRange("05:30", 1); err == nil {
		t.Error("range past close of day accepted")
	}
	if _, err := SlotsForRange("18:00", 0); err == nil {
		t.Error("zero duration accepted")
	}
	if _, err := SlotsForRange("18:15", 1); err == nil {
		t.Error("off-grid start accepted")
	}
}

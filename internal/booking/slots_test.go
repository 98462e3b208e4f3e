package booking

import "testing"

func TestGenerateTimeSlots(t *testing.T) {
	slots := GenerateTimeSlots()
	if len(slots) != SlotsPerDay {
		t.Fatalf("expected %d slots, got %d", SlotsPerDay, len(slots))
	}
	if slots[0].Time != "06:00" {
		t.Errorf("first slot = %q, want 06:00", slots[0].Time)
	}
	if slots[1].Time != "06:30" {
		t.Errorf("second slot = %q, want 06:30", slots[1].Time)
	}
	if slots[35].Time != "23:30" {
		t.Errorf("slot 35 = %q, want 23:30", slots[35].Time)
	}
	if slots[36].Time != "00:00" {
		t.Errorf("slot 36 = %q, want 00:00", slots[36].Time)
	}
	if slots[47].Time != "05:30" {
		t.Errorf("last slot = %q, want 05:30", slots[47].Time)
	}
	for i, s := range slots {
		if s.Index != i {
			t.Fatalf("slot %d carries index %d", i, s.Index)
		}
	}
}

func TestSlotTimeAtWrapsToClose(t *testing.T) {
	if got := SlotTimeAt(SlotsPerDay); got != "06:00" {
		t.Errorf("SlotTimeAt(48) = %q, want 06:00", got)
	}
	if got := SlotTimeAt(-1); got != "06:00" {
		t.Errorf("SlotTimeAt(-1) = %q, want 06:00", got)
	}
	if got := SlotTimeAt(0); got != "06:00" {
		t.Errorf("SlotTimeAt(0) = %q, want 06:00", got)
	}
	if got := SlotTimeAt(47); got != "05:30" {
		t.Errorf("SlotTimeAt(47) = %q, want 05:30", got)
	}
}

func TestSlotIndexRoundTrip(t *testing.T) {
	for _, s := range GenerateTimeSlots() {
		idx, ok := SlotIndex(s.Time)
		if !ok {
			t.Fatalf("SlotIndex(%q) rejected a catalog time", s.Time)
		}
		if idx != s.Index {
			t.Errorf("SlotIndex(%q) = %d, want %d", s.Time, idx, s.Index)
		}
	}
	for _, bad := range []string{"06:15", "24:00", "6", "", "ab:cd"} {
		if _, ok := SlotIndex(bad); ok {
			t.Errorf("SlotIndex(%q) accepted invalid time", bad)
		}
	}
}

func TestIsNextDayTime(t *testing.T) {
	cases := map[string]bool{
		"00:00": true,
		"00:30": true,
		"05:30": true,
		"06:00": false,
		"12:00": false,
		"23:30": false,
	}
	for in, want := range cases {
		if got := IsNextDayTime(in); got != want {
			t.Errorf("IsNextDayTime(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFormatTime12h(t *testing.T) {
	cases := map[string]string{
		"00:30": "12:30 AM",
		"06:00": "6:00 AM",
		"12:00": "12:00 PM",
		"13:30": "1:30 PM",
		"23:30": "11:30 PM",
	}
	for in, want := range cases {
		if got := FormatTime12h(in); got != want {
			t.Errorf("FormatTime12h(%q) = %q, want %q", in, got, want)
		}
	}
	if got := FormatTime12h("nonsense"); got != "nonsense" {
		t.Errorf("invalid input should echo, got %q", got)
	}
}

func TestTime12hRoundTrip(t *testing.T) {
	for _, s := range GenerateTimeSlots() {
		back, err := ParseTime12h(FormatTime12h(s.Time))
		if err != nil {
			t.Fatalf("round trip %q: %v", s.Time, err)
		}
		if back != s.Time {
			t.Errorf("round trip %q -> %q", s.Time, back)
		}
	}
}

package apiutil

import (
	"strings"
	"testing"
)

func TestParseRequiredField(t *testing.T) {
	if _, err := ParseRequiredField("  ", "court"); err == nil {
		t.Error("blank value accepted")
	}
	got, err := ParseRequiredField(" padel-1 ", "court")
	if err != nil || got != "padel-1" {
		t.Errorf("got %q, %v", got, err)
	}
}

func TestParseDateField(t *testing.T) {
	if _, err := ParseDateField("2026-01-02", "date"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	for _, bad := range []string{"", "02-01-2026", "2026-13-40", "tomorrow"} {
		if _, err := ParseDateField(bad, "date"); err == nil {
			t.Errorf("accepted %q", bad)
		}
	}
}

func TestParseSlotTimeField(t *testing.T) {
	for _, good := range []string{"06:00", "23:30", "00:00", "05:30"} {
		if _, err := ParseSlotTimeField(good, "startTime"); err != nil {
			t.Errorf("rejected %q: %v", good, err)
		}
	}
	for _, bad := range []string{"", "06:15", "24:00", "6pm"} {
		if _, err := ParseSlotTimeField(bad, "startTime"); err == nil {
			t.Errorf("accepted %q", bad)
		}
	}
}

func TestParseDurationField(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr string
	}{
		{"1.5", 1.5, ""},
		{"6", 6, ""},
		{"0.5", 0.5, ""},
		{"", 0, "required"},
		{"0", 0, "greater than 0"},
		{"-1", 0, "greater than 0"},
		{"6.5", 0, "at most 6"},
		{"1.25", 0, "half-hour"},
	}
	for _, tc := range cases {
		got, err := ParseDurationField(tc.in, "duration")
		if tc.wantErr == "" {
			if err != nil || got != tc.want {
				t.Errorf("ParseDurationField(%q) = %v, %v", tc.in, got, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
			t.Errorf("ParseDurationField(%q) err = %v, want %q", tc.in, err, tc.wantErr)
		}
	}
}

func TestFormatPKR(t *testing.T) {
	cases := map[int]string{
		0:       "PKR 0",
		500:     "PKR 500",
		2500:    "PKR 2,500",
		5500:    "PKR 5,500",
		1250000: "PKR 1,250,000",
		-500:    "PKR -500",
		-5500:   "PKR -5,500",
	}
	for amount, want := range cases {
		if got := FormatPKR(amount); got != want {
			t.Errorf("FormatPKR(%d) = %q, want %q", amount, got, want)
		}
	}
}

package apiutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hmzza/NoballSportsClub/internal/booking"
)

func ParseRequiredField(raw string, field string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%s is required", field)
	}
	return raw, nil
}

func ParsePositiveIntField(raw string, field string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", field)
	}
	return value, nil
}

// ParseDateField accepts the YYYY-MM-DD dates the booking forms submit.
func ParseDateField(raw string, field string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%s is required", field)
	}
	if _, err := time.Parse("2006-01-02", raw); err != nil {
		return "", fmt.Errorf("%s must be a date in YYYY-MM-DD form", field)
	}
	return raw, nil
}

// ParseSlotTimeField accepts only times on the half-hour slot grid.
func ParseSlotTimeField(raw string, field string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%s is required", field)
	}
	if _, ok := booking.SlotIndex(raw); !ok {
		return "", fmt.Errorf("%s must be a half-hour time between 06:00 and 05:30", field)
	}
	return raw, nil
}

// ParseDurationField accepts a booking length in hours, in half-hour steps
// up to the booking cap.
func ParseDurationField(raw string, field string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", field)
	}
	if value > booking.MaxDurationHours {
		return 0, fmt.Errorf("%s must be at most %d hours", field, booking.MaxDurationHours)
	}
	if value*2 != float64(int(value*2)) {
		return 0, fmt.Errorf("%s must be in half-hour steps", field)
	}
	return value, nil
}

// FormatPKR renders an amount for display, e.g. "PKR 5,500".
func FormatPKR(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	s := strconv.Itoa(amount)
	if len(s) <= 3 {
		return "PKR " + sign + s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return "PKR " + sign + b.String()
}

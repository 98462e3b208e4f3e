// Package booking holds the slot catalog, court catalog, and the slot
// selection engine shared by the customer flow and the admin console.
//
// The facility operates a single logical day from 06:00 to 05:30 the next
// calendar morning, divided into 48 half-hour slots. Slot index order IS
// chronological order within that logical day; times with hours 0-5 belong
// to the next calendar date.
package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// SlotsPerDay is the number of half-hour slots in one operating day.
const SlotsPerDay = 48

// SlotMinutes is the length of a single slot.
const SlotMinutes = 30

// TimeSlot is one half-hour cell of the operating day.
type TimeSlot struct {
	Time  string `json:"time"`  // "HH:MM", 24-hour
	Index int    `json:"index"` // 0..47, chronological within the operating day
}

// GenerateTimeSlots returns the full operating day: 48 slots starting at
// 06:00, each 30 minutes, running through 05:30 of the next calendar day.
// The result is freshly allocated and safe to modify.
func GenerateTimeSlots() []TimeSlot {
	slots := make([]TimeSlot, 0, SlotsPerDay)
	for i := 0; i < SlotsPerDay; i++ {
		slots = append(slots, TimeSlot{Time: slotTime(i), Index: i})
	}
	return slots
}

func slotTime(index int) string {
	hour := (6 + index/2) % 24
	minute := 0
	if index%2 == 1 {
		minute = 30
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// SlotTimeAt returns the time string for a slot index. An index one past the
// end (or beyond) wraps to "06:00", the close of the operating day; this is
// the convention used for a selection's exclusive end time.
func SlotTimeAt(index int) string {
	if index < 0 || index >= SlotsPerDay {
		return "06:00"
	}
	return slotTime(index)
}

// SlotIndex returns the operating-day index for a "HH:MM" time, and false
// when the string is not one of the 48 slot times.
func SlotIndex(t string) (int, bool) {
	hour, minute, err := splitClock(t)
	if err != nil {
		return 0, false
	}
	if minute != 0 && minute != 30 {
		return 0, false
	}
	idx := ((hour + 24 - 6) % 24) * 2
	if minute == 30 {
		idx++
	}
	return idx, true
}

// IsNextDayTime reports whether a slot time falls on the calendar day after
// the booking date. Hours 0 through 5 are the after-midnight tail of the
// operating day.
func IsNextDayTime(t string) bool {
	hour, _, err := splitClock(t)
	if err != nil {
		return false
	}
	return hour >= 0 && hour <= 5
}

// FormatTime12h renders a 24-hour "HH:MM" as "h:MM AM/PM". Invalid input is
// returned unchanged so display code never loses the raw value.
func FormatTime12h(t string) string {
	hour, minute, err := splitClock(t)
	if err != nil {
		return t
	}
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}

// ParseTime12h converts "h:MM AM/PM" back to 24-hour "HH:MM". It is the
// inverse of FormatTime12h for every slot time.
func ParseTime12h(s string) (string, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return "", fmt.Errorf("invalid 12-hour time %q", s)
	}
	hour, minute, err := splitClock(fields[0])
	if err != nil {
		return "", fmt.Errorf("invalid 12-hour time %q", s)
	}
	if hour < 1 || hour > 12 {
		return "", fmt.Errorf("invalid 12-hour time %q", s)
	}
	switch strings.ToUpper(fields[1]) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return "", fmt.Errorf("invalid 12-hour time %q", s)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

func splitClock(t string) (hour, minute int, err error) {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q", t)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid time %q", t)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time %q", t)
	}
	return hour, minute, nil
}

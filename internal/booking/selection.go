package booking

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// MaxDurationHours caps a single booking. The admin quick-book form and
// draft validation both enforce it.
const MaxDurationHours = 6

// MinSelectionSlots is the smallest bookable run: two slots, one hour.
const MinSelectionSlots = 2

// Selection errors carry user-facing messages; handlers surface Error()
// directly.
var (
	ErrNotContiguous = errors.New("please select consecutive time slots only")
	ErrMiddleRemoval = errors.New("you can only remove slots from the start or end of your selection")
	ErrTooShort      = errors.New("please select at least 2 consecutive slots (1 hour minimum)")
	ErrUnknownSlot   = errors.New("that time slot does not exist")
)

// Selection is the slot-picking state for one court on one date. The slot
// run is always either empty or contiguous in ascending index order; every
// mutation that would break that is rejected and leaves the selection
// untouched. Derived figures (start, end, duration, amount) are recomputed
// after each successful mutation.
//
// A Selection is not safe for concurrent use; each in-flight booking owns
// its own.
type Selection struct {
	sport string
	court string
	date  string // "YYYY-MM-DD", the operating-day date

	slots []TimeSlot // sorted by Index, contiguous
}

// NewSelection starts an empty selection for a court and date.
func NewSelection(sport, court, date string) *Selection {
	return &Selection{sport: sport, court: court, date: date}
}

// RestoreSelection rebuilds a selection from a previously derived slot run,
// validating contiguity. Slot times are recomputed from the indices, so a
// client-supplied Time that disagrees with its Index cannot leak into the
// derived fields. Used by handlers that round-trip selection state through
// the client.
func RestoreSelection(sport, court, date string, slots []TimeSlot) (*Selection, error) {
	s := NewSelection(sport, court, date)
	sorted := make([]TimeSlot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })
	for i, slot := range sorted {
		if slot.Index < 0 || slot.Index >= SlotsPerDay {
			return nil, ErrUnknownSlot
		}
		if i > 0 && slot.Index != sorted[i-1].Index+1 {
			return nil, ErrNotContiguous
		}
		sorted[i].Time = SlotTimeAt(slot.Index)
	}
	s.slots = sorted
	return s, nil
}

// Sport returns the selection's sport.
func (s *Selection) Sport() string { return s.sport }

// Court returns the selection's court id.
func (s *Selection) Court() string { return s.court }

// Date returns the operating-day date.
func (s *Selection) Date() string { return s.date }

// Slots returns a copy of the current run in ascending index order.
func (s *Selection) Slots() []TimeSlot {
	out := make([]TimeSlot, len(s.slots))
	copy(out, s.slots)
	return out
}

// Count returns the number of selected slots.
func (s *Selection) Count() int { return len(s.slots) }

// Contains reports whether the slot at index is selected.
func (s *Selection) Contains(index int) bool {
	for _, slot := range s.slots {
		if slot.Index == index {
			return true
		}
	}
	return false
}

// Toggle selects the slot if absent and deselects it if present, enforcing
// the contiguity rules. On rejection the returned error carries the message
// to show the user and the selection is unchanged.
func (s *Selection) Toggle(index int) error {
	if s.Contains(index) {
		return s.Deselect(index)
	}
	return s.Select(index)
}

// Select adds a slot. The first slot may be anywhere; after that the run
// may only grow by one slot at either end.
func (s *Selection) Select(index int) error {
	if index < 0 || index >= SlotsPerDay {
		return ErrUnknownSlot
	}
	if s.Contains(index) {
		return nil
	}
	if len(s.slots) > 0 {
		first := s.slots[0].Index
		last := s.slots[len(s.slots)-1].Index
		if index != first-1 && index != last+1 {
			return ErrNotContiguous
		}
	}
	slot := TimeSlot{Time: SlotTimeAt(index), Index: index}
	if len(s.slots) > 0 && index < s.slots[0].Index {
		s.slots = append([]TimeSlot{slot}, s.slots...)
	} else {
		s.slots = append(s.slots, slot)
	}
	return nil
}

// Deselect removes a slot. Only the ends of the run may be removed; taking
// a middle slot out would split the booking in two.
func (s *Selection) Deselect(index int) error {
	if len(s.slots) == 0 || !s.Contains(index) {
		return nil
	}
	first := s.slots[0].Index
	last := s.slots[len(s.slots)-1].Index
	switch index {
	case first:
		s.slots = s.slots[1:]
	case last:
		s.slots = s.slots[:len(s.slots)-1]
	default:
		return ErrMiddleRemoval
	}
	return nil
}

// Clear empties the selection.
func (s *Selection) Clear() { s.slots = nil }

// StartTime returns the first selected slot's time, or "" when empty.
func (s *Selection) StartTime() string {
	if len(s.slots) == 0 {
		return ""
	}
	return s.slots[0].Time
}

// EndTime returns the exclusive end: the slot time one index past the run,
// wrapping to "06:00" after the final slot of the day.
func (s *Selection) EndTime() string {
	if len(s.slots) == 0 {
		return ""
	}
	return SlotTimeAt(s.slots[len(s.slots)-1].Index + 1)
}

// Duration returns the selected length in hours (0.5 per slot).
func (s *Selection) Duration() float64 {
	return float64(len(s.slots)) * 0.5
}

// TotalAmount returns the price in PKR: the sport's hourly rate times the
// duration, rounded to the nearest rupee.
func (s *Selection) TotalAmount() int {
	return int(math.Round(float64(HourlyRate(s.sport)) * s.Duration()))
}

// Validate checks the selection is bookable: non-empty and at least the
// one-hour minimum.
func (s *Selection) Validate() error {
	if len(s.slots) < MinSelectionSlots {
		return ErrTooShort
	}
	return nil
}

// DisplayRange renders the selection for confirmation screens. When the run
// crosses midnight both calendar dates appear, e.g.
// "Fri, Jan 2 11:00 PM - Sat, Jan 3 12:30 AM"; otherwise the date shows
// once: "Fri, Jan 2 11:00 AM - 12:30 PM".
func (s *Selection) DisplayRange() (string, error) {
	if len(s.slots) == 0 {
		return "", errors.New("no slots selected")
	}
	day, err := time.Parse("2006-01-02", s.date)
	if err != nil {
		return "", fmt.Errorf("invalid booking date %q: %w", s.date, err)
	}
	start, end := s.StartTime(), s.EndTime()
	startDay, endDay := day, day
	if IsNextDayTime(start) {
		startDay = day.AddDate(0, 0, 1)
	}
	// End is exclusive: a run finishing exactly at the 06:00 close still
	// belongs to the next morning.
	if IsNextDayTime(end) || (end == "06:00" && s.slots[len(s.slots)-1].Index == SlotsPerDay-1) {
		endDay = day.AddDate(0, 0, 1)
	}
	const dateFmt = "Mon, Jan 2"
	if startDay.Equal(endDay) {
		return fmt.Sprintf("%s %s - %s",
			startDay.Format(dateFmt), FormatTime12h(start), FormatTime12h(end)), nil
	}
	return fmt.Sprintf("%s %s - %s %s",
		startDay.Format(dateFmt), FormatTime12h(start),
		endDay.Format(dateFmt), FormatTime12h(end)), nil
}

// SlotsForRange expands a start time plus a duration in hours into the slot
// run it covers. Fractional half-hours round up to a whole slot. The run
// must fit inside the operating day.
func SlotsForRange(start string, durationHours float64) ([]TimeSlot, error) {
	if durationHours <= 0 {
		return nil, errors.New("duration must be greater than zero")
	}
	startIdx, ok := SlotIndex(start)
	if !ok {
		return nil, fmt.Errorf("invalid start time %q", start)
	}
	n := int(math.Ceil(durationHours * 2))
	if startIdx+n > SlotsPerDay {
		return nil, errors.New("booking runs past the end of the operating day")
	}
	slots := make([]TimeSlot, 0, n)
	for i := 0; i < n; i++ {
		idx := startIdx + i
		slots = append(slots, TimeSlot{Time: SlotTimeAt(idx), Index: idx})
	}
	return slots, nil
}

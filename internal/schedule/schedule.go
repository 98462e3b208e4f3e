// Package schedule turns the backend's schedule-data payload into
// renderable grid cells for the admin console: consecutive slots of one
// booking merge into a single block, and bookings on a multi-purpose court
// surface as conflict cells on the courts sharing the same physical field.
package schedule

import (
	"sort"
	"strings"

	"github.com/hmzza/NoballSportsClub/internal/booking"
)

// Display statuses as the backend emits them.
const (
	StatusPending   = "booked-pending"
	StatusConfirmed = "booked-confirmed"
	StatusConflict  = "booked-conflict"
	StatusCancelled = "booked-cancelled"
)

// Entry is one occupied half-hour cell in the backend's schedule payload.
// Conflict entries synthesized here additionally carry OriginalCourt and
// ConflictCourt; they are display-only and never sent back.
type Entry struct {
	Status        string  `json:"status"`
	Title         string  `json:"title"`
	Subtitle      string  `json:"subtitle"`
	BookingID     string  `json:"bookingId"`
	PlayerName    string  `json:"playerName"`
	PlayerPhone   string  `json:"playerPhone"`
	Amount        int     `json:"amount"`
	Duration      float64 `json:"duration"`
	OriginalCourt string  `json:"originalCourt,omitempty"`
	ConflictCourt string  `json:"conflictCourt,omitempty"`
}

// Data is the backend schedule payload: date -> court id -> slot time ->
// entry. Missing dates or courts simply render as empty days.
type Data map[string]map[string]map[string]Entry

// SlotView is an entry annotated with its position inside a merged run of
// consecutive slots belonging to the same booking.
type SlotView struct {
	Entry
	Time         string
	GroupStart   string // time of the run's first slot
	GroupSize    int    // total slots in the run
	Continuation bool   // true for every slot after the first
}

// IsGroupStart reports whether this slot opens a merged run (including runs
// of one).
func (v SlotView) IsGroupStart() bool { return !v.Continuation }

// EndTime returns the exclusive end time of the run this slot belongs to.
func (v SlotView) EndTime() string {
	startIdx, ok := booking.SlotIndex(v.GroupStart)
	if !ok {
		return v.Time
	}
	return booking.SlotTimeAt(startIdx + v.GroupSize)
}

// GroupConsecutive merges a court's day into runs: entries at consecutive
// slot times holding the same booking id become one group. The first slot
// is the group start and carries the whole block's size; the rest are
// continuations pointing back at it.
func GroupConsecutive(d Data, date, courtID string) map[string]SlotView {
	views := map[string]SlotView{}
	day, ok := d[date]
	if !ok {
		return views
	}
	entries, ok := day[courtID]
	if !ok {
		return views
	}

	type timed struct {
		time  string
		index int
	}
	var times []timed
	for tm := range entries {
		idx, ok := booking.SlotIndex(tm)
		if !ok {
			continue // off-grid time in the payload, skip the cell
		}
		times = append(times, timed{time: tm, index: idx})
	}
	sort.Slice(times, func(i, j int) bool { return times[i].index < times[j].index })

	for i := 0; i < len(times); {
		run := []timed{times[i]}
		id := entries[times[i].time].BookingID
		j := i + 1
		for j < len(times) &&
			times[j].index == times[j-1].index+1 &&
			entries[times[j].time].BookingID == id {
			run = append(run, times[j])
			j++
		}
		for k, slot := range run {
			views[slot.time] = SlotView{
				Entry:        entries[slot.time],
				Time:         slot.time,
				GroupStart:   run[0].time,
				GroupSize:    len(run),
				Continuation: k > 0,
			}
		}
		i = j
	}
	return views
}

// Lookup resolves the entry shown at (date, time, courtID), synthesizing a
// conflict entry when a multi-purpose sibling court holds the slot. For the
// all-courts pseudo column the first catalog-order court with a booking
// wins, its title annotated with the sport. Returns false for free slots.
func Lookup(d Data, date, tm, courtID string) (Entry, bool) {
	if courtID == booking.AllCourtsID {
		for _, c := range booking.AllCourts("") {
			if entry, ok := lookupCourt(d, date, tm, c.ID); ok {
				title := entry.Title
				if title == "" {
					title = "Booked"
				}
				entry.Title = title + " (" + titleCase(c.Sport) + ")"
				return entry, true
			}
		}
		return Entry{}, false
	}
	return lookupCourt(d, date, tm, courtID)
}

func lookupCourt(d Data, date, tm, courtID string) (Entry, bool) {
	if entry, ok := d[date][courtID][tm]; ok {
		return entry, true
	}
	for _, sibling := range booking.ConflictingCourts(courtID) {
		entry, ok := d[date][sibling][tm]
		if !ok {
			continue
		}
		sport := booking.CourtSport(sibling)
		entry.Title = entry.Title + " (" + titleCase(sport) + ")"
		entry.Subtitle = entry.Subtitle + " - Multi Court Booked"
		entry.Status = StatusConflict
		entry.OriginalCourt = sibling
		entry.ConflictCourt = courtID
		return entry, true
	}
	return Entry{}, false
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// StatusText maps a display status to its label.
func StatusText(status string) string {
	switch status {
	case "available":
		return "Available"
	case StatusPending:
		return "Pending Payment"
	case StatusConfirmed:
		return "Confirmed"
	case StatusConflict:
		return "Multi-Court Booking"
	default:
		return status
	}
}

// StatusColor maps a display status to its grid color.
func StatusColor(status string) string {
	switch status {
	case StatusPending:
		return "#ffc107"
	case StatusConfirmed:
		return "#28a745"
	case StatusConflict:
		return "#dc3545"
	case StatusCancelled:
		return "#6c757d"
	default:
		return "#007bff"
	}
}

// DisplayStatus maps the backend's raw booking statuses to grid statuses.
// Unknown values fall back to pending, matching the backend's own default.
func DisplayStatus(raw string) string {
	switch raw {
	case "confirmed":
		return StatusConfirmed
	case "cancelled":
		return StatusCancelled
	case "pending_payment":
		return StatusPending
	default:
		return StatusPending
	}
}

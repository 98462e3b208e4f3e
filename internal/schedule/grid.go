package schedule

import (
	"fmt"
	"time"

	"github.com/hmzza/NoballSportsClub/internal/booking"
)

// CellKind classifies what a grid cell renders as.
type CellKind int

const (
	CellAvailable CellKind = iota
	CellBooked              // a booking's first (or only) slot
	CellContinuation        // a later slot of a merged run
	CellError               // the cell failed to derive; grid keeps going
)

// Cell is the pure render description of one grid position. HTML adapters
// consume cells; nothing here touches markup.
type Cell struct {
	Date    string
	Time    string
	CourtID string
	Kind    CellKind

	Status     string
	StatusText string
	Color      string

	Title      string
	Subtitle   string
	TimeLabel  string // slot time, 12-hour
	RangeLabel string // "6:00 PM - 7:30 PM", group starts only
	BookingID  string
	Amount     int
	Duration   float64

	GroupStart  string // continuations: time of the run's first cell
	GroupSize   int
	RoundTop    bool
	RoundBottom bool
}

// Column is one vertical track of the grid with its header.
type Column struct {
	CourtID string
	Date    string
	Header  string
	Sub     string
}

// Row is one half-hour band: the time label plus a cell per column.
type Row struct {
	Time      string
	TimeLabel string
	Cells     []Cell
}

// Grid is a fully derived schedule view ready for templating.
type Grid struct {
	View    string // "day" or "week"
	Columns []Column
	Rows    []Row
}

// RenderCell derives the cell at one grid position. A panic while deriving
// (malformed payload data) produces an error cell instead of killing the
// whole grid.
func RenderCell(d Data, views map[string]SlotView, date, tm, courtID string) (cell Cell) {
	defer func() {
		if r := recover(); r != nil {
			cell = Cell{
				Date: date, Time: tm, CourtID: courtID,
				Kind: CellError, Title: "Unavailable",
				TimeLabel: booking.FormatTime12h(tm),
				Subtitle:  fmt.Sprint(r),
			}
		}
	}()

	cell = Cell{
		Date:      date,
		Time:      tm,
		CourtID:   courtID,
		TimeLabel: booking.FormatTime12h(tm),
	}

	if view, ok := views[tm]; ok {
		fillBooked(&cell, view)
		return cell
	}

	// Not part of a merged run for this court; a multi-purpose sibling or,
	// on the pseudo column, any court may still occupy the slot.
	if entry, ok := Lookup(d, date, tm, courtID); ok {
		fillBooked(&cell, SlotView{Entry: entry, Time: tm, GroupStart: tm, GroupSize: 1})
		return cell
	}

	cell.Kind = CellAvailable
	cell.Title = "Available"
	cell.Status = "available"
	cell.StatusText = StatusText("available")
	return cell
}

func fillBooked(cell *Cell, view SlotView) {
	cell.Status = view.Status
	if cell.Status == "" {
		cell.Status = StatusPending
	}
	cell.StatusText = StatusText(cell.Status)
	cell.Color = StatusColor(cell.Status)
	cell.Title = view.Title
	if cell.Title == "" {
		cell.Title = "Booked"
	}
	cell.Subtitle = view.Subtitle
	cell.BookingID = view.BookingID
	cell.Amount = view.Amount
	cell.Duration = float64(view.GroupSize) * 0.5
	cell.GroupStart = view.GroupStart
	cell.GroupSize = view.GroupSize

	if view.Continuation {
		cell.Kind = CellContinuation
		cell.RoundBottom = isRunEnd(view)
		return
	}
	cell.Kind = CellBooked
	cell.RoundTop = true
	cell.RoundBottom = view.GroupSize == 1
	cell.RangeLabel = fmt.Sprintf("%s - %s",
		booking.FormatTime12h(view.GroupStart),
		booking.FormatTime12h(view.EndTime()))
}

func isRunEnd(view SlotView) bool {
	startIdx, ok := booking.SlotIndex(view.GroupStart)
	if !ok {
		return false
	}
	idx, ok := booking.SlotIndex(view.Time)
	if !ok {
		return false
	}
	return idx == startIdx+view.GroupSize-1
}

// BuildDayGrid renders one date with a column per configured court,
// optionally filtered to a sport.
func BuildDayGrid(d Data, date, sportFilter string) Grid {
	courts := booking.AllCourts(sportFilter)
	grid := Grid{View: "day"}
	for _, c := range courts {
		grid.Columns = append(grid.Columns, Column{
			CourtID: c.ID,
			Date:    date,
			Header:  c.Name,
			Sub:     titleCase(c.Sport),
		})
	}
	grouped := make([]map[string]SlotView, len(courts))
	for i, c := range courts {
		grouped[i] = GroupConsecutive(d, date, c.ID)
	}
	for _, slot := range booking.GenerateTimeSlots() {
		row := Row{Time: slot.Time, TimeLabel: booking.FormatTime12h(slot.Time)}
		for i, c := range courts {
			row.Cells = append(row.Cells, RenderCell(d, grouped[i], date, slot.Time, c.ID))
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}

// BuildWeekGrid renders seven days starting at weekStart, one all-courts
// pseudo column per day.
func BuildWeekGrid(d Data, weekStart time.Time) Grid {
	grid := Grid{View: "week"}
	var dates []string
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		date := day.Format("2006-01-02")
		dates = append(dates, date)
		grid.Columns = append(grid.Columns, Column{
			CourtID: booking.AllCourtsID,
			Date:    date,
			Header:  day.Format("Mon"),
			Sub:     day.Format("Jan 2"),
		})
	}
	for _, slot := range booking.GenerateTimeSlots() {
		row := Row{Time: slot.Time, TimeLabel: booking.FormatTime12h(slot.Time)}
		for _, date := range dates {
			row.Cells = append(row.Cells, RenderCell(d, nil, date, slot.Time, booking.AllCourtsID))
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}

// WeekStart returns the Monday of t's week.
func WeekStart(t time.Time) time.Time {
	day := t
	offset := int(time.Monday - day.Weekday())
	if day.Weekday() == time.Sunday {
		offset = -6
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()).
		AddDate(0, 0, offset)
}

package admin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hmzza/NoballSportsClub/internal/api/apiutil"
	"github.com/hmzza/NoballSportsClub/internal/api/htmx"
	"github.com/hmzza/NoballSportsClub/internal/backend"
	"github.com/hmzza/NoballSportsClub/internal/booking"
	"github.com/hmzza/NoballSportsClub/internal/request"
	"github.com/hmzza/NoballSportsClub/internal/schedule"
	"github.com/hmzza/NoballSportsClub/internal/templates/layouts"
)

// HandleSchedulePage renders the schedule console; the grid itself loads
// as an htmx fragment.
func HandleSchedulePage(w http.ResponseWriter, r *http.Request) {
	view, date, sport := request.ScheduleParamsFromRequest(r, time.Now())

	var buf bytes.Buffer
	buf.WriteString(`<div class="schedule-console"><h1>Schedule</h1><div class="schedule-controls">`)
	buf.WriteString(`<select id="sport-filter" name="sport"><option value="all">All Sports</option>`)
	for _, s := range booking.SportOrder() {
		selected := ""
		if s == sport {
			selected = ` selected`
		}
		fmt.Fprintf(&buf, `<option value="%s"%s>%s</option>`, s, selected, html.EscapeString(sportTitle(s)))
	}
	fmt.Fprintf(&buf, `</select>
<input type="date" id="schedule-date" name="date" value="%s"/>
<button name="view" value="day">Day</button>
<button name="view" value="week">Week</button>
</div>
<div id="schedule-grid" hx-get="/admin/schedule/grid?view=%s&date=%s&sport=%s" hx-trigger="load">Loading...</div>
</div>`, date.Format("2006-01-02"), view, date.Format("2006-01-02"), sport)

	// htmx navigation swaps just the content region
	if htmx.IsRequest(r) {
		w.Header().Set("Content-Type", "text/html")
		w.Write(buf.Bytes())
		return
	}
	page := layouts.Admin("Schedule", layouts.Raw(buf.String()))
	page.Render(r.Context(), w)
}

// HandleScheduleGrid fetches schedule data for the requested view and
// renders the grid fragment.
func HandleScheduleGrid(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	view, date, sport := request.ScheduleParamsFromRequest(r, time.Now())

	var startDate, endDate time.Time
	if view == "week" {
		startDate = schedule.WeekStart(date)
		endDate = startDate.AddDate(0, 0, 6)
	} else {
		startDate, endDate = date, date
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()
	data, err := loadClient().ScheduleData(ctx,
		startDate.Format("2006-01-02"), endDate.Format("2006-01-02"), sport)
	if err != nil {
		logger.Error().Err(err).Str("view", view).Msg("Failed to load schedule data")
		http.Error(w, "Could not load the schedule, please retry", http.StatusBadGateway)
		return
	}

	var grid schedule.Grid
	if view == "week" {
		grid = schedule.BuildWeekGrid(data, startDate)
	} else {
		grid = schedule.BuildDayGrid(data, date.Format("2006-01-02"), sport)
	}

	w.Header().Set("Content-Type", "text/html")
	w.Write(renderGrid(grid))
}

func renderGrid(grid schedule.Grid) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<table class="schedule-grid schedule-%s"><thead><tr><th class="time-col">Time</th>`, grid.View)
	for _, col := range grid.Columns {
		fmt.Fprintf(&buf, `<th data-court="%s" data-date="%s">%s<span class="col-sub">%s</span></th>`,
			html.EscapeString(col.CourtID), col.Date,
			html.EscapeString(col.Header), html.EscapeString(col.Sub))
	}
	buf.WriteString(`</tr></thead><tbody>`)
	for _, row := range grid.Rows {
		fmt.Fprintf(&buf, `<tr><td class="time-col">%s</td>`, row.TimeLabel)
		for _, cell := range row.Cells {
			renderCell(&buf, cell)
		}
		buf.WriteString(`</tr>`)
	}
	buf.WriteString(`</tbody></table>`)
	return buf.Bytes()
}

func renderCell(buf *bytes.Buffer, cell schedule.Cell) {
	switch cell.Kind {
	case schedule.CellAvailable:
		fmt.Fprintf(buf,
			`<td class="slot available" data-court="%s" data-date="%s" data-time="%s"><span class="slot-time">%s</span></td>`,
			html.EscapeString(cell.CourtID), cell.Date, cell.Time, cell.TimeLabel)
	case schedule.CellContinuation:
		corner := ""
		if cell.RoundBottom {
			corner = ` run-end`
		}
		fmt.Fprintf(buf,
			`<td class="slot continuation %s%s" data-group-start="%s" data-booking-id="%s" style="background-color:%s"></td>`,
			cell.Status, corner, cell.GroupStart, html.EscapeString(cell.BookingID), cell.Color)
	case schedule.CellError:
		fmt.Fprintf(buf, `<td class="slot slot-error" data-time="%s">%s</td>`, cell.Time, html.EscapeString(cell.Title))
	default:
		fmt.Fprintf(buf,
			`<td class="slot booked %s run-start" data-booking-id="%s" data-time="%s" style="background-color:%s">`,
			cell.Status, html.EscapeString(cell.BookingID), cell.Time, cell.Color)
		fmt.Fprintf(buf, `<div class="slot-title">%s</div>`, html.EscapeString(cell.Title))
		if cell.Subtitle != "" {
			fmt.Fprintf(buf, `<div class="slot-subtitle">%s</div>`, html.EscapeString(cell.Subtitle))
		}
		fmt.Fprintf(buf, `<div class="slot-range">%s</div><div class="slot-status">%s</div></td>`,
			cell.RangeLabel, html.EscapeString(cell.StatusText))
	}
}

type scheduleDataRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Sport     string `json:"sport"`
}

// HandleScheduleData proxies the raw schedule payload for clients that
// render locally.
func HandleScheduleData(w http.ResponseWriter, r *http.Request) {
	var req scheduleDataRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	start, err := apiutil.ParseDateField(req.StartDate, "startDate")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	end, err := apiutil.ParseDateField(req.EndDate, "endDate")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()
	data, err := loadClient().ScheduleData(ctx, start, end, request.ParseSport(req.Sport))
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Schedule data fetch failed")
		apiutil.WriteFailure(w, http.StatusBadGateway, "Could not load schedule data")
		return
	}
	apiutil.WriteSuccess(w, map[string]any{"schedule": data})
}

type quickBookRequest struct {
	Sport           string  `json:"sport"`
	Court           string  `json:"court"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	Duration        float64 `json:"duration"`
	PlayerName      string  `json:"playerName"`
	PlayerPhone     string  `json:"playerPhone"`
	PlayerEmail     string  `json:"playerEmail"`
	PlayerCount     int     `json:"playerCount"`
	SpecialRequests string  `json:"specialRequests"`
	PaymentType     string  `json:"paymentType"`
}

// HandleQuickBook creates a booking from the admin quick-book form: a
// start time and duration instead of slot-by-slot selection.
func HandleQuickBook(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	var req quickBookRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	if _, err := apiutil.ParseSlotTimeField(req.StartTime, "startTime"); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	if req.Duration == 0 {
		req.Duration, _ = booking.QuickBookDefaults(req.Sport)
	}

	slots, err := booking.SlotsForRange(req.StartTime, req.Duration)
	if err != nil {
		apiutil.WriteFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	sel, err := booking.RestoreSelection(req.Sport, req.Court, req.Date, slots)
	if err != nil {
		apiutil.WriteFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	playerCount := req.PlayerCount
	if playerCount == 0 {
		_, playerCount = booking.QuickBookDefaults(req.Sport)
	}
	draft := booking.DraftFromSelection(sel,
		req.PlayerName, req.PlayerPhone, req.PlayerEmail,
		playerCount, req.SpecialRequests, req.PaymentType)
	if err := draft.Validate(); err != nil {
		apiutil.WriteFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()
	if err := loadClient().CheckConflict(ctx, draft.Court, draft.Date, draft.SelectedSlots); err != nil {
		logger.Warn().Err(err).Str("court", draft.Court).Msg("Quick book blocked by conflict check")
		apiutil.WriteFailure(w, http.StatusConflict, err.Error())
		return
	}
	bookingID, err := loadClient().AdminCreateBooking(ctx, draft)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			apiutil.WriteFailure(w, http.StatusUnprocessableEntity, apiErr.Message)
			return
		}
		logger.Error().Err(err).Msg("Quick book submission failed")
		apiutil.WriteFailure(w, http.StatusBadGateway, "Could not reach the booking service")
		return
	}

	logger.Info().Str("booking_id", bookingID).Msg("Quick booking created")
	apiutil.WriteSuccess(w, map[string]any{"bookingId": bookingID})
}

func sportTitle(sport string) string {
	switch sport {
	case booking.SportPadel:
		return "Padel"
	case booking.SportCricket:
		return "Cricket"
	case booking.SportFutsal:
		return "Futsal"
	case booking.SportPickleball:
		return "Pickleball"
	default:
		return sport
	}
}

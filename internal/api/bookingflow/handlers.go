// internal/api/bookingflow/handlers.go
// Customer-facing booking flow: the booking page, the slot grid, the
// selection engine endpoint, and booking submission.
package bookingflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hmzza/NoballSportsClub/internal/api/apiutil"
	"github.com/hmzza/NoballSportsClub/internal/backend"
	"github.com/hmzza/NoballSportsClub/internal/booking"
	"github.com/hmzza/NoballSportsClub/internal/templates/layouts"
)

var (
	client     *backend.Client
	clientOnce sync.Once
)

const backendTimeout = 10 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(c *backend.Client) {
	if c == nil {
		return
	}
	clientOnce.Do(func() {
		client = c
	})
}

func loadClient() *backend.Client { return client }

// HandleBookingPage renders the customer booking page.
func HandleBookingPage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	buf.WriteString(`<div class="booking-page"><h1>Book a Court</h1><div class="sport-tabs">`)
	for _, sport := range booking.SportOrder() {
		fmt.Fprintf(&buf,
			`<button class="sport-tab" data-sport="%s" hx-post="/api/time-slots" hx-target="#slot-grid">%s</button>`,
			html.EscapeString(sport), html.EscapeString(sportLabel(sport)))
	}
	buf.WriteString(`</div><div class="court-list">`)
	for _, c := range booking.AllCourts("") {
		fmt.Fprintf(&buf,
			`<div class="court-option" data-court="%s" data-sport="%s">%s <span class="court-rate">%s/hr</span></div>`,
			html.EscapeString(c.ID), html.EscapeString(c.Sport),
			html.EscapeString(c.Name), apiutil.FormatPKR(c.HourlyRate))
	}
	buf.WriteString(`</div><div id="slot-grid" class="slot-grid"></div><div id="booking-summary"></div></div>`)

	page := layouts.Base("Book a Court", layouts.Raw(buf.String()))
	page.Render(r.Context(), w)
}

type timeSlotsRequest struct {
	Court string `json:"court"`
	Date  string `json:"date"`
}

type slotInfo struct {
	Time    string `json:"time"`
	Index   int    `json:"index"`
	Display string `json:"display"`
	Booked  bool   `json:"booked"`
	NextDay bool   `json:"nextDay"`
}

// HandleTimeSlots returns the 48-slot day for a court and date with the
// backend's occupied slots marked.
func HandleTimeSlots(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	var req timeSlotsRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	court, err := apiutil.ParseRequiredField(req.Court, "court")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	date, err := apiutil.ParseDateField(req.Date, "date")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()

	booked, err := loadClient().BookedSlots(ctx, court, date)
	if err != nil {
		logger.Error().Err(err).Str("court", court).Str("date", date).Msg("Failed to load booked slots")
		apiutil.WriteFailure(w, http.StatusBadGateway, "Could not load availability, please try again")
		return
	}
	bookedSet := make(map[string]bool, len(booked))
	for _, t := range booked {
		bookedSet[t] = true
	}

	slots := make([]slotInfo, 0, booking.SlotsPerDay)
	for _, s := range booking.GenerateTimeSlots() {
		slots = append(slots, slotInfo{
			Time:    s.Time,
			Index:   s.Index,
			Display: booking.FormatTime12h(s.Time),
			Booked:  bookedSet[s.Time],
			NextDay: booking.IsNextDayTime(s.Time),
		})
	}
	apiutil.WriteSuccess(w, map[string]any{"slots": slots})
}

type toggleRequest struct {
	Sport    string             `json:"sport"`
	Court    string             `json:"court"`
	Date     string             `json:"date"`
	Selected []booking.TimeSlot `json:"selected"`
	Toggle   int                `json:"toggle"`
}

// HandleSelectionToggle runs one toggle through the selection engine and
// returns the new selection plus derived figures. Rule violations come back
// as success=false with the rule's message and the selection unchanged.
func HandleSelectionToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	if _, err := apiutil.ParseRequiredField(req.Court, "court"); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	if _, err := apiutil.ParseDateField(req.Date, "date"); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}

	sel, err := booking.RestoreSelection(req.Sport, req.Court, req.Date, req.Selected)
	if err != nil {
		apiutil.WriteFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := sel.Toggle(req.Toggle); err != nil {
		// Selection is untouched; echo it back with the rule message.
		writeSelection(w, sel, false, err.Error())
		return
	}
	writeSelection(w, sel, true, "")
}

func writeSelection(w http.ResponseWriter, sel *booking.Selection, success bool, message string) {
	payload := map[string]any{
		"success":     success,
		"selected":    sel.Slots(),
		"startTime":   sel.StartTime(),
		"endTime":     sel.EndTime(),
		"duration":    sel.Duration(),
		"totalAmount": sel.TotalAmount(),
		"bookable":    sel.Validate() == nil,
	}
	if message != "" {
		payload["message"] = message
	}
	if sel.Count() > 0 {
		if display, err := sel.DisplayRange(); err == nil {
			payload["displayRange"] = display
		}
	}
	apiutil.WriteJSON(w, http.StatusOK, payload)
}

// HandleCreateBooking validates the draft, pre-checks conflicts and submits
// to the backend.
func HandleCreateBooking(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	var draft booking.Draft
	if err := apiutil.DecodeJSON(r, &draft); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	if err := draft.Validate(); err != nil {
		apiutil.WriteFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()

	if err := loadClient().CheckConflict(ctx, draft.Court, draft.Date, draft.SelectedSlots); err != nil {
		logger.Warn().Err(err).Str("court", draft.Court).Msg("Booking blocked by conflict check")
		apiutil.WriteFailure(w, http.StatusConflict, err.Error())
		return
	}

	bookingID, err := loadClient().CreateBooking(ctx, draft)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			apiutil.WriteFailure(w, http.StatusUnprocessableEntity, apiErr.Message)
			return
		}
		logger.Error().Err(err).Msg("Booking submission failed")
		apiutil.WriteFailure(w, http.StatusBadGateway, "Could not reach the booking service, please try again")
		return
	}

	logger.Info().Str("booking_id", bookingID).Str("court", draft.Court).Msg("Booking created")
	apiutil.WriteSuccess(w, map[string]any{"bookingId": bookingID})
}

func sportLabel(sport string) string {
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

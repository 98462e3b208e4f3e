package admin

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/hmzza/NoballSportsClub/internal/api/apiutil"
	"github.com/hmzza/NoballSportsClub/internal/backend"
	"github.com/hmzza/NoballSportsClub/internal/templates/layouts"
)

// HandleBookingControlPage renders the booking control console.
func HandleBookingControlPage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	buf.WriteString(`<div class="booking-control"><h1>Booking Control</h1>
<div class="search-panel">
  <select id="search-method">
    <option value="id">Booking ID</option>
    <option value="phone">Phone</option>
    <option value="name">Name</option>
    <option value="date">Date Range</option>
  </select>
  <input type="text" id="search-value" placeholder="Search..."/>
  <input type="date" id="search-start" class="hidden"/>
  <input type="date" id="search-end" class="hidden"/>
  <button id="search-btn">Search</button>
</div>
<div id="search-results"></div>
<div class="bulk-panel">
  <div id="bulk-table"></div>
  <div class="bulk-actions">
    <button data-action="confirm">Confirm Selected</button>
    <button data-action="cancel">Cancel Selected</button>
    <button data-action="delete">Delete Selected</button>
  </div>
</div></div>`)

	page := layouts.Admin("Booking Control", layouts.Raw(buf.String()))
	page.Render(r.Context(), w)
}

// HandleSearch runs an admin booking search.
func HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req backend.SearchRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()
	bookings, err := loadClient().SearchBookings(ctx, req)
	if err != nil {
		writeBackendError(w, r, err, "Search failed")
		return
	}
	apiutil.WriteSuccess(w, map[string]any{"bookings": bookings})
}

// HandleUpdate applies edits to a booking.
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req backend.BookingUpdate
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()
	if err := loadClient().UpdateBooking(ctx, req); err != nil {
		writeBackendError(w, r, err, "Update failed")
		return
	}
	log.Ctx(r.Context()).Info().Str("booking_id", req.BookingID).Msg("Booking updated")
	apiutil.WriteSuccess(w, map[string]any{"message": "Booking updated successfully"})
}

type bookingActionRequest struct {
	BookingID string `json:"bookingId"`
	Action    string `json:"action"`
}

// HandleAction confirms, declines or cancels a single booking.
func HandleAction(w http.ResponseWriter, r *http.Request) {
	var req bookingActionRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()
	if err := loadClient().BookingAction(ctx, req.BookingID, req.Action); err != nil {
		writeBackendError(w, r, err, "Action failed")
		return
	}
	log.Ctx(r.Context()).Info().
		Str("booking_id", req.BookingID).
		Str("action", req.Action).
		Msg("Booking action applied")
	messages := map[string]string{
		backend.ActionConfirm: "Booking confirmed",
		backend.ActionDecline: "Booking declined",
		backend.ActionCancel:  "Booking cancelled",
	}
	apiutil.WriteSuccess(w, map[string]any{"message": messages[req.Action]})
}

type deleteBookingRequest struct {
	BookingID string `json:"bookingId"`
}

// HandleDelete removes a booking permanently.
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteBookingRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()
	if err := loadClient().DeleteBooking(ctx, req.BookingID); err != nil {
		writeBackendError(w, r, err, "Delete failed")
		return
	}
	log.Ctx(r.Context()).Info().Str("booking_id", req.BookingID).Msg("Booking deleted")
	apiutil.WriteSuccess(w, map[string]any{"message": "Booking deleted"})
}

// HandleBulkList returns bookings for the bulk operations table.
func HandleBulkList(w http.ResponseWriter, r *http.Request) {
	var filter backend.BulkFilter
	if err := apiutil.DecodeJSON(r, &filter); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()
	bookings, err := loadClient().BulkBookings(ctx, filter)
	if err != nil {
		writeBackendError(w, r, err, "Could not load bookings")
		return
	}
	apiutil.WriteSuccess(w, map[string]any{"bookings": bookings})
}

type bulkActionApiRequest struct {
	Action     string   `json:"action"`
	BookingIDs []string `json:"bookingIds"`
}

// HandleBulkAction applies one action to a set of bookings. On success the
// client clears its selection and reloads the table.
func HandleBulkAction(w http.ResponseWriter, r *http.Request) {
	var req bulkActionApiRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()
	message, err := loadClient().BulkAction(ctx, req.Action, req.BookingIDs)
	if err != nil {
		writeBackendError(w, r, err, "Bulk action failed")
		return
	}
	log.Ctx(r.Context()).Info().
		Str("action", req.Action).
		Int("count", len(req.BookingIDs)).
		Msg("Bulk action applied")
	apiutil.WriteSuccess(w, map[string]any{"message": message})
}

func writeBackendError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		apiutil.WriteFailure(w, http.StatusUnprocessableEntity, apiErr.Message)
		return
	}
	// Local validation errors read well as-is; transport failures get the
	// generic message.
	if errors.Is(err, backend.ErrUnreachable) || errors.Is(err, context.DeadlineExceeded) {
		log.Ctx(r.Context()).Error().Err(err).Msg(fallback)
		apiutil.WriteFailure(w, http.StatusBadGateway, fallback)
		return
	}
	apiutil.WriteFailure(w, http.StatusBadRequest, err.Error())
}
